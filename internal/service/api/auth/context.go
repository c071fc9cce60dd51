package auth

import (
	"fmt"

	"github.com/darkkaiser/pricewise-server/internal/service/api/constants"
	"github.com/labstack/echo/v4"
)

// contextKeyUser 인증된 사용자 저장용 Context 키
const contextKeyUser = "darkkaiser/pricewise-server/api/auth/AuthenticatedUser"

// SetUser 인증된 사용자 정보를 Context에 저장합니다.
func SetUser(c echo.Context, user *User) {
	c.Set(contextKeyUser, user)
}

// GetUser Context에서 사용자 정보를 조회합니다.
func GetUser(c echo.Context) (*User, error) {
	val := c.Get(contextKeyUser)
	if val == nil {
		return nil, ErrUserMissingInContext
	}

	user, ok := val.(*User)
	if !ok {
		return nil, ErrUserTypeMismatch
	}

	return user, nil
}

// MustGetUser 인증 미들웨어를 통과한 핸들러에서만 사용합니다. 조회에 실패하면 panic이 발생합니다.
func MustGetUser(c echo.Context) *User {
	user, err := GetUser(c)
	if err != nil {
		panic(fmt.Sprintf(constants.PanicMsgAuthContextUserNotFound, err))
	}
	return user
}
