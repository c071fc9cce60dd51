// Package auth 외부 인증 서비스가 발급한 JWT 액세스 토큰을 검증합니다.
//
// 토큰 발급은 이 서버의 범위가 아니며, 같은 비밀 키를 공유하는 인증 서비스가 HS256으로 서명합니다.
// 사용자 ID는 sub 클레임에서 읽습니다.
package auth

import (
	"errors"
	"time"

	"github.com/darkkaiser/pricewise-server/internal/config"
	apperrors "github.com/darkkaiser/pricewise-server/internal/pkg/errors"
	"github.com/golang-jwt/jwt/v5"
)

// leeway 서버 간 시계 오차 허용 범위
const leeway = 30 * time.Second

// Claims 액세스 토큰 클레임
type Claims struct {
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// User 인증된 요청의 사용자
type User struct {
	ID    string
	Email string
	Role  string
}

// IsAdmin 관리자 권한 여부
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// RoleAdmin 관리자 역할 이름
const RoleAdmin = "admin"

// Authenticator JWT 검증기입니다. 초기화 후 읽기 전용이므로 동시에 사용해도 안전합니다.
type Authenticator struct {
	secret []byte
	parser *jwt.Parser
}

// NewAuthenticator 설정의 비밀 키와 발급자로 Authenticator를 생성합니다.
func NewAuthenticator(cfg config.AuthConfig) *Authenticator {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(leeway),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}

	return &Authenticator{
		secret: []byte(cfg.JWTSecret),
		parser: jwt.NewParser(opts...),
	}
}

// Authenticate 토큰의 서명과 유효 기간, 발급자를 검증하고 사용자 정보를 반환합니다.
func (a *Authenticator) Authenticate(token string) (*User, error) {
	claims := &Claims{}
	if _, err := a.parser.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return a.secret, nil
	}); err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.Wrap(err, apperrors.Unauthorized, "만료된 토큰입니다")
		}
		return nil, apperrors.Wrap(err, apperrors.Unauthorized, "유효하지 않은 토큰입니다")
	}

	if claims.Subject == "" {
		return nil, ErrSubjectMissing
	}

	return &User{
		ID:    claims.Subject,
		Email: claims.Email,
		Role:  claims.Role,
	}, nil
}
