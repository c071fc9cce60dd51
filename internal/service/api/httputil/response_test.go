package httputil

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuccessResponses(t *testing.T) {
	t.Parallel()

	e := echo.New()

	rec := httptest.NewRecorder()
	require.NoError(t, Success(e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)))
	assert.JSONEq(t, `{"result_code":0,"message":"성공"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	require.NoError(t, DataWithStatus(e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), rec), http.StatusCreated, map[string]int{"n": 1}))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"result_code":0,"data":{"n":1}}`, rec.Body.String())
}
