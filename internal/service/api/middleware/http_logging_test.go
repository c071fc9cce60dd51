package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaskSensitiveQueryParams(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		uri  string
		want string
	}{
		{"민감 정보 없음", "/api/v1/products?category=men&limit=10", "/api/v1/products?category=men&limit=10"},
		{"토큰 마스킹", "/api/v1/products?token=secret123&id=100", "/api/v1/products?id=100&token=secr%2A%2A%2A"},
		{"짧은 값", "/x?password=abc", "/x?password=%2A%2A%2A"},
		{"쿼리 없음", "/health", "/health"},
		{"파싱 실패 시 원본 유지", "%zz?token=abc", "%zz?token=abc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, maskSensitiveQueryParams(tt.uri))
		})
	}
}
