package maputil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleAdvice struct {
	Style    string        `json:"style"`
	Score    int           `json:"score"`
	Colors   []string      `json:"colors"`
	Featured bool          `json:"featured"`
	TTL      time.Duration `json:"ttl"`
}

func TestDecode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   any
		opts    []Option
		want    *sampleAdvice
		wantErr bool
	}{
		{
			name:  "유연한 타입 변환",
			input: map[string]any{"style": "casual", "score": "87", "featured": 1, "ttl": "5m"},
			want:  &sampleAdvice{Style: "casual", Score: 87, Featured: true, TTL: 5 * time.Minute},
		},
		{
			name:  "쉼표 문자열을 슬라이스로",
			input: map[string]any{"colors": "navy, white ,beige"},
			want:  &sampleAdvice{Colors: []string{"navy", "white", "beige"}},
		},
		{
			name:  "알 수 없는 키는 기본적으로 무시",
			input: map[string]any{"style": "formal", "unknown": true},
			want:  &sampleAdvice{Style: "formal"},
		},
		{
			name:    "ErrorUnused 활성화 시 알 수 없는 키는 에러",
			input:   map[string]any{"unknown": true},
			opts:    []Option{WithErrorUnused(true)},
			wantErr: true,
		},
		{
			name:    "nil 입력",
			input:   nil,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Decode[sampleAdvice](tt.input, tt.opts...)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
