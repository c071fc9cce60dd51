package cronx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		spec    string
		wantErr bool
	}{
		{"6필드 - 매 30분", "0 */30 * * * *", false},
		{"6필드 - 매일 새벽 3시", "0 0 3 * * *", false},
		{"Descriptor - @hourly", "@hourly", false},
		{"Descriptor - @every", "@every 15m", false},
		{"5필드 미지원", "*/5 * * * *", true},
		{"빈 문자열", "  ", true},
		{"범위 초과", "0 0 25 * * *", true},
		{"가비지 값", "every day", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := Validate(tt.spec)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
