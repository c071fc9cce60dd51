package log

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCloser struct {
	closed bool
	err    error
}

func (f *fakeCloser) Close() error {
	f.closed = true
	return f.err
}

func TestCloser_Close(t *testing.T) {
	t.Parallel()

	closeErr := errors.New("close error")

	tests := []struct {
		name    string
		closers []*fakeCloser
		withNil bool
		wantErr error
	}{
		{name: "모두 정상 종료", closers: []*fakeCloser{{}, {}, {}}},
		{name: "중간 실패 시에도 모두 닫고 첫 번째 에러 반환", closers: []*fakeCloser{{}, {err: closeErr}, {err: errors.New("later")}}, wantErr: closeErr},
		{name: "nil Closer 포함", closers: []*fakeCloser{{}, {}}, withNil: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var closers []io.Closer
			for i, fc := range tt.closers {
				closers = append(closers, fc)
				if tt.withNil && i == 0 {
					closers = append(closers, nil)
				}
			}

			err := (&closer{closers: closers}).Close()
			if tt.wantErr != nil {
				assert.Same(t, tt.wantErr, err)
			} else {
				require.NoError(t, err)
			}
			for _, fc := range tt.closers {
				assert.True(t, fc.closed)
			}
		})
	}
}

func TestCloser_Close_StopsHook(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	h := &hook{mainWriter: &buf, formatter: &logrus.TextFormatter{DisableTimestamp: true}}

	require.NoError(t, (&closer{hook: h}).Close())

	entry := logrus.NewEntry(logrus.New())
	entry.Level = InfoLevel
	entry.Message = "닫힌 뒤의 로그"
	require.NoError(t, h.Fire(entry))
	assert.Zero(t, buf.Len(), "닫힌 hook은 더 이상 기록하지 않아야 합니다")
}
