package main

import (
	"context"
	"testing"

	"github.com/darkkaiser/pricewise-server/internal/comparison"
	"github.com/darkkaiser/pricewise-server/internal/config"
	apperrors "github.com/darkkaiser/pricewise-server/internal/pkg/errors"
	"github.com/darkkaiser/pricewise-server/internal/pkg/version"
	"github.com/darkkaiser/pricewise-server/internal/service/notification"
	"github.com/darkkaiser/pricewise-server/internal/store/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppMetadata(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "pricewise-server", config.AppName)
	assert.Equal(t, "pricewise-server.json", config.DefaultFilename)
	assert.NotContains(t, config.AppName, " ", "애플리케이션 이름에는 공백이 포함될 수 없습니다")
}

func TestNewApplication(t *testing.T) {
	t.Parallel()

	appConfig := config.Default()
	appConfig.Tracker.Enabled = true
	appConfig.Importer.Enabled = true

	app, err := newApplication(context.Background(), appConfig, version.Info{Version: "test"})
	require.NoError(t, err)
	defer app.Close()

	assert.IsType(t, &memory.Store{}, app.store)
	assert.Empty(t, app.closers, "메모리 저장소는 정리할 리소스가 없어야 합니다")
	require.Len(t, app.services, 3)
	assert.IsType(t, &notification.Service{}, app.services[0], "알림 서비스가 가장 먼저 시작되어야 합니다")
}

func TestOpenStore_UnknownDriver(t *testing.T) {
	t.Parallel()

	_, _, err := openStore(context.Background(), config.StorageConfig{Driver: "mysql"})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.InvalidInput))
}

func TestNewNotifier_Disabled(t *testing.T) {
	t.Parallel()

	n, err := newNotifier(config.Default())
	require.NoError(t, err)
	assert.Equal(t, "log", n.ID())
}

func TestComparisonOptions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     config.ComparisonConfig
		want    comparison.Options
		wantErr bool
	}{
		{
			name: "기본값",
			cfg:  config.Default().Comparison,
			want: comparison.Options{
				SavingsThreshold: 100,
				DefaultLimit:     50,
				MaxLimit:         500,
				Granularity:      comparison.GranularityCoarse,
				Sort:             comparison.SortByOfferCount,
			},
		},
		{
			name: "세분화 그룹과 가격순",
			cfg:  config.ComparisonConfig{SavingsThreshold: 50, DefaultLimit: 10, MaxLimit: 20, Granularity: "fine", Sort: "price"},
			want: comparison.Options{
				SavingsThreshold: 50,
				DefaultLimit:     10,
				MaxLimit:         20,
				Granularity:      comparison.GranularityFine,
				Sort:             comparison.SortByMinPrice,
			},
		},
		{name: "잘못된 그룹 단위", cfg: config.ComparisonConfig{Granularity: "medium"}, wantErr: true},
		{name: "잘못된 정렬", cfg: config.ComparisonConfig{Sort: "rating"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := comparisonOptions(tt.cfg)
			if tt.wantErr {
				assert.True(t, apperrors.Is(err, apperrors.InvalidInput), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
