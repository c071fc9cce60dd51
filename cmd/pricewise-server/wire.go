package main

import (
	"context"
	"io"
	"time"

	"github.com/darkkaiser/pricewise-server/internal/advisor"
	"github.com/darkkaiser/pricewise-server/internal/comparison"
	"github.com/darkkaiser/pricewise-server/internal/config"
	"github.com/darkkaiser/pricewise-server/internal/importer"
	apperrors "github.com/darkkaiser/pricewise-server/internal/pkg/errors"
	"github.com/darkkaiser/pricewise-server/internal/pkg/subprocess"
	"github.com/darkkaiser/pricewise-server/internal/pkg/version"
	"github.com/darkkaiser/pricewise-server/internal/prediction"
	"github.com/darkkaiser/pricewise-server/internal/service/api"
	"github.com/darkkaiser/pricewise-server/internal/service/api/constants"
	"github.com/darkkaiser/pricewise-server/internal/service/api/handler/system"
	v1handler "github.com/darkkaiser/pricewise-server/internal/service/api/v1/handler"
	"github.com/darkkaiser/pricewise-server/internal/service/notification"
	"github.com/darkkaiser/pricewise-server/internal/service/notification/telegram"
	"github.com/darkkaiser/pricewise-server/internal/service/scheduler"
	"github.com/darkkaiser/pricewise-server/internal/service/tracker"
	"github.com/darkkaiser/pricewise-server/internal/store"
	"github.com/darkkaiser/pricewise-server/internal/store/memory"
	"github.com/darkkaiser/pricewise-server/internal/store/postgres"
)

// storeOpenTimeout 데이터베이스 연결과 스키마 적용에 허용하는 시간
const storeOpenTimeout = 30 * time.Second

// 스케줄 작업 이름
const (
	jobPriceTracker  = "price-tracker"
	jobCatalogImport = "catalog-import"
)

// 외부 엔진 이름 (로그와 서킷 브레이커 지표의 라벨)
const (
	enginePrediction = "prediction"
	engineAdvisor    = "advisor"
)

// newApplication 설정에 따라 저장소와 서비스들을 생성하고 서로 연결합니다.
//
// 반환되는 서비스 목록은 시작 순서대로 정렬되어 있습니다.
func newApplication(ctx context.Context, appConfig *config.AppConfig, buildInfo version.Info) (*application, error) {
	app := &application{}

	st, closer, err := openStore(ctx, appConfig.Storage)
	if err != nil {
		return nil, err
	}
	app.store = st
	if closer != nil {
		app.closers = append(app.closers, closer)
	}

	notifier, err := newNotifier(appConfig)
	if err != nil {
		app.Close()
		return nil, err
	}
	notificationService := notification.NewService(notifier)

	comparisonOpts, err := comparisonOptions(appConfig.Comparison)
	if err != nil {
		app.Close()
		return nil, err
	}
	comparisonService := comparison.NewService(st.Products(), comparisonOpts)

	var predictionEngine *prediction.Engine
	if appConfig.Prediction.Enabled() {
		predictionEngine = prediction.NewEngine(newEngineRunner(enginePrediction, appConfig.Prediction))
	} else {
		predictionEngine = prediction.NewEngine(nil)
	}

	var advisorService *advisor.Service
	if appConfig.Advisor.Enabled() {
		advisorService = advisor.NewService(newEngineRunner(engineAdvisor, appConfig.Advisor))
	} else {
		advisorService = advisor.NewService(nil)
	}

	trackerService := tracker.NewService(st, predictionEngine, notificationService)
	catalogImporter := importer.New(appConfig.Importer, st.Products())

	var jobs []scheduler.Job
	if appConfig.Tracker.Enabled {
		jobs = append(jobs, scheduler.Job{
			Name: jobPriceTracker,
			Spec: appConfig.Tracker.Schedule,
			Run:  trackerService.Run,
		})
	}
	if appConfig.Importer.Enabled {
		jobs = append(jobs, scheduler.Job{
			Name: jobCatalogImport,
			Spec: appConfig.Importer.Schedule,
			Run: func(ctx context.Context) error {
				_, err := catalogImporter.Run(ctx)
				return err
			},
		})
	}
	schedulerService := scheduler.NewService(jobs, notificationService)

	apiService := api.NewService(appConfig, api.Dependencies{
		V1: v1handler.Dependencies{
			Store:      st,
			Comparison: comparisonService,
			Tracker:    trackerService,
			Advisor:    advisorService,
			Importer:   catalogImporter,
		},
		NotificationSender: notificationService,
		HealthCheckers: map[string]system.HealthChecker{
			constants.DependencyStore:             st,
			constants.DependencyNotificationQueue: notificationService,
		},
	}, buildInfo)

	app.services = []service{notificationService, schedulerService, apiService}

	return app, nil
}

// healthStore 헬스체크를 지원하는 저장소
type healthStore interface {
	store.Store
	Health(ctx context.Context) error
}

func openStore(ctx context.Context, cfg config.StorageConfig) (healthStore, io.Closer, error) {
	switch cfg.Driver {
	case "", "memory":
		return memory.New(), nil, nil

	case "postgres":
		pg, err := postgres.Open(ctx, cfg.DSN, postgres.Options{
			MaxOpenConns:    cfg.MaxOpenConns,
			MaxIdleConns:    cfg.MaxIdleConns,
			ConnMaxLifetime: cfg.ConnMaxLifetime,
		})
		if err != nil {
			return nil, nil, err
		}
		return pg, pg, nil

	default:
		return nil, nil, apperrors.Newf(apperrors.InvalidInput, "지원하지 않는 저장소 드라이버입니다: %s", cfg.Driver)
	}
}

func newNotifier(appConfig *config.AppConfig) (notification.Notifier, error) {
	if !appConfig.Notification.Telegram.Enabled {
		return notification.LogNotifier{}, nil
	}
	return telegram.New(appConfig.Notification.Telegram, appConfig.Debug)
}

func comparisonOptions(cfg config.ComparisonConfig) (comparison.Options, error) {
	granularity, err := comparison.ParseGranularity(cfg.Granularity)
	if err != nil {
		return comparison.Options{}, err
	}
	sortPolicy, err := comparison.ParseSortPolicy(cfg.Sort)
	if err != nil {
		return comparison.Options{}, err
	}

	return comparison.Options{
		SavingsThreshold: cfg.SavingsThreshold,
		DefaultLimit:     cfg.DefaultLimit,
		MaxLimit:         cfg.MaxLimit,
		Granularity:      granularity,
		Sort:             sortPolicy,
	}, nil
}

func newEngineRunner(name string, cfg config.EngineConfig) *subprocess.Runner {
	return subprocess.New(subprocess.Config{
		Name:             name,
		Command:          cfg.Command,
		Args:             cfg.Args,
		Timeout:          cfg.Timeout,
		FailureThreshold: cfg.FailureThreshold,
		OpenTimeout:      cfg.OpenTimeout,
	})
}
