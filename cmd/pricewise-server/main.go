package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"sync"
	"syscall"

	"github.com/darkkaiser/pricewise-server/internal/config"
	"github.com/darkkaiser/pricewise-server/internal/pkg/version"
	"github.com/darkkaiser/pricewise-server/internal/store"
	applog "github.com/darkkaiser/pricewise-server/pkg/log"
)

// @title pricewise-server API
// @version 1.0.0
// @description 여러 브랜드의 의류 상품 가격을 비교하고, 관심 상품의 가격 변화를 추적하는 서버의 REST API입니다.
// @description
// @description ## 주요 기능
// @description - 상품 그룹별 브랜드 가격 비교 및 통계 (XLSX 내보내기 포함)
// @description - 위시리스트와 가격 추적, 가격 하락 알림
// @description - 가격 예측과 스타일 추천
// @description
// @description ## 인증 방법
// @description 사용자 API는 외부 인증 서비스가 발급한 JWT를 Authorization 헤더로 전달해야 합니다.
// @description    - Authorization: Bearer YOUR_TOKEN
// @description    - 토큰 누락 또는 검증 실패: 401 Unauthorized
// @description    - 관리자 API 권한 부족: 403 Forbidden

// @contact.name DarkKaiser
// @contact.url https://github.com/DarkKaiser
// @contact.email darkkaiser@gmail.com

// @license.name MIT

// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description "Bearer " 접두사와 함께 JWT를 전달합니다.

// 빌드 정보 변수 (Dockerfile의 ldflags로 주입됨)
var (
	Version     = "dev"     // Git 커밋 해시
	BuildDate   = "unknown" // 빌드 날짜
	BuildNumber = "0"       // 빌드 번호
)

const banner = `
  ____       _                    _
 |  _ \ _ __(_) ___ _____      __(_)___  ___
 | |_) | '__| |/ __/ _ \ \ /\ / /| / __|/ _ \
 |  __/| |  | | (_|  __/\ V  V / | \__ \  __/
 |_|   |_|  |_|\___\___| \_/\_/  |_|___/\___|
                                               %s
                                 developed by DarkKaiser
--------------------------------------------------------------------------------
`

// service 메인 루프가 시작하고 종료를 기다리는 백그라운드 서비스
type service interface {
	Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error
}

// application 설정으로부터 조립된 서비스 묶음
type application struct {
	store    store.Store
	services []service
	closers  []io.Closer
}

func (a *application) Close() {
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			applog.WithComponentAndFields("main", applog.Fields{
				"error": err,
			}).Warn("리소스 정리에 실패했습니다")
		}
	}
}

func main() {
	// 1. 환경설정 로드 (로그 설정에 필요하므로 가장 먼저 수행한다)
	var (
		appConfig *config.AppConfig
		err       error
	)
	if len(os.Args) > 1 {
		appConfig, err = config.LoadWithFile(os.Args[1])
	} else {
		appConfig, err = config.Load()
	}
	if err != nil {
		// 로거 초기화 전이므로 표준 에러에 출력
		fmt.Fprintf(os.Stderr, "[FATAL] 환경설정 로드 실패: %v\n", err)
		os.Exit(1)
	}

	// 2. 로그 시스템 초기화
	var logOpts applog.Options
	if appConfig.Debug {
		logOpts = applog.NewDevelopmentOptions(config.AppName)
	} else {
		logOpts = applog.NewProductionOptions(config.AppName)
	}

	appLogCloser, err := applog.Setup(logOpts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[FATAL] 로그 시스템 초기화 실패. 서버 구동을 중단합니다. (Cause: %v)\n", err)
		os.Exit(1)
	}
	defer appLogCloser.Close()

	applog.SetDebugMode(appConfig.Debug)

	fmt.Printf(banner, Version)

	buildInfo := version.Info{
		Version:     Version,
		BuildDate:   BuildDate,
		BuildNumber: BuildNumber,
		GoVersion:   runtime.Version(),
		OS:          runtime.GOOS,
		Arch:        runtime.GOARCH,
	}
	version.Set(buildInfo)

	applog.WithComponentAndFields("main", applog.Fields{
		"version": buildInfo.String(),
		"env":     map[bool]string{true: "development", false: "production"}[appConfig.Debug],
		"storage": appConfig.Storage.Driver,
	}).Info("서버 초기화 시작")

	for _, warning := range appConfig.VerifyRecommendations() {
		applog.WithComponent("main").Warn(warning)
	}

	// 3. 서비스 조립
	initCtx, initCancel := context.WithTimeout(context.Background(), storeOpenTimeout)
	app, err := newApplication(initCtx, appConfig, buildInfo)
	initCancel()
	if err != nil {
		applog.WithComponentAndFields("main", applog.Fields{
			"error": err,
		}).Error("서비스 구성 실패")
		os.Exit(1)
	}
	defer app.Close()

	serviceStopCtx, cancel := context.WithCancel(context.Background())
	serviceStopWG := &sync.WaitGroup{}

	// 4. 서비스 시작 (알림 서비스가 먼저 떠야 다른 서비스가 실패를 알릴 수 있다)
	for _, s := range app.services {
		serviceStopWG.Add(1)
		if err := s.Start(serviceStopCtx, serviceStopWG); err != nil {
			applog.WithComponentAndFields("main", applog.Fields{
				"error": err,
			}).Error("서비스 초기화 실패")

			cancel()
			serviceStopWG.Wait()
			app.Close()

			applog.WithComponent("main").Error("서비스 초기화 실패로 프로그램을 종료합니다")
			os.Exit(1)
		}
	}

	termC := make(chan os.Signal, 1)
	signal.Notify(termC, syscall.SIGINT, syscall.SIGTERM)

	applog.WithComponent("main").Info("서버 가동 완료")

	<-termC

	applog.WithComponent("main").Info("종료 신호를 수신했습니다")
	cancel()
	serviceStopWG.Wait()
}
