// Package handler v1 API의 HTTP 요청 핸들러를 제공합니다.
//
// 핸들러는 요청을 바인딩하고 검증한 뒤 도메인 서비스를 호출합니다.
// 서비스가 반환한 에러는 그대로 반환하며, 상태 코드 변환은 httputil.ErrorHandler가 담당합니다.
package handler

import (
	"context"
	"time"

	"github.com/darkkaiser/pricewise-server/internal/advisor"
	"github.com/darkkaiser/pricewise-server/internal/comparison"
	"github.com/darkkaiser/pricewise-server/internal/importer"
	"github.com/darkkaiser/pricewise-server/internal/service/api/constants"
	"github.com/darkkaiser/pricewise-server/internal/service/tracker"
	"github.com/darkkaiser/pricewise-server/internal/store"
)

// Importer 관리자 API에서 사용하는 카탈로그 수집기
type Importer interface {
	Run(ctx context.Context) ([]importer.Result, error)
	RunSource(ctx context.Context, id string) (importer.Result, error)
}

// Dependencies Handler가 사용하는 서비스 묶음입니다. Importer는 선택 사항입니다.
type Dependencies struct {
	Store      store.Store
	Comparison *comparison.Service
	Tracker    *tracker.Service
	Advisor    *advisor.Service
	Importer   Importer
}

// Handler v1 API 요청을 처리하고 도메인 서비스를 연결하는 핸들러입니다.
type Handler struct {
	products    store.ProductStore
	wishlist    store.WishlistStore
	comparisons store.ComparisonStore

	comparison *comparison.Service
	tracker    *tracker.Service
	advisor    *advisor.Service

	// importer 설정되지 않았으면 수집 API는 503을 반환한다
	importer Importer

	now func() time.Time
}

// NewHandler Handler 인스턴스를 생성합니다. 필수 의존성이 없으면 panic이 발생합니다.
func NewHandler(deps Dependencies) *Handler {
	if deps.Store == nil {
		panic(constants.PanicMsgStoreRequired)
	}
	if deps.Comparison == nil {
		panic(constants.PanicMsgComparisonServiceRequired)
	}
	if deps.Tracker == nil {
		panic(constants.PanicMsgTrackerServiceRequired)
	}
	if deps.Advisor == nil {
		panic(constants.PanicMsgAdvisorServiceRequired)
	}

	return &Handler{
		products:    deps.Store.Products(),
		wishlist:    deps.Store.Wishlist(),
		comparisons: deps.Store.Comparisons(),

		comparison: deps.Comparison,
		tracker:    deps.Tracker,
		advisor:    deps.Advisor,

		importer: deps.Importer,

		now: time.Now,
	}
}
