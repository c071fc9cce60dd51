// Package postgres PostgreSQL을 사용하는 store 구현체입니다.
package postgres

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"time"

	apperrors "github.com/darkkaiser/pricewise-server/internal/pkg/errors"
	"github.com/darkkaiser/pricewise-server/internal/store"
	applog "github.com/darkkaiser/pricewise-server/pkg/log"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

const component = "store.postgres"

// uniqueViolation PostgreSQL unique_violation 에러 코드
const uniqueViolation = "23505"

//go:embed schema.sql
var schema string

// Options 커넥션 풀 설정
type Options struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Store store.Store의 PostgreSQL 구현체
type Store struct {
	db *sql.DB

	products     *productStore
	wishlist     *wishlistStore
	tracker      *trackerStore
	predictions  *predictionStore
	priceHistory *priceHistoryStore
	comparisons  *comparisonStore
}

// 컴파일 타임 인터페이스 구현 검증
var _ store.Store = (*Store)(nil)

// Open 데이터베이스에 연결하고 스키마를 적용합니다.
func Open(ctx context.Context, dsn string, opts Options) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "데이터베이스 연결 정보를 해석할 수 없습니다")
	}

	if opts.MaxOpenConns > 0 {
		db.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.MaxIdleConns > 0 {
		db.SetMaxIdleConns(opts.MaxIdleConns)
	}
	if opts.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(opts.ConnMaxLifetime)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, apperrors.Wrap(err, apperrors.System, "데이터베이스에 연결할 수 없습니다")
	}

	s := New(db)
	if err := s.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	applog.WithComponentAndFields(component, applog.Fields{
		"max_open_conns": opts.MaxOpenConns,
		"max_idle_conns": opts.MaxIdleConns,
	}).Info("PostgreSQL 저장소 연결 완료")

	return s, nil
}

// New 이미 연결된 *sql.DB로 Store를 생성합니다.
func New(db *sql.DB) *Store {
	if db == nil {
		panic("*sql.DB는 필수입니다")
	}

	return &Store{
		db:           db,
		products:     &productStore{db: db},
		wishlist:     &wishlistStore{db: db},
		tracker:      &trackerStore{db: db},
		predictions:  &predictionStore{db: db},
		priceHistory: &priceHistoryStore{db: db},
		comparisons:  &comparisonStore{db: db},
	}
}

// Migrate 스키마를 생성합니다. 여러 번 실행해도 안전합니다.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return apperrors.Wrap(err, apperrors.System, "데이터베이스 스키마 적용에 실패했습니다")
	}
	return nil
}

func (s *Store) Products() store.ProductStore          { return s.products }
func (s *Store) Wishlist() store.WishlistStore         { return s.wishlist }
func (s *Store) Tracker() store.TrackerStore           { return s.tracker }
func (s *Store) Predictions() store.PredictionStore    { return s.predictions }
func (s *Store) PriceHistory() store.PriceHistoryStore { return s.priceHistory }
func (s *Store) Comparisons() store.ComparisonStore    { return s.comparisons }

// Health 데이터베이스 연결을 확인합니다.
func (s *Store) Health(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return apperrors.Wrap(err, apperrors.Unavailable, "데이터베이스에 연결할 수 없습니다")
	}
	return nil
}

// Close 커넥션 풀을 닫습니다.
func (s *Store) Close() error {
	return s.db.Close()
}

func newID() string {
	return uuid.NewString()
}

// isUniqueViolation 유니크 제약 위반인지 확인합니다.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

// wrapQueryErr 쿼리 에러를 System 에러로 감쌉니다.
func wrapQueryErr(err error, op string) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return apperrors.Wrapf(err, apperrors.Timeout, "%s 작업이 시간 내에 완료되지 않았습니다", op)
	}
	return apperrors.Wrapf(err, apperrors.System, "%s 작업 중 데이터베이스 오류가 발생했습니다", op)
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func nullTime(v *time.Time) sql.NullTime {
	if v == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *v, Valid: true}
}

func timePtr(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	t := v.Time
	return &t
}
