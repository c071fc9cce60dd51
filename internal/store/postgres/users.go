package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	apperrors "github.com/darkkaiser/pricewise-server/internal/pkg/errors"
	"github.com/darkkaiser/pricewise-server/internal/prediction"
	"github.com/darkkaiser/pricewise-server/internal/store"
	"github.com/goccy/go-json"
	"github.com/lib/pq"
)

type wishlistStore struct {
	db *sql.DB
}

func (s *wishlistStore) List(ctx context.Context, userID string) ([]*store.WishlistItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, product_id, track_price, target_price, added_at
		FROM wishlist_items WHERE user_id = $1 ORDER BY added_at ASC, id ASC`, userID)
	if err != nil {
		return nil, wrapQueryErr(err, "위시리스트 조회")
	}
	defer rows.Close()

	items := []*store.WishlistItem{}
	for rows.Next() {
		var (
			item        store.WishlistItem
			targetPrice sql.NullFloat64
		)
		if err := rows.Scan(&item.ID, &item.UserID, &item.ProductID, &item.TrackPrice, &targetPrice, &item.AddedAt); err != nil {
			return nil, wrapQueryErr(err, "위시리스트 조회")
		}
		item.TargetPrice = floatPtr(targetPrice)
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapQueryErr(err, "위시리스트 조회")
	}

	return items, nil
}

func (s *wishlistStore) Add(ctx context.Context, item *store.WishlistItem) error {
	if item.ID == "" {
		item.ID = newID()
	}
	if item.AddedAt.IsZero() {
		item.AddedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO wishlist_items (id, user_id, product_id, track_price, target_price, added_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		item.ID, item.UserID, item.ProductID, item.TrackPrice, nullFloat(item.TargetPrice), item.AddedAt)
	if isUniqueViolation(err) {
		return store.NewErrAlreadyInWishlist(item.ProductID)
	}
	if err != nil {
		return wrapQueryErr(err, "위시리스트 추가")
	}
	return nil
}

func (s *wishlistStore) Remove(ctx context.Context, userID, productID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM wishlist_items WHERE user_id = $1 AND product_id = $2`, userID, productID)
	if err != nil {
		return wrapQueryErr(err, "위시리스트 삭제")
	}
	return requireAffected(res, store.NewErrNotInWishlist(productID))
}

func (s *wishlistStore) SetTracking(ctx context.Context, userID, productID string, track bool) error {
	res, err := s.db.ExecContext(ctx, `UPDATE wishlist_items SET track_price = $3 WHERE user_id = $1 AND product_id = $2`, userID, productID, track)
	if err != nil {
		return wrapQueryErr(err, "위시리스트 가격 추적 설정")
	}
	return requireAffected(res, store.NewErrNotInWishlist(productID))
}

// requireAffected 변경된 행이 없으면 notFound를 반환합니다.
func requireAffected(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, apperrors.System, "변경된 행 수를 확인할 수 없습니다")
	}
	if n == 0 {
		return notFound
	}
	return nil
}

type trackerStore struct {
	db *sql.DB
}

const trackedColumns = `id, user_id, product_id, product_name, image_url, last_price, target_price, last_checked, last_notified, created_at`

func (s *trackerStore) Track(ctx context.Context, t *store.TrackedProduct) error {
	now := time.Now()
	if t.ID == "" {
		t.ID = newID()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	if t.LastChecked.IsZero() {
		t.LastChecked = now
	}

	_, err := s.db.ExecContext(ctx, `INSERT INTO tracked_products (`+trackedColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		t.ID, t.UserID, t.ProductID, t.ProductName, t.ImageURL, t.LastPrice, nullFloat(t.TargetPrice),
		t.LastChecked, nullTime(t.LastNotified), t.CreatedAt)
	if isUniqueViolation(err) {
		return store.NewErrAlreadyTracked(t.ProductID)
	}
	if err != nil {
		return wrapQueryErr(err, "가격 추적 등록")
	}
	return nil
}

func (s *trackerStore) Untrack(ctx context.Context, userID, productID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tracked_products WHERE user_id = $1 AND product_id = $2`, userID, productID)
	if err != nil {
		return wrapQueryErr(err, "가격 추적 해제")
	}
	return requireAffected(res, store.NewErrNotTracked(productID))
}

func (s *trackerStore) List(ctx context.Context, userID string) ([]*store.TrackedProduct, error) {
	return s.list(ctx, `SELECT `+trackedColumns+` FROM tracked_products WHERE user_id = $1 ORDER BY created_at ASC, id ASC`, userID)
}

func (s *trackerStore) ListAll(ctx context.Context) ([]*store.TrackedProduct, error) {
	return s.list(ctx, `SELECT `+trackedColumns+` FROM tracked_products ORDER BY created_at ASC, id ASC`)
}

func (s *trackerStore) list(ctx context.Context, query string, args ...any) ([]*store.TrackedProduct, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapQueryErr(err, "가격 추적 목록 조회")
	}
	defer rows.Close()

	items := []*store.TrackedProduct{}
	for rows.Next() {
		var (
			t            store.TrackedProduct
			targetPrice  sql.NullFloat64
			lastNotified sql.NullTime
		)
		if err := rows.Scan(&t.ID, &t.UserID, &t.ProductID, &t.ProductName, &t.ImageURL, &t.LastPrice, &targetPrice,
			&t.LastChecked, &lastNotified, &t.CreatedAt); err != nil {
			return nil, wrapQueryErr(err, "가격 추적 목록 조회")
		}
		t.TargetPrice = floatPtr(targetPrice)
		t.LastNotified = timePtr(lastNotified)
		items = append(items, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapQueryErr(err, "가격 추적 목록 조회")
	}

	return items, nil
}

func (s *trackerStore) UpdatePrice(ctx context.Context, id string, price float64, checkedAt time.Time, notifiedAt *time.Time) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE tracked_products
		SET last_price = $2, last_checked = $3, last_notified = COALESCE($4, last_notified)
		WHERE id = $1`, id, price, checkedAt, nullTime(notifiedAt))
	if err != nil {
		return wrapQueryErr(err, "추적 가격 갱신")
	}
	return requireAffected(res, store.NewErrTrackedNotFound(id))
}

// predictionStore 조회 조건에 쓰이는 필드만 컬럼으로 두고 나머지는 JSONB로 저장한다.
type predictionStore struct {
	db *sql.DB
}

func (s *predictionStore) Save(ctx context.Context, p *prediction.Prediction) error {
	if p.ID == "" {
		p.ID = newID()
	}

	payload, err := json.Marshal(p)
	if err != nil {
		return apperrors.Wrap(err, apperrors.Internal, "가격 예측을 직렬화할 수 없습니다")
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO price_predictions (id, user_id, product_id, status, target_date, payload)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET status = EXCLUDED.status, target_date = EXCLUDED.target_date, payload = EXCLUDED.payload`,
		p.ID, p.UserID, p.ProductID, string(p.Status), p.TargetDate, string(payload))
	if err != nil {
		return wrapQueryErr(err, "가격 예측 저장")
	}
	return nil
}

func (s *predictionStore) Get(ctx context.Context, id string) (*prediction.Prediction, error) {
	var (
		payload []byte
		status  string
	)
	err := s.db.QueryRowContext(ctx, `SELECT payload, status FROM price_predictions WHERE id = $1`, id).Scan(&payload, &status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.NewErrPredictionNotFound(id)
	}
	if err != nil {
		return nil, wrapQueryErr(err, "가격 예측 조회")
	}

	return decodePrediction(payload, status)
}

func decodePrediction(payload []byte, status string) (*prediction.Prediction, error) {
	var p prediction.Prediction
	if err := json.Unmarshal(payload, &p); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ParsingFailed, "저장된 가격 예측을 해석할 수 없습니다")
	}
	// 만료 처리는 컬럼만 갱신하므로 컬럼 값이 우선한다
	p.Status = prediction.Status(status)
	return &p, nil
}

func (s *predictionStore) ListActive(ctx context.Context, userID string, now time.Time) ([]*prediction.Prediction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT payload, status FROM price_predictions
		WHERE status = $1 AND target_date >= $2 AND ($3 = '' OR user_id = $3)
		ORDER BY target_date ASC, id ASC`, string(prediction.StatusActive), now, userID)
	if err != nil {
		return nil, wrapQueryErr(err, "진행 중 예측 조회")
	}
	defer rows.Close()

	var predictions []*prediction.Prediction
	for rows.Next() {
		var (
			payload []byte
			status  string
		)
		if err := rows.Scan(&payload, &status); err != nil {
			return nil, wrapQueryErr(err, "진행 중 예측 조회")
		}
		p, err := decodePrediction(payload, status)
		if err != nil {
			return nil, err
		}
		predictions = append(predictions, p)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapQueryErr(err, "진행 중 예측 조회")
	}

	return predictions, nil
}

func (s *predictionStore) ExpireBefore(ctx context.Context, now time.Time) (int, error) {
	res, err := s.db.ExecContext(ctx, `UPDATE price_predictions SET status = $1 WHERE status = $2 AND target_date < $3`,
		string(prediction.StatusExpired), string(prediction.StatusActive), now)
	if err != nil {
		return 0, wrapQueryErr(err, "예측 만료 처리")
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(err, apperrors.System, "변경된 행 수를 확인할 수 없습니다")
	}
	return int(n), nil
}

type priceHistoryStore struct {
	db *sql.DB
}

func (s *priceHistoryStore) Append(ctx context.Context, e store.PriceHistoryEntry) error {
	if e.RecordedAt.IsZero() {
		e.RecordedAt = time.Now()
	}
	if e.Source == "" {
		e.Source = "website"
	}

	_, err := s.db.ExecContext(ctx, `INSERT INTO price_history (product_id, price, source, recorded_at) VALUES ($1, $2, $3, $4)`,
		e.ProductID, e.Price, e.Source, e.RecordedAt)
	if err != nil {
		return wrapQueryErr(err, "가격 이력 추가")
	}
	return nil
}

func (s *priceHistoryStore) Recent(ctx context.Context, productID string, limit int) ([]store.PriceHistoryEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT product_id, price, source, recorded_at FROM (
			SELECT id, product_id, price, source, recorded_at FROM price_history
			WHERE product_id = $1 ORDER BY recorded_at DESC, id DESC LIMIT $2
		) recent ORDER BY recorded_at ASC, id ASC`, productID, store.ClampLimit(limit, store.DefaultPriceHistoryLimit))
	if err != nil {
		return nil, wrapQueryErr(err, "가격 이력 조회")
	}
	defer rows.Close()

	entries := []store.PriceHistoryEntry{}
	for rows.Next() {
		var e store.PriceHistoryEntry
		if err := rows.Scan(&e.ProductID, &e.Price, &e.Source, &e.RecordedAt); err != nil {
			return nil, wrapQueryErr(err, "가격 이력 조회")
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapQueryErr(err, "가격 이력 조회")
	}

	return entries, nil
}

type comparisonStore struct {
	db *sql.DB
}

func (s *comparisonStore) Save(ctx context.Context, c *store.SavedComparison) error {
	if c.ID == "" {
		c.ID = newID()
	}
	if c.SavedAt.IsZero() {
		c.SavedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `INSERT INTO saved_comparisons (id, user_id, name, product_ids, saved_at) VALUES ($1, $2, $3, $4, $5)`,
		c.ID, c.UserID, c.Name, pq.Array(c.ProductIDs), c.SavedAt)
	if err != nil {
		return wrapQueryErr(err, "비교 저장")
	}
	return nil
}

func (s *comparisonStore) History(ctx context.Context, userID string, limit int) ([]*store.SavedComparison, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, name, product_ids, saved_at FROM saved_comparisons
		WHERE user_id = $1 ORDER BY saved_at DESC, id DESC LIMIT $2`, userID, store.ClampLimit(limit, store.DefaultComparisonHistoryLimit))
	if err != nil {
		return nil, wrapQueryErr(err, "저장된 비교 조회")
	}
	defer rows.Close()

	history := []*store.SavedComparison{}
	for rows.Next() {
		var c store.SavedComparison
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, pq.Array(&c.ProductIDs), &c.SavedAt); err != nil {
			return nil, wrapQueryErr(err, "저장된 비교 조회")
		}
		history = append(history, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapQueryErr(err, "저장된 비교 조회")
	}

	return history, nil
}
