package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/darkkaiser/pricewise-server/internal/catalog"
	"github.com/darkkaiser/pricewise-server/internal/store"
	"github.com/lib/pq"
)

type productStore struct {
	db *sql.DB
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*catalog.Product, error) {
	var (
		p                                     catalog.Product
		price, originalPrice, discountPercent sql.NullFloat64
		availability                          sql.NullBool
		stockQuantity                         sql.NullInt64
	)

	err := row.Scan(
		&p.ID, &p.Title, &p.Brand, &p.Category, &p.ProductType, &p.FitType, &p.MaterialType, &p.PrimaryColor, &p.Description,
		&price, &originalPrice, &discountPercent, &p.IsDiscounted, &p.ImageURL, &p.ProductURL, &availability, &stockQuantity,
		&p.Rating, pq.Array(&p.Tags), &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.Price = floatPtr(price)
	p.OriginalPrice = floatPtr(originalPrice)
	p.DiscountPercent = floatPtr(discountPercent)
	if availability.Valid {
		p.Availability = catalog.Bool(availability.Bool)
	}
	if stockQuantity.Valid {
		p.StockQuantity = catalog.Int(int(stockQuantity.Int64))
	}

	return &p, nil
}

func (s *productStore) query(ctx context.Context, op, query string, args ...any) ([]*catalog.Product, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapQueryErr(err, op)
	}
	defer rows.Close()

	var products []*catalog.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, wrapQueryErr(err, op)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapQueryErr(err, op)
	}

	return products, nil
}

func (s *productStore) FindProducts(ctx context.Context, filter catalog.Filter) ([]*catalog.Product, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	query, args := buildSearchQuery(filter)
	return s.query(ctx, "상품 검색", query, args...)
}

func (s *productStore) Get(ctx context.Context, id string) (*catalog.Product, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)

	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.NewErrProductNotFound(id)
	}
	if err != nil {
		return nil, wrapQueryErr(err, "상품 조회")
	}
	return p, nil
}

func (s *productStore) GetMany(ctx context.Context, ids []string) ([]*catalog.Product, error) {
	if len(ids) == 0 {
		return []*catalog.Product{}, nil
	}

	found, err := s.query(ctx, "상품 다건 조회", `SELECT `+productColumns+` FROM products WHERE id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*catalog.Product, len(found))
	for _, p := range found {
		byID[p.ID] = p
	}

	products := make([]*catalog.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			products = append(products, p)
		}
	}
	return products, nil
}

func (s *productStore) Upsert(ctx context.Context, p *catalog.Product) error {
	if p.ID == "" {
		p.ID = newID()
	}

	now := time.Now()
	createdAt := p.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}

	var stock sql.NullInt64
	if p.StockQuantity != nil {
		stock = sql.NullInt64{Int64: int64(*p.StockQuantity), Valid: true}
	}
	var availability sql.NullBool
	if p.Availability != nil {
		availability = sql.NullBool{Bool: *p.Availability, Valid: true}
	}
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}

	err := s.db.QueryRowContext(ctx, `
		INSERT INTO products (`+productColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title, brand = EXCLUDED.brand, category = EXCLUDED.category,
			product_type = EXCLUDED.product_type, fit_type = EXCLUDED.fit_type, material_type = EXCLUDED.material_type,
			primary_color = EXCLUDED.primary_color, description = EXCLUDED.description,
			price = EXCLUDED.price, original_price = EXCLUDED.original_price, discount_percent = EXCLUDED.discount_percent,
			is_discounted = EXCLUDED.is_discounted, image_url = EXCLUDED.image_url, product_url = EXCLUDED.product_url,
			availability = EXCLUDED.availability, stock_quantity = EXCLUDED.stock_quantity,
			rating = EXCLUDED.rating, tags = EXCLUDED.tags, updated_at = EXCLUDED.updated_at
		RETURNING created_at, updated_at`,
		p.ID, p.Title, p.Brand, p.Category, p.ProductType, p.FitType, p.MaterialType, p.PrimaryColor, p.Description,
		nullFloat(p.Price), nullFloat(p.OriginalPrice), nullFloat(p.DiscountPercent), p.IsDiscounted, p.ImageURL, p.ProductURL,
		availability, stock, p.Rating, pq.Array(tags), createdAt, now,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return wrapQueryErr(err, "상품 저장")
	}

	return nil
}

// inStockCondition catalog.Product.InStock과 같은 조건
const inStockCondition = `COALESCE(availability, TRUE) AND COALESCE(stock_quantity, 1) > 0`

func (s *productStore) Featured(ctx context.Context, limit int) ([]*catalog.Product, error) {
	return s.query(ctx, "추천 상품 조회", `
		SELECT `+productColumns+` FROM products
		WHERE `+inStockCondition+` AND (is_discounted OR original_price > price)
		ORDER BY `+effectiveDiscountExpr+` DESC, created_at ASC, id ASC
		LIMIT $1`, store.ClampLimit(limit, store.DefaultFeaturedLimit))
}

func (s *productStore) TopDiscounts(ctx context.Context, limit int) ([]*catalog.Product, error) {
	return s.query(ctx, "할인 상품 조회", `
		SELECT `+productColumns+` FROM products
		WHERE `+inStockCondition+` AND `+effectiveDiscountExpr+` > 0
		ORDER BY `+effectiveDiscountExpr+` DESC, created_at ASC, id ASC
		LIMIT $1`, store.ClampLimit(limit, store.DefaultTopDiscountsLimit))
}

func (s *productStore) SimilarTo(ctx context.Context, id string, limit int) ([]*catalog.Product, error) {
	base, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	return s.query(ctx, "유사 상품 조회", `
		SELECT `+productColumns+` FROM products
		WHERE LOWER(category) = LOWER($1) AND id <> $2
		ORDER BY price ASC NULLS LAST, created_at ASC, id ASC
		LIMIT $3`, base.Category, id, store.ClampLimit(limit, store.DefaultSimilarLimit))
}
