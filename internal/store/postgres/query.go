package postgres

import (
	"strconv"
	"strings"

	"github.com/darkkaiser/pricewise-server/internal/catalog"
	"github.com/iancoleman/strcase"
)

const productColumns = `id, title, brand, category, product_type, fit_type, material_type, primary_color, description,
	price, original_price, discount_percent, is_discounted, image_url, product_url, availability, stock_quantity,
	rating, tags, created_at, updated_at`

// effectiveDiscountExpr 저장된 할인율이 없으면 정가와 판매가로 계산한다.
const effectiveDiscountExpr = `COALESCE(discount_percent,
	CASE WHEN original_price > price AND original_price > 0 THEN (original_price - price) / original_price * 100 ELSE 0 END)`

// sortColumnOverrides 정렬 기준 이름과 컬럼명이 다른 경우
var sortColumnOverrides = map[catalog.SortField]string{
	catalog.SortByName: "title",
}

// sortColumn 정렬 기준을 컬럼명으로 변환합니다. (createdAt -> created_at)
func sortColumn(field catalog.SortField) string {
	if field == "" {
		field = catalog.SortByPrice
	}
	if column, ok := sortColumnOverrides[field]; ok {
		return column
	}
	return strcase.ToSnake(string(field))
}

// queryBuilder 위치 인자($1, $2, ...)를 순서대로 발급하며 WHERE 절을 조립합니다.
type queryBuilder struct {
	conditions []string
	args       []any
}

func (b *queryBuilder) arg(v any) string {
	b.args = append(b.args, v)
	return "$" + strconv.Itoa(len(b.args))
}

func (b *queryBuilder) where(cond string) {
	b.conditions = append(b.conditions, cond)
}

func (b *queryBuilder) whereClause() string {
	if len(b.conditions) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(b.conditions, " AND ")
}

// escapeLike LIKE 패턴의 특수 문자를 이스케이프하고 부분 일치 패턴으로 만듭니다.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}

// buildSearchQuery 필터 조건으로 상품 조회 쿼리와 인자를 만듭니다.
//
// 메모리 구현과 같은 의미를 유지합니다. 문자열 조건은 대소문자를 구분하지 않는 부분 일치이며,
// 가격 조건이 있으면 가격이 없는 상품은 제외되고, 가격순 정렬에서는 가격이 없는 상품이 항상 마지막입니다.
func buildSearchQuery(f catalog.Filter) (string, []any) {
	b := &queryBuilder{}

	if f.Category != "" {
		p := b.arg(escapeLike(f.Category))
		b.where("(category ILIKE " + p + " OR product_type ILIKE " + p + ")")
	}
	if f.Brand != "" {
		b.where("brand ILIKE " + b.arg(escapeLike(f.Brand)))
	}
	if f.Fit != "" {
		b.where("fit_type ILIKE " + b.arg(escapeLike(f.Fit)))
	}
	if f.Search != "" {
		p := b.arg(escapeLike(f.Search))
		b.where("(title ILIKE " + p + " OR brand ILIKE " + p + " OR primary_color ILIKE " + p + " OR material_type ILIKE " + p + ")")
	}
	if f.MinPrice != nil {
		b.where("price >= " + b.arg(*f.MinPrice))
	}
	if f.MaxPrice != nil {
		b.where("price <= " + b.arg(*f.MaxPrice))
	}

	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(productColumns)
	sb.WriteString(" FROM products")
	sb.WriteString(b.whereClause())
	sb.WriteString(" ORDER BY ")

	column := sortColumn(f.SortBy)
	if column == "title" {
		column = "LOWER(title)"
	}
	sb.WriteString(column)
	if f.Descending {
		sb.WriteString(" DESC")
	} else {
		sb.WriteString(" ASC")
	}
	if column == "price" {
		sb.WriteString(" NULLS LAST")
	}
	sb.WriteString(", created_at ASC, id ASC")

	if f.Limit > 0 {
		sb.WriteString(" LIMIT ")
		sb.WriteString(b.arg(f.Limit))
	}

	return sb.String(), b.args
}
