package postgres

import (
	"strings"
	"testing"

	"github.com/darkkaiser/pricewise-server/internal/catalog"
	"github.com/stretchr/testify/assert"
)

func TestSortColumn(t *testing.T) {
	t.Parallel()

	tests := []struct {
		field catalog.SortField
		want  string
	}{
		{"", "price"},
		{catalog.SortByPrice, "price"},
		{catalog.SortByName, "title"},
		{catalog.SortByRating, "rating"},
		{catalog.SortByCreatedAt, "created_at"},
	}

	for _, tt := range tests {
		t.Run(string(tt.field), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, sortColumn(tt.field))
		})
	}
}

func TestEscapeLike(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "%t-shirt%", escapeLike("t-shirt"))
	assert.Equal(t, `%50\%\_off\\%`, escapeLike(`50%_off\`))
}

func TestBuildSearchQuery(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		filter       catalog.Filter
		wantContains []string
		wantMissing  []string
		wantArgs     []any
	}{
		{
			name:         "조건 없음",
			filter:       catalog.Filter{},
			wantContains: []string{"FROM products ORDER BY price ASC NULLS LAST, created_at ASC, id ASC"},
			wantMissing:  []string{"WHERE", "LIMIT"},
			wantArgs:     nil,
		},
		{
			name:   "문자열 조건과 가격 범위",
			filter: catalog.Filter{Category: "men", Brand: "Out", Search: "navy", MinPrice: catalog.Float(100), MaxPrice: catalog.Float(2000), Limit: 50},
			wantContains: []string{
				"WHERE (category ILIKE $1 OR product_type ILIKE $1)",
				"AND brand ILIKE $2",
				"AND (title ILIKE $3 OR brand ILIKE $3 OR primary_color ILIKE $3 OR material_type ILIKE $3)",
				"AND price >= $4 AND price <= $5",
				"LIMIT $6",
			},
			wantArgs: []any{"%men%", "%Out%", "%navy%", 100.0, 2000.0, 50},
		},
		{
			name:         "핏 조건",
			filter:       catalog.Filter{Fit: "slim"},
			wantContains: []string{"WHERE fit_type ILIKE $1"},
			wantArgs:     []any{"%slim%"},
		},
		{
			name:         "이름 내림차순",
			filter:       catalog.Filter{SortBy: catalog.SortByName, Descending: true},
			wantContains: []string{"ORDER BY LOWER(title) DESC, created_at ASC"},
			wantMissing:  []string{"NULLS LAST"},
		},
		{
			name:         "가격 내림차순에서도 가격 없는 상품은 마지막",
			filter:       catalog.Filter{SortBy: catalog.SortByPrice, Descending: true},
			wantContains: []string{"ORDER BY price DESC NULLS LAST"},
		},
		{
			name:         "등록일순",
			filter:       catalog.Filter{SortBy: catalog.SortByCreatedAt},
			wantContains: []string{"ORDER BY created_at ASC, created_at ASC, id ASC"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			query, args := buildSearchQuery(tt.filter)
			normalized := strings.Join(strings.Fields(query), " ")

			for _, want := range tt.wantContains {
				assert.Contains(t, normalized, want)
			}
			for _, missing := range tt.wantMissing {
				assert.NotContains(t, normalized, missing)
			}
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}
