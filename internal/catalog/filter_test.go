package catalog

import (
	"math"
	"testing"
	"time"

	apperrors "github.com/darkkaiser/pricewise-server/internal/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleProducts() []*Product {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return []*Product{
		{ID: "1", Title: "Crew T-Shirt", Brand: "Outfitters", Category: "men-t-shirts", PrimaryColor: "Navy", MaterialType: "Cotton", FitType: "Regular", Price: Float(1299), Rating: 4.1, CreatedAt: base},
		{ID: "2", Title: "Slim Chino", Brand: "Breakout", Category: "men-trousers", PrimaryColor: "Beige", FitType: "Slim Fit", Price: Float(2499), Rating: 4.6, CreatedAt: base.Add(time.Hour)},
		{ID: "3", Title: "Crew T-Shirt", Brand: "Cougar", Category: "men-t-shirts", PrimaryColor: "White", Price: Float(999), Rating: 3.9, CreatedAt: base.Add(2 * time.Hour)},
		{ID: "4", Title: "Denim Jacket", Brand: "Outfitters", Category: "women-jacket", MaterialType: "Denim", Rating: 4.8, CreatedAt: base.Add(3 * time.Hour)},
	}
}

func ids(products []*Product) []string {
	result := make([]string, 0, len(products))
	for _, p := range products {
		result = append(result, p.ID)
	}
	return result
}

func TestFilter_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		filter  Filter
		wantErr bool
	}{
		{"빈 조건", Filter{}, false},
		{"정상 범위", Filter{MinPrice: Float(100), MaxPrice: Float(200)}, false},
		{"같은 값 범위", Filter{MinPrice: Float(100), MaxPrice: Float(100)}, false},
		{"최소가 최대보다 큼", Filter{MinPrice: Float(300), MaxPrice: Float(200)}, true},
		{"음수 최소", Filter{MinPrice: Float(-1)}, true},
		{"음수 최대", Filter{MaxPrice: Float(-1)}, true},
		{"음수 개수", Filter{Limit: -1}, true},
		{"NaN 최소", Filter{MinPrice: Float(math.NaN()), MaxPrice: Float(10)}, true},
		{"NaN 최대", Filter{MaxPrice: Float(math.NaN())}, true},
		{"무한대 최대", Filter{MinPrice: Float(0), MaxPrice: Float(math.Inf(1))}, true},
		{"음의 무한대 최소", Filter{MinPrice: Float(math.Inf(-1))}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.filter.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperrors.Is(err, apperrors.InvalidInput))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFilter_Apply(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"조건 없음 - 가격 오름차순, 가격 없는 상품은 뒤로", Filter{}, []string{"3", "1", "2", "4"}},
		{"카테고리 부분 일치", Filter{Category: "T-SHIRTS"}, []string{"3", "1"}},
		{"브랜드 대소문자 무시", Filter{Brand: "outfit"}, []string{"1", "4"}},
		{"핏 부분 일치", Filter{Fit: "slim"}, []string{"2"}},
		{"검색어 - 색상", Filter{Search: "navy"}, []string{"1"}},
		{"검색어 - 소재", Filter{Search: "denim"}, []string{"4"}},
		{"가격 범위 양 끝 포함", Filter{MinPrice: Float(999), MaxPrice: Float(1299)}, []string{"3", "1"}},
		{"가격 범위 지정 시 가격 없는 상품 제외", Filter{MinPrice: Float(0)}, []string{"3", "1", "2"}},
		{"개수 제한", Filter{Limit: 2}, []string{"3", "1"}},
		{"평점 내림차순", Filter{SortBy: SortByRating, Descending: true}, []string{"4", "2", "1", "3"}},
		{"이름순", Filter{SortBy: SortByName}, []string{"1", "3", "4", "2"}},
		{"등록일 내림차순", Filter{SortBy: SortByCreatedAt, Descending: true}, []string{"4", "3", "2", "1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, ids(tt.filter.Apply(sampleProducts())))
		})
	}
}

func TestParseSortField(t *testing.T) {
	t.Parallel()

	f, err := ParseSortField("")
	require.NoError(t, err)
	assert.Equal(t, SortByPrice, f)

	f, err = ParseSortField("createdAt")
	require.NoError(t, err)
	assert.Equal(t, SortByCreatedAt, f)

	_, err = ParseSortField("popularity")
	assert.True(t, apperrors.Is(err, apperrors.InvalidInput))
}
