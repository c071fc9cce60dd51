package importer

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/darkkaiser/pricewise-server/internal/catalog"
	"github.com/darkkaiser/pricewise-server/internal/config"
	apperrors "github.com/darkkaiser/pricewise-server/internal/pkg/errors"
	"github.com/darkkaiser/pricewise-server/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/korean"
)

const listingHTML = `<!DOCTYPE html>
<html><head><title>Men</title></head>
<body>
<div class="grid">
  <div class="card">
    <a class="link" href="/p/crew-tee">
      <img class="thumb" src="data:image/gif;base64,R0lGOD" data-src="/img/crew.jpg">
    </a>
    <h3 class="title">  Crew   T-Shirt </h3>
    <span class="brand">Outfitters</span>
    <span class="price">Rs. 1,299</span>
    <del class="was">Rs. 1,999</del>
  </div>
  <div class="card">
    <a class="link" href="https://cdn.example.com/p/polo"><img class="thumb" src="https://cdn.example.com/polo.jpg"></a>
    <h3 class="title">Polo Shirt</h3>
    <span class="price">PKR 2,450.50</span>
  </div>
  <div class="card">
    <h3 class="title">No Price Jacket</h3>
    <span class="price">Sold out</span>
  </div>
  <div class="card">
    <span class="price">Rs. 500</span>
  </div>
</div>
</body></html>`

type recordingProducts struct {
	store.ProductStore

	mu    sync.Mutex
	saved []*catalog.Product
	err   error
}

func (r *recordingProducts) Upsert(_ context.Context, p *catalog.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.err != nil {
		return r.err
	}
	r.saved = append(r.saved, p)
	return nil
}

func testSource(id, url string) config.ImportSource {
	return config.ImportSource{
		ID:       id,
		URL:      url,
		Category: "Men",
		Brand:    "House",
		Selectors: config.ImportSelectors{
			Item:          ".card",
			Title:         ".title",
			Brand:         ".brand",
			Price:         ".price",
			OriginalPrice: ".was",
			Link:          "a.link",
			Image:         "img.thumb",
		},
	}
}

func TestParsePrice(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      string
		want    float64
		wantErr bool
	}{
		{"Rs 표기와 천 단위 구분자", "Rs. 1,299", 1299, false},
		{"소수점 포함", "PKR 2,450.50", 2450.5, false},
		{"통화 기호 뒤 공백 없음", "₨999", 999, false},
		{"앞뒤 공백", "  750  ", 750, false},
		{"숫자 없음", "Sold out", 0, true},
		{"빈 문자열", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParsePrice(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperrors.Is(err, apperrors.ParsingFailed))
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestImporter_Run(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(listingHTML))
	}))
	defer srv.Close()

	products := &recordingProducts{}
	imp := New(config.ImporterConfig{Sources: []config.ImportSource{testSource("men", srv.URL+"/men")}}, products)

	results, err := imp.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 1)

	assert.Equal(t, Result{Source: "men", Found: 4, Imported: 2, Skipped: 2}, results[0])
	require.Len(t, products.saved, 2)

	tee := products.saved[0]
	assert.Equal(t, "Crew T-Shirt", tee.Title)
	assert.Equal(t, "Outfitters", tee.Brand)
	assert.Equal(t, "Men", tee.Category)
	assert.Equal(t, 1299.0, *tee.Price)
	assert.Equal(t, 1999.0, *tee.OriginalPrice)
	assert.True(t, tee.IsDiscounted)
	assert.Equal(t, srv.URL+"/p/crew-tee", tee.ProductURL)
	assert.Equal(t, srv.URL+"/img/crew.jpg", tee.ImageURL)

	polo := products.saved[1]
	assert.Equal(t, "House", polo.Brand, "브랜드 선택자가 비면 소스 기본 브랜드를 사용해야 합니다")
	assert.Equal(t, 2450.5, *polo.Price)
	assert.Nil(t, polo.OriginalPrice)
	assert.Equal(t, "https://cdn.example.com/p/polo", polo.ProductURL)

	t.Run("재수집 시 동일한 ID", func(t *testing.T) {
		again := &recordingProducts{}
		imp2 := New(config.ImporterConfig{Sources: []config.ImportSource{testSource("men", srv.URL+"/men")}}, again)

		_, err := imp2.Run(context.Background())
		require.NoError(t, err)
		require.Len(t, again.saved, 2)
		assert.Equal(t, tee.ID, again.saved[0].ID)
		assert.Equal(t, polo.ID, again.saved[1].ID)
	})
}

func TestImporter_EUCKR(t *testing.T) {
	t.Parallel()

	page := `<html><body><div class="card"><h3 class="title">반팔 티셔츠</h3><span class="price">15,900원</span></div></body></html>`
	encoded, err := korean.EUCKR.NewEncoder().String(page)
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=euc-kr")
		_, _ = w.Write([]byte(encoded))
	}))
	defer srv.Close()

	products := &recordingProducts{}
	src := testSource("kr", srv.URL)
	imp := New(config.ImporterConfig{Sources: []config.ImportSource{src}}, products)

	res, err := imp.RunSource(context.Background(), "kr")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Imported)
	require.Len(t, products.saved, 1)
	assert.Equal(t, "반팔 티셔츠", products.saved[0].Title)
	assert.Equal(t, 15900.0, *products.saved[0].Price)
}

func TestImporter_Errors(t *testing.T) {
	t.Parallel()

	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer failing.Close()

	ok := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(listingHTML))
	}))
	defer ok.Close()

	t.Run("한 소스 실패가 다른 소스를 막지 않음", func(t *testing.T) {
		products := &recordingProducts{}
		imp := New(config.ImporterConfig{Sources: []config.ImportSource{
			testSource("bad", failing.URL),
			testSource("good", ok.URL),
		}}, products)

		results, err := imp.Run(context.Background())
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.Unavailable))
		require.Len(t, results, 2)
		assert.NotEmpty(t, results[0].Error)
		assert.Equal(t, 2, results[1].Imported)
	})

	t.Run("저장 실패", func(t *testing.T) {
		products := &recordingProducts{err: errors.New("disk full")}
		imp := New(config.ImporterConfig{Sources: []config.ImportSource{testSource("good", ok.URL)}}, products)

		results, err := imp.Run(context.Background())
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.System))
		assert.Equal(t, 0, results[0].Imported)
	})

	t.Run("등록되지 않은 소스", func(t *testing.T) {
		imp := New(config.ImporterConfig{}, &recordingProducts{})

		_, err := imp.RunSource(context.Background(), "missing")
		assert.True(t, apperrors.Is(err, apperrors.NotFound))
	})

	t.Run("ProductStore 누락 시 panic", func(t *testing.T) {
		assert.PanicsWithValue(t, "ProductStore는 필수입니다", func() {
			New(config.ImporterConfig{}, nil)
		})
	})
}
