// Package importer 외부 쇼핑몰의 카테고리 목록 페이지를 수집하여 상품 저장소에 반영합니다.
package importer

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/darkkaiser/pricewise-server/internal/catalog"
	"github.com/darkkaiser/pricewise-server/internal/config"
	apperrors "github.com/darkkaiser/pricewise-server/internal/pkg/errors"
	"github.com/darkkaiser/pricewise-server/internal/pkg/metrics"
	"github.com/darkkaiser/pricewise-server/internal/store"
	applog "github.com/darkkaiser/pricewise-server/pkg/log"
	"github.com/darkkaiser/pricewise-server/pkg/strutil"
	"github.com/google/uuid"
	"golang.org/x/net/html/charset"
)

const component = "importer"

const (
	// maxBodyBytes 목록 페이지 응답 본문의 최대 크기 (10MB)
	maxBodyBytes = 10 * 1024 * 1024

	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// Result 하나의 수집 소스에 대한 실행 결과
type Result struct {
	Source   string `json:"source"`
	Found    int    `json:"found"`
	Imported int    `json:"imported"`
	Skipped  int    `json:"skipped"`
	Error    string `json:"error,omitempty"`
}

// Importer 설정된 수집 소스들을 순회하며 상품을 가져옵니다.
type Importer struct {
	sources  []config.ImportSource
	products store.ProductStore
	client   *http.Client

	// 수동 실행과 스케줄 실행이 겹치지 않도록 한다
	runMu sync.Mutex
}

// New 새로운 Importer 인스턴스를 생성합니다.
func New(cfg config.ImporterConfig, products store.ProductStore) *Importer {
	if products == nil {
		panic("ProductStore는 필수입니다")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Importer{
		sources:  cfg.Sources,
		products: products,
		client:   &http.Client{Timeout: timeout},
	}
}

// Sources 등록된 수집 소스 목록
func (i *Importer) Sources() []config.ImportSource {
	return i.sources
}

// Run 모든 소스를 순서대로 수집합니다. 한 소스의 실패는 나머지 소스의 수집을 막지 않습니다.
func (i *Importer) Run(ctx context.Context) ([]Result, error) {
	if !i.runMu.TryLock() {
		return nil, apperrors.New(apperrors.Conflict, "카탈로그 수집이 이미 진행 중입니다")
	}
	defer i.runMu.Unlock()

	results := make([]Result, 0, len(i.sources))
	var errs []error

	for _, src := range i.sources {
		if ctx.Err() != nil {
			errs = append(errs, ctx.Err())
			break
		}

		res, err := i.importSource(ctx, src)
		if err != nil {
			res.Error = err.Error()
			errs = append(errs, err)

			applog.WithComponentAndFields(component, applog.Fields{
				"source": src.ID,
				"url":    src.URL,
				"error":  err,
			}).Error("수집 실패: 소스 처리 중 오류가 발생했습니다")
		}
		results = append(results, res)
	}

	if len(errs) == 0 {
		return results, nil
	}
	return results, apperrors.Wrapf(errors.Join(errs...), apperrors.TypeOf(errs[0]), "%d개 소스의 수집에 실패했습니다", len(errs))
}

// RunSource ID로 지정한 하나의 소스만 수집합니다.
func (i *Importer) RunSource(ctx context.Context, id string) (Result, error) {
	for _, src := range i.sources {
		if src.ID != id {
			continue
		}

		if !i.runMu.TryLock() {
			return Result{Source: id}, apperrors.New(apperrors.Conflict, "카탈로그 수집이 이미 진행 중입니다")
		}
		defer i.runMu.Unlock()

		return i.importSource(ctx, src)
	}

	return Result{Source: id}, apperrors.Newf(apperrors.NotFound, "등록되지 않은 수집 소스입니다: %s", id)
}

func (i *Importer) importSource(ctx context.Context, src config.ImportSource) (Result, error) {
	res := Result{Source: src.ID}

	doc, err := i.fetch(ctx, src.URL)
	if err != nil {
		return res, err
	}

	products, skipped := parseProducts(doc, src)
	res.Found = len(products) + skipped
	res.Skipped = skipped

	for _, p := range products {
		if err := i.products.Upsert(ctx, p); err != nil {
			return res, apperrors.Wrapf(err, apperrors.System, "상품 저장에 실패했습니다 (id=%s)", p.ID)
		}
		res.Imported++
	}
	metrics.ImportedProductsTotal.WithLabelValues(src.ID).Add(float64(res.Imported))

	applog.WithComponentAndFields(component, applog.Fields{
		"source":   src.ID,
		"found":    res.Found,
		"imported": res.Imported,
		"skipped":  res.Skipped,
	}).Info("수집 완료")

	return res, nil
}

// fetch 목록 페이지를 내려받아 UTF-8로 변환한 뒤 goquery 문서로 파싱합니다.
func (i *Importer) fetch(ctx context.Context, rawURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, apperrors.Wrapf(err, apperrors.InvalidInput, "잘못된 수집 URL입니다: %s", rawURL)
	}
	req.Header.Set("User-Agent", defaultUserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := i.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, apperrors.Wrap(err, apperrors.Timeout, "목록 페이지 요청이 취소되었거나 시간이 초과되었습니다")
		}
		return nil, apperrors.Wrapf(err, apperrors.Unavailable, "목록 페이지 요청에 실패했습니다: %s", rawURL)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.Newf(apperrors.Unavailable, "목록 페이지 응답 상태가 올바르지 않습니다 (status=%d, url=%s)", resp.StatusCode, rawURL)
	}

	body := http.MaxBytesReader(nil, resp.Body, maxBodyBytes)

	doc, err := parseHTML(body, resp.Header.Get("Content-Type"))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, apperrors.Newf(apperrors.InvalidInput, "응답 본문이 허용 크기(%d bytes)를 초과했습니다", int64(maxBodyBytes))
		}
		return nil, apperrors.Wrap(err, apperrors.ParsingFailed, "HTML 파싱에 실패했습니다")
	}
	doc.Url = resp.Request.URL

	return doc, nil
}

// parseHTML 앞부분을 미리 읽어 문자 인코딩을 판별한 뒤, 판별된 인코딩으로 디코딩하면서 파싱합니다.
func parseHTML(r io.Reader, contentType string) (*goquery.Document, error) {
	br := bufio.NewReader(r)

	const peekSize = 1024
	head, _ := br.Peek(peekSize)

	var utf8Reader io.Reader = br
	if e, _, _ := charset.DetermineEncoding(head, contentType); e != nil {
		utf8Reader = e.NewDecoder().Reader(br)
	}

	return goquery.NewDocumentFromReader(utf8Reader)
}

// parseProducts 상품 카드마다 하나의 Product를 만든다. 제목이나 가격을 읽을 수 없는 카드는 건너뛴다.
func parseProducts(doc *goquery.Document, src config.ImportSource) ([]*catalog.Product, int) {
	sel := src.Selectors

	var products []*catalog.Product
	skipped := 0
	seen := make(map[string]struct{})

	doc.Find(sel.Item).Each(func(n int, card *goquery.Selection) {
		title := text(card, sel.Title)
		if title == "" {
			skipped++
			return
		}

		price, err := ParsePrice(text(card, sel.Price))
		if err != nil {
			applog.WithComponentAndFields(component, applog.Fields{
				"source": src.ID,
				"index":  n,
				"title":  title,
				"error":  err,
			}).Debug("가격을 읽을 수 없는 상품 카드를 건너뜁니다")
			skipped++
			return
		}

		p := &catalog.Product{
			Title:    title,
			Brand:    src.Brand,
			Category: src.Category,
			Price:    catalog.Float(price),
		}

		if sel.Brand != "" {
			if brand := text(card, sel.Brand); brand != "" {
				p.Brand = brand
			}
		}

		if sel.OriginalPrice != "" {
			if original, err := ParsePrice(text(card, sel.OriginalPrice)); err == nil && original > price {
				p.OriginalPrice = catalog.Float(original)
				p.IsDiscounted = true
			}
		}

		if sel.Link != "" {
			p.ProductURL = resolve(doc.Url, attr(card, sel.Link, "href"))
		}
		if sel.Image != "" {
			img := attr(card, sel.Image, "src")
			if img == "" || strings.HasPrefix(img, "data:") {
				img = attr(card, sel.Image, "data-src")
			}
			p.ImageURL = resolve(doc.Url, img)
		}

		p.ID = productID(src, p)
		if _, dup := seen[p.ID]; dup {
			skipped++
			return
		}
		seen[p.ID] = struct{}{}

		products = append(products, p)
	})

	return products, skipped
}

// productID 같은 상품이 다시 수집되어도 같은 ID를 갖도록 상품 URL(없으면 소스와 제목)에서 이름 기반 UUID를 만든다.
func productID(src config.ImportSource, p *catalog.Product) string {
	name := p.ProductURL
	if name == "" {
		name = fmt.Sprintf("%s#%s", src.URL, strutil.Fold(p.Title))
	}
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(name)).String()
}

func text(card *goquery.Selection, selector string) string {
	if selector == "" {
		return ""
	}
	return strutil.NormalizeSpaces(card.Find(selector).First().Text())
}

func attr(card *goquery.Selection, selector, name string) string {
	s := card.Find(selector).First()
	if s.Length() == 0 && card.Is(selector) {
		s = card
	}
	v, _ := s.Attr(name)
	return strings.TrimSpace(v)
}

func resolve(base *url.URL, ref string) string {
	if ref == "" {
		return ""
	}
	u, err := url.Parse(ref)
	if err != nil {
		return ""
	}
	if base == nil {
		return u.String()
	}
	return base.ResolveReference(u).String()
}
