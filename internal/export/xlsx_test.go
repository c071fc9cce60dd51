package export

import (
	"bytes"
	"context"
	"testing"

	"github.com/darkkaiser/pricewise-server/internal/catalog"
	"github.com/darkkaiser/pricewise-server/internal/comparison"
	apperrors "github.com/darkkaiser/pricewise-server/internal/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type staticSource []*catalog.Product

func (s staticSource) FindProducts(context.Context, catalog.Filter) ([]*catalog.Product, error) {
	return s, nil
}

func compare(t *testing.T, products ...*catalog.Product) *comparison.Result {
	t.Helper()

	svc := comparison.NewService(staticSource(products), comparison.DefaultOptions())
	res, err := svc.Compare(context.Background(), comparison.Criteria{})
	require.NoError(t, err)
	return res
}

func readRows(t *testing.T, buf *bytes.Buffer, sheet string) [][]string {
	t.Helper()

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetGroups, SheetStats}, f.GetSheetList())

	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	return rows
}

func TestWriteComparison(t *testing.T) {
	t.Parallel()

	res := compare(t,
		&catalog.Product{ID: "1", Title: "Crew T-Shirt", Brand: "A", Category: "Men", Price: catalog.Float(600)},
		&catalog.Product{ID: "2", Title: "Crew T-Shirt", Brand: "B", Category: "Men", Price: catalog.Float(650)},
		&catalog.Product{ID: "3", Title: "Crew T-Shirt", Brand: "A", Category: "Men", Price: catalog.Float(520)},
	)

	var buf bytes.Buffer
	require.NoError(t, WriteComparison(&buf, res))

	groups := readRows(t, &buf, SheetGroups)
	require.Len(t, groups, 3, "헤더 + 브랜드별 오퍼 2행")
	assert.Equal(t, "Group", groups[0][0])
	assert.Equal(t, []string{"men_crew t-shirt", "Crew T-Shirt", "Men", "A", "520"}, groups[1][:5])
	assert.Equal(t, "TRUE", groups[1][9])
	assert.Equal(t, "B", groups[2][3])
	assert.Equal(t, "FALSE", groups[2][9])
	assert.Equal(t, "130", groups[2][12])

	stats := readRows(t, &buf, SheetStats)
	assert.Equal(t, []string{"Total Products", "3"}, stats[1])
	assert.Equal(t, []string{"Savings Opportunities", "1"}, stats[6])
	assert.Equal(t, []string{"Best Savings", "130"}, stats[7])
}

func TestWriteComparison_NoPricedProducts(t *testing.T) {
	t.Parallel()

	res := compare(t)
	require.Nil(t, res.Stats)

	var buf bytes.Buffer
	require.NoError(t, WriteComparison(&buf, res))

	assert.Len(t, readRows(t, &buf, SheetGroups), 1)
	stats := readRows(t, &buf, SheetStats)
	assert.Equal(t, []string{"Status", "No priced products"}, stats[1])
}

func TestWriteComparison_Nil(t *testing.T) {
	t.Parallel()

	err := WriteComparison(&bytes.Buffer{}, nil)
	assert.True(t, apperrors.Is(err, apperrors.InvalidInput))
}
