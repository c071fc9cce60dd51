// Package export 가격 비교 결과를 XLSX 보고서로 내보냅니다.
package export

import (
	"io"

	"github.com/darkkaiser/pricewise-server/internal/comparison"
	apperrors "github.com/darkkaiser/pricewise-server/internal/pkg/errors"
	"github.com/xuri/excelize/v2"
)

// 시트 이름
const (
	SheetGroups = "Groups"
	SheetStats  = "Stats"
)

// ContentType XLSX 응답의 MIME 타입
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var groupHeader = []any{
	"Group", "Title", "Category", "Brand", "Price", "Original Price", "Discount %",
	"Savings", "In Stock", "Best Price", "Group Min", "Group Max", "Spread", "Product URL",
}

// WriteComparison 비교 결과를 두 개의 시트로 구성된 통합 문서로 w에 씁니다.
//
//   - Groups: 그룹의 브랜드별 오퍼를 한 행씩 (그룹 순서, 브랜드 첫 등장 순서 유지)
//   - Stats: 집계 통계. 가격 정보가 하나도 없으면 통계 대신 안내 문구를 쓴다
func WriteComparison(w io.Writer, result *comparison.Result) error {
	if result == nil {
		return apperrors.New(apperrors.InvalidInput, "내보낼 비교 결과가 없습니다")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetGroups); err != nil {
		return wrap(err)
	}
	if _, err := f.NewSheet(SheetStats); err != nil {
		return wrap(err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0EBF5"}, Pattern: 1},
	})
	if err != nil {
		return wrap(err)
	}

	if err := writeGroups(f, result.Groups, headerStyle); err != nil {
		return wrap(err)
	}
	if err := writeStats(f, result, headerStyle); err != nil {
		return wrap(err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return apperrors.Wrap(err, apperrors.System, "XLSX 보고서 전송에 실패했습니다")
	}
	return nil
}

func writeGroups(f *excelize.File, groups []*comparison.ComparisonGroup, headerStyle int) error {
	if err := f.SetSheetRow(SheetGroups, "A1", &groupHeader); err != nil {
		return err
	}
	last, _ := excelize.CoordinatesToCellName(len(groupHeader), 1)
	if err := f.SetCellStyle(SheetGroups, "A1", last, headerStyle); err != nil {
		return err
	}

	row := 2
	for _, g := range groups {
		best, _ := g.BestOffer()
		for _, o := range g.OffersInOrder() {
			cell, _ := excelize.CoordinatesToCellName(1, row)
			values := []any{
				g.GroupKey, g.Title, g.Category, o.Brand, o.Price, o.OriginalPrice, o.DiscountPercent,
				o.SavingsAmount, o.InStock, o.ProductID == best.ProductID, g.MinPrice, g.MaxPrice, g.Spread(), o.ProductURL,
			}
			if err := f.SetSheetRow(SheetGroups, cell, &values); err != nil {
				return err
			}
			row++
		}
	}

	if err := f.SetColWidth(SheetGroups, "A", "B", 32); err != nil {
		return err
	}
	return f.SetPanes(SheetGroups, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})
}

func writeStats(f *excelize.File, result *comparison.Result, headerStyle int) error {
	if err := f.SetSheetRow(SheetStats, "A1", &[]any{"Metric", "Value"}); err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetStats, "A1", "B1", headerStyle); err != nil {
		return err
	}

	s := result.Stats
	if s == nil {
		if err := f.SetSheetRow(SheetStats, "A2", &[]any{"Status", "No priced products"}); err != nil {
			return err
		}
		return f.SetColWidth(SheetStats, "A", "A", 24)
	}

	rows := [][]any{
		{"Total Products", s.TotalProducts},
		{"Total Groups", s.TotalGroups},
		{"Average Price", s.AveragePrice},
		{"Lowest Price", s.LowestPrice},
		{"Highest Price", s.HighestPrice},
		{"Savings Opportunities", s.SavingsOpportunities},
		{"Best Savings", s.BestSavings},
		{"Discounted Products", s.DiscountedCount},
		{"Total Savings", s.TotalSavings},
		{"Skipped Records", result.SkippedRecords},
	}
	for i, r := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(SheetStats, cell, &r); err != nil {
			return err
		}
	}

	return f.SetColWidth(SheetStats, "A", "A", 24)
}

func wrap(err error) error {
	return apperrors.Wrap(err, apperrors.Internal, "XLSX 보고서 생성에 실패했습니다")
}
