package generate_excel

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
	"quote-calc/internal/service/quote"
	"quote-calc/internal/storage"
)

const sheet = "Quote"

type ProjectQuoter interface {
	CalculateProjectQuote(ctx context.Context, projectID int64, discounts map[string]float64) (quote.Quote, error)
}

type ModuleProvider interface {
	GetModules(ctx context.Context, projectID int64) ([]storage.Module, error)
}

type GenerateExcelService struct {
	quoter  ProjectQuoter
	modules ModuleProvider
}

func NewGenerateService(quoter ProjectQuoter, modules ModuleProvider) *GenerateExcelService {
	return &GenerateExcelService{quoter: quoter, modules: modules}
}

func (g *GenerateExcelService) GenerateExcel(ctx context.Context, projectID int64, discounts map[string]float64) ([]byte, error) {
	const op = "service.generate_excel.GenerateExcel"

	q, err := g.quoter.CalculateProjectQuote(ctx, projectID, discounts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	modules, err := g.modules.GetModules(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("%s: modules: %w", op, err)
	}

	buf, err := BuildWorkbook(modules, q)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return buf, nil
}

var moduleHeaders = []string{"ID", "Module", "Enabled", "Design, days", "Front-end, days", "Back-end, days", "Timeline, days", "Price"}

// BuildWorkbook lays out one row per module followed by the project summary.
func BuildWorkbook(modules []storage.Module, q quote.Quote) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"E0E0E0"}, Pattern: 1},
		Border: []excelize.Border{{Type: "bottom", Color: "000000", Style: 2}},
	})
	if err != nil {
		return nil, err
	}

	for i, name := range moduleHeaders {
		f.SetCellValue(sheet, cellName(i+1, 1), name)
	}
	f.SetCellStyle(sheet, "A1", cellName(len(moduleHeaders), 1), headerStyle)

	prices := make(map[string]quote.ModulePrice, len(q.ModulePrices))
	for _, p := range q.ModulePrices {
		prices[p.ModuleID] = p
	}

	for i, m := range modules {
		row := i + 2
		p := prices[m.ID]

		f.SetCellValue(sheet, cellName(1, row), m.ID)
		f.SetCellValue(sheet, cellName(2, row), m.Name)
		f.SetCellValue(sheet, cellName(3, row), yesNo(m.IsEnabled))
		f.SetCellValue(sheet, cellName(4, row), m.DesignDays)
		f.SetCellValue(sheet, cellName(5, row), m.FrontendDays)
		f.SetCellValue(sheet, cellName(6, row), m.BackendDays)
		f.SetCellValue(sheet, cellName(7, row), p.TimelineDays)
		f.SetCellValue(sheet, cellName(8, row), p.Price)
	}

	r := q.Result
	summary := []struct {
		label string
		value interface{}
	}{
		{"Design, days", r.DesignDays},
		{"Development, days", r.DevelopmentDays},
		{"Total, days", r.TotalDays},
		{"Effort, days", q.Stats.EffortDays},
		{"Design cost", r.DesignCost},
		{"Development cost", r.DevelopmentCost},
		{"Total", r.TotalQuote},
		{"Discount", r.DiscountAmount},
		{"Final total", r.FinalTotal},
		{"Monthly fee", r.MonthlyFee},
	}

	// One empty row between the modules and the summary.
	start := len(modules) + 3
	for i, s := range summary {
		f.SetCellValue(sheet, cellName(2, start+i), s.label)
		f.SetCellValue(sheet, cellName(8, start+i), s.value)
	}
	f.SetCellStyle(sheet, cellName(2, start), cellName(2, start+len(summary)-1), headerStyle)

	f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
	f.SetColWidth(sheet, "A", "A", 12)
	f.SetColWidth(sheet, "B", "B", 30)
	f.SetColWidth(sheet, "C", "H", 15)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
