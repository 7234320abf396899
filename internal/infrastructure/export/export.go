// Package export renders cash views as Excel workbooks.
package export

import (
	"bytes"
	"fmt"

	"github.com/fazli/printshop-api/internal/domain/accounting"
	"github.com/fazli/printshop-api/internal/domain/entity"
	"github.com/fazli/printshop-api/pkg/money"
	"github.com/xuri/excelize/v2"
)

// ContentType is the MIME type of the produced workbooks.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const (
	feedSheet    = "Feed"
	summarySheet = "Summary"
	ledgerSheet  = "Ledger"
	dateLayout   = "2006-01-02"
)

var (
	feedHeaders = []string{
		"Date", "Name", "Buy", "Type", "Status", "Owner", "Source",
		"Amount", "Advance", "Remaining", "Effective",
	}
	ledgerHeaders = []string{"Date", "Type", "Person", "Category", "Description", "Amount"}
)

// Dashboard writes the feed rows and their summary to a two-sheet workbook.
func Dashboard(items []accounting.FeedItem, summary accounting.Summary) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	rows := make([][]any, 0, len(items))
	for _, item := range items {
		rows = append(rows, []any{
			item.Date.UTC().Format(dateLayout),
			item.Name,
			item.Buy,
			item.Type.String(),
			item.Status.String(),
			item.Owner,
			string(item.Source),
			money.Float(item.Amount),
			money.Float(item.AdvanceAmount),
			money.Float(item.RemainingAmount),
			money.Float(item.EffectiveAmount()),
		})
	}
	if err := writeSheet(f, feedSheet, feedHeaders, rows); err != nil {
		return nil, err
	}

	summaryRows := [][]any{
		{"Total income", money.Float(summary.TotalIncome)},
		{"Total expense", money.Float(summary.TotalExpense)},
		{"Net profit", money.Float(summary.NetProfit)},
		{"Categories", summary.TotalProducts},
		{"Rows", summary.Count},
	}
	if err := writeSheet(f, summarySheet, []string{"Metric", "Value"}, summaryRows); err != nil {
		return nil, err
	}

	return finish(f, feedSheet)
}

// Ledger writes ledger entries followed by their totals.
func Ledger(entries []entity.LedgerEntry, summary accounting.LedgerSummary) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	rows := make([][]any, 0, len(entries)+4)
	for _, e := range entries {
		rows = append(rows, []any{
			e.Date,
			e.Type.String(),
			e.Person,
			e.Category,
			e.Description,
			money.Float(e.Amount),
		})
	}
	rows = append(rows,
		[]any{},
		[]any{"", "", "", "", "Income", money.Float(summary.Income)},
		[]any{"", "", "", "", "Expense", money.Float(summary.Expense)},
		[]any{"", "", "", "", "Balance", money.Float(summary.Balance)},
	)
	if err := writeSheet(f, ledgerSheet, ledgerHeaders, rows); err != nil {
		return nil, err
	}

	return finish(f, ledgerSheet)
}

func writeSheet(f *excelize.File, sheet string, headers []string, rows [][]any) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("error creating sheet %s: %w", sheet, err)
	}

	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return err
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6E6FA"}, Pattern: 1},
	})
	if err == nil {
		_ = f.SetRowStyle(sheet, 1, 1, headerStyle)
	}

	for r, row := range rows {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return err
			}
		}
	}

	last, err := excelize.ColumnNumberToName(len(headers))
	if err != nil {
		return err
	}
	return f.SetColWidth(sheet, "A", last, 16)
}

func finish(f *excelize.File, active string) (*bytes.Buffer, error) {
	if idx, err := f.GetSheetIndex(active); err == nil && idx >= 0 {
		f.SetActiveSheet(idx)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("error removing default sheet: %w", err)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("error writing workbook: %w", err)
	}
	return &buf, nil
}
