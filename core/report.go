package core

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/xuri/excelize/v2"
)

// Sheet names mirror the audit report the risk team already consumes.
const (
	SheetPrices  = "Original_Prices"
	SheetReturns = "Returns_Scaled"
	SheetStdev   = "GARCH_Stdev"
	SheetVaR     = "GARCH_VaR"
	SheetParams  = "Model_Parameters"
)

const (
	dateColumnWidth  = 18
	dateNumberFormat = "dd-mmm-yy"
	highlightFill    = "BDD7EE"
)

var paramHeaders = []string{"Asset", "Omega", "Alpha", "Beta", "Persistence", "Nu (DF)"}

// WriteReport renders the five-sheet workbook. The stdev and VaR sheets get
// a highlight on the seed row, the first row carrying a defined value.
func WriteReport(res *ResultTables, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	fmtStr := dateNumberFormat
	dateStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &fmtStr})
	if err != nil {
		return fmt.Errorf("error creating date style: %w", err)
	}

	highlight, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{highlightFill}, Pattern: 1},
		Font: &excelize.Font{Bold: true},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return fmt.Errorf("error creating highlight style: %w", err)
	}

	if err := f.SetSheetName(f.GetSheetName(0), SheetPrices); err != nil {
		return fmt.Errorf("error naming sheet %q: %w", SheetPrices, err)
	}
	for _, sheet := range []string{SheetReturns, SheetStdev, SheetVaR, SheetParams} {
		if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("error creating sheet %q: %w", sheet, err)
		}
	}

	if err := writeTable(f, SheetPrices, res.Dates, res.Prices, dateStyle, 0); err != nil {
		return err
	}
	if err := writeTable(f, SheetReturns, res.Dates, res.Returns, dateStyle, 0); err != nil {
		return err
	}
	if err := writeTable(f, SheetStdev, res.Dates, res.Stdevs, dateStyle, highlight); err != nil {
		return err
	}
	if err := writeTable(f, SheetVaR, res.Dates, res.VaR, dateStyle, highlight); err != nil {
		return err
	}
	if err := writeParams(f, res.Params); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("error writing workbook: %w", err)
	}

	return nil
}

func writeTable(f *excelize.File, sheet string, dates []time.Time, table Table, dateStyle, highlightStyle int) error {
	if err := setCell(f, sheet, 1, 1, "Date"); err != nil {
		return err
	}
	for j, name := range table.Names {
		if err := setCell(f, sheet, j+2, 1, name); err != nil {
			return err
		}
	}

	for i, d := range dates {
		if err := setCell(f, sheet, 1, i+2, d); err != nil {
			return err
		}
		for j, col := range table.Cols {
			if math.IsNaN(col[i]) {
				continue // undefined cells stay blank, never zero
			}
			if err := setCell(f, sheet, j+2, i+2, col[i]); err != nil {
				return err
			}
		}
	}

	if err := f.SetColWidth(sheet, "A", "A", dateColumnWidth); err != nil {
		return fmt.Errorf("error sizing date column on %q: %w", sheet, err)
	}
	// cell-level, not column-level: excelize gives time cells a default
	// date style that would win over a column style
	if len(dates) > 0 {
		last, err := excelize.CoordinatesToCellName(1, len(dates)+1)
		if err != nil {
			return fmt.Errorf("error naming date range on %q: %w", sheet, err)
		}
		if err := f.SetCellStyle(sheet, "A2", last, dateStyle); err != nil {
			return fmt.Errorf("error styling date column on %q: %w", sheet, err)
		}
	}

	if highlightStyle != 0 {
		if row, ok := seedRow(table); ok {
			if err := f.SetRowStyle(sheet, row, row, highlightStyle); err != nil {
				return fmt.Errorf("error highlighting seed row on %q: %w", sheet, err)
			}
		}
	}

	return nil
}

// seedRow is the 1-based worksheet row of the first defined entry in the
// table, the visual marker for where the variance seed sits.
func seedRow(table Table) (int, bool) {
	if len(table.Cols) == 0 {
		return 0, false
	}

	for i := range table.Cols[0] {
		for _, col := range table.Cols {
			if !math.IsNaN(col[i]) {
				return i + 2, true // +1 for the header row, +1 for 1-based rows
			}
		}
	}

	return 0, false
}

func writeParams(f *excelize.File, params []AssetParameters) error {
	for j, h := range paramHeaders {
		if err := setCell(f, SheetParams, j+1, 1, h); err != nil {
			return err
		}
	}

	for i, p := range params {
		values := []any{p.Asset, p.Omega, p.Alpha, p.Beta, p.Persistence, p.Nu}
		for j, v := range values {
			if err := setCell(f, SheetParams, j+1, i+2, v); err != nil {
				return err
			}
		}
	}

	return nil
}

func setCell(f *excelize.File, sheet string, col, row int, value any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("error naming cell (%d, %d): %w", col, row, err)
	}
	if err := f.SetCellValue(sheet, cell, value); err != nil {
		return fmt.Errorf("error setting %s!%s: %w", sheet, cell, err)
	}
	return nil
}
