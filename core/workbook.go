package core

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	ex "garchvar/extensions"
)

// PricesSheet is the input sheet holding the raw price matrix: a date-like
// first column and one asset per following column.
const PricesSheet = "Prices"

var priceDateFormats = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"02-Jan-06",
	"2-Jan-06",
	"01-02-06",
	"1/2/2006",
	"1/2/06",
	"1/2/06 15:04",
	"01/02/2006",
}

// ReadPriceFrame parses the Prices sheet of an uploaded workbook. Rows with
// an unparseable date cell are dropped, and any asset column entirely
// composed of missing values is dropped before processing begins.
func ReadPriceFrame(r io.Reader) (*PriceFrame, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("error opening workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(PricesSheet)
	if err != nil {
		return nil, fmt.Errorf("error reading sheet %q: %w", PricesSheet, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("sheet %q has no data rows", PricesSheet)
	}

	header := rows[0]
	if len(header) < 2 {
		return nil, fmt.Errorf("sheet %q has no asset columns", PricesSheet)
	}

	assets := make([]string, len(header)-1)
	for i, name := range header[1:] {
		assets[i] = strings.TrimSpace(name)
	}

	frame := &PriceFrame{}
	cells := make([][]string, len(assets))
	for _, row := range rows[1:] {
		if len(row) == 0 {
			continue
		}

		date, err := parseDate(row[0])
		if err != nil {
			continue
		}

		frame.Dates = append(frame.Dates, date)
		filled := ex.Min(len(row)-1, len(assets))
		for j := range assets {
			cell := ""
			if j < filled {
				cell = row[j+1]
			}
			cells[j] = append(cells[j], cell)
		}
	}

	if len(frame.Dates) == 0 {
		return nil, fmt.Errorf("sheet %q has no rows with a parseable date", PricesSheet)
	}

	for j, asset := range assets {
		if !hasAnyValue(cells[j]) {
			continue
		}
		frame.Assets = append(frame.Assets, asset)
		frame.Cells = append(frame.Cells, cells[j])
	}

	return frame, nil
}

func parseDate(cell string) (time.Time, error) {
	cell = strings.TrimSpace(cell)
	for _, layout := range priceDateFormats {
		if t, err := time.Parse(layout, cell); err == nil {
			return t, nil
		}
	}

	// excel serial date, the raw value when the cell carries no date style
	if serial, err := strconv.ParseFloat(cell, 64); err == nil {
		return excelize.ExcelDateToTime(serial, false)
	}

	return time.Time{}, fmt.Errorf("unrecognized date %q", cell)
}

func hasAnyValue(cells []string) bool {
	for _, cell := range cells {
		if _, ok := parsePrice(cell); ok {
			return true
		}
	}
	return false
}
