package batch

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/cloud-ru/subscription-pricing-go/internal/calculations"
)

// Колонки входного листа
const (
	ColumnKey         = "key"
	ColumnPrice       = "price"
	ColumnOptionPrice = "option_price"
	ColumnFuel        = "fuel"
	ColumnCompany     = "company"
	ColumnSubsidyKey  = "key_subsidy"
	ColumnTotalCost   = "price_total"
	ColumnError       = "error"
)

var inputColumns = []string{ColumnKey, ColumnPrice, ColumnOptionPrice, ColumnFuel, ColumnCompany, ColumnSubsidyKey}

// ReadRows читает строки листа sheet; пустое имя означает первый лист
func ReadRows(path, sheet string) ([]Row, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}
	return parseRows(rows)
}

func parseRows(rows [][]string) ([]Row, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	header := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		header[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := header[ColumnPrice]; !ok {
		return nil, fmt.Errorf("input sheet has no %q column", ColumnPrice)
	}

	cell := func(row []string, name string) string {
		i, ok := header[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	out := make([]Row, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(strings.Join(row, "")) == 0 {
			continue
		}
		out = append(out, Row{
			Key:         cell(row, ColumnKey),
			Price:       parseAmount(cell(row, ColumnPrice)),
			OptionPrice: parseAmount(cell(row, ColumnOptionPrice)),
			Fuel:        cell(row, ColumnFuel),
			Company:     cell(row, ColumnCompany),
			SubsidyKey:  cell(row, ColumnSubsidyKey),
		})
	}
	return out, nil
}

// parseAmount "20,340,000" -> 20340000; "?" и пустое -> NaN
func parseAmount(s string) float64 {
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// OutputColumns заголовок выходного листа
func OutputColumns(terms []int) []string {
	columns := append([]string(nil), inputColumns...)
	columns = append(columns, ColumnTotalCost)
	columns = append(columns, calculations.FeeColumns(terms)...)
	return append(columns, ColumnError)
}

// WriteResults сохраняет результаты в новый файл
func WriteResults(path, sheet string, results []Result, terms []int) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheet)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	if sheet != "Sheet1" {
		if err := f.DeleteSheet("Sheet1"); err != nil {
			return fmt.Errorf("failed to drop default sheet: %w", err)
		}
		if index, err = f.GetSheetIndex(sheet); err != nil {
			return fmt.Errorf("failed to locate sheet: %w", err)
		}
	}

	columns := OutputColumns(terms)
	header := make([]interface{}, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	feeColumns := calculations.FeeColumns(terms)
	for n, res := range results {
		values := []interface{}{
			res.Row.Key,
			res.Input.CarPrice,
			res.Input.OptionPrice,
			res.Row.Fuel,
			res.Row.Company,
			res.Row.SubsidyKey,
		}
		if res.Pricing != nil {
			flat := res.Pricing.Flatten()
			values = append(values, math.Round(res.Pricing.TotalCost))
			for _, c := range feeColumns {
				values = append(values, flat[c])
			}
			values = append(values, "")
		} else {
			values = append(values, "")
			for range feeColumns {
				values = append(values, "")
			}
			values = append(values, fmt.Sprint(res.Err))
		}

		cell, err := excelize.CoordinatesToCellName(1, n+2)
		if err != nil {
			return fmt.Errorf("failed to address row %d: %w", n+2, err)
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", n+2, err)
		}
	}

	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(len(columns), 1)
	if err != nil {
		return fmt.Errorf("failed to address header: %w", err)
	}
	if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}
	f.SetActiveSheet(index)

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save Excel file: %w", err)
	}
	return nil
}
