package reference

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// SubsidySheet лист справочника с субсидиями
const SubsidySheet = "보조금"

// Subsidy строка справочника: субсидии в 만원
type Subsidy struct {
	Company  string  `json:"company"`
	Trim     string  `json:"trim"`
	National float64 `json:"national"`
	Lease    float64 `json:"lease"`
}

// SubsidyTable справочник субсидий по ключу комплектации
type SubsidyTable struct {
	rows  []Subsidy
	index map[string]int
}

// NewSubsidyTable строит справочник; при повторе ключа остается первая строка
func NewSubsidyTable(rows []Subsidy) *SubsidyTable {
	t := &SubsidyTable{
		rows:  append([]Subsidy(nil), rows...),
		index: make(map[string]int, len(rows)),
	}
	for i, row := range t.rows {
		key := strings.TrimSpace(row.Trim)
		if key == "" {
			continue
		}
		if _, ok := t.index[key]; !ok {
			t.index[key] = i
		}
	}
	return t
}

// Lookup субсидии для ключа; (0, 0) если ключ пуст или не найден
func (t *SubsidyTable) Lookup(key string) (national, lease float64) {
	if t == nil {
		return 0, 0
	}
	i, ok := t.index[strings.TrimSpace(key)]
	if !ok {
		return 0, 0
	}
	return t.rows[i].National, t.rows[i].Lease
}

// Rows копия строк справочника
func (t *SubsidyTable) Rows() []Subsidy {
	if t == nil {
		return nil
	}
	return append([]Subsidy(nil), t.rows...)
}

// Len число строк справочника
func (t *SubsidyTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.rows)
}

// LoadSubsidyXLSX читает лист "보조금" с колонками company, trim, national, lease
func LoadSubsidyXLSX(path string) (*SubsidyTable, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open subsidy file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(SubsidySheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", SubsidySheet, err)
	}
	return parseSubsidyRows(rows)
}

func parseSubsidyRows(rows [][]string) (*SubsidyTable, error) {
	if len(rows) == 0 {
		return NewSubsidyTable(nil), nil
	}

	header := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		header[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"trim", "national", "lease"} {
		if _, ok := header[required]; !ok {
			return nil, fmt.Errorf("subsidy sheet has no %q column", required)
		}
	}

	cell := func(row []string, name string) string {
		i, ok := header[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}
	amount := func(row []string, name string) float64 {
		v, err := strconv.ParseFloat(strings.ReplaceAll(cell(row, name), ",", ""), 64)
		if err != nil {
			return 0
		}
		return v
	}

	subsidies := make([]Subsidy, 0, len(rows)-1)
	for _, row := range rows[1:] {
		trim := cell(row, "trim")
		if trim == "" {
			continue
		}
		subsidies = append(subsidies, Subsidy{
			Company:  cell(row, "company"),
			Trim:     trim,
			National: amount(row, "national"),
			Lease:    amount(row, "lease"),
		})
	}
	return NewSubsidyTable(subsidies), nil
}
