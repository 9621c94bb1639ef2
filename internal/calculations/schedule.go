package calculations

import (
	"fmt"

	"gopkg.in/yaml.v2"
)

// MaxYear последний год таблицы (Y7)
const MaxYear = 7

// FeeType тип подписки
type FeeType string

const (
	// FeeReturn возврат автомобиля по окончании срока
	FeeReturn FeeType = "return"
	// FeePurchase выкуп автомобиля по окончании срока
	FeePurchase FeeType = "purchase"
)

// Markup наценка (TROI) в процентах по типам подписки
type Markup struct {
	Return   float64 `yaml:"return" json:"return"`
	Purchase float64 `yaml:"purchase" json:"purchase"`
}

// For возвращает наценку для типа подписки
func (m Markup) For(t FeeType) float64 {
	if t == FeePurchase {
		return m.Purchase
	}
	return m.Return
}

// YearEntry строка таблицы лет. Для Y0 Markup отсутствует.
type YearEntry struct {
	Year       int     `yaml:"year" json:"year"`
	TermMonths int     `yaml:"term_months" json:"term_months"`
	Discount   float64 `yaml:"discount" json:"discount"`
	Markup     *Markup `yaml:"markup,omitempty" json:"markup,omitempty"`
}

// YearSchedule таблица Y0..Y7, индекс совпадает с номером года
type YearSchedule []YearEntry

func defaultMarkup() *Markup {
	return &Markup{Return: 6, Purchase: 12}
}

// DefaultSchedule таблица дисконтирования и наценок по годам
func DefaultSchedule() YearSchedule {
	discounts := []float64{1.00, 0.94, 0.89, 0.84, 0.79, 0.75, 0.71, 0.67}
	schedule := make(YearSchedule, 0, len(discounts))
	for year, discount := range discounts {
		entry := YearEntry{Year: year, TermMonths: year * 12, Discount: discount}
		if year > 0 {
			entry.Markup = defaultMarkup()
		}
		schedule = append(schedule, entry)
	}
	return schedule
}

type scheduleFile struct {
	Years []YearEntry `yaml:"years"`
}

// ParseSchedule читает таблицу лет из YAML и проверяет ее
func ParseSchedule(data []byte) (YearSchedule, error) {
	var file scheduleFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSchedule, err)
	}
	schedule := YearSchedule(file.Years)
	if err := schedule.Validate(); err != nil {
		return nil, err
	}
	return schedule, nil
}

// Validate проверяет полноту таблицы: Y0..Y7 по порядку, строго
// убывающие положительные коэффициенты, наценки для Y1..Y7.
func (s YearSchedule) Validate() error {
	if len(s) != MaxYear+1 {
		return fmt.Errorf("%w: expected %d years, got %d", ErrInvalidSchedule, MaxYear+1, len(s))
	}
	for i, entry := range s {
		if entry.Year != i {
			return fmt.Errorf("%w: entry %d has year %d", ErrInvalidSchedule, i, entry.Year)
		}
		if entry.TermMonths != i*12 {
			return fmt.Errorf("%w: %s term must be %d months, got %d", ErrInvalidSchedule, s.Label(i), i*12, entry.TermMonths)
		}
		if entry.Discount <= 0 {
			return fmt.Errorf("%w: %s discount must be positive", ErrInvalidSchedule, s.Label(i))
		}
		if i > 0 && entry.Discount >= s[i-1].Discount {
			return fmt.Errorf("%w: %s discount must be below %s", ErrInvalidSchedule, s.Label(i), s.Label(i-1))
		}
		if i > 0 && entry.Markup == nil {
			return fmt.Errorf("%w: %s has no markup", ErrInvalidSchedule, s.Label(i))
		}
	}
	return nil
}

func (s YearSchedule) clone() YearSchedule {
	out := make(YearSchedule, len(s))
	for i, entry := range s {
		if entry.Markup != nil {
			m := *entry.Markup
			entry.Markup = &m
		}
		out[i] = entry
	}
	return out
}

// Label метка года, например "Y3"
func (s YearSchedule) Label(year int) string {
	return fmt.Sprintf("Y%d", year)
}

// DiscountSum сумма коэффициентов дисконтирования за годы from..to включительно
func (s YearSchedule) DiscountSum(from, to int) float64 {
	sum := 0.0
	for i := from; i <= to; i++ {
		sum += s[i].Discount
	}
	return sum
}

// YearForTerm номер года для срока: ceil(term/12), не больше MaxYear
func YearForTerm(term int) (int, error) {
	if term <= 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidTerm, term)
	}
	year := term / 12
	if term%12 != 0 {
		year++
	}
	if year > MaxYear {
		year = MaxYear
	}
	return year, nil
}
