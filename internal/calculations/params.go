package calculations

import "fmt"

// Маркеры в свободных строках входных данных
const (
	// ElectricFuel значение поля fuel для электромобилей
	ElectricFuel = "전기"
	// RebateExemptCompany производитель без скидки дилеру
	RebateExemptCompany = "테슬라"
)

// CostItem статья затрат
type CostItem struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// Params числовые параметры ценообразования
type Params struct {
	InterestRate              float64 // годовая ставка рассрочки
	DownPaymentRate           float64 // доля первоначального взноса
	InstallmentMonths         int
	TaxRate                   float64
	RebateRate                float64
	SubsidyUnit               float64 // субсидии приходят в 만원
	ElectricTaxSubsidy        float64
	RegistrationFee           float64
	DepreciationRateShort     float64 // годы 1..5
	DepreciationRateLong      float64 // годы 6..7
	ReturnBadDebt             float64
	PurchaseBadDebt           float64
	OptionPremiumRate         float64
	EarlyRepaymentPenaltyRate float64
	FeeRoundingUnit           float64
	OptionRoundingUnit        float64
	CareFeeElectric           int64
	CareFeeOther              int64
	DefaultCarPrice           float64
	InitialCosts              []CostItem
	RecurringYearlyCosts      []CostItem
}

// DefaultParams действующие параметры ценообразования
func DefaultParams() Params {
	return Params{
		InterestRate:              0.11,
		DownPaymentRate:           0.20,
		InstallmentMonths:         60,
		TaxRate:                   0.07,
		RebateRate:                0.01,
		SubsidyUnit:               10000,
		ElectricTaxSubsidy:        1400000,
		RegistrationFee:           200000,
		DepreciationRateShort:     0.13,
		DepreciationRateLong:      0.12,
		ReturnBadDebt:             1.02,
		PurchaseBadDebt:           1.02,
		OptionPremiumRate:         0.50,
		EarlyRepaymentPenaltyRate: 0.01,
		FeeRoundingUnit:           10000,
		OptionRoundingUnit:        1000,
		CareFeeElectric:           40000,
		CareFeeOther:              0,
		DefaultCarPrice:           39510000,
		InitialCosts: []CostItem{
			{Name: "adv", Amount: 1500000},
			{Name: "blackbox", Amount: 50000},
			{Name: "tint_highpass", Amount: 60000},
			{Name: "delivery", Amount: 200000},
			{Name: "misc", Amount: 10000},
		},
		RecurringYearlyCosts: []CostItem{
			{Name: "labor", Amount: 600000},
			{Name: "car_tax", Amount: 720000},
			{Name: "monitoring", Amount: 132000},
		},
	}
}

// InstallmentYears число лет рассрочки
func (p Params) InstallmentYears() int {
	return p.InstallmentMonths / 12
}

// InitialCost сумма разовых затрат на подготовку автомобиля
func (p Params) InitialCost() float64 {
	return sumItems(p.InitialCosts)
}

// RecurringYearlyCost сумма ежегодных затрат
func (p Params) RecurringYearlyCost() float64 {
	return sumItems(p.RecurringYearlyCosts)
}

// Validate проверяет параметры, от которых зависят знаменатели
func (p Params) Validate() error {
	if p.InstallmentMonths <= 0 || p.InstallmentMonths%12 != 0 {
		return fmt.Errorf("%w: installment months must be a positive multiple of 12, got %d", ErrInvalidParams, p.InstallmentMonths)
	}
	if p.InstallmentYears() > MaxYear {
		return fmt.Errorf("%w: installment longer than the year schedule", ErrInvalidParams)
	}
	if p.InterestRate < 0 {
		return fmt.Errorf("%w: negative interest rate", ErrInvalidParams)
	}
	if p.FeeRoundingUnit <= 0 || p.OptionRoundingUnit <= 0 {
		return fmt.Errorf("%w: rounding units must be positive", ErrInvalidParams)
	}
	return nil
}

func sumItems(items []CostItem) float64 {
	total := 0.0
	for _, item := range items {
		total += item.Amount
	}
	return total
}
