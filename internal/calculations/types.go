package calculations

import (
	"fmt"
	"sort"
)

// Ключи таблицы тарифов
const (
	FeeCareKey = "fee_care"
	FeeListKey = "fee_list"
)

// DefaultTerms сроки подписки по умолчанию, мес.
var DefaultTerms = []int{12, 36, 60, 84}

// FeeReturnKey имя тарифа возвратного типа
func FeeReturnKey(term int) string { return fmt.Sprintf("fee_return_%dm", term) }

// FeePurchaseKey имя тарифа с выкупом
func FeePurchaseKey(term int) string { return fmt.Sprintf("fee_purchase_%dm", term) }

// FeeOptionsKey имя надбавки за опции
func FeeOptionsKey(term int) string { return fmt.Sprintf("fee_options_%dm", term) }

// FeeReturnOptionsKey имя возвратного тарифа с опциями
func FeeReturnOptionsKey(term int) string { return fmt.Sprintf("fee_return_options_%dm", term) }

// FeePurchaseOptionsKey имя тарифа с выкупом и опциями
func FeePurchaseOptionsKey(term int) string { return fmt.Sprintf("fee_purchase_options_%dm", term) }

// ScheduleEntry представляет одну запись в графике платежей
type ScheduleEntry struct {
	Month               int     `json:"month"`
	Payment             float64 `json:"payment"`
	Interest            float64 `json:"interest"`
	PrincipalComponent  float64 `json:"principal_component"`
	RemainingPrincipal  float64 `json:"remaining_principal"`
	CumulativeInterest  float64 `json:"cumulative_interest"`
	CumulativePrincipal float64 `json:"cumulative_principal"`
}

// LoanSummary представляет сводку по рассрочке
type LoanSummary struct {
	Principal      float64 `json:"principal"`
	AnnualRate     float64 `json:"annual_rate"`
	Months         int     `json:"months"`
	MonthlyPayment float64 `json:"monthly_payment"`
	TotalPaid      float64 `json:"total_paid"`
	TotalInterest  float64 `json:"total_interest"`
}

// InstallmentSchedule результат расчета графика рассрочки
type InstallmentSchedule struct {
	Summary  LoanSummary     `json:"summary"`
	Schedule []ScheduleEntry `json:"schedule"`
}

// EarlyRepaymentEntry остаток долга и штраф за досрочное погашение на контрольном месяце
type EarlyRepaymentEntry struct {
	Month            int     `json:"month"`
	RemainingBalance float64 `json:"remaining_balance"`
	Penalty          float64 `json:"penalty"`
}

// CostBreakdown полная стоимость приобретения автомобиля.
// Субсидии и скидка производителя хранятся отрицательными.
type CostBreakdown struct {
	BasePrice          float64 `json:"base_price"`
	Tax                float64 `json:"tax"`
	SubsidyNational    float64 `json:"subsidy_national"`
	SubsidyLease       float64 `json:"subsidy_lease"`
	SubsidyElectricTax float64 `json:"subsidy_electric_tax"`
	ManufacturerRebate float64 `json:"manufacturer_rebate"`
	RegistrationFee    float64 `json:"registration_fee"`
	Promotion          float64 `json:"promotion"`
}

// Total сумма всех составляющих
func (c CostBreakdown) Total() float64 {
	return c.BasePrice +
		c.Tax +
		c.SubsidyNational +
		c.SubsidyLease +
		c.SubsidyElectricTax +
		c.ManufacturerRebate +
		c.RegistrationFee +
		c.Promotion
}

// SubsidyTotal сумма всех субсидий (отрицательная или ноль)
func (c CostBreakdown) SubsidyTotal() float64 {
	return c.SubsidyNational + c.SubsidyLease + c.SubsidyElectricTax
}

// FeeTable отображение имени тарифа в сумму в вонах
type FeeTable map[string]int64

// Keys возвращает имена тарифов в детерминированном порядке
func (f FeeTable) Keys() []string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// merge копирует значения src в f
func (f FeeTable) merge(src FeeTable) {
	for k, v := range src {
		f[k] = v
	}
}

// SubscriptionInput входные данные расчета подписки
type SubscriptionInput struct {
	CarPrice        float64 `json:"car_price"`
	FuelType        string  `json:"fuel_type"`
	SubsidyNational float64 `json:"subsidy_national"`
	SubsidyLease    float64 `json:"subsidy_lease"`
	Company         string  `json:"company"`
	Terms           []int   `json:"terms,omitempty"`
}

// PricingInput входные данные полного расчета
type PricingInput struct {
	SubscriptionInput
	OptionPrice float64 `json:"option_price"`
}

// PricingResult результат полного расчета
type PricingResult struct {
	Cost             CostBreakdown      `json:"cost"`
	TotalCost        float64            `json:"total_cost"`
	SubscriptionFees FeeTable           `json:"subscription_fees"`
	OptionFees       FeeTable           `json:"option_fees"`
	CombinedFees     FeeTable           `json:"combined_fees"`
	CareFee          int64              `json:"care_fee"`
	FeeList          int64              `json:"fee_list"`
	Summary          map[string]float64 `json:"summary"`
	Terms            []int              `json:"terms"`
}
