package calculations

import (
	"math"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Ключи сводки расчета
const (
	SummaryCarPrice     = "car_price"
	SummaryOptionPrice  = "option_price"
	SummaryTotalCost    = "total_car_cost"
	SummaryCareFee      = "care_fee"
	SummaryTax          = "tax"
	SummarySubsidyTotal = "subsidy_total"
	SummaryRebate       = "rebate"
)

// CalculateComplete полный расчет: стоимость, тарифы, надбавка за опции,
// тарифы с опциями, плата за обслуживание и сводка
func (e *Engine) CalculateComplete(in PricingInput) (*PricingResult, error) {
	terms := in.Terms
	if len(terms) == 0 {
		terms = DefaultTerms
	}
	sub := in.SubscriptionInput
	sub.Terms = terms

	cost, totalCost := e.CarCost(sub.CarPrice, sub.FuelType, sub.SubsidyNational, sub.SubsidyLease, sub.Company)

	subscriptionFees, err := e.SubscriptionFees(sub)
	if err != nil {
		return nil, err
	}
	optionFees, err := e.OptionFees(in.OptionPrice, terms)
	if err != nil {
		return nil, err
	}

	combined := make(FeeTable, len(terms)*2)
	for _, term := range terms {
		option := optionFees[FeeOptionsKey(term)]
		combined[FeeReturnOptionsKey(term)] = subscriptionFees[FeeReturnKey(term)] + option
		combined[FeePurchaseOptionsKey(term)] = subscriptionFees[FeePurchaseKey(term)] + option
	}

	careFee := e.CareFee(sub.FuelType)

	return &PricingResult{
		Cost:             cost,
		TotalCost:        totalCost,
		SubscriptionFees: subscriptionFees,
		OptionFees:       optionFees,
		CombinedFees:     combined,
		CareFee:          careFee,
		FeeList:          listFee(combined, terms),
		Summary: map[string]float64{
			SummaryCarPrice:     cost.BasePrice,
			SummaryOptionPrice:  in.OptionPrice,
			SummaryTotalCost:    totalCost,
			SummaryCareFee:      float64(careFee),
			SummaryTax:          cost.Tax,
			SummarySubsidyTotal: cost.SubsidyTotal(),
			SummaryRebate:       cost.ManufacturerRebate,
		},
		Terms: append([]int(nil), terms...),
	}, nil
}

// listFee витринная цена: возвратный тариф с опциями на 12 месяцев,
// либо на самый короткий из запрошенных сроков
func listFee(combined FeeTable, terms []int) int64 {
	if fee, ok := combined[FeeReturnOptionsKey(12)]; ok {
		return fee
	}
	shortest := terms[0]
	for _, term := range terms[1:] {
		if term < shortest {
			shortest = term
		}
	}
	return combined[FeeReturnOptionsKey(shortest)]
}

// Flatten плоская таблица для выгрузки: все fee_* поля, fee_care и fee_list
func (r *PricingResult) Flatten() FeeTable {
	out := make(FeeTable, len(r.SubscriptionFees)+len(r.OptionFees)+len(r.CombinedFees)+2)
	out.merge(r.SubscriptionFees)
	out.merge(r.OptionFees)
	out.merge(r.CombinedFees)
	out[FeeCareKey] = r.CareFee
	out[FeeListKey] = r.FeeList
	return out
}

// FeeColumns имена колонок выгрузки в порядке сроков
func FeeColumns(terms []int) []string {
	if len(terms) == 0 {
		terms = DefaultTerms
	}
	columns := make([]string, 0, len(terms)*5+2)
	for _, term := range terms {
		columns = append(columns, FeeReturnKey(term), FeePurchaseKey(term))
	}
	for _, term := range terms {
		columns = append(columns, FeeOptionsKey(term))
	}
	for _, term := range terms {
		columns = append(columns, FeeReturnOptionsKey(term), FeePurchaseOptionsKey(term))
	}
	return append(columns, FeeCareKey, FeeListKey)
}

// FormatSummary текстовая сводка для оператора
func (r *PricingResult) FormatSummary() string {
	p := message.NewPrinter(language.Korean)
	won := func(v float64) int64 { return int64(math.Round(v)) }

	var b strings.Builder
	p.Fprintf(&b, "차량가격: %d원\n", won(r.Summary[SummaryCarPrice]))
	p.Fprintf(&b, "옵션가격: %d원\n", won(r.Summary[SummaryOptionPrice]))
	p.Fprintf(&b, "총차량비용: %d원\n", won(r.TotalCost))
	p.Fprintf(&b, "세금: %d원\n", won(r.Cost.Tax))
	p.Fprintf(&b, "보조금합계: %d원\n", won(r.Cost.SubsidyTotal()))
	p.Fprintf(&b, "리베이트: %d원\n", won(r.Cost.ManufacturerRebate))
	p.Fprintf(&b, "케어비용: %d원\n", r.CareFee)
	for _, term := range r.Terms {
		p.Fprintf(&b, "%d개월: 반납형 %d원 / 인수형 %d원 (옵션 포함 %d원 / %d원)\n",
			term,
			r.SubscriptionFees[FeeReturnKey(term)],
			r.SubscriptionFees[FeePurchaseKey(term)],
			r.CombinedFees[FeeReturnOptionsKey(term)],
			r.CombinedFees[FeePurchaseOptionsKey(term)],
		)
	}
	return b.String()
}
