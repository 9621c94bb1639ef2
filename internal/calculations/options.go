package calculations

import (
	"fmt"

	"github.com/cloud-ru/subscription-pricing-go/pkg/utils"
)

// OptionFees надбавка за заводские опции по срокам: цена опций с премией,
// распределенная по коэффициентам дисконтирования, вверх до 1 000.
// Нулевая, отрицательная или нечисловая цена дает нулевые надбавки.
func (e *Engine) OptionFees(optionPrice float64, terms []int) (FeeTable, error) {
	if len(terms) == 0 {
		terms = DefaultTerms
	}
	years, err := yearsForTerms(terms)
	if err != nil {
		return nil, err
	}

	fees := make(FeeTable, len(terms))
	for i, term := range terms {
		fee, err := e.optionFee(optionPrice, years[i])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", FeeOptionsKey(term), err)
		}
		fees[FeeOptionsKey(term)] = fee
	}
	return fees, nil
}

func (e *Engine) optionFee(optionPrice float64, year int) (int64, error) {
	if !utils.IsFinite(optionPrice) || optionPrice <= 0 {
		return 0, nil
	}
	discountSum := e.schedule.DiscountSum(1, year)
	fee := optionPrice * (1 + e.params.OptionPremiumRate) / discountSum / 12
	return toWon(utils.CeilTo(fee, e.params.OptionRoundingUnit))
}
