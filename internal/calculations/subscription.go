package calculations

import (
	"fmt"
	"math"

	"github.com/cloud-ru/subscription-pricing-go/pkg/utils"
)

// costPlan годовые затраты на автомобиль, общие для обоих типов подписки
type costPlan struct {
	totalCost         float64
	downPayment       float64
	initSetupCost     float64
	recurringYearly   float64
	installmentYearly float64
	discounted        []float64
	residual          []float64
	earlyRepayment    map[int]EarlyRepaymentEntry
}

// plan первоначальный взнос считается от цены автомобиля, в рассрочку
// идет остаток полной стоимости
func (e *Engine) plan(cost CostBreakdown) costPlan {
	p := e.params
	loanYears := p.InstallmentYears()

	totalCost := cost.Total()
	downPayment := e.DownPayment(cost)
	principal := totalCost - downPayment
	installmentYearly := Pmt(principal, p.InterestRate, p.InstallmentMonths) * 12

	plan := costPlan{
		totalCost:         totalCost,
		downPayment:       downPayment,
		initSetupCost:     p.InitialCost(),
		recurringYearly:   p.RecurringYearlyCost(),
		installmentYearly: installmentYearly,
		discounted:        make([]float64, MaxYear+1),
		residual:          e.residualByYear(totalCost),
		earlyRepayment:    EarlyRepaymentTable(principal, p.InterestRate, p.InstallmentMonths, p.EarlyRepaymentPenaltyRate),
	}

	for year := 0; year <= MaxYear; year++ {
		var cost float64
		switch {
		case year == 0:
			cost = downPayment + plan.initSetupCost
		case year <= loanYears:
			cost = installmentYearly + plan.recurringYearly
		default:
			cost = plan.recurringYearly
		}
		plan.discounted[year] = cost * e.schedule[year].Discount
	}
	return plan
}

// DownPayment первоначальный взнос: доля от цены автомобиля без налогов и субсидий
func (e *Engine) DownPayment(cost CostBreakdown) float64 {
	return cost.BasePrice * e.params.DownPaymentRate
}

// InstallmentPrincipal сумма рассрочки за автомобиль
func (e *Engine) InstallmentPrincipal(cost CostBreakdown) float64 {
	return cost.Total() - e.DownPayment(cost)
}

// monthlyDenominator 12 * сумма коэффициентов Y1..Yn
func (e *Engine) monthlyDenominator(year int) float64 {
	return e.schedule.DiscountSum(1, year) * 12
}

// roundFee наценка за риск невозврата и округление вверх до 10 000.
// Результат не меньше нуля.
func (e *Engine) roundFee(value, badDebt float64) (int64, error) {
	return toWon(utils.CeilTo(value*badDebt, e.params.FeeRoundingUnit))
}

// toWon переводит округленный тариф в целые воны: отрицательный дает 0,
// не помещающийся в int64 дает ErrFeeOutOfRange
func toWon(fee float64) (int64, error) {
	switch {
	case math.IsNaN(fee) || fee < 0:
		return 0, nil
	case fee >= math.MaxInt64:
		return 0, fmt.Errorf("%w: %.0f", ErrFeeOutOfRange, fee)
	}
	return int64(fee), nil
}

// returnFeeBase тариф возвратного типа до округления.
// Пока год в пределах рассрочки, сумма затрат всегда берется за весь
// период рассрочки Y0..Y5; дальше окно растет до Yn.
func (e *Engine) returnFeeBase(plan costPlan, year int) float64 {
	last := year
	if loanYears := e.params.InstallmentYears(); year <= loanYears {
		last = loanYears
	}
	costSum := 0.0
	for i := 0; i <= last; i++ {
		costSum += plan.discounted[i]
	}

	entry := e.schedule[year]
	markup := entry.Markup.For(FeeReturn)
	numerator := ((100+markup)/100)*costSum - plan.residual[year]*entry.Discount
	return numerator / e.monthlyDenominator(year)
}

// ownershipCost дисконтированная стоимость владения за n лет.
// В году n, если он внутри рассрочки, долг гасится досрочно: добавляются
// остаток и штраф.
func (e *Engine) ownershipCost(plan costPlan, year int) float64 {
	loanYears := e.params.InstallmentYears()
	total := (plan.downPayment + plan.initSetupCost) * e.schedule[0].Discount

	for i := 1; i <= min(year, loanYears); i++ {
		add := plan.installmentYearly + plan.recurringYearly
		if i == year {
			early := plan.earlyRepayment[i*12]
			add = add + early.RemainingBalance + early.Penalty
		}
		total += add * e.schedule[i].Discount
	}

	for i := loanYears + 1; i <= year; i++ {
		total += plan.recurringYearly * e.schedule[i].Discount
	}
	return total
}

// purchaseFeeBase тариф с выкупом до округления
func (e *Engine) purchaseFeeBase(plan costPlan, year int) float64 {
	markup := e.schedule[year].Markup.For(FeePurchase)
	numerator := ((100 + markup) / 100) * e.ownershipCost(plan, year)
	return numerator / e.monthlyDenominator(year)
}

// SubscriptionFees тарифы возвратного типа и с выкупом для каждого срока
func (e *Engine) SubscriptionFees(in SubscriptionInput) (FeeTable, error) {
	terms := in.Terms
	if len(terms) == 0 {
		terms = DefaultTerms
	}
	years, err := yearsForTerms(terms)
	if err != nil {
		return nil, err
	}

	cost, _ := e.CarCost(in.CarPrice, in.FuelType, in.SubsidyNational, in.SubsidyLease, in.Company)
	plan := e.plan(cost)

	fees := make(FeeTable, len(terms)*2)
	for i, term := range terms {
		fee, err := e.roundFee(e.returnFeeBase(plan, years[i]), e.params.ReturnBadDebt)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", FeeReturnKey(term), err)
		}
		fees[FeeReturnKey(term)] = fee
	}
	for i, term := range terms {
		fee, err := e.roundFee(e.purchaseFeeBase(plan, years[i]), e.params.PurchaseBadDebt)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", FeePurchaseKey(term), err)
		}
		fees[FeePurchaseKey(term)] = fee
	}
	return fees, nil
}

// EarlyRepayment таблица досрочного погашения для автомобиля
func (e *Engine) EarlyRepayment(in SubscriptionInput) []EarlyRepaymentEntry {
	cost, _ := e.CarCost(in.CarPrice, in.FuelType, in.SubsidyNational, in.SubsidyLease, in.Company)
	plan := e.plan(cost)

	entries := make([]EarlyRepaymentEntry, 0, len(plan.earlyRepayment))
	for month := 12; month <= MaxYear*12; month += 12 {
		entries = append(entries, plan.earlyRepayment[month])
	}
	return entries
}

func yearsForTerms(terms []int) ([]int, error) {
	years := make([]int, len(terms))
	for i, term := range terms {
		year, err := YearForTerm(term)
		if err != nil {
			return nil, fmt.Errorf("term %d: %w", i, err)
		}
		years[i] = year
	}
	return years, nil
}
