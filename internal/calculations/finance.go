package calculations

import (
	"fmt"
	"math"

	"github.com/cloud-ru/subscription-pricing-go/pkg/utils"
)

// Pmt ежемесячный аннуитетный платеж при годовой ставке annualRate (доля, не проценты)
func Pmt(principal, annualRate float64, months int) float64 {
	r := annualRate / 12
	if r == 0 {
		return principal / float64(months)
	}
	factor := math.Pow(1+r, float64(months))
	return principal * r * factor / (factor - 1)
}

// RemainingBalance остаток основного долга после elapsedMonths платежей.
// Считается пошагово по графику, без замкнутой формулы. После totalMonths
// кредит погашен, шаги сверх срока не выполняются.
func RemainingBalance(principal, annualRate float64, totalMonths, elapsedMonths int) float64 {
	r := annualRate / 12
	payment := Pmt(principal, annualRate, totalMonths)

	steps := elapsedMonths
	if steps > totalMonths {
		steps = totalMonths
	}

	balance := principal
	for m := 1; m <= steps; m++ {
		interest := balance * r
		balance -= payment - interest
	}
	if balance < 0 {
		return 0
	}
	return balance
}

// EarlyRepaymentTable остатки и штрафы досрочного погашения на каждом
// 12-м месяце до конца таблицы лет
func EarlyRepaymentTable(principal, annualRate float64, totalMonths int, penaltyRate float64) map[int]EarlyRepaymentEntry {
	table := make(map[int]EarlyRepaymentEntry, MaxYear)
	for month := 12; month <= MaxYear*12; month += 12 {
		balance := RemainingBalance(principal, annualRate, totalMonths, month)
		table[month] = EarlyRepaymentEntry{
			Month:            month,
			RemainingBalance: balance,
			Penalty:          utils.RoundWon(balance * penaltyRate),
		}
	}
	return table
}

// AmortizationSchedule рассчитывает помесячный график аннуитетной рассрочки
func AmortizationSchedule(principal, annualRate float64, months int) (*InstallmentSchedule, error) {
	if months <= 0 {
		return nil, fmt.Errorf("%w: %d months", ErrInvalidTerm, months)
	}
	r := annualRate / 12
	monthlyPayment := Pmt(principal, annualRate, months)

	schedule := make([]ScheduleEntry, 0, months)
	remaining := principal
	cumI := 0.0
	cumP := 0.0
	totalPaid := 0.0

	for m := 1; m <= months; m++ {
		interest := remaining * r
		principalComponent := monthlyPayment - interest
		monthly := monthlyPayment

		if m == months {
			principalComponent = remaining
			monthly = principalComponent + interest
		}

		interest = utils.Round2(interest)
		principalComponent = utils.Round2(principalComponent)
		monthly = utils.Round2(monthly)

		remaining = utils.Round2(remaining - principalComponent)
		cumI = utils.Round2(cumI + interest)
		cumP = utils.Round2(cumP + principalComponent)
		totalPaid = utils.Round2(totalPaid + monthly)

		if remaining < -0.01 {
			return nil, fmt.Errorf("численная ошибка: остаток рассрочки стал отрицательным")
		}

		remainingPrincipal := remaining
		if remainingPrincipal < 0 {
			remainingPrincipal = 0.0
		}

		schedule = append(schedule, ScheduleEntry{
			Month:               m,
			Payment:             monthly,
			Interest:            interest,
			PrincipalComponent:  principalComponent,
			RemainingPrincipal:  remainingPrincipal,
			CumulativeInterest:  cumI,
			CumulativePrincipal: cumP,
		})
	}

	return &InstallmentSchedule{
		Summary: LoanSummary{
			Principal:      utils.Round2(principal),
			AnnualRate:     annualRate,
			Months:         months,
			MonthlyPayment: utils.Round2(monthlyPayment),
			TotalPaid:      totalPaid,
			TotalInterest:  cumI,
		},
		Schedule: schedule,
	}, nil
}
