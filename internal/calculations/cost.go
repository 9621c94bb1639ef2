package calculations

import (
	"strings"

	"github.com/cloud-ru/subscription-pricing-go/pkg/utils"
)

// IsElectric проверяет признак электромобиля в поле fuel
func IsElectric(fuelType string) bool {
	return fuelType == ElectricFuel
}

// rebateApplies скидка производителя есть у всех, кроме исключенной марки
func rebateApplies(company string) bool {
	return strings.TrimSpace(company) != RebateExemptCompany
}

// carPrice цена по умолчанию вместо нечисловой или неположительной
func (e *Engine) carPrice(price float64) float64 {
	if !utils.IsFinite(price) || price <= 0 {
		return e.params.DefaultCarPrice
	}
	return price
}

// CarCost раскладывает цену автомобиля на полную стоимость приобретения.
// Субсидии передаются в 만원. Нераспознанные fuel и company дают
// стандартную ветку расчета. Отрицательный итог не считается ошибкой.
// Нечисловая или неположительная цена заменяется DefaultCarPrice.
func (e *Engine) CarCost(carPrice float64, fuelType string, subsidyNational, subsidyLease float64, company string) (CostBreakdown, float64) {
	p := e.params
	carPrice = e.carPrice(carPrice)

	detail := CostBreakdown{
		BasePrice:       carPrice,
		Tax:             carPrice * p.TaxRate,
		SubsidyNational: -(subsidyNational * p.SubsidyUnit),
		SubsidyLease:    -(subsidyLease * p.SubsidyUnit),
		RegistrationFee: p.RegistrationFee,
	}
	if IsElectric(fuelType) {
		detail.SubsidyElectricTax = -p.ElectricTaxSubsidy
	}
	if rebateApplies(company) {
		detail.ManufacturerRebate = -(carPrice * p.RebateRate)
	}

	return detail, detail.Total()
}

// CareFee ежемесячная плата за обслуживание по типу топлива
func (e *Engine) CareFee(fuelType string) int64 {
	if IsElectric(fuelType) {
		return e.params.CareFeeElectric
	}
	return e.params.CareFeeOther
}
