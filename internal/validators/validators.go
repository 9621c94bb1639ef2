package validators

import (
	"fmt"

	"github.com/cloud-ru/subscription-pricing-go/internal/config"
	"github.com/cloud-ru/subscription-pricing-go/pkg/utils"
)

// ValidatePositiveNumber проверяет, что число конечно и в допустимом диапазоне
func ValidatePositiveNumber(name string, value float64, minInclusive, maxInclusive float64) error {
	if !utils.IsFinite(value) {
		return fmt.Errorf("%s: значение не является конечным числом", name)
	}
	if value < minInclusive {
		return fmt.Errorf("%s: значение должно быть ≥ %.0f", name, minInclusive)
	}
	if value > maxInclusive {
		return fmt.Errorf("%s: значение слишком велико (>%.0f)", name, maxInclusive)
	}
	return nil
}

// ValidateIntRange проверяет, что целое число в допустимом диапазоне
func ValidateIntRange(name string, value int, minInclusive, maxInclusive int) error {
	if value < minInclusive || value > maxInclusive {
		return fmt.Errorf("%s: значение должно быть в диапазоне [%d; %d]", name, minInclusive, maxInclusive)
	}
	return nil
}

// CheckCarPrice проверяет цену автомобиля
func CheckCarPrice(cfg *config.Config, price float64) error {
	return ValidatePositiveNumber("car_price", price, 1, cfg.MaxCarPrice)
}

// CheckOptionPrice проверяет цену опций, ноль допустим
func CheckOptionPrice(cfg *config.Config, price float64) error {
	return ValidatePositiveNumber("option_price", price, 0, cfg.MaxOptionPrice)
}

// CheckSubsidy проверяет субсидию в 만원
func CheckSubsidy(cfg *config.Config, name string, amount float64) error {
	return ValidatePositiveNumber(name, amount, 0, cfg.MaxSubsidy)
}

// CheckTerms проверяет список сроков подписки
func CheckTerms(cfg *config.Config, terms []int) error {
	if len(terms) > cfg.MaxTerms {
		return fmt.Errorf("terms: не более %d сроков", cfg.MaxTerms)
	}
	seen := make(map[int]struct{}, len(terms))
	for _, term := range terms {
		if err := ValidateIntRange("terms", term, 1, cfg.MaxTermMonths); err != nil {
			return err
		}
		if _, ok := seen[term]; ok {
			return fmt.Errorf("terms: срок %d указан дважды", term)
		}
		seen[term] = struct{}{}
	}
	return nil
}

// NormalizeCarPrice подставляет цену по умолчанию вместо нечисловой или неположительной
func NormalizeCarPrice(price, fallback float64) float64 {
	if !utils.IsFinite(price) || price <= 0 {
		return fallback
	}
	return price
}

// NormalizeAmount заменяет нечисловую или отрицательную сумму нулем
func NormalizeAmount(amount float64) float64 {
	if !utils.IsFinite(amount) || amount < 0 {
		return 0
	}
	return amount
}
