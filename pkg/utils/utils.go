package utils

import "math"

// Round2 округляет число до 2 знаков после запятой
func Round2(value float64) float64 {
	return math.Round(value*100) / 100
}

// RoundWon округляет до целой воны, половина к четному
func RoundWon(value float64) float64 {
	return math.RoundToEven(value)
}

// CeilTo округляет вверх до ближайшего кратного unit
func CeilTo(value, unit float64) float64 {
	if unit <= 0 {
		return value
	}
	return math.Ceil(value/unit) * unit
}

// IsFinite проверяет, является ли число конечным
func IsFinite(value float64) bool {
	return !math.IsInf(value, 0) && !math.IsNaN(value)
}
