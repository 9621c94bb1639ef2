package calculations

import "github.com/cloud-ru/subscription-pricing-go/pkg/utils"

// residualRatio доля остаточной стоимости на конец года.
// До пятого года включительно одна норма амортизации, с шестого другая,
// поэтому на границе 5/6 есть скачок.
func (e *Engine) residualRatio(year int) float64 {
	if year <= 5 {
		return 1 - e.params.DepreciationRateShort*float64(year)
	}
	return 1 - e.params.DepreciationRateLong*float64(year)
}

// residualByYear остаточная стоимость по индексу года, [0] не используется
func (e *Engine) residualByYear(carCost float64) []float64 {
	values := make([]float64, MaxYear+1)
	for year := 1; year <= MaxYear; year++ {
		values[year] = utils.RoundWon(carCost * e.residualRatio(year))
	}
	return values
}

// ResidualValues остаточная стоимость Y1..Y7 по меткам лет, до целой воны
func (e *Engine) ResidualValues(carCost float64) map[string]float64 {
	byYear := e.residualByYear(carCost)
	values := make(map[string]float64, MaxYear)
	for year := 1; year <= MaxYear; year++ {
		values[e.schedule.Label(year)] = byYear[year]
	}
	return values
}
