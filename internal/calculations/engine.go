package calculations

import "fmt"

// Engine считает стоимость и тарифы подписки. Хранит только
// неизменяемые параметры и безопасен для конкурентного использования.
type Engine struct {
	params   Params
	schedule YearSchedule
}

// NewEngine проверяет параметры и таблицу лет. Ошибка означает
// ошибку конфигурации, а не входных данных.
func NewEngine(params Params, schedule YearSchedule) (*Engine, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if err := schedule.Validate(); err != nil {
		return nil, err
	}
	params.InitialCosts = append([]CostItem(nil), params.InitialCosts...)
	params.RecurringYearlyCosts = append([]CostItem(nil), params.RecurringYearlyCosts...)
	return &Engine{params: params, schedule: schedule.clone()}, nil
}

// DefaultEngine движок с действующими параметрами
func DefaultEngine() *Engine {
	engine, err := NewEngine(DefaultParams(), DefaultSchedule())
	if err != nil {
		panic(fmt.Sprintf("default pricing config is broken: %v", err))
	}
	return engine
}

// Params возвращает параметры движка
func (e *Engine) Params() Params {
	return e.params
}

// Schedule возвращает копию таблицы лет
func (e *Engine) Schedule() YearSchedule {
	return e.schedule.clone()
}
