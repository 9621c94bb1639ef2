package calculations

import "errors"

var (
	// ErrInvalidSchedule таблица лет неполна или противоречива
	ErrInvalidSchedule = errors.New("invalid year schedule")
	// ErrInvalidTerm срок подписки вне допустимого диапазона
	ErrInvalidTerm = errors.New("invalid subscription term")
	// ErrInvalidParams параметры расчета непригодны
	ErrInvalidParams = errors.New("invalid pricing params")
	// ErrFeeOutOfRange тариф не помещается в int64
	ErrFeeOutOfRange = errors.New("fee out of range")
)
