package tools

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ValidationError ошибка во входных параметрах инструмента
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return "неверные параметры: " + e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// IsValidationError проверяет, что ошибка вызвана входными данными
func IsValidationError(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// floatParam число из JSON-параметров; строки вида "20,340,000" тоже
// принимаются. Отсутствующее или нечисловое значение дает NaN.
func floatParam(params map[string]interface{}, key string) float64 {
	switch v := params[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		f, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(v), ",", ""), 64)
		if err != nil {
			return math.NaN()
		}
		return f
	default:
		return math.NaN()
	}
}

func stringParam(params map[string]interface{}, key string) string {
	switch v := params[key].(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// termsParam список сроков; пустой список означает сроки по умолчанию
func termsParam(params map[string]interface{}, key string) ([]int, error) {
	raw, ok := params[key]
	if !ok || raw == nil {
		return nil, nil
	}
	switch v := raw.(type) {
	case []int:
		return v, nil
	case []interface{}:
		terms := make([]int, 0, len(v))
		for _, item := range v {
			f, ok := item.(float64)
			if !ok || f != math.Trunc(f) {
				return nil, fmt.Errorf("terms: срок должен быть целым числом месяцев, получено %v", item)
			}
			terms = append(terms, int(f))
		}
		return terms, nil
	default:
		return nil, fmt.Errorf("terms: ожидается массив, получено %T", raw)
	}
}
