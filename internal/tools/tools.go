package tools

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/cloud-ru/subscription-pricing-go/internal/cache"
	"github.com/cloud-ru/subscription-pricing-go/internal/calculations"
	"github.com/cloud-ru/subscription-pricing-go/internal/config"
	"github.com/cloud-ru/subscription-pricing-go/internal/metrics"
	"github.com/cloud-ru/subscription-pricing-go/internal/reference"
	"github.com/cloud-ru/subscription-pricing-go/internal/validators"
)

// Имена инструментов
const (
	SubscriptionFeesTool       = "subscription_fees"
	OptionFeesTool             = "option_fees"
	PricingCompleteTool        = "pricing_complete"
	EarlyRepaymentScheduleTool = "early_repayment_schedule"
	InstallmentScheduleTool    = "installment_schedule"
	ResidualValuesTool         = "residual_values"
)

// ToolHandler представляет обработчик инструмента
type ToolHandler func(ctx context.Context, params map[string]interface{}) (interface{}, error)

// Deps зависимости обработчиков
type Deps struct {
	Config    *config.Config
	Engine    *calculations.Engine
	Subsidies *reference.SubsidyTable
	Tracer    trace.Tracer
}

// Fingerprint отпечаток параметров движка, таблицы лет и справочника
// субсидий для namespace кэша результатов
func (d Deps) Fingerprint() (string, error) {
	return cache.Fingerprint(d.Engine.Params(), d.Engine.Schedule(), d.Subsidies.Rows())
}

// Registry все инструменты по имени
func Registry(d Deps) map[string]ToolHandler {
	return map[string]ToolHandler{
		SubscriptionFeesTool:       SubscriptionFeesHandler(d),
		OptionFeesTool:             OptionFeesHandler(d),
		PricingCompleteTool:        PricingCompleteHandler(d),
		EarlyRepaymentScheduleTool: EarlyRepaymentScheduleHandler(d),
		InstallmentScheduleTool:    InstallmentScheduleHandler(d),
		ResidualValuesTool:         ResidualValuesHandler(d),
	}
}

// Names отсортированные имена инструментов
func Names(registry map[string]ToolHandler) []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// call общая обвязка: спан, счетчики, длительность
func call(ctx context.Context, d Deps, toolName string, fn func(ctx context.Context, span trace.Span) (interface{}, error)) (interface{}, error) {
	ctx, span := d.Tracer.Start(ctx, toolName)
	defer span.End()

	start := time.Now()
	defer func() {
		metrics.PricingDuration.WithLabelValues(toolName).Observe(time.Since(start).Seconds())
	}()

	result, err := fn(ctx, span)
	if err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Bool("success", true))
	metrics.ToolCalls.WithLabelValues(toolName, "success").Inc()
	return result, nil
}

func validationFailed(span trace.Span, toolName string, err error) error {
	span.SetAttributes(attribute.String("error", "validation_error"))
	metrics.ToolCalls.WithLabelValues(toolName, "validation_error").Inc()
	metrics.CalculationErrors.WithLabelValues(toolName, "validation").Inc()
	return &ValidationError{Err: err}
}

func calculationFailed(span trace.Span, toolName string, err error) error {
	span.SetAttributes(attribute.String("error", "calculation_error"))
	metrics.ToolCalls.WithLabelValues(toolName, "error").Inc()
	metrics.CalculationErrors.WithLabelValues(toolName, "calculation").Inc()
	return fmt.Errorf("ошибка при выполнении расчета: %w", err)
}

// subscriptionInput собирает и проверяет вход расчета подписки.
// Нечисловая цена заменяется ценой по умолчанию.
func subscriptionInput(d Deps, params map[string]interface{}) (calculations.SubscriptionInput, error) {
	in := calculations.SubscriptionInput{
		CarPrice: validators.NormalizeCarPrice(floatParam(params, "car_price"), d.Engine.Params().DefaultCarPrice),
		FuelType: stringParam(params, "fuel_type"),
		Company:  stringParam(params, "company"),
	}

	if key := stringParam(params, "subsidy_key"); key != "" {
		in.SubsidyNational, in.SubsidyLease = d.Subsidies.Lookup(key)
	} else {
		in.SubsidyNational = validators.NormalizeAmount(floatParam(params, "subsidy_national"))
		in.SubsidyLease = validators.NormalizeAmount(floatParam(params, "subsidy_lease"))
	}

	terms, err := termsParam(params, "terms")
	if err != nil {
		return in, err
	}
	in.Terms = terms

	if err := validators.CheckCarPrice(d.Config, in.CarPrice); err != nil {
		return in, err
	}
	if err := validators.CheckSubsidy(d.Config, "subsidy_national", in.SubsidyNational); err != nil {
		return in, err
	}
	if err := validators.CheckSubsidy(d.Config, "subsidy_lease", in.SubsidyLease); err != nil {
		return in, err
	}
	if err := validators.CheckTerms(d.Config, in.Terms); err != nil {
		return in, err
	}
	return in, nil
}

func setInputAttributes(span trace.Span, in calculations.SubscriptionInput) {
	span.SetAttributes(
		attribute.Float64("car_price", in.CarPrice),
		attribute.String("fuel_type", in.FuelType),
		attribute.String("company", in.Company),
		attribute.Float64("subsidy_national", in.SubsidyNational),
		attribute.Float64("subsidy_lease", in.SubsidyLease),
		attribute.IntSlice("terms", in.Terms),
	)
}

// SubscriptionFeesHandler тарифы возвратного типа и с выкупом
func SubscriptionFeesHandler(d Deps) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		toolName := SubscriptionFeesTool
		return call(ctx, d, toolName, func(ctx context.Context, span trace.Span) (interface{}, error) {
			in, err := subscriptionInput(d, params)
			if err != nil {
				return nil, validationFailed(span, toolName, err)
			}
			setInputAttributes(span, in)

			fees, err := d.Engine.SubscriptionFees(in)
			if err != nil {
				return nil, calculationFailed(span, toolName, err)
			}
			return fees, nil
		})
	}
}

// OptionFeesHandler надбавка за опции по срокам
func OptionFeesHandler(d Deps) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		toolName := OptionFeesTool
		return call(ctx, d, toolName, func(ctx context.Context, span trace.Span) (interface{}, error) {
			optionPrice := validators.NormalizeAmount(floatParam(params, "option_price"))
			terms, err := termsParam(params, "terms")
			if err == nil {
				err = validators.CheckOptionPrice(d.Config, optionPrice)
			}
			if err == nil {
				err = validators.CheckTerms(d.Config, terms)
			}
			if err != nil {
				return nil, validationFailed(span, toolName, err)
			}
			span.SetAttributes(attribute.Float64("option_price", optionPrice))

			fees, err := d.Engine.OptionFees(optionPrice, terms)
			if err != nil {
				return nil, calculationFailed(span, toolName, err)
			}
			return fees, nil
		})
	}
}

// PricingCompleteHandler полный расчет с опциями и сводкой
func PricingCompleteHandler(d Deps) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		toolName := PricingCompleteTool
		return call(ctx, d, toolName, func(ctx context.Context, span trace.Span) (interface{}, error) {
			in, err := subscriptionInput(d, params)
			if err != nil {
				return nil, validationFailed(span, toolName, err)
			}
			optionPrice := validators.NormalizeAmount(floatParam(params, "option_price"))
			if err := validators.CheckOptionPrice(d.Config, optionPrice); err != nil {
				return nil, validationFailed(span, toolName, err)
			}
			setInputAttributes(span, in)
			span.SetAttributes(attribute.Float64("option_price", optionPrice))

			result, err := d.Engine.CalculateComplete(calculations.PricingInput{
				SubscriptionInput: in,
				OptionPrice:       optionPrice,
			})
			if err != nil {
				return nil, calculationFailed(span, toolName, err)
			}

			span.SetAttributes(
				attribute.Float64("total_cost", result.TotalCost),
				attribute.Int64("fee_list", result.FeeList),
			)
			return result, nil
		})
	}
}

// EarlyRepaymentScheduleHandler остатки и штрафы досрочного погашения
func EarlyRepaymentScheduleHandler(d Deps) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		toolName := EarlyRepaymentScheduleTool
		return call(ctx, d, toolName, func(ctx context.Context, span trace.Span) (interface{}, error) {
			in, err := subscriptionInput(d, params)
			if err != nil {
				return nil, validationFailed(span, toolName, err)
			}
			setInputAttributes(span, in)
			return d.Engine.EarlyRepayment(in), nil
		})
	}
}

// InstallmentScheduleHandler помесячный график рассрочки за автомобиль
func InstallmentScheduleHandler(d Deps) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		toolName := InstallmentScheduleTool
		return call(ctx, d, toolName, func(ctx context.Context, span trace.Span) (interface{}, error) {
			in, err := subscriptionInput(d, params)
			if err != nil {
				return nil, validationFailed(span, toolName, err)
			}
			setInputAttributes(span, in)

			p := d.Engine.Params()
			cost, _ := d.Engine.CarCost(in.CarPrice, in.FuelType, in.SubsidyNational, in.SubsidyLease, in.Company)
			principal := d.Engine.InstallmentPrincipal(cost)
			span.SetAttributes(attribute.Float64("down_payment", d.Engine.DownPayment(cost)))

			result, err := calculations.AmortizationSchedule(principal, p.InterestRate, p.InstallmentMonths)
			if err != nil {
				return nil, calculationFailed(span, toolName, err)
			}
			span.SetAttributes(attribute.Float64("monthly_payment", result.Summary.MonthlyPayment))
			return result, nil
		})
	}
}

// ResidualValuesHandler остаточная стоимость по годам
func ResidualValuesHandler(d Deps) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		toolName := ResidualValuesTool
		return call(ctx, d, toolName, func(ctx context.Context, span trace.Span) (interface{}, error) {
			in, err := subscriptionInput(d, params)
			if err != nil {
				return nil, validationFailed(span, toolName, err)
			}
			setInputAttributes(span, in)

			cost, totalCost := d.Engine.CarCost(in.CarPrice, in.FuelType, in.SubsidyNational, in.SubsidyLease, in.Company)
			return map[string]interface{}{
				"cost":            cost,
				"total_cost":      totalCost,
				"residual_values": d.Engine.ResidualValues(totalCost),
			}, nil
		})
	}
}
