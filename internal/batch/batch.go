package batch

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cloud-ru/subscription-pricing-go/internal/calculations"
	"github.com/cloud-ru/subscription-pricing-go/internal/config"
	"github.com/cloud-ru/subscription-pricing-go/internal/metrics"
	"github.com/cloud-ru/subscription-pricing-go/internal/reference"
	"github.com/cloud-ru/subscription-pricing-go/internal/validators"
)

// Row нормализованная строка складского листа
type Row struct {
	Key         string
	Price       float64 // NaN, если в исходном листе цены нет
	OptionPrice float64
	Fuel        string
	Company     string
	SubsidyKey  string
}

// Result строка с рассчитанными тарифами
type Result struct {
	Row     Row
	Input   calculations.PricingInput
	Pricing *calculations.PricingResult
	Err     error
}

// Pricer пакетный расчет по строкам
type Pricer struct {
	Config    *config.Config // границы допустимых цен; nil отключает проверку
	Engine    *calculations.Engine
	Subsidies *reference.SubsidyTable
	Terms     []int
	Workers   int
	Logger    *zap.Logger
}

// Input переводит строку листа во вход движка: цена по умолчанию вместо
// пустой, субсидии из справочника
func (p *Pricer) Input(row Row) calculations.PricingInput {
	national, lease := p.Subsidies.Lookup(row.SubsidyKey)
	return calculations.PricingInput{
		SubscriptionInput: calculations.SubscriptionInput{
			CarPrice:        validators.NormalizeCarPrice(row.Price, p.Engine.Params().DefaultCarPrice),
			FuelType:        row.Fuel,
			SubsidyNational: national,
			SubsidyLease:    lease,
			Company:         row.Company,
			Terms:           p.Terms,
		},
		OptionPrice: validators.NormalizeAmount(row.OptionPrice),
	}
}

// check те же границы цен, что и у инструментов
func (p *Pricer) check(in calculations.PricingInput) error {
	if p.Config == nil {
		return nil
	}
	if err := validators.CheckCarPrice(p.Config, in.CarPrice); err != nil {
		return err
	}
	return validators.CheckOptionPrice(p.Config, in.OptionPrice)
}

// Price считает каждую строку независимо. Результаты идут в порядке
// входа; ошибка строки не останавливает остальные.
func (p *Pricer) Price(ctx context.Context, rows []Row) ([]Result, error) {
	log := p.Logger
	if log == nil {
		log = zap.NewNop()
	}
	workers := p.Workers
	if workers < 1 {
		workers = 1
	}

	results := make([]Result, len(rows))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, row := range rows {
		i, row := i, row
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			in := p.Input(row)
			var pricing *calculations.PricingResult
			err := p.check(in)
			if err == nil {
				pricing, err = p.Engine.CalculateComplete(in)
			}
			results[i] = Result{Row: row, Input: in, Pricing: pricing, Err: err}
			if err != nil {
				metrics.BatchRows.WithLabelValues("error").Inc()
				log.Warn("row pricing failed", zap.Int("row", i), zap.String("key", row.Key), zap.Error(err))
				return nil
			}
			metrics.BatchRows.WithLabelValues("ok").Inc()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("batch pricing interrupted: %w", err)
	}
	log.Info("batch priced", zap.Int("rows", len(rows)), zap.Int("workers", workers))
	return results, nil
}
