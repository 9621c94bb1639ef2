package tools

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel/trace/noop"

	"github.com/cloud-ru/subscription-pricing-go/internal/calculations"
	"github.com/cloud-ru/subscription-pricing-go/internal/config"
	"github.com/cloud-ru/subscription-pricing-go/internal/reference"
)

func testDeps(t *testing.T) Deps {
	t.Helper()
	cfg, err := config.LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	return Deps{
		Config: cfg,
		Engine: calculations.DefaultEngine(),
		Subsidies: reference.NewSubsidyTable([]reference.Subsidy{
			{Company: "현대", Trim: "아이오닉5", National: 500, Lease: 100},
		}),
		Tracer: noop.NewTracerProvider().Tracer("test"),
	}
}

func TestSubscriptionFeesHandler(t *testing.T) {
	handler := SubscriptionFeesHandler(testDeps(t))

	tests := []struct {
		name      string
		params    map[string]interface{}
		wantError bool
		check     func(*testing.T, calculations.FeeTable)
	}{
		{
			name:   "default terms",
			params: map[string]interface{}{"car_price": 20340000.0},
			check: func(t *testing.T, fees calculations.FeeTable) {
				if fees["fee_return_12m"] != 1410000 || fees["fee_purchase_12m"] != 2610000 {
					t.Errorf("unexpected 12 month fees: %v", fees)
				}
				if len(fees) != 8 {
					t.Errorf("expected 8 fees, got %d", len(fees))
				}
			},
		},
		{
			name:   "price as formatted string",
			params: map[string]interface{}{"car_price": "20,340,000", "terms": []interface{}{12.0}},
			check: func(t *testing.T, fees calculations.FeeTable) {
				if fees["fee_return_12m"] != 1410000 {
					t.Errorf("fee_return_12m = %d", fees["fee_return_12m"])
				}
			},
		},
		{
			name:   "subsidy key lookup",
			params: map[string]interface{}{"car_price": 45000000.0, "fuel_type": "전기", "company": "현대", "subsidy_key": "아이오닉5"},
			check: func(t *testing.T, fees calculations.FeeTable) {
				if fees["fee_return_12m"] != 1950000 {
					t.Errorf("fee_return_12m = %d, want 1950000", fees["fee_return_12m"])
				}
			},
		},
		{
			name:   "missing price falls back to default",
			params: map[string]interface{}{"car_price": "n/a", "terms": []interface{}{12.0}},
			check: func(t *testing.T, fees calculations.FeeTable) {
				if fees["fee_return_12m"] != 2010000 {
					t.Errorf("fee_return_12m = %d, want 2010000", fees["fee_return_12m"])
				}
			},
		},
		{
			name:      "fractional term",
			params:    map[string]interface{}{"car_price": 20340000.0, "terms": []interface{}{12.5}},
			wantError: true,
		},
		{
			name:      "term too long",
			params:    map[string]interface{}{"car_price": 20340000.0, "terms": []interface{}{120.0}},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := handler(context.Background(), tt.params)
			if (err != nil) != tt.wantError {
				t.Fatalf("handler error = %v, wantError %v", err, tt.wantError)
			}
			if tt.wantError {
				if !IsValidationError(err) {
					t.Errorf("expected validation error, got %v", err)
				}
				return
			}
			tt.check(t, result.(calculations.FeeTable))
		})
	}
}

func TestOptionFeesHandler(t *testing.T) {
	handler := OptionFeesHandler(testDeps(t))

	result, err := handler(context.Background(), map[string]interface{}{"option_price": 530000.0})
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}
	fees := result.(calculations.FeeTable)
	if fees["fee_options_12m"] != 71000 || fees["fee_options_84m"] != 12000 {
		t.Errorf("unexpected option fees: %v", fees)
	}

	result, err = handler(context.Background(), map[string]interface{}{})
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}
	for key, fee := range result.(calculations.FeeTable) {
		if fee != 0 {
			t.Errorf("%s = %d without options", key, fee)
		}
	}
}

func TestPricingCompleteHandler(t *testing.T) {
	handler := PricingCompleteHandler(testDeps(t))

	result, err := handler(context.Background(), map[string]interface{}{
		"car_price":    20340000.0,
		"option_price": 530000.0,
	})
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}
	pricing := result.(*calculations.PricingResult)
	if pricing.FeeList != 1410000+71000 {
		t.Errorf("FeeList = %d, want %d", pricing.FeeList, 1410000+71000)
	}

	_, err = handler(context.Background(), map[string]interface{}{
		"car_price":    20340000.0,
		"option_price": 5e12,
	})
	if !IsValidationError(err) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestScheduleHandlers(t *testing.T) {
	deps := testDeps(t)
	params := map[string]interface{}{"car_price": 20340000.0}

	result, err := EarlyRepaymentScheduleHandler(deps)(context.Background(), params)
	if err != nil {
		t.Fatalf("early repayment error = %v", err)
	}
	if entries := result.([]calculations.EarlyRepaymentEntry); len(entries) != calculations.MaxYear {
		t.Errorf("expected %d entries, got %d", calculations.MaxYear, len(entries))
	}

	result, err = InstallmentScheduleHandler(deps)(context.Background(), params)
	if err != nil {
		t.Fatalf("installment error = %v", err)
	}
	schedule := result.(*calculations.InstallmentSchedule)
	if len(schedule.Schedule) != 60 {
		t.Errorf("expected 60 months, got %d", len(schedule.Schedule))
	}
	if schedule.Schedule[59].RemainingPrincipal != 0 {
		t.Errorf("loan not repaid: %v", schedule.Schedule[59].RemainingPrincipal)
	}

	result, err = ResidualValuesHandler(deps)(context.Background(), params)
	if err != nil {
		t.Fatalf("residual error = %v", err)
	}
	values := result.(map[string]interface{})["residual_values"].(map[string]float64)
	if values["Y1"] != 18931548 {
		t.Errorf("Y1 = %v, want 18931548", values["Y1"])
	}
}

func TestRegistry(t *testing.T) {
	registry := Registry(testDeps(t))
	names := Names(registry)
	if len(names) != 6 {
		t.Fatalf("expected 6 tools, got %v", names)
	}
	if names[0] != EarlyRepaymentScheduleTool {
		t.Errorf("names not sorted: %v", names)
	}
}
