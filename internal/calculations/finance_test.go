package calculations

import (
	"math"
	"testing"
)

func TestPmt(t *testing.T) {
	tests := []struct {
		name       string
		principal  float64
		annualRate float64
		months     int
		want       float64
		tolerance  float64
	}{
		{
			name:       "classic annuity",
			principal:  24000000,
			annualRate: 0.11,
			months:     60,
			want:       521818.1537434351,
			tolerance:  0.005,
		},
		{
			name:       "zero rate splits evenly",
			principal:  100000,
			annualRate: 0,
			months:     10,
			want:       10000,
			tolerance:  0,
		},
		{
			name:       "zero rate with remainder",
			principal:  1000,
			annualRate: 0,
			months:     3,
			want:       1000.0 / 3,
			tolerance:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Pmt(tt.principal, tt.annualRate, tt.months)
			if math.Abs(got-tt.want) > tt.tolerance {
				t.Errorf("Pmt() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPmtMatchesClosedForm(t *testing.T) {
	principal, rate, months := 24000000.0, 0.11, 60
	r := rate / 12
	want := principal * r / (1 - math.Pow(1+r, -float64(months)))
	if got := Pmt(principal, rate, months); math.Abs(got-want) > 0.01 {
		t.Errorf("Pmt() = %v, closed form %v", got, want)
	}
}

func TestRemainingBalance(t *testing.T) {
	tests := []struct {
		name    string
		elapsed int
		want    float64
	}{
		{name: "no payments yet", elapsed: 0, want: 24000000},
		{name: "after three years", elapsed: 36, want: 11195931.28398634},
		{name: "fully paid", elapsed: 60, want: 0},
		{name: "past the term stays paid", elapsed: 84, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RemainingBalance(24000000, 0.11, 60, tt.elapsed)
			if math.Abs(got-tt.want) > 0.01 {
				t.Errorf("RemainingBalance() = %v, want %v", got, tt.want)
			}
			if got < 0 {
				t.Errorf("RemainingBalance() = %v, must not be negative", got)
			}
		})
	}
}

func TestRemainingBalanceZeroRate(t *testing.T) {
	got := RemainingBalance(1200, 0, 12, 3)
	if math.Abs(got-900) > 1e-9 {
		t.Errorf("RemainingBalance() = %v, want 900", got)
	}
}

func TestEarlyRepaymentTable(t *testing.T) {
	table := EarlyRepaymentTable(17408320, 0.11, 60, 0.01)

	if len(table) != MaxYear {
		t.Fatalf("expected %d checkpoints, got %d", MaxYear, len(table))
	}

	want := map[int]struct {
		balance float64
		penalty float64
	}{
		12: {balance: 14644666.471407948, penalty: 146447},
		24: {balance: 11561206.172840431, penalty: 115612},
		36: {balance: 8120931.437068536, penalty: 81209},
		48: {balance: 4282552.11268132, penalty: 42826},
	}
	for month, w := range want {
		entry := table[month]
		if entry.Month != month {
			t.Errorf("month %d: entry.Month = %d", month, entry.Month)
		}
		if math.Abs(entry.RemainingBalance-w.balance) > 0.01 {
			t.Errorf("month %d: balance = %v, want %v", month, entry.RemainingBalance, w.balance)
		}
		if entry.Penalty != w.penalty {
			t.Errorf("month %d: penalty = %v, want %v", month, entry.Penalty, w.penalty)
		}
	}

	for _, month := range []int{60, 72, 84} {
		if table[month].RemainingBalance > 0.01 || table[month].Penalty != 0 {
			t.Errorf("month %d: expected paid-off loan, got %+v", month, table[month])
		}
	}
}

func TestAmortizationSchedule(t *testing.T) {
	tests := []struct {
		name       string
		principal  float64
		annualRate float64
		months     int
		wantError  bool
		check      func(*testing.T, *InstallmentSchedule)
	}{
		{
			name:       "basic installment",
			principal:  1000000,
			annualRate: 0.12,
			months:     12,
			check: func(t *testing.T, result *InstallmentSchedule) {
				if len(result.Schedule) != 12 {
					t.Errorf("expected 12 months, got %d", len(result.Schedule))
				}
				if result.Summary.Principal != 1000000 {
					t.Errorf("expected principal 1000000, got %f", result.Summary.Principal)
				}
				if result.Summary.TotalPaid <= result.Summary.Principal {
					t.Error("total paid should be greater than principal")
				}
				// Проверяем, что остаток в последнем месяце равен 0
				lastMonth := result.Schedule[len(result.Schedule)-1]
				if lastMonth.RemainingPrincipal != 0 {
					t.Errorf("expected remaining principal 0, got %f", lastMonth.RemainingPrincipal)
				}
			},
		},
		{
			name:       "zero rate",
			principal:  100000,
			annualRate: 0,
			months:     10,
			check: func(t *testing.T, result *InstallmentSchedule) {
				if result.Summary.MonthlyPayment != 10000 {
					t.Errorf("expected monthly payment 10000, got %f", result.Summary.MonthlyPayment)
				}
				if result.Summary.TotalInterest != 0 {
					t.Errorf("expected total interest 0, got %f", result.Summary.TotalInterest)
				}
			},
		},
		{
			name:       "no months",
			principal:  100000,
			annualRate: 0.11,
			months:     0,
			wantError:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := AmortizationSchedule(tt.principal, tt.annualRate, tt.months)
			if (err != nil) != tt.wantError {
				t.Errorf("AmortizationSchedule() error = %v, wantError %v", err, tt.wantError)
				return
			}
			if !tt.wantError && tt.check != nil {
				tt.check(t, result)
			}
		})
	}
}
