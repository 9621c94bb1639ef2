package calculations

import "testing"

func TestResidualValues(t *testing.T) {
	engine := DefaultEngine()
	got := engine.ResidualValues(21760400)

	want := map[string]float64{
		"Y1": 18931548,
		"Y2": 16102696,
		"Y3": 13273844,
		"Y4": 10444992,
		"Y5": 7616140,
		"Y6": 6092912,
		"Y7": 3481664,
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d years, got %d", len(want), len(got))
	}
	for label, value := range want {
		if got[label] != value {
			t.Errorf("%s = %v, want %v", label, got[label], value)
		}
	}
}

func TestResidualValuesDecrease(t *testing.T) {
	engine := DefaultEngine()
	for _, cost := range []float64{1000000, 21760400, 32000000, 87654321} {
		values := engine.residualByYear(cost)
		for year := 2; year <= MaxYear; year++ {
			if values[year] >= values[year-1] {
				t.Errorf("cost %v: Y%d = %v not below Y%d = %v", cost, year, values[year], year-1, values[year-1])
			}
		}
	}
}

func TestResidualRegimeChangesAfterFifthYear(t *testing.T) {
	engine := DefaultEngine()
	values := engine.ResidualValues(10000000)
	if values["Y5"] != 3500000 {
		t.Errorf("Y5 = %v, want 3500000", values["Y5"])
	}
	if values["Y6"] != 2800000 {
		t.Errorf("Y6 = %v, want 2800000", values["Y6"])
	}
}
