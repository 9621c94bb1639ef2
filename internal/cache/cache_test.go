package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestKey(t *testing.T) {
	params := map[string]interface{}{"car_price": 20340000.0, "company": "현대"}
	a, err := Key("ns", "pricing_complete", params)
	if err != nil {
		t.Fatalf("Key() error = %v", err)
	}
	b, _ := Key("ns", "pricing_complete", map[string]interface{}{"company": "현대", "car_price": 20340000.0})
	if a != b {
		t.Errorf("same params produce different keys: %s vs %s", a, b)
	}

	c, _ := Key("ns", "subscription_fees", params)
	if a == c {
		t.Error("different tools must not share keys")
	}

	d, _ := Key("other", "pricing_complete", params)
	if a == d {
		t.Error("different namespaces must not share keys")
	}
}

func TestFingerprint(t *testing.T) {
	type rate struct {
		InterestRate float64
	}
	a, err := Fingerprint(rate{0.11}, []int{1, 2})
	if err != nil {
		t.Fatalf("Fingerprint() error = %v", err)
	}
	b, _ := Fingerprint(rate{0.11}, []int{1, 2})
	c, _ := Fingerprint(rate{0.12}, []int{1, 2})
	if a != b {
		t.Errorf("same config produces different fingerprints: %s vs %s", a, b)
	}
	if a == c {
		t.Error("rate change must change the fingerprint")
	}

	if _, err := Fingerprint(func() {}); err == nil {
		t.Error("expected error for unencodable value")
	}
}

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	var got map[string]int64
	if err := c.Get(ctx, "missing", &got); !errors.Is(err, ErrMiss) {
		t.Errorf("Get() = %v, want ErrMiss", err)
	}

	want := map[string]int64{"fee_return_12m": 1410000}
	if err := c.Set(ctx, "k", want, time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := c.Get(ctx, "k", &got); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got["fee_return_12m"] != 1410000 {
		t.Errorf("Get() = %v", got)
	}
}
