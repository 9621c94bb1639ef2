package utils

import (
	"math"
	"testing"
)

func TestRound2(t *testing.T) {
	tests := []struct {
		name  string
		input float64
		want  float64
	}{
		{
			name:  "round to 2 decimals",
			input: 123.456789,
			want:  123.46,
		},
		{
			name:  "already 2 decimals",
			input: 123.45,
			want:  123.45,
		},
		{
			name:  "integer",
			input: 123.0,
			want:  123.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Round2(tt.input)
			if math.Abs(got-tt.want) > 0.01 {
				t.Errorf("Round2() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRoundWon(t *testing.T) {
	tests := []struct {
		input float64
		want  float64
	}{
		{input: 146446.66, want: 146447},
		{input: 2.5, want: 2},
		{input: 3.5, want: 4},
		{input: -0.4, want: 0},
	}

	for _, tt := range tests {
		if got := RoundWon(tt.input); got != tt.want {
			t.Errorf("RoundWon(%v) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestCeilTo(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		unit  float64
		want  float64
	}{
		{name: "rounds up", value: 1401190.97, unit: 10000, want: 1410000},
		{name: "exact multiple", value: 20000, unit: 10000, want: 20000},
		{name: "small excess", value: 70000.01, unit: 1000, want: 71000},
		{name: "zero", value: 0, unit: 1000, want: 0},
		{name: "non-positive unit", value: 12.3, unit: 0, want: 12.3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CeilTo(tt.value, tt.unit); got != tt.want {
				t.Errorf("CeilTo() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsFinite(t *testing.T) {
	tests := []struct {
		name  string
		input float64
		want  bool
	}{
		{
			name:  "finite number",
			input: 123.45,
			want:  true,
		},
		{
			name:  "infinity",
			input: math.Inf(1),
			want:  false,
		},
		{
			name:  "negative infinity",
			input: math.Inf(-1),
			want:  false,
		},
		{
			name:  "NaN",
			input: math.NaN(),
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsFinite(tt.input)
			if got != tt.want {
				t.Errorf("IsFinite() = %v, want %v", got, tt.want)
			}
		})
	}
}
