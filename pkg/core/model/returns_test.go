package model

import (
	"math"
	"testing"
)

func TestInternalRateOfReturn(t *testing.T) {
	tests := []struct {
		name  string
		flows []float64
		want  float64
	}{
		// 2x over five years: (2)^(1/5) - 1
		{"double over five years", []float64{-40000, 0, 0, 0, 0, 80000}, 0.148698},
		// 3x over five years
		{"triple over five years", []float64{-10000, 0, 0, 0, 0, 30000}, 0.245731},
		// money back at par after one year
		{"flat one year", []float64{-1000, 1000}, 0.0},
		// total loss converges to the lower clamp
		{"total loss", []float64{-1000, 0, 0, 0, 0, 0.01}, -0.9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := internalRateOfReturn(tt.flows, 0.1)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("IRR = %.6f, want %.6f", got, tt.want)
			}
		})
	}
}

func TestInternalRateOfReturnDegenerate(t *testing.T) {
	if got := internalRateOfReturn(nil, 0.1); got != 0 {
		t.Errorf("IRR of no flows = %.4f, want 0", got)
	}
	if got := internalRateOfReturn([]float64{-1000}, 0.1); got != 0 {
		t.Errorf("IRR of a single flow = %.4f, want 0", got)
	}
}

func TestReturnsArithmetic(t *testing.T) {
	m := buildModel(t, baseCase())
	r := m.Returns()

	if r.ExitYear != 5 {
		t.Errorf("exit year = %d, want 5", r.ExitYear)
	}
	if math.Abs(r.ExitEV-r.ExitEBITDA*m.Assumptions().ExitMultiple) > 0.01 {
		t.Errorf("exit EV %.2f != exit EBITDA %.2f x multiple", r.ExitEV, r.ExitEBITDA)
	}
	if math.Abs(r.ExitEquityValue-(r.ExitEV-r.ExitDebt+r.ExitCash)) > 0.01 {
		t.Errorf("exit equity %.2f != EV - debt + cash", r.ExitEquityValue)
	}
	if r.EquityInvested <= 0 {
		t.Errorf("equity invested = %.2f, want positive", r.EquityInvested)
	}
	if math.Abs(r.MOIC-r.ExitEquityValue/r.EquityInvested) > 0.001 {
		t.Errorf("MOIC %.4f != exit equity / equity invested", r.MOIC)
	}
	// IRR must reproduce the MOIC over the holding period.
	impliedIRR := math.Pow(r.MOIC, 1/float64(r.ExitYear)) - 1
	if r.ExitEquityValue > 0 && math.Abs(r.IRR-impliedIRR) > 0.001 {
		t.Errorf("IRR %.4f inconsistent with MOIC %.4f over %d years", r.IRR, r.MOIC, r.ExitYear)
	}
}

func TestReturnsDeterministic(t *testing.T) {
	m := buildModel(t, baseCase())
	first := m.Returns()
	second := m.Returns()
	if *first != *second {
		t.Errorf("repeated calls disagree: %+v vs %+v", first, second)
	}
}

// A richer exit multiple must never produce worse returns, everything else
// held equal.
func TestReturnsMonotonicInExitMultiple(t *testing.T) {
	low := baseCase()
	low.ExitMultiple = 7.5
	high := baseCase()
	high.ExitMultiple = 9.0

	rLow := buildModel(t, low).Returns()
	rHigh := buildModel(t, high).Returns()

	if rHigh.ExitEquityValue <= rLow.ExitEquityValue {
		t.Errorf("exit equity did not rise with the multiple: %.2f vs %.2f",
			rHigh.ExitEquityValue, rLow.ExitEquityValue)
	}
	if rHigh.MOIC <= rLow.MOIC {
		t.Errorf("MOIC did not rise with the multiple: %.4f vs %.4f", rHigh.MOIC, rLow.MOIC)
	}
	if rHigh.IRR <= rLow.IRR {
		t.Errorf("IRR did not rise with the multiple: %.4f vs %.4f", rHigh.IRR, rLow.IRR)
	}
}

func TestReturnsExitYearClampedToHorizon(t *testing.T) {
	a := baseCase()
	a.ExitYear = 8 // beyond the five-year projection
	m := buildModel(t, a)

	r := m.Returns()
	if r.ExitYear != m.Years() {
		t.Errorf("exit year = %d, want clamped to horizon %d", r.ExitYear, m.Years())
	}
}
