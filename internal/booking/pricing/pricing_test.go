package pricing

import (
	"math"
	"testing"
)

const tolerance = 1e-9

func TestGrossScenario(t *testing.T) {
	calc := NewCalculator(0.15)
	if got := calc.Gross(1500); math.Abs(got-1725) > tolerance {
		t.Fatalf("Gross(1500) = %v, want 1725", got)
	}
	net, commission := calc.Split(1725)
	if math.Abs(net-1500) > tolerance {
		t.Fatalf("net = %v, want 1500", net)
	}
	if math.Abs(commission-225) > tolerance {
		t.Fatalf("commission = %v, want 225", commission)
	}
}

func TestRoundTrip(t *testing.T) {
	calc := NewCalculator(0.15)
	for _, p := range []float64{1, 0.01, 800, 1500, 1999.99, 52000, 123456.78} {
		net, _ := calc.Split(calc.Gross(p))
		if math.Abs(net-p) > tolerance*p {
			t.Errorf("Split(Gross(%v)) net = %v, want %v", p, net, p)
		}
	}
}

func TestSplitSumsToGross(t *testing.T) {
	calc := NewCalculator(0.15)
	for _, g := range []float64{1.15, 920, 1725, 2300, 999999.99} {
		net, commission := calc.Split(g)
		if math.Abs(net+commission-g) > tolerance {
			t.Errorf("Split(%v): net %v + commission %v != gross", g, net, commission)
		}
		if net <= 0 || commission <= 0 {
			t.Errorf("Split(%v) produced non-positive parts: %v, %v", g, net, commission)
		}
	}
}

func TestNonPositiveRateFallsBack(t *testing.T) {
	if got := NewCalculator(0).Rate(); got != DefaultCommissionRate {
		t.Fatalf("rate = %v, want default %v", got, DefaultCommissionRate)
	}
	if got := NewCalculator(-1).Rate(); got != DefaultCommissionRate {
		t.Fatalf("rate = %v, want default %v", got, DefaultCommissionRate)
	}
}
