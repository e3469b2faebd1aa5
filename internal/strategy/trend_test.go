package strategy

import (
	"math"
	"testing"

	"TrendScout/internal/model"
)

func TestClassifyTrend(t *testing.T) {
	nan := math.NaN()
	tests := []struct {
		name                        string
		close, sma20, sma50, sma200 float64
		want                        model.TrendLabel
	}{
		{"sma20 undefined", 100, nan, 95, 90, model.TrendInsufficient},
		{"sma50 undefined", 100, 98, nan, 90, model.TrendInsufficient},
		{"sma200 undefined", 100, 98, 95, nan, model.TrendInsufficient},
		{"strong uptrend", 110, 105, 100, 95, model.TrendStrongUptrend},
		{"uptrend, sma200 equal to sma50", 110, 105, 100, 100, model.TrendUptrend},
		{"uptrend, sma200 between", 110, 105, 100, 98, model.TrendUptrend},
		{"strong downtrend", 90, 95, 100, 105, model.TrendStrongDowntrend},
		{"downtrend without sma200 guard", 90, 95, 100, 98, model.TrendDowntrend},
		{"downtrend, sma200 lowest", 90, 95, 100, 80, model.TrendDowntrend},
		{"sideways, close between MAs", 97, 95, 100, 105, model.TrendSidewaysMixed},
		{"sideways, equal everything", 100, 100, 100, 100, model.TrendSidewaysMixed},
		{"sideways, close above falling MAs", 110, 95, 100, 105, model.TrendSidewaysMixed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyTrend(tt.close, tt.sma20, tt.sma50, tt.sma200)
			if got != tt.want {
				t.Errorf("ClassifyTrend(%v, %v, %v, %v) = %q, want %q",
					tt.close, tt.sma20, tt.sma50, tt.sma200, got, tt.want)
			}
		})
	}
}

// The uptrend rule carries an sma200 <= sma50 guard; the downtrend rule does not.
// Mirrored inputs therefore do not classify symmetrically.
func TestClassifyTrend_AsymmetricGuard(t *testing.T) {
	// Mirror of "uptrend, sma200 between": sma200 sits between sma50 and sma20.
	got := ClassifyTrend(90, 95, 100, 102)
	if got != model.TrendDowntrend {
		t.Errorf("expected Downtrend despite sma200 above sma50, got %q", got)
	}
}

// Every tuple with all three SMAs defined classifies to exactly one of the five
// non-insufficient labels.
func TestClassifyTrend_Total(t *testing.T) {
	values := []float64{80, 90, 95, 100, 105, 110, 120}
	defined := map[model.TrendLabel]bool{
		model.TrendStrongUptrend:   true,
		model.TrendUptrend:         true,
		model.TrendStrongDowntrend: true,
		model.TrendDowntrend:       true,
		model.TrendSidewaysMixed:   true,
	}
	for _, c := range values {
		for _, s20 := range values {
			for _, s50 := range values {
				for _, s200 := range values {
					got := ClassifyTrend(c, s20, s50, s200)
					if !defined[got] {
						t.Fatalf("ClassifyTrend(%v, %v, %v, %v) = %q, not a defined label",
							c, s20, s50, s200, got)
					}
				}
			}
		}
	}
}
