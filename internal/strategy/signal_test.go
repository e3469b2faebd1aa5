package strategy

import (
	"math"
	"testing"

	"TrendScout/internal/indicator"
	"TrendScout/internal/model"
)

// rowsEndingIn builds a 30-row history whose two final rows carry the given values.
// Only the last two rows matter to BuildScanRow.
func rowsEndingIn(prevClose float64, last model.IndicatorRow) []model.IndicatorRow {
	rows := make([]model.IndicatorRow, 30)
	rows[28].Close = prevClose
	rows[29] = last
	return rows
}

func TestBuildScanRow_MinimumHistory(t *testing.T) {
	rows := make([]model.IndicatorRow, 29)
	if got := BuildScanRow("AAPL", rows, 25000, 0.003); got != nil {
		t.Fatalf("expected nil for 29 rows of history, got %+v", got)
	}
	if got := BuildScanRow("AAPL", nil, 25000, 0.003); got != nil {
		t.Fatalf("expected nil for empty history, got %+v", got)
	}
}

func TestBuildScanRow_Signals(t *testing.T) {
	nan := math.NaN()
	tests := []struct {
		name      string
		prevClose float64
		last      model.IndicatorRow
		want      model.SignalLabel
	}{
		{
			name:      "momentum long",
			prevClose: 108,
			last:      model.IndicatorRow{OHLCV: model.OHLCV{Close: 110}, SMA20: 105, SMA50: 100, SMA200: 95, RSI14: 60, ATR14: 2},
			want:      model.SignalMomentumLong,
		},
		{
			name:      "momentum blocked by negative day",
			prevClose: 112,
			last:      model.IndicatorRow{OHLCV: model.OHLCV{Close: 110}, SMA20: 105, SMA50: 100, SMA200: 95, RSI14: 60, ATR14: 2},
			want:      model.SignalNoTrade,
		},
		{
			name:      "momentum blocked by hot RSI",
			prevClose: 108,
			last:      model.IndicatorRow{OHLCV: model.OHLCV{Close: 110}, SMA20: 105, SMA50: 100, SMA200: 95, RSI14: 80, ATR14: 2},
			want:      model.SignalNoTrade,
		},
		{
			name:      "oversold watch above long-term trend",
			prevClose: 102,
			last:      model.IndicatorRow{OHLCV: model.OHLCV{Close: 100}, SMA20: 103, SMA50: 102, SMA200: 95, RSI14: 25, ATR14: 2},
			want:      model.SignalOversoldWatch,
		},
		{
			name:      "oversold below sma200 is no trade",
			prevClose: 102,
			last:      model.IndicatorRow{OHLCV: model.OHLCV{Close: 100}, SMA20: 103, SMA50: 102, SMA200: 105, RSI14: 25, ATR14: 2},
			want:      model.SignalNoTrade,
		},
		{
			name:      "avoid short bias",
			prevClose: 92,
			last:      model.IndicatorRow{OHLCV: model.OHLCV{Close: 90}, SMA20: 95, SMA50: 100, SMA200: 105, RSI14: 40, ATR14: 2},
			want:      model.SignalAvoidShortBias,
		},
		{
			name:      "undefined RSI falls through to no trade",
			prevClose: 108,
			last:      model.IndicatorRow{OHLCV: model.OHLCV{Close: 110}, SMA20: 105, SMA50: 100, SMA200: 95, RSI14: nan, ATR14: 2},
			want:      model.SignalNoTrade,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := BuildScanRow("TEST", rowsEndingIn(tt.prevClose, tt.last), 25000, 0.003)
			if row == nil {
				t.Fatal("expected a scan row, got nil")
			}
			if row.Signal != tt.want {
				t.Errorf("signal = %q, want %q (trend %q)", row.Signal, tt.want, row.Trend)
			}
		})
	}
}

func TestSizePosition(t *testing.T) {
	tests := []struct {
		name            string
		lastClose, atr  float64
		capital, risk   float64
		wantStop        float64
		wantRiskDollars float64
		wantSize        int
	}{
		{"atr stop", 100, 2, 25000, 0.003, 98, 75, 37},
		{"fallback when atr zero", 100, 0, 25000, 0.003, 97, 75, 25},
		{"fallback when atr undefined", 100, math.NaN(), 25000, 0.003, 97, 75, 25},
		{"fallback when atr negative", 100, -1, 25000, 0.003, 97, 75, 25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stop, riskDollars, size := SizePosition(tt.lastClose, tt.atr, tt.capital, tt.risk)
			if math.Abs(stop-tt.wantStop) > 1e-9 {
				t.Errorf("stop = %v, want %v", stop, tt.wantStop)
			}
			if math.Abs(riskDollars-tt.wantRiskDollars) > 1e-9 {
				t.Errorf("riskDollars = %v, want %v", riskDollars, tt.wantRiskDollars)
			}
			if size != tt.wantSize {
				t.Errorf("size = %d, want %d", size, tt.wantSize)
			}
		})
	}
}

func TestSizePosition_DegenerateStop(t *testing.T) {
	// ATR wider than the price pushes the stop non-positive: zero out, no error.
	stop, riskDollars, size := SizePosition(2, 5, 25000, 0.003)
	if stop > 0 {
		t.Fatalf("expected non-positive stop, got %v", stop)
	}
	if riskDollars != 0 || size != 0 {
		t.Errorf("degenerate stop must zero risk and size, got $%v / %d units", riskDollars, size)
	}
}

func TestBuildScanRow_FlatSeriesFallbackStop(t *testing.T) {
	bars := make([]model.OHLCV, 250)
	for i := range bars {
		bars[i] = model.OHLCV{Open: 100, High: 100, Low: 100, Close: 100, Volume: 1000}
	}
	row := BuildScanRow("FLAT", indicator.Compute(bars), 25000, 0.003)
	if row == nil {
		t.Fatal("expected a scan row")
	}
	// ATR is exactly 0 on a flat series, so the stop falls back to 3% of close.
	if math.Abs(row.StopLoss-97) > 1e-9 {
		t.Errorf("stop = %v, want 97", row.StopLoss)
	}
	if row.Trend != model.TrendSidewaysMixed {
		t.Errorf("trend = %q, want %q", row.Trend, model.TrendSidewaysMixed)
	}
	// Flat series RSI is 0 by the literal formula, but close == sma200 blocks
	// the oversold rule.
	if row.Signal != model.SignalNoTrade {
		t.Errorf("signal = %q, want %q", row.Signal, model.SignalNoTrade)
	}
}

func TestBuildScanRow_SteadyRiseScenario(t *testing.T) {
	// 250 daily bars rising 100 -> 349: all SMAs ordered under the close,
	// RSI pinned near 100, which keeps Momentum Long out of reach.
	bars := make([]model.OHLCV, 250)
	for i := range bars {
		c := 100.0 + float64(i)
		bars[i] = model.OHLCV{Open: c - 0.5, High: c + 1, Low: c - 1, Close: c, Volume: 1000}
	}
	row := BuildScanRow("UP", indicator.Compute(bars), 25000, 0.003)
	if row == nil {
		t.Fatal("expected a scan row")
	}
	if row.Trend != model.TrendStrongUptrend {
		t.Errorf("trend = %q, want %q", row.Trend, model.TrendStrongUptrend)
	}
	if row.RSI14 < 99 {
		t.Errorf("RSI14 = %v, want near 100", row.RSI14)
	}
	if row.PctChange <= 0 {
		t.Errorf("pct change = %v, want positive", row.PctChange)
	}
	if row.Signal != model.SignalNoTrade {
		t.Errorf("signal = %q, want %q (RSI above the momentum band)", row.Signal, model.SignalNoTrade)
	}
}
