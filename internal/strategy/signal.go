package strategy

import "TrendScout/internal/model"

// minHistoryBars is the minimum number of bars before a scan row is produced.
const minHistoryBars = 30

// stopFallbackPct is the stop distance used when ATR is undefined or non-positive.
const stopFallbackPct = 0.03

// BuildScanRow combines the latest indicator row, trend and momentum readings into
// a scan row with an ATR-sized stop suggestion. Returns nil when fewer than 30 bars
// of history exist. Undefined indicator values propagate as NaN in the output
// rather than aborting.
func BuildScanRow(symbol string, rows []model.IndicatorRow, capital, riskFraction float64) *model.ScanRow {
	if len(rows) < minHistoryBars {
		return nil
	}

	last := rows[len(rows)-1]
	prev := rows[len(rows)-2]
	pctChange := (last.Close - prev.Close) / prev.Close * 100.0

	trend := ClassifyTrend(last.Close, last.SMA20, last.SMA50, last.SMA200)

	signal := model.SignalNoTrade
	switch {
	case trend == model.TrendStrongUptrend && 55 <= last.RSI14 && last.RSI14 <= 75 && pctChange > 0:
		signal = model.SignalMomentumLong
	case last.RSI14 < 30 && last.Close > last.SMA200:
		signal = model.SignalOversoldWatch
	case trend == model.TrendStrongDowntrend && last.RSI14 < 45:
		signal = model.SignalAvoidShortBias
	}

	stopLoss, riskDollars, size := SizePosition(last.Close, last.ATR14, capital, riskFraction)

	return &model.ScanRow{
		Symbol:       symbol,
		LastPrice:    last.Close,
		PctChange:    pctChange,
		RSI14:        last.RSI14,
		Trend:        trend,
		Signal:       signal,
		ATR14:        last.ATR14,
		StopLoss:     stopLoss,
		RiskDollars:  riskDollars,
		PositionSize: size,
	}
}

// SizePosition suggests a stop price and a risk-derived position size.
// The stop distance is the ATR when positive, otherwise 3% of the last close.
// A degenerate stop (<= 0) sizes the position to zero instead of erroring.
func SizePosition(lastClose, atr, capital, riskFraction float64) (stopLoss, riskDollars float64, size int) {
	stopDistance := lastClose * stopFallbackPct
	if atr > 0 {
		stopDistance = atr
	}
	stopLoss = lastClose - stopDistance

	if stopLoss <= 0 {
		return stopLoss, 0, 0
	}
	riskDollars = capital * riskFraction
	if perUnit := lastClose - stopLoss; perUnit > 0 {
		size = int(riskDollars / perUnit)
	}
	return stopLoss, riskDollars, size
}
