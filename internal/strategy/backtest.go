package strategy

import (
	"math"

	"TrendScout/internal/indicator"
	"TrendScout/internal/model"
)

// minBacktestBars is the minimum series length for a backtest run.
const minBacktestBars = 60

// Backtest replays the momentum rule over a price series, bar by bar:
// entry when the previous bar shows a Strong Uptrend with RSI14 in [55, 75]
// (plus the literal prevClose > prevClose*0.995 clause, which only rejects
// non-positive closes), exit when the current close drops below SMA20 or
// RSI14 falls under 50. One position at a time, no pyramiding; a trade still
// open at series end is discarded, not counted.
func Backtest(bars []model.OHLCV) model.BacktestStats {
	if len(bars) < minBacktestBars {
		return emptyStats()
	}

	rows := indicator.Compute(bars)

	// Discard rows entirely until all long-window indicators stabilize.
	stable := rows[:0:0]
	for _, r := range rows {
		if math.IsNaN(r.SMA20) || math.IsNaN(r.SMA50) || math.IsNaN(r.SMA200) || math.IsNaN(r.RSI14) {
			continue
		}
		stable = append(stable, r)
	}

	inTrade := false
	var entryPrice float64
	var returns []float64

	for i := 1; i < len(stable); i++ {
		prev := stable[i-1]
		cur := stable[i]

		trend := ClassifyTrend(prev.Close, prev.SMA20, prev.SMA50, prev.SMA200)
		momentum := trend == model.TrendStrongUptrend &&
			55 <= prev.RSI14 && prev.RSI14 <= 75 &&
			prev.Close > prev.Close*0.995

		if !inTrade && momentum {
			inTrade = true
			entryPrice = cur.Open
			if math.IsNaN(entryPrice) || entryPrice == 0 {
				entryPrice = cur.Close
			}
			continue
		}

		if inTrade && (cur.Close < cur.SMA20 || cur.RSI14 < 50) {
			returns = append(returns, (cur.Close-entryPrice)/entryPrice)
			inTrade = false
		}
	}

	if len(returns) == 0 {
		return emptyStats()
	}

	wins := 0
	total := 0.0
	for _, r := range returns {
		if r > 0 {
			wins++
		}
		total += r
	}
	trades := len(returns)
	return model.BacktestStats{
		Trades: trades,
		WinPct: 100.0 * float64(wins) / float64(trades),
		AvgR:   total / float64(trades),
		TotalR: total,
	}
}

func emptyStats() model.BacktestStats {
	return model.BacktestStats{WinPct: math.NaN(), AvgR: math.NaN(), TotalR: math.NaN()}
}
