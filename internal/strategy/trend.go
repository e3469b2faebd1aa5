package strategy

import (
	"math"

	"TrendScout/internal/model"
)

// ClassifyTrend maps the last close and three moving averages to a trend label.
// Rules are evaluated in order, first match wins. Uptrend carries an sma200 <= sma50
// guard that Downtrend deliberately lacks; the asymmetry is part of the contract
// and must not be evened out.
func ClassifyTrend(close, sma20, sma50, sma200 float64) model.TrendLabel {
	if math.IsNaN(sma20) || math.IsNaN(sma50) || math.IsNaN(sma200) {
		return model.TrendInsufficient
	}
	if close > sma20 && sma20 > sma50 && sma50 > sma200 {
		return model.TrendStrongUptrend
	}
	if close > sma20 && sma20 > sma50 && sma200 <= sma50 {
		return model.TrendUptrend
	}
	if close < sma20 && sma20 < sma50 && sma50 < sma200 {
		return model.TrendStrongDowntrend
	}
	if close < sma20 && sma20 < sma50 {
		return model.TrendDowntrend
	}
	return model.TrendSidewaysMixed
}
