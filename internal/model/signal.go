package model

// TrendLabel is a categorical summary of moving-average ordering relative to price.
type TrendLabel string

const (
	TrendStrongUptrend   TrendLabel = "Strong Uptrend"
	TrendUptrend         TrendLabel = "Uptrend"
	TrendStrongDowntrend TrendLabel = "Strong Downtrend"
	TrendDowntrend       TrendLabel = "Downtrend"
	TrendSidewaysMixed   TrendLabel = "Sideways / Mixed"
	TrendInsufficient    TrendLabel = "No Trend (insufficient data)"
)

// SignalLabel is the coarse trade signal attached to a scan row.
type SignalLabel string

const (
	SignalMomentumLong   SignalLabel = "Momentum Long"
	SignalOversoldWatch  SignalLabel = "Oversold Watch"
	SignalAvoidShortBias SignalLabel = "Avoid / Short Bias"
	SignalNoTrade        SignalLabel = "No Trade"
)

// signalRanks orders signals for scan output; unknown signals rank last.
var signalRanks = map[SignalLabel]int{
	SignalMomentumLong:   0,
	SignalOversoldWatch:  1,
	SignalAvoidShortBias: 2,
	SignalNoTrade:        3,
}

// Rank returns the sort priority of the signal (lower scans first).
func (s SignalLabel) Rank() int {
	if r, ok := signalRanks[s]; ok {
		return r
	}
	return 4
}

// ScanRow is one symbol's scan result. Numeric fields may be NaN when the
// underlying indicator was undefined; rows are recomputed per scan, never persisted
// by the core.
type ScanRow struct {
	Symbol       string
	LastPrice    float64
	PctChange    float64 // 1-period percent change
	RSI14        float64
	Trend        TrendLabel
	Signal       SignalLabel
	ATR14        float64
	StopLoss     float64
	RiskDollars  float64
	PositionSize int // whole units, truncated toward zero
}
