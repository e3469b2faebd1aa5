package model

// BacktestStats aggregates the closed trades of one momentum backtest run.
// WinPct, AvgR and TotalR are NaN when Trades is zero.
type BacktestStats struct {
	Trades int
	WinPct float64
	AvgR   float64
	TotalR float64
}
