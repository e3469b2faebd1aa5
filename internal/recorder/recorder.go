package recorder

import "TrendScout/internal/model"

// ScanMeta describes one scan invocation.
type ScanMeta struct {
	AssetClass string
	Period     model.Period
	Interval   model.Interval
	Capital    float64
	Risk       float64
}

// BacktestRun is one symbol's backtest result with its fetch parameters.
type BacktestRun struct {
	Symbol   string
	Period   model.Period
	Interval model.Interval
	Stats    model.BacktestStats
}

// Recorder persists scan and backtest history for later inspection.
type Recorder interface {
	RecordScan(meta ScanMeta, rows []model.ScanRow) error
	RecordBacktest(run *BacktestRun) error
	Close() error
}
