package scanner

import (
	"context"
	"errors"
	"log"
	"sort"

	"TrendScout/internal/collector"
	"TrendScout/internal/indicator"
	"TrendScout/internal/model"
	"TrendScout/internal/strategy"
)

// ErrNoSymbols is returned when a scan is requested with an empty symbol list.
var ErrNoSymbols = errors.New("scanner: no symbols to scan")

// ErrNoData is returned by AnalyzeSymbol when the provider has no bars for the symbol.
var ErrNoData = errors.New("scanner: no data for symbol")

// SkipReason tags why a symbol was dropped from scan output.
type SkipReason string

const (
	SkipFetchError          SkipReason = "fetch_error"
	SkipNoData              SkipReason = "no_data"
	SkipInsufficientHistory SkipReason = "insufficient_history"
)

// Skip records one dropped symbol and the reason, so callers (and tests) can see
// why instead of having failures swallowed silently.
type Skip struct {
	Symbol string
	Reason SkipReason
	Err    error
}

// Request carries the parameters of one scan invocation.
type Request struct {
	Symbols      []string
	Period       model.Period
	Interval     model.Interval
	Capital      float64
	RiskFraction float64 // normalized (0,1) fraction; callers convert percentages
}

// Scanner drives the per-symbol fetch -> indicators -> signal pipeline.
type Scanner struct {
	Fetcher collector.Fetcher
}

// New creates a Scanner on top of the given data provider.
func New(fetcher collector.Fetcher) *Scanner {
	return &Scanner{Fetcher: fetcher}
}

// Scan processes the symbols sequentially. A failure on one symbol only skips that
// symbol; the scan as a whole always completes and returns the surviving rows
// ranked by signal priority, then by percent change descending.
func (s *Scanner) Scan(ctx context.Context, req Request) ([]model.ScanRow, []Skip, error) {
	if len(req.Symbols) == 0 {
		return nil, nil, ErrNoSymbols
	}

	var rows []model.ScanRow
	var skips []Skip

	for _, sym := range req.Symbols {
		series, err := collector.FetchSeries(ctx, s.Fetcher, sym, req.Period, req.Interval)
		if err != nil {
			log.Printf("[WARN] scan %s: fetch failed: %v", sym, err)
			skips = append(skips, Skip{Symbol: sym, Reason: SkipFetchError, Err: err})
			continue
		}
		if len(series.Bars) == 0 {
			skips = append(skips, Skip{Symbol: sym, Reason: SkipNoData})
			continue
		}

		indRows := indicator.Compute(series.Bars)
		row := strategy.BuildScanRow(sym, indRows, req.Capital, req.RiskFraction)
		if row == nil {
			skips = append(skips, Skip{Symbol: sym, Reason: SkipInsufficientHistory})
			continue
		}
		rows = append(rows, *row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		ri, rj := rows[i].Signal.Rank(), rows[j].Signal.Rank()
		if ri != rj {
			return ri < rj
		}
		return rows[i].PctChange > rows[j].PctChange
	})
	return rows, skips, nil
}

// AnalyzeSymbol runs the single-symbol deep dive: the full indicator sequence plus
// a momentum backtest over the same series.
func (s *Scanner) AnalyzeSymbol(ctx context.Context, symbol string, period model.Period, interval model.Interval) ([]model.IndicatorRow, model.BacktestStats, error) {
	series, err := collector.FetchSeries(ctx, s.Fetcher, symbol, period, interval)
	if err != nil {
		return nil, model.BacktestStats{}, err
	}
	if len(series.Bars) == 0 {
		return nil, model.BacktestStats{}, ErrNoData
	}

	rows := indicator.Compute(series.Bars)
	stats := strategy.Backtest(series.Bars)

	log.Printf("[INFO] analyzed %s: %d bars fetched at %s, %d backtest trades",
		symbol, len(series.Bars), series.FetchedAt.Format("2006-01-02 15:04"), stats.Trades)
	return rows, stats, nil
}
