package collector

import (
	"context"

	"TrendScout/internal/model"
)

// Fetcher defines the interface for fetching historical market data.
// An empty bar slice is a valid response; callers treat it as missing data,
// not an error. No timeout is imposed here beyond the HTTP client's own;
// callers bound scan latency through ctx.
type Fetcher interface {
	FetchBars(ctx context.Context, symbol string, period model.Period, interval model.Interval) ([]model.OHLCV, error)
	Name() string
}
