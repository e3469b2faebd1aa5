package collector

import (
	"context"
	"math"
	"time"

	"TrendScout/internal/model"
)

// FetchSeries wraps one Fetcher call into a PriceSeries.
func FetchSeries(ctx context.Context, f Fetcher, symbol string, period model.Period, interval model.Interval) (*model.PriceSeries, error) {
	bars, err := f.FetchBars(ctx, symbol, period, interval)
	if err != nil {
		return nil, err
	}
	return &model.PriceSeries{
		Symbol:    symbol,
		Period:    period,
		Interval:  interval,
		Bars:      bars,
		FetchedAt: time.Now(),
	}, nil
}

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Bars map[string][]model.OHLCV // per-symbol canned series
	Errs map[string]error         // per-symbol forced failures
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchBars(_ context.Context, symbol string, _ model.Period, _ model.Interval) ([]model.OHLCV, error) {
	if err, ok := m.Errs[symbol]; ok {
		return nil, err
	}
	if bars, ok := m.Bars[symbol]; ok {
		return bars, nil
	}
	return GenerateBars(100, 250), nil
}

// GenerateBars builds a deterministic drifting series around basePrice.
func GenerateBars(basePrice float64, count int) []model.OHLCV {
	bars := make([]model.OHLCV, count)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		swing := 0.002 * math.Sin(float64(i))
		bars[i] = model.OHLCV{
			Time:   start.AddDate(0, 0, i),
			Open:   p * (0.999 + swing),
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p * (1 + swing),
			Volume: 1000000,
		}
	}
	return bars
}
