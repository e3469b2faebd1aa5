package model

import "time"

// OHLCV represents a single candlestick bar.
type OHLCV struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64 // NaN when the source reports no volume
}

// Period is the lookback window requested from a data provider.
type Period string

const (
	Period3Mo Period = "3mo"
	Period6Mo Period = "6mo"
	Period1Y  Period = "1y"
	Period2Y  Period = "2y"
)

// Interval is the bar size requested from a data provider.
type Interval string

const (
	Interval1D Interval = "1d"
	Interval1H Interval = "1h"
)

// PriceSeries holds raw price data for one symbol over one period/interval.
type PriceSeries struct {
	Symbol    string
	Period    Period
	Interval  Interval
	Bars      []OHLCV
	FetchedAt time.Time
}
