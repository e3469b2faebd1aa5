package model

// IndicatorRow is a bar extended with derived indicator values.
// Derived fields are NaN until their rolling window is fully populated.
type IndicatorRow struct {
	OHLCV
	SMA20   float64
	SMA50   float64
	SMA200  float64
	RSI14   float64
	ATR14   float64
	VolMA20 float64
}
