package indicator

import (
	"math"

	"TrendScout/internal/model"
)

// epsilon keeps the RSI relative-strength division defined when the loss mean is zero.
const epsilon = 1e-9

// rollingMean is a fixed-size window over a stream of values, kept incrementally
// with a circular buffer and a running sum. Push returns NaN until the window is
// full, and while any value inside the window is NaN.
type rollingMean struct {
	window int
	buf    []float64
	sum    float64
	count  int
	idx    int
	nans   int
}

func newRollingMean(window int) *rollingMean {
	return &rollingMean{window: window, buf: make([]float64, window)}
}

func (r *rollingMean) Push(v float64) float64 {
	if r.count == r.window {
		old := r.buf[r.idx]
		if math.IsNaN(old) {
			r.nans--
		} else {
			r.sum -= old
		}
	} else {
		r.count++
	}
	r.buf[r.idx] = v
	r.idx = (r.idx + 1) % r.window
	if math.IsNaN(v) {
		r.nans++
	} else {
		r.sum += v
	}
	if r.count < r.window || r.nans > 0 {
		return math.NaN()
	}
	return r.sum / float64(r.window)
}

// Compute derives all indicator columns from a price series. The output is
// aligned 1:1 with the input bars; an empty input yields an empty output.
// Pure function of its input: no retained state between calls.
func Compute(bars []model.OHLCV) []model.IndicatorRow {
	rows := make([]model.IndicatorRow, len(bars))

	sma20 := newRollingMean(20)
	sma50 := newRollingMean(50)
	sma200 := newRollingMean(200)
	gain14 := newRollingMean(14)
	loss14 := newRollingMean(14)
	atr14 := newRollingMean(14)
	volMA20 := newRollingMean(20)

	for i, b := range bars {
		row := model.IndicatorRow{
			OHLCV:  b,
			SMA20:  sma20.Push(b.Close),
			SMA50:  sma50.Push(b.Close),
			SMA200: sma200.Push(b.Close),
			RSI14:  math.NaN(),
			ATR14:  math.NaN(),
		}
		row.VolMA20 = volMA20.Push(b.Volume)

		// RSI and ATR both consume one bar of lookback before their windows
		// start filling: there is no close delta or true range for bar 0.
		if i > 0 {
			prevClose := bars[i-1].Close

			delta := b.Close - prevClose
			meanGain := gain14.Push(math.Max(delta, 0))
			meanLoss := loss14.Push(math.Max(-delta, 0))
			if !math.IsNaN(meanGain) && !math.IsNaN(meanLoss) {
				rs := meanGain / (meanLoss + epsilon)
				row.RSI14 = 100.0 - 100.0/(1.0+rs)
			}

			tr := math.Max(b.High-b.Low,
				math.Max(math.Abs(b.High-prevClose), math.Abs(b.Low-prevClose)))
			row.ATR14 = atr14.Push(tr)
		}

		rows[i] = row
	}
	return rows
}
