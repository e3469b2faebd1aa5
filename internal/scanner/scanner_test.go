package scanner

import (
	"context"
	"errors"
	"testing"
	"time"

	"TrendScout/internal/collector"
	"TrendScout/internal/model"
)

// seriesEndingAt builds 250 flat bars at base with one final bar at lastClose,
// so the percent change of the scan row is fully controlled.
func seriesEndingAt(base, lastClose float64) []model.OHLCV {
	bars := make([]model.OHLCV, 250)
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range bars {
		c := base
		if i == len(bars)-1 {
			c = lastClose
		}
		bars[i] = model.OHLCV{
			Time: t0.AddDate(0, 0, i),
			Open: c, High: c + 1, Low: c - 1, Close: c,
			Volume: 1000,
		}
	}
	return bars
}

func testRequest(symbols ...string) Request {
	return Request{
		Symbols:      symbols,
		Period:       model.Period6Mo,
		Interval:     model.Interval1D,
		Capital:      25000,
		RiskFraction: 0.003,
	}
}

func TestScan_EmptySymbolList(t *testing.T) {
	s := New(&collector.MockFetcher{})
	_, _, err := s.Scan(context.Background(), testRequest())
	if !errors.Is(err, ErrNoSymbols) {
		t.Fatalf("expected ErrNoSymbols, got %v", err)
	}
}

func TestScan_BadSymbolsAreSkippedNotFatal(t *testing.T) {
	fetchErr := errors.New("boom")
	s := New(&collector.MockFetcher{
		Bars: map[string][]model.OHLCV{
			"GOOD":  seriesEndingAt(100, 103),
			"EMPTY": nil,
			"SHORT": seriesEndingAt(100, 103)[:10],
		},
		Errs: map[string]error{"ERR": fetchErr},
	})

	rows, skips, err := s.Scan(context.Background(), testRequest("ERR", "EMPTY", "GOOD", "SHORT"))
	if err != nil {
		t.Fatalf("scan must not fail for per-symbol problems: %v", err)
	}
	if len(rows) != 1 || rows[0].Symbol != "GOOD" {
		t.Fatalf("expected only GOOD to survive, got %+v", rows)
	}

	reasons := map[string]SkipReason{}
	for _, sk := range skips {
		reasons[sk.Symbol] = sk.Reason
	}
	want := map[string]SkipReason{
		"ERR":   SkipFetchError,
		"EMPTY": SkipNoData,
		"SHORT": SkipInsufficientHistory,
	}
	for sym, reason := range want {
		if reasons[sym] != reason {
			t.Errorf("skip reason for %s = %q, want %q", sym, reasons[sym], reason)
		}
	}
}

func TestScan_RanksBySignalThenPctChange(t *testing.T) {
	// Both symbols land on the same signal; the larger percent change ranks first.
	s := New(&collector.MockFetcher{
		Bars: map[string][]model.OHLCV{
			"SLOW": seriesEndingAt(100, 102),
			"FAST": seriesEndingAt(100, 105),
		},
	})

	rows, _, err := s.Scan(context.Background(), testRequest("SLOW", "FAST"))
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Signal != rows[1].Signal {
		t.Fatalf("fixture drifted: signals differ (%q vs %q)", rows[0].Signal, rows[1].Signal)
	}
	if rows[0].Symbol != "FAST" || rows[1].Symbol != "SLOW" {
		t.Errorf("expected FAST before SLOW, got %s then %s", rows[0].Symbol, rows[1].Symbol)
	}
}

func TestSignalRankOrder(t *testing.T) {
	order := []model.SignalLabel{
		model.SignalMomentumLong,
		model.SignalOversoldWatch,
		model.SignalAvoidShortBias,
		model.SignalNoTrade,
	}
	for i, sig := range order {
		if sig.Rank() != i {
			t.Errorf("%q rank = %d, want %d", sig, sig.Rank(), i)
		}
	}
	if model.SignalLabel("Something Else").Rank() != 4 {
		t.Error("unknown signals must rank last")
	}
}

func TestAnalyzeSymbol(t *testing.T) {
	bars := seriesEndingAt(100, 103)
	s := New(&collector.MockFetcher{
		Bars: map[string][]model.OHLCV{"GOOD": bars, "EMPTY": nil},
		Errs: map[string]error{"ERR": errors.New("boom")},
	})
	ctx := context.Background()

	rows, _, err := s.AnalyzeSymbol(ctx, "GOOD", model.Period6Mo, model.Interval1D)
	if err != nil {
		t.Fatalf("analyze GOOD: %v", err)
	}
	if len(rows) != len(bars) {
		t.Errorf("indicator rows = %d, want %d (aligned 1:1 with bars)", len(rows), len(bars))
	}

	if _, _, err := s.AnalyzeSymbol(ctx, "EMPTY", model.Period6Mo, model.Interval1D); !errors.Is(err, ErrNoData) {
		t.Errorf("analyze EMPTY: expected ErrNoData, got %v", err)
	}
	if _, _, err := s.AnalyzeSymbol(ctx, "ERR", model.Period6Mo, model.Interval1D); err == nil {
		t.Error("analyze ERR: expected fetch error to surface")
	}
}
