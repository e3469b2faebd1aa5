package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"strings"
	"text/tabwriter"

	"TrendScout/internal/collector"
	"TrendScout/internal/config"
	"TrendScout/internal/model"
	"TrendScout/internal/notifier"
	"TrendScout/internal/recorder"
	"TrendScout/internal/scanner"
	"TrendScout/internal/strategy"
)

var validStrategies = map[string]bool{
	"gap_and_go":     true,
	"orb_breakout":   true,
	"vwap_reversion": true,
}

type options struct {
	mode       string
	assetClass string
	symbols    string
	strategy   string
	capital    float64
	risk       float64
	interval   string
	period     string
	partials   string
	trailPct   float64
	notify     bool
	analyze    string
	cfgPath    string
}

func parseFlags() *options {
	o := &options{}
	flag.StringVar(&o.mode, "mode", "paper", "execution mode: paper or live (informational)")
	flag.StringVar(&o.assetClass, "asset-class", "stock", "asset class: stock or crypto")
	flag.StringVar(&o.symbols, "symbols", "", "comma-separated symbols, or 'ALL' for the default universe")
	flag.StringVar(&o.strategy, "strategy", "orb_breakout", "execution strategy name (informational)")
	flag.Float64Var(&o.capital, "capital", 25000, "account capital in dollars")
	flag.Float64Var(&o.risk, "risk", 0.003, "risk per trade, fraction or percentage")
	flag.StringVar(&o.interval, "interval", "1d", "bar interval: 1d or 1h")
	flag.StringVar(&o.period, "period", "6mo", "history period: 3mo, 6mo, 1y")
	flag.StringVar(&o.partials, "partials", "50@1R,50@2R", "partial take-profit plan (execution only)")
	flag.Float64Var(&o.trailPct, "trail-pct", 0, "trailing stop percent (execution only)")
	flag.BoolVar(&o.notify, "notify", false, "send the report via Telegram")
	flag.StringVar(&o.analyze, "analyze", "", "single symbol deep dive instead of a scan")
	flag.StringVar(&o.cfgPath, "config", "configs/config.yaml", "config file path")
	flag.Parse()
	return o
}

func (o *options) summary(symbols []string) string {
	var b strings.Builder
	b.WriteString("Running TrendScout\n")
	b.WriteString("------------------\n")
	fmt.Fprintf(&b, "Mode          : %s\n", o.mode)
	fmt.Fprintf(&b, "Asset Class   : %s\n", o.assetClass)
	fmt.Fprintf(&b, "Symbols       : %s\n", strings.Join(symbols, ","))
	fmt.Fprintf(&b, "Strategy      : %s\n", o.strategy)
	fmt.Fprintf(&b, "Capital       : %.0f\n", o.capital)
	fmt.Fprintf(&b, "Risk per Trade: %g\n", o.risk)
	fmt.Fprintf(&b, "Interval      : %s\n", o.interval)
	fmt.Fprintf(&b, "Period        : %s\n", o.period)
	fmt.Fprintf(&b, "Partials      : %s\n", o.partials)
	fmt.Fprintf(&b, "Trailing Stop : %g\n", o.trailPct)
	fmt.Fprintf(&b, "Notifications : %v", o.notify)
	return b.String()
}

func fmtOrNA(v float64, decimals int) string {
	if math.IsNaN(v) {
		return "N/A"
	}
	return fmt.Sprintf("%.*f", decimals, v)
}

func printRows(rows []model.ScanRow) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SYMBOL\tLAST\t1P %\tRSI14\tTREND\tSIGNAL\tATR14\tSTOP\tRISK $\tSIZE")
	for _, r := range rows {
		fmt.Fprintf(w, "%s\t%s\t%+.2f\t%s\t%s\t%s\t%s\t%s\t%s\t%d\n",
			r.Symbol, fmtOrNA(r.LastPrice, 4), r.PctChange, fmtOrNA(r.RSI14, 1),
			r.Trend, r.Signal, fmtOrNA(r.ATR14, 4), fmtOrNA(r.StopLoss, 4),
			fmtOrNA(r.RiskDollars, 2), r.PositionSize)
	}
	w.Flush()
}

func main() {
	log.SetFlags(log.LstdFlags)
	o := parseFlags()

	if o.mode != "paper" && o.mode != "live" {
		log.Fatalf("[FATAL] invalid -mode %q (paper or live)", o.mode)
	}
	if o.assetClass != "stock" && o.assetClass != "crypto" {
		log.Fatalf("[FATAL] invalid -asset-class %q (stock or crypto)", o.assetClass)
	}
	if !validStrategies[o.strategy] {
		log.Fatalf("[FATAL] invalid -strategy %q", o.strategy)
	}
	if o.capital <= 0 {
		log.Fatalf("[FATAL] -capital must be positive")
	}
	risk := config.NormalizeRisk(o.risk)
	if risk <= 0 || risk >= 1 {
		log.Fatalf("[FATAL] -risk must normalize into (0,1), got %g", o.risk)
	}

	cfg, err := config.Load(o.cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}

	var fetcher collector.Fetcher
	if cfg.DataSource.BaseURL != "" {
		fetcher = collector.NewRESTFetcher(cfg.DataSource.BaseURL, cfg.DataSource.APIKey, cfg.Proxy)
	} else {
		fetcher = collector.NewYahooFetcher(cfg.Proxy)
	}

	var rec recorder.Recorder = recorder.NewNoopRecorder()
	if cfg.Database.SQLitePath != "" {
		if sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath); err == nil {
			rec = sr
			defer sr.Close()
		} else {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
		}
	}

	tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
	sc := scanner.New(fetcher)
	ctx := context.Background()

	period := model.Period(o.period)
	interval := model.Interval(o.interval)

	if o.analyze != "" {
		runAnalyze(ctx, sc, rec, tn, o, strings.ToUpper(o.analyze), period, interval)
		return
	}

	symbols := cfg.ExpandSymbols(o.symbols, o.assetClass)
	fmt.Println(o.summary(symbols))
	fmt.Println()

	if o.notify && tn.Enabled() {
		msg := fmt.Sprintf("▶️ Scan run: %s %s %s on %s (risk %g, interval %s)",
			strings.ToUpper(o.mode), strings.ToUpper(o.assetClass), o.strategy,
			strings.Join(symbols, ","), risk, o.interval)
		if err := tn.Send(ctx, msg); err != nil {
			log.Printf("[WARN] notify run start: %v", err)
		}
	}

	rows, skips, err := sc.Scan(ctx, scanner.Request{
		Symbols:      symbols,
		Period:       period,
		Interval:     interval,
		Capital:      o.capital,
		RiskFraction: risk,
	})
	if err != nil {
		log.Fatalf("[FATAL] scan: %v", err)
	}

	if len(rows) == 0 {
		fmt.Println("No valid data returned for any symbols. Try a different period/timeframe.")
	} else {
		printRows(rows)
	}
	for _, s := range skips {
		log.Printf("[WARN] skipped %s: %s", s.Symbol, s.Reason)
	}

	if err := rec.RecordScan(recorder.ScanMeta{
		AssetClass: o.assetClass, Period: period, Interval: interval,
		Capital: o.capital, Risk: risk,
	}, rows); err != nil {
		log.Printf("[ERROR] record scan: %v", err)
	}

	if o.notify && tn.Enabled() {
		if err := tn.SendWithRetry(ctx, notifier.FormatScanReport(rows, skips), 3); err != nil {
			log.Printf("[WARN] notify report: %v", err)
		}
	}
}

func runAnalyze(ctx context.Context, sc *scanner.Scanner, rec recorder.Recorder, tn *notifier.TelegramNotifier, o *options, symbol string, period model.Period, interval model.Interval) {
	rows, stats, err := sc.AnalyzeSymbol(ctx, symbol, period, interval)
	if err != nil {
		log.Fatalf("[FATAL] analyze %s: %v", symbol, err)
	}

	last := rows[len(rows)-1]
	fmt.Printf("%s deep dive (%s, %s)\n\n", symbol, period, interval)
	fmt.Printf("Last close: %.4f\n", last.Close)
	fmt.Printf("SMA20: %s | SMA50: %s | SMA200: %s\n",
		fmtOrNA(last.SMA20, 4), fmtOrNA(last.SMA50, 4), fmtOrNA(last.SMA200, 4))
	fmt.Printf("RSI14: %s | ATR14: %s | VolMA20: %s\n\n",
		fmtOrNA(last.RSI14, 1), fmtOrNA(last.ATR14, 4), fmtOrNA(last.VolMA20, 0))

	trend := strategy.ClassifyTrend(last.Close, last.SMA20, last.SMA50, last.SMA200)
	fmt.Printf("Trend: %s\n\n", trend)

	fmt.Println("Momentum backtest:")
	fmt.Printf("  Trades : %d\n", stats.Trades)
	fmt.Printf("  Win %%  : %s\n", fmtOrNA(stats.WinPct, 1))
	fmt.Printf("  Avg R  : %s\n", fmtOrNA(stats.AvgR, 3))
	fmt.Printf("  Total R: %s\n", fmtOrNA(stats.TotalR, 3))

	if err := rec.RecordBacktest(&recorder.BacktestRun{
		Symbol: symbol, Period: period, Interval: interval, Stats: stats,
	}); err != nil {
		log.Printf("[ERROR] record backtest: %v", err)
	}

	if o.notify && tn.Enabled() {
		if err := tn.SendWithRetry(ctx, notifier.FormatAnalysis(symbol, rows, stats), 3); err != nil {
			log.Printf("[WARN] notify analysis: %v", err)
		}
	}
}
