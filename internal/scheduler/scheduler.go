package scheduler

import (
	"context"
	"fmt"
	"log"
	"strings"

	"TrendScout/internal/config"
	"TrendScout/internal/model"
	"TrendScout/internal/notifier"
	"TrendScout/internal/recorder"
	"TrendScout/internal/scanner"

	"github.com/robfig/cron/v3"
)

// Scheduler runs recurring universe scans and answers Telegram commands.
type Scheduler struct {
	Cron     *cron.Cron
	Scanner  *scanner.Scanner
	Config   *config.Config
	Notifier *notifier.TelegramNotifier
	Recorder recorder.Recorder
	Ctx      context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, sc *scanner.Scanner, cfg *config.Config, tn *notifier.TelegramNotifier, rec recorder.Recorder) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Scanner:  sc,
		Config:   cfg,
		Notifier: tn,
		Recorder: rec,
		Ctx:      ctx,
	}
}

// RegisterAll registers the scheduled scan task.
func (s *Scheduler) RegisterAll(scanCron string) error {
	if _, err := s.Cron.AddFunc(scanCron, s.scanTask); err != nil {
		return fmt.Errorf("register scan task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunScanNow executes the scan task immediately (manual trigger / RUN_ON_START).
func (s *Scheduler) RunScanNow() {
	s.scanTask()
}

func (s *Scheduler) scanTask() {
	log.Println("[INFO] running scheduled scan")
	cfg := s.Config

	req := scanner.Request{
		Symbols:      cfg.Universe(cfg.Scan.AssetClass),
		Period:       model.Period(cfg.Scan.Period),
		Interval:     model.Interval(cfg.Scan.Interval),
		Capital:      cfg.Scan.Capital,
		RiskFraction: cfg.Scan.RiskFraction,
	}

	rows, skips, err := s.Scanner.Scan(s.Ctx, req)
	if err != nil {
		log.Printf("[ERROR] scheduled scan: %v", err)
		s.trySend(fmt.Sprintf("❌ Scan failed: %v", err))
		return
	}
	log.Printf("[INFO] scan finished: %d rows, %d skipped", len(rows), len(skips))

	s.trySend(notifier.FormatScanReport(rows, skips))

	if err := s.Recorder.RecordScan(recorder.ScanMeta{
		AssetClass: cfg.Scan.AssetClass,
		Period:     req.Period,
		Interval:   req.Interval,
		Capital:    req.Capital,
		Risk:       req.RiskFraction,
	}, rows); err != nil {
		log.Printf("[ERROR] record scan: %v", err)
	}
}

func (s *Scheduler) analyzeTask(symbol string) string {
	cfg := s.Config
	period := model.Period(cfg.Scan.Period)
	interval := model.Interval(cfg.Scan.Interval)

	rows, stats, err := s.Scanner.AnalyzeSymbol(s.Ctx, symbol, period, interval)
	if err != nil {
		log.Printf("[WARN] analyze %s: %v", symbol, err)
		return fmt.Sprintf("❌ %s: %v", symbol, err)
	}

	if err := s.Recorder.RecordBacktest(&recorder.BacktestRun{
		Symbol: symbol, Period: period, Interval: interval, Stats: stats,
	}); err != nil {
		log.Printf("[ERROR] record backtest: %v", err)
	}
	return notifier.FormatAnalysis(symbol, rows, stats)
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return ""
	}
	switch fields[0] {
	case "/scan":
		go s.scanTask()
		return "Scan started."
	case "/analyze":
		if len(fields) < 2 {
			return "Usage: /analyze SYMBOL"
		}
		return s.analyzeTask(strings.ToUpper(fields[1]))
	default:
		return "Commands:\n• /scan — scan the configured universe\n• /analyze SYMBOL — indicators + momentum backtest"
	}
}

func (s *Scheduler) trySend(text string) {
	if !s.Notifier.Enabled() {
		return
	}
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
