package notifier

import (
	"fmt"
	"math"
	"strings"
	"time"

	"TrendScout/internal/model"
	"TrendScout/internal/scanner"
)

// maxReportRows caps how many scan rows go into one Telegram message.
const maxReportRows = 12

func fmtOrNA(v float64, decimals int) string {
	if math.IsNaN(v) {
		return "N/A"
	}
	return fmt.Sprintf("%.*f", decimals, v)
}

// FormatScanReport formats ranked scan rows into a Telegram message.
func FormatScanReport(rows []model.ScanRow, skips []scanner.Skip) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 <b>TrendScout Scan</b> | %s\n\n", time.Now().Format("2006-01-02 15:04")))

	if len(rows) == 0 {
		b.WriteString("No valid data returned for any symbols.\n")
	}
	for i, r := range rows {
		if i == maxReportRows {
			b.WriteString(fmt.Sprintf("… and %d more\n", len(rows)-maxReportRows))
			break
		}
		b.WriteString(fmt.Sprintf("<b>%s</b>  %s (%+.2f%%)\n", r.Symbol, fmtOrNA(r.LastPrice, 4), r.PctChange))
		b.WriteString(fmt.Sprintf("  %s | %s | RSI %s\n", r.Signal, r.Trend, fmtOrNA(r.RSI14, 1)))
		b.WriteString(fmt.Sprintf("  stop %s | risk $%s | size %d\n", fmtOrNA(r.StopLoss, 4), fmtOrNA(r.RiskDollars, 2), r.PositionSize))
	}

	if len(skips) > 0 {
		b.WriteString(fmt.Sprintf("\nSkipped %d symbol(s): ", len(skips)))
		parts := make([]string, len(skips))
		for i, s := range skips {
			parts[i] = fmt.Sprintf("%s (%s)", s.Symbol, s.Reason)
		}
		b.WriteString(strings.Join(parts, ", "))
		b.WriteString("\n")
	}

	b.WriteString("\nSignals are not financial advice.")
	return b.String()
}

// FormatAnalysis formats the single-symbol deep dive: the latest indicator
// snapshot plus the momentum backtest stats.
func FormatAnalysis(symbol string, rows []model.IndicatorRow, stats model.BacktestStats) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🔍 <b>%s Deep Dive</b> | %s\n\n", symbol, time.Now().Format("2006-01-02")))

	if len(rows) > 0 {
		last := rows[len(rows)-1]
		b.WriteString(fmt.Sprintf("Last close: %.4f\n", last.Close))
		b.WriteString(fmt.Sprintf("SMA20: %s | SMA50: %s | SMA200: %s\n",
			fmtOrNA(last.SMA20, 4), fmtOrNA(last.SMA50, 4), fmtOrNA(last.SMA200, 4)))
		b.WriteString(fmt.Sprintf("RSI14: %s | ATR14: %s | VolMA20: %s\n\n",
			fmtOrNA(last.RSI14, 1), fmtOrNA(last.ATR14, 4), fmtOrNA(last.VolMA20, 0)))
	}

	b.WriteString("<b>Momentum backtest</b>\n")
	b.WriteString(fmt.Sprintf("Trades: %d\n", stats.Trades))
	b.WriteString(fmt.Sprintf("Win %%: %s\n", fmtOrNA(stats.WinPct, 1)))
	b.WriteString(fmt.Sprintf("Avg R: %s\n", fmtOrNA(stats.AvgR, 3)))
	b.WriteString(fmt.Sprintf("Total R: %s\n", fmtOrNA(stats.TotalR, 3)))
	b.WriteString("\nBacktest is rough and ignores slippage, fees, and intraday behavior.")
	return b.String()
}
