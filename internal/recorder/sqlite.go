package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"math"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"TrendScout/internal/model"
)

// SQLiteRecorder persists scan history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so dashboards can read while the daemon writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS scan_rows (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp     INTEGER NOT NULL,
			asset_class   TEXT,
			period        TEXT,
			interval      TEXT,
			symbol        TEXT NOT NULL,
			last_price    REAL,
			pct_change    REAL,
			rsi14         REAL,
			trend         TEXT,
			signal        TEXT,
			atr14         REAL,
			stop_loss     REAL,
			risk_dollars  REAL,
			position_size INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_scan_ts ON scan_rows(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_scan_symbol ON scan_rows(symbol)`,

		`CREATE TABLE IF NOT EXISTS backtest_runs (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp INTEGER NOT NULL,
			symbol    TEXT NOT NULL,
			period    TEXT,
			interval  TEXT,
			trades    INTEGER,
			win_pct   REAL,
			avg_r     REAL,
			total_r   REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_backtest_ts ON backtest_runs(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// nullable maps NaN indicator values to SQL NULL.
func nullable(v float64) interface{} {
	if math.IsNaN(v) {
		return nil
	}
	return v
}

func (r *SQLiteRecorder) RecordScan(meta ScanMeta, rows []model.ScanRow) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().Unix()
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	stmt, err := tx.Prepare(`INSERT INTO scan_rows
		(timestamp, asset_class, period, interval, symbol,
		 last_price, pct_change, rsi14, trend, signal,
		 atr14, stop_loss, risk_dollars, position_size)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	for _, row := range rows {
		if _, err := stmt.Exec(
			now, meta.AssetClass, string(meta.Period), string(meta.Interval), row.Symbol,
			nullable(row.LastPrice), nullable(row.PctChange), nullable(row.RSI14),
			string(row.Trend), string(row.Signal),
			nullable(row.ATR14), nullable(row.StopLoss), nullable(row.RiskDollars), row.PositionSize,
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert scan row %s: %w", row.Symbol, err)
		}
	}
	return tx.Commit()
}

func (r *SQLiteRecorder) RecordBacktest(run *BacktestRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO backtest_runs
		(timestamp, symbol, period, interval, trades, win_pct, avg_r, total_r)
		VALUES (?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), run.Symbol, string(run.Period), string(run.Interval),
		run.Stats.Trades, nullable(run.Stats.WinPct), nullable(run.Stats.AvgR), nullable(run.Stats.TotalR),
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
