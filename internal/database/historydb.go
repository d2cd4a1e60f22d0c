package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/gregallentrester/anagram/internal/model"
)

// FileName is the name of the database file inside the database directory.
const FileName = "anagram.db"

// ErrAmbiguousRunID is returned when a run ID prefix matches several runs.
var ErrAmbiguousRunID = errors.New("run ID prefix matches more than one run")

// timeLayout stores timestamps in UTC with a fixed width so that text
// ordering matches chronological ordering.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// HistoryDB provides SQLite-based storage for bench runs.
type HistoryDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures HistoryDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a HistoryDB in dbDir.
// If CreateIfNotExists is true, the directory and database file are created.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*HistoryDB, error) {
	dbPath := filepath.Join(dbDir, FileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (run a bench first)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// mode=rw refuses to create a missing file; mode=rwc allows it.
	// busy_timeout lets concurrent handles wait for the write lock.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}
	dsn += "&_pragma=busy_timeout(5000)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite only supports one writer
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	hdb := &HistoryDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := hdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return hdb, nil
}

// Close closes the database connection.
func (hdb *HistoryDB) Close() error {
	return hdb.db.Close()
}

// Path returns the path of the database file.
func (hdb *HistoryDB) Path() string {
	return hdb.dbPath
}

// createTables creates the database schema if it doesn't exist.
func (hdb *HistoryDB) createTables() error {
	schema := `
	-- Bench runs store complete reports as JSON
	CREATE TABLE IF NOT EXISTS bench_runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL UNIQUE,
		started_at TEXT NOT NULL,
		finished_at TEXT NOT NULL,
		iterations INTEGER NOT NULL,
		result_count INTEGER NOT NULL,
		discrepancies INTEGER NOT NULL,
		report_json TEXT NOT NULL,
		summary_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_started ON bench_runs(started_at);

	-- Results hold one row per algorithm and pair of a run
	CREATE TABLE IF NOT EXISTS results (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL REFERENCES bench_runs(run_id) ON DELETE CASCADE,
		algorithm TEXT NOT NULL,
		pair TEXT NOT NULL,
		model TEXT NOT NULL,
		variant TEXT NOT NULL,
		is_anagram INTEGER NOT NULL,
		expected INTEGER NOT NULL,
		ground_truth INTEGER NOT NULL,
		stable INTEGER NOT NULL,
		discrepancies INTEGER NOT NULL,
		iterations INTEGER NOT NULL,
		min_ns INTEGER NOT NULL,
		max_ns INTEGER NOT NULL,
		mean_ns INTEGER NOT NULL,
		total_ns INTEGER NOT NULL,
		error TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_results_run ON results(run_id);
	CREATE INDEX IF NOT EXISTS idx_results_alg_pair ON results(algorithm, pair);
	`

	_, err := hdb.db.ExecContext(context.Background(), schema)
	return err
}

// SaveBenchReport stores a bench report and its per-result rows in a
// single transaction.
func (hdb *HistoryDB) SaveBenchReport(ctx context.Context, report *model.BenchReport) (err error) {
	reportJSON, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to serialize report: %w", err)
	}
	summaryJSON, err := json.Marshal(report.Summary)
	if err != nil {
		return fmt.Errorf("failed to serialize summary: %w", err)
	}

	tx, err := hdb.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	_, err = tx.ExecContext(ctx, `
	INSERT INTO bench_runs (run_id, started_at, finished_at, iterations, result_count, discrepancies, report_json, summary_json)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		report.RunID,
		formatTimestamp(report.StartedAt),
		formatTimestamp(report.FinishedAt),
		report.Iterations,
		report.Summary.TotalResults,
		report.Summary.Discrepancies,
		string(reportJSON),
		string(summaryJSON),
	)
	if err != nil {
		return fmt.Errorf("failed to save bench run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO results (run_id, algorithm, pair, model, variant, is_anagram, expected, ground_truth,
		stable, discrepancies, iterations, min_ns, max_ns, mean_ns, total_ns, error)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare result insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range report.Results {
		if r == nil {
			continue
		}
		_, err = stmt.ExecContext(ctx,
			report.RunID, r.Algorithm, r.Pair, r.Model, r.Variant,
			r.IsAnagram, r.Expected, r.GroundTruth, r.Stable,
			len(r.Discrepancies), r.Iterations,
			int64(r.Timing.Min), int64(r.Timing.Max), int64(r.Timing.Mean), int64(r.Timing.Total),
			r.Error,
		)
		if err != nil {
			return fmt.Errorf("failed to save result %s/%s: %w", r.Algorithm, r.Pair, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit bench run: %w", err)
	}
	return nil
}

// GetLatestBenchReport retrieves the most recent bench report.
// It returns (nil, nil) when no run has been stored.
func (hdb *HistoryDB) GetLatestBenchReport(ctx context.Context) (*model.BenchReport, error) {
	query := `
	SELECT report_json FROM bench_runs
	ORDER BY started_at DESC, id DESC
	LIMIT 1
	`

	var reportJSON string
	err := hdb.db.QueryRowContext(ctx, query).Scan(&reportJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bench report: %w", err)
	}

	return decodeReport(reportJSON)
}

// GetBenchReportByID retrieves a bench report by its run ID. A unique
// prefix of the ID is accepted. It returns (nil, nil) when nothing matches.
func (hdb *HistoryDB) GetBenchReportByID(ctx context.Context, runID string) (*model.BenchReport, error) {
	query := `
	SELECT report_json FROM bench_runs
	WHERE run_id = ? OR substr(run_id, 1, length(?)) = ?
	ORDER BY run_id = ? DESC
	LIMIT 2
	`

	rows, err := hdb.db.QueryContext(ctx, query, runID, runID, runID, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get bench report: %w", err)
	}
	defer rows.Close()

	var matches []string
	for rows.Next() {
		var reportJSON string
		if err := rows.Scan(&reportJSON); err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}
		matches = append(matches, reportJSON)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	switch len(matches) {
	case 0:
		return nil, nil
	case 1:
		return decodeReport(matches[0])
	default:
		// An exact match sorts first and wins over longer IDs sharing it as prefix.
		first, err := decodeReport(matches[0])
		if err != nil {
			return nil, err
		}
		if first.RunID == runID {
			return first, nil
		}
		return nil, fmt.Errorf("%w: %q", ErrAmbiguousRunID, runID)
	}
}

// GetBenchHistory retrieves bench reports, newest first. A non-positive
// limit returns every run.
func (hdb *HistoryDB) GetBenchHistory(ctx context.Context, limit int) ([]*model.BenchReport, error) {
	query := `
	SELECT report_json FROM bench_runs
	ORDER BY started_at DESC, id DESC
	LIMIT ?
	`
	if limit <= 0 {
		limit = -1
	}

	rows, err := hdb.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get bench history: %w", err)
	}
	defer rows.Close()

	var reports []*model.BenchReport
	for rows.Next() {
		var reportJSON string
		if err := rows.Scan(&reportJSON); err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}

		report, err := decodeReport(reportJSON)
		if err != nil {
			continue // Skip malformed reports
		}
		reports = append(reports, report)
	}

	return reports, rows.Err()
}

// BenchRunMetadata contains summary information about a bench run.
// This is used for listing runs without loading full reports.
type BenchRunMetadata struct {
	RunID         string    `json:"run_id"`
	StartedAt     time.Time `json:"started_at"`
	FinishedAt    time.Time `json:"finished_at"`
	Iterations    int       `json:"iterations"`
	ResultCount   int       `json:"result_count"`
	Discrepancies int       `json:"discrepancies"`
}

// Duration returns the wall-clock length of the run.
func (m BenchRunMetadata) Duration() time.Duration {
	return m.FinishedAt.Sub(m.StartedAt)
}

// ListBenchRuns retrieves metadata for every bench run, newest first.
func (hdb *HistoryDB) ListBenchRuns(ctx context.Context) ([]BenchRunMetadata, error) {
	query := `
	SELECT run_id, started_at, finished_at, iterations, result_count, discrepancies
	FROM bench_runs
	ORDER BY started_at DESC, id DESC
	`

	rows, err := hdb.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list bench runs: %w", err)
	}
	defer rows.Close()

	var runs []BenchRunMetadata
	for rows.Next() {
		var meta BenchRunMetadata
		var started, finished string

		if err := rows.Scan(&meta.RunID, &started, &finished, &meta.Iterations, &meta.ResultCount, &meta.Discrepancies); err != nil {
			return nil, fmt.Errorf("failed to scan metadata: %w", err)
		}

		meta.StartedAt = parseTimestamp(started)
		meta.FinishedAt = parseTimestamp(finished)
		runs = append(runs, meta)
	}

	return runs, rows.Err()
}

// TimingRecord is the timing of one algorithm on one pair in one run.
type TimingRecord struct {
	RunID      string        `json:"run_id"`
	StartedAt  time.Time     `json:"started_at"`
	IsAnagram  bool          `json:"is_anagram"`
	Iterations int           `json:"iterations"`
	Min        time.Duration `json:"min_ns"`
	Max        time.Duration `json:"max_ns"`
	Mean       time.Duration `json:"mean_ns"`
}

// AlgorithmTimings returns the timing of algorithm on pair across all
// runs, oldest first. Results that failed are skipped.
func (hdb *HistoryDB) AlgorithmTimings(ctx context.Context, algorithm, pair string) ([]TimingRecord, error) {
	query := `
	SELECT r.run_id, b.started_at, r.is_anagram, r.iterations, r.min_ns, r.max_ns, r.mean_ns
	FROM results r
	JOIN bench_runs b ON b.run_id = r.run_id
	WHERE r.algorithm = ? AND r.pair = ? AND (r.error IS NULL OR r.error = '')
	ORDER BY b.started_at ASC, b.id ASC
	`

	rows, err := hdb.db.QueryContext(ctx, query, algorithm, pair)
	if err != nil {
		return nil, fmt.Errorf("failed to query timings: %w", err)
	}
	defer rows.Close()

	var records []TimingRecord
	for rows.Next() {
		var rec TimingRecord
		var started string
		var minNS, maxNS, meanNS int64

		if err := rows.Scan(&rec.RunID, &started, &rec.IsAnagram, &rec.Iterations, &minNS, &maxNS, &meanNS); err != nil {
			return nil, fmt.Errorf("failed to scan timing: %w", err)
		}

		rec.StartedAt = parseTimestamp(started)
		rec.Min = time.Duration(minNS)
		rec.Max = time.Duration(maxNS)
		rec.Mean = time.Duration(meanNS)
		records = append(records, rec)
	}

	return records, rows.Err()
}

func decodeReport(reportJSON string) (*model.BenchReport, error) {
	var report model.BenchReport
	if err := json.Unmarshal([]byte(reportJSON), &report); err != nil {
		return nil, fmt.Errorf("failed to parse report: %w", err)
	}
	return &report, nil
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// timestampFormats contains the timestamp formats that may be stored.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	timeLayout,
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05", // SQLite default datetime format
}

// parseTimestamp attempts to parse a timestamp string using multiple formats.
// If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
