// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package journal keeps a SQLite audit trail of conversion runs: one row per
// run and one row per external tool invocation. The journal is write-only
// from the point of view of a run; nothing in it is used to skip work.
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/docs2org/pkg/types"
)

// Run statuses stored in the runs table.
const (
	StatusRunning = "running"
	StatusDone    = "done"
	StatusAborted = "aborted"
)

const (
	defaultLimit   = 20
	timeFormat     = time.RFC3339Nano
	connParameters = "?_journal_mode=WAL&_foreign_keys=on"
)

// Journal manages the run journal database.
type Journal struct {
	db *sql.DB
}

// Open opens or creates the journal at path, creating its parent directory
// and the schema if needed.
func Open(path string) (*Journal, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating journal directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+connParameters)
	if err != nil {
		return nil, fmt.Errorf("opening journal: %w", err)
	}

	j := &Journal{db: db}
	if err := j.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return j, nil
}

// Close releases the database connection.
func (j *Journal) Close() error {
	return j.db.Close()
}

func (j *Journal) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			site_root TEXT NOT NULL,
			started_at TEXT NOT NULL,
			finished_at TEXT,
			status TEXT NOT NULL,
			asciidoc_count INTEGER NOT NULL DEFAULT 0,
			html_count INTEGER NOT NULL DEFAULT 0,
			error TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS conversions (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL REFERENCES runs(id),
			kind TEXT NOT NULL,
			tool TEXT NOT NULL,
			source TEXT NOT NULL,
			output TEXT NOT NULL,
			exit_code INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL,
			converted_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_conversions_run_id ON conversions(run_id)`,
	}

	for _, stmt := range statements {
		if _, err := j.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Run is one row of the runs table.
type Run struct {
	ID         string
	SiteRoot   string
	StartedAt  time.Time
	FinishedAt time.Time
	Status     string
	AsciiDoc   int
	HTML       int
	Error      string
}

// BeginRun inserts a new run and returns its ID.
func (j *Journal) BeginRun(ctx context.Context, siteRoot string) (string, error) {
	id := uuid.NewString()
	_, err := j.db.ExecContext(ctx,
		`INSERT INTO runs (id, site_root, started_at, status) VALUES (?, ?, ?, ?)`,
		id, siteRoot, time.Now().UTC().Format(timeFormat), StatusRunning)
	if err != nil {
		return "", fmt.Errorf("recording run start: %w", err)
	}
	return id, nil
}

// FinishRun marks a run as done, or aborted when runErr is non-nil.
func (j *Journal) FinishRun(ctx context.Context, runID string, asciidoc, html int, runErr error) error {
	status := StatusDone
	var errText sql.NullString
	if runErr != nil {
		status = StatusAborted
		errText = sql.NullString{String: runErr.Error(), Valid: true}
	}

	res, err := j.db.ExecContext(ctx,
		`UPDATE runs SET finished_at = ?, status = ?, asciidoc_count = ?, html_count = ?, error = ? WHERE id = ?`,
		time.Now().UTC().Format(timeFormat), status, asciidoc, html, errText, runID)
	if err != nil {
		return fmt.Errorf("recording run finish: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("run %s not found", runID)
	}
	return nil
}

// Recorder returns a recorder that stores conversions under runID.
func (j *Journal) Recorder(runID string) *Recorder {
	return &Recorder{journal: j, runID: runID}
}

// Recorder writes conversion records for a single run.
type Recorder struct {
	journal *Journal
	runID   string
}

// Record inserts rec, stamped with the recorder's run ID.
func (r *Recorder) Record(ctx context.Context, rec types.ConversionRecord) error {
	_, err := r.journal.db.ExecContext(ctx,
		`INSERT INTO conversions (run_id, kind, tool, source, output, exit_code, duration_ms, converted_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.runID, string(rec.Kind), rec.Tool, rec.Source, rec.Output, rec.ExitCode,
		rec.Duration.Milliseconds(), rec.ConvertedAt.UTC().Format(timeFormat))
	if err != nil {
		return fmt.Errorf("inserting conversion: %w", err)
	}
	return nil
}

// RecentConversions returns up to limit conversions, newest first.
func (j *Journal) RecentConversions(ctx context.Context, limit int) ([]types.ConversionRecord, error) {
	if limit <= 0 {
		limit = defaultLimit
	}

	rows, err := j.db.QueryContext(ctx,
		`SELECT run_id, kind, tool, source, output, exit_code, duration_ms, converted_at
		 FROM conversions ORDER BY rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying conversions: %w", err)
	}
	defer rows.Close()

	var out []types.ConversionRecord
	for rows.Next() {
		var (
			rec        types.ConversionRecord
			kind       string
			durationMS int64
			at         string
		)
		if err := rows.Scan(&rec.RunID, &kind, &rec.Tool, &rec.Source, &rec.Output,
			&rec.ExitCode, &durationMS, &at); err != nil {
			return nil, fmt.Errorf("scanning conversion: %w", err)
		}
		rec.Kind = types.SourceKind(kind)
		rec.Duration = time.Duration(durationMS) * time.Millisecond
		if rec.ConvertedAt, err = time.Parse(timeFormat, at); err != nil {
			return nil, fmt.Errorf("parsing converted_at of %s: %w", rec.Source, err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Runs returns up to limit runs, newest first.
func (j *Journal) Runs(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = defaultLimit
	}

	rows, err := j.db.QueryContext(ctx,
		`SELECT id, site_root, started_at, finished_at, status, asciidoc_count, html_count, error
		 FROM runs ORDER BY rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var (
			r          Run
			started    string
			finished   sql.NullString
			errMessage sql.NullString
		)
		if err := rows.Scan(&r.ID, &r.SiteRoot, &started, &finished, &r.Status,
			&r.AsciiDoc, &r.HTML, &errMessage); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		if r.StartedAt, err = time.Parse(timeFormat, started); err != nil {
			return nil, fmt.Errorf("parsing started_at of run %s: %w", r.ID, err)
		}
		if finished.Valid {
			if r.FinishedAt, err = time.Parse(timeFormat, finished.String); err != nil {
				return nil, fmt.Errorf("parsing finished_at of run %s: %w", r.ID, err)
			}
		}
		r.Error = errMessage.String
		out = append(out, r)
	}
	return out, rows.Err()
}
