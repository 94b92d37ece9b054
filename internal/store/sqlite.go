package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/company-scraper/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close() //nolint:errcheck
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS results (
	id           TEXT PRIMARY KEY,
	run_id       TEXT NOT NULL,
	company_id   INTEGER NOT NULL,
	company_name TEXT NOT NULL,
	website      TEXT NOT NULL,
	sector       TEXT,
	quality      TEXT NOT NULL,
	result       TEXT NOT NULL,
	scraped_at   TEXT NOT NULL,
	created_at   TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_results_run ON results(run_id);
CREATE INDEX IF NOT EXISTS idx_results_quality ON results(quality);
`

// Migrate creates the results table and its indexes.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

// sqliteTimeLayout is fixed width so created_at sorts lexically.
const sqliteTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

const sqliteInsert = `INSERT INTO results (id, run_id, company_id, company_name, website, sector, quality, result, scraped_at, created_at)
 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

func insertArgs(runID string, r *model.ExtractionResult) ([]any, error) {
	body, err := json.Marshal(r)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: marshal result")
	}
	return []any{
		uuid.New().String(), runID, r.CompanyID, r.CompanyName, r.CompanyWebsite,
		r.Sector, string(r.QualityGrade), string(body), r.ScrapeTimestamp,
		time.Now().UTC().Format(sqliteTimeLayout),
	}, nil
}

// SaveRun stores one result under runID.
func (s *SQLiteStore) SaveRun(ctx context.Context, runID string, result *model.ExtractionResult) error {
	if result == nil {
		return eris.New("sqlite: nil result")
	}
	args, err := insertArgs(runID, result)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, sqliteInsert, args...)
	return eris.Wrapf(err, "sqlite: save result for company %d", result.CompanyID)
}

// SaveBatch stores results under runID in one transaction. Nil results are
// skipped.
func (s *SQLiteStore) SaveBatch(ctx context.Context, runID string, results []*model.ExtractionResult) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: begin batch")
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, sqliteInsert)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: prepare batch insert")
	}
	defer stmt.Close() //nolint:errcheck

	var n int64
	for _, r := range results {
		if r == nil {
			continue
		}
		args, err := insertArgs(runID, r)
		if err != nil {
			return 0, err
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return 0, eris.Wrapf(err, "sqlite: save result for company %d", r.CompanyID)
		}
		n++
	}

	if err := tx.Commit(); err != nil {
		return 0, eris.Wrap(err, "sqlite: commit batch")
	}
	return n, nil
}

// ListResults returns stored results, newest first.
func (s *SQLiteStore) ListResults(ctx context.Context, filter ResultFilter) ([]Record, error) {
	query := `SELECT id, run_id, result, created_at FROM results WHERE 1=1`
	var args []any
	if filter.RunID != "" {
		query += ` AND run_id = ?`
		args = append(args, filter.RunID)
	}
	if filter.Grade != "" {
		query += ` AND quality = ?`
		args = append(args, string(filter.Grade))
	}
	query += ` ORDER BY created_at DESC, rowid DESC LIMIT ?`
	args = append(args, filter.limit())

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list results")
	}
	defer rows.Close() //nolint:errcheck

	var records []Record
	for rows.Next() {
		var (
			rec       Record
			body      string
			createdAt string
		)
		if err := rows.Scan(&rec.ID, &rec.RunID, &body, &createdAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan result")
		}
		if err := json.Unmarshal([]byte(body), &rec.Result); err != nil {
			return nil, eris.Wrapf(err, "sqlite: decode result %s", rec.ID)
		}
		rec.CreatedAt, _ = time.Parse(sqliteTimeLayout, createdAt)
		records = append(records, rec)
	}
	return records, eris.Wrap(rows.Err(), "sqlite: iterate results")
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
