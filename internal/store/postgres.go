package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/sells-group/company-scraper/internal/model"
)

// Pool is the subset of pgxpool.Pool used by PostgresStore. pgxmock pools
// satisfy it as well.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)
	Close()
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool Pool
}

// NewPostgres connects a pool to connString.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}
	cfg.MaxConns = 4
	cfg.MaxConnLifetime = 30 * time.Minute
	cfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: connect")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS results (
	id           UUID PRIMARY KEY,
	run_id       TEXT NOT NULL,
	company_id   INTEGER NOT NULL,
	company_name TEXT NOT NULL,
	website      TEXT NOT NULL,
	sector       TEXT,
	quality      TEXT NOT NULL,
	result       JSONB NOT NULL,
	scraped_at   TEXT NOT NULL,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_results_run ON results(run_id);
CREATE INDEX IF NOT EXISTS idx_results_quality ON results(quality);
`

// Migrate creates the results table and its indexes.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

// SaveRun stores one result under runID.
func (s *PostgresStore) SaveRun(ctx context.Context, runID string, result *model.ExtractionResult) error {
	if result == nil {
		return eris.New("postgres: nil result")
	}
	body, err := json.Marshal(result)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal result")
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO results (id, run_id, company_id, company_name, website, sector, quality, result, scraped_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		[16]byte(uuid.New()), runID, result.CompanyID, result.CompanyName, result.CompanyWebsite,
		result.Sector, string(result.QualityGrade), body, result.ScrapeTimestamp,
	)
	return eris.Wrapf(err, "postgres: save result for company %d", result.CompanyID)
}

var copyColumns = []string{
	"id", "run_id", "company_id", "company_name", "website", "sector", "quality", "result", "scraped_at",
}

// SaveBatch bulk-inserts results under runID using the COPY protocol. Nil
// results are skipped.
func (s *PostgresStore) SaveBatch(ctx context.Context, runID string, results []*model.ExtractionResult) (int64, error) {
	rows := make([][]any, 0, len(results))
	for _, r := range results {
		if r == nil {
			continue
		}
		body, err := json.Marshal(r)
		if err != nil {
			return 0, eris.Wrap(err, "postgres: marshal result")
		}
		rows = append(rows, []any{
			[16]byte(uuid.New()), runID, r.CompanyID, r.CompanyName, r.CompanyWebsite,
			r.Sector, string(r.QualityGrade), body, r.ScrapeTimestamp,
		})
	}
	if len(rows) == 0 {
		return 0, nil
	}

	n, err := s.pool.CopyFrom(ctx, pgx.Identifier{"results"}, copyColumns, pgx.CopyFromRows(rows))
	if err != nil {
		return 0, eris.Wrap(err, "postgres: COPY INTO results")
	}
	return n, nil
}

// ListResults returns stored results, newest first.
func (s *PostgresStore) ListResults(ctx context.Context, filter ResultFilter) ([]Record, error) {
	query := `SELECT id, run_id, result, created_at FROM results WHERE 1=1`
	var args []any
	if filter.RunID != "" {
		args = append(args, filter.RunID)
		query += fmt.Sprintf(` AND run_id = $%d`, len(args))
	}
	if filter.Grade != "" {
		args = append(args, string(filter.Grade))
		query += fmt.Sprintf(` AND quality = $%d`, len(args))
	}
	args = append(args, filter.limit())
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d`, len(args))

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list results")
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var (
			rec  Record
			body []byte
		)
		if err := rows.Scan(&rec.ID, &rec.RunID, &body, &rec.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan result")
		}
		if err := json.Unmarshal(body, &rec.Result); err != nil {
			return nil, eris.Wrapf(err, "postgres: decode result %s", rec.ID)
		}
		records = append(records, rec)
	}
	return records, eris.Wrap(rows.Err(), "postgres: iterate results")
}

// Close releases the pool.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
