// Package store persists extraction results across runs.
package store

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"

	"github.com/sells-group/company-scraper/internal/model"
)

// Supported store drivers.
const (
	DriverNone     = "none"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// DefaultListLimit caps ListResults when the filter sets no limit.
const DefaultListLimit = 50

// Store is the persistence layer for extraction results.
type Store interface {
	Migrate(ctx context.Context) error
	SaveRun(ctx context.Context, runID string, result *model.ExtractionResult) error
	SaveBatch(ctx context.Context, runID string, results []*model.ExtractionResult) (int64, error)
	ListResults(ctx context.Context, filter ResultFilter) ([]Record, error)
	Close() error
}

// ResultFilter narrows ListResults. Zero values mean no filtering.
type ResultFilter struct {
	RunID string
	Grade model.QualityGrade
	Limit int
}

func (f ResultFilter) limit() int {
	if f.Limit <= 0 {
		return DefaultListLimit
	}
	return f.Limit
}

// Record is one stored extraction result.
type Record struct {
	ID        string                 `json:"id"`
	RunID     string                 `json:"run_id"`
	Result    model.ExtractionResult `json:"result"`
	CreatedAt time.Time              `json:"created_at"`
}

// NewRunID returns a fresh identifier for a batch or single run.
func NewRunID() string {
	return uuid.New().String()
}

// Open creates the store selected by driver. The "none" driver (or an empty
// one) returns a nil Store and no error; callers skip persistence.
func Open(ctx context.Context, driver, dsn string) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "", DriverNone:
		return nil, nil
	case DriverSQLite:
		if dsn == "" {
			return nil, eris.New("store: sqlite requires a database_url")
		}
		s, err := NewSQLite(dsn)
		if err != nil {
			return nil, err
		}
		return s, nil
	case DriverPostgres:
		if dsn == "" {
			return nil, eris.New("store: postgres requires a database_url")
		}
		s, err := NewPostgres(ctx, dsn)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, eris.Errorf("store: unknown driver %q", driver)
	}
}
