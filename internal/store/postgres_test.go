package store

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/company-scraper/internal/model"
)

// newMockPostgresStore creates a PostgresStore backed by pgxmock for unit testing.
func newMockPostgresStore(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	return &PostgresStore{pool: mock}, mock
}

func TestPostgresStore_Migrate(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS results`).
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	require.NoError(t, s.Migrate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_SaveRun(t *testing.T) {
	s, mock := newMockPostgresStore(t)
	r := sampleResult(7, "helios", model.GradeGood)

	mock.ExpectExec(`INSERT INTO results`).
		WithArgs(pgxmock.AnyArg(), "run-1", 7, "helios", "https://helios.example",
			"Solar Energy", "Good", pgxmock.AnyArg(), "2026-10-19T09:30:00Z").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, s.SaveRun(context.Background(), "run-1", r))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_SaveRun_Error(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`INSERT INTO results`).
		WillReturnError(errors.New("connection reset"))

	err := s.SaveRun(context.Background(), "run-1", sampleResult(7, "helios", model.GradeGood))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "postgres: save result")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ListResults_Filters(t *testing.T) {
	s, mock := newMockPostgresStore(t)
	body, err := json.Marshal(sampleResult(3, "tidewater", model.GradeFallback))
	require.NoError(t, err)
	created := time.Date(2026, 10, 19, 10, 0, 0, 0, time.UTC)

	rows := mock.NewRows([]string{"id", "run_id", "result", "created_at"}).
		AddRow("a1", "run-2", body, created)
	mock.ExpectQuery(`SELECT id, run_id, result, created_at FROM results WHERE 1=1 AND run_id = \$1 AND quality = \$2 ORDER BY created_at DESC LIMIT \$3`).
		WithArgs("run-2", "Fallback", DefaultListLimit).
		WillReturnRows(rows)

	records, err := s.ListResults(context.Background(), ResultFilter{RunID: "run-2", Grade: model.GradeFallback})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "a1", records[0].ID)
	assert.Equal(t, "tidewater", records[0].Result.CompanyName)
	assert.Equal(t, created, records[0].CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ListResults_QueryError(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`SELECT id, run_id, result, created_at FROM results`).
		WithArgs(5).
		WillReturnError(errors.New("boom"))

	_, err := s.ListResults(context.Background(), ResultFilter{Limit: 5})
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_SaveBatch(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectCopyFrom(pgx.Identifier{"results"}, copyColumns).
		WillReturnResult(2)

	n, err := s.SaveBatch(context.Background(), "run-1", []*model.ExtractionResult{
		sampleResult(1, "helios", model.GradeExcellent),
		nil,
		sampleResult(2, "voltline", model.GradeFallback),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_SaveBatch_Empty(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	n, err := s.SaveBatch(context.Background(), "run-1", []*model.ExtractionResult{nil})
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_SaveBatch_Error(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectCopyFrom(pgx.Identifier{"results"}, copyColumns).
		WillReturnError(errors.New("copy failed"))

	_, err := s.SaveBatch(context.Background(), "run-1", []*model.ExtractionResult{sampleResult(1, "helios", model.GradeGood)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "postgres: COPY INTO results")
	assert.NoError(t, mock.ExpectationsWereMet())
}
