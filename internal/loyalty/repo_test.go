package loyalty

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glad47/pos-sync-service/internal/db"
)

type stubSource struct {
	rows     []db.Row
	err      error
	calls    int
	lastSQL  string
	lastArgs []any
}

func (s *stubSource) FetchRows(ctx context.Context, sql string, args ...any) ([]db.Row, error) {
	s.calls++
	s.lastSQL = sql
	s.lastArgs = args
	if s.err != nil {
		return nil, s.err
	}
	return s.rows, nil
}

func TestChangedClassifiesOncePerProgram(t *testing.T) {
	since := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	created := programRow(1, func(row db.Row) {
		row["program_create_date"] = since.Add(time.Hour)
		row["program_write_date"] = since.Add(time.Hour)
	})
	updated := programRow(2, func(row db.Row) {
		row["program_create_date"] = since.Add(-time.Hour)
		row["program_write_date"] = since.Add(time.Minute)
		row["rule_discount"] = 15.0
		row["discount_code"] = "C2"
	})

	// join fan-out: program 1 arrives three times
	src := &stubSource{rows: []db.Row{created, created, updated, created}}
	repo := NewRepo(src, "ar_001", "en_US")

	set, err := repo.Changed(context.Background(), since)
	require.NoError(t, err)

	require.Len(t, set.Created, 1)
	require.Len(t, set.Updated, 1)
	assert.Empty(t, set.Deleted)
	assert.Equal(t, 2, set.Count())

	assert.Equal(t, int64(1), set.Created[0].ProgramID)
	assert.Equal(t, int64(2), set.Updated[0].ProgramID)
	assert.Equal(t, 15.0, set.Updated[0].DiscountPercent)
	require.NotNil(t, set.Updated[0].DiscountCode)
	assert.Equal(t, "C2", *set.Updated[0].DiscountCode)

	require.Len(t, src.lastArgs, 1)
	assert.Equal(t, since, src.lastArgs[0])
}

func TestChangedPropagatesSourceError(t *testing.T) {
	src := &stubSource{err: db.ErrDataAccess}
	repo := NewRepo(src, "ar_001", "en_US")

	_, err := repo.Changed(context.Background(), time.Now())
	assert.ErrorIs(t, err, db.ErrDataAccess)
}

func TestAllAggregatesThroughBuilder(t *testing.T) {
	src := &stubSource{rows: []db.Row{
		programRow(1, withEligible(10, "A", "1", 1)),
		programRow(1, withEligible(10, "A", "1", 1)),
		programRow(1, withEligible(11, "B", "2", 2)),
	}}
	repo := NewRepo(src, "ar_001", "en_US")

	programs, err := repo.All(context.Background())
	require.NoError(t, err)
	require.Len(t, programs, 1)
	assert.Len(t, programs[0].EligibleProducts, 2)
	assert.Equal(t, 1, src.calls)
}
