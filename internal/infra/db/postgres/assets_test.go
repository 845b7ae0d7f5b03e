package postgres

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RKATechSolutions/crane-care/internal/domain/asset"
)

type fakeRow struct {
	id  int64
	err error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*dest[0].(*int64) = r.id
	return nil
}

type fakeQuerier struct {
	rows []fakeRow
	sqls []string
}

func (f *fakeQuerier) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	panic("not expected")
}

func (f *fakeQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	f.sqls = append(f.sqls, sql)
	r := f.rows[0]
	if len(f.rows) > 1 {
		f.rows = f.rows[1:]
	}
	return r
}

func TestUpsertSerialLessAssetReRunsSafely(t *testing.T) {
	q := &fakeQuerier{rows: []fakeRow{{err: pgx.ErrNoRows}, {id: 7}, {id: 7}}}
	s := &AssetStore{q: q}
	a := asset.Asset{ClientID: 3, Name: "Overhead crane 5t", Location: "Bay 2"}

	// First import: no matching row, so the update misses and the row inserts.
	id, err := s.Upsert(context.Background(), a)
	require.NoError(t, err)
	assert.EqualValues(t, 7, id)
	require.Len(t, q.sqls, 2)
	assert.Contains(t, q.sqls[0], "UPDATE assets")
	assert.Contains(t, q.sqls[0], "serial IS NULL")
	assert.Contains(t, q.sqls[1], "INSERT INTO assets")

	// Re-importing the same CSV row matches on client and name instead of
	// inserting a duplicate.
	id, err = s.Upsert(context.Background(), a)
	require.NoError(t, err)
	assert.EqualValues(t, 7, id)
	require.Len(t, q.sqls, 3)
	assert.Contains(t, q.sqls[2], "UPDATE assets")
}

func TestUpsertWithSerialUsesConflictKey(t *testing.T) {
	q := &fakeQuerier{rows: []fakeRow{{id: 4}}}
	s := &AssetStore{q: q}

	id, err := s.Upsert(context.Background(), asset.Asset{Name: "Jib crane", Serial: "JC-100"})

	require.NoError(t, err)
	assert.EqualValues(t, 4, id)
	require.Len(t, q.sqls, 1)
	assert.Contains(t, q.sqls[0], "ON CONFLICT (serial)")
}
