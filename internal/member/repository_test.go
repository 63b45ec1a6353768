// AngelaMos | 2026
// repository_test.go

package member_test

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelamos/repairdesk/internal/core"
	"github.com/angelamos/repairdesk/internal/member"
	"github.com/angelamos/repairdesk/internal/tenant"
)

// recordingDB captures statements for assertion and doubles as the
// transaction runner by handing itself to the transactional closure.
type recordingDB struct {
	txCalls     int
	execQueries []string
	execFn      func(query string, args ...any) (sql.Result, error)
}

func (f *recordingDB) InTx(
	_ context.Context,
	fn func(tx core.DBTX) error,
) error {
	f.txCalls++
	return fn(f)
}

func (f *recordingDB) ExecContext(
	_ context.Context,
	query string,
	args ...any,
) (sql.Result, error) {
	f.execQueries = append(f.execQueries, query)
	if f.execFn != nil {
		return f.execFn(query, args...)
	}
	return driver.RowsAffected(1), nil
}

func (f *recordingDB) GetContext(
	context.Context, any, string, ...any,
) error {
	return sql.ErrNoRows
}

func (f *recordingDB) SelectContext(
	context.Context, any, string, ...any,
) error {
	return nil
}

func (f *recordingDB) QueryContext(
	context.Context, string, ...any,
) (*sql.Rows, error) {
	return nil, errors.New("recordingDB: QueryContext not supported")
}

func (f *recordingDB) QueryxContext(
	context.Context, string, ...any,
) (*sqlx.Rows, error) {
	return nil, errors.New("recordingDB: QueryxContext not supported")
}

func (f *recordingDB) QueryRowxContext(
	context.Context, string, ...any,
) *sqlx.Row {
	return nil
}

func (f *recordingDB) DriverName() string { return "pgx" }

func (f *recordingDB) Rebind(query string) string { return query }

func (f *recordingDB) BindNamed(query string, _ any) (string, []any, error) {
	return query, nil, nil
}

var _ core.DBTX = (*recordingDB)(nil)

func memberNames(t *testing.T) tenant.TableNames {
	t.Helper()
	names, err := tenant.ResolveTableNames("shop-1")
	require.NoError(t, err)
	return names
}

func TestMemberDelete_ArchivesInOneTransaction(t *testing.T) {
	db := &recordingDB{}
	repo := member.NewRepository(db, db)

	err := repo.Delete(context.Background(), memberNames(t), "m-1", "owner")
	require.NoError(t, err)

	assert.Equal(t, 1, db.txCalls)
	require.Len(t, db.execQueries, 2)
	assert.Contains(t, db.execQueries[0], `"tenant_shop_1_deleted_members"`)
	assert.Contains(t, db.execQueries[0], "INSERT INTO")
	assert.Contains(t, db.execQueries[1], "DELETE FROM")
	assert.Contains(t, db.execQueries[1], `"tenant_shop_1_team_members"`)
}

func TestMemberDelete_CopyFailureBlocksDelete(t *testing.T) {
	copyErr := errors.New("insert failed")
	db := &recordingDB{
		execFn: func(_ string, _ ...any) (sql.Result, error) {
			return nil, copyErr
		},
	}
	repo := member.NewRepository(db, db)

	err := repo.Delete(context.Background(), memberNames(t), "m-1", "owner")
	require.ErrorIs(t, err, copyErr)

	assert.Equal(t, 1, db.txCalls)
	require.Len(t, db.execQueries, 1)
	assert.NotContains(t, db.execQueries[0], "DELETE FROM")
}

func TestMemberDelete_MissingRowIsNotFound(t *testing.T) {
	db := &recordingDB{
		execFn: func(_ string, _ ...any) (sql.Result, error) {
			return driver.RowsAffected(0), nil
		},
	}
	repo := member.NewRepository(db, db)

	err := repo.Delete(context.Background(), memberNames(t), "m-1", "owner")
	require.ErrorIs(t, err, core.ErrNotFound)
	require.Len(t, db.execQueries, 1)
}
