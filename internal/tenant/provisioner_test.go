// AngelaMos | 2026
// provisioner_test.go

package tenant_test

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelamos/repairdesk/internal/core"
	"github.com/angelamos/repairdesk/internal/tenant"
)

// fakeDB records every statement it receives and answers with canned
// results. It satisfies core.DBTX without a real connection.
type fakeDB struct {
	execQueries []string
	execArgs    [][]any
	execFn      func(query string, args ...any) (sql.Result, error)

	getQueries []string
	getArgs    [][]any
	getFn      func(dest any, query string, args ...any) error

	selectFn func(dest any, query string, args ...any) error
}

func (f *fakeDB) ExecContext(
	_ context.Context,
	query string,
	args ...any,
) (sql.Result, error) {
	f.execQueries = append(f.execQueries, query)
	f.execArgs = append(f.execArgs, args)
	if f.execFn != nil {
		return f.execFn(query, args...)
	}
	return driver.RowsAffected(1), nil
}

func (f *fakeDB) GetContext(
	_ context.Context,
	dest any,
	query string,
	args ...any,
) error {
	f.getQueries = append(f.getQueries, query)
	f.getArgs = append(f.getArgs, args)
	if f.getFn != nil {
		return f.getFn(dest, query, args...)
	}
	return sql.ErrNoRows
}

func (f *fakeDB) SelectContext(
	_ context.Context,
	dest any,
	query string,
	args ...any,
) error {
	if f.selectFn != nil {
		return f.selectFn(dest, query, args...)
	}
	return nil
}

func (f *fakeDB) QueryContext(
	context.Context, string, ...any,
) (*sql.Rows, error) {
	return nil, errors.New("fakeDB: QueryContext not supported")
}

func (f *fakeDB) QueryxContext(
	context.Context, string, ...any,
) (*sqlx.Rows, error) {
	return nil, errors.New("fakeDB: QueryxContext not supported")
}

func (f *fakeDB) QueryRowxContext(
	context.Context, string, ...any,
) *sqlx.Row {
	return nil
}

func (f *fakeDB) DriverName() string { return "pgx" }

func (f *fakeDB) Rebind(query string) string { return query }

func (f *fakeDB) BindNamed(query string, arg any) (string, []any, error) {
	return query, nil, nil
}

var _ core.DBTX = (*fakeDB)(nil)

func existsResult(exists bool) func(dest any, query string, args ...any) error {
	return func(dest any, _ string, _ ...any) error {
		out, ok := dest.(*bool)
		if !ok {
			return fmt.Errorf("unexpected dest %T", dest)
		}
		*out = exists
		return nil
	}
}

func TestProvisionerCreateTables(t *testing.T) {
	db := &fakeDB{}
	prov := tenant.NewProvisioner(db, nil)

	err := prov.CreateTables(context.Background(), "shop-1")
	require.NoError(t, err)

	require.Len(t, db.execQueries, 4)

	wantTables := []string{
		`"tenant_shop_1_repair_tickets"`,
		`"tenant_shop_1_team_members"`,
		`"tenant_shop_1_deleted_tickets"`,
		`"tenant_shop_1_deleted_members"`,
	}
	for i, table := range wantTables {
		assert.Contains(t, db.execQueries[i], "CREATE TABLE IF NOT EXISTS")
		assert.Contains(t, db.execQueries[i], table)
	}

	// Archive tables carry the extra tombstone column, live tables do not.
	assert.NotContains(t, db.execQueries[0], "deleted_at")
	assert.Contains(t, db.execQueries[2], "deleted_at")
	assert.Contains(t, db.execQueries[3], "deleted_at")
}

func TestProvisionerCreateTables_PartialFailureContinues(t *testing.T) {
	db := &fakeDB{
		execFn: func(query string, _ ...any) (sql.Result, error) {
			if strings.Contains(query, "team_members") {
				return nil, errors.New("disk full")
			}
			return driver.RowsAffected(1), nil
		},
	}
	prov := tenant.NewProvisioner(db, nil)

	err := prov.CreateTables(context.Background(), "shop-1")
	require.ErrorIs(t, err, core.ErrProvisioning)

	// The failing statement does not short-circuit the remaining tables.
	assert.Len(t, db.execQueries, 4)
}

func TestProvisionerCreateTables_InvalidTenant(t *testing.T) {
	db := &fakeDB{}
	prov := tenant.NewProvisioner(db, nil)

	err := prov.CreateTables(context.Background(), "")
	require.ErrorIs(t, err, core.ErrInvalidTenantID)
	assert.Empty(t, db.execQueries)
}

func TestProvisionerTablesExist(t *testing.T) {
	db := &fakeDB{getFn: existsResult(true)}
	prov := tenant.NewProvisioner(db, nil)

	exists, err := prov.TablesExist(context.Background(), "shop-1")
	require.NoError(t, err)
	assert.True(t, exists)

	require.Len(t, db.getQueries, 1)
	assert.Contains(t, db.getQueries[0], "information_schema.tables")
	require.Len(t, db.getArgs[0], 1)
	assert.Equal(t, "tenant_shop_1_repair_tickets", db.getArgs[0][0])
}

func TestProvisionerEnsure_SkipsWhenProvisioned(t *testing.T) {
	db := &fakeDB{getFn: existsResult(true)}
	prov := tenant.NewProvisioner(db, nil)

	require.NoError(t, prov.Ensure(context.Background(), "shop-1"))
	assert.Empty(t, db.execQueries)
}

func TestProvisionerEnsure_CreatesWhenMissing(t *testing.T) {
	db := &fakeDB{getFn: existsResult(false)}
	prov := tenant.NewProvisioner(db, nil)

	require.NoError(t, prov.Ensure(context.Background(), "shop-1"))
	assert.Len(t, db.execQueries, 4)
}
