// AngelaMos | 2026
// repository_test.go

package ticket_test

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"strings"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelamos/repairdesk/internal/core"
	"github.com/angelamos/repairdesk/internal/tenant"
	"github.com/angelamos/repairdesk/internal/ticket"
)

type fakeDB struct {
	txCalls     int
	execQueries []string
	execArgs    [][]any
	execFn      func(query string, args ...any) (sql.Result, error)

	getQueries []string
	getArgs    [][]any
	getFn      func(dest any, query string, args ...any) error

	selectQueries []string
	selectArgs    [][]any
}

// InTx hands the fake itself to fn, so statements issued inside the
// transaction land in the same recorders.
func (f *fakeDB) InTx(_ context.Context, fn func(tx core.DBTX) error) error {
	f.txCalls++
	return fn(f)
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
	_ any,
	query string,
	args ...any,
) error {
	f.selectQueries = append(f.selectQueries, query)
	f.selectArgs = append(f.selectArgs, args)
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

func returnTicket(id, userID string) func(dest any, query string, args ...any) error {
	return func(dest any, _ string, _ ...any) error {
		out, ok := dest.(*ticket.Ticket)
		if !ok {
			return errors.New("unexpected dest type")
		}
		out.ID = id
		out.UserID = userID
		return nil
	}
}

func testNames(t *testing.T) tenant.TableNames {
	t.Helper()
	names, err := tenant.ResolveTableNames("shop-1")
	require.NoError(t, err)
	return names
}

func TestRepositoryList_ScopesToUser(t *testing.T) {
	db := &fakeDB{}
	repo := ticket.NewRepository(db, db)

	_, err := repo.List(context.Background(), testNames(t), "user-1")
	require.NoError(t, err)

	require.Len(t, db.selectQueries, 1)
	query := db.selectQueries[0]
	assert.Contains(t, query, `"tenant_shop_1_repair_tickets"`)
	assert.Contains(t, query, "WHERE user_id = $1")
	assert.Contains(t, query, "ORDER BY created_at DESC")
	assert.Equal(t, []any{"user-1"}, db.selectArgs[0])
}

func TestRepositoryGetByID_NotFound(t *testing.T) {
	db := &fakeDB{}
	repo := ticket.NewRepository(db, db)

	_, err := repo.GetByID(context.Background(), testNames(t), "t-1", "user-1")
	require.ErrorIs(t, err, core.ErrNotFound)
}

func TestRepositoryCreate_InsertsThenReselects(t *testing.T) {
	db := &fakeDB{getFn: returnTicket("t-1", "user-1")}
	repo := ticket.NewRepository(db, db)

	created, err := repo.Create(context.Background(), testNames(t), &ticket.Ticket{
		ID:           "t-1",
		UserID:       "user-1",
		CustomerName: "Ana",
		Status:       ticket.StatusPending,
	})
	require.NoError(t, err)
	assert.Equal(t, "t-1", created.ID)

	require.Len(t, db.execQueries, 1)
	assert.Contains(t, db.execQueries[0], "INSERT INTO")
	assert.Contains(t, db.execQueries[0], `"tenant_shop_1_repair_tickets"`)
	assert.Len(t, db.execArgs[0], 26)

	require.Len(t, db.getQueries, 1)
	assert.Contains(t, db.getQueries[0], "SELECT")
}

func TestRepositoryUpdate_PartialSetClause(t *testing.T) {
	db := &fakeDB{getFn: returnTicket("t-1", "user-1")}
	repo := ticket.NewRepository(db, db)

	brand := "Samsung"
	price := 129.90
	_, err := repo.Update(
		context.Background(),
		testNames(t),
		"t-1",
		"user-1",
		ticket.UpdateTicketRequest{Brand: &brand, Price: &price},
	)
	require.NoError(t, err)

	require.Len(t, db.getQueries, 1)
	query := db.getQueries[0]
	assert.Contains(t, query, "brand = $1")
	assert.Contains(t, query, "price = $2")
	assert.Contains(t, query, "updated_at = NOW()")
	assert.Contains(t, query, "WHERE id = $3 AND user_id = $4")

	// Untouched columns stay out of the SET clause. The RETURNING list
	// carries every column, so only the SET portion is inspected.
	setStart := strings.Index(query, "SET")
	whereStart := strings.Index(query, "WHERE")
	require.Greater(t, whereStart, setStart)
	assert.NotContains(t, query[setStart:whereStart], "customer_name")

	assert.Equal(t, []any{"Samsung", 129.90, "t-1", "user-1"}, db.getArgs[0])
}

func TestRepositoryUpdate_EmptyRequestReadsBack(t *testing.T) {
	db := &fakeDB{getFn: returnTicket("t-1", "user-1")}
	repo := ticket.NewRepository(db, db)

	got, err := repo.Update(
		context.Background(),
		testNames(t),
		"t-1",
		"user-1",
		ticket.UpdateTicketRequest{},
	)
	require.NoError(t, err)
	assert.Equal(t, "t-1", got.ID)

	// No UPDATE is issued, only the read-back select.
	require.Len(t, db.getQueries, 1)
	assert.NotContains(t, db.getQueries[0], "UPDATE")
	assert.Empty(t, db.execQueries)
}

func TestRepositoryDelete_ArchivesBeforeDeleting(t *testing.T) {
	db := &fakeDB{}
	repo := ticket.NewRepository(db, db)

	err := repo.Delete(context.Background(), testNames(t), "t-1", "user-1")
	require.NoError(t, err)

	// Copy and delete share one transaction.
	assert.Equal(t, 1, db.txCalls)

	require.Len(t, db.execQueries, 2)
	assert.Contains(t, db.execQueries[0], `"tenant_shop_1_deleted_tickets"`)
	assert.Contains(t, db.execQueries[0], "INSERT INTO")
	assert.Contains(t, db.execQueries[0], "deleted_at")
	assert.Contains(t, db.execQueries[1], "DELETE FROM")
	assert.Contains(t, db.execQueries[1], `"tenant_shop_1_repair_tickets"`)
}

func TestRepositoryDelete_CopyFailureBlocksDelete(t *testing.T) {
	copyErr := errors.New("insert failed")
	db := &fakeDB{
		execFn: func(_ string, _ ...any) (sql.Result, error) {
			return nil, copyErr
		},
	}
	repo := ticket.NewRepository(db, db)

	err := repo.Delete(context.Background(), testNames(t), "t-1", "user-1")
	require.ErrorIs(t, err, copyErr)

	// The live row survives a failed archive copy; the error aborts the
	// transaction before the delete statement runs.
	assert.Equal(t, 1, db.txCalls)
	require.Len(t, db.execQueries, 1)
	assert.NotContains(t, db.execQueries[0], "DELETE FROM")
}

func TestRepositoryDelete_MissingRowIsNotFound(t *testing.T) {
	db := &fakeDB{
		execFn: func(_ string, _ ...any) (sql.Result, error) {
			return driver.RowsAffected(0), nil
		},
	}
	repo := ticket.NewRepository(db, db)

	err := repo.Delete(context.Background(), testNames(t), "t-1", "user-1")
	require.ErrorIs(t, err, core.ErrNotFound)
	require.Len(t, db.execQueries, 1)
}

func TestRepositoryUpdateStatus(t *testing.T) {
	db := &fakeDB{getFn: returnTicket("t-1", "user-1")}
	repo := ticket.NewRepository(db, db)

	_, err := repo.UpdateStatus(
		context.Background(),
		testNames(t),
		"t-1",
		"user-1",
		ticket.StatusCompleted,
	)
	require.NoError(t, err)

	require.Len(t, db.getQueries, 1)
	assert.Contains(t, db.getQueries[0], "SET status = $1")
	assert.Equal(
		t,
		[]any{ticket.StatusCompleted, "t-1", "user-1"},
		db.getArgs[0],
	)
}
