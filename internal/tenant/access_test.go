// AngelaMos | 2026
// access_test.go

package tenant_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelamos/repairdesk/internal/core"
	"github.com/angelamos/repairdesk/internal/tenant"
)

func newAccess(db *fakeDB) *tenant.Access {
	return tenant.NewAccess(
		tenant.NewGuard(newDirectory()),
		tenant.NewProvisioner(db, nil),
	)
}

func TestAccessScope_OwnData(t *testing.T) {
	db := &fakeDB{getFn: existsResult(true)}
	access := newAccess(db)

	scope, err := access.Scope(context.Background(), "alice", "")
	require.NoError(t, err)

	assert.Equal(t, "tenant-a", scope.TenantID)
	assert.Equal(t, "alice", scope.UserID)
	assert.Equal(t, "tenant_tenant_a_repair_tickets", scope.Names.RepairTickets)
}

func TestAccessScope_CrossTenantForbidden(t *testing.T) {
	db := &fakeDB{getFn: existsResult(true)}
	access := newAccess(db)

	_, err := access.Scope(context.Background(), "alice", "bob")
	require.ErrorIs(t, err, core.ErrForbidden)

	// Denied before any tenant table is touched or provisioned.
	assert.Empty(t, db.execQueries)
}

func TestAccessScope_AdminReachesOtherTenant(t *testing.T) {
	db := &fakeDB{getFn: existsResult(true)}
	access := newAccess(db)

	scope, err := access.Scope(context.Background(), "platform", "bob")
	require.NoError(t, err)

	assert.Equal(t, "tenant-b", scope.TenantID)
	assert.Equal(t, "bob", scope.UserID)
}

func TestAccessScope_ProvisionsMissingTenant(t *testing.T) {
	db := &fakeDB{getFn: existsResult(false)}
	access := newAccess(db)

	scope, err := access.Scope(context.Background(), "alice", "alice")
	require.NoError(t, err)
	assert.Equal(t, "tenant-a", scope.TenantID)

	// Missing tables get created before the scope is handed out.
	assert.Len(t, db.execQueries, 4)
	assert.Contains(t, db.execQueries[0], "tenant_tenant_a_repair_tickets")
}

func TestAccessScope_UnknownTargetUser(t *testing.T) {
	db := &fakeDB{getFn: existsResult(true)}
	access := newAccess(db)

	_, err := access.Scope(context.Background(), "alice", "ghost")
	require.ErrorIs(t, err, core.ErrNotFound)
}

func TestAccessProvision(t *testing.T) {
	db := &fakeDB{}
	access := newAccess(db)

	require.NoError(t, access.Provision(context.Background(), "tenant-new"))
	assert.Len(t, db.execQueries, 4)
}
