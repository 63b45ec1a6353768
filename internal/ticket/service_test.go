// AngelaMos | 2026
// service_test.go

package ticket_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelamos/repairdesk/internal/core"
	"github.com/angelamos/repairdesk/internal/tenant"
	"github.com/angelamos/repairdesk/internal/ticket"
)

type staticDirectory map[string]tenant.Membership

func (d staticDirectory) MembershipByUserID(
	_ context.Context,
	userID string,
) (*tenant.Membership, error) {
	m, ok := d[userID]
	if !ok {
		return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
	}
	return &m, nil
}

func newService(db *fakeDB) *ticket.Service {
	access := tenant.NewAccess(
		tenant.NewGuard(staticDirectory{
			"owner":    {TenantID: "tenant-a", Role: "user"},
			"outsider": {TenantID: "tenant-b", Role: "user"},
			"platform": {TenantID: "tenant-ops", Role: "admin"},
		}),
		tenant.NewProvisioner(db, nil),
	)
	return ticket.NewService(ticket.NewRepository(db, db), access)
}

func provisioned() *fakeDB {
	return &fakeDB{
		getFn: func(dest any, query string, args ...any) error {
			if out, ok := dest.(*bool); ok {
				*out = true
				return nil
			}
			return returnTicket("t-1", "owner")(dest, query, args...)
		},
	}
}

func TestServiceCreate_MintsIDAndDefaultsStatus(t *testing.T) {
	db := provisioned()
	svc := newService(db)

	created, err := svc.Create(
		context.Background(),
		"owner",
		ticket.CreateTicketRequest{CustomerName: "Ana"},
	)
	require.NoError(t, err)
	require.NotNil(t, created)

	require.Len(t, db.execQueries, 1)
	args := db.execArgs[0]
	require.Len(t, args, 26)
	assert.NotEmpty(t, args[0], "id is minted in the service")
	assert.Equal(t, "owner", args[1])
	assert.Equal(t, ticket.StatusPending, args[25])
}

func TestServiceUpdateStatus_RejectsUnknownStatus(t *testing.T) {
	db := provisioned()
	svc := newService(db)

	_, err := svc.UpdateStatus(
		context.Background(),
		"owner",
		"",
		"t-1",
		"exploded",
	)
	require.ErrorIs(t, err, core.ErrInvalidInput)

	// Rejected before any tenant lookup or query.
	assert.Empty(t, db.getQueries)
	assert.Empty(t, db.execQueries)
}

func TestServiceList_CrossTenantForbidden(t *testing.T) {
	db := provisioned()
	svc := newService(db)

	_, err := svc.List(context.Background(), "outsider", "owner")
	require.ErrorIs(t, err, core.ErrForbidden)
	assert.Empty(t, db.selectQueries)
}

func TestServiceList_AdminReadsOtherTenant(t *testing.T) {
	db := provisioned()
	svc := newService(db)

	_, err := svc.List(context.Background(), "platform", "owner")
	require.NoError(t, err)

	require.Len(t, db.selectQueries, 1)
	assert.Contains(t, db.selectQueries[0], "tenant_tenant_a_repair_tickets")
	assert.Equal(t, []any{"owner"}, db.selectArgs[0])
}
