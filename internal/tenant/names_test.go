// AngelaMos | 2026
// names_test.go

package tenant_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelamos/repairdesk/internal/core"
	"github.com/angelamos/repairdesk/internal/tenant"
)

func TestResolveTableNames(t *testing.T) {
	names, err := tenant.ResolveTableNames(
		"11111111-1111-1111-1111-111111111111",
	)
	require.NoError(t, err)

	base := "tenant_11111111_1111_1111_1111_111111111111"
	assert.Equal(t, base+"_repair_tickets", names.RepairTickets)
	assert.Equal(t, base+"_team_members", names.TeamMembers)
	assert.Equal(t, base+"_deleted_tickets", names.DeletedTickets)
	assert.Equal(t, base+"_deleted_members", names.DeletedMembers)
}

func TestResolveTableNames_Deterministic(t *testing.T) {
	first, err := tenant.ResolveTableNames("shop-42")
	require.NoError(t, err)

	second, err := tenant.ResolveTableNames("shop-42")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestResolveTableNames_SanitizesHostileInput(t *testing.T) {
	names, err := tenant.ResolveTableNames(`x"; DROP TABLE users; --`)
	require.NoError(t, err)

	// The trailing `; --` becomes four underscores, and the table suffix
	// contributes a fifth.
	assert.Equal(
		t,
		"tenant_x___DROP_TABLE_users_____repair_tickets",
		names.RepairTickets,
	)
}

func TestResolveTableNames_DistinctTenantsDistinctTables(t *testing.T) {
	seen := make(map[string]string)

	for range 100 {
		id := uuid.New().String()
		names, err := tenant.ResolveTableNames(id)
		require.NoError(t, err)

		prev, dup := seen[names.RepairTickets]
		require.False(t, dup, "tenants %s and %s collide", prev, id)
		seen[names.RepairTickets] = id
	}
}

func TestResolveTableNames_EmptyTenantID(t *testing.T) {
	_, err := tenant.ResolveTableNames("")
	require.ErrorIs(t, err, core.ErrInvalidTenantID)
}

func TestQuoteIdentifier(t *testing.T) {
	assert.Equal(t, `"tenant_a_repair_tickets"`,
		tenant.QuoteIdentifier("tenant_a_repair_tickets"))

	// Embedded double quotes are doubled, not stripped.
	assert.Equal(t, `"we""ird"`, tenant.QuoteIdentifier(`we"ird`))
}
