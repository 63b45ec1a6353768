// AngelaMos | 2026
// names.go

package tenant

import (
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/angelamos/repairdesk/internal/core"
)

// TableNames holds the four physical table names for one tenant.
type TableNames struct {
	RepairTickets  string
	TeamMembers    string
	DeletedTickets string
	DeletedMembers string
}

const (
	tablePrefix          = "tenant_"
	suffixRepairTickets  = "_repair_tickets"
	suffixTeamMembers    = "_team_members"
	suffixDeletedTickets = "_deleted_tickets"
	suffixDeletedMembers = "_deleted_members"
)

// ResolveTableNames maps a tenant id to its table set. Every component that
// touches tenant tables must derive names through this function; computing a
// name anywhere else risks two code paths disagreeing and silently writing
// to disjoint tables.
//
// The scheme is fixed for compatibility with existing data:
// tenant_<sanitized>_repair_tickets etc., where sanitized replaces every
// character outside [A-Za-z0-9_] with '_'.
func ResolveTableNames(tenantID string) (TableNames, error) {
	sanitized, err := sanitizeTenantID(tenantID)
	if err != nil {
		return TableNames{}, err
	}

	base := tablePrefix + sanitized

	return TableNames{
		RepairTickets:  base + suffixRepairTickets,
		TeamMembers:    base + suffixTeamMembers,
		DeletedTickets: base + suffixDeletedTickets,
		DeletedMembers: base + suffixDeletedMembers,
	}, nil
}

func sanitizeTenantID(tenantID string) (string, error) {
	if tenantID == "" {
		return "", fmt.Errorf("resolve table names: empty tenant id: %w",
			core.ErrInvalidTenantID)
	}

	var b strings.Builder
	b.Grow(len(tenantID))

	for _, r := range tenantID {
		switch {
		case r >= 'a' && r <= 'z',
			r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9',
			r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}

	return b.String(), nil
}

// QuoteIdentifier escapes a table name for interpolation into SQL text.
// Identifiers cannot be bind parameters, so this is the one place raw
// identifiers enter a query string.
func QuoteIdentifier(name string) string {
	return pgx.Identifier{name}.Sanitize()
}
