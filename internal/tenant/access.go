// AngelaMos | 2026
// access.go

package tenant

import (
	"context"
	"errors"
	"fmt"

	"github.com/angelamos/repairdesk/internal/core"
)

// Scope is a fully authorized, provisioned view onto one tenant's tables,
// scoped to one target user's rows.
type Scope struct {
	TenantID string
	UserID   string
	Names    TableNames
}

// Access is the single entry point for tenant-scoped route handlers. Every
// endpoint that reads or writes tenant data resolves a Scope first; there
// is no other path to a tenant table name.
type Access struct {
	guard *Guard
	prov  *Provisioner
}

func NewAccess(guard *Guard, prov *Provisioner) *Access {
	return &Access{guard: guard, prov: prov}
}

// Scope authorizes requesterID against the tenant owning targetUserID's
// data, ensures the tenant tables exist, and resolves their names.
// Denials surface as core.ErrForbidden so callers return an explicit 403,
// never a silently empty result set.
func (a *Access) Scope(
	ctx context.Context,
	requesterID, targetUserID string,
) (*Scope, error) {
	if targetUserID == "" {
		targetUserID = requesterID
	}

	tenantID, err := a.guard.UserTenantID(ctx, targetUserID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, fmt.Errorf("scope tenant: %w", core.ErrNotFound)
		}
		return nil, fmt.Errorf("scope tenant: %w", err)
	}

	allowed, err := a.guard.CanAccess(ctx, requesterID, tenantID)
	if err != nil {
		return nil, fmt.Errorf("scope tenant: %w", err)
	}
	if !allowed {
		return nil, fmt.Errorf("scope tenant: %w", core.ErrForbidden)
	}

	if err := a.prov.Ensure(ctx, tenantID); err != nil {
		return nil, err
	}

	names, err := ResolveTableNames(tenantID)
	if err != nil {
		return nil, err
	}

	return &Scope{
		TenantID: tenantID,
		UserID:   targetUserID,
		Names:    names,
	}, nil
}

// Provision creates the tenant tables outside of a request scope, used
// best-effort at registration time.
func (a *Access) Provision(ctx context.Context, tenantID string) error {
	return a.prov.CreateTables(ctx, tenantID)
}
