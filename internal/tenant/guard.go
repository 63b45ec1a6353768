// AngelaMos | 2026
// guard.go

package tenant

import (
	"context"
	"errors"
	"fmt"

	"github.com/angelamos/repairdesk/internal/core"
)

// Membership is a user's tenant binding as resolved from trusted storage.
// Tenant identity is always re-derived server-side; a client-supplied
// tenant id is never trusted directly.
type Membership struct {
	TenantID string
	Role     string
}

const privilegedRole = "admin"

type UserDirectory interface {
	MembershipByUserID(ctx context.Context, userID string) (*Membership, error)
}

// Guard decides whether a requesting user may touch a target tenant's data.
type Guard struct {
	users UserDirectory
}

func NewGuard(users UserDirectory) *Guard {
	return &Guard{users: users}
}

// UserTenantID resolves a user's own tenant id.
func (g *Guard) UserTenantID(
	ctx context.Context,
	userID string,
) (string, error) {
	if userID == "" {
		return "", fmt.Errorf("resolve tenant: %w", core.ErrNotFound)
	}

	membership, err := g.users.MembershipByUserID(ctx, userID)
	if err != nil {
		return "", err
	}

	return membership.TenantID, nil
}

// CanAccess allows self-tenant requests always, and cross-tenant requests
// only for the privileged platform role. An unresolvable requester is
// denied: fail closed, not open.
func (g *Guard) CanAccess(
	ctx context.Context,
	requestingUserID, targetTenantID string,
) (bool, error) {
	if requestingUserID == "" || targetTenantID == "" {
		return false, nil
	}

	membership, err := g.users.MembershipByUserID(ctx, requestingUserID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	if membership.TenantID == targetTenantID {
		return true, nil
	}

	return membership.Role == privilegedRole, nil
}
