// AngelaMos | 2026
// entity.go

package member

import (
	"time"
)

// Member is a team account inside one shop's tenant tables. The roles here
// are tenant-local and carry no cross-tenant privilege.
type Member struct {
	ID           string    `db:"id"`
	UserID       string    `db:"user_id"`
	Name         string    `db:"name"`
	Email        string    `db:"email"`
	Role         string    `db:"role"`
	Username     string    `db:"username"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}

const (
	RoleMember = "member"
	RoleAdmin  = "admin"
)
