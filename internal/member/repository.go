// AngelaMos | 2026
// repository.go

package member

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/angelamos/repairdesk/internal/core"
	"github.com/angelamos/repairdesk/internal/tenant"
)

const memberColumns = `id, user_id, name, email, role, username,
		password_hash, created_at`

type Repository interface {
	List(
		ctx context.Context,
		names tenant.TableNames,
		userID string,
	) ([]Member, error)
	GetByID(
		ctx context.Context,
		names tenant.TableNames,
		id, userID string,
	) (*Member, error)
	Create(
		ctx context.Context,
		names tenant.TableNames,
		member *Member,
	) (*Member, error)
	Update(
		ctx context.Context,
		names tenant.TableNames,
		id, userID string,
		req UpdateMemberRequest,
	) (*Member, error)
	Delete(
		ctx context.Context,
		names tenant.TableNames,
		id, userID string,
	) error
}

type repository struct {
	db core.DBTX
	tx core.TxRunner
}

func NewRepository(db core.DBTX, tx core.TxRunner) Repository {
	return &repository{db: db, tx: tx}
}

func (r *repository) List(
	ctx context.Context,
	names tenant.TableNames,
	userID string,
) ([]Member, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE user_id = $1
		ORDER BY created_at DESC`,
		memberColumns,
		tenant.QuoteIdentifier(names.TeamMembers),
	)

	var members []Member
	if err := r.db.SelectContext(ctx, &members, query, userID); err != nil {
		return nil, fmt.Errorf("list team members: %w", err)
	}

	return members, nil
}

func (r *repository) GetByID(
	ctx context.Context,
	names tenant.TableNames,
	id, userID string,
) (*Member, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1 AND user_id = $2`,
		memberColumns,
		tenant.QuoteIdentifier(names.TeamMembers),
	)

	var member Member
	err := r.db.GetContext(ctx, &member, query, id, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get team member: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get team member: %w", err)
	}

	return &member, nil
}

func (r *repository) Create(
	ctx context.Context,
	names tenant.TableNames,
	member *Member,
) (*Member, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (
			id, user_id, name, email, role, username, password_hash
		) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		tenant.QuoteIdentifier(names.TeamMembers),
	)

	_, err := r.db.ExecContext(ctx, query,
		member.ID,
		member.UserID,
		member.Name,
		member.Email,
		member.Role,
		member.Username,
		member.PasswordHash,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return nil, fmt.Errorf(
				"create team member: %w",
				core.ErrDuplicateKey,
			)
		}
		return nil, fmt.Errorf("create team member: %w", err)
	}

	return r.GetByID(ctx, names, member.ID, member.UserID)
}

func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

func (r *repository) Update(
	ctx context.Context,
	names tenant.TableNames,
	id, userID string,
	req UpdateMemberRequest,
) (*Member, error) {
	var setClauses []string
	var args []any

	set := func(column string, value any) {
		args = append(args, value)
		setClauses = append(
			setClauses,
			fmt.Sprintf("%s = $%d", column, len(args)),
		)
	}

	if req.Name != nil {
		set("name", *req.Name)
	}
	if req.Email != nil {
		set("email", *req.Email)
	}
	if req.Role != nil {
		set("role", *req.Role)
	}

	if len(setClauses) == 0 {
		return r.GetByID(ctx, names, id, userID)
	}

	args = append(args, id, userID)
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s
		WHERE id = $%d AND user_id = $%d
		RETURNING %s`,
		tenant.QuoteIdentifier(names.TeamMembers),
		strings.Join(setClauses, ", "),
		len(args)-1,
		len(args),
		memberColumns,
	)

	var member Member
	err := r.db.GetContext(ctx, &member, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("update team member: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("update team member: %w", err)
	}

	return &member, nil
}

// Delete mirrors the ticket archival move: copy into deleted_members and
// remove from the live table in one transaction, so the row never ends up
// in both tables or neither.
func (r *repository) Delete(
	ctx context.Context,
	names tenant.TableNames,
	id, userID string,
) error {
	return r.tx.InTx(ctx, func(tx core.DBTX) error {
		copyQuery := fmt.Sprintf(`
			INSERT INTO %s (%s, deleted_at)
			SELECT %s, NOW()
			FROM %s
			WHERE id = $1 AND user_id = $2`,
			tenant.QuoteIdentifier(names.DeletedMembers),
			memberColumns,
			memberColumns,
			tenant.QuoteIdentifier(names.TeamMembers),
		)

		result, err := tx.ExecContext(ctx, copyQuery, id, userID)
		if err != nil {
			return fmt.Errorf("archive team member: %w", err)
		}

		copied, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("archive team member: %w", err)
		}

		if copied == 0 {
			return fmt.Errorf("archive team member: %w", core.ErrNotFound)
		}

		deleteQuery := fmt.Sprintf(
			"DELETE FROM %s WHERE id = $1 AND user_id = $2",
			tenant.QuoteIdentifier(names.TeamMembers),
		)

		if _, err := tx.ExecContext(ctx, deleteQuery, id, userID); err != nil {
			return fmt.Errorf("delete team member: %w", err)
		}

		return nil
	})
}
