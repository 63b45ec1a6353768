// AngelaMos | 2026
// service_test.go

package member_test

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelamos/repairdesk/internal/core"
	"github.com/angelamos/repairdesk/internal/member"
	"github.com/angelamos/repairdesk/internal/tenant"
)

type fakeRepo struct {
	created *member.Member
	members map[string]member.Member
}

func (f *fakeRepo) List(
	_ context.Context,
	_ tenant.TableNames,
	_ string,
) ([]member.Member, error) {
	out := make([]member.Member, 0, len(f.members))
	for _, m := range f.members {
		out = append(out, m)
	}
	return out, nil
}

func (f *fakeRepo) GetByID(
	_ context.Context,
	_ tenant.TableNames,
	id, _ string,
) (*member.Member, error) {
	m, ok := f.members[id]
	if !ok {
		return nil, fmt.Errorf("get team member: %w", core.ErrNotFound)
	}
	return &m, nil
}

func (f *fakeRepo) Create(
	_ context.Context,
	_ tenant.TableNames,
	m *member.Member,
) (*member.Member, error) {
	f.created = m
	return m, nil
}

func (f *fakeRepo) Update(
	_ context.Context,
	_ tenant.TableNames,
	id, _ string,
	_ member.UpdateMemberRequest,
) (*member.Member, error) {
	m, ok := f.members[id]
	if !ok {
		return nil, fmt.Errorf("update team member: %w", core.ErrNotFound)
	}
	return &m, nil
}

func (f *fakeRepo) Delete(
	_ context.Context,
	_ tenant.TableNames,
	id, _ string,
) error {
	if _, ok := f.members[id]; !ok {
		return fmt.Errorf("delete team member: %w", core.ErrNotFound)
	}
	delete(f.members, id)
	return nil
}

var _ member.Repository = (*fakeRepo)(nil)

// provisionedDB answers the table existence probe with true and accepts
// any statement, so Access.Scope never issues DDL during these tests.
type provisionedDB struct{}

func (provisionedDB) ExecContext(
	context.Context, string, ...any,
) (sql.Result, error) {
	return driver.RowsAffected(1), nil
}

func (provisionedDB) GetContext(
	_ context.Context,
	dest any,
	_ string,
	_ ...any,
) error {
	if out, ok := dest.(*bool); ok {
		*out = true
		return nil
	}
	return sql.ErrNoRows
}

func (provisionedDB) SelectContext(
	context.Context, any, string, ...any,
) error {
	return nil
}

func (provisionedDB) QueryContext(
	context.Context, string, ...any,
) (*sql.Rows, error) {
	return nil, errors.New("not supported")
}

func (provisionedDB) QueryxContext(
	context.Context, string, ...any,
) (*sqlx.Rows, error) {
	return nil, errors.New("not supported")
}

func (provisionedDB) QueryRowxContext(
	context.Context, string, ...any,
) *sqlx.Row {
	return nil
}

func (provisionedDB) DriverName() string { return "pgx" }

func (provisionedDB) Rebind(query string) string { return query }

func (provisionedDB) BindNamed(query string, _ any) (string, []any, error) {
	return query, nil, nil
}

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

func newService(repo member.Repository) *member.Service {
	access := tenant.NewAccess(
		tenant.NewGuard(staticDirectory{
			"owner":    {TenantID: "tenant-a", Role: "user"},
			"outsider": {TenantID: "tenant-b", Role: "user"},
		}),
		tenant.NewProvisioner(provisionedDB{}, nil),
	)
	return member.NewService(repo, access)
}

func TestServiceCreate_GeneratesCredentialOnce(t *testing.T) {
	repo := &fakeRepo{}
	svc := newService(repo)

	created, password, err := svc.Create(
		context.Background(),
		"owner",
		member.CreateMemberRequest{
			Name:     "Joana",
			Email:    "Joana@Example.com",
			Role:     member.RoleMember,
			Username: "Joana.R",
		},
	)
	require.NoError(t, err)
	require.NotEmpty(t, password)

	// Only the hash is persisted; the plaintext verifies against it.
	require.NotNil(t, repo.created)
	assert.NotEqual(t, password, repo.created.PasswordHash)
	ok, err := core.VerifyPassword(password, repo.created.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)

	assert.Equal(t, "owner", created.UserID)
	assert.Equal(t, "joana@example.com", created.Email)
	assert.Equal(t, "joana.r", created.Username)
	assert.NotEmpty(t, created.ID)
}

func TestServiceCreate_DistinctPasswordsPerMember(t *testing.T) {
	repo := &fakeRepo{}
	svc := newService(repo)

	req := member.CreateMemberRequest{
		Name:     "Joana",
		Email:    "joana@example.com",
		Role:     member.RoleMember,
		Username: "joana",
	}

	_, first, err := svc.Create(context.Background(), "owner", req)
	require.NoError(t, err)

	_, second, err := svc.Create(context.Background(), "owner", req)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestServiceList_CrossTenantForbidden(t *testing.T) {
	svc := newService(&fakeRepo{})

	_, err := svc.List(context.Background(), "outsider", "owner")
	require.ErrorIs(t, err, core.ErrForbidden)
}

func TestServiceGet_NotFound(t *testing.T) {
	svc := newService(&fakeRepo{members: map[string]member.Member{}})

	_, err := svc.Get(context.Background(), "owner", "", "missing")
	require.ErrorIs(t, err, core.ErrNotFound)
}
