// AngelaMos | 2026
// service_test.go

package user_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelamos/repairdesk/internal/core"
	"github.com/angelamos/repairdesk/internal/user"
)

type fakeRepo struct {
	users   map[string]user.User
	created *user.User
}

func (f *fakeRepo) Create(_ context.Context, u *user.User) error {
	f.created = u
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (*user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
	}
	return &u, nil
}

func (f *fakeRepo) GetByEmail(
	_ context.Context,
	email string,
) (*user.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
}

func (f *fakeRepo) Update(_ context.Context, _ *user.User) error { return nil }

func (f *fakeRepo) UpdatePassword(_ context.Context, _, _ string) error {
	return nil
}

func (f *fakeRepo) IncrementTokenVersion(_ context.Context, _ string) error {
	return nil
}

func (f *fakeRepo) SoftDelete(_ context.Context, _ string) error { return nil }

func (f *fakeRepo) List(
	_ context.Context,
	_ user.ListUsersParams,
) ([]user.User, int, error) {
	return nil, 0, nil
}

func (f *fakeRepo) ExistsByEmail(_ context.Context, _ string) (bool, error) {
	return false, nil
}

var _ user.Repository = (*fakeRepo)(nil)

func newRepo() *fakeRepo {
	return &fakeRepo{
		users: map[string]user.User{
			"owner": {
				ID:       "owner",
				Email:    "owner@shop.example",
				TenantID: "tenant-a",
				Role:     user.RoleUser,
			},
			"ops": {
				ID:       "ops",
				Email:    "ops@platform.example",
				TenantID: "tenant-ops",
				Role:     user.RoleAdmin,
			},
		},
	}
}

func TestServiceCreate_MintsTenantID(t *testing.T) {
	repo := &fakeRepo{}
	svc := user.NewService(repo)

	info, err := svc.Create(
		context.Background(),
		"New@Shop.Example",
		"$argon2id$hash",
		"Nina",
		"Nina's Repairs",
	)
	require.NoError(t, err)

	require.NotNil(t, repo.created)
	assert.NotEmpty(t, repo.created.TenantID)
	assert.Equal(t, "new@shop.example", repo.created.Email)
	assert.Equal(t, user.RoleUser, repo.created.Role)
	assert.Equal(t, repo.created.TenantID, info.TenantID)

	// Two owners never share a tenant.
	second := &fakeRepo{}
	svc2 := user.NewService(second)
	_, err = svc2.Create(
		context.Background(),
		"other@shop.example",
		"$argon2id$hash",
		"Omar",
		"Omar's Repairs",
	)
	require.NoError(t, err)
	assert.NotEqual(t, repo.created.TenantID, second.created.TenantID)
}

func TestServiceMembershipByUserID(t *testing.T) {
	svc := user.NewService(newRepo())

	m, err := svc.MembershipByUserID(context.Background(), "owner")
	require.NoError(t, err)
	assert.Equal(t, "tenant-a", m.TenantID)
	assert.Equal(t, user.RoleUser, m.Role)

	_, err = svc.MembershipByUserID(context.Background(), "ghost")
	require.ErrorIs(t, err, core.ErrNotFound)
}

func TestServiceCanDeleteUser(t *testing.T) {
	svc := user.NewService(newRepo())

	// Self-deletion is always allowed.
	require.NoError(
		t,
		svc.CanDeleteUser(context.Background(), "owner", "owner"),
	)

	// Non-admins cannot delete others.
	err := svc.CanDeleteUser(context.Background(), "owner", "ops")
	require.ErrorIs(t, err, core.ErrForbidden)

	// Admins can delete regular users but not other admins.
	require.NoError(t, svc.CanDeleteUser(context.Background(), "ops", "owner"))
}
