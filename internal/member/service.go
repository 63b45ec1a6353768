// AngelaMos | 2026
// service.go

package member

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/angelamos/repairdesk/internal/core"
	"github.com/angelamos/repairdesk/internal/tenant"
)

const generatedPasswordBytes = 12

type Service struct {
	repo   Repository
	access *tenant.Access
}

func NewService(repo Repository, access *tenant.Access) *Service {
	return &Service{repo: repo, access: access}
}

func (s *Service) List(
	ctx context.Context,
	requesterID, targetUserID string,
) ([]Member, error) {
	scope, err := s.access.Scope(ctx, requesterID, targetUserID)
	if err != nil {
		return nil, err
	}

	return s.repo.List(ctx, scope.Names, scope.UserID)
}

func (s *Service) Get(
	ctx context.Context,
	requesterID, targetUserID, memberID string,
) (*Member, error) {
	scope, err := s.access.Scope(ctx, requesterID, targetUserID)
	if err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, scope.Names, memberID, scope.UserID)
}

// Create stores a new team member with a server-generated password. Only
// the argon2id hash is persisted; the plaintext is returned to the caller
// exactly once so the shop owner can hand it to the member.
func (s *Service) Create(
	ctx context.Context,
	requesterID string,
	req CreateMemberRequest,
) (*Member, string, error) {
	scope, err := s.access.Scope(ctx, requesterID, requesterID)
	if err != nil {
		return nil, "", err
	}

	password, err := core.GenerateSecureToken(generatedPasswordBytes)
	if err != nil {
		return nil, "", fmt.Errorf("generate member password: %w", err)
	}

	passwordHash, err := core.HashPassword(password)
	if err != nil {
		return nil, "", fmt.Errorf("hash member password: %w", err)
	}

	member := &Member{
		ID:           uuid.New().String(),
		UserID:       scope.UserID,
		Name:         req.Name,
		Email:        strings.ToLower(req.Email),
		Role:         req.Role,
		Username:     strings.ToLower(req.Username),
		PasswordHash: passwordHash,
	}

	created, err := s.repo.Create(ctx, scope.Names, member)
	if err != nil {
		return nil, "", err
	}

	return created, password, nil
}

func (s *Service) Update(
	ctx context.Context,
	requesterID, targetUserID, memberID string,
	req UpdateMemberRequest,
) (*Member, error) {
	scope, err := s.access.Scope(ctx, requesterID, targetUserID)
	if err != nil {
		return nil, err
	}

	return s.repo.Update(ctx, scope.Names, memberID, scope.UserID, req)
}

func (s *Service) Delete(
	ctx context.Context,
	requesterID, targetUserID, memberID string,
) error {
	scope, err := s.access.Scope(ctx, requesterID, targetUserID)
	if err != nil {
		return err
	}

	return s.repo.Delete(ctx, scope.Names, memberID, scope.UserID)
}
