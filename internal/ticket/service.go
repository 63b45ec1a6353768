// AngelaMos | 2026
// service.go

package ticket

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/angelamos/repairdesk/internal/core"
	"github.com/angelamos/repairdesk/internal/tenant"
)

type Service struct {
	repo   Repository
	access *tenant.Access
}

func NewService(repo Repository, access *tenant.Access) *Service {
	return &Service{repo: repo, access: access}
}

// List returns the target user's tickets, newest first. requesterID and
// targetUserID may differ only when the requester passes the tenant guard.
func (s *Service) List(
	ctx context.Context,
	requesterID, targetUserID string,
) ([]Ticket, error) {
	scope, err := s.access.Scope(ctx, requesterID, targetUserID)
	if err != nil {
		return nil, err
	}

	return s.repo.List(ctx, scope.Names, scope.UserID)
}

func (s *Service) Get(
	ctx context.Context,
	requesterID, targetUserID, ticketID string,
) (*Ticket, error) {
	scope, err := s.access.Scope(ctx, requesterID, targetUserID)
	if err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, scope.Names, ticketID, scope.UserID)
}

func (s *Service) Create(
	ctx context.Context,
	requesterID string,
	req CreateTicketRequest,
) (*Ticket, error) {
	scope, err := s.access.Scope(ctx, requesterID, requesterID)
	if err != nil {
		return nil, err
	}

	ticket := &Ticket{
		ID:               uuid.New().String(),
		UserID:           scope.UserID,
		RepairNumber:     req.RepairNumber,
		SPU:              req.SPU,
		ClientID:         req.ClientID,
		CustomerName:     req.CustomerName,
		Contact:          req.Contact,
		IMEINo:           req.IMEINo,
		Brand:            req.Brand,
		Model:            req.Model,
		SerialNo:         req.SerialNo,
		SoftwareVersion:  req.SoftwareVersion,
		Warranty:         req.Warranty,
		SimCard:          req.SimCard,
		MemoryCard:       req.MemoryCard,
		Charger:          req.Charger,
		Battery:          req.Battery,
		WaterDamaged:     req.WaterDamaged,
		LoanEquipment:    req.LoanEquipment,
		EquipmentObs:     req.EquipmentObs,
		RepairObs:        req.RepairObs,
		SelectedServices: StringList(req.SelectedServices),
		Condition:        req.Condition,
		Problem:          req.Problem,
		Price:            req.Price,
		Status:           StatusPending,
	}

	return s.repo.Create(ctx, scope.Names, ticket)
}

func (s *Service) Update(
	ctx context.Context,
	requesterID, targetUserID, ticketID string,
	req UpdateTicketRequest,
) (*Ticket, error) {
	scope, err := s.access.Scope(ctx, requesterID, targetUserID)
	if err != nil {
		return nil, err
	}

	return s.repo.Update(ctx, scope.Names, ticketID, scope.UserID, req)
}

func (s *Service) UpdateStatus(
	ctx context.Context,
	requesterID, targetUserID, ticketID, status string,
) (*Ticket, error) {
	if !ValidStatus(status) {
		return nil, fmt.Errorf(
			"update status: invalid status %q: %w",
			status,
			core.ErrInvalidInput,
		)
	}

	scope, err := s.access.Scope(ctx, requesterID, targetUserID)
	if err != nil {
		return nil, err
	}

	return s.repo.UpdateStatus(ctx, scope.Names, ticketID, scope.UserID, status)
}

func (s *Service) Delete(
	ctx context.Context,
	requesterID, targetUserID, ticketID string,
) error {
	scope, err := s.access.Scope(ctx, requesterID, targetUserID)
	if err != nil {
		return err
	}

	return s.repo.Delete(ctx, scope.Names, ticketID, scope.UserID)
}
