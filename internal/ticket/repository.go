// AngelaMos | 2026
// repository.go

package ticket

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/angelamos/repairdesk/internal/core"
	"github.com/angelamos/repairdesk/internal/tenant"
)

const ticketColumns = `id, user_id, repair_number, spu, client_id,
		customer_name, contact, imei_no, brand, model, serial_no,
		software_version, warranty, sim_card, memory_card, charger, battery,
		water_damaged, loan_equipment, equipment_obs, repair_obs,
		selected_services, condition, problem, price, status,
		created_at, updated_at`

type Repository interface {
	List(
		ctx context.Context,
		names tenant.TableNames,
		userID string,
	) ([]Ticket, error)
	GetByID(
		ctx context.Context,
		names tenant.TableNames,
		id, userID string,
	) (*Ticket, error)
	Create(
		ctx context.Context,
		names tenant.TableNames,
		ticket *Ticket,
	) (*Ticket, error)
	Update(
		ctx context.Context,
		names tenant.TableNames,
		id, userID string,
		req UpdateTicketRequest,
	) (*Ticket, error)
	UpdateStatus(
		ctx context.Context,
		names tenant.TableNames,
		id, userID, status string,
	) (*Ticket, error)
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

// Table names come from the tenant resolver and pass through
// QuoteIdentifier before entering any query string; they are never
// concatenated from anything else.
func (r *repository) List(
	ctx context.Context,
	names tenant.TableNames,
	userID string,
) ([]Ticket, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE user_id = $1
		ORDER BY created_at DESC`,
		ticketColumns,
		tenant.QuoteIdentifier(names.RepairTickets),
	)

	var tickets []Ticket
	if err := r.db.SelectContext(ctx, &tickets, query, userID); err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}

	return tickets, nil
}

func (r *repository) GetByID(
	ctx context.Context,
	names tenant.TableNames,
	id, userID string,
) (*Ticket, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1 AND user_id = $2`,
		ticketColumns,
		tenant.QuoteIdentifier(names.RepairTickets),
	)

	var ticket Ticket
	err := r.db.GetContext(ctx, &ticket, query, id, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get ticket: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get ticket: %w", err)
	}

	return &ticket, nil
}

// Create inserts with an application-generated id, then re-selects the row.
// Ids are minted in the service so they stay stable across the move to the
// deleted table.
func (r *repository) Create(
	ctx context.Context,
	names tenant.TableNames,
	ticket *Ticket,
) (*Ticket, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (
			id, user_id, repair_number, spu, client_id, customer_name,
			contact, imei_no, brand, model, serial_no, software_version,
			warranty, sim_card, memory_card, charger, battery, water_damaged,
			loan_equipment, equipment_obs, repair_obs, selected_services,
			condition, problem, price, status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26
		)`,
		tenant.QuoteIdentifier(names.RepairTickets),
	)

	_, err := r.db.ExecContext(ctx, query,
		ticket.ID,
		ticket.UserID,
		ticket.RepairNumber,
		ticket.SPU,
		ticket.ClientID,
		ticket.CustomerName,
		ticket.Contact,
		ticket.IMEINo,
		ticket.Brand,
		ticket.Model,
		ticket.SerialNo,
		ticket.SoftwareVersion,
		ticket.Warranty,
		ticket.SimCard,
		ticket.MemoryCard,
		ticket.Charger,
		ticket.Battery,
		ticket.WaterDamaged,
		ticket.LoanEquipment,
		ticket.EquipmentObs,
		ticket.RepairObs,
		ticket.SelectedServices,
		ticket.Condition,
		ticket.Problem,
		ticket.Price,
		ticket.Status,
	)
	if err != nil {
		return nil, fmt.Errorf("create ticket: %w", err)
	}

	return r.GetByID(ctx, names, ticket.ID, ticket.UserID)
}

// Update builds the SET clause only from fields present in the request, so
// unspecified columns are never overwritten.
func (r *repository) Update(
	ctx context.Context,
	names tenant.TableNames,
	id, userID string,
	req UpdateTicketRequest,
) (*Ticket, error) {
	setClauses, args := buildTicketUpdate(req)
	if len(setClauses) == 0 {
		return r.GetByID(ctx, names, id, userID)
	}

	setClauses = append(setClauses, "updated_at = NOW()")

	args = append(args, id, userID)
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s
		WHERE id = $%d AND user_id = $%d
		RETURNING %s`,
		tenant.QuoteIdentifier(names.RepairTickets),
		strings.Join(setClauses, ", "),
		len(args)-1,
		len(args),
		ticketColumns,
	)

	var ticket Ticket
	err := r.db.GetContext(ctx, &ticket, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("update ticket: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("update ticket: %w", err)
	}

	return &ticket, nil
}

func (r *repository) UpdateStatus(
	ctx context.Context,
	names tenant.TableNames,
	id, userID, status string,
) (*Ticket, error) {
	query := fmt.Sprintf(`
		UPDATE %s
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND user_id = $3
		RETURNING %s`,
		tenant.QuoteIdentifier(names.RepairTickets),
		ticketColumns,
	)

	var ticket Ticket
	err := r.db.GetContext(ctx, &ticket, query, status, id, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("update ticket status: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("update ticket status: %w", err)
	}

	return &ticket, nil
}

// Delete archives then removes inside one transaction: the row is copied
// into the deleted table and deleted from the live one, or neither happens.
// A copy that matches no row means a concurrent delete won; that is a
// not-found, not an error state.
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
			tenant.QuoteIdentifier(names.DeletedTickets),
			ticketColumns,
			ticketColumns,
			tenant.QuoteIdentifier(names.RepairTickets),
		)

		result, err := tx.ExecContext(ctx, copyQuery, id, userID)
		if err != nil {
			return fmt.Errorf("archive ticket: %w", err)
		}

		copied, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("archive ticket: %w", err)
		}

		if copied == 0 {
			return fmt.Errorf("archive ticket: %w", core.ErrNotFound)
		}

		deleteQuery := fmt.Sprintf(
			"DELETE FROM %s WHERE id = $1 AND user_id = $2",
			tenant.QuoteIdentifier(names.RepairTickets),
		)

		if _, err := tx.ExecContext(ctx, deleteQuery, id, userID); err != nil {
			return fmt.Errorf("delete ticket: %w", err)
		}

		return nil
	})
}

func buildTicketUpdate(req UpdateTicketRequest) ([]string, []any) {
	var setClauses []string
	var args []any

	set := func(column string, value any) {
		args = append(args, value)
		setClauses = append(
			setClauses,
			fmt.Sprintf("%s = $%d", column, len(args)),
		)
	}

	if req.RepairNumber != nil {
		set("repair_number", *req.RepairNumber)
	}
	if req.SPU != nil {
		set("spu", *req.SPU)
	}
	if req.ClientID != nil {
		set("client_id", *req.ClientID)
	}
	if req.CustomerName != nil {
		set("customer_name", *req.CustomerName)
	}
	if req.Contact != nil {
		set("contact", *req.Contact)
	}
	if req.IMEINo != nil {
		set("imei_no", *req.IMEINo)
	}
	if req.Brand != nil {
		set("brand", *req.Brand)
	}
	if req.Model != nil {
		set("model", *req.Model)
	}
	if req.SerialNo != nil {
		set("serial_no", *req.SerialNo)
	}
	if req.SoftwareVersion != nil {
		set("software_version", *req.SoftwareVersion)
	}
	if req.Warranty != nil {
		set("warranty", *req.Warranty)
	}
	if req.SimCard != nil {
		set("sim_card", *req.SimCard)
	}
	if req.MemoryCard != nil {
		set("memory_card", *req.MemoryCard)
	}
	if req.Charger != nil {
		set("charger", *req.Charger)
	}
	if req.Battery != nil {
		set("battery", *req.Battery)
	}
	if req.WaterDamaged != nil {
		set("water_damaged", *req.WaterDamaged)
	}
	if req.LoanEquipment != nil {
		set("loan_equipment", *req.LoanEquipment)
	}
	if req.EquipmentObs != nil {
		set("equipment_obs", *req.EquipmentObs)
	}
	if req.RepairObs != nil {
		set("repair_obs", *req.RepairObs)
	}
	if req.SelectedServices != nil {
		set("selected_services", StringList(*req.SelectedServices))
	}
	if req.Condition != nil {
		set("condition", *req.Condition)
	}
	if req.Problem != nil {
		set("problem", *req.Problem)
	}
	if req.Price != nil {
		set("price", *req.Price)
	}

	return setClauses, args
}
