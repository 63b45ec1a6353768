// AngelaMos | 2026
// provisioner.go

package tenant

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/angelamos/repairdesk/internal/core"
)

const ticketColumns = `
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		repair_number TEXT NOT NULL DEFAULT '',
		spu TEXT NOT NULL DEFAULT '',
		client_id TEXT NOT NULL DEFAULT '',
		customer_name TEXT NOT NULL DEFAULT '',
		contact TEXT NOT NULL DEFAULT '',
		imei_no TEXT NOT NULL DEFAULT '',
		brand TEXT NOT NULL DEFAULT '',
		model TEXT NOT NULL DEFAULT '',
		serial_no TEXT NOT NULL DEFAULT '',
		software_version TEXT NOT NULL DEFAULT '',
		warranty TEXT NOT NULL DEFAULT '',
		sim_card BOOLEAN NOT NULL DEFAULT FALSE,
		memory_card BOOLEAN NOT NULL DEFAULT FALSE,
		charger BOOLEAN NOT NULL DEFAULT FALSE,
		battery BOOLEAN NOT NULL DEFAULT FALSE,
		water_damaged BOOLEAN NOT NULL DEFAULT FALSE,
		loan_equipment BOOLEAN NOT NULL DEFAULT FALSE,
		equipment_obs TEXT NOT NULL DEFAULT '',
		repair_obs TEXT NOT NULL DEFAULT '',
		selected_services JSONB NOT NULL DEFAULT '[]',
		condition TEXT NOT NULL DEFAULT '',
		problem TEXT NOT NULL DEFAULT '',
		price NUMERIC(10,2) NOT NULL DEFAULT 0,
		status TEXT NOT NULL DEFAULT 'pending',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()`

const memberColumns = `
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		name TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL DEFAULT '',
		role TEXT NOT NULL DEFAULT 'member',
		username TEXT NOT NULL DEFAULT '',
		password_hash TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()`

const deletedAtColumn = `,
		deleted_at TIMESTAMPTZ NOT NULL DEFAULT NOW()`

// Provisioner lazily creates a tenant's table set. All DDL is
// CREATE TABLE IF NOT EXISTS, so concurrent first-writes for the same
// tenant may both provision without error or duplication.
type Provisioner struct {
	db     core.DBTX
	logger *slog.Logger
}

func NewProvisioner(db core.DBTX, logger *slog.Logger) *Provisioner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Provisioner{db: db, logger: logger}
}

// TablesExist reports whether the tenant is provisioned. The repair_tickets
// table stands proxy for the whole set; a missing sibling table self-heals
// through CreateTables on the next write.
func (p *Provisioner) TablesExist(
	ctx context.Context,
	tenantID string,
) (bool, error) {
	names, err := ResolveTableNames(tenantID)
	if err != nil {
		return false, err
	}

	query := `
		SELECT EXISTS (
			SELECT 1 FROM information_schema.tables
			WHERE table_schema = current_schema() AND table_name = $1
		)`

	var exists bool
	if err := p.db.GetContext(ctx, &exists, query, names.RepairTickets); err != nil {
		return false, fmt.Errorf("check tenant tables: %w", err)
	}

	return exists, nil
}

// CreateTables provisions the four tables for a tenant. Each statement runs
// independently: a failure on one table is logged and the rest are still
// attempted, since any missing table is recreated on demand later.
func (p *Provisioner) CreateTables(ctx context.Context, tenantID string) error {
	names, err := ResolveTableNames(tenantID)
	if err != nil {
		return err
	}

	tables := []struct {
		name    string
		columns string
	}{
		{names.RepairTickets, ticketColumns},
		{names.TeamMembers, memberColumns},
		{names.DeletedTickets, ticketColumns + deletedAtColumn},
		{names.DeletedMembers, memberColumns + deletedAtColumn},
	}

	var failed int
	for _, t := range tables {
		ddl := fmt.Sprintf(
			"CREATE TABLE IF NOT EXISTS %s (%s)",
			QuoteIdentifier(t.name),
			t.columns,
		)

		if _, execErr := p.db.ExecContext(ctx, ddl); execErr != nil {
			failed++
			p.logger.Error("create tenant table failed",
				"table", t.name,
				"error", execErr,
			)
		}
	}

	if failed > 0 {
		return fmt.Errorf(
			"create tenant tables: %d of %d failed: %w",
			failed, len(tables), core.ErrProvisioning,
		)
	}

	return nil
}

// Ensure provisions the tenant if the existence probe says it is missing.
// The probe and the create race benignly across concurrent requests.
func (p *Provisioner) Ensure(ctx context.Context, tenantID string) error {
	exists, err := p.TablesExist(ctx, tenantID)
	if err != nil {
		return err
	}

	if exists {
		return nil
	}

	return p.CreateTables(ctx, tenantID)
}
