// AngelaMos | 2026
// entity.go

package ticket

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

type Ticket struct {
	ID               string     `db:"id"`
	UserID           string     `db:"user_id"`
	RepairNumber     string     `db:"repair_number"`
	SPU              string     `db:"spu"`
	ClientID         string     `db:"client_id"`
	CustomerName     string     `db:"customer_name"`
	Contact          string     `db:"contact"`
	IMEINo           string     `db:"imei_no"`
	Brand            string     `db:"brand"`
	Model            string     `db:"model"`
	SerialNo         string     `db:"serial_no"`
	SoftwareVersion  string     `db:"software_version"`
	Warranty         string     `db:"warranty"`
	SimCard          bool       `db:"sim_card"`
	MemoryCard       bool       `db:"memory_card"`
	Charger          bool       `db:"charger"`
	Battery          bool       `db:"battery"`
	WaterDamaged     bool       `db:"water_damaged"`
	LoanEquipment    bool       `db:"loan_equipment"`
	EquipmentObs     string     `db:"equipment_obs"`
	RepairObs        string     `db:"repair_obs"`
	SelectedServices StringList `db:"selected_services"`
	Condition        string     `db:"condition"`
	Problem          string     `db:"problem"`
	Price            float64    `db:"price"`
	Status           string     `db:"status"`
	CreatedAt        time.Time  `db:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at"`
}

const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusDelivered  = "delivered"
)

func ValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusInProgress, StatusCompleted, StatusDelivered:
		return true
	}
	return false
}

// StringList stores a list of service names as a JSONB column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("scan string list: unsupported type %T", src)
	}
}
