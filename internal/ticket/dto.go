// AngelaMos | 2026
// dto.go

package ticket

import (
	"time"
)

type CreateTicketRequest struct {
	RepairNumber     string   `json:"repair_number"     validate:"omitempty,max=50"`
	SPU              string   `json:"spu"               validate:"omitempty,max=50"`
	ClientID         string   `json:"client_id"         validate:"omitempty,max=100"`
	CustomerName     string   `json:"customer_name"     validate:"required,min=1,max=100"`
	Contact          string   `json:"contact"           validate:"omitempty,max=100"`
	IMEINo           string   `json:"imei_no"           validate:"omitempty,max=50"`
	Brand            string   `json:"brand"             validate:"omitempty,max=50"`
	Model            string   `json:"model"             validate:"omitempty,max=50"`
	SerialNo         string   `json:"serial_no"         validate:"omitempty,max=50"`
	SoftwareVersion  string   `json:"software_version"  validate:"omitempty,max=50"`
	Warranty         string   `json:"warranty"          validate:"omitempty,max=50"`
	SimCard          bool     `json:"sim_card"`
	MemoryCard       bool     `json:"memory_card"`
	Charger          bool     `json:"charger"`
	Battery          bool     `json:"battery"`
	WaterDamaged     bool     `json:"water_damaged"`
	LoanEquipment    bool     `json:"loan_equipment"`
	EquipmentObs     string   `json:"equipment_obs"     validate:"omitempty,max=2000"`
	RepairObs        string   `json:"repair_obs"        validate:"omitempty,max=2000"`
	SelectedServices []string `json:"selected_services" validate:"omitempty,dive,max=100"`
	Condition        string   `json:"condition"         validate:"omitempty,max=500"`
	Problem          string   `json:"problem"           validate:"omitempty,max=2000"`
	Price            float64  `json:"price"             validate:"omitempty,gte=0"`
}

// UpdateTicketRequest carries only the fields present in the request body.
// Absent fields never overwrite stored columns.
type UpdateTicketRequest struct {
	RepairNumber     *string   `json:"repair_number,omitempty"     validate:"omitempty,max=50"`
	SPU              *string   `json:"spu,omitempty"               validate:"omitempty,max=50"`
	ClientID         *string   `json:"client_id,omitempty"         validate:"omitempty,max=100"`
	CustomerName     *string   `json:"customer_name,omitempty"     validate:"omitempty,min=1,max=100"`
	Contact          *string   `json:"contact,omitempty"           validate:"omitempty,max=100"`
	IMEINo           *string   `json:"imei_no,omitempty"           validate:"omitempty,max=50"`
	Brand            *string   `json:"brand,omitempty"             validate:"omitempty,max=50"`
	Model            *string   `json:"model,omitempty"             validate:"omitempty,max=50"`
	SerialNo         *string   `json:"serial_no,omitempty"         validate:"omitempty,max=50"`
	SoftwareVersion  *string   `json:"software_version,omitempty"  validate:"omitempty,max=50"`
	Warranty         *string   `json:"warranty,omitempty"          validate:"omitempty,max=50"`
	SimCard          *bool     `json:"sim_card,omitempty"`
	MemoryCard       *bool     `json:"memory_card,omitempty"`
	Charger          *bool     `json:"charger,omitempty"`
	Battery          *bool     `json:"battery,omitempty"`
	WaterDamaged     *bool     `json:"water_damaged,omitempty"`
	LoanEquipment    *bool     `json:"loan_equipment,omitempty"`
	EquipmentObs     *string   `json:"equipment_obs,omitempty"     validate:"omitempty,max=2000"`
	RepairObs        *string   `json:"repair_obs,omitempty"        validate:"omitempty,max=2000"`
	SelectedServices *[]string `json:"selected_services,omitempty" validate:"omitempty,dive,max=100"`
	Condition        *string   `json:"condition,omitempty"         validate:"omitempty,max=500"`
	Problem          *string   `json:"problem,omitempty"           validate:"omitempty,max=2000"`
	Price            *float64  `json:"price,omitempty"             validate:"omitempty,gte=0"`
}

func (r *UpdateTicketRequest) IsEmpty() bool {
	return r.RepairNumber == nil && r.SPU == nil && r.ClientID == nil &&
		r.CustomerName == nil && r.Contact == nil && r.IMEINo == nil &&
		r.Brand == nil && r.Model == nil && r.SerialNo == nil &&
		r.SoftwareVersion == nil && r.Warranty == nil && r.SimCard == nil &&
		r.MemoryCard == nil && r.Charger == nil && r.Battery == nil &&
		r.WaterDamaged == nil && r.LoanEquipment == nil &&
		r.EquipmentObs == nil && r.RepairObs == nil &&
		r.SelectedServices == nil && r.Condition == nil && r.Problem == nil &&
		r.Price == nil
}

type UpdateTicketStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending in_progress completed delivered"`
}

type TicketResponse struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	RepairNumber     string    `json:"repair_number"`
	SPU              string    `json:"spu"`
	ClientID         string    `json:"client_id"`
	CustomerName     string    `json:"customer_name"`
	Contact          string    `json:"contact"`
	IMEINo           string    `json:"imei_no"`
	Brand            string    `json:"brand"`
	Model            string    `json:"model"`
	SerialNo         string    `json:"serial_no"`
	SoftwareVersion  string    `json:"software_version"`
	Warranty         string    `json:"warranty"`
	SimCard          bool      `json:"sim_card"`
	MemoryCard       bool      `json:"memory_card"`
	Charger          bool      `json:"charger"`
	Battery          bool      `json:"battery"`
	WaterDamaged     bool      `json:"water_damaged"`
	LoanEquipment    bool      `json:"loan_equipment"`
	EquipmentObs     string    `json:"equipment_obs"`
	RepairObs        string    `json:"repair_obs"`
	SelectedServices []string  `json:"selected_services"`
	Condition        string    `json:"condition"`
	Problem          string    `json:"problem"`
	Price            float64   `json:"price"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func ToTicketResponse(t *Ticket) TicketResponse {
	services := []string(t.SelectedServices)
	if services == nil {
		services = []string{}
	}

	return TicketResponse{
		ID:               t.ID,
		UserID:           t.UserID,
		RepairNumber:     t.RepairNumber,
		SPU:              t.SPU,
		ClientID:         t.ClientID,
		CustomerName:     t.CustomerName,
		Contact:          t.Contact,
		IMEINo:           t.IMEINo,
		Brand:            t.Brand,
		Model:            t.Model,
		SerialNo:         t.SerialNo,
		SoftwareVersion:  t.SoftwareVersion,
		Warranty:         t.Warranty,
		SimCard:          t.SimCard,
		MemoryCard:       t.MemoryCard,
		Charger:          t.Charger,
		Battery:          t.Battery,
		WaterDamaged:     t.WaterDamaged,
		LoanEquipment:    t.LoanEquipment,
		EquipmentObs:     t.EquipmentObs,
		RepairObs:        t.RepairObs,
		SelectedServices: services,
		Condition:        t.Condition,
		Problem:          t.Problem,
		Price:            t.Price,
		Status:           t.Status,
		CreatedAt:        t.CreatedAt,
		UpdatedAt:        t.UpdatedAt,
	}
}

func ToTicketResponseList(tickets []Ticket) []TicketResponse {
	responses := make([]TicketResponse, 0, len(tickets))
	for _, t := range tickets {
		responses = append(responses, ToTicketResponse(&t))
	}
	return responses
}
