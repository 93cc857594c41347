package dto

import (
	"github.com/aarondl/null/v8"

	"drilltrack/internal/entities"
)

type BoringDTO struct {
	Label        string  `json:"label" validate:"required"`
	BoringType   string  `json:"boring_type"`
	PlannedDepth float64 `json:"planned_depth" validate:"gte=0"`
	SortOrder    int     `json:"sort_order"`
}

type RateLineDTO struct {
	BillingUnit  string  `json:"billing_unit" validate:"required"`
	Rate         float64 `json:"rate" validate:"gte=0"`
	UnitLabel    string  `json:"unit_label"`
	EstimatedQty float64 `json:"estimated_quantity" validate:"gte=0"`
	SortOrder    int     `json:"sort_order"`
}

type ActivityDTO struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	SortOrder   int    `json:"sort_order"`
}

type CreateWorkOrderDTO struct {
	ProjectID string `json:"project_id" validate:"required,uuid"`
	Name      string `json:"name" validate:"required,min=2,max=255"`
	Scope     string `json:"scope"`
	Priority  string `json:"priority" validate:"omitempty,priority"`

	RequestedStart null.String `json:"requested_start" validate:"omitempty"`
	RequestedEnd   null.String `json:"requested_end" validate:"omitempty"`

	EstimatedCost float64 `json:"estimated_cost" validate:"gte=0"`

	Location string   `json:"location"`
	Lat      *float64 `json:"lat"`
	Lng      *float64 `json:"lng"`

	LocateTicketNumber  string      `json:"locate_ticket_number"`
	LocateTicketDate    null.String `json:"locate_ticket_date" validate:"omitempty"`
	LocateTicketExpires null.String `json:"locate_ticket_expires" validate:"omitempty"`

	Borings      []BoringDTO   `json:"borings" validate:"dive"`
	RateSchedule []RateLineDTO `json:"rate_schedule" validate:"dive"`
	Activities   []ActivityDTO `json:"activities" validate:"dive"`
}

// UpdateWorkOrderDTO is a full edit: scalar fields are tri-state so a
// missing key leaves the column untouched, and any child list that is
// present replaces the stored rows wholesale.
type UpdateWorkOrderDTO struct {
	Name     null.String `json:"name" validate:"omitempty"`
	Scope    null.String `json:"scope"`
	Priority null.String `json:"priority" validate:"omitempty"`

	RequestedStart null.String `json:"requested_start"`
	RequestedEnd   null.String `json:"requested_end"`

	EstimatedCost null.Float64 `json:"estimated_cost"`

	Location null.String  `json:"location"`
	Lat      null.Float64 `json:"lat"`
	Lng      null.Float64 `json:"lng"`

	LocateTicketNumber  null.String `json:"locate_ticket_number"`
	LocateTicketDate    null.String `json:"locate_ticket_date"`
	LocateTicketExpires null.String `json:"locate_ticket_expires"`

	Borings      []BoringDTO   `json:"borings" validate:"omitempty,dive"`
	RateSchedule []RateLineDTO `json:"rate_schedule" validate:"omitempty,dive"`
	Activities   []ActivityDTO `json:"activities" validate:"omitempty,dive"`
}

// QuickUpdateDTO covers the inline edits dispatchers make without
// opening the full form. It never touches status.
type QuickUpdateDTO struct {
	Priority       null.String `json:"priority" validate:"omitempty"`
	AssignedRigID  null.String `json:"assigned_rig_id" validate:"omitempty"`
	AssignedCrewID null.String `json:"assigned_crew_id" validate:"omitempty"`
	ScheduledStart null.String `json:"scheduled_start" validate:"omitempty,dateonly"`
	ScheduledEnd   null.String `json:"scheduled_end" validate:"omitempty,dateonly"`
}

type TransitionWorkOrderDTO struct {
	Status string `json:"status" validate:"required"`
}

// AssignWorkOrderDTO binds a rig and crew and optionally pins the
// window. Omitted dates fall back to today through today plus two
// weeks.
type AssignWorkOrderDTO struct {
	RigID          null.String `json:"rig_id" validate:"omitempty,uuid"`
	CrewID         null.String `json:"crew_id" validate:"omitempty,uuid"`
	ScheduledStart null.String `json:"scheduled_start" validate:"omitempty,dateonly"`
	ScheduledEnd   null.String `json:"scheduled_end" validate:"omitempty,dateonly"`
}

type ScheduleWindowDTO struct {
	ScheduledStart null.String `json:"scheduled_start" validate:"omitempty,dateonly"`
	ScheduledEnd   null.String `json:"scheduled_end" validate:"omitempty,dateonly"`
}

type WorkOrderListFilterDTO struct {
	Status    string `query:"status"`
	ProjectID string `query:"project_id"`
	Priority  string `query:"priority"`
	CrewID    string `query:"crew_id"`
	RigID     string `query:"rig_id"`
	Search    string `query:"search"`
}

type WorkOrderResponseDTO struct {
	entities.WorkOrder
	ProjectName string `json:"project_name,omitempty"`
	RigName     string `json:"rig_name,omitempty"`
	CrewName    string `json:"crew_name,omitempty"`
}
