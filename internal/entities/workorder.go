package entities

import (
	"time"

	"drilltrack/internal/workflow"
	"drilltrack/pkg/types"
)

// WorkOrder is a unit of contracted field work tied to a project. Child
// rows (borings, rate schedule, activities) belong exclusively to one
// work order and are replaced wholesale on edit.
type WorkOrder struct {
	ID        string `json:"id" db:"id"`
	OrgID     string `json:"org_id" db:"org_id"`
	ProjectID string `json:"project_id" db:"project_id"`
	WONumber  string `json:"wo_number" db:"wo_number"`
	Name      string `json:"name" db:"name"`
	Scope     string `json:"scope" db:"scope"`

	Priority        string                   `json:"priority" db:"priority"`
	Status          workflow.WorkOrderStatus `json:"status" db:"status"`
	SubmittedByType string                   `json:"submitted_by_type" db:"submitted_by_type"`

	AssignedRigID  *string `json:"assigned_rig_id" db:"assigned_rig_id"`
	AssignedCrewID *string `json:"assigned_crew_id" db:"assigned_crew_id"`

	RequestedStart *time.Time `json:"requested_start" db:"requested_start"`
	RequestedEnd   *time.Time `json:"requested_end" db:"requested_end"`
	ScheduledStart *time.Time `json:"scheduled_start" db:"scheduled_start"`
	ScheduledEnd   *time.Time `json:"scheduled_end" db:"scheduled_end"`
	ActualStart    *time.Time `json:"actual_start" db:"actual_start"`
	ActualEnd      *time.Time `json:"actual_end" db:"actual_end"`

	EstimatedCost float64 `json:"estimated_cost" db:"estimated_cost"`

	// Site location
	Location string   `json:"location" db:"location"`
	Lat      *float64 `json:"lat" db:"lat"`
	Lng      *float64 `json:"lng" db:"lng"`

	// Utility-locate ticket
	LocateTicketNumber  string     `json:"locate_ticket_number" db:"locate_ticket_number"`
	LocateTicketDate    *time.Time `json:"locate_ticket_date" db:"locate_ticket_date"`
	LocateTicketExpires *time.Time `json:"locate_ticket_expires" db:"locate_ticket_expires"`

	Borings      []WorkOrderBoring   `json:"borings"`
	RateSchedule []RateScheduleLine  `json:"rate_schedule"`
	Activities   []WorkOrderActivity `json:"activities"`

	types.BaseEntity
}

type WorkOrderBoring struct {
	ID           string  `json:"id" db:"id"`
	WorkOrderID  string  `json:"work_order_id" db:"work_order_id"`
	Label        string  `json:"label" db:"boring_id_label"`
	BoringType   string  `json:"boring_type" db:"boring_type"`
	PlannedDepth float64 `json:"planned_depth" db:"planned_depth"`
	Status       string  `json:"status" db:"status"`
	SortOrder    int     `json:"sort_order" db:"sort_order"`
}

type RateScheduleLine struct {
	ID           string  `json:"id" db:"id"`
	WorkOrderID  string  `json:"work_order_id" db:"work_order_id"`
	BillingUnit  string  `json:"billing_unit" db:"billing_unit"`
	Rate         float64 `json:"rate" db:"rate"`
	UnitLabel    string  `json:"unit_label" db:"unit_label"`
	EstimatedQty float64 `json:"estimated_quantity" db:"estimated_quantity"`
	SortOrder    int     `json:"sort_order" db:"sort_order"`
}

type WorkOrderActivity struct {
	ID          string `json:"id" db:"id"`
	WorkOrderID string `json:"work_order_id" db:"work_order_id"`
	Name        string `json:"name" db:"name"`
	Description string `json:"description" db:"description"`
	SortOrder   int    `json:"sort_order" db:"sort_order"`
}
