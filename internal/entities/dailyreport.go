package entities

import (
	"time"

	"drilltrack/internal/workflow"
	"drilltrack/pkg/types"
)

// DailyReport is one crew/rig's field record for one date against one
// work order. Production and billing rows are owned by the report and
// replaced wholesale on edit.
type DailyReport struct {
	ID           string `json:"id" db:"id"`
	OrgID        string `json:"org_id" db:"org_id"`
	WorkOrderID  string `json:"work_order_id" db:"work_order_id"`
	ReportNumber string `json:"report_number" db:"report_number"`

	ReportDate time.Time `json:"report_date" db:"report_date"`

	RigID     *string `json:"rig_id" db:"rig_id"`
	CrewID    *string `json:"crew_id" db:"crew_id"`
	DrillerID *string `json:"driller_id" db:"driller_id"`

	StartTime string `json:"start_time" db:"start_time"`
	EndTime   string `json:"end_time" db:"end_time"`

	WeatherConditions string `json:"weather_conditions" db:"weather_conditions"`
	EquipmentIssues   string `json:"equipment_issues" db:"equipment_issues"`
	SafetyIncidents   string `json:"safety_incidents" db:"safety_incidents"`
	Notes             string `json:"notes" db:"notes"`

	Status      workflow.ReportStatus `json:"status" db:"status"`
	ReviewNotes string                `json:"review_notes" db:"review_notes"`
	ReviewedAt  *time.Time            `json:"reviewed_at" db:"reviewed_at"`

	Production []ProductionEntry `json:"production"`
	Billing    []BillingEntry    `json:"billing"`
	Activities []ActivityEntry   `json:"activities"`
	Photos     []ReportPhoto     `json:"photos"`

	types.BaseEntity
}

// ProductionEntry is one boring interval drilled during the report's
// shift. Footage is derived server-side as max(0, end-start).
type ProductionEntry struct {
	ID            string  `json:"id" db:"id"`
	DailyReportID string  `json:"daily_report_id" db:"daily_report_id"`
	BoringID      *string `json:"boring_id" db:"boring_id"`
	BoringType    string  `json:"boring_type" db:"boring_type"`
	StartDepth    float64 `json:"start_depth" db:"start_depth"`
	EndDepth      float64 `json:"end_depth" db:"end_depth"`
	Footage       float64 `json:"footage" db:"footage"`
	Description   string  `json:"description" db:"description"`
	SortOrder     int     `json:"sort_order" db:"sort_order"`
}

// BillingEntry is one billable line; Total is derived as quantity*rate
// when not supplied.
type BillingEntry struct {
	ID             string  `json:"id" db:"id"`
	DailyReportID  string  `json:"daily_report_id" db:"daily_report_id"`
	RateLineID     *string `json:"rate_line_id" db:"rate_line_id"`
	BillingUnit    string  `json:"billing_unit" db:"billing_unit"`
	Quantity       float64 `json:"quantity" db:"quantity"`
	Rate           float64 `json:"rate" db:"rate"`
	Total          float64 `json:"total" db:"total"`
	Notes          string  `json:"notes" db:"notes"`
	SortOrder      int     `json:"sort_order" db:"sort_order"`
}

type ActivityEntry struct {
	ID            string  `json:"id" db:"id"`
	DailyReportID string  `json:"daily_report_id" db:"daily_report_id"`
	ActivityType  string  `json:"activity_type" db:"activity_type"`
	Hours         float64 `json:"hours" db:"hours"`
	Description   string  `json:"description" db:"description"`
	SortOrder     int     `json:"sort_order" db:"sort_order"`
}

type ReportPhoto struct {
	ID            string     `json:"id" db:"id"`
	DailyReportID string     `json:"daily_report_id" db:"daily_report_id"`
	FileName      string     `json:"file_name" db:"file_name"`
	FileURL       string     `json:"file_url" db:"file_url"`
	FileSize      int64      `json:"file_size" db:"file_size"`
	Caption       string     `json:"caption" db:"caption"`
	TakenAt       *time.Time `json:"taken_at" db:"taken_at"`
}
