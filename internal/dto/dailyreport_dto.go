package dto

import (
	"github.com/aarondl/null/v8"

	"drilltrack/internal/entities"
)

type ProductionEntryDTO struct {
	BoringID    null.String `json:"boring_id" validate:"omitempty,uuid"`
	BoringType  string      `json:"boring_type"`
	StartDepth  float64     `json:"start_depth" validate:"gte=0"`
	EndDepth    float64     `json:"end_depth" validate:"gte=0"`
	Description string      `json:"description"`
	SortOrder   int         `json:"sort_order"`
}

type BillingEntryDTO struct {
	RateLineID  null.String `json:"rate_line_id" validate:"omitempty,uuid"`
	BillingUnit string      `json:"billing_unit" validate:"required"`
	Quantity    float64     `json:"quantity" validate:"gte=0"`
	Rate        float64     `json:"rate" validate:"gte=0"`
	Total       float64     `json:"total" validate:"gte=0"`
	Notes       string      `json:"notes"`
	SortOrder   int         `json:"sort_order"`
}

type ActivityEntryDTO struct {
	ActivityType string  `json:"activity_type" validate:"required"`
	Hours        float64 `json:"hours" validate:"gte=0"`
	Description  string  `json:"description"`
	SortOrder    int     `json:"sort_order"`
}

type CreateDailyReportDTO struct {
	WorkOrderID string `json:"work_order_id" validate:"required,uuid"`
	ReportDate  string `json:"report_date" validate:"required,dateonly"`

	RigID     null.String `json:"rig_id" validate:"omitempty,uuid"`
	CrewID    null.String `json:"crew_id" validate:"omitempty,uuid"`
	DrillerID null.String `json:"driller_id" validate:"omitempty,uuid"`

	StartTime string `json:"start_time" validate:"omitempty,timeonly"`
	EndTime   string `json:"end_time" validate:"omitempty,timeonly"`

	WeatherConditions string `json:"weather_conditions"`
	EquipmentIssues   string `json:"equipment_issues"`
	SafetyIncidents   string `json:"safety_incidents"`
	Notes             string `json:"notes"`

	// true files the report straight into review instead of draft
	Submit bool `json:"submit"`

	Production []ProductionEntryDTO `json:"production" validate:"dive"`
	Billing    []BillingEntryDTO    `json:"billing" validate:"dive"`
	Activities []ActivityEntryDTO   `json:"activities" validate:"dive"`
}

type UpdateDailyReportDTO struct {
	ReportDate null.String `json:"report_date" validate:"omitempty,dateonly"`

	RigID     null.String `json:"rig_id" validate:"omitempty"`
	CrewID    null.String `json:"crew_id" validate:"omitempty"`
	DrillerID null.String `json:"driller_id" validate:"omitempty"`

	StartTime null.String `json:"start_time" validate:"omitempty,timeonly"`
	EndTime   null.String `json:"end_time" validate:"omitempty,timeonly"`

	WeatherConditions null.String `json:"weather_conditions"`
	EquipmentIssues   null.String `json:"equipment_issues"`
	SafetyIncidents   null.String `json:"safety_incidents"`
	Notes             null.String `json:"notes"`

	Production []ProductionEntryDTO `json:"production" validate:"omitempty,dive"`
	Billing    []BillingEntryDTO    `json:"billing" validate:"omitempty,dive"`
	Activities []ActivityEntryDTO   `json:"activities" validate:"omitempty,dive"`
}

type TransitionReportDTO struct {
	Status      string `json:"status" validate:"required"`
	ReviewNotes string `json:"review_notes"`
}

type DailyReportListFilterDTO struct {
	WorkOrderID string `query:"work_order_id"`
	Status      string `query:"status"`
	CrewID      string `query:"crew_id"`
	RigID       string `query:"rig_id"`
	DateFrom    string `query:"date_from"`
	DateTo      string `query:"date_to"`
}

type DailyReportResponseDTO struct {
	entities.DailyReport
	WONumber      string `json:"wo_number,omitempty"`
	WorkOrderName string `json:"work_order_name,omitempty"`
	RigName       string `json:"rig_name,omitempty"`
	CrewName      string `json:"crew_name,omitempty"`
}
