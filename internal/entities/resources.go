package entities

import "drilltrack/pkg/types"

// Rig statuses form a flat flag set, not a workflow.
const (
	RigAvailable   = "available"
	RigMaintenance = "maintenance"
	RigStandby     = "standby"
	RigRetired     = "retired"
)

type Rig struct {
	ID      string `json:"id" db:"id"`
	OrgID   string `json:"org_id" db:"org_id"`
	Name    string `json:"name" db:"name"`
	RigType string `json:"rig_type" db:"rig_type"`
	Status  string `json:"status" db:"status"`
	Active  bool   `json:"active" db:"active"`

	types.BaseEntity
}

type Crew struct {
	ID     string  `json:"id" db:"id"`
	OrgID  string  `json:"org_id" db:"org_id"`
	Name   string  `json:"name" db:"name"`
	LeadID *string `json:"lead_id" db:"lead_id"`

	LeadName string `json:"lead_name,omitempty" db:"-"`

	types.BaseEntity
}

type Staff struct {
	ID           string `json:"id" db:"id"`
	OrgID        string `json:"org_id" db:"org_id"`
	FirstName    string `json:"first_name" db:"first_name"`
	LastName     string `json:"last_name" db:"last_name"`
	Email        string `json:"email" db:"email"`
	Role         string `json:"role" db:"role"`
	PasswordHash string `json:"-" db:"password_hash"`
	Active       bool   `json:"active" db:"active"`

	types.BaseEntity
}

type Project struct {
	ID            string   `json:"id" db:"id"`
	OrgID         string   `json:"org_id" db:"org_id"`
	Name          string   `json:"name" db:"name"`
	ProjectNumber string   `json:"project_number" db:"project_number"`
	ClientName    string   `json:"client_name" db:"client_name"`
	Location      string   `json:"location" db:"location"`
	Lat           *float64 `json:"lat" db:"lat"`
	Lng           *float64 `json:"lng" db:"lng"`

	types.BaseEntity
}
