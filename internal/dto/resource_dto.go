package dto

import "github.com/aarondl/null/v8"

type CreateRigDTO struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	RigType string `json:"rig_type"`
	Status  string `json:"status" validate:"omitempty,oneof=available maintenance standby retired"`
}

type UpdateRigDTO struct {
	Name    null.String `json:"name" validate:"omitempty"`
	RigType null.String `json:"rig_type"`
	Status  null.String `json:"status" validate:"omitempty"`
	Active  null.Bool   `json:"active"`
}

type CreateCrewDTO struct {
	Name   string      `json:"name" validate:"required,min=1,max=100"`
	LeadID null.String `json:"lead_id" validate:"omitempty,uuid"`
}

type UpdateCrewDTO struct {
	Name   null.String `json:"name" validate:"omitempty"`
	LeadID null.String `json:"lead_id" validate:"omitempty"`
}

type CreateStaffDTO struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Role      string `json:"role" validate:"required,rolename"`
	Password  string `json:"password" validate:"required,min=8"`
}

type UpdateStaffDTO struct {
	FirstName null.String `json:"first_name" validate:"omitempty"`
	LastName  null.String `json:"last_name" validate:"omitempty"`
	Email     null.String `json:"email" validate:"omitempty,email"`
	Role      null.String `json:"role" validate:"omitempty,rolename"`
	Active    null.Bool   `json:"active"`
}

type CreateProjectDTO struct {
	Name          string   `json:"name" validate:"required,min=2,max=255"`
	ProjectNumber string   `json:"project_number"`
	ClientName    string   `json:"client_name"`
	Location      string   `json:"location"`
	Lat           *float64 `json:"lat"`
	Lng           *float64 `json:"lng"`
}

type UpdateProjectDTO struct {
	Name          null.String  `json:"name" validate:"omitempty"`
	ProjectNumber null.String  `json:"project_number"`
	ClientName    null.String  `json:"client_name"`
	Location      null.String  `json:"location"`
	Lat           null.Float64 `json:"lat"`
	Lng           null.Float64 `json:"lng"`
}
