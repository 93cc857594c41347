package scheduling

import (
	"sort"
	"time"

	"drilltrack/internal/entities"
)

// BoardOrder is a work order as it appears in a crew lane.
type BoardOrder struct {
	WorkOrderID    string `json:"work_order_id"`
	WONumber       string `json:"wo_number"`
	Name           string `json:"name"`
	Status         string `json:"status"`
	RigID          string `json:"rig_id,omitempty"`
	ScheduledStart string `json:"scheduled_start,omitempty"`
	ScheduledEnd   string `json:"scheduled_end,omitempty"`
}

// CrewLane is one crew's row on the dispatch board.
type CrewLane struct {
	CrewID   string       `json:"crew_id"`
	CrewName string       `json:"crew_name"`
	LeadName string       `json:"lead_name,omitempty"`
	Orders   []BoardOrder `json:"orders"`
}

// CrewBoard groups active assignments by crew. Crews with no work keep
// an empty lane, and orders assigned a rig but no crew are surfaced
// separately so dispatch can fix them.
type CrewBoard struct {
	Lanes     []CrewLane   `json:"lanes"`
	NeedsCrew []BoardOrder `json:"needs_crew"`
}

func toBoardOrder(wo entities.WorkOrder) BoardOrder {
	bo := BoardOrder{
		WorkOrderID: wo.ID,
		WONumber:    wo.WONumber,
		Name:        wo.Name,
		Status:      string(wo.Status),
	}
	if wo.AssignedRigID != nil {
		bo.RigID = *wo.AssignedRigID
	}
	if wo.ScheduledStart != nil {
		bo.ScheduledStart = wo.ScheduledStart.Format(time.DateOnly)
	}
	if wo.ScheduledEnd != nil {
		bo.ScheduledEnd = wo.ScheduledEnd.Format(time.DateOnly)
	}
	return bo
}

// ComputeCrewBoard builds the board from crews and the orders currently
// holding assignments. Lanes follow the given crew order, orders within
// a lane sort by scheduled start.
func ComputeCrewBoard(crews []entities.Crew, orders []entities.WorkOrder) CrewBoard {
	board := CrewBoard{
		Lanes:     make([]CrewLane, 0, len(crews)),
		NeedsCrew: []BoardOrder{},
	}

	byCrew := make(map[string][]entities.WorkOrder)
	for _, wo := range orders {
		if wo.AssignedCrewID != nil && *wo.AssignedCrewID != "" {
			byCrew[*wo.AssignedCrewID] = append(byCrew[*wo.AssignedCrewID], wo)
			continue
		}
		if wo.AssignedRigID != nil && *wo.AssignedRigID != "" {
			board.NeedsCrew = append(board.NeedsCrew, toBoardOrder(wo))
		}
	}

	for _, crew := range crews {
		lane := CrewLane{
			CrewID:   crew.ID,
			CrewName: crew.Name,
			LeadName: crew.LeadName,
			Orders:   []BoardOrder{},
		}
		assigned := byCrew[crew.ID]
		sort.SliceStable(assigned, func(i, j int) bool {
			a, b := assigned[i].ScheduledStart, assigned[j].ScheduledStart
			switch {
			case a == nil:
				return false
			case b == nil:
				return true
			default:
				return a.Before(*b)
			}
		})
		for _, wo := range assigned {
			lane.Orders = append(lane.Orders, toBoardOrder(wo))
		}
		board.Lanes = append(board.Lanes, lane)
	}
	return board
}
