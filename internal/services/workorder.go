package services

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"drilltrack/internal/dto"
	"drilltrack/internal/entities"
	"drilltrack/internal/repositories"
	"drilltrack/internal/scheduling"
	"drilltrack/internal/workflow"
	apperrors "drilltrack/pkg/errors"
	"drilltrack/pkg/types"
)

type WorkOrderService struct {
	workOrderRepo repositories.WorkOrderRepositoryInterface
	projectRepo   repositories.ProjectRepositoryInterface
	cacheRepo     repositories.CacheRepositoryInterface
	txManager     repositories.TxManagerInterface
	orgID         string
	logger        *zap.Logger
}

func NewWorkOrderService(
	workOrderRepo repositories.WorkOrderRepositoryInterface,
	projectRepo repositories.ProjectRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	txManager repositories.TxManagerInterface,
	orgID string,
	logger *zap.Logger,
) *WorkOrderService {
	return &WorkOrderService{
		workOrderRepo: workOrderRepo,
		projectRepo:   projectRepo,
		cacheRepo:     cacheRepo,
		txManager:     txManager,
		orgID:         orgID,
		logger:        logger,
	}
}

func (s *WorkOrderService) invalidateRollups(ctx context.Context, workOrderID string) {
	if err := s.cacheRepo.Del(ctx, rollupKey(workOrderID, "all"), rollupKey(workOrderID, "approved")); err != nil {
		s.logger.Warn("failed to invalidate rollup cache", zap.String("work_order_id", workOrderID), zap.Error(err))
	}
	if err := s.cacheRepo.DelByPattern(ctx, "rollups:*"); err != nil {
		s.logger.Warn("failed to invalidate rollup list cache", zap.Error(err))
	}
}

func (s *WorkOrderService) GetWorkOrders(ctx context.Context, filter dto.WorkOrderListFilterDTO, pagination types.Pagination) ([]dto.WorkOrderResponseDTO, uint64, error) {
	return s.workOrderRepo.GetWorkOrders(ctx, filter, pagination)
}

func (s *WorkOrderService) FindWorkOrder(ctx context.Context, id string) (*entities.WorkOrder, error) {
	return s.workOrderRepo.FindWorkOrder(ctx, id)
}

func (s *WorkOrderService) CreateWorkOrder(ctx context.Context, payload dto.CreateWorkOrderDTO) (*entities.WorkOrder, error) {
	if _, err := s.projectRepo.FindProject(ctx, payload.ProjectID); err != nil {
		if err == apperrors.ErrNotFound {
			return nil, apperrors.NewValidationError("project does not exist")
		}
		return nil, err
	}

	requestedStart, err := parseDate(payload.RequestedStart)
	if err != nil {
		return nil, err
	}
	requestedEnd, err := parseDate(payload.RequestedEnd)
	if err != nil {
		return nil, err
	}
	ticketDate, err := parseDate(payload.LocateTicketDate)
	if err != nil {
		return nil, err
	}
	ticketExpires, err := parseDate(payload.LocateTicketExpires)
	if err != nil {
		return nil, err
	}

	priority := payload.Priority
	if priority == "" {
		priority = "medium"
	}

	wo := entities.WorkOrder{
		OrgID:               s.orgID,
		ProjectID:           payload.ProjectID,
		Name:                payload.Name,
		Scope:               payload.Scope,
		Priority:            priority,
		Status:              workflow.WorkOrderPending,
		SubmittedByType:     "internal",
		RequestedStart:      requestedStart,
		RequestedEnd:        requestedEnd,
		EstimatedCost:       payload.EstimatedCost,
		Location:            payload.Location,
		Lat:                 payload.Lat,
		Lng:                 payload.Lng,
		LocateTicketNumber:  payload.LocateTicketNumber,
		LocateTicketDate:    ticketDate,
		LocateTicketExpires: ticketExpires,
	}

	var newID string
	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		number, err := s.workOrderRepo.NextWONumber(ctx, tx, time.Now().Year())
		if err != nil {
			return err
		}
		wo.WONumber = number

		newID, err = s.workOrderRepo.CreateWorkOrder(ctx, tx, wo)
		if err != nil {
			return err
		}
		if err := s.workOrderRepo.ReplaceBorings(ctx, tx, newID, boringsFromDTO(newID, payload.Borings)); err != nil {
			return err
		}
		if err := s.workOrderRepo.ReplaceRateSchedule(ctx, tx, newID, rateLinesFromDTO(newID, payload.RateSchedule)); err != nil {
			return err
		}
		return s.workOrderRepo.ReplaceActivities(ctx, tx, newID, activitiesFromDTO(newID, payload.Activities))
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("work order created", zap.String("id", newID), zap.String("wo_number", wo.WONumber))
	return s.workOrderRepo.FindWorkOrder(ctx, newID)
}

func (s *WorkOrderService) UpdateWorkOrder(ctx context.Context, id string, payload dto.UpdateWorkOrderDTO) (*entities.WorkOrder, error) {
	if _, err := s.workOrderRepo.FindWorkOrder(ctx, id); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if payload.Name.Valid {
		fields["name"] = payload.Name.String
	}
	if payload.Scope.Valid {
		fields["scope"] = payload.Scope.String
	}
	if payload.Priority.Valid {
		fields["priority"] = payload.Priority.String
	}
	if payload.EstimatedCost.Valid {
		fields["estimated_cost"] = payload.EstimatedCost.Float64
	}
	if payload.Location.Valid {
		fields["location"] = payload.Location.String
	}
	if payload.Lat.Valid {
		fields["lat"] = payload.Lat.Float64
	}
	if payload.Lng.Valid {
		fields["lng"] = payload.Lng.Float64
	}
	if payload.LocateTicketNumber.Valid {
		fields["locate_ticket_number"] = payload.LocateTicketNumber.String
	}
	if payload.RequestedStart.Valid {
		t, err := parseDate(payload.RequestedStart)
		if err != nil {
			return nil, err
		}
		fields["requested_start"] = t
	}
	if payload.RequestedEnd.Valid {
		t, err := parseDate(payload.RequestedEnd)
		if err != nil {
			return nil, err
		}
		fields["requested_end"] = t
	}
	if payload.LocateTicketDate.Valid {
		t, err := parseDate(payload.LocateTicketDate)
		if err != nil {
			return nil, err
		}
		fields["locate_ticket_date"] = t
	}
	if payload.LocateTicketExpires.Valid {
		t, err := parseDate(payload.LocateTicketExpires)
		if err != nil {
			return nil, err
		}
		fields["locate_ticket_expires"] = t
	}

	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		if err := s.workOrderRepo.UpdateWorkOrder(ctx, tx, id, fields); err != nil {
			return err
		}
		if payload.Borings != nil {
			if err := s.workOrderRepo.ReplaceBorings(ctx, tx, id, boringsFromDTO(id, payload.Borings)); err != nil {
				return err
			}
		}
		if payload.RateSchedule != nil {
			if err := s.workOrderRepo.ReplaceRateSchedule(ctx, tx, id, rateLinesFromDTO(id, payload.RateSchedule)); err != nil {
				return err
			}
		}
		if payload.Activities != nil {
			if err := s.workOrderRepo.ReplaceActivities(ctx, tx, id, activitiesFromDTO(id, payload.Activities)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateRollups(ctx, id)
	return s.workOrderRepo.FindWorkOrder(ctx, id)
}

// Transition moves the work order along its lifecycle. Entering
// in_progress stamps the actual start, completing stamps the actual
// end; both stick across later rollbacks.
func (s *WorkOrderService) Transition(ctx context.Context, id string, rawStatus string) (*entities.WorkOrder, error) {
	target, err := workflow.ParseWorkOrderStatus(rawStatus)
	if err != nil {
		return nil, err
	}

	wo, err := s.workOrderRepo.FindWorkOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	next, err := workflow.TransitionWorkOrder(wo.Status, target)
	if err != nil {
		return nil, err
	}

	var actualStart, actualEnd *time.Time
	now := time.Now()
	if next == workflow.WorkOrderInProgress {
		actualStart = &now
	}
	if next == workflow.WorkOrderCompleted {
		actualEnd = &now
	}

	if err := s.workOrderRepo.UpdateStatus(ctx, id, next, actualStart, actualEnd); err != nil {
		return nil, err
	}

	s.logger.Info("work order status changed",
		zap.String("id", id),
		zap.String("from", string(wo.Status)),
		zap.String("to", string(next)))
	s.invalidateRollups(ctx, id)
	return s.workOrderRepo.FindWorkOrder(ctx, id)
}

// Assign binds a rig and crew and pins the schedule window, defaulting
// to today through today plus two weeks. The dispatch queue holds
// pending orders too, so assignment moves anything not yet on the
// schedule straight to scheduled without consulting the transition
// table. Status and assignment land in one statement.
func (s *WorkOrderService) Assign(ctx context.Context, id string, payload dto.AssignWorkOrderDTO) (*entities.WorkOrder, error) {
	wo, err := s.workOrderRepo.FindWorkOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	start, err := parseDate(payload.ScheduledStart)
	if err != nil {
		return nil, err
	}
	end, err := parseDate(payload.ScheduledEnd)
	if err != nil {
		return nil, err
	}
	if start == nil {
		defStart, defEnd := scheduling.DefaultWindow(time.Now())
		start = &defStart
		if end == nil {
			end = &defEnd
		}
	}
	if end != nil && end.Before(*start) {
		return nil, apperrors.NewValidationError("scheduled_end cannot precede scheduled_start")
	}

	var rigID, crewID *string
	if payload.RigID.Valid {
		rigID = &payload.RigID.String
	}
	if payload.CrewID.Valid {
		crewID = &payload.CrewID.String
	}

	var status *workflow.WorkOrderStatus
	if !wo.Status.AtOrPast(workflow.WorkOrderScheduled) {
		scheduled := workflow.WorkOrderScheduled
		status = &scheduled
	}

	if err := s.workOrderRepo.UpdateAssignment(ctx, id, status, rigID, crewID, start, end); err != nil {
		return nil, err
	}

	s.logger.Info("work order assigned", zap.String("id", id))
	return s.workOrderRepo.FindWorkOrder(ctx, id)
}

// UpdateSchedule moves the window without touching status or
// assignments.
func (s *WorkOrderService) UpdateSchedule(ctx context.Context, id string, payload dto.ScheduleWindowDTO) (*entities.WorkOrder, error) {
	start, err := parseDate(payload.ScheduledStart)
	if err != nil {
		return nil, err
	}
	end, err := parseDate(payload.ScheduledEnd)
	if err != nil {
		return nil, err
	}
	if start != nil && end != nil && end.Before(*start) {
		return nil, apperrors.NewValidationError("scheduled_end cannot precede scheduled_start")
	}
	if err := s.workOrderRepo.UpdateAssignment(ctx, id, nil, nil, nil, start, end); err != nil {
		return nil, err
	}
	return s.workOrderRepo.FindWorkOrder(ctx, id)
}

// QuickUpdate covers the inline board edits. It deliberately cannot
// change status.
func (s *WorkOrderService) QuickUpdate(ctx context.Context, id string, payload dto.QuickUpdateDTO) (*entities.WorkOrder, error) {
	fields := map[string]interface{}{}
	if payload.Priority.Valid {
		fields["priority"] = payload.Priority.String
	}
	if payload.AssignedRigID.Valid {
		fields["assigned_rig_id"] = nullableID(payload.AssignedRigID)
	}
	if payload.AssignedCrewID.Valid {
		fields["assigned_crew_id"] = nullableID(payload.AssignedCrewID)
	}
	if payload.ScheduledStart.Valid {
		t, err := parseDate(payload.ScheduledStart)
		if err != nil {
			return nil, err
		}
		fields["scheduled_start"] = t
	}
	if payload.ScheduledEnd.Valid {
		t, err := parseDate(payload.ScheduledEnd)
		if err != nil {
			return nil, err
		}
		fields["scheduled_end"] = t
	}

	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		return s.workOrderRepo.UpdateWorkOrder(ctx, tx, id, fields)
	})
	if err != nil {
		return nil, err
	}
	return s.workOrderRepo.FindWorkOrder(ctx, id)
}

func boringsFromDTO(workOrderID string, rows []dto.BoringDTO) []entities.WorkOrderBoring {
	out := make([]entities.WorkOrderBoring, 0, len(rows))
	for _, r := range rows {
		out = append(out, entities.WorkOrderBoring{
			WorkOrderID:  workOrderID,
			Label:        r.Label,
			BoringType:   r.BoringType,
			PlannedDepth: r.PlannedDepth,
			SortOrder:    r.SortOrder,
		})
	}
	return out
}

func rateLinesFromDTO(workOrderID string, rows []dto.RateLineDTO) []entities.RateScheduleLine {
	out := make([]entities.RateScheduleLine, 0, len(rows))
	for _, r := range rows {
		out = append(out, entities.RateScheduleLine{
			WorkOrderID:  workOrderID,
			BillingUnit:  r.BillingUnit,
			Rate:         r.Rate,
			UnitLabel:    r.UnitLabel,
			EstimatedQty: r.EstimatedQty,
			SortOrder:    r.SortOrder,
		})
	}
	return out
}

func activitiesFromDTO(workOrderID string, rows []dto.ActivityDTO) []entities.WorkOrderActivity {
	out := make([]entities.WorkOrderActivity, 0, len(rows))
	for _, r := range rows {
		out = append(out, entities.WorkOrderActivity{
			WorkOrderID: workOrderID,
			Name:        r.Name,
			Description: r.Description,
			SortOrder:   r.SortOrder,
		})
	}
	return out
}
