package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"drilltrack/internal/entities"
	"drilltrack/internal/repositories"
	"drilltrack/internal/scheduling"
)

type ScheduleService struct {
	workOrderRepo repositories.WorkOrderRepositoryInterface
	crewRepo      repositories.CrewRepositoryInterface
	logger        *zap.Logger
}

func NewScheduleService(
	workOrderRepo repositories.WorkOrderRepositoryInterface,
	crewRepo repositories.CrewRepositoryInterface,
	logger *zap.Logger,
) *ScheduleService {
	return &ScheduleService{
		workOrderRepo: workOrderRepo,
		crewRepo:      crewRepo,
		logger:        logger,
	}
}

// Queue lists the orders waiting for assignment, oldest first.
func (s *ScheduleService) Queue(ctx context.Context) ([]entities.WorkOrder, error) {
	return s.workOrderRepo.ListByStatuses(ctx, scheduling.QueueStatuses)
}

func (s *ScheduleService) Board(ctx context.Context) (*scheduling.CrewBoard, error) {
	crews, err := s.crewRepo.GetCrews(ctx)
	if err != nil {
		return nil, err
	}
	orders, err := s.workOrderRepo.ListAssigned(ctx)
	if err != nil {
		return nil, err
	}
	board := scheduling.ComputeCrewBoard(crews, orders)
	return &board, nil
}

func (s *ScheduleService) Timeline(ctx context.Context, dayWidthPx int) (*scheduling.Timeline, error) {
	orders, err := s.workOrderRepo.ListScheduled(ctx)
	if err != nil {
		return nil, err
	}
	tl := scheduling.ComputeTimeline(orders, dayWidthPx, time.Now())
	return &tl, nil
}
