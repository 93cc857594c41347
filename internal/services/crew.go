package services

import (
	"context"

	"go.uber.org/zap"

	"drilltrack/internal/dto"
	"drilltrack/internal/entities"
	"drilltrack/internal/repositories"
)

type CrewService struct {
	crewRepo repositories.CrewRepositoryInterface
	orgID    string
	logger   *zap.Logger
}

func NewCrewService(crewRepo repositories.CrewRepositoryInterface, orgID string, logger *zap.Logger) *CrewService {
	return &CrewService{crewRepo: crewRepo, orgID: orgID, logger: logger}
}

func (s *CrewService) GetCrews(ctx context.Context) ([]entities.Crew, error) {
	return s.crewRepo.GetCrews(ctx)
}

func (s *CrewService) FindCrew(ctx context.Context, id string) (*entities.Crew, error) {
	return s.crewRepo.FindCrew(ctx, id)
}

func (s *CrewService) CreateCrew(ctx context.Context, payload dto.CreateCrewDTO) (*entities.Crew, error) {
	crew := entities.Crew{OrgID: s.orgID, Name: payload.Name}
	if payload.LeadID.Valid {
		crew.LeadID = &payload.LeadID.String
	}
	id, err := s.crewRepo.CreateCrew(ctx, crew)
	if err != nil {
		return nil, err
	}
	return s.crewRepo.FindCrew(ctx, id)
}

func (s *CrewService) UpdateCrew(ctx context.Context, id string, payload dto.UpdateCrewDTO) (*entities.Crew, error) {
	fields := map[string]interface{}{}
	if payload.Name.Valid {
		fields["name"] = payload.Name.String
	}
	if payload.LeadID.Valid {
		fields["lead_id"] = nullableID(payload.LeadID)
	}
	if err := s.crewRepo.UpdateCrew(ctx, id, fields); err != nil {
		return nil, err
	}
	return s.crewRepo.FindCrew(ctx, id)
}

func (s *CrewService) DeleteCrew(ctx context.Context, id string) error {
	return s.crewRepo.DeleteCrew(ctx, id)
}
