package services

import (
	"context"

	"go.uber.org/zap"

	"drilltrack/internal/dto"
	"drilltrack/internal/entities"
	"drilltrack/internal/repositories"
)

type ProjectService struct {
	projectRepo repositories.ProjectRepositoryInterface
	orgID       string
	logger      *zap.Logger
}

func NewProjectService(projectRepo repositories.ProjectRepositoryInterface, orgID string, logger *zap.Logger) *ProjectService {
	return &ProjectService{projectRepo: projectRepo, orgID: orgID, logger: logger}
}

func (s *ProjectService) GetProjects(ctx context.Context) ([]entities.Project, error) {
	return s.projectRepo.GetProjects(ctx)
}

func (s *ProjectService) FindProject(ctx context.Context, id string) (*entities.Project, error) {
	return s.projectRepo.FindProject(ctx, id)
}

func (s *ProjectService) CreateProject(ctx context.Context, payload dto.CreateProjectDTO) (*entities.Project, error) {
	id, err := s.projectRepo.CreateProject(ctx, entities.Project{
		OrgID:         s.orgID,
		Name:          payload.Name,
		ProjectNumber: payload.ProjectNumber,
		ClientName:    payload.ClientName,
		Location:      payload.Location,
		Lat:           payload.Lat,
		Lng:           payload.Lng,
	})
	if err != nil {
		return nil, err
	}
	return s.projectRepo.FindProject(ctx, id)
}

func (s *ProjectService) UpdateProject(ctx context.Context, id string, payload dto.UpdateProjectDTO) (*entities.Project, error) {
	fields := map[string]interface{}{}
	if payload.Name.Valid {
		fields["name"] = payload.Name.String
	}
	if payload.ProjectNumber.Valid {
		fields["project_number"] = payload.ProjectNumber.String
	}
	if payload.ClientName.Valid {
		fields["client_name"] = payload.ClientName.String
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
	if err := s.projectRepo.UpdateProject(ctx, id, fields); err != nil {
		return nil, err
	}
	return s.projectRepo.FindProject(ctx, id)
}

func (s *ProjectService) DeleteProject(ctx context.Context, id string) error {
	return s.projectRepo.DeleteProject(ctx, id)
}
