package services

import (
	"context"

	"go.uber.org/zap"

	"drilltrack/internal/dto"
	"drilltrack/internal/entities"
	"drilltrack/internal/repositories"
)

type RigService struct {
	rigRepo repositories.RigRepositoryInterface
	orgID   string
	logger  *zap.Logger
}

func NewRigService(rigRepo repositories.RigRepositoryInterface, orgID string, logger *zap.Logger) *RigService {
	return &RigService{rigRepo: rigRepo, orgID: orgID, logger: logger}
}

func (s *RigService) GetRigs(ctx context.Context, activeOnly bool) ([]entities.Rig, error) {
	return s.rigRepo.GetRigs(ctx, activeOnly)
}

func (s *RigService) FindRig(ctx context.Context, id string) (*entities.Rig, error) {
	return s.rigRepo.FindRig(ctx, id)
}

func (s *RigService) CreateRig(ctx context.Context, payload dto.CreateRigDTO) (*entities.Rig, error) {
	status := payload.Status
	if status == "" {
		status = entities.RigAvailable
	}
	id, err := s.rigRepo.CreateRig(ctx, entities.Rig{
		OrgID:   s.orgID,
		Name:    payload.Name,
		RigType: payload.RigType,
		Status:  status,
		Active:  true,
	})
	if err != nil {
		return nil, err
	}
	return s.rigRepo.FindRig(ctx, id)
}

func (s *RigService) UpdateRig(ctx context.Context, id string, payload dto.UpdateRigDTO) (*entities.Rig, error) {
	fields := map[string]interface{}{}
	if payload.Name.Valid {
		fields["name"] = payload.Name.String
	}
	if payload.RigType.Valid {
		fields["rig_type"] = payload.RigType.String
	}
	if payload.Status.Valid {
		fields["status"] = payload.Status.String
	}
	if payload.Active.Valid {
		fields["active"] = payload.Active.Bool
	}
	if err := s.rigRepo.UpdateRig(ctx, id, fields); err != nil {
		return nil, err
	}
	return s.rigRepo.FindRig(ctx, id)
}

func (s *RigService) DeleteRig(ctx context.Context, id string) error {
	return s.rigRepo.DeleteRig(ctx, id)
}
