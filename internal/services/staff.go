package services

import (
	"context"

	"go.uber.org/zap"

	"drilltrack/internal/dto"
	"drilltrack/internal/entities"
	"drilltrack/internal/repositories"
	"drilltrack/pkg/utils"
)

type StaffService struct {
	staffRepo repositories.StaffRepositoryInterface
	orgID     string
	logger    *zap.Logger
}

func NewStaffService(staffRepo repositories.StaffRepositoryInterface, orgID string, logger *zap.Logger) *StaffService {
	return &StaffService{staffRepo: staffRepo, orgID: orgID, logger: logger}
}

func (s *StaffService) GetStaff(ctx context.Context, role string) ([]entities.Staff, error) {
	return s.staffRepo.GetStaff(ctx, role)
}

func (s *StaffService) FindStaff(ctx context.Context, id string) (*entities.Staff, error) {
	return s.staffRepo.FindStaff(ctx, id)
}

func (s *StaffService) CreateStaff(ctx context.Context, payload dto.CreateStaffDTO) (*entities.Staff, error) {
	hash, err := utils.HashPassword(payload.Password)
	if err != nil {
		return nil, err
	}
	id, err := s.staffRepo.CreateStaff(ctx, entities.Staff{
		OrgID:        s.orgID,
		FirstName:    payload.FirstName,
		LastName:     payload.LastName,
		Email:        payload.Email,
		Role:         payload.Role,
		PasswordHash: hash,
		Active:       true,
	})
	if err != nil {
		return nil, err
	}
	return s.staffRepo.FindStaff(ctx, id)
}

func (s *StaffService) UpdateStaff(ctx context.Context, id string, payload dto.UpdateStaffDTO) (*entities.Staff, error) {
	fields := map[string]interface{}{}
	if payload.FirstName.Valid {
		fields["first_name"] = payload.FirstName.String
	}
	if payload.LastName.Valid {
		fields["last_name"] = payload.LastName.String
	}
	if payload.Email.Valid {
		fields["email"] = payload.Email.String
	}
	if payload.Role.Valid {
		fields["role"] = payload.Role.String
	}
	if payload.Active.Valid {
		fields["active"] = payload.Active.Bool
	}
	if err := s.staffRepo.UpdateStaff(ctx, id, fields); err != nil {
		return nil, err
	}
	return s.staffRepo.FindStaff(ctx, id)
}

func (s *StaffService) DeleteStaff(ctx context.Context, id string) error {
	return s.staffRepo.DeleteStaff(ctx, id)
}
