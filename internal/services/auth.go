package services

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"drilltrack/internal/dto"
	"drilltrack/internal/repositories"
	apperrors "drilltrack/pkg/errors"
	"drilltrack/pkg/service"
	"drilltrack/pkg/utils"
)

type AuthService struct {
	staffRepo  repositories.StaffRepositoryInterface
	jwtService service.JWTService
	logger     *zap.Logger
}

func NewAuthService(
	staffRepo repositories.StaffRepositoryInterface,
	jwtService service.JWTService,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		staffRepo:  staffRepo,
		jwtService: jwtService,
		logger:     logger,
	}
}

func (s *AuthService) Login(ctx context.Context, payload dto.LoginDTO) (*dto.LoginResponseDTO, error) {
	member, err := s.staffRepo.FindByEmail(ctx, payload.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}
	if !member.Active {
		return nil, apperrors.ErrForbidden
	}
	if err := utils.CheckPasswordHash(payload.Password, member.PasswordHash); err != nil {
		s.logger.Warn("failed login attempt", zap.String("email", payload.Email))
		return nil, apperrors.ErrInvalidCredentials
	}

	accessToken, err := s.jwtService.GenerateAccessToken(member.ID, member.Role)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.jwtService.GenerateRefreshToken(member.ID)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponseDTO{
		TokenPairDTO: dto.TokenPairDTO{
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
		},
		UserID:    member.ID,
		FirstName: member.FirstName,
		LastName:  member.LastName,
		Role:      member.Role,
	}, nil
}
