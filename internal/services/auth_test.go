package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"drilltrack/internal/dto"
	"drilltrack/internal/entities"
	apperrors "drilltrack/pkg/errors"
	"drilltrack/pkg/utils"
)

func seedStaffMember(t *testing.T, password string, active bool) *entities.Staff {
	t.Helper()
	hash, err := utils.HashPassword(password)
	require.NoError(t, err)
	return &entities.Staff{
		ID:           "staff-1",
		OrgID:        testOrg,
		FirstName:    "Dana",
		LastName:     "Whitfield",
		Email:        "dana.whitfield@drilltrack.local",
		Role:         "manager",
		PasswordHash: hash,
		Active:       active,
	}
}

func TestAuthService_Login(t *testing.T) {
	repo := newFakeStaffRepo(seedStaffMember(t, "open-sesame", true))
	svc := NewAuthService(repo, &fakeJWTService{}, zap.NewNop())

	res, err := svc.Login(context.Background(), dto.LoginDTO{
		Email:    "dana.whitfield@drilltrack.local",
		Password: "open-sesame",
	})
	require.NoError(t, err)
	assert.Equal(t, "staff-1", res.UserID)
	assert.Equal(t, "manager", res.Role)
	assert.NotEmpty(t, res.AccessToken)
	assert.NotEmpty(t, res.RefreshToken)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := newFakeStaffRepo(seedStaffMember(t, "open-sesame", true))
	svc := NewAuthService(repo, &fakeJWTService{}, zap.NewNop())

	_, err := svc.Login(context.Background(), dto.LoginDTO{
		Email:    "dana.whitfield@drilltrack.local",
		Password: "not-it",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	svc := NewAuthService(newFakeStaffRepo(), &fakeJWTService{}, zap.NewNop())

	// Unknown accounts get the same error as a bad password.
	_, err := svc.Login(context.Background(), dto.LoginDTO{
		Email:    "nobody@drilltrack.local",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestAuthService_Login_InactiveAccount(t *testing.T) {
	repo := newFakeStaffRepo(seedStaffMember(t, "open-sesame", false))
	svc := NewAuthService(repo, &fakeJWTService{}, zap.NewNop())

	_, err := svc.Login(context.Background(), dto.LoginDTO{
		Email:    "dana.whitfield@drilltrack.local",
		Password: "open-sesame",
	})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}
