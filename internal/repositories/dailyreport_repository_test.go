package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"drilltrack/internal/dto"
	"drilltrack/internal/entities"
	"drilltrack/internal/workflow"
	apperrors "drilltrack/pkg/errors"
	"drilltrack/pkg/types"
)

func createTestReport(t *testing.T, repo DailyReportRepositoryInterface, workOrderID string, date time.Time, status workflow.ReportStatus) string {
	t.Helper()
	txManager := NewTxManager(testPool)
	var newID string
	err := txManager.RunInTransaction(context.Background(), func(tx pgx.Tx) error {
		number, err := repo.NextReportNumber(context.Background(), tx, workOrderID)
		if err != nil {
			return err
		}
		newID, err = repo.CreateDailyReport(context.Background(), tx, entities.DailyReport{
			OrgID:        testOrgID,
			WorkOrderID:  workOrderID,
			ReportNumber: number,
			ReportDate:   date,
			Status:       status,
		})
		return err
	})
	require.NoError(t, err)
	return newID
}

func TestDailyReportRepository_Integration_CreateAndFind(t *testing.T) {
	requireDB(t)
	cleanupTables(t, testPool)
	projectID := seedProject(t, testPool)
	woRepo := NewWorkOrderRepository(testPool, zap.NewNop())
	workOrderID := createTestWorkOrder(t, woRepo, projectID, "Order with reports")
	repo := NewDailyReportRepository(testPool, zap.NewNop())
	txManager := NewTxManager(testPool)

	var newID string
	err := txManager.RunInTransaction(context.Background(), func(tx pgx.Tx) error {
		number, err := repo.NextReportNumber(context.Background(), tx, workOrderID)
		if err != nil {
			return err
		}
		assert.Equal(t, "DR-001", number)

		newID, err = repo.CreateDailyReport(context.Background(), tx, entities.DailyReport{
			OrgID:             testOrgID,
			WorkOrderID:       workOrderID,
			ReportNumber:      number,
			ReportDate:        time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
			StartTime:         "07:00",
			EndTime:           "17:30",
			WeatherConditions: "Clear, 40F",
			Status:            workflow.ReportDraft,
		})
		if err != nil {
			return err
		}
		if err := repo.ReplaceProduction(context.Background(), tx, newID, []entities.ProductionEntry{
			{BoringType: "SPT", StartDepth: 0, EndDepth: 42.5, Footage: 42.5},
		}); err != nil {
			return err
		}
		return repo.ReplaceBilling(context.Background(), tx, newID, []entities.BillingEntry{
			{BillingUnit: "Drilling", Quantity: 42.5, Rate: 25, Total: 1062.50},
			{BillingUnit: "Mobilization", Quantity: 1, Rate: 500, Total: 500},
		})
	})
	require.NoError(t, err)

	found, err := repo.FindDailyReport(context.Background(), newID)
	require.NoError(t, err)
	assert.Equal(t, "DR-001", found.ReportNumber)
	assert.Equal(t, workflow.ReportDraft, found.Status)
	assert.Equal(t, "07:00", found.StartTime)
	require.Len(t, found.Production, 1)
	assert.Equal(t, 42.5, found.Production[0].Footage)
	require.Len(t, found.Billing, 2)
	assert.Equal(t, 1062.50, found.Billing[0].Total)
	assert.Equal(t, 1, found.Billing[1].SortOrder)

	t.Run("not found", func(t *testing.T) {
		missing, err := repo.FindDailyReport(context.Background(), "00000000-0000-0000-0000-00000000dead")
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		assert.Nil(t, missing)
	})
}

func TestDailyReportRepository_Integration_NumberingPerWorkOrder(t *testing.T) {
	requireDB(t)
	cleanupTables(t, testPool)
	projectID := seedProject(t, testPool)
	woRepo := NewWorkOrderRepository(testPool, zap.NewNop())
	firstWO := createTestWorkOrder(t, woRepo, projectID, "First order")
	secondWO := createTestWorkOrder(t, woRepo, projectID, "Second order")
	repo := NewDailyReportRepository(testPool, zap.NewNop())

	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	createTestReport(t, repo, firstWO, day, workflow.ReportDraft)
	createTestReport(t, repo, firstWO, day.AddDate(0, 0, 1), workflow.ReportDraft)

	txManager := NewTxManager(testPool)
	err := txManager.RunInTransaction(context.Background(), func(tx pgx.Tx) error {
		number, err := repo.NextReportNumber(context.Background(), tx, firstWO)
		require.NoError(t, err)
		assert.Equal(t, "DR-003", number)

		// The sequence is per work order, not global.
		number, err = repo.NextReportNumber(context.Background(), tx, secondWO)
		require.NoError(t, err)
		assert.Equal(t, "DR-001", number)
		return nil
	})
	require.NoError(t, err)
}

func TestDailyReportRepository_Integration_UpdateStatus(t *testing.T) {
	requireDB(t)
	cleanupTables(t, testPool)
	projectID := seedProject(t, testPool)
	woRepo := NewWorkOrderRepository(testPool, zap.NewNop())
	workOrderID := createTestWorkOrder(t, woRepo, projectID, "Review order")
	repo := NewDailyReportRepository(testPool, zap.NewNop())

	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	reportID := createTestReport(t, repo, workOrderID, day, workflow.ReportSubmitted)

	reviewedAt := time.Date(2026, 3, 11, 9, 30, 0, 0, time.UTC)
	err := repo.UpdateStatus(context.Background(), reportID, workflow.ReportRejected, "Footage missing for B-2", &reviewedAt)
	require.NoError(t, err)

	found, err := repo.FindDailyReport(context.Background(), reportID)
	require.NoError(t, err)
	assert.Equal(t, workflow.ReportRejected, found.Status)
	assert.Equal(t, "Footage missing for B-2", found.ReviewNotes)
	require.NotNil(t, found.ReviewedAt)
	assert.True(t, found.ReviewedAt.Equal(reviewedAt))

	err = repo.UpdateStatus(context.Background(), "00000000-0000-0000-0000-00000000dead", workflow.ReportApproved, "", nil)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestDailyReportRepository_Integration_GetDailyReports(t *testing.T) {
	requireDB(t)
	cleanupTables(t, testPool)
	projectID := seedProject(t, testPool)
	woRepo := NewWorkOrderRepository(testPool, zap.NewNop())
	workOrderID := createTestWorkOrder(t, woRepo, projectID, "Filtered order")
	otherWO := createTestWorkOrder(t, woRepo, projectID, "Other order")
	repo := NewDailyReportRepository(testPool, zap.NewNop())

	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	createTestReport(t, repo, workOrderID, day, workflow.ReportApproved)
	createTestReport(t, repo, workOrderID, day.AddDate(0, 0, 1), workflow.ReportSubmitted)
	createTestReport(t, repo, otherWO, day, workflow.ReportDraft)

	reports, total, err := repo.GetDailyReports(context.Background(),
		dto.DailyReportListFilterDTO{WorkOrderID: workOrderID}, types.Pagination{Limit: 10, Offset: 0})
	require.NoError(t, err)
	assert.Equal(t, uint64(2), total)
	require.Len(t, reports, 2)
	// Newest report date first.
	assert.Equal(t, "DR-002", reports[0].ReportNumber)
	assert.NotEmpty(t, reports[0].WONumber)
	assert.Equal(t, "Filtered order", reports[0].WorkOrderName)

	t.Run("status filter", func(t *testing.T) {
		_, total, err := repo.GetDailyReports(context.Background(),
			dto.DailyReportListFilterDTO{Status: "approved"}, types.Pagination{Limit: 10, Offset: 0})
		require.NoError(t, err)
		assert.Equal(t, uint64(1), total)
	})

	t.Run("date range", func(t *testing.T) {
		_, total, err := repo.GetDailyReports(context.Background(),
			dto.DailyReportListFilterDTO{DateFrom: "2026-03-11", DateTo: "2026-03-11"},
			types.Pagination{Limit: 10, Offset: 0})
		require.NoError(t, err)
		assert.Equal(t, uint64(1), total)
	})
}

func TestDailyReportRepository_Integration_Photos(t *testing.T) {
	requireDB(t)
	cleanupTables(t, testPool)
	projectID := seedProject(t, testPool)
	woRepo := NewWorkOrderRepository(testPool, zap.NewNop())
	workOrderID := createTestWorkOrder(t, woRepo, projectID, "Photo order")
	repo := NewDailyReportRepository(testPool, zap.NewNop())

	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	reportID := createTestReport(t, repo, workOrderID, day, workflow.ReportDraft)

	photoID, err := repo.AttachPhoto(context.Background(), entities.ReportPhoto{
		DailyReportID: reportID,
		FileName:      "b1-spoils.jpg",
		FileURL:       "/uploads/reports/b1-spoils.jpg",
		FileSize:      204800,
		Caption:       "Cuttings at 30 ft",
	})
	require.NoError(t, err)

	found, err := repo.FindDailyReport(context.Background(), reportID)
	require.NoError(t, err)
	require.Len(t, found.Photos, 1)
	assert.Equal(t, "Cuttings at 30 ft", found.Photos[0].Caption)

	deleted, err := repo.DeletePhoto(context.Background(), reportID, photoID)
	require.NoError(t, err)
	assert.Equal(t, "b1-spoils.jpg", deleted.FileName)

	_, err = repo.DeletePhoto(context.Background(), reportID, photoID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
