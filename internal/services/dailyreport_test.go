package services

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"drilltrack/internal/dto"
	"drilltrack/internal/workflow"
	apperrors "drilltrack/pkg/errors"
)

type fakeStorage struct {
	saved   []string
	deleted []string
}

func (f *fakeStorage) Save(dir, filename string, src io.Reader) (string, error) {
	path := dir + "/" + filename
	f.saved = append(f.saved, path)
	return path, nil
}

func (f *fakeStorage) Delete(path string) error {
	f.deleted = append(f.deleted, path)
	return nil
}

func (f *fakeStorage) PublicURL(path string) string {
	return "/uploads/" + path
}

func newReportService(reports *fakeDailyReportRepo, orders *fakeWorkOrderRepo, cache *fakeCacheRepo, storage *fakeStorage) *DailyReportService {
	if storage == nil {
		storage = &fakeStorage{}
	}
	return NewDailyReportService(reports, orders, cache, &fakeTxManager{}, storage, testOrg, zap.NewNop())
}

func TestDailyReportService_CreateDailyReport(t *testing.T) {
	orders := newFakeWorkOrderRepo(pendingOrder("wo-1"))
	reports := newFakeDailyReportRepo()
	svc := newReportService(reports, orders, newFakeCacheRepo(), nil)

	dr, err := svc.CreateDailyReport(context.Background(), "user-7", dto.CreateDailyReportDTO{
		WorkOrderID: "wo-1",
		ReportDate:  "2026-03-10",
		StartTime:   "07:00",
		Production: []dto.ProductionEntryDTO{
			{BoringType: "SPT", StartDepth: 10, EndDepth: 52.5},
		},
		Billing: []dto.BillingEntryDTO{
			{BillingUnit: "Drilling", Quantity: 42.5, Rate: 25},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "DR-001", dr.ReportNumber)
	assert.Equal(t, workflow.ReportDraft, dr.Status)
	require.NotNil(t, dr.DrillerID)
	assert.Equal(t, "user-7", *dr.DrillerID, "driller defaults to the caller")
	require.Len(t, dr.Production, 1)
	assert.Equal(t, 42.5, dr.Production[0].Footage, "footage derived from depths")
	require.Len(t, dr.Billing, 1)
	assert.Equal(t, 1062.5, dr.Billing[0].Total, "line total derived from quantity times rate")

	t.Run("submit on create", func(t *testing.T) {
		dr, err := svc.CreateDailyReport(context.Background(), "user-7", dto.CreateDailyReportDTO{
			WorkOrderID: "wo-1",
			ReportDate:  "2026-03-11",
			Submit:      true,
		})
		require.NoError(t, err)
		assert.Equal(t, "DR-002", dr.ReportNumber)
		assert.Equal(t, workflow.ReportSubmitted, dr.Status)
	})

	t.Run("unknown work order", func(t *testing.T) {
		_, err := svc.CreateDailyReport(context.Background(), "user-7", dto.CreateDailyReportDTO{
			WorkOrderID: "missing",
			ReportDate:  "2026-03-10",
		})
		var verr *apperrors.ValidationError
		require.ErrorAs(t, err, &verr)
	})
}

func TestDailyReportService_Transition_ReviewFlow(t *testing.T) {
	orders := newFakeWorkOrderRepo(pendingOrder("wo-1"))
	reports := newFakeDailyReportRepo(billedReport("dr-1", "wo-1", workflow.ReportDraft, 0, 0))
	cache := newFakeCacheRepo()
	cache.store["rollup:wo-1:all"] = "{}"
	svc := newReportService(reports, orders, cache, nil)

	dr, err := svc.Transition(context.Background(), "dr-1", "submitted", "")
	require.NoError(t, err)
	assert.Equal(t, workflow.ReportSubmitted, dr.Status)
	assert.Nil(t, dr.ReviewedAt)
	assert.Empty(t, cache.store, "every review step invalidates the rollup cache")

	dr, err = svc.Transition(context.Background(), "dr-1", "approved", "")
	require.NoError(t, err)
	assert.Equal(t, workflow.ReportApproved, dr.Status)
	require.NotNil(t, dr.ReviewedAt)
}

func TestDailyReportService_Transition_RejectRequiresNotes(t *testing.T) {
	orders := newFakeWorkOrderRepo(pendingOrder("wo-1"))
	reports := newFakeDailyReportRepo(billedReport("dr-1", "wo-1", workflow.ReportSubmitted, 0, 0))
	svc := newReportService(reports, orders, newFakeCacheRepo(), nil)

	_, err := svc.Transition(context.Background(), "dr-1", "rejected", "")
	assert.ErrorIs(t, err, apperrors.ErrMissingReviewNotes)

	dr, err := svc.Transition(context.Background(), "dr-1", "rejected", "Footage missing for B-2")
	require.NoError(t, err)
	assert.Equal(t, workflow.ReportRejected, dr.Status)
	assert.Equal(t, "Footage missing for B-2", dr.ReviewNotes)
	require.NotNil(t, dr.ReviewedAt)
}

func TestDailyReportService_Transition_ReturnForRevisionRequiresNotes(t *testing.T) {
	orders := newFakeWorkOrderRepo(pendingOrder("wo-1"))
	reports := newFakeDailyReportRepo(billedReport("dr-1", "wo-1", workflow.ReportApproved, 0, 0))
	svc := newReportService(reports, orders, newFakeCacheRepo(), nil)

	_, err := svc.Transition(context.Background(), "dr-1", "submitted", "")
	assert.ErrorIs(t, err, apperrors.ErrMissingReviewNotes)

	dr, err := svc.Transition(context.Background(), "dr-1", "submitted", "Re-check the mobilization charge")
	require.NoError(t, err)
	assert.Equal(t, workflow.ReportSubmitted, dr.Status)
}

func TestDailyReportService_UpdateRejectsApprovedReports(t *testing.T) {
	orders := newFakeWorkOrderRepo(pendingOrder("wo-1"))
	reports := newFakeDailyReportRepo(billedReport("dr-1", "wo-1", workflow.ReportApproved, 0, 0))
	svc := newReportService(reports, orders, newFakeCacheRepo(), nil)

	_, err := svc.UpdateDailyReport(context.Background(), "dr-1", dto.UpdateDailyReportDTO{})
	var verr *apperrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Message, "approved reports cannot be edited")
}

func TestDailyReportService_AttachPhoto(t *testing.T) {
	orders := newFakeWorkOrderRepo(pendingOrder("wo-1"))
	reports := newFakeDailyReportRepo(billedReport("dr-1", "wo-1", workflow.ReportDraft, 0, 0))
	storage := &fakeStorage{}
	svc := newReportService(reports, orders, newFakeCacheRepo(), storage)

	photo, err := svc.AttachPhoto(context.Background(), "dr-1", "b1-spoils.jpg", "Cuttings at 30 ft",
		2048, strings.NewReader("jpegdata"))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/reports/dr-1/b1-spoils.jpg", photo.FileURL)
	assert.Equal(t, "Cuttings at 30 ft", photo.Caption)
	require.Len(t, storage.saved, 1)

	found, err := reports.FindDailyReport(context.Background(), "dr-1")
	require.NoError(t, err)
	require.Len(t, found.Photos, 1)
}
