package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"drilltrack/internal/billing"
	"drilltrack/internal/entities"
	"drilltrack/internal/workflow"
)

func billedReport(id, workOrderID string, status workflow.ReportStatus, total, footage float64) *entities.DailyReport {
	return &entities.DailyReport{
		ID:          id,
		WorkOrderID: workOrderID,
		Status:      status,
		Billing:     []entities.BillingEntry{{BillingUnit: "Drilling", Total: total}},
		Production:  []entities.ProductionEntry{{Footage: footage}},
	}
}

func TestBillingService_Rollup_ReadsThroughCache(t *testing.T) {
	order := pendingOrder("wo-1")
	order.Status = workflow.WorkOrderInProgress
	order.EstimatedCost = 10000
	repo := newFakeWorkOrderRepo(order)
	reports := newFakeDailyReportRepo(
		billedReport("dr-1", "wo-1", workflow.ReportApproved, 3000, 120),
		billedReport("dr-2", "wo-1", workflow.ReportSubmitted, 1500, 60),
	)
	cache := newFakeCacheRepo()
	svc := NewBillingService(repo, reports, cache, time.Minute, zap.NewNop())

	r, err := svc.Rollup(context.Background(), "wo-1", billing.IncludeAll)
	require.NoError(t, err)
	assert.Equal(t, float64(4500), r.BilledToDate)
	assert.Equal(t, float64(5500), r.Variance)
	assert.Equal(t, float64(180), r.TotalFootage)
	assert.Equal(t, 2, r.ReportCount)
	assert.Contains(t, cache.store, "rollup:wo-1:all")

	// A second read must come from the cache, not the repositories.
	reports.reports["dr-1"].Billing[0].Total = 99999
	r, err = svc.Rollup(context.Background(), "wo-1", billing.IncludeAll)
	require.NoError(t, err)
	assert.Equal(t, float64(4500), r.BilledToDate)
}

func TestBillingService_Rollup_PolicyKeysAreSeparate(t *testing.T) {
	order := pendingOrder("wo-1")
	order.EstimatedCost = 10000
	repo := newFakeWorkOrderRepo(order)
	reports := newFakeDailyReportRepo(
		billedReport("dr-1", "wo-1", workflow.ReportApproved, 3000, 120),
		billedReport("dr-2", "wo-1", workflow.ReportSubmitted, 1500, 60),
	)
	cache := newFakeCacheRepo()
	svc := NewBillingService(repo, reports, cache, time.Minute, zap.NewNop())

	all, err := svc.Rollup(context.Background(), "wo-1", billing.IncludeAll)
	require.NoError(t, err)
	approved, err := svc.Rollup(context.Background(), "wo-1", billing.IncludeApproved)
	require.NoError(t, err)

	assert.Equal(t, float64(4500), all.BilledToDate)
	assert.Equal(t, float64(3000), approved.BilledToDate)
	assert.Equal(t, 2, approved.ReportCount, "counts always cover every report")
	assert.Contains(t, cache.store, "rollup:wo-1:all")
	assert.Contains(t, cache.store, "rollup:wo-1:approved")
}

func TestBillingService_Rollups_GroupsByWorkOrder(t *testing.T) {
	first := pendingOrder("wo-1")
	first.EstimatedCost = 10000
	second := pendingOrder("wo-2")
	second.WONumber = "WO-2026-002"
	second.EstimatedCost = 5000
	repo := newFakeWorkOrderRepo(first, second)
	reports := newFakeDailyReportRepo(
		billedReport("dr-1", "wo-1", workflow.ReportApproved, 3000, 120),
		billedReport("dr-2", "wo-2", workflow.ReportApproved, 2000, 80),
	)
	svc := NewBillingService(repo, reports, newFakeCacheRepo(), time.Minute, zap.NewNop())

	rollups, err := svc.Rollups(context.Background(), billing.IncludeAll)
	require.NoError(t, err)
	require.Len(t, rollups, 2)

	byID := map[string]billing.Rollup{}
	for _, r := range rollups {
		byID[r.WorkOrderID] = r
	}
	assert.Equal(t, float64(3000), byID["wo-1"].BilledToDate)
	assert.Equal(t, float64(2000), byID["wo-2"].BilledToDate)
	assert.Equal(t, float64(3000), byID["wo-2"].Variance)
}

func TestBillingService_ExportRollupsXLSX(t *testing.T) {
	order := pendingOrder("wo-1")
	order.EstimatedCost = 10000
	repo := newFakeWorkOrderRepo(order)
	reports := newFakeDailyReportRepo(
		billedReport("dr-1", "wo-1", workflow.ReportApproved, 3000, 120),
	)
	svc := NewBillingService(repo, reports, newFakeCacheRepo(), time.Minute, zap.NewNop())

	buf, err := svc.ExportRollupsXLSX(context.Background(), billing.IncludeAll)
	require.NoError(t, err)
	assert.Greater(t, buf.Len(), 0)
}
