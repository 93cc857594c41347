package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"drilltrack/internal/entities"
	"drilltrack/internal/workflow"
)

func order(id string, estimate float64) entities.WorkOrder {
	return entities.WorkOrder{
		ID:            id,
		WONumber:      "WO-" + id,
		EstimatedCost: estimate,
		Status:        workflow.WorkOrderInProgress,
	}
}

func report(status workflow.ReportStatus, billed, footage float64) entities.DailyReport {
	return entities.DailyReport{
		Status:     status,
		Billing:    []entities.BillingEntry{{Total: billed}},
		Production: []entities.ProductionEntry{{Footage: footage}},
	}
}

func TestCompute_BilledVarianceAndPercent(t *testing.T) {
	wo := order("1", 10000)
	reports := []entities.DailyReport{
		report(workflow.ReportApproved, 3000, 120),
		report(workflow.ReportSubmitted, 1500, 60),
	}

	r := Compute(wo, reports, IncludeAll)
	assert.Equal(t, 4500.0, r.BilledToDate)
	assert.Equal(t, 5500.0, r.Variance)
	assert.Equal(t, 45.0, r.PercentOfEstimate)
	assert.Equal(t, 180.0, r.TotalFootage)
	assert.Equal(t, 2, r.ReportCount)
	assert.Equal(t, 1, r.ApprovedReports)
	assert.Equal(t, 1, r.PendingReports)
}

func TestCompute_DerivedLineTotals(t *testing.T) {
	wo := order("1", 0)
	reports := []entities.DailyReport{
		{
			Status: workflow.ReportApproved,
			Billing: []entities.BillingEntry{
				{Quantity: 40, Rate: 12.5},       // derived: 500
				{Quantity: 40, Rate: 12.5, Total: 450}, // explicit total wins
			},
		},
	}

	r := Compute(wo, reports, IncludeAll)
	assert.Equal(t, 950.0, r.BilledToDate)
}

func TestCompute_ApprovedOnlyPolicy(t *testing.T) {
	wo := order("1", 10000)
	reports := []entities.DailyReport{
		report(workflow.ReportApproved, 3000, 120),
		report(workflow.ReportSubmitted, 1500, 60),
		report(workflow.ReportDraft, 900, 30),
		report(workflow.ReportRejected, 700, 10),
	}

	r := Compute(wo, reports, IncludeApproved)
	assert.Equal(t, 3000.0, r.BilledToDate)
	assert.Equal(t, 120.0, r.TotalFootage)
	// counts still cover every report
	assert.Equal(t, 4, r.ReportCount)
	assert.Equal(t, 1, r.ApprovedReports)
	assert.Equal(t, 1, r.PendingReports)
}

func TestCompute_ZeroEstimateSentinel(t *testing.T) {
	wo := order("1", 0)
	reports := []entities.DailyReport{report(workflow.ReportApproved, 3000, 0)}

	r := Compute(wo, reports, IncludeAll)
	assert.Equal(t, 0.0, r.PercentOfEstimate, "no estimate means no meaningful percent")
	assert.Equal(t, -3000.0, r.Variance, "overrun shows as negative variance")
}

func TestCompute_NoReports(t *testing.T) {
	r := Compute(order("1", 5000), nil, IncludeAll)
	assert.Zero(t, r.BilledToDate)
	assert.Equal(t, 5000.0, r.Variance)
	assert.Zero(t, r.PercentOfEstimate)
	assert.Zero(t, r.ReportCount)
}

func TestParseInclusionPolicy(t *testing.T) {
	p, err := ParseInclusionPolicy("")
	require.NoError(t, err)
	assert.Equal(t, IncludeAll, p)

	p, err = ParseInclusionPolicy("approved")
	require.NoError(t, err)
	assert.Equal(t, IncludeApproved, p)

	_, err = ParseInclusionPolicy("invoiced")
	require.Error(t, err)
}
