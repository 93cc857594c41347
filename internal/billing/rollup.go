package billing

import (
	"drilltrack/internal/entities"
	"drilltrack/internal/workflow"
	apperrors "drilltrack/pkg/errors"
)

// InclusionPolicy selects which daily reports contribute to a
// roll-up's billed and footage totals.
type InclusionPolicy string

const (
	// IncludeAll counts every report regardless of review status.
	IncludeAll InclusionPolicy = "all"
	// IncludeApproved counts only reports that passed review.
	IncludeApproved InclusionPolicy = "approved"
)

func ParseInclusionPolicy(raw string) (InclusionPolicy, error) {
	switch InclusionPolicy(raw) {
	case "":
		return IncludeAll, nil
	case IncludeAll, IncludeApproved:
		return InclusionPolicy(raw), nil
	}
	return "", apperrors.NewValidationError("include must be one of: all, approved")
}

// Rollup is the financial and production summary for one work order.
type Rollup struct {
	WorkOrderID       string  `json:"work_order_id"`
	WONumber          string  `json:"wo_number"`
	Name              string  `json:"name"`
	Status            string  `json:"status"`
	EstimatedCost     float64 `json:"estimated_cost"`
	BilledToDate      float64 `json:"billed_to_date"`
	Variance          float64 `json:"variance"`
	PercentOfEstimate float64 `json:"percent_of_estimate"`
	TotalFootage      float64 `json:"total_footage"`
	ReportCount       int     `json:"report_count"`
	ApprovedReports   int     `json:"approved_reports"`
	PendingReports    int     `json:"pending_reports"`
}

func lineTotal(b entities.BillingEntry) float64 {
	if b.Total != 0 {
		return b.Total
	}
	return b.Quantity * b.Rate
}

// Compute aggregates a work order's daily reports into a roll-up.
// Variance is estimate minus billed, so overruns go negative. When the
// order carries no estimate the percent is reported as zero rather
// than a division blow-up.
func Compute(wo entities.WorkOrder, reports []entities.DailyReport, policy InclusionPolicy) Rollup {
	r := Rollup{
		WorkOrderID:   wo.ID,
		WONumber:      wo.WONumber,
		Name:          wo.Name,
		Status:        string(wo.Status),
		EstimatedCost: wo.EstimatedCost,
	}

	for _, dr := range reports {
		r.ReportCount++
		switch dr.Status {
		case workflow.ReportApproved:
			r.ApprovedReports++
		case workflow.ReportSubmitted:
			r.PendingReports++
		}

		if policy == IncludeApproved && dr.Status != workflow.ReportApproved {
			continue
		}
		for _, b := range dr.Billing {
			r.BilledToDate += lineTotal(b)
		}
		for _, p := range dr.Production {
			r.TotalFootage += p.Footage
		}
	}

	r.Variance = r.EstimatedCost - r.BilledToDate
	if r.EstimatedCost > 0 {
		r.PercentOfEstimate = r.BilledToDate / r.EstimatedCost * 100
	}
	return r
}
