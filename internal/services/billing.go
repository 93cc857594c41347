package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"drilltrack/internal/billing"
	"drilltrack/internal/entities"
	"drilltrack/internal/repositories"
)

type BillingService struct {
	workOrderRepo repositories.WorkOrderRepositoryInterface
	reportRepo    repositories.DailyReportRepositoryInterface
	cacheRepo     repositories.CacheRepositoryInterface
	cacheTTL      time.Duration
	logger        *zap.Logger
}

func NewBillingService(
	workOrderRepo repositories.WorkOrderRepositoryInterface,
	reportRepo repositories.DailyReportRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *BillingService {
	return &BillingService{
		workOrderRepo: workOrderRepo,
		reportRepo:    reportRepo,
		cacheRepo:     cacheRepo,
		cacheTTL:      cacheTTL,
		logger:        logger,
	}
}

func rollupKey(workOrderID string, policy string) string {
	return fmt.Sprintf("rollup:%s:%s", workOrderID, policy)
}

func rollupsKey(policy billing.InclusionPolicy) string {
	return fmt.Sprintf("rollups:%s", policy)
}

// Rollup returns one work order's summary, read through the cache.
func (s *BillingService) Rollup(ctx context.Context, workOrderID string, policy billing.InclusionPolicy) (*billing.Rollup, error) {
	key := rollupKey(workOrderID, string(policy))
	if cached, err := s.cacheRepo.Get(ctx, key); err == nil {
		var r billing.Rollup
		if err := json.Unmarshal([]byte(cached), &r); err == nil {
			return &r, nil
		}
	}

	wo, err := s.workOrderRepo.FindWorkOrder(ctx, workOrderID)
	if err != nil {
		return nil, err
	}
	reports, err := s.reportRepo.ListByWorkOrder(ctx, workOrderID)
	if err != nil {
		return nil, err
	}

	r := billing.Compute(*wo, reports, policy)

	if encoded, err := json.Marshal(r); err == nil {
		if err := s.cacheRepo.Set(ctx, key, encoded, s.cacheTTL); err != nil {
			s.logger.Warn("failed to cache rollup", zap.String("key", key), zap.Error(err))
		}
	}
	return &r, nil
}

// Rollups summarizes every work order, for the billing tracker view.
func (s *BillingService) Rollups(ctx context.Context, policy billing.InclusionPolicy) ([]billing.Rollup, error) {
	key := rollupsKey(policy)
	if cached, err := s.cacheRepo.Get(ctx, key); err == nil {
		var rollups []billing.Rollup
		if err := json.Unmarshal([]byte(cached), &rollups); err == nil {
			return rollups, nil
		}
	}

	orders, err := s.workOrderRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	reports, err := s.reportRepo.ListAllWithLines(ctx)
	if err != nil {
		return nil, err
	}

	byOrder := make(map[string][]entities.DailyReport)
	for _, dr := range reports {
		byOrder[dr.WorkOrderID] = append(byOrder[dr.WorkOrderID], dr)
	}

	rollups := make([]billing.Rollup, 0, len(orders))
	for _, wo := range orders {
		rollups = append(rollups, billing.Compute(wo, byOrder[wo.ID], policy))
	}

	if encoded, err := json.Marshal(rollups); err == nil {
		if err := s.cacheRepo.Set(ctx, key, encoded, s.cacheTTL); err != nil {
			s.logger.Warn("failed to cache rollups", zap.Error(err))
		}
	}
	return rollups, nil
}

// ExportRollupsXLSX renders the tracker as a spreadsheet for the
// office to hand to accounting.
func (s *BillingService) ExportRollupsXLSX(ctx context.Context, policy billing.InclusionPolicy) (*bytes.Buffer, error) {
	rollups, err := s.Rollups(ctx, policy)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	sheet := "Billing"
	f.SetSheetName("Sheet1", sheet)

	headers := []interface{}{
		"WO Number", "Name", "Status", "Estimated Cost", "Billed To Date",
		"Variance", "% of Estimate", "Total Footage", "Reports", "Approved", "Pending",
	}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return nil, err
	}

	boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(sheet, "A1", "K1", boldStyle); err != nil {
		return nil, err
	}

	for i, r := range rollups {
		row := []interface{}{
			r.WONumber, r.Name, r.Status, r.EstimatedCost, r.BilledToDate,
			r.Variance, r.PercentOfEstimate, r.TotalFootage,
			r.ReportCount, r.ApprovedReports, r.PendingReports,
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf, nil
}
