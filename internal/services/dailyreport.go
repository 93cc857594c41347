package services

import (
	"context"
	"io"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"drilltrack/internal/dto"
	"drilltrack/internal/entities"
	"drilltrack/internal/repositories"
	"drilltrack/internal/workflow"
	apperrors "drilltrack/pkg/errors"
	"drilltrack/pkg/filestorage"
	"drilltrack/pkg/types"
)

type DailyReportService struct {
	reportRepo    repositories.DailyReportRepositoryInterface
	workOrderRepo repositories.WorkOrderRepositoryInterface
	cacheRepo     repositories.CacheRepositoryInterface
	txManager     repositories.TxManagerInterface
	storage       filestorage.Storage
	orgID         string
	logger        *zap.Logger
}

func NewDailyReportService(
	reportRepo repositories.DailyReportRepositoryInterface,
	workOrderRepo repositories.WorkOrderRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	txManager repositories.TxManagerInterface,
	storage filestorage.Storage,
	orgID string,
	logger *zap.Logger,
) *DailyReportService {
	return &DailyReportService{
		reportRepo:    reportRepo,
		workOrderRepo: workOrderRepo,
		cacheRepo:     cacheRepo,
		txManager:     txManager,
		storage:       storage,
		orgID:         orgID,
		logger:        logger,
	}
}

func (s *DailyReportService) invalidateRollups(ctx context.Context, workOrderID string) {
	if err := s.cacheRepo.Del(ctx, rollupKey(workOrderID, "all"), rollupKey(workOrderID, "approved")); err != nil {
		s.logger.Warn("failed to invalidate rollup cache", zap.String("work_order_id", workOrderID), zap.Error(err))
	}
	if err := s.cacheRepo.DelByPattern(ctx, "rollups:*"); err != nil {
		s.logger.Warn("failed to invalidate rollup list cache", zap.Error(err))
	}
}

func (s *DailyReportService) GetDailyReports(ctx context.Context, filter dto.DailyReportListFilterDTO, pagination types.Pagination) ([]dto.DailyReportResponseDTO, uint64, error) {
	return s.reportRepo.GetDailyReports(ctx, filter, pagination)
}

func (s *DailyReportService) FindDailyReport(ctx context.Context, id string) (*entities.DailyReport, error) {
	return s.reportRepo.FindDailyReport(ctx, id)
}

func (s *DailyReportService) CreateDailyReport(ctx context.Context, userID string, payload dto.CreateDailyReportDTO) (*entities.DailyReport, error) {
	if _, err := s.workOrderRepo.FindWorkOrder(ctx, payload.WorkOrderID); err != nil {
		if err == apperrors.ErrNotFound {
			return nil, apperrors.NewValidationError("work order does not exist")
		}
		return nil, err
	}

	reportDate, err := parseRequiredDate(payload.ReportDate)
	if err != nil {
		return nil, err
	}

	status := workflow.ReportDraft
	if payload.Submit {
		status = workflow.ReportSubmitted
	}

	report := entities.DailyReport{
		OrgID:             s.orgID,
		WorkOrderID:       payload.WorkOrderID,
		ReportDate:        reportDate,
		StartTime:         payload.StartTime,
		EndTime:           payload.EndTime,
		WeatherConditions: payload.WeatherConditions,
		EquipmentIssues:   payload.EquipmentIssues,
		SafetyIncidents:   payload.SafetyIncidents,
		Notes:             payload.Notes,
		Status:            status,
	}
	if payload.RigID.Valid {
		report.RigID = &payload.RigID.String
	}
	if payload.CrewID.Valid {
		report.CrewID = &payload.CrewID.String
	}
	if payload.DrillerID.Valid {
		report.DrillerID = &payload.DrillerID.String
	} else if userID != "" {
		report.DrillerID = &userID
	}

	var newID string
	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		number, err := s.reportRepo.NextReportNumber(ctx, tx, payload.WorkOrderID)
		if err != nil {
			return err
		}
		report.ReportNumber = number

		newID, err = s.reportRepo.CreateDailyReport(ctx, tx, report)
		if err != nil {
			return err
		}
		if err := s.reportRepo.ReplaceProduction(ctx, tx, newID, productionFromDTO(newID, payload.Production)); err != nil {
			return err
		}
		if err := s.reportRepo.ReplaceBilling(ctx, tx, newID, billingFromDTO(newID, payload.Billing)); err != nil {
			return err
		}
		return s.reportRepo.ReplaceActivities(ctx, tx, newID, activityEntriesFromDTO(newID, payload.Activities))
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("daily report created",
		zap.String("id", newID),
		zap.String("work_order_id", payload.WorkOrderID),
		zap.String("status", string(status)))
	s.invalidateRollups(ctx, payload.WorkOrderID)
	return s.reportRepo.FindDailyReport(ctx, newID)
}

// UpdateDailyReport rewrites header fields and, for any line list
// present in the payload, deletes and reinserts the whole set inside
// one transaction. Approved reports are immutable until returned for
// revision.
func (s *DailyReportService) UpdateDailyReport(ctx context.Context, id string, payload dto.UpdateDailyReportDTO) (*entities.DailyReport, error) {
	report, err := s.reportRepo.FindDailyReport(ctx, id)
	if err != nil {
		return nil, err
	}
	if report.Status == workflow.ReportApproved {
		return nil, apperrors.NewValidationError("approved reports cannot be edited, return the report for revision first")
	}

	fields := map[string]interface{}{}
	if payload.ReportDate.Valid {
		t, err := parseDate(payload.ReportDate)
		if err != nil {
			return nil, err
		}
		fields["report_date"] = t
	}
	if payload.RigID.Valid {
		fields["rig_id"] = nullableID(payload.RigID)
	}
	if payload.CrewID.Valid {
		fields["crew_id"] = nullableID(payload.CrewID)
	}
	if payload.DrillerID.Valid {
		fields["driller_id"] = nullableID(payload.DrillerID)
	}
	if payload.StartTime.Valid {
		fields["start_time"] = payload.StartTime.String
	}
	if payload.EndTime.Valid {
		fields["end_time"] = payload.EndTime.String
	}
	if payload.WeatherConditions.Valid {
		fields["weather_conditions"] = payload.WeatherConditions.String
	}
	if payload.EquipmentIssues.Valid {
		fields["equipment_issues"] = payload.EquipmentIssues.String
	}
	if payload.SafetyIncidents.Valid {
		fields["safety_incidents"] = payload.SafetyIncidents.String
	}
	if payload.Notes.Valid {
		fields["notes"] = payload.Notes.String
	}

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		if err := s.reportRepo.UpdateDailyReport(ctx, tx, id, fields); err != nil {
			return err
		}
		if payload.Production != nil {
			if err := s.reportRepo.ReplaceProduction(ctx, tx, id, productionFromDTO(id, payload.Production)); err != nil {
				return err
			}
		}
		if payload.Billing != nil {
			if err := s.reportRepo.ReplaceBilling(ctx, tx, id, billingFromDTO(id, payload.Billing)); err != nil {
				return err
			}
		}
		if payload.Activities != nil {
			if err := s.reportRepo.ReplaceActivities(ctx, tx, id, activityEntriesFromDTO(id, payload.Activities)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateRollups(ctx, report.WorkOrderID)
	return s.reportRepo.FindDailyReport(ctx, id)
}

// Transition moves the report through review. Rejection and
// return-for-revision both require review notes, enforced by the state
// machine.
func (s *DailyReportService) Transition(ctx context.Context, id string, rawStatus, reviewNotes string) (*entities.DailyReport, error) {
	target, err := workflow.ParseReportStatus(rawStatus)
	if err != nil {
		return nil, err
	}

	report, err := s.reportRepo.FindDailyReport(ctx, id)
	if err != nil {
		return nil, err
	}

	next, err := workflow.TransitionReport(report.Status, target, reviewNotes)
	if err != nil {
		return nil, err
	}

	var reviewedAt *time.Time
	if next == workflow.ReportApproved || next == workflow.ReportRejected {
		now := time.Now()
		reviewedAt = &now
	}

	if err := s.reportRepo.UpdateStatus(ctx, id, next, reviewNotes, reviewedAt); err != nil {
		return nil, err
	}

	s.logger.Info("daily report status changed",
		zap.String("id", id),
		zap.String("from", string(report.Status)),
		zap.String("to", string(next)))
	s.invalidateRollups(ctx, report.WorkOrderID)
	return s.reportRepo.FindDailyReport(ctx, id)
}

func (s *DailyReportService) AttachPhoto(ctx context.Context, reportID, fileName, caption string, size int64, src io.Reader) (*entities.ReportPhoto, error) {
	report, err := s.reportRepo.FindDailyReport(ctx, reportID)
	if err != nil {
		return nil, err
	}

	path, err := s.storage.Save("reports/"+report.ID, fileName, src)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	photo := entities.ReportPhoto{
		DailyReportID: report.ID,
		FileName:      fileName,
		FileURL:       s.storage.PublicURL(path),
		FileSize:      size,
		Caption:       caption,
		TakenAt:       &now,
	}
	photoID, err := s.reportRepo.AttachPhoto(ctx, photo)
	if err != nil {
		// orphaned file is worse than an orphaned row
		_ = s.storage.Delete(path)
		return nil, err
	}
	photo.ID = photoID
	return &photo, nil
}

func (s *DailyReportService) DeletePhoto(ctx context.Context, reportID, photoID string) error {
	photo, err := s.reportRepo.DeletePhoto(ctx, reportID, photoID)
	if err != nil {
		return err
	}
	if err := s.storage.Delete(photo.FileURL); err != nil {
		s.logger.Warn("failed to remove photo file", zap.String("path", photo.FileURL), zap.Error(err))
	}
	return nil
}

func (s *DailyReportService) DeleteDailyReport(ctx context.Context, id string) error {
	report, err := s.reportRepo.FindDailyReport(ctx, id)
	if err != nil {
		return err
	}
	if err := s.reportRepo.DeleteDailyReport(ctx, id); err != nil {
		return err
	}
	s.invalidateRollups(ctx, report.WorkOrderID)
	return nil
}

func productionFromDTO(reportID string, rows []dto.ProductionEntryDTO) []entities.ProductionEntry {
	out := make([]entities.ProductionEntry, 0, len(rows))
	for _, r := range rows {
		footage := r.EndDepth - r.StartDepth
		if footage < 0 {
			footage = 0
		}
		entry := entities.ProductionEntry{
			DailyReportID: reportID,
			BoringType:    r.BoringType,
			StartDepth:    r.StartDepth,
			EndDepth:      r.EndDepth,
			Footage:       footage,
			Description:   r.Description,
			SortOrder:     r.SortOrder,
		}
		if r.BoringID.Valid {
			entry.BoringID = &r.BoringID.String
		}
		out = append(out, entry)
	}
	return out
}

func billingFromDTO(reportID string, rows []dto.BillingEntryDTO) []entities.BillingEntry {
	out := make([]entities.BillingEntry, 0, len(rows))
	for _, r := range rows {
		total := r.Total
		if total == 0 {
			total = r.Quantity * r.Rate
		}
		entry := entities.BillingEntry{
			DailyReportID: reportID,
			BillingUnit:   r.BillingUnit,
			Quantity:      r.Quantity,
			Rate:          r.Rate,
			Total:         total,
			Notes:         r.Notes,
			SortOrder:     r.SortOrder,
		}
		if r.RateLineID.Valid {
			entry.RateLineID = &r.RateLineID.String
		}
		out = append(out, entry)
	}
	return out
}

func activityEntriesFromDTO(reportID string, rows []dto.ActivityEntryDTO) []entities.ActivityEntry {
	out := make([]entities.ActivityEntry, 0, len(rows))
	for _, r := range rows {
		out = append(out, entities.ActivityEntry{
			DailyReportID: reportID,
			ActivityType:  r.ActivityType,
			Hours:         r.Hours,
			Description:   r.Description,
			SortOrder:     r.SortOrder,
		})
	}
	return out
}
