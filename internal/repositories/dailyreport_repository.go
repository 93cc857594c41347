package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"drilltrack/internal/dto"
	"drilltrack/internal/entities"
	"drilltrack/internal/workflow"
	apperrors "drilltrack/pkg/errors"
	"drilltrack/pkg/types"
)

const dailyReportColumns = `dr.id, dr.org_id, dr.work_order_id, dr.report_number, dr.report_date,
	dr.rig_id, dr.crew_id, dr.driller_id, dr.start_time, dr.end_time,
	dr.weather_conditions, dr.equipment_issues, dr.safety_incidents, dr.notes,
	dr.status, dr.review_notes, dr.reviewed_at, dr.created_at, dr.updated_at`

type DailyReportRepositoryInterface interface {
	GetDailyReports(ctx context.Context, filter dto.DailyReportListFilterDTO, pagination types.Pagination) ([]dto.DailyReportResponseDTO, uint64, error)
	FindDailyReport(ctx context.Context, id string) (*entities.DailyReport, error)
	ListByWorkOrder(ctx context.Context, workOrderID string) ([]entities.DailyReport, error)
	ListAllWithLines(ctx context.Context) ([]entities.DailyReport, error)
	CreateDailyReport(ctx context.Context, tx pgx.Tx, report entities.DailyReport) (string, error)
	UpdateDailyReport(ctx context.Context, tx pgx.Tx, id string, fields map[string]interface{}) error
	ReplaceProduction(ctx context.Context, tx pgx.Tx, reportID string, rows []entities.ProductionEntry) error
	ReplaceBilling(ctx context.Context, tx pgx.Tx, reportID string, rows []entities.BillingEntry) error
	ReplaceActivities(ctx context.Context, tx pgx.Tx, reportID string, rows []entities.ActivityEntry) error
	UpdateStatus(ctx context.Context, id string, status workflow.ReportStatus, reviewNotes string, reviewedAt *time.Time) error
	AttachPhoto(ctx context.Context, photo entities.ReportPhoto) (string, error)
	DeletePhoto(ctx context.Context, reportID, photoID string) (*entities.ReportPhoto, error)
	DeleteDailyReport(ctx context.Context, id string) error
	NextReportNumber(ctx context.Context, tx pgx.Tx, workOrderID string) (string, error)
}

type DailyReportRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewDailyReportRepository(storage *pgxpool.Pool, logger *zap.Logger) DailyReportRepositoryInterface {
	return &DailyReportRepository{storage: storage, logger: logger}
}

func scanDailyReport(row pgx.Row, extra ...interface{}) (*entities.DailyReport, error) {
	var dr entities.DailyReport
	var rigID, crewID, drillerID sql.NullString
	var startTime, endTime, weather, equipment, safety, notes, reviewNotes sql.NullString
	var reviewedAt sql.NullTime
	var status string

	dest := []interface{}{
		&dr.ID, &dr.OrgID, &dr.WorkOrderID, &dr.ReportNumber, &dr.ReportDate,
		&rigID, &crewID, &drillerID, &startTime, &endTime,
		&weather, &equipment, &safety, &notes,
		&status, &reviewNotes, &reviewedAt, &dr.CreatedAt, &dr.UpdatedAt,
	}
	dest = append(dest, extra...)

	if err := row.Scan(dest...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan daily report: %w", err)
	}

	dr.Status = workflow.ReportStatus(status)
	dr.StartTime = startTime.String
	dr.EndTime = endTime.String
	dr.WeatherConditions = weather.String
	dr.EquipmentIssues = equipment.String
	dr.SafetyIncidents = safety.String
	dr.Notes = notes.String
	dr.ReviewNotes = reviewNotes.String
	if rigID.Valid {
		dr.RigID = &rigID.String
	}
	if crewID.Valid {
		dr.CrewID = &crewID.String
	}
	if drillerID.Valid {
		dr.DrillerID = &drillerID.String
	}
	if reviewedAt.Valid {
		dr.ReviewedAt = &reviewedAt.Time
	}
	return &dr, nil
}

func (r *DailyReportRepository) GetDailyReports(ctx context.Context, filter dto.DailyReportListFilterDTO, pagination types.Pagination) ([]dto.DailyReportResponseDTO, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	applyFilter := func(b sq.SelectBuilder) sq.SelectBuilder {
		if filter.WorkOrderID != "" {
			b = b.Where(sq.Eq{"dr.work_order_id": filter.WorkOrderID})
		}
		if filter.Status != "" {
			b = b.Where(sq.Eq{"dr.status": filter.Status})
		}
		if filter.CrewID != "" {
			b = b.Where(sq.Eq{"dr.crew_id": filter.CrewID})
		}
		if filter.RigID != "" {
			b = b.Where(sq.Eq{"dr.rig_id": filter.RigID})
		}
		if filter.DateFrom != "" {
			b = b.Where(sq.GtOrEq{"dr.report_date": filter.DateFrom})
		}
		if filter.DateTo != "" {
			b = b.Where(sq.LtOrEq{"dr.report_date": filter.DateTo})
		}
		return b
	}

	countBuilder := applyFilter(psql.Select("COUNT(dr.id)").From("daily_reports AS dr"))
	sqlCount, argsCount, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total uint64
	if err := r.storage.QueryRow(ctx, sqlCount, argsCount...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count daily reports: %w", err)
	}
	if total == 0 {
		return []dto.DailyReportResponseDTO{}, 0, nil
	}

	listBuilder := applyFilter(psql.Select(
		dailyReportColumns,
		"COALESCE(wo.wo_number, '')", "COALESCE(wo.name, '')",
		"COALESCE(rg.name, '')", "COALESCE(cr.name, '')",
	).From("daily_reports AS dr").
		LeftJoin("work_orders wo ON dr.work_order_id = wo.id").
		LeftJoin("rigs rg ON dr.rig_id = rg.id").
		LeftJoin("crews cr ON dr.crew_id = cr.id").
		OrderBy("dr.report_date DESC", "dr.created_at DESC").
		Limit(pagination.Limit).
		Offset(pagination.Offset))

	query, args, err := listBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list daily reports: %w", err)
	}
	defer rows.Close()

	results := make([]dto.DailyReportResponseDTO, 0, pagination.Limit)
	for rows.Next() {
		var woNumber, woName, rigName, crewName string
		dr, err := scanDailyReport(rows, &woNumber, &woName, &rigName, &crewName)
		if err != nil {
			return nil, 0, err
		}
		results = append(results, dto.DailyReportResponseDTO{
			DailyReport:   *dr,
			WONumber:      woNumber,
			WorkOrderName: woName,
			RigName:       rigName,
			CrewName:      crewName,
		})
	}
	return results, total, rows.Err()
}

func (r *DailyReportRepository) FindDailyReport(ctx context.Context, id string) (*entities.DailyReport, error) {
	query := fmt.Sprintf(`SELECT %s FROM daily_reports dr WHERE dr.id = $1`, dailyReportColumns)
	dr, err := scanDailyReport(r.storage.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}
	if err := r.loadLines(ctx, dr); err != nil {
		return nil, err
	}
	return dr, nil
}

func (r *DailyReportRepository) loadLines(ctx context.Context, dr *entities.DailyReport) error {
	rows, err := r.storage.Query(ctx, `
		SELECT id, daily_report_id, boring_id, boring_type, start_depth, end_depth, footage, description, sort_order
		FROM daily_report_production WHERE daily_report_id = $1 ORDER BY sort_order`, dr.ID)
	if err != nil {
		return fmt.Errorf("failed to load production entries: %w", err)
	}
	defer rows.Close()
	dr.Production = make([]entities.ProductionEntry, 0)
	for rows.Next() {
		var p entities.ProductionEntry
		var boringID sql.NullString
		var boringType, description sql.NullString
		if err := rows.Scan(&p.ID, &p.DailyReportID, &boringID, &boringType, &p.StartDepth, &p.EndDepth, &p.Footage, &description, &p.SortOrder); err != nil {
			return err
		}
		if boringID.Valid {
			p.BoringID = &boringID.String
		}
		p.BoringType = boringType.String
		p.Description = description.String
		dr.Production = append(dr.Production, p)
	}

	billRows, err := r.storage.Query(ctx, `
		SELECT id, daily_report_id, rate_line_id, billing_unit, quantity, rate, total, notes, sort_order
		FROM daily_report_billing WHERE daily_report_id = $1 ORDER BY sort_order`, dr.ID)
	if err != nil {
		return fmt.Errorf("failed to load billing entries: %w", err)
	}
	defer billRows.Close()
	dr.Billing = make([]entities.BillingEntry, 0)
	for billRows.Next() {
		var b entities.BillingEntry
		var rateLineID, notes sql.NullString
		if err := billRows.Scan(&b.ID, &b.DailyReportID, &rateLineID, &b.BillingUnit, &b.Quantity, &b.Rate, &b.Total, &notes, &b.SortOrder); err != nil {
			return err
		}
		if rateLineID.Valid {
			b.RateLineID = &rateLineID.String
		}
		b.Notes = notes.String
		dr.Billing = append(dr.Billing, b)
	}

	actRows, err := r.storage.Query(ctx, `
		SELECT id, daily_report_id, activity_type, hours, description, sort_order
		FROM daily_report_activities WHERE daily_report_id = $1 ORDER BY sort_order`, dr.ID)
	if err != nil {
		return fmt.Errorf("failed to load activity entries: %w", err)
	}
	defer actRows.Close()
	dr.Activities = make([]entities.ActivityEntry, 0)
	for actRows.Next() {
		var a entities.ActivityEntry
		var description sql.NullString
		if err := actRows.Scan(&a.ID, &a.DailyReportID, &a.ActivityType, &a.Hours, &description, &a.SortOrder); err != nil {
			return err
		}
		a.Description = description.String
		dr.Activities = append(dr.Activities, a)
	}

	photoRows, err := r.storage.Query(ctx, `
		SELECT id, daily_report_id, file_name, file_url, file_size, caption, taken_at
		FROM daily_report_photos WHERE daily_report_id = $1 ORDER BY taken_at NULLS LAST`, dr.ID)
	if err != nil {
		return fmt.Errorf("failed to load photos: %w", err)
	}
	defer photoRows.Close()
	dr.Photos = make([]entities.ReportPhoto, 0)
	for photoRows.Next() {
		var p entities.ReportPhoto
		var caption sql.NullString
		var takenAt sql.NullTime
		if err := photoRows.Scan(&p.ID, &p.DailyReportID, &p.FileName, &p.FileURL, &p.FileSize, &caption, &takenAt); err != nil {
			return err
		}
		p.Caption = caption.String
		if takenAt.Valid {
			p.TakenAt = &takenAt.Time
		}
		dr.Photos = append(dr.Photos, p)
	}
	return nil
}

func (r *DailyReportRepository) ListByWorkOrder(ctx context.Context, workOrderID string) ([]entities.DailyReport, error) {
	query := fmt.Sprintf(`SELECT %s FROM daily_reports dr WHERE dr.work_order_id = $1 ORDER BY dr.report_date`, dailyReportColumns)
	rows, err := r.storage.Query(ctx, query, workOrderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list daily reports: %w", err)
	}
	defer rows.Close()

	reports := make([]entities.DailyReport, 0)
	for rows.Next() {
		dr, err := scanDailyReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, *dr)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range reports {
		if err := r.loadLines(ctx, &reports[i]); err != nil {
			return nil, err
		}
	}
	return reports, nil
}

// ListAllWithLines feeds the org-wide billing roll-up, which needs
// every report's billing and production lines.
func (r *DailyReportRepository) ListAllWithLines(ctx context.Context) ([]entities.DailyReport, error) {
	query := fmt.Sprintf(`SELECT %s FROM daily_reports dr ORDER BY dr.report_date`, dailyReportColumns)
	rows, err := r.storage.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list daily reports: %w", err)
	}
	defer rows.Close()

	reports := make([]entities.DailyReport, 0)
	for rows.Next() {
		dr, err := scanDailyReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, *dr)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range reports {
		if err := r.loadLines(ctx, &reports[i]); err != nil {
			return nil, err
		}
	}
	return reports, nil
}

func (r *DailyReportRepository) CreateDailyReport(ctx context.Context, tx pgx.Tx, report entities.DailyReport) (string, error) {
	if report.ID == "" {
		report.ID = uuid.NewString()
	}
	query := `
		INSERT INTO daily_reports (
			id, org_id, work_order_id, report_number, report_date, rig_id, crew_id, driller_id,
			start_time, end_time, weather_conditions, equipment_issues, safety_incidents, notes,
			status, review_notes, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, NOW(), NOW())
		RETURNING id
	`
	var newID string
	err := tx.QueryRow(ctx, query,
		report.ID, report.OrgID, report.WorkOrderID, report.ReportNumber, report.ReportDate,
		report.RigID, report.CrewID, report.DrillerID,
		report.StartTime, report.EndTime,
		report.WeatherConditions, report.EquipmentIssues, report.SafetyIncidents, report.Notes,
		string(report.Status), report.ReviewNotes,
	).Scan(&newID)
	if err != nil {
		return "", fmt.Errorf("failed to insert daily report: %w", err)
	}
	return newID, nil
}

func (r *DailyReportRepository) UpdateDailyReport(ctx context.Context, tx pgx.Tx, id string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Update("daily_reports").
		SetMap(fields).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return err
	}
	result, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update daily report: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *DailyReportRepository) ReplaceProduction(ctx context.Context, tx pgx.Tx, reportID string, rows []entities.ProductionEntry) error {
	if _, err := tx.Exec(ctx, `DELETE FROM daily_report_production WHERE daily_report_id = $1`, reportID); err != nil {
		return apperrors.NewPartialWriteError("daily_report_production", err)
	}
	for i, p := range rows {
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		_, err := tx.Exec(ctx, `
			INSERT INTO daily_report_production (id, daily_report_id, boring_id, boring_type, start_depth, end_depth, footage, description, sort_order)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			p.ID, reportID, p.BoringID, p.BoringType, p.StartDepth, p.EndDepth, p.Footage, p.Description, i)
		if err != nil {
			return apperrors.NewPartialWriteError("daily_report_production", err)
		}
	}
	return nil
}

func (r *DailyReportRepository) ReplaceBilling(ctx context.Context, tx pgx.Tx, reportID string, rows []entities.BillingEntry) error {
	if _, err := tx.Exec(ctx, `DELETE FROM daily_report_billing WHERE daily_report_id = $1`, reportID); err != nil {
		return apperrors.NewPartialWriteError("daily_report_billing", err)
	}
	for i, b := range rows {
		if b.ID == "" {
			b.ID = uuid.NewString()
		}
		_, err := tx.Exec(ctx, `
			INSERT INTO daily_report_billing (id, daily_report_id, rate_line_id, billing_unit, quantity, rate, total, notes, sort_order)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			b.ID, reportID, b.RateLineID, b.BillingUnit, b.Quantity, b.Rate, b.Total, b.Notes, i)
		if err != nil {
			return apperrors.NewPartialWriteError("daily_report_billing", err)
		}
	}
	return nil
}

func (r *DailyReportRepository) ReplaceActivities(ctx context.Context, tx pgx.Tx, reportID string, rows []entities.ActivityEntry) error {
	if _, err := tx.Exec(ctx, `DELETE FROM daily_report_activities WHERE daily_report_id = $1`, reportID); err != nil {
		return apperrors.NewPartialWriteError("daily_report_activities", err)
	}
	for i, a := range rows {
		if a.ID == "" {
			a.ID = uuid.NewString()
		}
		_, err := tx.Exec(ctx, `
			INSERT INTO daily_report_activities (id, daily_report_id, activity_type, hours, description, sort_order)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			a.ID, reportID, a.ActivityType, a.Hours, a.Description, i)
		if err != nil {
			return apperrors.NewPartialWriteError("daily_report_activities", err)
		}
	}
	return nil
}

func (r *DailyReportRepository) UpdateStatus(ctx context.Context, id string, status workflow.ReportStatus, reviewNotes string, reviewedAt *time.Time) error {
	query := `
		UPDATE daily_reports
		SET status = $1, review_notes = $2, reviewed_at = $3, updated_at = NOW()
		WHERE id = $4
	`
	result, err := r.storage.Exec(ctx, query, string(status), reviewNotes, reviewedAt, id)
	if err != nil {
		return fmt.Errorf("failed to update report status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *DailyReportRepository) AttachPhoto(ctx context.Context, photo entities.ReportPhoto) (string, error) {
	if photo.ID == "" {
		photo.ID = uuid.NewString()
	}
	query := `
		INSERT INTO daily_report_photos (id, daily_report_id, file_name, file_url, file_size, caption, taken_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	var newID string
	err := r.storage.QueryRow(ctx, query,
		photo.ID, photo.DailyReportID, photo.FileName, photo.FileURL,
		photo.FileSize, photo.Caption, photo.TakenAt,
	).Scan(&newID)
	if err != nil {
		return "", fmt.Errorf("failed to attach photo: %w", err)
	}
	return newID, nil
}

func (r *DailyReportRepository) DeletePhoto(ctx context.Context, reportID, photoID string) (*entities.ReportPhoto, error) {
	var p entities.ReportPhoto
	var caption sql.NullString
	var takenAt sql.NullTime
	err := r.storage.QueryRow(ctx, `
		DELETE FROM daily_report_photos WHERE id = $1 AND daily_report_id = $2
		RETURNING id, daily_report_id, file_name, file_url, file_size, caption, taken_at`,
		photoID, reportID,
	).Scan(&p.ID, &p.DailyReportID, &p.FileName, &p.FileURL, &p.FileSize, &caption, &takenAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to delete photo: %w", err)
	}
	p.Caption = caption.String
	if takenAt.Valid {
		p.TakenAt = &takenAt.Time
	}
	return &p, nil
}

func (r *DailyReportRepository) DeleteDailyReport(ctx context.Context, id string) error {
	result, err := r.storage.Exec(ctx, `DELETE FROM daily_reports WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete daily report: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// NextReportNumber issues DR-<n> scoped to the work order, counting
// inside the caller's transaction so concurrent creates against the
// same order cannot collide after commit.
func (r *DailyReportRepository) NextReportNumber(ctx context.Context, tx pgx.Tx, workOrderID string) (string, error) {
	var count uint64
	err := tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM daily_reports WHERE work_order_id = $1`, workOrderID,
	).Scan(&count)
	if err != nil {
		return "", fmt.Errorf("failed to number report: %w", err)
	}
	return fmt.Sprintf("DR-%03d", count+1), nil
}
