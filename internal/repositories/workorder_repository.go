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

const workOrderColumns = `wo.id, wo.org_id, wo.project_id, wo.wo_number, wo.name, wo.scope,
	wo.priority, wo.status, wo.submitted_by_type, wo.assigned_rig_id, wo.assigned_crew_id,
	wo.requested_start, wo.requested_end, wo.scheduled_start, wo.scheduled_end,
	wo.actual_start, wo.actual_end, wo.estimated_cost, wo.location, wo.lat, wo.lng,
	wo.locate_ticket_number, wo.locate_ticket_date, wo.locate_ticket_expires,
	wo.created_at, wo.updated_at`

type WorkOrderRepositoryInterface interface {
	GetWorkOrders(ctx context.Context, filter dto.WorkOrderListFilterDTO, pagination types.Pagination) ([]dto.WorkOrderResponseDTO, uint64, error)
	FindWorkOrder(ctx context.Context, id string) (*entities.WorkOrder, error)
	ListByStatuses(ctx context.Context, statuses []workflow.WorkOrderStatus) ([]entities.WorkOrder, error)
	ListScheduled(ctx context.Context) ([]entities.WorkOrder, error)
	ListAssigned(ctx context.Context) ([]entities.WorkOrder, error)
	ListAll(ctx context.Context) ([]entities.WorkOrder, error)
	CreateWorkOrder(ctx context.Context, tx pgx.Tx, wo entities.WorkOrder) (string, error)
	UpdateWorkOrder(ctx context.Context, tx pgx.Tx, id string, fields map[string]interface{}) error
	ReplaceBorings(ctx context.Context, tx pgx.Tx, workOrderID string, rows []entities.WorkOrderBoring) error
	ReplaceRateSchedule(ctx context.Context, tx pgx.Tx, workOrderID string, rows []entities.RateScheduleLine) error
	ReplaceActivities(ctx context.Context, tx pgx.Tx, workOrderID string, rows []entities.WorkOrderActivity) error
	UpdateStatus(ctx context.Context, id string, status workflow.WorkOrderStatus, actualStart, actualEnd *time.Time) error
	UpdateAssignment(ctx context.Context, id string, status *workflow.WorkOrderStatus, rigID, crewID *string, start, end *time.Time) error
	DeleteWorkOrder(ctx context.Context, id string) error
	NextWONumber(ctx context.Context, tx pgx.Tx, year int) (string, error)
}

const scheduleOrder = `wo.scheduled_start NULLS LAST, wo.created_at`

type WorkOrderRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewWorkOrderRepository(storage *pgxpool.Pool, logger *zap.Logger) WorkOrderRepositoryInterface {
	return &WorkOrderRepository{storage: storage, logger: logger}
}

func scanWorkOrder(row pgx.Row, extra ...interface{}) (*entities.WorkOrder, error) {
	var wo entities.WorkOrder
	var scope, priority, submittedBy, location, ticketNumber sql.NullString
	var rigID, crewID sql.NullString
	var requestedStart, requestedEnd, scheduledStart, scheduledEnd sql.NullTime
	var actualStart, actualEnd, ticketDate, ticketExpires sql.NullTime
	var lat, lng sql.NullFloat64
	var status string

	dest := []interface{}{
		&wo.ID, &wo.OrgID, &wo.ProjectID, &wo.WONumber, &wo.Name, &scope,
		&priority, &status, &submittedBy, &rigID, &crewID,
		&requestedStart, &requestedEnd, &scheduledStart, &scheduledEnd,
		&actualStart, &actualEnd, &wo.EstimatedCost, &location, &lat, &lng,
		&ticketNumber, &ticketDate, &ticketExpires,
		&wo.CreatedAt, &wo.UpdatedAt,
	}
	dest = append(dest, extra...)

	if err := row.Scan(dest...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan work order: %w", err)
	}

	wo.Status = workflow.WorkOrderStatus(status)
	wo.Scope = scope.String
	wo.Priority = priority.String
	wo.SubmittedByType = submittedBy.String
	wo.Location = location.String
	wo.LocateTicketNumber = ticketNumber.String
	if rigID.Valid {
		wo.AssignedRigID = &rigID.String
	}
	if crewID.Valid {
		wo.AssignedCrewID = &crewID.String
	}
	if requestedStart.Valid {
		wo.RequestedStart = &requestedStart.Time
	}
	if requestedEnd.Valid {
		wo.RequestedEnd = &requestedEnd.Time
	}
	if scheduledStart.Valid {
		wo.ScheduledStart = &scheduledStart.Time
	}
	if scheduledEnd.Valid {
		wo.ScheduledEnd = &scheduledEnd.Time
	}
	if actualStart.Valid {
		wo.ActualStart = &actualStart.Time
	}
	if actualEnd.Valid {
		wo.ActualEnd = &actualEnd.Time
	}
	if ticketDate.Valid {
		wo.LocateTicketDate = &ticketDate.Time
	}
	if ticketExpires.Valid {
		wo.LocateTicketExpires = &ticketExpires.Time
	}
	if lat.Valid {
		wo.Lat = &lat.Float64
	}
	if lng.Valid {
		wo.Lng = &lng.Float64
	}
	return &wo, nil
}

func (r *WorkOrderRepository) GetWorkOrders(ctx context.Context, filter dto.WorkOrderListFilterDTO, pagination types.Pagination) ([]dto.WorkOrderResponseDTO, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	applyFilter := func(b sq.SelectBuilder) sq.SelectBuilder {
		if filter.Status != "" {
			b = b.Where(sq.Eq{"wo.status": filter.Status})
		}
		if filter.ProjectID != "" {
			b = b.Where(sq.Eq{"wo.project_id": filter.ProjectID})
		}
		if filter.Priority != "" {
			b = b.Where(sq.Eq{"wo.priority": filter.Priority})
		}
		if filter.CrewID != "" {
			b = b.Where(sq.Eq{"wo.assigned_crew_id": filter.CrewID})
		}
		if filter.RigID != "" {
			b = b.Where(sq.Eq{"wo.assigned_rig_id": filter.RigID})
		}
		if filter.Search != "" {
			pat := "%" + filter.Search + "%"
			b = b.Where(sq.Or{
				sq.ILike{"wo.name": pat},
				sq.ILike{"wo.wo_number": pat},
				sq.ILike{"wo.location": pat},
			})
		}
		return b
	}

	countBuilder := applyFilter(psql.Select("COUNT(wo.id)").From("work_orders AS wo"))
	sqlCount, argsCount, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total uint64
	if err := r.storage.QueryRow(ctx, sqlCount, argsCount...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count work orders: %w", err)
	}
	if total == 0 {
		return []dto.WorkOrderResponseDTO{}, 0, nil
	}

	listBuilder := applyFilter(psql.Select(
		workOrderColumns,
		"COALESCE(p.name, '')", "COALESCE(rg.name, '')", "COALESCE(cr.name, '')",
	).From("work_orders AS wo").
		LeftJoin("projects p ON wo.project_id = p.id").
		LeftJoin("rigs rg ON wo.assigned_rig_id = rg.id").
		LeftJoin("crews cr ON wo.assigned_crew_id = cr.id").
		OrderBy("wo.created_at DESC").
		Limit(pagination.Limit).
		Offset(pagination.Offset))

	query, args, err := listBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list work orders: %w", err)
	}
	defer rows.Close()

	results := make([]dto.WorkOrderResponseDTO, 0, pagination.Limit)
	for rows.Next() {
		var projectName, rigName, crewName string
		wo, err := scanWorkOrder(rows, &projectName, &rigName, &crewName)
		if err != nil {
			return nil, 0, err
		}
		results = append(results, dto.WorkOrderResponseDTO{
			WorkOrder:   *wo,
			ProjectName: projectName,
			RigName:     rigName,
			CrewName:    crewName,
		})
	}
	return results, total, rows.Err()
}

func (r *WorkOrderRepository) FindWorkOrder(ctx context.Context, id string) (*entities.WorkOrder, error) {
	query := fmt.Sprintf(`SELECT %s FROM work_orders wo WHERE wo.id = $1`, workOrderColumns)
	wo, err := scanWorkOrder(r.storage.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}
	if err := r.loadChildren(ctx, wo); err != nil {
		return nil, err
	}
	return wo, nil
}

func (r *WorkOrderRepository) loadChildren(ctx context.Context, wo *entities.WorkOrder) error {
	rows, err := r.storage.Query(ctx, `
		SELECT id, work_order_id, boring_id_label, boring_type, planned_depth, status, sort_order
		FROM wo_borings WHERE work_order_id = $1 ORDER BY sort_order`, wo.ID)
	if err != nil {
		return fmt.Errorf("failed to load borings: %w", err)
	}
	defer rows.Close()
	wo.Borings = make([]entities.WorkOrderBoring, 0)
	for rows.Next() {
		var b entities.WorkOrderBoring
		var boringType sql.NullString
		if err := rows.Scan(&b.ID, &b.WorkOrderID, &b.Label, &boringType, &b.PlannedDepth, &b.Status, &b.SortOrder); err != nil {
			return err
		}
		b.BoringType = boringType.String
		wo.Borings = append(wo.Borings, b)
	}

	rateRows, err := r.storage.Query(ctx, `
		SELECT id, work_order_id, billing_unit, rate, unit_label, estimated_quantity, sort_order
		FROM wo_rate_schedule WHERE work_order_id = $1 ORDER BY sort_order`, wo.ID)
	if err != nil {
		return fmt.Errorf("failed to load rate schedule: %w", err)
	}
	defer rateRows.Close()
	wo.RateSchedule = make([]entities.RateScheduleLine, 0)
	for rateRows.Next() {
		var l entities.RateScheduleLine
		var unitLabel sql.NullString
		if err := rateRows.Scan(&l.ID, &l.WorkOrderID, &l.BillingUnit, &l.Rate, &unitLabel, &l.EstimatedQty, &l.SortOrder); err != nil {
			return err
		}
		l.UnitLabel = unitLabel.String
		wo.RateSchedule = append(wo.RateSchedule, l)
	}

	actRows, err := r.storage.Query(ctx, `
		SELECT id, work_order_id, name, description, sort_order
		FROM wo_activities WHERE work_order_id = $1 ORDER BY sort_order`, wo.ID)
	if err != nil {
		return fmt.Errorf("failed to load activities: %w", err)
	}
	defer actRows.Close()
	wo.Activities = make([]entities.WorkOrderActivity, 0)
	for actRows.Next() {
		var a entities.WorkOrderActivity
		var description sql.NullString
		if err := actRows.Scan(&a.ID, &a.WorkOrderID, &a.Name, &description, &a.SortOrder); err != nil {
			return err
		}
		a.Description = description.String
		wo.Activities = append(wo.Activities, a)
	}
	return nil
}

func (r *WorkOrderRepository) listWhere(ctx context.Context, where, orderBy string, args ...interface{}) ([]entities.WorkOrder, error) {
	query := fmt.Sprintf(`SELECT %s FROM work_orders wo %s ORDER BY %s`, workOrderColumns, where, orderBy)
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list work orders: %w", err)
	}
	defer rows.Close()

	orders := make([]entities.WorkOrder, 0)
	for rows.Next() {
		wo, err := scanWorkOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *wo)
	}
	return orders, rows.Err()
}

func (r *WorkOrderRepository) ListByStatuses(ctx context.Context, statuses []workflow.WorkOrderStatus) ([]entities.WorkOrder, error) {
	values := make([]string, 0, len(statuses))
	for _, s := range statuses {
		values = append(values, string(s))
	}
	return r.listWhere(ctx, `WHERE wo.status = ANY($1)`, scheduleOrder, values)
}

// Completed orders stay on the timeline and board until they are
// invoiced or cancelled, so crews can see what just finished.
func (r *WorkOrderRepository) ListScheduled(ctx context.Context) ([]entities.WorkOrder, error) {
	return r.listWhere(ctx, `WHERE wo.scheduled_start IS NOT NULL AND wo.status IN ('scheduled', 'in_progress', 'completed')`, scheduleOrder)
}

func (r *WorkOrderRepository) ListAssigned(ctx context.Context) ([]entities.WorkOrder, error) {
	return r.listWhere(ctx, `WHERE (wo.assigned_crew_id IS NOT NULL OR wo.assigned_rig_id IS NOT NULL)
		AND wo.status IN ('scheduled', 'in_progress', 'completed')`, scheduleOrder)
}

// ListAll feeds the billing tracker, which reads top to bottom in
// intake order, so it sorts by creation rather than schedule.
func (r *WorkOrderRepository) ListAll(ctx context.Context) ([]entities.WorkOrder, error) {
	return r.listWhere(ctx, ``, `wo.created_at, wo.wo_number`)
}

func (r *WorkOrderRepository) CreateWorkOrder(ctx context.Context, tx pgx.Tx, wo entities.WorkOrder) (string, error) {
	if wo.ID == "" {
		wo.ID = uuid.NewString()
	}
	query := `
		INSERT INTO work_orders (
			id, org_id, project_id, wo_number, name, scope, priority, status, submitted_by_type,
			requested_start, requested_end, estimated_cost, location, lat, lng,
			locate_ticket_number, locate_ticket_date, locate_ticket_expires, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, NOW(), NOW())
		RETURNING id
	`
	var newID string
	err := tx.QueryRow(ctx, query,
		wo.ID, wo.OrgID, wo.ProjectID, wo.WONumber, wo.Name, wo.Scope, wo.Priority,
		string(wo.Status), wo.SubmittedByType,
		wo.RequestedStart, wo.RequestedEnd, wo.EstimatedCost, wo.Location, wo.Lat, wo.Lng,
		wo.LocateTicketNumber, wo.LocateTicketDate, wo.LocateTicketExpires,
	).Scan(&newID)
	if err != nil {
		return "", fmt.Errorf("failed to insert work order: %w", err)
	}
	return newID, nil
}

func (r *WorkOrderRepository) UpdateWorkOrder(ctx context.Context, tx pgx.Tx, id string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Update("work_orders").
		SetMap(fields).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return err
	}
	result, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update work order: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Child rows are never merged: the stored set is deleted and the
// incoming set inserted in its place, inside the caller's transaction.

func (r *WorkOrderRepository) ReplaceBorings(ctx context.Context, tx pgx.Tx, workOrderID string, rows []entities.WorkOrderBoring) error {
	if _, err := tx.Exec(ctx, `DELETE FROM wo_borings WHERE work_order_id = $1`, workOrderID); err != nil {
		return apperrors.NewPartialWriteError("wo_borings", err)
	}
	for i, b := range rows {
		if b.ID == "" {
			b.ID = uuid.NewString()
		}
		if b.Status == "" {
			b.Status = "planned"
		}
		_, err := tx.Exec(ctx, `
			INSERT INTO wo_borings (id, work_order_id, boring_id_label, boring_type, planned_depth, status, sort_order)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			b.ID, workOrderID, b.Label, b.BoringType, b.PlannedDepth, b.Status, i)
		if err != nil {
			return apperrors.NewPartialWriteError("wo_borings", err)
		}
	}
	return nil
}

func (r *WorkOrderRepository) ReplaceRateSchedule(ctx context.Context, tx pgx.Tx, workOrderID string, rows []entities.RateScheduleLine) error {
	if _, err := tx.Exec(ctx, `DELETE FROM wo_rate_schedule WHERE work_order_id = $1`, workOrderID); err != nil {
		return apperrors.NewPartialWriteError("wo_rate_schedule", err)
	}
	for i, l := range rows {
		if l.ID == "" {
			l.ID = uuid.NewString()
		}
		_, err := tx.Exec(ctx, `
			INSERT INTO wo_rate_schedule (id, work_order_id, billing_unit, rate, unit_label, estimated_quantity, sort_order)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			l.ID, workOrderID, l.BillingUnit, l.Rate, l.UnitLabel, l.EstimatedQty, i)
		if err != nil {
			return apperrors.NewPartialWriteError("wo_rate_schedule", err)
		}
	}
	return nil
}

func (r *WorkOrderRepository) ReplaceActivities(ctx context.Context, tx pgx.Tx, workOrderID string, rows []entities.WorkOrderActivity) error {
	if _, err := tx.Exec(ctx, `DELETE FROM wo_activities WHERE work_order_id = $1`, workOrderID); err != nil {
		return apperrors.NewPartialWriteError("wo_activities", err)
	}
	for i, a := range rows {
		if a.ID == "" {
			a.ID = uuid.NewString()
		}
		_, err := tx.Exec(ctx, `
			INSERT INTO wo_activities (id, work_order_id, name, description, sort_order)
			VALUES ($1, $2, $3, $4, $5)`,
			a.ID, workOrderID, a.Name, a.Description, i)
		if err != nil {
			return apperrors.NewPartialWriteError("wo_activities", err)
		}
	}
	return nil
}

// UpdateStatus writes the new status and stamps actual_start or
// actual_end only if they are not already set, so a rollback and
// re-entry keeps the first timestamp.
func (r *WorkOrderRepository) UpdateStatus(ctx context.Context, id string, status workflow.WorkOrderStatus, actualStart, actualEnd *time.Time) error {
	query := `
		UPDATE work_orders
		SET status = $1,
		    actual_start = COALESCE(actual_start, $2),
		    actual_end = COALESCE(actual_end, $3),
		    updated_at = NOW()
		WHERE id = $4
	`
	result, err := r.storage.Exec(ctx, query, string(status), actualStart, actualEnd, id)
	if err != nil {
		return fmt.Errorf("failed to update work order status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateAssignment writes rig, crew, window and (optionally) status in
// a single statement, so a failed assignment never leaves the order
// half-moved.
func (r *WorkOrderRepository) UpdateAssignment(ctx context.Context, id string, status *workflow.WorkOrderStatus, rigID, crewID *string, start, end *time.Time) error {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	builder := psql.Update("work_orders").
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id})
	if status != nil {
		builder = builder.Set("status", string(*status))
	}
	if rigID != nil {
		builder = builder.Set("assigned_rig_id", *rigID)
	}
	if crewID != nil {
		builder = builder.Set("assigned_crew_id", *crewID)
	}
	if start != nil {
		builder = builder.Set("scheduled_start", *start)
	}
	if end != nil {
		builder = builder.Set("scheduled_end", *end)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return err
	}
	result, err := r.storage.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update assignment: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// NextWONumber issues WO-<year>-<seq>, counting inside the caller's
// transaction so two simultaneous creates cannot take the same number.
func (r *WorkOrderRepository) NextWONumber(ctx context.Context, tx pgx.Tx, year int) (string, error) {
	var count uint64
	err := tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM work_orders WHERE wo_number LIKE $1`,
		fmt.Sprintf("WO-%d-%%", year),
	).Scan(&count)
	if err != nil {
		return "", fmt.Errorf("failed to number work order: %w", err)
	}
	return fmt.Sprintf("WO-%d-%03d", year, count+1), nil
}

func (r *WorkOrderRepository) DeleteWorkOrder(ctx context.Context, id string) error {
	result, err := r.storage.Exec(ctx, `DELETE FROM work_orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete work order: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
