package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"drilltrack/internal/entities"
	apperrors "drilltrack/pkg/errors"
)

type RigRepositoryInterface interface {
	GetRigs(ctx context.Context, activeOnly bool) ([]entities.Rig, error)
	FindRig(ctx context.Context, id string) (*entities.Rig, error)
	CreateRig(ctx context.Context, rig entities.Rig) (string, error)
	UpdateRig(ctx context.Context, id string, fields map[string]interface{}) error
	DeleteRig(ctx context.Context, id string) error
}

type RigRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewRigRepository(storage *pgxpool.Pool, logger *zap.Logger) RigRepositoryInterface {
	return &RigRepository{storage: storage, logger: logger}
}

func scanRig(row pgx.Row) (*entities.Rig, error) {
	var rig entities.Rig
	var rigType sql.NullString
	err := row.Scan(&rig.ID, &rig.OrgID, &rig.Name, &rigType, &rig.Status, &rig.Active, &rig.CreatedAt, &rig.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan rig: %w", err)
	}
	rig.RigType = rigType.String
	return &rig, nil
}

func (r *RigRepository) GetRigs(ctx context.Context, activeOnly bool) ([]entities.Rig, error) {
	query := `SELECT id, org_id, name, rig_type, status, active, created_at, updated_at FROM rigs`
	if activeOnly {
		query += ` WHERE active`
	}
	query += ` ORDER BY name`

	rows, err := r.storage.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list rigs: %w", err)
	}
	defer rows.Close()

	rigs := make([]entities.Rig, 0)
	for rows.Next() {
		rig, err := scanRig(rows)
		if err != nil {
			return nil, err
		}
		rigs = append(rigs, *rig)
	}
	return rigs, rows.Err()
}

func (r *RigRepository) FindRig(ctx context.Context, id string) (*entities.Rig, error) {
	return scanRig(r.storage.QueryRow(ctx,
		`SELECT id, org_id, name, rig_type, status, active, created_at, updated_at FROM rigs WHERE id = $1`, id))
}

func (r *RigRepository) CreateRig(ctx context.Context, rig entities.Rig) (string, error) {
	if rig.ID == "" {
		rig.ID = uuid.NewString()
	}
	var newID string
	err := r.storage.QueryRow(ctx, `
		INSERT INTO rigs (id, org_id, name, rig_type, status, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id`,
		rig.ID, rig.OrgID, rig.Name, rig.RigType, rig.Status, rig.Active,
	).Scan(&newID)
	if err != nil {
		return "", fmt.Errorf("failed to insert rig: %w", err)
	}
	return newID, nil
}

func (r *RigRepository) UpdateRig(ctx context.Context, id string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Update("rigs").
		SetMap(fields).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return err
	}
	result, err := r.storage.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update rig: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *RigRepository) DeleteRig(ctx context.Context, id string) error {
	result, err := r.storage.Exec(ctx, `DELETE FROM rigs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete rig: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
