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

type CrewRepositoryInterface interface {
	GetCrews(ctx context.Context) ([]entities.Crew, error)
	FindCrew(ctx context.Context, id string) (*entities.Crew, error)
	CreateCrew(ctx context.Context, crew entities.Crew) (string, error)
	UpdateCrew(ctx context.Context, id string, fields map[string]interface{}) error
	DeleteCrew(ctx context.Context, id string) error
}

type CrewRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewCrewRepository(storage *pgxpool.Pool, logger *zap.Logger) CrewRepositoryInterface {
	return &CrewRepository{storage: storage, logger: logger}
}

func scanCrew(row pgx.Row) (*entities.Crew, error) {
	var crew entities.Crew
	var leadID, leadName sql.NullString
	err := row.Scan(&crew.ID, &crew.OrgID, &crew.Name, &leadID, &crew.CreatedAt, &crew.UpdatedAt, &leadName)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan crew: %w", err)
	}
	if leadID.Valid {
		crew.LeadID = &leadID.String
	}
	crew.LeadName = leadName.String
	return &crew, nil
}

const crewSelect = `
	SELECT c.id, c.org_id, c.name, c.lead_id, c.created_at, c.updated_at,
	       COALESCE(s.first_name || ' ' || s.last_name, '')
	FROM crews c
	LEFT JOIN staff_members s ON c.lead_id = s.id`

func (r *CrewRepository) GetCrews(ctx context.Context) ([]entities.Crew, error) {
	rows, err := r.storage.Query(ctx, crewSelect+` ORDER BY c.name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list crews: %w", err)
	}
	defer rows.Close()

	crews := make([]entities.Crew, 0)
	for rows.Next() {
		crew, err := scanCrew(rows)
		if err != nil {
			return nil, err
		}
		crews = append(crews, *crew)
	}
	return crews, rows.Err()
}

func (r *CrewRepository) FindCrew(ctx context.Context, id string) (*entities.Crew, error) {
	return scanCrew(r.storage.QueryRow(ctx, crewSelect+` WHERE c.id = $1`, id))
}

func (r *CrewRepository) CreateCrew(ctx context.Context, crew entities.Crew) (string, error) {
	if crew.ID == "" {
		crew.ID = uuid.NewString()
	}
	var newID string
	err := r.storage.QueryRow(ctx, `
		INSERT INTO crews (id, org_id, name, lead_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id`,
		crew.ID, crew.OrgID, crew.Name, crew.LeadID,
	).Scan(&newID)
	if err != nil {
		return "", fmt.Errorf("failed to insert crew: %w", err)
	}
	return newID, nil
}

func (r *CrewRepository) UpdateCrew(ctx context.Context, id string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Update("crews").
		SetMap(fields).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return err
	}
	result, err := r.storage.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update crew: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *CrewRepository) DeleteCrew(ctx context.Context, id string) error {
	result, err := r.storage.Exec(ctx, `DELETE FROM crews WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete crew: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
