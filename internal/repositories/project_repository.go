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

type ProjectRepositoryInterface interface {
	GetProjects(ctx context.Context) ([]entities.Project, error)
	FindProject(ctx context.Context, id string) (*entities.Project, error)
	CreateProject(ctx context.Context, project entities.Project) (string, error)
	UpdateProject(ctx context.Context, id string, fields map[string]interface{}) error
	DeleteProject(ctx context.Context, id string) error
}

type ProjectRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewProjectRepository(storage *pgxpool.Pool, logger *zap.Logger) ProjectRepositoryInterface {
	return &ProjectRepository{storage: storage, logger: logger}
}

const projectColumns = `id, org_id, name, project_number, client_name, location, lat, lng, created_at, updated_at`

func scanProject(row pgx.Row) (*entities.Project, error) {
	var p entities.Project
	var projectNumber, clientName, location sql.NullString
	var lat, lng sql.NullFloat64
	err := row.Scan(&p.ID, &p.OrgID, &p.Name, &projectNumber, &clientName, &location, &lat, &lng, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan project: %w", err)
	}
	p.ProjectNumber = projectNumber.String
	p.ClientName = clientName.String
	p.Location = location.String
	if lat.Valid {
		p.Lat = &lat.Float64
	}
	if lng.Valid {
		p.Lng = &lng.Float64
	}
	return &p, nil
}

func (r *ProjectRepository) GetProjects(ctx context.Context) ([]entities.Project, error) {
	rows, err := r.storage.Query(ctx,
		fmt.Sprintf(`SELECT %s FROM projects ORDER BY name`, projectColumns))
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	projects := make([]entities.Project, 0)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, *p)
	}
	return projects, rows.Err()
}

func (r *ProjectRepository) FindProject(ctx context.Context, id string) (*entities.Project, error) {
	return scanProject(r.storage.QueryRow(ctx,
		fmt.Sprintf(`SELECT %s FROM projects WHERE id = $1`, projectColumns), id))
}

func (r *ProjectRepository) CreateProject(ctx context.Context, project entities.Project) (string, error) {
	if project.ID == "" {
		project.ID = uuid.NewString()
	}
	var newID string
	err := r.storage.QueryRow(ctx, `
		INSERT INTO projects (id, org_id, name, project_number, client_name, location, lat, lng, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING id`,
		project.ID, project.OrgID, project.Name, project.ProjectNumber,
		project.ClientName, project.Location, project.Lat, project.Lng,
	).Scan(&newID)
	if err != nil {
		return "", fmt.Errorf("failed to insert project: %w", err)
	}
	return newID, nil
}

func (r *ProjectRepository) UpdateProject(ctx context.Context, id string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Update("projects").
		SetMap(fields).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return err
	}
	result, err := r.storage.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *ProjectRepository) DeleteProject(ctx context.Context, id string) error {
	result, err := r.storage.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
