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

type StaffRepositoryInterface interface {
	GetStaff(ctx context.Context, role string) ([]entities.Staff, error)
	FindStaff(ctx context.Context, id string) (*entities.Staff, error)
	FindByEmail(ctx context.Context, email string) (*entities.Staff, error)
	CreateStaff(ctx context.Context, member entities.Staff) (string, error)
	UpdateStaff(ctx context.Context, id string, fields map[string]interface{}) error
	DeleteStaff(ctx context.Context, id string) error
}

type StaffRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewStaffRepository(storage *pgxpool.Pool, logger *zap.Logger) StaffRepositoryInterface {
	return &StaffRepository{storage: storage, logger: logger}
}

const staffColumns = `id, org_id, first_name, last_name, email, role, password_hash, active, created_at, updated_at`

func scanStaff(row pgx.Row) (*entities.Staff, error) {
	var s entities.Staff
	var passwordHash sql.NullString
	err := row.Scan(&s.ID, &s.OrgID, &s.FirstName, &s.LastName, &s.Email, &s.Role, &passwordHash, &s.Active, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan staff member: %w", err)
	}
	s.PasswordHash = passwordHash.String
	return &s, nil
}

func (r *StaffRepository) GetStaff(ctx context.Context, role string) ([]entities.Staff, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	builder := psql.Select(staffColumns).From("staff_members").OrderBy("last_name", "first_name")
	if role != "" {
		builder = builder.Where(sq.Eq{"role": role})
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list staff: %w", err)
	}
	defer rows.Close()

	members := make([]entities.Staff, 0)
	for rows.Next() {
		member, err := scanStaff(rows)
		if err != nil {
			return nil, err
		}
		members = append(members, *member)
	}
	return members, rows.Err()
}

func (r *StaffRepository) FindStaff(ctx context.Context, id string) (*entities.Staff, error) {
	return scanStaff(r.storage.QueryRow(ctx,
		fmt.Sprintf(`SELECT %s FROM staff_members WHERE id = $1`, staffColumns), id))
}

func (r *StaffRepository) FindByEmail(ctx context.Context, email string) (*entities.Staff, error) {
	return scanStaff(r.storage.QueryRow(ctx,
		fmt.Sprintf(`SELECT %s FROM staff_members WHERE LOWER(email) = LOWER($1)`, staffColumns), email))
}

func (r *StaffRepository) CreateStaff(ctx context.Context, member entities.Staff) (string, error) {
	if member.ID == "" {
		member.ID = uuid.NewString()
	}
	var newID string
	err := r.storage.QueryRow(ctx, `
		INSERT INTO staff_members (id, org_id, first_name, last_name, email, role, password_hash, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING id`,
		member.ID, member.OrgID, member.FirstName, member.LastName,
		member.Email, member.Role, member.PasswordHash, member.Active,
	).Scan(&newID)
	if err != nil {
		return "", fmt.Errorf("failed to insert staff member: %w", err)
	}
	return newID, nil
}

func (r *StaffRepository) UpdateStaff(ctx context.Context, id string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Update("staff_members").
		SetMap(fields).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return err
	}
	result, err := r.storage.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update staff member: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *StaffRepository) DeleteStaff(ctx context.Context, id string) error {
	result, err := r.storage.Exec(ctx, `DELETE FROM staff_members WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete staff member: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
