package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/spades-ems/portal/internal/domain"
)

// EmployeeRepository manages staff accounts.
type EmployeeRepository interface {
	Create(ctx context.Context, emp *domain.Employee) error
	Update(ctx context.Context, emp *domain.Employee) error
	GetByID(ctx context.Context, id string) (*domain.Employee, error)
	GetByEmail(ctx context.Context, email string) (*domain.Employee, error)
	GetByDiscordID(ctx context.Context, discordID string) (*domain.Employee, error)
	List(ctx context.Context, includeInactive bool) ([]domain.Employee, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}

type employeeRepository struct {
	db DB
}

// NewEmployeeRepository builds repository.
func NewEmployeeRepository(db DB) EmployeeRepository {
	return &employeeRepository{db: db}
}

const employeeColumns = `id, discord_id, name, email, password_hash, grade, active_flag, created_at, updated_at`

func (r *employeeRepository) Create(ctx context.Context, emp *domain.Employee) error {
	const query = `
        INSERT INTO employees (discord_id, name, email, password_hash, grade, active_flag)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`
	return r.db.QueryRow(ctx, query,
		emp.DiscordID,
		emp.Name,
		emp.Email,
		emp.PasswordHash,
		emp.Grade,
		emp.Active,
	).Scan(&emp.ID, &emp.CreatedAt, &emp.UpdatedAt)
}

func (r *employeeRepository) Update(ctx context.Context, emp *domain.Employee) error {
	const query = `
        UPDATE employees SET name=$1, email=$2, grade=$3, active_flag=$4, updated_at=NOW()
        WHERE id=$5`
	cmd, err := r.db.Exec(ctx, query, emp.Name, emp.Email, emp.Grade, emp.Active, emp.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *employeeRepository) GetByID(ctx context.Context, id string) (*domain.Employee, error) {
	return r.fetchSingle(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id=$1`, id)
}

func (r *employeeRepository) GetByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	return r.fetchSingle(ctx, `SELECT `+employeeColumns+` FROM employees WHERE email=$1`, email)
}

func (r *employeeRepository) GetByDiscordID(ctx context.Context, discordID string) (*domain.Employee, error) {
	return r.fetchSingle(ctx, `SELECT `+employeeColumns+` FROM employees WHERE discord_id=$1`, discordID)
}

func (r *employeeRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Employee, error) {
	var emp domain.Employee
	if err := r.db.QueryRow(ctx, query, arg).Scan(
		&emp.ID,
		&emp.DiscordID,
		&emp.Name,
		&emp.Email,
		&emp.PasswordHash,
		&emp.Grade,
		&emp.Active,
		&emp.CreatedAt,
		&emp.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &emp, nil
}

func (r *employeeRepository) List(ctx context.Context, includeInactive bool) ([]domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees`
	if !includeInactive {
		query += ` WHERE active_flag=TRUE`
	}
	query += ` ORDER BY name ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Employee
	for rows.Next() {
		var emp domain.Employee
		if err := rows.Scan(
			&emp.ID,
			&emp.DiscordID,
			&emp.Name,
			&emp.Email,
			&emp.PasswordHash,
			&emp.Grade,
			&emp.Active,
			&emp.CreatedAt,
			&emp.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, emp)
	}
	return result, rows.Err()
}

func (r *employeeRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	const query = `UPDATE employees SET password_hash=$1, updated_at=NOW() WHERE id=$2`
	cmd, err := r.db.Exec(ctx, query, passwordHash, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
