package repository

import (
	"context"

	"github.com/spades-ems/portal/internal/domain"
)

// WeeklyTotal aggregates an employee's minutes and pay within one ISO week.
type WeeklyTotal struct {
	EmployeeDiscordID string
	EmployeeName      string
	TotalMinutes      int
	TotalSalary       int
}

// ShiftRepository manages declared duty periods.
type ShiftRepository interface {
	Create(ctx context.Context, shift *domain.Shift) error
	ListByEmployee(ctx context.Context, discordID string, limit int) ([]domain.Shift, error)
	// WeekTotals returns the minutes and salary already accumulated by one
	// employee in a given ISO week, for cap enforcement.
	WeekTotals(ctx context.Context, discordID string, year, week int) (int, int, error)
	// PayrollForWeek aggregates every employee's totals for the payroll report.
	PayrollForWeek(ctx context.Context, year, week int) ([]WeeklyTotal, error)
}

type shiftRepository struct {
	db DB
}

// NewShiftRepository builds repository.
func NewShiftRepository(db DB) ShiftRepository {
	return &shiftRepository{db: db}
}

func (r *shiftRepository) Create(ctx context.Context, shift *domain.Shift) error {
	const query = `
        INSERT INTO shifts (employee_discord_id, employee_name, start_time, end_time, duration_minutes, week_number, year, salary_earned)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id, created_at`
	return r.db.QueryRow(ctx, query,
		shift.EmployeeDiscordID,
		shift.EmployeeName,
		shift.StartTime,
		shift.EndTime,
		shift.DurationMinutes,
		shift.WeekNumber,
		shift.Year,
		shift.SalaryEarned,
	).Scan(&shift.ID, &shift.CreatedAt)
}

func (r *shiftRepository) ListByEmployee(ctx context.Context, discordID string, limit int) ([]domain.Shift, error) {
	if limit <= 0 {
		limit = 50
	}
	const query = `
        SELECT id, employee_discord_id, employee_name, start_time, end_time, duration_minutes, week_number, year, salary_earned, created_at
        FROM shifts WHERE employee_discord_id=$1 ORDER BY start_time DESC LIMIT $2`
	rows, err := r.db.Query(ctx, query, discordID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Shift
	for rows.Next() {
		var shift domain.Shift
		if err := rows.Scan(
			&shift.ID,
			&shift.EmployeeDiscordID,
			&shift.EmployeeName,
			&shift.StartTime,
			&shift.EndTime,
			&shift.DurationMinutes,
			&shift.WeekNumber,
			&shift.Year,
			&shift.SalaryEarned,
			&shift.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, shift)
	}
	return result, rows.Err()
}

func (r *shiftRepository) WeekTotals(ctx context.Context, discordID string, year, week int) (int, int, error) {
	const query = `
        SELECT COALESCE(SUM(duration_minutes),0), COALESCE(SUM(salary_earned),0)
        FROM shifts WHERE employee_discord_id=$1 AND year=$2 AND week_number=$3`
	var minutes, salary int
	if err := r.db.QueryRow(ctx, query, discordID, year, week).Scan(&minutes, &salary); err != nil {
		return 0, 0, err
	}
	return minutes, salary, nil
}

func (r *shiftRepository) PayrollForWeek(ctx context.Context, year, week int) ([]WeeklyTotal, error) {
	const query = `
        SELECT employee_discord_id, MAX(employee_name), COALESCE(SUM(duration_minutes),0), COALESCE(SUM(salary_earned),0)
        FROM shifts WHERE year=$1 AND week_number=$2
        GROUP BY employee_discord_id
        ORDER BY SUM(salary_earned) DESC`
	rows, err := r.db.Query(ctx, query, year, week)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []WeeklyTotal
	for rows.Next() {
		var total WeeklyTotal
		if err := rows.Scan(
			&total.EmployeeDiscordID,
			&total.EmployeeName,
			&total.TotalMinutes,
			&total.TotalSalary,
		); err != nil {
			return nil, err
		}
		result = append(result, total)
	}
	return result, rows.Err()
}
