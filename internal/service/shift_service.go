package service

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spades-ems/portal/internal/domain"
	"github.com/spades-ems/portal/internal/repository"
	"github.com/spades-ems/portal/pkg/util"
)

// maxShiftDuration guards against forgotten clock-outs.
const maxShiftDuration = 24 * time.Hour

// ShiftService handles duty declarations and payroll aggregation.
type ShiftService struct {
	shifts    repository.ShiftRepository
	employees repository.EmployeeRepository
}

// NewShiftService constructs the service.
func NewShiftService(shifts repository.ShiftRepository, employees repository.EmployeeRepository) *ShiftService {
	return &ShiftService{shifts: shifts, employees: employees}
}

// Declare records one duty period for the actor. Pay is computed from
// the actor's grade and clamped so the ISO week total never exceeds the
// grade's weekly cap. The shift is attributed to the week its start
// time falls in.
func (s *ShiftService) Declare(ctx context.Context, actor *domain.Employee, start, end time.Time) (*domain.Shift, error) {
	if !end.After(start) {
		return nil, util.NewValidationError("end time must be after start time", nil)
	}
	if end.Sub(start) > maxShiftDuration {
		return nil, util.NewValidationError("shift exceeds 24 hours", nil)
	}

	pay, ok := domain.PayScale[actor.Grade]
	if !ok {
		return nil, util.NewValidationError("no pay scale for grade", map[string]any{"grade": actor.Grade})
	}

	year, week := start.ISOWeek()
	minutes := int(end.Sub(start).Minutes())
	earned := minutes * pay.HourlyWage / 60

	_, alreadyEarned, err := s.shifts.WeekTotals(ctx, actor.DiscordID, year, week)
	if err != nil {
		return nil, util.MapError(err)
	}
	remaining := pay.WeeklyCap - alreadyEarned
	if remaining < 0 {
		remaining = 0
	}
	if earned > remaining {
		earned = remaining
	}

	shift := &domain.Shift{
		EmployeeDiscordID: actor.DiscordID,
		EmployeeName:      actor.Name,
		StartTime:         start,
		EndTime:           end,
		DurationMinutes:   minutes,
		WeekNumber:        week,
		Year:              year,
		SalaryEarned:      earned,
	}
	if err := s.shifts.Create(ctx, shift); err != nil {
		return nil, util.MapError(err)
	}
	return shift, nil
}

// History returns the actor's recent shifts.
func (s *ShiftService) History(ctx context.Context, discordID string, limit int) ([]domain.Shift, error) {
	shifts, err := s.shifts.ListByEmployee(ctx, discordID, limit)
	if err != nil {
		return nil, util.MapError(err)
	}
	return shifts, nil
}

// Payroll aggregates every employee's totals for one ISO week.
func (s *ShiftService) Payroll(ctx context.Context, year, week int) ([]domain.PayrollLine, error) {
	totals, err := s.shifts.PayrollForWeek(ctx, year, week)
	if err != nil {
		return nil, util.MapError(err)
	}

	lines := make([]domain.PayrollLine, 0, len(totals))
	for _, total := range totals {
		line := domain.PayrollLine{
			EmployeeDiscordID: total.EmployeeDiscordID,
			EmployeeName:      total.EmployeeName,
			TotalMinutes:      total.TotalMinutes,
			TotalSalary:       total.TotalSalary,
		}
		emp, err := s.employees.GetByDiscordID(ctx, total.EmployeeDiscordID)
		if err != nil && err != pgx.ErrNoRows {
			return nil, util.MapError(err)
		}
		if emp != nil {
			line.Grade = emp.Grade
			if pay, ok := domain.PayScale[emp.Grade]; ok {
				line.WeeklyCap = pay.WeeklyCap
			}
		}
		lines = append(lines, line)
	}
	return lines, nil
}
