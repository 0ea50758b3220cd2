package service

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spades-ems/portal/internal/domain"
	"github.com/spades-ems/portal/internal/repository"
)

type fakeShiftRepo struct {
	shifts []domain.Shift
}

func (f *fakeShiftRepo) Create(_ context.Context, shift *domain.Shift) error {
	shift.ID = "shift-1"
	shift.CreatedAt = time.Now()
	f.shifts = append(f.shifts, *shift)
	return nil
}

func (f *fakeShiftRepo) ListByEmployee(_ context.Context, discordID string, _ int) ([]domain.Shift, error) {
	var result []domain.Shift
	for _, shift := range f.shifts {
		if shift.EmployeeDiscordID == discordID {
			result = append(result, shift)
		}
	}
	return result, nil
}

func (f *fakeShiftRepo) WeekTotals(_ context.Context, discordID string, year, week int) (int, int, error) {
	minutes, salary := 0, 0
	for _, shift := range f.shifts {
		if shift.EmployeeDiscordID == discordID && shift.Year == year && shift.WeekNumber == week {
			minutes += shift.DurationMinutes
			salary += shift.SalaryEarned
		}
	}
	return minutes, salary, nil
}

func (f *fakeShiftRepo) PayrollForWeek(_ context.Context, year, week int) ([]repository.WeeklyTotal, error) {
	totals := map[string]*repository.WeeklyTotal{}
	var order []string
	for _, shift := range f.shifts {
		if shift.Year != year || shift.WeekNumber != week {
			continue
		}
		entry, ok := totals[shift.EmployeeDiscordID]
		if !ok {
			entry = &repository.WeeklyTotal{EmployeeDiscordID: shift.EmployeeDiscordID, EmployeeName: shift.EmployeeName}
			totals[shift.EmployeeDiscordID] = entry
			order = append(order, shift.EmployeeDiscordID)
		}
		entry.TotalMinutes += shift.DurationMinutes
		entry.TotalSalary += shift.SalaryEarned
	}
	var result []repository.WeeklyTotal
	for _, id := range order {
		result = append(result, *totals[id])
	}
	return result, nil
}

type fakeEmployeeRepo struct {
	byDiscordID map[string]domain.Employee
}

func (f *fakeEmployeeRepo) Create(context.Context, *domain.Employee) error { return nil }
func (f *fakeEmployeeRepo) Update(context.Context, *domain.Employee) error { return nil }
func (f *fakeEmployeeRepo) GetByID(context.Context, string) (*domain.Employee, error) {
	return nil, pgx.ErrNoRows
}
func (f *fakeEmployeeRepo) GetByEmail(context.Context, string) (*domain.Employee, error) {
	return nil, pgx.ErrNoRows
}
func (f *fakeEmployeeRepo) GetByDiscordID(_ context.Context, discordID string) (*domain.Employee, error) {
	emp, ok := f.byDiscordID[discordID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &emp, nil
}
func (f *fakeEmployeeRepo) List(context.Context, bool) ([]domain.Employee, error) { return nil, nil }
func (f *fakeEmployeeRepo) UpdatePassword(context.Context, string, string) error  { return nil }

func newShiftFixture() (*ShiftService, *fakeShiftRepo, *fakeEmployeeRepo) {
	shifts := &fakeShiftRepo{}
	employees := &fakeEmployeeRepo{byDiscordID: map[string]domain.Employee{}}
	return NewShiftService(shifts, employees), shifts, employees
}

func TestDeclareComputesPayAndWeek(t *testing.T) {
	svc, _, _ := newShiftFixture()
	actor := medecin()

	// Friday of ISO week 2, 2026.
	start := time.Date(2026, 1, 9, 20, 0, 0, 0, time.UTC)
	end := start.Add(3 * time.Hour)

	shift, err := svc.Declare(context.Background(), actor, start, end)
	require.NoError(t, err)
	assert.Equal(t, 180, shift.DurationMinutes)
	assert.Equal(t, 2026, shift.Year)
	assert.Equal(t, 2, shift.WeekNumber)
	assert.Equal(t, 3*900, shift.SalaryEarned)
}

func TestDeclareClampsToWeeklyCap(t *testing.T) {
	svc, shifts, _ := newShiftFixture()
	actor := medecin()

	start := time.Date(2026, 1, 9, 8, 0, 0, 0, time.UTC)
	year, week := start.ISOWeek()
	shifts.shifts = append(shifts.shifts, domain.Shift{
		EmployeeDiscordID: actor.DiscordID,
		EmployeeName:      actor.Name,
		DurationMinutes:   600,
		Year:              year,
		WeekNumber:        week,
		SalaryEarned:      99500,
	})

	shift, err := svc.Declare(context.Background(), actor, start, start.Add(2*time.Hour))
	require.NoError(t, err)
	// cap 100000 - 99500 already earned leaves 500, not the full 1800.
	assert.Equal(t, 500, shift.SalaryEarned)
}

func TestDeclareAtCapEarnsNothing(t *testing.T) {
	svc, shifts, _ := newShiftFixture()
	actor := medecin()

	start := time.Date(2026, 1, 9, 8, 0, 0, 0, time.UTC)
	year, week := start.ISOWeek()
	shifts.shifts = append(shifts.shifts, domain.Shift{
		EmployeeDiscordID: actor.DiscordID,
		Year:              year,
		WeekNumber:        week,
		SalaryEarned:      100000,
	})

	shift, err := svc.Declare(context.Background(), actor, start, start.Add(time.Hour))
	require.NoError(t, err)
	assert.Zero(t, shift.SalaryEarned)
	assert.Equal(t, 60, shift.DurationMinutes)
}

func TestDeclareRejectsInvertedRange(t *testing.T) {
	svc, _, _ := newShiftFixture()
	start := time.Date(2026, 1, 9, 8, 0, 0, 0, time.UTC)

	_, err := svc.Declare(context.Background(), medecin(), start, start.Add(-time.Hour))
	assertDomainCode(t, err, "VALIDATION_FAILED", 400)

	_, err = svc.Declare(context.Background(), medecin(), start, start)
	assertDomainCode(t, err, "VALIDATION_FAILED", 400)
}

func TestDeclareRejectsMarathonShift(t *testing.T) {
	svc, _, _ := newShiftFixture()
	start := time.Date(2026, 1, 9, 8, 0, 0, 0, time.UTC)

	_, err := svc.Declare(context.Background(), medecin(), start, start.Add(25*time.Hour))
	assertDomainCode(t, err, "VALIDATION_FAILED", 400)
}

func TestDeclareWeekAttributionFollowsStart(t *testing.T) {
	svc, _, _ := newShiftFixture()

	// Sunday 23:00 to Monday 01:00 straddles an ISO week boundary.
	start := time.Date(2026, 1, 11, 23, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)

	shift, err := svc.Declare(context.Background(), medecin(), start, end)
	require.NoError(t, err)
	startYear, startWeek := start.ISOWeek()
	assert.Equal(t, startYear, shift.Year)
	assert.Equal(t, startWeek, shift.WeekNumber)
}

func TestPayrollEnrichesGradeAndCap(t *testing.T) {
	svc, shifts, employees := newShiftFixture()
	employees.byDiscordID["901"] = *medecin()

	shifts.shifts = append(shifts.shifts,
		domain.Shift{EmployeeDiscordID: "901", EmployeeName: "Paul Girard", Year: 2026, WeekNumber: 2, DurationMinutes: 300, SalaryEarned: 4500},
		domain.Shift{EmployeeDiscordID: "777", EmployeeName: "Parti Depuis", Year: 2026, WeekNumber: 2, DurationMinutes: 60, SalaryEarned: 625},
	)

	lines, err := svc.Payroll(context.Background(), 2026, 2)
	require.NoError(t, err)
	require.Len(t, lines, 2)

	assert.Equal(t, domain.GradeMedecin, lines[0].Grade)
	assert.Equal(t, 100000, lines[0].WeeklyCap)
	assert.Equal(t, 4500, lines[0].TotalSalary)

	// Unknown employee keeps totals but has no grade to report.
	assert.Empty(t, string(lines[1].Grade))
	assert.Zero(t, lines[1].WeeklyCap)
}
