package domain

import "time"

// GradePay holds the hourly wage and weekly salary cap for a grade.
type GradePay struct {
	HourlyWage int
	WeeklyCap  int
}

// PayScale maps grades to their compensation parameters.
var PayScale = map[Grade]GradePay{
	GradeDirection:   {HourlyWage: 1100, WeeklyCap: 150000},
	GradeChirurgien:  {HourlyWage: 1000, WeeklyCap: 120000},
	GradeMedecin:     {HourlyWage: 900, WeeklyCap: 100000},
	GradeInfirmier:   {HourlyWage: 700, WeeklyCap: 85000},
	GradeAmbulancier: {HourlyWage: 625, WeeklyCap: 80000},
}

// Shift is one declared duty period, attributed to an ISO week for payroll.
type Shift struct {
	ID                string
	EmployeeDiscordID string
	EmployeeName      string
	StartTime         time.Time
	EndTime           time.Time
	DurationMinutes   int
	WeekNumber        int
	Year              int
	SalaryEarned      int
	CreatedAt         time.Time
}

// PayrollLine summarizes one employee's week in the payroll report.
type PayrollLine struct {
	EmployeeDiscordID string
	EmployeeName      string
	Grade             Grade
	TotalMinutes      int
	TotalSalary       int
	WeeklyCap         int
}
