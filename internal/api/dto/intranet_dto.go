package dto

import (
	"time"

	"github.com/spades-ems/portal/internal/domain"
)

// PatientRequest payload.
type PatientRequest struct {
	FirstName        string  `json:"first_name"`
	LastName         string  `json:"last_name"`
	BirthDate        string  `json:"birth_date"`
	Fingerprint      string  `json:"fingerprint"`
	Phone            *string `json:"phone"`
	DiscordID        *string `json:"discord_id"`
	PhotoURL         *string `json:"photo_url"`
	Address          *string `json:"address"`
	BloodType        *string `json:"blood_type"`
	Allergies        *string `json:"allergies"`
	MedicalHistory   *string `json:"medical_history"`
	EmergencyContact *string `json:"emergency_contact"`
	EmergencyPhone   *string `json:"emergency_phone"`
	Notes            *string `json:"notes"`
}

// PatientResponse describes one medical record.
type PatientResponse struct {
	ID               string     `json:"id"`
	FirstName        string     `json:"first_name"`
	LastName         string     `json:"last_name"`
	BirthDate        string     `json:"birth_date"`
	Fingerprint      string     `json:"fingerprint"`
	Phone            *string    `json:"phone"`
	DiscordID        *string    `json:"discord_id"`
	PhotoURL         *string    `json:"photo_url"`
	Address          *string    `json:"address"`
	BloodType        *string    `json:"blood_type"`
	Allergies        *string    `json:"allergies"`
	MedicalHistory   *string    `json:"medical_history"`
	EmergencyContact *string    `json:"emergency_contact"`
	EmergencyPhone   *string    `json:"emergency_phone"`
	Notes            *string    `json:"notes"`
	DeletedAt        *time.Time `json:"deleted_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// CareCategoryRequest payload.
type CareCategoryRequest struct {
	Name      string `json:"name"`
	SortOrder int    `json:"sort_order"`
}

// CareCategoryResponse describes one grid section.
type CareCategoryResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	SortOrder int    `json:"sort_order"`
}

// CareTypeRequest payload.
type CareTypeRequest struct {
	CategoryID  string  `json:"category_id"`
	Name        string  `json:"name"`
	Price       int     `json:"price"`
	Description *string `json:"description"`
}

// CareTypeResponse describes one billed act.
type CareTypeResponse struct {
	ID           string  `json:"id"`
	CategoryID   string  `json:"category_id"`
	CategoryName string  `json:"category_name"`
	Name         string  `json:"name"`
	Price        int     `json:"price"`
	Description  *string `json:"description"`
}

// MedicationCategoryRequest payload.
type MedicationCategoryRequest struct {
	Name      string  `json:"name"`
	Color     *string `json:"color"`
	Icon      *string `json:"icon"`
	SortOrder int     `json:"sort_order"`
}

// MedicationCategoryResponse describes one catalog section.
type MedicationCategoryResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Color     *string `json:"color"`
	Icon      *string `json:"icon"`
	SortOrder int     `json:"sort_order"`
}

// MedicationRequest payload.
type MedicationRequest struct {
	CategoryID        *string `json:"category_id"`
	Name              string  `json:"name"`
	Dosage            *string `json:"dosage"`
	Duration          *string `json:"duration"`
	Effects           *string `json:"effects"`
	SideEffects       *string `json:"side_effects"`
	Contraindications *string `json:"contraindications"`
}

// MedicationResponse describes one catalog entry.
type MedicationResponse struct {
	ID                string  `json:"id"`
	CategoryID        *string `json:"category_id"`
	CategoryName      *string `json:"category_name"`
	Name              string  `json:"name"`
	Dosage            *string `json:"dosage"`
	Duration          *string `json:"duration"`
	Effects           *string `json:"effects"`
	SideEffects       *string `json:"side_effects"`
	Contraindications *string `json:"contraindications"`
}

// WikiArticleRequest payload.
type WikiArticleRequest struct {
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Content     string `json:"content"`
	Category    string `json:"category"`
	SortOrder   int    `json:"sort_order"`
	IsPublished bool   `json:"is_published"`
}

// WikiReorderRequest payload for bulk position updates.
type WikiReorderRequest struct {
	Articles []WikiOrderEntry `json:"articles"`
}

// WikiOrderEntry pairs an article id with its new position.
type WikiOrderEntry struct {
	ID        string `json:"id"`
	SortOrder int    `json:"sort_order"`
}

// WikiArticleResponse describes one page.
type WikiArticleResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Content     string    `json:"content,omitempty"`
	Category    string    `json:"category"`
	SortOrder   int       `json:"sort_order"`
	IsPublished bool      `json:"is_published"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// DeclareShiftRequest payload.
type DeclareShiftRequest struct {
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

// ShiftResponse describes one duty period.
type ShiftResponse struct {
	ID              string    `json:"id"`
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	DurationMinutes int       `json:"duration_minutes"`
	WeekNumber      int       `json:"week_number"`
	Year            int       `json:"year"`
	SalaryEarned    int       `json:"salary_earned"`
}

// PayrollLineResponse is one row of the weekly payroll report.
type PayrollLineResponse struct {
	EmployeeDiscordID string       `json:"employee_discord_id"`
	EmployeeName      string       `json:"employee_name"`
	Grade             domain.Grade `json:"grade"`
	TotalMinutes      int          `json:"total_minutes"`
	TotalSalary       int          `json:"total_salary"`
	WeeklyCap         int          `json:"weekly_cap"`
}

// ScheduleReminderRequest payload.
type ScheduleReminderRequest struct {
	Delay   string `json:"delay"`
	Message string `json:"message"`
}

// ReminderResponse describes one pending reminder.
type ReminderResponse struct {
	ID      string    `json:"id"`
	Message string    `json:"message"`
	FiresAt time.Time `json:"fires_at"`
}

// AuditLogResponse is one change record.
type AuditLogResponse struct {
	ID             string             `json:"id"`
	ActorDiscordID string             `json:"actor_discord_id"`
	ActorName      *string            `json:"actor_name"`
	ActorGrade     *string            `json:"actor_grade"`
	Action         domain.AuditAction `json:"action"`
	TableName      string             `json:"table_name"`
	RecordID       *string            `json:"record_id"`
	OldData        map[string]any     `json:"old_data"`
	NewData        map[string]any     `json:"new_data"`
	CreatedAt      time.Time          `json:"created_at"`
}
