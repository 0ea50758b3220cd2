package domain

import "time"

// Patient is a medical record subject. Records are soft-deleted so the
// audit trail can reference them after removal.
type Patient struct {
	ID               string
	FirstName        string
	LastName         string
	BirthDate        string
	Fingerprint      string
	Phone            *string
	DiscordID        *string
	PhotoURL         *string
	Address          *string
	BloodType        *string
	Allergies        *string
	MedicalHistory   *string
	EmergencyContact *string
	EmergencyPhone   *string
	Notes            *string
	DeletedAt        *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
