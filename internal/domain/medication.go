package domain

import "time"

// MedicationCategory groups medications for display.
type MedicationCategory struct {
	ID        string
	Name      string
	Color     *string
	Icon      *string
	SortOrder int
	CreatedAt time.Time
}

// Medication is one catalog entry of the pharmacopoeia.
type Medication struct {
	ID                string
	CategoryID        *string
	CategoryName      *string
	Name              string
	Dosage            *string
	Duration          *string
	Effects           *string
	SideEffects       *string
	Contraindications *string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
