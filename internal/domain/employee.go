package domain

import "time"

// Grade enumerates EMS ranks, highest first.
type Grade string

const (
	GradeDirection   Grade = "direction"
	GradeChirurgien  Grade = "chirurgien"
	GradeMedecin     Grade = "medecin"
	GradeInfirmier   Grade = "infirmier"
	GradeAmbulancier Grade = "ambulancier"
)

// GradeHierarchy lists grades in descending order of seniority.
var GradeHierarchy = []Grade{GradeDirection, GradeChirurgien, GradeMedecin, GradeInfirmier, GradeAmbulancier}

// IsValid reports whether the grade belongs to the known hierarchy.
func (g Grade) IsValid() bool {
	for _, candidate := range GradeHierarchy {
		if candidate == g {
			return true
		}
	}
	return false
}

// Employee models a staff member of the service.
type Employee struct {
	ID           string
	DiscordID    string
	Name         string
	Email        string
	PasswordHash string
	Grade        Grade
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
