package domain

import "time"

// ApplicationStatus enumerates recruitment lifecycle states.
type ApplicationStatus string

const (
	StatusPending            ApplicationStatus = "pending"
	StatusReviewing          ApplicationStatus = "reviewing"
	StatusInterviewScheduled ApplicationStatus = "interview_scheduled"
	StatusInterviewPassed    ApplicationStatus = "interview_passed"
	StatusInterviewFailed    ApplicationStatus = "interview_failed"
	StatusTraining           ApplicationStatus = "training"
	StatusRecruited          ApplicationStatus = "recruited"
	StatusRejected           ApplicationStatus = "rejected"
)

// IsTerminal reports whether no further status transition is permitted.
func (s ApplicationStatus) IsTerminal() bool {
	return s == StatusRecruited || s == StatusRejected
}

// IsValid reports whether the status belongs to the known enumeration.
func (s ApplicationStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusReviewing, StatusInterviewScheduled,
		StatusInterviewPassed, StatusInterviewFailed, StatusTraining,
		StatusRecruited, StatusRejected:
		return true
	}
	return false
}

// Application is the aggregate for one candidate's recruitment process.
type Application struct {
	ID                 string
	CandidateDiscordID string
	FirstName          string
	LastName           string
	BirthDate          string
	Motivation         string
	Availability       string
	Service            string
	Status             ApplicationStatus
	DiscordChannelID   *string
	CloseReason        *string
	ClosedAt           *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// CandidateName returns the full display name of the candidate.
func (a *Application) CandidateName() string {
	return a.FirstName + " " + a.LastName
}
