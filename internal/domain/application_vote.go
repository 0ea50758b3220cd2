package domain

import "time"

// ApplicationVote is one recruiter's current opinion on an application.
// At most one row exists per (application, voter); a second cast replaces
// the first.
type ApplicationVote struct {
	ID              string
	ApplicationID   string
	VoterDiscordID  string
	VoterName       string
	Vote            bool
	Comment         *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// VoteSummary aggregates vote rows at read time. Never persisted.
type VoteSummary struct {
	For     int
	Against int
	Votes   []ApplicationVote
}

// Ratio returns the favorable percentage, 0 when no votes were cast.
func (s VoteSummary) Ratio() int {
	total := s.For + s.Against
	if total == 0 {
		return 0
	}
	return int(float64(s.For) / float64(total) * 100)
}
