package domain

import "time"

// ApplicationMessage is one relayed communication tied to an application.
// Outbound messages carry a sequential number scoped to the application so
// staff can reference "message #3" stably; deletion is a soft flag so the
// numbering never shifts.
type ApplicationMessage struct {
	ID               string
	ApplicationID    string
	SenderDiscordID  string
	SenderName       string
	Content          string
	IsFromCandidate  bool
	MessageNumber    *int
	DiscordMessageID *string
	IsDeleted        bool
	EditedAt         *time.Time
	CreatedAt        time.Time
}
