package domain

import "time"

// ApplicationLogAction tags entries in an application's audit trail.
type ApplicationLogAction string

const (
	LogActionStatusChange   ApplicationLogAction = "status_change"
	LogActionMessageSent    ApplicationLogAction = "message_sent"
	LogActionMessageEdited  ApplicationLogAction = "message_edited"
	LogActionMessageDeleted ApplicationLogAction = "message_deleted"
	LogActionVoteCast       ApplicationLogAction = "vote_cast"
)

// ApplicationLog is an immutable audit trail entry for one application.
type ApplicationLog struct {
	ID             string
	ApplicationID  string
	ActorDiscordID string
	ActorName      string
	Action         ApplicationLogAction
	Details        map[string]any
	CreatedAt      time.Time
}
