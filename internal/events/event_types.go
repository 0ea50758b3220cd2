package events

import (
	"time"

	"github.com/spades-ems/portal/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventApplicationSubmitted     EventType = "application_submitted"
	EventApplicationStatusChanged EventType = "application_status_changed"
	EventApplicationClosed        EventType = "application_closed"
	EventApplicationVoteCast      EventType = "application_vote_cast"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	DiscordID string `json:"discord_id"`
	Name      string `json:"name"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID            string      `json:"id"`
	Type          EventType   `json:"type"`
	ApplicationID string      `json:"application_id"`
	Actor         Actor       `json:"actor"`
	Timestamp     time.Time   `json:"timestamp"`
	Payload       interface{} `json:"payload"`
}

// ApplicationSubmittedPayload payload.
type ApplicationSubmittedPayload struct {
	CandidateDiscordID string `json:"candidate_discord_id"`
	CandidateName      string `json:"candidate_name"`
	Service            string `json:"service"`
}

// ApplicationStatusChangedPayload payload.
type ApplicationStatusChangedPayload struct {
	CandidateDiscordID string                   `json:"candidate_discord_id"`
	Service            string                   `json:"service"`
	OldStatus          domain.ApplicationStatus `json:"old_status"`
	NewStatus          domain.ApplicationStatus `json:"new_status"`
}

// ApplicationClosedPayload payload.
type ApplicationClosedPayload struct {
	CandidateDiscordID string `json:"candidate_discord_id"`
	CandidateName      string `json:"candidate_name"`
	Service            string `json:"service"`
	Accepted           bool   `json:"accepted"`
	Reason             string `json:"reason"`
}

// ApplicationVoteCastPayload payload.
type ApplicationVoteCastPayload struct {
	VoterName string `json:"voter_name"`
	Vote      bool   `json:"vote"`
}
