package dto

import (
	"time"

	"github.com/spades-ems/portal/internal/domain"
)

// SubmitApplicationRequest payload for the public submission endpoint.
type SubmitApplicationRequest struct {
	DiscordID    string `json:"discord_id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	BirthDate    string `json:"birth_date"`
	Motivation   string `json:"motivation"`
	Availability string `json:"availability"`
	Service      string `json:"service"`
}

// UpdateStatusRequest payload.
type UpdateStatusRequest struct {
	Status domain.ApplicationStatus `json:"status"`
}

// CloseApplicationRequest payload.
type CloseApplicationRequest struct {
	Accepted bool   `json:"accepted"`
	Reason   string `json:"reason"`
}

// CastVoteRequest payload.
type CastVoteRequest struct {
	Vote    bool    `json:"vote"`
	Comment *string `json:"comment"`
}

// SendMessageRequest payload.
type SendMessageRequest struct {
	Content string `json:"content"`
}

// EditMessageRequest payload.
type EditMessageRequest struct {
	Content string `json:"content"`
}

// CandidateMessageRequest is posted by the bot when a candidate replies.
type CandidateMessageRequest struct {
	DiscordID string `json:"discord_id"`
	Name      string `json:"name"`
	Content   string `json:"content"`
}

// ApplicationSummary response.
type ApplicationSummary struct {
	ID                 string                   `json:"id"`
	CandidateDiscordID string                   `json:"candidate_discord_id"`
	FirstName          string                   `json:"first_name"`
	LastName           string                   `json:"last_name"`
	Service            string                   `json:"service"`
	Status             domain.ApplicationStatus `json:"status"`
	CreatedAt          time.Time                `json:"created_at"`
	UpdatedAt          time.Time                `json:"updated_at"`
}

// ApplicationDetailResponse provides full candidacy info.
type ApplicationDetailResponse struct {
	ID                 string                   `json:"id"`
	CandidateDiscordID string                   `json:"candidate_discord_id"`
	FirstName          string                   `json:"first_name"`
	LastName           string                   `json:"last_name"`
	BirthDate          string                   `json:"birth_date"`
	Motivation         string                   `json:"motivation"`
	Availability       string                   `json:"availability"`
	Service            string                   `json:"service"`
	Status             domain.ApplicationStatus `json:"status"`
	CloseReason        *string                  `json:"close_reason"`
	ClosedAt           *time.Time               `json:"closed_at"`
	CreatedAt          time.Time                `json:"created_at"`
	UpdatedAt          time.Time                `json:"updated_at"`
	Messages           []MessageResponse        `json:"messages"`
	Votes              VoteSummaryResponse      `json:"votes"`
	Logs               []ApplicationLogResponse `json:"logs"`
}

// MessageResponse represents one relayed message.
type MessageResponse struct {
	ID              string     `json:"id"`
	SenderDiscordID string     `json:"sender_discord_id"`
	SenderName      string     `json:"sender_name"`
	Content         string     `json:"content"`
	IsFromCandidate bool       `json:"is_from_candidate"`
	MessageNumber   *int       `json:"message_number"`
	IsDeleted       bool       `json:"is_deleted"`
	EditedAt        *time.Time `json:"edited_at"`
	CreatedAt       time.Time  `json:"created_at"`
}

// VoteResponse represents one recruiter ballot.
type VoteResponse struct {
	VoterDiscordID string    `json:"voter_discord_id"`
	VoterName      string    `json:"voter_name"`
	Vote           bool      `json:"vote"`
	Comment        *string   `json:"comment"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// VoteSummaryResponse tallies ballots.
type VoteSummaryResponse struct {
	For     int            `json:"for"`
	Against int            `json:"against"`
	Ratio   int            `json:"ratio"`
	Votes   []VoteResponse `json:"votes"`
}

// ApplicationLogResponse is one trail entry.
type ApplicationLogResponse struct {
	ID             string                      `json:"id"`
	ActorDiscordID string                      `json:"actor_discord_id"`
	ActorName      string                      `json:"actor_name"`
	Action         domain.ApplicationLogAction `json:"action"`
	Details        map[string]any              `json:"details"`
	CreatedAt      time.Time                   `json:"created_at"`
}
