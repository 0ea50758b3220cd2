package repository

import (
	"context"

	"github.com/spades-ems/portal/internal/domain"
)

// ApplicationVoteRepository stores recruiter opinions, one row per voter.
type ApplicationVoteRepository interface {
	// Upsert replaces an existing vote from the same voter instead of
	// adding a second ballot.
	Upsert(ctx context.Context, vote *domain.ApplicationVote) error
	ListByApplication(ctx context.Context, applicationID string) ([]domain.ApplicationVote, error)
}

type applicationVoteRepository struct {
	db DB
}

// NewApplicationVoteRepository builds repository.
func NewApplicationVoteRepository(db DB) ApplicationVoteRepository {
	return &applicationVoteRepository{db: db}
}

func (r *applicationVoteRepository) Upsert(ctx context.Context, vote *domain.ApplicationVote) error {
	const query = `
        INSERT INTO application_votes (application_id, voter_discord_id, voter_name, vote, comment)
        VALUES ($1,$2,$3,$4,$5)
        ON CONFLICT (application_id, voter_discord_id)
        DO UPDATE SET voter_name=EXCLUDED.voter_name, vote=EXCLUDED.vote, comment=EXCLUDED.comment, updated_at=NOW()
        RETURNING id, created_at, updated_at`
	return r.db.QueryRow(ctx, query,
		vote.ApplicationID,
		vote.VoterDiscordID,
		vote.VoterName,
		vote.Vote,
		vote.Comment,
	).Scan(&vote.ID, &vote.CreatedAt, &vote.UpdatedAt)
}

func (r *applicationVoteRepository) ListByApplication(ctx context.Context, applicationID string) ([]domain.ApplicationVote, error) {
	const query = `
        SELECT id, application_id, voter_discord_id, voter_name, vote, comment, created_at, updated_at
        FROM application_votes WHERE application_id=$1 ORDER BY created_at ASC`
	rows, err := r.db.Query(ctx, query, applicationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ApplicationVote
	for rows.Next() {
		var vote domain.ApplicationVote
		if err := rows.Scan(
			&vote.ID,
			&vote.ApplicationID,
			&vote.VoterDiscordID,
			&vote.VoterName,
			&vote.Vote,
			&vote.Comment,
			&vote.CreatedAt,
			&vote.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, vote)
	}
	return result, rows.Err()
}
