package repository

import (
	"context"

	"github.com/spades-ems/portal/internal/domain"
)

// ApplicationLogRepository stores the per-application audit trail.
type ApplicationLogRepository interface {
	Create(ctx context.Context, entry *domain.ApplicationLog) error
	ListByApplication(ctx context.Context, applicationID string) ([]domain.ApplicationLog, error)
}

type applicationLogRepository struct {
	db DB
}

// NewApplicationLogRepository builds repository.
func NewApplicationLogRepository(db DB) ApplicationLogRepository {
	return &applicationLogRepository{db: db}
}

func (r *applicationLogRepository) Create(ctx context.Context, entry *domain.ApplicationLog) error {
	const query = `
        INSERT INTO application_logs (application_id, actor_discord_id, actor_name, action, details)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at`
	return r.db.QueryRow(ctx, query,
		entry.ApplicationID,
		entry.ActorDiscordID,
		entry.ActorName,
		entry.Action,
		entry.Details,
	).Scan(&entry.ID, &entry.CreatedAt)
}

func (r *applicationLogRepository) ListByApplication(ctx context.Context, applicationID string) ([]domain.ApplicationLog, error) {
	const query = `
        SELECT id, application_id, actor_discord_id, actor_name, action, details, created_at
        FROM application_logs WHERE application_id=$1 ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query, applicationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ApplicationLog
	for rows.Next() {
		var entry domain.ApplicationLog
		if err := rows.Scan(
			&entry.ID,
			&entry.ApplicationID,
			&entry.ActorDiscordID,
			&entry.ActorName,
			&entry.Action,
			&entry.Details,
			&entry.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}
