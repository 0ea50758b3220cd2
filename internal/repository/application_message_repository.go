package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spades-ems/portal/internal/domain"
)

// ApplicationMessageRepository manages relayed application messages.
type ApplicationMessageRepository interface {
	Create(ctx context.Context, msg *domain.ApplicationMessage) error
	// CountOutbound counts staff-authored messages including soft-deleted
	// ones; the next message number is always count+1.
	CountOutbound(ctx context.Context, applicationID string) (int, error)
	GetByNumber(ctx context.Context, applicationID string, number int) (*domain.ApplicationMessage, error)
	UpdateContent(ctx context.Context, id, content string, editedAt time.Time) error
	MarkDeleted(ctx context.Context, id string) error
	ListByApplication(ctx context.Context, applicationID string) ([]domain.ApplicationMessage, error)
}

type applicationMessageRepository struct {
	db DB
}

// NewApplicationMessageRepository builds repository.
func NewApplicationMessageRepository(db DB) ApplicationMessageRepository {
	return &applicationMessageRepository{db: db}
}

func (r *applicationMessageRepository) Create(ctx context.Context, msg *domain.ApplicationMessage) error {
	const query = `
        INSERT INTO application_messages (application_id, sender_discord_id, sender_name, content, is_from_candidate, message_number, discord_message_id)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at`
	return r.db.QueryRow(ctx, query,
		msg.ApplicationID,
		msg.SenderDiscordID,
		msg.SenderName,
		msg.Content,
		msg.IsFromCandidate,
		msg.MessageNumber,
		msg.DiscordMessageID,
	).Scan(&msg.ID, &msg.CreatedAt)
}

func (r *applicationMessageRepository) CountOutbound(ctx context.Context, applicationID string) (int, error) {
	const query = `
        SELECT COUNT(*) FROM application_messages
        WHERE application_id=$1 AND is_from_candidate=FALSE`
	var count int
	if err := r.db.QueryRow(ctx, query, applicationID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *applicationMessageRepository) GetByNumber(ctx context.Context, applicationID string, number int) (*domain.ApplicationMessage, error) {
	const query = `
        SELECT id, application_id, sender_discord_id, sender_name, content, is_from_candidate,
               message_number, discord_message_id, is_deleted, edited_at, created_at
        FROM application_messages
        WHERE application_id=$1 AND message_number=$2 AND is_from_candidate=FALSE`
	var msg domain.ApplicationMessage
	if err := r.db.QueryRow(ctx, query, applicationID, number).Scan(
		&msg.ID,
		&msg.ApplicationID,
		&msg.SenderDiscordID,
		&msg.SenderName,
		&msg.Content,
		&msg.IsFromCandidate,
		&msg.MessageNumber,
		&msg.DiscordMessageID,
		&msg.IsDeleted,
		&msg.EditedAt,
		&msg.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &msg, nil
}

func (r *applicationMessageRepository) UpdateContent(ctx context.Context, id, content string, editedAt time.Time) error {
	const query = `UPDATE application_messages SET content=$1, edited_at=$2 WHERE id=$3`
	cmd, err := r.db.Exec(ctx, query, content, editedAt, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *applicationMessageRepository) MarkDeleted(ctx context.Context, id string) error {
	const query = `UPDATE application_messages SET is_deleted=TRUE WHERE id=$1`
	cmd, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *applicationMessageRepository) ListByApplication(ctx context.Context, applicationID string) ([]domain.ApplicationMessage, error) {
	const query = `
        SELECT id, application_id, sender_discord_id, sender_name, content, is_from_candidate,
               message_number, discord_message_id, is_deleted, edited_at, created_at
        FROM application_messages WHERE application_id=$1 ORDER BY created_at ASC`
	rows, err := r.db.Query(ctx, query, applicationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ApplicationMessage
	for rows.Next() {
		var msg domain.ApplicationMessage
		if err := rows.Scan(
			&msg.ID,
			&msg.ApplicationID,
			&msg.SenderDiscordID,
			&msg.SenderName,
			&msg.Content,
			&msg.IsFromCandidate,
			&msg.MessageNumber,
			&msg.DiscordMessageID,
			&msg.IsDeleted,
			&msg.EditedAt,
			&msg.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, msg)
	}
	return result, rows.Err()
}
