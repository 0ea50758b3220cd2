package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spades-ems/portal/internal/domain"
)

// ApplicationFilter captures staff listing parameters.
type ApplicationFilter struct {
	Statuses           []domain.ApplicationStatus
	Service            *string
	CandidateDiscordID *string
	SearchTerm         *string
	CreatedFrom        *time.Time
	CreatedTo          *time.Time
	Limit              int
	Offset             int
}

// ApplicationRepository encapsulates application persistence.
type ApplicationRepository interface {
	Create(ctx context.Context, app *domain.Application) error
	Update(ctx context.Context, app *domain.Application) error
	GetByID(ctx context.Context, id string) (*domain.Application, error)
	GetByChannelID(ctx context.Context, channelID string) (*domain.Application, error)
	HasOpenApplication(ctx context.Context, discordID, service string) (bool, error)
	ListWithFilter(ctx context.Context, filter ApplicationFilter) ([]domain.Application, error)
}

type applicationRepository struct {
	db DB
}

// NewApplicationRepository instantiates repository.
func NewApplicationRepository(db DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

const applicationColumns = `id, candidate_discord_id, first_name, last_name, birth_date, motivation,
               availability, service, status, discord_channel_id, close_reason, closed_at, created_at, updated_at`

func (r *applicationRepository) Create(ctx context.Context, app *domain.Application) error {
	const query = `
        INSERT INTO applications (candidate_discord_id, first_name, last_name, birth_date, motivation, availability, service, status, discord_channel_id)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING id, created_at, updated_at`
	return r.db.QueryRow(ctx, query,
		app.CandidateDiscordID,
		app.FirstName,
		app.LastName,
		app.BirthDate,
		app.Motivation,
		app.Availability,
		app.Service,
		app.Status,
		app.DiscordChannelID,
	).Scan(&app.ID, &app.CreatedAt, &app.UpdatedAt)
}

func (r *applicationRepository) Update(ctx context.Context, app *domain.Application) error {
	const query = `
        UPDATE applications SET status=$1, discord_channel_id=$2, close_reason=$3, closed_at=$4, updated_at=NOW()
        WHERE id=$5`
	cmd, err := r.db.Exec(ctx, query,
		app.Status,
		app.DiscordChannelID,
		app.CloseReason,
		app.ClosedAt,
		app.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *applicationRepository) GetByID(ctx context.Context, id string) (*domain.Application, error) {
	query := fmt.Sprintf(`SELECT %s FROM applications WHERE id=$1`, applicationColumns)
	return r.fetchSingle(ctx, query, id)
}

func (r *applicationRepository) GetByChannelID(ctx context.Context, channelID string) (*domain.Application, error) {
	query := fmt.Sprintf(`SELECT %s FROM applications WHERE discord_channel_id=$1`, applicationColumns)
	return r.fetchSingle(ctx, query, channelID)
}

func (r *applicationRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Application, error) {
	var app domain.Application
	if err := r.db.QueryRow(ctx, query, arg).Scan(
		&app.ID,
		&app.CandidateDiscordID,
		&app.FirstName,
		&app.LastName,
		&app.BirthDate,
		&app.Motivation,
		&app.Availability,
		&app.Service,
		&app.Status,
		&app.DiscordChannelID,
		&app.CloseReason,
		&app.ClosedAt,
		&app.CreatedAt,
		&app.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *applicationRepository) HasOpenApplication(ctx context.Context, discordID, service string) (bool, error) {
	const query = `
        SELECT COUNT(*) FROM applications
        WHERE candidate_discord_id=$1 AND service=$2 AND status NOT IN ('recruited','rejected')`
	var count int
	if err := r.db.QueryRow(ctx, query, discordID, service).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *applicationRepository) ListWithFilter(ctx context.Context, filter ApplicationFilter) ([]domain.Application, error) {
	base := fmt.Sprintf(`SELECT %s FROM applications`, applicationColumns)
	clauses := []string{"1=1"}
	args := []any{}

	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("status IN (%s)", strings.Join(placeholders, ",")))
	}
	if filter.Service != nil {
		args = append(args, *filter.Service)
		clauses = append(clauses, fmt.Sprintf("service=$%d", len(args)))
	}
	if filter.CandidateDiscordID != nil {
		args = append(args, *filter.CandidateDiscordID)
		clauses = append(clauses, fmt.Sprintf("candidate_discord_id=$%d", len(args)))
	}
	if filter.CreatedFrom != nil {
		args = append(args, *filter.CreatedFrom)
		clauses = append(clauses, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if filter.CreatedTo != nil {
		args = append(args, *filter.CreatedTo)
		clauses = append(clauses, fmt.Sprintf("created_at <= $%d", len(args)))
	}
	if filter.SearchTerm != nil && strings.TrimSpace(*filter.SearchTerm) != "" {
		search := "%" + strings.ToLower(strings.TrimSpace(*filter.SearchTerm)) + "%"
		args = append(args, search)
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf("(LOWER(first_name) LIKE %s OR LOWER(last_name) LIKE %s)", placeholder, placeholder))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY updated_at DESC LIMIT %d OFFSET %d`,
		base, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanApplications(rows)
}

func scanApplications(rows pgx.Rows) ([]domain.Application, error) {
	var result []domain.Application
	for rows.Next() {
		var app domain.Application
		if err := rows.Scan(
			&app.ID,
			&app.CandidateDiscordID,
			&app.FirstName,
			&app.LastName,
			&app.BirthDate,
			&app.Motivation,
			&app.Availability,
			&app.Service,
			&app.Status,
			&app.DiscordChannelID,
			&app.CloseReason,
			&app.ClosedAt,
			&app.CreatedAt,
			&app.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, app)
	}
	return result, rows.Err()
}
