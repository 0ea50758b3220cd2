package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spades-ems/portal/internal/domain"
)

// AuditLogFilter captures viewer query parameters.
type AuditLogFilter struct {
	TableName      *string
	Action         *domain.AuditAction
	ActorDiscordID *string
	SearchTerm     *string
	CreatedFrom    *time.Time
	CreatedTo      *time.Time
	Limit          int
	Offset         int
}

// AuditLogRepository stores system-wide before/after change records.
type AuditLogRepository interface {
	Create(ctx context.Context, entry *domain.AuditLog) error
	ListWithFilter(ctx context.Context, filter AuditLogFilter) ([]domain.AuditLog, int, error)
}

type auditLogRepository struct {
	db DB
}

// NewAuditLogRepository builds repository.
func NewAuditLogRepository(db DB) AuditLogRepository {
	return &auditLogRepository{db: db}
}

func (r *auditLogRepository) Create(ctx context.Context, entry *domain.AuditLog) error {
	const query = `
        INSERT INTO audit_logs (actor_discord_id, actor_name, actor_grade, action, table_name, record_id, old_data, new_data)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id, created_at`
	return r.db.QueryRow(ctx, query,
		entry.ActorDiscordID,
		entry.ActorName,
		entry.ActorGrade,
		entry.Action,
		entry.TableName,
		entry.RecordID,
		entry.OldData,
		entry.NewData,
	).Scan(&entry.ID, &entry.CreatedAt)
}

func (r *auditLogRepository) ListWithFilter(ctx context.Context, filter AuditLogFilter) ([]domain.AuditLog, int, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.TableName != nil {
		args = append(args, *filter.TableName)
		clauses = append(clauses, fmt.Sprintf("table_name=$%d", len(args)))
	}
	if filter.Action != nil {
		args = append(args, *filter.Action)
		clauses = append(clauses, fmt.Sprintf("action=$%d", len(args)))
	}
	if filter.ActorDiscordID != nil {
		args = append(args, *filter.ActorDiscordID)
		clauses = append(clauses, fmt.Sprintf("actor_discord_id=$%d", len(args)))
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
		clauses = append(clauses, fmt.Sprintf("(LOWER(actor_name) LIKE %s OR LOWER(table_name) LIKE %s)", placeholder, placeholder))
	}

	where := strings.Join(clauses, " AND ")

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM audit_logs WHERE %s`, where)
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`
        SELECT id, actor_discord_id, actor_name, actor_grade, action, table_name, record_id, old_data, new_data, created_at
        FROM audit_logs WHERE %s ORDER BY created_at DESC LIMIT %d OFFSET %d`, where, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []domain.AuditLog
	for rows.Next() {
		var entry domain.AuditLog
		if err := rows.Scan(
			&entry.ID,
			&entry.ActorDiscordID,
			&entry.ActorName,
			&entry.ActorGrade,
			&entry.Action,
			&entry.TableName,
			&entry.RecordID,
			&entry.OldData,
			&entry.NewData,
			&entry.CreatedAt,
		); err != nil {
			return nil, 0, err
		}
		result = append(result, entry)
	}
	return result, total, rows.Err()
}
