package domain

import "time"

// AuditAction enumerates administrative mutation kinds.
type AuditAction string

const (
	AuditActionCreate  AuditAction = "create"
	AuditActionUpdate  AuditAction = "update"
	AuditActionDelete  AuditAction = "delete"
	AuditActionRestore AuditAction = "restore"
)

// AuditLog is a system-wide before/after change record, distinct from the
// per-application trail. Append-only, used for compliance review.
type AuditLog struct {
	ID             string
	ActorDiscordID string
	ActorName      *string
	ActorGrade     *string
	Action         AuditAction
	TableName      string
	RecordID       *string
	OldData        map[string]any
	NewData        map[string]any
	CreatedAt      time.Time
}
