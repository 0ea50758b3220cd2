package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spades-ems/portal/internal/domain"
	"github.com/spades-ems/portal/internal/repository"
	"github.com/spades-ems/portal/pkg/util"
)

// AuditService records before/after snapshots of data changes. Recording
// never fails the caller's request.
type AuditService struct {
	audits repository.AuditLogRepository
	logger *zap.Logger
}

// NewAuditService constructs the service.
func NewAuditService(audits repository.AuditLogRepository, logger *zap.Logger) *AuditService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuditService{audits: audits, logger: logger}
}

// Record writes one audit entry for a change made by the actor.
func (s *AuditService) Record(ctx context.Context, actor *domain.Employee, action domain.AuditAction, tableName string, recordID *string, oldData, newData map[string]any) {
	grade := string(actor.Grade)
	entry := &domain.AuditLog{
		ActorDiscordID: actor.DiscordID,
		ActorName:      &actor.Name,
		ActorGrade:     &grade,
		Action:         action,
		TableName:      tableName,
		RecordID:       recordID,
		OldData:        oldData,
		NewData:        newData,
	}
	if err := s.audits.Create(ctx, entry); err != nil {
		s.logger.Warn("failed to record audit entry",
			zap.String("table", tableName),
			zap.String("action", string(action)),
			zap.Error(err))
	}
}

// List returns audit entries matching the viewer's filters, with total count.
func (s *AuditService) List(ctx context.Context, filter repository.AuditLogFilter) ([]domain.AuditLog, int, error) {
	entries, total, err := s.audits.ListWithFilter(ctx, filter)
	if err != nil {
		return nil, 0, util.MapError(err)
	}
	return entries, total, nil
}
