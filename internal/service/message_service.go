package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spades-ems/portal/internal/bot"
	"github.com/spades-ems/portal/internal/domain"
	"github.com/spades-ems/portal/internal/repository"
	"github.com/spades-ems/portal/pkg/util"
)

// MessageService relays staff messages to candidates through the bot and
// mirrors candidate replies back into the portal.
type MessageService struct {
	applications repository.ApplicationRepository
	messages     repository.ApplicationMessageRepository
	logs         repository.ApplicationLogRepository
	bridge       bot.Client
	logger       *zap.Logger
}

// MessageDependencies bundles collaborators for the message service.
type MessageDependencies struct {
	ApplicationRepo repository.ApplicationRepository
	MessageRepo     repository.ApplicationMessageRepository
	LogRepo         repository.ApplicationLogRepository
	Bridge          bot.Client
	Logger          *zap.Logger
}

// NewMessageService constructs the service.
func NewMessageService(deps MessageDependencies) *MessageService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MessageService{
		applications: deps.ApplicationRepo,
		messages:     deps.MessageRepo,
		logs:         deps.LogRepo,
		bridge:       deps.Bridge,
		logger:       logger,
	}
}

// Send delivers a staff message to the candidate's DMs and records it.
// Delivery gates persistence: if the bot cannot reach the candidate,
// nothing is stored and no message number is consumed.
func (s *MessageService) Send(ctx context.Context, actor *domain.Employee, applicationID, content string) (*domain.ApplicationMessage, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, util.NewValidationError("message content is required", nil)
	}

	app, err := s.applications.GetByID(ctx, applicationID)
	if err != nil {
		return nil, util.MapError(err)
	}
	if app.Status.IsTerminal() {
		return nil, util.NewConflict("application is closed", nil)
	}

	count, err := s.messages.CountOutbound(ctx, app.ID)
	if err != nil {
		return nil, util.MapError(err)
	}
	number := count + 1

	discordMessageID, err := s.bridge.DeliverDirectMessage(ctx, app.CandidateDiscordID, content, number)
	if err != nil {
		return nil, err
	}

	msg := &domain.ApplicationMessage{
		ApplicationID:    app.ID,
		SenderDiscordID:  actor.DiscordID,
		SenderName:       s.senderName(ctx, actor),
		Content:          content,
		IsFromCandidate:  false,
		MessageNumber:    &number,
		DiscordMessageID: &discordMessageID,
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, util.MapError(err)
	}
	s.recordLog(ctx, app.ID, actor, domain.LogActionMessageSent, map[string]any{
		"message_number": number,
	})
	return msg, nil
}

// Edit rewrites an outbound message's content. Only the original sender
// or a direction member may edit. The candidate's DM copy is updated on
// a best-effort basis.
func (s *MessageService) Edit(ctx context.Context, actor *domain.Employee, applicationID string, number int, content string) (*domain.ApplicationMessage, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, util.NewValidationError("message content is required", nil)
	}

	app, err := s.applications.GetByID(ctx, applicationID)
	if err != nil {
		return nil, util.MapError(err)
	}
	msg, err := s.messages.GetByNumber(ctx, app.ID, number)
	if err != nil {
		return nil, util.MapError(err)
	}
	if msg.IsDeleted {
		return nil, util.NewConflict("message has been deleted", nil)
	}
	if !s.canModify(actor, msg) {
		return nil, util.NewForbidden("only the sender or direction may edit this message")
	}

	oldContent := msg.Content
	editedAt := time.Now()
	if err := s.messages.UpdateContent(ctx, msg.ID, content, editedAt); err != nil {
		return nil, util.MapError(err)
	}
	msg.Content = content
	msg.EditedAt = &editedAt

	if msg.DiscordMessageID != nil {
		if err := s.bridge.EditDirectMessage(ctx, app.CandidateDiscordID, *msg.DiscordMessageID, content); err != nil {
			s.logger.Warn("failed to propagate message edit",
				zap.String("application_id", app.ID),
				zap.Int("message_number", number),
				zap.Error(err))
		}
	}
	s.recordLog(ctx, app.ID, actor, domain.LogActionMessageEdited, map[string]any{
		"message_number": number,
		"old_preview":    preview(oldContent),
		"new_preview":    preview(content),
	})
	return msg, nil
}

// Delete soft-deletes an outbound message, keeping its number. Deleting
// an already deleted message is a conflict. The candidate's DM copy is
// removed on a best-effort basis.
func (s *MessageService) Delete(ctx context.Context, actor *domain.Employee, applicationID string, number int) error {
	app, err := s.applications.GetByID(ctx, applicationID)
	if err != nil {
		return util.MapError(err)
	}
	msg, err := s.messages.GetByNumber(ctx, app.ID, number)
	if err != nil {
		return util.MapError(err)
	}
	if msg.IsDeleted {
		return util.NewConflict("message is already deleted", nil)
	}
	if !s.canModify(actor, msg) {
		return util.NewForbidden("only the sender or direction may delete this message")
	}

	if err := s.messages.MarkDeleted(ctx, msg.ID); err != nil {
		return util.MapError(err)
	}

	if msg.DiscordMessageID != nil {
		if err := s.bridge.DeleteDirectMessage(ctx, app.CandidateDiscordID, *msg.DiscordMessageID); err != nil {
			s.logger.Warn("failed to propagate message deletion",
				zap.String("application_id", app.ID),
				zap.Int("message_number", number),
				zap.Error(err))
		}
	}
	s.recordLog(ctx, app.ID, actor, domain.LogActionMessageDeleted, map[string]any{
		"message_number": number,
	})
	return nil
}

// RecordCandidateReply mirrors a DM the candidate sent to the bot.
// Inbound messages carry no number.
func (s *MessageService) RecordCandidateReply(ctx context.Context, candidateDiscordID, candidateName, content string) (*domain.ApplicationMessage, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, util.NewValidationError("message content is required", nil)
	}

	filter := repository.ApplicationFilter{
		CandidateDiscordID: &candidateDiscordID,
		Statuses: []domain.ApplicationStatus{
			domain.StatusPending, domain.StatusReviewing, domain.StatusInterviewScheduled,
			domain.StatusInterviewPassed, domain.StatusInterviewFailed, domain.StatusTraining,
		},
		Limit: 1,
	}
	apps, err := s.applications.ListWithFilter(ctx, filter)
	if err != nil {
		return nil, util.MapError(err)
	}
	if len(apps) == 0 {
		return nil, util.NewNotFound("open application", map[string]any{"discord_id": candidateDiscordID})
	}

	msg := &domain.ApplicationMessage{
		ApplicationID:   apps[0].ID,
		SenderDiscordID: candidateDiscordID,
		SenderName:      candidateName,
		Content:         content,
		IsFromCandidate: true,
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, util.MapError(err)
	}
	return msg, nil
}

func (s *MessageService) canModify(actor *domain.Employee, msg *domain.ApplicationMessage) bool {
	return actor.DiscordID == msg.SenderDiscordID || actor.Grade == domain.GradeDirection
}

// senderName prefers the guild display name the candidate actually sees.
func (s *MessageService) senderName(ctx context.Context, actor *domain.Employee) string {
	member, err := s.bridge.ResolveMember(ctx, actor.DiscordID)
	if err != nil || member == nil || member.DisplayName == "" {
		return actor.Name
	}
	return member.DisplayName
}

func preview(content string) string {
	runes := []rune(content)
	if len(runes) <= 100 {
		return content
	}
	return string(runes[:100])
}

func (s *MessageService) recordLog(ctx context.Context, applicationID string, actor *domain.Employee, action domain.ApplicationLogAction, details map[string]any) {
	entry := &domain.ApplicationLog{
		ApplicationID:  applicationID,
		ActorDiscordID: actor.DiscordID,
		ActorName:      actor.Name,
		Action:         action,
		Details:        details,
	}
	_ = s.logs.Create(ctx, entry)
}
