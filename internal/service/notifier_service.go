package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spades-ems/portal/internal/bot"
	"github.com/spades-ems/portal/internal/events"
)

// NotifierService forwards domain events to the candidate through the
// bot. Every delivery here is best-effort: a failed DM never fails the
// originating request.
type NotifierService struct {
	dispatcher events.Dispatcher
	bridge     bot.Client
	logger     *zap.Logger
}

// NewNotifierService creates the service.
func NewNotifierService(dispatcher events.Dispatcher, bridge bot.Client, logger *zap.Logger) *NotifierService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotifierService{
		dispatcher: dispatcher,
		bridge:     bridge,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotifierService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventApplicationStatusChanged, n.handleStatusChanged)
	n.dispatcher.Subscribe(events.EventApplicationClosed, n.handleClosed)
	n.dispatcher.Subscribe(events.EventApplicationVoteCast, n.handleVoteCast)
}

func (n *NotifierService) handleStatusChanged(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.ApplicationStatusChangedPayload)
	if !ok {
		return nil
	}
	if err := n.bridge.NotifyStatus(ctx, payload.CandidateDiscordID, payload.Service, string(payload.NewStatus)); err != nil {
		n.logger.Warn("status notification failed",
			zap.String("application_id", event.ApplicationID),
			zap.Error(err))
	}
	return nil
}

func (n *NotifierService) handleClosed(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.ApplicationClosedPayload)
	if !ok {
		return nil
	}
	if err := n.bridge.NotifyDecision(ctx, event.ApplicationID, payload.CandidateDiscordID, payload.CandidateName, payload.Service, payload.Accepted, payload.Reason); err != nil {
		n.logger.Warn("decision notification failed",
			zap.String("application_id", event.ApplicationID),
			zap.Error(err))
	}
	return nil
}

func (n *NotifierService) handleVoteCast(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.ApplicationVoteCastPayload)
	if !ok {
		return nil
	}
	if err := n.bridge.NotifyVote(ctx, event.ApplicationID, payload.VoterName, payload.Vote); err != nil {
		n.logger.Warn("vote notification failed",
			zap.String("application_id", event.ApplicationID),
			zap.Error(err))
	}
	return nil
}
