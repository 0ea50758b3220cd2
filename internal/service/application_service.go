package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spades-ems/portal/internal/domain"
	"github.com/spades-ems/portal/internal/events"
	"github.com/spades-ems/portal/internal/repository"
	"github.com/spades-ems/portal/pkg/util"
)

// ApplicationService coordinates recruitment workflows.
type ApplicationService struct {
	applications repository.ApplicationRepository
	messages     repository.ApplicationMessageRepository
	votes        repository.ApplicationVoteRepository
	logs         repository.ApplicationLogRepository
	dispatcher   events.Dispatcher
}

// ApplicationDependencies bundles repositories for the application service.
type ApplicationDependencies struct {
	ApplicationRepo repository.ApplicationRepository
	MessageRepo     repository.ApplicationMessageRepository
	VoteRepo        repository.ApplicationVoteRepository
	LogRepo         repository.ApplicationLogRepository
	Dispatcher      events.Dispatcher
}

// ApplicationSubmitInput describes a candidate submission.
type ApplicationSubmitInput struct {
	CandidateDiscordID string
	FirstName          string
	LastName           string
	BirthDate          string
	Motivation         string
	Availability       string
	Service            string
	DiscordChannelID   *string
}

// ApplicationDetail aggregates everything staff sees on one candidacy.
type ApplicationDetail struct {
	Application *domain.Application
	Messages    []domain.ApplicationMessage
	Votes       domain.VoteSummary
	Logs        []domain.ApplicationLog
}

// NewApplicationService constructs the service.
func NewApplicationService(deps ApplicationDependencies) *ApplicationService {
	return &ApplicationService{
		applications: deps.ApplicationRepo,
		messages:     deps.MessageRepo,
		votes:        deps.VoteRepo,
		logs:         deps.LogRepo,
		dispatcher:   deps.Dispatcher,
	}
}

// Submit registers a new candidacy. A candidate may only hold one open
// application per service at a time.
func (s *ApplicationService) Submit(ctx context.Context, input ApplicationSubmitInput) (*domain.Application, error) {
	open, err := s.applications.HasOpenApplication(ctx, input.CandidateDiscordID, input.Service)
	if err != nil {
		return nil, util.MapError(err)
	}
	if open {
		return nil, util.NewConflict("an open application already exists for this service", map[string]any{
			"service": input.Service,
		})
	}

	app := &domain.Application{
		CandidateDiscordID: input.CandidateDiscordID,
		FirstName:          strings.TrimSpace(input.FirstName),
		LastName:           strings.TrimSpace(input.LastName),
		BirthDate:          strings.TrimSpace(input.BirthDate),
		Motivation:         strings.TrimSpace(input.Motivation),
		Availability:       strings.TrimSpace(input.Availability),
		Service:            input.Service,
		Status:             domain.StatusPending,
		DiscordChannelID:   input.DiscordChannelID,
	}
	if err := s.applications.Create(ctx, app); err != nil {
		return nil, util.MapError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:          events.EventApplicationSubmitted,
		ApplicationID: app.ID,
		Actor:         events.Actor{DiscordID: app.CandidateDiscordID, Name: app.CandidateName()},
		Payload: events.ApplicationSubmittedPayload{
			CandidateDiscordID: app.CandidateDiscordID,
			CandidateName:      app.CandidateName(),
			Service:            app.Service,
		},
	})
	return app, nil
}

// List returns applications matching staff filters.
func (s *ApplicationService) List(ctx context.Context, filter repository.ApplicationFilter) ([]domain.Application, error) {
	apps, err := s.applications.ListWithFilter(ctx, filter)
	if err != nil {
		return nil, util.MapError(err)
	}
	return apps, nil
}

// GetByChannelID resolves the application bound to a Discord channel.
func (s *ApplicationService) GetByChannelID(ctx context.Context, channelID string) (*domain.Application, error) {
	app, err := s.applications.GetByChannelID(ctx, channelID)
	if err != nil {
		return nil, util.MapError(err)
	}
	return app, nil
}

// Detail loads one application with its messages, vote tally and trail.
func (s *ApplicationService) Detail(ctx context.Context, id string) (*ApplicationDetail, error) {
	app, err := s.applications.GetByID(ctx, id)
	if err != nil {
		return nil, util.MapError(err)
	}
	msgs, err := s.messages.ListByApplication(ctx, app.ID)
	if err != nil {
		return nil, util.MapError(err)
	}
	summary, err := s.VoteSummary(ctx, app.ID)
	if err != nil {
		return nil, err
	}
	trail, err := s.logs.ListByApplication(ctx, app.ID)
	if err != nil {
		return nil, util.MapError(err)
	}
	return &ApplicationDetail{
		Application: app,
		Messages:    msgs,
		Votes:       *summary,
		Logs:        trail,
	}, nil
}

// UpdateStatus moves an open application to another intermediate state.
// Terminal states are only reachable through Close.
func (s *ApplicationService) UpdateStatus(ctx context.Context, actor *domain.Employee, id string, newStatus domain.ApplicationStatus) (*domain.Application, error) {
	if !newStatus.IsValid() {
		return nil, util.NewValidationError("unknown status", map[string]any{"status": newStatus})
	}
	if newStatus.IsTerminal() {
		return nil, util.NewValidationError("terminal statuses require a close decision", map[string]any{"status": newStatus})
	}
	app, err := s.applications.GetByID(ctx, id)
	if err != nil {
		return nil, util.MapError(err)
	}
	if app.Status.IsTerminal() {
		return nil, util.NewConflict("application is already closed", nil)
	}
	if app.Status == newStatus {
		return app, nil
	}

	oldStatus := app.Status
	app.Status = newStatus
	if err := s.applications.Update(ctx, app); err != nil {
		return nil, util.MapError(err)
	}
	s.recordLog(ctx, app.ID, actor, domain.LogActionStatusChange, map[string]any{
		"old_status": oldStatus,
		"new_status": newStatus,
	})
	s.publishEvent(ctx, events.Event{
		Type:          events.EventApplicationStatusChanged,
		ApplicationID: app.ID,
		Actor:         employeeActor(actor),
		Payload: events.ApplicationStatusChangedPayload{
			CandidateDiscordID: app.CandidateDiscordID,
			Service:            app.Service,
			OldStatus:          oldStatus,
			NewStatus:          newStatus,
		},
	})
	return app, nil
}

// Close records the final decision with an optional free-text reason.
// Closing an already closed application is a conflict so two admins
// cannot both decide.
func (s *ApplicationService) Close(ctx context.Context, actor *domain.Employee, id string, accepted bool, reason string) (*domain.Application, error) {
	reason = strings.TrimSpace(reason)
	if len([]rune(reason)) > 500 {
		return nil, util.NewValidationError("close reason exceeds 500 characters", nil)
	}
	app, err := s.applications.GetByID(ctx, id)
	if err != nil {
		return nil, util.MapError(err)
	}
	if app.Status.IsTerminal() {
		return nil, util.NewConflict("application is already closed", map[string]any{
			"status": app.Status,
		})
	}

	oldStatus := app.Status
	now := time.Now()
	if accepted {
		app.Status = domain.StatusRecruited
	} else {
		app.Status = domain.StatusRejected
	}
	if reason != "" {
		app.CloseReason = &reason
	}
	app.ClosedAt = &now
	if err := s.applications.Update(ctx, app); err != nil {
		return nil, util.MapError(err)
	}
	s.recordLog(ctx, app.ID, actor, domain.LogActionStatusChange, map[string]any{
		"old_status": oldStatus,
		"new_status": app.Status,
		"reason":     reason,
	})
	s.publishEvent(ctx, events.Event{
		Type:          events.EventApplicationClosed,
		ApplicationID: app.ID,
		Actor:         employeeActor(actor),
		Payload: events.ApplicationClosedPayload{
			CandidateDiscordID: app.CandidateDiscordID,
			CandidateName:      app.CandidateName(),
			Service:            app.Service,
			Accepted:           accepted,
			Reason:             reason,
		},
	})
	return app, nil
}

// CastVote records or replaces the voter's opinion on an open application.
func (s *ApplicationService) CastVote(ctx context.Context, actor *domain.Employee, id string, voteFor bool, comment *string) (*domain.ApplicationVote, error) {
	app, err := s.applications.GetByID(ctx, id)
	if err != nil {
		return nil, util.MapError(err)
	}
	if app.Status.IsTerminal() {
		return nil, util.NewConflict("application is already closed", nil)
	}

	vote := &domain.ApplicationVote{
		ApplicationID:  app.ID,
		VoterDiscordID: actor.DiscordID,
		VoterName:      actor.Name,
		Vote:           voteFor,
		Comment:        comment,
	}
	if err := s.votes.Upsert(ctx, vote); err != nil {
		return nil, util.MapError(err)
	}
	s.recordLog(ctx, app.ID, actor, domain.LogActionVoteCast, map[string]any{
		"vote": voteFor,
	})
	s.publishEvent(ctx, events.Event{
		Type:          events.EventApplicationVoteCast,
		ApplicationID: app.ID,
		Actor:         employeeActor(actor),
		Payload: events.ApplicationVoteCastPayload{
			VoterName: actor.Name,
			Vote:      voteFor,
		},
	})
	return vote, nil
}

// VoteSummary tallies ballots at read time.
func (s *ApplicationService) VoteSummary(ctx context.Context, id string) (*domain.VoteSummary, error) {
	votes, err := s.votes.ListByApplication(ctx, id)
	if err != nil {
		return nil, util.MapError(err)
	}
	summary := &domain.VoteSummary{Votes: votes}
	for _, vote := range votes {
		if vote.Vote {
			summary.For++
		} else {
			summary.Against++
		}
	}
	return summary, nil
}

func (s *ApplicationService) recordLog(ctx context.Context, applicationID string, actor *domain.Employee, action domain.ApplicationLogAction, details map[string]any) {
	entry := &domain.ApplicationLog{
		ApplicationID:  applicationID,
		ActorDiscordID: actor.DiscordID,
		ActorName:      actor.Name,
		Action:         action,
		Details:        details,
	}
	_ = s.logs.Create(ctx, entry)
}

func (s *ApplicationService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func employeeActor(emp *domain.Employee) events.Actor {
	return events.Actor{DiscordID: emp.DiscordID, Name: emp.Name}
}
