package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spades-ems/portal/internal/bot"
	"github.com/spades-ems/portal/internal/domain"
	"github.com/spades-ems/portal/internal/events"
	"github.com/spades-ems/portal/internal/repository"
)

type fakeApplicationRepo struct {
	mu   sync.Mutex
	seq  int
	apps map[string]domain.Application
}

func newFakeApplicationRepo() *fakeApplicationRepo {
	return &fakeApplicationRepo{apps: make(map[string]domain.Application)}
}

func (f *fakeApplicationRepo) Create(_ context.Context, app *domain.Application) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	app.ID = fmt.Sprintf("app-%d", f.seq)
	app.CreatedAt = time.Now()
	app.UpdatedAt = app.CreatedAt
	f.apps[app.ID] = *app
	return nil
}

func (f *fakeApplicationRepo) Update(_ context.Context, app *domain.Application) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.apps[app.ID]; !ok {
		return pgx.ErrNoRows
	}
	app.UpdatedAt = time.Now()
	f.apps[app.ID] = *app
	return nil
}

func (f *fakeApplicationRepo) GetByID(_ context.Context, id string) (*domain.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	app, ok := f.apps[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &app, nil
}

func (f *fakeApplicationRepo) GetByChannelID(_ context.Context, channelID string) (*domain.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, app := range f.apps {
		if app.DiscordChannelID != nil && *app.DiscordChannelID == channelID {
			found := app
			return &found, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeApplicationRepo) HasOpenApplication(_ context.Context, discordID, service string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, app := range f.apps {
		if app.CandidateDiscordID == discordID && app.Service == service && !app.Status.IsTerminal() {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeApplicationRepo) ListWithFilter(_ context.Context, filter repository.ApplicationFilter) ([]domain.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []domain.Application
	for _, app := range f.apps {
		if filter.CandidateDiscordID != nil && app.CandidateDiscordID != *filter.CandidateDiscordID {
			continue
		}
		if filter.Service != nil && app.Service != *filter.Service {
			continue
		}
		if len(filter.Statuses) > 0 {
			matched := false
			for _, status := range filter.Statuses {
				if app.Status == status {
					matched = true
					break
				}
			}
			if !matched {
				continue
			}
		}
		result = append(result, app)
		if filter.Limit > 0 && len(result) >= filter.Limit {
			break
		}
	}
	return result, nil
}

type fakeMessageRepo struct {
	mu       sync.Mutex
	seq      int
	messages []domain.ApplicationMessage
}

func (f *fakeMessageRepo) Create(_ context.Context, msg *domain.ApplicationMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	msg.ID = fmt.Sprintf("msg-%d", f.seq)
	msg.CreatedAt = time.Now()
	f.messages = append(f.messages, *msg)
	return nil
}

func (f *fakeMessageRepo) CountOutbound(_ context.Context, applicationID string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, msg := range f.messages {
		if msg.ApplicationID == applicationID && !msg.IsFromCandidate {
			count++
		}
	}
	return count, nil
}

func (f *fakeMessageRepo) GetByNumber(_ context.Context, applicationID string, number int) (*domain.ApplicationMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, msg := range f.messages {
		if msg.ApplicationID == applicationID && !msg.IsFromCandidate &&
			msg.MessageNumber != nil && *msg.MessageNumber == number {
			found := msg
			return &found, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeMessageRepo) UpdateContent(_ context.Context, id, content string, editedAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.messages {
		if f.messages[i].ID == id {
			f.messages[i].Content = content
			f.messages[i].EditedAt = &editedAt
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (f *fakeMessageRepo) MarkDeleted(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.messages {
		if f.messages[i].ID == id {
			f.messages[i].IsDeleted = true
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (f *fakeMessageRepo) ListByApplication(_ context.Context, applicationID string) ([]domain.ApplicationMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []domain.ApplicationMessage
	for _, msg := range f.messages {
		if msg.ApplicationID == applicationID {
			result = append(result, msg)
		}
	}
	return result, nil
}

type fakeVoteRepo struct {
	mu    sync.Mutex
	seq   int
	votes []domain.ApplicationVote
}

func (f *fakeVoteRepo) Upsert(_ context.Context, vote *domain.ApplicationVote) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.votes {
		if f.votes[i].ApplicationID == vote.ApplicationID && f.votes[i].VoterDiscordID == vote.VoterDiscordID {
			vote.ID = f.votes[i].ID
			vote.CreatedAt = f.votes[i].CreatedAt
			vote.UpdatedAt = time.Now()
			f.votes[i] = *vote
			return nil
		}
	}
	f.seq++
	vote.ID = fmt.Sprintf("vote-%d", f.seq)
	vote.CreatedAt = time.Now()
	vote.UpdatedAt = vote.CreatedAt
	f.votes = append(f.votes, *vote)
	return nil
}

func (f *fakeVoteRepo) ListByApplication(_ context.Context, applicationID string) ([]domain.ApplicationVote, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []domain.ApplicationVote
	for _, vote := range f.votes {
		if vote.ApplicationID == applicationID {
			result = append(result, vote)
		}
	}
	return result, nil
}

type fakeLogRepo struct {
	mu      sync.Mutex
	entries []domain.ApplicationLog
}

func (f *fakeLogRepo) Create(_ context.Context, entry *domain.ApplicationLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	entry.ID = fmt.Sprintf("log-%d", len(f.entries)+1)
	entry.CreatedAt = time.Now()
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeLogRepo) ListByApplication(_ context.Context, applicationID string) ([]domain.ApplicationLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []domain.ApplicationLog
	for _, entry := range f.entries {
		if entry.ApplicationID == applicationID {
			result = append(result, entry)
		}
	}
	return result, nil
}

type deliveredMessage struct {
	DiscordID string
	Content   string
	Number    int
}

type fakeBridge struct {
	mu         sync.Mutex
	deliverErr error
	editErr    error
	deleteErr  error
	delivered  []deliveredMessage
	edited     []string
	deleted    []string
	notified   []string
}

func (f *fakeBridge) DeliverDirectMessage(_ context.Context, discordID, content string, number int) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deliverErr != nil {
		return "", f.deliverErr
	}
	f.delivered = append(f.delivered, deliveredMessage{DiscordID: discordID, Content: content, Number: number})
	return fmt.Sprintf("discord-%d", len(f.delivered)), nil
}

func (f *fakeBridge) EditDirectMessage(_ context.Context, _, discordMessageID, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.editErr != nil {
		return f.editErr
	}
	f.edited = append(f.edited, discordMessageID)
	return nil
}

func (f *fakeBridge) DeleteDirectMessage(_ context.Context, _, discordMessageID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, discordMessageID)
	return nil
}

func (f *fakeBridge) NotifyDecision(_ context.Context, applicationID, discordID, candidateName, _ string, _ bool, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notified = append(f.notified, "decision:"+applicationID+":"+discordID+":"+candidateName)
	return nil
}

func (f *fakeBridge) NotifyStatus(_ context.Context, discordID, _, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notified = append(f.notified, "status:"+discordID)
	return nil
}

func (f *fakeBridge) NotifyVote(_ context.Context, applicationID, _ string, _ bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notified = append(f.notified, "vote:"+applicationID)
	return nil
}

func (f *fakeBridge) ResolveMember(_ context.Context, discordID string) (*bot.Member, error) {
	return &bot.Member{DiscordID: discordID, DisplayName: "Member " + discordID, IsInGuild: true}, nil
}

var _ bot.Client = (*fakeBridge)(nil)

type recordingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return nil
}

func (d *recordingDispatcher) eventTypes() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	var result []string
	for _, event := range d.events {
		result = append(result, string(event.Type))
	}
	return result
}

func containsEvent(types []string, want string) bool {
	for _, t := range types {
		if strings.Contains(t, want) {
			return true
		}
	}
	return false
}
