package service

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spades-ems/portal/internal/bot"
	"github.com/spades-ems/portal/pkg/util"
)

// maxReminderDelay bounds how far out a reminder may be scheduled.
const maxReminderDelay = 24 * time.Hour

// Timer abstracts time.AfterFunc so tests can fire reminders on demand.
type Timer interface {
	Stop() bool
}

// TimerFactory schedules a callback after a delay.
type TimerFactory func(d time.Duration, fn func()) Timer

type realTimer struct {
	timer *time.Timer
}

func (t *realTimer) Stop() bool {
	return t.timer.Stop()
}

func defaultTimerFactory(d time.Duration, fn func()) Timer {
	return &realTimer{timer: time.AfterFunc(d, fn)}
}

// Reminder is one pending in-memory reminder.
type Reminder struct {
	ID        string
	DiscordID string
	Message   string
	FiresAt   time.Time
}

// ReminderService keeps an in-memory registry of pending reminders,
// each addressable by an opaque id for cancellation. Reminders do not
// survive a restart.
type ReminderService struct {
	bridge   bot.Client
	logger   *zap.Logger
	newTimer TimerFactory

	mu      sync.Mutex
	pending map[string]*pendingReminder
}

type pendingReminder struct {
	reminder Reminder
	timer    Timer
}

// NewReminderService constructs the service.
func NewReminderService(bridge bot.Client, logger *zap.Logger, factory TimerFactory) *ReminderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if factory == nil {
		factory = defaultTimerFactory
	}
	return &ReminderService{
		bridge:   bridge,
		logger:   logger,
		newTimer: factory,
		pending:  make(map[string]*pendingReminder),
	}
}

var delayPattern = regexp.MustCompile(`^(?:(\d+)h)?(?:(\d+)m?)?$`)

// ParseDelay reads delays like "30m", "2h" or "1h30".
func ParseDelay(raw string) (time.Duration, error) {
	matches := delayPattern.FindStringSubmatch(raw)
	if matches == nil || (matches[1] == "" && matches[2] == "") {
		return 0, util.NewValidationError("invalid delay format", map[string]any{"delay": raw})
	}
	var delay time.Duration
	if matches[1] != "" {
		hours, _ := strconv.Atoi(matches[1])
		delay += time.Duration(hours) * time.Hour
	}
	if matches[2] != "" {
		minutes, _ := strconv.Atoi(matches[2])
		delay += time.Duration(minutes) * time.Minute
	}
	if delay <= 0 {
		return 0, util.NewValidationError("delay must be positive", map[string]any{"delay": raw})
	}
	if delay > maxReminderDelay {
		return 0, util.NewValidationError("delay exceeds 24 hours", map[string]any{"delay": raw})
	}
	return delay, nil
}

// Schedule registers a reminder and returns its id.
func (s *ReminderService) Schedule(discordID, message string, delay time.Duration) (*Reminder, error) {
	if delay <= 0 || delay > maxReminderDelay {
		return nil, util.NewValidationError("delay out of range", nil)
	}
	if message == "" {
		return nil, util.NewValidationError("reminder message is required", nil)
	}

	id := uuid.NewString()
	reminder := Reminder{
		ID:        id,
		DiscordID: discordID,
		Message:   message,
		FiresAt:   time.Now().Add(delay),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[id] = &pendingReminder{
		reminder: reminder,
		timer:    s.newTimer(delay, func() { s.fire(id) }),
	}
	return &reminder, nil
}

// Cancel stops a pending reminder.
func (s *ReminderService) Cancel(id string) error {
	s.mu.Lock()
	entry, ok := s.pending[id]
	if ok {
		delete(s.pending, id)
	}
	s.mu.Unlock()

	if !ok {
		return util.NewNotFound("reminder", map[string]any{"id": id})
	}
	entry.timer.Stop()
	return nil
}

// ListPending returns reminders scheduled for one recipient.
func (s *ReminderService) ListPending(discordID string) []Reminder {
	s.mu.Lock()
	defer s.mu.Unlock()

	var result []Reminder
	for _, entry := range s.pending {
		if entry.reminder.DiscordID == discordID {
			result = append(result, entry.reminder)
		}
	}
	return result
}

func (s *ReminderService) fire(id string) {
	s.mu.Lock()
	entry, ok := s.pending[id]
	if ok {
		delete(s.pending, id)
	}
	s.mu.Unlock()
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	content := fmt.Sprintf("⏰ Rappel : %s", entry.reminder.Message)
	if _, err := s.bridge.DeliverDirectMessage(ctx, entry.reminder.DiscordID, content, 0); err != nil {
		s.logger.Warn("reminder delivery failed",
			zap.String("reminder_id", id),
			zap.String("discord_id", entry.reminder.DiscordID),
			zap.Error(err))
	}
}
