package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type manualTimer struct {
	fn      func()
	stopped bool
}

func (t *manualTimer) Stop() bool {
	t.stopped = true
	return true
}

func newManualFactory() (TimerFactory, *[]*manualTimer) {
	timers := &[]*manualTimer{}
	factory := func(_ time.Duration, fn func()) Timer {
		timer := &manualTimer{fn: fn}
		*timers = append(*timers, timer)
		return timer
	}
	return factory, timers
}

func TestParseDelay(t *testing.T) {
	cases := []struct {
		raw     string
		want    time.Duration
		wantErr bool
	}{
		{raw: "30m", want: 30 * time.Minute},
		{raw: "45", want: 45 * time.Minute},
		{raw: "2h", want: 2 * time.Hour},
		{raw: "1h30", want: 90 * time.Minute},
		{raw: "1h30m", want: 90 * time.Minute},
		{raw: "24h", want: 24 * time.Hour},
		{raw: "", wantErr: true},
		{raw: "0m", wantErr: true},
		{raw: "25h", wantErr: true},
		{raw: "demain", wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			got, err := ParseDelay(tc.raw)
			if tc.wantErr {
				assertDomainCode(t, err, "VALIDATION_FAILED", 400)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestScheduleAndFire(t *testing.T) {
	factory, timers := newManualFactory()
	bridge := &fakeBridge{}
	svc := NewReminderService(bridge, nil, factory)

	reminder, err := svc.Schedule("111", "réunion staff", 30*time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, reminder.ID)
	require.Len(t, svc.ListPending("111"), 1)

	require.Len(t, *timers, 1)
	(*timers)[0].fn()

	require.Len(t, bridge.delivered, 1)
	assert.Equal(t, "⏰ Rappel : réunion staff", bridge.delivered[0].Content)
	assert.Empty(t, svc.ListPending("111"))
}

func TestScheduleValidation(t *testing.T) {
	factory, _ := newManualFactory()
	svc := NewReminderService(&fakeBridge{}, nil, factory)

	_, err := svc.Schedule("111", "", 10*time.Minute)
	assertDomainCode(t, err, "VALIDATION_FAILED", 400)

	_, err = svc.Schedule("111", "trop loin", 25*time.Hour)
	assertDomainCode(t, err, "VALIDATION_FAILED", 400)
}

func TestCancelStopsTimer(t *testing.T) {
	factory, timers := newManualFactory()
	svc := NewReminderService(&fakeBridge{}, nil, factory)

	reminder, err := svc.Schedule("111", "pause café", time.Hour)
	require.NoError(t, err)

	require.NoError(t, svc.Cancel(reminder.ID))
	assert.True(t, (*timers)[0].stopped)
	assert.Empty(t, svc.ListPending("111"))

	err = svc.Cancel(reminder.ID)
	assertDomainCode(t, err, "NOT_FOUND", 404)
}

func TestListPendingScopedToRecipient(t *testing.T) {
	factory, _ := newManualFactory()
	svc := NewReminderService(&fakeBridge{}, nil, factory)

	_, err := svc.Schedule("111", "garde de nuit", time.Hour)
	require.NoError(t, err)
	_, err = svc.Schedule("222", "autre garde", time.Hour)
	require.NoError(t, err)

	assert.Len(t, svc.ListPending("111"), 1)
	assert.Len(t, svc.ListPending("222"), 1)
	assert.Empty(t, svc.ListPending("333"))
}
