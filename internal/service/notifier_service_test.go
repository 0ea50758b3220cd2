package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spades-ems/portal/internal/events"
)

func TestNotifierForwardsEvents(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	bridge := &fakeBridge{}
	NewNotifierService(dispatcher, bridge, nil).RegisterHandlers()
	ctx := context.Background()

	require.NoError(t, dispatcher.Publish(ctx, events.Event{
		Type:          events.EventApplicationStatusChanged,
		ApplicationID: "app-1",
		Payload: events.ApplicationStatusChangedPayload{
			CandidateDiscordID: "111",
			Service:            "ems",
			NewStatus:          "reviewing",
		},
	}))
	require.NoError(t, dispatcher.Publish(ctx, events.Event{
		Type:          events.EventApplicationClosed,
		ApplicationID: "app-1",
		Payload: events.ApplicationClosedPayload{
			CandidateDiscordID: "111",
			CandidateName:      "Jean Dupont",
			Service:            "ems",
			Accepted:           true,
			Reason:             "formation validée",
		},
	}))
	require.NoError(t, dispatcher.Publish(ctx, events.Event{
		Type:          events.EventApplicationVoteCast,
		ApplicationID: "app-1",
		Payload:       events.ApplicationVoteCastPayload{VoterName: "Paul", Vote: true},
	}))

	assert.Equal(t, []string{"status:111", "decision:app-1:111:Jean Dupont", "vote:app-1"}, bridge.notified)
}

func TestNotifierIgnoresMalformedPayload(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	bridge := &fakeBridge{}
	NewNotifierService(dispatcher, bridge, nil).RegisterHandlers()

	require.NoError(t, dispatcher.Publish(context.Background(), events.Event{
		Type:    events.EventApplicationClosed,
		Payload: "not a struct",
	}))
	assert.Empty(t, bridge.notified)
}
