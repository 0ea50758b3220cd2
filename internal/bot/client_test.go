package bot

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spades-ems/portal/internal/config"
	"github.com/spades-ems/portal/pkg/util"
)

func newTestClient(t *testing.T, handler http.Handler) Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(config.BotConfig{
		BaseURL:        server.URL,
		Secret:         "test-secret",
		TimeoutSeconds: 5,
	}, zap.NewNop())
}

func TestDeliverDirectMessage(t *testing.T) {
	var gotAuth string
	var gotBody map[string]any
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/messages", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_ = json.NewEncoder(w).Encode(map[string]string{"message_id": "dm-77"})
	}))

	messageID, err := client.DeliverDirectMessage(context.Background(), "111", "bonjour", 3)
	require.NoError(t, err)
	assert.Equal(t, "dm-77", messageID)
	assert.Equal(t, "Bearer test-secret", gotAuth)
	assert.Equal(t, "111", gotBody["discord_id"])
	assert.Equal(t, float64(3), gotBody["message_number"])
}

func TestDeliverDirectMessageBotError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "user has DMs disabled"})
	}))

	_, err := client.DeliverDirectMessage(context.Background(), "111", "bonjour", 1)
	require.Error(t, err)
	var domainErr *util.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "UPSTREAM_FAILED", domainErr.Code)
	assert.Equal(t, "user has DMs disabled", domainErr.Message)
}

func TestDeliverDirectMessageUnreachable(t *testing.T) {
	client := NewClient(config.BotConfig{
		BaseURL:        "http://127.0.0.1:1",
		Secret:         "test-secret",
		TimeoutSeconds: 1,
	}, zap.NewNop())

	_, err := client.DeliverDirectMessage(context.Background(), "111", "bonjour", 1)
	require.Error(t, err)
	var domainErr *util.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "UPSTREAM_FAILED", domainErr.Code)
	assert.Equal(t, http.StatusBadGateway, domainErr.HTTPStatus)
}

func TestResolveMember(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/members/111", r.URL.Path)
		_ = json.NewEncoder(w).Encode(Member{DiscordID: "111", DisplayName: "Jean", IsInGuild: true})
	}))

	member, err := client.ResolveMember(context.Background(), "111")
	require.NoError(t, err)
	assert.Equal(t, "Jean", member.DisplayName)
	assert.True(t, member.IsInGuild)
}

func TestResolveMemberNotFound(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := client.ResolveMember(context.Background(), "999")
	require.Error(t, err)
	var domainErr *util.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
}

func TestNotifyDecision(t *testing.T) {
	var gotBody map[string]any
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/notify/decision", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusNoContent)
	}))

	err := client.NotifyDecision(context.Background(), "app-1", "111", "Jean Dupont", "ems", true, "formation validée")
	require.NoError(t, err)
	assert.Equal(t, "app-1", gotBody["application_id"])
	assert.Equal(t, "111", gotBody["discord_id"])
	assert.Equal(t, "Jean Dupont", gotBody["candidate_name"])
	assert.Equal(t, "ems", gotBody["service"])
	assert.Equal(t, true, gotBody["accepted"])
	assert.Equal(t, "formation validée", gotBody["reason"])
}

func TestEditDirectMessage(t *testing.T) {
	var gotBody map[string]string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/messages/edit", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusNoContent)
	}))

	err := client.EditDirectMessage(context.Background(), "111", "dm-77", "corrigé")
	require.NoError(t, err)
	assert.Equal(t, "dm-77", gotBody["discord_message_id"])
}
