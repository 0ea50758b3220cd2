package bot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/spades-ems/portal/internal/config"
	"github.com/spades-ems/portal/pkg/util"
)

// Client talks to the companion Discord bot over its private HTTP API.
// Every call is authenticated with the shared bot secret.
type Client interface {
	// DeliverDirectMessage asks the bot to DM a candidate. It returns the
	// Discord message id of the delivered DM so later edits and deletions
	// can reference it.
	DeliverDirectMessage(ctx context.Context, discordID, content string, messageNumber int) (string, error)
	EditDirectMessage(ctx context.Context, discordID, discordMessageID, content string) error
	DeleteDirectMessage(ctx context.Context, discordID, discordMessageID string) error
	NotifyDecision(ctx context.Context, applicationID, discordID, candidateName, service string, accepted bool, reason string) error
	NotifyStatus(ctx context.Context, discordID, service, status string) error
	NotifyVote(ctx context.Context, applicationID, voterName string, vote bool) error
	// ResolveMember looks a guild member up by Discord id, returning the
	// display name the bot sees.
	ResolveMember(ctx context.Context, discordID string) (*Member, error)
}

// Member is the subset of guild member data the portal needs.
type Member struct {
	DiscordID   string `json:"discord_id"`
	DisplayName string `json:"display_name"`
	IsInGuild   bool   `json:"is_in_guild"`
}

type httpClient struct {
	baseURL string
	secret  string
	client  *http.Client
	logger  *zap.Logger
}

// NewClient builds the bot bridge client from configuration.
func NewClient(cfg config.BotConfig, logger *zap.Logger) Client {
	return &httpClient{
		baseURL: cfg.BaseURL,
		secret:  cfg.Secret,
		client:  &http.Client{Timeout: cfg.Timeout()},
		logger:  logger,
	}
}

type deliverRequest struct {
	DiscordID     string `json:"discord_id"`
	Content       string `json:"content"`
	MessageNumber int    `json:"message_number"`
}

type deliverResponse struct {
	MessageID string `json:"message_id"`
}

func (c *httpClient) DeliverDirectMessage(ctx context.Context, discordID, content string, messageNumber int) (string, error) {
	var resp deliverResponse
	err := c.post(ctx, "/api/messages", deliverRequest{
		DiscordID:     discordID,
		Content:       content,
		MessageNumber: messageNumber,
	}, &resp)
	if err != nil {
		return "", err
	}
	return resp.MessageID, nil
}

func (c *httpClient) EditDirectMessage(ctx context.Context, discordID, discordMessageID, content string) error {
	return c.post(ctx, "/api/messages/edit", map[string]string{
		"discord_id":         discordID,
		"discord_message_id": discordMessageID,
		"content":            content,
	}, nil)
}

func (c *httpClient) DeleteDirectMessage(ctx context.Context, discordID, discordMessageID string) error {
	return c.post(ctx, "/api/messages/delete", map[string]string{
		"discord_id":         discordID,
		"discord_message_id": discordMessageID,
	}, nil)
}

func (c *httpClient) NotifyDecision(ctx context.Context, applicationID, discordID, candidateName, service string, accepted bool, reason string) error {
	return c.post(ctx, "/api/notify/decision", map[string]any{
		"application_id": applicationID,
		"discord_id":     discordID,
		"candidate_name": candidateName,
		"service":        service,
		"accepted":       accepted,
		"reason":         reason,
	}, nil)
}

func (c *httpClient) NotifyStatus(ctx context.Context, discordID, service, status string) error {
	return c.post(ctx, "/api/notify/status", map[string]string{
		"discord_id": discordID,
		"service":    service,
		"status":     status,
	}, nil)
}

func (c *httpClient) NotifyVote(ctx context.Context, applicationID, voterName string, vote bool) error {
	return c.post(ctx, "/api/notify/vote", map[string]any{
		"application_id": applicationID,
		"voter_name":     voterName,
		"vote":           vote,
	}, nil)
}

func (c *httpClient) ResolveMember(ctx context.Context, discordID string) (*Member, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/members/"+discordID, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.secret)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, util.NewUpstreamError("bot is unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, util.NewNotFound("guild member", map[string]any{"discord_id": discordID})
	}
	if resp.StatusCode != http.StatusOK {
		return nil, c.statusError(resp)
	}

	var member Member
	if err := json.NewDecoder(resp.Body).Decode(&member); err != nil {
		return nil, util.NewUpstreamError("bot returned malformed response", err)
	}
	return &member, nil
}

func (c *httpClient) post(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.secret)

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Warn("bot request failed", zap.String("path", path), zap.Error(err))
		return util.NewUpstreamError("bot is unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.statusError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return util.NewUpstreamError("bot returned malformed response", err)
	}
	return nil
}

type errorResponse struct {
	Error string `json:"error"`
}

func (c *httpClient) statusError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var parsed errorResponse
	message := fmt.Sprintf("bot rejected request with status %d", resp.StatusCode)
	if json.Unmarshal(raw, &parsed) == nil && parsed.Error != "" {
		message = parsed.Error
	}
	return util.NewUpstreamError(message, nil)
}
