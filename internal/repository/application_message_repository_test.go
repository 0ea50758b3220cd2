package repository

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spades-ems/portal/internal/domain"
)

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func TestMessageCreateReturnsGeneratedFields(t *testing.T) {
	mock := newMockPool(t)
	repo := NewApplicationMessageRepository(mock)

	number := 3
	discordID := "dm-42"
	now := time.Now()
	mock.ExpectQuery(`INSERT INTO application_messages`).
		WithArgs("app-1", "901", "Paul Girard", "bonjour", false, &number, &discordID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow("msg-1", now))

	msg := &domain.ApplicationMessage{
		ApplicationID:    "app-1",
		SenderDiscordID:  "901",
		SenderName:       "Paul Girard",
		Content:          "bonjour",
		MessageNumber:    &number,
		DiscordMessageID: &discordID,
	}
	require.NoError(t, repo.Create(context.Background(), msg))
	assert.Equal(t, "msg-1", msg.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMessageCountOutbound(t *testing.T) {
	mock := newMockPool(t)
	repo := NewApplicationMessageRepository(mock)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM application_messages`).
		WithArgs("app-1").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(4))

	count, err := repo.CountOutbound(context.Background(), "app-1")
	require.NoError(t, err)
	assert.Equal(t, 4, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMessageMarkDeletedMissingRow(t *testing.T) {
	mock := newMockPool(t)
	repo := NewApplicationMessageRepository(mock)

	mock.ExpectExec(`UPDATE application_messages SET is_deleted=TRUE`).
		WithArgs("missing").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.MarkDeleted(context.Background(), "missing")
	assert.ErrorIs(t, err, pgx.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVoteUpsertReplacesBallot(t *testing.T) {
	mock := newMockPool(t)
	repo := NewApplicationVoteRepository(mock)

	now := time.Now()
	mock.ExpectQuery(`INSERT INTO application_votes`).
		WithArgs("app-1", "901", "Paul Girard", true, (*string)(nil)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow("vote-1", now, now))

	vote := &domain.ApplicationVote{
		ApplicationID:  "app-1",
		VoterDiscordID: "901",
		VoterName:      "Paul Girard",
		Vote:           true,
	}
	require.NoError(t, repo.Upsert(context.Background(), vote))
	assert.Equal(t, "vote-1", vote.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicationUpdateMissingRow(t *testing.T) {
	mock := newMockPool(t)
	repo := NewApplicationRepository(mock)

	mock.ExpectExec(`UPDATE applications SET`).
		WithArgs(domain.StatusReviewing, (*string)(nil), (*string)(nil), (*time.Time)(nil), "missing").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.Update(context.Background(), &domain.Application{ID: "missing", Status: domain.StatusReviewing})
	assert.ErrorIs(t, err, pgx.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}
