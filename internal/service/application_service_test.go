package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spades-ems/portal/internal/domain"
	"github.com/spades-ems/portal/pkg/util"
)

func newApplicationFixture() (*ApplicationService, *fakeApplicationRepo, *fakeVoteRepo, *fakeLogRepo, *recordingDispatcher) {
	apps := newFakeApplicationRepo()
	votes := &fakeVoteRepo{}
	logs := &fakeLogRepo{}
	dispatcher := &recordingDispatcher{}
	svc := NewApplicationService(ApplicationDependencies{
		ApplicationRepo: apps,
		MessageRepo:     &fakeMessageRepo{},
		VoteRepo:        votes,
		LogRepo:         logs,
		Dispatcher:      dispatcher,
	})
	return svc, apps, votes, logs, dispatcher
}

func seedApplication(t *testing.T, apps *fakeApplicationRepo, status domain.ApplicationStatus) *domain.Application {
	t.Helper()
	app := &domain.Application{
		CandidateDiscordID: "111",
		FirstName:          "Jean",
		LastName:           "Dupont",
		BirthDate:          "1995-03-12",
		Motivation:         "soigner",
		Availability:       "soirs",
		Service:            "ems",
		Status:             status,
	}
	require.NoError(t, apps.Create(context.Background(), app))
	return app
}

func direction() *domain.Employee {
	return &domain.Employee{ID: "emp-1", DiscordID: "900", Name: "Claire Martin", Grade: domain.GradeDirection, Active: true}
}

func medecin() *domain.Employee {
	return &domain.Employee{ID: "emp-2", DiscordID: "901", Name: "Paul Girard", Grade: domain.GradeMedecin, Active: true}
}

func assertDomainCode(t *testing.T, err error, code string, status int) {
	t.Helper()
	require.Error(t, err)
	var domainErr *util.DomainError
	require.True(t, errors.As(err, &domainErr), "expected DomainError, got %T", err)
	assert.Equal(t, code, domainErr.Code)
	assert.Equal(t, status, domainErr.HTTPStatus)
}

func TestSubmitRejectsSecondOpenApplication(t *testing.T) {
	svc, _, _, _, dispatcher := newApplicationFixture()
	ctx := context.Background()

	input := ApplicationSubmitInput{
		CandidateDiscordID: "111",
		FirstName:          "Jean",
		LastName:           "Dupont",
		BirthDate:          "1995-03-12",
		Motivation:         "soigner",
		Availability:       "soirs",
		Service:            "ems",
	}
	first, err := svc.Submit(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, first.Status)
	assert.True(t, containsEvent(dispatcher.eventTypes(), "application_submitted"))

	_, err = svc.Submit(ctx, input)
	assertDomainCode(t, err, "CONFLICT", 409)
}

func TestUpdateStatusRejectsTerminalTarget(t *testing.T) {
	svc, apps, _, _, _ := newApplicationFixture()
	app := seedApplication(t, apps, domain.StatusReviewing)

	_, err := svc.UpdateStatus(context.Background(), direction(), app.ID, domain.StatusRecruited)
	assertDomainCode(t, err, "VALIDATION_FAILED", 400)
}

func TestUpdateStatusConflictsOnceClosed(t *testing.T) {
	svc, apps, _, _, _ := newApplicationFixture()
	app := seedApplication(t, apps, domain.StatusRejected)

	_, err := svc.UpdateStatus(context.Background(), direction(), app.ID, domain.StatusReviewing)
	assertDomainCode(t, err, "CONFLICT", 409)
}

func TestUpdateStatusRecordsTrail(t *testing.T) {
	svc, apps, _, logs, dispatcher := newApplicationFixture()
	app := seedApplication(t, apps, domain.StatusPending)

	updated, err := svc.UpdateStatus(context.Background(), medecin(), app.ID, domain.StatusReviewing)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusReviewing, updated.Status)

	trail, err := logs.ListByApplication(context.Background(), app.ID)
	require.NoError(t, err)
	require.Len(t, trail, 1)
	assert.Equal(t, domain.LogActionStatusChange, trail[0].Action)
	assert.True(t, containsEvent(dispatcher.eventTypes(), "application_status_changed"))
}

func TestCloseWithoutReason(t *testing.T) {
	svc, apps, _, _, _ := newApplicationFixture()
	app := seedApplication(t, apps, domain.StatusTraining)

	closed, err := svc.Close(context.Background(), direction(), app.ID, true, "  ")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRecruited, closed.Status)
	assert.Nil(t, closed.CloseReason)
	require.NotNil(t, closed.ClosedAt)
}

func TestCloseRejectsOverlongReason(t *testing.T) {
	svc, apps, _, _, _ := newApplicationFixture()
	app := seedApplication(t, apps, domain.StatusTraining)

	_, err := svc.Close(context.Background(), direction(), app.ID, false, strings.Repeat("n", 501))
	assertDomainCode(t, err, "VALIDATION_FAILED", 400)
}

func TestCloseTwiceConflicts(t *testing.T) {
	svc, apps, _, _, _ := newApplicationFixture()
	app := seedApplication(t, apps, domain.StatusTraining)
	ctx := context.Background()

	closed, err := svc.Close(ctx, direction(), app.ID, true, "formation validée")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRecruited, closed.Status)
	require.NotNil(t, closed.ClosedAt)

	_, err = svc.Close(ctx, direction(), app.ID, false, "changement d'avis")
	assertDomainCode(t, err, "CONFLICT", 409)
}

func TestCloseRejectedSetsReason(t *testing.T) {
	svc, apps, _, _, dispatcher := newApplicationFixture()
	app := seedApplication(t, apps, domain.StatusInterviewFailed)

	closed, err := svc.Close(context.Background(), direction(), app.ID, false, "entretien insuffisant")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRejected, closed.Status)
	require.NotNil(t, closed.CloseReason)
	assert.Equal(t, "entretien insuffisant", *closed.CloseReason)
	assert.True(t, containsEvent(dispatcher.eventTypes(), "application_closed"))
}

func TestCastVoteReplacesPreviousBallot(t *testing.T) {
	svc, apps, _, _, _ := newApplicationFixture()
	app := seedApplication(t, apps, domain.StatusReviewing)
	ctx := context.Background()
	voter := medecin()

	_, err := svc.CastVote(ctx, voter, app.ID, true, nil)
	require.NoError(t, err)
	_, err = svc.CastVote(ctx, voter, app.ID, false, nil)
	require.NoError(t, err)

	summary, err := svc.VoteSummary(ctx, app.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.For)
	assert.Equal(t, 1, summary.Against)
	assert.Len(t, summary.Votes, 1)
}

func TestCastVoteConflictsOnceClosed(t *testing.T) {
	svc, apps, _, _, _ := newApplicationFixture()
	app := seedApplication(t, apps, domain.StatusRecruited)

	_, err := svc.CastVote(context.Background(), medecin(), app.ID, true, nil)
	assertDomainCode(t, err, "CONFLICT", 409)
}

func TestVoteSummaryRatio(t *testing.T) {
	svc, apps, _, _, _ := newApplicationFixture()
	app := seedApplication(t, apps, domain.StatusReviewing)
	ctx := context.Background()

	voters := []*domain.Employee{
		{DiscordID: "901", Name: "A", Grade: domain.GradeMedecin},
		{DiscordID: "902", Name: "B", Grade: domain.GradeMedecin},
		{DiscordID: "903", Name: "C", Grade: domain.GradeInfirmier},
	}
	for i, voter := range voters {
		_, err := svc.CastVote(ctx, voter, app.ID, i < 2, nil)
		require.NoError(t, err)
	}

	summary, err := svc.VoteSummary(ctx, app.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.For)
	assert.Equal(t, 1, summary.Against)
	assert.Equal(t, 66, summary.Ratio())
}

func TestVoteSummaryEmpty(t *testing.T) {
	svc, apps, _, _, _ := newApplicationFixture()
	app := seedApplication(t, apps, domain.StatusPending)

	summary, err := svc.VoteSummary(context.Background(), app.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Ratio())
}

func TestDetailAggregates(t *testing.T) {
	svc, apps, _, _, _ := newApplicationFixture()
	app := seedApplication(t, apps, domain.StatusReviewing)
	ctx := context.Background()

	_, err := svc.CastVote(ctx, medecin(), app.ID, true, nil)
	require.NoError(t, err)

	detail, err := svc.Detail(ctx, app.ID)
	require.NoError(t, err)
	assert.Equal(t, app.ID, detail.Application.ID)
	assert.Equal(t, 1, detail.Votes.For)
	require.Len(t, detail.Logs, 1)
}

func TestDetailUnknownApplication(t *testing.T) {
	svc, _, _, _, _ := newApplicationFixture()

	_, err := svc.Detail(context.Background(), "missing")
	assertDomainCode(t, err, "NOT_FOUND", 404)
}
