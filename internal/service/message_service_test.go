package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spades-ems/portal/internal/domain"
	"github.com/spades-ems/portal/pkg/util"
)

func newMessageFixture() (*MessageService, *fakeApplicationRepo, *fakeMessageRepo, *fakeBridge) {
	apps := newFakeApplicationRepo()
	messages := &fakeMessageRepo{}
	bridge := &fakeBridge{}
	svc := NewMessageService(MessageDependencies{
		ApplicationRepo: apps,
		MessageRepo:     messages,
		LogRepo:         &fakeLogRepo{},
		Bridge:          bridge,
	})
	return svc, apps, messages, bridge
}

func TestSendAssignsSequentialNumber(t *testing.T) {
	svc, apps, _, bridge := newMessageFixture()
	app := seedApplication(t, apps, domain.StatusReviewing)
	ctx := context.Background()

	first, err := svc.Send(ctx, medecin(), app.ID, "Bonjour, merci pour votre candidature.")
	require.NoError(t, err)
	require.NotNil(t, first.MessageNumber)
	assert.Equal(t, 1, *first.MessageNumber)

	second, err := svc.Send(ctx, medecin(), app.ID, "Un entretien est prévu jeudi.")
	require.NoError(t, err)
	assert.Equal(t, 2, *second.MessageNumber)

	require.Len(t, bridge.delivered, 2)
	assert.Equal(t, "111", bridge.delivered[0].DiscordID)
	assert.Equal(t, 2, bridge.delivered[1].Number)
}

func TestSendNumberingCountsDeletedMessages(t *testing.T) {
	svc, apps, _, _ := newMessageFixture()
	app := seedApplication(t, apps, domain.StatusReviewing)
	ctx := context.Background()
	actor := medecin()

	first, err := svc.Send(ctx, actor, app.ID, "premier")
	require.NoError(t, err)
	_, err = svc.Send(ctx, actor, app.ID, "deuxième")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, actor, app.ID, *first.MessageNumber))

	third, err := svc.Send(ctx, actor, app.ID, "troisième")
	require.NoError(t, err)
	assert.Equal(t, 3, *third.MessageNumber)
}

func TestSendFailedDeliveryPersistsNothing(t *testing.T) {
	apps := newFakeApplicationRepo()
	messages := &fakeMessageRepo{}
	logs := &fakeLogRepo{}
	bridge := &fakeBridge{deliverErr: util.NewUpstreamError("bot is unreachable", nil)}
	svc := NewMessageService(MessageDependencies{
		ApplicationRepo: apps,
		MessageRepo:     messages,
		LogRepo:         logs,
		Bridge:          bridge,
	})
	app := seedApplication(t, apps, domain.StatusReviewing)

	_, err := svc.Send(context.Background(), medecin(), app.ID, "jamais livré")
	assertDomainCode(t, err, "UPSTREAM_FAILED", 502)

	count, err := messages.CountOutbound(context.Background(), app.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	trail, err := logs.ListByApplication(context.Background(), app.ID)
	require.NoError(t, err)
	assert.Empty(t, trail)
}

func TestSendConflictsWhenApplicationClosed(t *testing.T) {
	svc, apps, _, _ := newMessageFixture()
	app := seedApplication(t, apps, domain.StatusRecruited)

	_, err := svc.Send(context.Background(), medecin(), app.ID, "trop tard")
	assertDomainCode(t, err, "CONFLICT", 409)
}

func TestSendRequiresContent(t *testing.T) {
	svc, apps, _, _ := newMessageFixture()
	app := seedApplication(t, apps, domain.StatusReviewing)

	_, err := svc.Send(context.Background(), medecin(), app.ID, "   ")
	assertDomainCode(t, err, "VALIDATION_FAILED", 400)
}

func TestEditBySenderPropagates(t *testing.T) {
	svc, apps, _, bridge := newMessageFixture()
	app := seedApplication(t, apps, domain.StatusReviewing)
	ctx := context.Background()
	actor := medecin()

	sent, err := svc.Send(ctx, actor, app.ID, "brouillon")
	require.NoError(t, err)

	edited, err := svc.Edit(ctx, actor, app.ID, *sent.MessageNumber, "version corrigée")
	require.NoError(t, err)
	assert.Equal(t, "version corrigée", edited.Content)
	require.NotNil(t, edited.EditedAt)
	require.Len(t, bridge.edited, 1)
}

func TestEditForbiddenForOtherStaff(t *testing.T) {
	svc, apps, _, _ := newMessageFixture()
	app := seedApplication(t, apps, domain.StatusReviewing)
	ctx := context.Background()

	sent, err := svc.Send(ctx, medecin(), app.ID, "message original")
	require.NoError(t, err)

	other := &domain.Employee{DiscordID: "999", Name: "Autre Infirmier", Grade: domain.GradeInfirmier}
	_, err = svc.Edit(ctx, other, app.ID, *sent.MessageNumber, "détourné")
	assertDomainCode(t, err, "FORBIDDEN", 403)
}

func TestEditAllowedForDirection(t *testing.T) {
	svc, apps, _, _ := newMessageFixture()
	app := seedApplication(t, apps, domain.StatusReviewing)
	ctx := context.Background()

	sent, err := svc.Send(ctx, medecin(), app.ID, "message original")
	require.NoError(t, err)

	edited, err := svc.Edit(ctx, direction(), app.ID, *sent.MessageNumber, "repris par la direction")
	require.NoError(t, err)
	assert.Equal(t, "repris par la direction", edited.Content)
}

func TestEditDeletedMessageConflicts(t *testing.T) {
	svc, apps, _, _ := newMessageFixture()
	app := seedApplication(t, apps, domain.StatusReviewing)
	ctx := context.Background()
	actor := medecin()

	sent, err := svc.Send(ctx, actor, app.ID, "à supprimer")
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, actor, app.ID, *sent.MessageNumber))

	_, err = svc.Edit(ctx, actor, app.ID, *sent.MessageNumber, "trop tard")
	assertDomainCode(t, err, "CONFLICT", 409)
}

func TestEditSurvivesPropagationFailure(t *testing.T) {
	svc, apps, _, bridge := newMessageFixture()
	app := seedApplication(t, apps, domain.StatusReviewing)
	ctx := context.Background()
	actor := medecin()

	sent, err := svc.Send(ctx, actor, app.ID, "original")
	require.NoError(t, err)

	bridge.editErr = util.NewUpstreamError("bot is unreachable", nil)
	edited, err := svc.Edit(ctx, actor, app.ID, *sent.MessageNumber, "corrigé")
	require.NoError(t, err)
	assert.Equal(t, "corrigé", edited.Content)
}

func TestDeleteTwiceConflicts(t *testing.T) {
	svc, apps, _, bridge := newMessageFixture()
	app := seedApplication(t, apps, domain.StatusReviewing)
	ctx := context.Background()
	actor := medecin()

	sent, err := svc.Send(ctx, actor, app.ID, "éphémère")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, actor, app.ID, *sent.MessageNumber))
	require.Len(t, bridge.deleted, 1)

	err = svc.Delete(ctx, actor, app.ID, *sent.MessageNumber)
	assertDomainCode(t, err, "CONFLICT", 409)
}

func TestDeleteForbiddenForOtherStaff(t *testing.T) {
	svc, apps, _, _ := newMessageFixture()
	app := seedApplication(t, apps, domain.StatusReviewing)
	ctx := context.Background()

	sent, err := svc.Send(ctx, medecin(), app.ID, "protégé")
	require.NoError(t, err)

	other := &domain.Employee{DiscordID: "999", Name: "Autre", Grade: domain.GradeAmbulancier}
	err = svc.Delete(ctx, other, app.ID, *sent.MessageNumber)
	assertDomainCode(t, err, "FORBIDDEN", 403)
}

func TestRecordCandidateReply(t *testing.T) {
	svc, apps, messages, _ := newMessageFixture()
	app := seedApplication(t, apps, domain.StatusReviewing)

	msg, err := svc.RecordCandidateReply(context.Background(), "111", "Jean Dupont", "Merci, je serai disponible.")
	require.NoError(t, err)
	assert.Equal(t, app.ID, msg.ApplicationID)
	assert.True(t, msg.IsFromCandidate)
	assert.Nil(t, msg.MessageNumber)

	stored, err := messages.ListByApplication(context.Background(), app.ID)
	require.NoError(t, err)
	require.Len(t, stored, 1)
}

func TestRecordCandidateReplyWithoutOpenApplication(t *testing.T) {
	svc, apps, _, _ := newMessageFixture()
	seedApplication(t, apps, domain.StatusRejected)

	_, err := svc.RecordCandidateReply(context.Background(), "111", "Jean Dupont", "Il y a quelqu'un ?")
	assertDomainCode(t, err, "NOT_FOUND", 404)
}
