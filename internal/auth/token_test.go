package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spades-ems/portal/internal/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	manager := NewTokenManager("unit-secret", 60)
	emp := &domain.Employee{ID: "emp-1", DiscordID: "900", Name: "Claire Martin", Grade: domain.GradeDirection}

	token, expiresAt, err := manager.GenerateToken(emp)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.False(t, expiresAt.IsZero())

	claims, err := manager.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "emp-1", claims.EmployeeID)
	assert.Equal(t, "900", claims.DiscordID)
	assert.Equal(t, domain.GradeDirection, claims.Grade)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	emp := &domain.Employee{ID: "emp-1", Grade: domain.GradeMedecin}
	token, _, err := NewTokenManager("secret-a", 60).GenerateToken(emp)
	require.NoError(t, err)

	_, err = NewTokenManager("secret-b", 60).ParseToken(token)
	assert.Error(t, err)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	_, err := NewTokenManager("unit-secret", 60).ParseToken("not-a-token")
	assert.Error(t, err)
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("motdepasse", 4)
	require.NoError(t, err)
	assert.NoError(t, ComparePassword(hash, "motdepasse"))
	assert.Error(t, ComparePassword(hash, "autre"))
}
