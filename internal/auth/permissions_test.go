package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spades-ems/portal/internal/domain"
)

func TestDirectionHasEveryPermission(t *testing.T) {
	for perm := range defaultGrants {
		assert.True(t, HasPermission(domain.GradeDirection, perm), "direction should hold %s", perm)
	}
}

func TestGradeGrants(t *testing.T) {
	cases := []struct {
		grade domain.Grade
		perm  Permission
		want  bool
	}{
		{domain.GradeMedecin, PermApplicationsVote, true},
		{domain.GradeMedecin, PermApplicationsClose, false},
		{domain.GradeChirurgien, PermApplicationsClose, true},
		{domain.GradeInfirmier, PermApplicationsVote, true},
		{domain.GradeInfirmier, PermApplicationsView, false},
		{domain.GradeAmbulancier, PermPatientsView, true},
		{domain.GradeAmbulancier, PermPatientsManage, false},
		{domain.GradeChirurgien, PermShiftsPayroll, false},
		{domain.GradeChirurgien, PermEmployeesManage, false},
		{domain.GradeMedecin, PermAuditView, false},
		{domain.GradeAmbulancier, PermShiftsDeclare, true},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, HasPermission(tc.grade, tc.perm), "%s / %s", tc.grade, tc.perm)
	}
}

func TestUnknownPermissionDeniedBelowDirection(t *testing.T) {
	assert.False(t, HasPermission(domain.GradeChirurgien, Permission("nonexistent.action")))
	assert.True(t, HasPermission(domain.GradeDirection, Permission("nonexistent.action")))
}
