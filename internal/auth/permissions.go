package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spades-ems/portal/internal/domain"
	"github.com/spades-ems/portal/pkg/util"
)

// Permission identifies one guarded capability, keyed "category.action".
type Permission string

const (
	PermApplicationsView   Permission = "applications.view"
	PermApplicationsManage Permission = "applications.manage"
	PermApplicationsVote   Permission = "applications.vote"
	PermApplicationsClose  Permission = "applications.close"
	PermPatientsView       Permission = "patients.view"
	PermPatientsManage     Permission = "patients.manage"
	PermPatientsDelete     Permission = "patients.delete"
	PermTariffsView        Permission = "tariffs.view"
	PermTariffsManage      Permission = "tariffs.manage"
	PermMedicationsView    Permission = "medications.view"
	PermMedicationsManage  Permission = "medications.manage"
	PermWikiView           Permission = "wiki.view"
	PermWikiManage         Permission = "wiki.manage"
	PermShiftsDeclare      Permission = "shifts.declare"
	PermShiftsPayroll      Permission = "shifts.payroll"
	PermEmployeesManage    Permission = "employees.manage"
	PermAuditView          Permission = "audit.view"
)

// defaultGrants maps each permission to the grades allowed to use it.
// Direction is implied everywhere and never listed.
var defaultGrants = map[Permission][]domain.Grade{
	PermApplicationsView:   {domain.GradeChirurgien, domain.GradeMedecin},
	PermApplicationsManage: {domain.GradeChirurgien, domain.GradeMedecin},
	PermApplicationsVote:   {domain.GradeChirurgien, domain.GradeMedecin, domain.GradeInfirmier},
	PermApplicationsClose:  {domain.GradeChirurgien},
	PermPatientsView:       {domain.GradeChirurgien, domain.GradeMedecin, domain.GradeInfirmier, domain.GradeAmbulancier},
	PermPatientsManage:     {domain.GradeChirurgien, domain.GradeMedecin, domain.GradeInfirmier},
	PermPatientsDelete:     {domain.GradeChirurgien},
	PermTariffsView:        {domain.GradeChirurgien, domain.GradeMedecin, domain.GradeInfirmier, domain.GradeAmbulancier},
	PermTariffsManage:      {domain.GradeChirurgien},
	PermMedicationsView:    {domain.GradeChirurgien, domain.GradeMedecin, domain.GradeInfirmier, domain.GradeAmbulancier},
	PermMedicationsManage:  {domain.GradeChirurgien, domain.GradeMedecin},
	PermWikiView:           {domain.GradeChirurgien, domain.GradeMedecin, domain.GradeInfirmier, domain.GradeAmbulancier},
	PermWikiManage:         {domain.GradeChirurgien},
	PermShiftsDeclare:      {domain.GradeChirurgien, domain.GradeMedecin, domain.GradeInfirmier, domain.GradeAmbulancier},
	PermShiftsPayroll:      {},
	PermEmployeesManage:    {},
	PermAuditView:          {},
}

// HasPermission reports whether a grade may exercise the permission.
func HasPermission(grade domain.Grade, perm Permission) bool {
	if grade == domain.GradeDirection {
		return true
	}
	for _, allowed := range defaultGrants[perm] {
		if allowed == grade {
			return true
		}
	}
	return false
}

// RequirePermission guards a route with one permission check.
func RequirePermission(perm Permission) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return util.NewUnauthorized("authentication required")
		}
		if !HasPermission(principal.Grade(), perm) {
			return util.NewForbidden("insufficient grade")
		}
		return c.Next()
	}
}

// RequireGrade ensures the caller holds one of the listed grades.
func RequireGrade(allowed ...domain.Grade) fiber.Handler {
	allowedSet := make(map[domain.Grade]struct{}, len(allowed))
	for _, grade := range allowed {
		allowedSet[grade] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return util.NewUnauthorized("authentication required")
		}
		if principal.Grade() == domain.GradeDirection {
			return c.Next()
		}
		if _, exists := allowedSet[principal.Grade()]; !exists {
			return util.NewForbidden("insufficient grade")
		}
		return c.Next()
	}
}
