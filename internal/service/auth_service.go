package service

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spades-ems/portal/internal/auth"
	"github.com/spades-ems/portal/internal/config"
	"github.com/spades-ems/portal/internal/domain"
	"github.com/spades-ems/portal/internal/repository"
	"github.com/spades-ems/portal/pkg/util"
)

// AuthService coordinates login and employee account management.
type AuthService struct {
	employees  repository.EmployeeRepository
	audits     *AuditService
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// EmployeeInput describes account creation and update fields.
type EmployeeInput struct {
	DiscordID string
	Name      string
	Email     string
	Password  string
	Grade     domain.Grade
	Active    bool
}

// NewAuthService builds the service.
func NewAuthService(cfg *config.Config, employees repository.EmployeeRepository, audits *AuditService) *AuthService {
	return &AuthService{
		employees:  employees,
		audits:     audits,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// Login authenticates an employee by email.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.Employee, string, time.Time, error) {
	emp, err := s.employees.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, "", time.Time{}, util.NewUnauthorized("invalid credentials")
		}
		return nil, "", time.Time{}, util.MapError(err)
	}
	if !emp.Active {
		return nil, "", time.Time{}, util.NewUnauthorized("account disabled")
	}
	if err := auth.ComparePassword(emp.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, util.NewUnauthorized("invalid credentials")
	}
	token, exp, err := s.tokenMgr.GenerateToken(emp)
	if err != nil {
		return nil, "", time.Time{}, util.MapError(err)
	}
	return emp, token, exp, nil
}

// ChangePassword verifies the current password before updating.
func (s *AuthService) ChangePassword(ctx context.Context, employeeID, currentPassword, newPassword string) error {
	if len(newPassword) < 8 {
		return util.NewValidationError("password must be at least 8 characters", nil)
	}
	emp, err := s.employees.GetByID(ctx, employeeID)
	if err != nil {
		return util.MapError(err)
	}
	if err := auth.ComparePassword(emp.PasswordHash, currentPassword); err != nil {
		return util.NewUnauthorized("invalid credentials")
	}
	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return util.MapError(err)
	}
	return util.MapError(s.employees.UpdatePassword(ctx, emp.ID, hash))
}

// CreateEmployee registers a staff account.
func (s *AuthService) CreateEmployee(ctx context.Context, actor *domain.Employee, input EmployeeInput) (*domain.Employee, error) {
	if !input.Grade.IsValid() {
		return nil, util.NewValidationError("unknown grade", map[string]any{"grade": input.Grade})
	}
	if len(input.Password) < 8 {
		return nil, util.NewValidationError("password must be at least 8 characters", nil)
	}
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if _, err := s.employees.GetByEmail(ctx, email); err == nil {
		return nil, util.NewConflict("email already registered", nil)
	} else if err != pgx.ErrNoRows {
		return nil, util.MapError(err)
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, util.MapError(err)
	}
	emp := &domain.Employee{
		DiscordID:    strings.TrimSpace(input.DiscordID),
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		PasswordHash: hash,
		Grade:        input.Grade,
		Active:       true,
	}
	if err := s.employees.Create(ctx, emp); err != nil {
		return nil, util.MapError(err)
	}
	s.audits.Record(ctx, actor, domain.AuditActionCreate, "employees", &emp.ID, nil, employeeSnapshot(emp))
	return emp, nil
}

// UpdateEmployee changes account data, grade or active flag.
func (s *AuthService) UpdateEmployee(ctx context.Context, actor *domain.Employee, id string, input EmployeeInput) (*domain.Employee, error) {
	if !input.Grade.IsValid() {
		return nil, util.NewValidationError("unknown grade", map[string]any{"grade": input.Grade})
	}
	emp, err := s.employees.GetByID(ctx, id)
	if err != nil {
		return nil, util.MapError(err)
	}
	before := employeeSnapshot(emp)

	emp.Name = strings.TrimSpace(input.Name)
	emp.Email = strings.ToLower(strings.TrimSpace(input.Email))
	emp.Grade = input.Grade
	emp.Active = input.Active
	if err := s.employees.Update(ctx, emp); err != nil {
		return nil, util.MapError(err)
	}
	s.audits.Record(ctx, actor, domain.AuditActionUpdate, "employees", &emp.ID, before, employeeSnapshot(emp))
	return emp, nil
}

// ListEmployees returns staff accounts.
func (s *AuthService) ListEmployees(ctx context.Context, includeInactive bool) ([]domain.Employee, error) {
	emps, err := s.employees.List(ctx, includeInactive)
	if err != nil {
		return nil, util.MapError(err)
	}
	return emps, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func employeeSnapshot(emp *domain.Employee) map[string]any {
	return map[string]any{
		"discord_id": emp.DiscordID,
		"name":       emp.Name,
		"email":      emp.Email,
		"grade":      emp.Grade,
		"active":     emp.Active,
	}
}
