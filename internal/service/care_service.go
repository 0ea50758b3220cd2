package service

import (
	"context"
	"strings"

	"github.com/spades-ems/portal/internal/domain"
	"github.com/spades-ems/portal/internal/repository"
	"github.com/spades-ems/portal/pkg/util"
)

// CareService manages the tariff grid.
type CareService struct {
	care   repository.CareRepository
	audits *AuditService
}

// CareTypeInput describes one billed act.
type CareTypeInput struct {
	CategoryID  string
	Name        string
	Price       int
	Description *string
}

// NewCareService constructs the service.
func NewCareService(care repository.CareRepository, audits *AuditService) *CareService {
	return &CareService{care: care, audits: audits}
}

// CreateCategory adds a grid section.
func (s *CareService) CreateCategory(ctx context.Context, actor *domain.Employee, name string, sortOrder int) (*domain.CareCategory, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, util.NewValidationError("category name is required", nil)
	}
	category := &domain.CareCategory{Name: name, SortOrder: sortOrder}
	if err := s.care.CreateCategory(ctx, category); err != nil {
		return nil, util.MapError(err)
	}
	s.audits.Record(ctx, actor, domain.AuditActionCreate, "care_categories", &category.ID, nil, map[string]any{"name": name})
	return category, nil
}

// ListCategories returns grid sections in display order.
func (s *CareService) ListCategories(ctx context.Context) ([]domain.CareCategory, error) {
	categories, err := s.care.ListCategories(ctx)
	if err != nil {
		return nil, util.MapError(err)
	}
	return categories, nil
}

// DeleteCategory removes an empty grid section.
func (s *CareService) DeleteCategory(ctx context.Context, actor *domain.Employee, id string) error {
	if err := s.care.DeleteCategory(ctx, id); err != nil {
		return util.MapError(err)
	}
	s.audits.Record(ctx, actor, domain.AuditActionDelete, "care_categories", &id, nil, nil)
	return nil
}

// CreateType adds one billed act to the grid.
func (s *CareService) CreateType(ctx context.Context, actor *domain.Employee, input CareTypeInput) (*domain.CareType, error) {
	if err := validateCareTypeInput(input); err != nil {
		return nil, err
	}
	careType := &domain.CareType{
		CategoryID:  input.CategoryID,
		Name:        strings.TrimSpace(input.Name),
		Price:       input.Price,
		Description: input.Description,
	}
	if err := s.care.CreateType(ctx, careType); err != nil {
		return nil, util.MapError(err)
	}
	s.audits.Record(ctx, actor, domain.AuditActionCreate, "care_types", &careType.ID, nil, careTypeSnapshot(careType))
	return careType, nil
}

// UpdateType rewrites one billed act.
func (s *CareService) UpdateType(ctx context.Context, actor *domain.Employee, id string, input CareTypeInput) (*domain.CareType, error) {
	if err := validateCareTypeInput(input); err != nil {
		return nil, err
	}
	existing, err := s.care.GetTypeByID(ctx, id)
	if err != nil {
		return nil, util.MapError(err)
	}
	before := careTypeSnapshot(existing)

	existing.CategoryID = input.CategoryID
	existing.Name = strings.TrimSpace(input.Name)
	existing.Price = input.Price
	existing.Description = input.Description
	if err := s.care.UpdateType(ctx, existing); err != nil {
		return nil, util.MapError(err)
	}
	s.audits.Record(ctx, actor, domain.AuditActionUpdate, "care_types", &id, before, careTypeSnapshot(existing))
	return existing, nil
}

// ListTypes returns the full grid with category names.
func (s *CareService) ListTypes(ctx context.Context) ([]domain.CareType, error) {
	types, err := s.care.ListTypes(ctx)
	if err != nil {
		return nil, util.MapError(err)
	}
	return types, nil
}

// DeleteType removes one billed act.
func (s *CareService) DeleteType(ctx context.Context, actor *domain.Employee, id string) error {
	existing, err := s.care.GetTypeByID(ctx, id)
	if err != nil {
		return util.MapError(err)
	}
	if err := s.care.DeleteType(ctx, id); err != nil {
		return util.MapError(err)
	}
	s.audits.Record(ctx, actor, domain.AuditActionDelete, "care_types", &id, careTypeSnapshot(existing), nil)
	return nil
}

func validateCareTypeInput(input CareTypeInput) error {
	details := map[string]any{}
	if strings.TrimSpace(input.Name) == "" {
		details["name"] = "required"
	}
	if input.CategoryID == "" {
		details["category_id"] = "required"
	}
	if input.Price < 0 {
		details["price"] = "must not be negative"
	}
	if len(details) > 0 {
		return util.NewValidationError("invalid care type", details)
	}
	return nil
}

func careTypeSnapshot(careType *domain.CareType) map[string]any {
	return map[string]any{
		"category_id": careType.CategoryID,
		"name":        careType.Name,
		"price":       careType.Price,
	}
}
