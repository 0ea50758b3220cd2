package service

import (
	"context"
	"strings"

	"github.com/spades-ems/portal/internal/domain"
	"github.com/spades-ems/portal/internal/repository"
	"github.com/spades-ems/portal/pkg/util"
)

// MedicationService manages the pharmacopoeia catalog.
type MedicationService struct {
	medications repository.MedicationRepository
	audits      *AuditService
}

// MedicationInput describes one catalog entry.
type MedicationInput struct {
	CategoryID        *string
	Name              string
	Dosage            *string
	Duration          *string
	Effects           *string
	SideEffects       *string
	Contraindications *string
}

// MedicationCategoryInput describes one catalog section.
type MedicationCategoryInput struct {
	Name      string
	Color     *string
	Icon      *string
	SortOrder int
}

// NewMedicationService constructs the service.
func NewMedicationService(medications repository.MedicationRepository, audits *AuditService) *MedicationService {
	return &MedicationService{medications: medications, audits: audits}
}

// CreateCategory adds a catalog section.
func (s *MedicationService) CreateCategory(ctx context.Context, actor *domain.Employee, input MedicationCategoryInput) (*domain.MedicationCategory, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, util.NewValidationError("category name is required", nil)
	}
	category := &domain.MedicationCategory{
		Name:      name,
		Color:     input.Color,
		Icon:      input.Icon,
		SortOrder: input.SortOrder,
	}
	if err := s.medications.CreateCategory(ctx, category); err != nil {
		return nil, util.MapError(err)
	}
	s.audits.Record(ctx, actor, domain.AuditActionCreate, "medication_categories", &category.ID, nil, map[string]any{"name": name})
	return category, nil
}

// ListCategories returns catalog sections in display order.
func (s *MedicationService) ListCategories(ctx context.Context) ([]domain.MedicationCategory, error) {
	categories, err := s.medications.ListCategories(ctx)
	if err != nil {
		return nil, util.MapError(err)
	}
	return categories, nil
}

// DeleteCategory removes a catalog section.
func (s *MedicationService) DeleteCategory(ctx context.Context, actor *domain.Employee, id string) error {
	if err := s.medications.DeleteCategory(ctx, id); err != nil {
		return util.MapError(err)
	}
	s.audits.Record(ctx, actor, domain.AuditActionDelete, "medication_categories", &id, nil, nil)
	return nil
}

// Create adds one medication.
func (s *MedicationService) Create(ctx context.Context, actor *domain.Employee, input MedicationInput) (*domain.Medication, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, util.NewValidationError("medication name is required", nil)
	}
	med := medicationFromInput(input)
	if err := s.medications.Create(ctx, med); err != nil {
		return nil, util.MapError(err)
	}
	s.audits.Record(ctx, actor, domain.AuditActionCreate, "medications", &med.ID, nil, medicationSnapshot(med))
	return med, nil
}

// Update rewrites one medication.
func (s *MedicationService) Update(ctx context.Context, actor *domain.Employee, id string, input MedicationInput) (*domain.Medication, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, util.NewValidationError("medication name is required", nil)
	}
	existing, err := s.medications.GetByID(ctx, id)
	if err != nil {
		return nil, util.MapError(err)
	}
	before := medicationSnapshot(existing)

	updated := medicationFromInput(input)
	updated.ID = existing.ID
	if err := s.medications.Update(ctx, updated); err != nil {
		return nil, util.MapError(err)
	}
	s.audits.Record(ctx, actor, domain.AuditActionUpdate, "medications", &id, before, medicationSnapshot(updated))
	return updated, nil
}

// List returns the catalog, optionally filtered by name.
func (s *MedicationService) List(ctx context.Context, search string) ([]domain.Medication, error) {
	meds, err := s.medications.List(ctx, search)
	if err != nil {
		return nil, util.MapError(err)
	}
	return meds, nil
}

// Delete removes one medication.
func (s *MedicationService) Delete(ctx context.Context, actor *domain.Employee, id string) error {
	existing, err := s.medications.GetByID(ctx, id)
	if err != nil {
		return util.MapError(err)
	}
	if err := s.medications.Delete(ctx, id); err != nil {
		return util.MapError(err)
	}
	s.audits.Record(ctx, actor, domain.AuditActionDelete, "medications", &id, medicationSnapshot(existing), nil)
	return nil
}

func medicationFromInput(input MedicationInput) *domain.Medication {
	return &domain.Medication{
		CategoryID:        input.CategoryID,
		Name:              strings.TrimSpace(input.Name),
		Dosage:            input.Dosage,
		Duration:          input.Duration,
		Effects:           input.Effects,
		SideEffects:       input.SideEffects,
		Contraindications: input.Contraindications,
	}
}

func medicationSnapshot(med *domain.Medication) map[string]any {
	return map[string]any{
		"name":        med.Name,
		"category_id": med.CategoryID,
	}
}
