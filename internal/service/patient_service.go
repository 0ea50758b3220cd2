package service

import (
	"context"
	"strings"

	"github.com/spades-ems/portal/internal/domain"
	"github.com/spades-ems/portal/internal/repository"
	"github.com/spades-ems/portal/pkg/util"
)

// PatientService manages medical records.
type PatientService struct {
	patients repository.PatientRepository
	audits   *AuditService
}

// PatientInput describes patient record fields.
type PatientInput struct {
	FirstName        string
	LastName         string
	BirthDate        string
	Fingerprint      string
	Phone            *string
	DiscordID        *string
	PhotoURL         *string
	Address          *string
	BloodType        *string
	Allergies        *string
	MedicalHistory   *string
	EmergencyContact *string
	EmergencyPhone   *string
	Notes            *string
}

// NewPatientService constructs the service.
func NewPatientService(patients repository.PatientRepository, audits *AuditService) *PatientService {
	return &PatientService{patients: patients, audits: audits}
}

// Create registers a new patient record.
func (s *PatientService) Create(ctx context.Context, actor *domain.Employee, input PatientInput) (*domain.Patient, error) {
	if err := validatePatientInput(input); err != nil {
		return nil, err
	}
	patient := patientFromInput(input)
	if err := s.patients.Create(ctx, patient); err != nil {
		return nil, util.MapError(err)
	}
	s.audits.Record(ctx, actor, domain.AuditActionCreate, "patients", &patient.ID, nil, patientSnapshot(patient))
	return patient, nil
}

// Update rewrites a patient record.
func (s *PatientService) Update(ctx context.Context, actor *domain.Employee, id string, input PatientInput) (*domain.Patient, error) {
	if err := validatePatientInput(input); err != nil {
		return nil, err
	}
	existing, err := s.patients.GetByID(ctx, id)
	if err != nil {
		return nil, util.MapError(err)
	}
	if existing.DeletedAt != nil {
		return nil, util.NewConflict("patient record is deleted", nil)
	}
	before := patientSnapshot(existing)

	updated := patientFromInput(input)
	updated.ID = existing.ID
	if err := s.patients.Update(ctx, updated); err != nil {
		return nil, util.MapError(err)
	}
	s.audits.Record(ctx, actor, domain.AuditActionUpdate, "patients", &updated.ID, before, patientSnapshot(updated))
	return updated, nil
}

// Get loads one patient record.
func (s *PatientService) Get(ctx context.Context, id string) (*domain.Patient, error) {
	patient, err := s.patients.GetByID(ctx, id)
	if err != nil {
		return nil, util.MapError(err)
	}
	return patient, nil
}

// Search looks patients up by name or fingerprint.
func (s *PatientService) Search(ctx context.Context, term string, includeDeleted bool, limit, offset int) ([]domain.Patient, error) {
	patients, err := s.patients.Search(ctx, term, includeDeleted, limit, offset)
	if err != nil {
		return nil, util.MapError(err)
	}
	return patients, nil
}

// Delete soft-deletes a record so it can later be restored.
func (s *PatientService) Delete(ctx context.Context, actor *domain.Employee, id string) error {
	existing, err := s.patients.GetByID(ctx, id)
	if err != nil {
		return util.MapError(err)
	}
	if existing.DeletedAt != nil {
		return util.NewConflict("patient record is already deleted", nil)
	}
	if err := s.patients.SoftDelete(ctx, id); err != nil {
		return util.MapError(err)
	}
	s.audits.Record(ctx, actor, domain.AuditActionDelete, "patients", &id, patientSnapshot(existing), nil)
	return nil
}

// Restore brings a soft-deleted record back.
func (s *PatientService) Restore(ctx context.Context, actor *domain.Employee, id string) (*domain.Patient, error) {
	existing, err := s.patients.GetByID(ctx, id)
	if err != nil {
		return nil, util.MapError(err)
	}
	if existing.DeletedAt == nil {
		return nil, util.NewConflict("patient record is not deleted", nil)
	}
	if err := s.patients.Restore(ctx, id); err != nil {
		return nil, util.MapError(err)
	}
	existing.DeletedAt = nil
	s.audits.Record(ctx, actor, domain.AuditActionRestore, "patients", &id, nil, patientSnapshot(existing))
	return existing, nil
}

func validatePatientInput(input PatientInput) error {
	details := map[string]any{}
	if strings.TrimSpace(input.FirstName) == "" {
		details["first_name"] = "required"
	}
	if strings.TrimSpace(input.LastName) == "" {
		details["last_name"] = "required"
	}
	if strings.TrimSpace(input.Fingerprint) == "" {
		details["fingerprint"] = "required"
	}
	if len(details) > 0 {
		return util.NewValidationError("invalid patient record", details)
	}
	return nil
}

func patientFromInput(input PatientInput) *domain.Patient {
	return &domain.Patient{
		FirstName:        strings.TrimSpace(input.FirstName),
		LastName:         strings.TrimSpace(input.LastName),
		BirthDate:        strings.TrimSpace(input.BirthDate),
		Fingerprint:      strings.TrimSpace(input.Fingerprint),
		Phone:            input.Phone,
		DiscordID:        input.DiscordID,
		PhotoURL:         input.PhotoURL,
		Address:          input.Address,
		BloodType:        input.BloodType,
		Allergies:        input.Allergies,
		MedicalHistory:   input.MedicalHistory,
		EmergencyContact: input.EmergencyContact,
		EmergencyPhone:   input.EmergencyPhone,
		Notes:            input.Notes,
	}
}

func patientSnapshot(patient *domain.Patient) map[string]any {
	return map[string]any{
		"first_name":  patient.FirstName,
		"last_name":   patient.LastName,
		"birth_date":  patient.BirthDate,
		"fingerprint": patient.Fingerprint,
	}
}
