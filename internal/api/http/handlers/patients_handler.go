package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spades-ems/portal/internal/api/dto"
	"github.com/spades-ems/portal/internal/auth"
	"github.com/spades-ems/portal/internal/domain"
	"github.com/spades-ems/portal/internal/service"
	"github.com/spades-ems/portal/pkg/util"
)

// PatientsHandler manages medical record endpoints.
type PatientsHandler struct {
	service *service.PatientService
}

// NewPatientsHandler constructs handler.
func NewPatientsHandler(patientService *service.PatientService) *PatientsHandler {
	return &PatientsHandler{service: patientService}
}

// Create POST /patients.
func (h *PatientsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return util.NewUnauthorized("authentication required")
	}
	var req dto.PatientRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}
	patient, err := h.service.Create(c.Context(), principal.Employee, patientInput(req))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": patientResponse(patient)})
}

// Update PUT /patients/:id.
func (h *PatientsHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return util.NewUnauthorized("authentication required")
	}
	var req dto.PatientRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}
	patient, err := h.service.Update(c.Context(), principal.Employee, c.Params("id"), patientInput(req))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": patientResponse(patient)})
}

// Get GET /patients/:id.
func (h *PatientsHandler) Get(c *fiber.Ctx) error {
	patient, err := h.service.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": patientResponse(patient)})
}

// Search GET /patients.
func (h *PatientsHandler) Search(c *fiber.Ctx) error {
	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), 20)
	patients, err := h.service.Search(c.Context(), c.Query("search"), c.QueryBool("include_deleted", false), pageSize, (page-1)*pageSize)
	if err != nil {
		return err
	}
	items := make([]dto.PatientResponse, 0, len(patients))
	for i := range patients {
		items = append(items, patientResponse(&patients[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Delete DELETE /patients/:id.
func (h *PatientsHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return util.NewUnauthorized("authentication required")
	}
	if err := h.service.Delete(c.Context(), principal.Employee, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": true}})
}

// Restore POST /patients/:id/restore.
func (h *PatientsHandler) Restore(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return util.NewUnauthorized("authentication required")
	}
	patient, err := h.service.Restore(c.Context(), principal.Employee, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": patientResponse(patient)})
}

func patientInput(req dto.PatientRequest) service.PatientInput {
	return service.PatientInput{
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		BirthDate:        req.BirthDate,
		Fingerprint:      req.Fingerprint,
		Phone:            req.Phone,
		DiscordID:        req.DiscordID,
		PhotoURL:         req.PhotoURL,
		Address:          req.Address,
		BloodType:        req.BloodType,
		Allergies:        req.Allergies,
		MedicalHistory:   req.MedicalHistory,
		EmergencyContact: req.EmergencyContact,
		EmergencyPhone:   req.EmergencyPhone,
		Notes:            req.Notes,
	}
}

func patientResponse(patient *domain.Patient) dto.PatientResponse {
	return dto.PatientResponse{
		ID:               patient.ID,
		FirstName:        patient.FirstName,
		LastName:         patient.LastName,
		BirthDate:        patient.BirthDate,
		Fingerprint:      patient.Fingerprint,
		Phone:            patient.Phone,
		DiscordID:        patient.DiscordID,
		PhotoURL:         patient.PhotoURL,
		Address:          patient.Address,
		BloodType:        patient.BloodType,
		Allergies:        patient.Allergies,
		MedicalHistory:   patient.MedicalHistory,
		EmergencyContact: patient.EmergencyContact,
		EmergencyPhone:   patient.EmergencyPhone,
		Notes:            patient.Notes,
		DeletedAt:        patient.DeletedAt,
		CreatedAt:        patient.CreatedAt,
		UpdatedAt:        patient.UpdatedAt,
	}
}
