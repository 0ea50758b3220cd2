package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spades-ems/portal/internal/api/dto"
	"github.com/spades-ems/portal/internal/auth"
	"github.com/spades-ems/portal/internal/domain"
	"github.com/spades-ems/portal/internal/service"
	"github.com/spades-ems/portal/pkg/util"
)

// MedicationsHandler manages the pharmacopoeia endpoints.
type MedicationsHandler struct {
	service *service.MedicationService
}

// NewMedicationsHandler constructs handler.
func NewMedicationsHandler(medicationService *service.MedicationService) *MedicationsHandler {
	return &MedicationsHandler{service: medicationService}
}

// ListCategories GET /medications/categories.
func (h *MedicationsHandler) ListCategories(c *fiber.Ctx) error {
	categories, err := h.service.ListCategories(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.MedicationCategoryResponse, 0, len(categories))
	for _, category := range categories {
		items = append(items, dto.MedicationCategoryResponse{
			ID:        category.ID,
			Name:      category.Name,
			Color:     category.Color,
			Icon:      category.Icon,
			SortOrder: category.SortOrder,
		})
	}
	return c.JSON(fiber.Map{"data": items})
}

// CreateCategory POST /medications/categories.
func (h *MedicationsHandler) CreateCategory(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return util.NewUnauthorized("authentication required")
	}
	var req dto.MedicationCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}
	category, err := h.service.CreateCategory(c.Context(), principal.Employee, service.MedicationCategoryInput{
		Name:      req.Name,
		Color:     req.Color,
		Icon:      req.Icon,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.MedicationCategoryResponse{
		ID:        category.ID,
		Name:      category.Name,
		Color:     category.Color,
		Icon:      category.Icon,
		SortOrder: category.SortOrder,
	}})
}

// DeleteCategory DELETE /medications/categories/:id.
func (h *MedicationsHandler) DeleteCategory(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return util.NewUnauthorized("authentication required")
	}
	if err := h.service.DeleteCategory(c.Context(), principal.Employee, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": true}})
}

// List GET /medications.
func (h *MedicationsHandler) List(c *fiber.Ctx) error {
	meds, err := h.service.List(c.Context(), c.Query("search"))
	if err != nil {
		return err
	}
	items := make([]dto.MedicationResponse, 0, len(meds))
	for i := range meds {
		items = append(items, medicationResponse(&meds[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Create POST /medications.
func (h *MedicationsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return util.NewUnauthorized("authentication required")
	}
	var req dto.MedicationRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}
	med, err := h.service.Create(c.Context(), principal.Employee, medicationInput(req))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": medicationResponse(med)})
}

// Update PUT /medications/:id.
func (h *MedicationsHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return util.NewUnauthorized("authentication required")
	}
	var req dto.MedicationRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}
	med, err := h.service.Update(c.Context(), principal.Employee, c.Params("id"), medicationInput(req))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": medicationResponse(med)})
}

// Delete DELETE /medications/:id.
func (h *MedicationsHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return util.NewUnauthorized("authentication required")
	}
	if err := h.service.Delete(c.Context(), principal.Employee, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": true}})
}

func medicationInput(req dto.MedicationRequest) service.MedicationInput {
	return service.MedicationInput{
		CategoryID:        req.CategoryID,
		Name:              req.Name,
		Dosage:            req.Dosage,
		Duration:          req.Duration,
		Effects:           req.Effects,
		SideEffects:       req.SideEffects,
		Contraindications: req.Contraindications,
	}
}

func medicationResponse(med *domain.Medication) dto.MedicationResponse {
	return dto.MedicationResponse{
		ID:                med.ID,
		CategoryID:        med.CategoryID,
		CategoryName:      med.CategoryName,
		Name:              med.Name,
		Dosage:            med.Dosage,
		Duration:          med.Duration,
		Effects:           med.Effects,
		SideEffects:       med.SideEffects,
		Contraindications: med.Contraindications,
	}
}
