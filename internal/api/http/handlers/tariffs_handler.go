package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spades-ems/portal/internal/api/dto"
	"github.com/spades-ems/portal/internal/auth"
	"github.com/spades-ems/portal/internal/domain"
	"github.com/spades-ems/portal/internal/service"
	"github.com/spades-ems/portal/pkg/util"
)

// TariffsHandler manages the care pricing grid.
type TariffsHandler struct {
	service *service.CareService
}

// NewTariffsHandler constructs handler.
func NewTariffsHandler(careService *service.CareService) *TariffsHandler {
	return &TariffsHandler{service: careService}
}

// ListCategories GET /tariffs/categories.
func (h *TariffsHandler) ListCategories(c *fiber.Ctx) error {
	categories, err := h.service.ListCategories(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.CareCategoryResponse, 0, len(categories))
	for _, category := range categories {
		items = append(items, dto.CareCategoryResponse{
			ID:        category.ID,
			Name:      category.Name,
			SortOrder: category.SortOrder,
		})
	}
	return c.JSON(fiber.Map{"data": items})
}

// CreateCategory POST /tariffs/categories.
func (h *TariffsHandler) CreateCategory(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return util.NewUnauthorized("authentication required")
	}
	var req dto.CareCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}
	category, err := h.service.CreateCategory(c.Context(), principal.Employee, req.Name, req.SortOrder)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.CareCategoryResponse{
		ID:        category.ID,
		Name:      category.Name,
		SortOrder: category.SortOrder,
	}})
}

// DeleteCategory DELETE /tariffs/categories/:id.
func (h *TariffsHandler) DeleteCategory(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return util.NewUnauthorized("authentication required")
	}
	if err := h.service.DeleteCategory(c.Context(), principal.Employee, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": true}})
}

// ListTypes GET /tariffs.
func (h *TariffsHandler) ListTypes(c *fiber.Ctx) error {
	types, err := h.service.ListTypes(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.CareTypeResponse, 0, len(types))
	for i := range types {
		items = append(items, careTypeResponse(&types[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// CreateType POST /tariffs.
func (h *TariffsHandler) CreateType(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return util.NewUnauthorized("authentication required")
	}
	var req dto.CareTypeRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}
	careType, err := h.service.CreateType(c.Context(), principal.Employee, careTypeInput(req))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": careTypeResponse(careType)})
}

// UpdateType PUT /tariffs/:id.
func (h *TariffsHandler) UpdateType(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return util.NewUnauthorized("authentication required")
	}
	var req dto.CareTypeRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}
	careType, err := h.service.UpdateType(c.Context(), principal.Employee, c.Params("id"), careTypeInput(req))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": careTypeResponse(careType)})
}

// DeleteType DELETE /tariffs/:id.
func (h *TariffsHandler) DeleteType(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return util.NewUnauthorized("authentication required")
	}
	if err := h.service.DeleteType(c.Context(), principal.Employee, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": true}})
}

func careTypeInput(req dto.CareTypeRequest) service.CareTypeInput {
	return service.CareTypeInput{
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
	}
}

func careTypeResponse(careType *domain.CareType) dto.CareTypeResponse {
	return dto.CareTypeResponse{
		ID:           careType.ID,
		CategoryID:   careType.CategoryID,
		CategoryName: careType.CategoryName,
		Name:         careType.Name,
		Price:        careType.Price,
		Description:  careType.Description,
	}
}
