package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spades-ems/portal/internal/api/dto"
	"github.com/spades-ems/portal/internal/auth"
	"github.com/spades-ems/portal/internal/domain"
	"github.com/spades-ems/portal/internal/service"
	"github.com/spades-ems/portal/pkg/util"
)

// WikiHandler manages documentation endpoints.
type WikiHandler struct {
	service *service.WikiService
}

// NewWikiHandler constructs handler.
func NewWikiHandler(wikiService *service.WikiService) *WikiHandler {
	return &WikiHandler{service: wikiService}
}

// List GET /wiki grouped by category.
func (h *WikiHandler) List(c *fiber.Ctx) error {
	publishedOnly := !c.QueryBool("include_drafts", false)
	grouped, err := h.service.ListGrouped(c.Context(), publishedOnly)
	if err != nil {
		return err
	}
	response := make(map[string][]dto.WikiArticleResponse, len(grouped))
	for category, articles := range grouped {
		items := make([]dto.WikiArticleResponse, 0, len(articles))
		for i := range articles {
			items = append(items, wikiResponse(&articles[i], false))
		}
		response[category] = items
	}
	return c.JSON(fiber.Map{"data": response})
}

// GetBySlug GET /wiki/:slug.
func (h *WikiHandler) GetBySlug(c *fiber.Ctx) error {
	article, err := h.service.GetBySlug(c.Context(), c.Params("slug"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": wikiResponse(article, true)})
}

// Create POST /wiki.
func (h *WikiHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return util.NewUnauthorized("authentication required")
	}
	var req dto.WikiArticleRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}
	article, err := h.service.Create(c.Context(), principal.Employee, wikiInput(req))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": wikiResponse(article, true)})
}

// Update PUT /wiki/:id.
func (h *WikiHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return util.NewUnauthorized("authentication required")
	}
	var req dto.WikiArticleRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}
	article, err := h.service.Update(c.Context(), principal.Employee, c.Params("id"), wikiInput(req))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": wikiResponse(article, true)})
}

// Reorder PUT /wiki/reorder.
func (h *WikiHandler) Reorder(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return util.NewUnauthorized("authentication required")
	}
	var req dto.WikiReorderRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}
	items := make([]service.WikiOrderItem, 0, len(req.Articles))
	for _, entry := range req.Articles {
		items = append(items, service.WikiOrderItem{ID: entry.ID, SortOrder: entry.SortOrder})
	}
	if err := h.service.Reorder(c.Context(), principal.Employee, items); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"reordered": len(items)}})
}

// Delete DELETE /wiki/:id.
func (h *WikiHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return util.NewUnauthorized("authentication required")
	}
	if err := h.service.Delete(c.Context(), principal.Employee, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": true}})
}

func wikiInput(req dto.WikiArticleRequest) service.WikiArticleInput {
	return service.WikiArticleInput{
		Title:       req.Title,
		Slug:        req.Slug,
		Content:     req.Content,
		Category:    req.Category,
		SortOrder:   req.SortOrder,
		IsPublished: req.IsPublished,
	}
}

func wikiResponse(article *domain.WikiArticle, includeContent bool) dto.WikiArticleResponse {
	resp := dto.WikiArticleResponse{
		ID:          article.ID,
		Title:       article.Title,
		Slug:        article.Slug,
		Category:    article.Category,
		SortOrder:   article.SortOrder,
		IsPublished: article.IsPublished,
		UpdatedAt:   article.UpdatedAt,
	}
	if includeContent {
		resp.Content = article.Content
	}
	return resp
}
