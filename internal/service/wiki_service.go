package service

import (
	"context"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spades-ems/portal/internal/domain"
	"github.com/spades-ems/portal/internal/repository"
	"github.com/spades-ems/portal/pkg/util"
)

// WikiService manages internal documentation.
type WikiService struct {
	wiki   repository.WikiRepository
	audits *AuditService
}

// WikiArticleInput describes one page.
type WikiArticleInput struct {
	Title       string
	Slug        string
	Content     string
	Category    string
	SortOrder   int
	IsPublished bool
}

// NewWikiService constructs the service.
func NewWikiService(wiki repository.WikiRepository, audits *AuditService) *WikiService {
	return &WikiService{wiki: wiki, audits: audits}
}

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a URL slug from a title.
func Slugify(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = slugPattern.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// Create adds one article. A missing slug is derived from the title.
func (s *WikiService) Create(ctx context.Context, actor *domain.Employee, input WikiArticleInput) (*domain.WikiArticle, error) {
	if err := validateWikiInput(&input); err != nil {
		return nil, err
	}
	if _, err := s.wiki.GetBySlug(ctx, input.Slug); err == nil {
		return nil, util.NewConflict("slug already in use", map[string]any{"slug": input.Slug})
	} else if err != pgx.ErrNoRows {
		return nil, util.MapError(err)
	}

	article := &domain.WikiArticle{
		Title:       strings.TrimSpace(input.Title),
		Slug:        input.Slug,
		Content:     input.Content,
		Category:    strings.TrimSpace(input.Category),
		SortOrder:   input.SortOrder,
		IsPublished: input.IsPublished,
	}
	if err := s.wiki.Create(ctx, article); err != nil {
		return nil, util.MapError(err)
	}
	s.audits.Record(ctx, actor, domain.AuditActionCreate, "wiki_articles", &article.ID, nil, wikiSnapshot(article))
	return article, nil
}

// Update rewrites one article.
func (s *WikiService) Update(ctx context.Context, actor *domain.Employee, id string, input WikiArticleInput) (*domain.WikiArticle, error) {
	if err := validateWikiInput(&input); err != nil {
		return nil, err
	}
	existing, err := s.wiki.GetByID(ctx, id)
	if err != nil {
		return nil, util.MapError(err)
	}
	if input.Slug != existing.Slug {
		if _, err := s.wiki.GetBySlug(ctx, input.Slug); err == nil {
			return nil, util.NewConflict("slug already in use", map[string]any{"slug": input.Slug})
		} else if err != pgx.ErrNoRows {
			return nil, util.MapError(err)
		}
	}
	before := wikiSnapshot(existing)

	existing.Title = strings.TrimSpace(input.Title)
	existing.Slug = input.Slug
	existing.Content = input.Content
	existing.Category = strings.TrimSpace(input.Category)
	existing.SortOrder = input.SortOrder
	existing.IsPublished = input.IsPublished
	if err := s.wiki.Update(ctx, existing); err != nil {
		return nil, util.MapError(err)
	}
	s.audits.Record(ctx, actor, domain.AuditActionUpdate, "wiki_articles", &id, before, wikiSnapshot(existing))
	return existing, nil
}

// GetBySlug loads one published page by its URL slug.
func (s *WikiService) GetBySlug(ctx context.Context, slug string) (*domain.WikiArticle, error) {
	article, err := s.wiki.GetBySlug(ctx, slug)
	if err != nil {
		return nil, util.MapError(err)
	}
	return article, nil
}

// ListGrouped returns articles grouped by category in display order.
func (s *WikiService) ListGrouped(ctx context.Context, publishedOnly bool) (map[string][]domain.WikiArticle, error) {
	articles, err := s.wiki.List(ctx, publishedOnly)
	if err != nil {
		return nil, util.MapError(err)
	}
	grouped := make(map[string][]domain.WikiArticle)
	for _, article := range articles {
		grouped[article.Category] = append(grouped[article.Category], article)
	}
	return grouped, nil
}

// WikiOrderItem pairs an article with its new position.
type WikiOrderItem struct {
	ID        string
	SortOrder int
}

// Reorder applies new sort positions to a batch of articles.
func (s *WikiService) Reorder(ctx context.Context, actor *domain.Employee, items []WikiOrderItem) error {
	if len(items) == 0 {
		return util.NewValidationError("no articles to reorder", nil)
	}
	for _, item := range items {
		if strings.TrimSpace(item.ID) == "" {
			return util.NewValidationError("article id is required", nil)
		}
	}
	for _, item := range items {
		if err := s.wiki.UpdateOrder(ctx, item.ID, item.SortOrder); err != nil {
			return util.MapError(err)
		}
	}
	s.audits.Record(ctx, actor, domain.AuditActionUpdate, "wiki_articles", nil, nil, map[string]any{
		"reordered": len(items),
	})
	return nil
}

// Delete removes one article.
func (s *WikiService) Delete(ctx context.Context, actor *domain.Employee, id string) error {
	existing, err := s.wiki.GetByID(ctx, id)
	if err != nil {
		return util.MapError(err)
	}
	if err := s.wiki.Delete(ctx, id); err != nil {
		return util.MapError(err)
	}
	s.audits.Record(ctx, actor, domain.AuditActionDelete, "wiki_articles", &id, wikiSnapshot(existing), nil)
	return nil
}

func validateWikiInput(input *WikiArticleInput) error {
	details := map[string]any{}
	if strings.TrimSpace(input.Title) == "" {
		details["title"] = "required"
	}
	if strings.TrimSpace(input.Content) == "" {
		details["content"] = "required"
	}
	if strings.TrimSpace(input.Category) == "" {
		details["category"] = "required"
	}
	if len(details) > 0 {
		return util.NewValidationError("invalid article", details)
	}
	if strings.TrimSpace(input.Slug) == "" {
		input.Slug = Slugify(input.Title)
	} else {
		input.Slug = Slugify(input.Slug)
	}
	if input.Slug == "" {
		return util.NewValidationError("slug cannot be derived from title", nil)
	}
	return nil
}

func wikiSnapshot(article *domain.WikiArticle) map[string]any {
	return map[string]any{
		"title":        article.Title,
		"slug":         article.Slug,
		"category":     article.Category,
		"is_published": article.IsPublished,
	}
}
