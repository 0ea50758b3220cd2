package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/spades-ems/portal/internal/domain"
)

// WikiRepository manages internal documentation pages.
type WikiRepository interface {
	Create(ctx context.Context, article *domain.WikiArticle) error
	Update(ctx context.Context, article *domain.WikiArticle) error
	GetByID(ctx context.Context, id string) (*domain.WikiArticle, error)
	GetBySlug(ctx context.Context, slug string) (*domain.WikiArticle, error)
	List(ctx context.Context, publishedOnly bool) ([]domain.WikiArticle, error)
	UpdateOrder(ctx context.Context, id string, sortOrder int) error
	Delete(ctx context.Context, id string) error
}

type wikiRepository struct {
	db DB
}

// NewWikiRepository builds repository.
func NewWikiRepository(db DB) WikiRepository {
	return &wikiRepository{db: db}
}

const wikiColumns = `id, title, slug, content, category, sort_order, is_published, created_at, updated_at`

func (r *wikiRepository) Create(ctx context.Context, article *domain.WikiArticle) error {
	const query = `
        INSERT INTO wiki_articles (title, slug, content, category, sort_order, is_published)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`
	return r.db.QueryRow(ctx, query,
		article.Title,
		article.Slug,
		article.Content,
		article.Category,
		article.SortOrder,
		article.IsPublished,
	).Scan(&article.ID, &article.CreatedAt, &article.UpdatedAt)
}

func (r *wikiRepository) Update(ctx context.Context, article *domain.WikiArticle) error {
	const query = `
        UPDATE wiki_articles SET title=$1, slug=$2, content=$3, category=$4, sort_order=$5, is_published=$6, updated_at=NOW()
        WHERE id=$7`
	cmd, err := r.db.Exec(ctx, query,
		article.Title,
		article.Slug,
		article.Content,
		article.Category,
		article.SortOrder,
		article.IsPublished,
		article.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *wikiRepository) GetByID(ctx context.Context, id string) (*domain.WikiArticle, error) {
	return r.fetchSingle(ctx, `SELECT `+wikiColumns+` FROM wiki_articles WHERE id=$1`, id)
}

func (r *wikiRepository) GetBySlug(ctx context.Context, slug string) (*domain.WikiArticle, error) {
	return r.fetchSingle(ctx, `SELECT `+wikiColumns+` FROM wiki_articles WHERE slug=$1`, slug)
}

func (r *wikiRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.WikiArticle, error) {
	var article domain.WikiArticle
	if err := r.db.QueryRow(ctx, query, arg).Scan(
		&article.ID,
		&article.Title,
		&article.Slug,
		&article.Content,
		&article.Category,
		&article.SortOrder,
		&article.IsPublished,
		&article.CreatedAt,
		&article.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &article, nil
}

func (r *wikiRepository) List(ctx context.Context, publishedOnly bool) ([]domain.WikiArticle, error) {
	query := `SELECT ` + wikiColumns + ` FROM wiki_articles`
	if publishedOnly {
		query += ` WHERE is_published=TRUE`
	}
	query += ` ORDER BY category ASC, sort_order ASC, title ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.WikiArticle
	for rows.Next() {
		var article domain.WikiArticle
		if err := rows.Scan(
			&article.ID,
			&article.Title,
			&article.Slug,
			&article.Content,
			&article.Category,
			&article.SortOrder,
			&article.IsPublished,
			&article.CreatedAt,
			&article.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, article)
	}
	return result, rows.Err()
}

func (r *wikiRepository) UpdateOrder(ctx context.Context, id string, sortOrder int) error {
	cmd, err := r.db.Exec(ctx, `UPDATE wiki_articles SET sort_order=$1, updated_at=NOW() WHERE id=$2`, sortOrder, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *wikiRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM wiki_articles WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
