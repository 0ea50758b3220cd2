package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/spades-ems/portal/internal/domain"
)

// CareRepository manages the billing grid: categories and their acts.
type CareRepository interface {
	CreateCategory(ctx context.Context, category *domain.CareCategory) error
	ListCategories(ctx context.Context) ([]domain.CareCategory, error)
	DeleteCategory(ctx context.Context, id string) error

	CreateType(ctx context.Context, careType *domain.CareType) error
	UpdateType(ctx context.Context, careType *domain.CareType) error
	GetTypeByID(ctx context.Context, id string) (*domain.CareType, error)
	ListTypes(ctx context.Context) ([]domain.CareType, error)
	DeleteType(ctx context.Context, id string) error
}

type careRepository struct {
	db DB
}

// NewCareRepository builds repository.
func NewCareRepository(db DB) CareRepository {
	return &careRepository{db: db}
}

func (r *careRepository) CreateCategory(ctx context.Context, category *domain.CareCategory) error {
	const query = `
        INSERT INTO care_categories (name, sort_order)
        VALUES ($1,$2)
        RETURNING id, created_at`
	return r.db.QueryRow(ctx, query, category.Name, category.SortOrder).
		Scan(&category.ID, &category.CreatedAt)
}

func (r *careRepository) ListCategories(ctx context.Context) ([]domain.CareCategory, error) {
	const query = `SELECT id, name, sort_order, created_at FROM care_categories ORDER BY sort_order ASC, name ASC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.CareCategory
	for rows.Next() {
		var category domain.CareCategory
		if err := rows.Scan(&category.ID, &category.Name, &category.SortOrder, &category.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, category)
	}
	return result, rows.Err()
}

func (r *careRepository) DeleteCategory(ctx context.Context, id string) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM care_categories WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *careRepository) CreateType(ctx context.Context, careType *domain.CareType) error {
	const query = `
        INSERT INTO care_types (category_id, name, price, description)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at, updated_at`
	return r.db.QueryRow(ctx, query,
		careType.CategoryID,
		careType.Name,
		careType.Price,
		careType.Description,
	).Scan(&careType.ID, &careType.CreatedAt, &careType.UpdatedAt)
}

func (r *careRepository) UpdateType(ctx context.Context, careType *domain.CareType) error {
	const query = `
        UPDATE care_types SET category_id=$1, name=$2, price=$3, description=$4, updated_at=NOW()
        WHERE id=$5`
	cmd, err := r.db.Exec(ctx, query,
		careType.CategoryID,
		careType.Name,
		careType.Price,
		careType.Description,
		careType.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *careRepository) GetTypeByID(ctx context.Context, id string) (*domain.CareType, error) {
	const query = `
        SELECT t.id, t.category_id, c.name, t.name, t.price, t.description, t.created_at, t.updated_at
        FROM care_types t JOIN care_categories c ON c.id = t.category_id
        WHERE t.id=$1`
	var careType domain.CareType
	if err := r.db.QueryRow(ctx, query, id).Scan(
		&careType.ID,
		&careType.CategoryID,
		&careType.CategoryName,
		&careType.Name,
		&careType.Price,
		&careType.Description,
		&careType.CreatedAt,
		&careType.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &careType, nil
}

func (r *careRepository) ListTypes(ctx context.Context) ([]domain.CareType, error) {
	const query = `
        SELECT t.id, t.category_id, c.name, t.name, t.price, t.description, t.created_at, t.updated_at
        FROM care_types t JOIN care_categories c ON c.id = t.category_id
        ORDER BY c.sort_order ASC, t.name ASC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.CareType
	for rows.Next() {
		var careType domain.CareType
		if err := rows.Scan(
			&careType.ID,
			&careType.CategoryID,
			&careType.CategoryName,
			&careType.Name,
			&careType.Price,
			&careType.Description,
			&careType.CreatedAt,
			&careType.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, careType)
	}
	return result, rows.Err()
}

func (r *careRepository) DeleteType(ctx context.Context, id string) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM care_types WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
