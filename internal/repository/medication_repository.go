package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spades-ems/portal/internal/domain"
)

// MedicationRepository manages the pharmacopoeia catalog.
type MedicationRepository interface {
	CreateCategory(ctx context.Context, category *domain.MedicationCategory) error
	ListCategories(ctx context.Context) ([]domain.MedicationCategory, error)
	DeleteCategory(ctx context.Context, id string) error

	Create(ctx context.Context, med *domain.Medication) error
	Update(ctx context.Context, med *domain.Medication) error
	GetByID(ctx context.Context, id string) (*domain.Medication, error)
	List(ctx context.Context, search string) ([]domain.Medication, error)
	Delete(ctx context.Context, id string) error
}

type medicationRepository struct {
	db DB
}

// NewMedicationRepository builds repository.
func NewMedicationRepository(db DB) MedicationRepository {
	return &medicationRepository{db: db}
}

func (r *medicationRepository) CreateCategory(ctx context.Context, category *domain.MedicationCategory) error {
	const query = `
        INSERT INTO medication_categories (name, color, icon, sort_order)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at`
	return r.db.QueryRow(ctx, query,
		category.Name,
		category.Color,
		category.Icon,
		category.SortOrder,
	).Scan(&category.ID, &category.CreatedAt)
}

func (r *medicationRepository) ListCategories(ctx context.Context) ([]domain.MedicationCategory, error) {
	const query = `SELECT id, name, color, icon, sort_order, created_at FROM medication_categories ORDER BY sort_order ASC, name ASC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.MedicationCategory
	for rows.Next() {
		var category domain.MedicationCategory
		if err := rows.Scan(
			&category.ID,
			&category.Name,
			&category.Color,
			&category.Icon,
			&category.SortOrder,
			&category.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, category)
	}
	return result, rows.Err()
}

func (r *medicationRepository) DeleteCategory(ctx context.Context, id string) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM medication_categories WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

const medicationColumns = `m.id, m.category_id, c.name, m.name, m.dosage, m.duration, m.effects,
               m.side_effects, m.contraindications, m.created_at, m.updated_at`

func (r *medicationRepository) Create(ctx context.Context, med *domain.Medication) error {
	const query = `
        INSERT INTO medications (category_id, name, dosage, duration, effects, side_effects, contraindications)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at, updated_at`
	return r.db.QueryRow(ctx, query,
		med.CategoryID,
		med.Name,
		med.Dosage,
		med.Duration,
		med.Effects,
		med.SideEffects,
		med.Contraindications,
	).Scan(&med.ID, &med.CreatedAt, &med.UpdatedAt)
}

func (r *medicationRepository) Update(ctx context.Context, med *domain.Medication) error {
	const query = `
        UPDATE medications SET category_id=$1, name=$2, dosage=$3, duration=$4, effects=$5,
            side_effects=$6, contraindications=$7, updated_at=NOW()
        WHERE id=$8`
	cmd, err := r.db.Exec(ctx, query,
		med.CategoryID,
		med.Name,
		med.Dosage,
		med.Duration,
		med.Effects,
		med.SideEffects,
		med.Contraindications,
		med.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *medicationRepository) GetByID(ctx context.Context, id string) (*domain.Medication, error) {
	query := fmt.Sprintf(`
        SELECT %s FROM medications m
        LEFT JOIN medication_categories c ON c.id = m.category_id
        WHERE m.id=$1`, medicationColumns)
	var med domain.Medication
	if err := r.db.QueryRow(ctx, query, id).Scan(
		&med.ID,
		&med.CategoryID,
		&med.CategoryName,
		&med.Name,
		&med.Dosage,
		&med.Duration,
		&med.Effects,
		&med.SideEffects,
		&med.Contraindications,
		&med.CreatedAt,
		&med.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &med, nil
}

func (r *medicationRepository) List(ctx context.Context, search string) ([]domain.Medication, error) {
	query := fmt.Sprintf(`
        SELECT %s FROM medications m
        LEFT JOIN medication_categories c ON c.id = m.category_id`, medicationColumns)
	args := []any{}

	if strings.TrimSpace(search) != "" {
		args = append(args, "%"+strings.ToLower(strings.TrimSpace(search))+"%")
		query += ` WHERE LOWER(m.name) LIKE $1`
	}
	query += ` ORDER BY c.sort_order ASC NULLS LAST, m.name ASC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Medication
	for rows.Next() {
		var med domain.Medication
		if err := rows.Scan(
			&med.ID,
			&med.CategoryID,
			&med.CategoryName,
			&med.Name,
			&med.Dosage,
			&med.Duration,
			&med.Effects,
			&med.SideEffects,
			&med.Contraindications,
			&med.CreatedAt,
			&med.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, med)
	}
	return result, rows.Err()
}

func (r *medicationRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM medications WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
