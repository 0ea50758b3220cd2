package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spades-ems/portal/internal/domain"
)

// PatientRepository manages medical records. Deletion is soft so the
// audit trail can still resolve record ids.
type PatientRepository interface {
	Create(ctx context.Context, patient *domain.Patient) error
	Update(ctx context.Context, patient *domain.Patient) error
	GetByID(ctx context.Context, id string) (*domain.Patient, error)
	Search(ctx context.Context, term string, includeDeleted bool, limit, offset int) ([]domain.Patient, error)
	SoftDelete(ctx context.Context, id string) error
	Restore(ctx context.Context, id string) error
}

type patientRepository struct {
	db DB
}

// NewPatientRepository builds repository.
func NewPatientRepository(db DB) PatientRepository {
	return &patientRepository{db: db}
}

const patientColumns = `id, first_name, last_name, birth_date, fingerprint, phone, discord_id, photo_url,
               address, blood_type, allergies, medical_history, emergency_contact, emergency_phone, notes,
               deleted_at, created_at, updated_at`

func (r *patientRepository) Create(ctx context.Context, patient *domain.Patient) error {
	const query = `
        INSERT INTO patients (first_name, last_name, birth_date, fingerprint, phone, discord_id, photo_url,
            address, blood_type, allergies, medical_history, emergency_contact, emergency_phone, notes)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
        RETURNING id, created_at, updated_at`
	return r.db.QueryRow(ctx, query,
		patient.FirstName,
		patient.LastName,
		patient.BirthDate,
		patient.Fingerprint,
		patient.Phone,
		patient.DiscordID,
		patient.PhotoURL,
		patient.Address,
		patient.BloodType,
		patient.Allergies,
		patient.MedicalHistory,
		patient.EmergencyContact,
		patient.EmergencyPhone,
		patient.Notes,
	).Scan(&patient.ID, &patient.CreatedAt, &patient.UpdatedAt)
}

func (r *patientRepository) Update(ctx context.Context, patient *domain.Patient) error {
	const query = `
        UPDATE patients SET first_name=$1, last_name=$2, birth_date=$3, fingerprint=$4, phone=$5,
            discord_id=$6, photo_url=$7, address=$8, blood_type=$9, allergies=$10, medical_history=$11,
            emergency_contact=$12, emergency_phone=$13, notes=$14, updated_at=NOW()
        WHERE id=$15 AND deleted_at IS NULL`
	cmd, err := r.db.Exec(ctx, query,
		patient.FirstName,
		patient.LastName,
		patient.BirthDate,
		patient.Fingerprint,
		patient.Phone,
		patient.DiscordID,
		patient.PhotoURL,
		patient.Address,
		patient.BloodType,
		patient.Allergies,
		patient.MedicalHistory,
		patient.EmergencyContact,
		patient.EmergencyPhone,
		patient.Notes,
		patient.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *patientRepository) GetByID(ctx context.Context, id string) (*domain.Patient, error) {
	query := fmt.Sprintf(`SELECT %s FROM patients WHERE id=$1`, patientColumns)
	var patient domain.Patient
	if err := r.db.QueryRow(ctx, query, id).Scan(
		&patient.ID,
		&patient.FirstName,
		&patient.LastName,
		&patient.BirthDate,
		&patient.Fingerprint,
		&patient.Phone,
		&patient.DiscordID,
		&patient.PhotoURL,
		&patient.Address,
		&patient.BloodType,
		&patient.Allergies,
		&patient.MedicalHistory,
		&patient.EmergencyContact,
		&patient.EmergencyPhone,
		&patient.Notes,
		&patient.DeletedAt,
		&patient.CreatedAt,
		&patient.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &patient, nil
}

func (r *patientRepository) Search(ctx context.Context, term string, includeDeleted bool, limit, offset int) ([]domain.Patient, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if !includeDeleted {
		clauses = append(clauses, "deleted_at IS NULL")
	}
	if strings.TrimSpace(term) != "" {
		search := "%" + strings.ToLower(strings.TrimSpace(term)) + "%"
		args = append(args, search)
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf(
			"(LOWER(first_name) LIKE %s OR LOWER(last_name) LIKE %s OR LOWER(fingerprint) LIKE %s OR LOWER(phone) LIKE %s)",
			placeholder, placeholder, placeholder, placeholder))
	}

	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`SELECT %s FROM patients WHERE %s ORDER BY last_name ASC, first_name ASC LIMIT %d OFFSET %d`,
		patientColumns, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Patient
	for rows.Next() {
		var patient domain.Patient
		if err := rows.Scan(
			&patient.ID,
			&patient.FirstName,
			&patient.LastName,
			&patient.BirthDate,
			&patient.Fingerprint,
			&patient.Phone,
			&patient.DiscordID,
			&patient.PhotoURL,
			&patient.Address,
			&patient.BloodType,
			&patient.Allergies,
			&patient.MedicalHistory,
			&patient.EmergencyContact,
			&patient.EmergencyPhone,
			&patient.Notes,
			&patient.DeletedAt,
			&patient.CreatedAt,
			&patient.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, patient)
	}
	return result, rows.Err()
}

func (r *patientRepository) SoftDelete(ctx context.Context, id string) error {
	const query = `UPDATE patients SET deleted_at=NOW(), updated_at=NOW() WHERE id=$1 AND deleted_at IS NULL`
	cmd, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *patientRepository) Restore(ctx context.Context, id string) error {
	const query = `UPDATE patients SET deleted_at=NULL, updated_at=NOW() WHERE id=$1 AND deleted_at IS NOT NULL`
	cmd, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
