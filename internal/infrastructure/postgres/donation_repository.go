package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/raktsetu/raktsetu-api/internal/domain"
	"github.com/raktsetu/raktsetu-api/internal/domain/entity"
	"github.com/raktsetu/raktsetu-api/internal/domain/repository"
)

var _ repository.DonationRepository = (*DonationRepo)(nil)

// DonationRepo implementación del puerto DonationRepository sobre PostgreSQL.
type DonationRepo struct {
	pool *pgxpool.Pool
}

// NewDonationRepository construye el adaptador de persistencia para donaciones.
func NewDonationRepository(pool *pgxpool.Pool) *DonationRepo {
	return &DonationRepo{pool: pool}
}

const donationColumns = `
	id, donor_id, hospital_id, appointment_date, blood_type, amount_ml, status,
	hemoglobin, blood_pressure, pulse, temperature, notes,
	created_at, updated_at, completed_at`

func scanDonation(row pgx.Row) (*entity.Donation, error) {
	var d entity.Donation
	err := row.Scan(
		&d.ID, &d.DonorID, &d.HospitalID, &d.AppointmentDate, &d.BloodType,
		&d.AmountML, &d.Status,
		&d.Hemoglobin, &d.BloodPressure, &d.Pulse, &d.Temperature, &d.Notes,
		&d.CreatedAt, &d.UpdatedAt, &d.CompletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// Create persiste una nueva donación.
func (r *DonationRepo) Create(ctx context.Context, d *entity.Donation) error {
	query := `
		INSERT INTO donations (` + donationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.pool.Exec(ctx, query,
		d.ID, d.DonorID, d.HospitalID, d.AppointmentDate, d.BloodType, d.AmountML, d.Status,
		d.Hemoglobin, d.BloodPressure, d.Pulse, d.Temperature, d.Notes,
		d.CreatedAt, d.UpdatedAt, d.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("insert donation: %w", err)
	}
	return nil
}

// GetByID obtiene una donación por ID. Devuelve nil si no existe.
func (r *DonationRepo) GetByID(ctx context.Context, id string) (*entity.Donation, error) {
	query := `SELECT ` + donationColumns + ` FROM donations WHERE id = $1`
	d, err := scanDonation(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get donation by id: %w", err)
	}
	return d, nil
}

// Update reescribe los campos mutables de la donación.
func (r *DonationRepo) Update(ctx context.Context, d *entity.Donation) error {
	query := `
		UPDATE donations SET
			appointment_date = $2, blood_type = $3, amount_ml = $4, status = $5,
			hemoglobin = $6, blood_pressure = $7, pulse = $8, temperature = $9,
			notes = $10, updated_at = $11, completed_at = $12
		WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query,
		d.ID, d.AppointmentDate, d.BloodType, d.AmountML, d.Status,
		d.Hemoglobin, d.BloodPressure, d.Pulse, d.Temperature,
		d.Notes, d.UpdatedAt, d.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("update donation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve donaciones que cumplen el filtro, más recientes primero.
func (r *DonationRepo) List(ctx context.Context, f repository.DonationFilter) ([]*entity.Donation, error) {
	query := `SELECT ` + donationColumns + ` FROM donations WHERE 1=1`
	args := []any{}
	i := 1
	add := func(clause string, v any) {
		query += fmt.Sprintf(" AND %s = $%d", clause, i)
		args = append(args, v)
		i++
	}
	if f.DonorID != "" {
		add("donor_id", f.DonorID)
	}
	if f.HospitalID != "" {
		add("hospital_id", f.HospitalID)
	}
	if f.Status != "" {
		add("status", f.Status)
	}
	if f.StartDate != nil {
		query += fmt.Sprintf(" AND appointment_date >= $%d", i)
		args = append(args, *f.StartDate)
		i++
	}
	if f.EndDate != nil {
		query += fmt.Sprintf(" AND appointment_date <= $%d", i)
		args = append(args, *f.EndDate)
		i++
	}
	query += ` ORDER BY appointment_date DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list donations: %w", err)
	}
	defer rows.Close()

	var donations []*entity.Donation
	for rows.Next() {
		d, err := scanDonation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan donation: %w", err)
		}
		donations = append(donations, d)
	}
	return donations, rows.Err()
}

// Delete elimina una donación por ID.
func (r *DonationRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM donations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete donation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
