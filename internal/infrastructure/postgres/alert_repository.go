package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/raktsetu/raktsetu-api/internal/application/alert"
	"github.com/raktsetu/raktsetu-api/internal/domain"
	"github.com/raktsetu/raktsetu-api/internal/domain/entity"
	"github.com/raktsetu/raktsetu-api/internal/domain/repository"
)

var _ repository.AlertRepository = (*AlertRepo)(nil)
var _ alert.NearbySearcher = (*AlertRepo)(nil)

// AlertRepo implementación del puerto AlertRepository sobre PostgreSQL.
// También implementa el camino pushdown de la búsqueda por cercanía.
type AlertRepo struct {
	pool *pgxpool.Pool
}

// NewAlertRepository construye el adaptador de persistencia para alertas.
func NewAlertRepository(pool *pgxpool.Pool) *AlertRepo {
	return &AlertRepo{pool: pool}
}

const alertColumns = `
	id, creator_id, blood_type, units_needed, priority, status, title, message,
	hospital_name, address, city, state, postal_code, latitude, longitude,
	created_at, updated_at, expires_at`

func scanAlert(row pgx.Row) (*entity.Alert, error) {
	var a entity.Alert
	err := row.Scan(
		&a.ID, &a.CreatorID, &a.BloodType, &a.UnitsNeeded, &a.Priority,
		&a.Status, &a.Title, &a.Message,
		&a.HospitalName, &a.Address, &a.City, &a.State, &a.PostalCode,
		&a.Latitude, &a.Longitude,
		&a.CreatedAt, &a.UpdatedAt, &a.ExpiresAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create persiste una nueva alerta.
func (r *AlertRepo) Create(ctx context.Context, a *entity.Alert) error {
	query := `
		INSERT INTO alerts (` + alertColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	_, err := r.pool.Exec(ctx, query,
		a.ID, a.CreatorID, a.BloodType, a.UnitsNeeded, a.Priority,
		a.Status, a.Title, a.Message,
		a.HospitalName, a.Address, a.City, a.State, a.PostalCode,
		a.Latitude, a.Longitude,
		a.CreatedAt, a.UpdatedAt, a.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("insert alert: %w", err)
	}
	return nil
}

// GetByID obtiene una alerta por ID. Devuelve nil si no existe.
func (r *AlertRepo) GetByID(ctx context.Context, id string) (*entity.Alert, error) {
	query := `SELECT ` + alertColumns + ` FROM alerts WHERE id = $1`
	a, err := scanAlert(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get alert by id: %w", err)
	}
	return a, nil
}

// Update reescribe los campos mutables de la alerta.
func (r *AlertRepo) Update(ctx context.Context, a *entity.Alert) error {
	query := `
		UPDATE alerts SET
			blood_type = $2, units_needed = $3, priority = $4, status = $5,
			title = $6, message = $7,
			hospital_name = $8, address = $9, city = $10, state = $11,
			postal_code = $12, latitude = $13, longitude = $14,
			updated_at = $15, expires_at = $16
		WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query,
		a.ID, a.BloodType, a.UnitsNeeded, a.Priority, a.Status,
		a.Title, a.Message,
		a.HospitalName, a.Address, a.City, a.State,
		a.PostalCode, a.Latitude, a.Longitude,
		a.UpdatedAt, a.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("update alert: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve alertas que cumplen el filtro, prioridad y fecha descendentes.
func (r *AlertRepo) List(ctx context.Context, f repository.AlertFilter) ([]*entity.Alert, error) {
	query := `SELECT ` + alertColumns + ` FROM alerts WHERE 1=1`
	args := []any{}
	i := 1
	if f.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", i)
		args = append(args, f.Status)
		i++
	}
	if f.Priority != "" {
		query += fmt.Sprintf(" AND priority = $%d", i)
		args = append(args, f.Priority)
		i++
	}
	if f.BloodType != "" {
		query += fmt.Sprintf(" AND blood_type = $%d", i)
		args = append(args, f.BloodType)
		i++
	}
	query += `
		ORDER BY CASE priority
			WHEN 'emergency' THEN 4
			WHEN 'high' THEN 3
			WHEN 'medium' THEN 2
			ELSE 1
		END DESC, created_at DESC`

	return r.queryAlerts(ctx, query, args...)
}

// ListActive devuelve alertas activas, opcionalmente por tipo de sangre.
// Es la fuente del camino de respaldo (scan) de la búsqueda por cercanía.
func (r *AlertRepo) ListActive(ctx context.Context, bloodType string) ([]*entity.Alert, error) {
	query := `SELECT ` + alertColumns + ` FROM alerts WHERE status = 'active'`
	args := []any{}
	if bloodType != "" {
		query += ` AND blood_type = $1`
		args = append(args, bloodType)
	}
	return r.queryAlerts(ctx, query, args...)
}

// SearchNearby camino pushdown: Haversine en SQL con el mismo radio terrestre
// (6371 km) que el motor en proceso, para que ambos caminos coincidan en
// pertenencia al radio. El orden final lo impone el caso de uso en proceso.
func (r *AlertRepo) SearchNearby(ctx context.Context, lat, lon, radiusKm float64, bloodType string) ([]*entity.Alert, error) {
	query := `SELECT ` + alertColumns + ` FROM alerts
		WHERE status = 'active'
		AND latitude IS NOT NULL AND longitude IS NOT NULL
		AND (
			6371 * acos(
				least(1.0, greatest(-1.0,
					cos(radians($1)) * cos(radians(latitude)) *
					cos(radians(longitude) - radians($2)) +
					sin(radians($1)) * sin(radians(latitude))
				))
			)
		) <= $3`
	args := []any{lat, lon, radiusKm}
	if bloodType != "" {
		query += ` AND blood_type = $4`
		args = append(args, bloodType)
	}
	return r.queryAlerts(ctx, query, args...)
}

// Delete elimina una alerta por ID.
func (r *AlertRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM alerts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete alert: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *AlertRepo) queryAlerts(ctx context.Context, query string, args ...any) ([]*entity.Alert, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query alerts: %w", err)
	}
	defer rows.Close()

	var alerts []*entity.Alert
	for rows.Next() {
		a, err := scanAlert(rows)
		if err != nil {
			return nil, fmt.Errorf("scan alert: %w", err)
		}
		alerts = append(alerts, a)
	}
	return alerts, rows.Err()
}
