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

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo implementación del puerto InventoryRepository sobre PostgreSQL.
type InventoryRepo struct {
	pool *pgxpool.Pool
}

// NewInventoryRepository construye el adaptador de persistencia para inventario.
func NewInventoryRepository(pool *pgxpool.Pool) *InventoryRepo {
	return &InventoryRepo{pool: pool}
}

const inventoryColumns = `
	id, hospital_id, blood_type, units_available, expiry_date, last_updated`

func scanInventory(row pgx.Row) (*entity.BloodInventory, error) {
	var inv entity.BloodInventory
	err := row.Scan(
		&inv.ID, &inv.HospitalID, &inv.BloodType, &inv.UnitsAvailable,
		&inv.ExpiryDate, &inv.LastUpdated,
	)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// Create persiste una fila de inventario. El índice único (hospital, tipo)
// respalda la verificación previa del caso de uso contra carreras.
func (r *InventoryRepo) Create(ctx context.Context, inv *entity.BloodInventory) error {
	query := `
		INSERT INTO blood_inventory (` + inventoryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.pool.Exec(ctx, query,
		inv.ID, inv.HospitalID, inv.BloodType, inv.UnitsAvailable,
		inv.ExpiryDate, inv.LastUpdated,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateInventory
		}
		return fmt.Errorf("insert inventory: %w", err)
	}
	return nil
}

// GetByID obtiene una fila de inventario por ID. Devuelve nil si no existe.
func (r *InventoryRepo) GetByID(ctx context.Context, id string) (*entity.BloodInventory, error) {
	query := `SELECT ` + inventoryColumns + ` FROM blood_inventory WHERE id = $1`
	inv, err := scanInventory(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory by id: %w", err)
	}
	return inv, nil
}

// GetByHospitalAndType devuelve la fila única (hospital, tipo) o nil.
func (r *InventoryRepo) GetByHospitalAndType(ctx context.Context, hospitalID, bloodType string) (*entity.BloodInventory, error) {
	query := `SELECT ` + inventoryColumns + ` FROM blood_inventory
		WHERE hospital_id = $1 AND blood_type = $2`
	inv, err := scanInventory(r.pool.QueryRow(ctx, query, hospitalID, bloodType))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory by hospital and type: %w", err)
	}
	return inv, nil
}

// Update reescribe unidades, vencimiento y marca de actualización.
func (r *InventoryRepo) Update(ctx context.Context, inv *entity.BloodInventory) error {
	query := `
		UPDATE blood_inventory SET
			units_available = $2, expiry_date = $3, last_updated = $4
		WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query,
		inv.ID, inv.UnitsAvailable, inv.ExpiryDate, inv.LastUpdated,
	)
	if err != nil {
		return fmt.Errorf("update inventory: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve filas de inventario que cumplen el filtro.
func (r *InventoryRepo) List(ctx context.Context, f repository.InventoryFilter) ([]*entity.BloodInventory, error) {
	query := `SELECT ` + inventoryColumns + ` FROM blood_inventory WHERE 1=1`
	args := []any{}
	i := 1
	if f.HospitalID != "" {
		query += fmt.Sprintf(" AND hospital_id = $%d", i)
		args = append(args, f.HospitalID)
		i++
	}
	if f.BloodType != "" {
		query += fmt.Sprintf(" AND blood_type = $%d", i)
		args = append(args, f.BloodType)
		i++
	}
	query += ` ORDER BY blood_type, last_updated DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	defer rows.Close()

	var list []*entity.BloodInventory
	for rows.Next() {
		inv, err := scanInventory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory: %w", err)
		}
		list = append(list, inv)
	}
	return list, rows.Err()
}

// SummaryByBloodType suma unidades disponibles por tipo de sangre;
// hospitalID vacío agrega sobre todos los hospitales.
func (r *InventoryRepo) SummaryByBloodType(ctx context.Context, hospitalID string) (map[string]int, error) {
	query := `SELECT blood_type, COALESCE(SUM(units_available), 0) FROM blood_inventory`
	args := []any{}
	if hospitalID != "" {
		query += ` WHERE hospital_id = $1`
		args = append(args, hospitalID)
	}
	query += ` GROUP BY blood_type`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("summary inventory: %w", err)
	}
	defer rows.Close()

	sums := make(map[string]int)
	for rows.Next() {
		var bt string
		var units int
		if err := rows.Scan(&bt, &units); err != nil {
			return nil, fmt.Errorf("scan summary: %w", err)
		}
		sums[bt] = units
	}
	return sums, rows.Err()
}

// Delete elimina una fila de inventario por ID.
func (r *InventoryRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM blood_inventory WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete inventory: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
