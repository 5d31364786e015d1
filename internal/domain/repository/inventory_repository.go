package repository

import (
	"context"

	"github.com/raktsetu/raktsetu-api/internal/domain/entity"
)

// InventoryFilter criterios de listado de inventario. Campos vacíos no filtran.
type InventoryFilter struct {
	HospitalID string
	BloodType  string
}

// InventoryRepository define el puerto de persistencia para BloodInventory.
type InventoryRepository interface {
	Create(ctx context.Context, inv *entity.BloodInventory) error
	GetByID(ctx context.Context, id string) (*entity.BloodInventory, error)
	// GetByHospitalAndType devuelve la fila única (hospital, tipo) o nil.
	GetByHospitalAndType(ctx context.Context, hospitalID, bloodType string) (*entity.BloodInventory, error)
	Update(ctx context.Context, inv *entity.BloodInventory) error
	List(ctx context.Context, f InventoryFilter) ([]*entity.BloodInventory, error)
	// SummaryByBloodType suma unidades disponibles por tipo de sangre;
	// hospitalID vacío agrega sobre todos los hospitales.
	SummaryByBloodType(ctx context.Context, hospitalID string) (map[string]int, error)
	Delete(ctx context.Context, id string) error
}
