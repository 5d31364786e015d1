package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/raktsetu/raktsetu-api/internal/application/dto"
	"github.com/raktsetu/raktsetu-api/internal/domain"
	"github.com/raktsetu/raktsetu-api/internal/domain/entity"
	"github.com/raktsetu/raktsetu-api/internal/domain/policy"
	"github.com/raktsetu/raktsetu-api/internal/domain/repository"
)

// InventoryUseCase gestión del stock de sangre por hospital y tipo.
type InventoryUseCase struct {
	invRepo  repository.InventoryRepository
	userRepo repository.UserRepository
}

// NewInventoryUseCase construye el caso de uso.
func NewInventoryUseCase(invRepo repository.InventoryRepository, userRepo repository.UserRepository) *InventoryUseCase {
	return &InventoryUseCase{invRepo: invRepo, userRepo: userRepo}
}

// List devuelve inventario según el rol: hospital solo el suyo, autoridad con
// filtro opcional de hospital, donante todo (solo lectura).
func (uc *InventoryUseCase) List(ctx context.Context, actor dto.Actor, hospitalID, bloodType string) ([]*dto.InventoryResponse, error) {
	f := repository.InventoryFilter{}
	switch actor.Role {
	case entity.RoleHospital:
		f.HospitalID = actor.ID
	case entity.RoleAuthority:
		f.HospitalID = hospitalID
	case entity.RoleDonor:
		// sin restricción
	default:
		return nil, domain.ErrForbidden
	}
	if bloodType != "" {
		if !entity.ValidBloodType(bloodType) {
			return nil, domain.ErrInvalidInput
		}
		f.BloodType = bloodType
	}

	list, err := uc.invRepo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return dto.ToInventoryResponses(list), nil
}

// Get devuelve una fila de inventario visible para el actor.
func (uc *InventoryUseCase) Get(ctx context.Context, actor dto.Actor, id string) (*dto.InventoryResponse, error) {
	inv, err := uc.invRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	if !policy.CanReadInventory(actor.ID, actor.Role, inv) {
		return nil, domain.ErrForbidden
	}
	return dto.ToInventoryResponse(inv), nil
}

// Create da de alta el stock de un tipo de sangre. La unicidad de
// (hospital, tipo) se verifica antes del insert; un duplicado es conflicto y
// debe actualizarse por la vía de update.
func (uc *InventoryUseCase) Create(ctx context.Context, actor dto.Actor, in dto.CreateInventoryRequest) (*dto.InventoryResponse, error) {
	hospitalID := in.HospitalID
	if actor.Role == entity.RoleHospital {
		hospitalID = actor.ID
	}
	if hospitalID == "" {
		return nil, domain.ErrInvalidInput
	}
	if !policy.CanWriteInventory(actor.ID, actor.Role, hospitalID) {
		return nil, domain.ErrForbidden
	}
	if in.BloodType == "" || in.UnitsAvailable == nil {
		return nil, domain.ErrInvalidInput
	}
	if !entity.ValidBloodType(in.BloodType) || *in.UnitsAvailable < 0 {
		return nil, domain.ErrInvalidInput
	}

	hospital, err := uc.userRepo.GetByID(ctx, hospitalID)
	if err != nil {
		return nil, err
	}
	if hospital == nil || hospital.Role != entity.RoleHospital {
		return nil, domain.ErrNotFound
	}

	existing, err := uc.invRepo.GetByHospitalAndType(ctx, hospitalID, in.BloodType)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicateInventory
	}

	inv := &entity.BloodInventory{
		ID:             uuid.New().String(),
		HospitalID:     hospitalID,
		BloodType:      in.BloodType,
		UnitsAvailable: *in.UnitsAvailable,
		LastUpdated:    time.Now().UTC(),
	}
	if in.ExpiryDate != "" {
		expiry, err := time.Parse("2006-01-02", in.ExpiryDate)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		inv.ExpiryDate = &expiry
	}

	if err := uc.invRepo.Create(ctx, inv); err != nil {
		return nil, err
	}
	return dto.ToInventoryResponse(inv), nil
}

// Update modifica unidades disponibles y fecha de vencimiento.
func (uc *InventoryUseCase) Update(ctx context.Context, actor dto.Actor, id string, in dto.UpdateInventoryRequest) (*dto.InventoryResponse, error) {
	inv, err := uc.invRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	if !policy.CanWriteInventory(actor.ID, actor.Role, inv.HospitalID) {
		return nil, domain.ErrForbidden
	}

	if in.UnitsAvailable != nil {
		if *in.UnitsAvailable < 0 {
			return nil, domain.ErrInvalidInput
		}
		inv.UnitsAvailable = *in.UnitsAvailable
	}
	if in.ExpiryDate != nil {
		expiry, err := time.Parse("2006-01-02", *in.ExpiryDate)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		inv.ExpiryDate = &expiry
	}

	inv.LastUpdated = time.Now().UTC()
	if err := uc.invRepo.Update(ctx, inv); err != nil {
		return nil, err
	}
	return dto.ToInventoryResponse(inv), nil
}

// Delete elimina una fila de inventario (hospital propio o autoridad).
func (uc *InventoryUseCase) Delete(ctx context.Context, actor dto.Actor, id string) error {
	inv, err := uc.invRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if inv == nil {
		return domain.ErrNotFound
	}
	if !policy.CanWriteInventory(actor.ID, actor.Role, inv.HospitalID) {
		return domain.ErrForbidden
	}
	return uc.invRepo.Delete(ctx, id)
}

// Summary unidades totales por tipo de sangre. Un hospital solo agrega las
// suyas; donante y autoridad ven el total global.
func (uc *InventoryUseCase) Summary(ctx context.Context, actor dto.Actor) (map[string]int, error) {
	hospitalID := ""
	if actor.Role == entity.RoleHospital {
		hospitalID = actor.ID
	}
	sums, err := uc.invRepo.SummaryByBloodType(ctx, hospitalID)
	if err != nil {
		return nil, err
	}
	// Todos los tipos presentes en la respuesta, aunque estén en cero.
	out := make(map[string]int, len(entity.BloodTypes))
	for _, bt := range entity.BloodTypes {
		out[bt] = sums[bt]
	}
	return out, nil
}

// HospitalInventory inventario completo de un hospital concreto. Un hospital
// solo puede consultar el suyo; pedir el de otro es denegado.
func (uc *InventoryUseCase) HospitalInventory(ctx context.Context, actor dto.Actor, hospitalID string) ([]*dto.InventoryResponse, error) {
	hospital, err := uc.userRepo.GetByID(ctx, hospitalID)
	if err != nil {
		return nil, err
	}
	if hospital == nil || hospital.Role != entity.RoleHospital {
		return nil, domain.ErrNotFound
	}
	if !policy.CanReadHospitalInventory(actor.ID, actor.Role, hospitalID) {
		return nil, domain.ErrForbidden
	}
	list, err := uc.invRepo.List(ctx, repository.InventoryFilter{HospitalID: hospitalID})
	if err != nil {
		return nil, err
	}
	return dto.ToInventoryResponses(list), nil
}
