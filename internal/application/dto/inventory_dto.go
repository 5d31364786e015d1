package dto

import (
	"time"

	"github.com/raktsetu/raktsetu-api/internal/domain/entity"
)

// CreateInventoryRequest alta de stock. hospital_id solo lo usa la autoridad;
// para un hospital se toma del token.
type CreateInventoryRequest struct {
	HospitalID     string `json:"hospital_id"`
	BloodType      string `json:"blood_type"`
	UnitsAvailable *int   `json:"units_available"`
	ExpiryDate     string `json:"expiry_date"` // YYYY-MM-DD
}

// UpdateInventoryRequest campos actualizables de una fila de inventario.
type UpdateInventoryRequest struct {
	UnitsAvailable *int    `json:"units_available"`
	ExpiryDate     *string `json:"expiry_date"`
}

// InventoryResponse representación pública de una fila de inventario.
type InventoryResponse struct {
	ID             string `json:"id"`
	HospitalID     string `json:"hospital_id"`
	BloodType      string `json:"blood_type"`
	UnitsAvailable int    `json:"units_available"`
	ExpiryDate     string `json:"expiry_date,omitempty"`
	LastUpdated    string `json:"last_updated"`
}

// ToInventoryResponse proyecta la entidad a su representación pública.
func ToInventoryResponse(inv *entity.BloodInventory) *InventoryResponse {
	if inv == nil {
		return nil
	}
	out := &InventoryResponse{
		ID:             inv.ID,
		HospitalID:     inv.HospitalID,
		BloodType:      inv.BloodType,
		UnitsAvailable: inv.UnitsAvailable,
		LastUpdated:    inv.LastUpdated.UTC().Format(time.RFC3339),
	}
	if inv.ExpiryDate != nil {
		out.ExpiryDate = inv.ExpiryDate.UTC().Format("2006-01-02")
	}
	return out
}

// ToInventoryResponses proyecta una lista.
func ToInventoryResponses(list []*entity.BloodInventory) []*InventoryResponse {
	out := make([]*InventoryResponse, 0, len(list))
	for _, inv := range list {
		out = append(out, ToInventoryResponse(inv))
	}
	return out
}
