package dto

import (
	"time"

	"github.com/raktsetu/raktsetu-api/internal/domain/entity"
)

// CreateAlertRequest emite una alerta. Si el hospital no envía dirección o
// coordenadas se usan las de su perfil; sin coordenadas se intenta geocodificar.
type CreateAlertRequest struct {
	BloodType   string   `json:"blood_type"`
	UnitsNeeded *int     `json:"units_needed"`
	Priority    string   `json:"priority"`
	Title       string   `json:"title"`
	Message     string   `json:"message"`
	ExpiresAt   string   `json:"expires_at"` // ISO 8601; vacío = default por prioridad

	HospitalName string   `json:"hospital_name"`
	Address      string   `json:"address"`
	City         string   `json:"city"`
	State        string   `json:"state"`
	PostalCode   string   `json:"postal_code"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
}

// UpdateAlertRequest campos actualizables de una alerta. Punteros nil = sin cambio.
type UpdateAlertRequest struct {
	BloodType   *string  `json:"blood_type"`
	UnitsNeeded *int     `json:"units_needed"`
	Priority    *string  `json:"priority"`
	Status      *string  `json:"status"`
	Title       *string  `json:"title"`
	Message     *string  `json:"message"`
	ExpiresAt   *string  `json:"expires_at"`

	HospitalName *string  `json:"hospital_name"`
	Address      *string  `json:"address"`
	City         *string  `json:"city"`
	State        *string  `json:"state"`
	PostalCode   *string  `json:"postal_code"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
}

// AlertResponse representación pública de una alerta.
type AlertResponse struct {
	ID          string `json:"id"`
	CreatorID   string `json:"creator_id"`
	BloodType   string `json:"blood_type"`
	UnitsNeeded int    `json:"units_needed"`
	Priority    string `json:"priority"`
	Status      string `json:"status"`
	Title       string `json:"title"`
	Message     string `json:"message,omitempty"`

	HospitalName string   `json:"hospital_name,omitempty"`
	Address      string   `json:"address,omitempty"`
	City         string   `json:"city,omitempty"`
	State        string   `json:"state,omitempty"`
	PostalCode   string   `json:"postal_code,omitempty"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`

	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
	ExpiresAt *string `json:"expires_at"`

	// DistanceKm solo se incluye en /alerts/nearby.
	DistanceKm *float64 `json:"distance,omitempty"`
}

// ToAlertResponse proyecta la entidad a su representación pública.
func ToAlertResponse(a *entity.Alert) *AlertResponse {
	if a == nil {
		return nil
	}
	out := &AlertResponse{
		ID:           a.ID,
		CreatorID:    a.CreatorID,
		BloodType:    a.BloodType,
		UnitsNeeded:  a.UnitsNeeded,
		Priority:     a.Priority,
		Status:       a.Status,
		Title:        a.Title,
		Message:      a.Message,
		HospitalName: a.HospitalName,
		Address:      a.Address,
		City:         a.City,
		State:        a.State,
		PostalCode:   a.PostalCode,
		Latitude:     a.Latitude,
		Longitude:    a.Longitude,
		CreatedAt:    a.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:    a.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if a.ExpiresAt != nil {
		s := a.ExpiresAt.UTC().Format(time.RFC3339)
		out.ExpiresAt = &s
	}
	return out
}

// ToAlertResponses proyecta una lista.
func ToAlertResponses(list []*entity.Alert) []*AlertResponse {
	out := make([]*AlertResponse, 0, len(list))
	for _, a := range list {
		out = append(out, ToAlertResponse(a))
	}
	return out
}
