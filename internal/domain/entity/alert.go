package entity

import "time"

// Prioridades válidas para Alert.
const (
	PriorityLow       = "low"
	PriorityMedium    = "medium"
	PriorityHigh      = "high"
	PriorityEmergency = "emergency"
)

// Estados válidos para Alert. resolved y expired son terminales.
const (
	AlertActive   = "active"
	AlertResolved = "resolved"
	AlertExpired  = "expired"
)

// ValidAlertPriority indica si la prioridad pertenece a la enumeración cerrada.
func ValidAlertPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityEmergency:
		return true
	}
	return false
}

// ValidAlertStatus indica si el estado pertenece a la enumeración cerrada.
func ValidAlertStatus(s string) bool {
	switch s {
	case AlertActive, AlertResolved, AlertExpired:
		return true
	}
	return false
}

// DefaultExpiry devuelve la expiración por defecto de una alerta según su
// prioridad, medida desde el instante de creación: low +14d, medium +7d,
// high +3d, emergency +1d. Un override explícito del cliente siempre gana.
func DefaultExpiry(priority string, createdAt time.Time) time.Time {
	switch priority {
	case PriorityLow:
		return createdAt.Add(14 * 24 * time.Hour)
	case PriorityHigh:
		return createdAt.Add(3 * 24 * time.Hour)
	case PriorityEmergency:
		return createdAt.Add(24 * time.Hour)
	default: // medium
		return createdAt.Add(7 * 24 * time.Hour)
	}
}

// Alert es una difusión urgente de necesidad de sangre emitida por un hospital.
type Alert struct {
	ID          string
	CreatorID   string // hospital que la creó
	BloodType   string
	UnitsNeeded int
	Priority    string
	Status      string
	Title       string
	Message     string

	// Ubicación. Latitude/Longitude nil = ubicación desconocida (0,0 es una
	// coordenada válida, la ausencia se modela aparte).
	HospitalName string
	Address      string
	City         string
	State        string
	PostalCode   string
	Latitude     *float64
	Longitude    *float64

	CreatedAt time.Time
	UpdatedAt time.Time
	ExpiresAt *time.Time
}
