package entity

import "time"

// Estados válidos para Donation.
const (
	DonationScheduled = "scheduled"
	DonationCompleted = "completed"
	DonationCancelled = "cancelled"
	DonationNoShow    = "no_show"
)

// ValidDonationStatus indica si el estado pertenece a la enumeración cerrada.
func ValidDonationStatus(s string) bool {
	switch s {
	case DonationScheduled, DonationCompleted, DonationCancelled, DonationNoShow:
		return true
	}
	return false
}

// DonationTerminal indica si el estado es terminal (sin más transiciones por regla).
func DonationTerminal(s string) bool {
	return s == DonationCompleted || s == DonationCancelled || s == DonationNoShow
}

// Donation es una cita/registro de donación entre un donante y un hospital.
// donor_id y hospital_id referencian usuarios con el rol correcto.
type Donation struct {
	ID              string
	DonorID         string
	HospitalID      string
	AppointmentDate time.Time
	BloodType       string
	AmountML        *int
	Status          string

	// Observaciones médicas posteriores a la donación.
	Hemoglobin    *float64
	BloodPressure string
	Pulse         *int
	Temperature   *float64
	Notes         string

	CreatedAt   time.Time
	UpdatedAt   time.Time
	CompletedAt *time.Time // se estampa al pasar a completed; se sobrescribe si se repite
}
