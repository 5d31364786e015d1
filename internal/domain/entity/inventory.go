package entity

import "time"

// BloodInventory es el stock actual de un tipo de sangre en un hospital.
// Invariante: como máximo una fila por (hospital_id, blood_type); se verifica
// antes del insert y además lo respalda un índice único en la base.
type BloodInventory struct {
	ID             string
	HospitalID     string
	BloodType      string
	UnitsAvailable int
	ExpiryDate     *time.Time
	LastUpdated    time.Time
}
