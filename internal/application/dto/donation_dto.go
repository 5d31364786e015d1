package dto

import (
	"time"

	"github.com/raktsetu/raktsetu-api/internal/domain/entity"
)

// CreateDonationRequest agenda una donación. Un donante debe indicar
// hospital_id; un hospital debe indicar donor_id.
type CreateDonationRequest struct {
	DonorID         string `json:"donor_id"`
	HospitalID      string `json:"hospital_id"`
	AppointmentDate string `json:"appointment_date"` // ISO 8601
	BloodType       string `json:"blood_type"`
	Notes           string `json:"notes"`
}

// UpdateDonationRequest campos actualizables de una donación. Punteros nil =
// sin cambio. Un donante solo puede enviar status=cancelled; el resto de
// campos son de hospital/autoridad.
type UpdateDonationRequest struct {
	Status          *string  `json:"status"`
	AppointmentDate *string  `json:"appointment_date"`
	AmountML        *int     `json:"amount_ml"`
	Hemoglobin      *float64 `json:"hemoglobin"`
	BloodPressure   *string  `json:"blood_pressure"`
	Pulse           *int     `json:"pulse"`
	Temperature     *float64 `json:"temperature"`
	Notes           *string  `json:"notes"`
}

// DonationResponse representación pública de una donación.
type DonationResponse struct {
	ID              string   `json:"id"`
	DonorID         string   `json:"donor_id"`
	HospitalID      string   `json:"hospital_id"`
	AppointmentDate string   `json:"appointment_date"`
	BloodType       string   `json:"blood_type"`
	AmountML        *int     `json:"amount_ml"`
	Status          string   `json:"status"`
	Hemoglobin      *float64 `json:"hemoglobin"`
	BloodPressure   string   `json:"blood_pressure,omitempty"`
	Pulse           *int     `json:"pulse"`
	Temperature     *float64 `json:"temperature"`
	Notes           string   `json:"notes,omitempty"`
	CreatedAt       string   `json:"created_at"`
	UpdatedAt       string   `json:"updated_at"`
	CompletedAt     *string  `json:"completed_at"`
}

// ToDonationResponse proyecta la entidad a su representación pública.
func ToDonationResponse(d *entity.Donation) *DonationResponse {
	if d == nil {
		return nil
	}
	out := &DonationResponse{
		ID:              d.ID,
		DonorID:         d.DonorID,
		HospitalID:      d.HospitalID,
		AppointmentDate: d.AppointmentDate.UTC().Format(time.RFC3339),
		BloodType:       d.BloodType,
		AmountML:        d.AmountML,
		Status:          d.Status,
		Hemoglobin:      d.Hemoglobin,
		BloodPressure:   d.BloodPressure,
		Pulse:           d.Pulse,
		Temperature:     d.Temperature,
		Notes:           d.Notes,
		CreatedAt:       d.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:       d.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if d.CompletedAt != nil {
		s := d.CompletedAt.UTC().Format(time.RFC3339)
		out.CompletedAt = &s
	}
	return out
}

// ToDonationResponses proyecta una lista.
func ToDonationResponses(list []*entity.Donation) []*DonationResponse {
	out := make([]*DonationResponse, 0, len(list))
	for _, d := range list {
		out = append(out, ToDonationResponse(d))
	}
	return out
}
