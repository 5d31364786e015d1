package repository

import (
	"context"
	"time"

	"github.com/raktsetu/raktsetu-api/internal/domain/entity"
)

// DonationFilter criterios de listado de donaciones. Campos vacíos/nil no filtran.
type DonationFilter struct {
	DonorID    string
	HospitalID string
	Status     string
	StartDate  *time.Time
	EndDate    *time.Time
}

// DonationRepository define el puerto de persistencia para Donation.
type DonationRepository interface {
	Create(ctx context.Context, d *entity.Donation) error
	GetByID(ctx context.Context, id string) (*entity.Donation, error)
	Update(ctx context.Context, d *entity.Donation) error
	List(ctx context.Context, f DonationFilter) ([]*entity.Donation, error)
	Delete(ctx context.Context, id string) error
}
