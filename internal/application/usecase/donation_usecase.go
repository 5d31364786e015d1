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

// CertificateGenerator genera el certificado PDF de una donación completada.
type CertificateGenerator interface {
	GenerateDonationCertificate(ctx context.Context, donation *entity.Donation, donor, hospital *entity.User) ([]byte, error)
}

// DonationPolicy reglas configurables sobre transiciones de estado.
type DonationPolicy struct {
	// AllowReopen permite a hospital/autoridad sacar una donación de un estado
	// terminal. El sistema histórico lo permitía; con false se responde conflicto.
	AllowReopen bool
}

// DonationUseCase agenda y gestiona donaciones.
type DonationUseCase struct {
	donationRepo repository.DonationRepository
	userRepo     repository.UserRepository
	certificates CertificateGenerator
	pol          DonationPolicy
}

// NewDonationUseCase construye el caso de uso.
func NewDonationUseCase(
	donationRepo repository.DonationRepository,
	userRepo repository.UserRepository,
	certificates CertificateGenerator,
	pol DonationPolicy,
) *DonationUseCase {
	return &DonationUseCase{
		donationRepo: donationRepo,
		userRepo:     userRepo,
		certificates: certificates,
		pol:          pol,
	}
}

// List devuelve donaciones visibles para el actor, con filtros opcionales.
// Donante: las suyas; hospital: las recibidas; autoridad: todas.
func (uc *DonationUseCase) List(ctx context.Context, actor dto.Actor, status, startDate, endDate string) ([]*dto.DonationResponse, error) {
	f := repository.DonationFilter{}
	switch actor.Role {
	case entity.RoleDonor:
		f.DonorID = actor.ID
	case entity.RoleHospital:
		f.HospitalID = actor.ID
	case entity.RoleAuthority:
		// sin restricción
	default:
		return nil, domain.ErrForbidden
	}

	if status != "" {
		if !entity.ValidDonationStatus(status) {
			return nil, domain.ErrInvalidInput
		}
		f.Status = status
	}
	if startDate != "" {
		t, err := time.Parse(time.RFC3339, startDate)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		f.StartDate = &t
	}
	if endDate != "" {
		t, err := time.Parse(time.RFC3339, endDate)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		f.EndDate = &t
	}

	list, err := uc.donationRepo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return dto.ToDonationResponses(list), nil
}

// Get devuelve una donación si el actor tiene acceso a ella.
func (uc *DonationUseCase) Get(ctx context.Context, actor dto.Actor, id string) (*dto.DonationResponse, error) {
	d, err := uc.donationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.ErrNotFound
	}
	if !policy.CanReadDonation(actor.ID, actor.Role, d) {
		return nil, domain.ErrForbidden
	}
	return dto.ToDonationResponse(d), nil
}

// Create agenda una donación. Un donante aporta hospital_id y un hospital
// aporta donor_id; la contraparte debe existir con el rol correcto.
func (uc *DonationUseCase) Create(ctx context.Context, actor dto.Actor, in dto.CreateDonationRequest) (*dto.DonationResponse, error) {
	if !policy.CanCreateDonation(actor.Role) {
		return nil, domain.ErrForbidden
	}
	if in.AppointmentDate == "" || in.BloodType == "" {
		return nil, domain.ErrInvalidInput
	}
	if !entity.ValidBloodType(in.BloodType) {
		return nil, domain.ErrInvalidInput
	}

	donorID := in.DonorID
	hospitalID := in.HospitalID
	if actor.Role == entity.RoleDonor {
		donorID = actor.ID
		if hospitalID == "" {
			return nil, domain.ErrInvalidInput
		}
	} else {
		hospitalID = actor.ID
		if donorID == "" {
			return nil, domain.ErrInvalidInput
		}
	}

	donor, err := uc.userRepo.GetByID(ctx, donorID)
	if err != nil {
		return nil, err
	}
	if donor == nil || donor.Role != entity.RoleDonor {
		return nil, domain.ErrNotFound
	}
	hospital, err := uc.userRepo.GetByID(ctx, hospitalID)
	if err != nil {
		return nil, err
	}
	if hospital == nil || hospital.Role != entity.RoleHospital {
		return nil, domain.ErrNotFound
	}

	appointment, err := time.Parse(time.RFC3339, in.AppointmentDate)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now().UTC()
	d := &entity.Donation{
		ID:              uuid.New().String(),
		DonorID:         donorID,
		HospitalID:      hospitalID,
		AppointmentDate: appointment,
		BloodType:       in.BloodType,
		Status:          entity.DonationScheduled,
		Notes:           in.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.donationRepo.Create(ctx, d); err != nil {
		return nil, err
	}
	return dto.ToDonationResponse(d), nil
}

// Update modifica una donación según el rol. Un donante solo puede enviar la
// transición scheduled→cancelled; cualquier otro campo suyo se rechaza.
// Hospital/autoridad actualizan estado y observaciones médicas; el paso a
// completed estampa completed_at (se sobrescribe si se repite la transición).
func (uc *DonationUseCase) Update(ctx context.Context, actor dto.Actor, id string, in dto.UpdateDonationRequest) (*dto.DonationResponse, error) {
	d, err := uc.donationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.ErrNotFound
	}
	if !policy.CanUpdateDonation(actor.ID, actor.Role, d) {
		return nil, domain.ErrForbidden
	}

	if actor.Role == entity.RoleDonor {
		// El donante solo cancela. Cualquier otro campo o estado es rechazado
		// aunque la donación sea suya.
		if in.Status == nil || *in.Status != entity.DonationCancelled ||
			in.AppointmentDate != nil || in.AmountML != nil || in.Hemoglobin != nil ||
			in.BloodPressure != nil || in.Pulse != nil || in.Temperature != nil || in.Notes != nil {
			return nil, domain.ErrForbidden
		}
		d.Status = entity.DonationCancelled
	} else {
		if in.Status != nil {
			if !entity.ValidDonationStatus(*in.Status) {
				return nil, domain.ErrInvalidInput
			}
			if entity.DonationTerminal(d.Status) && *in.Status != d.Status && !uc.pol.AllowReopen {
				return nil, domain.ErrConflict
			}
			d.Status = *in.Status
			if d.Status == entity.DonationCompleted {
				now := time.Now().UTC()
				d.CompletedAt = &now
			}
		}
		if in.AppointmentDate != nil {
			appointment, err := time.Parse(time.RFC3339, *in.AppointmentDate)
			if err != nil {
				return nil, domain.ErrInvalidInput
			}
			d.AppointmentDate = appointment
		}
		if in.AmountML != nil {
			d.AmountML = in.AmountML
		}
		if in.Hemoglobin != nil {
			d.Hemoglobin = in.Hemoglobin
		}
		if in.BloodPressure != nil {
			d.BloodPressure = *in.BloodPressure
		}
		if in.Pulse != nil {
			d.Pulse = in.Pulse
		}
		if in.Temperature != nil {
			d.Temperature = in.Temperature
		}
		if in.Notes != nil {
			d.Notes = *in.Notes
		}
	}

	d.UpdatedAt = time.Now().UTC()
	if err := uc.donationRepo.Update(ctx, d); err != nil {
		return nil, err
	}
	return dto.ToDonationResponse(d), nil
}

// Delete elimina una donación (solo autoridad).
func (uc *DonationUseCase) Delete(ctx context.Context, actor dto.Actor, id string) error {
	if !policy.CanDeleteDonation(actor.Role) {
		return domain.ErrForbidden
	}
	d, err := uc.donationRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if d == nil {
		return domain.ErrNotFound
	}
	return uc.donationRepo.Delete(ctx, id)
}

// Certificate genera el certificado PDF de una donación completada. El acceso
// sigue las mismas reglas de lectura; una donación no completada es conflicto.
func (uc *DonationUseCase) Certificate(ctx context.Context, actor dto.Actor, id string) ([]byte, error) {
	d, err := uc.donationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.ErrNotFound
	}
	if !policy.CanReadDonation(actor.ID, actor.Role, d) {
		return nil, domain.ErrForbidden
	}
	if d.Status != entity.DonationCompleted {
		return nil, domain.ErrConflict
	}

	donor, err := uc.userRepo.GetByID(ctx, d.DonorID)
	if err != nil {
		return nil, err
	}
	hospital, err := uc.userRepo.GetByID(ctx, d.HospitalID)
	if err != nil {
		return nil, err
	}
	if donor == nil || hospital == nil {
		return nil, domain.ErrNotFound
	}
	return uc.certificates.GenerateDonationCertificate(ctx, d, donor, hospital)
}
