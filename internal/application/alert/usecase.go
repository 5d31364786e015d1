// Package alert implementa el ciclo de vida de las alertas de necesidad de
// sangre: emisión con expiración por prioridad, actualización, resolución y la
// búsqueda por cercanía con doble camino (pushdown en base o barrido en
// proceso).
package alert

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/raktsetu/raktsetu-api/internal/application/dto"
	"github.com/raktsetu/raktsetu-api/internal/domain"
	"github.com/raktsetu/raktsetu-api/internal/domain/entity"
	"github.com/raktsetu/raktsetu-api/internal/domain/geo"
	"github.com/raktsetu/raktsetu-api/internal/domain/policy"
	"github.com/raktsetu/raktsetu-api/internal/domain/repository"
	"github.com/raktsetu/raktsetu-api/pkg/logger"
)

// DefaultNearbyRadiusKm radio por defecto de la búsqueda de alertas cercanas.
const DefaultNearbyRadiusKm = 20.0

// UseCase orquesta las operaciones sobre alertas.
type UseCase struct {
	alertRepo repository.AlertRepository
	userRepo  repository.UserRepository
	geocoder  Geocoder
	searcher  NearbySearcher
	log       *logger.Logger
}

// NewUseCase construye el caso de uso. geocoder y searcher pueden ser nil:
// sin geocoder las alertas sin coordenadas quedan con ubicación desconocida,
// sin searcher la búsqueda cercana usa siempre el barrido en proceso.
func NewUseCase(alertRepo repository.AlertRepository, userRepo repository.UserRepository, geocoder Geocoder, searcher NearbySearcher, log *logger.Logger) *UseCase {
	return &UseCase{
		alertRepo: alertRepo,
		userRepo:  userRepo,
		geocoder:  geocoder,
		searcher:  searcher,
		log:       log,
	}
}

// List devuelve las alertas visibles para el actor con filtros opcionales.
// Donante: solo activas (y de su tipo de sangre si lo registró); hospital:
// las propias más las activas; autoridad: todas.
func (uc *UseCase) List(ctx context.Context, actor dto.Actor, status, priority, bloodType string) ([]*dto.AlertResponse, error) {
	if status != "" && !entity.ValidAlertStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	if priority != "" && !entity.ValidAlertPriority(priority) {
		return nil, domain.ErrInvalidInput
	}
	if bloodType != "" && !entity.ValidBloodType(bloodType) {
		return nil, domain.ErrInvalidInput
	}

	user, err := uc.userRepo.GetByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	list, err := uc.alertRepo.List(ctx, repository.AlertFilter{
		Status:    status,
		Priority:  priority,
		BloodType: bloodType,
	})
	if err != nil {
		return nil, err
	}

	visible := make([]*entity.Alert, 0, len(list))
	for _, a := range list {
		if policy.AlertVisible(user, a) {
			visible = append(visible, a)
		}
	}
	return dto.ToAlertResponses(visible), nil
}

// Get devuelve una alerta por id. Cualquier usuario autenticado puede leerla.
func (uc *UseCase) Get(ctx context.Context, id string) (*dto.AlertResponse, error) {
	a, err := uc.alertRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}
	return dto.ToAlertResponse(a), nil
}

// Create emite una alerta. Solo hospitales. Los datos de ubicación ausentes se
// completan con el perfil del hospital; sin coordenadas se intenta geocodificar
// la dirección, y un fallo de geocodificación nunca aborta la creación.
func (uc *UseCase) Create(ctx context.Context, actor dto.Actor, in dto.CreateAlertRequest) (*dto.AlertResponse, error) {
	if !policy.CanCreateAlert(actor.Role) {
		return nil, domain.ErrForbidden
	}
	if in.BloodType == "" || in.UnitsNeeded == nil || in.Title == "" {
		return nil, domain.ErrInvalidInput
	}
	if !entity.ValidBloodType(in.BloodType) || *in.UnitsNeeded <= 0 {
		return nil, domain.ErrInvalidInput
	}

	priority := in.Priority
	if priority == "" {
		priority = entity.PriorityMedium
	}
	if !entity.ValidAlertPriority(priority) {
		return nil, domain.ErrInvalidInput
	}

	creator, err := uc.userRepo.GetByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if creator == nil || creator.Hospital == nil {
		return nil, domain.ErrUserNotFound
	}

	now := time.Now().UTC()
	a := &entity.Alert{
		ID:          uuid.New().String(),
		CreatorID:   actor.ID,
		BloodType:   in.BloodType,
		UnitsNeeded: *in.UnitsNeeded,
		Priority:    priority,
		Status:      entity.AlertActive,
		Title:       in.Title,
		Message:     in.Message,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	// Expiración: default por prioridad, el override explícito siempre gana.
	expiry := entity.DefaultExpiry(priority, now)
	if in.ExpiresAt != "" {
		override, err := time.Parse(time.RFC3339, in.ExpiresAt)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		expiry = override.UTC()
	}
	a.ExpiresAt = &expiry

	// Ubicación: lo que no envía el cliente sale del perfil del hospital.
	profile := creator.Hospital
	a.HospitalName = fallback(in.HospitalName, profile.HospitalName)
	a.Address = fallback(in.Address, profile.Address)
	a.City = fallback(in.City, profile.City)
	a.State = fallback(in.State, profile.State)
	a.PostalCode = fallback(in.PostalCode, profile.PostalCode)

	if in.Latitude != nil && in.Longitude != nil {
		a.Latitude = in.Latitude
		a.Longitude = in.Longitude
	} else if profile.Latitude != nil && profile.Longitude != nil {
		a.Latitude = profile.Latitude
		a.Longitude = profile.Longitude
	} else if uc.geocoder != nil && a.Address != "" {
		lat, lon := uc.geocoder.Geocode(ctx, a.Address, a.City, a.State, profile.Country)
		if lat != nil && lon != nil {
			a.Latitude, a.Longitude = lat, lon
			uc.log.Info().Str("alert_id", a.ID).
				Float64("latitude", *lat).Float64("longitude", *lon).
				Msg("dirección geocodificada para la alerta")
		}
	}

	if err := uc.alertRepo.Create(ctx, a); err != nil {
		return nil, err
	}
	return dto.ToAlertResponse(a), nil
}

// Update modifica una alerta. Solo el creador o la autoridad.
func (uc *UseCase) Update(ctx context.Context, actor dto.Actor, id string, in dto.UpdateAlertRequest) (*dto.AlertResponse, error) {
	a, err := uc.alertRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}
	if !policy.CanManageAlert(actor.ID, actor.Role, a) {
		return nil, domain.ErrForbidden
	}

	if in.BloodType != nil {
		if !entity.ValidBloodType(*in.BloodType) {
			return nil, domain.ErrInvalidInput
		}
		a.BloodType = *in.BloodType
	}
	if in.UnitsNeeded != nil {
		if *in.UnitsNeeded <= 0 {
			return nil, domain.ErrInvalidInput
		}
		a.UnitsNeeded = *in.UnitsNeeded
	}
	if in.Priority != nil {
		if !entity.ValidAlertPriority(*in.Priority) {
			return nil, domain.ErrInvalidInput
		}
		a.Priority = *in.Priority
	}
	if in.Status != nil {
		if !entity.ValidAlertStatus(*in.Status) {
			return nil, domain.ErrInvalidInput
		}
		a.Status = *in.Status
	}
	if in.Title != nil {
		a.Title = *in.Title
	}
	if in.Message != nil {
		a.Message = *in.Message
	}
	if in.HospitalName != nil {
		a.HospitalName = *in.HospitalName
	}
	if in.Address != nil {
		a.Address = *in.Address
	}
	if in.City != nil {
		a.City = *in.City
	}
	if in.State != nil {
		a.State = *in.State
	}
	if in.PostalCode != nil {
		a.PostalCode = *in.PostalCode
	}
	if in.Latitude != nil {
		a.Latitude = in.Latitude
	}
	if in.Longitude != nil {
		a.Longitude = in.Longitude
	}
	if in.ExpiresAt != nil {
		override, err := time.Parse(time.RFC3339, *in.ExpiresAt)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		expiry := override.UTC()
		a.ExpiresAt = &expiry
	}

	a.UpdatedAt = time.Now().UTC()
	if err := uc.alertRepo.Update(ctx, a); err != nil {
		return nil, err
	}
	return dto.ToAlertResponse(a), nil
}

// Resolve marca la alerta como resuelta. Solo el creador o la autoridad.
func (uc *UseCase) Resolve(ctx context.Context, actor dto.Actor, id string) (*dto.AlertResponse, error) {
	a, err := uc.alertRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}
	if !policy.CanManageAlert(actor.ID, actor.Role, a) {
		return nil, domain.ErrForbidden
	}

	a.Status = entity.AlertResolved
	a.UpdatedAt = time.Now().UTC()
	if err := uc.alertRepo.Update(ctx, a); err != nil {
		return nil, err
	}
	return dto.ToAlertResponse(a), nil
}

// Delete elimina una alerta. Solo el creador o la autoridad.
func (uc *UseCase) Delete(ctx context.Context, actor dto.Actor, id string) error {
	a, err := uc.alertRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if a == nil {
		return domain.ErrNotFound
	}
	if !policy.CanManageAlert(actor.ID, actor.Role, a) {
		return domain.ErrForbidden
	}
	return uc.alertRepo.Delete(ctx, id)
}

// Nearby devuelve las alertas activas dentro del radio, ordenadas por
// distancia ascendente (empates por id). Intenta primero el camino pushdown
// (Haversine en la base); si falla, degrada al barrido en proceso sin
// propagar el error al cliente. El orden final siempre se calcula en proceso,
// así ambos caminos producen la misma respuesta.
func (uc *UseCase) Nearby(ctx context.Context, lat, lon *float64, radiusKm float64, bloodType string) ([]*dto.AlertResponse, error) {
	if lat == nil || lon == nil {
		return nil, domain.ErrInvalidInput
	}
	if bloodType != "" && !entity.ValidBloodType(bloodType) {
		return nil, domain.ErrInvalidInput
	}
	if radiusKm <= 0 {
		radiusKm = DefaultNearbyRadiusKm
	}

	candidates, err := uc.searchCandidates(ctx, *lat, *lon, radiusKm, bloodType)
	if err != nil {
		return nil, err
	}

	matches := geo.Rank(candidates, *lat, *lon, radiusKm, bloodType)
	out := make([]*dto.AlertResponse, 0, len(matches))
	for _, m := range matches {
		resp := dto.ToAlertResponse(m.Alert)
		d := m.DistanceKm
		resp.DistanceKm = &d
		out = append(out, resp)
	}
	return out, nil
}

// searchCandidates obtiene los candidatos por el camino disponible: pushdown
// si hay searcher y responde, barrido de alertas activas en caso contrario.
func (uc *UseCase) searchCandidates(ctx context.Context, lat, lon, radiusKm float64, bloodType string) ([]*entity.Alert, error) {
	if uc.searcher != nil {
		candidates, err := uc.searcher.SearchNearby(ctx, lat, lon, radiusKm, bloodType)
		if err == nil {
			return candidates, nil
		}
		uc.log.Warn().Err(err).
			Msg("búsqueda pushdown falló, usando barrido en proceso")
	}
	return uc.alertRepo.ListActive(ctx, bloodType)
}

func fallback(v, def string) string {
	if v != "" {
		return v
	}
	return def
}
