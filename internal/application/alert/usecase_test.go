package alert_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	alertapp "github.com/raktsetu/raktsetu-api/internal/application/alert"
	"github.com/raktsetu/raktsetu-api/internal/application/dto"
	"github.com/raktsetu/raktsetu-api/internal/domain"
	"github.com/raktsetu/raktsetu-api/internal/domain/entity"
	"github.com/raktsetu/raktsetu-api/internal/domain/repository"
	"github.com/raktsetu/raktsetu-api/pkg/logger"
)

func f(v float64) *float64 { return &v }
func i(v int) *int         { return &v }

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeAlertRepo struct {
	alerts map[string]*entity.Alert
}

func newFakeAlertRepo(alerts ...*entity.Alert) *fakeAlertRepo {
	m := make(map[string]*entity.Alert)
	for _, a := range alerts {
		m[a.ID] = a
	}
	return &fakeAlertRepo{alerts: m}
}

func (r *fakeAlertRepo) Create(_ context.Context, a *entity.Alert) error {
	r.alerts[a.ID] = a
	return nil
}

func (r *fakeAlertRepo) GetByID(_ context.Context, id string) (*entity.Alert, error) {
	return r.alerts[id], nil
}

func (r *fakeAlertRepo) Update(_ context.Context, a *entity.Alert) error {
	if _, ok := r.alerts[a.ID]; !ok {
		return domain.ErrNotFound
	}
	r.alerts[a.ID] = a
	return nil
}

func (r *fakeAlertRepo) List(_ context.Context, fl repository.AlertFilter) ([]*entity.Alert, error) {
	var out []*entity.Alert
	for _, a := range r.alerts {
		if fl.Status != "" && a.Status != fl.Status {
			continue
		}
		if fl.Priority != "" && a.Priority != fl.Priority {
			continue
		}
		if fl.BloodType != "" && a.BloodType != fl.BloodType {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (r *fakeAlertRepo) ListActive(_ context.Context, bloodType string) ([]*entity.Alert, error) {
	return r.List(context.Background(), repository.AlertFilter{Status: entity.AlertActive, BloodType: bloodType})
}

func (r *fakeAlertRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.alerts[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.alerts, id)
	return nil
}

type fakeUserRepo struct {
	users map[string]*entity.User
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	m := make(map[string]*entity.User)
	for _, u := range users {
		m[u.ID] = u
	}
	return &fakeUserRepo{users: m}
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	return r.users[id], nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *entity.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) List(_ context.Context, role string) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.users {
		if role == "" || u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id string) error {
	delete(r.users, id)
	return nil
}

// fakeSearcher camino pushdown controlable: devuelve una lista fija o falla.
type fakeSearcher struct {
	alerts []*entity.Alert
	err    error
	calls  int
}

func (s *fakeSearcher) SearchNearby(_ context.Context, _, _, _ float64, _ string) ([]*entity.Alert, error) {
	s.calls++
	return s.alerts, s.err
}

// fakeGeocoder respuesta fija.
type fakeGeocoder struct {
	lat, lon *float64
	calls    int
}

func (g *fakeGeocoder) Geocode(_ context.Context, _, _, _, _ string) (*float64, *float64) {
	g.calls++
	return g.lat, g.lon
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "test", Level: "error"})
}

func hospitalUser(id string) *entity.User {
	return &entity.User{
		ID:   id,
		Role: entity.RoleHospital,
		Hospital: &entity.HospitalProfile{
			HospitalName: "Hospital Central",
			Address:      "Calle 1",
			City:         "Delhi",
			Latitude:     f(28.6139),
			Longitude:    f(77.2090),
		},
	}
}

func activeAlert(id string, lat, lon *float64) *entity.Alert {
	return &entity.Alert{
		ID:          id,
		CreatorID:   "hosp1",
		BloodType:   "O+",
		UnitsNeeded: 2,
		Priority:    entity.PriorityMedium,
		Status:      entity.AlertActive,
		Title:       "se necesita O+",
		Latitude:    lat,
		Longitude:   lon,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

// Sin expires_at explícito se aplica el default por prioridad.
func TestCreate_ExpiracionPorDefecto(t *testing.T) {
	hosp := hospitalUser("hosp1")
	uc := alertapp.NewUseCase(newFakeAlertRepo(), newFakeUserRepo(hosp), nil, nil, testLogger())

	before := time.Now().UTC()
	out, err := uc.Create(context.Background(), dto.Actor{ID: "hosp1", Role: entity.RoleHospital}, dto.CreateAlertRequest{
		BloodType:   "O+",
		UnitsNeeded: i(3),
		Priority:    entity.PriorityEmergency,
		Title:       "urgente",
	})
	require.NoError(t, err)
	require.NotNil(t, out.ExpiresAt)

	expiry, err := time.Parse(time.RFC3339, *out.ExpiresAt)
	require.NoError(t, err)
	// emergency → +1 día desde la creación
	assert.WithinDuration(t, before.Add(24*time.Hour), expiry, 5*time.Second)
}

// Un override parseable siempre gana al default.
func TestCreate_OverrideDeExpiracionGana(t *testing.T) {
	hosp := hospitalUser("hosp1")
	uc := alertapp.NewUseCase(newFakeAlertRepo(), newFakeUserRepo(hosp), nil, nil, testLogger())

	custom := time.Now().UTC().Add(48 * time.Hour).Truncate(time.Second)
	out, err := uc.Create(context.Background(), dto.Actor{ID: "hosp1", Role: entity.RoleHospital}, dto.CreateAlertRequest{
		BloodType:   "O+",
		UnitsNeeded: i(3),
		Title:       "urgente",
		ExpiresAt:   custom.Format(time.RFC3339),
	})
	require.NoError(t, err)
	require.NotNil(t, out.ExpiresAt)
	assert.Equal(t, custom.Format(time.RFC3339), *out.ExpiresAt)
}

// Un override no parseable es un error de validación, no se ignora.
func TestCreate_OverrideInvalido_Es400(t *testing.T) {
	hosp := hospitalUser("hosp1")
	uc := alertapp.NewUseCase(newFakeAlertRepo(), newFakeUserRepo(hosp), nil, nil, testLogger())

	_, err := uc.Create(context.Background(), dto.Actor{ID: "hosp1", Role: entity.RoleHospital}, dto.CreateAlertRequest{
		BloodType:   "O+",
		UnitsNeeded: i(3),
		Title:       "urgente",
		ExpiresAt:   "mañana",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// La ubicación ausente se completa con el perfil del hospital.
func TestCreate_UbicacionDesdeElPerfil(t *testing.T) {
	hosp := hospitalUser("hosp1")
	repo := newFakeAlertRepo()
	uc := alertapp.NewUseCase(repo, newFakeUserRepo(hosp), nil, nil, testLogger())

	out, err := uc.Create(context.Background(), dto.Actor{ID: "hosp1", Role: entity.RoleHospital}, dto.CreateAlertRequest{
		BloodType:   "A-",
		UnitsNeeded: i(1),
		Title:       "se necesita A-",
	})
	require.NoError(t, err)
	assert.Equal(t, "Hospital Central", out.HospitalName)
	require.NotNil(t, out.Latitude)
	assert.InDelta(t, 28.6139, *out.Latitude, 1e-9)
}

// Sin coordenadas en petición ni perfil se intenta geocodificar; el fallo del
// geocodificador no aborta la creación.
func TestCreate_GeocodificaYDegradaSinError(t *testing.T) {
	hosp := hospitalUser("hosp1")
	hosp.Hospital.Latitude = nil
	hosp.Hospital.Longitude = nil

	geocoder := &fakeGeocoder{lat: nil, lon: nil} // geocodificación fallida
	uc := alertapp.NewUseCase(newFakeAlertRepo(), newFakeUserRepo(hosp), geocoder, nil, testLogger())

	out, err := uc.Create(context.Background(), dto.Actor{ID: "hosp1", Role: entity.RoleHospital}, dto.CreateAlertRequest{
		BloodType:   "O+",
		UnitsNeeded: i(2),
		Title:       "urgente",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, geocoder.calls)
	assert.Nil(t, out.Latitude, "la alerta queda con ubicación desconocida")
}

func TestCreate_SoloHospital(t *testing.T) {
	uc := alertapp.NewUseCase(newFakeAlertRepo(), newFakeUserRepo(), nil, nil, testLogger())

	_, err := uc.Create(context.Background(), dto.Actor{ID: "don1", Role: entity.RoleDonor}, dto.CreateAlertRequest{
		BloodType:   "O+",
		UnitsNeeded: i(1),
		Title:       "x",
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestCreate_CamposRequeridos(t *testing.T) {
	hosp := hospitalUser("hosp1")
	uc := alertapp.NewUseCase(newFakeAlertRepo(), newFakeUserRepo(hosp), nil, nil, testLogger())
	actor := dto.Actor{ID: "hosp1", Role: entity.RoleHospital}

	_, err := uc.Create(context.Background(), actor, dto.CreateAlertRequest{UnitsNeeded: i(1), Title: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "falta blood_type")

	_, err = uc.Create(context.Background(), actor, dto.CreateAlertRequest{BloodType: "O+", Title: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "falta units_needed")

	_, err = uc.Create(context.Background(), actor, dto.CreateAlertRequest{BloodType: "O+", UnitsNeeded: i(1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "falta title")

	_, err = uc.Create(context.Background(), actor, dto.CreateAlertRequest{BloodType: "O+", UnitsNeeded: i(1), Title: "x", Priority: "urgentisimo"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "prioridad fuera de la enumeración")
}

// ──────────────────────────────────────────────────────────────────────────────
// Resolve / Manage
// ──────────────────────────────────────────────────────────────────────────────

func TestResolve_SoloCreadorOAutoridad(t *testing.T) {
	a := activeAlert("a1", f(28.62), f(77.21))
	repo := newFakeAlertRepo(a)
	uc := alertapp.NewUseCase(repo, newFakeUserRepo(), nil, nil, testLogger())

	_, err := uc.Resolve(context.Background(), dto.Actor{ID: "hosp2", Role: entity.RoleHospital}, "a1")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	out, err := uc.Resolve(context.Background(), dto.Actor{ID: "hosp1", Role: entity.RoleHospital}, "a1")
	require.NoError(t, err)
	assert.Equal(t, entity.AlertResolved, out.Status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Nearby — estrategia pushdown/scan
// ──────────────────────────────────────────────────────────────────────────────

// Camino feliz: el pushdown responde y el resultado sale ordenado con distancia.
func TestNearby_UsaPushdownYOrdena(t *testing.T) {
	cerca := activeAlert("cerca", f(28.62), f(77.21))
	lejos := activeAlert("lejos", f(28.70), f(77.30))
	searcher := &fakeSearcher{alerts: []*entity.Alert{lejos, cerca}}
	uc := alertapp.NewUseCase(newFakeAlertRepo(), newFakeUserRepo(), nil, searcher, testLogger())

	out, err := uc.Nearby(context.Background(), f(28.6139), f(77.2090), 50, "")
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, 1, searcher.calls)
	assert.Equal(t, "cerca", out[0].ID)
	require.NotNil(t, out[0].DistanceKm)
	require.NotNil(t, out[1].DistanceKm)
	assert.Less(t, *out[0].DistanceKm, *out[1].DistanceKm)
}

// Si el pushdown falla se degrada al barrido en proceso, sin error al cliente.
func TestNearby_FalloDePushdownDegradaAScan(t *testing.T) {
	cerca := activeAlert("cerca", f(28.62), f(77.21))
	searcher := &fakeSearcher{err: errors.New("sin función acos")}
	uc := alertapp.NewUseCase(newFakeAlertRepo(cerca), newFakeUserRepo(), nil, searcher, testLogger())

	out, err := uc.Nearby(context.Background(), f(28.6139), f(77.2090), 50, "")
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "cerca", out[0].ID)
}

// Ambos caminos producen la misma pertenencia: el ranking en proceso descarta
// lo que el pushdown hubiera devuelto fuera de radio.
func TestNearby_RankingFinalFiltraCandidatosDelPushdown(t *testing.T) {
	fuera := activeAlert("fuera", f(19.0760), f(72.8777)) // ~1150 km
	searcher := &fakeSearcher{alerts: []*entity.Alert{fuera}}
	uc := alertapp.NewUseCase(newFakeAlertRepo(), newFakeUserRepo(), nil, searcher, testLogger())

	out, err := uc.Nearby(context.Background(), f(28.6139), f(77.2090), 20, "")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestNearby_CoordenadasRequeridas(t *testing.T) {
	uc := alertapp.NewUseCase(newFakeAlertRepo(), newFakeUserRepo(), nil, nil, testLogger())

	_, err := uc.Nearby(context.Background(), nil, f(77.0), 20, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Nearby(context.Background(), f(28.0), nil, 20, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Radio no indicado o inválido → default de 20 km.
func TestNearby_RadioPorDefecto(t *testing.T) {
	cerca := activeAlert("cerca", f(28.62), f(77.21))   // ~1 km
	lejos := activeAlert("lejos", f(28.90), f(77.60))   // ~48 km
	uc := alertapp.NewUseCase(newFakeAlertRepo(cerca, lejos), newFakeUserRepo(), nil, nil, testLogger())

	out, err := uc.Nearby(context.Background(), f(28.6139), f(77.2090), 0, "")
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "cerca", out[0].ID)
}

// ──────────────────────────────────────────────────────────────────────────────
// List — visibilidad por rol
// ──────────────────────────────────────────────────────────────────────────────

func TestList_DonanteSoloVeActivasDeSuTipo(t *testing.T) {
	donor := &entity.User{ID: "don1", Role: entity.RoleDonor, Donor: &entity.DonorProfile{BloodType: "O+"}}
	propia := activeAlert("a1", nil, nil) // O+
	otra := activeAlert("a2", nil, nil)
	otra.BloodType = "AB-"
	resuelta := activeAlert("a3", nil, nil)
	resuelta.Status = entity.AlertResolved

	uc := alertapp.NewUseCase(newFakeAlertRepo(propia, otra, resuelta), newFakeUserRepo(donor), nil, nil, testLogger())

	out, err := uc.List(context.Background(), dto.Actor{ID: "don1", Role: entity.RoleDonor}, "", "", "")
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "a1", out[0].ID)
}

func TestList_FiltroInvalidoEs400(t *testing.T) {
	uc := alertapp.NewUseCase(newFakeAlertRepo(), newFakeUserRepo(), nil, nil, testLogger())
	actor := dto.Actor{ID: "u1", Role: entity.RoleDonor}

	_, err := uc.List(context.Background(), actor, "archivada", "", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.List(context.Background(), actor, "", "maxima", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.List(context.Background(), actor, "", "", "Z+")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
