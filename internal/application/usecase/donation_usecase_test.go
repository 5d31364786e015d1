package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raktsetu/raktsetu-api/internal/application/dto"
	"github.com/raktsetu/raktsetu-api/internal/application/usecase"
	"github.com/raktsetu/raktsetu-api/internal/domain"
	"github.com/raktsetu/raktsetu-api/internal/domain/entity"
)

func s(v string) *string { return &v }

func scheduledDonation(id, donorID, hospitalID string) *entity.Donation {
	now := time.Now().UTC()
	return &entity.Donation{
		ID:              id,
		DonorID:         donorID,
		HospitalID:      hospitalID,
		AppointmentDate: now.Add(48 * time.Hour),
		BloodType:       "O+",
		Status:          entity.DonationScheduled,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func newDonationUC(donations *fakeDonationRepo, users *fakeUserRepo, pol usecase.DonationPolicy) (*usecase.DonationUseCase, *fakeCertificates) {
	certs := &fakeCertificates{}
	return usecase.NewDonationUseCase(donations, users, certs, pol), certs
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestDonationCreate_DonorAgendaConHospital(t *testing.T) {
	users := newFakeUserRepo(donorUser("don-1"), hospitalUser("hosp-1"))
	uc, _ := newDonationUC(newFakeDonationRepo(), users, usecase.DonationPolicy{AllowReopen: true})

	resp, err := uc.Create(context.Background(), dto.Actor{ID: "don-1", Role: entity.RoleDonor}, dto.CreateDonationRequest{
		HospitalID:      "hosp-1",
		AppointmentDate: time.Now().Add(24 * time.Hour).UTC().Format(time.RFC3339),
		BloodType:       "O+",
	})
	require.NoError(t, err)
	// El donante es siempre él mismo, aunque no envíe donor_id.
	assert.Equal(t, "don-1", resp.DonorID)
	assert.Equal(t, "hosp-1", resp.HospitalID)
	assert.Equal(t, entity.DonationScheduled, resp.Status)
}

func TestDonationCreate_DonorSinHospitalEsInvalido(t *testing.T) {
	users := newFakeUserRepo(donorUser("don-1"))
	uc, _ := newDonationUC(newFakeDonationRepo(), users, usecase.DonationPolicy{AllowReopen: true})

	_, err := uc.Create(context.Background(), dto.Actor{ID: "don-1", Role: entity.RoleDonor}, dto.CreateDonationRequest{
		AppointmentDate: time.Now().Add(24 * time.Hour).UTC().Format(time.RFC3339),
		BloodType:       "O+",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDonationCreate_HospitalAgendaParaDonante(t *testing.T) {
	users := newFakeUserRepo(donorUser("don-1"), hospitalUser("hosp-1"))
	uc, _ := newDonationUC(newFakeDonationRepo(), users, usecase.DonationPolicy{AllowReopen: true})

	resp, err := uc.Create(context.Background(), dto.Actor{ID: "hosp-1", Role: entity.RoleHospital}, dto.CreateDonationRequest{
		DonorID:         "don-1",
		AppointmentDate: time.Now().Add(24 * time.Hour).UTC().Format(time.RFC3339),
		BloodType:       "A-",
	})
	require.NoError(t, err)
	assert.Equal(t, "hosp-1", resp.HospitalID)
	assert.Equal(t, "don-1", resp.DonorID)
}

func TestDonationCreate_ContraparteConRolIncorrecto(t *testing.T) {
	// "hosp-1" existe pero es donante: no sirve como hospital de la cita.
	users := newFakeUserRepo(donorUser("don-1"), donorUser("hosp-1"))
	uc, _ := newDonationUC(newFakeDonationRepo(), users, usecase.DonationPolicy{AllowReopen: true})

	_, err := uc.Create(context.Background(), dto.Actor{ID: "don-1", Role: entity.RoleDonor}, dto.CreateDonationRequest{
		HospitalID:      "hosp-1",
		AppointmentDate: time.Now().Add(24 * time.Hour).UTC().Format(time.RFC3339),
		BloodType:       "O+",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDonationCreate_TipoDeSangreInvalido(t *testing.T) {
	users := newFakeUserRepo(donorUser("don-1"), hospitalUser("hosp-1"))
	uc, _ := newDonationUC(newFakeDonationRepo(), users, usecase.DonationPolicy{AllowReopen: true})

	_, err := uc.Create(context.Background(), dto.Actor{ID: "don-1", Role: entity.RoleDonor}, dto.CreateDonationRequest{
		HospitalID:      "hosp-1",
		AppointmentDate: time.Now().Add(24 * time.Hour).UTC().Format(time.RFC3339),
		BloodType:       "o+",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Update: el donante solo cancela
// ──────────────────────────────────────────────────────────────────────────────

func TestDonationUpdate_DonanteCancelaLaSuya(t *testing.T) {
	d := scheduledDonation("dn-1", "don-1", "hosp-1")
	uc, _ := newDonationUC(newFakeDonationRepo(d), newFakeUserRepo(), usecase.DonationPolicy{AllowReopen: true})

	resp, err := uc.Update(context.Background(), dto.Actor{ID: "don-1", Role: entity.RoleDonor}, "dn-1", dto.UpdateDonationRequest{
		Status: s(entity.DonationCancelled),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.DonationCancelled, resp.Status)
}

func TestDonationUpdate_DonanteNoPuedeCompletar(t *testing.T) {
	d := scheduledDonation("dn-1", "don-1", "hosp-1")
	uc, _ := newDonationUC(newFakeDonationRepo(d), newFakeUserRepo(), usecase.DonationPolicy{AllowReopen: true})

	_, err := uc.Update(context.Background(), dto.Actor{ID: "don-1", Role: entity.RoleDonor}, "dn-1", dto.UpdateDonationRequest{
		Status: s(entity.DonationCompleted),
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestDonationUpdate_DonanteNoPuedeTocarObservaciones(t *testing.T) {
	// Aunque envíe también la cancelación, cualquier campo médico lo descalifica.
	d := scheduledDonation("dn-1", "don-1", "hosp-1")
	uc, _ := newDonationUC(newFakeDonationRepo(d), newFakeUserRepo(), usecase.DonationPolicy{AllowReopen: true})

	_, err := uc.Update(context.Background(), dto.Actor{ID: "don-1", Role: entity.RoleDonor}, "dn-1", dto.UpdateDonationRequest{
		Status:   s(entity.DonationCancelled),
		AmountML: i(450),
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestDonationUpdate_DonanteAjenoNoVeLaDonacion(t *testing.T) {
	d := scheduledDonation("dn-1", "don-1", "hosp-1")
	uc, _ := newDonationUC(newFakeDonationRepo(d), newFakeUserRepo(), usecase.DonationPolicy{AllowReopen: true})

	_, err := uc.Update(context.Background(), dto.Actor{ID: "don-2", Role: entity.RoleDonor}, "dn-1", dto.UpdateDonationRequest{
		Status: s(entity.DonationCancelled),
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ──────────────────────────────────────────────────────────────────────────────
// Update: hospital y estados terminales
// ──────────────────────────────────────────────────────────────────────────────

func TestDonationUpdate_CompletedEstampaCompletedAt(t *testing.T) {
	d := scheduledDonation("dn-1", "don-1", "hosp-1")
	repo := newFakeDonationRepo(d)
	uc, _ := newDonationUC(repo, newFakeUserRepo(), usecase.DonationPolicy{AllowReopen: true})

	resp, err := uc.Update(context.Background(), dto.Actor{ID: "hosp-1", Role: entity.RoleHospital}, "dn-1", dto.UpdateDonationRequest{
		Status:     s(entity.DonationCompleted),
		AmountML:   i(450),
		Hemoglobin: f64(13.5),
	})
	require.NoError(t, err)
	require.NotNil(t, resp.CompletedAt)
	assert.Equal(t, 450, *resp.AmountML)

	first := *repo.donations["dn-1"].CompletedAt

	// Repetir la transición sobrescribe la estampa.
	time.Sleep(10 * time.Millisecond)
	_, err = uc.Update(context.Background(), dto.Actor{ID: "hosp-1", Role: entity.RoleHospital}, "dn-1", dto.UpdateDonationRequest{
		Status: s(entity.DonationCompleted),
	})
	require.NoError(t, err)
	assert.True(t, repo.donations["dn-1"].CompletedAt.After(first))
}

func TestDonationUpdate_ReabrirTerminalDependeDePolitica(t *testing.T) {
	build := func() *fakeDonationRepo {
		d := scheduledDonation("dn-1", "don-1", "hosp-1")
		d.Status = entity.DonationCancelled
		return newFakeDonationRepo(d)
	}

	// Con la política cerrada, sacar de un terminal es conflicto.
	uc, _ := newDonationUC(build(), newFakeUserRepo(), usecase.DonationPolicy{AllowReopen: false})
	_, err := uc.Update(context.Background(), dto.Actor{ID: "hosp-1", Role: entity.RoleHospital}, "dn-1", dto.UpdateDonationRequest{
		Status: s(entity.DonationScheduled),
	})
	assert.ErrorIs(t, err, domain.ErrConflict)

	// Con la política abierta (comportamiento histórico) se permite.
	uc, _ = newDonationUC(build(), newFakeUserRepo(), usecase.DonationPolicy{AllowReopen: true})
	resp, err := uc.Update(context.Background(), dto.Actor{ID: "hosp-1", Role: entity.RoleHospital}, "dn-1", dto.UpdateDonationRequest{
		Status: s(entity.DonationScheduled),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.DonationScheduled, resp.Status)
}

func TestDonationUpdate_MismoEstadoTerminalNoEsConflicto(t *testing.T) {
	// Reenviar el mismo estado terminal no es una reapertura.
	d := scheduledDonation("dn-1", "don-1", "hosp-1")
	d.Status = entity.DonationCompleted
	uc, _ := newDonationUC(newFakeDonationRepo(d), newFakeUserRepo(), usecase.DonationPolicy{AllowReopen: false})

	_, err := uc.Update(context.Background(), dto.Actor{ID: "hosp-1", Role: entity.RoleHospital}, "dn-1", dto.UpdateDonationRequest{
		Status: s(entity.DonationCompleted),
	})
	assert.NoError(t, err)
}

func TestDonationUpdate_EstadoInvalido(t *testing.T) {
	d := scheduledDonation("dn-1", "don-1", "hosp-1")
	uc, _ := newDonationUC(newFakeDonationRepo(d), newFakeUserRepo(), usecase.DonationPolicy{AllowReopen: true})

	_, err := uc.Update(context.Background(), dto.Actor{ID: "hosp-1", Role: entity.RoleHospital}, "dn-1", dto.UpdateDonationRequest{
		Status: s("finished"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// List / Get / Delete
// ──────────────────────────────────────────────────────────────────────────────

func TestDonationList_DonanteSoloVeLasSuyas(t *testing.T) {
	repo := newFakeDonationRepo(
		scheduledDonation("dn-1", "don-1", "hosp-1"),
		scheduledDonation("dn-2", "don-2", "hosp-1"),
	)
	uc, _ := newDonationUC(repo, newFakeUserRepo(), usecase.DonationPolicy{AllowReopen: true})

	list, err := uc.List(context.Background(), dto.Actor{ID: "don-1", Role: entity.RoleDonor}, "", "", "")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "dn-1", list[0].ID)
}

func TestDonationList_FiltroDeFechaInvalido(t *testing.T) {
	uc, _ := newDonationUC(newFakeDonationRepo(), newFakeUserRepo(), usecase.DonationPolicy{AllowReopen: true})

	_, err := uc.List(context.Background(), dto.Actor{ID: "aut-1", Role: entity.RoleAuthority}, "", "ayer", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDonationDelete_SoloAutoridad(t *testing.T) {
	repo := newFakeDonationRepo(scheduledDonation("dn-1", "don-1", "hosp-1"))
	uc, _ := newDonationUC(repo, newFakeUserRepo(), usecase.DonationPolicy{AllowReopen: true})

	err := uc.Delete(context.Background(), dto.Actor{ID: "hosp-1", Role: entity.RoleHospital}, "dn-1")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	err = uc.Delete(context.Background(), dto.Actor{ID: "aut-1", Role: entity.RoleAuthority}, "dn-1")
	require.NoError(t, err)
	assert.Empty(t, repo.donations)
}

// ──────────────────────────────────────────────────────────────────────────────
// Certificate
// ──────────────────────────────────────────────────────────────────────────────

func TestDonationCertificate_SoloCompletadas(t *testing.T) {
	d := scheduledDonation("dn-1", "don-1", "hosp-1")
	users := newFakeUserRepo(donorUser("don-1"), hospitalUser("hosp-1"))
	uc, certs := newDonationUC(newFakeDonationRepo(d), users, usecase.DonationPolicy{AllowReopen: true})

	_, err := uc.Certificate(context.Background(), dto.Actor{ID: "don-1", Role: entity.RoleDonor}, "dn-1")
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Zero(t, certs.calls)
}

func TestDonationCertificate_DonanteAjenoProhibido(t *testing.T) {
	d := scheduledDonation("dn-1", "don-1", "hosp-1")
	d.Status = entity.DonationCompleted
	users := newFakeUserRepo(donorUser("don-1"), hospitalUser("hosp-1"))
	uc, _ := newDonationUC(newFakeDonationRepo(d), users, usecase.DonationPolicy{AllowReopen: true})

	_, err := uc.Certificate(context.Background(), dto.Actor{ID: "don-2", Role: entity.RoleDonor}, "dn-1")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestDonationCertificate_DevuelvePDF(t *testing.T) {
	d := scheduledDonation("dn-1", "don-1", "hosp-1")
	d.Status = entity.DonationCompleted
	now := time.Now().UTC()
	d.CompletedAt = &now
	users := newFakeUserRepo(donorUser("don-1"), hospitalUser("hosp-1"))
	uc, certs := newDonationUC(newFakeDonationRepo(d), users, usecase.DonationPolicy{AllowReopen: true})

	pdf, err := uc.Certificate(context.Background(), dto.Actor{ID: "don-1", Role: entity.RoleDonor}, "dn-1")
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)
	assert.Equal(t, 1, certs.calls)
}
