package usecase_test

import (
	"context"

	"github.com/raktsetu/raktsetu-api/internal/domain"
	"github.com/raktsetu/raktsetu-api/internal/domain/entity"
	"github.com/raktsetu/raktsetu-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria compartidos por los tests del paquete
// ──────────────────────────────────────────────────────────────────────────────

func i(v int) *int { return &v }

func f64(v float64) *float64 { return &v }

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
	if _, ok := r.users[u.ID]; !ok {
		return domain.ErrUserNotFound
	}
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
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

type fakeDonationRepo struct {
	donations map[string]*entity.Donation
}

func newFakeDonationRepo(donations ...*entity.Donation) *fakeDonationRepo {
	m := make(map[string]*entity.Donation)
	for _, d := range donations {
		m[d.ID] = d
	}
	return &fakeDonationRepo{donations: m}
}

func (r *fakeDonationRepo) Create(_ context.Context, d *entity.Donation) error {
	r.donations[d.ID] = d
	return nil
}

func (r *fakeDonationRepo) GetByID(_ context.Context, id string) (*entity.Donation, error) {
	return r.donations[id], nil
}

func (r *fakeDonationRepo) Update(_ context.Context, d *entity.Donation) error {
	if _, ok := r.donations[d.ID]; !ok {
		return domain.ErrNotFound
	}
	r.donations[d.ID] = d
	return nil
}

func (r *fakeDonationRepo) List(_ context.Context, f repository.DonationFilter) ([]*entity.Donation, error) {
	var out []*entity.Donation
	for _, d := range r.donations {
		if f.DonorID != "" && d.DonorID != f.DonorID {
			continue
		}
		if f.HospitalID != "" && d.HospitalID != f.HospitalID {
			continue
		}
		if f.Status != "" && d.Status != f.Status {
			continue
		}
		if f.StartDate != nil && d.AppointmentDate.Before(*f.StartDate) {
			continue
		}
		if f.EndDate != nil && d.AppointmentDate.After(*f.EndDate) {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

func (r *fakeDonationRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.donations[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.donations, id)
	return nil
}

type fakeInventoryRepo struct {
	rows map[string]*entity.BloodInventory
}

func newFakeInventoryRepo(rows ...*entity.BloodInventory) *fakeInventoryRepo {
	m := make(map[string]*entity.BloodInventory)
	for _, inv := range rows {
		m[inv.ID] = inv
	}
	return &fakeInventoryRepo{rows: m}
}

func (r *fakeInventoryRepo) Create(_ context.Context, inv *entity.BloodInventory) error {
	for _, existing := range r.rows {
		if existing.HospitalID == inv.HospitalID && existing.BloodType == inv.BloodType {
			return domain.ErrDuplicateInventory
		}
	}
	r.rows[inv.ID] = inv
	return nil
}

func (r *fakeInventoryRepo) GetByID(_ context.Context, id string) (*entity.BloodInventory, error) {
	return r.rows[id], nil
}

func (r *fakeInventoryRepo) GetByHospitalAndType(_ context.Context, hospitalID, bloodType string) (*entity.BloodInventory, error) {
	for _, inv := range r.rows {
		if inv.HospitalID == hospitalID && inv.BloodType == bloodType {
			return inv, nil
		}
	}
	return nil, nil
}

func (r *fakeInventoryRepo) Update(_ context.Context, inv *entity.BloodInventory) error {
	if _, ok := r.rows[inv.ID]; !ok {
		return domain.ErrNotFound
	}
	r.rows[inv.ID] = inv
	return nil
}

func (r *fakeInventoryRepo) List(_ context.Context, f repository.InventoryFilter) ([]*entity.BloodInventory, error) {
	var out []*entity.BloodInventory
	for _, inv := range r.rows {
		if f.HospitalID != "" && inv.HospitalID != f.HospitalID {
			continue
		}
		if f.BloodType != "" && inv.BloodType != f.BloodType {
			continue
		}
		out = append(out, inv)
	}
	return out, nil
}

func (r *fakeInventoryRepo) SummaryByBloodType(_ context.Context, hospitalID string) (map[string]int, error) {
	sums := make(map[string]int)
	for _, inv := range r.rows {
		if hospitalID != "" && inv.HospitalID != hospitalID {
			continue
		}
		sums[inv.BloodType] += inv.UnitsAvailable
	}
	return sums, nil
}

func (r *fakeInventoryRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.rows[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.rows, id)
	return nil
}

// fakeCertificates registra las invocaciones y devuelve bytes fijos.
type fakeCertificates struct {
	calls int
}

func (g *fakeCertificates) GenerateDonationCertificate(_ context.Context, _ *entity.Donation, _, _ *entity.User) ([]byte, error) {
	g.calls++
	return []byte("%PDF-1.7 certificado"), nil
}

func donorUser(id string) *entity.User {
	return &entity.User{ID: id, Role: entity.RoleDonor, Donor: &entity.DonorProfile{BloodType: "O+"}}
}

func hospitalUser(id string) *entity.User {
	return &entity.User{ID: id, Role: entity.RoleHospital, Hospital: &entity.HospitalProfile{HospitalName: "Hospital Central"}}
}

func authorityUser(id string) *entity.User {
	return &entity.User{ID: id, Role: entity.RoleAuthority, Authority: &entity.AuthorityProfile{AuthorityName: "Autoridad de Sangre"}}
}
