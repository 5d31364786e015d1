package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/raktsetu/raktsetu-api/internal/domain"
	"github.com/raktsetu/raktsetu-api/internal/domain/entity"
	"github.com/raktsetu/raktsetu-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
// La tabla users guarda la parte común más las columnas de los tres perfiles;
// al leer se materializa solo el perfil del rol activo.
type UserRepo struct {
	pool *pgxpool.Pool
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

const userColumns = `
	id, email, password_hash, role, first_name, last_name, phone,
	blood_type, date_of_birth, gender,
	hospital_name, registration_number, hospital_type,
	authority_name, authority_type, jurisdiction,
	address, city, state, country, postal_code, latitude, longitude,
	created_at, updated_at`

// userRow columnas planas de la tabla; los campos de perfil son punteros
// porque solo los del rol activo están poblados.
type userRow struct {
	user entity.User

	bloodType *string
	dob       *time.Time
	gender    *string

	hospitalName       *string
	registrationNumber *string
	hospitalType       *string

	authorityName *string
	authorityType *string
	jurisdiction  *string

	address    *string
	city       *string
	state      *string
	country    *string
	postalCode *string
	lat        *float64
	lon        *float64
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var ur userRow
	u := &ur.user
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.FirstName, &u.LastName, &u.Phone,
		&ur.bloodType, &ur.dob, &ur.gender,
		&ur.hospitalName, &ur.registrationNumber, &ur.hospitalType,
		&ur.authorityName, &ur.authorityType, &ur.jurisdiction,
		&ur.address, &ur.city, &ur.state, &ur.country, &ur.postalCode,
		&ur.lat, &ur.lon,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	ur.buildProfile()
	return u, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// buildProfile materializa el perfil del rol activo a partir de las columnas planas.
func (ur *userRow) buildProfile() {
	switch ur.user.Role {
	case entity.RoleDonor:
		ur.user.Donor = &entity.DonorProfile{
			BloodType:  deref(ur.bloodType),
			DOB:        ur.dob,
			Gender:     deref(ur.gender),
			Address:    deref(ur.address),
			City:       deref(ur.city),
			State:      deref(ur.state),
			Country:    deref(ur.country),
			PostalCode: deref(ur.postalCode),
			Latitude:   ur.lat,
			Longitude:  ur.lon,
		}
	case entity.RoleHospital:
		ur.user.Hospital = &entity.HospitalProfile{
			HospitalName:       deref(ur.hospitalName),
			RegistrationNumber: deref(ur.registrationNumber),
			HospitalType:       deref(ur.hospitalType),
			Address:            deref(ur.address),
			City:               deref(ur.city),
			State:              deref(ur.state),
			Country:            deref(ur.country),
			PostalCode:         deref(ur.postalCode),
			Latitude:           ur.lat,
			Longitude:          ur.lon,
		}
	case entity.RoleAuthority:
		ur.user.Authority = &entity.AuthorityProfile{
			AuthorityName: deref(ur.authorityName),
			AuthorityType: deref(ur.authorityType),
			Jurisdiction:  deref(ur.jurisdiction),
		}
	}
}

// userArgs aplana la entidad a los argumentos de INSERT/UPDATE, proyectando
// solo el perfil del rol activo (el resto queda NULL).
func userArgs(u *entity.User) []any {
	var (
		bloodType, gender                              *string
		dob                                            *time.Time
		hospitalName, registrationNumber, hospitalType *string
		authorityName, authorityType, jurisdiction     *string
		address, city, state, country, postalCode      *string
		lat, lon                                       *float64
	)

	strPtr := func(s string) *string {
		if s == "" {
			return nil
		}
		return &s
	}

	switch u.Role {
	case entity.RoleDonor:
		if p := u.Donor; p != nil {
			bloodType = strPtr(p.BloodType)
			dob = p.DOB
			gender = strPtr(p.Gender)
			address = strPtr(p.Address)
			city = strPtr(p.City)
			state = strPtr(p.State)
			country = strPtr(p.Country)
			postalCode = strPtr(p.PostalCode)
			lat, lon = p.Latitude, p.Longitude
		}
	case entity.RoleHospital:
		if p := u.Hospital; p != nil {
			hospitalName = strPtr(p.HospitalName)
			registrationNumber = strPtr(p.RegistrationNumber)
			hospitalType = strPtr(p.HospitalType)
			address = strPtr(p.Address)
			city = strPtr(p.City)
			state = strPtr(p.State)
			country = strPtr(p.Country)
			postalCode = strPtr(p.PostalCode)
			lat, lon = p.Latitude, p.Longitude
		}
	case entity.RoleAuthority:
		if p := u.Authority; p != nil {
			authorityName = strPtr(p.AuthorityName)
			authorityType = strPtr(p.AuthorityType)
			jurisdiction = strPtr(p.Jurisdiction)
		}
	}

	return []any{
		u.ID, u.Email, u.PasswordHash, u.Role, u.FirstName, u.LastName, u.Phone,
		bloodType, dob, gender,
		hospitalName, registrationNumber, hospitalType,
		authorityName, authorityType, jurisdiction,
		address, city, state, country, postalCode, lat, lon,
		u.CreatedAt, u.UpdatedAt,
	}
}

// Create persiste un nuevo usuario con su perfil.
func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
		        $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25)`
	_, err := r.pool.Exec(ctx, query, userArgs(u)...)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID. Devuelve nil si no existe.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	u, err := scanUser(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return u, nil
}

// GetByEmail obtiene un usuario por email. Devuelve nil si no existe.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	u, err := scanUser(r.pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return u, nil
}

// Update reescribe la fila completa del usuario, incluido el perfil.
func (r *UserRepo) Update(ctx context.Context, u *entity.User) error {
	query := `
		UPDATE users SET
			email = $2, password_hash = $3, role = $4,
			first_name = $5, last_name = $6, phone = $7,
			blood_type = $8, date_of_birth = $9, gender = $10,
			hospital_name = $11, registration_number = $12, hospital_type = $13,
			authority_name = $14, authority_type = $15, jurisdiction = $16,
			address = $17, city = $18, state = $19, country = $20, postal_code = $21,
			latitude = $22, longitude = $23,
			created_at = $24, updated_at = $25
		WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, userArgs(u)...)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// List devuelve usuarios, opcionalmente filtrados por rol ("" = todos).
func (r *UserRepo) List(ctx context.Context, role string) ([]*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users`
	args := []any{}
	if role != "" {
		query += ` WHERE role = $1`
		args = append(args, role)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// Delete elimina un usuario por ID.
func (r *UserRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
