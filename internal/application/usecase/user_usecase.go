package usecase

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/raktsetu/raktsetu-api/internal/application/dto"
	"github.com/raktsetu/raktsetu-api/internal/domain"
	"github.com/raktsetu/raktsetu-api/internal/domain/entity"
	"github.com/raktsetu/raktsetu-api/internal/domain/policy"
	"github.com/raktsetu/raktsetu-api/internal/domain/repository"
)

// UserUseCase gestión de usuarios: listados, perfil, actualización y borrado.
type UserUseCase struct {
	userRepo repository.UserRepository
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(userRepo repository.UserRepository) *UserUseCase {
	return &UserUseCase{userRepo: userRepo}
}

// List devuelve todos los usuarios (solo autoridad), con filtro opcional por rol.
func (uc *UserUseCase) List(ctx context.Context, actor dto.Actor, role string) ([]*dto.UserResponse, error) {
	if !policy.CanListUsers(actor.Role) {
		return nil, domain.ErrForbidden
	}
	if role != "" && !entity.ValidRole(role) {
		return nil, domain.ErrInvalidInput
	}
	users, err := uc.userRepo.List(ctx, role)
	if err != nil {
		return nil, err
	}
	return toUserResponses(users), nil
}

// ListByRole listados públicos por rol: donantes (hospital/autoridad),
// hospitales y autoridades (cualquier usuario autenticado).
func (uc *UserUseCase) ListByRole(ctx context.Context, actor dto.Actor, role string) ([]*dto.UserResponse, error) {
	if role == entity.RoleDonor && !policy.CanListDonors(actor.Role) {
		return nil, domain.ErrForbidden
	}
	users, err := uc.userRepo.List(ctx, role)
	if err != nil {
		return nil, err
	}
	return toUserResponses(users), nil
}

// Get devuelve un usuario por id (el propio o cualquiera para la autoridad).
func (uc *UserUseCase) Get(ctx context.Context, actor dto.Actor, id string) (*dto.UserResponse, error) {
	if !policy.CanReadUser(actor.ID, actor.Role, id) {
		return nil, domain.ErrForbidden
	}
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return dto.ToUserResponse(user), nil
}

// Update actualiza un usuario. El propio usuario puede editar su perfil; el
// campo role solo lo cambia la autoridad. Un cambio de email verifica unicidad.
func (uc *UserUseCase) Update(ctx context.Context, actor dto.Actor, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if !policy.CanUpdateUser(actor.ID, actor.Role, id) {
		return nil, domain.ErrForbidden
	}
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	if in.Email != nil && *in.Email != user.Email {
		other, err := uc.userRepo.GetByEmail(ctx, *in.Email)
		if err != nil {
			return nil, err
		}
		if other != nil {
			return nil, domain.ErrEmailAlreadyExists
		}
		user.Email = *in.Email
	}

	if in.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}

	if in.Role != nil && *in.Role != user.Role {
		if !policy.CanChangeRole(actor.Role) {
			return nil, domain.ErrForbidden
		}
		if !entity.ValidRole(*in.Role) {
			return nil, domain.ErrInvalidInput
		}
		// El cambio de rol reinicia el perfil: el variante etiquetado no
		// arrastra campos de un rol anterior.
		user.Role = *in.Role
		user.Donor, user.Hospital, user.Authority = nil, nil, nil
		switch user.Role {
		case entity.RoleDonor:
			user.Donor = &entity.DonorProfile{}
		case entity.RoleHospital:
			user.Hospital = &entity.HospitalProfile{}
		case entity.RoleAuthority:
			user.Authority = &entity.AuthorityProfile{}
		}
	}

	if in.FirstName != nil {
		user.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		user.LastName = *in.LastName
	}
	if in.Phone != nil {
		user.Phone = *in.Phone
	}

	if err := applyProfileUpdate(user, in); err != nil {
		return nil, err
	}

	user.UpdatedAt = time.Now().UTC()
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return dto.ToUserResponse(user), nil
}

// Delete elimina un usuario (solo autoridad).
func (uc *UserUseCase) Delete(ctx context.Context, actor dto.Actor, id string) error {
	if !policy.CanDeleteUser(actor.Role) {
		return domain.ErrForbidden
	}
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	return uc.userRepo.Delete(ctx, id)
}

// applyProfileUpdate aplica los campos del perfil activo; los campos de otros
// roles se ignoran en silencio, igual que al registrar.
func applyProfileUpdate(user *entity.User, in dto.UpdateUserRequest) error {
	switch user.Role {
	case entity.RoleDonor:
		p := user.Donor
		if p == nil {
			p = &entity.DonorProfile{}
			user.Donor = p
		}
		if in.BloodType != nil {
			if *in.BloodType != "" && !entity.ValidBloodType(*in.BloodType) {
				return domain.ErrInvalidInput
			}
			p.BloodType = *in.BloodType
		}
		if in.DOB != nil {
			dob, err := time.Parse("2006-01-02", *in.DOB)
			if err != nil {
				return domain.ErrInvalidInput
			}
			p.DOB = &dob
		}
		if in.Gender != nil {
			p.Gender = *in.Gender
		}
		if in.Address != nil {
			p.Address = *in.Address
		}
		if in.City != nil {
			p.City = *in.City
		}
		if in.State != nil {
			p.State = *in.State
		}
		if in.Country != nil {
			p.Country = *in.Country
		}
		if in.PostalCode != nil {
			p.PostalCode = *in.PostalCode
		}
		if in.Latitude != nil {
			p.Latitude = in.Latitude
		}
		if in.Longitude != nil {
			p.Longitude = in.Longitude
		}
	case entity.RoleHospital:
		p := user.Hospital
		if p == nil {
			p = &entity.HospitalProfile{}
			user.Hospital = p
		}
		if in.HospitalName != nil {
			p.HospitalName = *in.HospitalName
		}
		if in.RegistrationNumber != nil {
			p.RegistrationNumber = *in.RegistrationNumber
		}
		if in.HospitalType != nil {
			p.HospitalType = *in.HospitalType
		}
		if in.Address != nil {
			p.Address = *in.Address
		}
		if in.City != nil {
			p.City = *in.City
		}
		if in.State != nil {
			p.State = *in.State
		}
		if in.Country != nil {
			p.Country = *in.Country
		}
		if in.PostalCode != nil {
			p.PostalCode = *in.PostalCode
		}
		if in.Latitude != nil {
			p.Latitude = in.Latitude
		}
		if in.Longitude != nil {
			p.Longitude = in.Longitude
		}
	case entity.RoleAuthority:
		p := user.Authority
		if p == nil {
			p = &entity.AuthorityProfile{}
			user.Authority = p
		}
		if in.AuthorityName != nil {
			p.AuthorityName = *in.AuthorityName
		}
		if in.AuthorityType != nil {
			p.AuthorityType = *in.AuthorityType
		}
		if in.Jurisdiction != nil {
			p.Jurisdiction = *in.Jurisdiction
		}
	}
	return nil
}

func toUserResponses(users []*entity.User) []*dto.UserResponse {
	out := make([]*dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, dto.ToUserResponse(u))
	}
	return out
}
