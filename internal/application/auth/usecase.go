package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/raktsetu/raktsetu-api/internal/application/dto"
	"github.com/raktsetu/raktsetu-api/internal/domain"
	"github.com/raktsetu/raktsetu-api/internal/domain/entity"
	"github.com/raktsetu/raktsetu-api/internal/domain/repository"
	"github.com/raktsetu/raktsetu-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret           string
	AccessExpMinutes int
	RefreshExpDays   int
	Issuer           string
}

// AuthUseCase casos de uso de autenticación: registro, login, refresh y me.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// RegisterUser crea un usuario: valida rol y perfil, hashea password con
// bcrypt y persiste. Devuelve ErrEmailAlreadyExists si el email ya existe.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	if !entity.ValidRole(in.Role) {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         in.Role,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Phone:        in.Phone,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	switch in.Role {
	case entity.RoleDonor:
		p := &entity.DonorProfile{
			BloodType:  in.BloodType,
			Gender:     in.Gender,
			Address:    in.Address,
			City:       in.City,
			State:      in.State,
			Country:    in.Country,
			PostalCode: in.PostalCode,
			Latitude:   in.Latitude,
			Longitude:  in.Longitude,
		}
		if in.BloodType != "" && !entity.ValidBloodType(in.BloodType) {
			return nil, domain.ErrInvalidInput
		}
		if in.DOB != "" {
			dob, err := time.Parse("2006-01-02", in.DOB)
			if err != nil {
				return nil, domain.ErrInvalidInput
			}
			p.DOB = &dob
		}
		user.Donor = p
	case entity.RoleHospital:
		user.Hospital = &entity.HospitalProfile{
			HospitalName:       in.HospitalName,
			RegistrationNumber: in.RegistrationNumber,
			HospitalType:       in.HospitalType,
			Address:            in.Address,
			City:               in.City,
			State:              in.State,
			Country:            in.Country,
			PostalCode:         in.PostalCode,
			Latitude:           in.Latitude,
			Longitude:          in.Longitude,
		}
	case entity.RoleAuthority:
		user.Authority = &entity.AuthorityProfile{
			AuthorityName: in.AuthorityName,
			AuthorityType: in.AuthorityType,
			Jurisdiction:  in.Jurisdiction,
		}
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return dto.ToUserResponse(user), nil
}

// Login verifica email/password y emite el par access/refresh.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}

	access, err := jwt.GenerateAccess(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.AccessExpMinutes)
	if err != nil {
		return nil, err
	}
	refresh, err := jwt.GenerateRefresh(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.RefreshExpDays)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         *dto.ToUserResponse(user),
	}, nil
}

// Refresh valida un token de refresh y emite un nuevo token de acceso.
// Un token de acceso presentado aquí se rechaza.
func (uc *AuthUseCase) Refresh(ctx context.Context, refreshToken string) (*dto.RefreshResponse, error) {
	userID, _, tokenType, err := jwt.Parse(uc.jwtCfg.Secret, refreshToken)
	if err != nil || tokenType != jwt.TypeRefresh {
		return nil, domain.ErrUnauthorized
	}
	// El usuario debe seguir existiendo; el rol se relee por si cambió.
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	access, err := jwt.GenerateAccess(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.AccessExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.RefreshResponse{AccessToken: access}, nil
}

// Me devuelve el usuario autenticado.
func (uc *AuthUseCase) Me(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return dto.ToUserResponse(user), nil
}
