package dto

import (
	"time"

	"github.com/raktsetu/raktsetu-api/internal/domain/entity"
)

// UserResponse representación pública de un usuario: campos base más los del
// perfil activo según el rol. El password_hash nunca se serializa.
type UserResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Phone     string `json:"phone,omitempty"`
	CreatedAt string `json:"created_at"`

	// Donor
	BloodType  string `json:"blood_type,omitempty"`
	DOB        string `json:"dob,omitempty"`
	Gender     string `json:"gender,omitempty"`

	// Donor / Hospital
	Address    string   `json:"address,omitempty"`
	City       string   `json:"city,omitempty"`
	State      string   `json:"state,omitempty"`
	Country    string   `json:"country,omitempty"`
	PostalCode string   `json:"postal_code,omitempty"`
	Latitude   *float64 `json:"latitude,omitempty"`
	Longitude  *float64 `json:"longitude,omitempty"`

	// Hospital
	HospitalName       string `json:"hospital_name,omitempty"`
	RegistrationNumber string `json:"hospital_registration_number,omitempty"`
	HospitalType       string `json:"hospital_type,omitempty"`

	// Authority
	AuthorityName string `json:"authority_name,omitempty"`
	AuthorityType string `json:"authority_type,omitempty"`
	Jurisdiction  string `json:"jurisdiction,omitempty"`
}

// ToUserResponse proyecta la entidad a su representación pública. Solo se
// copian los campos del perfil correspondiente al rol activo.
func ToUserResponse(u *entity.User) *UserResponse {
	if u == nil {
		return nil
	}
	out := &UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Role:      u.Role,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Phone:     u.Phone,
		CreatedAt: u.CreatedAt.UTC().Format(time.RFC3339),
	}
	switch u.Role {
	case entity.RoleDonor:
		if p := u.Donor; p != nil {
			out.BloodType = p.BloodType
			if p.DOB != nil {
				out.DOB = p.DOB.UTC().Format("2006-01-02")
			}
			out.Gender = p.Gender
			out.Address = p.Address
			out.City = p.City
			out.State = p.State
			out.Country = p.Country
			out.PostalCode = p.PostalCode
			out.Latitude = p.Latitude
			out.Longitude = p.Longitude
		}
	case entity.RoleHospital:
		if p := u.Hospital; p != nil {
			out.HospitalName = p.HospitalName
			out.RegistrationNumber = p.RegistrationNumber
			out.HospitalType = p.HospitalType
			out.Address = p.Address
			out.City = p.City
			out.State = p.State
			out.Country = p.Country
			out.PostalCode = p.PostalCode
			out.Latitude = p.Latitude
			out.Longitude = p.Longitude
		}
	case entity.RoleAuthority:
		if p := u.Authority; p != nil {
			out.AuthorityName = p.AuthorityName
			out.AuthorityType = p.AuthorityType
			out.Jurisdiction = p.Jurisdiction
		}
	}
	return out
}

// UpdateUserRequest campos actualizables de un usuario. Punteros nil = sin cambio.
type UpdateUserRequest struct {
	Email     *string `json:"email"`
	Password  *string `json:"password"`
	Role      *string `json:"role"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Phone     *string `json:"phone"`

	BloodType  *string  `json:"blood_type"`
	DOB        *string  `json:"dob"`
	Gender     *string  `json:"gender"`
	Address    *string  `json:"address"`
	City       *string  `json:"city"`
	State      *string  `json:"state"`
	Country    *string  `json:"country"`
	PostalCode *string  `json:"postal_code"`
	Latitude   *float64 `json:"latitude"`
	Longitude  *float64 `json:"longitude"`

	HospitalName       *string `json:"hospital_name"`
	RegistrationNumber *string `json:"hospital_registration_number"`
	HospitalType       *string `json:"hospital_type"`

	AuthorityName *string `json:"authority_name"`
	AuthorityType *string `json:"authority_type"`
	Jurisdiction  *string `json:"jurisdiction"`
}
