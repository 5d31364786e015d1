package entity

import "time"

// Roles válidos para User.
const (
	RoleDonor     = "donor"
	RoleHospital  = "hospital"
	RoleAuthority = "authority"
)

// ValidRole indica si el rol pertenece a la enumeración cerrada.
func ValidRole(role string) bool {
	switch role {
	case RoleDonor, RoleHospital, RoleAuthority:
		return true
	}
	return false
}

// Tipos de sangre aceptados (enumeración cerrada).
var BloodTypes = []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}

// ValidBloodType indica si el tipo de sangre es uno de los ocho conocidos.
func ValidBloodType(bt string) bool {
	for _, t := range BloodTypes {
		if t == bt {
			return true
		}
	}
	return false
}

// User representa una identidad del sistema: la parte común a todos los roles.
// Exactamente uno de los perfiles (según Role) está poblado; los otros son nil.
// Esto evita la tabla de "columnas para todos los roles" del diseño histórico:
// el JSON de salida solo expone los campos del perfil activo.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         string // donor, hospital, authority
	FirstName    string
	LastName     string
	Phone        string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Donor     *DonorProfile
	Hospital  *HospitalProfile
	Authority *AuthorityProfile
}

// DonorProfile datos propios del rol donor.
type DonorProfile struct {
	BloodType  string
	DOB        *time.Time
	Gender     string
	Address    string
	City       string
	State      string
	Country    string
	PostalCode string
	Latitude   *float64
	Longitude  *float64
}

// HospitalProfile datos propios del rol hospital.
type HospitalProfile struct {
	HospitalName       string
	RegistrationNumber string
	HospitalType       string // government, private, etc.
	Address            string
	City               string
	State              string
	Country            string
	PostalCode         string
	Latitude           *float64
	Longitude          *float64
}

// AuthorityProfile datos propios del rol authority.
type AuthorityProfile struct {
	AuthorityName string
	AuthorityType string // blood bank authority, health department, etc.
	Jurisdiction  string
}
