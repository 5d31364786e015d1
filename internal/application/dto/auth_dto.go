package dto

// RegisterRequest datos de registro. Los campos de perfil son opcionales y se
// aplican según el rol declarado; los de otros roles se ignoran.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`

	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`

	// Donor
	BloodType string `json:"blood_type"`
	DOB       string `json:"dob"` // YYYY-MM-DD
	Gender    string `json:"gender"`

	// Donor / Hospital
	Address    string   `json:"address"`
	City       string   `json:"city"`
	State      string   `json:"state"`
	Country    string   `json:"country"`
	PostalCode string   `json:"postal_code"`
	Latitude   *float64 `json:"latitude"`
	Longitude  *float64 `json:"longitude"`

	// Hospital
	HospitalName       string `json:"hospital_name"`
	RegistrationNumber string `json:"hospital_registration_number"`
	HospitalType       string `json:"hospital_type"`

	// Authority
	AuthorityName string `json:"authority_name"`
	AuthorityType string `json:"authority_type"`
	Jurisdiction  string `json:"jurisdiction"`
}

// LoginRequest credenciales de acceso.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse par de tokens más el usuario autenticado.
type LoginResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         UserResponse `json:"user"`
}

// RefreshResponse nuevo token de acceso emitido a partir del refresh.
type RefreshResponse struct {
	AccessToken string `json:"access_token"`
}
