package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MessageResponse respuesta simple con mensaje.
type MessageResponse struct {
	Message string `json:"message"`
}

// Actor identifica al usuario autenticado que ejecuta la operación
// (extraído de los claims del token por el middleware de auth).
type Actor struct {
	ID   string
	Role string
}
