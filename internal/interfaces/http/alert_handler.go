package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/raktsetu/raktsetu-api/internal/application/alert"
	"github.com/raktsetu/raktsetu-api/internal/application/dto"
)

// AlertHandler maneja las alertas de necesidad de sangre (protegido).
type AlertHandler struct {
	uc *alert.UseCase
}

// NewAlertHandler construye el handler de alertas.
func NewAlertHandler(uc *alert.UseCase) *AlertHandler {
	return &AlertHandler{uc: uc}
}

// List godoc
// @Summary      Listar alertas visibles para el actor
// @Description  Donante: activas (y de su tipo de sangre si lo registró); hospital: propias + activas; autoridad: todas.
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Param        status      query  string  false  "active | resolved | expired"
// @Param        priority    query  string  false  "low | medium | high | emergency"
// @Param        blood_type  query  string  false  "A+, A-, B+, B-, AB+, AB-, O+, O-"
// @Success      200  {array}   dto.AlertResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/alerts [get]
func (h *AlertHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), actor(c), c.Query("status"), c.Query("priority"), c.Query("blood_type"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// Nearby godoc
// @Summary      Alertas activas cercanas a un punto
// @Description  Ordenadas por distancia ascendente; cada una incluye su distancia en km.
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Param        latitude    query  number  true   "latitud del origen"
// @Param        longitude   query  number  true   "longitud del origen"
// @Param        radius      query  number  false  "radio en km (default 20)"
// @Param        blood_type  query  string  false  "filtro por tipo de sangre"
// @Success      200  {array}   dto.AlertResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/alerts/nearby [get]
func (h *AlertHandler) Nearby(c *fiber.Ctx) error {
	lat, latErr := parseFloatQuery(c, "latitude")
	lon, lonErr := parseFloatQuery(c, "longitude")
	if latErr != nil || lonErr != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "latitude y longitude numéricos son requeridos"})
	}

	radius := 0.0
	if raw := c.Query("radius"); raw != "" {
		r, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "radius debe ser numérico"})
		}
		radius = r
	}

	out, err := h.uc.Nearby(c.Context(), lat, lon, radius, c.Query("blood_type"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// parseFloatQuery lee un query param numérico; nil si está ausente.
func parseFloatQuery(c *fiber.Ctx, name string) (*float64, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Get godoc
// @Summary      Obtener alerta
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la alerta"
// @Success      200  {object}  dto.AlertResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/alerts/{id} [get]
func (h *AlertHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Emitir alerta
// @Description  Solo hospitales. Sin expires_at aplica el default por prioridad; sin coordenadas se usa el perfil o geocodificación.
// @Tags         alerts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAlertRequest  true  "blood_type, units_needed, title"
// @Success      201   {object}  dto.AlertResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/alerts [post]
func (h *AlertHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateAlertRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.Context(), actor(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar alerta
// @Tags         alerts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID de la alerta"
// @Param        body  body  dto.UpdateAlertRequest  true  "campos a actualizar"
// @Success      200   {object}  dto.AlertResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/alerts/{id} [put]
func (h *AlertHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateAlertRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Context(), actor(c), c.Params("id"), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// Resolve godoc
// @Summary      Resolver alerta
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la alerta"
// @Success      200  {object}  dto.AlertResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/alerts/{id}/resolve [put]
func (h *AlertHandler) Resolve(c *fiber.Ctx) error {
	out, err := h.uc.Resolve(c.Context(), actor(c), c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar alerta
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la alerta"
// @Success      200  {object}  dto.MessageResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/alerts/{id} [delete]
func (h *AlertHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), actor(c), c.Params("id")); err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "alerta eliminada"})
}
