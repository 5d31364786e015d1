package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/raktsetu/raktsetu-api/internal/application/dto"
	"github.com/raktsetu/raktsetu-api/internal/application/usecase"
)

// DonationHandler maneja las citas y registros de donación (protegido).
type DonationHandler struct {
	uc *usecase.DonationUseCase
}

// NewDonationHandler construye el handler de donaciones.
func NewDonationHandler(uc *usecase.DonationUseCase) *DonationHandler {
	return &DonationHandler{uc: uc}
}

// List godoc
// @Summary      Listar donaciones
// @Description  Donante: las propias; hospital: las recibidas; autoridad: todas.
// @Tags         donations
// @Security     Bearer
// @Produce      json
// @Param        status      query  string  false  "scheduled | completed | cancelled | no_show"
// @Param        start_date  query  string  false  "RFC 3339"
// @Param        end_date    query  string  false  "RFC 3339"
// @Success      200  {array}   dto.DonationResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/donations [get]
func (h *DonationHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), actor(c), c.Query("status"), c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener donación
// @Tags         donations
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la donación"
// @Success      200  {object}  dto.DonationResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/donations/{id} [get]
func (h *DonationHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), actor(c), c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Agendar donación
// @Description  El donante envía hospital_id; el hospital envía donor_id.
// @Tags         donations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateDonationRequest  true  "appointment_date y contraparte"
// @Success      201   {object}  dto.DonationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/donations [post]
func (h *DonationHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDonationRequest
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
// @Summary      Actualizar donación
// @Description  Donante: solo cancelar su cita; hospital/autoridad: cualquier campo.
// @Tags         donations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID de la donación"
// @Param        body  body  dto.UpdateDonationRequest  true  "campos a actualizar"
// @Success      200   {object}  dto.DonationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/donations/{id} [put]
func (h *DonationHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateDonationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Context(), actor(c), c.Params("id"), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar donación
// @Tags         donations
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la donación"
// @Success      200  {object}  dto.MessageResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/donations/{id} [delete]
func (h *DonationHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), actor(c), c.Params("id")); err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "donación eliminada"})
}

// Certificate godoc
// @Summary      Certificado PDF de una donación completada
// @Tags         donations
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID de la donación"
// @Success      200  {file}    file
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/donations/{id}/certificate [get]
func (h *DonationHandler) Certificate(c *fiber.Ctx) error {
	pdfBytes, err := h.uc.Certificate(c.Context(), actor(c), c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="certificado-donacion.pdf"`)
	return c.Send(pdfBytes)
}
