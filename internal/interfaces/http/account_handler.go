package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/amber-studios/workspace-api/internal/application/dto"
	"github.com/amber-studios/workspace-api/internal/application/usecase"
)

// AccountHandler gestión de cuentas del país del admin.
type AccountHandler struct {
	uc *usecase.AccountUseCase
}

// NewAccountHandler construye el handler de cuentas.
func NewAccountHandler(uc *usecase.AccountUseCase) *AccountHandler {
	return &AccountHandler{uc: uc}
}

// Create godoc
// @Summary      Crear cuenta sm en el país de la sesión
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateAccountRequest  true  "loginId, password, accountType, name, surname"
// @Success      201   {object}  dto.AccountResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/accounts [post]
func (h *AccountHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateAccountRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(GetSession(c), in)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar cuentas sm del país de la sesión
// @Tags         accounts
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   dto.AccountResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/accounts [get]
func (h *AccountHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(GetSession(c))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar cuenta sm
// @Tags         accounts
// @Produce      json
// @Security     BearerAuth
// @Param        loginId  path  string  true  "login de la cuenta"
// @Success      200  {object}  dto.StatusResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/accounts/{loginId} [delete]
func (h *AccountHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(GetSession(c), c.Params("loginId")); err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(dto.StatusResponse{OK: true})
}

// ResetPassword godoc
// @Summary      Restablecer contraseña de una cuenta sm
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        loginId  path  string  true  "login de la cuenta"
// @Param        body     body  dto.ResetPasswordRequest  true  "newPassword"
// @Success      200  {object}  dto.StatusResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/accounts/{loginId}/password [put]
func (h *AccountHandler) ResetPassword(c *fiber.Ctx) error {
	var in dto.ResetPasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.ResetPassword(GetSession(c), c.Params("loginId"), in); err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(dto.StatusResponse{OK: true})
}
