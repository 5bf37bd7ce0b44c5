package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/invenpro-api/internal/application/auth"
	"github.com/jhoicas/invenpro-api/internal/application/dto"
)

// AuthHandler maneja el inicio de sesión y la verificación de PINs.
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Login godoc
// @Summary      Iniciar sesión del operador
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "username, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	out, err := h.uc.Login(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Me devuelve la identidad del token.
// GET /api/auth/me
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	op := GetOperator(c)
	return c.JSON(dto.OperatorResponse{Username: op.Username, Name: op.Name, Role: op.Role})
}

// VerifyPIN godoc
// @Summary      Verificar el PIN de un área restringida
// @Tags         auth
// @Security     Bearer
// @Accept       json
// @Param        body  body  dto.VerifyPINRequest  true  "gate (billing | analytics | stock_adjustment), pin"
// @Success      204
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/auth/pin [post]
func (h *AuthHandler) VerifyPIN(c *fiber.Ctx) error {
	var in dto.VerifyPINRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	if err := h.uc.VerifyPIN(in.Gate, in.PIN); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
