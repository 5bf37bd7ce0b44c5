package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/invenpro-api/internal/application/dto"
	"github.com/jhoicas/invenpro-api/internal/domain"
	"github.com/jhoicas/invenpro-api/internal/domain/entity"
	"github.com/jhoicas/invenpro-api/pkg/jwt"
)

// Locals keys con la identidad del operador en Fiber.
const (
	LocalUsername = "username"
	LocalName     = "name"
	LocalRole     = "role"
)

// HeaderPIN cabecera con el PIN de las áreas restringidas.
const HeaderPIN = "X-Operator-PIN"

// AuthMiddleware valida el Bearer Token JWT y carga la identidad del operador en c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		username, name, role, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalUsername, username)
		c.Locals(LocalName, name)
		c.Locals(LocalRole, role)
		return c.Next()
	}
}

func localString(c *fiber.Ctx, key string) string {
	s, _ := c.Locals(key).(string)
	return s
}

// GetUsername devuelve el usuario del token (después del middleware de auth).
func GetUsername(c *fiber.Ctx) string { return localString(c, LocalUsername) }

// GetRole devuelve el rol del token (después del middleware de auth).
func GetRole(c *fiber.Ctx) string { return localString(c, LocalRole) }

// GetOperator arma la identidad con la que se firman las entradas de auditoría.
func GetOperator(c *fiber.Ctx) entity.Operator {
	return entity.Operator{
		Username: localString(c, LocalUsername),
		Name:     localString(c, LocalName),
		Role:     localString(c, LocalRole),
	}
}

// RequireRole permite el paso solo a los roles indicados. Debe usarse DESPUÉS de AuthMiddleware.
//   - 401 MISSING_ROLE → el token no trae el claim de rol.
//   - 403 FORBIDDEN    → rol fuera de la lista.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "el token no contiene rol"})
		}
		for _, r := range roles {
			if strings.EqualFold(r, role) {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol sin acceso a este recurso"})
	}
}

// pinVerifier contrato mínimo para validar un PIN; lo implementa *auth.AuthUseCase.
type pinVerifier interface {
	VerifyPIN(gate, pin string) error
}

// RequirePIN exige el PIN del área en la cabecera X-Operator-PIN. Con PIN incorrecto
// la operación no se intenta.
func RequirePIN(gate string, verifier pinVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		pin := strings.TrimSpace(c.Get(HeaderPIN))
		if pin == "" {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "PIN_REQUIRED", Message: "se requiere el PIN de " + gate})
		}
		if err := verifier.VerifyPIN(gate, pin); err != nil {
			if errors.Is(err, domain.ErrInvalidPIN) {
				return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "INVALID_PIN", Message: "PIN incorrecto"})
			}
			return writeError(c, err)
		}
		return c.Next()
	}
}
