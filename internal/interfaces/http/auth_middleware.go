package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/amber-studios/workspace-api/internal/application/auth"
	"github.com/amber-studios/workspace-api/internal/application/dto"
	"github.com/amber-studios/workspace-api/internal/domain/entity"
)

// LocalSession key de c.Locals donde el middleware deja la sesión validada.
const LocalSession = "session"

// AuthMiddleware valida el Bearer Token y resuelve la sesión persistida; la
// deja en c.Locals para los handlers. Una sesión vencida se reporta aparte
// para que el cliente distinga expiración de token malo.
func AuthMiddleware(authUC *auth.AuthUseCase) fiber.Handler {
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
		ses, err := authUC.Validate(tokenString)
		if err != nil {
			return errorJSON(c, err)
		}
		c.Locals(LocalSession, ses)
		return c.Next()
	}
}

// GetSession devuelve la sesión del contexto (después del middleware de auth).
func GetSession(c *fiber.Ctx) *entity.Session {
	v := c.Locals(LocalSession)
	if v == nil {
		return nil
	}
	ses, _ := v.(*entity.Session)
	return ses
}

// RequireAdmin corta con 403 si el actor no es el administrador. Debe usarse
// DESPUÉS de AuthMiddleware.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ses := GetSession(c)
		if ses == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "sesión no encontrada"})
		}
		if !ses.IsAdmin() {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "solo el administrador"})
		}
		return c.Next()
	}
}
