package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/dairybook-api/internal/application/dto"
)

// RequireVendor verifica que el :vendorId de la ruta coincida con el vendedor del token.
// Debe usarse DESPUÉS de AuthMiddleware.
//
// Comportamiento:
//   - 400 Bad Request → la ruta no trae vendorId.
//   - 403 Forbidden   → el token pertenece a otro vendedor.
//   - Sin autenticación activa solo se valida que vendorId exista.
func RequireVendor() fiber.Handler {
	return func(c *fiber.Ctx) error {
		vendorID := c.Params("vendorId")
		if vendorID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Code:    "VALIDATION",
				Message: "vendorId requerido",
			})
		}
		if !vendorAllowed(c, vendorID) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "FORBIDDEN",
				Message: "el token no pertenece a este vendedor",
			})
		}
		return c.Next()
	}
}
