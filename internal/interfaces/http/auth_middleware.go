package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/dairybook-api/internal/application/dto"
	"github.com/jhoicas/dairybook-api/pkg/jwt"
)

// LocalVendorID clave de c.Locals con el vendedor autenticado.
const LocalVendorID = "vendor_id"

// authFailure resultado de authenticate cuando la petición no trae un token válido.
type authFailure struct {
	code    string
	message string
}

// authenticate extrae y valida el Bearer Token. Con secret vacío la autenticación está desactivada
// y devuelve ("", nil).
func authenticate(c *fiber.Ctx, secret string) (string, *authFailure) {
	if secret == "" {
		return "", nil
	}
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return "", &authFailure{code: "MISSING_TOKEN", message: "Authorization header requerido"}
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", &authFailure{code: "INVALID_TOKEN", message: "formato: Bearer <token>"}
	}
	tokenString := strings.TrimSpace(parts[1])
	if tokenString == "" {
		return "", &authFailure{code: "MISSING_TOKEN", message: "token vacío"}
	}
	vendorID, err := jwt.Parse(secret, tokenString)
	if err != nil {
		return "", &authFailure{code: "INVALID_TOKEN", message: "token inválido o expirado"}
	}
	return vendorID, nil
}

// AuthMiddleware valida el Bearer Token JWT y guarda el vendor_id en c.Locals.
// Si jwtSecret está vacío deja pasar todas las peticiones sin vendedor autenticado.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		vendorID, fail := authenticate(c, jwtSecret)
		if fail != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: fail.code, Message: fail.message})
		}
		if vendorID != "" {
			c.Locals(LocalVendorID, vendorID)
		}
		return c.Next()
	}
}

// callableAuthMiddleware igual que AuthMiddleware pero responde con el cuerpo de error de las funciones invocables.
func callableAuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		vendorID, fail := authenticate(c, jwtSecret)
		if fail != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.CallableErrorResponse{
				Success: false, Code: codeUnauthenticated, Message: fail.message,
			})
		}
		if vendorID != "" {
			c.Locals(LocalVendorID, vendorID)
		}
		return c.Next()
	}
}

// GetVendorID devuelve el vendedor autenticado; vacío si la autenticación está desactivada.
func GetVendorID(c *fiber.Ctx) string {
	v := c.Locals(LocalVendorID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// vendorAllowed indica si el vendedor autenticado (si lo hay) puede operar sobre vendorID.
func vendorAllowed(c *fiber.Ctx, vendorID string) bool {
	authenticated := GetVendorID(c)
	return authenticated == "" || authenticated == vendorID
}
