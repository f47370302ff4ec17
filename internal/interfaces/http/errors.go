package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/dairybook-api/internal/application/dto"
	"github.com/jhoicas/dairybook-api/internal/domain"
)

// Códigos de error de las funciones invocables remotas.
const (
	codeInvalidArgument  = "invalid-argument"
	codeNotFound         = "not-found"
	codeAborted          = "aborted"
	codePermissionDenied = "permission-denied"
	codeUnauthenticated  = "unauthenticated"
	codeInternal         = "internal"
)

// respondError traduce un error de dominio a la respuesta REST.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNoEligibleTransactions):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NO_UNPAID_TRANSACTIONS", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrConcurrencyConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado"})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "no autorizado"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
}

// respondCallableError traduce un error de dominio al cuerpo {success:false, code, message}.
func respondCallableError(c *fiber.Ctx, err error) error {
	status, code := fiber.StatusInternalServerError, codeInternal
	message := "error interno"
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		status, code, message = fiber.StatusBadRequest, codeInvalidArgument, err.Error()
	case errors.Is(err, domain.ErrNoEligibleTransactions):
		status, code, message = fiber.StatusNotFound, codeNotFound, "No unpaid transactions found for this customer this month"
	case errors.Is(err, domain.ErrCustomerNotFound):
		status, code, message = fiber.StatusNotFound, codeNotFound, "Customer not found"
	case errors.Is(err, domain.ErrBillNotFound):
		status, code, message = fiber.StatusNotFound, codeNotFound, "Bill not found"
	case errors.Is(err, domain.ErrNotFound):
		status, code, message = fiber.StatusNotFound, codeNotFound, err.Error()
	case errors.Is(err, domain.ErrConcurrencyConflict):
		status, code, message = fiber.StatusConflict, codeAborted, err.Error()
	case errors.Is(err, domain.ErrForbidden):
		status, code, message = fiber.StatusForbidden, codePermissionDenied, "vendor mismatch"
	case errors.Is(err, domain.ErrUnauthorized):
		status, code, message = fiber.StatusUnauthorized, codeUnauthenticated, "authentication required"
	}
	return c.Status(status).JSON(dto.CallableErrorResponse{Success: false, Code: code, Message: message})
}
