package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrUnauthorized        = errors.New("no autorizado")
	ErrForbidden           = errors.New("acceso denegado")
	ErrDuplicate           = errors.New("registro duplicado")
	ErrStorage             = errors.New("error de almacenamiento")
	ErrConcurrencyConflict = errors.New("conflicto de concurrencia: transacciones ya facturadas")
)

// Variantes de ErrNotFound; errors.Is(err, ErrNotFound) sigue siendo verdadero.
var (
	ErrCustomerNotFound       = fmt.Errorf("cliente: %w", ErrNotFound)
	ErrBillNotFound           = fmt.Errorf("factura: %w", ErrNotFound)
	ErrNoEligibleTransactions = fmt.Errorf("sin transacciones pendientes en el mes: %w", ErrNotFound)
)

// StorageError envuelve un fallo de persistencia conservando la causa original.
func StorageError(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", op, ErrStorage, err)
}
