package billing

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/dairybook-api/internal/domain"
	"github.com/jhoicas/dairybook-api/internal/domain/entity"
)

// ErrInvalidBill agrupa errores de coherencia de una factura generada.
var ErrInvalidBill = errors.New("factura incoherente")

// AmountScale decimales admitidos en un monto (columna NUMERIC(14,2)).
const AmountScale = 2

// MaxAmount mayor monto representable con NUMERIC(14,2).
var MaxAmount = decimal.RequireFromString("999999999999.99")

// ValidateAmount rechaza montos negativos, con más de AmountScale decimales o por encima de MaxAmount.
func ValidateAmount(amount decimal.Decimal) error {
	switch {
	case amount.IsNegative():
		return fmt.Errorf("%w: monto negativo", domain.ErrInvalidInput)
	case !amount.Equal(amount.Truncate(AmountScale)):
		return fmt.Errorf("%w: el monto admite como máximo %d decimales", domain.ErrInvalidInput, AmountScale)
	case amount.GreaterThan(MaxAmount):
		return fmt.Errorf("%w: el monto supera %s", domain.ErrInvalidInput, MaxAmount)
	}
	return nil
}

// Totals suma los montos de las transacciones y devuelve total, cantidad e IDs en el mismo orden.
func Totals(txns []*entity.Transaction) (decimal.Decimal, int, []string) {
	total := decimal.Zero
	ids := make([]string, 0, len(txns))
	for _, t := range txns {
		total = total.Add(t.Amount)
		ids = append(ids, t.ID)
	}
	return total, len(ids), ids
}

// ValidateBill comprueba que la factura refleje exactamente las transacciones incluidas:
// mismo cliente, sin pagar, dentro del mes y con total y cantidad coherentes.
func ValidateBill(bill *entity.Bill, txns []*entity.Transaction, period Period) error {
	if bill == nil {
		return fmt.Errorf("%w: factura nula", ErrInvalidBill)
	}
	var errs []error
	if len(txns) == 0 {
		errs = append(errs, fmt.Errorf("%w: sin transacciones", ErrInvalidBill))
	}
	sum := decimal.Zero
	seen := make(map[string]struct{}, len(txns))
	for _, t := range txns {
		if t.CustomerID != bill.CustomerID {
			errs = append(errs, fmt.Errorf("transacción %s pertenece a otro cliente", t.ID))
		}
		if t.IsPaid {
			errs = append(errs, fmt.Errorf("transacción %s ya estaba pagada", t.ID))
		}
		if !period.Contains(t.Date) {
			errs = append(errs, fmt.Errorf("transacción %s fuera de %s", t.ID, period.Key()))
		}
		if t.Amount.IsNegative() {
			errs = append(errs, fmt.Errorf("transacción %s con monto negativo", t.ID))
		}
		if _, dup := seen[t.ID]; dup {
			errs = append(errs, fmt.Errorf("transacción %s duplicada", t.ID))
		}
		seen[t.ID] = struct{}{}
		sum = sum.Add(t.Amount)
	}
	if !bill.TotalAmount.Equal(sum) {
		errs = append(errs, fmt.Errorf("total (%s) no coincide con la suma de transacciones (%s)", bill.TotalAmount, sum))
	}
	if bill.TransactionCount != len(txns) || len(bill.TransactionIDs) != len(txns) {
		errs = append(errs, fmt.Errorf("cantidad (%d) no coincide con las transacciones (%d)", bill.TransactionCount, len(txns)))
	}
	if bill.BillingMonth != period.Key() {
		errs = append(errs, fmt.Errorf("mes %s distinto de %s", bill.BillingMonth, period.Key()))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidBill, errors.Join(errs...))
	}
	return nil
}
