package billing

import (
	"context"
	"fmt"

	"github.com/jhoicas/dairybook-api/internal/domain"
	"github.com/jhoicas/dairybook-api/internal/domain/repository"
	"github.com/jhoicas/dairybook-api/pkg/logger"
)

// Settler marca como pagadas las transacciones incluidas en una factura.
// Debe usarse con el repositorio atado a la misma unidad atómica que creó la factura.
type Settler struct {
	log *logger.Logger
}

// NewSettler construye el componente de liquidación.
func NewSettler(log *logger.Logger) *Settler {
	return &Settler{log: log.Component("settlement")}
}

// Settle asigna billID a cada transacción listada y la marca pagada.
// La escritura es condicional (solo filas aún sin pagar): si alguna ya fue tomada por otra
// factura devuelve domain.ErrConcurrencyConflict y el llamador debe descartar la unidad completa.
func (s *Settler) Settle(ctx context.Context, txnRepo repository.TransactionRepository, vendorID, billID string, transactionIDs []string) error {
	if vendorID == "" || billID == "" || len(transactionIDs) == 0 {
		return domain.ErrInvalidInput
	}
	ids := uniqueIDs(transactionIDs)

	updated, err := txnRepo.MarkPaid(ctx, vendorID, billID, ids)
	if err != nil {
		return fmt.Errorf("marcar transacciones pagadas: %w", err)
	}
	if updated != int64(len(ids)) {
		s.log.Warn().
			Str("vendor_id", vendorID).
			Str("bill_id", billID).
			Int("expected", len(ids)).
			Int64("updated", updated).
			Msg("liquidación parcial detectada, se descarta la factura")
		return fmt.Errorf("%w: %d de %d transacciones", domain.ErrConcurrencyConflict, updated, len(ids))
	}
	return nil
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
