package billing

import (
	"context"

	"github.com/jhoicas/dairybook-api/internal/domain/entity"
	"github.com/jhoicas/dairybook-api/internal/domain/repository"
)

// BillingTxRunner ejecuta una función dentro de una unidad atómica del almacén,
// pasando repositorios de transacciones y facturas atados a esa unidad.
// Si fn retorna error no queda ninguna escritura aplicada.
type BillingTxRunner interface {
	RunBilling(ctx context.Context, fn func(
		txnRepo repository.TransactionRepository,
		billRepo repository.BillRepository,
	) error) error
}

// MessageSender entrega el mensaje de cobro al teléfono del cliente.
// La implementación de producción es un mock que solo deja constancia en el log.
type MessageSender interface {
	Send(ctx context.Context, phone, message string) error
}

// BillPDFGenerator genera la representación en PDF de una factura mensual.
type BillPDFGenerator interface {
	GenerateBillPDF(ctx context.Context, bill *entity.Bill, txns []*entity.Transaction, currencySymbol string) ([]byte, error)
}
