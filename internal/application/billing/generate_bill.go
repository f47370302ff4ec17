package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/dairybook-api/internal/domain"
	dombilling "github.com/jhoicas/dairybook-api/internal/domain/billing"
	"github.com/jhoicas/dairybook-api/internal/domain/entity"
	"github.com/jhoicas/dairybook-api/internal/domain/repository"
	"github.com/jhoicas/dairybook-api/pkg/logger"
)

// GenerateBillUseCase genera la factura mensual de un cliente y liquida sus transacciones
// en una sola unidad atómica.
type GenerateBillUseCase struct {
	txRunner     BillingTxRunner
	customerRepo repository.CustomerRepository
	settler      *Settler
	loc          *time.Location
	now          func() time.Time
	log          *logger.Logger
}

// NewGenerateBillUseCase construye el caso de uso. loc es la zona horaria con la que se
// determina el mes facturado.
func NewGenerateBillUseCase(
	txRunner BillingTxRunner,
	customerRepo repository.CustomerRepository,
	settler *Settler,
	loc *time.Location,
	log *logger.Logger,
) *GenerateBillUseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &GenerateBillUseCase{
		txRunner:     txRunner,
		customerRepo: customerRepo,
		settler:      settler,
		loc:          loc,
		now:          time.Now,
		log:          log.Component("bill_generator"),
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *GenerateBillUseCase) WithClock(now func() time.Time) *GenerateBillUseCase {
	uc.now = now
	return uc
}

// GenerateBill toma las transacciones sin pagar del mes en curso, crea la factura y las marca
// pagadas contra ella. Errores:
//   - domain.ErrInvalidInput            faltan vendorID o customerID.
//   - domain.ErrCustomerNotFound        el cliente no existe en el vendedor.
//   - domain.ErrNoEligibleTransactions  nada que facturar este mes (no se escribe nada).
//   - domain.ErrConcurrencyConflict     otra factura tomó alguna transacción primero.
//   - domain.ErrStorage                 fallo del almacén.
func (uc *GenerateBillUseCase) GenerateBill(ctx context.Context, vendorID, customerID string) (*entity.Bill, error) {
	if vendorID == "" || customerID == "" {
		return nil, domain.ErrInvalidInput
	}
	log := uc.log.With().Str("vendor_id", vendorID).Str("customer_id", customerID).Logger()

	customer, err := uc.customerRepo.GetByID(ctx, vendorID, customerID)
	if err != nil {
		return nil, domain.StorageError("obtener cliente", err)
	}
	if customer == nil {
		return nil, domain.ErrCustomerNotFound
	}

	now := uc.now()
	period := dombilling.MonthOf(now, uc.loc)
	log.Debug().Time("from", period.Start).Time("to", period.End).Msg("buscando transacciones pendientes")

	var bill *entity.Bill
	err = uc.txRunner.RunBilling(ctx, func(txnRepo repository.TransactionRepository, billRepo repository.BillRepository) error {
		txns, err := txnRepo.ListUnpaidInRange(ctx, vendorID, customerID, period.Start, period.End)
		if err != nil {
			return fmt.Errorf("listar transacciones pendientes: %w", err)
		}
		if len(txns) == 0 {
			return domain.ErrNoEligibleTransactions
		}

		total, count, ids := dombilling.Totals(txns)
		bill = &entity.Bill{
			ID:               uuid.New().String(),
			VendorID:         vendorID,
			CustomerID:       customer.ID,
			CustomerName:     customer.Name,
			CustomerPhone:    customer.Phone,
			TotalAmount:      total,
			TransactionCount: count,
			TransactionIDs:   ids,
			BillingMonth:     period.Key(),
			IsPaid:           false,
			CreatedAt:        now,
		}
		if err := dombilling.ValidateBill(bill, txns, period); err != nil {
			return err
		}
		if err := billRepo.Create(ctx, bill); err != nil {
			return fmt.Errorf("crear factura: %w", err)
		}
		return uc.settler.Settle(ctx, txnRepo, vendorID, bill.ID, ids)
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNoEligibleTransactions):
			log.Info().Str("billing_month", period.Key()).Msg("sin transacciones facturables este mes")
			return nil, err
		case errors.Is(err, domain.ErrConcurrencyConflict):
			log.Warn().Err(err).Msg("generación de factura en conflicto")
			return nil, err
		case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrStorage):
			return nil, err
		}
		log.Error().Err(err).Msg("generación de factura fallida")
		return nil, domain.StorageError("generar factura", err)
	}

	log.Info().
		Str("bill_id", bill.ID).
		Str("billing_month", bill.BillingMonth).
		Str("total", bill.TotalAmount.String()).
		Int("transactions", bill.TransactionCount).
		Msg("factura generada")
	return bill, nil
}
