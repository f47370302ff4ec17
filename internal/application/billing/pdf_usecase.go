package billing

import (
	"context"
	"fmt"

	"github.com/jhoicas/dairybook-api/internal/domain"
	"github.com/jhoicas/dairybook-api/internal/domain/entity"
	"github.com/jhoicas/dairybook-api/internal/domain/repository"
)

// PDFUseCase genera el PDF descargable de una factura mensual.
type PDFUseCase struct {
	billRepo       repository.BillRepository
	txnRepo        repository.TransactionRepository
	generator      BillPDFGenerator
	currencySymbol string
}

// NewPDFUseCase construye el caso de uso inyectando todas sus dependencias.
func NewPDFUseCase(
	billRepo repository.BillRepository,
	txnRepo repository.TransactionRepository,
	generator BillPDFGenerator,
	currencySymbol string,
) *PDFUseCase {
	return &PDFUseCase{
		billRepo:       billRepo,
		txnRepo:        txnRepo,
		generator:      generator,
		currencySymbol: currencySymbol,
	}
}

// DownloadBillPDF recupera la factura y las líneas que la componen y genera el PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrBillNotFound     si la factura no existe en el vendedor.
func (uc *PDFUseCase) DownloadBillPDF(ctx context.Context, vendorID, billID string) (pdfBytes []byte, filename string, err error) {
	if vendorID == "" || billID == "" {
		return nil, "", domain.ErrInvalidInput
	}
	bill, err := uc.billRepo.GetByID(ctx, vendorID, billID)
	if err != nil {
		return nil, "", domain.StorageError("pdf: obtener factura", err)
	}
	if bill == nil {
		return nil, "", domain.ErrBillNotFound
	}

	all, err := uc.txnRepo.ListByCustomer(ctx, vendorID, bill.CustomerID)
	if err != nil {
		return nil, "", domain.StorageError("pdf: obtener transacciones", err)
	}
	included := make(map[string]struct{}, len(bill.TransactionIDs))
	for _, id := range bill.TransactionIDs {
		included[id] = struct{}{}
	}
	lines := make([]*entity.Transaction, 0, len(bill.TransactionIDs))
	for _, t := range all {
		if _, ok := included[t.ID]; ok {
			lines = append(lines, t)
		}
	}

	pdfBytes, err = uc.generator.GenerateBillPDF(ctx, bill, lines, uc.currencySymbol)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	filename = fmt.Sprintf("bill_%s_%s.pdf", bill.BillingMonth, bill.ID)
	return pdfBytes, filename, nil
}
