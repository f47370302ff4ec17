package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readconcern"
	"go.mongodb.org/mongo-driver/v2/mongo/writeconcern"

	"github.com/jhoicas/dairybook-api/internal/application/billing"
	"github.com/jhoicas/dairybook-api/internal/domain/repository"
)

var _ billing.BillingTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción multi-documento.
type TxRunner struct {
	s *Store
}

// NewTxRunner construye el runner.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

// RunBilling abre una sesión y ejecuta fn con repos atados a ella. WithTransaction reintenta
// ante errores transitorios (p. ej. WriteConflict entre dos generaciones simultáneas), por lo
// que fn puede ejecutarse más de una vez.
func (r *TxRunner) RunBilling(ctx context.Context, fn func(
	txnRepo repository.TransactionRepository,
	billRepo repository.BillRepository,
) error) error {
	sess, err := r.s.client.StartSession()
	if err != nil {
		return fmt.Errorf("mongo: start session: %w", err)
	}
	defer sess.EndSession(ctx)

	txOpts := options.Transaction().
		SetReadConcern(readconcern.Snapshot()).
		SetWriteConcern(writeconcern.Majority())

	_, err = sess.WithTransaction(ctx, func(_ context.Context) (any, error) {
		txnRepo := &TransactionRepo{col: r.s.db.Collection(colTransactions), sess: sess}
		billRepo := &BillRepo{col: r.s.db.Collection(colBills), sess: sess}
		return nil, fn(txnRepo, billRepo)
	}, txOpts)
	return err
}
