package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jhoicas/inventario-tracker/internal/application/inventory"
	"github.com/jhoicas/inventario-tracker/internal/domain"
	"github.com/jhoicas/inventario-tracker/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner agrupa las escrituras de un movimiento. Con transactions=true usa una transacción
// multi-documento (requiere replica set). Con false las escrituras son secuenciales: si la
// actualización del producto falla después de insertar el movimiento, el movimiento queda
// guardado sin su efecto en el stock; el error se devuelve al llamador.
type TxRunner struct {
	client       *mongo.Client
	db           *mongo.Database
	transactions bool
}

// NewTxRunner construye el runner.
func NewTxRunner(c *Client, transactions bool) *TxRunner {
	return &TxRunner{client: c.Client, db: c.Database, transactions: transactions}
}

// Run ejecuta fn con repos atados a la sesión (modo transaccional) o directos.
func (r *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	if !r.transactions {
		return fn(NewMovementRepository(r.db), NewProductRepository(r.db))
	}

	sess, err := r.client.StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w: %w", domain.ErrStorage, err)
	}
	defer sess.EndSession(ctx)

	movRepo := &MovementRepo{collection: r.db.Collection(MovementsCollection), session: sess}
	productRepo := &ProductRepo{collection: r.db.Collection(ProductsCollection), session: sess}

	_, err = sess.WithTransaction(ctx, func(mongo.SessionContext) (interface{}, error) {
		return nil, fn(movRepo, productRepo)
	})
	return err
}
