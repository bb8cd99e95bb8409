package kvstore

import (
	"context"

	"github.com/jhoicas/inventario-tracker/internal/application/inventory"
	"github.com/jhoicas/inventario-tracker/internal/domain/entity"
	"github.com/jhoicas/inventario-tracker/internal/domain/repository"
	"github.com/jhoicas/inventario-tracker/internal/infrastructure/memory"
)

var (
	_ repository.ProductRepository  = (*ProductRepo)(nil)
	_ repository.MovementRepository = (*MovementRepo)(nil)
	_ inventory.TxRunner            = (*TxRunner)(nil)
)

// ProductRepo productos guardados bajo <prefijo>:productos.
type ProductRepo struct {
	c *Client
}

// NewProductRepository construye el repositorio.
func NewProductRepository(c *Client) *ProductRepo {
	return &ProductRepo{c: c}
}

// Create agrega el producto al final de la lista.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	return r.c.mutate(ctx, true, false, func(st *memory.Store) error {
		return st.Products().Create(ctx, product)
	})
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	st, err := r.c.read(ctx)
	if err != nil {
		return nil, err
	}
	return st.Products().GetByID(ctx, id)
}

// Update reemplaza el producto en su posición.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	return r.c.mutate(ctx, true, false, func(st *memory.Store) error {
		return st.Products().Update(ctx, product)
	})
}

// Delete quita el producto de la lista.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	return r.c.mutate(ctx, true, false, func(st *memory.Store) error {
		return st.Products().Delete(ctx, id)
	})
}

// List devuelve la lista completa.
func (r *ProductRepo) List(ctx context.Context) ([]*entity.Product, error) {
	st, err := r.c.read(ctx)
	if err != nil {
		return nil, err
	}
	return st.Products().List(ctx)
}

// MovementRepo movimientos guardados bajo <prefijo>:movimientos.
type MovementRepo struct {
	c *Client
}

// NewMovementRepository construye el repositorio.
func NewMovementRepository(c *Client) *MovementRepo {
	return &MovementRepo{c: c}
}

// Create agrega el movimiento al final de la lista.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	return r.c.mutate(ctx, false, true, func(st *memory.Store) error {
		return st.Movements().Create(ctx, m)
	})
}

// List devuelve todos los movimientos.
func (r *MovementRepo) List(ctx context.Context) ([]*entity.Movement, error) {
	st, err := r.c.read(ctx)
	if err != nil {
		return nil, err
	}
	return st.Movements().List(ctx)
}

// ListByProduct devuelve los movimientos de un producto.
func (r *MovementRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.Movement, error) {
	st, err := r.c.read(ctx)
	if err != nil {
		return nil, err
	}
	return st.Movements().ListByProduct(ctx, productID)
}

// TxRunner ejecuta fn sobre una copia de ambas colecciones y las escribe juntas con un MSET.
// Si fn falla no se escribe nada.
type TxRunner struct {
	c *Client
}

// NewTxRunner construye el runner.
func NewTxRunner(c *Client) *TxRunner {
	return &TxRunner{c: c}
}

// Run implementa inventory.TxRunner.
func (t *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	return t.c.mutate(ctx, true, true, func(st *memory.Store) error {
		return fn(st.Movements(), st.Products())
	})
}
