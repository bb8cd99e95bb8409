// Package memory implementa los puertos de persistencia en memoria del proceso.
// Se usa en desarrollo (STORAGE_BACKEND=memory) y como backend de los tests.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/jhoicas/inventario-tracker/internal/application/inventory"
	"github.com/jhoicas/inventario-tracker/internal/domain"
	"github.com/jhoicas/inventario-tracker/internal/domain/entity"
	"github.com/jhoicas/inventario-tracker/internal/domain/repository"
)

var (
	_ repository.ProductRepository  = (*ProductRepo)(nil)
	_ repository.MovementRepository = (*MovementRepo)(nil)
	_ inventory.TxRunner            = (*TxRunner)(nil)
)

// Store guarda productos y movimientos en orden de inserción.
type Store struct {
	mu        sync.Mutex
	products  []entity.Product
	movements []entity.Movement
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{}
}

// Products devuelve el repositorio de productos del almacén.
func (s *Store) Products() *ProductRepo { return &ProductRepo{s: s} }

// Movements devuelve el repositorio de movimientos del almacén.
func (s *Store) Movements() *MovementRepo { return &MovementRepo{s: s} }

// TxRunner devuelve el runner transaccional del almacén.
func (s *Store) TxRunner() *TxRunner { return &TxRunner{s: s} }

func (s *Store) lock(held bool) func() {
	if held {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func (s *Store) productIndex(id string) int {
	for i := range s.products {
		if s.products[i].ID == id {
			return i
		}
	}
	return -1
}

// ProductRepo implementación en memoria de ProductRepository.
type ProductRepo struct {
	s    *Store
	held bool // true dentro de TxRunner.Run: el lock ya está tomado
}

// Create persiste un producto nuevo.
func (r *ProductRepo) Create(_ context.Context, product *entity.Product) error {
	defer r.s.lock(r.held)()
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if r.s.productIndex(product.ID) >= 0 {
		return fmt.Errorf("create product %s: duplicado", product.ID)
	}
	r.s.products = append(r.s.products, *product)
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	defer r.s.lock(r.held)()
	i := r.s.productIndex(id)
	if i < 0 {
		return nil, domain.ErrNotFound
	}
	p := r.s.products[i]
	return &p, nil
}

// Update reemplaza el producto existente.
func (r *ProductRepo) Update(_ context.Context, product *entity.Product) error {
	defer r.s.lock(r.held)()
	i := r.s.productIndex(product.ID)
	if i < 0 {
		return domain.ErrNotFound
	}
	r.s.products[i] = *product
	return nil
}

// Delete elimina un producto por ID.
func (r *ProductRepo) Delete(_ context.Context, id string) error {
	defer r.s.lock(r.held)()
	i := r.s.productIndex(id)
	if i < 0 {
		return domain.ErrNotFound
	}
	r.s.products = append(r.s.products[:i], r.s.products[i+1:]...)
	return nil
}

// List devuelve copias de todos los productos.
func (r *ProductRepo) List(_ context.Context) ([]*entity.Product, error) {
	defer r.s.lock(r.held)()
	list := make([]*entity.Product, 0, len(r.s.products))
	for i := range r.s.products {
		p := r.s.products[i]
		list = append(list, &p)
	}
	return list, nil
}

// MovementRepo implementación en memoria de MovementRepository.
type MovementRepo struct {
	s    *Store
	held bool
}

// Create persiste un movimiento.
func (r *MovementRepo) Create(_ context.Context, movement *entity.Movement) error {
	defer r.s.lock(r.held)()
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	r.s.movements = append(r.s.movements, *movement)
	return nil
}

// List devuelve copias de todos los movimientos.
func (r *MovementRepo) List(_ context.Context) ([]*entity.Movement, error) {
	defer r.s.lock(r.held)()
	list := make([]*entity.Movement, 0, len(r.s.movements))
	for i := range r.s.movements {
		m := r.s.movements[i]
		list = append(list, &m)
	}
	return list, nil
}

// ListByProduct devuelve los movimientos de un producto.
func (r *MovementRepo) ListByProduct(_ context.Context, productID string) ([]*entity.Movement, error) {
	defer r.s.lock(r.held)()
	list := make([]*entity.Movement, 0)
	for i := range r.s.movements {
		if r.s.movements[i].ProductID == productID {
			m := r.s.movements[i]
			list = append(list, &m)
		}
	}
	return list, nil
}

// TxRunner ejecuta fn con el lock tomado y restaura el estado previo si fn falla.
type TxRunner struct {
	s *Store
}

// Run ejecuta fn de forma atómica respecto a los demás accesos al almacén.
func (t *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	products := append([]entity.Product(nil), t.s.products...)
	movements := append([]entity.Movement(nil), t.s.movements...)

	if err := fn(&MovementRepo{s: t.s, held: true}, &ProductRepo{s: t.s, held: true}); err != nil {
		t.s.products = products
		t.s.movements = movements
		return err
	}
	return nil
}
