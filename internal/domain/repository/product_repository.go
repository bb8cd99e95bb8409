package repository

import (
	"context"

	"github.com/jhoicas/inventario-tracker/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetByID, Update y Delete devuelven domain.ErrNotFound si el producto no existe.
type ProductRepository interface {
	// Create persiste el producto; si ID está vacío el adaptador lo asigna.
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id string) error
	// List devuelve todos los productos en orden de almacenamiento (inserción).
	List(ctx context.Context) ([]*entity.Product, error)
}
