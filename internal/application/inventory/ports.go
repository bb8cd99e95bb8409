package inventory

import (
	"context"

	"github.com/jhoicas/inventario-tracker/internal/domain/repository"
)

// TxRunner ejecuta una función con repositorios atados a una misma unidad de escritura.
// Si fn devuelve error no debe quedar persistido nada de lo escrito dentro de fn (en los
// adaptadores que lo permiten; ver cada implementación).
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
	) error) error
}
