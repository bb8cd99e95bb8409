package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventario-tracker/internal/application/dto"
	"github.com/jhoicas/inventario-tracker/internal/domain/entity"
	"github.com/jhoicas/inventario-tracker/internal/domain/repository"
)

// ListMovementsUseCase consulta el historial de movimientos con el nombre de producto resuelto.
type ListMovementsUseCase struct {
	movementRepo repository.MovementRepository
	productRepo  repository.ProductRepository
}

// NewListMovementsUseCase construye el caso de uso.
func NewListMovementsUseCase(movementRepo repository.MovementRepository, productRepo repository.ProductRepository) *ListMovementsUseCase {
	return &ListMovementsUseCase{movementRepo: movementRepo, productRepo: productRepo}
}

// List devuelve todos los movimientos en orden de almacenamiento.
func (uc *ListMovementsUseCase) List(ctx context.Context) (*dto.MovementListResponse, error) {
	movements, err := uc.movementRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar movimientos: %w", err)
	}
	return uc.withNames(ctx, movements)
}

// ListByProduct devuelve los movimientos de un producto. No exige que el producto siga existiendo.
func (uc *ListMovementsUseCase) ListByProduct(ctx context.Context, productID string) (*dto.MovementListResponse, error) {
	movements, err := uc.movementRepo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("listar movimientos del producto %s: %w", productID, err)
	}
	return uc.withNames(ctx, movements)
}

func (uc *ListMovementsUseCase) withNames(ctx context.Context, movements []*entity.Movement) (*dto.MovementListResponse, error) {
	products, err := uc.productRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar productos: %w", err)
	}
	names := dto.ProductNames(products)
	items := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		items = append(items, dto.NewMovementResponse(m, names))
	}
	return &dto.MovementListResponse{Items: items, Total: len(items)}, nil
}
