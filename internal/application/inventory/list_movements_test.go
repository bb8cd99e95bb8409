package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-tracker/internal/application/dto"
	"github.com/jhoicas/inventario-tracker/internal/application/inventory"
	"github.com/jhoicas/inventario-tracker/internal/domain/entity"
	"github.com/jhoicas/inventario-tracker/internal/infrastructure/memory"
)

func TestListMovements_ProductoEliminadoSeMuestraDesconocido(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	keep := seedProduct(t, store, 5)
	gone := seedProduct(t, store, 5)

	reg := inventory.NewRegisterMovementUseCase(store.TxRunner(), nil, nil)
	for _, id := range []string{keep.ID, gone.ID, keep.ID} {
		_, _, err := reg.RegisterMovement(ctx, inventory.MovementInputDTO{
			ProductID: id, Type: entity.MovementTypeExit, Quantity: 1, Date: movDate,
		})
		require.NoError(t, err)
	}
	require.NoError(t, store.Products().Delete(ctx, gone.ID))

	uc := inventory.NewListMovementsUseCase(store.Movements(), store.Products())

	all, err := uc.List(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, all.Total)
	assert.Equal(t, "Tornillos", all.Items[0].ProductName)
	assert.Equal(t, dto.UnknownProductName, all.Items[1].ProductName)

	byProduct, err := uc.ListByProduct(ctx, gone.ID)
	require.NoError(t, err)
	require.Equal(t, 1, byProduct.Total)
	assert.Equal(t, dto.UnknownProductName, byProduct.Items[0].ProductName)

	none, err := uc.ListByProduct(ctx, "sin-movimientos")
	require.NoError(t, err)
	assert.Equal(t, 0, none.Total)
	assert.NotNil(t, none.Items)
}
