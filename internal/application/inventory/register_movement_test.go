package inventory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-tracker/internal/application/dto"
	"github.com/jhoicas/inventario-tracker/internal/application/inventory"
	"github.com/jhoicas/inventario-tracker/internal/domain"
	"github.com/jhoicas/inventario-tracker/internal/domain/entity"
	"github.com/jhoicas/inventario-tracker/internal/domain/repository"
	"github.com/jhoicas/inventario-tracker/internal/infrastructure/memory"
	"github.com/jhoicas/inventario-tracker/pkg/metrics"
)

var movDate = time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)

func seedProduct(t *testing.T, store *memory.Store, stock int) *entity.Product {
	t.Helper()
	p := &entity.Product{Name: "Tornillos", Stock: stock, MinStock: 2, Price: decimal.NewFromInt(3)}
	require.NoError(t, store.Products().Create(context.Background(), p))
	return p
}

func TestRegisterMovement_EntradaSumaStock(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	p := seedProduct(t, store, 10)
	uc := inventory.NewRegisterMovementUseCase(store.TxRunner(), nil, nil)

	mov, updated, err := uc.RegisterMovement(ctx, inventory.MovementInputDTO{
		ProductID: p.ID, Type: entity.MovementTypeEntry, Quantity: 5, Date: movDate, Notes: "  compra  ",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, mov.ID)
	assert.Equal(t, "compra", mov.Notes)
	assert.Equal(t, 15, updated.Stock)

	got, err := store.Products().GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 15, got.Stock)

	movs, err := store.Movements().ListByProduct(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, 5, movs[0].Quantity)
}

func TestRegisterMovement_SalidaPuedeDejarStockNegativo(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	p := seedProduct(t, store, 3)
	uc := inventory.NewRegisterMovementUseCase(store.TxRunner(), nil, nil)

	_, updated, err := uc.RegisterMovement(ctx, inventory.MovementInputDTO{
		ProductID: p.ID, Type: entity.MovementTypeExit, Quantity: 5, Date: movDate,
	})
	require.NoError(t, err)
	assert.Equal(t, -2, updated.Stock)
}

func TestRegisterMovement_ProductoInexistenteNoEscribe(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	uc := inventory.NewRegisterMovementUseCase(store.TxRunner(), nil, nil)

	_, _, err := uc.RegisterMovement(ctx, inventory.MovementInputDTO{
		ProductID: "no-existe", Type: entity.MovementTypeEntry, Quantity: 1, Date: movDate,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	movs, err := store.Movements().List(ctx)
	require.NoError(t, err)
	assert.Empty(t, movs)
}

func TestRegisterMovement_Validacion(t *testing.T) {
	uc := inventory.NewRegisterMovementUseCase(memory.NewStore().TxRunner(), nil, nil)

	_, _, err := uc.RegisterMovement(context.Background(), inventory.MovementInputDTO{Type: "ADJUSTMENT"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Contains(t, ve.Fields, "product_id")
	assert.Contains(t, ve.Fields, "type")
	assert.Contains(t, ve.Fields, "quantity")
	assert.Contains(t, ve.Fields, "date")
}

// failingTx envuelve el runner en memoria y hace fallar la actualización del producto.
type failingTx struct {
	inner inventory.TxRunner
}

type failingProductRepo struct {
	repository.ProductRepository
}

func (failingProductRepo) Update(context.Context, *entity.Product) error {
	return errors.New("disco lleno")
}

func (f failingTx) Run(ctx context.Context, fn func(repository.MovementRepository, repository.ProductRepository) error) error {
	return f.inner.Run(ctx, func(movRepo repository.MovementRepository, productRepo repository.ProductRepository) error {
		return fn(movRepo, failingProductRepo{productRepo})
	})
}

func TestRegisterMovement_FalloEnProductoDeshaceMovimiento(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	p := seedProduct(t, store, 10)
	reg := prometheus.NewRegistry()
	m := metrics.NewInventoryMetrics(reg)
	uc := inventory.NewRegisterMovementUseCase(failingTx{inner: store.TxRunner()}, m, nil)

	_, _, err := uc.RegisterMovement(ctx, inventory.MovementInputDTO{
		ProductID: p.ID, Type: entity.MovementTypeEntry, Quantity: 5, Date: movDate,
	})
	require.Error(t, err)

	movs, err := store.Movements().List(ctx)
	require.NoError(t, err)
	assert.Empty(t, movs)
	got, err := store.Products().GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, got.Stock)

	total, err := testutil.GatherAndCount(reg, "inventory_operation_failures_total")
	require.NoError(t, err)
	assert.Equal(t, 1, total)
}

func TestRegisterMovementFromRequest(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	p := seedProduct(t, store, 1)
	uc := inventory.NewRegisterMovementUseCase(store.TxRunner(), nil, nil)

	out, err := uc.RegisterMovementFromRequest(ctx, dto.RegisterMovementRequest{
		ProductID: p.ID, Type: "exit", Quantity: 1, Date: "2025-03-14",
	})
	require.NoError(t, err)
	assert.Equal(t, "Tornillos", out.ProductName)
	assert.Equal(t, "2025-03-14", out.Date)

	_, err = uc.RegisterMovementFromRequest(ctx, dto.RegisterMovementRequest{
		ProductID: p.ID, Type: "exit", Quantity: 1, Date: "2025-02-30",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
