package kvstore

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-tracker/internal/domain"
	"github.com/jhoicas/inventario-tracker/internal/domain/entity"
	"github.com/jhoicas/inventario-tracker/internal/domain/repository"
	"github.com/jhoicas/inventario-tracker/pkg/config"
)

type mockCmdable struct {
	data      map[string]string
	msetCalls int
	msetErr   error
}

func newMockCmdable() *mockCmdable {
	return &mockCmdable{data: make(map[string]string)}
}

func (m *mockCmdable) Ping(context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", nil)
}

func (m *mockCmdable) Get(_ context.Context, key string) *redis.StringCmd {
	v, ok := m.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (m *mockCmdable) MSet(_ context.Context, values ...any) *redis.StatusCmd {
	m.msetCalls++
	if m.msetErr != nil {
		return redis.NewStatusResult("", m.msetErr)
	}
	for i := 0; i+1 < len(values); i += 2 {
		m.data[fmt.Sprint(values[i])] = fmt.Sprint(values[i+1])
	}
	return redis.NewStatusResult("OK", nil)
}

func newTestClient() (*Client, *mockCmdable) {
	mock := newMockCmdable()
	return &Client{store: mock, prefix: "inv"}, mock
}

func TestProductRepo_PersisteListaCompleta(t *testing.T) {
	ctx := context.Background()
	c, mock := newTestClient()
	repo := NewProductRepository(c)

	a := &entity.Product{Name: "A", Stock: 1, MinStock: 2, Price: decimal.RequireFromString("2.5")}
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, &entity.Product{Name: "B"}))
	assert.NotEmpty(t, a.ID)
	assert.Contains(t, mock.data["inv:productos"], `"minStock":2`)
	assert.NotContains(t, mock.data, "inv:movimientos")

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "A", list[0].Name)
	assert.True(t, list[0].Price.Equal(decimal.RequireFromString("2.5")))

	require.NoError(t, repo.Delete(ctx, a.ID))
	_, err = repo.GetByID(ctx, a.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, repo.Update(ctx, a), domain.ErrNotFound)
}

func TestTxRunner_EscribeAmbasClavesEnUnMSET(t *testing.T) {
	ctx := context.Background()
	c, mock := newTestClient()
	p := &entity.Product{Name: "A", Stock: 5}
	require.NoError(t, NewProductRepository(c).Create(ctx, p))
	mock.msetCalls = 0

	err := NewTxRunner(c).Run(ctx, func(movRepo repository.MovementRepository, productRepo repository.ProductRepository) error {
		got, err := productRepo.GetByID(ctx, p.ID)
		if err != nil {
			return err
		}
		got.Stock -= 2
		if err := movRepo.Create(ctx, &entity.Movement{ProductID: p.ID, Type: "exit", Quantity: 2, Date: time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)}); err != nil {
			return err
		}
		return productRepo.Update(ctx, got)
	})
	require.NoError(t, err)
	assert.Equal(t, 1, mock.msetCalls)
	assert.Contains(t, mock.data["inv:movimientos"], `"date":"2025-03-14"`)

	got, err := NewProductRepository(c).GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Stock)

	movs, err := NewMovementRepository(c).ListByProduct(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, movs, 1)
}

func TestTxRunner_ErrorNoEscribe(t *testing.T) {
	ctx := context.Background()
	c, mock := newTestClient()

	err := NewTxRunner(c).Run(ctx, func(movRepo repository.MovementRepository, productRepo repository.ProductRepository) error {
		_, err := productRepo.GetByID(ctx, "nope")
		return err
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Zero(t, mock.msetCalls)
	assert.Empty(t, mock.data)
}

func TestTxRunner_FalloDeMSET(t *testing.T) {
	ctx := context.Background()
	c, mock := newTestClient()
	mock.msetErr = errors.New("READONLY")

	err := NewTxRunner(c).Run(ctx, func(movRepo repository.MovementRepository, _ repository.ProductRepository) error {
		return movRepo.Create(ctx, &entity.Movement{ProductID: "p", Type: "entry", Quantity: 1})
	})
	assert.ErrorContains(t, err, "READONLY")
	assert.ErrorIs(t, err, domain.ErrStorage)
	assert.Empty(t, mock.data)
}

func TestSnapshot_DatosCorruptos(t *testing.T) {
	c, mock := newTestClient()
	mock.data["inv:productos"] = "{no es json"

	_, err := NewProductRepository(c).List(context.Background())
	assert.Error(t, err)
}

func TestOptionsFromConfig(t *testing.T) {
	_, err := optionsFromConfig(config.RedisConfig{})
	assert.Error(t, err)

	opts, err := optionsFromConfig(config.RedisConfig{URL: "redis://:secret@localhost:6380/0", DB: 3})
	require.NoError(t, err)
	assert.Equal(t, "localhost:6380", opts.Addr)
	assert.Equal(t, 3, opts.DB)

	opts, err = optionsFromConfig(config.RedisConfig{Address: "cache:6379"})
	require.NoError(t, err)
	assert.Equal(t, "cache:6379", opts.Addr)
}
