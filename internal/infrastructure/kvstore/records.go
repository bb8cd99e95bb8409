package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-tracker/internal/domain"
	"github.com/jhoicas/inventario-tracker/internal/domain/entity"
	"github.com/jhoicas/inventario-tracker/internal/infrastructure/memory"
)

type productRecord struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Stock       int             `json:"stock"`
	MinStock    int             `json:"minStock"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"imageUrl,omitempty"`
	ImageObject string          `json:"imageObject,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

type movementRecord struct {
	ID        string    `json:"id"`
	ProductID string    `json:"productId"`
	Type      string    `json:"type"`
	Quantity  int       `json:"quantity"`
	Date      string    `json:"date"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// snapshot carga ambas colecciones en un almacén en memoria para operar sobre él.
func (c *Client) snapshot(ctx context.Context) (*memory.Store, error) {
	var products []productRecord
	if err := c.load(ctx, productsKey, &products); err != nil {
		return nil, err
	}
	var movements []movementRecord
	if err := c.load(ctx, movementsKey, &movements); err != nil {
		return nil, err
	}

	st := memory.NewStore()
	for _, r := range products {
		p := entity.Product(r)
		if err := st.Products().Create(ctx, &p); err != nil {
			return nil, err
		}
	}
	for _, r := range movements {
		date, err := time.Parse(entity.DateLayout, r.Date)
		if err != nil {
			return nil, fmt.Errorf("movimiento %s: fecha %q: %w", r.ID, r.Date, err)
		}
		m := &entity.Movement{
			ID: r.ID, ProductID: r.ProductID, Type: r.Type, Quantity: r.Quantity,
			Date: date, Notes: r.Notes, CreatedAt: r.CreatedAt,
		}
		if err := st.Movements().Create(ctx, m); err != nil {
			return nil, err
		}
	}
	return st, nil
}

func (c *Client) load(ctx context.Context, name string, dst any) error {
	raw, err := c.store.Get(ctx, c.key(name)).Result()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("get %s: %w: %w", name, domain.ErrStorage, err)
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

func encodeProducts(ctx context.Context, st *memory.Store) (string, error) {
	list, err := st.Products().List(ctx)
	if err != nil {
		return "", err
	}
	records := make([]productRecord, 0, len(list))
	for _, p := range list {
		records = append(records, productRecord(*p))
	}
	b, err := json.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("encode productos: %w", err)
	}
	return string(b), nil
}

func encodeMovements(ctx context.Context, st *memory.Store) (string, error) {
	list, err := st.Movements().List(ctx)
	if err != nil {
		return "", err
	}
	records := make([]movementRecord, 0, len(list))
	for _, m := range list {
		records = append(records, movementRecord{
			ID: m.ID, ProductID: m.ProductID, Type: m.Type, Quantity: m.Quantity,
			Date: m.Date.Format(entity.DateLayout), Notes: m.Notes, CreatedAt: m.CreatedAt,
		})
	}
	b, err := json.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("encode movimientos: %w", err)
	}
	return string(b), nil
}

// mutate carga el estado, aplica fn y guarda las colecciones indicadas. Con ambas se usa un
// único MSET, que Redis aplica de forma atómica.
func (c *Client) mutate(ctx context.Context, products, movements bool, fn func(st *memory.Store) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	st, err := c.snapshot(ctx)
	if err != nil {
		return err
	}
	if err := fn(st); err != nil {
		return err
	}

	pairs := make([]any, 0, 4)
	if products {
		v, err := encodeProducts(ctx, st)
		if err != nil {
			return err
		}
		pairs = append(pairs, c.key(productsKey), v)
	}
	if movements {
		v, err := encodeMovements(ctx, st)
		if err != nil {
			return err
		}
		pairs = append(pairs, c.key(movementsKey), v)
	}
	if len(pairs) == 0 {
		return nil
	}
	if err := c.store.MSet(ctx, pairs...).Err(); err != nil {
		return fmt.Errorf("mset: %w: %w", domain.ErrStorage, err)
	}
	return nil
}

// read carga el estado sin escribir.
func (c *Client) read(ctx context.Context) (*memory.Store, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot(ctx)
}
