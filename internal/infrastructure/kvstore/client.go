// Package kvstore persiste productos y movimientos en Redis como dos documentos JSON completos
// (<prefijo>:productos y <prefijo>:movimientos). Cada escritura reemplaza la colección entera.
package kvstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/inventario-tracker/pkg/config"
)

const (
	productsKey  = "productos"
	movementsKey = "movimientos"
)

type cmdable interface {
	Ping(context.Context) *redis.StatusCmd
	Get(context.Context, string) *redis.StringCmd
	MSet(context.Context, ...any) *redis.StatusCmd
}

// Client envuelve la conexión Redis y serializa los read-modify-write del proceso.
// Entre procesos distintos gana la última escritura.
type Client struct {
	store  cmdable
	raw    *redis.Client
	prefix string
	mu     sync.Mutex
}

// New abre la conexión y verifica con un ping.
func New(ctx context.Context, cfg config.RedisConfig) (*Client, error) {
	opts, err := optionsFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	raw := redis.NewClient(opts)
	if err := raw.Ping(ctx).Err(); err != nil {
		_ = raw.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &Client{store: raw, raw: raw, prefix: cfg.KeyPrefix}, nil
}

func optionsFromConfig(cfg config.RedisConfig) (*redis.Options, error) {
	if cfg.URL == "" && cfg.Address == "" {
		return nil, errors.New("redis url or address is required")
	}
	if cfg.URL != "" {
		opts, err := redis.ParseURL(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("parsing redis url: %w", err)
		}
		if opts.DB == 0 {
			opts.DB = cfg.DB
		}
		return opts, nil
	}
	return &redis.Options{Addr: cfg.Address, Password: cfg.Password, DB: cfg.DB}, nil
}

// Ping verifica la conexión.
func (c *Client) Ping(ctx context.Context) error {
	return c.store.Ping(ctx).Err()
}

// Close cierra la conexión subyacente si existe.
func (c *Client) Close() error {
	if c.raw == nil {
		return nil
	}
	return c.raw.Close()
}

func (c *Client) key(name string) string {
	if c.prefix == "" {
		return name
	}
	return strings.Join([]string{c.prefix, name}, ":")
}
