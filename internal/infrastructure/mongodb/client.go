// Package mongodb implementa los puertos de persistencia sobre MongoDB (colecciones productos y movimientos).
package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jhoicas/inventario-tracker/pkg/config"
)

// Nombres de colección.
const (
	ProductsCollection  = "productos"
	MovementsCollection = "movimientos"
)

// Client agrupa el cliente y la base de datos configurada.
type Client struct {
	Client   *mongo.Client
	Database *mongo.Database
}

// Connect abre la conexión y verifica con un ping de 5 s.
func Connect(ctx context.Context, cfg config.MongoConfig) (*Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	return &Client{Client: client, Database: client.Database(cfg.Database)}, nil
}

// Close desconecta el cliente.
func (c *Client) Close(ctx context.Context) error {
	return c.Client.Disconnect(ctx)
}

// bind asocia la sesión (si hay) al contexto de la operación.
func bind(ctx context.Context, sess mongo.Session) context.Context {
	if sess == nil {
		return ctx
	}
	return mongo.NewSessionContext(ctx, sess)
}
