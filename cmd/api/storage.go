package main

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventario-tracker/internal/application/inventory"
	"github.com/jhoicas/inventario-tracker/internal/domain/repository"
	"github.com/jhoicas/inventario-tracker/internal/infrastructure/gcs"
	"github.com/jhoicas/inventario-tracker/internal/infrastructure/kvstore"
	"github.com/jhoicas/inventario-tracker/internal/infrastructure/memory"
	"github.com/jhoicas/inventario-tracker/internal/infrastructure/mongodb"
	"github.com/jhoicas/inventario-tracker/internal/infrastructure/postgres"
	"github.com/jhoicas/inventario-tracker/pkg/config"
	"github.com/jhoicas/inventario-tracker/pkg/logger"
)

// storage puertos de persistencia del backend elegido con STORAGE_BACKEND.
type storage struct {
	products  repository.ProductRepository
	movements repository.MovementRepository
	tx        inventory.TxRunner
	close     func()
}

// openDependencies abre las imágenes y después el almacenamiento; ante un error no queda nada abierto.
func openDependencies(ctx context.Context, cfg *config.Config, log *logger.Logger) (*storage, repository.ImageStorage, error) {
	images, err := openImages(ctx, cfg.GCS, log)
	if err != nil {
		return nil, nil, err
	}
	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}
	return store, images, nil
}

// openImages devuelve nil si GCS_BUCKET está vacío.
func openImages(ctx context.Context, cfg config.GCSConfig, log *logger.Logger) (repository.ImageStorage, error) {
	if !cfg.Enabled() {
		log.Warn().Msg("GCS_BUCKET vacío: las imágenes de producto se ignorarán")
		return nil, nil
	}
	images, err := gcs.NewImageStorage(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("cliente de Cloud Storage: %w", err)
	}
	log.Info().Str("bucket", cfg.Bucket).Msg("almacenamiento de imágenes habilitado")
	return images, nil
}

func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (*storage, error) {
	switch cfg.Storage.Backend {
	case config.BackendPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, err
		}
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		return &storage{
			products:  postgres.NewProductRepository(pool),
			movements: postgres.NewMovementRepository(pool),
			tx:        postgres.NewTxRunner(pool),
			close:     pool.Close,
		}, nil

	case config.BackendMongo:
		client, err := mongodb.Connect(ctx, cfg.Mongo)
		if err != nil {
			return nil, err
		}
		if !cfg.Mongo.Transactions {
			log.Warn().Msg("MONGO_TRANSACTIONS=false: movimiento y stock se escriben por separado")
		}
		return &storage{
			products:  mongodb.NewProductRepository(client.Database),
			movements: mongodb.NewMovementRepository(client.Database),
			tx:        mongodb.NewTxRunner(client, cfg.Mongo.Transactions),
			close: func() {
				if err := client.Close(context.Background()); err != nil {
					log.Error().Err(err).Msg("cerrar MongoDB")
				}
			},
		}, nil

	case config.BackendRedis:
		client, err := kvstore.New(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		return &storage{
			products:  kvstore.NewProductRepository(client),
			movements: kvstore.NewMovementRepository(client),
			tx:        kvstore.NewTxRunner(client),
			close: func() {
				if err := client.Close(); err != nil {
					log.Error().Err(err).Msg("cerrar Redis")
				}
			},
		}, nil

	case config.BackendMemory:
		log.Warn().Msg("STORAGE_BACKEND=memory: los datos se pierden al reiniciar")
		store := memory.NewStore()
		return &storage{
			products:  store.Products(),
			movements: store.Movements(),
			tx:        store.TxRunner(),
			close:     func() {},
		}, nil
	}
	return nil, fmt.Errorf("backend de almacenamiento desconocido %q", cfg.Storage.Backend)
}
