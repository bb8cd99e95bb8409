package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-tracker/pkg/config"
	"github.com/jhoicas/inventario-tracker/pkg/logger"
)

func TestOpenStorage_Memory(t *testing.T) {
	cfg := &config.Config{Storage: config.StorageConfig{Backend: config.BackendMemory}}

	st, err := openStorage(context.Background(), cfg, logger.Nop())
	require.NoError(t, err)
	defer st.close()

	list, err := st.products.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.NotNil(t, st.tx)
}

func TestOpenStorage_Desconocido(t *testing.T) {
	cfg := &config.Config{Storage: config.StorageConfig{Backend: "sqlite"}}

	_, err := openStorage(context.Background(), cfg, logger.Nop())
	assert.Error(t, err)
}

func TestOpenDependencies_SinBucketNoHayImagenes(t *testing.T) {
	cfg := &config.Config{Storage: config.StorageConfig{Backend: config.BackendMemory}}

	st, images, err := openDependencies(context.Background(), cfg, logger.Nop())
	require.NoError(t, err)
	defer st.close()
	assert.Nil(t, images)
}

func TestOpenDependencies_FalloDeGCSNoAbreAlmacenamiento(t *testing.T) {
	cfg := &config.Config{
		Storage: config.StorageConfig{Backend: config.BackendPostgres},
		DB:      config.DBConfig{DatabaseURL: "postgres://nadie@127.0.0.1:1/inventario?sslmode=disable&connect_timeout=1"},
		GCS:     config.GCSConfig{Bucket: "imagenes", CredentialsFile: filepath.Join(t.TempDir(), "no-existe.json")},
	}

	st, images, err := openDependencies(context.Background(), cfg, logger.Nop())
	require.Error(t, err)
	assert.Nil(t, st)
	assert.Nil(t, images)
	assert.ErrorContains(t, err, "Cloud Storage")
	assert.NotContains(t, err.Error(), "ping DB")
}
