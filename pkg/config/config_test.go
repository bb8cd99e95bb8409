package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg := fromViper(viper.New())

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, BackendMemory, cfg.Storage.Backend)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, "inv", cfg.Redis.KeyPrefix)
	assert.False(t, cfg.GCS.Enabled())
	require.NoError(t, cfg.Validate())
}

func TestFromViper_LeeVariables(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "MONGO")
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("MONGO_TRANSACTIONS", "true")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("GCS_BUCKET", "imagenes")

	v := viper.New()
	v.AutomaticEnv()
	cfg := fromViper(v)

	assert.Equal(t, BackendMongo, cfg.Storage.Backend)
	assert.True(t, cfg.Mongo.Transactions)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.True(t, cfg.GCS.Enabled())
	require.NoError(t, cfg.Validate())
}

func TestValidate_BackendSinParametros(t *testing.T) {
	cfg := fromViper(viper.New())

	cfg.Storage.Backend = BackendMongo
	assert.Error(t, cfg.Validate(), "mongo sin URI debe fallar")

	cfg.Storage.Backend = BackendRedis
	assert.Error(t, cfg.Validate(), "redis sin dirección debe fallar")

	cfg.Redis.Address = "localhost:6379"
	assert.NoError(t, cfg.Validate())

	cfg.Storage.Backend = "firestore"
	assert.Error(t, cfg.Validate())
}

func TestDSN_EscapaPassword(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:w/rd", DBName: "inventario", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aw%2Frd@db:5432/inventario?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://otro"
	assert.Equal(t, "postgres://otro", c.ConnectionString())
}
