package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Backends de persistencia soportados.
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendMongo    = "mongo"
	BackendRedis    = "redis"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	HTTP    HTTPConfig
	Storage StorageConfig
	DB      DBConfig
	Mongo   MongoConfig
	Redis   RedisConfig
	GCS     GCSConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string // trace, debug, info, warn, error
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host        string
	Port        int
	DocsEnabled bool // sirve Swagger UI en /docs a partir de docs/swagger.json
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// StorageConfig selecciona el adaptador de persistencia.
type StorageConfig struct {
	Backend string // memory, postgres, mongo, redis
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// MongoConfig configuración de la base documental.
type MongoConfig struct {
	URI          string
	Database     string
	Transactions bool // requiere replica set; si es false las escrituras del movimiento son secuenciales
}

// RedisConfig configuración del almacenamiento clave-valor.
type RedisConfig struct {
	URL       string
	Address   string
	Password  string
	DB        int
	KeyPrefix string
}

// GCSConfig configuración del almacenamiento de imágenes. Bucket vacío = imágenes deshabilitadas.
type GCSConfig struct {
	Bucket          string
	CredentialsFile string
	Endpoint        string // opcional, p. ej. emulador local
	PublicBaseURL   string // prefijo de las URLs públicas; por defecto https://storage.googleapis.com
}

// Enabled indica si hay bucket configurado.
func (c GCSConfig) Enabled() bool {
	return c.Bucket != ""
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, STORAGE_BACKEND, MONGO_URI, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := fromViper(v)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "inventario-tracker"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		HTTP: HTTPConfig{
			Host:        getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:        getInt(v, "HTTP_PORT", 8080),
			DocsEnabled: getBool(v, "HTTP_DOCS_ENABLED", false),
		},
		Storage: StorageConfig{
			Backend: strings.ToLower(getString(v, "STORAGE_BACKEND", BackendMemory)),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "inventario"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		Mongo: MongoConfig{
			URI:          getString(v, "MONGO_URI", ""),
			Database:     getString(v, "MONGO_DB_NAME", "inventario"),
			Transactions: getBool(v, "MONGO_TRANSACTIONS", false),
		},
		Redis: RedisConfig{
			URL:       getString(v, "REDIS_URL", ""),
			Address:   getString(v, "REDIS_ADDR", ""),
			Password:  getString(v, "REDIS_PASSWORD", ""),
			DB:        getInt(v, "REDIS_DB", 0),
			KeyPrefix: getString(v, "REDIS_KEY_PREFIX", "inv"),
		},
		GCS: GCSConfig{
			Bucket:          getString(v, "GCS_BUCKET", ""),
			CredentialsFile: getString(v, "GCS_CREDENTIALS_FILE", ""),
			Endpoint:        getString(v, "GCS_ENDPOINT", ""),
			PublicBaseURL:   getString(v, "GCS_PUBLIC_BASE_URL", "https://storage.googleapis.com"),
		},
	}
}

// Validate verifica que el backend elegido tenga sus parámetros mínimos.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendMemory, BackendPostgres:
	case BackendMongo:
		if c.Mongo.URI == "" {
			return fmt.Errorf("config: MONGO_URI requerido para STORAGE_BACKEND=mongo")
		}
	case BackendRedis:
		if c.Redis.URL == "" && c.Redis.Address == "" {
			return fmt.Errorf("config: REDIS_URL o REDIS_ADDR requerido para STORAGE_BACKEND=redis")
		}
	default:
		return fmt.Errorf("config: STORAGE_BACKEND desconocido %q", c.Storage.Backend)
	}
	if c.HTTP.Port <= 0 {
		return fmt.Errorf("config: HTTP_PORT inválido %d", c.HTTP.Port)
	}
	return nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(v.GetString(key))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		return v.GetBool(key)
	}
	return def
}
