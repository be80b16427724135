package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App       AppConfig
	Session   SessionConfig
	Snapshot  SnapshotConfig
	Inventory InventoryConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env         string // development, staging, production
	Name        string
	LogLevel    string
	CatalogFile string // opcional: YAML/JSON con estaciones, piezas, modelos y usuarios
}

// SessionConfig token de sesión de la CLI y coste de bcrypt.
type SessionConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
	BcryptCost int
}

// Backends de snapshot soportados.
const (
	SnapshotBackendFile   = "file"
	SnapshotBackendSQLite = "sqlite"
)

// SnapshotConfig dónde se guarda el estado entre invocaciones.
type SnapshotConfig struct {
	Backend string // file | sqlite
	Path    string
}

// InventoryConfig umbrales de inventario.
type InventoryConfig struct {
	LowStockThreshold int
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, SESSION_SECRET, SNAPSHOT_PATH, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
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

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Env:         getString(v, "APP_ENV", "development"),
			Name:        getString(v, "APP_NAME", "bikefactory"),
			LogLevel:    getString(v, "LOG_LEVEL", "info"),
			CatalogFile: getString(v, "CATALOG_FILE", ""),
		},
		Session: SessionConfig{
			Secret:     getString(v, "SESSION_SECRET", ""),
			Expiration: getInt(v, "SESSION_EXPIRATION_MINUTES", 480),
			Issuer:     getString(v, "SESSION_ISSUER", "bikefactory"),
			BcryptCost: getInt(v, "BCRYPT_COST", 10),
		},
		Snapshot: SnapshotConfig{
			Backend: strings.ToLower(getString(v, "SNAPSHOT_BACKEND", SnapshotBackendFile)),
			Path:    getString(v, "SNAPSHOT_PATH", "bikefactory.json"),
		},
		Inventory: InventoryConfig{
			LowStockThreshold: getInt(v, "INVENTORY_LOW_STOCK_THRESHOLD", 3),
		},
	}
	if cfg.Session.Secret == "" && cfg.App.Env == "development" {
		cfg.Session.Secret = devSessionSecret
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// devSessionSecret solo para APP_ENV=development; en otros entornos SESSION_SECRET es obligatorio.
const devSessionSecret = "bikefactory-dev-secret"

// Validate comprueba valores que no tienen un default sensato.
func (c *Config) Validate() error {
	switch c.Snapshot.Backend {
	case SnapshotBackendFile, SnapshotBackendSQLite:
	default:
		return fmt.Errorf("config: SNAPSHOT_BACKEND %q no soportado", c.Snapshot.Backend)
	}
	if c.Snapshot.Path == "" {
		return fmt.Errorf("config: SNAPSHOT_PATH vacío")
	}
	if c.Session.Secret == "" {
		return fmt.Errorf("config: SESSION_SECRET vacío")
	}
	if c.Session.Expiration <= 0 {
		return fmt.Errorf("config: SESSION_EXPIRATION_MINUTES debe ser positivo")
	}
	if c.Session.BcryptCost < 4 || c.Session.BcryptCost > 31 {
		return fmt.Errorf("config: BCRYPT_COST fuera de rango [4, 31]")
	}
	if c.Inventory.LowStockThreshold < 0 {
		return fmt.Errorf("config: INVENTORY_LOW_STOCK_THRESHOLD negativo")
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
