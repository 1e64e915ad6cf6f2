package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/url"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// this is a pointer so that if someone attempts to use it before loading it will
// panic and force them to load it first.
// it is also private so that it cannot be modified after loading.
var _loaded *Config

// Config is the main configuration structure
type Config struct {
	Common Common `yaml:"common"`
}

const defaultConfigFile = "userdir.yaml"

// Store types
const (
	StoreTypeMemory   = "memory"
	StoreTypeSQLite   = "sqlite"
	StoreTypePostgres = "postgres"
)

// Load loads the configuration following proper precedence: defaults → config file → environment variables.
// The file is named by USERDIR_CONFIG_FILE, falling back to userdir.yaml.
func Load() error {
	return LoadWithFile("")
}

// LoadWithFile is Load with an explicit config file. An explicitly named file
// must exist; only the userdir.yaml fallback may be missing. Values are not
// validated; call Validate once all overrides are in.
func LoadWithFile(configFile string) error {
	// .env only feeds the environment; a missing file is fine
	_ = godotenv.Load()

	cfg := defaultConfig
	_loaded = &cfg

	if configFile == "" {
		configFile = os.Getenv("USERDIR_CONFIG_FILE")
	}

	if configFile == "" {
		if err := LoadFromFile(defaultConfigFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	} else if err := LoadFromFile(configFile); err != nil {
		return err
	}

	ApplyEnvOverrides()

	return nil
}

func LoadDefault() {
	config := defaultConfig
	_loaded = &config
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults
	cfg := defaultConfig

	// Merge YAML values over defaults
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	_loaded = &cfg
	return nil
}

// set sane defaults for all of the config options. when loading the config from
// the file, any options that are not set will be set to these defaults.
var defaultConfig = Config{
	Common: Common{
		Log: logConfig{
			Level:  "info",
			Format: "console",
		},
		Store: storeConfig{
			Type:       StoreTypeMemory,
			SQLitePath: "userdir.db",
		},
		Postgres: postgresConfig{
			User:               "postgres",
			Password:           "postgres",
			Host:               "localhost",
			Port:               5432,
			Database:           "userdir",
			MaxOpenConnections: 10,
		},
		Directory: directoryConfig{
			SeedFile: "",
		},
	},
}

type Common struct {
	Log       logConfig       `yaml:"log"`
	Store     storeConfig     `yaml:"store"`
	Postgres  postgresConfig  `yaml:"postgres"`
	Directory directoryConfig `yaml:"directory"`
}

// Validate checks values that cannot be fixed by falling back to defaults
func (c *Config) Validate() error {
	switch c.Common.Store.Type {
	case StoreTypeMemory:
	case StoreTypeSQLite:
		if c.Common.Store.SQLitePath == "" {
			return fmt.Errorf("store.sqlite_path is required for the sqlite store")
		}
	case StoreTypePostgres:
		if c.Common.Postgres.Host == "" || c.Common.Postgres.Database == "" {
			return fmt.Errorf("postgres.host and postgres.database are required for the postgres store")
		}
	default:
		return fmt.Errorf("unknown store.type %q (expected memory, sqlite or postgres)", c.Common.Store.Type)
	}

	if c.Common.Postgres.MaxOpenConnections < 0 {
		return fmt.Errorf("postgres.max_open_connections cannot be negative")
	}

	return nil
}

type logConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "json" or "console"
}

type storeConfig struct {
	Type       string `yaml:"type"`        // "memory", "sqlite" or "postgres"
	SQLitePath string `yaml:"sqlite_path"` // file path or sqlite URI
}

type postgresConfig struct {
	User               string `yaml:"user"`
	Password           string `yaml:"password"`
	Host               string `yaml:"host"`
	Port               int    `yaml:"port"`
	Database           string `yaml:"database"`
	MaxOpenConnections int    `yaml:"max_open_connections"`
}

func (c postgresConfig) DSN() string {
	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Path:     "/" + c.Database,
		RawQuery: "sslmode=disable",
	}
	return dsn.String()
}

type directoryConfig struct {
	SeedFile string `yaml:"seed_file"` // YAML file with users loaded on start
}

// there should be a getter for each top level field in the config struct.
// these getters will panic if the config has not been loaded.

func Logger() logConfig {
	if _loaded == nil {
		panic("config not loaded - call Load() first")
	}
	return _loaded.Common.Log
}

func Store() storeConfig {
	if _loaded == nil {
		panic("config not loaded - call Load() first")
	}
	return _loaded.Common.Store
}

func Postgres() postgresConfig {
	if _loaded == nil {
		panic("config not loaded - call Load() first")
	}
	return _loaded.Common.Postgres
}

func Directory() directoryConfig {
	if _loaded == nil {
		panic("config not loaded - call Load() first")
	}
	return _loaded.Common.Directory
}

func Get() *Config {
	if _loaded == nil {
		panic("config not loaded - call Load() first")
	}
	return _loaded
}

// Set replaces a single value after loading. Used by the CLI for flag overrides.
func Set(apply func(c *Config)) {
	if _loaded == nil {
		panic("config not loaded - call Load() first")
	}
	apply(_loaded)
}

func ApplyEnvOverrides() {
	if _loaded == nil {
		return
	}

	if level := os.Getenv("USERDIR_LOG_LEVEL"); level != "" {
		_loaded.Common.Log.Level = level
	}
	if format := os.Getenv("USERDIR_LOG_FORMAT"); format != "" {
		_loaded.Common.Log.Format = format
	}

	if storeType := os.Getenv("USERDIR_STORE_TYPE"); storeType != "" {
		_loaded.Common.Store.Type = storeType
	}
	if sqlitePath := os.Getenv("USERDIR_SQLITE_PATH"); sqlitePath != "" {
		_loaded.Common.Store.SQLitePath = sqlitePath
	}

	if dbHost := os.Getenv("USERDIR_DB_HOST"); dbHost != "" {
		_loaded.Common.Postgres.Host = dbHost
	}
	if dbPort := os.Getenv("USERDIR_DB_PORT"); dbPort != "" {
		if port, err := strconv.Atoi(dbPort); err == nil {
			_loaded.Common.Postgres.Port = port
		}
	}
	if dbUser := os.Getenv("USERDIR_DB_USER"); dbUser != "" {
		_loaded.Common.Postgres.User = dbUser
	}
	if dbPassword := os.Getenv("USERDIR_DB_PASSWORD"); dbPassword != "" {
		_loaded.Common.Postgres.Password = dbPassword
	}
	if dbName := os.Getenv("USERDIR_DB_NAME"); dbName != "" {
		_loaded.Common.Postgres.Database = dbName
	}

	if seedFile := os.Getenv("USERDIR_SEED_FILE"); seedFile != "" {
		_loaded.Common.Directory.SeedFile = seedFile
	}
}
