/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Back end names accepted in StoreConfig.Backend.
const (
	BackendMemory    = "memory"
	BackendDynamoDB  = "dynamodb"
	BackendSurrealDB = "surrealdb"
)

const (
	defaultStoreName = "default"
	defaultLogLevel  = "info"
	defaultLogFormat = "text"
	defaultEnvFile   = ".env"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config is the configuration of the command-line tool: named stores and logging.
type Config struct {
	DefaultStore string                 `yaml:"default_store" toml:"default_store"`
	Stores       map[string]StoreConfig `yaml:"stores" toml:"stores"`
	Logging      LoggingConfig          `yaml:"logging" toml:"logging"`
}

// StoreConfig selects and configures one back end.
type StoreConfig struct {
	Backend   string          `yaml:"backend" toml:"backend"`
	DynamoDB  DynamoDBConfig  `yaml:"dynamodb" toml:"dynamodb"`
	SurrealDB SurrealDBConfig `yaml:"surrealdb" toml:"surrealdb"`
}

// LogValue lists the settings of the selected back end. Credentials are included
// under their own names so that a redacting handler can mask them.
func (s StoreConfig) LogValue() slog.Value {
	attrs := []slog.Attr{slog.String("backend", s.Backend)}
	switch s.Backend {
	case BackendDynamoDB:
		attrs = append(attrs,
			slog.String("table", s.DynamoDB.Table),
			slog.String("region", s.DynamoDB.Region),
			slog.String("endpoint", s.DynamoDB.Endpoint),
			slog.String("access_key", s.DynamoDB.AccessKey),
			slog.String("secret_key", s.DynamoDB.SecretKey),
		)
	case BackendSurrealDB:
		attrs = append(attrs,
			slog.String("endpoint", s.SurrealDB.Endpoint),
			slog.String("namespace", s.SurrealDB.Namespace),
			slog.String("database", s.SurrealDB.Database),
			slog.String("table", s.SurrealDB.Table),
			slog.String("username", s.SurrealDB.Username),
			slog.String("password", s.SurrealDB.Password),
		)
	}
	return slog.GroupValue(attrs...)
}

type DynamoDBConfig struct {
	Table     string `yaml:"table" toml:"table"`
	Region    string `yaml:"region" toml:"region"`
	Endpoint  string `yaml:"endpoint" toml:"endpoint"`
	AccessKey string `yaml:"access_key" toml:"access_key"`
	SecretKey string `yaml:"secret_key" toml:"secret_key"`
}

type SurrealDBConfig struct {
	Endpoint  string `yaml:"endpoint" toml:"endpoint"`
	Username  string `yaml:"username" toml:"username"`
	Password  string `yaml:"password" toml:"password"`
	Namespace string `yaml:"namespace" toml:"namespace"`
	Database  string `yaml:"database" toml:"database"`
	Table     string `yaml:"table" toml:"table"`
}

type LoggingConfig struct {
	Level     string `yaml:"level" toml:"level"`
	Format    string `yaml:"format" toml:"format"`
	File      string `yaml:"file" toml:"file"`
	MaxSizeMB int    `yaml:"max_size_mb" toml:"max_size_mb"`
	MaxFiles  int    `yaml:"max_files" toml:"max_files"`
}

// LoadOptions controls where Load reads from.
type LoadOptions struct {
	// ConfigPath is a YAML or, with a .toml extension, TOML file. A missing file is
	// not an error.
	ConfigPath string
	// EnvFile is a dotenv file, ".env" by default. A missing file is not an error.
	EnvFile string
	// Env replaces the process environment when non-nil.
	Env map[string]string
}

// Default returns a configuration with a single in-memory store.
func Default() Config {
	return Config{
		DefaultStore: defaultStoreName,
		Stores: map[string]StoreConfig{
			defaultStoreName: {Backend: BackendMemory},
		},
		Logging: LoggingConfig{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
	}
}

// Load builds the configuration from defaults, the config file, the dotenv file and
// the environment, in that order of increasing precedence, then validates it.
func Load(opts LoadOptions) (Config, error) {
	cfg := Default()

	if err := loadFile(opts.ConfigPath, &cfg); err != nil {
		return Config{}, err
	}

	env, err := environment(opts)
	if err != nil {
		return Config{}, err
	}
	if err := applyEnvOverrides(&cfg, env); err != nil {
		return Config{}, err
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Store returns the store configured under name; an empty name selects the default store.
func (c Config) Store(name string) (StoreConfig, error) {
	if name == "" {
		name = c.DefaultStore
	}
	sc, ok := c.Stores[name]
	if !ok {
		return StoreConfig{}, fmt.Errorf("%w: store %q is not configured", ErrInvalidConfig, name)
	}
	return sc, nil
}

// StoreNames returns the configured store names, sorted.
func (c Config) StoreNames() []string {
	names := make([]string, 0, len(c.Stores))
	for n := range c.Stores {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func loadFile(path string, cfg *Config) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config file %q: %w", path, err)
	}

	// Stores listed in the file replace the default store set.
	var file Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, &file)
	default:
		err = yaml.Unmarshal(data, &file)
	}
	if err != nil {
		return fmt.Errorf("%w: parse %q: %v", ErrInvalidConfig, path, err)
	}

	if file.DefaultStore != "" {
		cfg.DefaultStore = file.DefaultStore
	}
	if len(file.Stores) > 0 {
		cfg.Stores = file.Stores
	}
	mergeLogging(&cfg.Logging, file.Logging)
	return nil
}

func mergeLogging(dst *LoggingConfig, src LoggingConfig) {
	if src.Level != "" {
		dst.Level = src.Level
	}
	if src.Format != "" {
		dst.Format = src.Format
	}
	if src.File != "" {
		dst.File = src.File
	}
	if src.MaxSizeMB != 0 {
		dst.MaxSizeMB = src.MaxSizeMB
	}
	if src.MaxFiles != 0 {
		dst.MaxFiles = src.MaxFiles
	}
}

// environment merges the dotenv file under the process (or injected) environment.
func environment(opts LoadOptions) (map[string]string, error) {
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = defaultEnvFile
	}

	env := map[string]string{}
	dotenv, err := godotenv.Read(envFile)
	switch {
	case err == nil:
		for k, v := range dotenv {
			env[k] = v
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("%w: read %q: %v", ErrInvalidConfig, envFile, err)
	}

	if opts.Env != nil {
		for k, v := range opts.Env {
			env[k] = v
		}
		return env, nil
	}
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			env[k] = v
		}
	}
	return env, nil
}

// applyEnvOverrides applies environment variables to the default store and logging.
func applyEnvOverrides(cfg *Config, env map[string]string) error {
	if value, ok := env["ENTITYMAPPER_STORE"]; ok && value != "" {
		cfg.DefaultStore = value
	}

	sc := cfg.Stores[cfg.DefaultStore]
	if value, ok := env["ENTITYMAPPER_BACKEND"]; ok {
		sc.Backend = value
	}

	setString(env, "AWS_DDB_TABLE", &sc.DynamoDB.Table)
	setString(env, "AWS_REGION", &sc.DynamoDB.Region)
	setString(env, "AWS_DDB_ENDPOINT", &sc.DynamoDB.Endpoint)
	setString(env, "AWS_ACCESS_KEY", &sc.DynamoDB.AccessKey)
	setString(env, "AWS_SECRET_KEY", &sc.DynamoDB.SecretKey)

	setString(env, "SURREAL_ENDPOINT", &sc.SurrealDB.Endpoint)
	setString(env, "SURREAL_USER", &sc.SurrealDB.Username)
	setString(env, "SURREAL_PASSWORD", &sc.SurrealDB.Password)
	setString(env, "SURREAL_NAMESPACE", &sc.SurrealDB.Namespace)
	setString(env, "SURREAL_DATABASE", &sc.SurrealDB.Database)
	setString(env, "SURREAL_TABLE", &sc.SurrealDB.Table)

	if sc.Backend != "" {
		if cfg.Stores == nil {
			cfg.Stores = map[string]StoreConfig{}
		}
		cfg.Stores[cfg.DefaultStore] = sc
	}

	setString(env, "ENTITYMAPPER_LOG_LEVEL", &cfg.Logging.Level)
	setString(env, "ENTITYMAPPER_LOG_FORMAT", &cfg.Logging.Format)
	setString(env, "ENTITYMAPPER_LOG_FILE", &cfg.Logging.File)
	if value, ok := env["ENTITYMAPPER_LOG_MAX_SIZE_MB"]; ok {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: parse ENTITYMAPPER_LOG_MAX_SIZE_MB: %v", ErrInvalidConfig, err)
		}
		cfg.Logging.MaxSizeMB = parsed
	}
	return nil
}

func setString(env map[string]string, name string, target *string) {
	if value, ok := env[name]; ok && value != "" {
		*target = value
	}
}

// validate ensures every configured store is usable.
func (c Config) validate() error {
	if _, ok := c.Stores[c.DefaultStore]; !ok {
		return fmt.Errorf("%w: default store %q is not configured", ErrInvalidConfig, c.DefaultStore)
	}
	for _, name := range c.StoreNames() {
		if err := c.Stores[name].validate(); err != nil {
			return fmt.Errorf("%w: store %q: %v", ErrInvalidConfig, name, err)
		}
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, c.Logging.Level)
	}
	if c.Logging.MaxSizeMB < 0 || c.Logging.MaxFiles < 0 {
		return fmt.Errorf("%w: log rotation limits must not be negative", ErrInvalidConfig)
	}
	return nil
}

func (s StoreConfig) validate() error {
	switch s.Backend {
	case BackendMemory:
		return nil
	case BackendDynamoDB:
		if s.DynamoDB.Table == "" {
			return errors.New("dynamodb.table is required")
		}
		if s.DynamoDB.Region == "" {
			return errors.New("dynamodb.region is required")
		}
		if (s.DynamoDB.AccessKey == "") != (s.DynamoDB.SecretKey == "") {
			return errors.New("dynamodb.access_key and dynamodb.secret_key must be set together")
		}
		return nil
	case BackendSurrealDB:
		if s.SurrealDB.Endpoint == "" {
			return errors.New("surrealdb.endpoint is required")
		}
		if s.SurrealDB.Namespace == "" || s.SurrealDB.Database == "" {
			return errors.New("surrealdb.namespace and surrealdb.database are required")
		}
		return nil
	case "":
		return errors.New("backend is required")
	default:
		return fmt.Errorf("unknown backend %q", s.Backend)
	}
}
