/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/suparena/entitymapper/datastore/mock"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load(LoadOptions{
		EnvFile: filepath.Join(t.TempDir(), "missing.env"),
		Env:     map[string]string{},
	})
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)

	sc, err := cfg.Store("")
	require.NoError(t, err)
	require.Equal(t, BackendMemory, sc.Backend)
}

func TestLoadYAML(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := writeFile(t, dir, "entitymapper.yaml", `
default_store: primary
stores:
  primary:
    backend: dynamodb
    dynamodb:
      table: entities
      region: us-east-1
      endpoint: http://localhost:8000
  archive:
    backend: surrealdb
    surrealdb:
      endpoint: ws://localhost:8000
      username: root
      password: root
      namespace: app
      database: archive
logging:
  level: debug
  format: json
`)

	cfg, err := Load(LoadOptions{ConfigPath: path, EnvFile: filepath.Join(dir, ".env"), Env: map[string]string{}})
	require.NoError(t, err)

	require.Equal(t, "primary", cfg.DefaultStore)
	require.Equal(t, []string{"archive", "primary"}, cfg.StoreNames())
	require.Equal(t, "entities", cfg.Stores["primary"].DynamoDB.Table)
	require.Equal(t, "archive", cfg.Stores["archive"].SurrealDB.Database)
	require.Equal(t, "debug", cfg.Logging.Level)
	require.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadTOML(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := writeFile(t, dir, "entitymapper.toml", `
default_store = "main"

[stores.main]
backend = "surrealdb"

[stores.main.surrealdb]
endpoint = "ws://localhost:8000"
namespace = "app"
database = "main"
table = "records"

[logging]
level = "warn"
`)

	cfg, err := Load(LoadOptions{ConfigPath: path, EnvFile: filepath.Join(dir, ".env"), Env: map[string]string{}})
	require.NoError(t, err)
	require.Equal(t, "records", cfg.Stores["main"].SurrealDB.Table)
	require.Equal(t, "warn", cfg.Logging.Level)
	require.Equal(t, "text", cfg.Logging.Format)
}

func TestEnvOverrides(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	envFile := writeFile(t, dir, ".env", "AWS_DDB_TABLE=from-dotenv\nAWS_REGION=eu-west-1\nAWS_ACCESS_KEY=AKIA\nAWS_SECRET_KEY=secret\n")

	cfg, err := Load(LoadOptions{
		EnvFile: envFile,
		Env: map[string]string{
			"ENTITYMAPPER_BACKEND":   "dynamodb",
			"AWS_REGION":             "us-west-2",
			"ENTITYMAPPER_LOG_LEVEL": "error",
		},
	})
	require.NoError(t, err)

	sc, err := cfg.Store("")
	require.NoError(t, err)
	require.Equal(t, BackendDynamoDB, sc.Backend)
	require.Equal(t, "from-dotenv", sc.DynamoDB.Table)
	require.Equal(t, "us-west-2", sc.DynamoDB.Region)
	require.Equal(t, "AKIA", sc.DynamoDB.AccessKey)
	require.Equal(t, "error", cfg.Logging.Level)
}

func TestValidation(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	cases := map[string]map[string]string{
		"dynamodb without table":  {"ENTITYMAPPER_BACKEND": "dynamodb", "AWS_REGION": "us-east-1"},
		"dynamodb half a keypair": {"ENTITYMAPPER_BACKEND": "dynamodb", "AWS_REGION": "us-east-1", "AWS_DDB_TABLE": "t", "AWS_ACCESS_KEY": "AKIA"},
		"surrealdb without db":    {"ENTITYMAPPER_BACKEND": "surrealdb", "SURREAL_ENDPOINT": "ws://x", "SURREAL_NAMESPACE": "app"},
		"unknown backend":         {"ENTITYMAPPER_BACKEND": "redis"},
		"unknown store":           {"ENTITYMAPPER_STORE": "archive"},
		"unknown log level":       {"ENTITYMAPPER_LOG_LEVEL": "loud"},
		"bad rotation size":       {"ENTITYMAPPER_LOG_MAX_SIZE_MB": "ten"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(LoadOptions{EnvFile: filepath.Join(dir, ".env"), Env: env})
			require.Error(t, err)
			require.True(t, errors.Is(err, ErrInvalidConfig), err.Error())
		})
	}
}

func TestMalformedFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := writeFile(t, dir, "broken.yaml", "stores: [unclosed\n")

	_, err := Load(LoadOptions{ConfigPath: path, EnvFile: filepath.Join(dir, ".env"), Env: map[string]string{}})
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestOpenMemoryStore(t *testing.T) {
	t.Parallel()

	store, closeFn, err := OpenStore(context.Background(), StoreConfig{Backend: BackendMemory})
	require.NoError(t, err)
	require.IsType(t, &mock.DataStore{}, store)
	require.NoError(t, closeFn(context.Background()))

	_, _, err = OpenStore(context.Background(), StoreConfig{Backend: BackendDynamoDB})
	require.ErrorIs(t, err, ErrInvalidConfig)
}
