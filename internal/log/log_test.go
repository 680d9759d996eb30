/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/suparena/entitymapper/config"
)

func TestRedactionSecretKeyField(t *testing.T) {
	t.Parallel()
	out := logSingleField(t, "secret_key", "wJalrXUtnFEMI")
	require.Equal(t, "[REDACTED]", out["secret_key"])
}

func TestRedactionAccessKeyField(t *testing.T) {
	t.Parallel()
	out := logSingleField(t, "access_key", "AKIAEXAMPLE")
	require.Equal(t, "[REDACTED]", out["access_key"])
}

func TestRedactionPasswordField(t *testing.T) {
	t.Parallel()
	out := logSingleField(t, "Password", "root")
	require.Equal(t, "[REDACTED]", out["Password"])
}

func TestNonSensitiveFieldsPassThrough(t *testing.T) {
	t.Parallel()
	out := logSingleField(t, "region", "us-east-1")
	require.Equal(t, "us-east-1", out["region"])
}

func TestRedactionInGroupsAndWithAttrs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	base := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	logger := slog.New(NewRedactingHandler(base)).With("token", "abc")
	logger.Info("connect", slog.Group("surreal", slog.String("password", "root"), slog.String("endpoint", "ws://db")))

	out := map[string]any{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &out))
	require.Equal(t, "[REDACTED]", out["token"])
	group := out["surreal"].(map[string]any)
	require.Equal(t, "[REDACTED]", group["password"])
	require.Equal(t, "ws://db", group["endpoint"])
}

func TestRedactionMatchesNameVariants(t *testing.T) {
	t.Parallel()
	for _, name := range []string{"AWS_SECRET_KEY", "SecretKey", "dynamodb.secret_key", "session-token", "surreal_password"} {
		out := logSingleField(t, name, "hunter2")
		require.Equalf(t, "[REDACTED]", out[name], "field %s", name)
	}
	out := logSingleField(t, "secret_key", "")
	require.Equal(t, "", out["secret_key"])
}

func TestRedactionMasksURLPasswords(t *testing.T) {
	t.Parallel()
	out := logSingleField(t, "endpoint", "ws://root:hunter2@db.local:8000/rpc")
	require.Equal(t, "ws://root:xxxxx@db.local:8000/rpc", out["endpoint"])

	out = logSingleField(t, "endpoint", "https://dynamodb.us-east-1.amazonaws.com")
	require.Equal(t, "https://dynamodb.us-east-1.amazonaws.com", out["endpoint"])
}

func TestRedactionResolvesStoreConfig(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(NewRedactingHandler(slog.NewJSONHandler(&buf, nil)))
	logger.Info("store opened", "config", config.StoreConfig{
		Backend: config.BackendDynamoDB,
		DynamoDB: config.DynamoDBConfig{
			Table:     "entities",
			Region:    "us-east-1",
			AccessKey: "AKIAEXAMPLE",
			SecretKey: "wJalrXUtnFEMI",
		},
	})

	require.NotContains(t, buf.String(), "AKIAEXAMPLE")
	require.NotContains(t, buf.String(), "wJalrXUtnFEMI")

	out := map[string]any{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &out))
	group := out["config"].(map[string]any)
	require.Equal(t, "entities", group["table"])
	require.Equal(t, "[REDACTED]", group["secret_key"])
}

func TestNewLevelsAndFormats(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger, closer, err := New(Options{Level: "warn", Format: "json", Writer: &buf})
	require.NoError(t, err)
	defer closer.Close()

	logger.Info("hidden")
	logger.Warn("shown", "secret", "x")
	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), "shown")
	require.NotContains(t, buf.String(), `"x"`)

	_, _, err = New(Options{Level: "loud"})
	require.Error(t, err)
	_, _, err = New(Options{Format: "xml"})
	require.Error(t, err)
}

func TestNewWritesToRotatingFile(t *testing.T) {
	t.Parallel()

	logPath := filepath.Join(t.TempDir(), "logs", "entitymapper.log")
	logger, closer, err := New(Options{File: logPath})
	require.NoError(t, err)

	logger.Info("saved", "kind", "Customer")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	require.Contains(t, string(data), "kind=Customer")
}

func TestRotatingWriterRequiresFile(t *testing.T) {
	t.Parallel()
	_, err := NewRotatingWriter(RotationConfig{})
	require.Error(t, err)
}

func logSingleField(t *testing.T, key, value string) map[string]any {
	t.Helper()

	var buf bytes.Buffer
	base := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	logger := slog.New(NewRedactingHandler(base))
	logger.Info("test", key, value)

	line := bytes.TrimSpace(buf.Bytes())
	out := map[string]any{}
	require.NoError(t, json.Unmarshal(line, &out))
	return out
}
