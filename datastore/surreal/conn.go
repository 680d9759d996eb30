/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package surreal

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"

	"github.com/surrealdb/surrealdb.go"
)

// ErrQuery reports a statement that SurrealDB executed with a non-OK status.
var ErrQuery = stderrors.New("query error")

// Config holds the connection settings of a SurrealDB server.
type Config struct {
	// Endpoint is the server URL, e.g. ws://localhost:8000.
	Endpoint  string
	Username  string
	Password  string
	Namespace string
	Database  string
}

// Querier runs SurrealQL. Query returns the result of every statement in order.
type Querier interface {
	Query(ctx context.Context, query string, vars map[string]any) ([]any, error)
}

// Conn is a signed-in SurrealDB connection scoped to one namespace and database.
type Conn struct {
	db *surrealdb.DB
}

var _ Querier = (*Conn)(nil)

// Connect opens a connection, signs in and selects the namespace and database.
func Connect(ctx context.Context, cfg Config) (*Conn, error) {
	db, err := surrealdb.FromEndpointURLString(ctx, cfg.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", cfg.Endpoint, err)
	}

	if _, err := db.SignIn(ctx, &surrealdb.Auth{
		Username: cfg.Username,
		Password: cfg.Password,
	}); err != nil {
		_ = db.Close(ctx)
		return nil, fmt.Errorf("signin failed: %w", err)
	}

	if err := db.Use(ctx, cfg.Namespace, cfg.Database); err != nil {
		_ = db.Close(ctx)
		return nil, fmt.Errorf("use failed: %w", err)
	}

	slog.Info("SurrealDB connection established", "endpoint", cfg.Endpoint, "namespace", cfg.Namespace, "database", cfg.Database)
	return &Conn{db: db}, nil
}

// Close closes the connection
func (c *Conn) Close(ctx context.Context) error {
	if c.db == nil {
		return nil
	}
	return c.db.Close(ctx)
}

// Query executes query and returns the result of each statement.
func (c *Conn) Query(ctx context.Context, query string, vars map[string]any) ([]any, error) {
	results, err := surrealdb.Query[any](ctx, c.db, query, vars)
	if err != nil {
		return nil, err
	}
	if results == nil {
		return nil, nil
	}

	out := make([]any, 0, len(*results))
	for _, r := range *results {
		if r.Status != "OK" {
			if r.Error != nil {
				return nil, fmt.Errorf("%w: %s", ErrQuery, r.Error.Message)
			}
			return nil, ErrQuery
		}
		out = append(out, r.Result)
	}
	return out, nil
}
