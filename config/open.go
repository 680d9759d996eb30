/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package config

import (
	"context"
	"fmt"

	"github.com/suparena/entitymapper/datastore"
	"github.com/suparena/entitymapper/datastore/ddb"
	"github.com/suparena/entitymapper/datastore/mock"
	"github.com/suparena/entitymapper/datastore/surreal"
)

// CloseFunc releases the resources of an opened back end.
type CloseFunc func(ctx context.Context) error

func noopClose(context.Context) error { return nil }

// OpenStore connects the back end described by sc.
func OpenStore(ctx context.Context, sc StoreConfig) (datastore.Backend, CloseFunc, error) {
	if err := sc.validate(); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	switch sc.Backend {
	case BackendDynamoDB:
		store, err := ddb.NewDynamodbDataStore(ctx, ddb.ClientOptions{
			AccessKey: sc.DynamoDB.AccessKey,
			SecretKey: sc.DynamoDB.SecretKey,
			Region:    sc.DynamoDB.Region,
			Endpoint:  sc.DynamoDB.Endpoint,
		}, sc.DynamoDB.Table)
		if err != nil {
			return nil, nil, err
		}
		return store, noopClose, nil

	case BackendSurrealDB:
		conn, err := surreal.Connect(ctx, surreal.Config{
			Endpoint:  sc.SurrealDB.Endpoint,
			Username:  sc.SurrealDB.Username,
			Password:  sc.SurrealDB.Password,
			Namespace: sc.SurrealDB.Namespace,
			Database:  sc.SurrealDB.Database,
		})
		if err != nil {
			return nil, nil, err
		}
		store, err := surreal.New(conn, sc.SurrealDB.Table)
		if err != nil {
			_ = conn.Close(ctx)
			return nil, nil, err
		}
		return store, conn.Close, nil

	default:
		return mock.New(), noopClose, nil
	}
}
