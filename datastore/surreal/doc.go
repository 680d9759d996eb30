// Package surreal provides a SurrealDB implementation of the datastore.Backend
// interface.
//
// All entities live in one table. The record ID is the canonical key path, and
// the record content is
//
//	{ path: "Customer:42/Order:7", kind: "Order", parent: "Customer:42", properties: {...} }
//
// Writes use UPSERT ... CONTENT, so saving an existing key replaces the whole
// record. Statement and transport failures are returned as
// errors.StorageUnavailableError wrapping the original error.
//
// # Usage
//
//	conn, err := surreal.Connect(ctx, surreal.Config{
//	    Endpoint:  "ws://localhost:8000",
//	    Username:  "root",
//	    Password:  "root",
//	    Namespace: "app",
//	    Database:  "main",
//	})
//	defer conn.Close(ctx)
//
//	store, err := surreal.New(conn, "")
//	repo, err := entitymapper.NewRepository[Customer](store)
package surreal
