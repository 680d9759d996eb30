/*
Package datastore defines the storage back-end contract consumed by the mapping core.

The main interface is Backend, which offers single-entity operations by key:

	type Backend interface {
	    Get(ctx context.Context, k *key.Key) (*storagemodels.Entity, error)
	    Put(ctx context.Context, e *storagemodels.Entity) (*key.Key, error)
	    Delete(ctx context.Context, k *key.Key) error
	    ParseKey(s string) (*key.Key, error)
	    SerializeKey(k *key.Key) string
	}

Get reports absence with errors.NotFoundError. Failures of the engine itself are
reported as errors.StorageUnavailableError wrapping the original error. Back ends
never retry.

Implementations:
  - mock: in-memory back end for tests and local tooling
  - ddb: DynamoDB single-table back end
  - surreal: SurrealDB back end, one record per entity in a single table

A back end is safe for concurrent use exactly when its client is; all provided
implementations are.
*/
package datastore
