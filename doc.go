/*
Package entitymapper maps plain Go records onto entities of a hierarchical
key-value store and back, and offers a small repository on top of the mapping.

A record type is described once by a registry.Schema listing its fields and
their roles:
  - Identifier: the field holding the entity key, assigned on first save
  - ParentReference: the field holding the key under which new entities are created
  - Excluded: a field that is never stored
  - every other declared field is persisted as a property under its name

Keys are immutable paths of (kind, id) pairs, see package key. A back end
(package datastore) stores entities under keys and mints keys for new ones.
DynamoDB, SurrealDB and an in-memory back end are provided.

Basic Usage:

	type Customer struct {
		ID    *key.Key
		Name  string
		Cache string
	}

	func init() {
		registry.RegisterSchema(registry.NewSchema(
			registry.Identifier("ID", func(c *Customer) **key.Key { return &c.ID }),
			registry.Property("Name", func(c *Customer) *string { return &c.Name }),
			registry.Excluded[Customer]("Cache"),
		))
	}

	repo, _ := entitymapper.NewRepository[Customer](backend)
	c := &Customer{Name: "Ann"}
	err := repo.Save(ctx, c) // c.ID now holds the assigned key
	same, err := repo.FetchByKey(ctx, c.ID)

Fetching an absent key yields a nil record and a nil error. Back-end failures
are returned unmodified; see package errors for the error kinds.
*/
package entitymapper
