/*
Package ddb provides a DynamoDB implementation of the datastore.Backend interface.

The DynamodbDataStore uses a single-table layout, one item per entity:

	PK          "Customer:42/Order:7"   canonical key path
	SK          "Order"                 kind
	EntityType  "Order"                 kind, for polymorphic scans
	ParentKey   "Customer:42"           only for parented keys
	Properties  {M}                     the property map

Reads are strongly consistent. Keys for new entities are minted with random
UUIDs. Every SDK failure is returned as an errors.StorageUnavailableError
wrapping the original error, so errors.As still reaches the SDK type.

Usage:

	store, err := ddb.NewDynamodbDataStore(ctx, ddb.ClientOptions{
	    Region:   "us-east-1",
	    Endpoint: "http://localhost:8000", // DynamoDB Local
	}, "entities")
	repo, err := entitymapper.NewRepository[Customer](store)

The table needs a string partition key PK and a string sort key SK.
*/
package ddb
