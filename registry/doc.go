/*
Package registry declares and stores the field-role tables of record types.

Instead of discovering fields at runtime, every record type declares its fields once:

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

Roles:
  - Identifier: the entity key (at most one honored)
  - ParentReference: the parent key used when the record is saved for the first time
  - Excluded: never stored
  - Persisted: everything else, stored in the property map under the field name

The first Identifier or ParentReference in declaration order wins. A schema built
with Strict() reports such ambiguity as an errors.ConfigurationError at first use.

Kind Registry:
Each schema claims its kind (the Go type name unless WithKind is used). Two types
claiming the same kind panic at registration time.

The registry is thread-safe and should be populated during initialization,
typically in init() functions or through code generated by the processor package.
*/
package registry
