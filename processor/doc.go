/*
Package processor provides code generation functionality for entitymapper.

The processor reads YAML schema descriptors and generates Go code that
registers a registry.Schema for every described record type.

Descriptor:

	package: models
	types:
	  - type: UserProfile
	    kind: User            # defaults to the type name
	    strict: true          # reject duplicate identifier or parent fields
	    define: true          # also emit the struct
	    fields:
	      - name: ID
	        role: identifier
	      - name: Org
	        role: parent
	      - name: Email
	        go_type: string
	      - name: Session
	        role: excluded
	        go_type: string

Generated Code:

	func init() {
	    registry.RegisterSchema(registry.NewSchema(
	        registry.Identifier("ID", func(r *UserProfile) **key.Key { return &r.ID }),
	        registry.ParentReference("Org", func(r *UserProfile) **key.Key { return &r.Org }),
	        registry.Property("Email", func(r *UserProfile) *string { return &r.Email }),
	        registry.Excluded[UserProfile]("Session"),
	    ).WithKind("User").Strict())
	}

This automation reduces boilerplate and keeps the field roles next to the
record definitions.
*/
package processor
