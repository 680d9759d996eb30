/*
Package storagemodels defines the data structures exchanged between the mapping core
and storage back ends.

Key Types:

Entity:
The persisted unit, a key plus a kind plus a property map:

	e := &storagemodels.Entity{
	    Kind:       "Order",
	    Parent:     customerKey,   // used only while Key is nil
	    Properties: storagemodels.PropertyMap{"Total": 12.5},
	}
	k, err := backend.Put(ctx, e)

PropertyMap:
Field name to value, excluding identifier and parent reference fields. Back ends
return numbers, lists and text-encoded values in their own shapes (float64, []any,
string); the typed accessors of the registry package convert them back.

These types provide a consistent interface across different storage implementations.
*/
package storagemodels
