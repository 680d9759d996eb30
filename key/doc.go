/*
Package key implements hierarchical entity keys.

A Key names one stored entity: a kind (the record type tag), an ID and an optional
parent key. Keys are immutable, so they can be shared freely between goroutines.

Two string forms exist:

	k := key.New("Order", "7", key.New("Customer", "42", nil))
	k.String()  // "Customer:42/Order:7", canonical path, root first
	k.Encode()  // opaque base64url form for URLs and user input

Decode and ParsePath return an errors.KeyFormatError for malformed input.
*/
package key
