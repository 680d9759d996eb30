/*
Package errors provides semantic error types for the entitymapper library.

The package defines the mapping and storage failure modes as sentinels that can be
checked using the standard errors.Is() function or the provided helper functions.

Common Errors:

	var (
	    ErrNotFound           = errors.New("entity not found")
	    ErrConstruction       = errors.New("record construction failed")
	    ErrFieldAccess        = errors.New("field access failed")
	    ErrKeyFormat          = errors.New("malformed key")
	    ErrStorageUnavailable = errors.New("storage unavailable")
	    ErrConfiguration      = errors.New("invalid schema configuration")
	    ErrInvalidInput       = errors.New("invalid input")
	)

Usage:

	customer, err := repo.FetchByKeyString(ctx, input)
	if err != nil {
	    if errors.IsKeyFormat(err) {
	        // Reject the user input
	        return nil, fmt.Errorf("bad customer id %q", input)
	    }
	    return nil, err
	}

NotFound is a back-end level error. Repository fetches translate it into an absent
result, so application code normally never sees it.

StorageUnavailableError keeps the original back-end error as its cause, so
errors.As still reaches SDK-specific error types.
*/
package errors
