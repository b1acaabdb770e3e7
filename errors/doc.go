/*
Package errors provides semantic error types for the TableStore library.

The package defines common error scenarios with specific types that can be
checked using the standard errors.Is() function or the provided helper functions.

Common Errors:

	var (
	    ErrNotFound     = errors.New("not found")
	    ErrProvisioning = errors.New("table provisioning failed")
	    ErrBackend      = errors.New("backend operation failed")
	    ErrStaleHandle  = errors.New("stale table handle")
	    ErrConfig       = errors.New("invalid configuration")
	)

Usage:

	// Check error type
	handle, err := ddb.NewTableHandle(ctx, client, cfg)
	if err != nil {
	    if errors.IsProvisioning(err) {
	        // The backend rejected the key schema or throughput settings
	        return fmt.Errorf("bad table config: %w", err)
	    }
	    return err
	}

	// Create typed errors
	err := errors.NewTableNotFoundError("Responses")
	err := errors.NewBackendError("GetItem", "Responses", "ThrottlingException", "rate exceeded", cause)
	err := errors.NewConfigError("TableName", "must not be empty")

Note that an absent item on Get is reported as a nil item with a nil error,
never as ErrNotFound: only operations that require the table (or file) to
exist produce NotFoundError.

The error types implement the error interface and support wrapping,
making them compatible with Go's standard error handling patterns.
*/
package errors
