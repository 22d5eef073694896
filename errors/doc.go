/*
Package errors provides semantic error types for the MongoDB repository connector.

The package defines the connector's failure taxonomy with specific types that can
be checked using the standard errors.Is() function or the provided helper functions.

Common Errors:

	var (
	    ErrNotFound           = errors.New("document not found")
	    ErrAlreadyExists      = errors.New("document already exists")
	    ErrInvalidInput       = errors.New("invalid input")
	    ErrInvalidIdentity    = errors.New("invalid identity")
	    ErrConnection         = errors.New("connection failed")
	    ErrPersistence        = errors.New("persistence failed")
	    ErrEnumerationAborted = errors.New("enumeration aborted")
	)

Not found is not a failure for the read operations of the connector: they return
a nil document, an empty metadata map or an empty binary stream instead. The
NotFoundError type is used by the in-memory store and by callers that want to
turn an absent result into an error.

Usage:

	doc, err := connector.GetDocument(ctx, id)
	if err != nil {
	    if errors.IsInvalidIdentity(err) {
	        // id is not a 24 character hex ObjectID
	    }
	    return err
	}

	pending := writer.WriteDocument(ctx, doc, md, chunks, params)
	if _, err := pending.Wait(ctx); errors.IsPersistenceError(err) {
	    // the error message names the document that failed
	}

The error types implement the error interface and support wrapping,
making them compatible with Go's standard error handling patterns.
*/
package errors
