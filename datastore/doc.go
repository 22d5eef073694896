/*
Package datastore defines the capability interface of the repository's storage modes.

The main interface is DocumentStore, implemented once per storage mode:

	type DocumentStore interface {
	    Mode() storagemodels.Mode
	    IDField() string
	    Find(ctx context.Context, params *storagemodels.QueryParams) (Cursor, error)
	    Identity(rec *storagemodels.Record) (string, bool)
	    Locate(ctx context.Context, id string) (*storagemodels.Record, error)
	    OpenBinary(ctx context.Context, id string) (*storagemodels.Binary, error)
	    Delete(ctx context.Context, id string) (bool, error)
	    Insert(ctx context.Context, name string, fields bson.D, payload io.Reader) error
	    Close(ctx context.Context) error
	}

Implementations:
  - mongo: MongoDB collection and GridFS bucket stores
  - mock: In-memory implementation for testing

IdentityPredicate builds the equality condition every single-document operation
uses. Its three cases are not interchangeable:

	IdentityPredicate("_id", mode, "65a1...")    // {_id: ObjectID("65a1...")}
	IdentityPredicate("docId", ModeBucket, "A1")     // {"metadata.docId": "A1"}
	IdentityPredicate("docId", ModeCollection, "A1") // {"docId": "A1"}

A malformed native identifier fails with errors.ErrInvalidIdentity.
*/
package datastore
