/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package datastore

import (
	"context"
	"io"

	"github.com/Objective-Corporation/3sixty-mongo-remoteagent/errors"
	"github.com/Objective-Corporation/3sixty-mongo-remoteagent/storagemodels"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DocumentStore is one storage mode of the repository. Implementations are
// selected once when the repository is opened.
type DocumentStore interface {
	// Mode reports the storage mode.
	Mode() storagemodels.Mode

	// IDField is the configured identity field.
	IDField() string

	// Find runs an enumeration query in native result order.
	Find(ctx context.Context, params *storagemodels.QueryParams) (Cursor, error)

	// Identity resolves the identity of a native result. It returns false when
	// the record has no resolvable identity.
	Identity(rec *storagemodels.Record) (string, bool)

	// Locate returns the single record matching the identity predicate of id,
	// or nil when nothing matches.
	Locate(ctx context.Context, id string) (*storagemodels.Record, error)

	// OpenBinary opens the payload of id. It returns nil when the store has no
	// payload for id.
	OpenBinary(ctx context.Context, id string) (*storagemodels.Binary, error)

	// Delete removes the record of id and reports whether a record was removed.
	Delete(ctx context.Context, id string) (bool, error)

	// Insert persists a new document. Payload is ignored by stores that keep
	// no binary content.
	Insert(ctx context.Context, name string, fields bson.D, payload io.Reader) error

	// Close releases the store's connection.
	Close(ctx context.Context) error
}

// Cursor iterates over native results.
type Cursor interface {
	Next(ctx context.Context) bool
	Record() (*storagemodels.Record, error)
	Err() error
	Close(ctx context.Context) error
}

// Predicate is an equality condition locating a single record.
type Predicate struct {
	Field string
	Value any
}

// Filter renders the predicate as a filter document.
func (p Predicate) Filter() bson.D {
	return bson.D{{Key: p.Field, Value: p.Value}}
}

// IdentityPredicate derives the predicate locating value.
//
// When idField is the native identifier the value must be a hex ObjectID. In
// bucket mode any other field is looked up in the file's metadata
// sub-document; in collection mode it is looked up at the top level.
func IdentityPredicate(idField string, mode storagemodels.Mode, value string) (Predicate, error) {
	if idField == "" || idField == storagemodels.NativeIDField {
		oid, err := primitive.ObjectIDFromHex(value)
		if err != nil {
			return Predicate{}, errors.NewInvalidIdentityError(storagemodels.NativeIDField, value, err)
		}
		return Predicate{Field: storagemodels.NativeIDField, Value: oid}, nil
	}
	if mode == storagemodels.ModeBucket {
		return Predicate{Field: storagemodels.MetadataPrefix + idField, Value: value}, nil
	}
	return Predicate{Field: idField, Value: value}, nil
}
