/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package mongodb

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Objective-Corporation/3sixty-mongo-remoteagent/datastore"
	"github.com/Objective-Corporation/3sixty-mongo-remoteagent/errors"
	"github.com/Objective-Corporation/3sixty-mongo-remoteagent/metadata"
	"github.com/Objective-Corporation/3sixty-mongo-remoteagent/storagemodels"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// CollectionStore keeps one flat record per document in a plain collection.
// Records carry no payload.
type CollectionStore struct {
	store
	coll *mongo.Collection
}

var _ datastore.DocumentStore = (*CollectionStore)(nil)

// Mode implements datastore.DocumentStore.
func (s *CollectionStore) Mode() storagemodels.Mode { return storagemodels.ModeCollection }

// Find runs the filter against the collection. The time range does not apply
// to plain collections.
func (s *CollectionStore) Find(ctx context.Context, params *storagemodels.QueryParams) (datastore.Cursor, error) {
	var expr string
	if params != nil {
		expr = params.Filter
	}
	filter, err := ParseFilter(expr)
	if err != nil {
		return nil, err
	}
	s.log.Debug().Str("filter", expr).Msg("Querying collection")

	cur, err := s.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query collection %s: %w", s.name, err)
	}
	return &cursor{cur: cur, decode: decodeCollectionRecord}, nil
}

// Identity prefers the configured field and falls back to _id.
func (s *CollectionStore) Identity(rec *storagemodels.Record) (string, bool) {
	return datastore.ResolveIdentity(s.idField, storagemodels.ModeCollection, rec)
}

// Locate implements datastore.DocumentStore.
func (s *CollectionStore) Locate(ctx context.Context, id string) (*storagemodels.Record, error) {
	pred, err := datastore.IdentityPredicate(s.idField, storagemodels.ModeCollection, id)
	if err != nil {
		return nil, err
	}
	res := s.coll.FindOne(ctx, pred.Filter())
	if err := res.Err(); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find %s: %w", id, err)
	}
	var doc bson.M
	if err := res.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", id, err)
	}
	return collectionRecord(doc)
}

// OpenBinary returns an empty payload. Plain records reference no content.
func (s *CollectionStore) OpenBinary(_ context.Context, id string) (*storagemodels.Binary, error) {
	return &storagemodels.Binary{
		ID:       id,
		Reader:   io.NopCloser(strings.NewReader("")),
		MimeType: storagemodels.DefaultMimeType,
	}, nil
}

// Delete removes the record matching the identity predicate.
func (s *CollectionStore) Delete(ctx context.Context, id string) (bool, error) {
	pred, err := datastore.IdentityPredicate(s.idField, storagemodels.ModeCollection, id)
	if err != nil {
		return false, err
	}
	res, err := s.coll.DeleteOne(ctx, pred.Filter())
	if err != nil {
		return false, fmt.Errorf("failed to delete %s: %w", id, err)
	}
	return res.DeletedCount > 0, nil
}

// Insert stores fields as one record. The payload is not read.
func (s *CollectionStore) Insert(ctx context.Context, name string, fields bson.D, _ io.Reader) error {
	if _, err := s.coll.InsertOne(ctx, fields); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: %v", errors.NewAlreadyExistsError("document", name), err)
		}
		return fmt.Errorf("failed to insert %s: %w", name, err)
	}
	s.log.Debug().Str("name", name).Msg("Inserted document")
	return nil
}

func decodeCollectionRecord(cur *mongo.Cursor) (*storagemodels.Record, error) {
	var doc bson.M
	if err := cur.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode record: %w", err)
	}
	return collectionRecord(doc)
}

// collectionRecord reads name, content type and size from the reserved
// top-level fields. A size that is not an integer makes the record malformed.
func collectionRecord(doc bson.M) (*storagemodels.Record, error) {
	rec := &storagemodels.Record{
		NativeID:   doc[storagemodels.NativeIDField],
		Fields:     map[string]any(doc),
		Attributed: true,
	}
	if v, ok := doc[storagemodels.FieldFilename]; ok {
		rec.Name = metadata.Stringify(v)
	}
	if v, ok := doc[storagemodels.FieldContentType]; ok {
		rec.ContentType = metadata.Stringify(v)
		rec.HasContentType = true
	}
	if v, ok := doc[storagemodels.FieldLength]; ok {
		size, err := parseLength(v)
		if err != nil {
			return nil, errors.NewValidationError(storagemodels.FieldLength, err.Error())
		}
		rec.Size = size
	}
	return rec, nil
}

func parseLength(v any) (int64, error) {
	var n int64
	switch x := v.(type) {
	case int32:
		n = int64(x)
	case int64:
		n = x
	default:
		parsed, err := strconv.ParseInt(strings.TrimSpace(metadata.Stringify(v)), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("not an integer: %v", v)
		}
		n = parsed
	}
	if n < 0 {
		return 0, fmt.Errorf("negative length %d", n)
	}
	return n, nil
}
