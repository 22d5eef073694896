/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package mongodb

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/Objective-Corporation/3sixty-mongo-remoteagent/datastore"
	"github.com/Objective-Corporation/3sixty-mongo-remoteagent/errors"
	"github.com/Objective-Corporation/3sixty-mongo-remoteagent/metadata"
	"github.com/Objective-Corporation/3sixty-mongo-remoteagent/storagemodels"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// BucketStore keeps documents as GridFS files. User attributes and reserved
// fields live in each file's metadata sub-document.
type BucketStore struct {
	store
	bucket *gridfs.Bucket
	files  *mongo.Collection
}

var _ datastore.DocumentStore = (*BucketStore)(nil)

// fileDoc is the part of a GridFS files entry the connector reads.
type fileDoc struct {
	ID       any    `bson:"_id"`
	Length   int64  `bson:"length"`
	Filename string `bson:"filename"`
	Metadata bson.M `bson:"metadata,omitempty"`
}

// Mode implements datastore.DocumentStore.
func (s *BucketStore) Mode() storagemodels.Mode { return storagemodels.ModeBucket }

// Find runs the filter, intersected with the last-modified time range, against
// the bucket's files.
func (s *BucketStore) Find(ctx context.Context, params *storagemodels.QueryParams) (datastore.Cursor, error) {
	if params == nil {
		params = &storagemodels.QueryParams{}
	}
	filter, err := ParseFilter(params.Filter)
	if err != nil {
		return nil, err
	}
	filter = WithTimeRange(filter, LastModifiedField, params.Start, params.End)
	s.log.Debug().
		Str("filter", params.Filter).
		Time("start", params.Start).
		Time("end", params.End).
		Msg("Querying bucket")

	cur, err := s.files.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query bucket %s: %w", s.name, err)
	}
	return &cursor{cur: cur, decode: decodeBucketRecord}, nil
}

// Identity resolves the configured metadata field, or the native id when the
// identity field is _id. Files without metadata have no identity.
func (s *BucketStore) Identity(rec *storagemodels.Record) (string, bool) {
	return datastore.ResolveIdentity(s.idField, storagemodels.ModeBucket, rec)
}

// Locate returns the matching file whether or not it carries metadata.
func (s *BucketStore) Locate(ctx context.Context, id string) (*storagemodels.Record, error) {
	pred, err := datastore.IdentityPredicate(s.idField, storagemodels.ModeBucket, id)
	if err != nil {
		return nil, err
	}
	var f fileDoc
	if err := s.files.FindOne(ctx, pred.Filter()).Decode(&f); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find file %s: %w", id, err)
	}
	return bucketRecord(f), nil
}

// OpenBinary opens a download stream positioned at the start of the payload.
func (s *BucketStore) OpenBinary(ctx context.Context, id string) (*storagemodels.Binary, error) {
	rec, err := s.Locate(ctx, id)
	if err != nil || rec == nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	stream, err := s.bucket.OpenDownloadStream(rec.NativeID)
	if err != nil {
		if err == gridfs.ErrFileNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open download stream for %s: %w", id, err)
	}
	mimeType := storagemodels.DefaultMimeType
	if rec.HasContentType {
		mimeType = rec.ContentType
	}
	return &storagemodels.Binary{ID: id, Reader: stream, MimeType: mimeType}, nil
}

// Delete removes a file and its chunks. With a secondary identity field the
// native id is resolved first; files without metadata are not deleted.
func (s *BucketStore) Delete(ctx context.Context, id string) (bool, error) {
	pred, err := datastore.IdentityPredicate(s.idField, storagemodels.ModeBucket, id)
	if err != nil {
		return false, err
	}

	fileID := pred.Value
	if !s.useObjectID() {
		rec, err := s.Locate(ctx, id)
		if err != nil {
			return false, err
		}
		if rec == nil || !rec.Attributed {
			return false, nil
		}
		fileID = rec.NativeID
	}

	if err := s.bucket.DeleteContext(ctx, fileID); err != nil {
		if err == gridfs.ErrFileNotFound {
			return false, nil
		}
		return false, fmt.Errorf("failed to delete file %s: %w", id, err)
	}
	return true, nil
}

// Insert uploads payload as a new file named name with fields as metadata.
func (s *BucketStore) Insert(ctx context.Context, name string, fields bson.D, payload io.Reader) error {
	if payload == nil {
		payload = strings.NewReader("")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	opts := options.GridFSUpload().SetMetadata(fields)
	fileID, err := s.bucket.UploadFromStream(name, payload, opts)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: %v", errors.NewAlreadyExistsError("file", name), err)
		}
		return fmt.Errorf("failed to upload %s: %w", name, err)
	}
	s.log.Debug().Str("name", name).Str("file_id", fileID.Hex()).Msg("Uploaded file")
	return nil
}

func decodeBucketRecord(cur *mongo.Cursor) (*storagemodels.Record, error) {
	var f fileDoc
	if err := cur.Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to decode file: %w", err)
	}
	return bucketRecord(f), nil
}

func bucketRecord(f fileDoc) *storagemodels.Record {
	rec := &storagemodels.Record{
		NativeID:   f.ID,
		Name:       f.Filename,
		Size:       f.Length,
		Fields:     map[string]any(f.Metadata),
		Attributed: f.Metadata != nil,
	}
	if v, ok := f.Metadata[storagemodels.FieldContentType]; ok {
		rec.ContentType = metadata.Stringify(v)
		rec.HasContentType = true
	}
	return rec
}
