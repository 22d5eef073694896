/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package remoteagent

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Objective-Corporation/3sixty-mongo-remoteagent/config"
	"github.com/Objective-Corporation/3sixty-mongo-remoteagent/datastore"
	"github.com/Objective-Corporation/3sixty-mongo-remoteagent/errors"
	"github.com/Objective-Corporation/3sixty-mongo-remoteagent/logger"
	"github.com/Objective-Corporation/3sixty-mongo-remoteagent/metadata"
	"github.com/Objective-Corporation/3sixty-mongo-remoteagent/metrics"
	"github.com/Objective-Corporation/3sixty-mongo-remoteagent/storagemodels"
	"github.com/rs/zerolog"
)

// Connector is the read side of one repository. It owns a single store for
// its lifetime. Operations are not safe for concurrent use unless the store
// is; the MongoDB stores are.
type Connector struct {
	cfg     config.StoreConfig
	store   datastore.DocumentStore
	log     zerolog.Logger
	metrics *metrics.Metrics
}

// New resolves the repository configuration and opens its store. A failure
// to connect is returned and not retried.
func New(ctx context.Context, params config.Parameters, opts ...Option) (*Connector, error) {
	s := newSettings(opts)

	cfg, err := config.Resolve(params)
	if err != nil {
		return nil, fmt.Errorf("invalid repository configuration: %w", err)
	}
	log := logger.ForRepository(s.logger, cfg.Target(), cfg.Mode().String())

	store, err := s.dialer(ctx, cfg)
	s.metrics.RecordConnection("read", err)
	if err != nil {
		log.Error().Err(err).Msg("Failed to open repository")
		if !errors.IsConnectionError(err) {
			err = errors.NewConnectionError(cfg.Target(), err)
		}
		return nil, err
	}

	log.Debug().
		Str("id_field", cfg.IDField).
		Str("query", cfg.Query).
		Int64("start_time", cfg.StartTime).
		Int64("end_time", cfg.EndTime).
		Msg("Connector initialized")

	return &Connector{cfg: cfg, store: store, log: log, metrics: s.metrics}, nil
}

// Config returns the resolved configuration.
func (c *Connector) Config() config.StoreConfig { return c.cfg }

// Mode returns the storage mode selected at initialization.
func (c *Connector) Mode() storagemodels.Mode { return c.store.Mode() }

// Close releases the store.
func (c *Connector) Close(ctx context.Context) error {
	return c.store.Close(ctx)
}

// GetDocument returns the document identified by id, or nil when no record
// matches. In GridFS mode a file without metadata does not match.
func (c *Connector) GetDocument(ctx context.Context, id string) (*storagemodels.Document, error) {
	start := time.Now()
	rec, err := c.store.Locate(ctx, id)
	found := err == nil && rec != nil && rec.Attributed
	c.metrics.RecordOperation("get", metrics.Status(err, found), time.Since(start))
	if err != nil {
		return nil, err
	}
	if !found {
		c.log.Error().Str("doc_id", id).Msg("Could not find document")
		return nil, nil
	}

	doc := &storagemodels.Document{
		ID:       id,
		Name:     rec.Name,
		MimeType: rec.ContentType,
		Size:     rec.Size,
	}
	c.log.Debug().
		Str("doc_id", id).
		Str("name", doc.Name).
		Str("content_type", doc.MimeType).
		Int64("size", doc.Size).
		Msg("Fetched document")
	return doc, nil
}

// GetDocumentMetadata returns every attribute of the document as text. An
// unknown id yields an empty map.
func (c *Connector) GetDocumentMetadata(ctx context.Context, id string) (metadata.Map, error) {
	start := time.Now()
	rec, err := c.store.Locate(ctx, id)
	found := err == nil && rec != nil && rec.Attributed
	c.metrics.RecordOperation("metadata", metrics.Status(err, found), time.Since(start))
	if err != nil {
		return nil, err
	}
	md := make(metadata.Map)
	if !found {
		c.log.Error().Str("doc_id", id).Msg("Could not find document metadata")
		return md, nil
	}

	for key, v := range rec.Fields {
		md[key] = metadata.FromNative(v)
		c.log.Trace().Str("key", key).Interface("value", v).Msg("Metadata field")
	}
	return md, nil
}

// GetDocumentBinary opens the payload of id. Collection mode records and
// unknown ids yield an empty stream with the default MIME type. The caller
// closes the returned binary.
func (c *Connector) GetDocumentBinary(ctx context.Context, id string) (*storagemodels.Binary, error) {
	start := time.Now()
	bin, err := c.store.OpenBinary(ctx, id)
	c.metrics.RecordOperation("binary", metrics.Status(err, bin != nil), time.Since(start))
	if err != nil {
		return nil, err
	}
	if bin == nil {
		c.log.Error().Str("doc_id", id).Msg("Could not find document binary")
		return &storagemodels.Binary{
			ID:       id,
			Reader:   io.NopCloser(strings.NewReader("")),
			MimeType: storagemodels.DefaultMimeType,
		}, nil
	}
	return bin, nil
}

// DeleteDocument removes the document identified by id. When no record can be
// resolved nothing is mutated and the miss is only logged.
func (c *Connector) DeleteDocument(ctx context.Context, id string) error {
	start := time.Now()
	deleted, err := c.store.Delete(ctx, id)
	c.metrics.RecordOperation("delete", metrics.Status(err, deleted), time.Since(start))
	logger.LogOperation(c.log, "delete", id, time.Since(start), err)
	if err != nil {
		return err
	}
	if !deleted {
		c.log.Error().Str("doc_id", id).Msg("Could not delete document")
		return nil
	}
	c.log.Debug().Str("doc_id", id).Msg("Document deleted")
	return nil
}
