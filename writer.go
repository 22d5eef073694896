/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package remoteagent

import (
	"context"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/Objective-Corporation/3sixty-mongo-remoteagent/config"
	"github.com/Objective-Corporation/3sixty-mongo-remoteagent/errors"
	"github.com/Objective-Corporation/3sixty-mongo-remoteagent/logger"
	"github.com/Objective-Corporation/3sixty-mongo-remoteagent/metadata"
	"github.com/Objective-Corporation/3sixty-mongo-remoteagent/metrics"
	"github.com/Objective-Corporation/3sixty-mongo-remoteagent/storagemodels"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/semaphore"
)

// Writer persists documents into output repositories. Every write opens its
// own store from the parameters it is given and closes it when done.
type Writer struct {
	dial    Dialer
	sem     *semaphore.Weighted
	log     zerolog.Logger
	metrics *metrics.Metrics
	now     func() time.Time
	wg      sync.WaitGroup
}

// NewWriter creates a Writer running at most WithMaxWorkers writes at once.
func NewWriter(opts ...Option) *Writer {
	s := newSettings(opts)
	return &Writer{
		dial:    s.dialer,
		sem:     semaphore.NewWeighted(s.maxWorkers),
		log:     s.logger.With().Str("component", "writer").Logger(),
		metrics: s.metrics,
		now:     s.now,
	}
}

// PendingWrite is the deferred outcome of WriteDocument.
type PendingWrite struct {
	OperationID string

	done chan struct{}
	doc  *storagemodels.Document
	err  error
}

// Done is closed when the write has finished.
func (p *PendingWrite) Done() <-chan struct{} { return p.done }

// Wait blocks until the write finishes or ctx is done. It returns the
// written document on success. Cancelling ctx does not cancel the write.
func (p *PendingWrite) Wait(ctx context.Context) (*storagemodels.Document, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-p.done:
		return p.doc, p.err
	}
}

// WriteDocument stores doc with md and the payload read from chunks into the
// repository described by params. In GridFS mode the payload becomes the file
// content; in collection mode it is drained and discarded. The write runs in
// the background and outlives ctx cancellation. Failures are reported as
// PersistenceError naming the document.
func (w *Writer) WriteDocument(
	ctx context.Context,
	doc *storagemodels.Document,
	md metadata.Map,
	chunks <-chan storagemodels.Chunk,
	params config.Parameters,
) *PendingWrite {
	p := &PendingWrite{OperationID: uuid.NewString(), done: make(chan struct{})}
	ctx = context.WithoutCancel(ctx)

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer close(p.done)

		if err := w.sem.Acquire(ctx, 1); err != nil {
			p.err = err
			return
		}
		defer w.sem.Release(1)

		p.doc, p.err = w.write(ctx, p.OperationID, doc, md, chunks, params)
	}()
	return p
}

// Wait blocks until every started write has finished.
func (w *Writer) Wait() {
	w.wg.Wait()
}

func (w *Writer) write(
	ctx context.Context,
	opID string,
	doc *storagemodels.Document,
	md metadata.Map,
	chunks <-chan storagemodels.Chunk,
	params config.Parameters,
) (*storagemodels.Document, error) {
	if doc == nil {
		go DrainChunks(chunks)
		return nil, errors.NewPersistenceError("", errors.NewValidationError("document", "is required"))
	}
	log := logger.ForOperation(w.log, "write").With().Str("op_id", opID).Str("name", doc.Name).Str("doc_id", doc.ID).Logger()

	cfg, err := config.ResolveOutput(params)
	if err != nil {
		go DrainChunks(chunks)
		log.Error().Err(err).Msg("Invalid output configuration")
		return nil, errors.NewPersistenceError(doc.Name, err)
	}

	var written int64
	w.metrics.WriteStarted()
	defer func() { w.metrics.WriteFinished(written) }()

	store, err := w.dial(ctx, cfg)
	w.metrics.RecordConnection("write", err)
	if err != nil {
		go DrainChunks(chunks)
		log.Error().Err(err).Str("target", cfg.Target()).Msg("Failed to open output repository")
		return nil, errors.NewPersistenceError(doc.Name, err)
	}
	defer func() {
		if err := store.Close(ctx); err != nil {
			log.Warn().Err(err).Msg("Failed to close output repository")
		}
	}()

	fields := w.buildFields(log, doc, md)

	var payload io.Reader
	if store.Mode() == storagemodels.ModeBucket {
		payload, written, err = BridgeChunks(ctx, chunks)
		if err != nil {
			log.Error().Err(err).Msg("Failed to read document payload")
			return nil, errors.NewPersistenceError(doc.Name, err)
		}
	} else {
		DrainChunks(chunks)
	}

	start := time.Now()
	if err := store.Insert(ctx, doc.Name, fields, payload); err != nil {
		w.metrics.RecordOperation("write", metrics.StatusError, time.Since(start))
		log.Error().Err(err).Msg("Error processing document")
		return nil, errors.NewPersistenceError(doc.Name, err)
	}
	w.metrics.RecordOperation("write", metrics.StatusOK, time.Since(start))

	log.Debug().Int64("bytes", written).Str("mode", store.Mode().String()).Msg("Document written")
	return doc, nil
}

// buildFields coerces md to text and appends the reserved fields. Caller
// supplied values of reserved names are replaced.
func (w *Writer) buildFields(log zerolog.Logger, doc *storagemodels.Document, md metadata.Map) bson.D {
	keys := make([]string, 0, len(md))
	for k := range md {
		if storagemodels.IsReserved(k) {
			log.Debug().Str("key", k).Msg("Reserved metadata key replaced")
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fields := make(bson.D, 0, len(keys)+len(storagemodels.ReservedFields))
	for _, k := range keys {
		s, ok := metadata.Coerce(md[k])
		if !ok {
			log.Warn().Str("key", k).Msg("Incompatible type. No value found for metadata key")
			fields = append(fields, bson.E{Key: k, Value: nil})
			continue
		}
		log.Trace().Str("key", k).Str("value", s).Msg("Metadata field")
		fields = append(fields, bson.E{Key: k, Value: s})
	}

	now := primitive.NewDateTimeFromTime(w.now())
	return append(fields,
		bson.E{Key: storagemodels.FieldCreatedBy, Value: storagemodels.SystemActor},
		bson.E{Key: storagemodels.FieldCreated, Value: now},
		bson.E{Key: storagemodels.FieldPath, Value: doc.ParentPath},
		bson.E{Key: storagemodels.FieldDownloadable, Value: false},
		bson.E{Key: storagemodels.FieldFilename, Value: doc.Name},
		bson.E{Key: storagemodels.FieldLastModified, Value: secondsDate(time.Time(doc.ModifiedDate))},
		bson.E{Key: storagemodels.FieldCreatedDate, Value: secondsDate(time.Time(doc.CreatedDate))},
		bson.E{Key: storagemodels.FieldTypeName, Value: storagemodels.DocumentTypeName},
		bson.E{Key: storagemodels.FieldSystemLastModified, Value: now},
		bson.E{Key: storagemodels.FieldLastModifiedBy, Value: storagemodels.SystemActor},
		bson.E{Key: storagemodels.FieldContentType, Value: doc.MimeType},
		bson.E{Key: storagemodels.FieldLength, Value: doc.Size},
		bson.E{Key: storagemodels.FieldSourceRepositoryID, Value: doc.ID},
	)
}

// secondsDate truncates t to whole seconds. The zero time maps to the epoch.
func secondsDate(t time.Time) primitive.DateTime {
	if t.IsZero() {
		return primitive.NewDateTimeFromTime(time.Unix(0, 0))
	}
	return primitive.NewDateTimeFromTime(time.Unix(t.Unix(), 0))
}
