/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package remoteagent

import (
	"context"
	"fmt"
	"time"

	"github.com/Objective-Corporation/3sixty-mongo-remoteagent/errors"
	"github.com/Objective-Corporation/3sixty-mongo-remoteagent/logger"
	"github.com/Objective-Corporation/3sixty-mongo-remoteagent/metrics"
	"github.com/Objective-Corporation/3sixty-mongo-remoteagent/storagemodels"
	"golang.org/x/time/rate"
)

// Documents enumerates the documents matching the configured query and time
// range. Results arrive in native result order, each identity at most once.
// A result whose document cannot be fetched is skipped and logged unless the
// ErrorHandler asks to stop. A result without a resolvable identity ends the
// enumeration with an EnumerationAbortedError. The channel is closed when
// the enumeration ends or ctx is cancelled.
func (c *Connector) Documents(ctx context.Context, opts ...storagemodels.StreamOption) <-chan storagemodels.StreamResult {
	options := storagemodels.DefaultStreamOptions()
	for _, opt := range opts {
		opt(&options)
	}
	if options.BufferSize < 0 {
		options.BufferSize = 0
	}
	if options.FetchRate <= 0 {
		options.FetchRate = rate.Inf
	}
	if options.FetchBurst < 1 {
		options.FetchBurst = 1
	}

	resultCh := make(chan storagemodels.StreamResult, options.BufferSize)
	go c.enumerate(ctx, c.cfg.QueryParams(), options, resultCh)
	return resultCh
}

// ListDocuments collects Documents. On a terminal error the documents yielded
// before it are returned with the error.
func (c *Connector) ListDocuments(ctx context.Context, opts ...storagemodels.StreamOption) ([]*storagemodels.Document, error) {
	var docs []*storagemodels.Document
	for res := range c.Documents(ctx, opts...) {
		if res.Error != nil {
			return docs, res.Error
		}
		docs = append(docs, res.Document)
	}
	return docs, ctx.Err()
}

func (c *Connector) enumerate(
	ctx context.Context,
	params *storagemodels.QueryParams,
	options storagemodels.StreamOptions,
	resultCh chan<- storagemodels.StreamResult,
) {
	defer close(resultCh)
	log := logger.ForOperation(c.log, "enumerate")

	start := time.Now()
	progress := storagemodels.StreamProgress{StartTime: start}
	index := int64(-1)
	status := metrics.StatusOK
	defer func() {
		c.metrics.RecordOperation("enumerate", status, time.Since(start))
	}()

	reportProgress := func() {
		if options.ProgressHandler == nil {
			return
		}
		snapshot := progress
		snapshot.Errors = append([]error(nil), progress.Errors...)
		if elapsed := time.Since(start).Seconds(); elapsed > 0 {
			snapshot.CurrentRate = float64(snapshot.ItemsProcessed) / elapsed
		}
		options.ProgressHandler(snapshot)
	}

	send := func(res storagemodels.StreamResult) bool {
		res.Meta = storagemodels.StreamMeta{Index: index, Timestamp: time.Now()}
		select {
		case <-ctx.Done():
			return false
		case resultCh <- res:
			return true
		}
	}

	// skip records a per-document failure and reports whether to go on
	skip := func(err error) bool {
		progress.ItemsSkipped++
		progress.Errors = append(progress.Errors, err)
		c.metrics.RecordEnumerated(metrics.OutcomeSkipped)
		if options.ErrorHandler != nil && !options.ErrorHandler(err) {
			status = metrics.StatusError
			send(storagemodels.StreamResult{Error: err})
			return false
		}
		return true
	}

	cur, err := c.store.Find(ctx, params)
	if err != nil {
		log.Error().Err(err).Msg("Enumeration query failed")
		status = metrics.StatusError
		send(storagemodels.StreamResult{Error: fmt.Errorf("enumeration query failed: %w", err)})
		return
	}
	defer func() {
		if err := cur.Close(context.WithoutCancel(ctx)); err != nil {
			log.Warn().Err(err).Msg("Failed to close cursor")
		}
	}()

	limiter := rate.NewLimiter(options.FetchRate, options.FetchBurst)
	seen := make(map[string]struct{})

	for cur.Next(ctx) {
		index++
		progress.ItemsProcessed++

		rec, err := cur.Record()
		if err != nil {
			log.Error().Err(err).Int64("index", index).Msg("Could not decode result")
			if !skip(fmt.Errorf("result %d: %w", index, err)) {
				return
			}
			continue
		}

		id, ok := c.store.Identity(rec)
		if !ok {
			log.Error().Str("id_field", c.cfg.IDField).Int64("index", index).
				Msg("Could not find ID field in document")
			c.metrics.RecordEnumerated(metrics.OutcomeAborted)
			status = metrics.StatusError
			send(storagemodels.StreamResult{Error: errors.NewEnumerationAbortedError(c.cfg.IDField, index)})
			reportProgress()
			return
		}
		if _, dup := seen[id]; dup {
			progress.Duplicates++
			c.metrics.RecordEnumerated(metrics.OutcomeDuplicate)
			continue
		}

		if err := limiter.Wait(ctx); err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Error().Err(err).Str("doc_id", id).Msg("Fetch throttling failed")
			status = metrics.StatusError
			send(storagemodels.StreamResult{Error: fmt.Errorf("document %s: %w", id, err)})
			return
		}

		doc, err := c.GetDocument(ctx, id)
		if err != nil {
			log.Error().Err(err).Str("doc_id", id).Msg("Failed to fetch document")
			if !skip(fmt.Errorf("document %s: %w", id, err)) {
				return
			}
			continue
		}
		if doc == nil {
			progress.ItemsSkipped++
			c.metrics.RecordEnumerated(metrics.OutcomeSkipped)
			continue
		}

		seen[id] = struct{}{}
		if !send(storagemodels.StreamResult{Document: doc}) {
			return
		}
		progress.ItemsYielded++
		c.metrics.RecordEnumerated(metrics.OutcomeYielded)
		reportProgress()
	}

	if err := cur.Err(); err != nil && ctx.Err() == nil {
		log.Error().Err(err).Msg("Enumeration cursor failed")
		status = metrics.StatusError
		send(storagemodels.StreamResult{Error: fmt.Errorf("enumeration cursor failed: %w", err)})
		return
	}

	log.Debug().
		Int64("yielded", progress.ItemsYielded).
		Int64("skipped", progress.ItemsSkipped).
		Int64("duplicates", progress.Duplicates).
		Msg("Enumeration finished")
	reportProgress()
}
