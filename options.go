/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package remoteagent

import (
	"context"
	"time"

	"github.com/Objective-Corporation/3sixty-mongo-remoteagent/config"
	"github.com/Objective-Corporation/3sixty-mongo-remoteagent/datastore"
	"github.com/Objective-Corporation/3sixty-mongo-remoteagent/datastore/mongodb"
	"github.com/Objective-Corporation/3sixty-mongo-remoteagent/logger"
	"github.com/Objective-Corporation/3sixty-mongo-remoteagent/metrics"
	"github.com/rs/zerolog"
)

// Dialer opens the store of a resolved repository configuration.
type Dialer func(ctx context.Context, cfg config.StoreConfig) (datastore.DocumentStore, error)

// MongoDialer returns a Dialer connecting to MongoDB.
func MongoDialer(opts ...mongodb.Option) Dialer {
	return func(ctx context.Context, cfg config.StoreConfig) (datastore.DocumentStore, error) {
		all := append([]mongodb.Option{mongodb.WithAppName(UserAgent())}, opts...)
		return mongodb.Open(ctx, cfg, all...)
	}
}

// Option configures a Connector or a Writer.
type Option func(*settings)

type settings struct {
	dialer     Dialer
	logger     zerolog.Logger
	metrics    *metrics.Metrics
	now        func() time.Time
	maxWorkers int64
}

func newSettings(opts []Option) settings {
	s := settings{
		logger:     logger.Nop(),
		now:        time.Now,
		maxWorkers: config.DefaultMaxWorkers,
	}
	for _, opt := range opts {
		opt(&s)
	}
	if s.dialer == nil {
		s.dialer = MongoDialer(mongodb.WithLogger(s.logger))
	}
	return s
}

// WithDialer replaces the MongoDB dialer.
func WithDialer(d Dialer) Option {
	return func(s *settings) {
		s.dialer = d
	}
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *settings) {
		s.logger = l
	}
}

// WithMetrics records operations on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *settings) {
		s.metrics = m
	}
}

// WithClock sets the clock used for system timestamps of written documents.
func WithClock(now func() time.Time) Option {
	return func(s *settings) {
		if now != nil {
			s.now = now
		}
	}
}

// WithMaxWorkers bounds concurrent writes of a Writer.
func WithMaxWorkers(n int64) Option {
	return func(s *settings) {
		if n > 0 {
			s.maxWorkers = n
		}
	}
}
