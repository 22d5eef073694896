/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/Objective-Corporation/3sixty-mongo-remoteagent/config"
	"github.com/Objective-Corporation/3sixty-mongo-remoteagent/datastore"
	"github.com/Objective-Corporation/3sixty-mongo-remoteagent/errors"
	"github.com/Objective-Corporation/3sixty-mongo-remoteagent/logger"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// DefaultConnectTimeout bounds connecting to and pinging the server.
const DefaultConnectTimeout = 10 * time.Second

// Option configures Open.
type Option func(*openOptions)

type openOptions struct {
	logger         zerolog.Logger
	connectTimeout time.Duration
	appName        string
}

// WithLogger sets the logger of the opened store.
func WithLogger(l zerolog.Logger) Option {
	return func(o *openOptions) {
		o.logger = l
	}
}

// WithConnectTimeout overrides DefaultConnectTimeout.
func WithConnectTimeout(d time.Duration) Option {
	return func(o *openOptions) {
		if d > 0 {
			o.connectTimeout = d
		}
	}
}

// WithAppName sets the application name reported to the server.
func WithAppName(name string) Option {
	return func(o *openOptions) {
		o.appName = name
	}
}

// store holds the handles shared by both storage modes.
type store struct {
	client  *mongo.Client
	db      *mongo.Database
	name    string
	idField string
	log     zerolog.Logger
}

func (s *store) IDField() string { return s.idField }

func (s *store) useObjectID() bool {
	return s.idField == "" || s.idField == "_id"
}

// Close disconnects the client.
func (s *store) Close(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	if err := s.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect: %w", err)
	}
	return nil
}

// Open connects to the repository described by cfg and returns the store of
// its storage mode. The server is pinged before returning; any failure is a
// connection error and is not retried.
func Open(ctx context.Context, cfg config.StoreConfig, opts ...Option) (datastore.DocumentStore, error) {
	o := openOptions{
		logger:         logger.Nop(),
		connectTimeout: DefaultConnectTimeout,
		appName:        "mongo-remoteagent",
	}
	for _, opt := range opts {
		opt(&o)
	}

	target := cfg.Target()
	if err := cfg.Validate(); err != nil {
		return nil, errors.NewConnectionError(target, err)
	}
	log := logger.ForRepository(o.logger, target, cfg.Mode().String())

	clientOpts := options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(o.connectTimeout).
		SetServerSelectionTimeout(o.connectTimeout).
		SetAppName(o.appName)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, errors.NewConnectionError(target, err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, o.connectTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.WithoutCancel(ctx))
		return nil, errors.NewConnectionError(target, err)
	}
	log.Debug().Msg("Connected to repository")

	base := store{
		client:  client,
		db:      client.Database(cfg.Database),
		name:    cfg.Collection,
		idField: cfg.IDField,
		log:     log,
	}

	if !cfg.UseGridFS {
		return &CollectionStore{store: base, coll: base.db.Collection(cfg.Collection)}, nil
	}

	bucket, err := gridfs.NewBucket(base.db, options.GridFSBucket().SetName(cfg.Collection))
	if err != nil {
		_ = client.Disconnect(context.WithoutCancel(ctx))
		return nil, errors.NewConnectionError(target, err)
	}
	return &BucketStore{
		store:  base,
		bucket: bucket,
		files:  base.db.Collection(cfg.Collection + ".files"),
	}, nil
}
