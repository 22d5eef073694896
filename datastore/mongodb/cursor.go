/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package mongodb

import (
	"context"

	"github.com/Objective-Corporation/3sixty-mongo-remoteagent/storagemodels"
	"go.mongodb.org/mongo-driver/mongo"
)

// cursor adapts a driver cursor to datastore.Cursor, decoding each result
// with the store's record decoder.
type cursor struct {
	cur    *mongo.Cursor
	decode func(*mongo.Cursor) (*storagemodels.Record, error)
}

func (c *cursor) Next(ctx context.Context) bool { return c.cur.Next(ctx) }

func (c *cursor) Record() (*storagemodels.Record, error) { return c.decode(c.cur) }

func (c *cursor) Err() error { return c.cur.Err() }

func (c *cursor) Close(ctx context.Context) error { return c.cur.Close(ctx) }
