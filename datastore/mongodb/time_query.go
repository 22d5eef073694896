/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package mongodb

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LastModifiedField is the GridFS metadata field the time range applies to.
const LastModifiedField = "metadata.last_modified"

// TimeRange builds the range condition on field. A zero bound is omitted; ok
// is false when both bounds are zero.
func TimeRange(field string, start, end time.Time) (cond bson.E, ok bool) {
	rng := bson.D{}
	if !start.IsZero() {
		rng = append(rng, bson.E{Key: "$gte", Value: primitive.NewDateTimeFromTime(start)})
	}
	if !end.IsZero() {
		rng = append(rng, bson.E{Key: "$lte", Value: primitive.NewDateTimeFromTime(end)})
	}
	if len(rng) == 0 {
		return bson.E{}, false
	}
	return bson.E{Key: field, Value: rng}, true
}

// WithTimeRange intersects filter with a range condition on field. When the
// filter already constrains field both conditions are combined with $and so
// neither is overwritten.
func WithTimeRange(filter bson.D, field string, start, end time.Time) bson.D {
	cond, ok := TimeRange(field, start, end)
	if !ok {
		return filter
	}
	for _, e := range filter {
		if e.Key == field {
			return bson.D{{Key: "$and", Value: bson.A{filter, bson.D{cond}}}}
		}
	}
	out := make(bson.D, 0, len(filter)+1)
	out = append(out, filter...)
	return append(out, cond)
}
