/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package mongodb

import (
	"strings"

	"github.com/Objective-Corporation/3sixty-mongo-remoteagent/errors"
	"go.mongodb.org/mongo-driver/bson"
)

// ParseFilter parses an extended JSON filter document. An empty expression
// matches everything. Keys and strings must be double quoted; shell syntax
// such as {status: 'active'} is a ValidationError.
func ParseFilter(expr string) (bson.D, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return bson.D{}, nil
	}
	var filter bson.D
	if err := bson.UnmarshalExtJSON([]byte(expr), false, &filter); err != nil {
		return nil, errors.NewValidationError("query", err.Error())
	}
	if filter == nil {
		filter = bson.D{}
	}
	return filter, nil
}
