/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/Objective-Corporation/3sixty-mongo-remoteagent/errors"
	"github.com/Objective-Corporation/3sixty-mongo-remoteagent/storagemodels"
)

// DefaultQuery matches every document.
const DefaultQuery = "{}"

// StoreConfig is the resolved configuration of one repository. It is fixed for
// the lifetime of the connector or write call that resolved it.
type StoreConfig struct {
	URI        string
	Database   string
	Collection string
	IDField    string
	UseGridFS  bool
	Query      string
	// StartTime and EndTime are epoch milliseconds; <= 0 is unbounded.
	StartTime int64
	EndTime   int64
}

// Resolve reads the configuration of the read path.
func Resolve(p Parameters) (StoreConfig, error) {
	cfg := StoreConfig{
		URI:        strings.TrimSpace(p.Get(ParamURI).String()),
		Database:   strings.TrimSpace(p.Get(ParamDatabase).String()),
		Collection: strings.TrimSpace(p.Get(ParamCollection).String()),
		IDField:    strings.TrimSpace(p.Get(ParamIDField).String()),
		UseGridFS:  p.Get(ParamUseGridFS).Bool(),
		Query:      strings.TrimSpace(p.Get(ParamQuery).String()),
		StartTime:  p.StartOfTimeRange(),
		EndTime:    p.EndOfTimeRange(),
	}
	if cfg.IDField == "" {
		cfg.IDField = storagemodels.NativeIDField
	}
	if cfg.Query == "" {
		cfg.Query = DefaultQuery
	}
	return cfg, cfg.Validate()
}

// ResolveOutput reads the configuration of the write path. Identity field,
// query and time range do not apply to writes.
func ResolveOutput(p Parameters) (StoreConfig, error) {
	cfg := StoreConfig{
		URI:        strings.TrimSpace(p.Get(ParamURI).String()),
		Database:   strings.TrimSpace(p.Get(ParamDatabase).String()),
		Collection: strings.TrimSpace(p.Get(ParamCollection).String()),
		IDField:    storagemodels.NativeIDField,
		UseGridFS:  p.Get(ParamUseGridFS).Bool(),
		Query:      DefaultQuery,
	}
	return cfg, cfg.Validate()
}

// Validate checks that the connection target is complete.
func (c StoreConfig) Validate() error {
	switch {
	case c.URI == "":
		return errors.NewValidationError(ParamURI, "connection string is required")
	case c.Database == "":
		return errors.NewValidationError(ParamDatabase, "database is required")
	case c.Collection == "":
		return errors.NewValidationError(ParamCollection, "collection is required")
	}
	return nil
}

// UseObjectID reports whether documents are identified by the native _id.
func (c StoreConfig) UseObjectID() bool {
	return c.IDField == "" || c.IDField == storagemodels.NativeIDField
}

// Mode returns the storage mode selected by UseGridFS.
func (c StoreConfig) Mode() storagemodels.Mode {
	if c.UseGridFS {
		return storagemodels.ModeBucket
	}
	return storagemodels.ModeCollection
}

// TimeRange converts the configured bounds. Unbounded sides are zero.
func (c StoreConfig) TimeRange() (start, end time.Time) {
	if c.StartTime > 0 {
		start = time.UnixMilli(c.StartTime).UTC()
	}
	if c.EndTime > 0 {
		end = time.UnixMilli(c.EndTime).UTC()
	}
	return start, end
}

// QueryParams returns the enumeration parameters of the configuration.
func (c StoreConfig) QueryParams() *storagemodels.QueryParams {
	start, end := c.TimeRange()
	return &storagemodels.QueryParams{Filter: c.Query, Start: start, End: end}
}

// Target describes the repository for logs and errors without credentials.
func (c StoreConfig) Target() string {
	return fmt.Sprintf("%s/%s.%s", RedactURI(c.URI), c.Database, c.Collection)
}

// RedactURI strips user information from a connection string.
func RedactURI(uri string) string {
	u, err := url.Parse(uri)
	if err != nil || u.Host == "" {
		if i := strings.LastIndex(uri, "@"); i >= 0 {
			if j := strings.Index(uri, "://"); j >= 0 && j < i {
				return uri[:j+3] + uri[i+1:]
			}
			return uri[i+1:]
		}
		return uri
	}
	u.User = nil
	return u.Scheme + "://" + u.Host + u.EscapedPath()
}
