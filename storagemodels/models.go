/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storagemodels

import (
	"io"
	"time"

	"github.com/go-openapi/strfmt"
)

// Mode selects how documents are laid out in the store.
type Mode int

const (
	// ModeCollection stores one flat record per document in a plain collection.
	ModeCollection Mode = iota
	// ModeBucket stores documents as GridFS files whose attributes live in the
	// file's metadata sub-document.
	ModeBucket
)

func (m Mode) String() string {
	switch m {
	case ModeCollection:
		return "collection"
	case ModeBucket:
		return "gridfs"
	default:
		return "unknown"
	}
}

// Document is the generic document exchanged with the host runtime.
type Document struct {
	// ID is the document identity as resolved from the configured identity field.
	ID string `json:"id"`
	// Name is the stored filename.
	Name string `json:"name"`
	// MimeType is the stored content type, empty when absent.
	MimeType string `json:"mimeType"`
	// Size is the payload length in bytes.
	Size int64 `json:"size"`

	// Write-path inputs supplied by the caller.
	ParentPath   string          `json:"parentPath,omitempty"`
	CreatedDate  strfmt.DateTime `json:"createdDate,omitempty"`
	ModifiedDate strfmt.DateTime `json:"modifiedDate,omitempty"`
}

// Record is a single native result normalized across storage modes.
type Record struct {
	// NativeID is the store's own _id value.
	NativeID any
	// Name, Size and ContentType come from the GridFS file header in bucket mode
	// and from the reserved top-level fields in collection mode.
	Name        string
	Size        int64
	ContentType string
	// HasContentType is false when the reserved content-type field is absent.
	HasContentType bool
	// Fields holds the metadata sub-document in bucket mode and every top-level
	// field in collection mode.
	Fields map[string]any
	// Attributed reports whether the record carries user attributes. GridFS
	// files written without metadata are not attributed.
	Attributed bool
}

// Binary is an open payload stream located by document identity.
type Binary struct {
	ID       string
	Reader   io.ReadCloser
	MimeType string
}

// Close releases the underlying download stream.
func (b *Binary) Close() error {
	if b == nil || b.Reader == nil {
		return nil
	}
	return b.Reader.Close()
}

// Chunk is one piece of a pushed payload. A chunk with a non-nil Err ends the
// stream with that error.
type Chunk struct {
	Data []byte
	Err  error
}

// QueryParams defines the parameters of an enumeration query.
type QueryParams struct {
	// Filter is an extended JSON filter document. Empty matches everything.
	Filter string
	// Start and End bound the last-modified time of GridFS files. A zero value
	// leaves that side unbounded. Ignored in collection mode.
	Start time.Time
	End   time.Time
}

// HasTimeRange reports whether either bound is set.
func (p *QueryParams) HasTimeRange() bool {
	return p != nil && (!p.Start.IsZero() || !p.End.IsZero())
}
