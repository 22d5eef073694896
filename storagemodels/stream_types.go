package storagemodels

import (
	"time"

	"golang.org/x/time/rate"
)

// StreamResult represents a single item in an enumeration with metadata
type StreamResult struct {
	Document *Document // The fetched document, nil when Error is set
	Error    error     // Terminal error, if any
	Meta     StreamMeta
}

// StreamMeta contains metadata about a streamed item
type StreamMeta struct {
	Index     int64     // Native result index (0-based)
	Timestamp time.Time // When item was fetched
}

// StreamOptions configures enumeration behavior
type StreamOptions struct {
	BufferSize      int                  // Channel buffer size (default: 100)
	ProgressHandler func(StreamProgress) // Optional progress callback
	ErrorHandler    func(error) bool     // Return true to skip the document, false to stop
	FetchRate       rate.Limit           // Per-document fetch rate (default: unlimited)
	FetchBurst      int                  // Burst for FetchRate (default: 1)
}

// StreamProgress tracks enumeration progress
type StreamProgress struct {
	ItemsProcessed int64     // Native results seen
	ItemsYielded   int64     // Documents sent to the consumer
	ItemsSkipped   int64     // Results skipped after a fetch failure or miss
	Duplicates     int64     // Results dropped because their identity was already yielded
	Errors         []error   // Accumulated non-fatal errors
	StartTime      time.Time // When enumeration started
	CurrentRate    float64   // Results per second
}

// StreamOption is a functional option for configuring enumeration
type StreamOption func(*StreamOptions)

// DefaultStreamOptions returns default enumeration options
func DefaultStreamOptions() StreamOptions {
	return StreamOptions{
		BufferSize: 100,
		FetchRate:  rate.Inf,
		FetchBurst: 1,
	}
}

// WithBufferSize sets the channel buffer size
func WithBufferSize(size int) StreamOption {
	return func(opts *StreamOptions) {
		opts.BufferSize = size
	}
}

// WithProgressHandler sets a progress callback
func WithProgressHandler(handler func(StreamProgress)) StreamOption {
	return func(opts *StreamOptions) {
		opts.ProgressHandler = handler
	}
}

// WithErrorHandler sets an error handler that can decide whether to continue
// after a per-document fetch failure
func WithErrorHandler(handler func(error) bool) StreamOption {
	return func(opts *StreamOptions) {
		opts.ErrorHandler = handler
	}
}

// WithFetchRate throttles per-document fetches to perSecond with the given
// burst. A rate of zero or less leaves fetches unlimited.
func WithFetchRate(perSecond float64, burst int) StreamOption {
	return func(opts *StreamOptions) {
		opts.FetchRate = rate.Inf
		if perSecond > 0 {
			opts.FetchRate = rate.Limit(perSecond)
		}
		if burst > 0 {
			opts.FetchBurst = burst
		}
	}
}
