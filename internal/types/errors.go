package types

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors for common failure modes. All are non-fatal: one bad
// record never aborts a batch.
var (
	ErrMissingName      = errors.New("record has no name")
	ErrUnknownStore     = errors.New("store is not in the configured set")
	ErrUnknownCategory  = errors.New("category is not in the configured set")
	ErrUnparseablePrice = errors.New("price text yields no numeric value")
	ErrEmptyPayload     = errors.New("payload contains no products")
)

// NormalizeError wraps errors that occur while normalizing a raw item.
type NormalizeError struct {
	Store Store
	Field string
	Err   error
}

func (e *NormalizeError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("normalize error for store %q (field=%q): %v", e.Store, e.Field, e.Err)
	}
	return fmt.Sprintf("normalize error for store %q: %v", e.Store, e.Err)
}

func (e *NormalizeError) Unwrap() error { return e.Err }

// IngestError wraps errors that occur while parsing a raw source.
type IngestError struct {
	Source string
	Path   string
	Err    error
}

func (e *IngestError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("ingest error (%s) for %s: %v", e.Source, e.Path, e.Err)
	}
	return fmt.Sprintf("ingest error (%s): %v", e.Source, e.Err)
}

func (e *IngestError) Unwrap() error { return e.Err }

// FetchError wraps errors that occur during fetching.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
	Retryable  bool
	RetryAfter time.Duration
}

func (e *FetchError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("fetch error for %s (status %d): %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch error for %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

func (e *FetchError) IsRetryable() bool { return e.Retryable }

// StorageError wraps errors that occur during storage/export.
type StorageError struct {
	Backend string
	Err     error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error (%s): %v", e.Backend, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// PipelineError wraps errors that occur in the cleanup pipeline.
type PipelineError struct {
	Stage string
	Item  *RawItem
	Err   error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("pipeline error at stage %q: %v", e.Stage, e.Err)
}

func (e *PipelineError) Unwrap() error { return e.Err }
