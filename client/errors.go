package client

import (
	"errors"
	"strings"
)

// ErrTooManyImages is returned before any network call when more than 5
// images are supplied to an upload.
var ErrTooManyImages = errors.New("at most 5 images per upload")

// ErrNoImages is returned when an upload is requested with no images.
var ErrNoImages = errors.New("no images to upload")

// ValidationError carries the ordered list of draft problems. It never
// involves the network; the caller must correct the draft.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "invalid draft: " + strings.Join(e.Messages, "; ")
}

// UploadError means the media service was unreachable or returned no usable
// URLs. The report was not created.
type UploadError struct {
	Err error
}

func (e *UploadError) Error() string { return "image upload failed: " + e.Err.Error() }
func (e *UploadError) Unwrap() error { return e.Err }

// CreateError means the report store rejected the creation request. Any
// already-uploaded images stay behind on the media service.
type CreateError struct {
	Err error
}

func (e *CreateError) Error() string { return "report creation failed: " + e.Err.Error() }
func (e *CreateError) Unwrap() error { return e.Err }

// FetchError means a listing or detail retrieval failed. Callers may retry
// with the same parameters.
type FetchError struct {
	Err error
}

func (e *FetchError) Error() string { return "fetching reports failed: " + e.Err.Error() }
func (e *FetchError) Unwrap() error { return e.Err }
