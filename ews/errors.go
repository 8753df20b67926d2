package ews

import (
	"errors"
	"fmt"
)

var (
	// ErrMessageNotFound is returned when a fetch-by-id yields no item
	// fragments. Exchange reports this as an empty result set, not a fault.
	ErrMessageNotFound = errors.New("message not found")

	// ErrAttachmentNotFound is returned when an attachment fetch yields no
	// FileAttachment fragment.
	ErrAttachmentNotFound = errors.New("attachment not found")

	// ErrUnsupportedOperation is returned by operations Exchange does not
	// support for this item type.
	ErrUnsupportedOperation = errors.New("operation not supported for this item type")

	// ErrMissingFolderID is returned when an operation needs a target
	// folder id and none is set.
	ErrMissingFolderID = errors.New("a folder id is required")

	// ErrMissingIdentity is returned when an operation needs the item id
	// and change key assigned by the server and the message has neither.
	ErrMissingIdentity = errors.New("message id and change key are required")

	// ErrNoTransport is returned by collection operations on a locally
	// assembled list that was never bound to a transport.
	ErrNoTransport = errors.New("no transport available")
)

// PropertyError reports a tracked property that could not be assigned.
type PropertyError struct {
	Key   string
	Value any
}

func (e *PropertyError) Error() string {
	return fmt.Sprintf("property %q could not be set to %v", e.Key, e.Value)
}
