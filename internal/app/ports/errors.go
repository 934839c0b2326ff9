package ports

import "errors"

// ErrNotFound reports that no snapshot is stored under the requested key.
var ErrNotFound = errors.New("snapshot not found")

// ErrLeaseHeld reports that another process owns the writer lease.
var ErrLeaseHeld = errors.New("writer lease held by another process")
