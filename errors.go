package openms

import (
	"errors"
	"fmt"
)

var (
	// ErrImmutablePayload is returned when a mutable payload view is
	// requested on an instance holding shared read-only references.
	ErrImmutablePayload = errors.New("payloads are read-only")
)

// ErrOwnershipConflict indicates an ingestion call whose payload ownership
// does not match the mode the instance was constructed with.
type ErrOwnershipConflict struct {
	Mode      PayloadMode // mode the instance was constructed with
	Requested PayloadMode // mode the ingestion call requires
}

// Error returns the error message for an ownership conflict.
func (e *ErrOwnershipConflict) Error() string {
	return fmt.Sprintf("ownership conflict: instance holds %s payloads, ingestion requires %s", e.Mode, e.Requested)
}

// ErrIndexOutOfRange indicates a feature id at or beyond the current size.
type ErrIndexOutOfRange struct {
	Index int
	Size  int
}

// Error returns the error message for an out-of-range feature id.
func (e *ErrIndexOutOfRange) Error() string {
	return fmt.Sprintf("feature index out of range: %d (size %d)", e.Index, e.Size)
}

// ErrMapCountMismatch indicates a per-map argument whose length does not
// match the number of source maps.
type ErrMapCountMismatch struct {
	Expected int
	Actual   int
}

// Error returns the error message for a map count mismatch.
func (e *ErrMapCountMismatch) Error() string {
	return fmt.Sprintf("map count mismatch: expected %d, got %d", e.Expected, e.Actual)
}
