package store

import (
	"errors"
	"fmt"
)

// ConsistencyError reports a violated relationship invariant: an
// energy's explicit geometry reference disagrees with its
// calculation's geometry reference. The insert is rejected and
// nothing is committed.
type ConsistencyError struct {
	// CalculationID is the calculation the energy was recorded for.
	CalculationID int64

	// GeometryID is the geometry reference the caller supplied.
	GeometryID int64

	// WantGeometryID is the calculation's actual geometry reference.
	WantGeometryID int64
}

// Error implements the error interface.
func (e *ConsistencyError) Error() string {
	return fmt.Sprintf(
		"energy geometry %d disagrees with calculation %d geometry %d",
		e.GeometryID, e.CalculationID, e.WantGeometryID)
}

// IsConsistencyError returns true if the error is a relationship
// consistency violation. Uses errors.As to handle wrapped errors.
func IsConsistencyError(err error) bool {
	var ce *ConsistencyError
	return errors.As(err, &ce)
}
