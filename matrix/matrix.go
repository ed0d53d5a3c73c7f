package matrix

import "errors"

// ErrInvalidDimensions indicates that requested matrix dimensions are non-positive.
var ErrInvalidDimensions = errors.New("matrix: dimensions must be > 0")

// ErrIndexOutOfBounds indicates that a row or column index is outside valid range.
var ErrIndexOutOfBounds = errors.New("matrix: index out of bounds")

// ErrRaggedRows indicates that the rows of a [][]float64 source differ in length.
var ErrRaggedRows = errors.New("matrix: ragged source rows")

// Matrix is the read-mostly numeric matrix abstraction consumed by the solver.
//
// Implementations must be deterministic: At(i,j) always returns the same
// value for the same state, and all methods are safe for concurrent readers
// as long as no Set is in flight.
type Matrix interface {
	// Rows returns the number of rows.
	Rows() int
	// Cols returns the number of columns.
	Cols() int
	// At retrieves the element at (row, col), or ErrIndexOutOfBounds.
	At(row, col int) (float64, error)
	// Set assigns v at (row, col), or ErrIndexOutOfBounds.
	Set(row, col int, v float64) error
	// Clone returns an independent deep copy.
	Clone() Matrix
}
