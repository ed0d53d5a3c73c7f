// Package matrix provides the dense numeric matrix used as the solver's
// distance-matrix container.
//
// Dense is a concrete, row-major implementation of the Matrix interface,
// storing elements in a flat slice for performance and cache friendliness.
// The solver consumes matrices read-only; construction helpers live in
// package geo.
package matrix
