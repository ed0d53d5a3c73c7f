// Package geo supplies the solver's external collaborators: city records,
// the built-in Morocco data set, and pairwise distance-matrix builders
// (planar Euclidean and great-circle haversine). It also loads city
// coordinates from xlsx spreadsheets.
//
// The solver core never depends on this package; it consumes the produced
// matrix.Matrix read-only.
package geo
