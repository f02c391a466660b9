// Package stream implements single-use calls whose dispatched value ramps
// up linearly with elapsed time toward a target timestamp.
package stream
