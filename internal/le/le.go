// Package le provides little-endian loads and stores over byte slices.
//
// On 64 bit little-endian platforms the operations compile to single
// unchecked moves; elsewhere they fall back to encoding/binary. Callers are
// responsible for bounds: an index must leave room for the full width of the
// access.
package le

// Indexer is the set of types accepted as slice indexes by the load
// functions.
type Indexer interface {
	int | int8 | int16 | int32 | int64
}
