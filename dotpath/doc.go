// Package dotpath resolves dot-notation paths against nested key-value data.
//
// A container is a Map whose values are either terminal values or further
// Maps. Sequences are stored as Maps keyed "0", "1", ... (see Normalize), so
// traversal only ever deals with one container type.
//
// Paths are split on "." with no escaping:
//
//	""        -> the root container itself
//	"a.b.c"   -> root["a"]["b"]["c"]
//	"a..b"    -> root["a"][""]["b"]
//
// Reads never fail: absence is reported as a false second return value and is
// distinct from a present zero value. Writes materialize missing intermediate
// Maps and fail with ErrTraversalConflict when a non-container value is in
// the way.
//
// The package holds no state and performs no locking. Callers sharing a
// container across goroutines must synchronize access themselves, as the bag
// package does.
package dotpath
