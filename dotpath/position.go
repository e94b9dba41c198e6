package dotpath

import "fmt"

// Position addresses a single key inside an owning container.
// It stands in for a reference into the nested structure: mutations through a
// Position are visible to every holder of the root.
type Position struct {
	Owner Map
	Key   string
}

// Value returns the value stored at the position.
func (p Position) Value() (any, bool) {
	value, exists := p.Owner[p.Key]

	return value, exists
}

// Set stores value at the position.
func (p Position) Set(value any) {
	p.Owner[p.Key] = value
}

// Delete removes the key and reports whether it was present.
func (p Position) Delete() bool {
	if _, exists := p.Owner[p.Key]; !exists {
		return false
	}

	delete(p.Owner, p.Key)

	return true
}

// Locate resolves the owner of the terminal key of path.
//
// With create disabled the parent is resolved read-only and found is false
// when it does not exist. With create enabled missing parents are
// materialized and found is always true on success.
func Locate(root Map, path string, create bool) (Position, bool, error) {
	segments := Split(path)
	if len(segments) == 0 {
		return Position{}, false, fmt.Errorf("locating terminal key: %w", ErrEmptyPath)
	}

	parents, key := segments[:len(segments)-1], segments[len(segments)-1]

	if create {
		owner, err := createSegments(root, parents, path)
		if err != nil {
			return Position{}, false, err
		}

		return Position{Owner: owner, Key: key}, true, nil
	}

	parent, found := lookupSegments(root, parents)
	if !found {
		return Position{}, false, nil
	}

	owner, isMap := parent.(Map)
	if !isMap {
		return Position{}, false, nil
	}

	return Position{Owner: owner, Key: key}, true, nil
}
