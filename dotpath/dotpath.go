package dotpath

import (
	"errors"
	"fmt"
	"strings"
)

// Separator splits a path into segments.
const Separator = "."

// Map is a nested container.
type Map = map[string]any

// ErrTraversalConflict is returned when a write has to descend through a value that is not a Map.
var ErrTraversalConflict = errors.New("cannot descend into non-container value")

// ErrMissingPath is returned by strict readers when a path does not resolve.
var ErrMissingPath = errors.New("path not found")

// ErrEmptyPath is returned when an operation needs a terminal key and the path has none.
var ErrEmptyPath = errors.New("path must not be empty")

// ErrNilContainer is returned when a write targets a nil root.
var ErrNilContainer = errors.New("container is nil")

// Split returns the segments of path. The empty path has no segments.
func Split(path string) []string {
	if path == "" {
		return nil
	}

	return strings.Split(path, Separator)
}

// Join is the inverse of Split.
func Join(segments ...string) string {
	return strings.Join(segments, Separator)
}

// Lookup returns the value at path and whether it exists.
// The empty path resolves to root.
func Lookup(root Map, path string) (any, bool) {
	return lookupSegments(root, Split(path))
}

// Has reports whether path resolves in root.
func Has(root Map, path string) bool {
	_, found := Lookup(root, path)

	return found
}

// Get returns the value at path, or def when the path does not resolve.
// A present value is returned as is, even when it is nil, false, zero or empty.
func Get(root Map, path string, def any) any {
	value, found := Lookup(root, path)
	if !found {
		return def
	}

	return value
}

// Create makes sure every segment of path exists as a Map and returns the
// Map at path. Missing segments (and nil values) are replaced by empty Maps.
func Create(root Map, path string) (Map, error) {
	return createSegments(root, Split(path), path)
}

// Set stores value at path, creating intermediate Maps as needed.
// The last segment is always the terminal key, so a single-segment path writes
// into root. The empty path has no terminal key and is a no-op.
func Set(root Map, path string, value any) error {
	if path == "" {
		return nil
	}

	pos, _, err := Locate(root, path, true)
	if err != nil {
		return err
	}

	pos.Set(value)

	return nil
}

// Remove deletes the terminal key of path and reports whether anything was
// deleted. Unresolvable parents and missing keys are silently ignored.
func Remove(root Map, path string) bool {
	pos, found, err := Locate(root, path, false)
	if err != nil || !found {
		return false
	}

	return pos.Delete()
}

func lookupSegments(root Map, segments []string) (any, bool) {
	var current any = root

	for _, segment := range segments {
		container, isMap := current.(Map)
		if !isMap {
			return nil, false
		}

		value, exists := container[segment]
		if !exists {
			return nil, false
		}

		current = value
	}

	return current, true
}

func createSegments(root Map, segments []string, path string) (Map, error) {
	if root == nil {
		return nil, fmt.Errorf("writing %q: %w", path, ErrNilContainer)
	}

	current := root

	for i, segment := range segments {
		next, exists := current[segment]
		if !exists || next == nil {
			child := make(Map)
			current[segment] = child
			current = child

			continue
		}

		child, isMap := next.(Map)
		if !isMap {
			return nil, fmt.Errorf("%w: %q holds %T (path %q)",
				ErrTraversalConflict, Join(segments[:i+1]...), next, path)
		}

		current = child
	}

	return current, nil
}
