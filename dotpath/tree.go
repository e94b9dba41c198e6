package dotpath

import (
	"fmt"
	"slices"
	"strconv"

	"dario.cat/mergo"
)

// Keys returns the sorted paths of every leaf in root.
// Empty Maps count as leaves so that they stay addressable. A key that itself
// contains "." yields a path that Lookup splits differently, so such keys are
// listed but not addressable.
func Keys(root Map) []string {
	keys := make([]string, 0, len(root))
	collectKeys(root, nil, &keys)
	slices.Sort(keys)

	return keys
}

func collectKeys(container Map, parents []string, keys *[]string) {
	for key, value := range container {
		segments := append(slices.Clone(parents), key)

		child, isMap := value.(Map)
		if isMap && len(child) > 0 {
			collectKeys(child, segments, keys)

			continue
		}

		*keys = append(*keys, Join(segments...))
	}
}

// Clone returns a deep copy of m. Terminal values are copied shallowly.
func Clone(m Map) Map {
	if m == nil {
		return nil
	}

	cloned, _ := cloneValue(m).(Map)

	return cloned
}

// CloneValue deep-copies containers and returns any other value unchanged.
func CloneValue(value any) any {
	return cloneValue(value)
}

func cloneValue(value any) any {
	switch typed := value.(type) {
	case Map:
		out := make(Map, len(typed))
		for key, child := range typed {
			out[key] = cloneValue(child)
		}

		return out
	case []any:
		out := make([]any, len(typed))
		for i, child := range typed {
			out[i] = cloneValue(child)
		}

		return out
	default:
		return value
	}
}

// Normalize converts decoded data into the container shape used by this
// package: []any becomes a Map keyed by index and map[any]any keys are
// stringified. The result never aliases value.
func Normalize(value any) any {
	switch typed := value.(type) {
	case Map:
		out := make(Map, len(typed))
		for key, child := range typed {
			out[key] = Normalize(child)
		}

		return out
	case map[any]any:
		out := make(Map, len(typed))
		for key, child := range typed {
			out[fmt.Sprint(key)] = Normalize(child)
		}

		return out
	case []any:
		out := make(Map, len(typed))
		for i, child := range typed {
			out[strconv.Itoa(i)] = Normalize(child)
		}

		return out
	default:
		return value
	}
}

// NormalizeMap is Normalize for a root container. A nil input yields an empty Map.
func NormalizeMap(m Map) Map {
	if m == nil {
		return Map{}
	}

	normalized, _ := Normalize(m).(Map)

	return normalized
}

// Merge deep-merges src into dst. Nested Maps are merged key by key; any
// other value in src, including zero values, replaces the one in dst.
// src is copied first, so dst never shares containers with it.
func Merge(dst, src Map) error {
	if dst == nil {
		return fmt.Errorf("merging: %w", ErrNilContainer)
	}

	err := mergo.Merge(&dst, Clone(src), mergo.WithOverride)
	if err != nil {
		return fmt.Errorf("merging: %w", err)
	}

	return nil
}

// Denormalize reverses Normalize for encoding: a non-empty Map whose keys are
// exactly "0".."n-1" becomes a []any. Other values are copied as they are.
func Denormalize(value any) any {
	typed, isMap := value.(Map)
	if !isMap {
		return cloneValue(value)
	}

	if items, isList := asList(typed); isList {
		return items
	}

	out := make(Map, len(typed))
	for key, child := range typed {
		out[key] = Denormalize(child)
	}

	return out
}

func asList(m Map) ([]any, bool) {
	if len(m) == 0 {
		return nil, false
	}

	items := make([]any, len(m))

	for i := range items {
		child, exists := m[strconv.Itoa(i)]
		if !exists {
			return nil, false
		}

		items[i] = Denormalize(child)
	}

	return items, true
}
