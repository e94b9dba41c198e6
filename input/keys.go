package input

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/0xalexb/hjarta-kit/dotpath"
)

// ErrMalformedKey is returned for parameter names with unbalanced brackets
// or an empty bracket pair before the last one.
var ErrMalformedKey = errors.New("malformed parameter name")

// keyPath converts a parameter name into a dot path.
// A trailing "[]" is reported through appendValue instead of being part of the path.
func keyPath(name string) (string, bool, error) {
	base, rest, hasBrackets := strings.Cut(name, "[")
	if !hasBrackets {
		return name, false, nil
	}

	segments := []string{base}
	appendValue := false
	rest = "[" + rest

	for rest != "" {
		if appendValue || rest[0] != '[' {
			return "", false, fmt.Errorf("%w: %q", ErrMalformedKey, name)
		}

		end := strings.IndexByte(rest, ']')
		if end < 0 {
			return "", false, fmt.Errorf("%w: %q", ErrMalformedKey, name)
		}

		segment := rest[1:end]
		rest = rest[end+1:]

		if segment == "" {
			appendValue = true

			continue
		}

		segments = append(segments, segment)
	}

	return dotpath.Join(segments...), appendValue, nil
}

// assign writes values of one parameter into data.
// Appended values continue after the entries already stored at the path.
func assign(data dotpath.Map, name string, values []string) error {
	if name == "" || len(values) == 0 {
		return nil
	}

	path, appendValue, err := keyPath(name)
	if err != nil {
		return err
	}

	if !appendValue {
		return setParam(data, name, path, values[len(values)-1])
	}

	list, err := dotpath.Create(data, path)
	if err != nil {
		return fmt.Errorf("parameter %q: %w", name, err)
	}

	for _, value := range values {
		list[strconv.Itoa(len(list))] = value
	}

	return nil
}

func setParam(data dotpath.Map, name, path string, value string) error {
	err := dotpath.Set(data, path, value)
	if err != nil {
		return fmt.Errorf("parameter %q: %w", name, err)
	}

	return nil
}
