package yaml

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/0xalexb/hjarta-kit/dotpath"

	"github.com/goccy/go-yaml"
)

// ErrEmptyData is returned when the input data is empty.
var ErrEmptyData = errors.New("empty data")

// ErrPathNotFound is returned when the specified path is not found in the YAML document.
var ErrPathNotFound = errors.New("path not found")

// ErrInvalidPath is returned for paths that cannot be expressed as a YAML path.
var ErrInvalidPath = errors.New("invalid path")

// ErrNotMapping is returned by Decode when the document root is not a mapping.
var ErrNotMapping = errors.New("document root is not a mapping")

// Parser implements config.Parser interface for YAML data.
// It uses goccy/go-yaml PathString for efficient path navigation.
// JSON documents are accepted as well, being valid YAML.
type Parser struct {
	decodeOpts []yaml.DecodeOption
}

// Option configures a Parser.
type Option func(*Parser)

// AllowDuplicateKeys makes Decode accept repeated mapping keys, the last
// occurrence winning, as JSON decoders commonly do. By default they are an error.
func AllowDuplicateKeys() Option {
	return func(p *Parser) {
		p.decodeOpts = append(p.decodeOpts, yaml.AllowDuplicateMapKey())
	}
}

// NewParser creates a new YAML parser instance.
func NewParser(opts ...Option) *Parser {
	parser := &Parser{}

	for _, apply := range opts {
		apply(parser)
	}

	return parser
}

// Parse parses YAML data and unmarshals it into the target.
// The path parameter is a dot-notation path; the empty path parses the entire document.
func (p *Parser) Parse(data []byte, target any, path string) error {
	if len(data) == 0 {
		return ErrEmptyData
	}

	if path == "" {
		err := yaml.Unmarshal(data, target)
		if err != nil {
			return fmt.Errorf("unmarshal error: %w", err)
		}

		return nil
	}

	yamlPath, err := convertToYAMLPath(path)
	if err != nil {
		return err
	}

	pathObj, err := yaml.PathString(yamlPath)
	if err != nil {
		return fmt.Errorf("%w %q: %w", ErrInvalidPath, path, err)
	}

	err = pathObj.Read(bytes.NewReader(data), target)
	if err != nil {
		if yaml.IsNotFoundNodeError(err) {
			return fmt.Errorf("%w: %s", ErrPathNotFound, path)
		}

		return fmt.Errorf("reading path %q: %w", path, err)
	}

	return nil
}

// Decode parses a whole document into a normalized container.
// Sequences become index-keyed maps and integers that fit are returned as int.
// Empty and null documents decode to an empty container.
func (p *Parser) Decode(data []byte) (dotpath.Map, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return dotpath.Map{}, nil
	}

	var document any

	err := yaml.UnmarshalWithOptions(data, &document, p.decodeOpts...)
	if err != nil {
		return nil, fmt.Errorf("unmarshal error: %w", err)
	}

	if document == nil {
		return dotpath.Map{}, nil
	}

	container, isMap := canonical(dotpath.Normalize(document)).(dotpath.Map)
	if !isMap {
		return nil, fmt.Errorf("%w: got %T", ErrNotMapping, document)
	}

	return container, nil
}

// DecodeValue parses a single YAML value, such as a command-line argument.
func (p *Parser) DecodeValue(data []byte) (any, error) {
	var value any

	err := yaml.Unmarshal(data, &value)
	if err != nil {
		return nil, fmt.Errorf("unmarshal error: %w", err)
	}

	return canonical(dotpath.Normalize(value)), nil
}

// Encode renders a container as YAML. Index-keyed maps are written as sequences.
func (p *Parser) Encode(value any) ([]byte, error) {
	data, err := yaml.Marshal(dotpath.Denormalize(value))
	if err != nil {
		return nil, fmt.Errorf("marshal error: %w", err)
	}

	return data, nil
}

// convertToYAMLPath converts a dot-notation path to goccy/go-yaml PathString format.
// Examples:
//   - "key" -> "$.key"
//   - "api.permissions" -> "$.api.permissions"
//
// Empty segments would read as recursive descent and are rejected.
func convertToYAMLPath(path string) (string, error) {
	segments := dotpath.Split(path)
	if slices.Contains(segments, "") {
		return "", fmt.Errorf("%w %q: empty segment", ErrInvalidPath, path)
	}

	return "$." + dotpath.Join(segments...), nil
}

func canonical(value any) any {
	switch typed := value.(type) {
	case dotpath.Map:
		for key, child := range typed {
			typed[key] = canonical(child)
		}

		return typed
	case int64:
		if typed >= math.MinInt && typed <= math.MaxInt {
			return int(typed)
		}

		return typed
	case uint64:
		if typed <= math.MaxInt {
			return int(typed)
		}

		return typed
	default:
		return value
	}
}
