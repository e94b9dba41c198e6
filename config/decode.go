package config

import (
	"context"
	"fmt"

	yamlparser "github.com/0xalexb/hjarta-kit/config/parser/yaml"
)

// Decode populates target from the subtree at key and then applies the
// Defaulter and Validator hooks, like Provider does for whole documents.
// The key must exist.
func Decode[T any](ctx context.Context, registry *Registry, key string, target *T) (*T, error) {
	value, err := registry.Get(ctx, key, Strict())
	if err != nil {
		return nil, err
	}

	parser := yamlparser.NewParser()

	data, err := parser.Encode(value)
	if err != nil {
		return nil, fmt.Errorf("encoding %q: %w", key, err)
	}

	err = parser.Parse(data, target, "")
	if err != nil {
		return nil, fmt.Errorf("parsing error: %w", err)
	}

	return finalize(target, key)
}
