// Package config provides configuration management built on dot-notation paths.
//
// Two layers live here. The Provider function keeps a single typed struct
// flow with four extension points:
//   - Parser: deserializes raw data into config struct, with path navigation support
//   - DataFetcher: retrieves raw config data (file, env, etc.)
//   - Validator: validates config after parsing
//   - Defaulter: applies default values before validation
//
// The Registry manages named sections loaded lazily from a Source (see
// config/loader for layered files). Keys address a section by their first
// segment and a path inside it by the rest:
//
//	"database"              -> the whole database section
//	"database.primary.host" -> section "database", path "primary.host"
//
// Reads return a default on absence unless Strict is requested, in which case
// an error wrapping dotpath.ErrMissingPath is returned.
//
// # Example
//
//	source, err := loader.New(yamlparser.NewParser(), []string{"config", "config/production"})
//	if err != nil {
//	    // handle
//	}
//	registry, err := config.NewRegistry(source)
//	if err != nil {
//	    // handle
//	}
//	host, err := registry.Get(ctx, "database.primary.host", config.WithDefault("localhost"))
//
// Typed structs are decoded from a section subtree with Decode, and objects
// selected by a discriminant field are built with Factories.
package config
