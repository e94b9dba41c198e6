// Package input exposes the data of an HTTP request as dot-path bags.
//
// Query and form keys written in bracket notation ("user[name]", "tags[]")
// or dot notation ("user.name") become nested paths. JSON and YAML bodies are
// decoded into the same nested shape. Middleware parses a request once and
// stores the result in its context for handlers to pick up with FromContext.
package input
