package input

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"mime"
	"net/http"
	"net/url"
	"slices"
	"strings"

	"github.com/0xalexb/hjarta-kit/bag"
	yamlparser "github.com/0xalexb/hjarta-kit/config/parser/yaml"
	"github.com/0xalexb/hjarta-kit/dotpath"
)

// DefaultMaxBodyBytes is used when a non-positive body limit is given.
const DefaultMaxBodyBytes int64 = 1048576 // 1MB

var (
	// ErrBodyTooLarge is returned when the body exceeds the configured limit.
	ErrBodyTooLarge = errors.New("request body too large")
	// ErrMalformedBody is returned when the body cannot be decoded.
	ErrMalformedBody = errors.New("malformed request body")
)

// bodyParser decodes JSON and YAML bodies; repeated keys keep their last value.
var bodyParser = yamlparser.NewParser(yamlparser.AllowDuplicateKeys()) //nolint:gochecknoglobals // stateless

// Request holds the parsed data of an HTTP request.
// Body entries take precedence over query entries in Get, Has and All.
type Request struct {
	Query   *bag.Bag
	Body    *bag.Bag
	Headers *bag.Bag
}

// Get returns the value at path from the body, then the query, or def.
func (r *Request) Get(path string, def any) any {
	if value, found := r.Body.Lookup(path); found {
		return value
	}

	return r.Query.Get(path, def)
}

// Has reports whether path resolves in the body or the query.
func (r *Request) Has(path string) bool {
	return r.Body.Has(path) || r.Query.Has(path)
}

// All returns the query merged with the body.
func (r *Request) All() (dotpath.Map, error) {
	merged := r.Query.All()

	err := dotpath.Merge(merged, r.Body.All())
	if err != nil {
		return nil, fmt.Errorf("merging request data: %w", err)
	}

	return merged, nil
}

// Header returns the first value of the named header; names are case-insensitive.
func (r *Request) Header(name string) string {
	value, found := r.Headers.Lookup(strings.ToLower(name))
	if !found {
		return ""
	}

	if values, isList := value.(dotpath.Map); isList {
		value = values["0"]
	}

	first, _ := value.(string)

	return first
}

// Parse reads query parameters, headers and body of req.
// The body is read once, bounded by maxBytes, and decoded according to its
// media type: JSON and YAML documents, urlencoded and multipart forms.
// Other media types leave the body bag empty.
func Parse(req *http.Request, maxBytes int64) (*Request, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBodyBytes
	}

	query, err := fromValues(req.URL.Query())
	if err != nil {
		return nil, fmt.Errorf("parsing query: %w", err)
	}

	body, err := parseBody(req, maxBytes)
	if err != nil {
		return nil, err
	}

	return &Request{
		Query:   bag.New(query),
		Body:    bag.New(body),
		Headers: bag.New(fromHeader(req.Header)),
	}, nil
}

func parseBody(req *http.Request, maxBytes int64) (dotpath.Map, error) {
	if req.Body == nil || req.Body == http.NoBody {
		return dotpath.Map{}, nil
	}

	mediaType, _, err := mime.ParseMediaType(req.Header.Get("Content-Type"))
	if err != nil {
		return dotpath.Map{}, nil //nolint:nilerr // untyped bodies carry no input
	}

	req.Body = http.MaxBytesReader(nil, req.Body, maxBytes)

	switch {
	case isDocument(mediaType):
		return decodeDocument(req.Body)
	case mediaType == "application/x-www-form-urlencoded":
		err = req.ParseForm()
	case mediaType == "multipart/form-data":
		err = req.ParseMultipartForm(maxBytes)
	default:
		slog.Debug("input: ignoring body", slog.String("content_type", mediaType))

		return dotpath.Map{}, nil
	}

	if err != nil {
		return nil, bodyError(err)
	}

	form, err := fromValues(req.PostForm)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedBody, err)
	}

	return form, nil
}

func isDocument(mediaType string) bool {
	switch mediaType {
	case "application/json", "application/yaml", "application/x-yaml", "text/yaml":
		return true
	}

	return strings.HasSuffix(mediaType, "+json") || strings.HasSuffix(mediaType, "+yaml")
}

func decodeDocument(body io.Reader) (dotpath.Map, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, bodyError(err)
	}

	document, err := bodyParser.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedBody, err)
	}

	return document, nil
}

func bodyError(err error) error {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return fmt.Errorf("%w: limit is %d bytes", ErrBodyTooLarge, maxBytesErr.Limit)
	}

	return fmt.Errorf("%w: %w", ErrMalformedBody, err)
}

// fromValues builds a container from parameters in sorted name order.
func fromValues(values url.Values) (dotpath.Map, error) {
	data := dotpath.Map{}

	for _, name := range slices.Sorted(maps.Keys(values)) {
		err := assign(data, name, values[name])
		if err != nil {
			return nil, err
		}
	}

	return data, nil
}

// fromHeader stores single values as strings and repeated ones as lists.
func fromHeader(header http.Header) dotpath.Map {
	data := make(dotpath.Map, len(header))

	for name, values := range header {
		key := strings.ToLower(name)

		switch len(values) {
		case 0:
		case 1:
			data[key] = values[0]
		default:
			data[key] = dotpath.Normalize(stringsToAny(values))
		}
	}

	return data
}

func stringsToAny(values []string) []any {
	items := make([]any, len(values))
	for i, value := range values {
		items[i] = value
	}

	return items
}
