package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/0xalexb/hjarta-kit/config"
	filefetcher "github.com/0xalexb/hjarta-kit/config/fetcher/file"
	"github.com/0xalexb/hjarta-kit/dotpath"

	"github.com/bmatcuk/doublestar/v4"
)

// ErrNoLayers is returned when a Loader is created without layers.
var ErrNoLayers = errors.New("at least one layer is required")

// ErrInvalidSection is returned for section names that are not plain file names.
var ErrInvalidSection = errors.New("invalid section name")

// ErrNilDecoder is returned when a Loader is created without a Decoder.
var ErrNilDecoder = errors.New("decoder must not be nil")

// Extensions lists the file extensions of section files, merged in this order within a layer.
//
//nolint:gochecknoglobals // read-only lookup table.
var Extensions = []string{".yaml", ".yml", ".json"}

const sectionPattern = "*.{yaml,yml,json}"

// Decoder turns raw file contents into a container.
// *yaml.Parser from config/parser/yaml implements it.
type Decoder interface {
	Decode(data []byte) (dotpath.Map, error)
}

// Option configures a Loader.
type Option func(*Loader)

// WithLogger sets the logger used by the Loader. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// Loader reads sections from layered directories. It implements config.Source and config.Watcher.
type Loader struct {
	decoder Decoder
	layers  []string
	logger  *slog.Logger
}

var (
	_ config.Source  = (*Loader)(nil)
	_ config.Watcher = (*Loader)(nil)
)

// New creates a Loader over layers, lowest precedence first.
func New(decoder Decoder, layers []string, opts ...Option) (*Loader, error) {
	if decoder == nil {
		return nil, ErrNilDecoder
	}

	if len(layers) == 0 {
		return nil, ErrNoLayers
	}

	loader := &Loader{
		decoder: decoder,
		layers:  make([]string, 0, len(layers)),
		logger:  slog.Default(),
	}

	for _, layer := range layers {
		loader.layers = append(loader.layers, filepath.Clean(layer))
	}

	for _, apply := range opts {
		apply(loader)
	}

	return loader, nil
}

// Layers returns the cleaned layer directories, lowest precedence first.
func (l *Loader) Layers() []string {
	return slices.Clone(l.layers)
}

// Load merges every file of section across layers.
func (l *Loader) Load(ctx context.Context, section string) (dotpath.Map, error) {
	err := validateSection(section)
	if err != nil {
		return nil, err
	}

	result := dotpath.Map{}
	found := false

	for _, layer := range l.layers {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("loading section %q: %w", section, err)
		}

		for _, ext := range Extensions {
			path := filepath.Join(layer, section+ext)

			data, exists, err := l.read(path)
			if err != nil {
				return nil, err
			}

			if !exists {
				continue
			}

			err = dotpath.Merge(result, data)
			if err != nil {
				return nil, fmt.Errorf("merging %q: %w", path, err)
			}

			found = true

			l.logger.Debug("config layer applied",
				slog.String("section", section), slog.String("file", path))
		}
	}

	if !found {
		return nil, fmt.Errorf("%w: %q", config.ErrSectionNotFound, section)
	}

	return result, nil
}

// Sections lists the section names available in any layer, sorted.
func (l *Loader) Sections() ([]string, error) {
	var names []string

	for _, layer := range l.layers {
		matches, err := doublestar.Glob(os.DirFS(layer), sectionPattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("listing %q: %w", layer, err)
		}

		for _, match := range matches {
			name, _ := sectionOf(match)
			names = append(names, name)
		}
	}

	slices.Sort(names)

	return slices.Compact(names), nil
}

func (l *Loader) read(path string) (dotpath.Map, bool, error) {
	fetcher, err := filefetcher.NewFetcher(path)()
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}

	if err != nil {
		return nil, false, err
	}

	raw, err := fetcher.Fetch()
	if err != nil {
		return nil, false, fmt.Errorf("reading %q: %w", path, err)
	}

	data, err := l.decoder.Decode(raw)
	if err != nil {
		return nil, false, fmt.Errorf("decoding %q: %w", path, err)
	}

	return data, true, nil
}

func validateSection(section string) error {
	if section == "" || section == "." || section == ".." ||
		strings.ContainsAny(section, `/\`) || strings.ContainsRune(section, 0) {
		return fmt.Errorf("%w: %q", ErrInvalidSection, section)
	}

	return nil
}

// sectionOf maps a file name to its section name.
func sectionOf(path string) (string, bool) {
	base := filepath.Base(path)
	ext := filepath.Ext(base)

	if !slices.Contains(Extensions, ext) {
		return "", false
	}

	name := strings.TrimSuffix(base, ext)

	return name, name != ""
}
