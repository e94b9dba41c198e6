package file

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrPathIsDirectory is returned when the path provided to the Fetcher points to a directory instead of a file.
var ErrPathIsDirectory = errors.New("path is a directory, not a file")

// Fetcher implements config.DataFetcher interface for file-based configuration.
// It reads configuration data from a file at construction time and caches the contents.
type Fetcher struct {
	filepath string
	data     []byte
}

// NewFetcher returns a constructor function that creates a new file-based Fetcher
// with the specified filepath. The file is read at construction time and cached.
// This pattern is Fx-friendly, allowing the DI container to control when instantiation happens.
// Returns an error if the file cannot be read or if the path points to a directory.
func NewFetcher(fpath string) func() (*Fetcher, error) {
	return func() (*Fetcher, error) {
		cleanPath := filepath.Clean(fpath)

		return read(cleanPath,
			func() (fs.FileInfo, error) { return os.Stat(cleanPath) },
			func() ([]byte, error) { return os.ReadFile(cleanPath) }, // #nosec G304 -- path is cleaned and validated
		)
	}
}

// NewFSFetcher is NewFetcher for a file inside fsys, such as an embed.FS or fstest.MapFS.
// Names follow fs.ValidPath: slash-separated, unrooted and without ".." elements.
func NewFSFetcher(fsys fs.FS, name string) func() (*Fetcher, error) {
	return func() (*Fetcher, error) {
		if !fs.ValidPath(name) {
			return nil, fmt.Errorf("stat file %q: %w", name, fs.ErrInvalid)
		}

		return read(name,
			func() (fs.FileInfo, error) { return fs.Stat(fsys, name) },
			func() ([]byte, error) { return fs.ReadFile(fsys, name) },
		)
	}
}

func read(name string, stat func() (fs.FileInfo, error), readFile func() ([]byte, error)) (*Fetcher, error) {
	info, err := stat()
	if err != nil {
		return nil, fmt.Errorf("stat file %q: %w", name, err)
	}

	if info.IsDir() {
		return nil, fmt.Errorf("path %q: %w", name, ErrPathIsDirectory)
	}

	data, err := readFile()
	if err != nil {
		return nil, fmt.Errorf("reading file %q: %w", name, err)
	}

	return &Fetcher{
		filepath: name,
		data:     data,
	}, nil
}

// Path returns the path the data was read from.
func (f *Fetcher) Path() string {
	return f.filepath
}

// Fetch returns a copy of the cached configuration data that was read at construction time.
// A copy is returned to prevent callers from mutating the cached data.
func (f *Fetcher) Fetch() ([]byte, error) {
	result := make([]byte, len(f.data))
	copy(result, f.data)

	return result, nil
}
