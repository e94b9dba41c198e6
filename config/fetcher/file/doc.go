// Package file provides a file-based DataFetcher implementation for the config package.
//
// The file is read at construction time and cached; Fetch returns a copy of
// the cached bytes. Files can come from the OS (NewFetcher) or from any fs.FS
// (NewFSFetcher), which is how embedded defaults and tests supply data.
//
// Usage:
//
//	fetcher, err := file.NewFetcher("/path/to/config.yaml")()
//	if err != nil {
//	    // Handle error: file not found, permission denied, path is directory, etc.
//	}
//	data, err := fetcher.Fetch()
//
// Errors include the path and can be matched with errors.Is, for example
// against file.ErrPathIsDirectory or fs.ErrNotExist.
package file
