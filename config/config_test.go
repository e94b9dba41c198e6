package config_test

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"

	"github.com/0xalexb/hjarta-kit/config"
	filefetcher "github.com/0xalexb/hjarta-kit/config/fetcher/file"
	yamlparser "github.com/0xalexb/hjarta-kit/config/parser/yaml"
	"github.com/0xalexb/hjarta-kit/dotpath"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const servicesDocument = `services:
  http:
    host: api.example.com
    port: 8443
  grpc:
    port: 90000
  admin: {}
`

func servicesFetcher(t *testing.T) *filefetcher.Fetcher {
	t.Helper()

	fsys := fstest.MapFS{"services.yaml": &fstest.MapFile{Data: []byte(servicesDocument)}}

	fetcher, err := filefetcher.NewFSFetcher(fsys, "services.yaml")()
	require.NoError(t, err)

	return fetcher
}

type failingFetcher struct{ err error }

func (f failingFetcher) Fetch() ([]byte, error) { return nil, f.err }

func TestProvider_DotPath(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		path string
		want AppConfig
	}{
		{name: "nested section", path: "services.http", want: AppConfig{Host: "api.example.com", Port: 8443}},
		{name: "defaults fill an empty section", path: "services.admin", want: AppConfig{Host: "localhost", Port: 8080}},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			target := &AppConfig{}

			result, err := config.Provider(target, testCase.path)(yamlparser.NewParser(), servicesFetcher(t))

			require.NoError(t, err)
			assert.Same(t, target, result)
			assert.Equal(t, testCase.want, *result)
		})
	}
}

func TestProvider_Errors(t *testing.T) {
	t.Parallel()

	fetchErr := errors.New("fetch failed")

	testCases := []struct {
		name    string
		fetcher config.DataFetcher
		path    string
		wantErr error
		wantMsg string
	}{
		{name: "fetch error", fetcher: failingFetcher{err: fetchErr}, path: "services.http", wantErr: fetchErr},
		{name: "missing path", path: "services.smtp", wantErr: yamlparser.ErrPathNotFound},
		{name: "empty segment", path: "services..http", wantErr: yamlparser.ErrInvalidPath},
		{name: "validation", path: "services.grpc", wantMsg: "validating error"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			fetcher := testCase.fetcher
			if fetcher == nil {
				fetcher = servicesFetcher(t)
			}

			result, err := config.Provider(&AppConfig{}, testCase.path)(yamlparser.NewParser(), fetcher)

			require.Error(t, err)
			assert.Nil(t, result)

			if testCase.wantErr != nil {
				require.ErrorIs(t, err, testCase.wantErr)
			}

			if testCase.wantMsg != "" {
				assert.Contains(t, err.Error(), testCase.wantMsg)
			}
		})
	}
}

func TestProvider_EmptyDocument(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{"empty.yaml": &fstest.MapFile{Data: []byte{}}}

	fetcher, err := filefetcher.NewFSFetcher(fsys, "empty.yaml")()
	require.NoError(t, err)

	_, err = config.Provider(&AppConfig{}, "")(yamlparser.NewParser(), fetcher)

	require.ErrorIs(t, err, yamlparser.ErrEmptyData)
}

// Decode and Provider share the defaults and validation step, so the same
// subtree yields the same struct and the same failure through both.
func TestDecode_MatchesProvider(t *testing.T) {
	t.Parallel()

	parser := yamlparser.NewParser()

	data, err := servicesFetcher(t).Fetch()
	require.NoError(t, err)

	document, err := parser.Decode(data)
	require.NoError(t, err)

	registry := newTestRegistry(t, newCountingSource(map[string]dotpath.Map{
		"services": dotpath.Get(document, "services", nil).(dotpath.Map),
	}))
	ctx := context.Background()

	for _, path := range []string{"services.http", "services.admin"} {
		fromProvider, err := config.Provider(&AppConfig{}, path)(parser, servicesFetcher(t))
		require.NoError(t, err)

		fromDecode, err := config.Decode(ctx, registry, path, &AppConfig{})
		require.NoError(t, err)

		assert.Equal(t, fromProvider, fromDecode, "path %q", path)
	}

	_, providerErr := config.Provider(&AppConfig{}, "services.grpc")(parser, servicesFetcher(t))
	_, decodeErr := config.Decode(ctx, registry, "services.grpc", &AppConfig{})

	require.Error(t, providerErr)
	require.Error(t, decodeErr)
	assert.Equal(t, providerErr.Error(), decodeErr.Error())
}
