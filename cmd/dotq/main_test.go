package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/0xalexb/hjarta-kit/dotpath"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const document = `app:
  name: shop
  debug: false
  hosts:
    - a.example.com
    - b.example.com
database:
  port: 5432
`

func writeDocument(t *testing.T) string {
	t.Helper()

	file := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte(document), 0o600))

	return file
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer

	cmd := rootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()

	return stdout.String(), err
}

func TestGet(t *testing.T) {
	t.Parallel()

	file := writeDocument(t)

	testCases := []struct {
		name string
		args []string
		want string
	}{
		{name: "scalar", args: []string{"get", file, "app.name"}, want: "shop\n"},
		{name: "falsy value is not defaulted", args: []string{"get", file, "app.debug", "--default", "true"}, want: "false\n"},
		{name: "sequence index", args: []string{"get", file, "app.hosts.1"}, want: "b.example.com\n"},
		{name: "subtree", args: []string{"get", file, "database"}, want: "port: 5432\n"},
		{name: "missing prints null", args: []string{"get", file, "app.missing"}, want: "null\n"},
		{name: "missing prints default", args: []string{"get", file, "app.missing", "--default", "42"}, want: "42\n"},
		{name: "path into scalar", args: []string{"get", file, "app.name.first"}, want: "null\n"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			out, err := execute(t, testCase.args...)

			require.NoError(t, err)
			assert.Equal(t, testCase.want, out)
		})
	}
}

func TestGet_Strict(t *testing.T) {
	t.Parallel()

	_, err := execute(t, "get", writeDocument(t), "app.missing", "--strict")

	require.ErrorIs(t, err, dotpath.ErrMissingPath)
}

func TestGet_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := execute(t, "get", filepath.Join(t.TempDir(), "absent.yaml"), "app")

	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestSet(t *testing.T) {
	t.Parallel()

	file := writeDocument(t)

	out, err := execute(t, "set", file, "cache.ttl", "30")
	require.NoError(t, err)
	assert.Contains(t, out, "cache:\n  ttl: 30\n")
	assert.Contains(t, out, "- a.example.com\n", "sequences stay sequences")

	original, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, document, string(original), "file untouched without --in-place")
}

func TestSet_InPlace(t *testing.T) {
	t.Parallel()

	file := writeDocument(t)

	_, err := execute(t, "set", file, "app.debug", "true", "--in-place")
	require.NoError(t, err)

	out, err := execute(t, "get", file, "app.debug")
	require.NoError(t, err)
	assert.Equal(t, "true\n", out)
}

func TestSet_Conflict(t *testing.T) {
	t.Parallel()

	_, err := execute(t, "set", writeDocument(t), "app.name.first", "x")

	require.ErrorIs(t, err, dotpath.ErrTraversalConflict)
}

func TestSet_EmptyPath(t *testing.T) {
	t.Parallel()

	_, err := execute(t, "set", writeDocument(t), "", "x")

	require.ErrorIs(t, err, dotpath.ErrEmptyPath)
}

func TestDel(t *testing.T) {
	t.Parallel()

	file := writeDocument(t)

	_, err := execute(t, "del", file, "app.hosts", "-i")
	require.NoError(t, err)

	out, err := execute(t, "keys", file)
	require.NoError(t, err)
	assert.Equal(t, "app.debug\napp.name\ndatabase.port\n", out)

	_, err = execute(t, "rm", file, "app.hosts", "-i")
	require.NoError(t, err, "removing twice is a no-op")
}

func TestKeys(t *testing.T) {
	t.Parallel()

	file := writeDocument(t)

	out, err := execute(t, "keys", file, "app.hosts")
	require.NoError(t, err)
	assert.Equal(t, "app.hosts.0\napp.hosts.1\n", out)

	out, err = execute(t, "keys", file, "app.name")
	require.NoError(t, err)
	assert.Equal(t, "app.name\n", out)

	_, err = execute(t, "keys", file, "nope")
	require.ErrorIs(t, err, dotpath.ErrMissingPath)
}

func TestConfig(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	local := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(base, "database.yaml"), []byte("host: db\nport: 5432\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(local, "database.json"), []byte(`{"port": 6432}`), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(local, "cache.yml"), []byte("ttl: 5\n"), 0o600))

	out, err := execute(t, "config", "get", "database.port", "--layer", base, "--layer", local)
	require.NoError(t, err)
	assert.Equal(t, "6432\n", out)

	out, err = execute(t, "config", "get", "database.host", "-l", base, "-l", local)
	require.NoError(t, err)
	assert.Equal(t, "db\n", out)

	_, err = execute(t, "config", "get", "queue.size", "--strict", "-l", base)
	require.ErrorIs(t, err, dotpath.ErrMissingPath)

	out, err = execute(t, "config", "sections", "-l", base, "-l", local)
	require.NoError(t, err)
	assert.Equal(t, []string{"cache", "database"}, strings.Fields(out))
}

func TestVersion(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "version")

	require.NoError(t, err)
	assert.Equal(t, "dotq version dev (kit: dev, compiled: unknown)\n", out)
}
