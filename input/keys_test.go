package input

import (
	"testing"

	"github.com/0xalexb/hjarta-kit/dotpath"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyPath(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name       string
		input      string
		wantPath   string
		wantAppend bool
		wantErr    bool
	}{
		{name: "plain", input: "page", wantPath: "page"},
		{name: "dot notation", input: "user.name", wantPath: "user.name"},
		{name: "brackets", input: "user[name]", wantPath: "user.name"},
		{name: "nested brackets", input: "user[address][city]", wantPath: "user.address.city"},
		{name: "numeric index", input: "items[0][id]", wantPath: "items.0.id"},
		{name: "append", input: "tags[]", wantPath: "tags", wantAppend: true},
		{name: "nested append", input: "filter[ids][]", wantPath: "filter.ids", wantAppend: true},
		{name: "unclosed", input: "user[name", wantErr: true},
		{name: "garbage after bracket", input: "user[name]x", wantErr: true},
		{name: "append before segment", input: "tags[][name]", wantErr: true},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			path, appendValue, err := keyPath(testCase.input)

			if testCase.wantErr {
				require.ErrorIs(t, err, ErrMalformedKey)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, testCase.wantPath, path)
			assert.Equal(t, testCase.wantAppend, appendValue)
		})
	}
}

func TestAssign(t *testing.T) {
	t.Parallel()

	data := dotpath.Map{}

	require.NoError(t, assign(data, "tags[]", []string{"go", "yaml"}))
	require.NoError(t, assign(data, "tags[]", []string{"fx"}))
	require.NoError(t, assign(data, "sort", []string{"asc", "desc"}))
	require.NoError(t, assign(data, "", []string{"ignored"}))

	assert.Equal(t, dotpath.Map{
		"tags": dotpath.Map{"0": "go", "1": "yaml", "2": "fx"},
		"sort": "desc",
	}, data)

	err := assign(data, "sort[dir]", []string{"up"})
	require.ErrorIs(t, err, dotpath.ErrTraversalConflict)
}
