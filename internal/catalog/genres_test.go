package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testGenreTable = `
genres:
  - name: Боевик
    id: "28"
  - name: Триллер
    id: "53"
  - name: Фэнтези
    id: "14"
`

func TestLoadGenreMap(t *testing.T) {
	m, err := LoadGenreMap([]byte(testGenreTable))
	require.NoError(t, err)

	assert.Equal(t, []string{"Боевик", "Триллер", "Фэнтези"}, m.Names())
	assert.Equal(t, 3, m.Len())
}

func TestGenreMapLookup(t *testing.T) {
	m := MustLoadGenreMap([]byte(testGenreTable))

	tests := []struct {
		input  string
		want   GenreID
		wantOK bool
	}{
		{"Триллер", "53", true},
		{"триллер", "53", true},
		{"  ТРИЛЛЕР  ", "53", true},
		{"triller", "53", true},
		{"Triller", "53", true},
		{"фентези", "14", true},
		{"несуществующий жанр", "", false},
		{"", "", false},
		{"   ", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := m.Lookup(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGenreMapNamesIsCopy(t *testing.T) {
	m := MustLoadGenreMap([]byte(testGenreTable))
	names := m.Names()
	names[0] = "changed"

	assert.Equal(t, "Боевик", m.Names()[0])
}

func TestLoadGenreMapErrors(t *testing.T) {
	tests := map[string]string{
		"missing id":  "genres:\n  - name: Драма\n",
		"missing name": "genres:\n  - id: \"18\"\n",
		"duplicate":   "genres:\n  - name: Драма\n    id: \"18\"\n  - name: драма\n    id: \"19\"\n",
		"bad yaml":    "genres: [",
	}
	for name, table := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := LoadGenreMap([]byte(table))
			require.Error(t, err)
		})
	}
}

func TestNilGenreMap(t *testing.T) {
	var m *GenreMap
	_, ok := m.Lookup("драма")
	assert.False(t, ok)
	assert.Empty(t, m.Names())
	assert.Equal(t, 0, m.Len())
}
