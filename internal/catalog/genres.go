package catalog

import (
	"fmt"
	"slices"
	"strings"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/cases"
	"gopkg.in/yaml.v3"
)

// GenreID is a provider-specific genre identifier: a numeric id for TMDB,
// a genre slug for kinopoisk.
type GenreID string

// GenreMap maps display genre names to provider identifiers. It is built once
// at startup and never mutated.
type GenreMap struct {
	names   []string
	byName  map[string]GenreID
	byAlias map[string]GenreID
}

type genreTable struct {
	Genres []struct {
		Name string `yaml:"name"`
		ID   string `yaml:"id"`
	} `yaml:"genres"`
}

// LoadGenreMap parses a YAML genre table of the form
//
//	genres:
//	  - name: Триллер
//	    id: "53"
//
// Display order follows the table.
func LoadGenreMap(data []byte) (*GenreMap, error) {
	var table genreTable
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("parse genre table: %w", err)
	}

	m := &GenreMap{
		names:   make([]string, 0, len(table.Genres)),
		byName:  make(map[string]GenreID, len(table.Genres)),
		byAlias: make(map[string]GenreID, len(table.Genres)),
	}
	for i, g := range table.Genres {
		name := strings.TrimSpace(g.Name)
		id := strings.TrimSpace(g.ID)
		if name == "" || id == "" {
			return nil, fmt.Errorf("genre table entry %d: name and id are required", i)
		}
		key := genreKey(name)
		if _, dup := m.byName[key]; dup {
			return nil, fmt.Errorf("genre table entry %d: duplicate genre %q", i, name)
		}
		m.names = append(m.names, name)
		m.byName[key] = GenreID(id)
		m.byAlias[genreAlias(key)] = GenreID(id)
	}
	return m, nil
}

// MustLoadGenreMap is LoadGenreMap for embedded tables; it panics on error.
func MustLoadGenreMap(data []byte) *GenreMap {
	m, err := LoadGenreMap(data)
	if err != nil {
		panic(err)
	}
	return m
}

// Lookup resolves a user-supplied genre name. Matching is trimmed and
// case-insensitive; a latin transliteration ("triller") also matches.
func (m *GenreMap) Lookup(name string) (GenreID, bool) {
	if m == nil {
		return "", false
	}
	key := genreKey(name)
	if key == "" {
		return "", false
	}
	if id, ok := m.byName[key]; ok {
		return id, true
	}
	id, ok := m.byAlias[genreAlias(key)]
	return id, ok
}

// Names returns the display names in table order.
func (m *GenreMap) Names() []string {
	if m == nil {
		return []string{}
	}
	return slices.Clone(m.names)
}

// Len returns the number of genres.
func (m *GenreMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.names)
}

func genreKey(name string) string {
	return cases.Fold().String(strings.Join(strings.Fields(name), " "))
}

func genreAlias(key string) string {
	return strings.ToLower(unidecode.Unidecode(key))
}
