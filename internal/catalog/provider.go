package catalog

// Translator turns request parameters into provider-specific upstream queries.
type Translator interface {
	// ListQuery builds the primary query for a curated list. Coming-soon
	// queries are marked AllowMissing so a 404 can trigger the fallback.
	ListQuery(list List, limit int) Query
	// BroadQuery builds an unfiltered popularity query used to backfill
	// kind-filtered lists.
	BroadQuery(limit int) Query
	// UpcomingFallbackQuery builds the discovery query used when the
	// upcoming-releases endpoint reports not found.
	UpcomingFallbackQuery(limit int) Query
	SearchQuery(text string, limit int) Query
	GenreQuery(genre GenreID, year YearFilter, limit int) Query
	DetailsQuery(id int, kind MediaKind) Query
}

// Normalizer maps provider records onto the canonical model.
type Normalizer interface {
	// Records extracts the ordered result records from a list payload.
	Records(payload map[string]any) []any
	// Kind reads the per-record media kind discriminator. It reports false
	// for records that are neither movies nor series.
	Kind(raw any) (MediaKind, bool)
	// Summary converts one raw record. It reports false when the record is
	// not an object or lacks an id.
	Summary(raw any, kind MediaKind) (MovieSummary, bool)
	// PosterRef returns the poster path or URL of a full details record.
	PosterRef(details Details) string
	// PosterURL resolves a poster path or URL to an absolute URL.
	PosterURL(ref string) (string, bool)
}

// Provider is one upstream catalog API. Exactly one is active per deployment.
type Provider interface {
	Name() string
	Genres() *GenreMap
	Translator
	Normalizer
}
