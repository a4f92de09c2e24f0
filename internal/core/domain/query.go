package domain

// Filter is a client-side payload filter. String payload values match by
// case-insensitive substring; other types match by equality against Value.
type Filter struct {
	Key   string
	Value string
}

// ScrollOptions control a filtered point listing.
type ScrollOptions struct {
	// Limit is the page size. Zero means the engine default.
	Limit int

	// Offset is the pagination offset.
	Offset int

	// Filters are applied after retrieval, within the fetched page only.
	Filters []Filter
}
