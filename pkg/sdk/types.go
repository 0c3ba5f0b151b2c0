package facetdex

import "encoding/json"

// SortDirection is the sort order of a query.
type SortDirection string

// Sort direction constants.
const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// QueryOptions describes one end-user query. Zero values mean match all,
// sorted by relevance, descending, without filters.
type QueryOptions struct {
	Query   string
	Sort    string
	SortDir SortDirection

	// Filters is the AppliedFilters fragment of a previous QueryResult.
	Filters string
}

// QueryResult is one page of faceted results.
type QueryResult struct {
	Query   string
	Sort    string
	SortDir SortDirection

	Total int
	Hits  []Hit

	PriceRanges   []RangeBucket
	Departments   []TermsBucket
	MissingImages int

	// DisplayFilters describes each applied facet for display.
	DisplayFilters []string
	// AppliedFilters re-applies the same facets when passed as QueryOptions.Filters.
	AppliedFilters string
	Unsupported    []UnsupportedFacet

	// Suggestions is filled only when the query had no hits.
	Suggestions []Suggestion

	// Raw is the engine response body.
	Raw json.RawMessage
}

// Hit is a matched product.
type Hit struct {
	ID        string
	Score     *float64
	Source    json.RawMessage
	Highlight map[string][]string
}

// RangeBucket is one price range with its product count.
type RangeBucket struct {
	Key      string
	From     *float64
	To       *float64
	DocCount int
}

// TermsBucket is one department with its product count.
type TermsBucket struct {
	Key      string
	DocCount int
}

// UnsupportedFacet is a requested facet whose type cannot be applied.
type UnsupportedFacet struct {
	Name string
	Type string
}

// Suggestion is one spelling correction candidate.
type Suggestion struct {
	Text  string
	Score float64
}

// PassthroughRequest is a raw search forwarded to the engine unchanged.
// A nil Size defaults to 10; Size 0 returns aggregations only.
type PassthroughRequest struct {
	From    int
	Size    *int
	Explain bool
	Source  []string
	Query   json.RawMessage
	Q       string
}
