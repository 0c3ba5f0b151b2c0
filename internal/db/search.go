package db

import "time"

// SearchQuery is the input for a single engine search call.
// Nil window and explain values leave the engine defaults in place.
type SearchQuery struct {
	Index   string
	Body    []byte
	From    *int
	Size    *int
	Explain *bool
	Source  []string
	Q       string
}

// SearchResult is the raw output of a search call.
type SearchResult struct {
	Status int
	Body   []byte
	Took   time.Duration
}
