// Package request holds the JSON documents sent to the search engine.
package request

import (
	"github.com/kailas-cloud/facetdex/internal/domain/search/filter"
	"github.com/kailas-cloud/facetdex/internal/domain/search/order"
)

// Search window and scoring defaults.
const (
	DefaultPageSize = 10
	// MissingRank treats documents without a sales rank as ranked last.
	MissingRank = 1000000000
)

// Search is a complete scored query with aggregations and highlighting.
type Search struct {
	From      int          `json:"from"`
	Size      int          `json:"size"`
	Sort      []order.Spec `json:"sort"`
	Query     Query        `json:"query"`
	Aggs      Aggregations `json:"aggs"`
	Highlight Highlight    `json:"highlight"`
}

// Query is the top-level query clause.
type Query struct {
	FunctionScore FunctionScore `json:"function_score"`
}

// FunctionScore multiplies the text relevance with popularity signals.
type FunctionScore struct {
	Query     ScoredQuery `json:"query"`
	BoostMode string      `json:"boost_mode"`
	ScoreMode string      `json:"score_mode"`
	Functions []Function  `json:"functions"`
}

// ScoredQuery wraps the boolean predicate.
type ScoredQuery struct {
	Bool Bool `json:"bool"`
}

// Bool combines a scoring must clause with non-scoring filters.
// Filter always renders as an array.
type Bool struct {
	Must   Must            `json:"must"`
	Filter []filter.Clause `json:"filter"`
}

// Must is the free-text clause.
type Must struct {
	QueryString QueryString `json:"query_string"`
}

// QueryString is a multi-field text query with per-field boosts.
type QueryString struct {
	Query  string   `json:"query"`
	Fields []string `json:"fields"`
}

// Function is a single scoring function.
type Function struct {
	FieldValueFactor FieldValueFactor `json:"field_value_factor"`
}

// FieldValueFactor scores by a numeric document field.
type FieldValueFactor struct {
	Field    string `json:"field"`
	Modifier string `json:"modifier"`
	Missing  int    `json:"missing"`
}

// Highlight configures hit highlighting.
type Highlight struct {
	NumberOfFragments int                 `json:"number_of_fragments"`
	FragmentSize      int                 `json:"fragment_size"`
	PreTags           []string            `json:"pre_tags"`
	PostTags          []string            `json:"post_tags"`
	Fields            map[string]struct{} `json:"fields"`
}

// NewHighlight highlights each field with single whole-field fragments.
func NewHighlight(preTag, postTag string, fields ...string) Highlight {
	h := Highlight{
		NumberOfFragments: 1,
		FragmentSize:      -1,
		PreTags:           []string{preTag},
		PostTags:          []string{postTag},
		Fields:            make(map[string]struct{}, len(fields)),
	}
	for _, f := range fields {
		h.Fields[f] = struct{}{}
	}
	return h
}
