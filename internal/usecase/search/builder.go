package search

import (
	"github.com/kailas-cloud/facetdex/internal/domain/search/facet"
	"github.com/kailas-cloud/facetdex/internal/domain/search/filter"
	"github.com/kailas-cloud/facetdex/internal/domain/search/order"
	"github.com/kailas-cloud/facetdex/internal/domain/search/request"
)

// MatchAll is the query text used when the user entered none.
const MatchAll = "*"

// Highlight tag defaults.
const (
	DefaultPreTag  = `<span style="color:blue">`
	DefaultPostTag = `</span>`
)

// Aggregation names in requests and responses.
const (
	AggPrice         = "regularPrice"
	AggDepartment    = "department"
	AggMissingImages = "missing_images"
)

const (
	suggestField   = "name.trigram"
	suggestSize    = 3
	suggestGrams   = 3
	departmentSize = 10
	missingLabel   = "N/A"
)

// Exact name matches weigh most, the department least.
var queryFields = []string{
	"name.unique^50",
	"name^20",
	"shortDescription^20",
	"longDescription^10",
	"department",
}

var highlightFields = []string{"name", "shortDescription", "longDescription", "department"}

var salesRankFields = []string{"salesRankShortTerm", "salesRankMediumTerm", "salesRankLongTerm"}

// Builder assembles engine requests. It never validates fields or fails.
type Builder struct {
	pageSize int
	preTag   string
	postTag  string
}

// NewBuilder creates a builder with default page size and highlight tags.
func NewBuilder() *Builder {
	return &Builder{
		pageSize: request.DefaultPageSize,
		preTag:   DefaultPreTag,
		postTag:  DefaultPostTag,
	}
}

// WithPageSize sets the result window size. Non-positive values are ignored.
func (b *Builder) WithPageSize(n int) *Builder {
	if n > 0 {
		b.pageSize = n
	}
	return b
}

// WithHighlightTags sets the highlight wrapper tags. Empty values keep the current tag.
func (b *Builder) WithHighlightTags(pre, post string) *Builder {
	if pre != "" {
		b.preTag = pre
	}
	if post != "" {
		b.postTag = post
	}
	return b
}

// Build produces the scored, filtered and aggregated search request.
func (b *Builder) Build(query string, clauses []filter.Clause, spec order.Spec) request.Search {
	if clauses == nil {
		clauses = []filter.Clause{}
	}

	functions := make([]request.Function, 0, len(salesRankFields))
	for _, f := range salesRankFields {
		functions = append(functions, request.Function{FieldValueFactor: request.FieldValueFactor{
			Field:    f,
			Modifier: "reciprocal",
			Missing:  request.MissingRank,
		}})
	}

	return request.Search{
		From: 0,
		Size: b.pageSize,
		Sort: []order.Spec{spec},
		Query: request.Query{FunctionScore: request.FunctionScore{
			Query: request.ScoredQuery{Bool: request.Bool{
				Must: request.Must{QueryString: request.QueryString{
					Query:  query,
					Fields: append([]string(nil), queryFields...),
				}},
				Filter: clauses,
			}},
			BoostMode: "multiply",
			ScoreMode: "avg",
			Functions: functions,
		}},
		Aggs:      aggregations(),
		Highlight: request.NewHighlight(b.preTag, b.postTag, highlightFields...),
	}
}

// BuildSuggestion produces a phrase-suggestion request for text.
func (b *Builder) BuildSuggestion(text string) request.Suggest {
	return request.Suggest{Suggest: request.SuggestBody{
		Text: text,
		SimplePhrase: request.PhraseRequest{Phrase: request.Phrase{
			Field:    suggestField,
			Size:     suggestSize,
			GramSize: suggestGrams,
			DirectGenerator: []request.DirectGenerator{
				{Field: suggestField, SuggestMode: "always"},
			},
		}},
	}}
}

// Plan is a prepared query: the resolved facets and the request to send.
type Plan struct {
	Query      string
	Sort       order.Spec
	Resolution facet.Resolution
	Request    request.Search
}

// Prepare resolves facets (when any) and builds the request for in.
func (b *Builder) Prepare(in Input) Plan {
	query := in.Query
	if query == "" {
		query = MatchAll
	}
	spec := order.New(in.Sort.Field(), in.Sort.Direction())

	var res facet.Resolution
	switch {
	case len(in.Filters) > 0:
		res = facet.ResolveParams(in.Filters)
	case len(in.Facets) > 0 && in.Params != nil:
		res = facet.Resolve(in.Facets, in.Params)
	}

	return Plan{
		Query:      query,
		Sort:       spec,
		Resolution: res,
		Request:    b.Build(query, res.Clauses, spec),
	}
}

func aggregations() request.Aggregations {
	return request.Aggregations{
		AggPrice: request.RangeAggregation{
			Field: "regularPrice",
			Ranges: []request.RangeBucket{
				{Key: "$", From: floatPtr(0), To: floatPtr(10)},
				{Key: "$$", From: floatPtr(10), To: floatPtr(50)},
				{Key: "$$$", From: floatPtr(50), To: floatPtr(300)},
				{Key: "$$$$", From: floatPtr(300)},
			},
		},
		AggDepartment: request.TermsAggregation{
			Field:       "department.keyword",
			Size:        departmentSize,
			Missing:     missingLabel,
			MinDocCount: 0,
		},
		AggMissingImages: request.MissingAggregation{Field: "image.keyword"},
	}
}

func floatPtr(f float64) *float64 { return &f }
