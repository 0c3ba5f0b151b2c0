// Package result is the typed view of search engine responses.
package result

import (
	"encoding/json"
	"fmt"

	"github.com/kailas-cloud/facetdex/internal/domain/search/request"
)

// Response is a decoded engine search response.
type Response struct {
	Took            int                       `json:"took"`
	TimedOut        bool                      `json:"timed_out"`
	Hits            Hits                      `json:"hits"`
	RawAggregations map[string]any            `json:"aggregations,omitempty"`
	Suggest         map[string][]SuggestEntry `json:"suggest,omitempty"`

	// Aggregations holds the typed results of the requested aggregations.
	Aggregations map[string]Aggregation `json:"-"`

	raw json.RawMessage
}

// Hits is the hits section of a response.
type Hits struct {
	Total    Total    `json:"total"`
	MaxScore *float64 `json:"max_score"`
	Hits     []Hit    `json:"hits"`
}

// Total is the hit count. Engines report it as a number or as {value, relation}.
type Total struct {
	Value    int    `json:"value"`
	Relation string `json:"relation,omitempty"`
}

// UnmarshalJSON accepts both total encodings.
func (t *Total) UnmarshalJSON(b []byte) error {
	var n int
	if err := json.Unmarshal(b, &n); err == nil {
		*t = Total{Value: n, Relation: "eq"}
		return nil
	}
	type plain Total
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return fmt.Errorf("hits total: %w", err)
	}
	*t = Total(p)
	return nil
}

// Hit is a single matched document.
type Hit struct {
	Index       string              `json:"_index"`
	ID          string              `json:"_id"`
	Score       *float64            `json:"_score"`
	Source      json.RawMessage     `json:"_source,omitempty"`
	Highlight   map[string][]string `json:"highlight,omitempty"`
	Explanation json.RawMessage     `json:"_explanation,omitempty"`
}

// SuggestEntry is the suggester output for one token span.
type SuggestEntry struct {
	Text    string          `json:"text"`
	Offset  int             `json:"offset"`
	Length  int             `json:"length"`
	Options []SuggestOption `json:"options"`
}

// SuggestOption is one candidate correction.
type SuggestOption struct {
	Text  string  `json:"text"`
	Score float64 `json:"score"`
}

// Parse decodes an engine response body. Aggregations named in kinds are
// decoded into typed results; others stay in RawAggregations only.
func Parse(body []byte, kinds map[string]request.AggregationKind) (*Response, error) {
	var resp Response
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	resp.raw = append(json.RawMessage(nil), body...)

	if len(kinds) > 0 && len(resp.RawAggregations) > 0 {
		aggs, err := DecodeAggregations(resp.RawAggregations, kinds)
		if err != nil {
			return nil, err
		}
		resp.Aggregations = aggs
	}
	return &resp, nil
}

// Empty returns a response with no hits.
func Empty() *Response {
	return &Response{raw: json.RawMessage(`{"hits":{"total":{"value":0,"relation":"eq"},"hits":[]}}`)}
}

// Raw returns the response bytes as received from the engine.
func (r *Response) Raw() json.RawMessage { return r.raw }

// HitCount returns the number of hits in the returned page.
func (r *Response) HitCount() int { return len(r.Hits.Hits) }

// SuggestionOptions flattens all options of the named suggester in order.
func (r *Response) SuggestionOptions(name string) []SuggestOption {
	var out []SuggestOption
	for _, entry := range r.Suggest[name] {
		out = append(out, entry.Options...)
	}
	return out
}
