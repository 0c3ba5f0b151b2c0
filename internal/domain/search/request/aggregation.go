package request

import "encoding/json"

// AggregationKind discriminates aggregation request and result shapes.
type AggregationKind string

// Aggregation kinds.
const (
	AggRange   AggregationKind = "range"
	AggTerms   AggregationKind = "terms"
	AggMissing AggregationKind = "missing"
)

// Aggregation is one named aggregation request.
type Aggregation interface {
	Kind() AggregationKind
	json.Marshaler
}

// Aggregations maps names to aggregation requests.
type Aggregations map[string]Aggregation

// Kinds returns the kind of every requested aggregation, for decoding results.
func (a Aggregations) Kinds() map[string]AggregationKind {
	out := make(map[string]AggregationKind, len(a))
	for name, agg := range a {
		out[name] = agg.Kind()
	}
	return out
}

// RangeBucket is one range bucket. A nil To is unbounded.
type RangeBucket struct {
	Key  string   `json:"key"`
	From *float64 `json:"from,omitempty"`
	To   *float64 `json:"to,omitempty"`
}

// RangeAggregation buckets numeric values.
type RangeAggregation struct {
	Field  string        `json:"field"`
	Ranges []RangeBucket `json:"ranges"`
}

// Kind implements Aggregation.
func (RangeAggregation) Kind() AggregationKind { return AggRange }

// MarshalJSON renders {"range":{...}}.
func (a RangeAggregation) MarshalJSON() ([]byte, error) {
	type plain RangeAggregation
	return json.Marshal(map[string]plain{"range": plain(a)})
}

// TermsAggregation counts the top values of a keyword field.
type TermsAggregation struct {
	Field       string `json:"field"`
	Size        int    `json:"size"`
	Missing     string `json:"missing,omitempty"`
	MinDocCount int    `json:"min_doc_count"`
}

// Kind implements Aggregation.
func (TermsAggregation) Kind() AggregationKind { return AggTerms }

// MarshalJSON renders {"terms":{...}}.
func (a TermsAggregation) MarshalJSON() ([]byte, error) {
	type plain TermsAggregation
	return json.Marshal(map[string]plain{"terms": plain(a)})
}

// MissingAggregation counts documents lacking a field.
type MissingAggregation struct {
	Field string `json:"field"`
}

// Kind implements Aggregation.
func (MissingAggregation) Kind() AggregationKind { return AggMissing }

// MarshalJSON renders {"missing":{...}}.
func (a MissingAggregation) MarshalJSON() ([]byte, error) {
	type plain MissingAggregation
	return json.Marshal(map[string]plain{"missing": plain(a)})
}
