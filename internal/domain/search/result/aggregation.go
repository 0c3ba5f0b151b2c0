package result

import (
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/kailas-cloud/facetdex/internal/domain/search/request"
)

// Aggregation is a typed aggregation result.
type Aggregation interface {
	Kind() request.AggregationKind
}

// RangeResult is the result of a range aggregation.
type RangeResult struct {
	Buckets []RangeBucket `json:"buckets"`
}

// RangeBucket is one range bucket with its document count.
type RangeBucket struct {
	Key      string   `json:"key"`
	From     *float64 `json:"from"`
	To       *float64 `json:"to"`
	DocCount int      `json:"doc_count"`
}

// Kind implements Aggregation.
func (RangeResult) Kind() request.AggregationKind { return request.AggRange }

// TermsResult is the result of a terms aggregation.
type TermsResult struct {
	DocCountErrorUpperBound int           `json:"doc_count_error_upper_bound"`
	SumOtherDocCount        int           `json:"sum_other_doc_count"`
	Buckets                 []TermsBucket `json:"buckets"`
}

// TermsBucket is one term with its document count.
type TermsBucket struct {
	Key      string `json:"key"`
	DocCount int    `json:"doc_count"`
}

// Kind implements Aggregation.
func (TermsResult) Kind() request.AggregationKind { return request.AggTerms }

// MissingResult counts documents lacking a field.
type MissingResult struct {
	DocCount int `json:"doc_count"`
}

// Kind implements Aggregation.
func (MissingResult) Kind() request.AggregationKind { return request.AggMissing }

// DecodeAggregations converts the generic aggregations map into typed
// results per requested kind. Names absent from the response are skipped.
func DecodeAggregations(raw map[string]any, kinds map[string]request.AggregationKind) (map[string]Aggregation, error) {
	out := make(map[string]Aggregation, len(kinds))
	for name, kind := range kinds {
		val, ok := raw[name].(map[string]any)
		if !ok {
			continue
		}

		var (
			agg Aggregation
			err error
		)
		switch kind {
		case request.AggRange:
			var r RangeResult
			err = decode(val, &r)
			agg = r
		case request.AggTerms:
			var r TermsResult
			err = decode(val, &r)
			agg = r
		case request.AggMissing:
			var r MissingResult
			err = decode(val, &r)
			agg = r
		default:
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("decode aggregation %q: %w", name, err)
		}
		out[name] = agg
	}
	return out, nil
}

func decode(input map[string]any, target any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "json",
		ZeroFields:       true,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("new decoder: %w", err)
	}
	return dec.Decode(input)
}
