package chi

import (
	"encoding/json"

	"github.com/kailas-cloud/facetdex/internal/domain/search/request"
	searchuc "github.com/kailas-cloud/facetdex/internal/usecase/search"
)

type queryResponse struct {
	Query             string             `json:"query"`
	Sort              string             `json:"sort"`
	SortDir           string             `json:"sort_dir"`
	DisplayFilters    []string           `json:"display_filters"`
	AppliedFilters    string             `json:"applied_filters"`
	UnsupportedFacets []unsupportedFacet `json:"unsupported_facets"`
	Suggestions       []suggestion       `json:"suggestions"`
	SearchResponse    json.RawMessage    `json:"search_response"`
	SuggestResponse   json.RawMessage    `json:"suggest_response,omitempty"`
}

type unsupportedFacet struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type suggestion struct {
	Text  string  `json:"text"`
	Score float64 `json:"score"`
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

type quepidRequest struct {
	From    *int            `json:"from"`
	Size    *int            `json:"size"`
	Explain bool            `json:"explain"`
	Source  json.RawMessage `json:"_source"`
	Query   json.RawMessage `json:"query"`
	Q       string          `json:"q"`
}

func (q quepidRequest) toRaw() (request.Raw, error) {
	source, err := sourceFields(q.Source)
	if err != nil {
		return request.Raw{}, err
	}
	raw := request.Raw{
		From:    defaultRawFrom,
		Size:    defaultRawSize,
		Explain: q.Explain,
		Source:  source,
		Query:   q.Query,
		Q:       q.Q,
	}
	if q.From != nil {
		raw.From = *q.From
	}
	if q.Size != nil {
		raw.Size = *q.Size
	}
	return raw, nil
}

func queryResponseFrom(out *searchuc.Output) queryResponse {
	resp := queryResponse{
		Query:             out.Query,
		Sort:              out.Sort.Field(),
		SortDir:           string(out.Sort.Direction()),
		DisplayFilters:    []string{},
		AppliedFilters:    out.AppliedFilters.Encode(),
		UnsupportedFacets: make([]unsupportedFacet, 0, len(out.Unsupported)),
		Suggestions:       make([]suggestion, 0, len(out.Suggestions)),
		SearchResponse:    out.Response.Raw(),
	}
	resp.DisplayFilters = append(resp.DisplayFilters, out.DisplayFilters...)
	for _, u := range out.Unsupported {
		resp.UnsupportedFacets = append(resp.UnsupportedFacets, unsupportedFacet{Name: u.Name, Type: string(u.Type)})
	}
	for _, o := range out.Suggestions {
		resp.Suggestions = append(resp.Suggestions, suggestion{Text: o.Text, Score: o.Score})
	}
	if out.SuggestResponse != nil {
		resp.SuggestResponse = out.SuggestResponse.Raw()
	}
	return resp
}
