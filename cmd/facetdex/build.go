package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/facetdex/internal/domain/search/facet"
	"github.com/kailas-cloud/facetdex/internal/domain/search/order"
	"github.com/kailas-cloud/facetdex/internal/domain/search/request"
	searchuc "github.com/kailas-cloud/facetdex/internal/usecase/search"
)

type buildOptions struct {
	query    string
	sort     string
	sortDir  string
	params   string
	pageSize int
}

var buildOpts buildOptions

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Print the engine request for a query without sending it",
	Long: `Print the engine request for a query without sending it.

Facets are given as a query string, the same one a facet link carries:

  facetdex build --query camera \
    --params 'filter.name=regularPrice&regularPrice.type=range&regularPrice.from=100'`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runBuild(cmd.OutOrStdout(), buildOpts)
	},
}

func init() {
	f := buildCmd.Flags()
	f.StringVarP(&buildOpts.query, "query", "q", "", "query text (default: match all)")
	f.StringVar(&buildOpts.sort, "sort", "", "sort field (default: _score)")
	f.StringVar(&buildOpts.sortDir, "sort-dir", "", "sort direction: asc or desc (default: desc)")
	f.StringVarP(&buildOpts.params, "params", "p", "", "facet parameters as a URL query string")
	f.IntVar(&buildOpts.pageSize, "page-size", request.DefaultPageSize, "hits per page")
}

type unsupportedOutput struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type buildOutput struct {
	Query          string              `json:"query"`
	Sort           string              `json:"sort"`
	SortDir        string              `json:"sort_dir"`
	DisplayFilters []string            `json:"display_filters"`
	AppliedFilters string              `json:"applied_filters"`
	Unsupported    []unsupportedOutput `json:"unsupported_facets"`
	Request        request.Search      `json:"request"`
}

func runBuild(w io.Writer, opts buildOptions) error {
	params, err := url.ParseQuery(strings.TrimPrefix(opts.params, "?"))
	if err != nil {
		return fmt.Errorf("parse --params: %w", err)
	}

	plan := searchuc.NewBuilder().WithPageSize(opts.pageSize).Prepare(searchuc.Input{
		Query:  opts.query,
		Facets: params[facet.NameKey],
		Params: facet.Values(params),
		Sort:   order.New(opts.sort, order.Direction(opts.sortDir)),
	})

	out := buildOutput{
		Query:          plan.Query,
		Sort:           plan.Sort.Field(),
		SortDir:        string(plan.Sort.Direction()),
		DisplayFilters: append([]string{}, plan.Resolution.Display...),
		AppliedFilters: plan.Resolution.Applied.Encode(),
		Unsupported:    make([]unsupportedOutput, 0, len(plan.Resolution.Unsupported)),
		Request:        plan.Request,
	}
	for _, u := range plan.Resolution.Unsupported {
		out.Unsupported = append(out.Unsupported, unsupportedOutput{Name: u.Name, Type: string(u.Type)})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
