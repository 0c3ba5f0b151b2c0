// Package facetdex provides an embedded Go client for faceted product search
// over an OpenSearch index.
//
// The client runs the same query pipeline as the HTTP service in-process:
// facets become filters, hits are boosted by sales rank, and zero-hit queries
// fall back to spelling suggestions.
//
//	client, _ := facetdex.New(ctx,
//	    facetdex.WithOpenSearch("https://localhost:9200"),
//	    facetdex.WithBasicAuth("admin", "admin"),
//	    facetdex.WithIndex("bbuy_products"),
//	)
//	defer client.Close()
//
//	res, _ := client.Search().Query(ctx, facetdex.QueryOptions{Query: "camera"})
//
//	// Follow a facet link: pass the applied filters of a previous page back in.
//	next, _ := client.Search().Query(ctx, facetdex.QueryOptions{
//	    Query:   "camera",
//	    Filters: res.AppliedFilters,
//	})
package facetdex
