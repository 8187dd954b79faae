// Package feedlens embeds the feedlens feedback search engine in a Go program.
//
// The engine filters customer feedback records by free text and facets,
// scores them for relevance, orders and paginates the result. Saved searches
// live in memory by default, or in Valkey/Redis when configured.
//
//	client, _ := feedlens.New(ctx,
//	    feedlens.WithDatasetFile("feedback.yaml"),
//	    feedlens.WithValkey("localhost:6379", ""),
//	)
//	defer client.Close()
//
//	page, _ := client.Search(ctx, feedlens.SearchRequest{
//	    Query:   "touchscreen",
//	    Filters: feedlens.Filters{Sentiment: []string{"negative"}},
//	    Sort:    feedlens.SortDateNewest,
//	})
//
//	for s := range client.Suggest("scree") {
//	    fmt.Println(s)
//	}
//
// Search state round-trips through ShareQuery and ParseShareQuery, and Pager
// keeps page navigation consistent when the page size changes.
package feedlens
