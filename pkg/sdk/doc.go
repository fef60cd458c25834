// Package cardex embeds the business card search engine in a Go program,
// backed by Redis with the query engine.
//
// Cards are stored as hashes under one FT index. Searches rank candidates in process
// with a frequency, probabilistic or fuzzy strategy, or a hybrid merge of several,
// and fall back to a plain substring search when ranking cannot finish in time.
//
//	client, err := cardex.New(ctx,
//	    cardex.WithRedis("localhost:6379"),
//	    cardex.WithCache(30*time.Second, 1024),
//	)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	_ = client.Save(ctx, cardex.Card{ID: "c1", Title: "Go Engineer", Company: "Acme"})
//	page, _ := client.Search(ctx, cardex.Query{
//	    Text:     "golang engineer",
//	    Strategy: cardex.StrategyHybrid,
//	    Sort:     cardex.SortPopularity,
//	})
//	for _, h := range page.Hits {
//	    fmt.Println(h.Card.Title, h.Score, h.Strategy)
//	}
package cardex
