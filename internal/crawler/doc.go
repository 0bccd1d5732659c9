// Package crawler walks the encyclopedia from a start article by always
// following the first valid link, testing the "Getting to Philosophy"
// conjecture.
//
// # Components
//
//   - Walker: the crawl loop; it owns the visited set of one run and
//     decides between success, loop and dead end
//   - PageFetcher: the capability the Walker uses to load an article
//   - HTTPFetcher: a PageFetcher that downloads and parses articles over HTTP
//   - Parser: turns article HTML into the model content tree and its
//     ordered body paragraphs
//
// The walk is strictly sequential: each fetch depends on the link chosen on
// the previous page.
//
// # Usage
//
//	sel, _ := selector.New("https://en.wikipedia.org")
//	fetcher := crawler.NewHTTPFetcher(httpClient)
//	walker := crawler.NewWalker(fetcher, sel)
//	run, err := walker.TestConjecture(ctx, "https://en.wikipedia.org/wiki/Go_(programming_language)")
package crawler
