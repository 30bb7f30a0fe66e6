// Package pagination turns GitHub's page/per_page list endpoints into lazy
// item sequences.
//
// A Paginator fetches page 0 first and keeps going while pages come back
// full. A page shorter than the batch size ends the sequence; a page exactly
// as long as the batch size is followed by one more fetch, which GitHub
// answers with an empty page at the end of a collection.
//
// Pages are fetched on demand: page k+1 is requested only when the consumer
// asks for an item beyond page k, and stopping early leaves nothing in flight.
//
// Example usage:
//
//	p, err := pagination.List[repos.Repository](c, []string{"orgs", "github", "repos"}, 50)
//	if err != nil {
//		return err
//	}
//	for repo, err := range p.All(ctx) {
//		if err != nil {
//			return err
//		}
//		fmt.Println(repo.FullName)
//	}
//
// Each call to All starts over from the first page.
package pagination
