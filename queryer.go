package scrapetask

// Queryer executes typed queries against a single parsed HTML document.
// A Queryer is scoped to one fetched document and is not reused across
// tasks.
type Queryer interface {
	// Query validates q, resolves its node set, and extracts one string per
	// matched node in document order. A query matching nothing returns an
	// empty slice, never an error.
	Query(q Query) ([]string, error)

	// MultiQuery runs each query independently and assembles the results
	// keyed by query id. Queries never observe each other's effects; a
	// duplicate id means the later result overwrites the earlier one.
	// An invalid query fails the whole call.
	MultiQuery(queries []Query) (map[string][]string, error)
}

// Parser builds a Queryer from raw HTML. Implementations apply standard
// HTML error recovery rather than rejecting malformed markup.
type Parser interface {
	Parse(html string) (Queryer, error)
}
