package mock

import "scrapetask"

var _ scrapetask.Parser = (*Parser)(nil)

// Parser is a mock implementation of scrapetask.Parser.
type Parser struct {
	ParseFn func(html string) (scrapetask.Queryer, error)
}

func (p *Parser) Parse(html string) (scrapetask.Queryer, error) {
	return p.ParseFn(html)
}

var _ scrapetask.Queryer = (*Queryer)(nil)

// Queryer is a mock implementation of scrapetask.Queryer.
type Queryer struct {
	QueryFn      func(q scrapetask.Query) ([]string, error)
	MultiQueryFn func(queries []scrapetask.Query) (map[string][]string, error)
}

func (d *Queryer) Query(q scrapetask.Query) ([]string, error) {
	return d.QueryFn(q)
}

func (d *Queryer) MultiQuery(queries []scrapetask.Query) (map[string][]string, error) {
	return d.MultiQueryFn(queries)
}
