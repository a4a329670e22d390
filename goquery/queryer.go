// Package goquery implements the query engine on top of PuerkitoBio/goquery.
// It parses a fetched HTML document once and executes typed element queries
// against it, extracting text, markup, or attribute values per query.
package goquery

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"scrapetask"
)

// Ensure Parser implements scrapetask.Parser at compile time.
var _ scrapetask.Parser = (*Parser)(nil)

// Parser builds Queryers from raw HTML.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse parses html into a Queryer. Malformed markup is handled by the
// underlying net/html parser's error recovery and does not fail the parse.
func (p *Parser) Parse(html string) (scrapetask.Queryer, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, scrapetask.Errorf(scrapetask.EINVALID, "failed to parse HTML: %v", err)
	}
	return &Queryer{doc: doc}, nil
}

// Ensure Queryer implements scrapetask.Queryer at compile time.
var _ scrapetask.Queryer = (*Queryer)(nil)

// Queryer executes queries against one parsed document. It is scoped to a
// single task run and never outlives the document it was built from.
type Queryer struct {
	doc *goquery.Document
}

// Query validates q, resolves its node set, and extracts one string per
// matched node in document order. No match yields an empty slice.
func (d *Queryer) Query(q scrapetask.Query) ([]string, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	sel := d.selectNodes(q)

	results := make([]string, 0, sel.Length())
	var extractErr error
	sel.EachWithBreak(func(_ int, s *goquery.Selection) bool {
		value, err := extract(s, q)
		if err != nil {
			extractErr = err
			return false
		}
		results = append(results, value)
		return true
	})
	if extractErr != nil {
		return nil, extractErr
	}

	return results, nil
}

// MultiQuery runs each query independently and assembles the results keyed
// by query id. A duplicate id means the later result overwrites the earlier
// one; callers concerned about collisions deduplicate beforehand.
func (d *Queryer) MultiQuery(queries []scrapetask.Query) (map[string][]string, error) {
	results := make(map[string][]string, len(queries))
	for _, q := range queries {
		values, err := d.Query(q)
		if err != nil {
			return nil, err
		}
		results[q.ID] = values
	}
	return results, nil
}

// selectNodes resolves a query's node set. An id lookup yields at most one
// node; everything else yields all matches in document order.
func (d *Queryer) selectNodes(q scrapetask.Query) *goquery.Selection {
	switch q.Type {
	case scrapetask.QueryTypeID:
		return d.doc.Find(fmt.Sprintf("[id=%q]", q.Value)).First()
	case scrapetask.QueryTypeClass:
		return d.doc.Find(fmt.Sprintf("[class~=%q]", q.Value))
	case scrapetask.QueryTypeTag:
		return d.doc.Find(q.Value)
	case scrapetask.QueryTypeAttribute:
		return d.doc.Find("[" + q.Value + "]")
	case scrapetask.QueryTypeSelector:
		return d.doc.Find(q.Value)
	}
	// Unreachable after validation; match nothing rather than panic.
	return d.doc.Find("")
}

// extract pulls the target content from one matched node.
func extract(s *goquery.Selection, q scrapetask.Query) (string, error) {
	switch q.Target {
	case scrapetask.TargetHTML:
		markup, err := goquery.OuterHtml(s)
		if err != nil {
			return "", scrapetask.Errorf(scrapetask.EINTERNAL, "failed to serialize node for query %q: %v", q.ID, err)
		}
		return markup, nil
	case scrapetask.TargetInnerHTML:
		markup, err := s.Html()
		if err != nil {
			return "", scrapetask.Errorf(scrapetask.EINTERNAL, "failed to serialize node for query %q: %v", q.ID, err)
		}
		return markup, nil
	case scrapetask.TargetText:
		return s.Text(), nil
	case scrapetask.TargetAttribute:
		// Absence of the attribute on a particular node is not a failure.
		return s.AttrOr(q.Attr, ""), nil
	}
	return "", scrapetask.Errorf(scrapetask.EINTERNAL, "unhandled target type %q", string(q.Target))
}
