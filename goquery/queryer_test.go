package goquery_test

import (
	"testing"

	"scrapetask"
	"scrapetask/goquery"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPage = `<!DOCTYPE html>
<html>
<head><title>Test Page</title></head>
<body>
	<h1>Test Page for Web Scraper</h1>
	<div id="intro" class="section lead">
		<p>First paragraph.</p>
		<p>Second paragraph.</p>
	</div>
	<div class="section">
		<a href="/docs/one" data-kind="doc">One</a>
		<a href="/docs/two">Two</a>
	</div>
	<span data-kind="note">A note</span>
</body>
</html>`

func parse(t *testing.T, html string) scrapetask.Queryer {
	t.Helper()
	q, err := goquery.NewParser().Parse(html)
	require.NoError(t, err)
	return q
}

func TestQueryer_Query(t *testing.T) {
	t.Parallel()

	t.Run("tag query extracts text in document order", func(t *testing.T) {
		t.Parallel()

		d := parse(t, testPage)
		values, err := d.Query(scrapetask.Query{
			ID: "heading", Type: scrapetask.QueryTypeTag, Value: "h1", Target: scrapetask.TargetText,
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"Test Page for Web Scraper"}, values)
	})

	t.Run("id query matches at most one node", func(t *testing.T) {
		t.Parallel()

		d := parse(t, testPage)
		values, err := d.Query(scrapetask.Query{
			ID: "intro", Type: scrapetask.QueryTypeID, Value: "intro", Target: scrapetask.TargetText,
		})
		require.NoError(t, err)
		require.Len(t, values, 1)
		assert.Contains(t, values[0], "First paragraph.")
		assert.Contains(t, values[0], "Second paragraph.")
	})

	t.Run("class query matches the class list", func(t *testing.T) {
		t.Parallel()

		d := parse(t, testPage)
		values, err := d.Query(scrapetask.Query{
			ID: "sections", Type: scrapetask.QueryTypeClass, Value: "section", Target: scrapetask.TargetText,
		})
		require.NoError(t, err)
		assert.Len(t, values, 2)
	})

	t.Run("attribute type matches nodes carrying the attribute", func(t *testing.T) {
		t.Parallel()

		d := parse(t, testPage)
		values, err := d.Query(scrapetask.Query{
			ID: "kinds", Type: scrapetask.QueryTypeAttribute, Value: "data-kind", Target: scrapetask.TargetText,
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"One", "A note"}, values)
	})

	t.Run("selector query runs a css selector", func(t *testing.T) {
		t.Parallel()

		d := parse(t, testPage)
		values, err := d.Query(scrapetask.Query{
			ID: "links", Type: scrapetask.QueryTypeSelector, Value: "div.section > a", Target: scrapetask.TargetAttribute, Attr: "href",
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"/docs/one", "/docs/two"}, values)
	})

	t.Run("html target returns full markup", func(t *testing.T) {
		t.Parallel()

		d := parse(t, `<div><p class="x">hi</p></div>`)
		values, err := d.Query(scrapetask.Query{
			ID: "p", Type: scrapetask.QueryTypeTag, Value: "p", Target: scrapetask.TargetHTML,
		})
		require.NoError(t, err)
		assert.Equal(t, []string{`<p class="x">hi</p>`}, values)
	})

	t.Run("inner html target excludes the node's own tags", func(t *testing.T) {
		t.Parallel()

		d := parse(t, `<div><p><em>hi</em></p></div>`)
		values, err := d.Query(scrapetask.Query{
			ID: "p", Type: scrapetask.QueryTypeTag, Value: "p", Target: scrapetask.TargetInnerHTML,
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"<em>hi</em>"}, values)
	})

	t.Run("missing attribute on a node yields an empty string", func(t *testing.T) {
		t.Parallel()

		d := parse(t, testPage)
		values, err := d.Query(scrapetask.Query{
			ID: "kinds", Type: scrapetask.QueryTypeTag, Value: "a", Target: scrapetask.TargetAttribute, Attr: "data-kind",
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"doc", ""}, values)
	})

	t.Run("no match returns an empty slice, not an error", func(t *testing.T) {
		t.Parallel()

		d := parse(t, testPage)
		values, err := d.Query(scrapetask.Query{
			ID: "nope", Type: scrapetask.QueryTypeSelector, Value: ".does-not-exist", Target: scrapetask.TargetText,
		})
		require.NoError(t, err)
		assert.NotNil(t, values)
		assert.Empty(t, values)
	})

	t.Run("invalid query fails the call", func(t *testing.T) {
		t.Parallel()

		d := parse(t, testPage)
		_, err := d.Query(scrapetask.Query{ID: "x", Type: scrapetask.QueryTypeXPath, Value: "//h1", Target: scrapetask.TargetText})
		require.Error(t, err)
		assert.Equal(t, scrapetask.EINVALID, scrapetask.ErrorCode(err))
	})

	t.Run("malformed html is parsed with error recovery", func(t *testing.T) {
		t.Parallel()

		d := parse(t, `<div><p>unclosed<div><span>more`)
		values, err := d.Query(scrapetask.Query{
			ID: "p", Type: scrapetask.QueryTypeTag, Value: "span", Target: scrapetask.TargetText,
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"more"}, values)
	})
}

func TestQueryer_MultiQuery(t *testing.T) {
	t.Parallel()

	t.Run("assembles results keyed by query id", func(t *testing.T) {
		t.Parallel()

		d := parse(t, testPage)
		results, err := d.MultiQuery([]scrapetask.Query{
			{ID: "heading", Type: scrapetask.QueryTypeTag, Value: "h1", Target: scrapetask.TargetText},
			{ID: "links", Type: scrapetask.QueryTypeSelector, Value: "a", Target: scrapetask.TargetAttribute, Attr: "href"},
			{ID: "nope", Type: scrapetask.QueryTypeClass, Value: "missing", Target: scrapetask.TargetText},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"Test Page for Web Scraper"}, results["heading"])
		assert.Equal(t, []string{"/docs/one", "/docs/two"}, results["links"])
		assert.Empty(t, results["nope"])
	})

	t.Run("a duplicate id is last-write-wins", func(t *testing.T) {
		t.Parallel()

		d := parse(t, testPage)
		results, err := d.MultiQuery([]scrapetask.Query{
			{ID: "x", Type: scrapetask.QueryTypeTag, Value: "h1", Target: scrapetask.TargetText},
			{ID: "x", Type: scrapetask.QueryTypeTag, Value: "span", Target: scrapetask.TargetText},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"A note"}, results["x"])
	})

	t.Run("one invalid query fails the whole call", func(t *testing.T) {
		t.Parallel()

		d := parse(t, testPage)
		_, err := d.MultiQuery([]scrapetask.Query{
			{ID: "heading", Type: scrapetask.QueryTypeTag, Value: "h1", Target: scrapetask.TargetText},
			{ID: "bad", Type: scrapetask.QueryTypeTag, Value: "h1"},
		})
		require.Error(t, err)
		assert.Equal(t, scrapetask.EINVALID, scrapetask.ErrorCode(err))
	})
}
