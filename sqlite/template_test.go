package sqlite_test

import (
	"context"
	"testing"

	"scrapetask"
	"scrapetask/sqlite"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTemplate(id string) *scrapetask.Template {
	return &scrapetask.Template{
		ID:  id,
		URL: "https://example.com",
		Queries: []scrapetask.Query{
			{ID: "title", Type: scrapetask.QueryTypeTag, Value: "h1", Target: scrapetask.TargetText},
		},
	}
}

func TestTemplateService_CreateTemplate(t *testing.T) {
	t.Parallel()

	t.Run("keeps a caller-chosen id", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		s := sqlite.NewTemplateService(db)

		tmpl := newTemplate("t1")
		require.NoError(t, s.CreateTemplate(context.Background(), tmpl))
		assert.Equal(t, "t1", tmpl.ID)
		assert.False(t, tmpl.CreatedAt.IsZero())
	})

	t.Run("assigns an id when absent", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		s := sqlite.NewTemplateService(db)

		tmpl := newTemplate("")
		require.NoError(t, s.CreateTemplate(context.Background(), tmpl))
		assert.NotEmpty(t, tmpl.ID)
	})

	t.Run("rejects an invalid template", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		s := sqlite.NewTemplateService(db)

		err := s.CreateTemplate(context.Background(), &scrapetask.Template{ID: "t1", URL: "not-a-url"})
		require.Error(t, err)
		assert.Equal(t, scrapetask.EINVALID, scrapetask.ErrorCode(err))
	})

	t.Run("returns ECONFLICT for a duplicate id", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		s := sqlite.NewTemplateService(db)
		ctx := context.Background()

		require.NoError(t, s.CreateTemplate(ctx, newTemplate("t1")))
		err := s.CreateTemplate(ctx, newTemplate("t1"))
		require.Error(t, err)
		assert.Equal(t, scrapetask.ECONFLICT, scrapetask.ErrorCode(err))
	})
}

func TestTemplateService_FindTemplateByID(t *testing.T) {
	t.Parallel()

	t.Run("round-trips url and queries", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		s := sqlite.NewTemplateService(db)
		ctx := context.Background()

		tmpl := newTemplate("t1")
		require.NoError(t, s.CreateTemplate(ctx, tmpl))

		got, err := s.FindTemplateByID(ctx, "t1")
		require.NoError(t, err)
		assert.Equal(t, tmpl.URL, got.URL)
		assert.Equal(t, tmpl.Queries, got.Queries)
	})

	t.Run("a url-only template round-trips without queries", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		s := sqlite.NewTemplateService(db)
		ctx := context.Background()

		require.NoError(t, s.CreateTemplate(ctx, &scrapetask.Template{ID: "t2", URL: "https://example.com"}))

		got, err := s.FindTemplateByID(ctx, "t2")
		require.NoError(t, err)
		assert.Nil(t, got.Queries)
	})

	t.Run("returns ENOTFOUND when not found", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		s := sqlite.NewTemplateService(db)

		_, err := s.FindTemplateByID(context.Background(), "missing")
		require.Error(t, err)
		assert.Equal(t, scrapetask.ENOTFOUND, scrapetask.ErrorCode(err))
	})
}

func TestTemplateService_FindTemplates(t *testing.T) {
	t.Parallel()

	db := mustOpenDB(t)
	s := sqlite.NewTemplateService(db)
	ctx := context.Background()

	require.NoError(t, s.CreateTemplate(ctx, newTemplate("t1")))
	require.NoError(t, s.CreateTemplate(ctx, newTemplate("t2")))

	got, err := s.FindTemplates(ctx, scrapetask.TemplateFilter{})
	require.NoError(t, err)
	assert.Len(t, got, 2)
}
