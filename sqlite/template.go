package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"scrapetask"
)

// Compile-time interface verification.
var _ scrapetask.TemplateService = (*TemplateService)(nil)

// TemplateService implements scrapetask.TemplateService using SQLite.
// Templates are administered out-of-band and read-only during processing.
type TemplateService struct {
	db *DB
}

// NewTemplateService creates a new TemplateService.
func NewTemplateService(db *DB) *TemplateService {
	return &TemplateService{db: db}
}

// CreateTemplate creates a new template record. Tasks reference templates
// by id, so a caller-chosen id is kept; one is assigned otherwise.
func (s *TemplateService) CreateTemplate(ctx context.Context, tmpl *scrapetask.Template) error {
	if err := tmpl.Validate(); err != nil {
		return err
	}

	if tmpl.ID == "" {
		tmpl.ID = uuid.New().String()
	}
	tmpl.CreatedAt = time.Now().UTC()

	queries, err := taskQueriesJSON(tmpl.Queries)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO templates (id, url, queries, created_at)
		VALUES (?, ?, ?, ?)
	`, tmpl.ID, tmpl.URL, queries, tmpl.CreatedAt.Format(time.RFC3339))

	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return scrapetask.Errorf(scrapetask.ECONFLICT, "template %q already exists", tmpl.ID)
	}

	return err
}

// FindTemplateByID retrieves a template by ID.
func (s *TemplateService) FindTemplateByID(ctx context.Context, id string) (*scrapetask.Template, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, url, queries, created_at
		FROM templates
		WHERE id = ?
	`, id)

	tmpl, err := scanTemplate(row.Scan)
	if err == sql.ErrNoRows {
		return nil, scrapetask.Errorf(scrapetask.ENOTFOUND, "template not found: %s", id)
	}
	if err != nil {
		return nil, err
	}
	return tmpl, nil
}

// FindTemplates retrieves templates matching the filter, newest first.
func (s *TemplateService) FindTemplates(ctx context.Context, filter scrapetask.TemplateFilter) ([]*scrapetask.Template, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, url, queries, created_at FROM templates WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}

	query.WriteString(" ORDER BY created_at DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var templates []*scrapetask.Template
	for rows.Next() {
		tmpl, err := scanTemplate(rows.Scan)
		if err != nil {
			return nil, err
		}
		templates = append(templates, tmpl)
	}

	return templates, rows.Err()
}

// scanTemplate reads one template row using the provided scan function.
func scanTemplate(scan func(dest ...any) error) (*scrapetask.Template, error) {
	var tmpl scrapetask.Template
	var queries, createdAt string

	if err := scan(&tmpl.ID, &tmpl.URL, &queries, &createdAt); err != nil {
		return nil, err
	}

	if err := unmarshalJSON(queries, &tmpl.Queries); err != nil {
		return nil, err
	}

	var err error
	if tmpl.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}

	return &tmpl, nil
}
