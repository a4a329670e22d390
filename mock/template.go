package mock

import (
	"context"

	"scrapetask"
)

var _ scrapetask.TemplateService = (*TemplateService)(nil)

// TemplateService is a mock implementation of scrapetask.TemplateService.
type TemplateService struct {
	CreateTemplateFn   func(ctx context.Context, tmpl *scrapetask.Template) error
	FindTemplateByIDFn func(ctx context.Context, id string) (*scrapetask.Template, error)
	FindTemplatesFn    func(ctx context.Context, filter scrapetask.TemplateFilter) ([]*scrapetask.Template, error)
}

func (s *TemplateService) CreateTemplate(ctx context.Context, tmpl *scrapetask.Template) error {
	return s.CreateTemplateFn(ctx, tmpl)
}

func (s *TemplateService) FindTemplateByID(ctx context.Context, id string) (*scrapetask.Template, error) {
	return s.FindTemplateByIDFn(ctx, id)
}

func (s *TemplateService) FindTemplates(ctx context.Context, filter scrapetask.TemplateFilter) ([]*scrapetask.Template, error) {
	return s.FindTemplatesFn(ctx, filter)
}
