package main

import (
	"fmt"
	"os"

	"scrapetask"
	"scrapetask/yaml"
)

// Run executes the template add command.
func (c *TemplateAddCmd) Run(deps *Dependencies) error {
	data, err := os.ReadFile(c.File)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", err)
		return err
	}

	tmpl, err := yaml.ParseTemplate(data)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s: %s\n", c.File, scrapetask.ErrorMessage(err))
		return err
	}

	if err := deps.Templates.CreateTemplate(deps.Ctx, tmpl); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", scrapetask.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Added template %s (%d queries)\n", tmpl.ID, len(tmpl.Queries))

	return nil
}

// Run executes the template list command.
func (c *TemplateListCmd) Run(deps *Dependencies) error {
	templates, err := deps.Templates.FindTemplates(deps.Ctx, scrapetask.TemplateFilter{})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", scrapetask.ErrorMessage(err))
		return err
	}

	if len(templates) == 0 {
		fmt.Fprintln(deps.Stdout, "No templates found. Use 'scrapetask template add' to create one.")
		return nil
	}

	for _, t := range templates {
		fmt.Fprintf(deps.Stdout, "%s  %d queries  %s\n", t.ID, len(t.Queries), t.URL)
	}

	return nil
}
