// Package yaml parses task and template definition files. Files are decoded
// strictly: unknown fields are rejected so that a typoed query field fails
// fast instead of silently producing an empty extraction.
package yaml

import (
	"bytes"
	"errors"
	"io"

	"gopkg.in/yaml.v3"
	"scrapetask"
)

// taskSpec is the on-disk shape of a task definition. Lifecycle fields
// (stage, data, error, timestamps) are owned by the pipeline and are not
// accepted from files.
type taskSpec struct {
	URL      string             `yaml:"url"`
	Template string             `yaml:"template"`
	Queries  []scrapetask.Query `yaml:"queries"`
}

// templateSpec is the on-disk shape of a template definition.
type templateSpec struct {
	ID      string             `yaml:"id"`
	URL     string             `yaml:"url"`
	Queries []scrapetask.Query `yaml:"queries"`
}

// ParseTask decodes a task definition.
func ParseTask(data []byte) (*scrapetask.Task, error) {
	var spec taskSpec
	if err := decodeStrict(data, &spec); err != nil {
		return nil, scrapetask.Errorf(scrapetask.EINVALID, "invalid task file: %v", err)
	}
	return &scrapetask.Task{
		URL:      spec.URL,
		Template: spec.Template,
		Queries:  spec.Queries,
	}, nil
}

// ParseTemplate decodes a template definition.
func ParseTemplate(data []byte) (*scrapetask.Template, error) {
	var spec templateSpec
	if err := decodeStrict(data, &spec); err != nil {
		return nil, scrapetask.Errorf(scrapetask.EINVALID, "invalid template file: %v", err)
	}
	return &scrapetask.Template{
		ID:      spec.ID,
		URL:     spec.URL,
		Queries: spec.Queries,
	}, nil
}

// decodeStrict decodes a single YAML document, rejecting unknown fields.
func decodeStrict(data []byte, dst any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("file is empty")
		}
		return err
	}
	return nil
}
