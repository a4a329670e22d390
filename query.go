package scrapetask

import (
	"fmt"
	"strings"
)

// QueryType identifies how a query's value is matched against the document.
type QueryType string

// Recognized query types.
const (
	QueryTypeID        QueryType = "id"
	QueryTypeClass     QueryType = "class"
	QueryTypeTag       QueryType = "tag"
	QueryTypeAttribute QueryType = "attribute"
	QueryTypeSelector  QueryType = "selector"

	// QueryTypeXPath is recognized but rejected at validation time.
	QueryTypeXPath QueryType = "xpath"
)

// queryTypes lists every recognized query type, in the order used for
// validation error messages.
var queryTypes = []QueryType{
	QueryTypeID,
	QueryTypeClass,
	QueryTypeTag,
	QueryTypeAttribute,
	QueryTypeSelector,
	QueryTypeXPath,
}

// TargetType identifies what content is extracted from each matched node.
type TargetType string

// Recognized target types.
const (
	TargetHTML      TargetType = "html"
	TargetInnerHTML TargetType = "inner"
	TargetText      TargetType = "text"
	TargetAttribute TargetType = "attribute"
)

// targetTypes lists every recognized target type, in the order used for
// validation error messages.
var targetTypes = []TargetType{
	TargetHTML,
	TargetInnerHTML,
	TargetText,
	TargetAttribute,
}

// Query is a single typed extraction instruction. Its ID keys the extracted
// values in the task's result data.
type Query struct {
	ID     string     `json:"id"`
	Type   QueryType  `json:"type"`
	Value  string     `json:"value"`
	Target TargetType `json:"target"`
	Attr   string     `json:"attr,omitempty"`
}

// Validate returns an error describing the first violated rule, or nil if
// the query is well-formed. The order of checks is fixed: id, type, value,
// target, attribute rule.
func (q *Query) Validate() error {
	if q == nil {
		return Errorf(EINVALID, "query is missing")
	}
	if *q == (Query{}) {
		return Errorf(EINVALID, "query is empty")
	}

	if strings.TrimSpace(q.ID) == "" {
		return Errorf(EINVALID, "query id ('id') must be provided as a non-empty string")
	}

	if err := q.validateType(); err != nil {
		return err
	}

	if strings.TrimSpace(q.Value) == "" {
		return Errorf(EINVALID, "query value ('value') must be provided as a non-empty string")
	}

	if err := q.validateTarget(); err != nil {
		return err
	}

	return q.validateAttr()
}

func (q *Query) validateType() error {
	if q.Type == "" {
		return Errorf(EINVALID, "query type ('type') must be provided as a string")
	}

	var recognized bool
	for _, t := range queryTypes {
		if q.Type == t {
			recognized = true
			break
		}
	}
	if !recognized {
		return Errorf(EINVALID, "invalid query type ('type'): %q; valid types are: %s", string(q.Type), joinTypes(queryTypes))
	}

	// TODO: remove when xpath queries are supported.
	if q.Type == QueryTypeXPath {
		return Errorf(EINVALID, "query type ('type') cannot be 'xpath'; this is not supported currently")
	}

	return nil
}

func (q *Query) validateTarget() error {
	if q.Target == "" {
		return Errorf(EINVALID, "target type ('target') must be provided as a string")
	}

	for _, t := range targetTypes {
		if q.Target == t {
			return nil
		}
	}
	return Errorf(EINVALID, "invalid target type ('target'): %q; valid types are: %s", string(q.Target), joinTypes(targetTypes))
}

func (q *Query) validateAttr() error {
	if q.Target == TargetAttribute && strings.TrimSpace(q.Attr) == "" {
		return Errorf(EINVALID, "attribute name ('attr') is required when target type is 'attribute'")
	}
	return nil
}

// Warnings returns non-fatal advisories about the query. A query carrying an
// attr with a non-attribute target is legal but the attr is ignored.
func (q *Query) Warnings() []string {
	var warnings []string
	if q.Target != TargetAttribute && q.Attr != "" {
		warnings = append(warnings, fmt.Sprintf("query %q defines a %q target, which does not support 'attr' extraction", q.ID, string(q.Target)))
	}
	return warnings
}

func joinTypes[T ~string](types []T) string {
	strs := make([]string, len(types))
	for i, t := range types {
		strs[i] = string(t)
	}
	return strings.Join(strs, ", ")
}
