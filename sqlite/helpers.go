package sqlite

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// parseRFC3339 parses an RFC3339 formatted timestamp string. An empty value
// is legal and yields the zero time (started_at / concluded_at are unset
// until processing touches them).
func parseRFC3339(value, fieldName string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %s: %w", fieldName, err)
	}
	return t, nil
}

// formatRFC3339 formats a timestamp for storage; the zero time stores as an
// empty string.
func formatRFC3339(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

// marshalJSON serializes a nested record column. Nil stores as an empty
// string so that absence survives a round trip.
func marshalJSON(v any) (string, error) {
	if v == nil {
		return "", nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to encode column: %w", err)
	}
	return string(b), nil
}

// unmarshalJSON deserializes a nested record column into dst; an empty
// value leaves dst untouched.
func unmarshalJSON(value string, dst any) error {
	if value == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(value), dst); err != nil {
		return fmt.Errorf("failed to decode column: %w", err)
	}
	return nil
}

// appendPagination appends LIMIT and OFFSET clauses to a query builder if
// values are > 0.
func appendPagination(query *strings.Builder, args *[]any, limit, offset int) {
	if limit > 0 {
		query.WriteString(" LIMIT ?")
		*args = append(*args, limit)
	}
	if offset > 0 {
		query.WriteString(" OFFSET ?")
		*args = append(*args, offset)
	}
}
