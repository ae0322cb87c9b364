package importer

import (
	"fmt"
	"sort"
	"strings"
)

// Row is one decoded spreadsheet record keyed by its raw column headers.
// Empty cells are absent.
type Row map[string]any

// NormalizeKey lower-cases and trims a header, then replaces every character
// outside [a-z0-9] with an underscore, so "Base Price", "base_price" and
// " BASE-PRICE" all become "base_price".
func NormalizeKey(key string) string {
	key = strings.TrimSpace(strings.ToLower(key))
	var b strings.Builder
	b.Grow(len(key))
	for _, r := range key {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			continue
		}
		b.WriteByte('_')
	}
	return b.String()
}

// NormalizeRow returns the normalized-key twin of a row. Values pass through
// untouched. When two headers collapse onto the same key, the first non-empty
// value in header order (sorted) wins, so the result does not depend on map
// iteration.
func NormalizeRow(row Row) Row {
	keys := make([]string, 0, len(row))
	for k := range row {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(Row, len(row))
	for _, k := range keys {
		nk := NormalizeKey(k)
		if existing, ok := out[nk]; ok && present(existing) {
			continue
		}
		out[nk] = row[k]
	}
	return out
}

// present reports whether a cell carries a usable value.
func present(v any) bool {
	if v == nil {
		return false
	}
	return strings.TrimSpace(cellString(v)) != ""
}

func cellString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	default:
		return fmt.Sprint(v)
	}
}
