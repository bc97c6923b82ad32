package store

import (
	"strings"
	"unicode"
)

// ColumnName converts a camelCase field key to snake_case.
func ColumnName(key string) string {
	var b strings.Builder
	runes := []rune(key)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 && (unicode.IsLower(runes[i-1]) || (i+1 < len(runes) && unicode.IsLower(runes[i+1]) && unicode.IsUpper(runes[i-1]))) {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Row returns the record as snake_case columns: the metadata columns plus
// one column per field.
func (r Record) Row() map[string]any {
	doc := r.Document()
	row := make(map[string]any, len(doc))
	for key, value := range doc {
		row[ColumnName(key)] = value
	}
	return row
}
