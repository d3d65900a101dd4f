package render

import (
	"encoding/json"
	"strings"

	"github.com/maximeborges/bunyan-view/pkg/record"
)

const (
	baseIndent   = 4
	longLineSize = 50
	divider      = "--"
)

// isMultiline reports whether a value needs the multiline block treatment:
// a string containing a newline or longer than longLineSize. Non-strings are
// never multiline.
func isMultiline(v any) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	return strings.Contains(s, "\n") || len(s) > longLineSize
}

// hasKeys reports whether a value is an object with at least one entry.
func hasKeys(v any) bool {
	f, ok := v.(*record.Fields)
	return ok && f.Len() > 0
}

func isObject(v any) bool {
	_, ok := v.(*record.Fields)
	return ok
}

func isArray(v any) bool {
	_, ok := v.([]any)
	return ok
}

func isBool(v any) bool {
	_, ok := v.(bool)
	return ok
}

// stringOrJSON flattens a value for single-line display: strings pass
// through unquoted, null is literal, everything else is its compact JSON
// text.
func stringOrJSON(v any) string {
	switch tv := v.(type) {
	case string:
		return tv
	case nil:
		return "null"
	default:
		return record.CompactJSON(v)
	}
}

// getOrDefault resolves a display string for a sub-object key, falling back
// to def when the key is absent.
func getOrDefault(m *record.Fields, key, def string) string {
	v, ok := m.Get(key)
	if !ok {
		return def
	}
	if s, ok := v.(string); ok {
		return s
	}
	return record.CompactJSON(v)
}

// splitLines splits on newlines the way line-by-line renderers expect: a
// trailing newline does not produce a final empty line, and \r\n endings are
// normalized.
func splitLines(s string) []string {
	parts := strings.Split(s, "\n")
	if len(parts) > 1 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	for i, p := range parts {
		parts[i] = strings.TrimSuffix(p, "\r")
	}
	return parts
}

// writeValue serializes an arbitrary value as an indented block and returns
// the number of newline-terminated lines it emitted. Nesting indents by two
// columns per level regardless of the base indent. The closing brace of a
// block is written without a trailing newline; callers own the final break.
func writeValue(sw *writer, v any, indent int) int {
	switch tv := v.(type) {
	case nil:
		sw.writeString("null")
		return 0
	case bool, json.Number, string:
		sw.writeString(record.CompactJSON(tv))
		return 0
	case *record.Fields:
		if tv.Len() == 0 {
			sw.writeString("{}")
			return 0
		}
		lines := 1
		sw.writeString("{\n")
		keys := tv.Keys()
		for i, k := range keys {
			sw.printf("%*s%s: ", indent+2, "", record.CompactJSON(k))
			kv, _ := tv.Get(k)
			lines += writeValue(sw, kv, indent+2)
			if i < len(keys)-1 {
				sw.writeString(",\n")
			} else {
				sw.writeString("\n")
			}
			lines++
		}
		sw.printf("%*s}", indent, "")
		return lines
	case []any:
		if len(tv) == 0 {
			sw.writeString("[]")
			return 0
		}
		lines := 1
		sw.writeString("[\n")
		for i, el := range tv {
			sw.printf("%*s", indent+2, "")
			lines += writeValue(sw, el, indent+2)
			if i < len(tv)-1 {
				sw.writeString(",\n")
			} else {
				sw.writeString("\n")
			}
			lines++
		}
		sw.printf("%*s]", indent, "")
		return lines
	default:
		sw.writeString(record.CompactJSON(tv))
		return 0
	}
}
