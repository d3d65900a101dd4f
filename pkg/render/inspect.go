package render

import (
	"encoding/json"
	"io"
	"regexp"
	"strings"

	"github.com/maximeborges/bunyan-view/pkg/record"
)

// inspectBreakLength is the width past which objects and arrays wrap onto
// multiple lines, mirroring util.inspect's breakLength behavior.
const inspectBreakLength = 72

var identifierRe = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// WriteInspect renders a generic decoded line in a util.inspect-like form:
// bare keys, single-quoted strings, short containers on one line and long
// ones broken across lines with two-space indent.
func WriteInspect(w io.Writer, fields *record.Fields) error {
	sw := newWriter(w)
	sw.writeString(inspectValue(fields, 0))
	sw.writeString("\n")
	return sw.finish()
}

func inspectValue(v any, indent int) string {
	switch tv := v.(type) {
	case nil:
		return "null"
	case bool:
		if tv {
			return "true"
		}
		return "false"
	case json.Number:
		return tv.String()
	case string:
		return singleQuote(tv)
	case []any:
		return inspectArray(tv, indent)
	case *record.Fields:
		return inspectObject(tv, indent)
	default:
		return record.CompactJSON(tv)
	}
}

func inspectObject(f *record.Fields, indent int) string {
	if f.Len() == 0 {
		return "{}"
	}

	items := make([]string, 0, f.Len())
	for _, k := range f.Keys() {
		v, _ := f.Get(k)
		items = append(items, inspectKey(k)+": "+inspectValue(v, indent+2))
	}

	oneLine := "{ " + strings.Join(items, ", ") + " }"
	if indent+len(oneLine) <= inspectBreakLength && !strings.Contains(oneLine, "\n") {
		return oneLine
	}

	pad := strings.Repeat(" ", indent+2)
	return "{\n" + pad + strings.Join(items, ",\n"+pad) + "\n" + strings.Repeat(" ", indent) + "}"
}

func inspectArray(a []any, indent int) string {
	if len(a) == 0 {
		return "[]"
	}

	items := make([]string, 0, len(a))
	for _, v := range a {
		items = append(items, inspectValue(v, indent+2))
	}

	oneLine := "[ " + strings.Join(items, ", ") + " ]"
	if indent+len(oneLine) <= inspectBreakLength && !strings.Contains(oneLine, "\n") {
		return oneLine
	}

	pad := strings.Repeat(" ", indent+2)
	return "[\n" + pad + strings.Join(items, ",\n"+pad) + "\n" + strings.Repeat(" ", indent) + "]"
}

func inspectKey(k string) string {
	if identifierRe.MatchString(k) {
		return k
	}
	return singleQuote(k)
}

func singleQuote(s string) string {
	var b strings.Builder
	b.WriteByte('\'')
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '\'':
			b.WriteString(`\'`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('\'')
	return b.String()
}
