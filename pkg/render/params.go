package render

import (
	"encoding/json"
	"strings"

	"github.com/maximeborges/bunyan-view/pkg/record"
)

// Per-sub-object key sets excluded from generic fallback rendering. These
// mirror node-bunyan's tables exactly, asymmetries included.
var (
	reqExtra       = []string{"method", "url", "httpVersion", "body", "header", "headers", "trailers"}
	clientReqExtra = []string{"method", "url", "httpVersion", "body", "header", "address", "port"}
	resExtra       = []string{"statusCode", "header", "headers", "trailer"}
	clientResExtra = []string{"statusCode", "body", "header", "headers", "trailer"}
	errExtra       = []string{"message", "name", "stack"}
)

func inSet(set []string, key string) bool {
	for _, k := range set {
		if k == key {
			return true
		}
	}
	return false
}

// writeInlineParams appends the " (k=v, ...)" suffix to the header line. The
// parenthesis opens lazily on the first item; with no items nothing at all is
// written.
func writeInlineParams(sw *writer, rec *record.Record) {
	first := true

	if rid := reqIDText(rec.ReqID); rid != "" {
		sw.printf(" (req_id=%s", rid)
		first = false
	}

	for _, k := range rec.Other.Keys() {
		v, _ := rec.Other.Get(k)
		if isMultiline(v) || isArray(v) || hasKeys(v) {
			continue
		}
		openOrSep(sw, &first)
		if s, ok := v.(string); ok {
			writeParam(sw, k, s)
		} else {
			sw.printf("%s=%s", k, record.CompactJSON(v))
		}
	}

	writeSubObjectParams(sw, rec.Req, "req", reqExtra, &first)
	writeSubObjectParams(sw, rec.ClientReq, "client_req", clientReqExtra, &first)
	writeSubObjectParams(sw, rec.Res, "res", resExtra, &first)
	writeSubObjectParams(sw, rec.ClientRes, "client_res", clientResExtra, &first)
	writeSubObjectParams(sw, rec.Err, "err", errExtra, &first)

	if !first {
		sw.writeString(")")
	}
}

// writeSubObjectParams emits the inline-eligible entries of one conventional
// sub-object: scalar values outside the extra set, plus null/boolean values
// of extra keys. The trailer keys never qualify, and a raw_body key displays
// as the bare sub-object name (upstream compatibility).
func writeSubObjectParams(sw *writer, m *record.Fields, name string, extra []string, first *bool) {
	if m == nil {
		return
	}
	for _, k := range m.Keys() {
		v, _ := m.Get(k)
		isExtra := inSet(extra, k)
		include := (!hasKeys(v) && !isExtra) ||
			(isExtra && k != "trailer" && k != "trailers" && (v == nil || isBool(v)))
		if !include {
			continue
		}

		openOrSep(sw, first)

		displayKey := name + "." + k
		if k == "raw_body" {
			displayKey = name
		}
		writeParam(sw, displayKey, stringOrJSON(v))
	}
}

func writeParam(sw *writer, key, val string) {
	if strings.Contains(val, " ") {
		sw.printf("%s=\"%s\"", key, val)
	} else {
		sw.printf("%s=%s", key, val)
	}
}

func openOrSep(sw *writer, first *bool) {
	if *first {
		sw.writeString(" (")
		*first = false
	} else {
		sw.writeString(", ")
	}
}

func reqIDText(v any) string {
	switch tv := v.(type) {
	case string:
		return tv
	case json.Number:
		return tv.String()
	default:
		return ""
	}
}

func hasMultilineParams(rec *record.Record) bool {
	for _, k := range rec.Other.Keys() {
		v, _ := rec.Other.Get(k)
		if isMultiline(v) {
			return true
		}
	}
	return false
}

// writeMultilineParams renders every multiline extra as a block: the key on
// the first physical line, continuation lines indented beneath it.
func writeMultilineParams(sw *writer, rec *record.Record) int {
	lines := 0
	for _, k := range rec.Other.Keys() {
		v, _ := rec.Other.Get(k)
		if !isMultiline(v) {
			continue
		}
		s, ok := v.(string)
		if !ok {
			continue
		}
		for i, ln := range splitLines(s) {
			if i == 0 {
				sw.printf("%*s%s: %s\n", baseIndent, "", k, ln)
			} else {
				sw.printf("%*s%s\n", baseIndent, "", ln)
			}
			lines++
		}
	}
	return lines
}

func hasObjectParams(rec *record.Record) bool {
	for _, k := range rec.Other.Keys() {
		v, _ := rec.Other.Get(k)
		if isObject(v) || isArray(v) {
			return true
		}
	}
	return false
}

// writeObjectParams renders every extra whose value is a non-empty object or
// any array, separated from each other by the section divider. Empty objects
// are skipped even though they count toward section presence.
func writeObjectParams(sw *writer, rec *record.Record, cfg *Config) int {
	lines := 0
	first := true
	for _, k := range rec.Other.Keys() {
		v, _ := rec.Other.Get(k)
		if !hasKeys(v) && !isArray(v) {
			continue
		}
		if !first {
			sw.printf("%*s%s\n", baseIndent, "", cfg.paintDivider(divider))
			lines++
		} else {
			first = false
		}
		sw.printf("%*s%s: ", baseIndent, "", k)
		lines += writeValue(sw, v, baseIndent)
		sw.writeString("\n")
		lines++
	}
	return lines
}
