package render

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/maximeborges/bunyan-view/pkg/record"
)

// Every section renderer returns the number of lines it wrote; zero means the
// section produced nothing and the divider policy skips it.

func writeReqSection(sw *writer, m *record.Fields) int {
	lines := writeReqSummary(sw, m)
	lines += writeReqDetails(sw, m)
	return lines
}

func writeClientReqSection(sw *writer, m *record.Fields) int {
	if m == nil {
		return 0
	}
	lines := writeReqSummary(sw, m)

	if addr, ok := m.Get("address"); ok {
		if addrStr, ok := addr.(string); ok {
			sw.printf("%*sHost: %s", baseIndent, "", addrStr)
			if port, ok := m.Get("port"); ok {
				switch port.(type) {
				case string, json.Number:
					sw.printf(":%s", stringOrJSON(port))
				}
			}
			sw.writeString("\n")
			lines++
		}
	}

	lines += writeReqDetails(sw, m)
	return lines
}

// writeReqSummary prints the request line with node-bunyan's defaults for
// missing parts: "METHOD URL HTTP/version".
func writeReqSummary(sw *writer, m *record.Fields) int {
	if m == nil {
		return 0
	}
	sw.printf("%*s%s %s HTTP/%s\n", baseIndent, "",
		getOrDefault(m, "method", "undefined"),
		getOrDefault(m, "url", "undefined"),
		getOrDefault(m, "httpVersion", "1.1"))
	return 1
}

func writeReqDetails(sw *writer, m *record.Fields) int {
	if m == nil {
		return 0
	}
	lines := 0

	if header, ok := m.Get("header"); ok {
		lines += writeKeyVals(sw, header)
	}
	if headers, ok := m.Get("headers"); ok {
		lines += writeKeyVals(sw, headers)
	}
	if body, ok := m.Get("body"); ok {
		for _, ln := range splitLines(stringOrJSON(body)) {
			sw.printf("%*s%s\n", baseIndent, "", ln)
			lines++
		}
	}
	if trailers, ok := m.Get("trailers"); ok {
		lines += writeKeyVals(sw, trailers)
	}

	return lines
}

// writeKeyVals renders a header-like value. Objects become one "key: value"
// line per entry with multiline values continued on indented lines; raw
// strings are printed line by line with blank lines skipped.
func writeKeyVals(sw *writer, v any) int {
	lines := 0
	switch tv := v.(type) {
	case *record.Fields:
		for _, k := range tv.Keys() {
			kv, _ := tv.Get(k)
			sw.printf("%*s%s:", baseIndent, "", k)
			for i, ln := range splitLines(stringOrJSON(kv)) {
				if i == 0 {
					sw.printf(" %s\n", ln)
				} else {
					sw.printf("%*s%s\n", baseIndent, "", ln)
				}
				lines++
			}
		}
	case string:
		for _, ln := range splitLines(tv) {
			if strings.TrimSpace(ln) == "" {
				continue
			}
			sw.printf("%*s%s\n", baseIndent, "", ln)
			lines++
		}
	}
	return lines
}

// writeResSection renders res and client_res. When both header and headers
// are present only header is used; headers is discarded entirely, matching
// node-bunyan.
func writeResSection(sw *writer, m *record.Fields) int {
	if m == nil {
		return 0
	}
	lines := 0

	statusVal, _ := m.Get("statusCode")

	headerVal, hasHeader := m.Get("header")
	if !hasHeader {
		headerVal, hasHeader = m.Get("headers")
	}

	if hasHeader {
		switch hv := headerVal.(type) {
		case string:
			// A raw header block carries its own HTTP version.
			version := ""
			if strings.HasPrefix(hv, "HTTP/") && len(hv) >= 8 {
				version = hv[5:8]
			}
			lines += writeStatusLine(sw, statusVal, version)
			for _, ln := range splitLines(hv) {
				if ln == "" {
					continue
				}
				sw.printf("%*s%s\n", baseIndent, "", ln)
				lines++
			}
		case *record.Fields:
			lines += writeStatusLine(sw, statusVal, "")
			lines += writeHeaderObject(sw, hv)
		case nil:
			lines += writeStatusLine(sw, statusVal, "")
		}
	} else {
		lines += writeStatusLine(sw, statusVal, "")
	}

	if body, ok := m.Get("body"); ok {
		if bodyStr, ok := body.(string); ok && bodyStr != "" {
			sw.writeString("\n")
			lines++
			for _, ln := range splitLines(bodyStr) {
				sw.printf("%*s%s\n", baseIndent, "", ln)
				lines++
			}
		}
	}

	for _, k := range m.Keys() {
		if inSet(resExtra, k) {
			continue
		}
		v, _ := m.Get(k)
		if !isObject(v) {
			continue
		}
		sw.printf("%*sres.%s: ", baseIndent, "", k)
		lines += writeValue(sw, v, baseIndent)
		sw.writeString("\n")
		lines++
	}

	return lines
}

// writeStatusLine prints "HTTP/<version> <code> <reason>" when the status
// code value is usable: a number, or a string parsing as an unsigned 16-bit
// integer. Anything else yields no status line.
func writeStatusLine(sw *writer, v any, version string) int {
	code, ok := statusCode(v)
	if !ok {
		return 0
	}
	if version == "" {
		version = "1.1"
	}
	sw.printf("%*sHTTP/%s %d %s\n", baseIndent, "", version, code, http.StatusText(code))
	return 1
}

func statusCode(v any) (int, bool) {
	switch tv := v.(type) {
	case json.Number:
		i, err := tv.Int64()
		if err != nil || i < 0 || i > 65535 {
			return 0, false
		}
		return int(i), true
	case string:
		u, err := strconv.ParseUint(tv, 10, 16)
		if err != nil {
			return 0, false
		}
		return int(u), true
	default:
		return 0, false
	}
}

func writeHeaderObject(sw *writer, headers *record.Fields) int {
	lines := 0
	for _, k := range headers.Keys() {
		v, _ := headers.Get(k)
		sw.printf("%*s%s: %s\n", baseIndent, "", k, stringOrJSON(v))
		lines++
	}
	return lines
}

// writeErrSection prints the stack, line by line for a string stack, one
// element per line for an array stack. Other err fields only ever show up as
// inline parameters.
func writeErrSection(sw *writer, m *record.Fields) int {
	if m == nil {
		return 0
	}
	lines := 0
	stack, ok := m.Get("stack")
	if !ok {
		return 0
	}
	switch sv := stack.(type) {
	case string:
		for _, ln := range splitLines(sv) {
			sw.printf("%*s%s\n", baseIndent, "", ln)
			lines++
		}
	case []any:
		for _, el := range sv {
			sw.printf("%*s%s\n", baseIndent, "", stringOrJSON(el))
			lines++
		}
	}
	return lines
}
