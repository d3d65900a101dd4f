package render

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/maximeborges/bunyan-view/pkg/record"
)

// CompactJSONLine re-serializes one raw line as single-line JSON, preserving
// key order. This is both the json-0 format and the fallback for inspect
// lines missing required fields.
func CompactJSONLine(line string) (string, *record.DecodeError) {
	var buf bytes.Buffer
	if err := json.Compact(&buf, []byte(line)); err != nil {
		return "", jsonDecodeError(line, err)
	}
	return buf.String(), nil
}

// IndentJSONLine re-serializes one raw line with the given number of spaces
// per nesting level.
func IndentJSONLine(line string, indent int) (string, *record.DecodeError) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(line), "", strings.Repeat(" ", indent)); err != nil {
		return "", jsonDecodeError(line, err)
	}
	return buf.String(), nil
}

func jsonDecodeError(line string, err error) *record.DecodeError {
	derr := &record.DecodeError{Msg: err.Error(), Raw: line}
	if serr, ok := err.(*json.SyntaxError); ok {
		derr.Column = int(serr.Offset)
	}
	return derr
}
