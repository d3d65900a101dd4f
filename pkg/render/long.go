package render

import (
	"encoding/json"
	"io"

	"github.com/pkg/errors"

	"github.com/maximeborges/bunyan-view/pkg/record"
	"github.com/maximeborges/bunyan-view/pkg/timefmt"
)

// Write renders one record in the configured custom format. Only the custom
// formats go through Records; json and inspect operate on raw lines upstream.
func Write(w io.Writer, rec *record.Record, cfg *Config) error {
	switch cfg.Format {
	case FormatLong:
		return WriteLong(w, rec, cfg)
	case FormatShort:
		return WriteShort(w, rec, cfg)
	case FormatSimple:
		return WriteSimple(w, rec, cfg)
	default:
		return errors.Errorf("format %s does not render records", cfg.Format)
	}
}

// WriteLong renders the full multi-section format: header line with inline
// parameters, then the sections in fixed order separated by dividers.
func WriteLong(w io.Writer, rec *record.Record, cfg *Config) error {
	sw := newWriter(w)

	sw.printf("[%s] %s: %s/",
		cfg.paintTime(timefmt.Format(rec.Time, cfg.LocalTime)),
		cfg.paintLevel(rec.Level, rec.Level.Padded()),
		cfg.paintName(rec.Name))
	if rec.Component != "" {
		sw.printf("%s/", rec.Component)
	}
	sw.printf("%d on %s", rec.PID, rec.Hostname)
	writeSrc(sw, rec, cfg)
	sw.printf(": %s", rec.Msg)
	writeInlineParams(sw, rec)
	sw.writeString("\n")

	writeSections(sw, rec, cfg)

	return sw.finish()
}

// writeSrc appends the call-site decoration. The parenthesis requires a
// string file; line and func only decorate an existing parenthesis.
func writeSrc(sw *writer, rec *record.Record, cfg *Config) {
	if rec.Src == nil {
		return
	}
	fileVal, ok := rec.Src.Get("file")
	if !ok {
		return
	}
	file, ok := fileVal.(string)
	if !ok {
		return
	}

	src := "(" + file
	if line, ok := rec.Src.Get("line"); ok {
		switch line.(type) {
		case string, json.Number:
			src += ":" + stringOrJSON(line)
		}
	}
	if fn, ok := rec.Src.Get("func"); ok {
		if fnStr, ok := fn.(string); ok {
			src += " in " + fnStr
		}
	}
	src += ")"

	sw.printf(" %s", cfg.paintSource(src))
}

// writeSections emits the section sequence with the divider policy: a
// divider goes before a section only when a previous section already
// produced output.
func writeSections(sw *writer, rec *record.Record, cfg *Config) {
	needsDivider := false

	section := func(present bool, write func() int) {
		if !present {
			return
		}
		if needsDivider {
			sw.printf("%*s%s\n", baseIndent, "", cfg.paintDivider(divider))
		}
		needsDivider = write() > 0
	}

	section(rec.Req != nil, func() int { return writeReqSection(sw, rec.Req) })
	section(rec.ClientReq != nil, func() int { return writeClientReqSection(sw, rec.ClientReq) })
	section(rec.Res != nil, func() int { return writeResSection(sw, rec.Res) })
	section(rec.ClientRes != nil, func() int { return writeResSection(sw, rec.ClientRes) })
	section(hasObjectParams(rec), func() int { return writeObjectParams(sw, rec, cfg) })
	section(rec.Err != nil, func() int { return writeErrSection(sw, rec.Err) })
	section(hasMultilineParams(rec), func() int { return writeMultilineParams(sw, rec) })
}
