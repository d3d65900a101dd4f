package render

import (
	"io"

	"github.com/maximeborges/bunyan-view/pkg/record"
	"github.com/maximeborges/bunyan-view/pkg/timefmt"
)

// WriteShort renders the condensed view: time of day, level, name and
// message with the inline parameter suffix, then the same section sequence
// as the long format. Date, hostname, pid and src are omitted.
func WriteShort(w io.Writer, rec *record.Record, cfg *Config) error {
	sw := newWriter(w)

	sw.printf("%s %s: %s",
		cfg.paintTime(timefmt.FormatClock(rec.Time, cfg.LocalTime)),
		cfg.paintLevel(rec.Level, rec.Level.Padded()),
		cfg.paintName(rec.Name))
	if rec.Component != "" {
		sw.printf("/%s", rec.Component)
	}
	sw.printf(": %s", rec.Msg)
	writeInlineParams(sw, rec)
	sw.writeString("\n")

	writeSections(sw, rec, cfg)

	return sw.finish()
}

// WriteSimple renders one line with no timestamp, hostname, source or
// component decoration: "LEVEL: name: msg" plus the inline parameters.
func WriteSimple(w io.Writer, rec *record.Record, cfg *Config) error {
	sw := newWriter(w)

	sw.printf("%s: %s: %s",
		cfg.paintLevel(rec.Level, rec.Level.String()),
		cfg.paintName(rec.Name),
		rec.Msg)
	writeInlineParams(sw, rec)
	sw.writeString("\n")

	return sw.finish()
}
