// Package stream drives per-line processing: decode, filter, render,
// recover. All per-line failures are handled locally and the stream always
// advances; only a read error on the input itself aborts the run.
package stream

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/maximeborges/bunyan-view/pkg/record"
	"github.com/maximeborges/bunyan-view/pkg/render"
)

// outcome of one input line.
type outcome int

const (
	rendered outcome = iota
	suppressed
	errored
)

// Process reads lines from r until EOF, writing rendered records to out and
// debug diagnostics to errOut.
func Process(out, errOut io.Writer, r io.Reader, cfg *render.Config) error {
	br := bufio.NewReader(r)
	lineNo := 0
	var counts [3]int

	for {
		line, err := br.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return errors.Wrap(err, "read input")
		}
		if line == "" && errors.Is(err, io.EOF) {
			break
		}

		lineNo++
		raw := strings.TrimSuffix(line, "\n")
		raw = strings.TrimSuffix(raw, "\r")
		counts[processLine(out, errOut, raw, lineNo, cfg)]++

		if errors.Is(err, io.EOF) {
			break
		}
	}

	log.Debug().
		Int("lines", lineNo).
		Int("rendered", counts[rendered]).
		Int("suppressed", counts[suppressed]).
		Int("errored", counts[errored]).
		Msg("input stream processed")
	return nil
}

func processLine(out, errOut io.Writer, raw string, lineNo int, cfg *render.Config) outcome {
	trimmed := strings.TrimLeft(raw, " \t")

	// Empty lines carry no information; pass them through untouched unless
	// strict mode drops them with everything else unparseable.
	if !cfg.Strict && strings.TrimSpace(trimmed) == "" {
		fmt.Fprintln(out)
		return rendered
	}

	switch cfg.Format {
	case render.FormatJSON:
		return processJSONLine(out, errOut, raw, trimmed, lineNo, cfg)
	case render.FormatInspect:
		return processInspectLine(out, errOut, raw, trimmed, lineNo, cfg)
	default:
		return processRecordLine(out, errOut, raw, trimmed, lineNo, cfg)
	}
}

func processJSONLine(out, errOut io.Writer, raw, trimmed string, lineNo int, cfg *render.Config) outcome {
	var (
		text string
		derr *record.DecodeError
	)
	if cfg.Indent < 1 {
		text, derr = render.CompactJSONLine(trimmed)
	} else {
		text, derr = render.IndentJSONLine(trimmed, cfg.Indent)
	}
	if derr != nil {
		derr.Line = lineNo
		handleError(out, errOut, derr, raw, cfg)
		return errored
	}
	fmt.Fprintln(out, text)
	return rendered
}

// processInspectLine degrades gracefully: lines missing required fields fall
// back to compact JSON instead of erroring.
func processInspectLine(out, errOut io.Writer, raw, trimmed string, lineNo int, cfg *render.Config) outcome {
	fields, derr := record.DecodeFields(trimmed)
	if derr != nil {
		derr.Line = lineNo
		handleError(out, errOut, derr, raw, cfg)
		return errored
	}

	for _, f := range record.RequiredFields {
		if !fields.Has(f) {
			return processJSONLine(out, errOut, raw, trimmed, lineNo, cfg)
		}
	}

	if err := render.WriteInspect(out, fields); err != nil {
		handleError(out, errOut, &record.DecodeError{Msg: err.Error(), Line: lineNo, Raw: trimmed}, raw, cfg)
		return errored
	}
	return rendered
}

func processRecordLine(out, errOut io.Writer, raw, trimmed string, lineNo int, cfg *render.Config) outcome {
	rec, derr := record.Decode(trimmed)
	if derr != nil {
		derr.Line = lineNo
		handleError(out, errOut, derr, raw, cfg)
		return errored
	}

	if cfg.Level != nil && rec.Level < *cfg.Level {
		return suppressed
	}
	if cfg.Condition != nil && !cfg.Condition.Matches(raw) {
		return suppressed
	}

	if err := render.Write(out, rec, cfg); err != nil {
		handleError(out, errOut, &record.DecodeError{Msg: err.Error(), Line: lineNo, Raw: trimmed}, raw, cfg)
		return errored
	}
	return rendered
}

// handleError applies the recovery policy: non-strict mode echoes the
// original line so nothing is lost, debug mode adds a diagnostic on the
// error channel with the authoritative line number.
func handleError(out, errOut io.Writer, derr *record.DecodeError, original string, cfg *render.Config) {
	if cfg.Strict && !cfg.Debug {
		return
	}

	msg := derr.Msg
	// The underlying parser may embed its own "line N" context; strip it,
	// the line counter here is authoritative.
	if i := strings.Index(msg, " line "); i >= 0 {
		msg = msg[:i]
	}

	if cfg.Debug {
		if derr.Column > 0 {
			fmt.Fprintf(errOut, "%s on line %d column: %d\n", msg, derr.Line, derr.Column)
		} else {
			fmt.Fprintf(errOut, "%s on line %d\n", msg, derr.Line)
		}
	}

	if !cfg.Strict {
		fmt.Fprintln(out, original)
	}
}
