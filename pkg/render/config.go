package render

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/maximeborges/bunyan-view/pkg/conditions"
	"github.com/maximeborges/bunyan-view/pkg/record"
	"github.com/maximeborges/bunyan-view/pkg/styles"
)

type Format int

const (
	FormatLong Format = iota
	FormatShort
	FormatSimple
	FormatInspect
	FormatJSON
)

func (f Format) String() string {
	switch f {
	case FormatLong:
		return "long"
	case FormatShort:
		return "short"
	case FormatSimple:
		return "simple"
	case FormatInspect:
		return "inspect"
	case FormatJSON:
		return "json"
	default:
		return "unknown"
	}
}

// ParseFormat resolves an output format name. The json variants carry their
// indent width in the name: "json" is compact, "json-4" indents by four.
func ParseFormat(s string) (Format, int, error) {
	switch s {
	case "long":
		return FormatLong, 0, nil
	case "short":
		return FormatShort, 0, nil
	case "simple":
		return FormatSimple, 0, nil
	case "inspect":
		return FormatInspect, 0, nil
	case "json":
		return FormatJSON, 0, nil
	}
	if rest, ok := strings.CutPrefix(s, "json-"); ok {
		indent, err := strconv.Atoi(rest)
		if err != nil || indent < 0 {
			return 0, 0, errors.Errorf("invalid json indent in format %q", s)
		}
		return FormatJSON, indent, nil
	}
	return 0, 0, errors.Errorf("unknown output format %q", s)
}

// Config is the immutable per-run output configuration.
type Config struct {
	Format    Format
	Indent    int
	Strict    bool
	Debug     bool
	Level     *record.Level
	Condition *conditions.Predicate
	LocalTime bool

	// Theme enables colorized output when non-nil. It never changes the
	// byte layout, only wraps spans in escape sequences.
	Theme *styles.Theme
}

func (c *Config) paintLevel(l record.Level, s string) string {
	if c.Theme == nil {
		return s
	}
	return c.Theme.Level(l).Render(s)
}

func (c *Config) paintTime(s string) string {
	if c.Theme == nil {
		return s
	}
	return c.Theme.Time.Render(s)
}

func (c *Config) paintName(s string) string {
	if c.Theme == nil {
		return s
	}
	return c.Theme.Name.Render(s)
}

func (c *Config) paintSource(s string) string {
	if c.Theme == nil {
		return s
	}
	return c.Theme.Source.Render(s)
}

func (c *Config) paintDivider(s string) string {
	if c.Theme == nil {
		return s
	}
	return c.Theme.Divider.Render(s)
}
