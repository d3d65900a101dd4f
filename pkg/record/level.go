package record

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Level is a bunyan severity code. The well-known codes have names; anything
// else displays as LVL<code>.
type Level int

const (
	Trace Level = 10
	Debug Level = 20
	Info  Level = 30
	Warn  Level = 40
	Error Level = 50
	Fatal Level = 60
)

func (l Level) String() string {
	switch l {
	case Trace:
		return "TRACE"
	case Debug:
		return "DEBUG"
	case Info:
		return "INFO"
	case Warn:
		return "WARN"
	case Error:
		return "ERROR"
	case Fatal:
		return "FATAL"
	default:
		return fmt.Sprintf("LVL%d", int(l))
	}
}

// Padded right-aligns the level name in a 5-column field. Longer names (LVL
// codes) are not truncated.
func (l Level) Padded() string {
	return fmt.Sprintf("%5s", l.String())
}

// ParseLevel accepts a level name ("info"), a numeric code ("30") or the
// LVL-prefixed display form ("LVL77"), case-insensitively.
func ParseLevel(s string) (Level, error) {
	upper := strings.ToUpper(strings.TrimSpace(s))

	switch upper {
	case "TRACE":
		return Trace, nil
	case "DEBUG":
		return Debug, nil
	case "INFO":
		return Info, nil
	case "WARN":
		return Warn, nil
	case "ERROR":
		return Error, nil
	case "FATAL":
		return Fatal, nil
	}

	numeric := strings.TrimPrefix(upper, "LVL")
	code, err := strconv.ParseUint(numeric, 10, 16)
	if err != nil {
		return 0, errors.Errorf("unknown log level %q", s)
	}
	return Level(code), nil
}
