// Package timefmt parses and formats the time field of log records.
package timefmt

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/pkg/errors"
)

const (
	isoMillisUTC   = "2006-01-02T15:04:05.000Z"
	isoMillisLocal = "2006-01-02T15:04:05.000-07:00"
	clockUTC       = "15:04:05.000Z"
	clockLocal     = "15:04:05.000"
)

// Parse accepts the shapes bunyan emitters put in the time field: an ISO-8601
// string, an epoch number, or anything dateparse can make sense of.
func Parse(v any) (time.Time, error) {
	switch tv := v.(type) {
	case string:
		s := strings.TrimSpace(tv)
		if s == "" {
			return time.Time{}, errors.New("empty time value")
		}
		if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
			return t, nil
		}
		t, err := dateparse.ParseAny(s)
		if err != nil {
			return time.Time{}, errors.Wrapf(err, "parse time %q", s)
		}
		return t, nil
	case json.Number:
		if i, err := tv.Int64(); err == nil {
			return fromEpoch(i), nil
		}
		f, err := tv.Float64()
		if err != nil {
			return time.Time{}, errors.Errorf("time is not a usable number: %s", tv.String())
		}
		return fromEpoch(int64(f)), nil
	default:
		return time.Time{}, errors.Errorf("time has unsupported shape %T", v)
	}
}

// Heuristic: small epoch values are seconds, large ones milliseconds.
func fromEpoch(i int64) time.Time {
	if i > 0 && i < 1_000_000_000_000 {
		return time.Unix(i, 0).UTC()
	}
	return time.UnixMilli(i).UTC()
}

// Format renders the full header timestamp, millisecond precision.
func Format(t time.Time, local bool) string {
	if local {
		return t.Local().Format(isoMillisLocal)
	}
	return t.UTC().Format(isoMillisUTC)
}

// FormatClock renders the time-of-day form used by the short format.
func FormatClock(t time.Time, local bool) string {
	if local {
		return t.Local().Format(clockLocal)
	}
	return t.UTC().Format(clockUTC)
}
