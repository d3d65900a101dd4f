// Package record models one decoded bunyan log line.
package record

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/maximeborges/bunyan-view/pkg/timefmt"
)

// RequiredFields is the minimum field set for a line to count as a bunyan
// record. Note that name is not part of this table (it mirrors upstream), but
// the Record decoder still rejects lines without it.
var RequiredFields = []string{"v", "level", "hostname", "pid", "time", "msg"}

// Names claimed by the record schema itself; everything else lands in Other.
var knownFields = map[string]bool{
	"v": true, "name": true, "hostname": true, "pid": true, "level": true,
	"time": true, "msg": true, "component": true, "src": true, "req_id": true,
	"req": true, "client_req": true, "res": true, "client_res": true, "err": true,
}

type Record struct {
	Version   *int64
	Name      string
	Hostname  string
	PID       uint64
	Level     Level
	Time      time.Time
	Msg       string
	Component string

	// Src is the optional call-site object (file/line/func).
	Src *Fields

	// ReqID keeps whatever shape the input had; the renderer decides whether
	// it is displayable.
	ReqID any

	Req       *Fields
	ClientReq *Fields
	Res       *Fields
	ClientRes *Fields
	Err       *Fields

	// Other holds every unrecognized field in first-appearance order.
	Other *Fields
}

// DecodeError reports a line that could not become a Record. Line is filled
// in by the caller that owns the line counter; Column is 0 when unknown.
type DecodeError struct {
	Msg    string
	Line   int
	Column int
	Raw    string
}

func (e *DecodeError) Error() string {
	return e.Msg
}

func decodeErrorf(raw string, format string, args ...any) *DecodeError {
	return &DecodeError{Msg: fmt.Sprintf(format, args...), Raw: raw}
}

// Decode parses one input line into a Record. The returned error is always a
// *DecodeError; syntax errors carry a column when the parser reports an
// offset.
func Decode(line string) (*Record, *DecodeError) {
	fields, derr := DecodeFields(line)
	if derr != nil {
		return nil, derr
	}
	return fromFields(fields, line)
}

// DecodeFields parses one input line into an ordered generic object without
// applying the record schema. The Inspect format uses this directly.
func DecodeFields(line string) (*Fields, *DecodeError) {
	fields := NewFields()
	if err := json.Unmarshal([]byte(line), fields); err != nil {
		derr := decodeErrorf(line, "%s", err.Error())
		if serr, ok := err.(*json.SyntaxError); ok {
			derr.Column = int(serr.Offset)
		}
		return nil, derr
	}
	return fields, nil
}

func fromFields(fields *Fields, raw string) (*Record, *DecodeError) {
	rec := &Record{Other: NewFields()}

	name, ok := stringField(fields, "name")
	if !ok {
		return nil, decodeErrorf(raw, "missing required field \"name\"")
	}
	rec.Name = name

	hostname, ok := stringField(fields, "hostname")
	if !ok {
		return nil, decodeErrorf(raw, "missing required field \"hostname\"")
	}
	rec.Hostname = hostname

	msg, ok := stringField(fields, "msg")
	if !ok {
		return nil, decodeErrorf(raw, "missing required field \"msg\"")
	}
	rec.Msg = msg

	pid, ok := fields.Get("pid")
	if !ok {
		return nil, decodeErrorf(raw, "missing required field \"pid\"")
	}
	pidNum, ok := pid.(json.Number)
	if !ok {
		return nil, decodeErrorf(raw, "field \"pid\" must be a non-negative integer")
	}
	pidVal, err := pidNum.Int64()
	if err != nil || pidVal < 0 {
		return nil, decodeErrorf(raw, "field \"pid\" must be a non-negative integer")
	}
	rec.PID = uint64(pidVal)

	level, ok := fields.Get("level")
	if !ok {
		return nil, decodeErrorf(raw, "missing required field \"level\"")
	}
	levelNum, ok := level.(json.Number)
	if !ok {
		return nil, decodeErrorf(raw, "field \"level\" must be numeric")
	}
	levelVal, err := levelNum.Int64()
	if err != nil {
		return nil, decodeErrorf(raw, "field \"level\" must be an integer")
	}
	rec.Level = Level(levelVal)

	tv, ok := fields.Get("time")
	if !ok {
		return nil, decodeErrorf(raw, "missing required field \"time\"")
	}
	t, err := timefmt.Parse(tv)
	if err != nil {
		return nil, decodeErrorf(raw, "field \"time\": %s", err.Error())
	}
	rec.Time = t

	if v, ok := fields.Get("v"); ok {
		if n, ok := v.(json.Number); ok {
			if i, err := n.Int64(); err == nil {
				rec.Version = &i
			}
		}
	}
	if c, ok := stringField(fields, "component"); ok {
		rec.Component = c
	}
	if src, ok := fields.Get("src"); ok {
		if m, ok := src.(*Fields); ok {
			rec.Src = m
		}
	}
	if reqID, ok := fields.Get("req_id"); ok {
		rec.ReqID = reqID
	}

	rec.Req = objectField(fields, "req")
	rec.ClientReq = objectField(fields, "client_req")
	rec.Res = objectField(fields, "res")
	rec.ClientRes = objectField(fields, "client_res")
	rec.Err = objectField(fields, "err")

	for _, k := range fields.Keys() {
		if knownFields[k] {
			continue
		}
		v, _ := fields.Get(k)
		rec.Other.Set(k, v)
	}

	return rec, nil
}

func stringField(f *Fields, key string) (string, bool) {
	v, ok := f.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// objectField resolves a conventional sub-object. A present key with a
// non-object shape yields nil, which the renderers treat as "produced
// nothing" rather than an error.
func objectField(f *Fields, key string) *Fields {
	v, ok := f.Get(key)
	if !ok {
		return nil
	}
	m, ok := v.(*Fields)
	if !ok {
		return nil
	}
	return m
}
