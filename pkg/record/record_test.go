package record

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecode_MinimalRecord(t *testing.T) {
	rec, derr := Decode(`{"v":0,"level":30,"name":"svc","hostname":"h1","pid":1,"time":"2020-01-01T00:00:00.000Z","msg":"hello"}`)
	require.Nil(t, derr)

	require.Equal(t, "svc", rec.Name)
	require.Equal(t, "h1", rec.Hostname)
	require.Equal(t, uint64(1), rec.PID)
	require.Equal(t, Info, rec.Level)
	require.Equal(t, "hello", rec.Msg)
	require.NotNil(t, rec.Version)
	require.Equal(t, int64(0), *rec.Version)
	require.Equal(t, 0, rec.Other.Len())
}

func TestDecode_ExtrasPreserveOrder(t *testing.T) {
	rec, derr := Decode(`{"zeta":1,"level":30,"name":"svc","hostname":"h1","pid":1,"time":"2020-01-01T00:00:00Z","msg":"m","alpha":2,"mid":3}`)
	require.Nil(t, derr)
	require.Equal(t, []string{"zeta", "alpha", "mid"}, rec.Other.Keys())
}

func TestDecode_MissingRequiredFields(t *testing.T) {
	base := map[string]any{
		"level": 30, "name": "svc", "hostname": "h1",
		"pid": 1, "time": "2020-01-01T00:00:00Z", "msg": "m",
	}

	for _, missing := range []string{"level", "name", "hostname", "pid", "time", "msg"} {
		line := map[string]any{}
		for k, v := range base {
			if k != missing {
				line[k] = v
			}
		}
		b, err := json.Marshal(line)
		require.NoError(t, err)

		_, derr := Decode(string(b))
		require.NotNil(t, derr, "expected decode failure without %q", missing)
	}
}

func TestDecode_NotJSON(t *testing.T) {
	_, derr := Decode("not json")
	require.NotNil(t, derr)
	require.Greater(t, derr.Column, 0)
}

func TestDecode_NegativePidRejected(t *testing.T) {
	_, derr := Decode(`{"level":30,"name":"svc","hostname":"h1","pid":-4,"time":"2020-01-01T00:00:00Z","msg":"m"}`)
	require.NotNil(t, derr)
}

func TestDecode_ScalarSubObjectProducesNothing(t *testing.T) {
	rec, derr := Decode(`{"level":30,"name":"svc","hostname":"h1","pid":1,"time":"2020-01-01T00:00:00Z","msg":"m","req":"oops"}`)
	require.Nil(t, derr)
	require.Nil(t, rec.Req)
	require.False(t, rec.Other.Has("req"))
}

func TestParseLevel_RoundTrip(t *testing.T) {
	for _, lvl := range []Level{Trace, Debug, Info, Warn, Error, Fatal, Level(100), Level(1001)} {
		parsed, err := ParseLevel(lvl.String())
		require.NoError(t, err)
		require.Equal(t, lvl, parsed)

		// lowercase parses too
		parsed, err = ParseLevel(strings.ToLower(lvl.String()))
		require.NoError(t, err)
		require.Equal(t, lvl, parsed)
	}

	parsed, err := ParseLevel("30")
	require.NoError(t, err)
	require.Equal(t, Info, parsed)

	_, err = ParseLevel("loud")
	require.Error(t, err)
}

func TestLevel_Padded(t *testing.T) {
	require.Equal(t, " INFO", Info.Padded())
	require.Equal(t, "ERROR", Error.Padded())
	require.Equal(t, "LVL100", Level(100).Padded())
}

func TestCompactJSON_NoHTMLEscaping(t *testing.T) {
	require.Equal(t, `"a<b>&c"`, CompactJSON("a<b>&c"))
}

func TestFields_MarshalKeepsOrder(t *testing.T) {
	f, derr := DecodeFields(`{"b":1,"a":{"y":2,"x":3}}`)
	require.Nil(t, derr)
	require.Equal(t, `{"b":1,"a":{"y":2,"x":3}}`, CompactJSON(f))
}
