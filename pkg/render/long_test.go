package render

import (
	"bytes"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/maximeborges/bunyan-view/pkg/record"
	"github.com/maximeborges/bunyan-view/pkg/styles"
)

const recHead = `{"v":0,"level":30,"name":"svc","hostname":"h1","pid":1,"time":"2020-01-01T00:00:00.000Z","msg":"hello"`

const longHeader = "[2020-01-01T00:00:00.000Z]  INFO: svc/1 on h1: hello"

func renderLong(t *testing.T, line string) string {
	t.Helper()
	rec, derr := record.Decode(line)
	require.Nil(t, derr)

	var buf bytes.Buffer
	require.NoError(t, WriteLong(&buf, rec, &Config{Format: FormatLong}))
	return buf.String()
}

func TestLong_MinimalHeader(t *testing.T) {
	got := renderLong(t, recHead+`}`)
	require.Equal(t, longHeader+"\n", got)
}

func TestLong_LevelPadding(t *testing.T) {
	got := renderLong(t, `{"v":0,"level":50,"name":"svc","hostname":"h1","pid":1,"time":"2020-01-01T00:00:00.000Z","msg":"boom"}`)
	require.Equal(t, "[2020-01-01T00:00:00.000Z] ERROR: svc/1 on h1: boom\n", got)
}

func TestLong_ComponentAndSrc(t *testing.T) {
	got := renderLong(t, recHead+`,"component":"db","src":{"file":"a.go","line":42,"func":"main"}}`)
	require.Equal(t, "[2020-01-01T00:00:00.000Z]  INFO: svc/db/1 on h1 (a.go:42 in main): hello\n", got)
}

func TestLong_SrcWithoutFileOmitted(t *testing.T) {
	got := renderLong(t, recHead+`,"src":{"line":42}}`)
	require.Equal(t, longHeader+"\n", got)
}

func TestLong_InlineParams(t *testing.T) {
	got := renderLong(t, recHead+`,"req_id":"abc","a":1,"b":"x y","n":null,"t":true,"eo":{}}`)
	require.Equal(t, longHeader+` (req_id=abc, a=1, b="x y", n=null, t=true, eo={})`+"\n", got)
}

func TestLong_SubObjectInlineParams(t *testing.T) {
	// raw_body displays as the bare sub-object name; null extras qualify.
	got := renderLong(t, recHead+`,"res":{"raw_body":"abc","ok":true,"statusCode":null}}`)
	require.Equal(t, longHeader+" (res=abc, res.ok=true, res.statusCode=null)\n", got)
}

func TestLong_TrailerNeverInline(t *testing.T) {
	got := renderLong(t, recHead+`,"res":{"trailer":null}}`)
	require.Equal(t, longHeader+"\n", got)
}

func TestLong_MultilineExtraIsBlockNotInline(t *testing.T) {
	got := renderLong(t, recHead+`,"note":"a very long line exceeding fifty characters in total length for sure"}`)
	require.Equal(t, longHeader+"\n"+
		"    note: a very long line exceeding fifty characters in total length for sure\n", got)
}

func TestLong_MultilineExtraSplitsLines(t *testing.T) {
	got := renderLong(t, recHead+`,"note":"first\nsecond"}`)
	require.Equal(t, longHeader+"\n"+
		"    note: first\n"+
		"    second\n", got)
}

func TestLong_ReqSection(t *testing.T) {
	got := renderLong(t, recHead+`,"req":{"method":"GET","url":"/a","httpVersion":"1.0","headers":{"Host":"x"},"body":"b1"}}`)
	require.Equal(t, longHeader+"\n"+
		"    GET /a HTTP/1.0\n"+
		"    Host: x\n"+
		"    b1\n", got)
}

func TestLong_ReqSummaryDefaults(t *testing.T) {
	got := renderLong(t, recHead+`,"req":{}}`)
	require.Equal(t, longHeader+"\n"+
		"    undefined undefined HTTP/1.1\n", got)
}

func TestLong_ClientReqHostLine(t *testing.T) {
	got := renderLong(t, recHead+`,"client_req":{"method":"POST","url":"/x","address":"10.0.0.1","port":8080}}`)
	require.Equal(t, longHeader+"\n"+
		"    POST /x HTTP/1.1\n"+
		"    Host: 10.0.0.1:8080\n", got)
}

func TestLong_ResHeaderWinsOverHeaders(t *testing.T) {
	got := renderLong(t, recHead+`,"res":{"statusCode":200,"header":{"a":"b"},"headers":{"c":"d"}}}`)
	require.Equal(t, longHeader+"\n"+
		"    HTTP/1.1 200 OK\n"+
		"    a: b\n", got)
}

func TestLong_ResRawHeaderString(t *testing.T) {
	got := renderLong(t, recHead+`,"res":{"statusCode":200,"header":"HTTP/1.0 200 OK\r\nServer: x\r\n\r\n"}}`)
	require.Equal(t, longHeader+"\n"+
		"    HTTP/1.0 200 OK\n"+
		"    HTTP/1.0 200 OK\n"+
		"    Server: x\n", got)
}

func TestLong_ResBody(t *testing.T) {
	got := renderLong(t, recHead+`,"res":{"statusCode":200,"body":"hello\nworld"}}`)
	require.Equal(t, longHeader+"\n"+
		"    HTTP/1.1 200 OK\n"+
		"\n"+
		"    hello\n"+
		"    world\n", got)
}

func TestLong_StatusCodeGate(t *testing.T) {
	// numbers over 65535 and non-numeric strings yield no status line
	got := renderLong(t, recHead+`,"res":{"statusCode":70000}}`)
	require.Equal(t, longHeader+"\n", got)

	got = renderLong(t, recHead+`,"res":{"statusCode":"abc"}}`)
	require.Equal(t, longHeader+"\n", got)

	got = renderLong(t, recHead+`,"res":{"statusCode":"404"}}`)
	require.Equal(t, longHeader+"\n"+
		"    HTTP/1.1 404 Not Found\n", got)
}

func TestLong_ResExtraObject(t *testing.T) {
	got := renderLong(t, recHead+`,"res":{"foo":{"a":1}}}`)
	require.Equal(t, longHeader+"\n"+
		"    res.foo: {\n"+
		"      \"a\": 1\n"+
		"    }\n", got)
}

func TestLong_ErrStackString(t *testing.T) {
	got := renderLong(t, recHead+`,"err":{"message":"boom","name":"Error","stack":"Error: boom\n    at foo"}}`)
	require.Equal(t, longHeader+"\n"+
		"    Error: boom\n"+
		"        at foo\n", got)
}

func TestLong_ErrStackArray(t *testing.T) {
	got := renderLong(t, recHead+`,"err":{"stack":["frame one",2]}}`)
	require.Equal(t, longHeader+"\n"+
		"    frame one\n"+
		"    2\n", got)
}

func TestLong_ObjectExtras(t *testing.T) {
	got := renderLong(t, recHead+`,"stats":{"a":1},"arr":[1]}`)
	require.Equal(t, longHeader+"\n"+
		"    stats: {\n"+
		"      \"a\": 1\n"+
		"    }\n"+
		"    --\n"+
		"    arr: [\n"+
		"      1\n"+
		"    ]\n", got)
}

func TestLong_DividerBetweenSections(t *testing.T) {
	got := renderLong(t, recHead+`,"req":{"method":"GET","url":"/a"},"err":{"stack":"Error: boom"}}`)
	require.Equal(t, longHeader+"\n"+
		"    GET /a HTTP/1.1\n"+
		"    --\n"+
		"    Error: boom\n", got)
}

func TestLong_EmptySectionResetsDivider(t *testing.T) {
	// res is present but renders nothing, so err gets no second divider
	got := renderLong(t, recHead+`,"req":{"method":"GET","url":"/a"},"res":{},"err":{"stack":"Error: boom"}}`)
	require.Equal(t, longHeader+"\n"+
		"    GET /a HTTP/1.1\n"+
		"    --\n"+
		"    Error: boom\n", got)
}

func TestLong_NoDividerBeforeFirstSection(t *testing.T) {
	got := renderLong(t, recHead+`,"err":{"stack":"Error: boom"}}`)
	require.Equal(t, longHeader+"\n"+
		"    Error: boom\n", got)
}

var ansiRe = regexp.MustCompile("\x1b\\[[0-9;]*m")

func TestLong_ThemedOutputKeepsLayout(t *testing.T) {
	// every painted span including both divider sites
	line := recHead + `,"src":{"file":"a.go"},"stats":{"a":1},"arr":[1],"err":{"stack":"Error: boom"}}`
	plain := renderLong(t, line)

	rec, derr := record.Decode(line)
	require.Nil(t, derr)

	theme := styles.DefaultTheme()
	var buf bytes.Buffer
	require.NoError(t, WriteLong(&buf, rec, &Config{Format: FormatLong, Theme: &theme}))
	require.Equal(t, plain, ansiRe.ReplaceAllString(buf.String(), ""))
}
