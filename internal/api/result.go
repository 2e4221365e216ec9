package api

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
)

// Result is the admin server's response envelope.
type Result struct {
	Code int             `json:"Code"`
	Msg  string          `json:"Msg"`
	Data json.RawMessage `json:"Data,omitempty"`
}

const invalidJSONMsg = "Invalid JSON response"

var (
	codePattern = regexp.MustCompile(`"Code"\s*:\s*(\d+)`)
	msgPattern  = regexp.MustCompile(`"Msg"\s*:\s*"([\s\S]*?)"`)
	errorMsg    = regexp.MustCompile(`(?i)^error\b`)
)

// OK reports whether the server accepted the command: Code 200 and a
// message that does not start with the word "error".
func (r *Result) OK() bool {
	return r.Code == 200 && !errorMsg.MatchString(strings.TrimSpace(r.Msg))
}

// ParseResult extracts the envelope from body. Servers are inconsistent:
// the object may arrive as-is, double-encoded as a JSON string, or wrapped
// in other text. When nothing parses, Code/Msg are scraped with regular
// expressions, and failing that the result is Code 500 "Invalid JSON
// response".
func ParseResult(body string) *Result {
	s := strings.TrimSpace(body)

	var direct any
	if err := json.Unmarshal([]byte(s), &direct); err == nil {
		if inner, ok := direct.(string); ok {
			return ParseResult(inner)
		}
		if r, ok := envelope([]byte(s)); ok {
			return r
		}
	}

	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		unquoted := strings.ReplaceAll(s[1:len(s)-1], `\"`, `"`)
		if r, ok := envelope([]byte(unquoted)); ok {
			return r
		}
	}

	start, end := strings.IndexByte(s, '{'), strings.LastIndexByte(s, '}')
	if start != -1 && end > start {
		if r, ok := envelope([]byte(s[start : end+1])); ok {
			return r
		}
	}

	if m := codePattern.FindStringSubmatch(s); m != nil {
		code, _ := strconv.Atoi(m[1])
		r := &Result{Code: code}
		if mm := msgPattern.FindStringSubmatch(s); mm != nil {
			r.Msg = mm[1]
		}
		return r
	}

	return &Result{Code: 500, Msg: invalidJSONMsg}
}

// envelope decodes data when it is a JSON object carrying a Code key.
func envelope(data []byte) (*Result, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, false
	}
	rawCode, ok := fields["Code"]
	if !ok {
		return nil, false
	}
	r := &Result{
		Code: intField(rawCode),
		Msg:  stringField(fields["Msg"]),
		Data: fields["Data"],
	}
	return r, true
}

func intField(raw json.RawMessage) int {
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return int(n)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if v, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return v
		}
	}
	return 0
}

func stringField(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	if string(raw) == "null" {
		return ""
	}
	return string(raw)
}
