package rawhttp

import (
	"strconv"
	"strings"
)

const crlf = "\r\n"

// BuildRequest assembles the POST request for t carrying payload.
//
// The Host header carries the bare host even for non-default ports, which is
// what existing admin servers expect. Content-Length is the byte length.
func BuildRequest(t *Target, payload string) []byte {
	var sb strings.Builder
	sb.WriteString("POST ")
	sb.WriteString(t.Path)
	sb.WriteString(" HTTP/1.1" + crlf)
	sb.WriteString("Host: ")
	sb.WriteString(t.Host)
	sb.WriteString(crlf)
	sb.WriteString("Content-Type: application/json" + crlf)
	sb.WriteString("Content-Length: ")
	sb.WriteString(strconv.Itoa(len(payload)))
	sb.WriteString(crlf)
	sb.WriteString("Connection: close" + crlf)
	sb.WriteString(crlf)
	sb.WriteString(payload)
	return []byte(sb.String())
}
