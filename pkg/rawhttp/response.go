package rawhttp

import "strings"

const headerDelimiter = "\r\n\r\n"

// SplitBody returns everything after the first blank line of raw. The status
// line and headers are discarded unread.
func SplitBody(raw string) (string, error) {
	i := strings.Index(raw, headerDelimiter)
	if i < 0 {
		return "", ErrInvalidResponse
	}
	return raw[i+len(headerDelimiter):], nil
}
