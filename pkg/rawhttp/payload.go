package rawhttp

import "strings"

// payloadEscaper covers exactly backslash, double quote, LF, CR and TAB.
// Other control characters are passed through untouched; the admin servers
// this talks to were built against that rule set.
var payloadEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

// EncodePayload renders {"token":"...","command":"..."} with no whitespace.
func EncodePayload(token, command string) string {
	var sb strings.Builder
	sb.Grow(len(token) + len(command) + 24)
	sb.WriteString(`{"token":"`)
	payloadEscaper.WriteString(&sb, token)
	sb.WriteString(`","command":"`)
	payloadEscaper.WriteString(&sb, command)
	sb.WriteString(`"}`)
	return sb.String()
}
