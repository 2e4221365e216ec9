package cmd

const DESCRIPTION = `
nebula sends remote commands to a game server's admin endpoint over
plain HTTP. It can run one-off commands, keep saved connection profiles
with encrypted tokens, and serve a local JSON-RPC daemon for other tools.
`

const (
	SendDescription = `The send command posts a remote command to the admin endpoint
and prints the server's reply. The server URL, token and target UID come
from flags, a saved profile, NEBULA_* environment variables or the
config file, in that order. "/api/command" is appended to the server URL
unless --raw-url is given.

Example:
        nebula send --server http://10.0.0.5:8080 --token abc "give 1001 10"
        nebula send --profile prod --uid 12345 status

`
	GMDescription = `The gm command builds a game-master command from flags and sends it
like send does, including the --uid target. Quantities are clamped to
1-999 and build ids are de-duplicated. --print shows the command without
sending it.

Example:
        nebula gm give --profile prod --uid 12345 1001 10
        nebula gm character --level 90 --print 103 107
        nebula gm ban --until 1893456000 --reason cheating uid 12345

`
	OpenDescription = `The open command opens a URL with the system's default handler.

Example:
        nebula open https://example.com/docs

`
	ServeDescription = `The serve command runs the local daemon: JSON-RPC 2.0 over HTTP
(/jsonrpc) and WebSocket (/jsonrpc/ws), plus the browser proxy route
(/api/remote). JSON-RPC requires a bearer secret (--secret or
NEBULA_RPC_SECRET).

Example:
        nebula serve --listen 127.0.0.1:3850 --secret s3cret

`
	ProfileDescription = `The profile command manages saved connections. Tokens are
encrypted at rest with a key kept in the system keyring.

Example:
        nebula profile save --name prod --server http://10.0.0.5:8080 --token abc
        nebula profile list

`
	HistoryDescription = `The history command lists recently sent commands, newest first.

Example:
        nebula history --limit 20
        nebula history flush

`
)
