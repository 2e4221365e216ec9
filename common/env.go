// Package common holds the constants and request/response shapes shared by
// the CLI, the daemon adapters and the operations facade.
package common

// Environment variable names for configuration.
const (
	// ServerURLEnv overrides the admin endpoint URL.
	ServerURLEnv = "NEBULA_SERVER_URL"

	// TokenEnv overrides the admin token.
	TokenEnv = "NEBULA_TOKEN"

	// TimeoutEnv overrides the exchange timeout (Go duration string).
	TimeoutEnv = "NEBULA_TIMEOUT"

	// ProxyEnv routes exchanges through a SOCKS5 proxy.
	ProxyEnv = "NEBULA_PROXY"

	// RPCListenEnv overrides the daemon listen address.
	RPCListenEnv = "NEBULA_RPC_LISTEN"

	// RPCSecretEnv sets the bearer token required by the JSON-RPC endpoint.
	RPCSecretEnv = "NEBULA_RPC_SECRET"

	// ConfigDirEnv overrides the directory holding config, profiles and history.
	ConfigDirEnv = "NEBULA_CONFIG_DIR"

	// DebugEnv enables debug logging.
	DebugEnv = "NEBULA_DEBUG"
)

const (
	// DefaultRPCListen is where `nebula serve` binds when nothing is configured.
	DefaultRPCListen = "127.0.0.1:3850"

	// CommandPath is the admin endpoint path appended to bare server URLs.
	CommandPath = "/api/command"
)
