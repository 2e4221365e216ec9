package common

// RemoteParams is one remote command invocation.
type RemoteParams struct {
	ServerURL string `json:"serverUrl"`
	Token     string `json:"token"`
	Command   string `json:"command"`
}

// RemoteResult carries the raw response body of a remote command.
type RemoteResult struct {
	Body string `json:"body"`
}

// OpenParams asks the host to open URL with the platform handler.
type OpenParams struct {
	URL string `json:"url"`
}

// VersionResult is returned by system.getVersion.
type VersionResult struct {
	Version   string `json:"version"`
	Commit    string `json:"commit,omitempty"`
	BuildType string `json:"buildType,omitempty"`
}

// EmptyResult is a placeholder for methods that return no data.
type EmptyResult struct{}
