package api

import (
	"strings"

	"github.com/AzureXuanVerse/Nebula-Tools/common"
)

// CommandURL appends the admin command path to serverURL unless it is
// already there. Trailing slashes are dropped first.
func CommandURL(serverURL string) string {
	u := strings.TrimRight(strings.TrimSpace(serverURL), "/")
	if strings.HasSuffix(u, common.CommandPath) {
		return u
	}
	return u + common.CommandPath
}

// WithTarget addresses command at a player by appending " @uid". ban and
// unban take the uid as an argument already and are left alone, as is every
// command when uid is blank.
func WithTarget(command, uid string) string {
	uid = strings.TrimSpace(uid)
	if uid == "" {
		return command
	}
	lower := strings.ToLower(strings.TrimSpace(command))
	if strings.HasPrefix(lower, "ban ") || strings.HasPrefix(lower, "unban ") {
		return command
	}
	return command + " @" + uid
}
