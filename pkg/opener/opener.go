// Package opener hands a URL to the operating system's default handler.
//
// The launch is fire-and-forget: the handler process is started detached and
// released, its exit status is never collected. Consumers take a Func so
// tests can substitute a recorder instead of spawning processes.
package opener

import (
	"errors"
	"strings"

	"github.com/AzureXuanVerse/Nebula-Tools/pkg/logger"
)

// Func opens url with some handler.
type Func func(url string) error

var ErrEmptyURL = errors.New("url cannot be empty")

// New returns the platform Func, logging each launch to l.
func New(l logger.Logger) Func {
	if l == nil {
		l = logger.NewNopLogger()
	}
	return func(url string) error {
		url = strings.TrimSpace(url)
		if url == "" {
			return ErrEmptyURL
		}
		if err := launch(l, url); err != nil {
			l.Error("open %s: %v", url, err)
			return err
		}
		return nil
	}
}
