//go:build windows

package opener

import (
	"fmt"

	"al.essio.dev/pkg/shellescape"
	"github.com/AzureXuanVerse/Nebula-Tools/pkg/logger"
	"golang.org/x/sys/windows"
)

var shellExecute = windows.ShellExecute

func launch(l logger.Logger, url string) error {
	verb, err := windows.UTF16PtrFromString("open")
	if err != nil {
		return err
	}
	file, err := windows.UTF16PtrFromString(url)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}
	l.Debug("ShellExecute open %s", shellescape.Quote(url))
	if err := shellExecute(0, verb, file, nil, nil, windows.SW_SHOWNORMAL); err != nil {
		return fmt.Errorf("ShellExecute: %w", err)
	}
	return nil
}
