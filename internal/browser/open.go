// Package browser launches the system default web browser.
package browser

import (
	"fmt"
	"os/exec"
	"runtime"
)

// Open asks the desktop environment to open url in the default browser.
// The command is started, not waited for.
func Open(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return fmt.Errorf("no browser launcher for %s", runtime.GOOS)
	}
	return cmd.Start()
}
