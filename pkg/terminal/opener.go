package terminal

import (
	"fmt"
	"os/exec"
	"runtime"
)

// execOpener shells out to the platform's URL handler.
type execOpener struct{}

func (execOpener) Open(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("terminal: open %s: %w", url, err)
	}
	return nil
}
