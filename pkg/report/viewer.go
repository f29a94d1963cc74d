package report

import (
	"fmt"
	"os/exec"
	"runtime"
)

// LaunchViewer opens path in the platform's default viewer. The
// viewer itself runs detached; only the hand-off is waited on.
func LaunchViewer(path string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", "", path)
	default:
		cmd = exec.Command("xdg-open", path)
	}

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("open %s in viewer: %w", path, err)
	}
	return nil
}
