package clipboard

import (
	"context"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/thomas-vilte/releasemate/internal/errors"
)

// Copy pipes text into the platform clipboard tool. On Linux it prefers
// xclip, falls back to xsel, and under WSL reaches the Windows clipboard
// through clip.exe.
func Copy(ctx context.Context, text string) error {
	cmd, err := platformCommand(ctx)
	if err != nil {
		return err
	}

	cmd.Stdin = strings.NewReader(text)
	if err := cmd.Run(); err != nil {
		return errors.ErrClipboardCopy.WithError(err).WithContext("command", cmd.Path)
	}
	return nil
}

func platformCommand(ctx context.Context) (*exec.Cmd, error) {
	switch runtime.GOOS {
	case "darwin":
		return exec.CommandContext(ctx, "pbcopy"), nil
	case "windows":
		return exec.CommandContext(ctx, "clip"), nil
	default:
		if isWSL() {
			return exec.CommandContext(ctx, "clip.exe"), nil
		}
		if _, err := exec.LookPath("xclip"); err == nil {
			return exec.CommandContext(ctx, "xclip", "-selection", "clipboard"), nil
		}
		if _, err := exec.LookPath("xsel"); err == nil {
			return exec.CommandContext(ctx, "xsel", "--clipboard", "--input"), nil
		}
		return nil, errors.ErrClipboardCopy.WithContext("reason", "no clipboard tool found")
	}
}

func isWSL() bool {
	data, err := os.ReadFile("/proc/version")
	if err != nil {
		return false
	}
	version := strings.ToLower(string(data))
	return strings.Contains(version, "microsoft") || strings.Contains(version, "wsl")
}
