package ui

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
)

// copyToClipboardFn is the active clipboard implementation. Tests replace it
// via StubClipboard to prevent side effects.
var copyToClipboardFn = copyToClipboardImpl

// CopyToClipboard copies text to the system clipboard.
func CopyToClipboard(text string) error { return copyToClipboardFn(text) }

// StubClipboard replaces the clipboard with fn and returns a restore
// function. Use in tests to prevent side effects.
func StubClipboard(fn func(string) error) (restore func()) {
	orig := copyToClipboardFn
	copyToClipboardFn = fn
	return func() { copyToClipboardFn = orig }
}

// copiedMsg reports the outcome of a clipboard copy.
type copiedMsg struct {
	what string
	err  error
}

// copyCmd copies text off the update loop, since clipboard helpers can take a
// moment to start.
func copyCmd(what, text string) tea.Cmd {
	return func() tea.Msg {
		return copiedMsg{what: what, err: CopyToClipboard(text)}
	}
}

// copyToClipboardImpl pipes text into the platform clipboard command.
func copyToClipboardImpl(text string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.CommandContext(ctx, "pbcopy")
	case "linux":
		// xclip, then xsel, then wl-copy (Wayland)
		switch {
		case lookPath("xclip"):
			cmd = exec.CommandContext(ctx, "xclip", "-selection", "clipboard")
		case lookPath("xsel"):
			cmd = exec.CommandContext(ctx, "xsel", "--clipboard", "--input")
		case lookPath("wl-copy"):
			cmd = exec.CommandContext(ctx, "wl-copy")
		default:
			return fmt.Errorf("no clipboard command found (install xclip, xsel, or wl-clipboard)")
		}
	case "windows":
		cmd = exec.CommandContext(ctx, "clip")
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}
	cmd.Stdin = strings.NewReader(text)
	return cmd.Run()
}

func lookPath(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}
