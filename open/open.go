// Package open launches files and URLs with the system's default handler.
package open

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/kyoku-cli/kyoku/constant"
)

var errUnsupportedOS = fmt.Errorf("unsupported OS: %s", runtime.GOOS)

// Run opens the input with the default handler and waits for it to finish.
func Run(input string) error {
	cmd, ok := command(input)
	if !ok {
		return errUnsupportedOS
	}
	return cmd.Run()
}

// Start opens the input with the default handler without waiting.
func Start(input string) error {
	cmd, ok := command(input)
	if !ok {
		return errUnsupportedOS
	}
	return cmd.Start()
}

// RunWith opens the input with the named application and waits for it to
// finish. An empty app falls back to the default handler.
func RunWith(input, app string) error {
	if app == "" {
		return Run(input)
	}
	cmd, ok := commandWith(input, app)
	if !ok {
		return errUnsupportedOS
	}
	return cmd.Run()
}

// StartWith opens the input with the named application without waiting.
func StartWith(input, app string) error {
	if app == "" {
		return Start(input)
	}
	cmd, ok := commandWith(input, app)
	if !ok {
		return errUnsupportedOS
	}
	return cmd.Start()
}

func command(input string) (*exec.Cmd, bool) {
	switch runtime.GOOS {
	case constant.Windows:
		rundll := filepath.Join(os.Getenv("SYSTEMROOT"), "System32", "rundll32.exe")
		return exec.Command(rundll, "url.dll,FileProtocolHandler", input), true
	case constant.Darwin:
		return exec.Command("open", input), true
	case constant.Linux:
		return exec.Command("xdg-open", input), true
	case constant.Android:
		return exec.Command("termux-open", input), true
	default:
		return nil, false
	}
}

func commandWith(input, app string) (*exec.Cmd, bool) {
	switch runtime.GOOS {
	case constant.Windows:
		// The start builtin needs '&' escaped in URLs with query strings.
		escaped := strings.ReplaceAll(input, "&", "^&")
		return exec.Command("cmd", "/C", "start", "", app, escaped), true
	case constant.Darwin:
		return exec.Command("open", "-a", app, input), true
	case constant.Linux:
		return exec.Command(app, input), true
	case constant.Android:
		return exec.Command("termux-open", "--choose", input), true
	default:
		return nil, false
	}
}
