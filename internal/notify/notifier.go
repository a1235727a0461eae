// Package notify abstracts OS notification plumbing behind a small
// collaborator interface: a permission state and a fire-and-forget
// Display call.
package notify

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"sync"
)

type Permission string

const (
	PermissionGranted Permission = "granted"
	PermissionDenied  Permission = "denied"
	PermissionDefault Permission = "default"
)

type Notifier interface {
	Permission() Permission
	// RequestPermission resolves a "default" state to granted or denied
	// and returns the resulting state.
	RequestPermission() Permission
	// Display shows a notification. Fire-and-forget: there is no
	// delivery confirmation, and errors are advisory.
	Display(title, body string) error
}

// NoopNotifier never displays anything. Used when desktop notifications
// are disabled by configuration.
type NoopNotifier struct{}

func (NoopNotifier) Permission() Permission        { return PermissionDenied }
func (NoopNotifier) RequestPermission() Permission { return PermissionDenied }
func (NoopNotifier) Display(string, string) error  { return nil }

// DesktopNotifier shells out to the platform notification tool:
// notify-send on linux, osascript on darwin. Permission starts at
// "default" and resolves on the first RequestPermission by probing for
// the tool on PATH.
type DesktopNotifier struct {
	mu    sync.Mutex
	state Permission
}

func NewDesktopNotifier() *DesktopNotifier {
	return &DesktopNotifier{state: PermissionDefault}
}

func (n *DesktopNotifier) Permission() Permission {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.state
}

func (n *DesktopNotifier) RequestPermission() Permission {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.state != PermissionDefault {
		return n.state
	}
	if _, err := exec.LookPath(platformTool()); err != nil {
		n.state = PermissionDenied
	} else {
		n.state = PermissionGranted
	}
	return n.state
}

func (n *DesktopNotifier) Display(title, body string) error {
	switch runtime.GOOS {
	case "linux":
		return exec.Command("notify-send", title, body).Run()
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(body), escapeAppleScript(title))
		return exec.Command("osascript", "-e", script).Run()
	default:
		return nil
	}
}

func platformTool() string {
	switch runtime.GOOS {
	case "linux":
		return "notify-send"
	case "darwin":
		return "osascript"
	default:
		return ""
	}
}

func escapeAppleScript(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}
