package tmux

import (
	"errors"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	gotmux "github.com/atomicstack/gotmuxcc/gotmuxcc"
)

// ErrNoView is returned when the current tmux view cannot be determined.
var ErrNoView = errors.New("tmux: no current view")

type tmuxClient interface {
	Command(parts ...string) (string, error)
	DisplayMessage(target, format string) (string, error)
	SelectWindow(target string) error
	Close() error
}

var newTmux = func(socketPath string) (tmuxClient, error) {
	if socketPath != "" {
		return gotmux.NewTmux(socketPath)
	}
	return gotmux.DefaultTmux()
}

// View identifies the pane that was focused before the popup opened.
type View struct {
	Session string
	Window  string
	Pane    string
}

// Target is the most specific tmux target for v.
func (v View) Target() string {
	if v.Pane != "" {
		return v.Pane
	}
	return v.Window
}

const viewFormat = "#{session_name}\t#{window_id}\t#{pane_id}"

// CurrentView asks the server which window and pane the launching client
// shows.
func CurrentView(socketPath string) (View, error) {
	client, err := newTmux(socketPath)
	if err != nil {
		return View{}, err
	}
	defer client.Close()
	target := strings.TrimSpace(os.Getenv("TMUX_PANE"))
	out, err := client.DisplayMessage(target, viewFormat)
	if err != nil {
		return View{}, fmt.Errorf("display-message: %w", err)
	}
	fields := strings.Split(strings.TrimSpace(out), "\t")
	if len(fields) != 3 || fields[1] == "" {
		return View{}, fmt.Errorf("%w: unexpected output %q", ErrNoView, out)
	}
	return View{Session: fields[0], Window: fields[1], Pane: fields[2]}, nil
}

// RestoreView focuses the window and pane recorded in v again.
func RestoreView(socketPath string, v View) error {
	if v.Window == "" {
		return nil
	}
	client, err := newTmux(socketPath)
	if err != nil {
		return err
	}
	defer client.Close()
	if err := client.SelectWindow(v.Window); err != nil {
		return fmt.Errorf("select-window %s: %w", v.Window, err)
	}
	if v.Pane == "" {
		return nil
	}
	if _, err := client.Command("select-pane", "-t", v.Pane); err != nil {
		return fmt.Errorf("select-pane %s: %w", v.Pane, err)
	}
	return nil
}

// OpenManual shows a man page in a new window named after it.
func OpenManual(socketPath, page string) error {
	page = strings.TrimSpace(page)
	if page == "" {
		return fmt.Errorf("open manual: empty page")
	}
	client, err := newTmux(socketPath)
	if err != nil {
		return err
	}
	defer client.Close()
	_, err = client.Command("new-window", "-n", "man:"+page, "man", page)
	return err
}

// Inside reports whether the process runs inside a tmux client.
func Inside() bool {
	return strings.TrimSpace(os.Getenv("TMUX")) != ""
}

func ResolveSocketPath(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if envSocket := os.Getenv("ARGPOPUP_SOCKET"); envSocket != "" {
		return envSocket, nil
	}
	if tmuxEnv := os.Getenv("TMUX"); tmuxEnv != "" {
		parts := strings.Split(tmuxEnv, ",")
		if len(parts) > 0 && parts[0] != "" {
			return parts[0], nil
		}
	}
	baseDir := os.Getenv("TMUX_TMPDIR")
	if baseDir == "" {
		baseDir = "/tmp"
	}
	u, err := user.Current()
	if err != nil {
		return "", err
	}
	return filepath.Join(baseDir, fmt.Sprintf("tmux-%s", u.Uid), "default"), nil
}
