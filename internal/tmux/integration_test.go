package tmux

import (
	"strings"
	"testing"

	testutil "github.com/atomicstack/argpopup/internal/testutil"
)

func TestViewRoundTripIntegration(t *testing.T) {
	srv := testutil.StartTmuxServer(t)
	t.Setenv("TMUX_PANE", "")

	before, err := CurrentView(srv.Socket)
	if err != nil {
		t.Skipf("skipping: unable to read current view (%v)", err)
	}
	if !strings.HasPrefix(before.Window, "@") {
		t.Fatalf("expected a window id, got %#v", before)
	}

	srv.Run(t, "new-window", "-d", "-n", "scratch")
	srv.Run(t, "select-window", "-t", "scratch")
	if err := RestoreView(srv.Socket, before); err != nil {
		t.Fatalf("RestoreView: %v", err)
	}
	after, err := CurrentView(srv.Socket)
	if err != nil {
		t.Fatalf("CurrentView after restore: %v", err)
	}
	if after.Window != before.Window {
		t.Fatalf("expected window %s restored, got %s", before.Window, after.Window)
	}
}

func TestOpenManualIntegration(t *testing.T) {
	srv := testutil.StartTmuxServer(t)
	srv.Run(t, "set-option", "-g", "remain-on-exit", "on")
	if err := OpenManual(srv.Socket, "git-commit"); err != nil {
		t.Fatalf("OpenManual: %v", err)
	}
	for _, name := range srv.WindowNames(t) {
		if name == "man:git-commit" {
			return
		}
	}
	t.Fatalf("expected man:git-commit window, got %v", srv.WindowNames(t))
}
