package testutil

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	gotmux "github.com/atomicstack/gotmuxcc/gotmuxcc"
)

// RequireTmux skips the calling test when tmux is not present on PATH.
func RequireTmux(t *testing.T) string {
	t.Helper()
	path, err := exec.LookPath("tmux")
	if err != nil {
		t.Skip("skipping: tmux binary not available")
	}
	return path
}

// Server is a throwaway tmux server with one detached session.
type Server struct {
	Socket string
	LogDir string
}

// StartTmuxServer boots a tmux server on a private socket. The server is
// killed and its files removed when the test ends.
func StartTmuxServer(t *testing.T) *Server {
	t.Helper()
	RequireTmux(t)
	baseDir, err := os.MkdirTemp("/tmp", "argpopup-*")
	if err != nil {
		t.Fatalf("failed to create tmux temp dir: %v", err)
	}
	srv := &Server{Socket: filepath.Join(baseDir, "tmux-test.sock"), LogDir: baseDir}
	t.Cleanup(func() { _ = os.RemoveAll(baseDir) })

	start := srv.Command("-f", "/dev/null", "-vv", "new-session", "-d", "-s", "argpopup-test", "sleep", "600")
	start.Dir = baseDir
	if err := start.Run(); err != nil {
		t.Skipf("skipping: failed to start tmux server: %v", err)
	}
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := killServer(ctx, srv.Socket); err != nil {
			t.Logf("control-mode kill failed for socket %s: %v; falling back to tmux kill-server", srv.Socket, err)
			_ = srv.Command("kill-server").Run()
		}
		srv.assertNoCrash(t)
	})
	return srv
}

// Command builds a tmux invocation against the server that ignores any tmux
// session the test process itself runs in.
func (s *Server) Command(extra ...string) *exec.Cmd {
	args := append([]string{"-S", s.Socket}, extra...)
	cmd := exec.Command("tmux", args...)
	env := make([]string, 0, len(os.Environ())+2)
	for _, entry := range os.Environ() {
		if strings.HasPrefix(entry, "TMUX=") || strings.HasPrefix(entry, "TMUX_PANE=") {
			continue
		}
		env = append(env, entry)
	}
	cmd.Env = append(env, "TMUX=", "TMUX_TMPDIR="+filepath.Dir(s.Socket))
	return cmd
}

// Run executes a tmux command and returns its trimmed output, failing the
// test on error.
func (s *Server) Run(t *testing.T, args ...string) string {
	t.Helper()
	out, err := s.Command(args...).CombinedOutput()
	if err != nil {
		t.Fatalf("tmux %s: %v (%s)", strings.Join(args, " "), err, bytes.TrimSpace(out))
	}
	return strings.TrimSpace(string(out))
}

// WindowNames lists the names of every window on the server.
func (s *Server) WindowNames(t *testing.T) []string {
	t.Helper()
	out := s.Run(t, "list-windows", "-a", "-F", "#{window_name}")
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}

// assertNoCrash scans the server's -vv logs for an unexpected exit.
func (s *Server) assertNoCrash(t *testing.T) {
	t.Helper()
	files, err := filepath.Glob(filepath.Join(s.LogDir, "tmux-server-*.log"))
	if err != nil {
		t.Errorf("failed to glob tmux logs: %v", err)
		return
	}
	for _, path := range files {
		content, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if bytes.Contains(content, []byte("server exited unexpectedly")) {
			t.Errorf("tmux server reported unexpected exit; see %s", path)
		}
	}
}

func killServer(ctx context.Context, socket string) error {
	if strings.TrimSpace(socket) == "" {
		return errors.New("empty tmux socket path")
	}
	client, err := gotmux.NewTmuxWithOptions(socket, gotmux.WithContext(ctx))
	if err != nil {
		return err
	}
	defer client.Close()
	return client.KillServer()
}
