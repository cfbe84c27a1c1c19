package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/argpopup/internal/commands"
	"github.com/atomicstack/argpopup/internal/logging"
	"github.com/atomicstack/argpopup/internal/logging/events"
	"github.com/atomicstack/argpopup/internal/palettes"
	"github.com/atomicstack/argpopup/internal/popup"
	"github.com/atomicstack/argpopup/internal/session"
	"github.com/atomicstack/argpopup/internal/theme"
	"github.com/atomicstack/argpopup/internal/tmux"
	"github.com/atomicstack/argpopup/internal/ui"
)

// Config describes user-provided application options.
type Config struct {
	SocketPath string
	Width      int
	Height     int
	ShowFooter bool
	Verbose    bool
	Popup      string
	DryRun     bool
	NoColor    bool
	GitBinary  string
}

// Catalog holds every popup and command the application knows.
type Catalog struct {
	Store    *popup.Store
	Commands *commands.Registry
}

// NewCatalog installs the built-in popups. Commands write to out.
func NewCatalog(cfg Config, out io.Writer) (*Catalog, error) {
	runner := palettes.NewRunner(cfg.GitBinary, "", cfg.DryRun)
	if out != nil {
		runner.Stdout = out
	}
	c := &Catalog{Store: popup.NewStore(), Commands: commands.NewRegistry()}
	if err := palettes.Register(c.Store, c.Commands, runner); err != nil {
		return nil, err
	}
	return c, nil
}

// Lookup returns the named popup, suggesting a close match when it is
// unknown.
func (c *Catalog) Lookup(name string) (*popup.Definition, error) {
	def, err := c.Store.MustGet(name)
	if err == nil {
		return def, nil
	}
	if guess, ok := Suggest(c.Store.Names(), name); ok {
		return nil, fmt.Errorf("%w (did you mean %q?)", err, guess)
	}
	return nil, err
}

var runProgram = func(model *ui.Model) error {
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

// Run opens the configured popup and keeps opening popups for as long as
// the chosen actions chain to another one.
func Run(ctx context.Context, cfg Config) error {
	theme.ConfigureColor(cfg.NoColor)
	socketPath, err := tmux.ResolveSocketPath(cfg.SocketPath)
	if err != nil {
		return fmt.Errorf("resolve socket path: %w", err)
	}
	catalog, err := NewCatalog(cfg, os.Stdout)
	if err != nil {
		return err
	}
	return run(ctx, cfg, catalog, socketPath)
}

func run(ctx context.Context, cfg Config, catalog *Catalog, socketPath string) error {
	name := cfg.Popup
	if name == "" {
		name = palettes.DefaultPopup
	}
	keeper := viewKeeper{socketPath: socketPath}
	for {
		def, err := catalog.Lookup(name)
		if err != nil {
			return err
		}
		sess := session.New(def, session.Options{Keeper: keeper, Docs: catalog.Commands})
		if err := sess.Open(ctx); err != nil {
			return err
		}
		model := ui.NewModel(sess, ui.Options{
			Width:        cfg.Width,
			Height:       cfg.Height,
			ShowFooter:   cfg.ShowFooter,
			Verbose:      cfg.Verbose,
			OpenResource: resourceOpener(socketPath),
		})
		runErr := runProgram(model)

		bus := NewBus(catalog.Commands)
		err = errors.Join(runErr, sess.Finish(ctx, bus))
		events.App.Exit(name, err)
		if err != nil {
			logging.Errorf("popup "+name, err)
			return err
		}
		next, ok := bus.Next()
		if !ok {
			return nil
		}
		events.App.Chain(name, next)
		name = next
	}
}

var (
	insideTmux  = tmux.Inside
	currentView = tmux.CurrentView
	restoreView = tmux.RestoreView
	openManual  = tmux.OpenManual
)

// viewKeeper remembers the tmux window and pane that launched the popup.
// Outside tmux there is nothing to restore.
type viewKeeper struct {
	socketPath string
}

func (k viewKeeper) Save(context.Context) (session.ViewState, error) {
	if !insideTmux() {
		return session.ViewState{}, nil
	}
	v, err := currentView(k.socketPath)
	if err != nil {
		return session.ViewState{}, err
	}
	return session.ViewState{Window: v.Window, Pane: v.Pane}, nil
}

func (k viewKeeper) Restore(_ context.Context, view session.ViewState) error {
	if view.Window == "" {
		return nil
	}
	return restoreView(k.socketPath, tmux.View{Window: view.Window, Pane: view.Pane})
}

func resourceOpener(socketPath string) func(string) tea.Cmd {
	return func(resource string) tea.Cmd {
		if insideTmux() {
			return func() tea.Msg {
				return ui.ResourceOpenedMsg{Resource: resource, Err: openManual(socketPath, resource)}
			}
		}
		return tea.ExecProcess(exec.Command("man", resource), func(err error) tea.Msg {
			return ui.ResourceOpenedMsg{Resource: resource, Err: err}
		})
	}
}
