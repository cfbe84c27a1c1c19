package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/atomicstack/argpopup/internal/app"
	"github.com/atomicstack/argpopup/internal/config"
	"github.com/atomicstack/argpopup/internal/format/table"
	"github.com/atomicstack/argpopup/internal/logging"
	"github.com/atomicstack/argpopup/internal/popup"
	"github.com/atomicstack/argpopup/internal/render"
	"github.com/atomicstack/argpopup/internal/state"
)

var runApp = app.Run

func newRootCmd(args, environ []string) *cobra.Command {
	var values *config.Values
	cfg := &config.Config{}

	cmd := &cobra.Command{
		Use:           "argpopup [popup]",
		Short:         "Transient argument popups for git",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		Example: strings.TrimSpace(`
  # Open the git dispatch popup
  argpopup

  # Open the commit popup directly and print the command instead of running it
  argpopup commit --dry-run

  # Bind it in tmux
  bind-key g display-popup -E "argpopup"
`),
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			resolved, err := values.Resolve(args)
			if err != nil {
				return configError{err}
			}
			if err := config.Validate(resolved); err != nil {
				return configError{err}
			}
			logging.Configure(resolved.Logging.FilePath)
			logging.SetTraceEnabled(resolved.Logging.Trace)
			traceStartup(resolved)
			*cfg = resolved
			return nil
		},
		RunE: func(cmd *cobra.Command, positional []string) error {
			return openPopup(cmd, cfg, positional)
		},
	}
	cmd.SetArgs(args)
	values = config.Register(cmd.PersistentFlags(), environ)

	cmd.AddCommand(newOpenCmd(cfg))
	cmd.AddCommand(newListCmd(cfg))
	cmd.AddCommand(newShowCmd(cfg))
	return cmd
}

func openPopup(cmd *cobra.Command, cfg *config.Config, positional []string) error {
	appCfg := cfg.App
	if len(positional) == 1 {
		appCfg.Popup = positional[0]
	}
	return runApp(cmd.Context(), appCfg)
}

func newOpenCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "open [popup]",
		Short: "Open a popup (the dispatch popup by default)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, positional []string) error {
			return openPopup(cmd, cfg, positional)
		},
	}
}

func newListCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "list [query]",
		Short: "List popups, optionally fuzzy-filtered",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, positional []string) error {
			catalog, err := app.NewCatalog(cfg.App, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			query := ""
			if len(positional) == 1 {
				query = positional[0]
			}
			names := catalog.Match(query)
			if len(names) == 0 {
				return fmt.Errorf("no popup matches %q", query)
			}
			rows := make([][]string, 0, len(names))
			for _, name := range names {
				def, _ := catalog.Store.Get(name)
				rows = append(rows, []string{
					name,
					def.DisplayTitle(),
					strconv.Itoa(len(def.Entries(popup.Switches))),
					strconv.Itoa(len(def.Entries(popup.Options))),
					strconv.Itoa(len(def.Entries(popup.Actions))),
				})
			}
			align := []table.Alignment{table.AlignLeft, table.AlignLeft, table.AlignRight, table.AlignRight, table.AlignRight}
			for _, line := range table.Format(rows, align) {
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}
}

func newShowCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "show <popup>",
		Short: "Print a popup's layout without opening it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, positional []string) error {
			catalog, err := app.NewCatalog(cfg.App, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			def, err := catalog.Lookup(positional[0])
			if err != nil {
				return err
			}
			width := cfg.App.Width
			if width == 0 {
				width = terminalWidth(80)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, def.DisplayTitle())
			frame := render.Render(def, state.NewArgumentStore(), render.Options{Width: width})
			for _, line := range frame.Plain() {
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}
}
