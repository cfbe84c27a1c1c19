package palettes

import (
	"context"
	"fmt"

	"github.com/atomicstack/argpopup/internal/commands"
	"github.com/atomicstack/argpopup/internal/popup"
)

// DefaultPopup is opened when no popup is named.
const DefaultPopup = "dispatch"

var gitPopups = []popup.Spec{
	{
		Name:         "dispatch",
		Title:        "Git",
		HelpResource: "git",
		Actions: []popup.Action{
			{Key: 'c', Description: "Commit", Command: "popup:commit"},
			{Key: 'l', Description: "Log", Command: "popup:log"},
			{Key: 'P', Description: "Push", Command: "popup:push"},
			{Key: 'f', Description: "Fetch", Command: "popup:fetch"},
		},
	},
	{
		Name:          "commit",
		Title:         "Commit",
		HelpResource:  "git-commit",
		DefaultAction: 'c',
		Switches: []popup.Switch{
			{Key: 'a', Description: "Stage all modified files", Argument: "--all"},
			{Key: 'v', Description: "Show diff in editor", Argument: "--verbose"},
			{Key: 'n', Description: "Skip hooks", Argument: "--no-verify"},
			{Key: 's', Description: "Add Signed-off-by", Argument: "--signoff"},
		},
		Options: []popup.Option{
			{Key: 'm', Description: "Message", Argument: "--message="},
			{Key: 'A', Description: "Override author", Argument: "--author="},
		},
		Actions: []popup.Action{
			{Key: 'c', Description: "Commit", Command: "git:commit"},
			{Key: 'a', Description: "Amend", Command: "git:commit-amend"},
		},
	},
	{
		Name:          "log",
		Title:         "Log",
		HelpResource:  "git-log",
		DefaultAction: 'l',
		Switches: []popup.Switch{
			{Key: 'g', Description: "Show graph", Argument: "--graph"},
			{Key: 'd', Description: "Show refnames", Argument: "--decorate"},
			{Key: 'o', Description: "One line per commit", Argument: "--oneline"},
		},
		Options: []popup.Option{
			{Key: 'n', Description: "Limit number of commits", Argument: "--max-count="},
			{Key: 'A', Description: "Limit to author", Argument: "--author="},
			{Key: 'G', Description: "Search messages", Argument: "--grep="},
		},
		Actions: []popup.Action{
			{Key: 'l', Description: "Current branch", Command: "git:log"},
			{Key: 'a', Description: "All references", Command: "git:log-all"},
		},
	},
	{
		Name:          "push",
		Title:         "Push",
		HelpResource:  "git-push",
		DefaultAction: 'p',
		Switches: []popup.Switch{
			{Key: 'f', Description: "Force with lease", Argument: "--force-with-lease"},
			{Key: 'n', Description: "Dry run", Argument: "--dry-run"},
			{Key: 'u', Description: "Set upstream", Argument: "--set-upstream"},
		},
		Options: []popup.Option{
			{Key: 'r', Description: "Remote", Argument: "--repo="},
		},
		Actions: []popup.Action{
			{Key: 'p', Description: "Push", Command: "git:push"},
			{Key: 't', Description: "Push tags", Command: "git:push-tags"},
		},
	},
	{
		Name:          "fetch",
		Title:         "Fetch",
		HelpResource:  "git-fetch",
		DefaultAction: 'f',
		Switches: []popup.Switch{
			{Key: 'p', Description: "Prune deleted branches", Argument: "--prune"},
			{Key: 't', Description: "Fetch all tags", Argument: "--tags"},
		},
		Actions: []popup.Action{
			{Key: 'f', Description: "Fetch", Command: "git:fetch"},
			{Key: 'a', Description: "Fetch all remotes", Command: "git:fetch-all"},
		},
	},
}

type gitCommand struct {
	id   string
	args []string
	doc  string
}

var gitCommands = []gitCommand{
	{
		id:   "git:commit",
		args: []string{"commit"},
		doc:  "## git commit\n\nRecord the staged changes as a new commit using the selected switches and options.",
	},
	{
		id:   "git:commit-amend",
		args: []string{"commit", "--amend"},
		doc:  "## git commit --amend\n\nReplace the tip of the current branch with a new commit.",
	},
	{
		id:   "git:log",
		args: []string{"log"},
		doc:  "## git log\n\nShow the history of the current branch.",
	},
	{
		id:   "git:log-all",
		args: []string{"log", "--all"},
		doc:  "## git log --all\n\nShow the history of every reference.",
	},
	{
		id:   "git:push",
		args: []string{"push"},
		doc:  "## git push\n\nUpdate the remote with the current branch.",
	},
	{
		id:   "git:push-tags",
		args: []string{"push", "--tags"},
		doc:  "## git push --tags\n\nPush every local tag.",
	},
	{
		id:   "git:fetch",
		args: []string{"fetch"},
		doc:  "## git fetch\n\nDownload objects and refs from the default remote.",
	},
	{
		id:   "git:fetch-all",
		args: []string{"fetch", "--all"},
		doc:  "## git fetch --all\n\nFetch every configured remote.",
	},
}

// Register installs the git popups into store and their commands into reg.
func Register(store *popup.Store, reg *commands.Registry, runner *Runner) error {
	for _, spec := range gitPopups {
		if _, err := store.Register(spec); err != nil {
			return fmt.Errorf("register popup %s: %w", spec.Name, err)
		}
	}
	for _, gc := range gitCommands {
		base := gc.args
		err := reg.Register(commands.Command{
			ID:  gc.id,
			Doc: gc.doc,
			Run: func(ctx context.Context, inv commands.Invocation) error {
				args := make([]string, 0, len(base)+len(inv.Tokens))
				args = append(args, base...)
				args = append(args, inv.Tokens...)
				return runner.Run(ctx, args)
			},
		})
		if err != nil {
			return err
		}
	}
	return nil
}
