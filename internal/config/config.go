package config

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/atomicstack/argpopup/internal/app"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envPopup      = "ARGPOPUP_POPUP"
	envSocketPath = "ARGPOPUP_SOCKET"
	envWidth      = "ARGPOPUP_WIDTH"
	envHeight     = "ARGPOPUP_HEIGHT"
	envShowFooter = "ARGPOPUP_FOOTER"
	envVerbose    = "ARGPOPUP_VERBOSE"
	envDryRun     = "ARGPOPUP_DRY_RUN"
	envNoColor    = "ARGPOPUP_NO_COLOR"
	envTrace      = "ARGPOPUP_TRACE"
	envLogFile    = "ARGPOPUP_LOG_FILE"
	envGit        = "ARGPOPUP_GIT"
)

// Values holds flag destinations registered on a flag set. Environment
// variables provide the defaults, so explicit flags win.
type Values struct {
	popup   *string
	socket  *string
	width   *int
	height  *int
	footer  *bool
	verbose *bool
	dryRun  *bool
	noColor *bool
	trace   *bool
	logFile *string
	git     *string
}

// Register adds the application flags to fs.
func Register(fs *pflag.FlagSet, environ []string) *Values {
	env := parseEnv(environ)
	return &Values{
		popup:   fs.String("popup", envOrDefault(env, envPopup, ""), "popup to open (defaults to the dispatch popup)"),
		socket:  fs.String("socket", envOrDefault(env, envSocketPath, ""), "path to the tmux socket (overrides environment detection)"),
		width:   fs.Int("width", envOrInt(env, envWidth, 0), "desired popup width in cells (0 uses terminal width)"),
		height:  fs.Int("height", envOrInt(env, envHeight, 0), "desired popup height in rows (0 uses terminal height)"),
		footer:  fs.Bool("footer", envOrBool(env, envShowFooter, false), "show the key hint row"),
		verbose: fs.Bool("verbose", envOrBool(env, envVerbose, false), "report argument changes in the status line"),
		dryRun:  fs.Bool("dry-run", envOrBool(env, envDryRun, false), "print commands instead of running them"),
		noColor: fs.Bool("no-color", envOrBool(env, envNoColor, false), "disable colour output"),
		trace:   fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging"),
		logFile: fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file"),
		git:     fs.String("git", envOrDefault(env, envGit, "git"), "git binary used by the git popups"),
	}
}

// Resolve validates the parsed flags and assembles a Config. args are kept
// for trace output only.
func (v *Values) Resolve(args []string) (Config, error) {
	if *v.width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *v.width)
	}
	if *v.height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *v.height)
	}
	cfg := Config{
		App: app.Config{
			SocketPath: *v.socket,
			Width:      *v.width,
			Height:     *v.height,
			ShowFooter: *v.footer,
			Verbose:    *v.verbose,
			Popup:      strings.TrimSpace(*v.popup),
			DryRun:     *v.dryRun,
			NoColor:    *v.noColor,
			GitBinary:  *v.git,
		},
		Logging: Logging{
			FilePath: *v.logFile,
			Trace:    *v.trace,
		},
		Flags: map[string]string{
			"popup":   *v.popup,
			"socket":  *v.socket,
			"width":   strconv.Itoa(*v.width),
			"height":  strconv.Itoa(*v.height),
			"footer":  strconv.FormatBool(*v.footer),
			"verbose": strconv.FormatBool(*v.verbose),
			"dryRun":  strconv.FormatBool(*v.dryRun),
			"noColor": strconv.FormatBool(*v.noColor),
			"git":     *v.git,
		},
		Args: append([]string(nil), args...),
	}
	return cfg, nil
}


// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	fs := pflag.NewFlagSet("argpopup", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	values := Register(fs, environ)
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	cfg, err := values.Resolve(args)
	if err != nil {
		return Config{}, err
	}
	if cfg.App.Popup == "" && fs.NArg() > 0 {
		cfg.App.Popup = fs.Arg(0)
	}
	return cfg, nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// Validate checks settings that depend on each other.
func Validate(cfg Config) error {
	if strings.TrimSpace(cfg.App.GitBinary) == "" {
		return fmt.Errorf("git binary must not be empty")
	}
	if strings.ContainsAny(cfg.App.Popup, " \t") {
		return fmt.Errorf("popup name %q must not contain whitespace", cfg.App.Popup)
	}
	return nil
}
