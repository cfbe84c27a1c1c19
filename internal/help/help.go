package help

import (
	"errors"
	"fmt"

	"github.com/atomicstack/argpopup/internal/keymap"
	"github.com/atomicstack/argpopup/internal/logging/events"
	"github.com/atomicstack/argpopup/internal/popup"
)

var (
	// ErrUnboundHelpTarget is returned when the key after the help trigger
	// names neither an action nor the resource key.
	ErrUnboundHelpTarget = errors.New("help: key is not bound to an action")
	// ErrNoHelpResource is returned when the popup has no external help.
	ErrNoHelpResource = errors.New("help: popup has no help resource")
)

// Describer returns documentation for a command identifier.
type Describer interface {
	Describe(command string) (string, bool)
}

// Kind tells the caller what a lookup resolved to.
type Kind int

const (
	KindAction Kind = iota + 1
	KindResource
)

// Result is a resolved help target.
type Result struct {
	Kind  Kind
	Popup string
	// Target is the key sequence that was looked up.
	Target string
	Title  string
	// Doc is markdown describing the action.
	Doc string
	// Resource is the external help identifier, e.g. a man page.
	Resource string
}

// Lookup resolves the key typed after the help trigger. Typing the help
// trigger again selects the popup's external resource. Lookup never mutates
// argument state.
func Lookup(def *popup.Definition, table *keymap.Table, target string, docs Describer) (Result, error) {
	events.Help.Lookup(def.Name, target)
	if e, ok := table.Fixed(target); ok && e.Kind == keymap.KindHelp {
		if def.HelpResource == "" {
			err := fmt.Errorf("%s: %w", def.Name, ErrNoHelpResource)
			events.Help.Miss(def.Name, target, err)
			return Result{}, err
		}
		events.Help.Resource(def.Name, def.HelpResource)
		return Result{
			Kind:     KindResource,
			Popup:    def.Name,
			Target:   target,
			Title:    def.DisplayTitle(),
			Resource: def.HelpResource,
		}, nil
	}
	e, ok := table.Lookup(target)
	if !ok || e.Kind != keymap.KindInvoke {
		err := fmt.Errorf("%s: %q: %w", def.Name, target, ErrUnboundHelpTarget)
		events.Help.Miss(def.Name, target, err)
		return Result{}, err
	}
	doc := ""
	if docs != nil {
		doc, _ = docs.Describe(e.Entry.Command)
	}
	if doc == "" {
		doc = fallbackDoc(e.Entry)
	}
	return Result{
		Kind:   KindAction,
		Popup:  def.Name,
		Target: target,
		Title:  e.Entry.Description,
		Doc:    doc,
	}, nil
}

func fallbackDoc(entry popup.Entry) string {
	if entry.Description == "" {
		return fmt.Sprintf("Runs `%s`.", entry.Command)
	}
	return fmt.Sprintf("%s\n\nRuns `%s`.", entry.Description, entry.Command)
}
