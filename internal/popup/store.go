package popup

import (
	"fmt"
	"sort"
	"strings"

	"github.com/atomicstack/argpopup/internal/logging/events"
)

// Store holds every popup definition by name. It is owned by a single
// goroutine, the one driving the active session.
type Store struct {
	popups map[string]*Definition
}

// NewStore returns an empty definition store.
func NewStore() *Store {
	return &Store{popups: make(map[string]*Definition)}
}

// Get returns the named popup.
func (s *Store) Get(name string) (*Definition, bool) {
	def, ok := s.popups[name]
	return def, ok
}

// MustGet returns the named popup or ErrUnknownPopup.
func (s *Store) MustGet(name string) (*Definition, error) {
	def, ok := s.popups[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPopup, name)
	}
	return def, nil
}

// Names lists the registered popups alphabetically.
func (s *Store) Names() []string {
	names := make([]string, 0, len(s.popups))
	for name := range s.popups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *Store) ensure(name string) *Definition {
	if def, ok := s.popups[name]; ok {
		return def
	}
	def := NewDefinition(name)
	s.popups[name] = def
	return def
}

// Define inserts or replaces an entry of the named popup, creating the popup
// when needed.
func (s *Store) Define(popup string, c Category, entry Entry, at Placement) error {
	if !c.Valid() {
		return fmt.Errorf("define %q in %s: %w", string(entry.Trigger), popup, ErrUnknownCategory)
	}
	if err := s.ensure(popup).Define(c, entry, at); err != nil {
		return err
	}
	events.Popup.Define(popup, c.String(), string(entry.Trigger))
	return nil
}

// Rename changes the trigger of an entry. Unknown popups and triggers are
// ignored.
func (s *Store) Rename(popup string, c Category, from, to rune) error {
	if !c.Valid() {
		return fmt.Errorf("rename %q in %s: %w", string(from), popup, ErrUnknownCategory)
	}
	def, ok := s.popups[popup]
	if !ok {
		return nil
	}
	if err := def.Rename(c, from, to); err != nil {
		return err
	}
	events.Popup.Rename(popup, c.String(), string(from), string(to))
	return nil
}

// Remove deletes an entry. Unknown popups and triggers are ignored.
func (s *Store) Remove(popup string, c Category, trigger rune) error {
	if !c.Valid() {
		return fmt.Errorf("remove %q from %s: %w", string(trigger), popup, ErrUnknownCategory)
	}
	def, ok := s.popups[popup]
	if !ok {
		return nil
	}
	if err := def.Remove(c, trigger); err != nil {
		return err
	}
	events.Popup.Remove(popup, c.String(), string(trigger))
	return nil
}

// Has reports whether the named popup binds trigger within c.
func (s *Store) Has(popup string, c Category, trigger rune) bool {
	def, ok := s.popups[popup]
	if !ok {
		return false
	}
	return def.Has(c, trigger)
}

// Switch declares a boolean argument.
type Switch struct {
	Key         rune
	Description string
	Argument    string
}

// Option declares a string-valued argument.
type Option struct {
	Key         rune
	Description string
	Argument    string
	Reader      ValueReader
}

// Action declares a command bound to a key.
type Action struct {
	Key         rune
	Description string
	Command     string
}

// Spec is the declarative form of a whole popup. Name doubles as the entry
// point used to open it.
type Spec struct {
	Name          string
	Title         string
	HelpResource  string
	DefaultAction rune
	Switches      []Switch
	Options       []Option
	Actions       []Action
}

// Register builds a popup from spec, replacing any existing popup of the same
// name. The store is left untouched when spec is invalid.
func (s *Store) Register(spec Spec) (*Definition, error) {
	name := strings.TrimSpace(spec.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name required", ErrInvalidSpec)
	}
	def := NewDefinition(name)
	def.Title = spec.Title
	def.HelpResource = spec.HelpResource
	def.DefaultAction = spec.DefaultAction

	add := func(c Category, entry Entry) error {
		if entry.Trigger == 0 {
			return fmt.Errorf("%w: %s %s entry %q has no key", ErrInvalidSpec, name, c, entry.Description)
		}
		if def.Has(c, entry.Trigger) {
			return fmt.Errorf("%w: %s %s %q", ErrDuplicateTrigger, name, c, string(entry.Trigger))
		}
		return def.Define(c, entry, Placement{})
	}
	for _, sw := range spec.Switches {
		if err := add(Switches, Entry{Trigger: sw.Key, Description: sw.Description, Argument: sw.Argument}); err != nil {
			return nil, err
		}
	}
	for _, opt := range spec.Options {
		if err := add(Options, Entry{Trigger: opt.Key, Description: opt.Description, Argument: opt.Argument, Reader: opt.Reader}); err != nil {
			return nil, err
		}
	}
	for _, act := range spec.Actions {
		if err := add(Actions, Entry{Trigger: act.Key, Description: act.Description, Command: act.Command}); err != nil {
			return nil, err
		}
	}
	if def.DefaultAction != 0 && !def.Has(Actions, def.DefaultAction) {
		return nil, fmt.Errorf("%w: %s default action %q is not bound", ErrInvalidSpec, name, string(def.DefaultAction))
	}
	s.popups[name] = def
	events.Popup.Register(name, len(spec.Switches), len(spec.Options), len(spec.Actions))
	return def, nil
}
