package popup

import (
	"fmt"
	"strings"
	"unicode"
)

// ValueReader reads a value for an option. ok is false when the user
// cancelled the prompt.
type ValueReader func(prompt string) (value string, ok bool)

// Entry is one switch, option or action. Which fields matter depends on the
// category the entry lives in.
type Entry struct {
	Trigger     rune
	Description string
	// Argument is the switch or option identifier, e.g. "--verbose" or
	// "--message=".
	Argument string
	// Reader reads option values. Nil options are read by the host's line
	// prompt.
	Reader ValueReader
	// Command identifies the command an action invokes.
	Command string
}

// Placement positions an entry relative to another trigger of the same
// category.
type Placement struct {
	Anchor  rune
	Prepend bool
}

// Definition is a named popup: three ordered entry tables plus metadata.
type Definition struct {
	Name  string
	Title string
	// HelpResource names external documentation, e.g. a man page.
	HelpResource string
	// DefaultAction is invoked by enter when nothing is selected.
	DefaultAction rune

	entries  [3][]Entry
	revision uint64
}

// NewDefinition returns an empty popup definition.
func NewDefinition(name string) *Definition {
	return &Definition{Name: name}
}

// Revision increases with every successful mutation. Consumers compare it to
// decide when derived data needs to be rebuilt.
func (d *Definition) Revision() uint64 {
	return d.revision
}

// Entries returns a copy of the entries of c in display order.
func (d *Definition) Entries(c Category) []Entry {
	if !c.Valid() {
		return nil
	}
	dup := make([]Entry, len(d.entries[c]))
	copy(dup, d.entries[c])
	return dup
}

// Lookup returns the entry bound to trigger within c.
func (d *Definition) Lookup(c Category, trigger rune) (Entry, bool) {
	if !c.Valid() {
		return Entry{}, false
	}
	if idx := indexOf(d.entries[c], trigger); idx >= 0 {
		return d.entries[c][idx], true
	}
	return Entry{}, false
}

// Has reports whether trigger is bound within c.
func (d *Definition) Has(c Category, trigger rune) bool {
	_, ok := d.Lookup(c, trigger)
	return ok
}

// Empty reports whether the popup has no entries at all.
func (d *Definition) Empty() bool {
	for _, c := range Categories {
		if len(d.entries[c]) > 0 {
			return false
		}
	}
	return true
}

// Define inserts entry into c or replaces the entry already bound to its
// trigger. A replaced entry keeps its position unless anchored to another
// entry.
func (d *Definition) Define(c Category, entry Entry, at Placement) error {
	if !c.Valid() {
		return fmt.Errorf("define %q in %s: %w", string(entry.Trigger), d.Name, ErrUnknownCategory)
	}
	list := d.entries[c]
	existing := indexOf(list, entry.Trigger)
	if existing >= 0 && (at.Anchor == 0 || at.Anchor == entry.Trigger) {
		list[existing] = entry
		d.revision++
		return nil
	}
	if existing >= 0 {
		list = append(list[:existing], list[existing+1:]...)
	}
	pos := len(list)
	if at.Prepend {
		pos = 0
	}
	if at.Anchor != 0 {
		if idx := indexOf(list, at.Anchor); idx >= 0 {
			pos = idx + 1
			if at.Prepend {
				pos = idx
			}
		}
	}
	list = append(list, Entry{})
	copy(list[pos+1:], list[pos:])
	list[pos] = entry
	d.entries[c] = list
	d.revision++
	return nil
}

// Rename changes the trigger of an existing entry. Nothing happens when from
// is not bound; callers that care check Has first. Renaming onto a trigger
// held by another entry fails with ErrDuplicateTrigger.
func (d *Definition) Rename(c Category, from, to rune) error {
	if !c.Valid() {
		return fmt.Errorf("rename %q in %s: %w", string(from), d.Name, ErrUnknownCategory)
	}
	idx := indexOf(d.entries[c], from)
	if idx < 0 || from == to {
		return nil
	}
	if indexOf(d.entries[c], to) >= 0 {
		return fmt.Errorf("rename %q to %q in %s: %w", string(from), string(to), d.Name, ErrDuplicateTrigger)
	}
	d.entries[c][idx].Trigger = to
	d.revision++
	return nil
}

// Remove deletes the entry bound to trigger. Removing an unbound trigger is a
// no-op.
func (d *Definition) Remove(c Category, trigger rune) error {
	if !c.Valid() {
		return fmt.Errorf("remove %q from %s: %w", string(trigger), d.Name, ErrUnknownCategory)
	}
	idx := indexOf(d.entries[c], trigger)
	if idx < 0 {
		return nil
	}
	d.entries[c] = append(d.entries[c][:idx], d.entries[c][idx+1:]...)
	d.revision++
	return nil
}

// DisplayTitle falls back to a prettified name when no title is set.
func (d *Definition) DisplayTitle() string {
	if t := strings.TrimSpace(d.Title); t != "" {
		return t
	}
	return prettyLabel(d.Name)
}

func indexOf(list []Entry, trigger rune) int {
	for i, e := range list {
		if e.Trigger == trigger {
			return i
		}
	}
	return -1
}

// PromptFor derives the prompt shown when reading a value for argument:
// "--message=" becomes "Message: ".
func PromptFor(argument string) string {
	label := strings.TrimLeft(argument, "-")
	label = strings.TrimRight(label, "=")
	label = prettyLabel(label)
	if label == "" {
		return "Value: "
	}
	runes := []rune(label)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes) + ": "
}

func prettyLabel(id string) string {
	parts := strings.FieldsFunc(id, func(r rune) bool {
		return r == '-' || r == '_' || r == ' ' || r == ':'
	})
	return strings.Join(parts, " ")
}
