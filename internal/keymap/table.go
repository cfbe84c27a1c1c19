package keymap

import (
	"sort"
	"strings"

	"github.com/atomicstack/argpopup/internal/logging/events"
	"github.com/atomicstack/argpopup/internal/popup"
)

// Kind is the effect a key sequence produces.
type Kind int

const (
	KindToggle Kind = iota + 1
	KindPrompt
	KindInvoke
	KindHelp
	KindQuit
	KindNext
	KindPrev
	KindSelect
)

func (k Kind) String() string {
	switch k {
	case KindToggle:
		return "toggle"
	case KindPrompt:
		return "prompt"
	case KindInvoke:
		return "invoke"
	case KindHelp:
		return "help"
	case KindQuit:
		return "quit"
	case KindNext:
		return "next"
	case KindPrev:
		return "prev"
	case KindSelect:
		return "select"
	default:
		return "unknown"
	}
}

// Effect is what happens when a bound sequence is typed. Entry effects carry
// the entry they came from so the caller never has to look it up again.
type Effect struct {
	Kind     Kind
	Sequence string
	Category popup.Category
	Entry    popup.Entry
}

// Fixed reports whether the effect comes from a built-in binding.
func (e Effect) Fixed() bool {
	return e.Kind >= KindHelp
}

// Table maps key sequences to effects for one revision of a popup.
type Table struct {
	Popup    string
	Revision uint64
	Keys     Fixed

	fixed    map[string]Effect
	bindings map[string]Effect
	prefixes map[string]struct{}
	shadowed []string
}

// Build derives the dispatch table for def using the default fixed bindings.
func Build(def *popup.Definition) *Table {
	return BuildWith(def, DefaultFixed())
}

// BuildWith derives the dispatch table for def. Fixed bindings win over any
// entry that would produce the same sequence, and category prefixes win over
// single-key actions spelled like them.
func BuildWith(def *popup.Definition, keys Fixed) *Table {
	t := &Table{
		Popup:    def.Name,
		Revision: def.Revision(),
		Keys:     keys,
		fixed:    make(map[string]Effect),
		bindings: make(map[string]Effect),
		prefixes: make(map[string]struct{}),
	}
	for _, fe := range keys.effects() {
		for _, k := range fe.binding.Keys() {
			t.fixed[k] = Effect{Kind: fe.kind, Sequence: k}
		}
	}

	for _, c := range popup.Categories {
		d := popup.MustDescribe(c)
		entries := def.Entries(c)
		if d.Prefix != 0 && len(entries) > 0 {
			t.prefixes[string(d.Prefix)] = struct{}{}
		}
		for _, entry := range entries {
			seq := d.Glyph(entry.Trigger)
			t.bindings[seq] = Effect{
				Kind:     kindFor(d.Effect),
				Sequence: seq,
				Category: c,
				Entry:    entry,
			}
		}
	}

	for seq := range t.bindings {
		_, isFixed := t.fixed[seq]
		_, isPrefix := t.prefixes[seq]
		if isFixed || isPrefix {
			delete(t.bindings, seq)
			t.shadowed = append(t.shadowed, seq)
		}
	}
	sort.Strings(t.shadowed)
	if len(t.shadowed) > 0 {
		events.Popup.Shadowed(def.Name, strings.Join(t.shadowed, " "))
	}
	events.Popup.Keymap(def.Name, t.Revision, len(t.bindings))
	return t
}

func kindFor(effect popup.EffectKind) Kind {
	switch effect {
	case popup.EffectToggle:
		return KindToggle
	case popup.EffectPrompt:
		return KindPrompt
	default:
		return KindInvoke
	}
}

// Current reports whether the table still matches def.
func (t *Table) Current(def *popup.Definition) bool {
	return t != nil && def != nil && t.Popup == def.Name && t.Revision == def.Revision()
}

// Fixed returns the built-in effect bound to a single key name.
func (t *Table) Fixed(key string) (Effect, bool) {
	e, ok := t.fixed[key]
	return e, ok
}

// Lookup returns the effect of a complete sequence, fixed bindings first.
func (t *Table) Lookup(seq string) (Effect, bool) {
	if e, ok := t.fixed[seq]; ok {
		return e, true
	}
	e, ok := t.bindings[seq]
	return e, ok
}

// IsPrefix reports whether seq starts a longer entry sequence.
func (t *Table) IsPrefix(seq string) bool {
	_, ok := t.prefixes[seq]
	return ok
}

// Sequences lists the entry sequences, sorted.
func (t *Table) Sequences() []string {
	out := make([]string, 0, len(t.bindings))
	for seq := range t.bindings {
		out = append(out, seq)
	}
	sort.Strings(out)
	return out
}

// Shadowed lists entry sequences hidden by fixed bindings or prefixes.
func (t *Table) Shadowed() []string {
	return append([]string(nil), t.shadowed...)
}

// Len is the number of entry bindings.
func (t *Table) Len() int {
	return len(t.bindings)
}
