package popup

import (
	"errors"
	"testing"
)

func triggers(def *Definition, c Category) string {
	var out []rune
	for _, e := range def.Entries(c) {
		out = append(out, e.Trigger)
	}
	return string(out)
}

func TestDefineAppendsInOrder(t *testing.T) {
	def := NewDefinition("commit")
	for _, r := range "abc" {
		if err := def.Define(Actions, Entry{Trigger: r, Command: string(r)}, Placement{}); err != nil {
			t.Fatalf("define %c: %v", r, err)
		}
	}
	if got := triggers(def, Actions); got != "abc" {
		t.Fatalf("expected order abc, got %q", got)
	}
}

func TestDefineSameTriggerReplacesInPlace(t *testing.T) {
	def := NewDefinition("commit")
	for _, r := range "abc" {
		_ = def.Define(Switches, Entry{Trigger: r, Argument: "--" + string(r)}, Placement{})
	}
	if err := def.Define(Switches, Entry{Trigger: 'b', Argument: "--bravo"}, Placement{}); err != nil {
		t.Fatalf("redefine: %v", err)
	}
	if got := triggers(def, Switches); got != "abc" {
		t.Fatalf("expected position preserved, got %q", got)
	}
	entry, ok := def.Lookup(Switches, 'b')
	if !ok || entry.Argument != "--bravo" {
		t.Fatalf("expected replaced entry, got %#v", entry)
	}
	if n := len(def.Entries(Switches)); n != 3 {
		t.Fatalf("expected no duplicate, got %d entries", n)
	}
}

func TestDefineWithAnchorPlacesAfterOrBefore(t *testing.T) {
	def := NewDefinition("log")
	for _, r := range "ac" {
		_ = def.Define(Actions, Entry{Trigger: r}, Placement{})
	}
	_ = def.Define(Actions, Entry{Trigger: 'b'}, Placement{Anchor: 'a'})
	if got := triggers(def, Actions); got != "abc" {
		t.Fatalf("expected b after a, got %q", got)
	}
	_ = def.Define(Actions, Entry{Trigger: 'z'}, Placement{Anchor: 'a', Prepend: true})
	if got := triggers(def, Actions); got != "zabc" {
		t.Fatalf("expected z before a, got %q", got)
	}
}

func TestDefineRedefinitionWithAnchorMoves(t *testing.T) {
	def := NewDefinition("log")
	for _, r := range "abc" {
		_ = def.Define(Actions, Entry{Trigger: r}, Placement{})
	}
	_ = def.Define(Actions, Entry{Trigger: 'a', Description: "moved"}, Placement{Anchor: 'c'})
	if got := triggers(def, Actions); got != "bca" {
		t.Fatalf("expected a moved after c, got %q", got)
	}
}

func TestDefineAnchoredToItselfStaysInPlace(t *testing.T) {
	def := NewDefinition("log")
	for _, r := range "abc" {
		_ = def.Define(Actions, Entry{Trigger: r}, Placement{})
	}
	if err := def.Define(Actions, Entry{Trigger: 'a', Description: "again"}, Placement{Anchor: 'a'}); err != nil {
		t.Fatalf("define: %v", err)
	}
	if got := triggers(def, Actions); got != "abc" {
		t.Fatalf("expected a to keep its position, got %q", got)
	}
	if entry, _ := def.Lookup(Actions, 'a'); entry.Description != "again" {
		t.Fatalf("expected a replaced, got %#v", entry)
	}
}

func TestDefineMissingAnchorAppendsOrPrepends(t *testing.T) {
	def := NewDefinition("log")
	_ = def.Define(Actions, Entry{Trigger: 'a'}, Placement{})
	_ = def.Define(Actions, Entry{Trigger: 'b'}, Placement{Anchor: 'x'})
	_ = def.Define(Actions, Entry{Trigger: 'c'}, Placement{Prepend: true})
	if got := triggers(def, Actions); got != "cab" {
		t.Fatalf("expected cab, got %q", got)
	}
}

func TestDefineUnknownCategory(t *testing.T) {
	def := NewDefinition("log")
	err := def.Define(Category(9), Entry{Trigger: 'a'}, Placement{})
	if !errors.Is(err, ErrUnknownCategory) {
		t.Fatalf("expected ErrUnknownCategory, got %v", err)
	}
	if def.Revision() != 0 {
		t.Fatalf("expected mutation aborted, revision %d", def.Revision())
	}
}

func TestRenameChangesTriggerOnly(t *testing.T) {
	def := NewDefinition("push")
	_ = def.Define(Options, Entry{Trigger: 'r', Description: "Remote", Argument: "--repo="}, Placement{})
	if err := def.Rename(Options, 'r', 'R'); err != nil {
		t.Fatalf("rename: %v", err)
	}
	entry, ok := def.Lookup(Options, 'R')
	if !ok || entry.Argument != "--repo=" || entry.Description != "Remote" {
		t.Fatalf("unexpected renamed entry %#v", entry)
	}
	if def.Has(Options, 'r') {
		t.Fatalf("expected old trigger gone")
	}
	before := def.Revision()
	if err := def.Rename(Options, 'x', 'y'); err != nil {
		t.Fatalf("rename of missing trigger should be silent, got %v", err)
	}
	if def.Revision() != before {
		t.Fatalf("expected no mutation for missing trigger")
	}
}

func TestRenameOntoBoundTriggerFails(t *testing.T) {
	def := NewDefinition("log")
	for _, r := range "ab" {
		_ = def.Define(Actions, Entry{Trigger: r}, Placement{})
	}
	before := def.Revision()
	if err := def.Rename(Actions, 'a', 'b'); !errors.Is(err, ErrDuplicateTrigger) {
		t.Fatalf("expected ErrDuplicateTrigger, got %v", err)
	}
	if got := triggers(def, Actions); got != "ab" || def.Revision() != before {
		t.Fatalf("expected definition untouched, got %q", got)
	}
}

func TestRemoveMissingIsNoop(t *testing.T) {
	def := NewDefinition("push")
	_ = def.Define(Switches, Entry{Trigger: 'f', Argument: "--force"}, Placement{})
	if err := def.Remove(Switches, 'x'); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := def.Remove(Switches, 'f'); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if !def.Empty() {
		t.Fatalf("expected empty popup after removal")
	}
	if err := def.Remove(Category(-1), 'f'); !errors.Is(err, ErrUnknownCategory) {
		t.Fatalf("expected ErrUnknownCategory, got %v", err)
	}
}

func TestRevisionAdvancesOnMutation(t *testing.T) {
	def := NewDefinition("fetch")
	_ = def.Define(Actions, Entry{Trigger: 'f'}, Placement{})
	r1 := def.Revision()
	_ = def.Rename(Actions, 'f', 'F')
	r2 := def.Revision()
	_ = def.Remove(Actions, 'F')
	r3 := def.Revision()
	if !(r1 < r2 && r2 < r3) {
		t.Fatalf("expected increasing revisions, got %d %d %d", r1, r2, r3)
	}
}

func TestPromptFor(t *testing.T) {
	cases := map[string]string{
		"--message=":   "Message: ",
		"--author=":    "Author: ",
		"-n":           "N: ",
		"--max-count=": "Max count: ",
		"":             "Value: ",
	}
	for arg, want := range cases {
		if got := PromptFor(arg); got != want {
			t.Fatalf("PromptFor(%q) = %q, want %q", arg, got, want)
		}
	}
}

func TestDescriptorGlyph(t *testing.T) {
	if got := MustDescribe(Switches).Glyph('v'); got != "-v" {
		t.Fatalf("expected -v, got %q", got)
	}
	if got := MustDescribe(Options).Glyph('m'); got != "=m" {
		t.Fatalf("expected =m, got %q", got)
	}
	if got := MustDescribe(Actions).Glyph('c'); got != "c" {
		t.Fatalf("expected c, got %q", got)
	}
	if _, err := ParseCategory("flags"); !errors.Is(err, ErrUnknownCategory) {
		t.Fatalf("expected ErrUnknownCategory, got %v", err)
	}
	if c, err := ParseCategory("options"); err != nil || c != Options {
		t.Fatalf("expected options category, got %v %v", c, err)
	}
}
