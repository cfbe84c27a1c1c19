package popup

import (
	"errors"
	"reflect"
	"testing"
)

func commitSpec() Spec {
	return Spec{
		Name:          "commit",
		Title:         "Commit",
		HelpResource:  "git-commit",
		DefaultAction: 'c',
		Switches:      []Switch{{Key: 'v', Description: "verbose", Argument: "--verbose"}},
		Options:       []Option{{Key: 'm', Description: "message", Argument: "--message="}},
		Actions:       []Action{{Key: 'c', Description: "commit", Command: "doCommit"}},
	}
}

func TestRegisterBuildsDefinition(t *testing.T) {
	store := NewStore()
	def, err := store.Register(commitSpec())
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if got, ok := store.Get("commit"); !ok || got != def {
		t.Fatalf("expected registered popup to be retrievable")
	}
	if def.HelpResource != "git-commit" || def.DefaultAction != 'c' {
		t.Fatalf("unexpected metadata %#v", def)
	}
	if !store.Has("commit", Switches, 'v') || !store.Has("commit", Options, 'm') || !store.Has("commit", Actions, 'c') {
		t.Fatalf("expected all entries bound")
	}
}

func TestRegisterRejectsDuplicateTrigger(t *testing.T) {
	store := NewStore()
	spec := commitSpec()
	spec.Actions = append(spec.Actions, Action{Key: 'c', Command: "other"})
	_, err := store.Register(spec)
	if !errors.Is(err, ErrDuplicateTrigger) {
		t.Fatalf("expected ErrDuplicateTrigger, got %v", err)
	}
	if _, ok := store.Get("commit"); ok {
		t.Fatalf("expected store untouched on invalid spec")
	}
}

func TestRegisterRejectsUnboundDefault(t *testing.T) {
	store := NewStore()
	spec := commitSpec()
	spec.DefaultAction = 'x'
	if _, err := store.Register(spec); !errors.Is(err, ErrInvalidSpec) {
		t.Fatalf("expected ErrInvalidSpec, got %v", err)
	}
	if _, err := store.Register(Spec{}); !errors.Is(err, ErrInvalidSpec) {
		t.Fatalf("expected ErrInvalidSpec for missing name, got %v", err)
	}
}

func TestStoreMutationsCreateAndIgnore(t *testing.T) {
	store := NewStore()
	if err := store.Define("scratch", Actions, Entry{Trigger: 'a'}, Placement{}); err != nil {
		t.Fatalf("define: %v", err)
	}
	if _, ok := store.Get("scratch"); !ok {
		t.Fatalf("expected define to create popup")
	}
	if err := store.Remove("missing", Actions, 'a'); err != nil {
		t.Fatalf("remove on unknown popup should be silent, got %v", err)
	}
	if err := store.Rename("missing", Actions, 'a', 'b'); err != nil {
		t.Fatalf("rename on unknown popup should be silent, got %v", err)
	}
	if err := store.Define("scratch", Category(3), Entry{Trigger: 'b'}, Placement{}); !errors.Is(err, ErrUnknownCategory) {
		t.Fatalf("expected ErrUnknownCategory, got %v", err)
	}
}

func TestStoreNamesSorted(t *testing.T) {
	store := NewStore()
	for _, name := range []string{"push", "commit", "log"} {
		if _, err := store.Register(Spec{Name: name}); err != nil {
			t.Fatalf("register %s: %v", name, err)
		}
	}
	want := []string{"commit", "log", "push"}
	if got := store.Names(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if _, err := store.MustGet("nope"); !errors.Is(err, ErrUnknownPopup) {
		t.Fatalf("expected ErrUnknownPopup, got %v", err)
	}
}
