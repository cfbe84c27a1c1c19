package render

import (
	"reflect"
	"testing"

	"github.com/atomicstack/argpopup/internal/popup"
	"github.com/atomicstack/argpopup/internal/state"
)

func logPopup(t *testing.T) *popup.Definition {
	t.Helper()
	def, err := popup.NewStore().Register(popup.Spec{
		Name: "log",
		Switches: []popup.Switch{
			{Key: 'g', Description: "Graph", Argument: "--graph"},
			{Key: 'd', Description: "Decorate", Argument: "--decorate"},
		},
		Options: []popup.Option{
			{Key: 'n', Description: "Limit", Argument: "--max-count="},
		},
		Actions: []popup.Action{
			{Key: 'l', Description: "Current", Command: "git:log"},
			{Key: 'a', Description: "All branches", Command: "git:log-all"},
			{Key: 'o', Description: "Other", Command: "git:log-other"},
		},
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	return def
}

func TestRenderGroupsCategories(t *testing.T) {
	args := state.NewArgumentStore()
	args.Toggle("--graph")
	args.SetOption("--max-count=", "10", true)

	frame := Render(logPopup(t), args, Options{Width: 80})
	want := []string{
		"Switches",
		"-g Graph (--graph)",
		"-d Decorate (--decorate)",
		"",
		"Options",
		`=n Limit (--max-count="10")`,
		"",
		"Actions",
		"l Current       a All branches  o Other",
	}
	if got := frame.Plain(); !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected frame:\n%q\nwant\n%q", got, want)
	}
}

func TestRenderTagsArgumentState(t *testing.T) {
	args := state.NewArgumentStore()
	args.Toggle("--graph")
	args.SetOption("--max-count=", "", true)

	frame := Render(logPopup(t), args, Options{Width: 80})

	graph := roleOf(t, frame, ItemID{popup.Switches, 'g'}, "--graph")
	if graph != RoleArgumentEnabled {
		t.Fatalf("expected enabled graph switch, got %v", graph)
	}
	decorate := roleOf(t, frame, ItemID{popup.Switches, 'd'}, "--decorate")
	if decorate != RoleArgument {
		t.Fatalf("expected disabled decorate switch, got %v", decorate)
	}
	limit := roleOf(t, frame, ItemID{popup.Options, 'n'}, "--max-count=")
	if limit != RoleArgument {
		t.Fatalf("expected empty option to render disabled, got %v", limit)
	}
	pos, _ := frame.Find(ItemID{popup.Options, 'n'})
	if text := frame.Cell(pos).Text(); text != "=n Limit (--max-count=)" {
		t.Fatalf("expected empty option without value suffix, got %q", text)
	}
}

func roleOf(t *testing.T, f Frame, id ItemID, text string) Role {
	t.Helper()
	pos, ok := f.Find(id)
	if !ok {
		t.Fatalf("item %s not rendered", id)
	}
	for _, seg := range f.Cell(pos).Segments {
		if seg.Text == text {
			return seg.Role
		}
	}
	t.Fatalf("segment %q not found in %s", text, id)
	return 0
}

func TestRenderWrapsActionsToWidth(t *testing.T) {
	frame := Render(logPopup(t), state.NewArgumentStore(), Options{Width: 30})
	plain := frame.Plain()
	tail := plain[len(plain)-2:]
	want := []string{
		"l Current       a All branches",
		"o Other",
	}
	if !reflect.DeepEqual(tail, want) {
		t.Fatalf("expected %q, got %q", want, tail)
	}
}

func TestRenderNarrowSurfaceNeverTruncates(t *testing.T) {
	def := logPopup(t)
	frame := Render(def, state.NewArgumentStore(), Options{Width: 3})
	for _, pos := range frame.Items {
		line := frame.Lines[pos.Line]
		if len(line.Cells) != 1 {
			t.Fatalf("expected one item per line, got %d on line %d", len(line.Cells), pos.Line)
		}
	}
	pos, _ := frame.Find(ItemID{popup.Actions, 'a'})
	if text := frame.Cell(pos).Text(); text != "a All branches" {
		t.Fatalf("expected untruncated item, got %q", text)
	}
}

func TestRenderSkipsEmptyCategories(t *testing.T) {
	def := popup.NewDefinition("bare")
	_ = def.Define(popup.Actions, popup.Entry{Trigger: 'x', Description: "Run"}, popup.Placement{})
	want := []string{"Actions", "x Run"}
	if got := Render(def, state.NewArgumentStore(), Options{}).Plain(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestSelectPrefersPreviousThenFirstAction(t *testing.T) {
	def := logPopup(t)
	frame := Render(def, state.NewArgumentStore(), Options{Width: 80})

	id, ok := Select(frame, ItemID{}, false)
	if !ok || id != (ItemID{popup.Actions, 'l'}) {
		t.Fatalf("expected first action, got %v", id)
	}
	prev := ItemID{popup.Switches, 'd'}
	if id, _ := Select(frame, prev, true); id != prev {
		t.Fatalf("expected previous selection kept, got %v", id)
	}

	_ = def.Remove(popup.Switches, 'd')
	frame = Render(def, state.NewArgumentStore(), Options{Width: 80})
	if id, _ := Select(frame, prev, true); id != (ItemID{popup.Actions, 'l'}) {
		t.Fatalf("expected fallback to first action, got %v", id)
	}
}

func TestSelectWithoutActionsFallsBackToFirstItem(t *testing.T) {
	def := popup.NewDefinition("flags")
	_ = def.Define(popup.Switches, popup.Entry{Trigger: 'f', Argument: "--force"}, popup.Placement{})
	frame := Render(def, state.NewArgumentStore(), Options{})
	if id, ok := Select(frame, ItemID{}, false); !ok || id != (ItemID{popup.Switches, 'f'}) {
		t.Fatalf("expected first switch, got %v %v", id, ok)
	}
	if _, ok := Select(Frame{}, ItemID{}, false); ok {
		t.Fatalf("expected no selection on an empty frame")
	}
}

func TestStepWraps(t *testing.T) {
	frame := Render(logPopup(t), state.NewArgumentStore(), Options{Width: 80})
	first := frame.Items[0].ID
	last := frame.Items[len(frame.Items)-1].ID
	if id, _ := Step(frame, last, 1); id != first {
		t.Fatalf("expected wrap to first item, got %v", id)
	}
	if id, _ := Step(frame, first, -1); id != last {
		t.Fatalf("expected wrap to last item, got %v", id)
	}
	if got := (ItemID{popup.Options, 'n'}).String(); got != "=n" {
		t.Fatalf("expected =n, got %q", got)
	}
}
