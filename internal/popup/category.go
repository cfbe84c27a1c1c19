package popup

import "fmt"

// Category identifies one of the three entry collections of a popup.
type Category int

const (
	Switches Category = iota
	Options
	Actions
)

// Categories lists every category in render order.
var Categories = []Category{Switches, Options, Actions}

// Valid reports whether c names a known collection.
func (c Category) Valid() bool {
	return c >= Switches && c <= Actions
}

func (c Category) String() string {
	if !c.Valid() {
		return fmt.Sprintf("category(%d)", int(c))
	}
	return descriptors[c].Name
}

// EffectKind names what a trigger does once pressed.
type EffectKind int

const (
	EffectToggle EffectKind = iota + 1
	EffectPrompt
	EffectInvoke
)

// Descriptor captures everything that differs between categories: how a
// trigger is spelled, how an entry is formatted, how it is laid out and what
// pressing it does.
type Descriptor struct {
	Category Category
	Name     string
	Heading  string
	// Prefix is typed before the trigger. Zero means no prefix.
	Prefix rune
	// SingleColumn forces every entry onto its own line.
	SingleColumn bool
	// ShowArgument appends the argument identifier after the description.
	ShowArgument bool
	// ShowValue appends the recorded option value to the argument.
	ShowValue bool
	Effect    EffectKind
}

var descriptors = [...]Descriptor{
	Switches: {
		Category:     Switches,
		Name:         "switches",
		Heading:      "Switches",
		Prefix:       '-',
		SingleColumn: true,
		ShowArgument: true,
		Effect:       EffectToggle,
	},
	Options: {
		Category:     Options,
		Name:         "options",
		Heading:      "Options",
		Prefix:       '=',
		SingleColumn: true,
		ShowArgument: true,
		ShowValue:    true,
		Effect:       EffectPrompt,
	},
	Actions: {
		Category: Actions,
		Name:     "actions",
		Heading:  "Actions",
		Effect:   EffectInvoke,
	},
}

// Describe returns the descriptor for c.
func Describe(c Category) (Descriptor, error) {
	if !c.Valid() {
		return Descriptor{}, fmt.Errorf("%w: %d", ErrUnknownCategory, int(c))
	}
	return descriptors[c], nil
}

// MustDescribe is Describe for categories known to be valid.
func MustDescribe(c Category) Descriptor {
	d, err := Describe(c)
	if err != nil {
		panic(err)
	}
	return d
}

// Glyph is the key sequence that activates trigger within this category.
func (d Descriptor) Glyph(trigger rune) string {
	if d.Prefix == 0 {
		return string(trigger)
	}
	return string([]rune{d.Prefix, trigger})
}

// ParseCategory maps a collection name to its Category.
func ParseCategory(name string) (Category, error) {
	for _, d := range descriptors {
		if d.Name == name {
			return d.Category, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, name)
}
