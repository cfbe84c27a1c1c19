package app

import (
	"context"

	"github.com/atomicstack/argpopup/internal/commands"
	"github.com/atomicstack/argpopup/internal/logging/events"
)

// Bus receives the invocation of a finished session. Commands naming
// another popup are remembered for the caller instead of being run.
type Bus struct {
	layer commands.Layer
	next  string
}

// NewBus initialises a bus that runs commands through layer.
func NewBus(layer commands.Layer) *Bus {
	return &Bus{layer: layer}
}

// Invoke runs inv while emitting trace logs.
func (b *Bus) Invoke(ctx context.Context, inv commands.Invocation) error {
	if target, ok := commands.PopupTarget(inv.Command); ok {
		b.next = target
		return nil
	}
	events.Command.Queue(inv.Command, inv.Tokens)
	if b.layer == nil {
		events.Command.Skip(inv.Command)
		return nil
	}
	if err := b.layer.Invoke(ctx, inv); err != nil {
		events.Command.Error(inv.Command, err)
		return err
	}
	events.Command.Result(inv.Command, inv.Popup)
	return nil
}

// Next returns the popup to open once the current one is gone.
func (b *Bus) Next() (string, bool) {
	return b.next, b.next != ""
}
