package commands

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// PopupPrefix marks commands that open another popup instead of running
// anything.
const PopupPrefix = "popup:"

// ErrUnknownCommand is returned when no handler is registered for a command.
var ErrUnknownCommand = errors.New("unknown command")

// Invocation is what an action hands to the command layer: the command
// identifier and the flattened argument tokens of the session that chose it.
type Invocation struct {
	Popup   string
	Command string
	Tokens  []string
}

// Handler runs one command.
type Handler func(ctx context.Context, inv Invocation) error

// Command is a registered handler plus its documentation.
type Command struct {
	ID string
	// Doc is markdown shown by the help lookup.
	Doc string
	Run Handler
}

// Layer is the surface the session talks to.
type Layer interface {
	Invoke(ctx context.Context, inv Invocation) error
	Describe(id string) (string, bool)
}

// Registry maps command identifiers to handlers.
type Registry struct {
	commands map[string]Command
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]Command)}
}

// Register adds cmd. Identifiers must be unique and handlers non-nil.
func (r *Registry) Register(cmd Command) error {
	id := strings.TrimSpace(cmd.ID)
	if id == "" {
		return fmt.Errorf("register command: empty id")
	}
	if cmd.Run == nil {
		return fmt.Errorf("register command %s: nil handler", id)
	}
	if _, exists := r.commands[id]; exists {
		return fmt.Errorf("register command %s: already registered", id)
	}
	cmd.ID = id
	r.commands[id] = cmd
	return nil
}

// Invoke runs the handler registered for inv.Command.
func (r *Registry) Invoke(ctx context.Context, inv Invocation) error {
	cmd, ok := r.commands[inv.Command]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCommand, inv.Command)
	}
	return cmd.Run(ctx, inv)
}

// Describe returns the documentation of a command.
func (r *Registry) Describe(id string) (string, bool) {
	if target, ok := PopupTarget(id); ok {
		return fmt.Sprintf("Opens the `%s` popup.", target), true
	}
	cmd, ok := r.commands[id]
	if !ok || cmd.Doc == "" {
		return "", false
	}
	return cmd.Doc, true
}

// IDs lists registered commands alphabetically.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.commands))
	for id := range r.commands {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// PopupTarget returns the popup a "popup:" command opens.
func PopupTarget(command string) (string, bool) {
	if !strings.HasPrefix(command, PopupPrefix) {
		return "", false
	}
	target := strings.TrimSpace(strings.TrimPrefix(command, PopupPrefix))
	return target, target != ""
}
