package events

import "github.com/atomicstack/argpopup/internal/logging"

type PopupTracer struct{}

var Popup = PopupTracer{}

func (PopupTracer) Register(name string, switches, options, actions int) {
	logging.Trace("popup.register", map[string]interface{}{
		"popup":    name,
		"switches": switches,
		"options":  options,
		"actions":  actions,
	})
}

func (PopupTracer) Define(name, category, trigger string) {
	logging.Trace("popup.define", map[string]interface{}{"popup": name, "category": category, "trigger": trigger})
}

func (PopupTracer) Rename(name, category, from, to string) {
	logging.Trace("popup.rename", map[string]interface{}{"popup": name, "category": category, "from": from, "to": to})
}

func (PopupTracer) Remove(name, category, trigger string) {
	logging.Trace("popup.remove", map[string]interface{}{"popup": name, "category": category, "trigger": trigger})
}

func (PopupTracer) Shadowed(name, keys string) {
	logging.Trace("popup.keymap.shadowed", map[string]interface{}{"popup": name, "keys": keys})
}

func (PopupTracer) Keymap(name string, revision uint64, bindings int) {
	logging.Trace("popup.keymap.build", map[string]interface{}{"popup": name, "revision": revision, "bindings": bindings})
}
