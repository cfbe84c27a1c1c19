package events

import "github.com/atomicstack/argpopup/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) Chain(from, to string) {
	logging.Trace("app.chain", map[string]interface{}{"from": from, "to": to})
}

func (AppTracer) Exit(popup string, err error) {
	payload := map[string]interface{}{"popup": popup}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("app.exit", payload)
}
