package events

import "github.com/atomicstack/argpopup/internal/logging"

type SessionTracer struct{}

type sessionReason string

const (
	SessionReasonQuit     sessionReason = "quit"
	SessionReasonDispatch sessionReason = "dispatch"
)

var Session = SessionTracer{}

func (SessionTracer) Open(id, popup string) {
	logging.Trace("session.open", map[string]interface{}{"session": id, "popup": popup})
}

func (SessionTracer) Close(id, popup string, reason sessionReason) {
	logging.Trace("session.close", map[string]interface{}{"session": id, "popup": popup, "reason": string(reason)})
}

func (SessionTracer) Dispatch(id, command string, tokens []string) {
	logging.Trace("session.dispatch", map[string]interface{}{"session": id, "command": command, "tokens": tokens})
}

func (SessionTracer) Key(id, key string, bound bool) {
	logging.Trace("session.key", map[string]interface{}{"session": id, "key": key, "bound": bound})
}

func (SessionTracer) RestoreError(id string, err error) {
	if err == nil {
		return
	}
	logging.Trace("session.restore.error", map[string]interface{}{"session": id, "error": err.Error()})
}
