package events

import "github.com/atomicstack/argpopup/internal/logging"

type UITracer struct{}

type ArgumentTracer struct{}

type HelpTracer struct{}

type CommandTracer struct{}

type promptReason string

const (
	PromptReasonEscape promptReason = "escape"
	PromptReasonReader promptReason = "reader"
)

var (
	UI       = UITracer{}
	Argument = ArgumentTracer{}
	Help     = HelpTracer{}
	Command  = CommandTracer{}
)

func (UITracer) Cursor(popup, item string) {
	logging.Trace("popup.cursor", map[string]interface{}{"popup": popup, "item": item})
}

func (UITracer) Render(popup string, width, lines int) {
	logging.Trace("popup.render", map[string]interface{}{"popup": popup, "width": width, "lines": lines})
}

func (ArgumentTracer) Toggle(argument string, value bool) {
	logging.Trace("argument.toggle", map[string]interface{}{"argument": argument, "value": value})
}

func (ArgumentTracer) Set(argument, value string) {
	logging.Trace("argument.set", map[string]interface{}{"argument": argument, "value": value})
}

func (ArgumentTracer) Clear(argument string) {
	logging.Trace("argument.clear", map[string]interface{}{"argument": argument})
}

func (ArgumentTracer) Prompt(argument string) {
	logging.Trace("argument.prompt", map[string]interface{}{"argument": argument})
}

func (ArgumentTracer) CancelPrompt(argument string, reason promptReason) {
	logging.Trace("argument.prompt.cancel", map[string]interface{}{"argument": argument, "reason": string(reason)})
}

func (HelpTracer) Lookup(popup, target string) {
	logging.Trace("help.lookup", map[string]interface{}{"popup": popup, "target": target})
}

func (HelpTracer) Miss(popup, target string, err error) {
	payload := map[string]interface{}{"popup": popup, "target": target}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("help.miss", payload)
}

func (HelpTracer) Resource(popup, resource string) {
	logging.Trace("help.resource", map[string]interface{}{"popup": popup, "resource": resource})
}

func (HelpTracer) Cancel(popup, key string) {
	logging.Trace("help.cancel", map[string]interface{}{"popup": popup, "key": key})
}

func (CommandTracer) Queue(command string, tokens []string) {
	logging.Trace("command.queue", map[string]interface{}{"command": command, "tokens": tokens})
}

func (CommandTracer) Skip(command string) {
	logging.Trace("command.skip", map[string]interface{}{"command": command})
}

func (CommandTracer) Error(command string, err error) {
	if err == nil {
		return
	}
	logging.Trace("command.error", map[string]interface{}{"command": command, "error": err.Error()})
}

func (CommandTracer) Result(command, info string) {
	logging.Trace("command.result", map[string]interface{}{"command": command, "info": info})
}
