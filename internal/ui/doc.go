// Package ui contains the Bubble Tea program that shows one popup session.
// The Model type only orchestrates messages; the session package owns the
// popup's state and decides what every key does.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages.
//   - While an option prompt or a help page is open, Update hands the message
//     to it first (forms.go). Otherwise the message is routed through a typed
//     handler registry so each tea.Msg is handled by a focused function.
//   - Key presses are passed to session.Session.HandleKey by name. The
//     returned outcome decides what the model does next: open the option
//     prompt, show an action's documentation, open the popup's manual, or
//     quit the program.
//
// Teardown:
//   - Quitting and dispatching an action both end the Bubble Tea program.
//     The model never runs the chosen command itself. The caller finishes
//     the session after the program exits so the surrounding view is
//     restored before the command starts.
//
// Rendering:
//   - View asks the session for a render.Frame sized to the terminal and
//     styles each segment by its role using the theme package. Item lines are
//     never truncated; status and prompt lines are.
package ui
