package workflow

// Event is the interface for all workflow events.
// UI handles events via type switch.
type Event interface {
	isEvent()
}

// TextEvent is emitted when the model replies with plain text.
type TextEvent struct {
	Text string
}

func (TextEvent) isEvent() {}

// ThinkingEvent is emitted before each model call.
type ThinkingEvent struct{}

func (ThinkingEvent) isEvent() {}

// ProposalEvent is emitted when a proposal is held for confirmation.
type ProposalEvent struct {
	Proposal string // compact JSON
}

func (ProposalEvent) isEvent() {}

// ToolStartEvent is emitted when a tool dispatch begins.
type ToolStartEvent struct {
	ToolName       string
	RequestDisplay string
	DryRun         bool
}

func (ToolStartEvent) isEvent() {}

// ToolEndEvent carries the result text of a dispatch.
type ToolEndEvent struct {
	ToolName string
	Result   string
}

func (ToolEndEvent) isEvent() {}

// NoticeEvent is an informational line for the operator, such as a
// refused command.
type NoticeEvent struct {
	Text string
}

func (NoticeEvent) isEvent() {}

// ErrorEvent reports a failure that does not end the session.
type ErrorEvent struct {
	Err error
}

func (ErrorEvent) isEvent() {}

// DoneEvent is emitted when a headless run finishes.
type DoneEvent struct {
	Summary string
}

func (DoneEvent) isEvent() {}

// Sink receives workflow events. Implementations render them synchronously
// so output stays ordered with the prompt.
type Sink interface {
	Emit(ev Event)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ev Event)

func (f SinkFunc) Emit(ev Event) { f(ev) }

// Discard drops every event.
var Discard Sink = SinkFunc(func(Event) {})
