package client

// Event is the interface for all events
type Event interface {
	GetType() string
	GetData() interface{}
}

// BaseEvent is the base implementation of Event
type BaseEvent struct {
	Type string
	Data interface{}
}

// GetType returns the event type
func (e *BaseEvent) GetType() string {
	return e.Type
}

// GetData returns the event data
func (e *BaseEvent) GetData() interface{} {
	return e.Data
}

// Event types
const (
	EventTypeStatus = "status"
	EventTypeError  = "error"
)

// StatusEvent is dispatched every time an operation settles the connection state
type StatusEvent struct {
	BaseEvent
	State State
}

// NewStatusEvent creates a new status event
func NewStatusEvent(state State) *StatusEvent {
	return &StatusEvent{
		BaseEvent: BaseEvent{
			Type: EventTypeStatus,
			Data: state,
		},
		State: state,
	}
}

// ErrorEvent reports a failed network operation
type ErrorEvent struct {
	BaseEvent
	Op    string
	Error string
}

// NewErrorEvent creates a new error event
func NewErrorEvent(op string, err error) *ErrorEvent {
	return &ErrorEvent{
		BaseEvent: BaseEvent{
			Type: EventTypeError,
			Data: err,
		},
		Op:    op,
		Error: err.Error(),
	}
}
