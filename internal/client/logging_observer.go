package client

import (
	"log"
)

// LoggingObserver is a simple observer that logs events
type LoggingObserver struct {
	logger *log.Logger
}

// NewLoggingObserver creates a new logging observer
func NewLoggingObserver(logger *log.Logger) *LoggingObserver {
	return &LoggingObserver{
		logger: logger,
	}
}

// OnEvent logs the event
func (o *LoggingObserver) OnEvent(event Event) {
	switch e := event.(type) {
	case *StatusEvent:
		o.logger.Printf("Event: type=%s, connected=%v, label=%q", e.GetType(), e.State.Connected, e.State.Label)
	case *ErrorEvent:
		o.logger.Printf("Event: type=%s, op=%s, error=%s", e.GetType(), e.Op, e.Error)
	default:
		o.logger.Printf("Event: type=%s", event.GetType())
	}
}

// StatusChangeObserver calls back whenever the connection state settles
type StatusChangeObserver struct {
	onStatusChange func(state State)
}

// NewStatusChangeObserver creates a new status change observer
func NewStatusChangeObserver(callback func(state State)) *StatusChangeObserver {
	return &StatusChangeObserver{
		onStatusChange: callback,
	}
}

// OnEvent handles the event
func (o *StatusChangeObserver) OnEvent(event Event) {
	if statusEvent, ok := event.(*StatusEvent); ok {
		o.onStatusChange(statusEvent.State)
	}
}
