package client

// Observer is the interface for event observers
type Observer interface {
	OnEvent(event Event)
}

// ObserverFunc is a function that implements the Observer interface
type ObserverFunc func(event Event)

// OnEvent calls the observer function
func (f ObserverFunc) OnEvent(event Event) {
	f(event)
}
