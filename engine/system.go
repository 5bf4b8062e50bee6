// Package engine drives frame-based game loops. Systems run in registration
// order once per frame, share typed singleton resources, and queue deferred
// work that is flushed after every system has run.
package engine

// System is one step of a frame. Systems may declare Singleton fields, which
// the Scheduler initialises on registration, and keep their own state between frames.
type System interface {
	Execute(frame *UpdateFrame)
}

// SystemFunc adapts a plain function to the System interface.
type SystemFunc func(frame *UpdateFrame)

func (f SystemFunc) Execute(frame *UpdateFrame) {
	f(frame)
}
