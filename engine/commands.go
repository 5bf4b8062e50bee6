package engine

// Commands buffers work that must run after all systems in a frame have
// executed, such as drawing overlays or replacing resources.
type Commands struct {
	defers []func()
}

func newCommands() *Commands {
	return &Commands{}
}

// Defer queues fn to run when the frame is flushed.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Len reports how many operations are queued.
func (c *Commands) Len() int {
	return len(c.defers)
}

// Flush runs queued operations in order and resets the buffer. Operations
// queued while flushing run in the same flush.
func (c *Commands) Flush() {
	for i := 0; i < len(c.defers); i++ {
		c.defers[i]()
	}
	clear(c.defers)
	c.defers = c.defers[:0]
}
