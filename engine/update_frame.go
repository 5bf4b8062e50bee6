package engine

import "time"

// UpdateFrame is passed to every system during one scheduler pass.
type UpdateFrame struct {
	// Number counts passes of the scheduler, starting at 1.
	Number    uint64
	DeltaTime time.Duration
	Commands  *Commands
	Resources *Resources
}

// Seconds is DeltaTime as a float, for systems doing continuous motion.
func (f *UpdateFrame) Seconds() float64 {
	return f.DeltaTime.Seconds()
}
