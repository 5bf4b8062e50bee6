package engine

import (
	"context"
	"reflect"
	"time"
)

// SystemTiming is the running execution record of one registered system.
type SystemTiming struct {
	Name  string
	Runs  int64
	Last  time.Duration
	Min   time.Duration
	Max   time.Duration
	Total time.Duration
}

// Avg is the mean run time, 0 before the first run.
func (t SystemTiming) Avg() time.Duration {
	if t.Runs == 0 {
		return 0
	}
	return t.Total / time.Duration(t.Runs)
}

func (t *SystemTiming) record(d time.Duration) {
	if t.Runs == 0 || d < t.Min {
		t.Min = d
	}
	t.Max = max(t.Max, d)
	t.Last = d
	t.Total += d
	t.Runs++
}

// binder is implemented by *Singleton[T].
type binder interface {
	Init(*Resources)
}

type entry struct {
	system System
	timing SystemTiming
}

// Scheduler runs its systems in registration order, once per frame.
type Scheduler struct {
	resources *Resources
	entries   []*entry
	frames    uint64
}

func NewScheduler(resources *Resources) *Scheduler {
	return &Scheduler{resources: resources}
}

func (s *Scheduler) Resources() *Resources {
	return s.resources
}

// Register appends system and binds every Singleton field it declares to
// the scheduler's resources.
func (s *Scheduler) Register(system System) {
	s.bind(system)
	s.entries = append(s.entries, &entry{
		system: system,
		timing: SystemTiming{Name: systemName(system)},
	})
}

func (s *Scheduler) bind(system System) {
	v := reflect.ValueOf(system)
	if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Struct {
		return
	}
	v = v.Elem()
	for i := range v.NumField() {
		field := v.Field(i)
		if !field.CanSet() {
			continue
		}
		if b, ok := field.Addr().Interface().(binder); ok {
			b.Init(s.resources)
		}
	}
}

func systemName(system System) string {
	t := reflect.TypeOf(system)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Name() == "" {
		return t.String()
	}
	return t.Name()
}

// Once runs every system with the given frame time, then flushes the
// commands they queued.
func (s *Scheduler) Once(dt time.Duration) {
	s.frames++
	frame := &UpdateFrame{
		Number:    s.frames,
		DeltaTime: dt,
		Commands:  newCommands(),
		Resources: s.resources,
	}

	for _, e := range s.entries {
		start := time.Now()
		e.system.Execute(frame)
		e.timing.record(time.Since(start))
	}
	frame.Commands.Flush()
}

// Run calls Once on every tick of interval, passing the measured time
// between ticks, until ctx is done.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.Once(now.Sub(last))
			last = now
		}
	}
}

// Frames is the number of completed Once calls.
func (s *Scheduler) Frames() uint64 {
	return s.frames
}

// Timings returns a copy of each system's execution record, in
// registration order.
func (s *Scheduler) Timings() []SystemTiming {
	out := make([]SystemTiming, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.timing
	}
	return out
}
