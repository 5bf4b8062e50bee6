package engine

import (
	"reflect"
	"sort"

	"github.com/kamstrup/intmap"
)

// Resources holds one value per type, shared by every system of a scheduler.
// Each type gets a sequential id on first use; values live in an intmap by id.
type Resources struct {
	ids     map[reflect.Type]uint32
	entries *intmap.Map[uint32, *resourceEntry]
}

type resourceEntry struct {
	typ reflect.Type
	ptr any // *T
}

// ResourceStats describes what a Resources registry holds.
type ResourceStats struct {
	Count int
	Types []string
}

func NewResources() *Resources {
	return &Resources{
		ids:     make(map[reflect.Type]uint32),
		entries: intmap.New[uint32, *resourceEntry](16),
	}
}

// id returns the id of t, assigning the next one when t is new.
func (r *Resources) id(t reflect.Type) uint32 {
	if id, ok := r.ids[t]; ok {
		return id
	}
	id := uint32(len(r.ids) + 1)
	r.ids[t] = id
	return id
}

func (r *Resources) entry(t reflect.Type) *resourceEntry {
	id, ok := r.ids[t]
	if !ok {
		return nil
	}
	e, _ := r.entries.Get(id)
	return e
}

// Add stores value as the resource of its type, replacing any previous value.
// Pointers are dereferenced so the registry always owns its copy.
func (r *Resources) Add(value any) {
	v := reflect.ValueOf(value)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	t := v.Type()

	if e := r.entry(t); e != nil {
		reflect.ValueOf(e.ptr).Elem().Set(v)
		return
	}

	ptr := reflect.New(t)
	ptr.Elem().Set(v)
	r.entries.Put(r.id(t), &resourceEntry{typ: t, ptr: ptr.Interface()})
}

// Read points target (a **T) at the stored resource of type T. It reports
// false when no such resource exists.
func (r *Resources) Read(target any) bool {
	tv := reflect.ValueOf(target)
	if tv.Kind() != reflect.Ptr || tv.Elem().Kind() != reflect.Ptr {
		panic("engine: Read target must be a pointer to a pointer")
	}
	e := r.entry(tv.Elem().Type().Elem())
	if e == nil {
		return false
	}
	tv.Elem().Set(reflect.ValueOf(e.ptr))
	return true
}

func (r *Resources) Stats() ResourceStats {
	stats := ResourceStats{Count: r.entries.Len()}
	r.entries.ForEach(func(_ uint32, e *resourceEntry) bool {
		stats.Types = append(stats.Types, e.typ.String())
		return true
	})
	sort.Strings(stats.Types)
	return stats
}

// Singleton is a typed handle to a resource. Declare it as a field on a
// System and the Scheduler wires it during Register.
type Singleton[T any] struct {
	resources *Resources
	ptr       *T
}

// NewSingleton returns a handle to the T resource, creating it from
// initializer (or the zero value) when it does not exist yet.
func NewSingleton[T any](resources *Resources, initializer ...T) *Singleton[T] {
	t := reflect.TypeFor[T]()
	if resources.entry(t) == nil {
		var value T
		if len(initializer) > 0 {
			value = initializer[0]
		}
		resources.Add(&value)
	}

	s := &Singleton[T]{}
	s.Init(resources)
	return s
}

// Init binds the handle to a registry. Called by the Scheduler.
func (s *Singleton[T]) Init(resources *Resources) {
	s.resources = resources
	s.updateCache()
}

// Get returns the resource, or nil if it has not been added.
func (s *Singleton[T]) Get() *T {
	if s.ptr == nil {
		s.updateCache()
	}
	return s.ptr
}

// Exists reports whether the resource has been added.
func (s *Singleton[T]) Exists() bool {
	return s.Get() != nil
}

func (s *Singleton[T]) updateCache() {
	if s.resources == nil {
		return
	}
	if e := s.resources.entry(reflect.TypeFor[T]()); e != nil {
		s.ptr = e.ptr.(*T)
	} else {
		s.ptr = nil
	}
}
