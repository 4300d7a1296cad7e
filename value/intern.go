package value

import "sync"

// Key is an interned handle for a property, feature-state, or global-state
// name. Handles support O(1) equality and are stable for the life of the
// process: intern("foo") always returns the same Key.
type Key uint32

// Pre-interned keys every evaluation context needs to recognise without a
// map lookup.
var (
	KeyID   Key // "$id"
	KeyType Key // "$type"
	KeyZoom Key // "zoom"
)

// Interner assigns small integer handles to strings encountered during style
// parsing and tile decoding. It is append-only for the life of the process
// and safe for concurrent use from the worker pool (style parsing and tile
// decoding may run on different goroutines).
type Interner struct {
	mu      sync.RWMutex
	byName  map[string]Key
	byIndex []string
}

// global is the process-wide interner. Property keys are compared across
// style documents and tiles loaded independently, so a single shared table
// is required for handle equality to mean anything.
var global = NewInterner()

func init() {
	KeyID = global.Intern("$id")
	KeyType = global.Intern("$type")
	KeyZoom = global.Intern("zoom")
}

// NewInterner creates an empty interner. Most callers should use the
// package-level Intern/Lookup functions against the shared global table;
// NewInterner exists for isolated tests.
func NewInterner() *Interner {
	return &Interner{
		byName: make(map[string]Key, 64),
	}
}

// Intern returns the handle for name, assigning a new one if name has not
// been seen before.
func (in *Interner) Intern(name string) Key {
	in.mu.RLock()
	if k, ok := in.byName[name]; ok {
		in.mu.RUnlock()
		return k
	}
	in.mu.RUnlock()

	in.mu.Lock()
	defer in.mu.Unlock()
	if k, ok := in.byName[name]; ok {
		return k
	}
	k := Key(len(in.byIndex))
	in.byIndex = append(in.byIndex, name)
	in.byName[name] = k
	return k
}

// Lookup returns the handle for name without assigning a new one.
func (in *Interner) Lookup(name string) (Key, bool) {
	in.mu.RLock()
	defer in.mu.RUnlock()
	k, ok := in.byName[name]
	return k, ok
}

// Name returns the original string for a handle. Panics if k was never
// interned by this table (a programmer error: handles from one interner
// must never be mixed into another).
func (in *Interner) Name(k Key) string {
	in.mu.RLock()
	defer in.mu.RUnlock()
	return in.byIndex[k]
}

// Len reports the number of interned strings.
func (in *Interner) Len() int {
	in.mu.RLock()
	defer in.mu.RUnlock()
	return len(in.byIndex)
}

// Intern interns name in the process-wide interner.
func Intern(name string) Key { return global.Intern(name) }

// Lookup looks up name in the process-wide interner.
func Lookup(name string) (Key, bool) { return global.Lookup(name) }

// Name returns the original string for a handle from the process-wide interner.
func Name(k Key) string { return global.Name(k) }
