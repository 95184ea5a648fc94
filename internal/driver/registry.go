package driver

import (
	"sync"

	"github.com/specialistvlad/gypcmake/internal/fault"
)

// registry remembers which short names each output unit has received in a
// platform pass. It is shared by concurrent passes.
type registry struct {
	mu    sync.Mutex
	units map[unitKey]map[string]string
}

type unitKey struct {
	platform string
	unit     string
}

func newRegistry() *registry {
	return &registry{units: make(map[unitKey]map[string]string)}
}

// claim records name for unit and fails with fault.NameCollision if another
// node already emitted it there in the same platform pass.
func (r *registry) claim(platform, unit, name, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := unitKey{platform: platform, unit: unit}
	names, ok := r.units[key]
	if !ok {
		names = make(map[string]string)
		r.units[key] = names
	}
	if prev, ok := names[name]; ok {
		return fault.Newf(fault.NameCollision, unit, "%q is emitted by both %s and %s on %s", name, prev, id, platform)
	}
	names[name] = id
	return nil
}
