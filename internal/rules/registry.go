package rules

import (
	"fmt"
	"sync"
)

var (
	registry []Check
	byName   = make(map[string]Check)
	mu       sync.RWMutex
)

// Register adds a category check. Registration order is the fixed
// evaluation order; duplicate names are a programming error.
func Register(c Check) {
	mu.Lock()
	defer mu.Unlock()
	if _, exists := byName[c.Name()]; exists {
		panic(fmt.Sprintf("category %s already registered", c.Name()))
	}
	byName[c.Name()] = c
	registry = append(registry, c)
}

// List returns all registered categories in declared order.
func List() []Check {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]Check, len(registry))
	copy(out, registry)
	return out
}

// Lookup returns a category by name.
func Lookup(name string) (Check, bool) {
	mu.RLock()
	defer mu.RUnlock()
	c, ok := byName[name]
	return c, ok
}
