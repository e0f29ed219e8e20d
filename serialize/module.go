// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package serialize

// ModuleHook is an external component's serialization contract
// (spec.md §4.12 "Module hooks"): a name, a serializer, a
// deserializer, and a state-hash function. The engine neither
// interprets nor validates a module's payload; it only prefixes it
// with the module's name and version on write and dispatches by name
// on read.
type ModuleHook struct {
	Name        string
	Version     uint32
	Serialize   func() ([]byte, error)
	Deserialize func([]byte) error
	StateHash   func() uint64
}

// ModuleRegistry holds the external modules registered against one
// engine instance, in registration order (spec.md's "invoked ...  in
// registration order").
type ModuleRegistry struct {
	hooks []ModuleHook
	byName map[string]int
}

// NewModuleRegistry returns an empty registry.
func NewModuleRegistry() *ModuleRegistry {
	return &ModuleRegistry{byName: make(map[string]int)}
}

// Register adds or replaces the hook for hook.Name.
func (r *ModuleRegistry) Register(hook ModuleHook) {
	if i, exists := r.byName[hook.Name]; exists {
		r.hooks[i] = hook
		return
	}
	r.byName[hook.Name] = len(r.hooks)
	r.hooks = append(r.hooks, hook)
}

// Hooks returns every registered hook in registration order.
func (r *ModuleRegistry) Hooks() []ModuleHook {
	return r.hooks
}

// Lookup returns the hook registered under name, if any.
func (r *ModuleRegistry) Lookup(name string) (ModuleHook, bool) {
	i, ok := r.byName[name]
	if !ok {
		return ModuleHook{}, false
	}
	return r.hooks[i], true
}

type moduleBlob struct {
	Name    string
	Version uint32
	Payload []byte
}
