package commands

import "fmt"

// Registry maps command names and aliases to implementations. Commands
// register themselves at init time and the dispatcher only reads after
// that, so lookups need no locking.
type Registry struct {
	cmds map[string]Command
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{cmds: make(map[string]Command)}
}

// Register adds a command under its name and every alias. A collision
// on any of them is a programming error in the command set.
func (r *Registry) Register(c Command) error {
	names := append([]string{c.Name()}, c.Aliases()...)
	for _, name := range names {
		if _, taken := r.cmds[name]; taken {
			return fmt.Errorf("command name already registered: %s", name)
		}
	}
	for _, name := range names {
		r.cmds[name] = c
	}
	return nil
}

// Find looks up a command by name or alias.
func (r *Registry) Find(name string) (Command, bool) {
	c, ok := r.cmds[name]
	return c, ok
}

// DefaultRegistry is populated by the per-command init functions.
var DefaultRegistry = NewRegistry()

// Register adds a command to the default registry, panicking on collision.
func Register(c Command) {
	if err := DefaultRegistry.Register(c); err != nil {
		panic(err)
	}
}
