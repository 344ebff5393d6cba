package main

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

var ErrUnknownCommand = errors.New("unknown command type")

// CommandRegistry maps a command-type identifier to the handler
// capable of validating and executing it. Safe for concurrent use.
type CommandRegistry struct {
	mu       sync.RWMutex
	handlers map[string]CommandHandler
}

// NewCommandRegistry provides an empty commands registry.
func NewCommandRegistry() *CommandRegistry {
	return &CommandRegistry{handlers: make(map[string]CommandHandler)}
}

// Register binds a command type to its handler. Registering the
// same command type twice is an error.
func (cr *CommandRegistry) Register(ctype string, handler CommandHandler) error {
	if len(ctype) == 0 {
		return errors.New("registry: empty command type")
	}
	if handler == nil {
		return fmt.Errorf("registry: nil handler for command type %q", ctype)
	}
	cr.mu.Lock()
	defer cr.mu.Unlock()
	if _, ok := cr.handlers[ctype]; ok {
		return fmt.Errorf("registry: command type %q already registered", ctype)
	}
	cr.handlers[ctype] = handler
	return nil
}

// Resolve returns the handler registered for the given command type.
func (cr *CommandRegistry) Resolve(ctype string) (CommandHandler, error) {
	cr.mu.RLock()
	defer cr.mu.RUnlock()
	handler, ok := cr.handlers[ctype]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, ctype)
	}
	return handler, nil
}

// Types returns the sorted list of registered command types.
func (cr *CommandRegistry) Types() []string {
	cr.mu.RLock()
	defer cr.mu.RUnlock()
	types := make([]string, 0, len(cr.handlers))
	for ctype := range cr.handlers {
		types = append(types, ctype)
	}
	sort.Strings(types)
	return types
}
