package llm

import (
	"fmt"
	"sort"
	"sync"
)

// ProviderFactory builds a provider from its own environment settings.
type ProviderFactory func() (Provider, error)

var (
	registryMu sync.RWMutex
	providers  = make(map[string]ProviderFactory)
)

// RegisterProvider makes a provider available by name. Registering the same
// name twice is a programming error and panics.
func RegisterProvider(name string, factory ProviderFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if factory == nil {
		panic("llm: RegisterProvider factory is nil for " + name)
	}
	if _, dup := providers[name]; dup {
		panic("llm: RegisterProvider called twice for " + name)
	}
	providers[name] = factory
}

// Providers lists the registered names in sorted order.
func Providers() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(providers))
	for name := range providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewProvider builds the named provider. A failed factory never yields a
// non-nil Provider.
func NewProvider(name string) (Provider, error) {
	registryMu.RLock()
	factory, exists := providers[name]
	registryMu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("unsupported provider %q, registered: %v", name, Providers())
	}
	provider, err := factory()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize provider %q: %w", name, err)
	}
	return provider, nil
}
