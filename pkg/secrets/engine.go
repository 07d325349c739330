package secrets

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Engine decrypts secret references for one storage backend. Implementations
// are registered under a stable identifier and dispatched by the Resolver.
//
// Implementations must be safe for concurrent use and must not log secret
// values.
type Engine interface {
	// Identifier returns the backend name referenced by encoded secrets,
	// e.g. "secrets-manager".
	Identifier() string

	// Decrypt resolves a legacy encrypted-parameter reference to raw bytes.
	// Callers are expected to Validate the reference first.
	Decrypt(ctx context.Context, ref EncryptedSecret) ([]byte, error)

	// DecryptUserSecret resolves a structured reference to a UserSecret.
	// The reference is validated internally.
	DecryptUserSecret(ctx context.Context, ref UserSecretReference) (UserSecret, error)

	// Validate checks that the reference carries the parameters this engine
	// requires. Returns a *FormatError on violation.
	Validate(ref EncryptedSecret) error

	// ValidateUserSecret is the structured-reference counterpart of Validate.
	ValidateUserSecret(ref UserSecretReference) error

	// ClearCache drops any payloads the engine has memoized.
	ClearCache()
}

// Registry maps engine identifiers to registered engines.
type Registry struct {
	mu      sync.RWMutex
	engines map[string]Engine
}

// NewRegistry creates an empty engine registry.
func NewRegistry() *Registry {
	return &Registry{engines: make(map[string]Engine)}
}

// Register adds an engine under its identifier. Registering the same
// identifier twice is an error.
func (r *Registry) Register(e Engine) error {
	if e == nil || e.Identifier() == "" {
		return fmt.Errorf("invalid engine registration")
	}
	id := e.Identifier()

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.engines[id]; exists {
		return fmt.Errorf("secret engine %q already registered", id)
	}
	r.engines[id] = e
	return nil
}

// Lookup returns the engine registered under id.
func (r *Registry) Lookup(id string) (Engine, error) {
	r.mu.RLock()
	e, ok := r.engines[id]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("secret engine %q is not registered", id)
	}
	return e, nil
}

// Identifiers returns the registered engine names, sorted.
func (r *Registry) Identifiers() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.engines))
	for id := range r.engines {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ClearCaches drops the memoized state of every registered engine.
func (r *Registry) ClearCaches() {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, e := range r.engines {
		e.ClearCache()
	}
}
