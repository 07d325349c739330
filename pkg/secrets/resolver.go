package secrets

import (
	"context"

	"go.uber.org/zap"
)

// Resolver turns raw reference strings from configuration into plaintext by
// parsing them, dispatching to the registered engine, and validating before
// decryption.
type Resolver struct {
	logger   *zap.Logger
	registry *Registry
}

// NewResolver constructs a Resolver over the given registry.
func NewResolver(logger *zap.Logger, registry *Registry) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{logger: logger, registry: registry}
}

// Decrypt resolves a legacy encrypted:/encryptedFile: reference string to its
// plaintext bytes. Values that are not references are returned as-is so
// callers can pass mixed configuration through unconditionally.
func (r *Resolver) Decrypt(ctx context.Context, raw string) ([]byte, error) {
	if !IsEncryptedSecret(raw) {
		return []byte(raw), nil
	}

	ref, err := ParseEncryptedSecret(raw)
	if err != nil {
		return nil, err
	}

	engine, err := r.registry.Lookup(ref.EngineIdentifier)
	if err != nil {
		return nil, err
	}
	if err := engine.Validate(ref); err != nil {
		return nil, err
	}

	plaintext, err := engine.Decrypt(ctx, ref)
	if err != nil {
		r.logger.Warn("secrets.decrypt_failed",
			zap.String("engine", ref.EngineIdentifier),
			zap.Error(err))
		return nil, err
	}
	return plaintext, nil
}

// DecryptUserSecret resolves a secret:// reference string to a UserSecret.
func (r *Resolver) DecryptUserSecret(ctx context.Context, raw string) (UserSecret, error) {
	ref, err := ParseUserSecretReference(raw)
	if err != nil {
		return nil, err
	}

	engine, err := r.registry.Lookup(ref.EngineIdentifier)
	if err != nil {
		return nil, err
	}

	secret, err := engine.DecryptUserSecret(ctx, ref)
	if err != nil {
		r.logger.Warn("secrets.user_secret_decrypt_failed",
			zap.String("engine", ref.EngineIdentifier),
			zap.Error(err))
		return nil, err
	}
	return secret, nil
}

// ClearCaches drops all engine caches, forcing fresh fetches on next access.
func (r *Resolver) ClearCaches() {
	r.registry.ClearCaches()
	r.logger.Info("secrets.caches_cleared")
}
