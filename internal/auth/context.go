package auth

import (
	"context"

	"github.com/festify/festify-web/internal/domain/entity"
	"github.com/festify/festify-web/internal/domain/repository"
)

type providerKey struct{}

// WithProvider attaches the request's identity provider to ctx.
func WithProvider(ctx context.Context, p repository.IdentityProvider) context.Context {
	return context.WithValue(ctx, providerKey{}, p)
}

// ProviderFrom returns the provider attached by WithProvider.
func ProviderFrom(ctx context.Context) (repository.IdentityProvider, bool) {
	p, ok := ctx.Value(providerKey{}).(repository.IdentityProvider)
	return p, ok && p != nil
}

// ContextSessions resolves the session of whichever provider the request
// context carries. It lets one shared backend client serve every request.
type ContextSessions struct{}

func (ContextSessions) GetSession(ctx context.Context) (*entity.Session, error) {
	p, ok := ProviderFrom(ctx)
	if !ok {
		return nil, nil
	}
	return p.GetSession(ctx)
}
