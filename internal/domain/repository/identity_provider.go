package repository

import (
	"context"

	"github.com/festify/festify-web/internal/domain/entity"
)

// AuthChangeEvent names a session transition reported by the identity provider.
type AuthChangeEvent string

const (
	EventSignedIn   AuthChangeEvent = "SIGNED_IN"
	EventSignedOut  AuthChangeEvent = "SIGNED_OUT"
	EventUserUpdate AuthChangeEvent = "USER_UPDATED"
)

// SessionListener receives session transitions. session is nil after sign-out.
type SessionListener func(event AuthChangeEvent, session *entity.Session)

type SignUpParams struct {
	Email      string
	Password   string
	Metadata   map[string]any
	RedirectTo string
}

// IdentityProvider is the external authentication SDK surface the application
// consumes.
type IdentityProvider interface {
	GetSession(ctx context.Context) (*entity.Session, error)
	// OnSessionChange registers fn and returns a function removing it.
	OnSessionChange(fn SessionListener) (unsubscribe func())
	SignUp(ctx context.Context, params SignUpParams) (*entity.AuthUser, *entity.Session, error)
	SignInWithPassword(ctx context.Context, email, password string) (*entity.Session, error)
	SignOut(ctx context.Context) error
}
