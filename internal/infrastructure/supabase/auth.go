package supabase

import (
	"context"
	"sync"

	"github.com/festify/festify-web/internal/domain/entity"
	"github.com/festify/festify-web/internal/domain/repository"
)

// Auth holds one session and notifies listeners when it changes, the way the
// browser SDK does for a single tab.
type Auth struct {
	client *Client

	mu        sync.Mutex
	session   *entity.Session
	listeners map[int]repository.SessionListener
	nextID    int
}

var _ repository.IdentityProvider = (*Auth)(nil)

// NewAuth starts from initial, which may be nil.
func (c *Client) NewAuth(initial *entity.Session) *Auth {
	return &Auth{client: c, session: initial, listeners: map[int]repository.SessionListener{}}
}

func (a *Auth) GetSession(context.Context) (*entity.Session, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.session == nil {
		return nil, nil
	}
	s := *a.session
	return &s, nil
}

func (a *Auth) OnSessionChange(fn repository.SessionListener) func() {
	a.mu.Lock()
	id := a.nextID
	a.nextID++
	a.listeners[id] = fn
	a.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			a.mu.Lock()
			delete(a.listeners, id)
			a.mu.Unlock()
		})
	}
}

// Listeners reports the number of active subscriptions.
func (a *Auth) Listeners() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.listeners)
}

func (a *Auth) SignUp(ctx context.Context, params repository.SignUpParams) (*entity.AuthUser, *entity.Session, error) {
	user, session, err := a.client.SignUp(ctx, params)
	if err != nil {
		return nil, nil, err
	}
	if session != nil {
		a.set(repository.EventSignedIn, session)
	}
	return user, session, nil
}

func (a *Auth) SignInWithPassword(ctx context.Context, email, password string) (*entity.Session, error) {
	session, err := a.client.SignInWithPassword(ctx, email, password)
	if err != nil {
		return nil, err
	}
	a.set(repository.EventSignedIn, session)
	return session, nil
}

// SignOut revokes the session remotely and always drops it locally.
func (a *Auth) SignOut(ctx context.Context) error {
	a.mu.Lock()
	current := a.session
	a.mu.Unlock()

	var err error
	if current != nil && current.AccessToken != "" {
		err = a.client.SignOut(ctx, current.AccessToken)
	}
	a.set(repository.EventSignedOut, nil)
	return err
}

func (a *Auth) set(event repository.AuthChangeEvent, s *entity.Session) {
	a.mu.Lock()
	a.session = s
	fns := make([]repository.SessionListener, 0, len(a.listeners))
	for _, fn := range a.listeners {
		fns = append(fns, fn)
	}
	a.mu.Unlock()

	for _, fn := range fns {
		var cp *entity.Session
		if s != nil {
			c := *s
			cp = &c
		}
		fn(event, cp)
	}
}
