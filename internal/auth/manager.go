// Package auth mirrors the identity provider's session into application state
// and layers the Festify profile on top of it.
package auth

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/festify/festify-web/internal/domain/entity"
	"github.com/festify/festify-web/internal/domain/repository"
	"github.com/festify/festify-web/internal/infrastructure/backend"
)

// ErrNoProfile is returned by UpdateProfile when a user is signed in but their
// profile has not loaded.
var ErrNoProfile = errors.New("profile not loaded")

type Status int

const (
	StatusUnknown Status = iota
	StatusLoggedOut
	StatusProfileLoading
	StatusProfileReady
	StatusProfileLoadFailed
)

func (s Status) String() string {
	switch s {
	case StatusLoggedOut:
		return "logged_out"
	case StatusProfileLoading:
		return "profile_loading"
	case StatusProfileReady:
		return "profile_ready"
	case StatusProfileLoadFailed:
		return "profile_load_failed"
	default:
		return "unknown"
	}
}

// State is a point-in-time copy of the manager's view.
type State struct {
	Status  Status
	User    *entity.AuthUser
	Session *entity.Session
	Profile *entity.Profile
}

// SignedIn reports whether a user is present.
func (s State) SignedIn() bool { return s.User != nil }

// Result carries the outcome of a mutating call. Callers check Err.
type Result struct {
	Err error
}

type SignUpInput struct {
	Email            string
	Password         string
	FullName         string
	Role             entity.Role
	OrganizationName string
	CollegeID        string
}

// ProfileUpdate is keyed by form field names (full_name, avatar_url, ...).
type ProfileUpdate map[string]any

// profileFields maps form field names to backend profile keys. Names missing
// here are dropped.
var profileFields = map[string]string{
	"full_name":         "fullName",
	"email":             "email",
	"role":              "role",
	"college_id":        "collegeId",
	"organization_name": "organizationName",
	"phone":             "phone",
	"bio":               "bio",
	"website":           "website",
	"avatar_url":        "avatarUrl",
}

// Manager tracks one session. Start subscribes to the provider and Close
// releases the subscription.
type Manager struct {
	provider    repository.IdentityProvider
	profiles    repository.ProfileRepository
	redirectURL string
	logger      *logrus.Logger

	mu          sync.Mutex
	ctx         context.Context
	state       State
	loaded      bool
	ready       chan struct{}
	seq         int
	unsubscribe func()
}

// NewManager builds a manager. redirectURL is sent with sign-ups as the
// confirmation landing page.
func NewManager(provider repository.IdentityProvider, profiles repository.ProfileRepository, redirectURL string, logger *logrus.Logger) *Manager {
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	return &Manager{
		provider:    provider,
		profiles:    profiles,
		redirectURL: redirectURL,
		logger:      logger,
		ctx:         context.Background(),
		ready:       make(chan struct{}),
	}
}

// Start reads the current session once, subscribes to session changes and,
// when a session exists, loads its profile. ctx is also used for loads
// triggered by later session changes.
func (m *Manager) Start(ctx context.Context) {
	m.mu.Lock()
	m.ctx = ctx
	m.mu.Unlock()

	session, err := m.provider.GetSession(ctx)
	if err != nil {
		m.logger.WithError(err).Warn("get session failed")
		session = nil
	}

	unsubscribe := m.provider.OnSessionChange(m.onSessionChange)
	m.mu.Lock()
	m.unsubscribe = unsubscribe
	m.mu.Unlock()

	if session == nil {
		m.clear()
		return
	}
	m.load(ctx, session)
}

// Close removes the session-change subscription. It is safe to call twice.
func (m *Manager) Close() {
	m.mu.Lock()
	unsubscribe := m.unsubscribe
	m.unsubscribe = nil
	m.mu.Unlock()
	if unsubscribe != nil {
		unsubscribe()
	}
}

// Ready is closed once the first profile load attempt has finished, or
// immediately after Start finds no session.
func (m *Manager) Ready() <-chan struct{} { return m.ready }

// Loading reports whether the first profile load is still outstanding.
func (m *Manager) Loading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return !m.loaded
}

func (m *Manager) Snapshot() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Manager) onSessionChange(event repository.AuthChangeEvent, session *entity.Session) {
	m.logger.WithField("event", string(event)).Debug("session changed")
	if session == nil {
		m.clear()
		return
	}
	m.mu.Lock()
	ctx := m.ctx
	m.mu.Unlock()
	m.load(ctx, session)
}

// load adopts session and fetches its profile. A newer load supersedes an
// older one still in flight.
func (m *Manager) load(ctx context.Context, session *entity.Session) {
	user := session.User
	m.mu.Lock()
	m.seq++
	seq := m.seq
	m.state = State{Status: StatusProfileLoading, User: &user, Session: session}
	m.mu.Unlock()

	profile, err := m.profiles.GetByUserID(ctx, user.ID)

	m.mu.Lock()
	defer m.mu.Unlock()
	if seq != m.seq {
		return
	}
	if err != nil {
		m.logger.WithError(err).WithField("user_id", user.ID).Warn("load profile failed")
		m.state.Profile = nil
		m.state.Status = StatusProfileLoadFailed
	} else {
		m.state.Profile = profile
		m.state.Status = StatusProfileReady
	}
	m.markLoadedLocked()
}

func (m *Manager) clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	m.state = State{Status: StatusLoggedOut}
	m.markLoadedLocked()
}

func (m *Manager) markLoadedLocked() {
	if !m.loaded {
		m.loaded = true
		close(m.ready)
	}
}

// loadIfStale loads the profile for session unless a load for the same user
// already ran, e.g. from the provider's own change notification.
func (m *Manager) loadIfStale(ctx context.Context, session *entity.Session) {
	m.mu.Lock()
	st := m.state
	m.mu.Unlock()
	if st.User != nil && st.User.ID == session.User.ID && st.Status != StatusProfileLoading && st.Status != StatusUnknown {
		return
	}
	m.load(ctx, session)
}

// SignUp creates the account with the profile fields as user metadata. The
// profile is loaded when the provider returns a session straight away.
func (m *Manager) SignUp(ctx context.Context, in SignUpInput) Result {
	metadata := map[string]any{
		"full_name": in.FullName,
		"role":      string(in.Role),
	}
	if in.OrganizationName != "" {
		metadata["organization_name"] = in.OrganizationName
	}
	if in.CollegeID != "" {
		metadata["college_id"] = in.CollegeID
	}
	_, session, err := m.provider.SignUp(ctx, repository.SignUpParams{
		Email:      strings.TrimSpace(in.Email),
		Password:   in.Password,
		Metadata:   metadata,
		RedirectTo: m.redirectURL,
	})
	if err != nil {
		return Result{Err: err}
	}
	if session != nil {
		m.loadIfStale(ctx, session)
	}
	return Result{}
}

func (m *Manager) SignIn(ctx context.Context, email, password string) Result {
	session, err := m.provider.SignInWithPassword(ctx, strings.TrimSpace(email), password)
	if err != nil {
		return Result{Err: err}
	}
	m.loadIfStale(ctx, session)
	return Result{}
}

// SignOut ends the session. Provider errors are logged, never returned.
func (m *Manager) SignOut(ctx context.Context) {
	if err := m.provider.SignOut(ctx); err != nil {
		m.logger.WithError(err).Warn("sign out failed")
	}
	m.clear()
}

// UpdateProfile sends the mapped fields to the backend and reloads the
// profile. Without a signed-in user it fails with backend.ErrAuthRequired and
// makes no call.
func (m *Manager) UpdateProfile(ctx context.Context, upd ProfileUpdate) Result {
	st := m.Snapshot()
	if st.User == nil {
		return Result{Err: backend.ErrAuthRequired}
	}
	if st.Profile == nil {
		return Result{Err: ErrNoProfile}
	}

	fields := make(map[string]any, len(upd))
	for k, v := range upd {
		key, ok := profileFields[k]
		if !ok {
			m.logger.WithField("field", k).Debug("ignoring unknown profile field")
			continue
		}
		fields[key] = v
	}
	if _, err := m.profiles.UpdateFields(ctx, st.Profile.ID, fields); err != nil {
		return Result{Err: err}
	}
	if st.Session != nil {
		m.load(ctx, st.Session)
	}
	return Result{}
}
