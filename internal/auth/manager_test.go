package auth

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/festify/festify-web/internal/domain/entity"
	"github.com/festify/festify-web/internal/domain/repository"
	"github.com/festify/festify-web/internal/infrastructure/backend"
)

type fakeProvider struct {
	mu         sync.Mutex
	session    *entity.Session
	listeners  map[int]repository.SessionListener
	next       int
	signUp     repository.SignUpParams
	signOutErr error
	signInErr  error
}

func newFakeProvider(s *entity.Session) *fakeProvider {
	return &fakeProvider{session: s, listeners: map[int]repository.SessionListener{}}
}

func (p *fakeProvider) GetSession(context.Context) (*entity.Session, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.session, nil
}

func (p *fakeProvider) OnSessionChange(fn repository.SessionListener) func() {
	p.mu.Lock()
	defer p.mu.Unlock()
	id := p.next
	p.next++
	p.listeners[id] = fn
	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		delete(p.listeners, id)
	}
}

func (p *fakeProvider) listenerCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.listeners)
}

func (p *fakeProvider) emit(ev repository.AuthChangeEvent, s *entity.Session) {
	p.mu.Lock()
	p.session = s
	fns := make([]repository.SessionListener, 0, len(p.listeners))
	for _, fn := range p.listeners {
		fns = append(fns, fn)
	}
	p.mu.Unlock()
	for _, fn := range fns {
		fn(ev, s)
	}
}

func (p *fakeProvider) SignUp(_ context.Context, params repository.SignUpParams) (*entity.AuthUser, *entity.Session, error) {
	p.mu.Lock()
	p.signUp = params
	p.mu.Unlock()
	u := &entity.AuthUser{ID: "new-user", Email: params.Email}
	if params.Email == "needs-confirm@college.edu" {
		return u, nil, nil
	}
	s := &entity.Session{AccessToken: "tok-new", User: *u}
	p.emit(repository.EventSignedIn, s)
	return u, s, nil
}

func (p *fakeProvider) SignInWithPassword(_ context.Context, email, _ string) (*entity.Session, error) {
	if p.signInErr != nil {
		return nil, p.signInErr
	}
	s := &entity.Session{AccessToken: "tok", User: entity.AuthUser{ID: "user-1", Email: email}}
	p.emit(repository.EventSignedIn, s)
	return s, nil
}

func (p *fakeProvider) SignOut(context.Context) error {
	p.emit(repository.EventSignedOut, nil)
	return p.signOutErr
}

type fakeProfiles struct {
	mu      sync.Mutex
	lookups map[string]int
	updates []map[string]any
	fail    map[string]error
	names   map[string]string
}

func newFakeProfiles() *fakeProfiles {
	return &fakeProfiles{lookups: map[string]int{}, fail: map[string]error{}, names: map[string]string{}}
}

func (f *fakeProfiles) GetByUserID(_ context.Context, userID string) (*entity.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lookups[userID]++
	if err := f.fail[userID]; err != nil {
		return nil, err
	}
	return &entity.Profile{ID: "profile-" + userID, UserID: userID, FullName: f.names[userID]}, nil
}

func (f *fakeProfiles) UpdateFields(_ context.Context, id string, fields map[string]any) (*entity.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates = append(f.updates, fields)
	if name, ok := fields["fullName"].(string); ok {
		f.names["user-1"] = name
	}
	return &entity.Profile{ID: id}, nil
}

func (f *fakeProfiles) lookupCount(userID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lookups[userID]
}

func isClosed(ch <-chan struct{}) bool {
	select {
	case <-ch:
		return true
	case <-time.After(10 * time.Millisecond):
		return false
	}
}

var session1 = &entity.Session{AccessToken: "tok", User: entity.AuthUser{ID: "user-1", Email: "a@college.edu"}}

func TestManager_StartWithoutSession(t *testing.T) {
	prov := newFakeProvider(nil)
	profiles := newFakeProfiles()
	m := NewManager(prov, profiles, "http://localhost:8080/", nil)
	if m.Snapshot().Status != StatusUnknown || !m.Loading() {
		t.Fatalf("fresh manager state = %v loading=%v", m.Snapshot().Status, m.Loading())
	}

	m.Start(context.Background())
	defer m.Close()

	if st := m.Snapshot(); st.Status != StatusLoggedOut || st.SignedIn() {
		t.Errorf("state = %+v", st)
	}
	if m.Loading() || !isClosed(m.Ready()) {
		t.Error("manager should be ready after finding no session")
	}
	if len(profiles.lookups) != 0 {
		t.Errorf("no profile lookup expected, got %v", profiles.lookups)
	}
}

func TestManager_StartLoadsProfile(t *testing.T) {
	prov := newFakeProvider(session1)
	profiles := newFakeProfiles()
	m := NewManager(prov, profiles, "", nil)
	m.Start(context.Background())
	defer m.Close()

	st := m.Snapshot()
	if st.Status != StatusProfileReady || st.Profile == nil || st.Profile.ID != "profile-user-1" {
		t.Fatalf("state = %+v", st)
	}
	if st.User.Email != "a@college.edu" || st.Session.AccessToken != "tok" {
		t.Errorf("session not mirrored: %+v", st)
	}
	if !isClosed(m.Ready()) {
		t.Error("ready should be closed after the first load")
	}
}

func TestManager_ProfileLoadFailureStillFinishesLoading(t *testing.T) {
	prov := newFakeProvider(session1)
	profiles := newFakeProfiles()
	profiles.fail["user-1"] = &backend.RequestError{Status: 404, Message: "not found"}
	m := NewManager(prov, profiles, "", nil)
	m.Start(context.Background())
	defer m.Close()

	st := m.Snapshot()
	if st.Status != StatusProfileLoadFailed || st.Profile != nil || st.User == nil {
		t.Errorf("state = %+v", st)
	}
	if m.Loading() {
		t.Error("loading should clear after a failed attempt")
	}
}

func TestManager_SessionChanges(t *testing.T) {
	prov := newFakeProvider(nil)
	profiles := newFakeProfiles()
	m := NewManager(prov, profiles, "", nil)
	m.Start(context.Background())

	other := &entity.Session{AccessToken: "tok2", User: entity.AuthUser{ID: "user-2"}}
	prov.emit(repository.EventSignedIn, other)
	if st := m.Snapshot(); st.Status != StatusProfileReady || st.Profile.UserID != "user-2" {
		t.Fatalf("after sign-in event: %+v", st)
	}

	prov.emit(repository.EventSignedOut, nil)
	if st := m.Snapshot(); st.Status != StatusLoggedOut || st.User != nil || st.Profile != nil || st.Session != nil {
		t.Fatalf("after sign-out event: %+v", st)
	}

	m.Close()
	m.Close()
	if n := prov.listenerCount(); n != 0 {
		t.Fatalf("listeners after close = %d", n)
	}
	prov.emit(repository.EventSignedIn, other)
	if st := m.Snapshot(); st.Status != StatusLoggedOut {
		t.Errorf("closed manager reacted to event: %+v", st)
	}
}

func TestManager_SignInLoadsProfileOnce(t *testing.T) {
	prov := newFakeProvider(nil)
	profiles := newFakeProfiles()
	m := NewManager(prov, profiles, "", nil)
	m.Start(context.Background())
	defer m.Close()

	if res := m.SignIn(context.Background(), " a@college.edu ", "pw"); res.Err != nil {
		t.Fatalf("SignIn: %v", res.Err)
	}
	if st := m.Snapshot(); st.Status != StatusProfileReady || st.User.Email != "a@college.edu" {
		t.Errorf("state = %+v", st)
	}
	if n := profiles.lookupCount("user-1"); n != 1 {
		t.Errorf("profile looked up %d times, want 1", n)
	}
}

func TestManager_SignInError(t *testing.T) {
	prov := newFakeProvider(nil)
	prov.signInErr = errors.New("Invalid login credentials")
	m := NewManager(prov, newFakeProfiles(), "", nil)
	m.Start(context.Background())
	defer m.Close()

	res := m.SignIn(context.Background(), "a@college.edu", "bad")
	if res.Err == nil || res.Err.Error() != "Invalid login credentials" {
		t.Fatalf("res = %+v", res)
	}
	if m.Snapshot().SignedIn() {
		t.Error("failed sign-in must not sign in")
	}
}

func TestManager_SignUp(t *testing.T) {
	prov := newFakeProvider(nil)
	profiles := newFakeProfiles()
	m := NewManager(prov, profiles, "http://localhost:8080/", nil)
	m.Start(context.Background())
	defer m.Close()

	res := m.SignUp(context.Background(), SignUpInput{
		Email: "org@college.edu", Password: "pw", FullName: "Org", Role: entity.RoleOrganizer,
		OrganizationName: "Robotics Club",
	})
	if res.Err != nil {
		t.Fatal(res.Err)
	}
	md := prov.signUp.Metadata
	if md["full_name"] != "Org" || md["role"] != "ORGANIZER" || md["organization_name"] != "Robotics Club" {
		t.Errorf("metadata = %v", md)
	}
	if _, ok := md["college_id"]; ok {
		t.Error("empty college id should be omitted")
	}
	if prov.signUp.RedirectTo != "http://localhost:8080/" {
		t.Errorf("redirect = %q", prov.signUp.RedirectTo)
	}
	if st := m.Snapshot(); st.Status != StatusProfileReady || st.Profile.UserID != "new-user" {
		t.Errorf("state = %+v", st)
	}

	m2 := NewManager(newFakeProvider(nil), profiles, "", nil)
	m2.Start(context.Background())
	defer m2.Close()
	if res := m2.SignUp(context.Background(), SignUpInput{Email: "needs-confirm@college.edu", Password: "pw"}); res.Err != nil {
		t.Fatal(res.Err)
	}
	if m2.Snapshot().SignedIn() {
		t.Error("sign-up awaiting confirmation must not sign in")
	}
}

func TestManager_SignOutSwallowsErrors(t *testing.T) {
	prov := newFakeProvider(session1)
	prov.signOutErr = errors.New("network down")
	m := NewManager(prov, newFakeProfiles(), "", nil)
	m.Start(context.Background())
	defer m.Close()

	m.SignOut(context.Background())
	if st := m.Snapshot(); st.Status != StatusLoggedOut || st.User != nil || st.Profile != nil {
		t.Errorf("state = %+v", st)
	}
}

func TestManager_UpdateProfileWithoutUser(t *testing.T) {
	profiles := newFakeProfiles()
	m := NewManager(newFakeProvider(nil), profiles, "", nil)

	res := m.UpdateProfile(context.Background(), ProfileUpdate{"full_name": "A"})
	if res.Err == nil || res.Err.Error() != "Not authenticated" {
		t.Fatalf("res = %+v", res)
	}
	if !errors.Is(res.Err, backend.ErrAuthRequired) {
		t.Error("error should be ErrAuthRequired")
	}
	if len(profiles.updates) != 0 || len(profiles.lookups) != 0 {
		t.Error("no backend call expected")
	}
}

func TestManager_UpdateProfileMapsFields(t *testing.T) {
	profiles := newFakeProfiles()
	m := NewManager(newFakeProvider(session1), profiles, "", nil)
	m.Start(context.Background())
	defer m.Close()

	res := m.UpdateProfile(context.Background(), ProfileUpdate{
		"full_name":  "Asha Rao",
		"avatar_url": "https://cdn.test/a.png",
		"college_id": "c1",
		"nickname":   "dropped",
	})
	if res.Err != nil {
		t.Fatal(res.Err)
	}
	if len(profiles.updates) != 1 {
		t.Fatalf("updates = %v", profiles.updates)
	}
	got := profiles.updates[0]
	want := map[string]any{"fullName": "Asha Rao", "avatarUrl": "https://cdn.test/a.png", "collegeId": "c1"}
	if len(got) != len(want) {
		t.Errorf("fields = %v, want %v", got, want)
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("fields[%s] = %v, want %v", k, got[k], v)
		}
	}
	if st := m.Snapshot(); st.Profile.FullName != "Asha Rao" {
		t.Errorf("profile not reloaded: %+v", st.Profile)
	}
	if n := profiles.lookupCount("user-1"); n != 2 {
		t.Errorf("lookups = %d, want initial load plus reload", n)
	}
}

func TestContextSessions(t *testing.T) {
	var src ContextSessions
	if s, err := src.GetSession(context.Background()); s != nil || err != nil {
		t.Errorf("bare context: %v, %v", s, err)
	}
	ctx := WithProvider(context.Background(), newFakeProvider(session1))
	s, err := src.GetSession(ctx)
	if err != nil || s == nil || s.AccessToken != "tok" {
		t.Errorf("session = %+v, %v", s, err)
	}
}
