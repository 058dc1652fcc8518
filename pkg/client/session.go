package client

import (
	"sync"

	"gospelreach/internal/domain"
)

// SessionState is what subscribers see after every change.
type SessionState struct {
	Token string
	User  *domain.User // nil until the first signup, login or Me call
}

func (s SessionState) LoggedIn() bool { return s.Token != "" }

// Session holds the caller's credentials and notifies subscribers when they change.
type Session struct {
	mu     sync.RWMutex
	state  SessionState
	nextID int
	subs   map[int]func(SessionState)
}

func NewSession() *Session { return &Session{subs: map[int]func(SessionState){}} }

func (s *Session) State() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Session) Token() string { return s.State().Token }

func (s *Session) Set(token string, u *domain.User) {
	s.update(SessionState{Token: token, User: u})
}

func (s *Session) Clear() {
	if !s.State().LoggedIn() {
		return
	}
	s.update(SessionState{})
}

// Subscribe registers fn for future changes and returns the matching unsubscribe.
func (s *Session) Subscribe(fn func(SessionState)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
		})
	}
}

func (s *Session) update(st SessionState) {
	s.mu.Lock()
	s.state = st
	fns := make([]func(SessionState), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()
	// called outside the lock so subscribers may read the session or unsubscribe
	for _, fn := range fns {
		fn(st)
	}
}
