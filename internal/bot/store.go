package bot

import "sync"

// PendingSession is a phase-1 meeting request waiting for its participants'
// email addresses.
type PendingSession struct {
	Topic string
	Names []string
	Date  string
	Time  string
}

// SessionStore maps user IDs to their single in-flight session. Put
// overwrites unconditionally (last-write-wins); Take removes and returns
// atomically. The store never outlives the process.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]PendingSession
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: map[string]PendingSession{}}
}

func (s *SessionStore) Put(userID string, sess PendingSession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[userID] = sess
}

func (s *SessionStore) Take(userID string) (PendingSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[userID]
	if ok {
		delete(s.sessions, userID)
	}
	return sess, ok
}

func (s *SessionStore) Contains(userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.sessions[userID]
	return ok
}
