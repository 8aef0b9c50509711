// Package httpenv serves the reinforcement-learning environment over HTTP so
// agents written in any language can train against the engine.
package httpenv

import (
	"errors"
	"sync"
	"time"

	"github.com/vovakirdan/noodle/internal/config"
	"github.com/vovakirdan/noodle/internal/engine"
	"github.com/vovakirdan/noodle/internal/env"
)

// DefaultMaxSessions bounds the number of live environments.
const DefaultMaxSessions = 256

var (
	ErrSessionNotFound = errors.New("session not found, reset it first")
	ErrTooManySessions = errors.New("too many sessions")
)

// session is one environment behind its own lock, so different sessions
// step in parallel while one session's requests serialize.
type session struct {
	mu  sync.Mutex
	env *env.Env
}

// Sessions maps session IDs to environments.
type Sessions struct {
	cfg config.SnakeConfig
	max int

	mu    sync.Mutex
	items map[string]*session
}

// NewSessions creates an empty session table. Environments are created
// with cfg on their first reset.
func NewSessions(cfg config.SnakeConfig, maxSessions int) *Sessions {
	if maxSessions <= 0 {
		maxSessions = DefaultMaxSessions
	}
	return &Sessions{
		cfg:   cfg,
		max:   maxSessions,
		items: make(map[string]*session),
	}
}

// reset starts a new episode in session id, creating the environment when
// the session is new or a seed is given. The first observation and metrics
// are read under the session lock, so a concurrent step cannot slip in
// before them.
func (s *Sessions) reset(id string, seed *int64) (env.Observation, engine.Metrics, error) {
	s.mu.Lock()
	sess, ok := s.items[id]
	if !ok && len(s.items) >= s.max {
		s.mu.Unlock()
		return nil, engine.Metrics{}, ErrTooManySessions
	}
	if !ok {
		sess = &session{}
		s.items[id] = sess
	}
	s.mu.Unlock()

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.env != nil && seed == nil {
		obs := sess.env.Reset()
		return obs, sess.env.Metrics(), nil
	}

	seedValue := time.Now().UnixNano()
	if seed != nil {
		seedValue = *seed
	}
	e, err := env.New(s.cfg, engine.WithSeed(seedValue))
	if err != nil {
		if sess.env == nil {
			s.Close(id)
		}
		return nil, engine.Metrics{}, err
	}
	sess.env = e
	return e.Observation(), e.Metrics(), nil
}

// get returns an existing session.
func (s *Sessions) get(id string) (*session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.items[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// Close drops a session. It reports whether the session existed.
func (s *Sessions) Close(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.items[id]
	delete(s.items, id)
	return ok
}

// Len returns the number of live sessions.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}
