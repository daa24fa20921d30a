package web

import (
	"sync"
	"time"

	"github.com/zombor/smart-pantry/internal/pantry"
	"github.com/zombor/smart-pantry/internal/recipe"
	"github.com/zombor/smart-pantry/internal/scanning"
)

// Session is one browser's pantry and recipe conversation. Callers hold the
// session lock for the duration of an interaction.
type Session struct {
	mu sync.Mutex

	ID          string
	Store       *pantry.Store
	Reporter    *pantry.ExpiryReporter
	Staged      *pantry.Batch
	Preferences recipe.Preferences
	Chat        *recipe.Conversation
	lastSeen    time.Time
}

// Lock serializes interactions on the session
func (s *Session) Lock() {
	s.mu.Lock()
}

// Unlock releases the session
func (s *Session) Unlock() {
	s.mu.Unlock()
}

// Sessions tracks live sessions by ID
type Sessions struct {
	mu        sync.Mutex
	sessions  map[string]*Session
	generator scanning.TextGenerator
	ids       pantry.IDGenerator
	clock     pantry.Clock
	idleTTL   time.Duration
}

// NewSessions creates an empty session registry. Sessions idle for longer
// than idleTTL are dropped by Prune; zero keeps them forever.
func NewSessions(generator scanning.TextGenerator, ids pantry.IDGenerator, clock pantry.Clock, idleTTL time.Duration) *Sessions {
	return &Sessions{
		sessions:  make(map[string]*Session),
		generator: generator,
		ids:       ids,
		clock:     clock,
		idleTTL:   idleTTL,
	}
}

// Get returns the session for id, creating a new one when id is unknown.
// created reports whether a new session was made.
func (r *Sessions) Get(id string) (session *Session, created bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.clock.Now()
	if session, ok := r.sessions[id]; ok && id != "" {
		session.lastSeen = now
		return session, false
	}

	store := pantry.NewStore()
	session = &Session{
		ID:          r.ids.Generate(),
		Store:       store,
		Reporter:    pantry.NewExpiryReporter(store, r.clock),
		Preferences: recipe.DefaultPreferences(),
		Chat:        recipe.NewConversation(r.generator, ""),
		lastSeen:    now,
	}
	r.sessions[session.ID] = session
	return session, true
}

// Prune drops sessions idle for longer than the TTL and returns them
func (r *Sessions) Prune() []*Session {
	if r.idleTTL <= 0 {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.clock.Now().Add(-r.idleTTL)
	var pruned []*Session
	for id, session := range r.sessions {
		if session.lastSeen.Before(cutoff) {
			delete(r.sessions, id)
			pruned = append(pruned, session)
		}
	}
	return pruned
}

// Len returns the number of live sessions
func (r *Sessions) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
