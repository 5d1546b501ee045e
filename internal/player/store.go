package player

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

var ErrInvalidPlayerID = errors.New("invalid player id")

// session serializes writers of one player record. refs counts callers
// holding it and is guarded by Store.mu.
type session struct {
	mu   sync.Mutex
	p    *Player
	refs int
}

// Store is an in-memory session cache of player records. Mutations of one
// player are serialized; different players proceed in parallel. Records idle
// for ttl, or pushed out when the cache is full, are evicted. A record in use
// is never replaced: every access refreshes its ttl, and sessions held by a
// caller stay reachable through inUse even if the LRU drops them.
type Store struct {
	mu           sync.Mutex
	lru          *expirable.LRU[string, *session]
	inUse        map[string]*session
	startingGold int64
	now          func() time.Time
}

// NewStore creates a store holding at most size players.
func NewStore(size int, ttl time.Duration, startingGold int64) *Store {
	return &Store{
		lru:          expirable.NewLRU[string, *session](size, nil, ttl),
		inUse:        map[string]*session{},
		startingGold: startingGold,
		now:          time.Now,
	}
}

// acquire pins the session for id, creating the player on first use.
// Callers must release it.
func (s *Store) acquire(id string) (string, *session, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", nil, ErrInvalidPlayerID
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.inUse[id]
	if !ok {
		sess, ok = s.lru.Get(id)
	}
	if !ok {
		sess = &session{p: New(id, s.startingGold)}
	}
	sess.refs++
	s.inUse[id] = sess
	// Add, unlike Get, resets the entry's ttl.
	s.lru.Add(id, sess)
	return id, sess, nil
}

func (s *Store) release(id string, sess *session) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess.refs--
	if sess.refs == 0 {
		delete(s.inUse, id)
	}
	s.lru.Add(id, sess)
}

// Get returns a copy of the player, creating it on first use.
func (s *Store) Get(id string) (*Player, error) {
	id, sess, err := s.acquire(id)
	if err != nil {
		return nil, err
	}
	defer s.release(id, sess)

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.p.Clone(), nil
}

// Update runs fn on a working copy of the player and commits it only when fn
// returns nil. The committed copy is returned.
func (s *Store) Update(id string, fn func(p *Player) error) (*Player, error) {
	id, sess, err := s.acquire(id)
	if err != nil {
		return nil, err
	}
	defer s.release(id, sess)

	sess.mu.Lock()
	defer sess.mu.Unlock()

	work := sess.p.Clone()
	if err := fn(work); err != nil {
		return nil, err
	}
	work.UpdatedAt = s.now()
	sess.p = work
	return work.Clone(), nil
}

// Len reports how many players are cached.
func (s *Store) Len() int {
	return s.lru.Len()
}
