// Package duelguard tracks duels in flight so that one inline message thread
// never runs two duels at once and a user's pending threads stay visible.
//
// The guard holds two structures:
//
//   - a global set of thread ids that currently have a duel running;
//   - a per-owner list of thread ids, each list behind its own mutex.
//
// The outer owner map is read under an RWMutex and never held while waiting
// on a per-owner mutex. Entries are created lazily and dropped once the
// owner's list becomes empty. Nothing here survives a process restart.
package duelguard

import (
	"errors"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
	"github.com/rs/zerolog/log"
)

var (
	// ErrThreadBusy is returned when the thread already has a duel in flight.
	ErrThreadBusy = errors.New("duel already pending in this thread")

	// ErrDuplicateThread means the owner's list already holds the thread while
	// the global set did not. It points at a bookkeeping bug, not a user error.
	ErrDuplicateThread = errors.New("thread already registered for owner")
)

// ThreadID hashes an inline message id into a thread identifier.
func ThreadID(inlineMessageID string) uint64 {
	return xxhash.Sum64String(inlineMessageID)
}

type ownerThreads struct {
	mu      sync.Mutex
	threads []uint64
	// dead is set once the entry was unlinked from the owner map; holders
	// must look the owner up again.
	dead bool
}

// Guard is safe for concurrent use. The zero value is not usable; call New.
type Guard struct {
	mu     sync.RWMutex
	owners map[uint64]*ownerThreads

	inflight sync.Map // thread id -> struct{}
	count    atomic.Int64
}

// New returns an empty Guard.
func New() *Guard {
	return &Guard{owners: make(map[uint64]*ownerThreads)}
}

// Slot is a claimed duel thread. Release must be called exactly when the duel
// is over, whatever the outcome; extra calls are no-ops.
type Slot struct {
	g        *Guard
	threadID uint64
	ownerID  uint64
	once     sync.Once
}

// ThreadID returns the thread this slot holds.
func (s *Slot) ThreadID() uint64 { return s.threadID }

// OwnerID returns the owner that claimed the slot.
func (s *Slot) OwnerID() uint64 { return s.ownerID }

// Start claims threadID for ownerID. It never blocks waiting for another duel:
// a busy thread is rejected immediately with ErrThreadBusy.
func (g *Guard) Start(threadID, ownerID uint64) (*Slot, error) {
	if _, loaded := g.inflight.LoadOrStore(threadID, struct{}{}); loaded {
		log.Warn().
			Uint64("thread_id", threadID).
			Uint64("owner_id", ownerID).
			Msg("duel already pending in thread")
		return nil, ErrThreadBusy
	}

	e := g.lockOwner(ownerID)
	if slices.Contains(e.threads, threadID) {
		e.mu.Unlock()
		g.inflight.Delete(threadID)
		log.Error().
			Uint64("thread_id", threadID).
			Uint64("owner_id", ownerID).
			Msg("duel thread already registered for owner")
		return nil, ErrDuplicateThread
	}
	e.threads = append(e.threads, threadID)
	e.mu.Unlock()

	g.count.Add(1)
	return &Slot{g: g, threadID: threadID, ownerID: ownerID}, nil
}

// Release frees the slot. It is safe to call from a defer and more than once.
func (s *Slot) Release() {
	if s == nil {
		return
	}
	s.once.Do(func() {
		s.g.release(s.threadID, s.ownerID)
	})
}

func (g *Guard) release(threadID, ownerID uint64) {
	g.mu.RLock()
	e := g.owners[ownerID]
	g.mu.RUnlock()

	if e != nil {
		e.mu.Lock()
		e.threads = slices.DeleteFunc(e.threads, func(id uint64) bool { return id == threadID })
		empty := len(e.threads) == 0
		e.mu.Unlock()

		if empty {
			g.mu.Lock()
			e.mu.Lock()
			if len(e.threads) == 0 && !e.dead && g.owners[ownerID] == e {
				e.dead = true
				delete(g.owners, ownerID)
			}
			e.mu.Unlock()
			g.mu.Unlock()
		}
	}

	g.inflight.Delete(threadID)
	g.count.Add(-1)
}

// lockOwner returns the owner's entry with its mutex held, creating it if
// needed. The outer lock is released before the entry mutex is taken.
func (g *Guard) lockOwner(ownerID uint64) *ownerThreads {
	for {
		g.mu.RLock()
		e := g.owners[ownerID]
		g.mu.RUnlock()

		if e == nil {
			g.mu.Lock()
			e = g.owners[ownerID]
			if e == nil {
				e = &ownerThreads{}
				g.owners[ownerID] = e
			}
			g.mu.Unlock()
		}

		e.mu.Lock()
		if !e.dead {
			return e
		}
		e.mu.Unlock()
	}
}

// InFlight returns the number of claimed, unreleased slots.
func (g *Guard) InFlight() int {
	return int(g.count.Load())
}

// Busy reports whether threadID currently has a duel in flight.
func (g *Guard) Busy(threadID uint64) bool {
	_, ok := g.inflight.Load(threadID)
	return ok
}

// Threads returns a copy of the thread ids held by ownerID.
func (g *Guard) Threads(ownerID uint64) []uint64 {
	g.mu.RLock()
	e := g.owners[ownerID]
	g.mu.RUnlock()
	if e == nil {
		return nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return slices.Clone(e.threads)
}
