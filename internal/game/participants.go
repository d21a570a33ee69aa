package game

import (
	"sync"
	"time"
)

// Conn is the live connection handle of a participant. The websocket layer
// implements it; tests use an in-memory fake. Send must never block the
// caller: a full or closed connection reports an error and the message is
// dropped.
type Conn interface {
	Send(v interface{}) error
}

// Participant is a connected player known to the server.
type Participant struct {
	ID       string
	Username string
	conn     Conn
	LastSeen time.Time
}

// ParticipantRegistry maps stable participant ids to their live connection
// and liveness timestamp. It owns the handles; room memberships only hold
// ids.
type ParticipantRegistry struct {
	mu      sync.RWMutex
	players map[string]*Participant
	now     func() time.Time
}

func NewParticipantRegistry() *ParticipantRegistry {
	return &ParticipantRegistry{
		players: make(map[string]*Participant),
		now:     time.Now,
	}
}

// Register creates or replaces the live record for id. Re-registering with a
// fresh connection silently supersedes a stale handle.
func (r *ParticipantRegistry) Register(id, username string, conn Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.players[id] = &Participant{
		ID:       id,
		Username: username,
		conn:     conn,
		LastSeen: r.now(),
	}
}

// Touch refreshes the liveness timestamp.
func (r *ParticipantRegistry) Touch(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.players[id]; ok {
		p.LastSeen = r.now()
	}
}

// HandleOf returns the current connection handle, or nil if the participant
// is unknown.
func (r *ParticipantRegistry) HandleOf(id string) Conn {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if p, ok := r.players[id]; ok {
		return p.conn
	}
	return nil
}

// Get returns the participant record, or nil.
func (r *ParticipantRegistry) Get(id string) *Participant {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.players[id]
}

// Forget removes the record. Safe to call for unknown ids.
func (r *ParticipantRegistry) Forget(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.players, id)
}

// ForgetIfHandle removes the record only when conn is still the registered
// handle. A stale connection closing after a re-register is a no-op; reports
// whether the record was removed.
func (r *ParticipantRegistry) ForgetIfHandle(id string, conn Conn) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.players[id]
	if !ok || p.conn != conn {
		return false
	}
	delete(r.players, id)
	return true
}

// Stale returns the ids of participants whose last-liveness timestamp is
// older than timeout. Used by the periodic sweep.
func (r *ParticipantRegistry) Stale(timeout time.Duration) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cutoff := r.now().Add(-timeout)
	var ids []string
	for id, p := range r.players {
		if p.LastSeen.Before(cutoff) {
			ids = append(ids, id)
		}
	}
	return ids
}

// Count reports the number of connected participants.
func (r *ParticipantRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.players)
}
