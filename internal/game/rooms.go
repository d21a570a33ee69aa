package game

import (
	"crypto/rand"
	"encoding/binary"
	"sync"
	"time"
)

// Variant tags the two supported games.
type Variant string

const (
	VariantCodenamez Variant = "codenamez"
	VariantScopa     Variant = "scopa"
)

// GameState is the common contract of the two engines. Variant-specific
// operations live on the concrete types; callers type-assert after routing
// by action tag.
type GameState interface {
	Variant() Variant
	Phase() string
	View() interface{}
}

// Membership is a participant's seat in a room: a display-name snapshot plus
// the chosen role. Role and Team stay empty until picked. Within a room at
// most one membership holds a given role.
type Membership struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role,omitempty"`
	Team     string `json:"team,omitempty"`
}

// Room is one isolated game session. The mutex serializes every action that
// touches the room's state, which makes each game transition atomic with
// respect to the other members.
type Room struct {
	mu sync.Mutex

	Code      string
	CreatorID string
	GameType  Variant
	Members   map[string]*Membership
	Game      GameState
	CreatedAt time.Time

	joinOrder []string
}

func (r *Room) Lock()   { r.mu.Lock() }
func (r *Room) Unlock() { r.mu.Unlock() }

// AssignRole sets the member's role, replacing any role they already held.
// Fails with Conflict if another member holds the requested role.
func (r *Room) AssignRole(participantID, role string) error {
	team := TeamOf(role)
	if team == "" {
		return ErrInvalidRole
	}
	m, ok := r.Members[participantID]
	if !ok {
		return ErrPlayerNotFound
	}
	for id, other := range r.Members {
		if id != participantID && other.Role == role {
			return ErrRoleOccupied
		}
	}
	m.Role = role
	m.Team = team
	return nil
}

// MemberList returns the memberships in join order.
func (r *Room) MemberList() []*Membership {
	out := make([]*Membership, 0, len(r.Members))
	for _, id := range r.joinOrder {
		if m, ok := r.Members[id]; ok {
			out = append(out, m)
		}
	}
	return out
}

// JoinOrder returns the member ids in join order; the scopa turn order.
func (r *Room) JoinOrder() []string {
	out := make([]string, 0, len(r.joinOrder))
	for _, id := range r.joinOrder {
		if _, ok := r.Members[id]; ok {
			out = append(out, id)
		}
	}
	return out
}

// RoomView is the state snapshot broadcast to members. Field names match the
// client.
type RoomView struct {
	Code      string                 `json:"code"`
	CreatorID string                 `json:"creator_id"`
	GameType  Variant                `json:"game_type"`
	Players   map[string]*Membership `json:"players"`
	GameState interface{}            `json:"gameState"`
}

// View builds the snapshot. Call with the room locked.
func (r *Room) View() *RoomView {
	players := make(map[string]*Membership, len(r.Members))
	for id, m := range r.Members {
		copy := *m
		players[id] = &copy
	}
	return &RoomView{
		Code:      r.Code,
		CreatorID: r.CreatorID,
		GameType:  r.GameType,
		Players:   players,
		GameState: r.Game.View(),
	}
}

// RoomSummary is the lobby listing entry served over REST.
type RoomSummary struct {
	Code      string    `json:"code"`
	GameType  Variant   `json:"game_type"`
	Players   int       `json:"players"`
	Phase     string    `json:"phase"`
	CreatedAt time.Time `json:"created_at"`
}

// EngineFactory builds a fresh GameState for a variant. The registry uses it
// at creation and reset time so game configuration stays out of this file.
type EngineFactory func(v Variant) GameState

// RoomRegistry owns the room lifecycle: creation under a unique code,
// membership, and destruction as soon as the last member leaves.
type RoomRegistry struct {
	mu       sync.RWMutex
	rooms    map[string]*Room
	byMember map[string]string
	codeLen  int
	engines  EngineFactory
	now      func() time.Time
}

func NewRoomRegistry(codeLen int, engines EngineFactory) *RoomRegistry {
	if codeLen <= 0 {
		codeLen = 6
	}
	return &RoomRegistry{
		rooms:    make(map[string]*Room),
		byMember: make(map[string]string),
		codeLen:  codeLen,
		engines:  engines,
		now:      time.Now,
	}
}

// codeAlphabet avoids the easily confused 0/O and 1/I.
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

func randomCode(n int) string {
	buf := make([]byte, n)
	raw := make([]byte, 8)
	for i := range buf {
		_, _ = rand.Read(raw)
		buf[i] = codeAlphabet[binary.BigEndian.Uint64(raw)%uint64(len(codeAlphabet))]
	}
	return string(buf)
}

// CreateRoom opens a room for the creator, who joins immediately. The code
// is regenerated on the unlikely collision with a live room.
func (r *RoomRegistry) CreateRoom(creatorID, username string, v Variant) (*Room, error) {
	if v != VariantCodenamez && v != VariantScopa {
		return nil, errorf(ErrInvalidGameType, "unknown game type %q", v)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	code := randomCode(r.codeLen)
	for _, taken := r.rooms[code]; taken; _, taken = r.rooms[code] {
		code = randomCode(r.codeLen)
	}

	if prev, ok := r.byMember[creatorID]; ok {
		r.removeMember(prev, creatorID)
	}

	room := &Room{
		Code:      code,
		CreatorID: creatorID,
		GameType:  v,
		Members:   map[string]*Membership{creatorID: {ID: creatorID, Username: username}},
		Game:      r.engines(v),
		CreatedAt: r.now(),
		joinOrder: []string{creatorID},
	}
	r.rooms[code] = room
	r.byMember[creatorID] = code
	return room, nil
}

// JoinRoom adds a participant to the room with the given code. A scopa game
// already past the lobby cannot be joined.
func (r *RoomRegistry) JoinRoom(code, participantID, username string) (*Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[code]
	if !ok {
		return nil, ErrRoomNotFound
	}
	room.Lock()
	if room.GameType == VariantScopa && room.Game.Phase() != ScopaPhaseLobby {
		room.Unlock()
		return nil, ErrRoomNotJoinable
	}
	if _, already := room.Members[participantID]; !already {
		room.Members[participantID] = &Membership{ID: participantID, Username: username}
		room.joinOrder = append(room.joinOrder, participantID)
	}
	room.Unlock()
	// Only a successful join pulls the participant out of their previous room.
	if prev, ok := r.byMember[participantID]; ok && prev != code {
		r.removeMember(prev, participantID)
	}
	r.byMember[participantID] = code
	return room, nil
}

// LeaveRoom removes the membership. The second result is true when the room
// was destroyed because it became empty; otherwise the returned room is
// still live and the caller should broadcast its new state.
func (r *RoomRegistry) LeaveRoom(participantID string) (*Room, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	code, ok := r.byMember[participantID]
	if !ok {
		return nil, false, ErrNotInRoom
	}
	room := r.rooms[code]
	destroyed := r.removeMember(code, participantID)
	return room, destroyed, nil
}

// removeMember must be called with the registry lock held; it takes the room
// lock itself so membership reads under either lock stay consistent. Returns
// true if the room was destroyed.
func (r *RoomRegistry) removeMember(code, participantID string) bool {
	room, ok := r.rooms[code]
	if !ok {
		delete(r.byMember, participantID)
		return false
	}
	room.Lock()
	delete(room.Members, participantID)
	empty := len(room.Members) == 0
	room.Unlock()
	delete(r.byMember, participantID)
	if empty {
		delete(r.rooms, code)
		return true
	}
	return false
}

// RoomFor returns the room a participant currently occupies, or nil.
func (r *RoomRegistry) RoomFor(participantID string) *Room {
	r.mu.RLock()
	defer r.mu.RUnlock()
	code, ok := r.byMember[participantID]
	if !ok {
		return nil
	}
	return r.rooms[code]
}

// Get returns the live room with the given code, or nil.
func (r *RoomRegistry) Get(code string) *Room {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.rooms[code]
}

// Summaries lists the live rooms for the lobby endpoint.
func (r *RoomRegistry) Summaries() []RoomSummary {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]RoomSummary, 0, len(r.rooms))
	for _, room := range r.rooms {
		room.Lock()
		out = append(out, RoomSummary{
			Code:      room.Code,
			GameType:  room.GameType,
			Players:   len(room.Members),
			Phase:     room.Game.Phase(),
			CreatedAt: room.CreatedAt,
		})
		room.Unlock()
	}
	return out
}
