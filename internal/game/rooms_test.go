package game

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func testEngines(v Variant) GameState {
	if v == VariantScopa {
		return NewScopa(SimpleScorer{})
	}
	return NewCodenames(DefaultBoardCounts, true, nil)
}

func newRegistry() *RoomRegistry {
	return NewRoomRegistry(6, testEngines)
}

func TestCreateRoom(t *testing.T) {
	reg := newRegistry()
	room, err := reg.CreateRoom("p1", "alice", VariantCodenamez)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(room.Code) != 6 {
		t.Fatalf("code %q has length %d, want 6", room.Code, len(room.Code))
	}
	for _, c := range room.Code {
		if !strings.ContainsRune(codeAlphabet, c) {
			t.Fatalf("code %q contains %q outside the alphabet", room.Code, c)
		}
	}
	if room.CreatorID != "p1" {
		t.Fatalf("creator = %q", room.CreatorID)
	}
	if _, ok := room.Members["p1"]; !ok {
		t.Fatal("creator not joined to the room")
	}
	if got := reg.RoomFor("p1"); got != room {
		t.Fatal("RoomFor does not resolve the creator")
	}
	if got := reg.Get(room.Code); got != room {
		t.Fatal("Get does not resolve the code")
	}
	if room.Game == nil || room.Game.Variant() != VariantCodenamez {
		t.Fatal("engine not attached")
	}
}

func TestCreateRoomRejectsUnknownVariant(t *testing.T) {
	reg := newRegistry()
	if _, err := reg.CreateRoom("p1", "alice", Variant("briscola")); !errors.Is(err, ErrInvalidGameType) {
		t.Fatalf("expected ErrInvalidGameType, got %v", err)
	}
}

func TestJoinRoom(t *testing.T) {
	reg := newRegistry()
	room, _ := reg.CreateRoom("p1", "alice", VariantCodenamez)

	if _, err := reg.JoinRoom("NOSUCH", "p2", "bob"); !errors.Is(err, ErrRoomNotFound) {
		t.Fatalf("expected ErrRoomNotFound, got %v", err)
	}

	joined, err := reg.JoinRoom(room.Code, "p2", "bob")
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	if joined != room {
		t.Fatal("join returned a different room")
	}
	if got := room.JoinOrder(); len(got) != 2 || got[0] != "p1" || got[1] != "p2" {
		t.Fatalf("join order = %v", got)
	}

	// Joining again is a no-op, not a duplicate seat.
	if _, err := reg.JoinRoom(room.Code, "p2", "bob"); err != nil {
		t.Fatalf("rejoin: %v", err)
	}
	if len(room.Members) != 2 {
		t.Fatalf("rejoin duplicated a member: %d", len(room.Members))
	}
}

func TestJoinStartedScopaRejected(t *testing.T) {
	reg := newRegistry()
	room, _ := reg.CreateRoom("p1", "alice", VariantScopa)
	reg.JoinRoom(room.Code, "p2", "bob")

	eng := room.Game.(*Scopa)
	if err := eng.Start(room.JoinOrder()); err != nil {
		t.Fatalf("start: %v", err)
	}

	if _, err := reg.JoinRoom(room.Code, "p3", "carol"); !errors.Is(err, ErrRoomNotJoinable) {
		t.Fatalf("expected ErrRoomNotJoinable, got %v", err)
	}
}

func TestLeaveDestroysEmptyRoom(t *testing.T) {
	reg := newRegistry()
	room, _ := reg.CreateRoom("p1", "alice", VariantCodenamez)
	reg.JoinRoom(room.Code, "p2", "bob")

	left, destroyed, err := reg.LeaveRoom("p2")
	if err != nil || destroyed {
		t.Fatalf("first leave: destroyed=%v err=%v", destroyed, err)
	}
	if left != room || len(room.Members) != 1 {
		t.Fatalf("room state after leave: %d members", len(room.Members))
	}

	_, destroyed, err = reg.LeaveRoom("p1")
	if err != nil || !destroyed {
		t.Fatalf("last leave: destroyed=%v err=%v", destroyed, err)
	}
	if reg.Get(room.Code) != nil {
		t.Fatal("empty room still registered")
	}
	if reg.RoomFor("p1") != nil {
		t.Fatal("membership index not cleared")
	}

	if _, _, err := reg.LeaveRoom("p1"); !errors.Is(err, ErrNotInRoom) {
		t.Fatalf("expected ErrNotInRoom, got %v", err)
	}
}

func TestCreateLeavesPreviousRoom(t *testing.T) {
	reg := newRegistry()
	first, _ := reg.CreateRoom("p1", "alice", VariantCodenamez)
	reg.JoinRoom(first.Code, "p2", "bob")

	second, err := reg.CreateRoom("p2", "bob", VariantScopa)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, still := first.Members["p2"]; still {
		t.Fatal("p2 still a member of the old room")
	}
	if reg.RoomFor("p2") != second {
		t.Fatal("p2 not indexed to the new room")
	}
}

func TestJoinLeavesPreviousRoom(t *testing.T) {
	reg := newRegistry()
	old, _ := reg.CreateRoom("p1", "alice", VariantCodenamez)
	target, _ := reg.CreateRoom("p2", "bob", VariantCodenamez)

	if _, err := reg.JoinRoom(target.Code, "p1", "alice"); err != nil {
		t.Fatalf("join: %v", err)
	}
	// p1 was the only member, so the old room is gone.
	if reg.Get(old.Code) != nil {
		t.Fatal("abandoned room still registered")
	}
	if reg.RoomFor("p1") != target {
		t.Fatal("p1 not indexed to the target room")
	}
}

func TestAssignRole(t *testing.T) {
	reg := newRegistry()
	room, _ := reg.CreateRoom("p1", "alice", VariantCodenamez)
	reg.JoinRoom(room.Code, "p2", "bob")

	if err := room.AssignRole("p1", RoleRedSpy); err != nil {
		t.Fatalf("assign: %v", err)
	}
	if room.Members["p1"].Team != TeamRed {
		t.Fatalf("team = %q, want red", room.Members["p1"].Team)
	}

	if err := room.AssignRole("p2", RoleRedSpy); !errors.Is(err, ErrRoleOccupied) {
		t.Fatalf("expected ErrRoleOccupied, got %v", err)
	}
	if room.Members["p1"].Role != RoleRedSpy {
		t.Fatal("holder lost the role on a rejected claim")
	}

	// Picking a new role releases the old one.
	if err := room.AssignRole("p1", RoleBlueAgent); err != nil {
		t.Fatalf("switch: %v", err)
	}
	if err := room.AssignRole("p2", RoleRedSpy); err != nil {
		t.Fatalf("claim freed role: %v", err)
	}

	if err := room.AssignRole("p1", "red-king"); !errors.Is(err, ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
	if err := room.AssignRole("ghost", RoleBlueSpy); !errors.Is(err, ErrPlayerNotFound) {
		t.Fatalf("expected ErrPlayerNotFound, got %v", err)
	}
}

// Membership mutations through the registry must be visible under the room
// lock alone, since that is all the action handlers hold. Run with -race.
func TestMembershipMutationHoldsRoomLock(t *testing.T) {
	reg := newRegistry()
	room, err := reg.CreateRoom("host", "host", VariantCodenamez)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			id := fmt.Sprintf("p%d", i)
			if _, err := reg.JoinRoom(room.Code, id, id); err != nil {
				t.Errorf("join %s: %v", id, err)
				return
			}
			if _, _, err := reg.LeaveRoom(id); err != nil {
				t.Errorf("leave %s: %v", id, err)
				return
			}
		}
	}()

	for i := 0; i < 200; i++ {
		room.Lock()
		if err := room.AssignRole("host", RoleRedSpy); err != nil {
			room.Unlock()
			t.Fatalf("assign: %v", err)
		}
		if members := room.MemberList(); len(members) == 0 {
			room.Unlock()
			t.Fatal("host vanished from its own room")
		}
		room.Unlock()
	}
	<-done
}

func TestFailedJoinKeepsCurrentRoom(t *testing.T) {
	reg := newRegistry()
	home, _ := reg.CreateRoom("p1", "alice", VariantCodenamez)
	target, _ := reg.CreateRoom("p2", "bob", VariantScopa)
	reg.JoinRoom(target.Code, "p3", "carol")
	if err := target.Game.(*Scopa).Start(target.JoinOrder()); err != nil {
		t.Fatalf("start: %v", err)
	}

	if _, err := reg.JoinRoom(target.Code, "p1", "alice"); !errors.Is(err, ErrRoomNotJoinable) {
		t.Fatalf("expected ErrRoomNotJoinable, got %v", err)
	}
	// The rejected join must not evict p1 from the room they are in.
	if reg.RoomFor("p1") != home {
		t.Fatal("failed join removed the participant from their room")
	}
	if _, still := home.Members["p1"]; !still {
		t.Fatal("membership dropped on a failed join")
	}
}

func TestSummaries(t *testing.T) {
	reg := newRegistry()
	reg.CreateRoom("p1", "alice", VariantCodenamez)
	room, _ := reg.CreateRoom("p2", "bob", VariantScopa)
	reg.JoinRoom(room.Code, "p3", "carol")

	sums := reg.Summaries()
	if len(sums) != 2 {
		t.Fatalf("got %d summaries, want 2", len(sums))
	}
	byCode := map[string]RoomSummary{}
	for _, s := range sums {
		byCode[s.Code] = s
	}
	s, ok := byCode[room.Code]
	if !ok {
		t.Fatalf("scopa room missing from %v", sums)
	}
	if s.Players != 2 || s.GameType != VariantScopa || s.Phase != ScopaPhaseLobby {
		t.Fatalf("summary = %+v", s)
	}
}
