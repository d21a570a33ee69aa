package service

import (
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"

	"giochi_web/internal/config"
	"giochi_web/internal/game"
	"giochi_web/internal/models"
	"giochi_web/internal/protocol"
	"giochi_web/internal/repository"
)

// Session is one connected client as the router sees it: a send handle plus
// the participant identity established by player_connect. The websocket
// Client implements it; tests use an in-memory fake.
type Session interface {
	game.Conn
	PlayerID() string
	SetPlayerID(id string)
}

func (c *Client) PlayerID() string      { return c.playerID }
func (c *Client) SetPlayerID(id string) { c.playerID = id }

// GameService routes inbound actions: it resolves the room, locks it, runs
// the engine call and fans the resulting events out. One action is processed
// at a time per room, so every game transition is atomic for its members.
type GameService struct {
	cfg          config.GameConfig
	participants *game.ParticipantRegistry
	rooms        *game.RoomRegistry
	dispatcher   *game.Dispatcher
	matches      repository.MatchRepository
}

func NewGameService(cfg config.GameConfig, matches repository.MatchRepository) *GameService {
	participants := game.NewParticipantRegistry()
	scorer := game.NewScorer(cfg.ScopaScoring)
	engines := func(v game.Variant) game.GameState {
		if v == game.VariantScopa {
			return game.NewScopa(scorer)
		}
		return game.NewCodenames(game.DefaultBoardCounts, cfg.AllowZeroClue, nil)
	}
	return &GameService{
		cfg:          cfg,
		participants: participants,
		rooms:        game.NewRoomRegistry(cfg.RoomCodeLength, engines),
		dispatcher:   game.NewDispatcher(participants),
		matches:      matches,
	}
}

// Rooms exposes the registry for the REST lobby listing.
func (s *GameService) Rooms() *game.RoomRegistry { return s.rooms }

// HandleMessage decodes one inbound envelope and dispatches it. Every
// rejection goes back to the sender only; the room state is untouched on any
// error.
func (s *GameService) HandleMessage(sess Session, raw []byte) {
	var env protocol.Envelope
	if err := json.Unmarshal(raw, &env); err != nil || env.Type == "" {
		s.sendError(sess, protocol.TypeError, "invalid message")
		return
	}

	if env.Type == protocol.TypePlayerConnect {
		s.handleConnect(sess, raw)
		return
	}
	if sess.PlayerID() == "" {
		s.sendError(sess, protocol.TypeError, "send player_connect first")
		return
	}
	s.participants.Touch(sess.PlayerID())

	switch env.Type {
	case protocol.TypeCreateRoom:
		s.handleCreateRoom(sess, raw)
	case protocol.TypeJoinRoom:
		s.handleJoinRoom(sess, raw)
	case protocol.TypeSelectRole, protocol.TypeChangeRole:
		s.handleSelectRole(sess, raw)
	case protocol.TypeStartGame:
		s.handleStartGame(sess)
	case protocol.TypeGiveClue:
		s.handleGiveClue(sess, raw)
	case protocol.TypeSelectWord:
		s.handleSelectWord(sess, raw)
	case protocol.TypePassTurn:
		s.handlePassTurn(sess)
	case protocol.TypeRefreshGame:
		s.handleRefreshGame(sess)
	case protocol.TypeScopaPlayCard:
		s.handleScopaPlayCard(sess, raw)
	case protocol.TypeScopaTakeCards:
		s.handleScopaTakeCards(sess, raw)
	case protocol.TypeLeaveRoom:
		s.handleLeaveRoom(sess)
	case protocol.TypePing:
		sess.Send(protocol.NewPong())
	default:
		s.sendError(sess, protocol.TypeError, "unknown message type")
	}
}

// Disconnect runs the cleanup path used by the liveness sweep: leave the
// current room, then drop the registration.
func (s *GameService) Disconnect(playerID string) {
	s.leave(playerID)
	s.participants.Forget(playerID)
}

// DisconnectSession cleans up after a closed socket, but only when the
// session still owns the live registration. The client reconnects with its
// stored id and Register replaces the handle; a stale socket that times out
// afterwards must not evict the fresh connection.
func (s *GameService) DisconnectSession(sess Session) {
	id := sess.PlayerID()
	if id == "" {
		return
	}
	if !s.participants.ForgetIfHandle(id, sess) {
		return
	}
	s.leave(id)
}

// RunSweeper periodically evicts participants whose liveness timestamp has
// gone stale, through the same path as an explicit disconnect.
func (s *GameService) RunSweeper(stop <-chan struct{}) {
	ticker := time.NewTicker(s.cfg.SweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			for _, id := range s.participants.Stale(s.cfg.LivenessTimeout) {
				log.Printf("sweeping inactive player %s", id)
				s.Disconnect(id)
			}
		}
	}
}

func (s *GameService) handleConnect(sess Session, raw []byte) {
	var msg protocol.PlayerConnect
	if err := protocol.Decode(raw, &msg); err != nil || msg.Player.Username == "" {
		s.sendError(sess, protocol.TypeError, "player_connect needs a username")
		return
	}
	id := msg.Player.ID
	if id == "" {
		id = uuid.NewString()
	}
	s.participants.Register(id, msg.Player.Username, sess)
	sess.SetPlayerID(id)
	sess.Send(protocol.NewPlayerConnected(id))
	log.Printf("player %s connected as %q", id, msg.Player.Username)
}

func (s *GameService) handleCreateRoom(sess Session, raw []byte) {
	var msg protocol.CreateRoom
	if err := protocol.Decode(raw, &msg); err != nil {
		s.sendError(sess, protocol.TypeError, "invalid message")
		return
	}
	variant := game.Variant(msg.GameType)
	if variant == "" {
		variant = game.VariantCodenamez
	}
	p := s.participants.Get(sess.PlayerID())
	if p == nil {
		s.sendError(sess, protocol.TypeError, "not connected")
		return
	}
	prev := s.rooms.RoomFor(p.ID)
	room, err := s.rooms.CreateRoom(p.ID, p.Username, variant)
	if err != nil {
		s.sendError(sess, protocol.TypeError, err.Error())
		return
	}
	if prev != nil {
		s.notifyDeparture(prev)
	}
	sess.Send(protocol.NewRoomCreated(room.Code))
	room.Lock()
	view := room.View()
	s.dispatcher.Broadcast(room, protocol.NewRoomEvent(protocol.TypeRoomUpdated, view))
	room.Unlock()
	log.Printf("room %s created by %s (%s)", room.Code, p.ID, variant)
}

func (s *GameService) handleJoinRoom(sess Session, raw []byte) {
	var msg protocol.JoinRoom
	if err := protocol.Decode(raw, &msg); err != nil || msg.RoomCode == "" {
		s.sendError(sess, protocol.TypeJoinRoomError, "missing room code")
		return
	}
	p := s.participants.Get(sess.PlayerID())
	if p == nil {
		s.sendError(sess, protocol.TypeJoinRoomError, "not connected")
		return
	}
	prev := s.rooms.RoomFor(p.ID)
	room, err := s.rooms.JoinRoom(msg.RoomCode, p.ID, p.Username)
	if err != nil {
		s.sendError(sess, protocol.TypeJoinRoomError, err.Error())
		return
	}
	if prev != nil && prev != room {
		s.notifyDeparture(prev)
	}
	sess.Send(protocol.NewRoomJoined(room.Code, room.CreatorID == p.ID))
	room.Lock()
	view := room.View()
	s.dispatcher.Broadcast(room, protocol.NewRoomEvent(protocol.TypeRoomUpdated, view))
	room.Unlock()
}

func (s *GameService) handleSelectRole(sess Session, raw []byte) {
	var msg protocol.SelectRole
	if err := protocol.Decode(raw, &msg); err != nil {
		s.sendError(sess, protocol.TypeRoleError, "invalid message")
		return
	}
	room := s.roomOf(sess, protocol.TypeRoleError)
	if room == nil {
		return
	}
	room.Lock()
	defer room.Unlock()
	if err := room.AssignRole(sess.PlayerID(), msg.Role); err != nil {
		s.sendError(sess, protocol.TypeRoleError, err.Error())
		return
	}
	s.dispatcher.Broadcast(room, protocol.NewRoomEvent(protocol.TypeRoomUpdated, room.View()))
}

func (s *GameService) handleStartGame(sess Session) {
	room := s.roomOf(sess, protocol.TypeStartGameError)
	if room == nil {
		return
	}
	room.Lock()
	defer room.Unlock()
	if room.CreatorID != sess.PlayerID() {
		s.sendError(sess, protocol.TypeStartGameError, game.ErrNotCreator.Message)
		return
	}
	switch eng := room.Game.(type) {
	case *game.Codenames:
		if err := eng.Start(room.MemberList()); err != nil {
			s.sendError(sess, protocol.TypeStartGameError, err.Error())
			return
		}
		s.dispatcher.Broadcast(room, protocol.NewRoomEvent(protocol.TypeGameStarted, room.View()))
	case *game.Scopa:
		if err := eng.Start(room.JoinOrder()); err != nil {
			s.sendError(sess, protocol.TypeStartGameError, err.Error())
			return
		}
		s.dispatcher.Broadcast(room, protocol.NewRoomEvent(protocol.TypeScopaGameStarted, room.View()))
	}
	log.Printf("room %s game started", room.Code)
}

func (s *GameService) handleGiveClue(sess Session, raw []byte) {
	var msg protocol.GiveClue
	if err := protocol.Decode(raw, &msg); err != nil {
		s.sendError(sess, protocol.TypeClueError, "invalid message")
		return
	}
	room := s.roomOf(sess, protocol.TypeClueError)
	if room == nil {
		return
	}
	room.Lock()
	defer room.Unlock()
	eng, m := s.codenamesCtx(sess, room, protocol.TypeClueError)
	if eng == nil {
		return
	}
	if err := eng.GiveClue(m, msg.Clue); err != nil {
		s.sendError(sess, protocol.TypeClueError, err.Error())
		return
	}
	s.dispatcher.Broadcast(room, protocol.NewClueGiven(*eng.CurrentClue, room.View()))
}

func (s *GameService) handleSelectWord(sess Session, raw []byte) {
	var msg protocol.SelectWord
	if err := protocol.Decode(raw, &msg); err != nil {
		s.sendError(sess, protocol.TypeWordError, "invalid message")
		return
	}
	room := s.roomOf(sess, protocol.TypeWordError)
	if room == nil {
		return
	}
	room.Lock()
	defer room.Unlock()
	eng, m := s.codenamesCtx(sess, room, protocol.TypeWordError)
	if eng == nil {
		return
	}
	out, err := eng.SelectWord(m, msg.WordIndex)
	if err != nil {
		s.sendError(sess, protocol.TypeWordError, err.Error())
		return
	}
	view := room.View()
	s.dispatcher.Broadcast(room, protocol.NewWordSelected(out.Index, view))
	switch {
	case out.Ended:
		s.dispatcher.Broadcast(room, protocol.NewGameEnded(out.Winner, out.Reason, view))
		s.recordMatch(room, out.Winner, out.Reason, nil)
	case out.TurnEnded:
		s.dispatcher.Broadcast(room, protocol.NewRoomEvent(protocol.TypeTurnChanged, view))
	}
}

func (s *GameService) handlePassTurn(sess Session) {
	room := s.roomOf(sess, protocol.TypeError)
	if room == nil {
		return
	}
	room.Lock()
	defer room.Unlock()
	eng, m := s.codenamesCtx(sess, room, protocol.TypeError)
	if eng == nil {
		return
	}
	if err := eng.PassTurn(m); err != nil {
		s.sendError(sess, protocol.TypeError, err.Error())
		return
	}
	s.dispatcher.Broadcast(room, protocol.NewRoomEvent(protocol.TypeTurnPassed, room.View()))
}

func (s *GameService) handleRefreshGame(sess Session) {
	room := s.roomOf(sess, protocol.TypeError)
	if room == nil {
		return
	}
	room.Lock()
	defer room.Unlock()
	if room.CreatorID != sess.PlayerID() {
		s.sendError(sess, protocol.TypeError, game.ErrNotCreator.Message)
		return
	}
	switch eng := room.Game.(type) {
	case *game.Codenames:
		eng.Reset()
	case *game.Scopa:
		eng.Reset()
	}
	s.dispatcher.Broadcast(room, protocol.NewRoomEvent(protocol.TypeGameRefreshed, room.View()))
}

func (s *GameService) handleScopaPlayCard(sess Session, raw []byte) {
	var msg protocol.ScopaPlayCard
	if err := protocol.Decode(raw, &msg); err != nil {
		s.sendError(sess, protocol.TypeError, "invalid message")
		return
	}
	room := s.roomOf(sess, protocol.TypeError)
	if room == nil {
		return
	}
	room.Lock()
	defer room.Unlock()
	eng := s.scopaCtx(sess, room)
	if eng == nil {
		return
	}
	out, err := eng.PlayCard(sess.PlayerID(), msg.CardIndex)
	if err != nil {
		s.sendError(sess, protocol.TypeError, err.Error())
		return
	}
	view := room.View()
	if out.Options != nil {
		s.dispatcher.Unicast(sess.PlayerID(), protocol.NewScopaChooseTake(out.Played, out.Options, view))
		return
	}
	s.dispatcher.Broadcast(room, protocol.NewScopaCardPlayed(out.Played, out.PlayerID, view))
	if out.Ended {
		s.dispatcher.Broadcast(room, protocol.NewScopaGameEnded(out.Winner, out.Scores, view))
		s.recordMatch(room, out.Winner, "", out.Scores)
	}
}

func (s *GameService) handleScopaTakeCards(sess Session, raw []byte) {
	var msg protocol.ScopaTakeCards
	if err := protocol.Decode(raw, &msg); err != nil {
		s.sendError(sess, protocol.TypeError, "invalid message")
		return
	}
	room := s.roomOf(sess, protocol.TypeError)
	if room == nil {
		return
	}
	room.Lock()
	defer room.Unlock()
	eng := s.scopaCtx(sess, room)
	if eng == nil {
		return
	}
	out, err := eng.TakeCards(sess.PlayerID(), msg.PlayedCard, msg.TakenCards)
	if err != nil {
		s.sendError(sess, protocol.TypeError, err.Error())
		return
	}
	view := room.View()
	s.dispatcher.Broadcast(room, protocol.NewScopaCardsTaken(out.Played, out.Taken, out.PlayerID, out.IsScopa, view))
	if out.Ended {
		s.dispatcher.Broadcast(room, protocol.NewScopaGameEnded(out.Winner, out.Scores, view))
		s.recordMatch(room, out.Winner, "", out.Scores)
	}
}

func (s *GameService) handleLeaveRoom(sess Session) {
	s.leave(sess.PlayerID())
	sess.Send(protocol.NewRoomLeft())
}

// leave removes the participant from their room, abandons a scopa game in
// progress and notifies the remaining members. Destroyed rooms disappear
// silently.
func (s *GameService) leave(playerID string) {
	room, destroyed, err := s.rooms.LeaveRoom(playerID)
	if err != nil || room == nil {
		return
	}
	if destroyed {
		log.Printf("room %s destroyed", room.Code)
		return
	}
	s.notifyDeparture(room)
}

// notifyDeparture abandons a scopa game in progress and broadcasts the new
// state to the remaining members. Every path out of a room ends here:
// explicit leave_room, disconnect, the sweep, and creating or joining
// another room while seated.
func (s *GameService) notifyDeparture(room *game.Room) {
	room.Lock()
	defer room.Unlock()
	if len(room.Members) == 0 {
		return
	}
	if eng, ok := room.Game.(*game.Scopa); ok {
		eng.Abandon()
	}
	s.dispatcher.Broadcast(room, protocol.NewRoomEvent(protocol.TypeRoomUpdated, room.View()))
}

// roomOf resolves the sender's room or reports the failure under the given
// error tag.
func (s *GameService) roomOf(sess Session, errTag string) *game.Room {
	room := s.rooms.RoomFor(sess.PlayerID())
	if room == nil {
		s.sendError(sess, errTag, game.ErrNotInRoom.Message)
	}
	return room
}

// codenamesCtx asserts the room runs the word game and resolves the acting
// membership. Call with the room locked.
func (s *GameService) codenamesCtx(sess Session, room *game.Room, errTag string) (*game.Codenames, *game.Membership) {
	eng, ok := room.Game.(*game.Codenames)
	if !ok {
		s.sendError(sess, errTag, "not a codenamez room")
		return nil, nil
	}
	m, ok := room.Members[sess.PlayerID()]
	if !ok {
		s.sendError(sess, errTag, game.ErrPlayerNotFound.Message)
		return nil, nil
	}
	return eng, m
}

func (s *GameService) scopaCtx(sess Session, room *game.Room) *game.Scopa {
	eng, ok := room.Game.(*game.Scopa)
	if !ok {
		s.sendError(sess, protocol.TypeError, "not a scopa room")
		return nil
	}
	return eng
}

func (s *GameService) sendError(sess Session, tag, message string) {
	sess.Send(protocol.NewError(tag, message))
}

// recordMatch persists the result of a finished game. Storage problems are
// logged and never reach the room. Call with the room locked.
func (s *GameService) recordMatch(room *game.Room, winner, reason string, scores map[string]int) {
	if s.matches == nil {
		return
	}
	record := &models.MatchRecord{
		RoomCode:   room.Code,
		GameType:   string(room.GameType),
		Winner:     winner,
		Reason:     reason,
		Players:    len(room.Members),
		FinishedAt: time.Now(),
	}
	if scores != nil {
		if b, err := json.Marshal(scores); err == nil {
			record.Scores = string(b)
		}
	}
	go func() {
		if err := s.matches.Create(record); err != nil {
			log.Printf("record match %s: %v", record.RoomCode, err)
		}
	}()
}
