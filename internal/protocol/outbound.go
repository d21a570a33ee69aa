package protocol

import "giochi_web/internal/game"

// Outbound event tags.
const (
	TypePlayerConnected  = "player_connected"
	TypeRoomCreated      = "room_created"
	TypeRoomJoined       = "room_joined"
	TypeJoinRoomError    = "join_room_error"
	TypeRoomUpdated      = "room_updated"
	TypeRoleError        = "role_error"
	TypeGameStarted      = "game_started"
	TypeStartGameError   = "start_game_error"
	TypeClueGiven        = "clue_given"
	TypeClueError        = "clue_error"
	TypeWordSelected     = "word_selected"
	TypeWordError        = "word_error"
	TypeTurnChanged      = "turn_changed"
	TypeTurnPassed       = "turn_passed"
	TypeGameEnded        = "game_ended"
	TypeGameRefreshed    = "game_refreshed"
	TypeScopaGameStarted = "scopa_game_started"
	TypeScopaChooseTake  = "scopa_choose_take"
	TypeScopaCardPlayed  = "scopa_card_played"
	TypeScopaCardsTaken  = "scopa_cards_taken"
	TypeScopaGameEnded   = "scopa_game_ended"
	TypeRoomLeft         = "room_left"
	TypePong             = "pong"
	TypeError            = "error"
)

type PlayerConnected struct {
	Type     string `json:"type"`
	PlayerID string `json:"player_id"`
}

func NewPlayerConnected(playerID string) PlayerConnected {
	return PlayerConnected{Type: TypePlayerConnected, PlayerID: playerID}
}

type RoomResult struct {
	Type      string `json:"type"`
	Success   bool   `json:"success"`
	RoomCode  string `json:"room_code"`
	IsCreator bool   `json:"is_creator"`
}

func NewRoomCreated(code string) RoomResult {
	return RoomResult{Type: TypeRoomCreated, Success: true, RoomCode: code, IsCreator: true}
}

func NewRoomJoined(code string, isCreator bool) RoomResult {
	return RoomResult{Type: TypeRoomJoined, Success: true, RoomCode: code, IsCreator: isCreator}
}

// ErrorEvent is the shape of every targeted rejection; Tag selects the wire
// type (`clue_error`, `role_error`, plain `error`, ...).
type ErrorEvent struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func NewError(tag, message string) ErrorEvent {
	return ErrorEvent{Type: tag, Message: message}
}

type RoomEvent struct {
	Type string         `json:"type"`
	Room *game.RoomView `json:"room"`
}

func NewRoomEvent(tag string, room *game.RoomView) RoomEvent {
	return RoomEvent{Type: tag, Room: room}
}

type ClueGiven struct {
	Type string         `json:"type"`
	Clue game.Clue      `json:"clue"`
	Room *game.RoomView `json:"room"`
}

func NewClueGiven(clue game.Clue, room *game.RoomView) ClueGiven {
	return ClueGiven{Type: TypeClueGiven, Clue: clue, Room: room}
}

type WordSelected struct {
	Type      string         `json:"type"`
	WordIndex int            `json:"word_index"`
	Room      *game.RoomView `json:"room"`
}

func NewWordSelected(index int, room *game.RoomView) WordSelected {
	return WordSelected{Type: TypeWordSelected, WordIndex: index, Room: room}
}

type GameEnded struct {
	Type   string         `json:"type"`
	Winner string         `json:"winner"`
	Reason string         `json:"reason"`
	Room   *game.RoomView `json:"room"`
}

func NewGameEnded(winner, reason string, room *game.RoomView) GameEnded {
	return GameEnded{Type: TypeGameEnded, Winner: winner, Reason: reason, Room: room}
}

type ScopaChooseTake struct {
	Type          string         `json:"type"`
	PlayedCard    game.Card      `json:"played_card"`
	PossibleTakes [][]game.Card  `json:"possible_takes"`
	Room          *game.RoomView `json:"room"`
}

func NewScopaChooseTake(played game.Card, takes [][]game.Card, room *game.RoomView) ScopaChooseTake {
	return ScopaChooseTake{Type: TypeScopaChooseTake, PlayedCard: played, PossibleTakes: takes, Room: room}
}

type ScopaCardPlayed struct {
	Type       string         `json:"type"`
	PlayedCard game.Card      `json:"played_card"`
	PlayerID   string         `json:"player_id"`
	Room       *game.RoomView `json:"room"`
}

func NewScopaCardPlayed(played game.Card, playerID string, room *game.RoomView) ScopaCardPlayed {
	return ScopaCardPlayed{Type: TypeScopaCardPlayed, PlayedCard: played, PlayerID: playerID, Room: room}
}

type ScopaCardsTaken struct {
	Type       string         `json:"type"`
	PlayedCard game.Card      `json:"played_card"`
	TakenCards []game.Card    `json:"taken_cards"`
	PlayerID   string         `json:"player_id"`
	IsScopa    bool           `json:"is_scopa"`
	Room       *game.RoomView `json:"room"`
}

func NewScopaCardsTaken(played game.Card, taken []game.Card, playerID string, isScopa bool, room *game.RoomView) ScopaCardsTaken {
	return ScopaCardsTaken{
		Type:       TypeScopaCardsTaken,
		PlayedCard: played,
		TakenCards: taken,
		PlayerID:   playerID,
		IsScopa:    isScopa,
		Room:       room,
	}
}

type ScopaGameEnded struct {
	Type        string         `json:"type"`
	Winner      string         `json:"winner"`
	FinalScores map[string]int `json:"final_scores"`
	Room        *game.RoomView `json:"room"`
}

func NewScopaGameEnded(winner string, scores map[string]int, room *game.RoomView) ScopaGameEnded {
	return ScopaGameEnded{Type: TypeScopaGameEnded, Winner: winner, FinalScores: scores, Room: room}
}

type Simple struct {
	Type string `json:"type"`
}

func NewRoomLeft() Simple { return Simple{Type: TypeRoomLeft} }
func NewPong() Simple     { return Simple{Type: TypePong} }
