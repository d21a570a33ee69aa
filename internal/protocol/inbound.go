// Package protocol defines the JSON messages exchanged with clients. Both
// directions are closed sets of tagged envelopes: `{"type": ..., ...payload}`
// with the payload fields flat in the same object, matching the browser
// client.
package protocol

import (
	"encoding/json"

	"giochi_web/internal/game"
)

// Inbound action tags.
const (
	TypePlayerConnect  = "player_connect"
	TypeCreateRoom     = "create_room"
	TypeJoinRoom       = "join_room"
	TypeSelectRole     = "select_role"
	TypeChangeRole     = "change_role"
	TypeStartGame      = "start_game"
	TypeGiveClue       = "give_clue"
	TypeSelectWord     = "select_word"
	TypePassTurn       = "pass_turn"
	TypeRefreshGame    = "refresh_game"
	TypeScopaPlayCard  = "scopa_play_card"
	TypeScopaTakeCards = "scopa_take_cards"
	TypeLeaveRoom      = "leave_room"
	TypePing           = "ping"
)

// Envelope carries only the tag; the payload is decoded per tag from the
// same bytes.
type Envelope struct {
	Type string `json:"type"`
}

// PlayerInfo identifies a connecting player. ID may be empty; the server
// assigns one.
type PlayerInfo struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type PlayerConnect struct {
	Player PlayerInfo `json:"player"`
}

type CreateRoom struct {
	GameType string `json:"game_type"`
}

type JoinRoom struct {
	RoomCode string `json:"room_code"`
}

type SelectRole struct {
	Role string `json:"role"`
}

type GiveClue struct {
	Clue game.Clue `json:"clue"`
}

type SelectWord struct {
	WordIndex int `json:"word_index"`
}

type ScopaPlayCard struct {
	CardIndex int `json:"card_index"`
}

type ScopaTakeCards struct {
	PlayedCard game.Card   `json:"played_card"`
	TakenCards []game.Card `json:"taken_cards"`
}

type Ping struct {
	RoomCode string `json:"room_code"`
}

// Decode unmarshals raw into dst, the payload struct for the already-read
// tag.
func Decode(raw []byte, dst interface{}) error {
	return json.Unmarshal(raw, dst)
}
