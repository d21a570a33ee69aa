package game

import "fmt"

// Kind classifies a rejected action. Every kind is recoverable: the room's
// state is left untouched and the error is reported to the sender only.
type Kind int

const (
	NotFound Kind = iota
	Conflict
	InvalidInput
	PreconditionFailed
)

// Error carries the taxonomy kind plus the short code sent on the wire.
type Error struct {
	Kind    Kind
	Code    string
	Message string
}

func (e *Error) Error() string { return e.Message }

// Is matches sentinel errors by code, so errors.Is(err, ErrNotYourTurn)
// works on wrapped copies.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

func newError(kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

var (
	ErrRoomNotFound         = newError(NotFound, "room_not_found", "room not found")
	ErrPlayerNotFound       = newError(NotFound, "player_not_found", "player not found")
	ErrNotInRoom            = newError(NotFound, "not_in_room", "player is not in a room")
	ErrRoleOccupied         = newError(Conflict, "role_occupied", "role is already taken")
	ErrNotYourTurn          = newError(Conflict, "not_your_turn", "it is not your turn")
	ErrNotCreator           = newError(PreconditionFailed, "not_creator", "only the room creator can do that")
	ErrTeamsIncomplete      = newError(PreconditionFailed, "teams_incomplete", "both teams need players and a spymaster")
	ErrWrongPhase           = newError(PreconditionFailed, "wrong_phase", "action not allowed in the current phase")
	ErrRoomNotJoinable      = newError(PreconditionFailed, "room_not_joinable", "the game has already started")
	ErrPlayerCountInvalid   = newError(PreconditionFailed, "player_count_invalid", "scopa needs 2 to 4 players")
	ErrInvalidClue          = newError(InvalidInput, "invalid_clue", "clue is invalid")
	ErrInvalidRole          = newError(InvalidInput, "invalid_role", "unknown role")
	ErrInvalidGameType      = newError(InvalidInput, "invalid_game_type", "unknown game type")
	ErrInvalidCard          = newError(InvalidInput, "invalid_card", "card index out of range")
	ErrInvalidWord          = newError(InvalidInput, "invalid_word", "word index out of range")
	ErrAlreadyRevealed      = newError(InvalidInput, "already_revealed", "word already revealed")
	ErrNoAttemptsLeft       = newError(PreconditionFailed, "no_attempts_left", "no attempts left this turn")
	ErrSpymasterCannotGuess = newError(Conflict, "spymaster_cannot_guess", "the spymaster cannot guess")
	ErrIllegalCapture       = newError(InvalidInput, "illegal_capture", "chosen cards do not form a legal capture")
	ErrNoPendingCapture     = newError(PreconditionFailed, "no_pending_capture", "there is no capture waiting for a choice")
)

// errorf wraps a sentinel with a more specific message while keeping its
// kind and code, so errors.Is still matches.
func errorf(base *Error, format string, args ...interface{}) *Error {
	return &Error{Kind: base.Kind, Code: base.Code, Message: fmt.Sprintf(format, args...)}
}
