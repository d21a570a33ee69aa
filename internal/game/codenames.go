package game

import (
	"math/rand"
	"strings"
)

// Board layout: 25 words, 9 for the starting team, 8 for the other, 7
// neutral bystanders and a single assassin.
const BoardSize = 25

// Word colors (hidden affiliations).
const (
	ColorRed      = "red"
	ColorBlue     = "blue"
	ColorNeutral  = "neutral"
	ColorAssassin = "assassin"
)

// Teams.
const (
	TeamRed  = "red"
	TeamBlue = "blue"
)

// Roles, one spymaster and any number of agents per team. Wire values match
// the client.
const (
	RoleRedSpy    = "red-spy"
	RoleRedAgent  = "red-agent"
	RoleBlueSpy   = "blue-spy"
	RoleBlueAgent = "blue-agent"
)

// Word-clue phases.
const (
	PhaseLobby       = "lobby"
	PhaseWaitingClue = "waiting_clue"
	PhaseGuessing    = "guessing"
	PhaseEnded       = "ended"
)

// End reasons.
const (
	ReasonAssassin = "assassin"
	ReasonVictory  = "victory"
)

// TeamOf derives the team from a role ("red-spy" -> "red"). Empty for
// unknown roles.
func TeamOf(role string) string {
	switch role {
	case RoleRedSpy, RoleRedAgent:
		return TeamRed
	case RoleBlueSpy, RoleBlueAgent:
		return TeamBlue
	}
	return ""
}

// IsSpymaster reports whether the role is a clue-giver role.
func IsSpymaster(role string) bool {
	return role == RoleRedSpy || role == RoleBlueSpy
}

// WordCard is one cell of the grid. Color is assigned at deal time and never
// changes; Revealed only ever flips to true (until an explicit reset).
type WordCard struct {
	Word     string `json:"word"`
	Color    string `json:"color"`
	Revealed bool   `json:"revealed"`
}

// Clue is a spymaster hint: a word not on the grid plus a count.
type Clue struct {
	Word   string `json:"word"`
	Number int    `json:"number"`
}

// HistoryEntry is one append-only event in the game log. Type is "clue" or
// "reveal".
type HistoryEntry struct {
	Type      string `json:"type"`
	Team      string `json:"team"`
	Player    string `json:"player"`
	Clue      *Clue  `json:"clue,omitempty"`
	WordIndex int    `json:"word_index,omitempty"`
	Color     string `json:"color,omitempty"`
}

// BoardCounts is the affiliation distribution of a fresh grid. The counts
// must sum to BoardSize.
type BoardCounts struct {
	Red      int
	Blue     int
	Neutral  int
	Assassin int
}

// DefaultBoardCounts is the classic 9/8/7/1 split, red first.
var DefaultBoardCounts = BoardCounts{Red: 9, Blue: 8, Neutral: 7, Assassin: 1}

func (c BoardCounts) total() int { return c.Red + c.Blue + c.Neutral + c.Assassin }

// Codenames is the authoritative word-clue game state. All mutation happens
// under the owning room's lock.
type Codenames struct {
	Words             []WordCard     `json:"words"`
	CurrentTurn       string         `json:"currentTurn"`
	GamePhase         string         `json:"phase"`
	CurrentClue       *Clue          `json:"currentClue"`
	AttemptsRemaining int            `json:"attemptsRemaining"`
	RedScore          int            `json:"redScore"`
	BlueScore         int            `json:"blueScore"`
	History           []HistoryEntry `json:"gameHistory"`
	Winner            string         `json:"winner,omitempty"`
	EndReason         string         `json:"endReason,omitempty"`

	counts        BoardCounts
	allowZeroClue bool
	pool          []string
}

// NewCodenames deals a fresh grid and starts in the lobby phase. A zero
// counts value falls back to the default split; an empty pool falls back to
// the built-in word list.
func NewCodenames(counts BoardCounts, allowZeroClue bool, pool []string) *Codenames {
	if counts.total() != BoardSize {
		counts = DefaultBoardCounts
	}
	if len(pool) < BoardSize {
		pool = ItalianWords
	}
	g := &Codenames{
		counts:        counts,
		allowZeroClue: allowZeroClue,
		pool:          pool,
	}
	g.deal()
	g.GamePhase = PhaseLobby
	return g
}

// deal draws BoardSize distinct words and shuffles the affiliations over
// them.
func (g *Codenames) deal() {
	words := append([]string(nil), g.pool...)
	rand.Shuffle(len(words), func(i, j int) { words[i], words[j] = words[j], words[i] })
	words = words[:BoardSize]

	colors := make([]string, 0, BoardSize)
	for i := 0; i < g.counts.Red; i++ {
		colors = append(colors, ColorRed)
	}
	for i := 0; i < g.counts.Blue; i++ {
		colors = append(colors, ColorBlue)
	}
	for i := 0; i < g.counts.Neutral; i++ {
		colors = append(colors, ColorNeutral)
	}
	for i := 0; i < g.counts.Assassin; i++ {
		colors = append(colors, ColorAssassin)
	}
	rand.Shuffle(len(colors), func(i, j int) { colors[i], colors[j] = colors[j], colors[i] })

	g.Words = make([]WordCard, BoardSize)
	for i := range g.Words {
		g.Words[i] = WordCard{Word: words[i], Color: colors[i]}
	}
	g.RedScore = g.counts.Red
	g.BlueScore = g.counts.Blue
	g.CurrentTurn = TeamRed
	g.CurrentClue = nil
	g.AttemptsRemaining = 0
	g.History = nil
	g.Winner = ""
	g.EndReason = ""
}

// Start moves from the lobby into play. Both teams need at least one member
// and each team needs its spymaster role filled.
func (g *Codenames) Start(members []*Membership) error {
	if g.GamePhase != PhaseLobby {
		return ErrWrongPhase
	}
	var red, blue, redSpy, blueSpy int
	for _, m := range members {
		switch m.Team {
		case TeamRed:
			red++
		case TeamBlue:
			blue++
		}
		switch m.Role {
		case RoleRedSpy:
			redSpy++
		case RoleBlueSpy:
			blueSpy++
		}
	}
	if red == 0 || blue == 0 || redSpy == 0 || blueSpy == 0 {
		return ErrTeamsIncomplete
	}
	g.GamePhase = PhaseWaitingClue
	g.CurrentTurn = TeamRed
	g.CurrentClue = nil
	g.AttemptsRemaining = 0
	return nil
}

// GiveClue accepts a hint from the active team's spymaster and opens the
// guessing window with number+1 attempts.
func (g *Codenames) GiveClue(m *Membership, clue Clue) error {
	if g.GamePhase != PhaseWaitingClue {
		return ErrWrongPhase
	}
	if m.Team != g.CurrentTurn || !IsSpymaster(m.Role) {
		return ErrNotYourTurn
	}
	min := 1
	if g.allowZeroClue {
		min = 0
	}
	if clue.Number < min || clue.Number > 9 {
		return errorf(ErrInvalidClue, "clue number must be between %d and 9", min)
	}
	word := strings.TrimSpace(clue.Word)
	if word == "" {
		return errorf(ErrInvalidClue, "clue word must not be empty")
	}
	for _, w := range g.Words {
		if strings.EqualFold(w.Word, word) {
			return errorf(ErrInvalidClue, "clue word is on the board")
		}
	}
	c := Clue{Word: word, Number: clue.Number}
	g.CurrentClue = &c
	g.AttemptsRemaining = clue.Number + 1
	g.History = append(g.History, HistoryEntry{
		Type:   "clue",
		Team:   m.Team,
		Player: m.Username,
		Clue:   &c,
	})
	g.GamePhase = PhaseGuessing
	return nil
}

// GuessOutcome reports what a reveal did to the game.
type GuessOutcome struct {
	Index     int
	Color     string
	TurnEnded bool
	Ended     bool
	Winner    string
	Reason    string
}

// SelectWord reveals a card for a guessing agent of the active team and
// resolves the outcome: assassin ends the game for the opponents, emptying a
// team's count wins, a miss or exhausted attempts flips the turn, otherwise
// guessing continues.
func (g *Codenames) SelectWord(m *Membership, index int) (GuessOutcome, error) {
	if g.GamePhase != PhaseGuessing {
		return GuessOutcome{}, ErrWrongPhase
	}
	if m.Team != g.CurrentTurn {
		return GuessOutcome{}, ErrNotYourTurn
	}
	if IsSpymaster(m.Role) {
		return GuessOutcome{}, ErrSpymasterCannotGuess
	}
	if index < 0 || index >= len(g.Words) {
		return GuessOutcome{}, ErrInvalidWord
	}
	if g.Words[index].Revealed {
		return GuessOutcome{}, ErrAlreadyRevealed
	}
	if g.AttemptsRemaining <= 0 {
		return GuessOutcome{}, ErrNoAttemptsLeft
	}

	g.Words[index].Revealed = true
	g.AttemptsRemaining--
	color := g.Words[index].Color
	switch color {
	case ColorRed:
		g.RedScore--
	case ColorBlue:
		g.BlueScore--
	}
	g.History = append(g.History, HistoryEntry{
		Type:      "reveal",
		Team:      m.Team,
		Player:    m.Username,
		WordIndex: index,
		Color:     color,
	})

	out := GuessOutcome{Index: index, Color: color}
	switch {
	case color == ColorAssassin:
		out.Ended = true
		out.Winner = opponent(m.Team)
		out.Reason = ReasonAssassin
		g.end(out.Winner, out.Reason)
	case g.RedScore == 0:
		out.Ended = true
		out.Winner = TeamRed
		out.Reason = ReasonVictory
		g.end(out.Winner, out.Reason)
	case g.BlueScore == 0:
		out.Ended = true
		out.Winner = TeamBlue
		out.Reason = ReasonVictory
		g.end(out.Winner, out.Reason)
	case color != m.Team:
		out.TurnEnded = true
		g.flipTurn()
	case g.AttemptsRemaining == 0:
		out.TurnEnded = true
		g.flipTurn()
	}
	return out, nil
}

// PassTurn lets a guessing agent of the active team give up the rest of the
// attempts.
func (g *Codenames) PassTurn(m *Membership) error {
	if g.GamePhase != PhaseGuessing {
		return ErrWrongPhase
	}
	if m.Team != g.CurrentTurn {
		return ErrNotYourTurn
	}
	if IsSpymaster(m.Role) {
		return ErrSpymasterCannotGuess
	}
	g.flipTurn()
	return nil
}

// Reset deals a fresh grid. A game still in the lobby stays there, so the
// team checks in Start are not skipped; otherwise play goes straight back to
// waiting for the first red clue. Roles and teams survive.
func (g *Codenames) Reset() {
	g.deal()
	if g.GamePhase != PhaseLobby {
		g.GamePhase = PhaseWaitingClue
	}
}

func (g *Codenames) end(winner, reason string) {
	g.GamePhase = PhaseEnded
	g.Winner = winner
	g.EndReason = reason
	g.CurrentClue = nil
	g.AttemptsRemaining = 0
}

func (g *Codenames) flipTurn() {
	g.CurrentTurn = opponent(g.CurrentTurn)
	g.GamePhase = PhaseWaitingClue
	g.CurrentClue = nil
	g.AttemptsRemaining = 0
}

func opponent(team string) string {
	if team == TeamRed {
		return TeamBlue
	}
	return TeamRed
}

// Variant implements GameState.
func (g *Codenames) Variant() Variant { return VariantCodenamez }

// Phase implements GameState.
func (g *Codenames) Phase() string { return g.GamePhase }

// View implements GameState. The full state is sent to every member; the
// client decides what to show (the server stays authoritative either way).
func (g *Codenames) View() interface{} { return g }
