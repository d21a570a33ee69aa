package game

import "math/rand"

// Italian 40-card deck.
var Suits = []string{"denari", "coppe", "bastoni", "spade"}

const DeckSize = 40

// Card is one card of the Italian deck. Value runs 1..10.
type Card struct {
	Suit  string `json:"suit"`
	Value int    `json:"value"`
}

// Scopa phases.
const (
	ScopaPhaseLobby   = "lobby"
	ScopaPhasePlaying = "playing"
	ScopaPhaseEnded   = "ended"
)

// Scopa player limits.
const (
	ScopaMinPlayers = 2
	ScopaMaxPlayers = 4
	scopaHandSize   = 3
	scopaTableSize  = 4
)

// ScopaPlayer is the per-participant side of the game.
type ScopaPlayer struct {
	ID       string
	Hand     []Card
	Captured []Card
	Scope    int
}

// pendingPlay is a card removed from a hand that is waiting for the player
// to pick one of several legal captures.
type pendingPlay struct {
	playerID string
	card     Card
	options  [][]int
}

// Scopa is the authoritative card-capture game state. All mutation happens
// under the owning room's lock. Every card is in exactly one of deck, table,
// a hand, a captured pile or the single pending play at all times.
type Scopa struct {
	GamePhase string
	Deck      []Card
	Table     []Card
	Order     []string
	Players   map[string]*ScopaPlayer
	Turn      int
	Round     int

	pending      *pendingPlay
	lastCapturer string
	scorer       Scorer
}

// NewScopa assembles the deck in suit order without shuffling; shuffling and
// dealing happen at game start.
func NewScopa(scorer Scorer) *Scopa {
	if scorer == nil {
		scorer = SimpleScorer{}
	}
	g := &Scopa{
		GamePhase: ScopaPhaseLobby,
		Players:   make(map[string]*ScopaPlayer),
		scorer:    scorer,
	}
	for _, s := range Suits {
		for v := 1; v <= 10; v++ {
			g.Deck = append(g.Deck, Card{Suit: s, Value: v})
		}
	}
	return g
}

// Start shuffles the deck and deals 4 cards to the table and 3 to each
// player in join order.
func (g *Scopa) Start(order []string) error {
	if g.GamePhase != ScopaPhaseLobby {
		return ErrWrongPhase
	}
	if len(order) < ScopaMinPlayers || len(order) > ScopaMaxPlayers {
		return ErrPlayerCountInvalid
	}
	rand.Shuffle(len(g.Deck), func(i, j int) { g.Deck[i], g.Deck[j] = g.Deck[j], g.Deck[i] })

	g.Order = append([]string(nil), order...)
	for _, id := range g.Order {
		g.Players[id] = &ScopaPlayer{ID: id}
	}
	g.Table = g.draw(scopaTableSize)
	g.dealHands()
	g.Turn = 0
	g.Round = 1
	g.GamePhase = ScopaPhasePlaying
	return nil
}

func (g *Scopa) draw(n int) []Card {
	if n > len(g.Deck) {
		n = len(g.Deck)
	}
	cards := append([]Card(nil), g.Deck[:n]...)
	g.Deck = g.Deck[n:]
	return cards
}

func (g *Scopa) dealHands() {
	per := scopaHandSize
	if len(g.Deck) < per*len(g.Order) {
		per = len(g.Deck) / len(g.Order)
	}
	for _, id := range g.Order {
		g.Players[id].Hand = append(g.Players[id].Hand, g.draw(per)...)
	}
}

// CurrentPlayer returns the id of the participant whose turn it is.
func (g *Scopa) CurrentPlayer() string {
	if len(g.Order) == 0 {
		return ""
	}
	return g.Order[g.Turn]
}

// PlayOutcome reports what playing a card did. A non-nil Options means the
// engine is waiting for the player to choose a capture and nothing else has
// moved yet.
type PlayOutcome struct {
	PlayerID string
	Played   Card
	Options  [][]Card
	Dealt    bool
	Ended    bool
	Winner   string
	Scores   map[string]int
}

// PlayCard removes the card at handIndex from the acting player's hand and
// resolves it against the table. With no legal capture the card goes face-up
// onto the table and the turn advances; with one or more captures the engine
// stops and reports the candidate subsets, waiting for TakeCards.
func (g *Scopa) PlayCard(playerID string, handIndex int) (PlayOutcome, error) {
	if g.GamePhase != ScopaPhasePlaying {
		return PlayOutcome{}, ErrWrongPhase
	}
	if g.pending != nil {
		return PlayOutcome{}, errorf(ErrWrongPhase, "waiting for a capture choice")
	}
	if playerID != g.CurrentPlayer() {
		return PlayOutcome{}, ErrNotYourTurn
	}
	p := g.Players[playerID]
	if handIndex < 0 || handIndex >= len(p.Hand) {
		return PlayOutcome{}, ErrInvalidCard
	}

	card := p.Hand[handIndex]
	p.Hand = append(p.Hand[:handIndex], p.Hand[handIndex+1:]...)

	out := PlayOutcome{PlayerID: playerID, Played: card}
	options := Captures(card.Value, g.Table)
	if len(options) > 0 {
		g.pending = &pendingPlay{playerID: playerID, card: card, options: options}
		out.Options = make([][]Card, len(options))
		for i, idx := range options {
			take := make([]Card, len(idx))
			for j, k := range idx {
				take[j] = g.Table[k]
			}
			out.Options[i] = take
		}
		return out, nil
	}

	g.Table = append(g.Table, card)
	g.advance(&out)
	return out, nil
}

// TakeCards completes a pending play: the chosen table cards plus the played
// card move to the player's captured pile. The choice is re-validated
// against the table so a stale or forged message cannot move cards the
// rules would not allow.
type TakeOutcome struct {
	PlayerID string
	Played   Card
	Taken    []Card
	IsScopa  bool
	Dealt    bool
	Ended    bool
	Winner   string
	Scores   map[string]int
}

func (g *Scopa) TakeCards(playerID string, played Card, taken []Card) (TakeOutcome, error) {
	if g.GamePhase != ScopaPhasePlaying {
		return TakeOutcome{}, ErrWrongPhase
	}
	if g.pending == nil || g.pending.playerID != playerID {
		return TakeOutcome{}, ErrNoPendingCapture
	}
	if played != g.pending.card {
		return TakeOutcome{}, errorf(ErrIllegalCapture, "played card does not match the pending play")
	}
	if len(taken) == 0 {
		return TakeOutcome{}, ErrIllegalCapture
	}

	// Resolve the chosen cards to distinct table positions and check the sum.
	used := make([]bool, len(g.Table))
	idx := make([]int, 0, len(taken))
	sum := 0
	for _, c := range taken {
		found := -1
		for i, t := range g.Table {
			if !used[i] && t == c {
				found = i
				break
			}
		}
		if found < 0 {
			return TakeOutcome{}, errorf(ErrIllegalCapture, "card %s %d is not on the table", c.Suit, c.Value)
		}
		used[found] = true
		idx = append(idx, found)
		sum += c.Value
	}
	if sum != played.Value {
		return TakeOutcome{}, errorf(ErrIllegalCapture, "chosen cards sum to %d, not %d", sum, played.Value)
	}

	p := g.Players[playerID]
	rest := g.Table[:0]
	for i, c := range g.Table {
		if !used[i] {
			rest = append(rest, c)
		}
	}
	g.Table = rest
	p.Captured = append(p.Captured, played)
	p.Captured = append(p.Captured, taken...)
	g.lastCapturer = playerID
	g.pending = nil

	out := TakeOutcome{PlayerID: playerID, Played: played, Taken: taken}
	if len(g.Table) == 0 {
		p.Scope++
		out.IsScopa = true
	}

	var po PlayOutcome
	g.advance(&po)
	out.Dealt, out.Ended, out.Winner, out.Scores = po.Dealt, po.Ended, po.Winner, po.Scores
	return out, nil
}

// advance runs the shared post-play bookkeeping: redeal when every hand is
// empty and cards remain, end the game when the deck is exhausted too,
// otherwise pass the turn to the next seat.
func (g *Scopa) advance(out *PlayOutcome) {
	empty := true
	for _, id := range g.Order {
		if len(g.Players[id].Hand) > 0 {
			empty = false
			break
		}
	}
	if empty {
		if len(g.Deck) > 0 {
			g.dealHands()
			g.Round++
			out.Dealt = true
		} else {
			g.finish(out)
			return
		}
	}
	g.Turn = (g.Turn + 1) % len(g.Order)
}

// finish sweeps leftover table cards to the last capturer, scores the piles
// and ends the game. A strict maximum wins; ties leave no winner.
func (g *Scopa) finish(out *PlayOutcome) {
	if len(g.Table) > 0 && g.lastCapturer != "" {
		p := g.Players[g.lastCapturer]
		p.Captured = append(p.Captured, g.Table...)
		g.Table = nil
	}
	out.Scores = g.scorer.Score(g.Order, g.Players)
	best, winner, tied := -1, "", false
	for id, s := range out.Scores {
		switch {
		case s > best:
			best, winner, tied = s, id, false
		case s == best:
			tied = true
		}
	}
	if tied {
		winner = ""
	}
	out.Ended = true
	out.Winner = winner
	g.GamePhase = ScopaPhaseEnded
}

// Abandon ends the game without a winner when a seated player leaves
// mid-play.
func (g *Scopa) Abandon() {
	if g.GamePhase == ScopaPhasePlaying {
		g.GamePhase = ScopaPhaseEnded
		g.pending = nil
	}
}

// Reset rebuilds an unshuffled deck and returns to the lobby.
func (g *Scopa) Reset() {
	scorer := g.scorer
	*g = *NewScopa(scorer)
}

// PendingCard reports the card of an in-flight play, if any. Used by the
// conservation tests.
func (g *Scopa) PendingCard() (Card, bool) {
	if g.pending == nil {
		return Card{}, false
	}
	return g.pending.card, true
}

// Variant implements GameState.
func (g *Scopa) Variant() Variant { return VariantScopa }

// Phase implements GameState.
func (g *Scopa) Phase() string { return g.GamePhase }

// scopaPlayerView hides nothing but the deck order; the server is the only
// authority, so hands travel with the state.
type scopaPlayerView struct {
	ID            string `json:"id"`
	Hand          []Card `json:"hand"`
	CapturedCount int    `json:"captured_count"`
	Scope         int    `json:"scope"`
}

type scopaView struct {
	Phase       string                     `json:"phase"`
	Table       []Card                     `json:"table"`
	Players     map[string]scopaPlayerView `json:"players"`
	CurrentTurn string                     `json:"currentTurn"`
	Round       int                        `json:"round"`
	DeckCount   int                        `json:"deck_count"`
}

// View implements GameState.
func (g *Scopa) View() interface{} {
	players := make(map[string]scopaPlayerView, len(g.Players))
	for id, p := range g.Players {
		players[id] = scopaPlayerView{
			ID:            id,
			Hand:          p.Hand,
			CapturedCount: len(p.Captured),
			Scope:         p.Scope,
		}
	}
	return scopaView{
		Phase:       g.GamePhase,
		Table:       g.Table,
		Players:     players,
		CurrentTurn: g.CurrentPlayer(),
		Round:       g.Round,
		DeckCount:   len(g.Deck),
	}
}
