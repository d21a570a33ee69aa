package game

// Scorer turns the final piles into per-player scores. The exact scopa
// scoring rule is deliberately pluggable; pick one in the configuration.
type Scorer interface {
	Score(order []string, players map[string]*ScopaPlayer) map[string]int
}

// NewScorer maps a config name to a scorer. Unknown names fall back to the
// simple rule.
func NewScorer(name string) Scorer {
	if name == "classic" {
		return ClassicScorer{}
	}
	return SimpleScorer{}
}

// SimpleScorer reproduces the source behavior: one point per scopa plus a
// coarse bonus for the size of the captured pile.
type SimpleScorer struct{}

func (SimpleScorer) Score(order []string, players map[string]*ScopaPlayer) map[string]int {
	scores := make(map[string]int, len(order))
	for _, id := range order {
		p := players[id]
		scores[id] = p.Scope + len(p.Captured)/10
	}
	return scores
}

// ClassicScorer implements the traditional four categories on top of the
// scopa count: most cards, most denari, the settebello, and primiera.
// Every category needs a strict maximum to award its point.
type ClassicScorer struct{}

// primiera card values; the best card per suit is summed.
var primieraValue = map[int]int{
	7: 21, 6: 18, 1: 16, 5: 15, 4: 14, 3: 13, 2: 12, 8: 10, 9: 10, 10: 10,
}

func (ClassicScorer) Score(order []string, players map[string]*ScopaPlayer) map[string]int {
	scores := make(map[string]int, len(order))
	cards := make(map[string]int, len(order))
	denari := make(map[string]int, len(order))
	prime := make(map[string]int, len(order))

	for _, id := range order {
		p := players[id]
		scores[id] = p.Scope
		cards[id] = len(p.Captured)
		best := map[string]int{}
		for _, c := range p.Captured {
			if c.Suit == "denari" {
				denari[id]++
				if c.Value == 7 {
					scores[id]++ // settebello
				}
			}
			if v := primieraValue[c.Value]; v > best[c.Suit] {
				best[c.Suit] = v
			}
		}
		for _, v := range best {
			prime[id] += v
		}
	}
	for _, category := range []map[string]int{cards, denari, prime} {
		if id := strictMax(order, category); id != "" {
			scores[id]++
		}
	}
	return scores
}

func strictMax(order []string, m map[string]int) string {
	best, id, tied := -1, "", false
	for _, k := range order {
		switch v := m[k]; {
		case v > best:
			best, id, tied = v, k, false
		case v == best:
			tied = true
		}
	}
	if tied {
		return ""
	}
	return id
}
