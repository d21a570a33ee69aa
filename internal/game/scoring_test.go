package game

import (
	"reflect"
	"testing"
)

func pile(players map[string][]Card, scope map[string]int) map[string]*ScopaPlayer {
	out := make(map[string]*ScopaPlayer, len(players))
	for id, captured := range players {
		out[id] = &ScopaPlayer{ID: id, Captured: captured, Scope: scope[id]}
	}
	return out
}

func TestNewScorer(t *testing.T) {
	if _, ok := NewScorer("classic").(ClassicScorer); !ok {
		t.Fatal("classic not mapped")
	}
	if _, ok := NewScorer("simple").(SimpleScorer); !ok {
		t.Fatal("simple not mapped")
	}
	if _, ok := NewScorer("nonsense").(SimpleScorer); !ok {
		t.Fatal("unknown names should fall back to simple")
	}
}

func TestSimpleScorer(t *testing.T) {
	many := make([]Card, 25)
	for i := range many {
		many[i] = Card{Suit: Suits[i%4], Value: i%10 + 1}
	}
	players := pile(
		map[string][]Card{"a": many, "b": make([]Card, 9)},
		map[string]int{"a": 2, "b": 1},
	)
	got := SimpleScorer{}.Score([]string{"a", "b"}, players)
	// a: 2 scope + 25/10. b: 1 scope, nine cards round down to nothing.
	want := map[string]int{"a": 4, "b": 1}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("scores = %v, want %v", got, want)
	}
}

func TestClassicScorer(t *testing.T) {
	players := pile(
		map[string][]Card{
			"a": {
				{Suit: "denari", Value: 7},
				{Suit: "denari", Value: 6},
				{Suit: "coppe", Value: 7},
				{Suit: "bastoni", Value: 7},
				{Suit: "spade", Value: 7},
			},
			"b": {
				{Suit: "coppe", Value: 2},
			},
		},
		map[string]int{},
	)
	got := ClassicScorer{}.Score([]string{"a", "b"}, players)
	// a sweeps all four categories: most cards, most denari, the settebello,
	// and a full 84-point primiera.
	want := map[string]int{"a": 4, "b": 0}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("scores = %v, want %v", got, want)
	}
}

func TestClassicScorerTiedCategoriesAwardNothing(t *testing.T) {
	players := pile(
		map[string][]Card{
			"a": {{Suit: "denari", Value: 3}, {Suit: "coppe", Value: 3}},
			"b": {{Suit: "denari", Value: 5}, {Suit: "spade", Value: 3}},
		},
		map[string]int{"a": 1},
	)
	got := ClassicScorer{}.Score([]string{"a", "b"}, players)
	// Cards tie 2-2 and denari tie 1-1. Primiera: a has 13+13=26, b has
	// 15+13=28, so b takes that point. The scopa stays with a.
	want := map[string]int{"a": 1, "b": 1}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("scores = %v, want %v", got, want)
	}
}

func TestStrictMax(t *testing.T) {
	order := []string{"a", "b", "c"}
	tests := []struct {
		name string
		m    map[string]int
		want string
	}{
		{"clear winner", map[string]int{"a": 3, "b": 5, "c": 1}, "b"},
		{"tie at the top", map[string]int{"a": 5, "b": 5, "c": 1}, ""},
		{"all zero", map[string]int{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := strictMax(order, tt.m); got != tt.want {
				t.Fatalf("strictMax(%v) = %q, want %q", tt.m, got, tt.want)
			}
		})
	}
}
