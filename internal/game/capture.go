package game

// Captures enumerates every non-empty subset of table positions whose values
// sum to exactly target. Subsets are returned as ascending index slices.
//
// More than one legal capture can exist at once (a lone 7 next to a 3+4);
// the scopa rules leave the choice to the player, so the resolver returns
// all of them and the engine asks the player to pick. Enumeration is a
// depth-first scan in table order with branches pruned as soon as the
// running sum exceeds target, which makes the output order stable for
// identical input.
func Captures(target int, table []Card) [][]int {
	var found [][]int
	idx := make([]int, 0, len(table))

	var walk func(start, sum int)
	walk = func(start, sum int) {
		for i := start; i < len(table); i++ {
			next := sum + table[i].Value
			if next > target {
				// The table is unordered, so later positions may
				// still fit; skip just this branch.
				continue
			}
			idx = append(idx, i)
			if next == target {
				found = append(found, append([]int(nil), idx...))
			} else {
				walk(i+1, next)
			}
			idx = idx[:len(idx)-1]
		}
	}
	walk(0, 0)
	return found
}
