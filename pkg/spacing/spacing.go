// Package spacing randomizes study queues while keeping paired items apart.
//
// A card studied in both directions appears twice in a session queue; showing
// the two presentations back to back defeats the point of the second one. The
// shuffle here guarantees a minimum positional gap between items sharing a
// key, falling back to the widest achievable gap when the queue is too short.
package spacing

import "math/rand"

// Shuffle returns a random permutation of items in which any two items with
// the same key end up at least minSpacing positions apart, best-effort when
// the slice is too short to honor the gap. The input is never mutated.
func Shuffle[T any](items []T, minSpacing int, key func(T) int64) []T {
	if len(items) <= 1 {
		out := make([]T, len(items))
		copy(out, items)
		return out
	}

	type deferred struct {
		item    T
		partner int64
	}

	seen := make(map[int64]struct{}, len(items))
	base := make([]T, 0, len(items))
	var rest []deferred
	for _, item := range items {
		k := key(item)
		if _, ok := seen[k]; ok {
			rest = append(rest, deferred{item: item, partner: k})
			continue
		}
		seen[k] = struct{}{}
		base = append(base, item)
	}

	if len(rest) == 0 {
		// No pairing constraint; a plain Fisher-Yates shuffle suffices.
		out := make([]T, len(items))
		copy(out, items)
		rand.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
		return out
	}

	rand.Shuffle(len(base), func(i, j int) { base[i], base[j] = base[j], base[i] })
	// Shuffle the deferred items too so their insertion order carries no bias.
	rand.Shuffle(len(rest), func(i, j int) { rest[i], rest[j] = rest[j], rest[i] })

	for _, d := range rest {
		base = insertApart(base, d.item, indexOfKey(base, d.partner, key), minSpacing)
	}
	return base
}

func indexOfKey[T any](items []T, k int64, key func(T) int64) int {
	for i, item := range items {
		if key(item) == k {
			return i
		}
	}
	return -1
}

// insertApart inserts item into base at a position at least minSpacing away
// from partner (an index into base). Among all legal positions one is picked
// uniformly at random; if none exists the position with the widest gap wins.
func insertApart[T any](base []T, item T, partner, minSpacing int) []T {
	var legal []int
	best, bestGap := 0, -1
	for i := 0; i <= len(base); i++ {
		effective := partner
		if i <= partner {
			effective = partner + 1
		}
		gap := i - effective
		if gap < 0 {
			gap = -gap
		}
		if gap >= minSpacing {
			legal = append(legal, i)
		}
		if gap > bestGap {
			bestGap = gap
			best = i
		}
	}

	at := best
	if len(legal) > 0 {
		at = legal[rand.Intn(len(legal))]
	}

	base = append(base, item)
	copy(base[at+1:], base[at:])
	base[at] = item
	return base
}
