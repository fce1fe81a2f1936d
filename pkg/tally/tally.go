package tally

import "sort"

// Tally counts occurrences of integer keys.
type Tally struct {
	counts map[int]int
}

func New() *Tally {
	return &Tally{
		counts: make(map[int]int),
	}
}

func (t *Tally) Add(key int) {
	t.counts[key]++
}

// AddRange counts every key in the inclusive range [from, to].
func (t *Tally) AddRange(from, to int) {
	for k := from; k <= to; k++ {
		t.counts[k]++
	}
}

func (t *Tally) Count(key int) int {
	return t.counts[key]
}

func (t *Tally) Len() int {
	return len(t.counts)
}

// Max returns the key with the highest count. Equal counts resolve to the
// smallest key. ok is false when nothing has been counted.
func (t *Tally) Max() (key int, count int, ok bool) {
	keys := make([]int, 0, len(t.counts))
	for k := range t.counts {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	for _, k := range keys {
		if !ok || t.counts[k] > count {
			key, count, ok = k, t.counts[k], true
		}
	}
	return key, count, ok
}
