package domain

import (
	"sort"
	"sync"
)

// Outcome reports what Record did with a message.
type Outcome string

const (
	// OutcomeDuplicate means the sender already submitted this canonical message.
	OutcomeDuplicate Outcome = "duplicate"
	// OutcomeCounted means the tally for an already-known message grew by one.
	OutcomeCounted Outcome = "counted"
	// OutcomeFirst means a brand-new distinct message entered the tally.
	OutcomeFirst Outcome = "first"
)

// Entry is one ranked tally row.
type Entry struct {
	Message string
	Count   int
}

// Board is the dedup and tally store. One mutex guards the per-sender
// history and the global tally together, so Record, TopN and Reset are
// atomic with respect to each other: no caller can observe a state where
// one map is cleared and the other is not, and two concurrent Records
// for the same sender can never both pass the duplicate check.
type Board struct {
	mu      sync.Mutex
	seen    map[string]map[string]struct{}
	counts  map[string]int
	arrival map[string]int
	nextSeq int
}

func NewBoard() *Board {
	return &Board{
		seen:    make(map[string]map[string]struct{}),
		counts:  make(map[string]int),
		arrival: make(map[string]int),
	}
}

// Record normalizes raw and counts it for sender, unless the sender has
// already submitted the same canonical message. The duplicate check and
// the increment happen under a single lock acquisition. Empty senders
// and messages are legal values.
func (b *Board) Record(sender, raw string) Outcome {
	msg := Normalize(raw)

	b.mu.Lock()
	defer b.mu.Unlock()

	history, ok := b.seen[sender]
	if !ok {
		history = make(map[string]struct{})
		b.seen[sender] = history
	}
	if _, dup := history[msg]; dup {
		return OutcomeDuplicate
	}
	history[msg] = struct{}{}

	b.counts[msg]++
	if b.counts[msg] == 1 {
		b.arrival[msg] = b.nextSeq
		b.nextSeq++
		return OutcomeFirst
	}

	return OutcomeCounted
}

// TopN returns up to n entries ordered by count descending. Equal counts
// keep first-seen order, so repeated calls without intervening Records
// always return the same ranking.
func (b *Board) TopN(n int) []Entry {
	if n <= 0 {
		return nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	entries := make([]Entry, 0, len(b.counts))
	for msg, count := range b.counts {
		entries = append(entries, Entry{Message: msg, Count: count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return b.arrival[entries[i].Message] < b.arrival[entries[j].Message]
	})

	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

// Reset drops the sender history and the tally in one critical section.
// Clearing only one would let an old sender re-count after a reset, or
// block a fresh message from being tallied at all.
func (b *Board) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.seen = make(map[string]map[string]struct{})
	b.counts = make(map[string]int)
	b.arrival = make(map[string]int)
	b.nextSeq = 0
}

// Len reports the number of distinct messages currently tallied.
func (b *Board) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.counts)
}
