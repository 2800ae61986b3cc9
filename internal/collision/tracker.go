// Package collision detects duplicate category labels and xxHash64 collisions
// while a category axis builds its label lookup table.
package collision

import (
	"fmt"

	"github.com/arloliu/bootstraphist/errs"
)

// Tracker maps label hashes to bin positions in insertion order.
type Tracker struct {
	byHash map[uint64]int    // hash → bin
	labels []string          // bin → label
	owners map[uint64]string // hash → label, for collision reporting
}

// NewTracker creates a tracker sized for n labels.
func NewTracker(n int) *Tracker {
	return &Tracker{
		byHash: make(map[uint64]int, n),
		labels: make([]string, 0, n),
		owners: make(map[uint64]string, n),
	}
}

// Track registers label under hash and returns its bin position.
//
// Returns:
//   - errs.ErrDuplicateCategory if label was already tracked
//   - errs.ErrCategoryCollision if a different label already owns hash
func (t *Tracker) Track(label string, hash uint64) (int, error) {
	if existing, ok := t.owners[hash]; ok {
		if existing == label {
			return 0, fmt.Errorf("%w: %q", errs.ErrDuplicateCategory, label)
		}

		return 0, fmt.Errorf("%w: %q and %q", errs.ErrCategoryCollision, existing, label)
	}

	pos := len(t.labels)
	t.byHash[hash] = pos
	t.owners[hash] = label
	t.labels = append(t.labels, label)

	return pos, nil
}

// Lookup returns the bin position tracked for hash.
func (t *Tracker) Lookup(hash uint64) (int, bool) {
	pos, ok := t.byHash[hash]
	return pos, ok
}

// Labels returns the tracked labels in bin order.
// The returned slice must not be modified.
func (t *Tracker) Labels() []string {
	return t.labels
}

// Count returns the number of tracked labels.
func (t *Tracker) Count() int {
	return len(t.labels)
}
