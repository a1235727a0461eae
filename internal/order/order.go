// Package order maintains a user-controlled ordering over a collection
// split into two partitions (pending/completed, enabled/disabled). All
// functions are pure: they return a new slice with order indexes
// reassigned as contiguous positions, primary partition before secondary.
package order

import (
	"errors"
	"fmt"
	"sort"
)

var (
	ErrUnknownKey   = errors.New("order: unknown key")
	ErrDuplicateKey = errors.New("order: duplicate key")
	ErrKeyMismatch  = errors.New("order: key sequence does not cover partition")
)

// Item is implemented by values that carry a user-controlled position.
// OrderIndex returns false when the value has no position yet (data from
// older app versions or imports).
type Item[T any] interface {
	Key() string
	OrderIndex() (int, bool)
	WithOrderIndex(int) T
}

// Sorted returns a copy sorted by order index. Items without an index
// keep their relative input order after all indexed items.
func Sorted[T Item[T]](items []T) []T {
	out := append([]T(nil), items...)
	sort.SliceStable(out, func(i, j int) bool {
		oi, oki := out[i].OrderIndex()
		oj, okj := out[j].OrderIndex()
		if oki && okj {
			return oi < oj
		}
		return oki && !okj
	})
	return out
}

// Normalize fills in missing order indexes. When every item already has
// one the input is returned sorted with changed=false. Otherwise the
// whole collection is stable-sorted by the fallback comparison, items
// without an index get their position assigned, and changed=true tells
// the caller to persist the result (write-back-on-read).
func Normalize[T Item[T]](items []T, less func(a, b T) bool) (out []T, changed bool) {
	needs := false
	for _, it := range items {
		if _, ok := it.OrderIndex(); !ok {
			needs = true
			break
		}
	}
	if !needs {
		return Sorted(items), false
	}

	fallback := append([]T(nil), items...)
	sort.SliceStable(fallback, func(i, j int) bool { return less(fallback[i], fallback[j]) })
	for i, it := range fallback {
		if _, ok := it.OrderIndex(); !ok {
			fallback[i] = it.WithOrderIndex(i)
		}
	}
	return Sorted(fallback), true
}

// Partition selects which of the two partitions a reorder targets. The
// serialized concatenation is always primary before secondary, no matter
// which partition was rearranged.
type Partition int

const (
	Primary Partition = iota
	Secondary
)

// Reorder replaces the relative order of one partition with the
// caller-supplied key sequence. The other partition keeps its existing
// relative order; order indexes are reassigned across the
// primary-then-secondary concatenation. The key sequence must be an
// exact permutation of the target partition's keys.
func Reorder[T Item[T]](all []T, inPrimary func(T) bool, target Partition, orderedKeys []string) ([]T, error) {
	primary := make([]T, 0, len(all))
	secondary := make([]T, 0, len(all))
	for _, it := range Sorted(all) {
		if inPrimary(it) {
			primary = append(primary, it)
		} else {
			secondary = append(secondary, it)
		}
	}

	var err error
	if target == Primary {
		primary, err = arrange(primary, orderedKeys)
	} else {
		secondary, err = arrange(secondary, orderedKeys)
	}
	if err != nil {
		return nil, err
	}
	return reindex(append(primary, secondary...)), nil
}

func arrange[T Item[T]](items []T, orderedKeys []string) ([]T, error) {
	if len(orderedKeys) != len(items) {
		return nil, fmt.Errorf("%w: got %d keys, partition has %d items", ErrKeyMismatch, len(orderedKeys), len(items))
	}
	byKey := make(map[string]T, len(items))
	for _, it := range items {
		byKey[it.Key()] = it
	}
	out := make([]T, 0, len(items))
	seen := make(map[string]bool, len(orderedKeys))
	for _, key := range orderedKeys {
		it, ok := byKey[key]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownKey, key)
		}
		if seen[key] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateKey, key)
		}
		seen[key] = true
		out = append(out, it)
	}
	return out, nil
}

// MoveToPartition flips one item to the other partition via flip and
// appends it to the end of its new partition's relative order. Both
// directions append; an item completed and then un-completed lands at
// the end of the pending list, not its old slot.
func MoveToPartition[T Item[T]](all []T, key string, inPrimary func(T) bool, flip func(T) T) ([]T, error) {
	var moved T
	found := false
	rest := make([]T, 0, len(all))
	for _, it := range Sorted(all) {
		if it.Key() == key {
			moved = flip(it)
			found = true
			continue
		}
		rest = append(rest, it)
	}
	if !found {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}

	primary := make([]T, 0, len(all))
	secondary := make([]T, 0, len(all))
	for _, it := range rest {
		if inPrimary(it) {
			primary = append(primary, it)
		} else {
			secondary = append(secondary, it)
		}
	}
	if inPrimary(moved) {
		primary = append(primary, moved)
	} else {
		secondary = append(secondary, moved)
	}
	return reindex(append(primary, secondary...)), nil
}

func reindex[T Item[T]](items []T) []T {
	for i, it := range items {
		items[i] = it.WithOrderIndex(i)
	}
	return items
}
