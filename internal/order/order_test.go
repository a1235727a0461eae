package order

import (
	"errors"
	"testing"
)

type testItem struct {
	key  string
	idx  *int
	done bool
	rank int
}

func (t testItem) Key() string { return t.key }

func (t testItem) OrderIndex() (int, bool) {
	if t.idx == nil {
		return 0, false
	}
	return *t.idx, true
}

func (t testItem) WithOrderIndex(i int) testItem {
	t.idx = &i
	return t
}

func item(key string, idx int, done bool) testItem {
	return testItem{key: key, idx: &idx, done: done}
}

func pending(t testItem) bool { return !t.done }

func keys(items []testItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.key
	}
	return out
}

func assertOrder(t *testing.T, items []testItem, want ...string) {
	t.Helper()
	got := keys(items)
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
		if idx, ok := items[i].OrderIndex(); !ok || idx != i {
			t.Fatalf("item %q has index (%d, %v), want (%d, true)", items[i].key, idx, ok, i)
		}
	}
}

func TestSortedUnorderedLast(t *testing.T) {
	items := []testItem{
		{key: "legacy-1"},
		item("b", 1, false),
		{key: "legacy-2"},
		item("a", 0, false),
	}
	got := Sorted(items)
	if want := []string{"a", "b", "legacy-1", "legacy-2"}; keys(got)[0] != want[0] || keys(got)[1] != want[1] || keys(got)[2] != want[2] || keys(got)[3] != want[3] {
		t.Fatalf("got %v, want %v", keys(got), want)
	}
}

func TestNormalizeAllIndexed(t *testing.T) {
	items := []testItem{item("b", 1, false), item("a", 0, false)}
	out, changed := Normalize(items, func(a, b testItem) bool { return a.rank < b.rank })
	if changed {
		t.Fatal("fully indexed collection must not report changes")
	}
	if keys(out)[0] != "a" || keys(out)[1] != "b" {
		t.Fatalf("got %v", keys(out))
	}
}

func TestNormalizeFillsOnlyMissing(t *testing.T) {
	// "mid" has no index; fallback rank puts it between a and b. Existing
	// indexes survive, only the gap is filled by fallback position.
	items := []testItem{
		{key: "mid", rank: 1},
		testItem{key: "a", idx: intp(0), rank: 0},
		testItem{key: "b", idx: intp(2), rank: 2},
	}
	out, changed := Normalize(items, func(a, b testItem) bool { return a.rank < b.rank })
	if !changed {
		t.Fatal("collection with a missing index must report changes")
	}
	got := keys(out)
	if got[0] != "a" || got[1] != "mid" || got[2] != "b" {
		t.Fatalf("got %v, want [a mid b]", got)
	}
}

func TestReorderPrimary(t *testing.T) {
	items := []testItem{
		item("A", 0, false),
		item("B", 1, false),
		item("C", 2, false),
		item("D", 3, true),
		item("E", 4, true),
	}
	out, err := Reorder(items, pending, Primary, []string{"C", "A", "B"})
	if err != nil {
		t.Fatalf("reorder: %v", err)
	}
	assertOrder(t, out, "C", "A", "B", "D", "E")
}

func TestReorderSecondaryKeepsPrimaryFirst(t *testing.T) {
	items := []testItem{
		item("A", 0, false),
		item("B", 1, false),
		item("D", 2, true),
		item("E", 3, true),
	}
	out, err := Reorder(items, pending, Secondary, []string{"E", "D"})
	if err != nil {
		t.Fatalf("reorder: %v", err)
	}
	// Rearranging the secondary partition never moves it ahead of primary.
	assertOrder(t, out, "A", "B", "E", "D")
}

func TestReorderValidation(t *testing.T) {
	items := []testItem{
		item("A", 0, false),
		item("B", 1, false),
		item("D", 2, true),
	}

	if _, err := Reorder(items, pending, Primary, []string{"A"}); !errors.Is(err, ErrKeyMismatch) {
		t.Fatalf("expected ErrKeyMismatch, got: %v", err)
	}
	if _, err := Reorder(items, pending, Primary, []string{"A", "D"}); !errors.Is(err, ErrUnknownKey) {
		t.Fatalf("expected ErrUnknownKey for cross-partition key, got: %v", err)
	}
	if _, err := Reorder(items, pending, Primary, []string{"A", "A"}); !errors.Is(err, ErrDuplicateKey) {
		t.Fatalf("expected ErrDuplicateKey, got: %v", err)
	}
}

func TestMoveToPartitionAppendsToEnd(t *testing.T) {
	items := []testItem{
		item("A", 0, false),
		item("B", 1, false),
		item("C", 2, false),
		item("D", 3, true),
	}
	out, err := MoveToPartition(items, "B", pending, func(it testItem) testItem {
		it.done = !it.done
		return it
	})
	if err != nil {
		t.Fatalf("move: %v", err)
	}
	assertOrder(t, out, "A", "C", "D", "B")

	// Un-completing B lands it at the end of pending, not its old slot.
	back, err := MoveToPartition(out, "B", pending, func(it testItem) testItem {
		it.done = !it.done
		return it
	})
	if err != nil {
		t.Fatalf("move back: %v", err)
	}
	assertOrder(t, back, "A", "C", "B", "D")
}

func TestMoveToPartitionUnknownKey(t *testing.T) {
	items := []testItem{item("A", 0, false)}
	if _, err := MoveToPartition(items, "missing", pending, func(it testItem) testItem { return it }); !errors.Is(err, ErrUnknownKey) {
		t.Fatalf("expected ErrUnknownKey, got: %v", err)
	}
}

func intp(i int) *int { return &i }
