package list

import "testing"

// drain pops every node and returns the keys in eviction order.
func drain(l *List[string, int]) []string {
	var keys []string
	for !l.Empty() {
		keys = append(keys, l.PopHead().Key)
	}
	return keys
}

// Tail insertion must yield head-side eviction in insertion order.
func TestList_OrderAndLen(t *testing.T) {
	t.Parallel()

	l := New[string, int]()
	if !l.Empty() || l.Len() != 0 {
		t.Fatal("new list must be empty")
	}

	for i, k := range []string{"a", "b", "c"} {
		l.PushTail(&Node[string, int]{Key: k, Val: i})
		if l.Len() != i+1 {
			t.Fatalf("Len after %d pushes = %d", i+1, l.Len())
		}
	}

	got := drain(l)
	want := []string{"a", "b", "c"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("eviction order = %v, want %v", got, want)
		}
	}
}

// Removing a middle node must splice its neighbors together and nil the
// node's own links.
func TestList_RemoveMiddle(t *testing.T) {
	t.Parallel()

	l := New[string, int]()
	a := &Node[string, int]{Key: "a"}
	b := &Node[string, int]{Key: "b"}
	c := &Node[string, int]{Key: "c"}
	l.PushTail(a)
	l.PushTail(b)
	l.PushTail(c)

	l.Remove(b)
	if b.prev != nil || b.next != nil {
		t.Fatal("removed node must have nil links")
	}
	if got := drain(l); len(got) != 2 || got[0] != "a" || got[1] != "c" {
		t.Fatalf("after remove: %v", got)
	}
}

// Unlink-then-reinsert is the promotion idiom; the node must end up at
// the tail (most recent, last to evict).
func TestList_Reinsert(t *testing.T) {
	t.Parallel()

	l := New[string, int]()
	a := &Node[string, int]{Key: "a"}
	b := &Node[string, int]{Key: "b"}
	l.PushTail(a)
	l.PushTail(b)

	l.Remove(a)
	l.PushTail(a)

	if got := drain(l); got[0] != "b" || got[1] != "a" {
		t.Fatalf("after reinsert: %v", got)
	}
}

// Front must peek without unlinking; PopHead on empty must panic.
func TestList_FrontAndEmptyPop(t *testing.T) {
	t.Parallel()

	l := New[string, int]()
	if l.Front() != nil {
		t.Fatal("Front on empty must be nil")
	}
	l.PushTail(&Node[string, int]{Key: "a"})
	if l.Front().Key != "a" || l.Len() != 1 {
		t.Fatal("Front must not unlink")
	}
	l.PopHead()

	defer func() {
		if recover() == nil {
			t.Fatal("PopHead on empty list must panic")
		}
	}()
	l.PopHead()
}
