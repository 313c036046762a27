package queue

import (
	"testing"
)

func TestFifoOrder(t *testing.T) {
	q := New(1, 2)
	q.Append(3)
	for i, expected := range []int{1, 2, 3} {
		got, ok := q.First()
		if !ok || got != expected {
			t.Fatalf("item #%d: expecting %d, got %d (%v)", i, expected, got, ok)
		}
	}

	_, ok := q.First()
	if ok {
		t.Fatal("expecting empty queue")
	}
}

func TestGrow(t *testing.T) {
	q := New[int]()
	for i := 0; i < 100; i++ {
		q.Append(i)
	}
	if q.Len() != 100 {
		t.Fatalf("expecting len 100, got %d", q.Len())
	}

	for i := 0; i < 100; i++ {
		got, ok := q.First()
		if !ok || got != i {
			t.Fatalf("item #%d: got %d (%v)", i, got, ok)
		}
	}
	if !q.IsEmpty() {
		t.Fatal("expecting empty queue")
	}
}

func TestInterleaved(t *testing.T) {
	q := New[string]()
	q.Append("a").Append("b")
	got, _ := q.First()
	if got != "a" {
		t.Fatalf("expecting a, got %s", got)
	}

	q.Append("c")
	for _, expected := range []string{"b", "c"} {
		got, ok := q.First()
		if !ok || got != expected {
			t.Fatalf("expecting %s, got %s", expected, got)
		}
	}
}
