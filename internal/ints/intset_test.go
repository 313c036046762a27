package ints

import (
	"testing"
)

func TestAddRemoveContains(t *testing.T) {
	s := NewSet(1, 40, 7)
	for _, item := range []int{1, 7, 40} {
		if !s.Contains(item) {
			t.Fatalf("expecting %d in set", item)
		}
	}
	for _, item := range []int{0, 2, 39, 41, 100, -1} {
		if s.Contains(item) {
			t.Fatalf("not expecting %d in set", item)
		}
	}

	s.Remove(7)
	if s.Contains(7) {
		t.Fatal("7 not removed")
	}
	s.Remove(1000)
	if s.IsEmpty() {
		t.Fatal("set should not be empty")
	}
}

func TestToSlice(t *testing.T) {
	s := NewSet(33, 2, 0, 65)
	got := s.ToSlice()
	expected := []int{0, 2, 33, 65}
	if len(got) != len(expected) {
		t.Fatalf("expecting %v, got %v", expected, got)
	}
	for i, item := range expected {
		if got[i] != item {
			t.Fatalf("expecting %v, got %v", expected, got)
		}
	}
}

func TestIsEmpty(t *testing.T) {
	s := NewSet()
	if !s.IsEmpty() {
		t.Fatal("new set should be empty")
	}

	s.Add(5)
	if s.IsEmpty() {
		t.Fatal("set should not be empty")
	}

	s.Remove(5)
	if !s.IsEmpty() {
		t.Fatal("set should be empty again")
	}
}
