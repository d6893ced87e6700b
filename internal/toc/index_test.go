package toc_test

import (
	"errors"
	"testing"

	"github.com/g5becks/mdtoc/internal/toc"
)

func TestIncreaseIndexCountsPerLevel(t *testing.T) {
	t.Parallel()

	state := make(toc.OrderedIndexState)
	levels := []int{1, 2, 2, 1}
	want := []int{1, 1, 2, 2}

	prev := 0
	for i, level := range levels {
		got, err := toc.IncreaseIndex(state, prev, level, toc.Github)
		if err != nil {
			t.Fatalf("increaseIndex() error = %v", err)
		}
		if got != want[i] {
			t.Fatalf("increaseIndex() step %d = %d, want %d", i, got, want[i])
		}
		prev = level
	}
}

func TestIncreaseIndexOverflow(t *testing.T) {
	t.Parallel()

	state := toc.OrderedIndexState{2: 999_999_999}
	_, err := toc.IncreaseIndex(state, 2, 2, toc.Github)
	if !errors.Is(err, toc.ErrOrderedListMarkerOverflow) {
		t.Fatalf("increaseIndex() error = %v, want ErrOrderedListMarkerOverflow", err)
	}
}

func TestIncreaseIndexNoOverflowForRedcarpet(t *testing.T) {
	t.Parallel()

	state := toc.OrderedIndexState{1: 999_999_999}
	got, err := toc.IncreaseIndex(state, 1, 1, toc.Redcarpet)
	if err != nil {
		t.Fatalf("increaseIndex() error = %v", err)
	}
	if got != 1_000_000_000 {
		t.Fatalf("increaseIndex() = %d, want 1000000000", got)
	}
}
