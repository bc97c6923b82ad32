package tui

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestOptionHelpers(t *testing.T) {
	features := []string{"Low profile", "Specific voltage", "Integrated controls"}

	if got := optionIndex(features, "Integrated controls"); got != 2 {
		t.Fatalf("optionIndex = %d, want 2", got)
	}
	if got := optionIndex(features, "Unknown"); got != -1 {
		t.Fatalf("optionIndex unknown = %d, want -1", got)
	}
	if diff := cmp.Diff([]int{0, 2}, optionIndices(features, []string{"Integrated controls", "Low profile", "Gone"})); diff != "" {
		t.Fatalf("optionIndices (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Specific voltage"}, optionsAt(features, []int{1, 7, -1})); diff != "" {
		t.Fatalf("optionsAt (-want +got):\n%s", diff)
	}
}

func TestPageSize(t *testing.T) {
	cases := map[int]int{0: 1, 3: 3, 10: 10, 25: 10}
	for n, want := range cases {
		if got := pageSize(make([]string, n)); got != want {
			t.Fatalf("pageSize(%d) = %d, want %d", n, got, want)
		}
	}
}
