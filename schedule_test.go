package treesort

import (
	"slices"
	"testing"
)

// simulateTree replays every worker's merge plan, from the highest index
// down so siblings are final before their master absorbs them. It returns
// how many times each worker was absorbed and the exclusive end (in block
// indices) of the range each worker owns at the end.
func simulateTree(t *testing.T, workers int) (absorbed, end []int) {
	t.Helper()
	absorbed = make([]int, workers)
	end = make([]int, workers)
	for i := range end {
		end[i] = i + 1
	}
	for i := workers - 1; i >= 0; i-- {
		plan := newMergePlan(i, workers)
		if plan.role() == roleLeaf && len(plan.siblings()) != 0 {
			t.Fatalf("workers=%d: leaf %d has siblings %v", workers, i, plan.siblings())
		}
		for _, s := range plan.siblings() {
			if s <= i || s >= workers {
				t.Fatalf("workers=%d: worker %d absorbs out-of-range sibling %d", workers, i, s)
			}
			if end[i] != s {
				t.Fatalf("workers=%d: worker %d owns [%d,%d) but absorbs %d", workers, i, i, end[i], s)
			}
			end[i] = end[s]
			absorbed[s]++
		}
	}
	return absorbed, end
}

// TestMergeTreeConverges checks, for every power-of-two worker count from 1
// to 64, that each worker other than 0 is absorbed exactly once and worker 0
// ends up owning every block.
func TestMergeTreeConverges(t *testing.T) {
	for workers := 1; workers <= 64; workers *= 2 {
		absorbed, end := simulateTree(t, workers)
		if absorbed[0] != 0 {
			t.Errorf("workers=%d: worker 0 absorbed %d times", workers, absorbed[0])
		}
		for i := 1; i < workers; i++ {
			if absorbed[i] != 1 {
				t.Errorf("workers=%d: worker %d absorbed %d times, want 1", workers, i, absorbed[i])
			}
		}
		if end[0] != workers {
			t.Errorf("workers=%d: worker 0 owns [0,%d), want [0,%d)", workers, end[0], workers)
		}
	}
}

// TestMergeTreeConvergesAnyCount covers worker counts that are not powers of
// two, which occur when the processor or page count bounds the workers.
func TestMergeTreeConvergesAnyCount(t *testing.T) {
	for workers := 1; workers <= 100; workers++ {
		absorbed, end := simulateTree(t, workers)
		for i := 1; i < workers; i++ {
			if absorbed[i] != 1 {
				t.Fatalf("workers=%d: worker %d absorbed %d times, want 1", workers, i, absorbed[i])
			}
		}
		if end[0] != workers {
			t.Fatalf("workers=%d: worker 0 owns [0,%d)", workers, end[0])
		}
	}
}

func TestSkipLimit(t *testing.T) {
	tests := []struct {
		workers int
		want    []int // skip limit per index
	}{
		{1, []int{0}},
		{2, []int{1, 0}},
		{4, []int{2, 0, 1, 0}},
		{8, []int{4, 0, 1, 0, 2, 0, 1, 0}},
		{6, []int{4, 0, 1, 0, 2, 0}},
	}
	for _, tt := range tests {
		got := make([]int, tt.workers)
		for i := range got {
			got[i] = skipLimit(i, tt.workers)
		}
		if !slices.Equal(got, tt.want) {
			t.Errorf("workers=%d: skip limits %v, want %v", tt.workers, got, tt.want)
		}
	}
}

func TestMergePlanSiblings(t *testing.T) {
	tests := []struct {
		index, workers int
		want           []int
	}{
		{0, 1, nil},
		{0, 2, []int{1}},
		{0, 8, []int{1, 2, 4}},
		{4, 8, []int{5, 6}},
		{2, 8, []int{3}},
		{3, 8, nil},
		{0, 6, []int{1, 2, 4}},
		{4, 6, []int{5}},
		{0, 64, []int{1, 2, 4, 8, 16, 32}},
		{32, 64, []int{33, 34, 36, 40, 48}},
	}
	for _, tt := range tests {
		plan := newMergePlan(tt.index, tt.workers)
		if got := plan.siblings(); !slices.Equal(got, tt.want) {
			t.Errorf("index=%d workers=%d: siblings %v, want %v", tt.index, tt.workers, got, tt.want)
		}
	}
}

func TestMergePlanRoles(t *testing.T) {
	for workers := 1; workers <= 16; workers++ {
		for i := range workers {
			r := newMergePlan(i, workers).role()
			if i%2 == 1 && r != roleLeaf {
				t.Errorf("workers=%d: odd worker %d is not a leaf", workers, i)
			}
			if i%2 == 0 && workers > 1 && i+1 < workers && r != roleMaster {
				t.Errorf("workers=%d: even worker %d with a sibling is not a master", workers, i)
			}
		}
	}
}
