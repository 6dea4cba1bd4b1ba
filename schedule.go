package treesort

import intbits "github.com/tamirms/treesort/internal/bits"

// role is a worker's position in the merge tree.
type role uint8

const (
	roleLeaf   role = iota // sorts its block, then exits
	roleMaster             // sorts, then absorbs siblings
)

// mergePlan is the data-driven part of the tree merge: which siblings a
// worker absorbs and in what order. It is independent of how workers run.
type mergePlan struct {
	index     int
	workers   int
	skip      int
	skipLimit int
}

// newMergePlan returns the plan for worker index out of workers.
func newMergePlan(index, workers int) mergePlan {
	return mergePlan{
		index:     index,
		workers:   workers,
		skip:      1,
		skipLimit: skipLimit(index, workers),
	}
}

// skipLimit bounds how far a master climbs the tree.
//
// Worker 0 is the root and climbs until the largest power of two below the
// worker count. Any other master i owns the subtree [i, i+lowbit(i)), so it
// absorbs i+1, i+2, ..., i+lowbit(i)/2 and is then absorbed by
// i-lowbit(i). Odd indices have lowbit 1 and a limit of 0: they are leaves.
func skipLimit(index, workers int) int {
	if index == 0 {
		return intbits.FloorPowerOfTwo(workers - 1)
	}
	return intbits.LowBit(index) / 2
}

func (p mergePlan) role() role {
	if p.index%2 == 1 || p.skipLimit == 0 {
		return roleLeaf
	}
	return roleMaster
}

// next reports the sibling to absorb in the current round.
func (p mergePlan) next() (sibling int, ok bool) {
	if p.skip > p.skipLimit || p.index+p.skip >= p.workers {
		return 0, false
	}
	return p.index + p.skip, true
}

// advance moves the plan to the next round after a successful merge.
func (p *mergePlan) advance() {
	p.skip *= 2
}

// siblings lists every sibling the worker absorbs, in merge order.
func (p mergePlan) siblings() []int {
	var out []int
	for q := p; ; q.advance() {
		s, ok := q.next()
		if !ok {
			return out
		}
		out = append(out, s)
	}
}
