package tagger

import "github.com/tagomoji/tagomoji/internal/dic"

// latticeBuilder accumulates lattice columns as the word dictionary and
// unknown-word module emit candidates for each input position in turn.
// It is the sink both modules' EmitNode callbacks write into.
type latticeBuilder struct {
	tagger   *Tagger
	nodesAry [][]*dic.ViterbiNode

	i     int
	prevs []*dic.ViterbiNode
	empty bool
}

func newLatticeBuilder(tagger *Tagger, nodesAry [][]*dic.ViterbiNode) *latticeBuilder {
	return &latticeBuilder{tagger: tagger, nodesAry: nodesAry, empty: true}
}

// set moves to position i: the column's pending nodes become the
// predecessor set for whatever gets emitted next, and the column itself
// is cleared so IsEmpty reports fresh state for this round.
func (lb *latticeBuilder) set(i int) {
	lb.i = i
	lb.prevs = lb.nodesAry[i]
	lb.nodesAry[i] = nil
	lb.empty = true
}

// IsEmpty reports whether nothing has been emitted at the current
// position yet. The unknown-word module reads this before deciding
// whether a non-invoking category should fire.
func (lb *latticeBuilder) IsEmpty() bool {
	return lb.empty
}

// emit links a candidate into the lattice at lb.i. A space candidate
// costs nothing and isn't itself a node: its predecessors simply carry
// through unchanged to the end column, so a run of spaces never grows
// the lattice.
func (lb *latticeBuilder) emit(vn dic.ViterbiNode) {
	lb.empty = false
	end := lb.i + int(vn.Length)

	if vn.IsSpace {
		lb.nodesAry[end] = append(lb.nodesAry[end], lb.prevs...)
		return
	}

	node := vn
	lb.tagger.setMinCostNode(&node, lb.prevs)
	lb.nodesAry[end] = append(lb.nodesAry[end], &node)
}
