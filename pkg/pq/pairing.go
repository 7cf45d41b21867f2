package pq

// pairNode is one slot in the pairing heap's node arena: a child pointer
// and a sibling pointer are all a pairing heap needs (no parent, no degree
// bookkeeping), which is most of its appeal over a Fibonacci heap.
type pairNode struct {
	key     float64
	value   uint32
	seq     uint64
	child   int32
	sibling int32
}

const pairNil = int32(-1)

// PairingHeap is an arena-backed pairing heap: O(1) insert (meld with
// root), O(log n) amortized extract-min via two-pass sibling pairing.
type PairingHeap struct {
	nodes []pairNode
	root  int32
	count int
	seq   uint64
}

// NewPairingHeap creates an empty PairingHeap.
func NewPairingHeap() *PairingHeap {
	return &PairingHeap{root: pairNil}
}

func (h *PairingHeap) Size() int { return h.count }

func (h *PairingHeap) PeekMinKey() float64 {
	if h.root == pairNil {
		return Inf
	}
	return h.nodes[h.root].key
}

func (h *PairingHeap) Clear() {
	h.nodes = h.nodes[:0]
	h.root = pairNil
	h.count = 0
}

// meld links the root with the smaller key as the parent of the other,
// pushing the loser onto the winner's child list.
func (h *PairingHeap) meld(a, b int32) int32 {
	if a == pairNil {
		return b
	}
	if b == pairNil {
		return a
	}
	na, nb := &h.nodes[a], &h.nodes[b]
	if !less(na.key, na.seq, nb.key, nb.seq) {
		a, b = b, a
		na, nb = nb, na
	}
	nb.sibling = na.child
	na.child = b
	return a
}

func (h *PairingHeap) Insert(key float64, value uint32) {
	idx := int32(len(h.nodes))
	h.nodes = append(h.nodes, pairNode{
		key: key, value: value, seq: h.seq,
		child: pairNil, sibling: pairNil,
	})
	h.seq++
	h.count++
	h.root = h.meld(h.root, idx)
}

func (h *PairingHeap) ExtractMin() (uint32, bool) {
	if h.root == pairNil {
		return 0, false
	}
	top := h.root
	value := h.nodes[top].value
	h.root = h.mergePairs(h.nodes[top].child)
	h.count--
	return value, true
}

// mergePairs performs the classic two-pass merge over a child list: pair up
// siblings left to right, then fold the resulting list right to left.
func (h *PairingHeap) mergePairs(first int32) int32 {
	if first == pairNil {
		return pairNil
	}
	second := h.nodes[first].sibling
	if second == pairNil {
		h.nodes[first].sibling = pairNil
		return first
	}
	rest := h.nodes[second].sibling
	h.nodes[first].sibling = pairNil
	h.nodes[second].sibling = pairNil

	merged := h.meld(first, second)
	return h.meld(merged, h.mergePairs(rest))
}
