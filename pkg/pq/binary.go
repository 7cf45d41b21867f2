package pq

// entry is a priority-queue slot: a key, the value it's attached to, and the
// insertion sequence used to break ties in FIFO order.
type entry struct {
	key   float64
	value uint32
	seq   uint64
}

// BinaryHeap is an array-backed complete binary min-heap. Concrete-typed
// (not container/heap) to avoid interface-boxing each entry, following the
// teacher's routing.MinHeap and ch.witnessHeap, which use the same
// array-backed hole-sift shape for the identical reason.
type BinaryHeap struct {
	items []entry
	seq   uint64
}

// NewBinaryHeap creates an empty BinaryHeap.
func NewBinaryHeap() *BinaryHeap {
	return &BinaryHeap{}
}

func (h *BinaryHeap) Insert(key float64, value uint32) {
	h.items = append(h.items, entry{key: key, value: value, seq: h.seq})
	h.seq++
	h.siftUp(len(h.items) - 1)
}

func (h *BinaryHeap) ExtractMin() (uint32, bool) {
	n := len(h.items)
	if n == 0 {
		return 0, false
	}
	top := h.items[0]
	n--
	h.items[0] = h.items[n]
	h.items = h.items[:n]
	if n > 0 {
		h.siftDown(0)
	}
	return top.value, true
}

func (h *BinaryHeap) Size() int { return len(h.items) }

func (h *BinaryHeap) PeekMinKey() float64 {
	if len(h.items) == 0 {
		return Inf
	}
	return h.items[0].key
}

func (h *BinaryHeap) Clear() { h.items = h.items[:0] }

// siftUp uses hole-sift: save the floating entry and do one assignment per
// level instead of a full three-way swap.
func (h *BinaryHeap) siftUp(i int) {
	e := h.items[i]
	for i > 0 {
		parent := (i - 1) / 2
		p := h.items[parent]
		if !less(e.key, e.seq, p.key, p.seq) {
			break
		}
		h.items[i] = p
		i = parent
	}
	h.items[i] = e
}

func (h *BinaryHeap) siftDown(i int) {
	n := len(h.items)
	e := h.items[i]
	for {
		left := 2*i + 1
		if left >= n {
			break
		}
		smallest := left
		if right := left + 1; right < n && less(h.items[right].key, h.items[right].seq, h.items[left].key, h.items[left].seq) {
			smallest = right
		}
		if !less(h.items[smallest].key, h.items[smallest].seq, e.key, e.seq) {
			break
		}
		h.items[i] = h.items[smallest]
		i = smallest
	}
	h.items[i] = e
}
