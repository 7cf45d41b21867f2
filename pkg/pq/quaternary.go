package pq

// QuaternaryHeap is an array-backed complete 4-ary min-heap: parent of index
// i is (i-1)/4, children are 4i+1..4i+4. Fewer levels than a binary heap for
// the same element count, and fewer comparisons per level than the naive
// "compare against every child" approach would suggest, since sift-down only
// ever compares against the smallest of up to four children. This is the
// router's default PQ, per spec.
type QuaternaryHeap struct {
	items []entry
	seq   uint64
}

// NewQuaternaryHeap creates an empty QuaternaryHeap.
func NewQuaternaryHeap() *QuaternaryHeap {
	return &QuaternaryHeap{}
}

func (h *QuaternaryHeap) Insert(key float64, value uint32) {
	h.items = append(h.items, entry{key: key, value: value, seq: h.seq})
	h.seq++
	h.siftUp(len(h.items) - 1)
}

func (h *QuaternaryHeap) ExtractMin() (uint32, bool) {
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

func (h *QuaternaryHeap) Size() int { return len(h.items) }

func (h *QuaternaryHeap) PeekMinKey() float64 {
	if len(h.items) == 0 {
		return Inf
	}
	return h.items[0].key
}

func (h *QuaternaryHeap) Clear() { h.items = h.items[:0] }

func (h *QuaternaryHeap) siftUp(i int) {
	e := h.items[i]
	for i > 0 {
		parent := (i - 1) / 4
		p := h.items[parent]
		if !less(e.key, e.seq, p.key, p.seq) {
			break
		}
		h.items[i] = p
		i = parent
	}
	h.items[i] = e
}

func (h *QuaternaryHeap) siftDown(i int) {
	n := len(h.items)
	e := h.items[i]
	for {
		first := 4*i + 1
		if first >= n {
			break
		}
		smallest := first
		last := min(first+4, n)
		for c := first + 1; c < last; c++ {
			if less(h.items[c].key, h.items[c].seq, h.items[smallest].key, h.items[smallest].seq) {
				smallest = c
			}
		}
		if !less(h.items[smallest].key, h.items[smallest].seq, e.key, e.seq) {
			break
		}
		h.items[i] = h.items[smallest]
		i = smallest
	}
	h.items[i] = e
}
