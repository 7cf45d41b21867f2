package graph

import "math"

// Interner assigns a dense, non-negative integer index to each unique
// coordinate, in first-seen order. Lookup is a two-level map (lng -> lat ->
// index) keyed on the IEEE-754 bit pattern of each float, so equality is
// bit-exact rather than subject to float comparison tolerances.
type Interner struct {
	coords []Coordinate
	index  map[int64]map[int64]NodeIndex
}

// NewInterner creates an empty Interner.
func NewInterner() *Interner {
	return &Interner{
		index: make(map[int64]map[int64]NodeIndex),
	}
}

// Reset empties the interner, discarding all coordinates and indices.
func (in *Interner) Reset() {
	in.coords = in.coords[:0]
	in.index = make(map[int64]map[int64]NodeIndex)
}

// bits returns a bit-exact, comparable key for a float64.
func bits(f float64) int64 {
	return int64(math.Float64bits(f))
}

// Lookup returns the index for coord if it has been interned before.
func (in *Interner) Lookup(c Coordinate) (NodeIndex, bool) {
	byLat, ok := in.index[bits(c.Lng)]
	if !ok {
		return 0, false
	}
	idx, ok := byLat[bits(c.Lat)]
	return idx, ok
}

// Intern returns the index for coord, assigning a new one if coord has not
// been seen before. New indices are dense and increasing: the index
// assigned to the k-th unique coordinate is k-1.
func (in *Interner) Intern(c Coordinate) NodeIndex {
	if idx, ok := in.Lookup(c); ok {
		return idx
	}
	idx := NodeIndex(len(in.coords))
	in.coords = append(in.coords, c)
	lngKey := bits(c.Lng)
	byLat, ok := in.index[lngKey]
	if !ok {
		byLat = make(map[int64]NodeIndex, 1)
		in.index[lngKey] = byLat
	}
	byLat[bits(c.Lat)] = idx
	return idx
}

// Coord returns the coordinate assigned to idx. Panics if idx is out of
// range, matching slice semantics.
func (in *Interner) Coord(idx NodeIndex) Coordinate {
	return in.coords[idx]
}

// Len returns the number of unique coordinates interned so far.
func (in *Interner) Len() int {
	return len(in.coords)
}
