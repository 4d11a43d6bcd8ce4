package domain

import "math"

// Pagination is a LIMIT/OFFSET window. A nil Limit means "no limit".
// The zero value selects everything.
type Pagination struct {
	Limit  *uint32
	Offset uint32
}

// Unbounded reports whether p selects the full result set.
func (p Pagination) Unbounded() bool { return p.Limit == nil && p.Offset == 0 }

// Window applies p to a collection of n items and returns the [lo, hi)
// slice bounds, clamped to [0, n]. Offsets past the end yield an empty window.
func (p Pagination) Window(n int) (lo, hi int) {
	lo = int(p.Offset)
	if lo > n {
		lo = n
	}
	hi = n
	if p.Limit != nil && int(*p.Limit) < hi-lo {
		hi = lo + int(*p.Limit)
	}
	return lo, hi
}

// Range is a [Start, End) index window as supplied by ?start=&end= queries.
// Values are kept exactly as parsed; End < Start is representable.
type Range struct {
	Start uint64
	End   uint64
}

// Pagination converts r to a LIMIT/OFFSET window. An inverted range becomes
// a zero limit. Values beyond the uint32 domain saturate.
func (r Range) Pagination() Pagination {
	limit := uint32(0)
	if r.End > r.Start {
		limit = saturate(r.End - r.Start)
	}
	return Pagination{Limit: &limit, Offset: saturate(r.Start)}
}

func saturate(v uint64) uint32 {
	if v > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(v)
}
