package hexmorph

// Seam is a maximal arc of a border whose right-side material is
// constant. An atomic seam (Len == 1) is a single side; Start/Stop
// delimit the arc and a seam is uniquely identified, within one
// topology, by its Start side.
type Seam struct {
	Start, Stop Side
	Len         int
}

// IsAtomic reports whether this seam is exactly one side.
func (s Seam) IsAtomic() bool { return s.Len == 1 }

// Reversed applies only to atomic seams: it is the seam made from the
// same physical edge traversed the other way.
func (s Seam) Reversed() Seam {
	r := s.Start.Reversed()
	return Seam{Start: r, Stop: r, Len: 1}
}

func (s Seam) StartCorner() Corner { return s.Start.StartCorner() }
func (s Seam) StopCorner() Corner  { return s.Stop.StopCorner() }

// BorderKey identifies one border of one region within a topology.
type BorderKey struct {
	Region RegionKey
	Index  int
}

// seamLoc locates a seam's owning region/border/index-within-border.
type seamLoc struct {
	Region RegionKey
	Border int
	Seam   int
}

// Topology aggregates regions, their borders/seams, and the indices
// needed to answer adjacency queries in O(1)/O(log n).
type Topology struct {
	Regions   map[RegionKey]*Region
	RegionMap *Pixmap[RegionKey]

	seamIndex map[Side]seamLoc // keyed by seam.Start
	sideIndex map[Side]BorderKey
}

// NewTopology builds a Topology from a material map: extract regions,
// then partition each border's cycle into seams by the constancy of the
// right-side material.
func NewTopology(m *Pixmap[Material]) *Topology {
	regions, regionMap := ExtractRegions(m)
	t := &Topology{
		Regions:   regions,
		RegionMap: regionMap,
		seamIndex: make(map[Side]seamLoc),
		sideIndex: make(map[Side]BorderKey),
	}
	for key, r := range regions {
		for bi := range r.Boundary {
			b := &r.Boundary[bi]
			b.Seams = partitionSeams(b.Cycle, m)
			bk := BorderKey{Region: key, Index: bi}
			for _, s := range b.Cycle {
				t.sideIndex[s] = bk
			}
			for si, seam := range b.Seams {
				t.seamIndex[seam.Start] = seamLoc{Region: key, Border: bi, Seam: si}
			}
		}
	}
	return t
}

type rightKind int

const (
	rightVoid rightKind = iota
	rightMaterial
)

type rightSig struct {
	kind rightKind
	mat  Material
}

func rightOf(s Side, m *Pixmap[Material]) rightSig {
	if v, ok := m.Get(s.Right()); ok {
		return rightSig{kind: rightMaterial, mat: v}
	}
	return rightSig{kind: rightVoid}
}

func partitionSeams(cycle []Side, m *Pixmap[Material]) []Seam {
	if len(cycle) == 0 {
		return nil
	}
	sig0 := rightOf(cycle[0], m)
	allSame := true
	for _, s := range cycle[1:] {
		if rightOf(s, m) != sig0 {
			allSame = false
			break
		}
	}
	if allSame {
		return []Seam{{Start: cycle[0], Stop: cycle[len(cycle)-1], Len: len(cycle)}}
	}

	var seams []Seam
	start := 0
	cur := rightOf(cycle[0], m)
	for i := 1; i <= len(cycle); i++ {
		var sig rightSig
		wrapped := i == len(cycle)
		if !wrapped {
			sig = rightOf(cycle[i], m)
		}
		if wrapped || sig != cur {
			seams = append(seams, Seam{Start: cycle[start], Stop: cycle[i-1], Len: i - start})
			start = i
			if !wrapped {
				cur = sig
			}
		}
	}
	// The arc that was cut at cycle[0] continues into the last arc when
	// both face the same right-side material: merge them into one seam.
	if last := seams[len(seams)-1]; rightOf(last.Start, m) == sig0 {
		seams[0].Start = last.Start
		seams[0].Len += last.Len
		seams = seams[:len(seams)-1]
	}
	return seams
}

// LeftOf returns the region to the left of a seam (its owner).
func (t *Topology) LeftOf(seam Seam) (RegionKey, bool) {
	loc, ok := t.seamIndex[seam.Start]
	if !ok {
		return 0, false
	}
	return loc.Region, true
}

// RightOf returns the region to the right of a seam, or !ok for void.
func (t *Topology) RightOf(seam Seam) (RegionKey, bool) {
	return t.RegionMap.Get(seam.Start.Right())
}

func (t *Topology) SeamBorder(seam Seam) (BorderKey, bool) {
	loc, ok := t.seamIndex[seam.Start]
	if !ok {
		return BorderKey{}, false
	}
	return BorderKey{Region: loc.Region, Index: loc.Border}, true
}

func (t *Topology) border(bk BorderKey) (*Border, bool) {
	r, ok := t.Regions[bk.Region]
	if !ok || bk.Index < 0 || bk.Index >= len(r.Boundary) {
		return nil, false
	}
	return &r.Boundary[bk.Index], true
}

func (t *Topology) NextSeam(seam Seam) (Seam, bool) {
	loc, ok := t.seamIndex[seam.Start]
	if !ok {
		return Seam{}, false
	}
	b, _ := t.border(BorderKey{Region: loc.Region, Index: loc.Border})
	return b.Seams[(loc.Seam+1)%len(b.Seams)], true
}

func (t *Topology) PreviousSeam(seam Seam) (Seam, bool) {
	loc, ok := t.seamIndex[seam.Start]
	if !ok {
		return Seam{}, false
	}
	b, _ := t.border(BorderKey{Region: loc.Region, Index: loc.Border})
	return b.Seams[(loc.Seam-1+len(b.Seams))%len(b.Seams)], true
}

// SeamsBetween returns every seam whose left region is a and whose right
// region is b.
func (t *Topology) SeamsBetween(a, b RegionKey) []Seam {
	r, ok := t.Regions[a]
	if !ok {
		return nil
	}
	var out []Seam
	for _, border := range r.Boundary {
		for _, seam := range border.Seams {
			if rk, ok := t.RightOf(seam); ok && rk == b {
				out = append(out, seam)
			}
		}
	}
	return out
}

func (t *Topology) BorderContainingSide(s Side) (BorderKey, bool) {
	bk, ok := t.sideIndex[s]
	return bk, ok
}

// SubTopology rebuilds a topology keeping only the given regions, by
// restricting the material map to their pixels and re-extracting:
// topologies are replaced wholesale rather than mutated in place.
func (t *Topology) SubTopology(m *Pixmap[Material], keys map[RegionKey]bool) *Topology {
	sub := m.Filter(func(p Pixel, _ Material) bool {
		rk, ok := t.RegionMap.Get(p)
		return ok && keys[rk]
	})
	return NewTopology(sub)
}

// WithoutMaterial rebuilds a topology with every pixel of the given
// material removed.
func (t *Topology) WithoutMaterial(m *Pixmap[Material], mat Material) *Topology {
	sub := m.Filter(func(_ Pixel, v Material) bool { return !v.Equal(mat) })
	return NewTopology(sub)
}

// Translated rebuilds a topology shifted by delta.
func (t *Topology) Translated(m *Pixmap[Material], delta Pixel) *Topology {
	return NewTopology(m.Translated(delta))
}
