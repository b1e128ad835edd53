package hexmorph

import (
	"sync/atomic"

	"golang.org/x/exp/slices"
)

// RegionKey is a process-wide unique, monotonically increasing handle.
// Keys are never reused, so a morphism computed against a dropped
// topology holds stale-but-safe keys: lookups simply fail rather than
// aliasing a new region.
type RegionKey uint64

var regionKeyCounter uint64

func newRegionKey() RegionKey {
	return RegionKey(atomic.AddUint64(&regionKeyCounter, 1))
}

// Border is a closed cyclic sequence of sides bounding a region, CCW for
// the outer border and CW for each inner border (hole).
type Border struct {
	Cycle   []Side
	Seams   []Seam
	IsOuter bool
}

// Region is a maximal connected set of pixels sharing one Material.
type Region struct {
	Key      RegionKey
	Material Material
	Boundary []Border // Boundary[0] is always the outer border.
	Cover    AreaCover
	AnyPixel Pixel // a representative interior pixel, for sampling/painting
}

// disjointSet is a classic union-find over dense indices.
type disjointSet struct {
	parent []int
	rank   []int
}

func newDisjointSet(n int) *disjointSet {
	d := &disjointSet{parent: make([]int, n), rank: make([]int, n)}
	for i := range d.parent {
		d.parent[i] = i
	}
	return d
}

func (d *disjointSet) find(x int) int {
	for d.parent[x] != x {
		d.parent[x] = d.parent[d.parent[x]]
		x = d.parent[x]
	}
	return x
}

func (d *disjointSet) union(a, b int) {
	ra, rb := d.find(a), d.find(b)
	if ra == rb {
		return
	}
	if d.rank[ra] < d.rank[rb] {
		ra, rb = rb, ra
	}
	d.parent[rb] = ra
	if d.rank[ra] == d.rank[rb] {
		d.rank[ra]++
	}
}

// alreadyScanned are the directions whose neighbor has already been
// visited when scanning pixels in row-major (Y asc, then X asc) order.
var alreadyScanned = [3]SideDir{DirTop, DirLeft, DirTopRight}

// ExtractRegions flood-fills m (6-connectivity, matching Material.Equal)
// into maximal connected components, producing a region map and, for
// each region, its boundary cycles split at material changes. Each side
// of every region's boundary appears exactly once.
func ExtractRegions(m *Pixmap[Material]) (map[RegionKey]*Region, *Pixmap[RegionKey]) {
	type cell struct {
		p Pixel
		v Material
	}
	var cells []cell
	index := make(map[Pixel]int)
	m.Iter(func(p Pixel, v Material) {
		index[p] = len(cells)
		cells = append(cells, cell{p: p, v: v})
	})
	slices.SortFunc(cells, func(a, b cell) int {
		if a.p.Y != b.p.Y {
			return a.p.Y - b.p.Y
		}
		return a.p.X - b.p.X
	})
	for i, c := range cells {
		index[c.p] = i
	}

	ds := newDisjointSet(len(cells))
	for i, c := range cells {
		for _, d := range alreadyScanned {
			np := c.p.Neighbor(d)
			j, ok := index[np]
			if !ok {
				continue
			}
			if cells[j].v.Equal(c.v) {
				ds.union(i, j)
			}
		}
	}

	rootKey := make(map[int]RegionKey)
	regions := make(map[RegionKey]*Region)
	regionMap := NewPixmap[RegionKey]()
	boundarySides := make(map[RegionKey]map[Side]bool)

	for i, c := range cells {
		root := ds.find(i)
		key, ok := rootKey[root]
		if !ok {
			key = newRegionKey()
			rootKey[root] = key
			regions[key] = &Region{Key: key, Material: c.v, AnyPixel: c.p, Cover: AreaCover{}}
			boundarySides[key] = make(map[Side]bool)
		}
		regionMap.Set(c.p, key)
		regions[key].Cover.Add(tileOf(c.p))
	}

	for i, c := range cells {
		root := ds.find(i)
		key := rootKey[root]
		for _, d := range dirOrder {
			np := c.p.Neighbor(d)
			j, ok := index[np]
			if ok && ds.find(j) == root {
				continue // interior edge, not a boundary side
			}
			boundarySides[key][Side{Pixel: c.p, Dir: d}] = true
		}
	}

	for key, sides := range boundarySides {
		regions[key].Boundary = splitIntoCycles(sides)
	}

	return regions, regionMap
}

// splitIntoCycles repeatedly pops the minimum remaining side and extends
// the cycle by following ContinuingSides until no candidate remains in
// the set. Cycles are canonicalized (rotated so the
// minimal side is first) and then ordered so index 0 is the outer
// border: that ordering falls directly out of sorting by each cycle's
// canonical first side, since the top-left-most side of a region always
// belongs to its outer boundary.
func splitIntoCycles(sides map[Side]bool) []Border {
	remaining := make(map[Side]bool, len(sides))
	var sorted []Side
	for s := range sides {
		remaining[s] = true
		sorted = append(sorted, s)
	}
	slices.SortFunc(sorted, func(a, b Side) int {
		if a == b {
			return 0
		}
		if a.Less(b) {
			return -1
		}
		return 1
	})

	var cycles [][]Side
	for _, s := range sorted {
		if !remaining[s] {
			continue
		}
		var cycle []Side
		cur := s
		for {
			cycle = append(cycle, cur)
			delete(remaining, cur)
			cands := cur.ContinuingSides()
			var next Side
			found := false
			for _, c := range cands {
				if remaining[c] {
					next = c
					found = true
					break
				}
			}
			if !found {
				break
			}
			cur = next
		}
		cycles = append(cycles, canonicalizeCycle(cycle))
	}

	slices.SortFunc(cycles, func(a, b []Side) int {
		if a[0] == b[0] {
			return 0
		}
		if a[0].Less(b[0]) {
			return -1
		}
		return 1
	})

	borders := make([]Border, len(cycles))
	for i, c := range cycles {
		borders[i] = Border{Cycle: c, IsOuter: i == 0}
	}
	return borders
}

func canonicalizeCycle(cycle []Side) []Side {
	if len(cycle) == 0 {
		return cycle
	}
	minIdx := 0
	for i, s := range cycle {
		if s.Less(cycle[minIdx]) {
			minIdx = i
		}
	}
	if minIdx == 0 {
		return cycle
	}
	out := make([]Side, len(cycle))
	copy(out, cycle[minIdx:])
	copy(out[len(cycle)-minIdx:], cycle[:minIdx])
	return out
}
