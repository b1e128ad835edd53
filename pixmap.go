package hexmorph

import (
	"golang.org/x/exp/maps"
)

// Rect is an axis-aligned, half-open pixel rectangle: [Min, Max).
type Rect struct {
	MinX, MinY, MaxX, MaxY int
}

func (r Rect) Empty() bool { return r.MaxX <= r.MinX || r.MaxY <= r.MinY }

func (r Rect) Dx() int { return r.MaxX - r.MinX }

func (r Rect) Dy() int { return r.MaxY - r.MinY }

func (r Rect) Contains(p Pixel) bool {
	return p.X >= r.MinX && p.X < r.MaxX && p.Y >= r.MinY && p.Y < r.MaxY
}

func (r Rect) Union(o Rect) Rect {
	if r.Empty() {
		return o
	}
	if o.Empty() {
		return r
	}
	return Rect{
		MinX: min(r.MinX, o.MinX),
		MinY: min(r.MinY, o.MinY),
		MaxX: max(r.MaxX, o.MaxX),
		MaxY: max(r.MaxY, o.MaxY),
	}
}

// Field is a dense rectangular container. It is cheaper than Pixmap when
// the bounds are known and fully populated (e.g. a rule-frame cutout
// scratch buffer), at the cost of being fixed-size.
type Field[T any] struct {
	Bounds Rect
	data   []T
	has    []bool
}

func NewField[T any](bounds Rect) *Field[T] {
	n := bounds.Dx() * bounds.Dy()
	if n < 0 {
		n = 0
	}
	return &Field[T]{Bounds: bounds, data: make([]T, n), has: make([]bool, n)}
}

func (f *Field[T]) index(p Pixel) (int, bool) {
	if !f.Bounds.Contains(p) {
		return 0, false
	}
	return (p.Y-f.Bounds.MinY)*f.Bounds.Dx() + (p.X - f.Bounds.MinX), true
}

func (f *Field[T]) Get(p Pixel) (T, bool) {
	var zero T
	i, ok := f.index(p)
	if !ok || !f.has[i] {
		return zero, false
	}
	return f.data[i], true
}

func (f *Field[T]) Set(p Pixel, v T) {
	i, ok := f.index(p)
	if !ok {
		return
	}
	f.data[i] = v
	f.has[i] = true
}

func (f *Field[T]) Iter(fn func(Pixel, T)) {
	for y := f.Bounds.MinY; y < f.Bounds.MaxY; y++ {
		for x := f.Bounds.MinX; x < f.Bounds.MaxX; x++ {
			p := Pixel{X: x, Y: y}
			i, _ := f.index(p)
			if f.has[i] {
				fn(p, f.data[i])
			}
		}
	}
}

const tileSize = 16

// TileIndex identifies one tile of a Pixmap.
type TileIndex struct {
	TX, TY int
}

func tileOf(p Pixel) TileIndex {
	return TileIndex{TX: floorDiv(p.X, tileSize), TY: floorDiv(p.Y, tileSize)}
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// AreaCover is the set of tile indices touched by a region or a pending
// batch of writes; it bounds iteration without scanning the whole map.
type AreaCover map[TileIndex]struct{}

func (c AreaCover) Add(t TileIndex) { c[t] = struct{}{} }

func (c AreaCover) Union(o AreaCover) AreaCover {
	out := make(AreaCover, len(c)+len(o))
	maps.Copy(out, c)
	maps.Copy(out, o)
	return out
}

type tile[T any] struct {
	cells   [tileSize * tileSize]T
	present [tileSize * tileSize]bool
	n       int
}

func cellIndex(p Pixel) int {
	lx := ((p.X % tileSize) + tileSize) % tileSize
	ly := ((p.Y % tileSize) + tileSize) % tileSize
	return ly*tileSize + lx
}

// Pixmap is a sparse, tiled 2-D container keyed by integer pixels. Tiles
// are shared between clones until written (copy-on-write), so snapshots
// taken before a FillRegions call are cheap.
type Pixmap[T any] struct {
	tiles  map[TileIndex]*tile[T]
	shared map[TileIndex]bool
	bounds Rect
	dirty  bool
}

func NewPixmap[T any]() *Pixmap[T] {
	return &Pixmap[T]{tiles: make(map[TileIndex]*tile[T])}
}

func (m *Pixmap[T]) Get(p Pixel) (T, bool) {
	var zero T
	t, ok := m.tiles[tileOf(p)]
	if !ok {
		return zero, false
	}
	i := cellIndex(p)
	if !t.present[i] {
		return zero, false
	}
	return t.cells[i], true
}

func (m *Pixmap[T]) ensureOwned(ti TileIndex) *tile[T] {
	t, ok := m.tiles[ti]
	if !ok {
		t = &tile[T]{}
		m.tiles[ti] = t
		return t
	}
	if m.shared != nil && m.shared[ti] {
		cp := *t
		m.tiles[ti] = &cp
		delete(m.shared, ti)
		return &cp
	}
	return t
}

func (m *Pixmap[T]) Set(p Pixel, v T) {
	ti := tileOf(p)
	t := m.ensureOwned(ti)
	i := cellIndex(p)
	if !t.present[i] {
		t.n++
	}
	t.present[i] = true
	t.cells[i] = v
	m.dirty = true
}

func (m *Pixmap[T]) Delete(p Pixel) {
	ti := tileOf(p)
	t, ok := m.tiles[ti]
	if !ok {
		return
	}
	t = m.ensureOwned(ti)
	i := cellIndex(p)
	if t.present[i] {
		t.present[i] = false
		t.n--
		m.dirty = true
	}
}

func (m *Pixmap[T]) Iter(fn func(Pixel, T)) {
	for ti, t := range m.tiles {
		if t.n == 0 {
			continue
		}
		base := Pixel{X: ti.TX * tileSize, Y: ti.TY * tileSize}
		for ly := 0; ly < tileSize; ly++ {
			for lx := 0; lx < tileSize; lx++ {
				idx := ly*tileSize + lx
				if t.present[idx] {
					fn(Pixel{X: base.X + lx, Y: base.Y + ly}, t.cells[idx])
				}
			}
		}
	}
}

// IterCover iterates only the pixels within the given tile set, which is
// much cheaper than Iter when the cover is known to be small relative to
// the whole map (e.g. re-scanning just a region's tiles after a paint).
func (m *Pixmap[T]) IterCover(cover AreaCover, fn func(Pixel, T)) {
	for ti := range cover {
		t, ok := m.tiles[ti]
		if !ok || t.n == 0 {
			continue
		}
		base := Pixel{X: ti.TX * tileSize, Y: ti.TY * tileSize}
		for ly := 0; ly < tileSize; ly++ {
			for lx := 0; lx < tileSize; lx++ {
				idx := ly*tileSize + lx
				if t.present[idx] {
					fn(Pixel{X: base.X + lx, Y: base.Y + ly}, t.cells[idx])
				}
			}
		}
	}
}

func (m *Pixmap[T]) BoundingRect() Rect {
	var r Rect
	first := true
	m.Iter(func(p Pixel, _ T) {
		if first {
			r = Rect{MinX: p.X, MinY: p.Y, MaxX: p.X + 1, MaxY: p.Y + 1}
			first = false
			return
		}
		if p.X < r.MinX {
			r.MinX = p.X
		}
		if p.X+1 > r.MaxX {
			r.MaxX = p.X + 1
		}
		if p.Y < r.MinY {
			r.MinY = p.Y
		}
		if p.Y+1 > r.MaxY {
			r.MaxY = p.Y + 1
		}
	})
	return r
}

// Blit copies every defined pixel of src into m, offset by delta.
func (m *Pixmap[T]) Blit(src *Pixmap[T], delta Pixel) {
	src.Iter(func(p Pixel, v T) {
		m.Set(p.Add(delta), v)
	})
}

// Clone returns a copy-on-write snapshot: tiles are shared until either
// copy calls Set/Delete on them.
func (m *Pixmap[T]) Clone() *Pixmap[T] {
	out := &Pixmap[T]{tiles: make(map[TileIndex]*tile[T], len(m.tiles)), shared: make(map[TileIndex]bool, len(m.tiles))}
	for ti, t := range m.tiles {
		out.tiles[ti] = t
		out.shared[ti] = true
		if m.shared == nil {
			m.shared = make(map[TileIndex]bool, len(m.tiles))
		}
		m.shared[ti] = true
	}
	return out
}

// Translated returns a new Pixmap with every defined pixel shifted by delta.
func (m *Pixmap[T]) Translated(delta Pixel) *Pixmap[T] {
	out := NewPixmap[T]()
	m.Iter(func(p Pixel, v T) {
		out.Set(p.Add(delta), v)
	})
	return out
}

// Filter returns a new Pixmap containing only pixels for which keep
// returns true.
func (m *Pixmap[T]) Filter(keep func(Pixel, T) bool) *Pixmap[T] {
	out := NewPixmap[T]()
	m.Iter(func(p Pixel, v T) {
		if keep(p, v) {
			out.Set(p, v)
		}
	})
	return out
}

// RightOfBorder extracts the pixels strictly right of a boundary cycle:
// a flood fill seeded just outside each side of the border that never
// crosses back over any side belonging to the border (in either
// direction), bounded to pixels actually present in m.
func RightOfBorder[T any](m *Pixmap[T], b *Border) *Pixmap[T] {
	blocked := make(map[Side]bool, len(b.Cycle)*2)
	for _, s := range b.Cycle {
		blocked[s] = true
		blocked[s.Reversed()] = true
	}

	out := NewPixmap[T]()
	visited := make(map[Pixel]bool)
	var stack []Pixel
	for _, s := range b.Cycle {
		seed := s.Right()
		if !visited[seed] {
			if _, ok := m.Get(seed); ok {
				visited[seed] = true
				stack = append(stack, seed)
			}
		}
	}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		v, ok := m.Get(p)
		if !ok {
			continue
		}
		out.Set(p, v)
		for _, d := range dirOrder {
			s := Side{Pixel: p, Dir: d}
			if blocked[s] {
				continue
			}
			np := p.Neighbor(d)
			if visited[np] {
				continue
			}
			if _, ok := m.Get(np); !ok {
				continue
			}
			visited[np] = true
			stack = append(stack, np)
		}
	}
	return out
}
