package hexmorph

import "fmt"

// Pixel is an integer point on the sheared hex-like 6-neighbor lattice.
// Using a sheared square grid (rather than 4- or 8-connectivity) gives
// every side exactly two continuing candidates when tracing a boundary,
// which avoids the crossing-diagonal ambiguity of plain 8-connectivity.
type Pixel struct {
	X, Y int
}

func (p Pixel) Add(o Pixel) Pixel {
	return Pixel{p.X + o.X, p.Y + o.Y}
}

func (p Pixel) Sub(o Pixel) Pixel {
	return Pixel{p.X - o.X, p.Y - o.Y}
}

func (p Pixel) Neighbor(d SideDir) Pixel {
	return p.Add(d.Offset())
}

func (p Pixel) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Less is the total order over pixels (row-major: Y then X) used to find
// the canonical minimal side of a boundary cycle.
func (p Pixel) Less(o Pixel) bool {
	if p.Y != o.Y {
		return p.Y < o.Y
	}
	return p.X < o.X
}

// SideDir is one of the six directions out of a pixel.
type SideDir uint8

const (
	DirTop SideDir = iota
	DirLeft
	DirBottomLeft
	DirBottom
	DirRight
	DirTopRight
	numDirs = 6
)

// dirOrder is the CCW cyclic order of directions: top, left,
// bottom-left, bottom, right, top-right.
var dirOrder = [numDirs]SideDir{DirTop, DirLeft, DirBottomLeft, DirBottom, DirRight, DirTopRight}

var dirOffset = [numDirs]Pixel{
	DirTop:        {0, -1},
	DirLeft:       {-1, 0},
	DirBottomLeft: {-1, 1},
	DirBottom:     {0, 1},
	DirRight:      {1, 0},
	DirTopRight:   {1, -1},
}

var dirOpposite = [numDirs]SideDir{
	DirTop:        DirBottom,
	DirLeft:       DirRight,
	DirBottomLeft: DirTopRight,
	DirBottom:     DirTop,
	DirRight:      DirLeft,
	DirTopRight:   DirBottomLeft,
}

var dirNames = [numDirs]string{"top", "left", "bottom-left", "bottom", "right", "top-right"}

func (d SideDir) Index() int { return int(d) }

func (d SideDir) Offset() Pixel { return dirOffset[d] }

func (d SideDir) Opposite() SideDir { return dirOpposite[d] }

func (d SideDir) NextCCW() SideDir { return dirOrder[(int(d)+1)%numDirs] }

func (d SideDir) PreviousCCW() SideDir { return dirOrder[(int(d)+numDirs-1)%numDirs] }

func (d SideDir) String() string { return dirNames[d] }

// Side is an oriented edge between Pixel and its neighbor in direction Dir.
// The left pixel of the side is Pixel itself; the right pixel (possibly
// void, if undefined in a material map) is Pixel.Neighbor(Dir).
type Side struct {
	Pixel Pixel
	Dir   SideDir
}

func (s Side) Left() Pixel { return s.Pixel }

func (s Side) Right() Pixel { return s.Pixel.Neighbor(s.Dir) }

// Reversed returns the same physical edge traversed from the other pixel.
func (s Side) Reversed() Side {
	return Side{Pixel: s.Right(), Dir: s.Dir.Opposite()}
}

// NextCCW returns the next side of the SAME pixel in CCW order (i.e. the
// side sharing this side's stop corner as its own start corner, on this
// pixel). This is distinct from ContinuingSides, which follows a border.
func (s Side) NextCCW() Side {
	return Side{Pixel: s.Pixel, Dir: s.Dir.NextCCW()}
}

func (s Side) PreviousCCW() Side {
	return Side{Pixel: s.Pixel, Dir: s.Dir.PreviousCCW()}
}

// ContinuingSides returns the two sides that may legally follow this one
// while tracing a border CCW with the interior held on the left. Exactly
// one of the two is ever a boundary side of a well-formed region; see
// region.go's cycle-splitting algorithm.
func (s Side) ContinuingSides() [2]Side {
	nd := s.Dir.NextCCW()
	pd := s.Dir.PreviousCCW()
	cand1 := Side{Pixel: s.Pixel, Dir: nd}
	cand2 := Side{Pixel: s.Pixel.Neighbor(nd), Dir: pd}
	return [2]Side{cand1, cand2}
}

// Less is the total order over sides used to find the lexicographically
// minimal side of a cycle (pixel order, then direction index).
func (s Side) Less(o Side) bool {
	if s.Pixel != o.Pixel {
		return s.Pixel.Less(o.Pixel)
	}
	return s.Dir.Index() < o.Dir.Index()
}

func (s Side) String() string {
	return fmt.Sprintf("%s:%s", s.Pixel, s.Dir)
}

// Corner is the canonical representative of an equivalence class of
// meeting points of sides. Three pixels meet at every interior corner of
// the lattice; Corner.Pixel/Dir is whichever of the three equivalent
// (pixel, slot) representations sorts first under Side.Less-like order.
type Corner struct {
	Pixel Pixel
	Dir   SideDir
}

func (c Corner) Less(o Corner) bool {
	if c.Pixel != o.Pixel {
		return c.Pixel.Less(o.Pixel)
	}
	return c.Dir.Index() < o.Dir.Index()
}

// cornerSlot(p, d) denotes the corner between sides (p, d) and (p,
// d.NextCCW()) -- i.e. the corner that is the stop corner of the first
// and the start corner of the second, both on pixel p.
type cornerSlot struct {
	Pixel Pixel
	Dir   SideDir
}

func less(a, b cornerSlot) bool {
	if a.Pixel != b.Pixel {
		return a.Pixel.Less(b.Pixel)
	}
	return a.Dir.Index() < b.Dir.Index()
}

// rawCornerReps returns the (up to) three equivalent raw representations
// of the corner denoted by cornerSlot(p, d). Derivation: reversing a side
// swaps its start/stop corners, which yields the two other pixels sharing
// the corner: p.Neighbor(d) and p.Neighbor(d.NextCCW()).
func rawCornerReps(p Pixel, d SideDir) [3]cornerSlot {
	q1 := p.Neighbor(d)
	rep2 := cornerSlot{Pixel: q1, Dir: d.Opposite().PreviousCCW()}

	nd := d.NextCCW()
	q2 := p.Neighbor(nd)
	rep3 := cornerSlot{Pixel: q2, Dir: nd.Opposite()}

	return [3]cornerSlot{{Pixel: p, Dir: d}, rep2, rep3}
}

func canonicalCorner(p Pixel, d SideDir) Corner {
	reps := rawCornerReps(p, d)
	min := reps[0]
	for _, r := range reps[1:] {
		if less(r, min) {
			min = r
		}
	}
	return Corner{Pixel: min.Pixel, Dir: min.Dir}
}

// StopCorner is the corner where this side ends when traversed p -> p+dir.
func (s Side) StopCorner() Corner {
	return canonicalCorner(s.Pixel, s.Dir)
}

// StartCorner is the corner where this side begins.
func (s Side) StartCorner() Corner {
	return canonicalCorner(s.Pixel, s.Dir.PreviousCCW())
}
