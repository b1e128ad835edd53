package hexmorph

import "github.com/pkg/errors"

// Morphism is a structure-preserving partial map between a pattern
// topology and a world topology: four independent maps, rather than one
// monolithic context object, so that a seam can be bound without forcing
// its region to be bound yet.
type Morphism struct {
	Region map[RegionKey]RegionKey
	Border map[BorderKey]BorderKey
	Seam   map[Side]Side // keyed by the pattern seam's Start side
	Corner map[Corner]Corner
}

func NewMorphism() *Morphism {
	return &Morphism{
		Region: make(map[RegionKey]RegionKey),
		Border: make(map[BorderKey]BorderKey),
		Seam:   make(map[Side]Side),
		Corner: make(map[Corner]Corner),
	}
}

// Clone makes an independent copy, used by the solver to try a branch
// without disturbing the caller's in-progress morphism.
func (m *Morphism) Clone() *Morphism {
	out := NewMorphism()
	for k, v := range m.Region {
		out.Region[k] = v
	}
	for k, v := range m.Border {
		out.Border[k] = v
	}
	for k, v := range m.Seam {
		out.Seam[k] = v
	}
	for k, v := range m.Corner {
		out.Corner[k] = v
	}
	return out
}

func (m *Morphism) bindRegion(p, w RegionKey) bool {
	if existing, ok := m.Region[p]; ok {
		return existing == w
	}
	for pp, ww := range m.Region {
		if ww == w && pp != p {
			return false // injective on regions
		}
	}
	m.Region[p] = w
	return true
}

func (m *Morphism) bindBorder(p, w BorderKey) bool {
	if existing, ok := m.Border[p]; ok {
		return existing == w
	}
	for pp, ww := range m.Border {
		if ww == w && pp != p {
			return false // injective on borders: two pattern holes can't map to one
		}
	}
	m.Border[p] = w
	return true
}

func (m *Morphism) bindCorner(p, w Corner) bool {
	if existing, ok := m.Corner[p]; ok {
		return existing == w
	}
	m.Corner[p] = w
	return true
}

// bindSeamRaw records the seam map entry and checks non-overlap: no two
// distinct pattern atomic seams may already map to the same world start.
func (m *Morphism) bindSeamRaw(p, w Side) bool {
	if existing, ok := m.Seam[p]; ok {
		return existing == w
	}
	for pp, ww := range m.Seam {
		if ww == w && pp != p {
			return false
		}
	}
	m.Seam[p] = w
	return true
}

// induceSeam binds a pattern seam to a world seam and derives everything
// that must follow from it: left region, right region (when the pattern
// has one there), owning border, both corners, and -- when the seam is
// reversible in the pattern -- its partner seam too.
func induceSeam(pattern, world *Topology, m *Morphism, ps, ws Seam) bool {
	if !m.bindSeamRaw(ps.Start, ws.Start) {
		return false
	}

	lp, ok1 := pattern.LeftOf(ps)
	lw, ok2 := world.LeftOf(ws)
	if ok1 != ok2 || (ok1 && !m.bindRegion(lp, lw)) {
		return false
	}

	if rp, ok := pattern.RightOf(ps); ok {
		rw, ok := world.RightOf(ws)
		if !ok || !m.bindRegion(rp, rw) {
			return false
		}
	}

	bp, ok1 := pattern.SeamBorder(ps)
	bw, ok2 := world.SeamBorder(ws)
	if ok1 != ok2 || (ok1 && !m.bindBorder(bp, bw)) {
		return false
	}

	if !m.bindCorner(ps.StartCorner(), ws.StartCorner()) {
		return false
	}
	if !m.bindCorner(ps.StopCorner(), ws.StopCorner()) {
		return false
	}

	if ps.IsAtomic() {
		if _, reversible := pattern.seamIndex[ps.Start.Reversed()]; reversible {
			if !ws.IsAtomic() {
				return false
			}
			if _, worldReversible := world.seamIndex[ws.Start.Reversed()]; !worldReversible {
				return false
			}
			revP := ps.Start.Reversed()
			revW := ws.Start.Reversed()
			if existing, ok := m.Seam[revP]; ok {
				if existing != revW {
					return false
				}
			} else {
				rps := lookupSeamByStart(pattern, revP)
				rws := lookupSeamByStart(world, revW)
				if rps == nil || rws == nil {
					return false
				}
				if !induceSeam(pattern, world, m, *rps, *rws) {
					return false
				}
			}
		}
	}
	return true
}

func lookupSeamByStart(t *Topology, start Side) *Seam {
	loc, ok := t.seamIndex[start]
	if !ok {
		return nil
	}
	r := t.Regions[loc.Region]
	return &r.Boundary[loc.Border].Seams[loc.Seam]
}

func regionPixels(topo *Topology, key RegionKey) []Pixel {
	var out []Pixel
	topo.RegionMap.Iter(func(p Pixel, k RegionKey) {
		if k == key {
			out = append(out, p)
		}
	})
	return out
}

// checkSolidRigidity verifies a single consistent translation maps every
// pixel of the pattern region onto the world region.
func checkSolidRigidity(pattern, world *Topology, pk, wk RegionKey) bool {
	pp := regionPixels(pattern, pk)
	wp := regionPixels(world, wk)
	if len(pp) != len(wp) {
		return false
	}
	if len(pp) == 0 {
		return true
	}
	minP := pp[0]
	for _, p := range pp[1:] {
		if p.Less(minP) {
			minP = p
		}
	}
	minW := wp[0]
	for _, p := range wp[1:] {
		if p.Less(minW) {
			minW = p
		}
	}
	t := minW.Sub(minP)
	set := make(map[Pixel]bool, len(wp))
	for _, p := range wp {
		set[p] = true
	}
	for _, p := range pp {
		if !set[p.Add(t)] {
			return false
		}
	}
	return true
}

var errMorphismInvalid = errors.New("morphism violates a closure property")

// Validate re-checks every closure property from scratch: used by the
// solver as a final gate before accepting a candidate morphism.
func (m *Morphism) Validate(pattern, world *Topology) error {
	for pStart, wStart := range m.Seam {
		ps := lookupSeamByStart(pattern, pStart)
		ws := lookupSeamByStart(world, wStart)
		if ps == nil || ws == nil {
			return errors.Wrap(errMorphismInvalid, "dangling seam reference")
		}
		if c, ok := m.Corner[ps.StartCorner()]; !ok || c != ws.StartCorner() {
			return errors.Wrap(errMorphismInvalid, "start corner does not commute")
		}
		if c, ok := m.Corner[ps.StopCorner()]; !ok || c != ws.StopCorner() {
			return errors.Wrap(errMorphismInvalid, "stop corner does not commute")
		}
		lp, lpOK := pattern.LeftOf(*ps)
		lw, lwOK := world.LeftOf(*ws)
		if lpOK != lwOK || (lpOK && m.Region[lp] != lw) {
			return errors.Wrap(errMorphismInvalid, "left region does not commute")
		}
		bp, bpOK := pattern.SeamBorder(*ps)
		bw, bwOK := world.SeamBorder(*ws)
		if bpOK != bwOK || (bpOK && m.Border[bp] != bw) {
			return errors.Wrap(errMorphismInvalid, "seam border does not commute")
		}
		if ps.IsAtomic() {
			if _, reversible := pattern.seamIndex[ps.Start.Reversed()]; reversible {
				revW, ok := m.Seam[ps.Start.Reversed()]
				if !ok || revW != ws.Start.Reversed() {
					return errors.Wrap(errMorphismInvalid, "reverse seam does not commute")
				}
			}
		}
		if lpOK {
			pr, wr := pattern.Regions[lp], world.Regions[lw]
			if !pr.Material.Matches(wr.Material) {
				return errors.Wrap(errMorphismInvalid, "material not preserved")
			}
		}
	}

	seenRegion := make(map[RegionKey]bool, len(m.Region))
	for pk, wk := range m.Region {
		if seenRegion[wk] {
			return errors.Wrap(errMorphismInvalid, "region map not injective")
		}
		seenRegion[wk] = true

		pr, wr := pattern.Regions[pk], world.Regions[wk]
		if pr == nil || wr == nil {
			return errors.Wrap(errMorphismInvalid, "dangling region reference")
		}
		if pr.Material.Class != MaterialRule && len(pr.Boundary) != len(wr.Boundary) {
			return errors.Wrap(errMorphismInvalid, "border count not preserved")
		}
		if pr.Material.Class == MaterialSolid {
			if !checkSolidRigidity(pattern, world, pk, wk) {
				return errors.Wrap(errMorphismInvalid, "solid region is not rigidly translated")
			}
		}
	}

	seenSeam := make(map[Side]bool, len(m.Seam))
	for _, w := range m.Seam {
		if seenSeam[w] {
			return errors.Wrap(errMorphismInvalid, "seam map not injective (overlap)")
		}
		seenSeam[w] = true
	}

	seenBorder := make(map[BorderKey]bool, len(m.Border))
	for _, w := range m.Border {
		if seenBorder[w] {
			return errors.Wrap(errMorphismInvalid, "border map not injective")
		}
		seenBorder[w] = true
	}

	return nil
}
