package hexmorph

import "golang.org/x/exp/slices"

// FindMorphisms enumerates topology homomorphisms of pattern into world,
// skipping any candidate whose image would intersect hidden (the
// rule-frame's own source regions, so a rule never matches itself).
// limit <= 0 means "find all"; limit == 1 is used by the interpreter,
// which only needs the first match.
func FindMorphisms(pattern, world *Topology, hidden map[RegionKey]bool, limit int) []*Morphism {
	plan := compilePlan(pattern)
	s := &solveCtx{pattern: pattern, world: world, hidden: hidden, plan: plan, limit: limit}
	s.solveRegion(NewMorphism(), 0)
	return s.results
}

type solveCtx struct {
	pattern, world *Topology
	hidden         map[RegionKey]bool
	plan           *Plan
	limit          int
	results        []*Morphism
}

func (s *solveCtx) full() bool { return s.limit > 0 && len(s.results) >= s.limit }

// solveRegion binds plan.RegionOrder[idx] (guessing a world region when
// it isn't already bound by propagation from an earlier seam) and then
// resolves its borders before recursing to idx+1. Returns true once the
// caller should stop searching (limit reached).
func (s *solveCtx) solveRegion(m *Morphism, idx int) bool {
	if s.full() {
		return true
	}
	if idx == len(s.plan.RegionOrder) {
		return s.finish(m)
	}
	pk := s.plan.RegionOrder[idx]
	pr := s.pattern.Regions[pk]

	if wk, already := m.Region[pk]; already {
		return s.resolveBorders(m, idx, pk, pr, wk, 0)
	}

	for _, wk := range s.candidateRegions(pr) {
		if s.hidden[wk] {
			continue
		}
		branch := m.Clone()
		if !branch.bindRegion(pk, wk) {
			continue
		}
		wr := s.world.Regions[wk]
		if pr.Material.Class == MaterialSolid && !checkSolidRigidity(s.pattern, s.world, pk, wk) {
			continue
		}
		if pr.Material.Class != MaterialRule && len(pr.Boundary) != len(wr.Boundary) {
			continue
		}
		if s.resolveBorders(branch, idx, pk, pr, wk, 0) {
			return true
		}
	}
	return false
}

// candidateRegions returns world regions whose material the pattern
// region's material matches. Ordering is deterministic (by key) so
// search order -- and therefore which match is "first" -- is
// reproducible.
func (s *solveCtx) candidateRegions(pr *Region) []RegionKey {
	var out []RegionKey
	for wk, wr := range s.world.Regions {
		if pr.Material.Matches(wr.Material) {
			out = append(out, wk)
		}
	}
	slices.Sort(out)
	return out
}

// resolveBorders walks pr.Boundary[borderIdx:], binding each to a world
// border of φ(region) -- the outer border is forced (OuterBorder
// propagation); inner borders are guessed among the world region's
// still-unused inner borders, which collapses to a forced choice
// (LastInnerBorder) whenever exactly one remains -- then resolves each
// border's seams before recursing to the next pattern region.
func (s *solveCtx) resolveBorders(m *Morphism, idx int, pk RegionKey, pr *Region, wk RegionKey, borderIdx int) bool {
	if s.full() {
		return true
	}
	if borderIdx == len(pr.Boundary) {
		return s.solveRegion(m, idx+1)
	}
	bk := BorderKey{Region: pk, Index: borderIdx}
	wr := s.world.Regions[wk]

	if wbk, already := m.Border[bk]; already {
		return s.resolveSeams(m, idx, pk, pr, wk, borderIdx, wbk, 0)
	}

	if borderIdx == 0 {
		// OuterBorder propagation: forced to the world region's own
		// outer border.
		branch := m.Clone()
		wbk := BorderKey{Region: wk, Index: 0}
		if !branch.bindBorder(bk, wbk) {
			return false
		}
		return s.resolveSeams(branch, idx, pk, pr, wk, borderIdx, wbk, 0)
	}

	used := usedWorldBorderIndices(m, pk)
	for wi := 1; wi < len(wr.Boundary); wi++ {
		if used[wi] {
			continue
		}
		candWB := BorderKey{Region: wk, Index: wi}
		if len(pr.Boundary[borderIdx].Seams) != len(wr.Boundary[wi].Seams) {
			continue
		}
		branch := m.Clone()
		if !branch.bindBorder(bk, candWB) {
			continue
		}
		if s.resolveSeams(branch, idx, pk, pr, wk, borderIdx, candWB, 0) {
			return true
		}
	}
	return false
}

func usedWorldBorderIndices(m *Morphism, pk RegionKey) map[int]bool {
	used := make(map[int]bool)
	for bk, wbk := range m.Border {
		if bk.Region == pk {
			used[wbk.Index] = true
		}
	}
	return used
}

// resolveSeams binds every seam of pr.Boundary[borderIdx] to the
// correspondingly-positioned seam of the already-bound world border. If
// any pattern seam of this border is already bound (via reverse-seam
// propagation while resolving a neighboring region), that binding fixes
// the cyclic rotation and the rest follow deterministically; otherwise
// every possible rotation offset is tried as a guess.
func (s *solveCtx) resolveSeams(m *Morphism, idx int, pk RegionKey, pr *Region, wk RegionKey, borderIdx int, wbk BorderKey, _ int) bool {
	if s.full() {
		return true
	}
	pb := &pr.Boundary[borderIdx]
	wb := &s.world.Regions[wbk.Region].Boundary[wbk.Index]
	n := len(pb.Seams)
	if n == 0 {
		return s.resolveBorders(m, idx, pk, pr, wk, borderIdx+1)
	}
	if len(wb.Seams) != n {
		return false
	}

	if fixedOffset, ok := s.fixedRotation(m, pb, wb, n); ok {
		branch := m.Clone()
		if s.bindRotation(branch, pb, wb, n, fixedOffset) {
			if s.resolveBorders(branch, idx, pk, pr, wk, borderIdx+1) {
				return true
			}
		}
		return false
	}

	for offset := 0; offset < n; offset++ {
		branch := m.Clone()
		if !s.bindRotation(branch, pb, wb, n, offset) {
			continue
		}
		if s.resolveBorders(branch, idx, pk, pr, wk, borderIdx+1) {
			return true
		}
	}
	return false
}

// fixedRotation looks for a pattern seam of pb that is already bound, and
// if found returns the rotation offset it implies.
func (s *solveCtx) fixedRotation(m *Morphism, pb, wb *Border, n int) (int, bool) {
	for i, seam := range pb.Seams {
		if boundStart, ok := m.Seam[seam.Start]; ok {
			for j, wseam := range wb.Seams {
				if wseam.Start == boundStart {
					return ((j - i) % n + n) % n, true
				}
			}
			return 0, false // bound to a seam not on this world border: contradiction
		}
	}
	return 0, false
}

func (s *solveCtx) bindRotation(m *Morphism, pb, wb *Border, n, offset int) bool {
	for i := 0; i < n; i++ {
		ps := pb.Seams[i]
		ws := wb.Seams[(i+offset)%n]
		if !induceSeam(s.pattern, s.world, m, ps, ws) {
			return false
		}
	}
	return true
}

// finish validates the completed morphism's closure properties and the
// hidden-set exclusion, then records it.
func (s *solveCtx) finish(m *Morphism) bool {
	for _, wk := range m.Region {
		if s.hidden[wk] {
			return false
		}
	}
	if err := m.Validate(s.pattern, s.world); err != nil {
		return false
	}
	s.results = append(s.results, m)
	return s.full()
}
