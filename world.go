package hexmorph

// FillRegion is one write instruction produced by applying a Rule: the
// interior of RegionKey must become Material.
type FillRegion struct {
	RegionKey RegionKey
	Material  Material
}

// World owns a material map and a lazily (re)built Topology over it,
// treating Topology as a cheap, immutable snapshot. Callers must not
// hold a Topology reference across a call to FillRegions.
type World struct {
	MaterialMap *Pixmap[Material]
	topology    *Topology
}

// FromMaterialMap takes ownership of m (callers should Clone first if
// they need to keep writing to it independently).
func FromMaterialMap(m *Pixmap[Material]) *World {
	return &World{MaterialMap: m}
}

// Topology returns the cached topology, rebuilding it first if a prior
// FillRegions call invalidated it.
func (w *World) Topology() *Topology {
	if w.topology == nil {
		w.topology = NewTopology(w.MaterialMap)
	}
	return w.topology
}

// FillRegions applies a batch of region recolors. Each entry either
// repaints in place -- when no neighbor across any of the
// region's seams already carries the target material, so the adjacency
// structure cannot have changed -- or invalidates the cached topology
// for a full rebuild on next access. A no-op entry (already that color)
// is skipped entirely.
func (w *World) FillRegions(ops []FillRegion) {
	topo := w.Topology()
	invalidate := false

	for _, op := range ops {
		r, ok := topo.Regions[op.RegionKey]
		if !ok {
			invalidate = true
			continue
		}
		if r.Material.Equal(op.Material) {
			continue
		}

		paintRegion(w.MaterialMap, topo, r, op.Material)

		if invalidate || !canRecolorInPlace(topo, r, op.Material) {
			invalidate = true
			continue
		}
		r.Material = op.Material
	}

	if invalidate {
		w.topology = nil
	}
}

func paintRegion(m *Pixmap[Material], topo *Topology, r *Region, mat Material) {
	topo.RegionMap.IterCover(r.Cover, func(p Pixel, k RegionKey) {
		if k == r.Key {
			m.Set(p, mat)
		}
	})
}

// canRecolorInPlace holds only when none of the region's neighbors
// across any of its seams already carry the target material, since that
// would merge two regions that the cached topology still believes are
// distinct.
func canRecolorInPlace(topo *Topology, r *Region, mat Material) bool {
	for _, b := range r.Boundary {
		for _, seam := range b.Seams {
			rk, ok := topo.RightOf(seam)
			if !ok {
				continue
			}
			if neighbor, ok := topo.Regions[rk]; ok && neighbor.Material.Equal(mat) {
				return false
			}
		}
	}
	return true
}
