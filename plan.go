package hexmorph

import "golang.org/x/exp/slices"

// Plan is the compiled, static search order for a pattern: a plan is
// pure data, built once per pattern and reused against every world.
// Region order implements the guess-priority heuristic: regions with
// more seams
// (more constrained) are bound first, which lets material/rigidity
// filtering eliminate most candidates before the branchier border/seam
// guesses are even reached.
type Plan struct {
	RegionOrder []RegionKey
}

func regionSeamCount(r *Region) int {
	n := 0
	for _, b := range r.Boundary {
		n += len(b.Seams)
	}
	return n
}

func compilePlan(pattern *Topology) *Plan {
	keys := make([]RegionKey, 0, len(pattern.Regions))
	for k := range pattern.Regions {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b RegionKey) int {
		ra, rb := pattern.Regions[a], pattern.Regions[b]
		sa, sb := regionSeamCount(ra), regionSeamCount(rb)
		if sa != sb {
			return sb - sa // most-constrained (most seams) first
		}
		if a < b {
			return -1
		}
		if a > b {
			return 1
		}
		return 0
	})
	return &Plan{RegionOrder: keys}
}
