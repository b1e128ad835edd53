package hexmorph

import (
	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
)

// Rule pairs a pattern topology with the fill operations to apply to its
// image when the pattern matches a world.
type Rule struct {
	Pattern *Topology
	FillOps []FillRegion
}

// CompileRules locates every rule-frame drawn in world -- a Rule-class
// region with exactly two inner holes -- and builds a Rule from each.
// It also returns the hidden set: every world region
// that is part of a rule frame or one of its before/after cut-outs, so
// that Interpreter never lets a rule match its own source.
//
// There is no fixed sentinel pixel coordinate distinguishing the
// before/after holes here; instead they're told apart by the
// cycle-canonicalization order that region.go already guarantees
// (Boundary[1] sorts before Boundary[2] by minimal side), which picks
// out the hole whose top row is highest, and of two holes whose top rows
// are level, the left-hand one. See DESIGN.md.
func CompileRules(world *World) ([]Rule, map[RegionKey]bool, []error) {
	topo := world.Topology()
	hidden := make(map[RegionKey]bool)
	var rules []Rule
	var errs []error

	var frameKeys []RegionKey
	for key, r := range topo.Regions {
		if r.Material.Class == MaterialRule {
			frameKeys = append(frameKeys, key)
		}
	}
	slices.Sort(frameKeys)

	for _, key := range frameKeys {
		r := topo.Regions[key]
		if len(r.Boundary) != 3 {
			errs = append(errs, errors.Wrapf(ErrMalformedRuleFrame,
				"region %d: rule frame must have exactly two inner holes, got %d", key, len(r.Boundary)-1))
			continue
		}

		beforeSub := RightOfBorder(world.MaterialMap, &r.Boundary[1])
		afterSub := RightOfBorder(world.MaterialMap, &r.Boundary[2])

		beforeRect := beforeSub.BoundingRect()
		afterRect := afterSub.BoundingRect()
		if beforeRect.Dx() != afterRect.Dx() || beforeRect.Dy() != afterRect.Dy() {
			errs = append(errs, errors.Wrapf(ErrMalformedRuleFrame,
				"region %d: before (%dx%d) and after (%dx%d) holes differ in size",
				key, beforeRect.Dx(), beforeRect.Dy(), afterRect.Dx(), afterRect.Dy()))
			continue
		}

		delta := Pixel{X: beforeRect.MinX - afterRect.MinX, Y: beforeRect.MinY - afterRect.MinY}
		afterAligned := afterSub.Translated(delta)
		pattern := NewTopology(beforeSub)

		if a, b, ok := multiSeamPair(pattern); ok {
			errs = append(errs, errors.Wrapf(ErrIntractablePattern,
				"region %d: pattern regions %d and %d are connected by more than one seam", key, a, b))
			continue
		}

		fillOps, ok := deriveFillOps(pattern, afterAligned)
		if !ok {
			errs = append(errs, errors.Wrapf(ErrMalformedRuleFrame,
				"region %d: after-color is not constant over some pattern region", key))
			continue
		}

		rules = append(rules, Rule{Pattern: pattern, FillOps: fillOps})

		hidden[key] = true
		markHidden(hidden, topo, beforeSub)
		markHidden(hidden, topo, afterSub)
	}

	return rules, hidden, errs
}

// deriveFillOps reads, for each pattern region, the translated
// after-pixmap at every pixel of that region; if the sampled material
// isn't constant the frame is malformed.
func deriveFillOps(pattern *Topology, afterAligned *Pixmap[Material]) ([]FillRegion, bool) {
	keys := make([]RegionKey, 0, len(pattern.Regions))
	for k := range pattern.Regions {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var ops []FillRegion
	for _, key := range keys {
		r := pattern.Regions[key]
		var sampled Material
		have := false
		for _, p := range regionPixels(pattern, key) {
			v, present := afterAligned.Get(p)
			if !present {
				return nil, false
			}
			if !have {
				sampled, have = v, true
				continue
			}
			if !sampled.Equal(v) {
				return nil, false
			}
		}
		if have && !r.Material.Equal(sampled) {
			ops = append(ops, FillRegion{RegionKey: key, Material: sampled})
		}
	}
	return ops, true
}

// multiSeamPair reports the first pair of pattern regions joined by more
// than one seam in the same direction, which makes seam-map induction
// ambiguous: binding one of the seams wouldn't determine which of the
// others corresponds to which seam on the world side.
func multiSeamPair(pattern *Topology) (RegionKey, RegionKey, bool) {
	keys := make([]RegionKey, 0, len(pattern.Regions))
	for k := range pattern.Regions {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, a := range keys {
		for _, b := range keys {
			if a == b {
				continue
			}
			if len(pattern.SeamsBetween(a, b)) > 1 {
				return a, b, true
			}
		}
	}
	return 0, 0, false
}

func markHidden(hidden map[RegionKey]bool, topo *Topology, sub *Pixmap[Material]) {
	sub.Iter(func(p Pixel, _ Material) {
		if wk, ok := topo.RegionMap.Get(p); ok {
			hidden[wk] = true
		}
	})
}
