package hexmorph

import "github.com/pkg/errors"

// Interpreter caches a world's compiled rules and hidden set across
// Step calls. Caching is only safe as long as the world's rule-frame
// regions are not modified; call Invalidate after any change that could
// have touched a frame region. Step recompiles by itself when the world's
// topology has been rebuilt since the last compile.
type Interpreter struct {
	rules    []Rule
	hidden   map[RegionKey]bool
	compiled bool
}

func NewInterpreter() *Interpreter {
	return &Interpreter{}
}

// Invalidate forces the next Step to recompile rules from scratch.
func (in *Interpreter) Invalidate() {
	in.rules = nil
	in.hidden = nil
	in.compiled = false
}

func (in *Interpreter) ensureCompiled(world *World) error {
	if in.compiled {
		// Region keys are never reused, so a hidden key missing from the
		// current topology means it was rebuilt and the hidden set is stale.
		topo := world.Topology()
		stale := false
		for k := range in.hidden {
			if _, ok := topo.Regions[k]; !ok {
				stale = true
				break
			}
		}
		if !stale {
			return nil
		}
	}
	rules, hidden, errs := CompileRules(world)
	in.rules = rules
	in.hidden = hidden
	in.compiled = true
	return combineCompileErrors(errs)
}

func combineCompileErrors(errs []error) error {
	switch len(errs) {
	case 0:
		return nil
	case 1:
		return errs[0]
	default:
		return errors.Wrapf(errs[0], "and %d more rule compile error(s)", len(errs)-1)
	}
}

// Step tries each compiled rule, in deterministic order, against world's
// current topology, applying the first one that matches anywhere outside
// the hidden set and returning true. It returns false once no rule
// applies. An error is returned only when the rules needed (re)compiling
// and compilation found a malformed frame or an intractable pattern; once
// rules are cached, Step itself never raises.
func (in *Interpreter) Step(world *World) (bool, error) {
	compileErr := in.ensureCompiled(world)

	worldTopo := world.Topology()
	for _, rule := range in.rules {
		matches := FindMorphisms(rule.Pattern, worldTopo, in.hidden, 1)
		if len(matches) == 0 {
			continue
		}
		phi := matches[0]
		ops := make([]FillRegion, 0, len(rule.FillOps))
		for _, op := range rule.FillOps {
			wk, ok := phi.Region[op.RegionKey]
			if !ok {
				continue
			}
			ops = append(ops, FillRegion{RegionKey: wk, Material: op.Material})
		}
		world.FillRegions(ops)
		return true, compileErr
	}
	return false, compileErr
}

// Stabilize repeatedly steps world to a fixed point, stopping early once
// budget steps have been applied (budget <= 0 means unbounded), and
// returns the number of rule applications made.
func Stabilize(world *World, interp *Interpreter, budget int) (int, error) {
	applied := 0
	for budget <= 0 || applied < budget {
		ok, err := interp.Step(world)
		if ok {
			applied++
		}
		if err != nil {
			return applied, err
		}
		if !ok {
			break
		}
	}
	return applied, nil
}
