package hexmorph

import "github.com/pkg/errors"

// Sentinel errors surfaced across package boundaries. Errors internal to
// a single algorithm (errUndefinedAlpha, errMorphismInvalid) stay local
// to their file; these are the ones a caller of CompileRules or
// Interpreter.Step needs to be able to test against with errors.Is.
var (
	// ErrMalformedRuleFrame is returned when a Rule-class region's
	// before/after sentinel holes are missing, mismatched in size, or
	// otherwise not shaped the way a valid rule frame requires.
	ErrMalformedRuleFrame = errors.New("malformed rule frame")

	// ErrIntractablePattern is returned when a rule's pattern contains two
	// regions joined by more than one seam, which makes seam-map
	// induction ambiguous: the rule is skipped rather than compiled.
	ErrIntractablePattern = errors.New("intractable pattern")
)
