// Package hexmorph implements a visual cellular-rewrite engine: a
// pixel→material map is both the program and the data. It builds a
// Topology (regions, borders, seams, corners) over a material map,
// compiles rewrite Rules by locating rule-frame patterns drawn in the
// map, searches for topology homomorphisms of a pattern into a world,
// and applies matched rules by refilling the matched regions.
//
// The package is synchronous and holds no background state: every
// operation runs to completion on the calling goroutine, and a World
// must not be shared across concurrent callers.
package hexmorph
