package hexmorph

import (
	"image/color"

	"github.com/pkg/errors"
)

// MaterialClass tags the role a Material plays during matching and
// rewriting.
type MaterialClass uint8

const (
	MaterialNormal MaterialClass = iota
	MaterialSolid
	MaterialRule
	MaterialWildcard
	MaterialTransparent
	MaterialSleeping
)

func (c MaterialClass) String() string {
	switch c {
	case MaterialNormal:
		return "normal"
	case MaterialSolid:
		return "solid"
	case MaterialRule:
		return "rule"
	case MaterialWildcard:
		return "wildcard"
	case MaterialTransparent:
		return "transparent"
	case MaterialSleeping:
		return "sleeping"
	default:
		return "unknown"
	}
}

// Material is a classified color. RGB carries the payload; Class carves
// how the value participates in topology matching. Alpha retains the raw
// encoded alpha band, which distinguishes the three visually-different
// but logically-equal Rule bands (56/81/191) for any caller that wants to
// re-render the original look -- matching always collapses them.
type Material struct {
	RGB   [3]uint8
	Class MaterialClass
	Alpha uint8
}

// Equal compares class and RGB payload, ignoring the raw Alpha band.
func (m Material) Equal(o Material) bool {
	return m.Class == o.Class && m.RGB == o.RGB
}

// Matches implements the matching relation: a Wildcard matches anything
// that isn't Transparent (void); everything else matches only an equal
// material.
func (m Material) Matches(o Material) bool {
	if m.Class == MaterialWildcard {
		return o.Class != MaterialTransparent
	}
	return m.Equal(o)
}

// IsVoid reports whether this material never participates in matching
// and bounds the world on the outside.
func (m Material) IsVoid() bool {
	return m.Class == MaterialTransparent
}

var errUndefinedAlpha = errors.New("undefined alpha band")

// DecodeRGBA8 classifies an RGBA8 pixel by its reserved alpha band.
func DecodeRGBA8(c color.NRGBA) (Material, error) {
	a := c.A
	switch {
	case a == 255:
		return Material{RGB: [3]uint8{c.R, c.G, c.B}, Class: MaterialNormal, Alpha: a}, nil
	case a == 0:
		return Material{Class: MaterialTransparent, Alpha: a}, nil
	case a == 254 || a == 170:
		return Material{RGB: [3]uint8{c.R, c.G, c.B}, Class: MaterialSolid, Alpha: a}, nil
	case a == 253 || a == 180:
		return Material{RGB: [3]uint8{c.R >> 1, c.G >> 1, c.B >> 1}, Class: MaterialSolid, Alpha: a}, nil
	case a >= 245 && a <= 252:
		bits := a - 245
		rLSB := bits & 1
		gLSB := (bits >> 1) & 1
		bLSB := (bits >> 2) & 1
		return Material{
			RGB:   [3]uint8{(c.R << 1) | rLSB, (c.G << 1) | gLSB, (c.B << 1) | bLSB},
			Class: MaterialSolid,
			Alpha: a,
		}, nil
	case a == 56 || a == 81 || a == 191 || a == 111:
		return Material{RGB: [3]uint8{c.R, c.G, c.B}, Class: MaterialRule, Alpha: a}, nil
	case a == 230:
		return Material{RGB: [3]uint8{c.R, c.G, c.B}, Class: MaterialWildcard, Alpha: a}, nil
	case a == 131 || a == 201:
		return Material{RGB: [3]uint8{c.R, c.G, c.B}, Class: MaterialSleeping, Alpha: a}, nil
	default:
		return Material{}, errors.Wrapf(errUndefinedAlpha, "alpha=%d", a)
	}
}

// EncodeRGBA8 produces a canonical RGBA8 encoding for a Material. A Rule
// material whose raw Alpha is 56, 81 or 191, or a Sleeping material whose
// raw Alpha is 131 or 201, keeps that band so Rule/Sleeping bitmaps
// round-trip their visual variant; every other material (including the
// legacy Rule band 111 and all Solid bands) gets its class's main-band
// alpha.
func EncodeRGBA8(m Material) color.NRGBA {
	switch m.Class {
	case MaterialNormal:
		return color.NRGBA{R: m.RGB[0], G: m.RGB[1], B: m.RGB[2], A: 255}
	case MaterialTransparent:
		return color.NRGBA{A: 0}
	case MaterialSolid:
		return color.NRGBA{R: m.RGB[0], G: m.RGB[1], B: m.RGB[2], A: 254}
	case MaterialRule:
		a := m.Alpha
		if a != 56 && a != 81 && a != 191 {
			a = 81
		}
		return color.NRGBA{R: m.RGB[0], G: m.RGB[1], B: m.RGB[2], A: a}
	case MaterialWildcard:
		return color.NRGBA{R: m.RGB[0], G: m.RGB[1], B: m.RGB[2], A: 230}
	case MaterialSleeping:
		a := m.Alpha
		if a != 131 && a != 201 {
			a = 131
		}
		return color.NRGBA{R: m.RGB[0], G: m.RGB[1], B: m.RGB[2], A: a}
	default:
		return color.NRGBA{A: 0}
	}
}
