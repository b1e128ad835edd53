package hexmorph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMorphism_BindRegionInjective(t *testing.T) {
	assert := assert.New(t)

	m := NewMorphism()
	assert.True(m.bindRegion(1, 100))
	assert.True(m.bindRegion(1, 100), "rebinding the same pair is fine")
	assert.False(m.bindRegion(2, 100), "two pattern regions can't map to one world region")
}

func TestMorphism_BindRegionRejectsConflictingRebind(t *testing.T) {
	assert := assert.New(t)

	m := NewMorphism()
	assert.True(m.bindRegion(1, 100))
	assert.False(m.bindRegion(1, 200))
}

func TestMorphism_Clone_IsIndependent(t *testing.T) {
	assert := assert.New(t)

	m := NewMorphism()
	m.bindRegion(1, 100)
	clone := m.Clone()
	clone.bindRegion(2, 200)

	assert.Equal(1, len(m.Region))
	assert.Equal(2, len(clone.Region))
}

func TestInduceSeam_IdenticalShapes(t *testing.T) {
	assert := assert.New(t)

	pattern := NewTopology(buildWorld(t, []string{"A"}, map[rune]Material{'A': normal(1, 1, 1)}))
	world := NewTopology(buildWorld(t, []string{" A"}, map[rune]Material{'A': normal(1, 1, 1)}))

	var pr, wr *Region
	for _, r := range pattern.Regions {
		pr = r
	}
	for _, r := range world.Regions {
		wr = r
	}

	ps := pr.Boundary[0].Seams[0]
	ws := wr.Boundary[0].Seams[0]

	m := NewMorphism()
	assert.True(induceSeam(pattern, world, m, ps, ws))
	assert.Equal(ws.Start, m.Seam[ps.Start])
}

func TestInduceSeam_RejectsConflictingRebind(t *testing.T) {
	assert := assert.New(t)

	pattern := NewTopology(buildWorld(t, []string{"A"}, map[rune]Material{'A': normal(1, 1, 1)}))
	world := NewTopology(buildWorld(t, []string{" A"}, map[rune]Material{'A': normal(1, 1, 1)}))

	var pr, wr *Region
	for _, r := range pattern.Regions {
		pr = r
	}
	for _, r := range world.Regions {
		wr = r
	}
	ps := pr.Boundary[0].Seams[0]
	ws := wr.Boundary[0].Seams[0]

	m := NewMorphism()
	// Pre-bind the pattern seam to a bogus, different world start: the
	// real induceSeam call must then fail rather than silently overwrite it.
	bogus := Side{Pixel: Pixel{X: 50, Y: 50}, Dir: DirTop}
	m.Seam[ps.Start] = bogus

	assert.False(induceSeam(pattern, world, m, ps, ws))
}

func TestCheckSolidRigidity_ConsistentTranslation(t *testing.T) {
	assert := assert.New(t)

	pattern := NewTopology(buildWorld(t, []string{"AA"}, map[rune]Material{'A': solid(1, 1, 1)}))
	world := NewTopology(buildWorld(t, []string{"  BB"}, map[rune]Material{'B': solid(1, 1, 1)}))

	var pk, wk RegionKey
	for k := range pattern.Regions {
		pk = k
	}
	for k := range world.Regions {
		wk = k
	}

	assert.True(checkSolidRigidity(pattern, world, pk, wk))
}

func TestCheckSolidRigidity_InconsistentShapeFails(t *testing.T) {
	assert := assert.New(t)

	pattern := NewTopology(buildWorld(t, []string{"AA"}, map[rune]Material{'A': solid(1, 1, 1)}))
	world := NewTopology(buildWorld(t, []string{"B", "B"}, map[rune]Material{'B': solid(1, 1, 1)}))

	var pk, wk RegionKey
	for k := range pattern.Regions {
		pk = k
	}
	for k := range world.Regions {
		wk = k
	}

	// Same pixel count, but a vertical pair can't translate onto a
	// horizontal pair with a single offset.
	assert.False(checkSolidRigidity(pattern, world, pk, wk))
}

func TestMorphism_ValidateRejectsDanglingSeam(t *testing.T) {
	assert := assert.New(t)

	pattern := NewTopology(buildWorld(t, []string{"A"}, map[rune]Material{'A': normal(1, 1, 1)}))
	world := NewTopology(buildWorld(t, []string{"B"}, map[rune]Material{'B': normal(1, 1, 1)}))

	m := NewMorphism()
	m.Seam[Side{Pixel: Pixel{X: 99, Y: 99}, Dir: DirTop}] = Side{Pixel: Pixel{X: 0, Y: 0}, Dir: DirTop}

	assert.Error(m.Validate(pattern, world))
}
