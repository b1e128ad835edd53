package hexmorph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindMorphisms_IdentityMatchOnSinglePixel(t *testing.T) {
	assert := assert.New(t)

	pattern := NewTopology(buildWorld(t, []string{"A"}, map[rune]Material{'A': normal(1, 2, 3)}))
	world := NewTopology(buildWorld(t, []string{"  A"}, map[rune]Material{'A': normal(1, 2, 3)}))

	matches := FindMorphisms(pattern, world, nil, 0)
	assert.Equal(1, len(matches))
}

func TestFindMorphisms_NoMatchOnDifferentMaterial(t *testing.T) {
	assert := assert.New(t)

	pattern := NewTopology(buildWorld(t, []string{"A"}, map[rune]Material{'A': normal(1, 2, 3)}))
	world := NewTopology(buildWorld(t, []string{"B"}, map[rune]Material{'B': normal(4, 5, 6)}))

	matches := FindMorphisms(pattern, world, nil, 0)
	assert.Equal(0, len(matches))
}

func TestFindMorphisms_HiddenSetExcludesOwnSource(t *testing.T) {
	assert := assert.New(t)

	pattern := NewTopology(buildWorld(t, []string{"A"}, map[rune]Material{'A': normal(1, 2, 3)}))
	world := NewTopology(buildWorld(t, []string{"A"}, map[rune]Material{'A': normal(1, 2, 3)}))

	var onlyKey RegionKey
	for k := range world.Regions {
		onlyKey = k
	}
	hidden := map[RegionKey]bool{onlyKey: true}

	matches := FindMorphisms(pattern, world, hidden, 0)
	assert.Equal(0, len(matches))
}

func TestFindMorphisms_WildcardMatchesAnyColor(t *testing.T) {
	assert := assert.New(t)

	pattern := NewTopology(buildWorld(t, []string{"W"}, map[rune]Material{'W': wildcard()}))
	world := NewTopology(buildWorld(t, []string{"A"}, map[rune]Material{'A': normal(7, 8, 9)}))

	matches := FindMorphisms(pattern, world, nil, 0)
	assert.Equal(1, len(matches))
}

func TestFindMorphisms_UnsatisfiableSecondRegionYieldsNoMatch(t *testing.T) {
	assert := assert.New(t)

	pattern := NewTopology(buildWorld(t, []string{"AB"}, map[rune]Material{
		'A': normal(1, 0, 0), 'B': normal(0, 1, 0),
	}))
	// World has A's color but nothing matching B anywhere.
	world := NewTopology(buildWorld(t, []string{"A"}, map[rune]Material{'A': normal(1, 0, 0)}))

	matches := FindMorphisms(pattern, world, nil, 0)
	assert.Equal(0, len(matches))
}

func TestFindMorphisms_SolidRequiresRigidTranslation(t *testing.T) {
	assert := assert.New(t)

	pattern := NewTopology(buildWorld(t, []string{"AA"}, map[rune]Material{'A': solid(1, 1, 1)}))
	// Same two pixels, but reshaped into a vertical pair: no consistent
	// translation maps the pattern's horizontal pair onto this.
	world := NewTopology(buildWorld(t, []string{"A", "A"}, map[rune]Material{'A': solid(1, 1, 1)}))

	matches := FindMorphisms(pattern, world, nil, 0)
	assert.Equal(0, len(matches))
}

func TestFindMorphisms_SolidMatchesTranslatedCopy(t *testing.T) {
	assert := assert.New(t)

	pattern := NewTopology(buildWorld(t, []string{"AA"}, map[rune]Material{'A': solid(1, 1, 1)}))
	world := NewTopology(buildWorld(t, []string{"   AA"}, map[rune]Material{'A': solid(1, 1, 1)}))

	matches := FindMorphisms(pattern, world, nil, 0)
	assert.Equal(1, len(matches))
}

func TestFindMorphisms_TwoHolePatternBindsBordersInjectively(t *testing.T) {
	assert := assert.New(t)

	legend := map[rune]Material{
		'O': normal(9, 9, 9),
		'A': normal(1, 0, 0),
		'C': normal(0, 0, 1),
	}
	rows := []string{
		"OOOOO",
		"OAOCO",
		"OOOOO",
	}
	pattern := NewTopology(buildWorld(t, rows, legend))
	world := NewTopology(buildWorld(t, append([]string{"     "}, rows...), legend))

	matches := FindMorphisms(pattern, world, nil, 0)
	assert.Equal(1, len(matches), "the two holes differ in color so exactly one binding satisfies both")

	phi := matches[0]
	patternHoleA, _ := pattern.RegionMap.Get(Pixel{X: 1, Y: 1})
	patternHoleC, _ := pattern.RegionMap.Get(Pixel{X: 3, Y: 1})
	worldHoleA, _ := world.RegionMap.Get(Pixel{X: 1, Y: 2})
	worldHoleC, _ := world.RegionMap.Get(Pixel{X: 3, Y: 2})

	assert.Equal(worldHoleA, phi.Region[patternHoleA])
	assert.Equal(worldHoleC, phi.Region[patternHoleC])
	assert.NotEqual(phi.Region[patternHoleA], phi.Region[patternHoleC],
		"the pattern's two inner borders must bind injectively to two distinct world regions")
}

func TestFindMorphisms_LimitStopsEarly(t *testing.T) {
	assert := assert.New(t)

	pattern := NewTopology(buildWorld(t, []string{"A"}, map[rune]Material{'A': normal(1, 1, 1)}))
	world := NewTopology(buildWorld(t, []string{"A   A   A"}, map[rune]Material{'A': normal(1, 1, 1)}))
	assert.Equal(3, len(world.Regions))

	matches := FindMorphisms(pattern, world, nil, 1)
	assert.Equal(1, len(matches))
}
