package hexmorph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSideDir_CCWCycle(t *testing.T) {
	assert := assert.New(t)

	d := DirTop
	for i := 0; i < numDirs; i++ {
		d = d.NextCCW()
	}
	assert.Equal(DirTop, d, "six NextCCW steps must return to the start")

	assert.Equal(DirTop, DirTop.NextCCW().PreviousCCW())
}

func TestSideDir_Opposite(t *testing.T) {
	assert := assert.New(t)

	for _, d := range dirOrder {
		assert.Equal(d, d.Opposite().Opposite())
		assert.NotEqual(d, d.Opposite())
	}
}

func TestSide_ReversedInvolution(t *testing.T) {
	assert := assert.New(t)

	s := Side{Pixel: Pixel{X: 3, Y: -2}, Dir: DirBottomLeft}
	assert.Equal(s, s.Reversed().Reversed())
}

func TestSide_ReversedSwapsLeftRight(t *testing.T) {
	assert := assert.New(t)

	s := Side{Pixel: Pixel{X: 0, Y: 0}, Dir: DirRight}
	r := s.Reversed()
	assert.Equal(s.Right(), r.Left())
	assert.Equal(s.Left(), r.Right())
}

func TestSide_ContinuingSides_FollowsPixelOfOneCandidate(t *testing.T) {
	assert := assert.New(t)

	s := Side{Pixel: Pixel{X: 0, Y: 0}, Dir: DirTop}
	cands := s.ContinuingSides()

	// One candidate continues on the same pixel (turning further CCW);
	// the other continues on the neighboring pixel across the corner.
	assert.Equal(s.Pixel, cands[0].Pixel)
	assert.NotEqual(s.Pixel, cands[1].Pixel)
	assert.Equal(s.Dir.NextCCW(), cands[0].Dir)
}

func TestSide_StopCorner_MatchesNextCCWStartCorner(t *testing.T) {
	assert := assert.New(t)

	// The six sides of a single pixel traversed CCW close into a loop:
	// each side's stop corner is the next side's start corner.
	p := Pixel{X: 5, Y: 5}
	for _, d := range dirOrder {
		s := Side{Pixel: p, Dir: d}
		next := Side{Pixel: p, Dir: d.NextCCW()}
		assert.Equal(s.StopCorner(), next.StartCorner(), "dir=%s", d)
	}
}

func TestCorner_CanonicalIndependentOfRepresentative(t *testing.T) {
	assert := assert.New(t)

	p := Pixel{X: 2, Y: 2}
	d := DirTopRight
	want := canonicalCorner(p, d)

	for _, rep := range rawCornerReps(p, d) {
		assert.Equal(want, canonicalCorner(rep.Pixel, rep.Dir), "rep=%+v", rep)
	}
}

func TestPixel_Less_RowMajor(t *testing.T) {
	assert := assert.New(t)

	assert.True(Pixel{X: 5, Y: 0}.Less(Pixel{X: 0, Y: 1}))
	assert.True(Pixel{X: 0, Y: 0}.Less(Pixel{X: 1, Y: 0}))
	assert.False(Pixel{X: 1, Y: 0}.Less(Pixel{X: 1, Y: 0}))
}

func TestPixel_NeighborRoundTrip(t *testing.T) {
	assert := assert.New(t)

	p := Pixel{X: 1, Y: 1}
	for _, d := range dirOrder {
		n := p.Neighbor(d)
		assert.Equal(p, n.Neighbor(d.Opposite()))
	}
}
