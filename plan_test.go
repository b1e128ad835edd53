package hexmorph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompilePlan_OrdersByDescendingSeamCount(t *testing.T) {
	assert := assert.New(t)

	// A ring has two borders (outer + inner hole), each a single seam
	// (constant void on the right), for two seams total -- more than a
	// lone pixel's one seam -- so it must be ordered first.
	rows := []string{
		"###    ",
		"# #    ",
		"###    ",
		"       ",
		"      X",
	}
	legend := map[rune]Material{'#': normal(1, 1, 1), 'X': normal(9, 9, 9)}
	m := buildWorld(t, rows, legend)
	topo := NewTopology(m)
	assert.Equal(2, len(topo.Regions))

	var ringKey, dotKey RegionKey
	for k, r := range topo.Regions {
		if r.Material.Equal(legend['#']) {
			ringKey = k
		} else {
			dotKey = k
		}
	}
	assert.Equal(2, regionSeamCount(topo.Regions[ringKey]))
	assert.Equal(1, regionSeamCount(topo.Regions[dotKey]))

	plan := compilePlan(topo)
	assert.Equal(2, len(plan.RegionOrder))
	assert.Equal(ringKey, plan.RegionOrder[0])
	assert.Equal(dotKey, plan.RegionOrder[1])
}

func TestRegionSeamCount_SumsAcrossBorders(t *testing.T) {
	assert := assert.New(t)

	m := NewPixmap[Material]()
	m.Set(Pixel{X: 0, Y: 0}, normal(1, 1, 1))
	topo := NewTopology(m)

	var r *Region
	for _, v := range topo.Regions {
		r = v
	}
	assert.Equal(1, regionSeamCount(r))
}
