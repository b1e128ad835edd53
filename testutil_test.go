package hexmorph

import "testing"

// buildWorld turns an ASCII grid into a material map: row index is Y,
// rune index is X, a space means void (left undefined, which decodes
// as Transparent). This replaces PNG test fixtures with something
// readable and hand-traceable.
func buildWorld(t *testing.T, rows []string, legend map[rune]Material) *Pixmap[Material] {
	t.Helper()
	m := NewPixmap[Material]()
	for y, row := range rows {
		x := 0
		for _, ch := range row {
			if ch != ' ' {
				mat, ok := legend[ch]
				if !ok {
					t.Fatalf("no legend entry for %q", string(ch))
				}
				m.Set(Pixel{X: x, Y: y}, mat)
			}
			x++
		}
	}
	return m
}

func normal(r, g, b uint8) Material {
	return Material{RGB: [3]uint8{r, g, b}, Class: MaterialNormal, Alpha: 255}
}

func solid(r, g, b uint8) Material {
	return Material{RGB: [3]uint8{r, g, b}, Class: MaterialSolid, Alpha: 254}
}

func rule(r, g, b uint8) Material {
	return Material{RGB: [3]uint8{r, g, b}, Class: MaterialRule, Alpha: 81}
}

func wildcard() Material {
	return Material{RGB: [3]uint8{1, 2, 3}, Class: MaterialWildcard, Alpha: 230}
}
