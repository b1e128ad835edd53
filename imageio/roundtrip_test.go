package imageio

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kelindar/hexmorph"
)

func sampleMap() *hexmorph.Pixmap[hexmorph.Material] {
	m := hexmorph.NewPixmap[hexmorph.Material]()
	m.Set(hexmorph.Pixel{X: 0, Y: 0}, hexmorph.Material{RGB: [3]uint8{10, 20, 30}, Class: hexmorph.MaterialNormal, Alpha: 255})
	m.Set(hexmorph.Pixel{X: 1, Y: 0}, hexmorph.Material{RGB: [3]uint8{40, 50, 60}, Class: hexmorph.MaterialSolid, Alpha: 254})
	return m
}

func TestRoundTrip_PNG(t *testing.T) {
	assert := assert.New(t)

	m := sampleMap()
	var buf bytes.Buffer
	assert.NoError(Encode(&buf, m, ".png"))

	out, err := Decode(&buf, ".png")
	assert.NoError(err)

	v, ok := out.Get(hexmorph.Pixel{X: 0, Y: 0})
	assert.True(ok)
	assert.True(v.Equal(hexmorph.Material{RGB: [3]uint8{10, 20, 30}, Class: hexmorph.MaterialNormal, Alpha: 255}))

	v, ok = out.Get(hexmorph.Pixel{X: 1, Y: 0})
	assert.True(ok)
	assert.True(v.Equal(hexmorph.Material{RGB: [3]uint8{40, 50, 60}, Class: hexmorph.MaterialSolid, Alpha: 254}))
}

func TestRoundTrip_BMP(t *testing.T) {
	assert := assert.New(t)

	m := sampleMap()
	var buf bytes.Buffer
	assert.NoError(Encode(&buf, m, ".bmp"))

	out, err := Decode(&buf, ".bmp")
	assert.NoError(err)

	v, ok := out.Get(hexmorph.Pixel{X: 0, Y: 0})
	assert.True(ok)
	assert.Equal(hexmorph.MaterialNormal, v.Class)
}

func TestRoundTrip_QOI(t *testing.T) {
	assert := assert.New(t)

	m := sampleMap()
	var buf bytes.Buffer
	assert.NoError(Encode(&buf, m, ".qoi"))

	out, err := Decode(&buf, ".qoi")
	assert.NoError(err)

	v, ok := out.Get(hexmorph.Pixel{X: 1, Y: 0})
	assert.True(ok)
	assert.Equal(hexmorph.MaterialSolid, v.Class)
}

func TestDecode_UnsupportedFormat(t *testing.T) {
	assert := assert.New(t)

	var buf bytes.Buffer
	_, err := Decode(&buf, ".tga")
	assert.Error(err)
}

func TestEncode_UnsupportedFormat(t *testing.T) {
	assert := assert.New(t)

	var buf bytes.Buffer
	err := Encode(&buf, sampleMap(), ".tga")
	assert.Error(err)
}

func TestDecode_TransparentPixelsAreOmitted(t *testing.T) {
	assert := assert.New(t)

	m := hexmorph.NewPixmap[hexmorph.Material]()
	m.Set(hexmorph.Pixel{X: 0, Y: 0}, hexmorph.Material{RGB: [3]uint8{1, 2, 3}, Class: hexmorph.MaterialNormal, Alpha: 255})
	m.Set(hexmorph.Pixel{X: 2, Y: 0}, hexmorph.Material{RGB: [3]uint8{1, 2, 3}, Class: hexmorph.MaterialNormal, Alpha: 255})

	var buf bytes.Buffer
	assert.NoError(Encode(&buf, m, ".png"))

	out, err := Decode(&buf, ".png")
	assert.NoError(err)

	// The encoded image is 3x1; the undefined pixel between the two
	// defined ones is written fully transparent and must not come back.
	_, ok := out.Get(hexmorph.Pixel{X: 1, Y: 0})
	assert.False(ok)

	count := 0
	out.Iter(func(hexmorph.Pixel, hexmorph.Material) { count++ })
	assert.Equal(2, count)
}
