// Package imageio adapts RGBA8 image files to and from hexmorph material
// maps. It is a leaf I/O concern kept out of the core engine, mirroring
// esimov-caire's split between its algorithmic packages and image.go's
// extension-dispatch decode/encode.
package imageio

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
	"github.com/xfmoulet/qoi"
	"golang.org/x/image/bmp"

	"github.com/kelindar/hexmorph"
)

// Decode reads an RGBA8 image from r, dispatching on ext (a file
// extension such as ".png", including the dot), and classifies every
// pixel into a Material by its reserved alpha band.
func Decode(r io.Reader, ext string) (*hexmorph.Pixmap[hexmorph.Material], error) {
	img, err := decodeImage(r, ext)
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s image", ext)
	}
	return materialMapFromImage(img)
}

func decodeImage(r io.Reader, ext string) (image.Image, error) {
	switch strings.ToLower(ext) {
	case ".bmp":
		return bmp.Decode(r)
	case ".qoi":
		return qoi.Decode(r)
	case ".png", ".jpg", ".jpeg", ".tif", ".tiff":
		return imaging.Decode(r)
	default:
		return nil, fmt.Errorf("unsupported image format %q", ext)
	}
}

func materialMapFromImage(img image.Image) (*hexmorph.Pixmap[hexmorph.Material], error) {
	bounds := img.Bounds()
	m := hexmorph.NewPixmap[hexmorph.Material]()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			nrgba := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			mat, err := hexmorph.DecodeRGBA8(nrgba)
			if err != nil {
				return nil, errors.Wrapf(err, "pixel (%d,%d)", x, y)
			}
			if mat.IsVoid() {
				continue
			}
			m.Set(hexmorph.Pixel{X: x, Y: y}, mat)
		}
	}
	return m, nil
}

// DecodeFile is a convenience wrapper dispatching on filepath.Ext(name).
func DecodeFile(r io.Reader, name string) (*hexmorph.Pixmap[hexmorph.Material], error) {
	return Decode(r, filepath.Ext(name))
}
