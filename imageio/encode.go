package imageio

import (
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/xfmoulet/qoi"
	"golang.org/x/image/bmp"

	"github.com/kelindar/hexmorph"
)

// Encode renders m's bounding rectangle as an RGBA8 image into w, using
// EncodeRGBA8 to pick a canonical alpha band per pixel and leaving
// undefined pixels fully transparent.
func Encode(w io.Writer, m *hexmorph.Pixmap[hexmorph.Material], ext string) error {
	img := imageFromMaterialMap(m)
	switch strings.ToLower(ext) {
	case ".bmp":
		return bmp.Encode(w, img)
	case ".qoi":
		return qoi.Encode(w, img)
	case ".png":
		return png.Encode(w, img)
	case ".jpg", ".jpeg":
		return jpeg.Encode(w, img, &jpeg.Options{Quality: 100})
	default:
		return errors.Errorf("unsupported image format %q", ext)
	}
}

func imageFromMaterialMap(m *hexmorph.Pixmap[hexmorph.Material]) *image.NRGBA {
	rect := m.BoundingRect()
	img := image.NewNRGBA(image.Rect(rect.MinX, rect.MinY, rect.MaxX, rect.MaxY))
	m.Iter(func(p hexmorph.Pixel, v hexmorph.Material) {
		img.SetNRGBA(p.X, p.Y, hexmorph.EncodeRGBA8(v))
	})
	return img
}

// EncodeFile is a convenience wrapper dispatching on filepath.Ext(name).
func EncodeFile(w io.Writer, m *hexmorph.Pixmap[hexmorph.Material], name string) error {
	return Encode(w, m, filepath.Ext(name))
}
