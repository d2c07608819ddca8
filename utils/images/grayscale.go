package images

import (
	"image"
	"image/color"
	"image/draw"
)

// IsGrayscale reports whether all pixels of img have R==G==B.
func IsGrayscale(img image.Image) bool {
	switch img.(type) {
	case *image.Gray, *image.Gray16:
		return true
	}
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			if c.R != c.G || c.G != c.B || c.A != 0xFF {
				return false
			}
		}
	}
	return true
}

// toGray converts opaque grayscale image to single channel one, PNG encoder
// then writes a third of the data.
func toGray(img image.Image) image.Image {
	if _, ok := img.(*image.Gray); ok || !IsGrayscale(img) {
		return img
	}
	dst := image.NewGray(img.Bounds())
	draw.Draw(dst, dst.Bounds(), img, img.Bounds().Min, draw.Src)
	return dst
}
