// Package images turns image files referenced by the source document into
// pictures Word can display.
package images

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"math"

	"github.com/disintegration/imaging"
	"github.com/h2non/filetype"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrUnsupportedImage is returned for data which is not a known image format.
var ErrUnsupportedImage = errors.New("unsupported image format")

const (
	emuPerCm   = 360000
	emuPerInch = 914400
)

// Box is the area picture has to fit into.
type Box struct {
	WidthCm  float64
	HeightCm float64
}

// Options control picture preparation.
type Options struct {
	Box         Box
	MaxPixels   int // longest side of stored image, 0 - unlimited
	JPEGQuality int
}

// Prepared is a picture ready for embedding.
type Prepared struct {
	Data        []byte
	Ext         string
	ContentType string
	WidthPx     int
	HeightPx    int
	// displayed size in EMU
	CX, CY int64
}

// Prepare normalizes image data: formats Word does not handle are converted
// to PNG, SVG is rasterized, oversized images are scaled down. Display size
// is natural size at screen resolution reduced to fit the box.
func Prepare(data []byte, opts Options) (*Prepared, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty data", ErrUnsupportedImage)
	}

	kind, _ := filetype.Match(data)
	var (
		res *Prepared
		err error
	)
	switch {
	case kind.Extension == "jpg":
		res, err = prepareJPEG(data, opts)
	case kind.Extension == "png" || kind.Extension == "gif":
		res, err = preparePassThrough(data, kind.Extension, kind.MIME.Value, opts)
	case kind.Extension == "webp" || kind.Extension == "tif" || kind.Extension == "bmp":
		res, err = prepareConverted(data, opts)
	case isSVG(data):
		var img image.Image
		if img, err = RasterizeSVG(data, opts.MaxPixels); err == nil {
			res, err = encodePNG(img)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedImage, kind.Extension)
	}
	if err != nil {
		return nil, err
	}
	res.CX, res.CY = fitBox(res.WidthPx, res.HeightPx, opts.Box)
	return res, nil
}

func prepareJPEG(data []byte, opts Options) (*Prepared, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("unable to decode jpeg: %w", err)
	}
	if !oversized(cfg.Width, cfg.Height, opts.MaxPixels) {
		out, _, err := EnsureJFIFAPP0(data, DensityPxPerInch, ScreenDPI, ScreenDPI)
		if err != nil {
			return nil, err
		}
		return &Prepared{Data: out, Ext: "jpeg", ContentType: "image/jpeg", WidthPx: cfg.Width, HeightPx: cfg.Height}, nil
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("unable to decode jpeg: %w", err)
	}
	img = downscale(img, opts.MaxPixels)
	out, err := EncodeJPEG(img, opts.JPEGQuality)
	if err != nil {
		return nil, fmt.Errorf("unable to encode jpeg: %w", err)
	}
	b := img.Bounds()
	return &Prepared{Data: out, Ext: "jpeg", ContentType: "image/jpeg", WidthPx: b.Dx(), HeightPx: b.Dy()}, nil
}

func preparePassThrough(data []byte, ext, contentType string, opts Options) (*Prepared, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("unable to decode %s: %w", ext, err)
	}
	if !oversized(cfg.Width, cfg.Height, opts.MaxPixels) {
		return &Prepared{Data: data, Ext: ext, ContentType: contentType, WidthPx: cfg.Width, HeightPx: cfg.Height}, nil
	}
	return prepareConverted(data, opts)
}

func prepareConverted(data []byte, opts Options) (*Prepared, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("unable to decode image: %w", err)
	}
	return encodePNG(downscale(img, opts.MaxPixels))
}

func encodePNG(img image.Image) (*Prepared, error) {
	buf := new(bytes.Buffer)
	if err := imaging.Encode(buf, toGray(img), imaging.PNG, imaging.PNGCompressionLevel(png.BestCompression)); err != nil {
		return nil, fmt.Errorf("unable to encode png: %w", err)
	}
	b := img.Bounds()
	return &Prepared{Data: buf.Bytes(), Ext: "png", ContentType: "image/png", WidthPx: b.Dx(), HeightPx: b.Dy()}, nil
}

func oversized(w, h, limit int) bool {
	return limit > 0 && (w > limit || h > limit)
}

func downscale(img image.Image, limit int) image.Image {
	b := img.Bounds()
	if !oversized(b.Dx(), b.Dy(), limit) {
		return img
	}
	return imaging.Fit(img, limit, limit, imaging.Lanczos)
}

// fitBox returns display extent in EMU. Pictures are never enlarged past
// their natural size.
func fitBox(w, h int, box Box) (int64, int64) {
	natW := float64(w) * emuPerInch / ScreenDPI
	natH := float64(h) * emuPerInch / ScreenDPI
	scale := 1.0
	if box.WidthCm > 0 {
		scale = min(scale, box.WidthCm*emuPerCm/natW)
	}
	if box.HeightCm > 0 {
		scale = min(scale, box.HeightCm*emuPerCm/natH)
	}
	return int64(math.Round(natW * scale)), int64(math.Round(natH * scale))
}
