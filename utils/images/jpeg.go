package images

import (
	"bytes"
	"encoding/binary"
	"errors"
	"image"

	"github.com/disintegration/imaging"
)

// DensityUnit is JFIF density unit.
type DensityUnit uint8

const (
	DensityNoUnits DensityUnit = iota
	DensityPxPerInch
	DensityPxPerCm
)

// ScreenDPI is resolution Word assumes for images without density info.
const ScreenDPI = 96

// EnsureJFIFAPP0 inserts JFIF APP0 segment with density when jpeg has none,
// otherwise Word may pick odd physical size for the picture.
func EnsureJFIFAPP0(jpegData []byte, unit DensityUnit, xdensity, ydensity uint16) ([]byte, bool, error) {
	if len(jpegData) < 4 {
		return nil, false, errors.New("jpeg too small")
	}
	if jpegData[0] != 0xFF || jpegData[1] != 0xD8 {
		return nil, false, errors.New("not a jpeg")
	}
	if jpegData[2] == 0xFF && jpegData[3] == 0xE0 {
		return jpegData, false, nil
	}

	buf := new(bytes.Buffer)
	buf.Grow(len(jpegData) + 18)
	buf.Write(jpegData[:2])
	buf.Write([]byte{0xFF, 0xE0})
	_ = binary.Write(buf, binary.BigEndian, uint16(16))
	buf.Write([]byte{'J', 'F', 'I', 'F', 0x00, 0x01, 0x02})
	buf.WriteByte(byte(unit))
	_ = binary.Write(buf, binary.BigEndian, xdensity)
	_ = binary.Write(buf, binary.BigEndian, ydensity)
	buf.Write([]byte{0x00, 0x00}) // no thumbnail
	buf.Write(jpegData[2:])
	return buf.Bytes(), true, nil
}

// EncodeJPEG encodes image marking it with screen resolution.
func EncodeJPEG(img image.Image, quality int) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := imaging.Encode(buf, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, err
	}
	out, _, err := EnsureJFIFAPP0(buf.Bytes(), DensityPxPerInch, ScreenDPI, ScreenDPI)
	return out, err
}
