package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
)

// ErrUnsupportedImage is returned for image data no decoder accepts.
var ErrUnsupportedImage = errors.New("unsupported image")

// TGA image types.
const (
	tgaTrueColor    = 2
	tgaTrueColorRLE = 10
)

// Decode decodes a texture file into RGBA. The decoder is picked from the
// file extension of name: TGA and BMP are handled directly, everything else
// goes through the registered image formats. BMP textures have no alpha
// channel, so magenta texels are keyed out.
func Decode(name string, data []byte) (*image.RGBA, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".tga":
		return decodeTGA(data)
	case ".bmp":
		img, err := bmp.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("decoding %s: %w", name, err)
		}
		rgba := toRGBA(img)
		KeyMagenta(rgba)
		return rgba, nil
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w: %v", name, ErrUnsupportedImage, err)
	}
	return toRGBA(img), nil
}

// LoadFile reads, decodes and uploads the texture file at path under name.
func (r *Registry) LoadFile(name, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading texture %s: %w", name, err)
	}
	img, err := Decode(path, data)
	if err != nil {
		return err
	}
	_, err = r.Upload(name, img)
	return err
}

// KeyMagenta makes magenta texels transparent black in place, so filtering
// does not bleed the key color into neighbours.
func KeyMagenta(img *image.RGBA) {
	for i := 0; i+3 < len(img.Pix); i += 4 {
		p := img.Pix[i : i+4 : i+4]
		if p[0] >= 250 && p[1] <= 10 && p[2] >= 250 {
			p[0], p[1], p[2], p[3] = 0, 0, 0, 0
		}
	}
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}

// decodeTGA decodes uncompressed and RLE true-color TGA data at 24 or 32
// bits per pixel.
func decodeTGA(data []byte) (*image.RGBA, error) {
	if len(data) < 18 {
		return nil, fmt.Errorf("tga: %w: header too short", ErrUnsupportedImage)
	}
	var (
		idLength    = int(data[0])
		colorMap    = data[1]
		kind        = data[2]
		width       = int(data[12]) | int(data[13])<<8
		height      = int(data[14]) | int(data[15])<<8
		bpp         = int(data[16])
		topToBottom = data[17]&0x20 != 0
	)
	if colorMap != 0 || (kind != tgaTrueColor && kind != tgaTrueColorRLE) {
		return nil, fmt.Errorf("tga: %w: type %d", ErrUnsupportedImage, kind)
	}
	if bpp != 24 && bpp != 32 {
		return nil, fmt.Errorf("tga: %w: %d bits per pixel", ErrUnsupportedImage, bpp)
	}
	if 18+idLength > len(data) {
		return nil, fmt.Errorf("tga: truncated id field")
	}
	src := data[18+idLength:]
	stride := bpp / 8

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	total := width * height
	put := func(n int, px []byte) {
		y := n / width
		if !topToBottom {
			y = height - 1 - y
		}
		o := img.PixOffset(n%width, y)
		img.Pix[o], img.Pix[o+1], img.Pix[o+2], img.Pix[o+3] = px[2], px[1], px[0], 255
		if stride == 4 {
			img.Pix[o+3] = px[3]
		}
	}

	if kind == tgaTrueColor {
		if len(src) < total*stride {
			return nil, fmt.Errorf("tga: truncated pixel data")
		}
		for n := 0; n < total; n++ {
			put(n, src[n*stride:])
		}
		return img, nil
	}

	n, i := 0, 0
	for n < total && i < len(src) {
		header := src[i]
		i++
		count := int(header&0x7f) + 1
		if header&0x80 != 0 {
			if i+stride > len(src) {
				break
			}
			for ; count > 0 && n < total; count-- {
				put(n, src[i:])
				n++
			}
			i += stride
			continue
		}
		for ; count > 0 && n < total && i+stride <= len(src); count-- {
			put(n, src[i:])
			n++
			i += stride
		}
	}
	return img, nil
}
