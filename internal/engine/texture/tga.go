package texture

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// TGA image types understood by DecodeTGA.
const (
	tgaTrueColor    = 2
	tgaTrueColorRLE = 10
	tgaHeaderSize   = 18
)

var errTGATruncated = errors.New("tga: data truncated")

// DecodeTGA decodes an uncompressed or RLE true-color TGA with 24 or 32
// bits per pixel.
func DecodeTGA(data []byte) (*image.RGBA, error) {
	if len(data) < tgaHeaderSize {
		return nil, errTGATruncated
	}
	var (
		idLength    = int(data[0])
		colorMap    = data[1]
		imageType   = data[2]
		width       = int(data[12]) | int(data[13])<<8
		height      = int(data[14]) | int(data[15])<<8
		depth       = int(data[16])
		topToBottom = data[17]&0x20 != 0
	)
	if colorMap != 0 {
		return nil, errors.New("tga: color-mapped images are not supported")
	}
	if imageType != tgaTrueColor && imageType != tgaTrueColorRLE {
		return nil, fmt.Errorf("tga: unsupported image type %d", imageType)
	}
	if depth != 24 && depth != 32 {
		return nil, fmt.Errorf("tga: unsupported depth %d", depth)
	}
	if tgaHeaderSize+idLength > len(data) {
		return nil, errTGATruncated
	}

	px := &tgaPixels{
		img:         image.NewRGBA(image.Rect(0, 0, width, height)),
		width:       width,
		height:      height,
		bpp:         depth / 8,
		topToBottom: topToBottom,
		src:         data[tgaHeaderSize+idLength:],
	}
	if imageType == tgaTrueColor {
		if len(px.src) < width*height*px.bpp {
			return nil, errTGATruncated
		}
		for px.n < width*height {
			px.put(px.read())
		}
		return px.img, nil
	}

	for px.n < width*height && px.pos < len(px.src) {
		header := px.src[px.pos]
		px.pos++
		count := int(header&0x7f) + 1
		if header&0x80 != 0 {
			if !px.has(1) {
				break
			}
			c := px.read()
			for i := 0; i < count && px.n < width*height; i++ {
				px.put(c)
			}
			continue
		}
		for i := 0; i < count && px.n < width*height && px.has(1); i++ {
			px.put(px.read())
		}
	}
	return px.img, nil
}

// tgaPixels walks BGR(A) source pixels and writes them in image order.
type tgaPixels struct {
	img         *image.RGBA
	width       int
	height      int
	bpp         int
	topToBottom bool
	src         []byte
	pos         int
	n           int
}

func (p *tgaPixels) has(pixels int) bool {
	return p.pos+pixels*p.bpp <= len(p.src)
}

func (p *tgaPixels) read() color.RGBA {
	s := p.src[p.pos:]
	c := color.RGBA{R: s[2], G: s[1], B: s[0], A: 255}
	if p.bpp == 4 {
		c.A = s[3]
	}
	p.pos += p.bpp
	return c
}

func (p *tgaPixels) put(c color.RGBA) {
	x, y := p.n%p.width, p.n/p.width
	if !p.topToBottom {
		y = p.height - 1 - y
	}
	p.img.SetRGBA(x, y, c)
	p.n++
}
