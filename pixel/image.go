package pixel

import (
	"encoding/binary"
	"image"
	"image/color"

	"github.com/BeatGlow/panel/draw"
)

type Image interface {
	draw.Image

	// Clear the image.
	Clear()

	// Fill the image with a single color.
	Fill(color.Color)

	// Bytes returns the pixels in wire order.
	Bytes() []byte

	// BitsPerPixel is the number of bits a pixel occupies in Bytes.
	BitsPerPixel() int
}

// Buffer holds the pixel values and is a container that is used by most image formats in this package.
type Buffer struct {
	// Rect is the image bounding box.
	Rect image.Rectangle

	// Pix are the image pixels.
	Pix []byte

	// Stride is the Pix stride (in bytes) between vertically adjacent pixels.
	Stride int
}

func (p *Buffer) Bounds() image.Rectangle {
	return p.Rect
}

func (p *Buffer) Clear() {
	for i := range p.Pix {
		p.Pix[i] = 0x00
	}
}

func (p *Buffer) Bytes() []byte {
	return p.Pix
}

func makeBuffer(w, h, stride, size int) Buffer {
	return Buffer{
		Rect:   image.Rect(0, 0, w, h),
		Pix:    make([]byte, size),
		Stride: stride,
	}
}

// CRGB16Image is a 16-bits per pixel 5-6-5-bit RGB image.
type CRGB16Image struct {
	Buffer
	Order binary.ByteOrder
}

func NewCRGB16Image(w, h int) *CRGB16Image {
	return &CRGB16Image{
		Buffer: makeBuffer(w, h, w*2, w*2*h),
		Order:  binary.BigEndian,
	}
}

func (p *CRGB16Image) ColorModel() color.Model {
	return CRGB16Model
}

func (p *CRGB16Image) BitsPerPixel() int {
	return 16
}

func (p *CRGB16Image) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return color.Transparent
	}

	v := p.Order.Uint16(p.Pix[x*2+y*p.Stride:])
	return CRGB16{v}
}

func (p *CRGB16Image) Set(x, y int, c color.Color) {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return
	}

	v := crgb16Model(c).(CRGB16).V
	p.Order.PutUint16(p.Pix[x*2+y*p.Stride:], v)
}

func (p *CRGB16Image) Fill(c color.Color) {
	value := crgb16Model(c).(CRGB16).V
	bytes := make([]byte, 2)
	p.Order.PutUint16(bytes, value)
	for i, l := 0, len(p.Pix); i < l; i += 2 {
		copy(p.Pix[i:], bytes)
	}
}

// CRGB18Image is an 18-bits per pixel 6-6-6-bit RGB image, stored as 3 bytes per pixel.
type CRGB18Image struct {
	Buffer
}

func NewCRGB18Image(w, h int) *CRGB18Image {
	return &CRGB18Image{
		Buffer: makeBuffer(w, h, w*3, w*3*h),
	}
}

func (p *CRGB18Image) ColorModel() color.Model {
	return CRGB18Model
}

func (p *CRGB18Image) BitsPerPixel() int {
	return 24
}

func (p *CRGB18Image) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return color.Transparent
	}

	i := x*3 + y*p.Stride
	return CRGB18{p.Pix[i], p.Pix[i+1], p.Pix[i+2]}
}

func (p *CRGB18Image) Set(x, y int, c color.Color) {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return
	}

	v := crgb18Model(c).(CRGB18)
	i := x*3 + y*p.Stride
	p.Pix[i], p.Pix[i+1], p.Pix[i+2] = v.R, v.G, v.B
}

func (p *CRGB18Image) Fill(c color.Color) {
	v := crgb18Model(c).(CRGB18)
	for i, l := 0, len(p.Pix); i+2 < l; i += 3 {
		p.Pix[i], p.Pix[i+1], p.Pix[i+2] = v.R, v.G, v.B
	}
}

// Interface checks.
var (
	_ Image = (*CRGB16Image)(nil)
	_ Image = (*CRGB18Image)(nil)
)
