package draw

import (
	"image"
	"image/color"
	"sync"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	defaultFont     *truetype.Font
	defaultFontErr  error
	defaultFontOnce sync.Once
)

// DefaultFont returns the Go Regular font.
func DefaultFont() (*truetype.Font, error) {
	defaultFontOnce.Do(func() {
		defaultFont, defaultFontErr = freetype.ParseFont(goregular.TTF)
	})
	return defaultFont, defaultFontErr
}

// Text draws s with its baseline starting at pt, using the default font at size points (72 DPI,
// so points equal pixels). It returns the point where the next glyph would start.
func Text(dst Image, pt image.Point, size float64, s string, c color.Color) (image.Point, error) {
	f, err := DefaultFont()
	if err != nil {
		return pt, err
	}
	return TextFont(dst, f, pt, size, s, c)
}

// TextFont draws s like Text using font f.
func TextFont(dst Image, f *truetype.Font, pt image.Point, size float64, s string, c color.Color) (image.Point, error) {
	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(f)
	ctx.SetFontSize(size)
	ctx.SetClip(dst.Bounds())
	ctx.SetDst(dst)
	ctx.SetSrc(image.NewUniform(c))
	ctx.SetHinting(font.HintingFull)

	end, err := ctx.DrawString(s, freetype.Pt(pt.X, pt.Y))
	if err != nil {
		return pt, err
	}
	return image.Pt(end.X.Round(), end.Y.Round()), nil
}

// TextBounds measures s in the default font at size points, relative to the baseline origin.
func TextBounds(size float64, s string) (image.Rectangle, error) {
	f, err := DefaultFont()
	if err != nil {
		return image.Rectangle{}, err
	}
	face := truetype.NewFace(f, &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingFull})
	defer face.Close()

	b, _ := font.BoundString(face, s)
	return image.Rect(
		b.Min.X.Floor(), b.Min.Y.Floor(),
		b.Max.X.Ceil(), b.Max.Y.Ceil(),
	), nil
}

