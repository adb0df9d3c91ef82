package draw

import (
	"image"
	"image/color"
)

// Line draws a line from a to b, both end points included.
func Line(dst Image, a, b image.Point, c color.Color) {
	var (
		dx, sx = abs(b.X-a.X), sign(b.X-a.X)
		dy, sy = -abs(b.Y-a.Y), sign(b.Y-a.Y)
		e      = dx + dy
	)
	for p := a; ; {
		dst.Set(p.X, p.Y, c)
		if p == b {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			p.X += sx
		}
		if e2 <= dx {
			e += dx
			p.Y += sy
		}
	}
}

// HorizontalLine draws w pixels to the right of (x,y).
func HorizontalLine(dst Image, x, y, w int, c color.Color) {
	for i := 0; i < w; i++ {
		dst.Set(x+i, y, c)
	}
}

// VerticalLine draws h pixels below (x,y).
func VerticalLine(dst Image, x, y, h int, c color.Color) {
	for i := 0; i < h; i++ {
		dst.Set(x, y+i, c)
	}
}

// Rectangle draws a rectangle.
func Rectangle(dst Image, rect image.Rectangle, c color.Color) {
	if rect.Empty() {
		return
	}
	HorizontalLine(dst, rect.Min.X, rect.Min.Y, rect.Dx(), c)
	HorizontalLine(dst, rect.Min.X, rect.Max.Y-1, rect.Dx(), c)
	VerticalLine(dst, rect.Min.X, rect.Min.Y, rect.Dy(), c)
	VerticalLine(dst, rect.Max.X-1, rect.Min.Y, rect.Dy(), c)
}

// RoundedRectangle draws a rectangle with rounded corners. The radius is limited to half the
// shortest side.
func RoundedRectangle(dst Image, rect image.Rectangle, radius int, c color.Color) {
	if rect.Empty() {
		return
	}
	var (
		r           = cornerRadius(rect, radius)
		left, right = rect.Min.X + r, rect.Max.X - 1 - r
		top, bottom = rect.Min.Y + r, rect.Max.Y - 1 - r
	)
	HorizontalLine(dst, left, rect.Min.Y, right-left+1, c)
	HorizontalLine(dst, left, rect.Max.Y-1, right-left+1, c)
	VerticalLine(dst, rect.Min.X, top, bottom-top+1, c)
	VerticalLine(dst, rect.Max.X-1, top, bottom-top+1, c)
	arc(r, func(x, y int) {
		for _, p := range [...]image.Point{{x, y}, {y, x}} {
			dst.Set(left-p.X, top-p.Y, c)
			dst.Set(right+p.X, top-p.Y, c)
			dst.Set(right+p.X, bottom+p.Y, c)
			dst.Set(left-p.X, bottom+p.Y, c)
		}
	})
}

// Box draws a filled rectangle.
func Box(dst Image, rect image.Rectangle, c color.Color) {
	if rect.Empty() {
		return
	}
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		HorizontalLine(dst, rect.Min.X, y, rect.Dx(), c)
	}
}

// RoundedBox draws a filled rectangle with rounded corners.
func RoundedBox(dst Image, rect image.Rectangle, radius int, c color.Color) {
	if rect.Empty() {
		return
	}
	var (
		r           = cornerRadius(rect, radius)
		left, right = rect.Min.X + r, rect.Max.X - 1 - r
		top, bottom = rect.Min.Y + r, rect.Max.Y - 1 - r
	)
	Box(dst, image.Rect(left, rect.Min.Y, right+1, rect.Max.Y), c)
	arc(r, func(x, y int) {
		for _, p := range [...]image.Point{{x, y}, {y, x}} {
			h := bottom - top + 2*p.Y + 1
			VerticalLine(dst, left-p.X, top-p.Y, h, c)
			VerticalLine(dst, right+p.X, top-p.Y, h, c)
		}
	})
}

func cornerRadius(rect image.Rectangle, radius int) int {
	return max(0, min(radius, (rect.Dx()-1)/2, (rect.Dy()-1)/2))
}

// arc walks one octant of a circle with the midpoint algorithm, starting next to (0,r).
func arc(r int, fn func(x, y int)) {
	x, y, f := 0, r, 1-r
	for x < y {
		if f >= 0 {
			y--
			f -= 2 * y
		}
		x++
		f += 2*x + 1
		fn(x, y)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	default:
		return 0
	}
}
