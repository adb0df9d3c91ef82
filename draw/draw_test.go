package draw

import (
	"image"
	"image/color"
	"testing"
)

var white = color.RGBA{0xff, 0xff, 0xff, 0xff}

func isSet(i *image.RGBA, x, y int) bool {
	return i.RGBAAt(x, y) == white
}

func TestRectangle(t *testing.T) {
	i := image.NewRGBA(image.Rect(0, 0, 16, 16))
	Rectangle(i, image.Rect(2, 3, 10, 12), white)

	for _, p := range []image.Point{{2, 3}, {9, 3}, {2, 11}, {9, 11}, {5, 3}, {5, 11}, {2, 7}, {9, 7}} {
		if !isSet(i, p.X, p.Y) {
			t.Errorf("expected edge pixel %s to be set", p)
		}
	}
	for _, p := range []image.Point{{5, 7}, {10, 3}, {2, 12}, {1, 3}} {
		if isSet(i, p.X, p.Y) {
			t.Errorf("expected pixel %s to be clear", p)
		}
	}
}

func TestBox(t *testing.T) {
	i := image.NewRGBA(image.Rect(0, 0, 8, 8))
	Box(i, image.Rect(1, 1, 4, 3), white)

	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			want := x >= 1 && x < 4 && y >= 1 && y < 3
			if got := isSet(i, x, y); got != want {
				t.Errorf("pixel (%d,%d): expected set=%t, got %t", x, y, want, got)
			}
		}
	}
}

func TestLine(t *testing.T) {
	tests := []struct {
		Name string
		A, B image.Point
		Want []image.Point
	}{
		{"point", image.Pt(3, 3), image.Pt(3, 3), []image.Point{{3, 3}}},
		{"horizontal", image.Pt(5, 1), image.Pt(2, 1), []image.Point{{2, 1}, {3, 1}, {4, 1}, {5, 1}}},
		{"vertical", image.Pt(0, 0), image.Pt(0, 2), []image.Point{{0, 0}, {0, 1}, {0, 2}}},
		{"diagonal", image.Pt(3, 3), image.Pt(0, 0), []image.Point{{0, 0}, {1, 1}, {2, 2}, {3, 3}}},
		{"shallow", image.Pt(0, 0), image.Pt(4, 2), []image.Point{{0, 0}, {1, 1}, {2, 1}, {3, 2}, {4, 2}}},
		{"steep up", image.Pt(0, 4), image.Pt(2, 0), []image.Point{{0, 4}, {1, 3}, {1, 2}, {2, 1}, {2, 0}}},
	}
	for _, test := range tests {
		t.Run(test.Name, func(it *testing.T) {
			i := image.NewRGBA(image.Rect(0, 0, 8, 8))
			Line(i, test.A, test.B, white)

			want := make(map[image.Point]bool)
			for _, p := range test.Want {
				want[p] = true
			}
			for y := 0; y < 8; y++ {
				for x := 0; x < 8; x++ {
					if got := isSet(i, x, y); got != want[image.Pt(x, y)] {
						it.Errorf("pixel (%d,%d): expected set=%t, got %t", x, y, want[image.Pt(x, y)], got)
					}
				}
			}
		})
	}
}

func TestRoundedRectangle(t *testing.T) {
	i := image.NewRGBA(image.Rect(0, 0, 16, 12))
	RoundedRectangle(i, i.Bounds(), 4, white)

	for _, p := range []image.Point{{4, 0}, {8, 0}, {11, 11}, {0, 4}, {15, 7}, {1, 1}, {3, 0}, {0, 3}, {14, 1}, {14, 10}, {1, 10}} {
		if !isSet(i, p.X, p.Y) {
			t.Errorf("expected outline pixel %s to be set", p)
		}
	}
	for _, p := range []image.Point{{0, 0}, {15, 0}, {0, 11}, {15, 11}, {0, 1}, {8, 6}, {2, 2}} {
		if isSet(i, p.X, p.Y) {
			t.Errorf("expected pixel %s to be clear", p)
		}
	}
}

func TestRoundedRectangleWithoutRadius(t *testing.T) {
	a := image.NewRGBA(image.Rect(0, 0, 8, 8))
	b := image.NewRGBA(image.Rect(0, 0, 8, 8))
	RoundedRectangle(a, image.Rect(1, 1, 7, 6), 0, white)
	Rectangle(b, image.Rect(1, 1, 7, 6), white)
	if string(a.Pix) != string(b.Pix) {
		t.Error("expected a zero radius to draw a plain rectangle")
	}
}

func TestRoundedBox(t *testing.T) {
	i := image.NewRGBA(image.Rect(0, 0, 16, 12))
	RoundedBox(i, i.Bounds(), 4, white)

	for _, p := range []image.Point{{8, 6}, {8, 0}, {1, 1}, {0, 3}, {0, 8}, {15, 3}, {14, 10}, {4, 11}} {
		if !isSet(i, p.X, p.Y) {
			t.Errorf("expected pixel %s to be filled", p)
		}
	}
	for _, p := range []image.Point{{0, 0}, {0, 2}, {15, 0}, {0, 11}, {15, 11}, {1, 0}} {
		if isSet(i, p.X, p.Y) {
			t.Errorf("expected corner pixel %s to be clear", p)
		}
	}
}

func TestText(t *testing.T) {
	i := image.NewRGBA(image.Rect(0, 0, 64, 24))
	end, err := Text(i, image.Pt(2, 18), 16, "Hi", white)
	if err != nil {
		t.Fatal(err)
	}
	if end.X <= 2 {
		t.Errorf("expected text to advance, ended at %s", end)
	}

	var lit int
	for _, v := range i.Pix {
		if v != 0 {
			lit++
		}
	}
	if lit == 0 {
		t.Error("expected text to render pixels")
	}

	b, err := TextBounds(16, "Hi")
	if err != nil {
		t.Fatal(err)
	}
	if b.Dx() <= 0 || b.Min.Y >= 0 {
		t.Errorf("unexpected text bounds %s", b)
	}
}
