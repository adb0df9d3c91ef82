package panel

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"tinygo.org/x/drivers"

	"github.com/BeatGlow/panel/pixel"
)

// Errors
var (
	ErrBounds = errors.New("panel: out of display bounds")
)

// Rotation defines pixel rotation.
type Rotation uint8

// Supported rotations.
const (
	NoRotation Rotation = iota
	Rotate90            // Rotate 90° clock wise
	Rotate180           // Rotate 180°
	Rotate270           // Rotate 270° clock wise
)

func (r Rotation) String() string {
	switch r % 4 {
	case Rotate90:
		return "90°"
	case Rotate180:
		return "180°"
	case Rotate270:
		return "270°"
	default:
		return "0°"
	}
}

// ScreenConfig is the screen configuration.
type ScreenConfig struct {
	// Width of the panel in pixels, in its native orientation.
	Width int

	// Height of the panel in pixels, in its native orientation.
	Height int

	// XGap and YGap are the offsets of the visible area in the controller frame memory, in the
	// native orientation. They are adjusted for every rotation.
	XGap int
	YGap int

	// Rotation of the screen.
	Rotation Rotation

	// Invert colors, needed by most IPS panels.
	Invert bool
}

// Frame memory size of panels that do not report it.
const (
	defaultRAMWidth  = 240
	defaultRAMHeight = 320
)

// Screen is a framebuffer backed display on top of a Panel.
type Screen struct {
	pixel.Image
	p         Panel
	ramWidth  int
	ramHeight int
	width     int
	height    int
	xGap      int
	yGap      int
	invert    bool
	bpp       int
	rotation  Rotation
	scratch   []byte
}

// NewScreen allocates a framebuffer for p. The pixel format and frame memory size follow the
// panel, panels that do not report them are driven with 16 bits per pixel and a 240x320 memory.
func NewScreen(p Panel, config *ScreenConfig) (*Screen, error) {
	if p == nil || config == nil {
		return nil, ErrInvalidArgument
	}

	s := &Screen{
		p:         p,
		ramWidth:  defaultRAMWidth,
		ramHeight: defaultRAMHeight,
		width:     config.Width,
		height:    config.Height,
		xGap:      config.XGap,
		yGap:      config.YGap,
		invert:    config.Invert,
		bpp:       16,
	}
	if f, ok := p.(interface{ MemorySize() (int, int) }); ok {
		s.ramWidth, s.ramHeight = f.MemorySize()
	}
	if f, ok := p.(interface{ BitsPerPixel() int }); ok {
		s.bpp = f.BitsPerPixel()
	}

	if s.width <= 0 || s.height <= 0 || s.width > s.ramWidth || s.height > s.ramHeight {
		return nil, fmt.Errorf("panel: invalid size %dx%d, maximum size is %dx%d: %w",
			s.width, s.height, s.ramWidth, s.ramHeight, ErrInvalidArgument)
	}
	if s.xGap < 0 || s.yGap < 0 || s.width+s.xGap > s.ramWidth || s.height+s.yGap > s.ramHeight {
		return nil, fmt.Errorf("panel: invalid gap (%d,%d) for size %dx%d: %w",
			s.xGap, s.yGap, s.width, s.height, ErrInvalidArgument)
	}
	if s.bpp != 16 && s.bpp != 24 {
		return nil, fmt.Errorf("panel: unsupported bus pixel width %d: %w", s.bpp, ErrNotSupported)
	}

	s.rotation = config.Rotation & 3
	s.allocate()
	return s, nil
}

func (s *Screen) allocate() {
	w, h := s.width, s.height
	if s.rotation == Rotate90 || s.rotation == Rotate270 {
		w, h = h, w
	}
	if s.bpp == 24 {
		s.Image = pixel.NewCRGB18Image(w, h)
	} else {
		s.Image = pixel.NewCRGB16Image(w, h)
	}
}

func (s *Screen) String() string {
	bounds := s.Bounds()
	return fmt.Sprintf("%s %dx%d", s.p, bounds.Dx(), bounds.Dy())
}

// Panel returns the underlying panel.
func (s *Screen) Panel() Panel {
	return s.p
}

// Close the panel.
func (s *Screen) Close() error {
	return s.p.Close()
}

// Init resets and initializes the panel, then applies the configured inversion and rotation. The
// display is left off, use Show to turn it on.
func (s *Screen) Init() (err error) {
	if err = s.p.Reset(); err != nil {
		return
	}
	if err = s.p.Init(); err != nil {
		return
	}
	if err = s.p.InvertColor(s.invert); err != nil {
		return
	}
	return s.SetRotation(s.rotation)
}

// Show toggles the display on or off.
func (s *Screen) Show(show bool) error {
	return s.p.DisplayOnOff(show)
}

// Rotation returns the current rotation.
func (s *Screen) Rotation() Rotation {
	return s.rotation
}

// SetRotation adjusts the pixel rotation. The framebuffer is reallocated and cleared when the
// rotation changes.
func (s *Screen) SetRotation(rotation Rotation) (err error) {
	rotation &= 3

	var mirrorX, mirrorY, swap bool
	switch rotation {
	case Rotate90:
		mirrorX, swap = true, true
	case Rotate180:
		mirrorX, mirrorY = true, true
	case Rotate270:
		mirrorY, swap = true, true
	}

	if err = s.p.SwapXY(swap); err != nil {
		return
	}
	if err = s.p.Mirror(mirrorX, mirrorY); err != nil {
		return
	}

	// mirrored axes are addressed from the far end of the frame memory
	colGap, rowGap := s.xGap, s.yGap
	if mirrorX {
		colGap = s.ramWidth - s.width - s.xGap
	}
	if mirrorY {
		rowGap = s.ramHeight - s.height - s.yGap
	}
	if swap {
		colGap, rowGap = rowGap, colGap
	}
	if err = s.p.SetGap(colGap, rowGap); err != nil {
		return
	}

	debugf("panel: rotation %s -> %s", s.rotation, rotation)
	if rotation != s.rotation {
		s.rotation = rotation
		s.allocate()
	}
	return
}

// Refresh redraws the whole display from the framebuffer.
func (s *Screen) Refresh() error {
	r := s.Bounds()
	if r.Empty() {
		return nil
	}
	return s.p.DrawBitmap(r.Min.X, r.Min.Y, r.Max.X, r.Max.Y, s.Bytes())
}

// RefreshRect redraws the part of the display covered by r.
func (s *Screen) RefreshRect(r image.Rectangle) error {
	bounds := s.Bounds()
	if !r.In(bounds) {
		return ErrBounds
	}
	if r.Empty() {
		return nil
	}
	if r == bounds {
		return s.Refresh()
	}

	var (
		bpp    = s.BitsPerPixel() / 8
		stride = bounds.Dx() * bpp
		line   = r.Dx() * bpp
		size   = line * r.Dy()
		pix    = s.Bytes()
	)
	if cap(s.scratch) < size {
		s.scratch = make([]byte, size)
	}
	buf := s.scratch[:size]
	for y := r.Min.Y; y < r.Max.Y; y++ {
		offset := y*stride + r.Min.X*bpp
		copy(buf[(y-r.Min.Y)*line:], pix[offset:offset+line])
	}
	return s.p.DrawBitmap(r.Min.X, r.Min.Y, r.Max.X, r.Max.Y, buf)
}

// Size returns the current size of the display.
func (s *Screen) Size() (x, y int16) {
	size := s.Bounds().Size()
	return int16(size.X), int16(size.Y)
}

// SetPixel modifies the internal buffer.
func (s *Screen) SetPixel(x, y int16, c color.RGBA) {
	s.Set(int(x), int(y), c)
}

// Display sends the buffer to the screen.
func (s *Screen) Display() error {
	return s.Refresh()
}

// Interface checks.
var (
	_ drivers.Displayer = (*Screen)(nil)
)
