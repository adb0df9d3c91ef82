package panel

import "fmt"

// Gamma is a gamma program sent to the controller during initialization.
type Gamma interface {
	// commands returns the command table for the gamma program.
	commands() [][]byte
}

// GammaDefault selects the high contrast analog gamma tables.
type GammaDefault struct{}

func (GammaDefault) commands() [][]byte {
	return GammaHighContrast.commands()
}

// GammaPredefined selects one of the four gamma curves built into the controller.
type GammaPredefined struct {
	// Curve index, 0 (G2.2) to 3 (G1.0).
	Curve uint8
}

func (g GammaPredefined) commands() [][]byte {
	return [][]byte{{st7789GAMSET, 1 << g.Curve}}
}

// GammaAnalog programs custom positive and negative voltage gamma curves.
type GammaAnalog struct {
	Positive [14]byte
	Negative [14]byte
}

func (g GammaAnalog) commands() [][]byte {
	return [][]byte{
		append([]byte{st7789PVGAMCTRL}, g.Positive[:]...),
		append([]byte{st7789NVGAMCTRL}, g.Negative[:]...),
	}
}

// GammaDigital programs the digital gamma lookup tables. Channels without a table are left as is.
type GammaDigital struct {
	Red  *[64]byte
	Blue *[64]byte
}

func (g GammaDigital) commands() [][]byte {
	var cmds [][]byte
	if g.Red != nil {
		cmds = append(cmds, append([]byte{st7789DGMLUTR}, g.Red[:]...))
	}
	if g.Blue != nil {
		cmds = append(cmds, append([]byte{st7789DGMLUTB}, g.Blue[:]...))
	}
	if len(cmds) > 0 {
		cmds = append(cmds, []byte{st7789DGMEN, 0x04})
	}
	return cmds
}

func validateGamma(g Gamma) error {
	var (
		curve uint8
		isNil bool
	)
	switch g := g.(type) {
	case GammaPredefined:
		curve = g.Curve
	case *GammaPredefined:
		if isNil = g == nil; !isNil {
			curve = g.Curve
		}
	case *GammaDefault:
		isNil = g == nil
	case *GammaAnalog:
		isNil = g == nil
	case *GammaDigital:
		isNil = g == nil
	}
	if isNil {
		return fmt.Errorf("st7789: nil %T gamma: %w", g, ErrInvalidArgument)
	}
	if curve > 3 {
		return fmt.Errorf("st7789: unsupported gamma curve %d: %w", curve, ErrNotSupported)
	}
	return nil
}

// Analog gamma presets (positive, negative).
var (
	GammaST7789VDefault = GammaAnalog{
		Positive: [14]byte{0x70, 0x2C, 0x2E, 0x15, 0x10, 0x09, 0x48, 0x33, 0x53, 0x0B, 0x19, 0x19, 0x20, 0x25},
		Negative: [14]byte{0x70, 0x2C, 0x2E, 0x15, 0x10, 0x09, 0x48, 0x33, 0x53, 0x0B, 0x19, 0x19, 0x20, 0x25},
	}
	GammaERTFT024IPS3 = GammaAnalog{
		Positive: [14]byte{0xF0, 0x00, 0x04, 0x04, 0x04, 0x05, 0x29, 0x33, 0x3E, 0x38, 0x12, 0x12, 0x28, 0x30},
		Negative: [14]byte{0xF0, 0x07, 0x0A, 0x0D, 0x0B, 0x07, 0x28, 0x33, 0x3E, 0x36, 0x14, 0x14, 0x29, 0x32},
	}
	GammaNewhaven = GammaAnalog{
		Positive: [14]byte{0xD0, 0x00, 0x05, 0x0E, 0x15, 0x0D, 0x37, 0x43, 0x47, 0x09, 0x15, 0x12, 0x16, 0x19},
		Negative: [14]byte{0xD0, 0x00, 0x05, 0x0D, 0x0C, 0x06, 0x2D, 0x44, 0x40, 0x0E, 0x1C, 0x18, 0x16, 0x19},
	}
	GammaTinyDRM = GammaAnalog{
		Positive: [14]byte{0xD0, 0x00, 0x02, 0x07, 0x0A, 0x28, 0x32, 0x44, 0x42, 0x06, 0x0E, 0x12, 0x14, 0x17},
		Negative: [14]byte{0xD0, 0x00, 0x02, 0x07, 0x0A, 0x28, 0x31, 0x54, 0x47, 0x0E, 0x1C, 0x17, 0x1B, 0x1E},
	}
	GammaEATFT02023AI = GammaAnalog{
		Positive: [14]byte{0xD0, 0x06, 0x0B, 0x0A, 0x09, 0x05, 0x2E, 0x43, 0x44, 0x09, 0x16, 0x15, 0x23, 0x27},
		Negative: [14]byte{0xD0, 0x06, 0x0B, 0x09, 0x08, 0x06, 0x2E, 0x44, 0x44, 0x3A, 0x15, 0x15, 0x23, 0x26},
	}
	GammaOptimized = GammaAnalog{
		Positive: [14]byte{0xF0, 0x04, 0x08, 0x07, 0x08, 0x05, 0x39, 0x43, 0x50, 0x38, 0x18, 0x18, 0x30, 0x34},
		Negative: [14]byte{0xF0, 0x04, 0x08, 0x07, 0x08, 0x05, 0x39, 0x43, 0x50, 0x38, 0x18, 0x18, 0x30, 0x34},
	}
	GammaGoodDark = GammaAnalog{
		Positive: [14]byte{0xF0, 0x04, 0x08, 0x06, 0x06, 0x28, 0x40, 0x43, 0x60, 0x1C, 0x1C, 0x18, 0x35, 0x36},
		Negative: [14]byte{0xF0, 0x04, 0x08, 0x06, 0x06, 0x28, 0x40, 0x43, 0x60, 0x1C, 0x1C, 0x18, 0x35, 0x36},
	}
	GammaHighContrast = GammaAnalog{
		Positive: [14]byte{0xF0, 0x04, 0x08, 0x06, 0x08, 0x28, 0x40, 0x43, 0x60, 0x1E, 0x1C, 0x18, 0x35, 0x36},
		Negative: [14]byte{0xF0, 0x04, 0x08, 0x06, 0x08, 0x28, 0x40, 0x43, 0x60, 0x1E, 0x1C, 0x18, 0x35, 0x36},
	}
)

// Digital gamma lookup tables, named after the gamma exponent (045 is γ=0.45).
var (
	DigitalGamma020 = [64]byte{
		0, 111, 128, 139, 147, 154, 159, 164, 169, 173, 176, 180, 183, 186, 189, 191,
		194, 196, 198, 201, 203, 205, 207, 208, 210, 212, 214, 215, 217, 218, 220, 221,
		223, 224, 225, 227, 228, 229, 230, 232, 233, 234, 235, 236, 237, 238, 239, 240,
		242, 242, 243, 244, 245, 246, 247, 248, 249, 250, 251, 252, 253, 253, 254, 255,
	}
	DigitalGamma045 = [64]byte{
		0, 40, 54, 65, 74, 82, 89, 95, 101, 106, 111, 116, 121, 125, 130, 134,
		138, 141, 145, 149, 152, 156, 159, 162, 165, 168, 171, 174, 177, 180, 183, 185,
		188, 191, 193, 196, 198, 201, 203, 206, 208, 210, 212, 215, 217, 219, 221, 224,
		226, 228, 230, 232, 234, 236, 238, 240, 242, 244, 246, 248, 249, 251, 253, 255,
	}
	DigitalGamma070 = [64]byte{
		0, 14, 23, 30, 37, 43, 49, 55, 60, 65, 70, 75, 80, 84, 89, 93,
		98, 102, 106, 110, 114, 118, 122, 126, 130, 134, 137, 141, 145, 148, 152, 155,
		159, 162, 166, 169, 172, 176, 179, 182, 186, 189, 192, 195, 198, 201, 205, 208,
		211, 214, 217, 220, 223, 226, 229, 232, 235, 238, 241, 244, 246, 249, 252, 255,
	}
	DigitalGamma180 = [64]byte{
		0, 0, 1, 1, 2, 3, 4, 5, 6, 8, 9, 11, 13, 15, 17, 19,
		22, 24, 27, 29, 32, 35, 38, 42, 45, 48, 52, 55, 59, 63, 67, 71,
		75, 80, 84, 89, 93, 98, 103, 108, 113, 118, 123, 128, 134, 139, 145, 150,
		156, 162, 168, 174, 181, 187, 193, 200, 206, 213, 220, 227, 234, 241, 248, 255,
	}
	DigitalGamma300 = [64]byte{
		0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 2, 2, 3, 3,
		4, 5, 6, 7, 8, 9, 11, 12, 14, 16, 18, 20, 22, 25, 28, 30,
		33, 37, 40, 44, 48, 52, 56, 60, 65, 70, 76, 81, 87, 93, 99, 106,
		113, 120, 127, 135, 143, 152, 161, 170, 179, 189, 199, 209, 220, 231, 243, 255,
	}
)
