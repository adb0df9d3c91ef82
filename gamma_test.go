package panel

import (
	"errors"
	"testing"
)

func TestGammaCommands(t *testing.T) {
	red, blue := DigitalGamma070, DigitalGamma180
	tests := []struct {
		name  string
		gamma Gamma
		want  []byte // leading command byte of each entry
	}{
		{"default", GammaDefault{}, []byte{st7789PVGAMCTRL, st7789NVGAMCTRL}},
		{"predefined", GammaPredefined{Curve: 0}, []byte{st7789GAMSET}},
		{"analog", GammaTinyDRM, []byte{st7789PVGAMCTRL, st7789NVGAMCTRL}},
		{"digital red", GammaDigital{Red: &red}, []byte{st7789DGMLUTR, st7789DGMEN}},
		{"digital blue", GammaDigital{Blue: &blue}, []byte{st7789DGMLUTB, st7789DGMEN}},
		{"digital both", GammaDigital{Red: &red, Blue: &blue}, []byte{st7789DGMLUTR, st7789DGMLUTB, st7789DGMEN}},
		{"digital none", GammaDigital{}, nil},
	}
	for _, test := range tests {
		t.Run(test.name, func(it *testing.T) {
			cmds := test.gamma.commands()
			if len(cmds) != len(test.want) {
				it.Fatalf("expected %d commands, got %d", len(test.want), len(cmds))
			}
			for i, cmd := range cmds {
				if cmd[0] != test.want[i] {
					it.Errorf("command %d: expected %s, got %s", i, commandName(test.want[i]), commandName(cmd[0]))
				}
				switch cmd[0] {
				case st7789PVGAMCTRL, st7789NVGAMCTRL:
					if len(cmd) != 15 {
						it.Errorf("%s: expected 14 parameters, got %d", commandName(cmd[0]), len(cmd)-1)
					}
				case st7789DGMLUTR, st7789DGMLUTB:
					if len(cmd) != 65 {
						it.Errorf("%s: expected 64 parameters, got %d", commandName(cmd[0]), len(cmd)-1)
					}
				case st7789DGMEN:
					if len(cmd) != 2 || cmd[1] != 0x04 {
						it.Errorf("DGMEN: expected 04, got % x", cmd[1:])
					}
				}
			}
		})
	}
}

func TestGammaPredefinedCurve(t *testing.T) {
	for curve, want := range []byte{0x01, 0x02, 0x04, 0x08} {
		cmds := GammaPredefined{Curve: uint8(curve)}.commands()
		if v := cmds[0][1]; v != want {
			t.Errorf("curve %d: expected GAMSET %02x, got %02x", curve, want, v)
		}
	}
}

func TestGammaDefaultIsHighContrast(t *testing.T) {
	def, hc := GammaDefault{}.commands(), GammaHighContrast.commands()
	for i := range def {
		if string(def[i]) != string(hc[i]) {
			t.Errorf("command %d: expected % x, got % x", i, hc[i], def[i])
		}
	}
}

func TestDigitalGammaTables(t *testing.T) {
	for name, table := range map[string][64]byte{
		"0.20": DigitalGamma020,
		"0.45": DigitalGamma045,
		"0.70": DigitalGamma070,
		"1.80": DigitalGamma180,
		"3.00": DigitalGamma300,
	} {
		if table[0] != 0 || table[63] != 255 {
			t.Errorf("%s: expected table to span 0-255, got %d-%d", name, table[0], table[63])
		}
		for i := 1; i < len(table); i++ {
			if table[i] < table[i-1] {
				t.Errorf("%s: table not monotonic at %d", name, i)
				break
			}
		}
	}
}

func TestValidateGamma(t *testing.T) {
	var nilCurve *GammaPredefined
	tests := []struct {
		name    string
		gamma   Gamma
		wantErr error
	}{
		{"default", GammaDefault{}, nil},
		{"curve 3", GammaPredefined{Curve: 3}, nil},
		{"curve 4", GammaPredefined{Curve: 4}, ErrNotSupported},
		{"pointer curve", &GammaPredefined{Curve: 1}, nil},
		{"nil pointer curve", nilCurve, ErrInvalidArgument},
		{"analog", GammaGoodDark, nil},
		{"digital", GammaDigital{}, nil},
		{"pointer analog", &GammaGoodDark, nil},
		{"pointer digital", &GammaDigital{}, nil},
		{"nil pointer default", (*GammaDefault)(nil), ErrInvalidArgument},
		{"nil pointer analog", (*GammaAnalog)(nil), ErrInvalidArgument},
		{"nil pointer digital", (*GammaDigital)(nil), ErrInvalidArgument},
	}
	for _, test := range tests {
		t.Run(test.name, func(it *testing.T) {
			err := validateGamma(test.gamma)
			if test.wantErr == nil && err != nil {
				it.Errorf("unexpected error: %v", err)
			} else if test.wantErr != nil && !errors.Is(err, test.wantErr) {
				it.Errorf("expected %v, got %v", test.wantErr, err)
			}
		})
	}
}
