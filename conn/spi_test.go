package conn

import (
	"errors"
	"testing"

	periphconn "periph.io/x/conn/v3"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

type fakeConn struct{}

func (fakeConn) String() string { return "fake" }
func (fakeConn) Tx(w, r []byte) error { return nil }
func (fakeConn) Duplex() periphconn.Duplex { return periphconn.Half }
func (fakeConn) TxPackets(p []spi.Packet) error { return nil }

type fakePort struct {
	speed  physic.Frequency
	mode   spi.Mode
	bits   int
	err    error
	closed bool
}

func (p *fakePort) String() string { return "SPI0.0" }

func (p *fakePort) Connect(f physic.Frequency, mode spi.Mode, bits int) (spi.Conn, error) {
	if p.err != nil {
		return nil, p.err
	}
	p.speed, p.mode, p.bits = f, mode, bits
	return fakeConn{}, nil
}

func (p *fakePort) LimitSpeed(f physic.Frequency) error { return nil }

func (p *fakePort) Close() error {
	p.closed = true
	return nil
}

func TestConnectSPI(t *testing.T) {
	port := new(fakePort)
	c, err := connectSPI(port, 0, spi.Mode3)
	if err != nil {
		t.Fatal(err)
	}
	if port.speed != DefaultSPISpeed {
		t.Errorf("expected default speed %s, got %s", DefaultSPISpeed, port.speed)
	}
	if port.mode != spi.Mode3 || port.bits != 8 {
		t.Errorf("expected mode 3 with 8 bits, got mode %s with %d bits", port.mode, port.bits)
	}
	if v := c.String(); v != "SPI SPI0.0" {
		t.Errorf("expected SPI SPI0.0, got %q", v)
	}
	if err = c.Close(); err != nil || !port.closed {
		t.Errorf("expected port to be closed, got %v", err)
	}
}

func TestConnectSPIError(t *testing.T) {
	errConnect := errors.New("unsupported speed")
	port := &fakePort{err: errConnect}
	if _, err := connectSPI(port, 100*physic.MegaHertz, spi.Mode0); !errors.Is(err, errConnect) {
		t.Errorf("expected %v, got %v", errConnect, err)
	}
	if !port.closed {
		t.Error("expected port to be closed after a failed connect")
	}
}

func TestParseSPIMode(t *testing.T) {
	for mode, want := range []spi.Mode{spi.Mode0, spi.Mode1, spi.Mode2, spi.Mode3} {
		if v, err := ParseSPIMode(mode); err != nil || v != want {
			t.Errorf("mode %d: expected %s, got %s (%v)", mode, want, v, err)
		}
	}
	for _, mode := range []int{-1, 4} {
		if _, err := ParseSPIMode(mode); err == nil {
			t.Errorf("mode %d: expected error", mode)
		}
	}
}
