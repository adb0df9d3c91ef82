package panel

import (
	"bytes"
	"errors"
	"fmt"
	"time"
)

var errBus = errors.New("bus failure")

type txRecord struct {
	cmd   byte
	data  []byte
	color bool
}

func (r txRecord) String() string {
	if len(r.data) == 0 {
		return commandName(r.cmd)
	}
	return fmt.Sprintf("%s % X", commandName(r.cmd), r.data)
}

// recordingIO logs every transaction, failOn makes a command fail.
type recordingIO struct {
	log    []txRecord
	failOn map[byte]bool
}

func (m *recordingIO) tx(cmd byte, data []byte, color bool) error {
	if m.failOn[cmd] {
		return errBus
	}
	m.log = append(m.log, txRecord{cmd: cmd, data: bytes.Clone(data), color: color})
	return nil
}

func (m *recordingIO) TxParam(cmd byte, params ...byte) error {
	return m.tx(cmd, params, false)
}

func (m *recordingIO) TxColor(cmd byte, pixels []byte) error {
	return m.tx(cmd, pixels, true)
}

func (m *recordingIO) commands() []string {
	out := make([]string, len(m.log))
	for i, r := range m.log {
		out[i] = r.String()
	}
	return out
}

func (m *recordingIO) last(n int) []string {
	cmds := m.commands()
	if len(cmds) < n {
		return cmds
	}
	return cmds[len(cmds)-n:]
}

func (m *recordingIO) count(cmd byte) (n int) {
	for _, r := range m.log {
		if r.cmd == cmd {
			n++
		}
	}
	return
}

func (m *recordingIO) reset() {
	m.log = m.log[:0]
}

type gpioEvent struct {
	pin  int
	op   string
	high bool
	at   time.Duration
}

// mockGPIO tracks reserved pins, the events are stamped with the mock delay clock.
type mockGPIO struct {
	clock    *mockDelay
	reserved map[int]bool
	events   []gpioEvent
	fail     error
}

func newMockGPIO(clock *mockDelay) *mockGPIO {
	return &mockGPIO{clock: clock, reserved: make(map[int]bool)}
}

func (m *mockGPIO) now() time.Duration {
	if m.clock == nil {
		return 0
	}
	return m.clock.elapsed
}

func (m *mockGPIO) ConfigureOutput(pin int, high bool) error {
	if m.fail != nil {
		return m.fail
	}
	if m.reserved[pin] {
		return ErrPinReserved
	}
	m.reserved[pin] = true
	m.events = append(m.events, gpioEvent{pin: pin, op: "configure", high: high, at: m.now()})
	return nil
}

func (m *mockGPIO) SetLevel(pin int, high bool) error {
	if m.fail != nil {
		return m.fail
	}
	if !m.reserved[pin] {
		return ErrPinNotOwned
	}
	m.events = append(m.events, gpioEvent{pin: pin, op: "set", high: high, at: m.now()})
	return nil
}

func (m *mockGPIO) Release(pin int) error {
	if !m.reserved[pin] {
		return ErrPinNotOwned
	}
	delete(m.reserved, pin)
	m.events = append(m.events, gpioEvent{pin: pin, op: "release", at: m.now()})
	return nil
}

func (m *mockGPIO) levels() (out []gpioEvent) {
	for _, e := range m.events {
		if e.op == "set" {
			out = append(out, e)
		}
	}
	return
}

// mockDelay accumulates the requested sleeps instead of blocking.
type mockDelay struct {
	elapsed time.Duration
	sleeps  []time.Duration
}

func (m *mockDelay) Sleep(d time.Duration) {
	m.elapsed += d
	m.sleeps = append(m.sleeps, d)
}
