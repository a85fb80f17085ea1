// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package emulator runs a duet program on a single machine.
//
// A Machine pairs a Program with its own register file and instruction
// pointer. Arithmetic and jumps are carried out by the cpu package; snd and
// rcv go through the machine's Port. A machine whose rcv finds no value
// waits in place, leaving it to the driver to decide whether more input can
// arrive. Several machines may run the same Program.
package emulator

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ezrec/duet/cpu"
	duetio "github.com/ezrec/duet/io"
)

// State of a machine.
type State int

const (
	STATE_RUNNING = State(0) // running
	STATE_HALTED  = State(1) // halted
)

func (state State) String() string {
	switch state {
	case STATE_RUNNING:
		return "running"
	case STATE_HALTED:
		return "halted"
	}
	return fmt.Sprintf("State(%d)", int(state))
}

// Machine state. Program + registers + instruction pointer + port.
type Machine struct {
	Logger  *zap.Logger  // If set, traces execution at debug level.
	Program *cpu.Program // Reference to the running program.
	Port    duetio.Port  // Port for snd and rcv.

	cpu.RegisterFile // Register bank.

	Ip      uint  // Current instruction pointer.
	State   State // Running or halted.
	Waiting bool  // Set while rcv has no value to take.

	Ticks    int // Instructions executed.
	Sent     int // Values sent.
	Received int // Values received.
}

// NewMachine creates a machine at the start of a program.
func NewMachine(prog *cpu.Program, port duetio.Port) (m *Machine) {
	m = &Machine{
		Program: prog,
		Port:    port,
	}

	m.Reset()

	return
}

// Reset clears the registers and counters, and restarts the program.
func (m *Machine) Reset() {
	m.RegisterFile.Reset()
	m.Ip = 0
	m.State = STATE_RUNNING
	m.Waiting = false
	m.Ticks = 0
	m.Sent = 0
	m.Received = 0
}

// logger returns the configured logger, or a no-op logger.
func (m *Machine) logger() *zap.Logger {
	if m.Logger == nil {
		return zap.NewNop()
	}
	return m.Logger
}

// LineNo returns the source line of the current instruction.
func (m *Machine) LineNo() int {
	if m.Program == nil {
		return 0
	}
	return m.Program.LineNo(m.Ip)
}

// fetch returns the instruction at ip, if any.
func (m *Machine) fetch(ip uint) (inst cpu.Instruction, ok bool) {
	if m.Program == nil {
		return
	}
	return m.Program.At(ip)
}

// halt stops the machine.
func (m *Machine) halt() {
	m.State = STATE_HALTED
	m.Waiting = false
	m.logger().Debug("halt", zap.Uint("ip", m.Ip), zap.Int("ticks", m.Ticks))
}

// Tick executes the instruction at the instruction pointer.
// done is set once the machine has halted.
func (m *Machine) Tick() (done bool, err error) {
	if m.State == STATE_HALTED {
		done = true
		return
	}

	ip := m.Ip
	inst, ok := m.fetch(ip)
	if !ok {
		m.halt()
		done = true
		return
	}

	defer func() {
		if err != nil {
			err = &ErrRuntime{LineNo: m.Program.LineNo(ip), Ip: ip, Err: err}
		}
	}()

	log := m.logger()

	handled, err := m.Apply(inst)
	if err != nil {
		return
	}

	switch {
	case handled:
		value, _ := m.Get(inst.Target)
		log.Debug("apply", zap.Uint("ip", ip), zap.Stringer("inst", inst), zap.Int64("value", value))
	case inst.Op == cpu.OP_SND:
		if m.Port == nil {
			err = ErrPortMissing
			return
		}
		var value int64
		value, err = m.Evaluate(inst.A)
		if err != nil {
			return
		}
		err = m.Port.Send(value)
		if err != nil {
			return
		}
		m.Sent++
		log.Debug("send", zap.Uint("ip", ip), zap.Int64("value", value))
	case inst.Op == cpu.OP_RCV:
		if m.Port == nil {
			err = ErrPortMissing
			return
		}
		var value int64
		value, ok, err = m.Port.Receive()
		if err != nil {
			return
		}
		if !ok {
			// Don't advance to next IP.
			if !m.Waiting {
				log.Debug("wait", zap.Uint("ip", ip))
			}
			m.Waiting = true
			return
		}
		err = m.Set(inst.Target, value)
		if err != nil {
			return
		}
		m.Received++
		log.Debug("receive", zap.Uint("ip", ip), zap.Stringer("target", inst.Target), zap.Int64("value", value))
	}

	m.Waiting = false

	next, err := m.NextIp(inst, ip)
	if err != nil {
		return
	}

	if inst.Op.Jump() {
		log.Debug("jump", zap.Uint("ip", ip), zap.Stringer("inst", inst), zap.Uint("next", next))
	}

	m.Ip = next
	m.Ticks++

	if _, ok = m.fetch(next); !ok {
		m.halt()
		done = true
	}

	return
}

// Run ticks the machine until it halts.
//
// A limit of zero runs without bound. Run stops with ErrBlocked when rcv
// finds the port empty, as nothing else can fill it while Run holds the
// machine.
func (m *Machine) Run(ctx context.Context, limit int) (err error) {
	for ticks := 0; limit == 0 || ticks < limit; ticks++ {
		err = ctx.Err()
		if err != nil {
			return
		}

		var done bool
		done, err = m.Tick()
		if err != nil || done {
			return
		}

		if m.Waiting {
			err = &ErrRuntime{LineNo: m.LineNo(), Ip: m.Ip, Err: ErrBlocked}
			return
		}
	}

	err = ErrTickLimit
	return
}

// String returns a one line summary of the machine state.
func (m *Machine) String() string {
	ip := "halt"
	if m.Ip != cpu.IP_HALT {
		ip = fmt.Sprintf("%d", m.Ip)
	}

	return fmt.Sprintf("%v ip=%v ticks=%d sent=%d received=%d [%v]",
		m.State, ip, m.Ticks, m.Sent, m.Received, m.RegisterFile.String())
}
