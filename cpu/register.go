package cpu

import (
	"fmt"
	"iter"
	"strings"
)

// RegisterFile holds the general-purpose registers of one machine.
// The zero value has all registers cleared.
type RegisterFile struct {
	register [REGISTER_COUNT]int64
}

// Reset clears all registers.
func (rf *RegisterFile) Reset() {
	clear(rf.register[:])
}

// Get returns the value of a register.
func (rf *RegisterFile) Get(r Register) (value int64, err error) {
	index, err := r.Index()
	if err != nil {
		return
	}

	value = rf.register[index]
	return
}

// Set stores a value in a register.
func (rf *RegisterFile) Set(r Register, value int64) (err error) {
	index, err := r.Index()
	if err != nil {
		return
	}

	rf.register[index] = value
	return
}

// Evaluate returns the immediate value, or the contents of the register.
func (rf *RegisterFile) Evaluate(op Operand) (value int64, err error) {
	if !op.IsRegister() {
		value = op.Value
		return
	}

	return rf.Get(op.Register)
}

// Apply performs an arithmetic instruction on the registers.
//
// handled is false, and nothing is modified, for snd, rcv, jgz and jnz;
// those are the caller's to carry out. Arithmetic wraps on overflow, and
// mod truncates toward zero.
func (rf *RegisterFile) Apply(inst Instruction) (handled bool, err error) {
	if !inst.Op.Arithmetic() {
		return
	}

	value, err := rf.Evaluate(inst.A)
	if err != nil {
		return
	}

	input, err := rf.Get(inst.Target)
	if err != nil {
		return
	}

	var output int64
	switch inst.Op {
	case OP_SET:
		output = value
	case OP_ADD:
		output = input + value
	case OP_SUB:
		output = input - value
	case OP_MUL:
		output = input * value
	case OP_MOD:
		if value == 0 {
			err = ErrDivideByZero
			return
		}
		output = input % value
	}

	err = rf.Set(inst.Target, output)
	if err != nil {
		return
	}

	handled = true
	return
}

// All iterates over the registers and their values, 'a' first.
func (rf *RegisterFile) All() iter.Seq2[Register, int64] {
	return func(yield func(r Register, value int64) bool) {
		for n, value := range rf.register {
			if !yield(REGISTER_FIRST+Register(n), value) {
				return
			}
		}
	}
}

// String returns the non-zero registers as 'r=value' pairs.
func (rf *RegisterFile) String() string {
	var pairs []string
	for r, value := range rf.All() {
		if value != 0 {
			pairs = append(pairs, fmt.Sprintf("%v=%d", r, value))
		}
	}

	return strings.Join(pairs, " ")
}
