package cpu

import (
	"errors"
	"strconv"
)

// Register names one of the general-purpose registers, 'a' through 'z'.
type Register byte

const (
	REGISTER_FIRST = Register('a')
	REGISTER_LAST  = Register('z')
	REGISTER_NONE  = Register(0) // Marks an immediate operand.

	REGISTER_COUNT = int(REGISTER_LAST-REGISTER_FIRST) + 1
)

// Valid returns true if the register names a slot in the register file.
func (r Register) Valid() bool {
	return r >= REGISTER_FIRST && r <= REGISTER_LAST
}

// Index returns the register file slot of the register.
func (r Register) Index() (index int, err error) {
	if !r.Valid() {
		err = ErrRegisterInvalid
		return
	}

	index = int(r - REGISTER_FIRST)
	return
}

func (r Register) String() string {
	return string(rune(r))
}

// Operand is either a register reference or a signed immediate.
type Operand struct {
	Register Register // Register reference, or REGISTER_NONE.
	Value    int64    // Immediate value, when Register is REGISTER_NONE.
}

// Reg makes a register operand.
func Reg(r Register) Operand {
	return Operand{Register: r}
}

// Imm makes an immediate operand.
func Imm(value int64) Operand {
	return Operand{Value: value}
}

// IsRegister returns true for a register operand.
func (op Operand) IsRegister() bool {
	return op.Register != REGISTER_NONE
}

// String returns the register letter, or the decimal immediate.
func (op Operand) String() string {
	if op.IsRegister() {
		return op.Register.String()
	}

	return strconv.FormatInt(op.Value, 10)
}

// isLetter is true for a single ASCII letter of either case.
func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// isValue is true for an optional '-' followed by one or more decimal digits.
func isValue(word string) bool {
	if len(word) > 0 && word[0] == '-' {
		word = word[1:]
	}

	if len(word) == 0 {
		return false
	}

	for n := range len(word) {
		if word[n] < '0' || word[n] > '9' {
			return false
		}
	}

	return true
}

// ParseRegister parses an instruction's destination register.
// Uppercase names are refused, as they have no register file slot.
func ParseRegister(word string) (r Register, err error) {
	if len(word) != 1 || !isLetter(word[0]) {
		err = ErrTargetInvalid
		return
	}

	r = Register(word[0])
	if !r.Valid() {
		err = errors.Join(ErrTargetInvalid, ErrRegisterInvalid)
		r = REGISTER_NONE
		return
	}

	return
}

// ParseOperand classifies a token as a register or an immediate.
func ParseOperand(word string) (op Operand, err error) {
	switch {
	case len(word) == 1 && isLetter(word[0]):
		r := Register(word[0])
		if !r.Valid() {
			err = errors.Join(ErrMalformedOperand(word), ErrRegisterInvalid)
			return
		}
		op = Reg(r)
	case isValue(word):
		var value int64
		value, err = strconv.ParseInt(word, 10, 64)
		if err != nil {
			err = ErrMalformedOperand(word)
			return
		}
		op = Imm(value)
	default:
		err = ErrMalformedOperand(word)
	}

	return
}
