package cpu

import (
	"fmt"
)

// Op is an instruction operation.
type Op int

const (
	OP_SND = Op(0) // snd
	OP_SET = Op(1) // set
	OP_ADD = Op(2) // add
	OP_SUB = Op(3) // sub
	OP_MUL = Op(4) // mul
	OP_MOD = Op(5) // mod
	OP_RCV = Op(6) // rcv
	OP_JGZ = Op(7) // jgz
	OP_JNZ = Op(8) // jnz
)

// opName is the mnemonic of each operation.
var opName = [...]string{
	OP_SND: "snd",
	OP_SET: "set",
	OP_ADD: "add",
	OP_SUB: "sub",
	OP_MUL: "mul",
	OP_MOD: "mod",
	OP_RCV: "rcv",
	OP_JGZ: "jgz",
	OP_JNZ: "jnz",
}

func (op Op) String() string {
	if op < 0 || int(op) >= len(opName) {
		return fmt.Sprintf("Op(%d)", int(op))
	}
	return opName[op]
}

// Arithmetic returns true for operations handled by the register file.
func (op Op) Arithmetic() bool {
	switch op {
	case OP_SET, OP_ADD, OP_SUB, OP_MUL, OP_MOD:
		return true
	}
	return false
}

// Jump returns true for the conditional jumps.
func (op Op) Jump() bool {
	return op == OP_JGZ || op == OP_JNZ
}

// Instruction is one decoded machine operation.
//
// The arithmetic operations and rcv write Target. snd reads A. The jumps
// test A and displace by B. Unused fields are zero, so instructions compare
// equal with ==.
type Instruction struct {
	Op     Op
	Target Register
	A      Operand
	B      Operand
}

// MakeSnd creates a snd instruction.
func MakeSnd(value Operand) Instruction {
	return Instruction{Op: OP_SND, A: value}
}

// MakeSet creates a set instruction.
func MakeSet(target Register, value Operand) Instruction {
	return Instruction{Op: OP_SET, Target: target, A: value}
}

// MakeAdd creates an add instruction.
func MakeAdd(target Register, value Operand) Instruction {
	return Instruction{Op: OP_ADD, Target: target, A: value}
}

// MakeSub creates a sub instruction.
func MakeSub(target Register, value Operand) Instruction {
	return Instruction{Op: OP_SUB, Target: target, A: value}
}

// MakeMul creates a mul instruction.
func MakeMul(target Register, value Operand) Instruction {
	return Instruction{Op: OP_MUL, Target: target, A: value}
}

// MakeMod creates a mod instruction.
func MakeMod(target Register, value Operand) Instruction {
	return Instruction{Op: OP_MOD, Target: target, A: value}
}

// MakeRcv creates a rcv instruction.
func MakeRcv(target Register) Instruction {
	return Instruction{Op: OP_RCV, Target: target}
}

// MakeJgz creates a jump-if-positive instruction.
func MakeJgz(cond, offset Operand) Instruction {
	return Instruction{Op: OP_JGZ, A: cond, B: offset}
}

// MakeJnz creates a jump-if-nonzero instruction.
func MakeJnz(cond, offset Operand) Instruction {
	return Instruction{Op: OP_JNZ, A: cond, B: offset}
}

// String returns the canonical assembly text of the instruction.
func (inst Instruction) String() string {
	switch {
	case inst.Op == OP_SND:
		return fmt.Sprintf("%v %v", inst.Op, inst.A)
	case inst.Op == OP_RCV:
		return fmt.Sprintf("%v %v", inst.Op, inst.Target)
	case inst.Op.Arithmetic():
		return fmt.Sprintf("%v %v %v", inst.Op, inst.Target, inst.A)
	case inst.Op.Jump():
		return fmt.Sprintf("%v %v %v", inst.Op, inst.A, inst.B)
	}

	return inst.Op.String()
}
