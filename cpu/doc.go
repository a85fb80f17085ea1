// Package cpu implements the duet register machine and its assembler.
//
// The machine has 26 signed 64-bit general-purpose registers (a-z) and an
// unsigned instruction pointer. Nine instructions operate on them: snd, set,
// add, sub, mul, mod, rcv, jgz and jnz. Arithmetic wraps on overflow, mod
// truncates toward zero, and a jump that would land before the first
// instruction halts the machine by yielding IP_HALT.
//
// The register file applies the arithmetic instructions and computes the next
// instruction pointer. snd and rcv are left to the caller; see the emulator
// package for a machine that routes them through a port.
//
// Programs are decoded from canonical text, one instruction per line, and
// render back to the same text. The assembler accepts a friendlier source
// with comments, equates and compile-time expressions.
package cpu
