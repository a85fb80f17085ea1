package cpu

import (
	"bufio"
	"io"
	"iter"
	"slices"
	"strings"
)

// Program is an immutable listing of decoded instructions.
type Program struct {
	instructions []Instruction
	lineNo       []int
}

// NewProgram creates a program from a list of instructions.
// Line numbers are assigned in order, starting at 1.
func NewProgram(insts ...Instruction) (prog *Program) {
	prog = &Program{
		instructions: slices.Clone(insts),
		lineNo:       make([]int, len(insts)),
	}
	for n := range prog.lineNo {
		prog.lineNo[n] = n + 1
	}

	return
}

// Load decodes program text, one instruction per line.
func Load(text string) (prog *Program, err error) {
	return Parse(strings.NewReader(text))
}

// Parse decodes a program from an input stream, one instruction per line.
// The first malformed line aborts the load.
func Parse(input io.Reader) (prog *Program, err error) {
	return (&Decoder{}).Parse(input)
}

// Parse decodes a program from an input stream, one instruction per line.
// Blank lines after the last instruction are ignored.
func (dec *Decoder) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	// First of a run of blank lines, if any.
	var blank string
	var blankno int

	defer func() {
		if err != nil {
			prog = nil
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	prog = &Program{}
	for scanner.Scan() {
		line = scanner.Text()
		lineno += 1

		if len(strings.TrimSpace(line)) == 0 {
			if blankno == 0 {
				blank, blankno = line, lineno
			}
			continue
		}

		if blankno != 0 {
			// Blank lines between instructions are not allowed.
			line, lineno = blank, blankno
			_, err = dec.Decode(line)
			return
		}

		var inst Instruction
		inst, err = dec.Decode(line)
		if err != nil {
			return
		}

		prog.instructions = append(prog.instructions, inst)
		prog.lineNo = append(prog.lineNo, lineno)
	}

	err = scanner.Err()
	return
}

// Len returns the number of instructions.
func (prog *Program) Len() int {
	return len(prog.instructions)
}

// At returns the instruction at an instruction pointer.
func (prog *Program) At(ip uint) (inst Instruction, ok bool) {
	if ip >= uint(len(prog.instructions)) {
		return
	}

	return prog.instructions[ip], true
}

// LineNo returns the source line of the instruction at ip, or 0.
func (prog *Program) LineNo(ip uint) int {
	if ip >= uint(len(prog.lineNo)) {
		return 0
	}

	return prog.lineNo[ip]
}

// Instructions returns a copy of the instruction listing.
func (prog *Program) Instructions() []Instruction {
	return slices.Clone(prog.instructions)
}

// All iterates over the instruction pointers and instructions.
func (prog *Program) All() iter.Seq2[uint, Instruction] {
	return func(yield func(ip uint, inst Instruction) bool) {
		for n, inst := range prog.instructions {
			if !yield(uint(n), inst) {
				return
			}
		}
	}
}

// String returns the canonical text of the program, one instruction per line.
func (prog *Program) String() string {
	var text strings.Builder
	for _, inst := range prog.instructions {
		text.WriteString(inst.String())
		text.WriteByte('\n')
	}

	return text.String()
}
