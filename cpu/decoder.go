package cpu

import (
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// pattern is the operand layout of a mnemonic.
type pattern struct {
	op     Op
	target bool // First argument is a destination register.
	args   int  // Operands after the destination.
}

// patterns are tried in order; the first mnemonic match decides the decode.
var patterns = [...]pattern{
	{OP_SND, false, 1},
	{OP_SET, true, 1},
	{OP_ADD, true, 1},
	{OP_SUB, true, 1},
	{OP_MUL, true, 1},
	{OP_MOD, true, 1},
	{OP_JGZ, false, 2},
	{OP_JNZ, false, 2},
	{OP_RCV, true, 0},
}

// decode the arguments that follow the mnemonic.
func (pat pattern) decode(args []string) (inst Instruction, err error) {
	need := pat.args
	if pat.target {
		need++
	}

	if len(args) < need {
		err = ErrOpcodeValueMissing
		return
	}
	if len(args) > need {
		err = ErrOpcodeExtraArgs
		return
	}

	inst.Op = pat.op

	if pat.target {
		inst.Target, err = ParseRegister(args[0])
		if err != nil {
			return
		}
		args = args[1:]
	}

	out := [2](*Operand){&inst.A, &inst.B}
	for n, word := range args {
		*out[n], err = ParseOperand(word)
		if err != nil {
			return
		}
	}

	return
}

// Decoder turns lines of canonical text into instructions.
// The zero value decodes without a cache.
type Decoder struct {
	cache *lru.Cache[string, Instruction]
}

// NewDecoder creates a decoder that remembers up to size decoded lines.
// A size of zero disables the cache.
func NewDecoder(size int) (dec *Decoder, err error) {
	dec = &Decoder{}
	if size <= 0 {
		return
	}

	dec.cache, err = lru.New[string, Instruction](size)
	if err != nil {
		dec = nil
	}

	return
}

// Decode decodes one line into an instruction.
// A nil decoder decodes without a cache.
func (dec *Decoder) Decode(line string) (inst Instruction, err error) {
	if dec == nil {
		return decodeLine(line)
	}

	if dec.cache != nil {
		var ok bool
		inst, ok = dec.cache.Get(line)
		if ok {
			return
		}
	}

	inst, err = decodeLine(line)
	if err != nil {
		return
	}

	if dec.cache != nil {
		dec.cache.Add(line, inst)
	}

	return
}

// Decode decodes one line into an instruction, without caching.
func Decode(line string) (inst Instruction, err error) {
	return decodeLine(line)
}

// decodeLine matches a line against the mnemonic patterns.
func decodeLine(line string) (inst Instruction, err error) {
	defer func() {
		if err != nil {
			inst = Instruction{}
			err = &ErrMalformedInstruction{Line: line, Err: err}
		}
	}()

	text := strings.TrimSpace(line)
	if len(text) == 0 {
		err = ErrInstructionInvalid
		return
	}

	words := strings.Split(text, " ")
	for _, pat := range patterns {
		if words[0] == pat.op.String() {
			inst, err = pat.decode(words[1:])
			return
		}
	}

	err = ErrInstructionInvalid
	return
}
