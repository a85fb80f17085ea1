package cpu

import (
	"errors"

	"github.com/ezrec/duet/translate"
)

var f = translate.From

var (
	// Register file errors
	ErrRegisterInvalid = errors.New(f("register invalid"))
	ErrDivideByZero    = errors.New(f("divide by zero"))
	ErrOpInvalid       = errors.New(f("op invalid"))

	// Instruction decode errors
	ErrInstructionInvalid = errors.New(f("instruction invalid"))
	ErrOpcodeExtraArgs    = errors.New(f("excessive arguments"))
	ErrOpcodeValueMissing = errors.New(f("value missing"))
	ErrTargetInvalid      = errors.New(f("target invalid"))

	// Assembler errors
	ErrEquateSyntax    = errors.New(f(".equ syntax"))
	ErrEquateDuplicate = errors.New(f(".equ duplicated"))

	// Image errors
	ErrImageVersion  = errors.New(f("image version unsupported"))
	ErrImageChecksum = errors.New(f("image checksum mismatch"))
	ErrImageFormat   = errors.New(f("image format invalid"))
	ErrImageSize     = errors.New(f("image too large"))
)

// ErrMalformedOperand is a token that is neither a register nor a value.
type ErrMalformedOperand string

func (err ErrMalformedOperand) Error() string {
	return f("'%v' is not a register or value", string(err))
}

// ErrMalformedInstruction is a line that does not decode to an instruction.
type ErrMalformedInstruction struct {
	Line string
	Err  error
}

func (err *ErrMalformedInstruction) Error() string {
	return f("'%v' malformed: %v", err.Line, err.Err)
}

func (err *ErrMalformedInstruction) Unwrap() error {
	return err.Err
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err *ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err *ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}
