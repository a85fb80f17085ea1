// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"io"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
	"go.uber.org/zap"
)

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO":         "0",
	"REGISTER_COUNT": strconv.Itoa(REGISTER_COUNT),
}

// reParen matches a compile-time $(...) expression.
var reParen = regexp.MustCompile(`\$\([^\$]*\)`)

// Assembler lowers assembly source into a Program.
//
// Beyond canonical instruction text, the source may contain:
//   - comments, from ';' to the end of the line;
//   - blank lines;
//   - '.equ NAME VALUE' equates, substituted for whole words;
//   - '$(expr)' expressions over integer equates, evaluated at assembly time.
type Assembler struct {
	Logger  *zap.Logger // If set, logs each assembled line at debug level.
	Decoder *Decoder    // Decoder to use; nil decodes without a cache.

	predefine map[string]string
	Equate    map[string]string // Map of equates.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// logger returns the configured logger, or a no-op logger.
func (asm *Assembler) logger() *zap.Logger {
	if asm.Logger == nil {
		return zap.NewNop()
	}
	return asm.Logger
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int64, err error) {
	thread := starlark.Thread{Name: "equ"}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		v64, perr := strconv.ParseInt(str, 10, 64)
		if perr != nil {
			// Ignore non-decimal equates. They may be registers.
			continue
		}
		pred[key] = starlark.MakeInt64(v64)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_int, ok := dict["rc"].(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	return
}

// parseLine expands a single source line into canonical instruction text.
// Lines with nothing to assemble return an empty string.
func (asm *Assembler) parseLine(line string, lineno int) (text string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = strconv.Itoa(lineno)

	line, _, _ = strings.Cut(line, ";")

	// Do $() evaluations
	line = reParen.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return strconv.FormatInt(value, 10)
	})
	if err != nil {
		return
	}

	words := slices.DeleteFunc(strings.Split(strings.TrimSpace(line), " "), func(a string) bool { return len(a) == 0 })
	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		return
	}

	for n, word := range words {
		equate, ok := asm.Equate[word]
		if ok {
			words[n] = equate
		}
	}

	text = strings.Join(words, " ")
	return
}

// Parse parses an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)
	log := asm.logger()

	dec := asm.Decoder
	if dec == nil {
		dec = &Decoder{}
	}

	var line string
	var lineno int

	defer func() {
		if err != nil {
			prog = nil
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	prog = &Program{}
	for scanner.Scan() {
		line = scanner.Text()
		lineno += 1

		var text string
		text, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}
		if len(text) == 0 {
			continue
		}

		var inst Instruction
		inst, err = dec.Decode(text)
		if err != nil {
			return
		}

		log.Debug("assemble",
			zap.Int("line", lineno),
			zap.Int("ip", len(prog.instructions)),
			zap.Stringer("inst", inst))

		prog.instructions = append(prog.instructions, inst)
		prog.lineNo = append(prog.lineNo, lineno)
	}

	err = scanner.Err()
	return
}
