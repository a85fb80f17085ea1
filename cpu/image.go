package cpu

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/fxamacker/cbor/v2"
	"lukechampine.com/blake3"
)

const (
	IMAGE_VERSION = 1       // Program image format version.
	SUM_SIZE      = 32      // Size of a program fingerprint, in bytes.
	IMAGE_LIMIT   = 1 << 20 // Maximum instructions in a program image.
)

// image is the serialized form of a Program.
type image struct {
	Version int      `cbor:"1,keyasint"`
	Sum     []byte   `cbor:"2,keyasint"`
	Text    []string `cbor:"3,keyasint"`
	LineNo  []int    `cbor:"4,keyasint"`
}

var (
	cborEncMode cbor.EncMode
	cborDecMode cbor.DecMode
)

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("cpu: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em

	dm, err := cbor.DecOptions{MaxArrayElements: IMAGE_LIMIT}.DecMode()
	if err != nil {
		panic(fmt.Sprintf("cpu: failed to create CBOR dec mode: %v", err))
	}
	cborDecMode = dm
}

// Sum returns the BLAKE3 fingerprint of the program's canonical text,
// including the source line number of each instruction.
func (prog *Program) Sum() (sum [SUM_SIZE]byte) {
	h := blake3.New(SUM_SIZE, nil)
	var buff []byte
	for ip, inst := range prog.All() {
		buff = strconv.AppendInt(buff[:0], int64(prog.LineNo(ip)), 10)
		buff = append(buff, ' ')
		buff = append(buff, inst.String()...)
		buff = append(buff, '\n')
		h.Write(buff)
	}
	h.Sum(sum[:0])
	return
}

// MarshalBinary encodes the program as a CBOR image.
// Programs longer than IMAGE_LIMIT are refused with ErrImageSize.
func (prog *Program) MarshalBinary() (data []byte, err error) {
	if len(prog.instructions) > IMAGE_LIMIT {
		err = ErrImageSize
		return
	}

	sum := prog.Sum()
	img := image{
		Version: IMAGE_VERSION,
		Sum:     sum[:],
		Text:    make([]string, len(prog.instructions)),
		LineNo:  prog.lineNo,
	}
	for n, inst := range prog.instructions {
		img.Text[n] = inst.String()
	}

	return cborEncMode.Marshal(&img)
}

// UnmarshalProgram decodes a CBOR image into a program.
// Every instruction is decoded again and the fingerprint verified.
func UnmarshalProgram(data []byte) (prog *Program, err error) {
	var img image
	err = cborDecMode.Unmarshal(data, &img)
	if err != nil {
		err = fmt.Errorf("cpu: unmarshal image: %w", err)
		return
	}

	if img.Version != IMAGE_VERSION {
		err = ErrImageVersion
		return
	}

	if len(img.LineNo) != len(img.Text) {
		err = ErrImageFormat
		return
	}

	prog = &Program{
		lineNo: img.LineNo,
	}
	for n, text := range img.Text {
		var inst Instruction
		inst, err = Decode(text)
		if err != nil {
			prog = nil
			err = &ErrSyntax{LineNo: img.LineNo[n], Line: text, Err: err}
			return
		}
		prog.instructions = append(prog.instructions, inst)
	}

	sum := prog.Sum()
	if !bytes.Equal(sum[:], img.Sum) {
		prog = nil
		err = ErrImageChecksum
		return
	}

	return
}
