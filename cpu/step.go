package cpu

// IP_HALT is the instruction pointer of a halted machine.
const IP_HALT = ^uint(0)

// NextIp computes the instruction pointer that follows executing inst at ip.
//
// Every instruction but jgz and jnz advances by one. A jump that would move
// before the first instruction, or past the end of the address space,
// returns IP_HALT rather than wrapping.
func (rf *RegisterFile) NextIp(inst Instruction, ip uint) (next uint, err error) {
	offset := int64(1)

	if inst.Op.Jump() {
		var cond int64
		cond, err = rf.Evaluate(inst.A)
		if err != nil {
			return
		}

		taken := false
		switch inst.Op {
		case OP_JGZ:
			taken = cond > 0
		case OP_JNZ:
			taken = cond != 0
		}

		if taken {
			offset, err = rf.Evaluate(inst.B)
			if err != nil {
				return
			}
		}
	} else if inst.Op < OP_SND || inst.Op > OP_JNZ {
		err = ErrOpInvalid
		return
	}

	return Displace(ip, offset), nil
}

// Displace moves an instruction pointer by a signed offset.
// Moving before zero, or beyond the last address, yields IP_HALT.
func Displace(ip uint, offset int64) uint {
	if ip == IP_HALT {
		return IP_HALT
	}

	if offset >= 0 {
		if uint64(offset) > uint64(IP_HALT-ip) {
			return IP_HALT
		}
		return ip + uint(offset)
	}

	// -offset overflows for math.MinInt64; compare as unsigned magnitude.
	magnitude := uint64(-(offset + 1)) + 1
	if magnitude > uint64(ip) {
		return IP_HALT
	}

	return ip - uint(magnitude)
}
