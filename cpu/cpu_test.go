package cpu

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// execute runs a program against a register file until it halts.
func execute(t *testing.T, rf *RegisterFile, prog *Program, limit int) (ip uint) {
	assert := assert.New(t)

	for range limit {
		inst, ok := prog.At(ip)
		if !ok {
			return
		}
		_, err := rf.Apply(inst)
		assert.NoError(err, inst.String())
		ip, err = rf.NextIp(inst, ip)
		assert.NoError(err, inst.String())
	}

	t.Fatalf("no halt after %d steps", limit)
	return
}

func TestRegisterFile_StoreLoad(t *testing.T) {
	assert := assert.New(t)

	rf := &RegisterFile{}
	for r := REGISTER_FIRST; r <= REGISTER_LAST; r++ {
		value, err := rf.Get(r)
		assert.NoError(err)
		assert.Equal(int64(0), value)
	}

	for r := REGISTER_FIRST; r <= REGISTER_LAST; r++ {
		assert.NoError(rf.Set(r, int64(r)))
	}
	for r := REGISTER_FIRST; r <= REGISTER_LAST; r++ {
		value, err := rf.Get(r)
		assert.NoError(err)
		assert.Equal(int64(r), value)
	}

	for _, v := range []int64{math.MinInt64, -1, 0, 1, math.MaxInt64} {
		for r := REGISTER_FIRST; r <= REGISTER_LAST; r++ {
			assert.NoError(rf.Set(r, v))
			value, _ := rf.Get(r)
			assert.Equal(v, value)
		}
	}

	rf.Reset()
	assert.Equal("", rf.String())
}

func TestRegisterFile_Invalid(t *testing.T) {
	assert := assert.New(t)

	rf := &RegisterFile{}
	for _, r := range []Register{REGISTER_NONE, 'A', 'Z', '`', '{', '0'} {
		_, err := rf.Get(r)
		assert.ErrorIs(err, ErrRegisterInvalid)
		assert.ErrorIs(rf.Set(r, 1), ErrRegisterInvalid)
	}

	_, err := rf.Evaluate(Reg('A'))
	assert.ErrorIs(err, ErrRegisterInvalid)

	handled, err := rf.Apply(MakeSet('A', Imm(1)))
	assert.False(handled)
	assert.ErrorIs(err, ErrRegisterInvalid)

	handled, err = rf.Apply(MakeAdd('a', Reg('!')))
	assert.False(handled)
	assert.ErrorIs(err, ErrRegisterInvalid)
}

func TestRegisterFile_StoreLoadInstruction(t *testing.T) {
	assert := assert.New(t)

	rf := &RegisterFile{}

	handled, err := rf.Apply(MakeSet('a', Imm('a')))
	assert.NoError(err)
	assert.True(handled)

	for r := REGISTER_FIRST + 1; r <= REGISTER_LAST; r++ {
		_, err = rf.Apply(MakeSet(r, Reg(r-1)))
		assert.NoError(err)
		_, err = rf.Apply(MakeAdd(r, Imm(1)))
		assert.NoError(err)
	}

	for r, value := range rf.All() {
		assert.Equal(int64(r), value)
	}
}

func TestRegisterFile_Apply(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name  string
		a     int64
		inst  Instruction
		value int64
	}){
		{"set", 5, MakeSet('a', Imm(-3)), -3},
		{"set_reg", 5, MakeSet('a', Reg('b')), 7},
		{"add", 5, MakeAdd('a', Imm(2)), 7},
		{"add_reg", 5, MakeAdd('a', Reg('b')), 12},
		{"add_self", 5, MakeAdd('a', Reg('a')), 10},
		{"sub", 5, MakeSub('a', Imm(7)), -2},
		{"mul", 5, MakeMul('a', Imm(-3)), -15},
		{"mod", 9, MakeMod('a', Imm(5)), 4},
		{"mod_neg_dividend", -7, MakeMod('a', Imm(3)), -1},
		{"mod_neg_divisor", 7, MakeMod('a', Imm(-3)), 1},
		{"mod_both_neg", -7, MakeMod('a', Imm(-3)), -1},
		{"add_wrap", math.MaxInt64, MakeAdd('a', Imm(1)), math.MinInt64},
		{"sub_wrap", math.MinInt64, MakeSub('a', Imm(1)), math.MaxInt64},
		{"mul_wrap", math.MaxInt64, MakeMul('a', Imm(2)), -2},
		{"mul_min", math.MinInt64, MakeMul('a', Imm(-1)), math.MinInt64},
		{"mod_min", math.MinInt64, MakeMod('a', Imm(-1)), 0},
	}

	for _, entry := range table {
		rf := &RegisterFile{}
		assert.NoError(rf.Set('a', entry.a))
		assert.NoError(rf.Set('b', 7))

		handled, err := rf.Apply(entry.inst)
		assert.NoError(err, entry.name)
		assert.True(handled, entry.name)

		value, _ := rf.Get('a')
		assert.Equal(entry.value, value, entry.name)

		b, _ := rf.Get('b')
		assert.Equal(int64(7), b, entry.name)
	}
}

func TestRegisterFile_ApplyUnhandled(t *testing.T) {
	assert := assert.New(t)

	rf := &RegisterFile{}
	assert.NoError(rf.Set('a', 3))

	for _, inst := range []Instruction{
		MakeSnd(Reg('a')),
		MakeRcv('a'),
		MakeJgz(Reg('a'), Imm(2)),
		MakeJnz(Reg('a'), Imm(2)),
		{Op: Op(42)},
	} {
		handled, err := rf.Apply(inst)
		assert.NoError(err, inst.String())
		assert.False(handled, inst.String())
	}

	assert.Equal("a=3", rf.String())
}

func TestRegisterFile_ModZero(t *testing.T) {
	assert := assert.New(t)

	rf := &RegisterFile{}
	assert.NoError(rf.Set('a', 9))

	handled, err := rf.Apply(MakeMod('a', Reg('b')))
	assert.ErrorIs(err, ErrDivideByZero)
	assert.False(handled)

	value, _ := rf.Get('a')
	assert.Equal(int64(9), value)
}

func TestNextIp(t *testing.T) {
	assert := assert.New(t)

	rf := &RegisterFile{}
	assert.NoError(rf.Set('a', 1))

	table := [](struct {
		name string
		inst Instruction
		ip   uint
		next uint
	}){
		{"set", MakeSet('a', Imm(1)), 0, 1},
		{"snd", MakeSnd(Imm(1)), 4, 5},
		{"rcv", MakeRcv('a'), 4, 5},
		{"mod", MakeMod('a', Imm(3)), 9, 10},
		{"jgz_halt", MakeJgz(Imm(1), Imm(-10)), 0, IP_HALT},
		{"jnz_halt", MakeJnz(Imm(1), Imm(-10)), 0, IP_HALT},
		{"jgz_not_taken", MakeJgz(Imm(0), Imm(2)), 0, 1},
		{"jgz_taken", MakeJgz(Imm(1), Imm(2)), 0, 2},
		{"jgz_reg", MakeJgz(Reg('a'), Imm(2)), 0, 2},
		{"jgz_reg_zero", MakeJgz(Reg('b'), Imm(2)), 0, 1},
		{"jgz_negative_cond", MakeJgz(Imm(-1), Imm(2)), 0, 1},
		{"jnz_not_taken", MakeJnz(Imm(0), Imm(2)), 0, 1},
		{"jnz_taken", MakeJnz(Imm(1), Imm(2)), 0, 2},
		{"jnz_negative_cond", MakeJnz(Imm(-1), Imm(2)), 0, 2},
		{"jnz_reg", MakeJnz(Reg('a'), Imm(2)), 0, 2},
		{"jnz_reg_zero", MakeJnz(Reg('b'), Imm(2)), 0, 1},
		{"back_to_start", MakeJnz(Imm(1), Imm(-5)), 5, 0},
		{"back_one", MakeJnz(Imm(1), Imm(-1)), 5, 4},
		{"back_past_start", MakeJnz(Imm(1), Imm(-6)), 5, IP_HALT},
		{"zero_offset", MakeJgz(Imm(1), Imm(0)), 3, 3},
		{"offset_reg", MakeJgz(Imm(1), Reg('a')), 3, 4},
		{"min_offset", MakeJnz(Imm(1), Imm(math.MinInt64)), 100, IP_HALT},
		{"max_offset", MakeJnz(Imm(1), Imm(math.MaxInt64)), IP_HALT - 1, IP_HALT},
		{"from_halt", MakeSet('a', Imm(1)), IP_HALT, IP_HALT},
	}

	for _, entry := range table {
		next, err := rf.NextIp(entry.inst, entry.ip)
		assert.NoError(err, entry.name)
		assert.Equal(entry.next, next, entry.name)
	}

	_, err := rf.NextIp(Instruction{Op: Op(-1)}, 0)
	assert.ErrorIs(err, ErrOpInvalid)

	_, err = rf.NextIp(MakeJnz(Reg('Z'), Imm(1)), 0)
	assert.ErrorIs(err, ErrRegisterInvalid)
}

func TestExecute(t *testing.T) {
	assert := assert.New(t)

	prog, err := Load("set a 1\nadd a 2\nmul a a\nsub a 4\nmod a 5")
	assert.NoError(err)

	rf := &RegisterFile{}
	ip := execute(t, rf, prog, 100)
	assert.Equal(uint(5), ip)

	value, _ := rf.Get('a')
	assert.Equal(int64(0), value)
}

func TestExecute_HaltOnNegativeJump(t *testing.T) {
	assert := assert.New(t)

	prog, err := Load("jnz a -1")
	assert.NoError(err)

	rf := &RegisterFile{}
	assert.NoError(rf.Set('a', 1))

	ip := execute(t, rf, prog, 2)
	assert.Equal(IP_HALT, ip)
}

func TestExecute_Loop(t *testing.T) {
	assert := assert.New(t)

	// b = 2^10, counting a down from 10.
	prog, err := Load("set a 10\nset b 1\nmul b 2\nsub a 1\njgz a -2")
	assert.NoError(err)

	rf := &RegisterFile{}
	ip := execute(t, rf, prog, 100)
	assert.Equal(uint(5), ip)

	b, _ := rf.Get('b')
	assert.Equal(int64(1024), b)
}
