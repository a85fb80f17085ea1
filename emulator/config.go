package emulator

import (
	"errors"
	"io"
	"maps"
	"slices"

	"github.com/BurntSushi/toml"

	"github.com/ezrec/duet/cpu"
)

// Config is a run configuration, normally read from a TOML file:
//
//	max_ticks = 100000
//
//	[registers]
//	p = 1
//
//	[equates]
//	LIMIT = "10"
type Config struct {
	MaxTicks  int               `toml:"max_ticks"` // Tick limit; zero is unlimited.
	Registers map[string]int64  `toml:"registers"` // Initial register values.
	Equates   map[string]string `toml:"equates"`   // Assembler predefines.
}

// LoadConfig reads a TOML run configuration.
func LoadConfig(input io.Reader) (cfg *Config, err error) {
	cfg = &Config{}
	md, err := toml.NewDecoder(input).Decode(cfg)
	if err != nil {
		cfg = nil
		return
	}

	var errs []error
	for _, key := range md.Undecoded() {
		errs = append(errs, ErrConfigKey(key.String()))
	}
	err = errors.Join(errs...)
	if err != nil {
		cfg = nil
	}

	return
}

// Apply presets the machine's registers.
func (cfg *Config) Apply(m *Machine) (err error) {
	for _, name := range slices.Sorted(maps.Keys(cfg.Registers)) {
		var r cpu.Register
		r, err = cpu.ParseRegister(name)
		if err != nil {
			err = errors.Join(cpu.ErrMalformedOperand(name), cpu.ErrRegisterInvalid)
			return
		}
		err = m.Set(r, cfg.Registers[name])
		if err != nil {
			return
		}
	}

	return
}

// Predefine adds the configured equates to an assembler.
func (cfg *Config) Predefine(asm *cpu.Assembler) {
	for equ, value := range cfg.Equates {
		asm.Predefine(equ, value)
	}
}
