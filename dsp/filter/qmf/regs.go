package qmf

import (
	"errors"
	"fmt"
)

// Register map of RegisterFile. All registers are 32 bits wide and word
// aligned.
const (
	RegControl   = 0x00 // bit 0: enable
	RegTaps      = 0x04 // read-only: prototype length N
	RegCoeffBase = 0x10 // tap i at RegCoeffBase + 4*i, low 16 bits
)

// ControlEnable is the enable bit of RegControl.
const ControlEnable = 1 << 0

// Errors returned by RegisterFile.
var (
	ErrUnaligned  = errors.New("qmf: register address not word aligned")
	ErrBadAddress = errors.New("qmf: no register at address")
	ErrReadOnly   = errors.New("qmf: register is read-only")
)

// RegisterFile is a memory-mapped view of a Config. Reads return the last
// written value; writes are visible to the engines on their next tick.
type RegisterFile struct {
	cfg *Config
}

// NewRegisterFile wraps cfg.
func NewRegisterFile(cfg *Config) *RegisterFile {
	return &RegisterFile{cfg: cfg}
}

// Size returns the number of bytes spanned by the register map.
func (r *RegisterFile) Size() uint32 {
	return RegCoeffBase + 4*uint32(r.cfg.Taps())
}

// Read returns the register at addr. Coefficients are sign-extended.
func (r *RegisterFile) Read(addr uint32) (uint32, error) {
	if addr&3 != 0 {
		return 0, fmt.Errorf("%w: %#x", ErrUnaligned, addr)
	}
	switch {
	case addr == RegControl:
		if r.cfg.Enabled() {
			return ControlEnable, nil
		}
		return 0, nil
	case addr == RegTaps:
		return uint32(r.cfg.Taps()), nil
	}
	i, err := r.tapIndex(addr)
	if err != nil {
		return 0, err
	}
	return uint32(int32(r.cfg.Coefficient(i))), nil
}

// Write stores value at addr. Only the low 16 bits of a coefficient
// write are kept; only bit 0 of a control write is defined.
func (r *RegisterFile) Write(addr, value uint32) error {
	if addr&3 != 0 {
		return fmt.Errorf("%w: %#x", ErrUnaligned, addr)
	}
	switch {
	case addr == RegControl:
		r.cfg.SetEnable(value&ControlEnable != 0)
		return nil
	case addr == RegTaps:
		return fmt.Errorf("%w: %#x", ErrReadOnly, addr)
	}
	i, err := r.tapIndex(addr)
	if err != nil {
		return err
	}
	return r.cfg.SetCoefficient(i, int16(uint16(value)))
}

func (r *RegisterFile) tapIndex(addr uint32) (int, error) {
	if addr < RegCoeffBase || addr >= r.Size() {
		return 0, fmt.Errorf("%w: %#x", ErrBadAddress, addr)
	}
	return int((addr - RegCoeffBase) / 4), nil
}
