package main

import (
	"github.com/Readm/rv_cosim/core"
	"github.com/Readm/rv_cosim/dut"
)

// RefModel is the golden transform: pure, total, and bit-exact with the
// DUT's documented semantics, wraparound included.
type RefModel func(tx core.Transaction) core.Word

// AddModulo returns the binary reference: sum = (a + b) mod 2^width.
func AddModulo(width int) RefModel {
	mask := dut.WidthMask(width)
	return func(tx core.Transaction) core.Word {
		return (tx.A + tx.B) & mask
	}
}

// SquareWiden returns the unary reference: y = a*a, widened to 2*width bits
// with no wraparound.
func SquareWiden(width int) RefModel {
	mask := dut.WidthMask(width)
	return func(tx core.Transaction) core.Word {
		a := tx.A & mask
		return a * a
	}
}

// ModelFor picks the reference model matching the configured arity.
func ModelFor(cfg *Config) RefModel {
	if cfg.Arity == 1 {
		return SquareWiden(cfg.Width)
	}
	return AddModulo(cfg.Width)
}
