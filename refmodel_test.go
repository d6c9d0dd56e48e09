package main

import (
	"testing"

	"github.com/Readm/rv_cosim/core"
)

func TestAddModuloWraps(t *testing.T) {
	add := AddModulo(32)

	cases := []struct {
		a, b, want core.Word
	}{
		{0, 0, 0},
		{1, 0, 1},
		{0, 1, 1},
		{1, 1, 2},
		{0xFFFFFFFF, 1, 0},
		{0xFFFFFFFF, 0xFFFFFFFF, 0xFFFFFFFE},
	}
	for _, tc := range cases {
		got := add(core.Transaction{A: tc.a, B: tc.b, Arity: 2})
		if got != tc.want {
			t.Fatalf("add(%#x,%#x): got %#x want %#x", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestAddModuloNarrowWidth(t *testing.T) {
	add := AddModulo(8)
	if got := add(core.Transaction{A: 0xFF, B: 2, Arity: 2}); got != 1 {
		t.Fatalf("8-bit add must wrap: got %#x", got)
	}
}

func TestSquareWidenDoesNotWrap(t *testing.T) {
	sq := SquareWiden(32)
	if got := sq(core.Transaction{A: 0xFFFFFFFF, Arity: 1}); got != 0xFFFFFFFE00000001 {
		t.Fatalf("32-bit square must widen to 64 bits: got %#x", got)
	}
}

func TestModelForSelectsByArity(t *testing.T) {
	binary := ModelFor(&Config{Width: 32, Arity: 2})
	if got := binary(core.Transaction{A: 5, B: 7, Arity: 2}); got != 12 {
		t.Fatalf("binary model wrong: %d", got)
	}
	unary := ModelFor(&Config{Width: 16, Arity: 1})
	if got := unary(core.Transaction{A: 12, Arity: 1}); got != 144 {
		t.Fatalf("unary model wrong: %d", got)
	}
}
