// Package filedut implements the file-based co-simulation variant: stimulus
// is written to a plain-text record file, an external DUT process consumes it
// and writes a result file, and the results are compared in a batch against
// the reference model.
package filedut

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/Readm/rv_cosim/core"
)

// Base selects the token encoding for record files.
type Base int

const (
	// BaseHex encodes values as lowercase hex, zero-padded to the operand
	// width, operands space-separated, one transaction per line.
	BaseHex Base = iota
	// BaseDec encodes values as unsigned decimal, one token per field.
	BaseDec
)

func (b Base) String() string {
	if b == BaseDec {
		return "dec"
	}
	return "hex"
}

// ParseBase maps a config string to a Base.
func ParseBase(s string) (Base, error) {
	switch s {
	case "hex", "":
		return BaseHex, nil
	case "dec":
		return BaseDec, nil
	}
	return BaseHex, fmt.Errorf("unknown base %q (want hex or dec)", s)
}

func hexDigits(width int) int {
	d := (width + 3) / 4
	if d < 1 {
		d = 1
	}
	return d
}

// WriteInputs emits one line per transaction: the operands in the selected
// base, space-separated. Hex tokens are zero-padded so every record has a
// fixed width.
func WriteInputs(w io.Writer, txs []core.Transaction, base Base, width int) error {
	bw := bufio.NewWriter(w)
	digits := hexDigits(width)
	for _, tx := range txs {
		var err error
		switch {
		case tx.Arity == 1 && base == BaseHex:
			_, err = fmt.Fprintf(bw, "%0*x\n", digits, uint64(tx.A))
		case tx.Arity == 1:
			_, err = fmt.Fprintf(bw, "%d\n", uint64(tx.A))
		case base == BaseHex:
			_, err = fmt.Fprintf(bw, "%0*x %0*x\n", digits, uint64(tx.A), digits, uint64(tx.B))
		default:
			_, err = fmt.Fprintf(bw, "%d %d\n", uint64(tx.A), uint64(tx.B))
		}
		if err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadOutputs parses result tokens separated by any whitespace. Tokens that
// fail to parse are skipped rather than aborting the read; a short file shows
// up as a length mismatch at the comparison stage.
func ReadOutputs(r io.Reader, base Base) ([]core.Word, error) {
	numBase := 16
	if base == BaseDec {
		numBase = 10
	}
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	var out []core.Word
	for sc.Scan() {
		v, err := strconv.ParseUint(sc.Text(), numBase, 64)
		if err != nil {
			continue
		}
		out = append(out, core.Word(v))
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
