package exec

import (
	"bufio"
	"os"

	"github.com/go-interpreter/brainfuck/exec/internal/flatten"
)

// ports decouples the dispatch loop from where bytes come from and go to.
// Run wires it to process stdin/stdout; RunWithState wires it to in-memory
// buffers. The Rust original duplicates its dispatch loop once per plumbing
// variant; Go's closures let the loop itself stay written once.
type ports struct {
	read  func() (byte, bool) // false means EOF
	write func(byte)
	flush func()
}

// execute runs the program against a freshly allocated tape of the given
// length and returns the tape's final contents and pointer position.
func (p *Program) execute(length int, io ports) (tape []byte, dp int, err error) {
	t, err := newTape(length, p.bias)
	if err != nil {
		return nil, 0, err
	}
	defer t.Close()

	ptr := 0
	ip := 0
	for ip < len(p.inst) {
		inst := p.inst[ip]
		switch inst.Op {
		case flatten.OpShiftInc:
			ptr += int(inst.Arg)
			t.cells[ptr] += inst.Inc
			ptr += int(inst.Delta)

		case flatten.OpOutput:
			ptr += int(inst.Arg)
			io.write(t.cells[ptr])
			t.cells[ptr] += inst.Inc
			ptr += int(inst.Delta)
			if io.flush != nil {
				io.flush()
			}

		case flatten.OpInput:
			ptr += int(inst.Arg)
			b, ok := io.read()
			if !ok {
				b = 0
			}
			t.cells[ptr] = b + inst.Inc
			ptr += int(inst.Delta)

		case flatten.OpSeek:
			for t.cells[ptr] != 0 {
				ptr += int(inst.Arg)
			}
			ptr += int(inst.Delta)
			t.cells[ptr] += inst.Inc

		case flatten.OpSkip:
			for t.cells[ptr] != 0 {
				t.cells[ptr+int(inst.Delta)] += inst.Inc
				ptr += int(inst.Arg)
			}

		case flatten.OpSet:
			ptr += int(inst.Arg)
			t.cells[ptr] = inst.Inc
			ptr += int(inst.Delta)

		case flatten.OpMul:
			if v := t.cells[ptr]; v != 0 {
				t.region[t.bias+ptr+int(inst.Arg)] += v * inst.Inc
			}

		case flatten.OpMulzero:
			if v := t.cells[ptr]; v != 0 {
				t.region[t.bias+ptr+int(inst.Arg)] += v * inst.Inc
				t.cells[ptr] = 0
			}
			ptr += int(inst.Delta)

		case flatten.OpOpen:
			if t.cells[ptr] == 0 {
				ip = int(inst.Arg)
			} else {
				t.cells[ptr] += inst.Inc
				ptr += int(inst.Delta)
			}

		case flatten.OpClose:
			if t.cells[ptr] != 0 {
				ip = int(inst.Arg)
				t.cells[ptr] += inst.Inc
				ptr += int(inst.Delta)
			}
		}
		ip++
	}

	out := make([]byte, len(t.cells))
	copy(out, t.cells)
	return out, ptr, nil
}

// Run executes the program against a tape of the given length, reading
// input from stdin and writing output to stdout. A read past the end of
// stdin yields cell value 0, per spec.md §4.4. If flush is true, stdout is
// flushed after every Output instruction rather than only at exit.
func (p *Program) Run(length int, flush bool) error {
	in := bufio.NewReader(os.Stdin)
	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	io := ports{
		read: func() (byte, bool) {
			b, err := in.ReadByte()
			if err != nil {
				return 0, false
			}
			return b, true
		},
		write: func(b byte) { out.WriteByte(b) },
	}
	if flush {
		io.flush = func() { out.Flush() }
	}
	_, _, err := p.execute(length, io)
	return err
}

// RunWithState executes the program against a tape of the given length,
// reading input from the supplied byte slice, and returns the accumulated
// output, the final tape contents and the final pointer position. It is the
// in-memory counterpart to Run, used by tests and embedders that need the
// final machine state rather than a side-effecting stdin/stdout run.
func (p *Program) RunWithState(length int, input []byte) (output []byte, tape []byte, dp int, err error) {
	pos := 0
	var out []byte
	io := ports{
		read: func() (byte, bool) {
			if pos >= len(input) {
				return 0, false
			}
			b := input[pos]
			pos++
			return b, true
		},
		write: func(b byte) { out = append(out, b) },
	}
	tape, dp, err = p.execute(length, io)
	return out, tape, dp, err
}
