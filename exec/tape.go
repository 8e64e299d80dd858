package exec

import (
	mmap "github.com/edsrzf/mmap-go"

	"github.com/go-interpreter/brainfuck/exec/internal/flatten"
)

// Tape is the byte tape a Program executes against. Its backing storage is
// an anonymous memory-mapped region rather than a plain make([]byte, n):
// the teacher (wagon) pulled in edsrzf/mmap-go to back the executable
// buffer for its native-JIT backend, a component this spec explicitly
// excludes (see DESIGN.md). The same library is repurposed here for the
// one thing this interpreter actually needs raw mapped memory for: a flat
// byte buffer padded by a nonnegative bias so that Mul/Mulzero
// instructions with negative offsets, which index the region directly, can
// address cells before logical cell 0 (spec.md §4.4, §9).
type Tape struct {
	region mmap.MMap
	cells  []byte
	bias   int
}

// newTape allocates a tape of the given logical length, padded by bias
// cells at the front. cells[0] is logical cell 0 (region[bias]); the
// padding region[0:bias] is reached via negative Mul offsets.
func newTape(length, bias int) (*Tape, error) {
	region, err := mmap.MapRegion(nil, length+bias, mmap.RDWR, mmap.ANON, 0)
	if err != nil {
		return nil, err
	}
	return &Tape{region: region, cells: region[bias:], bias: bias}, nil
}

// Close releases the tape's backing memory. Program.execute calls it when
// a run finishes, so callers of Program.Run or Program.RunWithState never
// call it themselves.
func (t *Tape) Close() error { return t.region.Unmap() }

// biasFor computes the padding a compiled program's tape needs: the
// largest negative Mul/Mulzero offset observed, or 0 if none reach behind
// cell 0. This is the Go equivalent of the Rust original's get_offset.
func biasFor(prog []flatten.Inst) int {
	bias := 0
	for _, inst := range prog {
		if inst.Op != flatten.OpMul && inst.Op != flatten.OpMulzero {
			continue
		}
		if neg := int(-inst.Arg); neg > bias {
			bias = neg
		}
	}
	return bias
}
