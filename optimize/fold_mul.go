package optimize

import (
	"sort"

	"github.com/go-interpreter/brainfuck/ir"
)

// FoldMulLoops rewrites a stable block whose (already folded) body is pure
// Inc/Shift into a sequence of Mul instructions plus a terminal Reset, when
// the entry cell accumulates a net wrapping change of exactly 255 (one
// decrement per iteration, which guarantees the loop runs tape[dp] times).
// Other blocks are left unchanged (but still recursed into).
func FoldMulLoops(body []ir.Node) []ir.Node {
	out := make([]ir.Node, 0, len(body))
	for _, n := range body {
		if n.Kind != ir.KindBlock {
			out = append(out, n)
			continue
		}
		inner := FoldMulLoops(n.Body)
		if n.Stable && allIncOrShift(inner) {
			if targets, ok := evalMulLoop(inner); ok {
				for _, off := range sortedOffsets(targets) {
					out = append(out, ir.Mul(off, targets[off]))
				}
				out = append(out, ir.Reset())
				continue
			}
		}
		out = append(out, ir.Block(inner, n.Stable))
	}
	return out
}

func allIncOrShift(body []ir.Node) bool {
	for _, n := range body {
		if n.Kind != ir.KindInc && n.Kind != ir.KindShift {
			return false
		}
	}
	return true
}

// evalMulLoop symbolically evaluates a pure Inc/Shift loop body, returning
// the per-offset net change (excluding offset 0 and any offset whose net
// change is zero) and whether the entry cell's net change is exactly 255.
func evalMulLoop(body []ir.Node) (map[int32]byte, bool) {
	ptr := int32(0)
	changes := map[int32]byte{0: 0}
	for _, n := range body {
		switch n.Kind {
		case ir.KindInc:
			changes[ptr] += n.Inc
		case ir.KindShift:
			ptr += n.A
		}
	}
	if changes[0] != 255 {
		return nil, false
	}
	targets := make(map[int32]byte, len(changes))
	for off, w := range changes {
		if off != 0 && w != 0 {
			targets[off] = w
		}
	}
	return targets, true
}

func sortedOffsets(m map[int32]byte) []int32 {
	offs := make([]int32, 0, len(m))
	for off := range m {
		offs = append(offs, off)
	}
	sort.Slice(offs, func(i, j int) bool { return offs[i] < offs[j] })
	return offs
}
