package optimize

import "github.com/go-interpreter/brainfuck/ir"

// FoldSkipLoops rewrites a block whose (recursively folded) body consists
// of any number of Shift nodes and at most one Inc into a single Skip node:
// Skip(p, v, d) where p is the body's total pointer displacement and, if an
// Inc(v) occurs, d is the pointer offset at which it occurs (0 if absent).
// d must fit a signed 16-bit value. Any other body shape is left as a
// block.
func FoldSkipLoops(body []ir.Node) []ir.Node {
	out := make([]ir.Node, len(body))
	for i, n := range body {
		if n.Kind != ir.KindBlock {
			out[i] = n
			continue
		}
		inner := FoldSkipLoops(n.Body)

		ptr := int32(0)
		incSeen := false
		var incVal byte
		var incOff int32
		valid := true
		for _, ins := range inner {
			switch ins.Kind {
			case ir.KindShift:
				ptr += ins.A
			case ir.KindInc:
				if incSeen {
					valid = false
				} else {
					incSeen = true
					incVal = ins.Inc
					incOff = ptr
				}
			default:
				valid = false
			}
			if !valid {
				break
			}
		}

		if valid && incSeen && incOff >= -32768 && incOff <= 32767 {
			out[i] = ir.Skip(ptr, incVal, int16(incOff))
			continue
		}
		if valid && !incSeen {
			out[i] = ir.Skip(ptr, 0, 0)
			continue
		}
		out[i] = ir.Block(inner, n.Stable)
	}
	return out
}
