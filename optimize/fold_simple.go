package optimize

import "github.com/go-interpreter/brainfuck/ir"

// FoldSimpleLoops rewrites a block whose (already folded) body is exactly
// one node: Inc(x) with gcd(x, 256) == 1 becomes Reset (an odd increment
// cycles through every residue mod 256 before returning to zero); Shift(n)
// becomes Seek(n). Any other single-node body is left as a block.
func FoldSimpleLoops(body []ir.Node) []ir.Node {
	out := make([]ir.Node, len(body))
	for i, n := range body {
		if n.Kind != ir.KindBlock {
			out[i] = n
			continue
		}
		inner := FoldSimpleLoops(n.Body)
		if len(inner) == 1 {
			switch {
			case inner[0].Kind == ir.KindInc && gcd(uint32(inner[0].Inc), 256) == 1:
				out[i] = ir.Reset()
				continue
			case inner[0].Kind == ir.KindShift:
				out[i] = ir.Seek(inner[0].A)
				continue
			}
		}
		out[i] = ir.Block(inner, n.Stable)
	}
	return out
}

func gcd(a, b uint32) uint32 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
