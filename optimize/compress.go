// Package optimize implements the fixed pipeline of tree-to-tree passes
// applied to the parsed IR before flattening: Compress, FoldSimpleLoops,
// FoldMulLoops, FoldSkipLoops, RemoveDeadWrites, and MoveRepeatingResets,
// plus the Pipeline driver that sequences them.
package optimize

import (
	"github.com/golang/glog"

	"github.com/go-interpreter/brainfuck/ir"
)

// Compress fuses consecutive Inc nodes into one (wrapping sum) and
// consecutive Shift nodes into one, dropping any fused node whose net
// effect is zero. It recurses into block bodies.
func Compress(body []ir.Node) []ir.Node {
	out := make([]ir.Node, 0, len(body))
	for i := 0; i < len(body); i++ {
		n := body[i]
		switch n.Kind {
		case ir.KindInc:
			sum := n.Inc
			for i+1 < len(body) && body[i+1].Kind == ir.KindInc {
				i++
				sum += body[i].Inc
			}
			if sum != 0 {
				out = append(out, ir.Inc(sum))
			}
		case ir.KindShift:
			sum := n.A
			for i+1 < len(body) && body[i+1].Kind == ir.KindShift {
				i++
				sum += body[i].A
			}
			if sum != 0 {
				out = append(out, ir.Shift(sum))
			}
		case ir.KindBlock:
			out = append(out, ir.Block(Compress(n.Body), n.Stable))
		default:
			out = append(out, n)
		}
	}
	glog.V(2).Infof("optimize: compress %d -> %d nodes", len(body), len(out))
	return out
}
