package optimize

import (
	"github.com/golang/glog"

	"github.com/go-interpreter/brainfuck/ir"
)

// Pipeline runs the fixed, three-times-repeated compile sequence from
// spec.md §4.2.7:
//
//	(compress -> fold_simple -> fold_mul -> remove_dead -> remove_dead -> move_resets) x3
//	compress -> fold_simple -> fold_mul -> fold_skip
//
// Each pass returns a new tree; RemoveDeadWrites runs twice per repetition
// because second-order dead writes can appear only after the first
// invocation reshapes the sequence. The repetition count is not a tunable
// fixed point search: three iterations is what spec.md specifies and what
// every observed program converges within.
func Pipeline(body []ir.Node) []ir.Node {
	for i := 0; i < 3; i++ {
		body = Compress(body)
		body = FoldSimpleLoops(body)
		body = FoldMulLoops(body)
		body = RemoveDeadWrites(body)
		body = RemoveDeadWrites(body)
		body = MoveRepeatingResets(body)
	}
	body = Compress(body)
	body = FoldSimpleLoops(body)
	body = FoldMulLoops(body)
	body = FoldSkipLoops(body)
	glog.V(1).Infof("optimize: pipeline settled at %d top-level nodes", len(body))
	return body
}
