package optimize

import "github.com/go-interpreter/brainfuck/ir"

// RemoveDeadWrites removes writes to cells that are unambiguously
// overwritten before being read, walking each stable block's body
// backwards. Unstable blocks are left alone except for recursing into any
// nested blocks. The pass is applied to the whole program as an implicit
// unstable top-level block, matching the Rust original's
// remove_block(prog, false) entry point.
func RemoveDeadWrites(body []ir.Node) []ir.Node {
	return removeDeadBlock(body, false)
}

func removeDeadBlock(body []ir.Node, stable bool) []ir.Node {
	if !stable {
		out := make([]ir.Node, len(body))
		for i, n := range body {
			if n.Kind == ir.KindBlock {
				out[i] = ir.Block(removeDeadBlock(n.Body, n.Stable), n.Stable)
			} else {
				out[i] = n
			}
		}
		return out
	}

	targets := map[int32]struct{}{}
	ptr := int32(0)
	kept := make([]ir.Node, 0, len(body))

	for i := len(body) - 1; i >= 0; i-- {
		n := body[i]
		switch n.Kind {
		case ir.KindShift:
			ptr -= n.A
			kept = append(kept, n)
		case ir.KindReset:
			if _, seen := targets[ptr]; seen {
				continue
			}
			targets[ptr] = struct{}{}
			kept = append(kept, n)
		case ir.KindInput:
			targets[ptr] = struct{}{}
			kept = append(kept, n)
		case ir.KindOutput:
			delete(targets, ptr)
			kept = append(kept, n)
		case ir.KindMul:
			target := ptr + n.A
			delete(targets, ptr)
			if _, dead := targets[target]; dead {
				continue
			}
			kept = append(kept, n)
		case ir.KindInc:
			if _, dead := targets[ptr]; dead {
				continue
			}
			kept = append(kept, n)
		case ir.KindSeek, ir.KindSkip:
			targets = map[int32]struct{}{}
			kept = append(kept, n)
		case ir.KindBlock:
			targets = map[int32]struct{}{}
			kept = append(kept, ir.Block(removeDeadBlock(n.Body, n.Stable), n.Stable))
		}
	}

	for i, j := 0, len(kept)-1; i < j; i, j = i+1, j-1 {
		kept[i], kept[j] = kept[j], kept[i]
	}
	return kept
}
