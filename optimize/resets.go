package optimize

import "github.com/go-interpreter/brainfuck/ir"

// MoveRepeatingResets hoists resets that are idempotent across loop
// iterations out of a stable, block-free-bodied loop. Eligible resets are
// dropped from the loop body and replayed once, after the loop, at their
// original offsets; the loop plus the replayed resets become a new stable
// block wrapping the original (now trimmed) loop.
func MoveRepeatingResets(body []ir.Node) []ir.Node {
	out := make([]ir.Node, 0, len(body))
	for _, n := range body {
		if n.Kind != ir.KindBlock {
			out = append(out, n)
			continue
		}
		moved := MoveRepeatingResets(n.Body)
		if n.Stable && !containsBlock(moved) {
			trimmed, removed := hoistResets(moved)
			if len(removed) == 0 {
				out = append(out, ir.Block(trimmed, n.Stable))
			} else {
				seq := make([]ir.Node, 0, 1+3*len(removed))
				seq = append(seq, ir.Block(trimmed, n.Stable))
				for _, off := range removed {
					seq = append(seq, ir.Shift(off), ir.Reset(), ir.Shift(-off))
				}
				out = append(out, ir.Block(seq, true))
			}
			continue
		}
		out = append(out, ir.Block(moved, n.Stable))
	}
	return out
}

func containsBlock(body []ir.Node) bool {
	for _, n := range body {
		if n.Kind == ir.KindBlock {
			return true
		}
	}
	return false
}

// hoistResets computes the unremovable set forward (offset 0, plus any
// offset written by Output or read by Mul), then walks backward dropping
// resets at removable offsets and recording their hoisted-out offsets in
// the order the backward walk meets them (the last reset in the body
// first, matching the order the Rust original builds its `removed` vector
// while walking in reverse).
func hoistResets(body []ir.Node) (trimmed []ir.Node, removed []int32) {
	unremovable := map[int32]struct{}{0: {}}
	ptr := int32(0)
	for _, n := range body {
		switch n.Kind {
		case ir.KindShift:
			ptr += n.A
		case ir.KindOutput:
			unremovable[ptr] = struct{}{}
		case ir.KindMul:
			unremovable[ptr] = struct{}{}
		}
	}

	seq := make([]ir.Node, 0, len(body))
	ptr = 0
	for i := len(body) - 1; i >= 0; i-- {
		n := body[i]
		switch n.Kind {
		case ir.KindShift:
			ptr -= n.A
			seq = append(seq, n)
		case ir.KindReset:
			if _, un := unremovable[ptr]; un {
				seq = append(seq, n)
			} else {
				removed = append(removed, ptr)
			}
		case ir.KindInc:
			unremovable[ptr] = struct{}{}
			seq = append(seq, n)
		case ir.KindMul:
			unremovable[ptr+n.A] = struct{}{}
			seq = append(seq, n)
		default:
			seq = append(seq, n)
		}
	}
	for i, j := 0, len(seq)-1; i < j; i, j = i+1, j-1 {
		seq[i], seq[j] = seq[j], seq[i]
	}
	return seq, removed
}
