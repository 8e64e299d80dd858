// Package flatten lowers the optimized tree IR into the flat instruction
// vector the interpreter executes, fusing a leading/trailing shift and a
// trailing increment into each primitive and pre-resolving [/] jump
// targets to absolute instruction indices. It mirrors wagon's
// exec/internal/compile package: that package rewrites structured
// WebAssembly control flow into absolute-address jumps via a pending-patch
// map; this one rewrites Brainfuck's strictly-nesting [...] blocks into
// absolute-address jumps via a plain LIFO stack, since there is no
// depth-addressed branching to track.
package flatten

import "github.com/go-interpreter/brainfuck/ir"

// Op is a flat instruction's opcode.
type Op uint8

const (
	OpShiftInc Op = iota
	OpOutput
	OpInput
	OpSeek
	OpSkip
	OpSet
	OpMul
	OpMulzero
	OpOpen
	OpClose
)

func (o Op) String() string {
	switch o {
	case OpShiftInc:
		return "ShiftInc"
	case OpOutput:
		return "Output"
	case OpInput:
		return "Input"
	case OpSeek:
		return "Seek"
	case OpSkip:
		return "Skip"
	case OpSet:
		return "Set"
	case OpMul:
		return "Mul"
	case OpMulzero:
		return "Mulzero"
	case OpOpen:
		return "Open"
	case OpClose:
		return "Close"
	default:
		return "Op(?)"
	}
}

// Inst is a packed flat instruction: the four-field record from spec.md
// §3.2. Arg's meaning depends on Op (shift amount, multiply offset, seek
// stride, or a resolved Open/Close jump target); Inc is the post-increment
// fused onto the primitive (or, for Set, the absolute value to store); Delta
// is the post-shift fused onto the primitive.
type Inst struct {
	Op    Op
	Arg   int32
	Inc   byte
	Delta int16
}

// cursor walks a flat slice of tree nodes (a block body already has its
// Block wrapper stripped away by the caller), letting Flatten consume a
// trailing Inc/Shift into the instruction it just emitted.
type cursor struct {
	nodes []ir.Node
	pos   int
}

func (c *cursor) done() bool { return c.pos >= len(c.nodes) }

func (c *cursor) peek() (ir.Node, bool) {
	if c.done() {
		return ir.Node{}, false
	}
	return c.nodes[c.pos], true
}

func (c *cursor) next() ir.Node {
	n := c.nodes[c.pos]
	c.pos++
	return n
}

// pickInc consumes a following Inc node if present, returning its value (0
// otherwise).
func (c *cursor) pickInc() byte {
	if n, ok := c.peek(); ok && n.Kind == ir.KindInc {
		c.pos++
		return n.Inc
	}
	return 0
}

// pickShift consumes a following Shift node if present and its delta fits a
// signed 16-bit value, returning the delta (0 otherwise).
func (c *cursor) pickShift() int16 {
	if n, ok := c.peek(); ok && n.Kind == ir.KindShift && n.A >= -32768 && n.A <= 32767 {
		c.pos++
		return int16(n.A)
	}
	return 0
}

// Flatten lowers a tree IR node (expected to be a KindBlock holding the
// program body, as returned by ir.Parse/optimize.Pipeline) into a flat
// instruction vector with Open/Close jump targets resolved.
func Flatten(prog ir.Node) []Inst {
	flat := flattenBody(prog.Body)
	linkJumps(flat)
	return flat
}

func flattenBody(nodes []ir.Node) []Inst {
	c := &cursor{nodes: nodes}
	var flat []Inst

	for !c.done() {
		n := c.next()
		switch n.Kind {
		case ir.KindInc:
			delta := c.pickShift()
			flat = append(flat, Inst{Op: OpShiftInc, Inc: n.Inc, Delta: delta})

		case ir.KindShift:
			if next, ok := c.peek(); ok {
				switch next.Kind {
				case ir.KindReset:
					c.pos++
					inc := c.pickInc()
					delta := c.pickShift()
					flat = append(flat, Inst{Op: OpSet, Arg: n.A, Inc: inc, Delta: delta})
					continue
				case ir.KindOutput:
					c.pos++
					inc := c.pickInc()
					delta := c.pickShift()
					flat = append(flat, Inst{Op: OpOutput, Arg: n.A, Inc: inc, Delta: delta})
					continue
				case ir.KindInput:
					c.pos++
					inc := c.pickInc()
					delta := c.pickShift()
					flat = append(flat, Inst{Op: OpInput, Arg: n.A, Inc: inc, Delta: delta})
					continue
				}
			}
			inc := c.pickInc()
			delta := c.pickShift()
			flat = append(flat, Inst{Op: OpShiftInc, Arg: n.A, Inc: inc, Delta: delta})

		case ir.KindOutput:
			inc := c.pickInc()
			delta := c.pickShift()
			flat = append(flat, Inst{Op: OpOutput, Inc: inc, Delta: delta})

		case ir.KindInput:
			inc := c.pickInc()
			delta := c.pickShift()
			flat = append(flat, Inst{Op: OpInput, Inc: inc, Delta: delta})

		case ir.KindReset:
			inc := c.pickInc()
			delta := c.pickShift()
			flat = append(flat, Inst{Op: OpSet, Inc: inc, Delta: delta})

		case ir.KindMul:
			if next, ok := c.peek(); ok && next.Kind == ir.KindReset {
				c.pos++
				delta := c.pickShift()
				flat = append(flat, Inst{Op: OpMulzero, Arg: n.A, Inc: n.Inc, Delta: delta})
				continue
			}
			flat = append(flat, Inst{Op: OpMul, Arg: n.A, Inc: n.Inc})

		case ir.KindSeek:
			// Fusion order is deliberately delta-then-inc: the fused inc
			// applies to the cell the post-seek shift lands on, not the
			// one the seek stopped at.
			delta := c.pickShift()
			inc := c.pickInc()
			flat = append(flat, Inst{Op: OpSeek, Arg: n.A, Inc: inc, Delta: delta})

		case ir.KindSkip:
			flat = append(flat, Inst{Op: OpSkip, Arg: n.A, Inc: n.Inc, Delta: n.Delta})

		case ir.KindBlock:
			body := &cursor{nodes: n.Body}
			inc := body.pickInc()
			delta := body.pickShift()
			inner := flattenBody(body.nodes[body.pos:])
			flat = append(flat, Inst{Op: OpOpen, Inc: inc, Delta: delta})
			flat = append(flat, inner...)
			flat = append(flat, Inst{Op: OpClose, Inc: inc, Delta: delta})
		}
	}
	return flat
}

// linkJumps pairs each Open with its matching Close via a LIFO stack of
// pending indices and sets each one's Arg to the other's absolute index.
func linkJumps(flat []Inst) {
	var stack []int
	for i, inst := range flat {
		switch inst.Op {
		case OpOpen:
			stack = append(stack, i)
		case OpClose:
			if len(stack) == 0 {
				panicUnbalanced(i)
			}
			open := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			flat[open].Arg = int32(i)
			flat[i].Arg = int32(open)
		}
	}
	if len(stack) != 0 {
		panicUnbalanced(stack[len(stack)-1])
	}
}
