// Package ir defines the tree intermediate representation that the parser
// produces and the optimize package rewrites.
package ir

// Kind identifies which of the nine tree IR node shapes a Node holds.
type Kind uint8

const (
	KindInc Kind = iota
	KindShift
	KindOutput
	KindInput
	KindReset
	KindMul
	KindSeek
	KindSkip
	KindBlock
)

func (k Kind) String() string {
	switch k {
	case KindInc:
		return "Inc"
	case KindShift:
		return "Shift"
	case KindOutput:
		return "Output"
	case KindInput:
		return "Input"
	case KindReset:
		return "Reset"
	case KindMul:
		return "Mul"
	case KindSeek:
		return "Seek"
	case KindSkip:
		return "Skip"
	case KindBlock:
		return "Block"
	default:
		return "Kind(?)"
	}
}

// Node is every tree IR node, tagged by Kind. Only the fields relevant to a
// given Kind are meaningful; this mirrors the flat IR's own packed-record
// shape (see exec/internal/flatten) rather than a Go interface per variant,
// so passes can build and rewrite nodes without heap-allocating a new
// concrete type per kind.
type Node struct {
	Kind Kind

	// A carries: Shift's delta, Seek's stride, Mul's offset, Skip's pointer
	// stride. Unused by Inc/Output/Input/Reset/Block.
	A int32

	// Inc carries: Inc's added value, Mul's weight, Skip's single fused
	// increment amount.
	Inc byte

	// Delta carries: Skip's offset of the fused increment relative to loop
	// entry. Unused elsewhere.
	Delta int16

	// Body and Stable are meaningful only for KindBlock.
	Body   []Node
	Stable bool
}

func Inc(v byte) Node { return Node{Kind: KindInc, Inc: v} }

func Shift(n int32) Node { return Node{Kind: KindShift, A: n} }

func Output() Node { return Node{Kind: KindOutput} }

func Input() Node { return Node{Kind: KindInput} }

func Reset() Node { return Node{Kind: KindReset} }

func Mul(off int32, w byte) Node { return Node{Kind: KindMul, A: off, Inc: w} }

func Seek(n int32) Node { return Node{Kind: KindSeek, A: n} }

func Skip(stride int32, v byte, off int16) Node {
	return Node{Kind: KindSkip, A: stride, Inc: v, Delta: off}
}

func Block(body []Node, stable bool) Node {
	return Node{Kind: KindBlock, Body: body, Stable: stable}
}
