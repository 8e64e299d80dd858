package ir

// SyntaxError is returned by Parse when brackets in the source don't
// balance. It is a concrete exported type, not a sentinel string, so a
// caller can branch on Go type the way wagon's callers branch on
// wasm.StackTypeError.
type SyntaxError struct {
	Msg string
}

func (e *SyntaxError) Error() string { return e.Msg }

func errUnmatchedOpen() error  { return &SyntaxError{Msg: "Unmatched ["} }
func errUnmatchedClose() error { return &SyntaxError{Msg: "Unmatched ]"} }

// Parse converts Brainfuck source into a tree IR. The returned Node is
// always a KindBlock holding the top-level sequence; its Stable flag
// follows the same rule as any nested block (net Shift displacement zero
// and all children stable), though nothing downstream ever loops over the
// top level the way it would a real "[...]", so the flag has no semantic
// weight at the top — it is carried purely for uniformity.
func Parse(source string) (Node, error) {
	p := &parser{src: []rune(source)}
	body, stable, err := p.parseBlock(false)
	if err != nil {
		return Node{}, err
	}
	return Block(body, stable), nil
}

type parser struct {
	src []rune
	pos int
}

func (p *parser) parseBlock(inBlock bool) ([]Node, bool, error) {
	var body []Node
	delta := int32(0)
	stable := true

	for p.pos < len(p.src) {
		ch := p.src[p.pos]
		p.pos++
		switch ch {
		case '+':
			body = append(body, Inc(1))
		case '-':
			body = append(body, Inc(255))
		case '>':
			body = append(body, Shift(1))
			delta++
		case '<':
			body = append(body, Shift(-1))
			delta--
		case '.':
			body = append(body, Output())
		case ',':
			body = append(body, Input())
		case '[':
			inner, innerStable, err := p.parseBlock(true)
			if err != nil {
				return nil, false, err
			}
			stable = stable && innerStable
			body = append(body, Block(inner, innerStable))
		case ']':
			if !inBlock {
				return nil, false, errUnmatchedClose()
			}
			return body, stable && delta == 0, nil
		default:
			// comment character, ignored
		}
	}

	if inBlock {
		return nil, false, errUnmatchedOpen()
	}
	return body, stable && delta == 0, nil
}
