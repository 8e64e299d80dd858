// Package exec compiles Brainfuck source into a flat instruction vector and
// executes it against a byte tape. It mirrors wagon's exec package: wagon
// compiles a WebAssembly module once (exec.NewVM / exec.CompileModule) and
// then runs it repeatedly against a context carrying the evaluation stack;
// this package compiles a Brainfuck program once (exec.Compile) and runs it
// repeatedly against a tape.
package exec

import (
	"github.com/golang/glog"

	"github.com/go-interpreter/brainfuck/exec/internal/flatten"
	"github.com/go-interpreter/brainfuck/ir"
	"github.com/go-interpreter/brainfuck/optimize"
)

// Program is a compiled Brainfuck program, ready to run against a tape of
// any requested length.
type Program struct {
	inst []flatten.Inst
	bias int
}

// Compile parses, optimizes and flattens source into a Program. A
// SyntaxError from ir.Parse (unmatched brackets) is returned unwrapped.
func Compile(source string) (*Program, error) {
	tree, err := ir.Parse(source)
	if err != nil {
		return nil, err
	}
	tree.Body = optimize.Pipeline(tree.Body)
	flat := flatten.Flatten(tree)
	bias := biasFor(flat)
	glog.V(1).Infof("exec: compiled %d bytes to %d instructions (tape bias %d)", len(source), len(flat), bias)
	return &Program{inst: flat, bias: bias}, nil
}

// Len reports the number of flat instructions the program compiled to.
func (p *Program) Len() int { return len(p.inst) }
