package flatten

import (
	"testing"

	"github.com/go-interpreter/brainfuck/ir"
)

func block(body ...ir.Node) ir.Node { return ir.Block(body, false) }

func TestFlattenIncShiftFusion(t *testing.T) {
	prog := block(ir.Inc(5), ir.Shift(3))
	flat := Flatten(prog)
	if len(flat) != 1 {
		t.Fatalf("Flatten = %+v, want 1 instruction", flat)
	}
	if flat[0].Op != OpShiftInc || flat[0].Inc != 5 || flat[0].Delta != 3 {
		t.Fatalf("got %+v, want ShiftInc(inc=5, delta=3)", flat[0])
	}
}

func TestFlattenShiftThenResetBecomesSet(t *testing.T) {
	prog := block(ir.Shift(2), ir.Reset())
	flat := Flatten(prog)
	if len(flat) != 1 || flat[0].Op != OpSet || flat[0].Arg != 2 {
		t.Fatalf("Flatten = %+v, want Set(arg=2)", flat)
	}
}

func TestFlattenShiftThenOutput(t *testing.T) {
	prog := block(ir.Shift(-1), ir.Output())
	flat := Flatten(prog)
	if len(flat) != 1 || flat[0].Op != OpOutput || flat[0].Arg != -1 {
		t.Fatalf("Flatten = %+v, want Output(arg=-1)", flat)
	}
}

func TestFlattenShiftThenInput(t *testing.T) {
	prog := block(ir.Shift(4), ir.Input())
	flat := Flatten(prog)
	if len(flat) != 1 || flat[0].Op != OpInput || flat[0].Arg != 4 {
		t.Fatalf("Flatten = %+v, want Input(arg=4)", flat)
	}
}

func TestFlattenMulFollowedByResetBecomesMulzero(t *testing.T) {
	prog := block(ir.Mul(3, 7), ir.Reset(), ir.Shift(2))
	flat := Flatten(prog)
	if len(flat) != 1 || flat[0].Op != OpMulzero || flat[0].Arg != 3 || flat[0].Inc != 7 || flat[0].Delta != 2 {
		t.Fatalf("Flatten = %+v, want Mulzero(3, 7, delta=2)", flat)
	}
}

func TestFlattenMulAloneStaysMul(t *testing.T) {
	prog := block(ir.Mul(3, 7), ir.Output())
	flat := Flatten(prog)
	if len(flat) != 2 || flat[0].Op != OpMul || flat[0].Delta != 0 {
		t.Fatalf("Flatten = %+v, want [Mul(delta=0), Output]", flat)
	}
}

func TestFlattenSeekFusesDeltaBeforeInc(t *testing.T) {
	// Per spec.md §4.3: Seek fuses pick_shift then pick_inc -- the
	// trailing Shift is consumed as the post-seek delta, and only then is
	// a further trailing Inc consumed as the post-seek increment.
	prog := block(ir.Seek(2), ir.Shift(5), ir.Inc(9))
	flat := Flatten(prog)
	if len(flat) != 1 {
		t.Fatalf("Flatten = %+v, want 1 instruction", flat)
	}
	if flat[0].Op != OpSeek || flat[0].Arg != 2 || flat[0].Delta != 5 || flat[0].Inc != 9 {
		t.Fatalf("got %+v, want Seek(arg=2, delta=5, inc=9)", flat[0])
	}
}

func TestFlattenSkipPassesThroughFields(t *testing.T) {
	prog := block(ir.Skip(3, 9, -2))
	flat := Flatten(prog)
	if len(flat) != 1 || flat[0].Op != OpSkip || flat[0].Arg != 3 || flat[0].Inc != 9 || flat[0].Delta != -2 {
		t.Fatalf("Flatten = %+v, want Skip(3, 9, -2)", flat)
	}
}

func TestFlattenBlockFusesLeadingPrelude(t *testing.T) {
	inner := ir.Block([]ir.Node{ir.Inc(1), ir.Shift(1), ir.Output()}, false)
	prog := block(inner)
	flat := Flatten(prog)
	// Open, Output, Close
	if len(flat) != 3 {
		t.Fatalf("Flatten = %+v, want 3 instructions", flat)
	}
	if flat[0].Op != OpOpen || flat[0].Inc != 1 || flat[0].Delta != 1 {
		t.Fatalf("Open = %+v, want Open(inc=1, delta=1)", flat[0])
	}
	if flat[1].Op != OpOutput {
		t.Fatalf("middle = %+v, want Output", flat[1])
	}
	if flat[2].Op != OpClose || flat[2].Inc != 1 || flat[2].Delta != 1 {
		t.Fatalf("Close = %+v, want Close(inc=1, delta=1) matching Open", flat[2])
	}
}

func TestFlattenJumpLinking(t *testing.T) {
	// [+[-]+]
	innerInner := ir.Block([]ir.Node{ir.Inc(255)}, true)
	inner := ir.Block([]ir.Node{ir.Inc(1), innerInner, ir.Inc(1)}, true)
	prog := block(inner)
	flat := Flatten(prog)

	for i, inst := range flat {
		if inst.Op == OpOpen {
			target := int(inst.Arg)
			if flat[target].Op != OpClose {
				t.Fatalf("Open at %d points to %d which is %v, want Close", i, target, flat[target].Op)
			}
			if int(flat[target].Arg) != i {
				t.Fatalf("Close at %d points back to %d, want %d", target, flat[target].Arg, i)
			}
		}
	}
}

func TestFlattenNestedBlocksLinkIndependently(t *testing.T) {
	// [[]][]
	a := ir.Block([]ir.Node{ir.Block(nil, true)}, true)
	b := ir.Block(nil, true)
	prog := block(a, b)
	flat := Flatten(prog)

	opens, closes := 0, 0
	for _, inst := range flat {
		switch inst.Op {
		case OpOpen:
			opens++
		case OpClose:
			closes++
		}
	}
	if opens != 3 || closes != 3 {
		t.Fatalf("Flatten = %+v, want 3 Open and 3 Close", flat)
	}

	// Open0 Open1 Close2 Close3 Open4 Close5: 0<->3, 1<->2, 4<->5.
	wantArg := []int32{3, 2, 1, 0, 5, 4}
	if len(flat) != len(wantArg) {
		t.Fatalf("Flatten = %+v, want %d instructions", flat, len(wantArg))
	}
	for i, inst := range flat {
		if inst.Arg != wantArg[i] {
			t.Fatalf("inst %d = %+v, want Arg %d", i, inst, wantArg[i])
		}
	}
}
