package optimize

import (
	"reflect"
	"testing"

	"github.com/go-interpreter/brainfuck/ir"
)

func TestCompressFusesRuns(t *testing.T) {
	in := []ir.Node{ir.Inc(1), ir.Inc(1), ir.Inc(1), ir.Shift(1), ir.Shift(1)}
	got := Compress(in)
	want := []ir.Node{ir.Inc(3), ir.Shift(2)}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Compress = %+v, want %+v", got, want)
	}
}

func TestCompressDropsZeroEffect(t *testing.T) {
	in := []ir.Node{ir.Inc(1), ir.Inc(255), ir.Shift(1), ir.Shift(-1), ir.Output()}
	got := Compress(in)
	want := []ir.Node{ir.Output()}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Compress = %+v, want %+v", got, want)
	}
}

func TestCompressWraps(t *testing.T) {
	in := []ir.Node{ir.Inc(200), ir.Inc(200)}
	got := Compress(in)
	if len(got) != 1 || got[0].Inc != 144 { // 400 mod 256 == 144
		t.Fatalf("Compress = %+v, want single Inc(144)", got)
	}
}

func TestCompressRecursesIntoBlocks(t *testing.T) {
	in := []ir.Node{ir.Block([]ir.Node{ir.Inc(1), ir.Inc(1)}, true)}
	got := Compress(in)
	if len(got) != 1 || got[0].Kind != ir.KindBlock || len(got[0].Body) != 1 || got[0].Body[0].Inc != 2 {
		t.Fatalf("Compress = %+v, want block with fused Inc(2)", got)
	}
}

func TestCompressIdempotent(t *testing.T) {
	in := []ir.Node{ir.Inc(1), ir.Inc(2), ir.Shift(1), ir.Block([]ir.Node{ir.Inc(3), ir.Inc(4)}, true), ir.Output()}
	once := Compress(in)
	twice := Compress(once)
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("Compress not idempotent: once=%+v twice=%+v", once, twice)
	}
}
