// Command bfrun compiles and runs a Brainfuck source file.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/golang/glog"

	"github.com/go-interpreter/brainfuck/exec"
)

var (
	length = flag.Int("length", 65536, "tape length in bytes")
	flush  = flag.Bool("flush", false, "flush output after every Output instruction")
)

func main() {
	log.SetPrefix("bfrun: ")
	log.SetFlags(0)

	flag.Parse()
	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	if err := run(flag.Arg(0), *length, *flush); err != nil {
		log.Fatal(err)
	}
}

// run compiles and executes the program at path against process stdin and
// stdout. It is split out from main so tests can exercise the error paths
// without os.Exit.
func run(path string, length int, flush bool) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	prog, err := exec.Compile(string(src))
	if err != nil {
		return err
	}
	glog.V(1).Infof("bfrun: compiled %s to %d instructions", path, prog.Len())

	return prog.Run(length, flush)
}
