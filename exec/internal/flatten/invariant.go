package flatten

import "github.com/golang/glog"

// panicUnbalanced reports an Open left without a matching Close (or vice
// versa) at flatten time. The parser already rejects unbalanced source, so
// reaching here means an optimize pass corrupted the tree -- an internal
// invariant failure per spec.md §7, not a user-facing error.
func panicUnbalanced(idx int) {
	glog.Fatalf("flatten: unbalanced Open/Close at instruction %d -- internal invariant violated", idx)
}
