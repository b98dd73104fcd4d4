// Package debug provides environment-gated debug logging for the patch
// and diff engines. Flags are read once at process start:
//
//	DOCPATCH_DEBUG_PATCH - log each operation as a patch is applied
//	DOCPATCH_DEBUG_DIFF  - log pending edits as a diff is built
//	DOCPATCH_DEBUG_OP    - log operation decoding
package debug

import (
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	Patch bool
	Diff  bool
	Op    bool
}

var d *debug

func init() {
	d = &debug{}
	d.Patch = boolEnv("DOCPATCH_DEBUG_PATCH")
	d.Diff = boolEnv("DOCPATCH_DEBUG_DIFF")
	d.Op = boolEnv("DOCPATCH_DEBUG_OP")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Patch() bool {
	return d.Patch
}
func Diff() bool {
	return d.Diff
}
func Op() bool {
	return d.Op
}

func Logf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format, args...)
}
