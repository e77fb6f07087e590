package interp

import (
	"fmt"
	"io"

	"github.com/anode-lang/anode/lang/token"
	"github.com/anode-lang/anode/lang/types"
)

// Host wires the ABI callbacks SPEC_FULL.md's emitter boundary describes
// (__receive_result__, __assert_passed__, __assert_failed__, __malloc__) as
// plain Go closures instead of JIT-resolved externs: for a real LLVM
// backend these would be extern C functions the emitted code calls by
// address; interp calls them directly since it already runs inside the
// same process.
type Host struct {
	// ReceiveResult is invoked once for every top-level expression of a
	// module whose static type is not Void, in source order — the REPL's
	// "print the value of what I just typed" behavior.
	ReceiveResult func(moduleName string, v Value)

	// AssertPassed and AssertFailed are invoked when an AssertExpr's
	// condition evaluates to true or false, respectively. A failed assert
	// also aborts the enclosing module run (Eval returns a non-nil error).
	AssertPassed func(span token.Span)
	AssertFailed func(span token.Span)

	// Malloc overrides how NewExpr allocates a class instance's storage.
	// When nil, interp zero-initializes every field per zeroValue and then
	// runs the constructor-style field initializers.
	Malloc func(class *types.Class) *Instance
}

// NewHost returns a Host whose ReceiveResult prints each value's String()
// form to w on its own line, and whose AssertFailed reports to w as well
// without itself stopping the thread — Eval's own error return is what
// aborts execution; the callback is purely for user-facing reporting.
func NewHost(w io.Writer) *Host {
	return &Host{
		ReceiveResult: func(moduleName string, v Value) {
			fmt.Fprintf(w, "%s\n", v.String())
		},
		AssertFailed: func(span token.Span) {
			fmt.Fprintf(w, "assertion failed at %s\n", span)
		},
	}
}
