package interp_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anode-lang/anode/lang/interp"
	"github.com/anode-lang/anode/lang/parser"
	"github.com/anode-lang/anode/lang/sema"
	"github.com/anode-lang/anode/lang/world"
)

// run parses and resolves src as a single module, then emits, loads and
// calls it on a fresh Runtime, collecting every non-void top-level result
// in order the way a REPL's Host.ReceiveResult would.
func run(t *testing.T, src string) []interp.Value {
	t.Helper()
	mod, err := parser.ParseModule("test", []byte(src))
	require.NoError(t, err)

	w := world.New()
	require.NoError(t, sema.NewPipeline().Run(w, mod))

	var results []interp.Value
	host := &interp.Host{ReceiveResult: func(_ string, v interp.Value) {
		results = append(results, v)
	}}
	rt := interp.NewRuntime(w, host)
	em := interp.NewEmitter(rt)
	ld := interp.NewLoader(rt)

	art, err := em.Emit(context.Background(), mod, nil)
	require.NoError(t, err)
	addr, err := ld.Load(context.Background(), art)
	require.NoError(t, err)
	require.NoError(t, rt.Call(addr))
	return results
}

func TestEvalArithmetic(t *testing.T) {
	results := run(t, "1 + 2 * 3;")
	require.Len(t, results, 1)
	assert.Equal(t, interp.Int32(7), results[0])
}

func TestEvalDeclAndAssignChain(t *testing.T) {
	results := run(t, "foo:int = 100; foo = bar:int = 102; foo;")
	require.Len(t, results, 3)
	assert.Equal(t, interp.Int32(100), results[0])
	assert.Equal(t, interp.Int32(102), results[2])
}

// TestEvalArithmeticWidensRegardlessOfOperandOrder checks that a
// higher-priority operand on the left (2.0 + 1) widens the other operand up
// just like the more common lower-priority-on-the-left form (1 + 2.0).
func TestEvalArithmeticWidensRegardlessOfOperandOrder(t *testing.T) {
	results := run(t, "1 + 2.0;")
	require.Len(t, results, 1)
	assert.Equal(t, interp.Float32(3), results[0])

	results = run(t, "2.0 + 1;")
	require.Len(t, results, 1)
	assert.Equal(t, interp.Float32(3), results[0])
}

// TestEvalLogicalOperandsCastToBool checks that non-bool && / || operands
// are implicitly cast to bool (truthiness) rather than rejected.
func TestEvalLogicalOperandsCastToBool(t *testing.T) {
	results := run(t, "1 && 2;")
	require.Len(t, results, 1)
	assert.Equal(t, interp.Bool(true), results[0])

	results = run(t, "0 || false;")
	require.Len(t, results, 1)
	assert.Equal(t, interp.Bool(false), results[0])
}

func TestEvalIfElse(t *testing.T) {
	results := run(t, "if (1 == 1) 2; else 3;")
	require.Len(t, results, 1)
	assert.Equal(t, interp.Int32(2), results[0])

	results = run(t, "if (1 == 2) 2; else 3;")
	require.Len(t, results, 1)
	assert.Equal(t, interp.Int32(3), results[0])
}

func TestEvalClassFieldAccess(t *testing.T) {
	results := run(t, `
class Widget {
	a:int;
	b:int;
}
w:Widget = new Widget(234, 0);
w.a;
`)
	require.Len(t, results, 2)
	assert.Equal(t, interp.Int32(234), results[1])
}

func TestEvalFuncCall(t *testing.T) {
	results := run(t, "func add:int(x:int, y:int) x + y; add(2, 3);")
	require.Len(t, results, 1)
	assert.Equal(t, interp.Int32(5), results[0])
}

func TestEvalAssertFailureAbortsModule(t *testing.T) {
	mod, err := parser.ParseModule("test", []byte("assert(false); 1;"))
	require.NoError(t, err)
	w := world.New()
	require.NoError(t, sema.NewPipeline().Run(w, mod))

	var results []interp.Value
	host := &interp.Host{ReceiveResult: func(_ string, v interp.Value) {
		results = append(results, v)
	}}
	rt := interp.NewRuntime(w, host)
	em := interp.NewEmitter(rt)
	ld := interp.NewLoader(rt)

	art, err := em.Emit(context.Background(), mod, nil)
	require.NoError(t, err)
	addr, err := ld.Load(context.Background(), art)
	require.NoError(t, err)

	err = rt.Call(addr)
	assert.Error(t, err)
	assert.Empty(t, results, "no result should be reported after a failed assert")
}
