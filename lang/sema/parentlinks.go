package sema

import "github.com/anode-lang/anode/lang/ast"

// parentLinksPass is pass 1 (spec.md §4.5): install Node.Parent on every
// node in the tree so every later pass can climb toward the module root,
// in particular ast.EnclosingScope.
type parentLinksPass struct{}

func (parentLinksPass) Name() string { return "set-parent-links" }

func (parentLinksPass) Run(ctx *Context, mod *ast.Module) { setParentLinks(ctx, mod) }

// setParentLinks is reused by the expansion passes to re-link a freshly
// cloned template or generic body before the remaining pre-expansion
// passes run over it again.
func setParentLinks(ctx *Context, root ast.Node) {
	var stack []ast.Node
	var v ast.VisitorFunc
	v = func(n ast.Node, dir ast.VisitDirection) ast.Visitor {
		if dir == ast.VisitExit {
			stack = stack[:len(stack)-1]
			return nil
		}
		if len(stack) > 0 {
			n.SetParent(stack[len(stack)-1])
		}
		stack = append(stack, n)
		return v
	}
	ast.Walk(v, root)
}
