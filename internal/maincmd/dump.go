package maincmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/anode-lang/anode/lang/ast"
)

// dumpTree prints an indented rendering of node and every descendant, one
// line per node: depth, the node's own Format label, its span, and — for a
// handful of leaf-ish variants that carry a name or literal value worth
// seeing at a glance — that extra detail. Grounded on the teacher's
// ast.Printer in shape (walk the tree, print one line per node) but much
// simpler, since lang/ast's own Format only ever renders a bare label.
func dumpTree(w io.Writer, root ast.Node) {
	depth := 0
	var v ast.VisitorFunc
	v = func(n ast.Node, dir ast.VisitDirection) ast.Visitor {
		if dir == ast.VisitExit {
			depth--
			return nil
		}
		fmt.Fprintf(w, "%s%v %s%s\n", strings.Repeat("  ", depth), n, n.Span(), detail(n))
		depth++
		return v
	}
	ast.Walk(v, root)
}

// detail renders the one or two fields that make a given node
// distinguishable from its siblings of the same kind, prefixed with a
// space, or "" for nodes whose label alone already says everything.
func detail(n ast.Node) string {
	switch t := n.(type) {
	case *ast.LiteralBoolExpr:
		return fmt.Sprintf(" %v", t.Value)
	case *ast.LiteralInt32Expr:
		return fmt.Sprintf(" %d", t.Value)
	case *ast.LiteralFloatExpr:
		return fmt.Sprintf(" %g", t.Value)
	case *ast.VariableRefExpr:
		return fmt.Sprintf(" %q", strings.Join(t.Name, "::"))
	case *ast.VariableDeclExpr:
		return fmt.Sprintf(" %q", t.Name)
	case *ast.FuncDefExpr:
		return fmt.Sprintf(" %q", t.Name)
	case *ast.CompleteClassDefExpr:
		return fmt.Sprintf(" %q", t.Name)
	case *ast.GenericClassDefExpr:
		return fmt.Sprintf(" %q", t.Name)
	case *ast.DotExpr:
		return fmt.Sprintf(" .%s", t.MemberName)
	case *ast.MethodRefExpr:
		return fmt.Sprintf(" .%s", t.MethodName)
	case *ast.NamespaceExpr:
		return fmt.Sprintf(" %q", t.Name)
	case *ast.NamedTemplateExpr:
		return fmt.Sprintf(" %q", t.Name)
	case *ast.UnaryExpr:
		return fmt.Sprintf(" %s", t.Op)
	case *ast.BinaryExpr:
		return fmt.Sprintf(" %s", t.Op)
	default:
		return ""
	}
}
