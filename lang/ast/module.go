package ast

import (
	"fmt"

	"github.com/anode-lang/anode/lang/symbol"
	"github.com/anode-lang/anode/lang/token"
)

// Module is the root of a parsed anode source file or REPL entry: a
// sequence of top-level declarations and expressions sharing the module's
// own symbol table, which is parented to the World's global scope so
// earlier REPL modules stay visible (spec.md §3.6).
type Module struct {
	base
	Name string
	Body []ExprStmt

	scope *symbol.Table
}

// NewModule creates an unresolved Module. Scope is installed separately by
// the set-scope-parents pass, as a table parented to the World's global
// scope (World.NewModuleScope).
func NewModule(span token.Span, name string, body []ExprStmt) *Module {
	return &Module{base: newBase(span), Name: name, Body: body}
}

func (n *Module) Format(f fmt.State, verb rune) { format(f, verb, "module "+n.Name) }
func (n *Module) Walk(v Visitor) {
	for _, b := range n.Body {
		Walk(v, b)
	}
}

// Scope returns the module's own symbol table.
func (n *Module) Scope() *symbol.Table { return n.scope }

// SetScope installs the module's symbol table, parented appropriately by
// the caller (World.NewModuleScope).
func (n *Module) SetScope(t *symbol.Table) { n.scope = t }
