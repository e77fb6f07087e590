package sema

import (
	"github.com/anode-lang/anode/lang/ast"
	"github.com/anode-lang/anode/lang/types"
)

// populateClassFieldsPass is pass 8 (spec.md §4.6): fill in the Fields and
// Methods of every ordinary, non-generic class's types.Class now that its
// field and parameter TypeRefs resolved in pass 5. Classes produced by
// generic expansion (pass 7) are populated inline, as each is synthesized,
// since they have no node of their own in the module tree for this pass to
// discover by walking it.
type populateClassFieldsPass struct{}

func (populateClassFieldsPass) Name() string { return "populate-class-fields" }

func (populateClassFieldsPass) Run(ctx *Context, mod *ast.Module) {
	var v ast.VisitorFunc
	v = func(n ast.Node, dir ast.VisitDirection) ast.Visitor {
		if dir == ast.VisitExit {
			return nil
		}
		if t, ok := n.(*ast.CompleteClassDefExpr); ok {
			if t.Sym != nil {
				if class, ok := t.Sym.Type.Actual().(*types.Class); ok {
					populateClassFromDef(class, t)
					ctx.World.RegisterClassDef(class.NodeID, t)
				}
			}
			return nil
		}
		return v
	}
	ast.Walk(v, mod)
}

// populateClassFromDef fills class.Fields and class.Methods from def's
// already-resolved field and method declarations, in declaration order.
func populateClassFromDef(class *types.Class, def *ast.CompleteClassDefExpr) {
	class.Fields = make([]*types.Field, len(def.Fields))
	for i, fl := range def.Fields {
		class.Fields[i] = &types.Field{Name: fl.Name, Type: fl.Type.ResolvedType(), Ordinal: i}
		if fl.Sym != nil {
			fl.Sym.Type = fl.Type.ResolvedType()
		}
	}
	class.Methods = make([]*types.Method, len(def.Methods))
	for i, m := range def.Methods {
		fn := functionTypeOf(m)
		class.Methods[i] = &types.Method{Name: m.Name, Func: fn}
		if m.Sym != nil {
			m.Sym.Type = fn
		}
	}
}
