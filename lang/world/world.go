// Package world holds the single process-wide registry spec.md §3.6
// describes: the global symbol scope every module's own scope is parented
// to, the node_id-keyed template and generic-class indices the expansion
// passes consult, and the "currently expanding" guard set used to detect
// circular template references. A REPL session keeps one World alive across
// many parsed modules so names declared in one entry stay visible in the
// next (module chaining).
package world

import (
	"fmt"

	"github.com/dolthub/swiss"

	"github.com/anode-lang/anode/lang/ast"
	"github.com/anode-lang/anode/lang/diag"
	"github.com/anode-lang/anode/lang/symbol"
	"github.com/anode-lang/anode/lang/types"
)

// World is the process-wide registry a REPL session or single-file run
// shares across every module processed within it.
type World struct {
	Global *symbol.Table

	templates   *swiss.Map[types.NodeID, *ast.NamedTemplateExpr]
	generics    *swiss.Map[types.NodeID, *types.Generic]
	genericDefs *swiss.Map[types.NodeID, *ast.GenericClassDefExpr]
	classDefs   *swiss.Map[types.NodeID, *ast.CompleteClassDefExpr]

	expanding map[types.NodeID]bool // cycle guard for template expansion

	modules []*ast.Module
	classes map[types.NodeID]bool // enforces the no-two-classes-share-a-node_id invariant
}

// New creates an empty World with just the global scope populated.
func New() *World {
	return &World{
		Global:      symbol.NewTable(nil),
		templates:   swiss.NewMap[types.NodeID, *ast.NamedTemplateExpr](16),
		generics:    swiss.NewMap[types.NodeID, *types.Generic](16),
		genericDefs: swiss.NewMap[types.NodeID, *ast.GenericClassDefExpr](16),
		classDefs:   swiss.NewMap[types.NodeID, *ast.CompleteClassDefExpr](16),
		expanding:   make(map[types.NodeID]bool),
		classes:     make(map[types.NodeID]bool),
	}
}

// NewClass constructs a *types.Class identified by id, enforcing that no
// two classes in this World ever share a node id (spec.md §3.3). id is the
// NodeID of the AST node that declared the class (a CompleteClassDefExpr,
// or the node a Generic expansion was synthesized from).
func (w *World) NewClass(id types.NodeID, name string, fields []*types.Field, methods []*types.Method) (*types.Class, error) {
	if w.classes[id] {
		return nil, fmt.Errorf("world: class node id %d already in use", id)
	}
	w.classes[id] = true
	return &types.Class{NodeID: id, Name: name, Fields: fields, Methods: methods}, nil
}

// NewModuleScope creates the symbol table for a freshly parsed module,
// parented to the World's global scope so prior REPL entries remain
// visible.
func (w *World) NewModuleScope() *symbol.Table {
	return symbol.NewTable(w.Global)
}

// RegisterTemplate indexes a named template by its declaring node's id so
// TemplateExpansionExpr sites can find it in O(1) regardless of which
// module declared it.
func (w *World) RegisterTemplate(n *ast.NamedTemplateExpr) {
	w.templates.Put(n.ID(), n)
}

// LookupTemplate returns the NamedTemplateExpr previously registered under
// id, if any.
func (w *World) LookupTemplate(id types.NodeID) (*ast.NamedTemplateExpr, bool) {
	return w.templates.Get(id)
}

// RegisterGeneric indexes a generic (uninstantiated) class type by the
// node id of its declaring GenericClassDefExpr.
func (w *World) RegisterGeneric(id types.NodeID, g *types.Generic) {
	w.generics.Put(id, g)
}

// LookupGeneric returns the Generic previously registered under id.
func (w *World) LookupGeneric(id types.NodeID) (*types.Generic, bool) {
	return w.generics.Get(id)
}

// RegisterGenericDef indexes a GenericClassDefExpr by its own node id so the
// expand-generics pass can find the Fields/Methods AST to clone for each
// concrete instantiation a Generic's type args resolve to.
func (w *World) RegisterGenericDef(n *ast.GenericClassDefExpr) {
	w.genericDefs.Put(n.ID(), n)
}

// LookupGenericDef returns the GenericClassDefExpr previously registered
// under id.
func (w *World) LookupGenericDef(id types.NodeID) (*ast.GenericClassDefExpr, bool) {
	return w.genericDefs.Get(id)
}

// RegisterClassDef indexes the CompleteClassDefExpr-shaped node a Class was
// populated from, by the Class's own node id — for an ordinary class this
// is its literal source node; for a generic expansion it is the synthetic
// clone instantiateGeneric built. lang/interp uses this to recover a
// method's argument names and body, which types.Method does not carry.
func (w *World) RegisterClassDef(id types.NodeID, def *ast.CompleteClassDefExpr) {
	w.classDefs.Put(id, def)
}

// LookupClassDef returns the definition node previously registered under a
// Class's node id, if any.
func (w *World) LookupClassDef(id types.NodeID) (*ast.CompleteClassDefExpr, bool) {
	return w.classDefs.Get(id)
}

// BeginExpansion marks id as currently being expanded, returning false
// (and not marking it) if it already is — the caller should raise
// diag.CircularTemplateReference in that case.
func (w *World) BeginExpansion(id types.NodeID) bool {
	if w.expanding[id] {
		return false
	}
	w.expanding[id] = true
	return true
}

// EndExpansion clears the in-progress marker set by BeginExpansion.
func (w *World) EndExpansion(id types.NodeID) {
	delete(w.expanding, id)
}

// AddModule appends a fully analyzed module to the World's history. Used
// by the REPL's /history command and by ExportModule.
func (w *World) AddModule(m *ast.Module) {
	w.modules = append(w.modules, m)
}

// Modules returns every module added so far, oldest first.
func (w *World) Modules() []*ast.Module {
	return w.modules
}

// ExportModule merges m's top-level declarations into the World's global
// scope under first-come-first-served collision policy: a name already
// present in Global is left untouched rather than replaced silently. Per
// spec.md §4.4, a collision is reported as SymbolAlreadyDefinedInScope; the
// colliding name is also returned in shadowed so the REPL can additionally
// echo it, matching the semantics spec.md §3.6 calls for when chaining REPL
// entries into one growing program.
func (w *World) ExportModule(m *ast.Module) (shadowed []string, err error) {
	scope := m.Scope()
	if scope == nil {
		return nil, fmt.Errorf("world: module %q has no scope to export", m.Name)
	}
	var errs diag.Stream
	for _, sym := range scope.Ordered() {
		clone := sym.Clone()
		if !w.Global.Declare(sym.Name, clone) {
			shadowed = append(shadowed, sym.Name)
			errs.Add(diag.SymbolAlreadyDefinedInScope, m.Span(), "%q is already defined in scope", sym.Name)
		}
	}
	return shadowed, errs.Err()
}
