// Package symbol implements the symbol table and scope tree used by the
// semantic passes: Symbol (spec.md §3.4) and SymbolTable, a lexical
// name->symbol map with a parent pointer.
package symbol

import "github.com/anode-lang/anode/lang/types"

// Kind identifies what a Symbol names.
type Kind int

//nolint:revive
const (
	Variable Kind = iota
	Function
	Type
	Namespace
	Template
)

func (k Kind) String() string {
	switch k {
	case Variable:
		return "variable"
	case Function:
		return "function"
	case Type:
		return "type"
	case Namespace:
		return "namespace"
	case Template:
		return "template"
	default:
		return "unknown"
	}
}

// Storage identifies the storage class of a Symbol.
type Storage int

//nolint:revive
const (
	Global Storage = iota
	Local
	Argument
	Instance
	TemplateParameter
)

func (s Storage) String() string {
	switch s {
	case Global:
		return "global"
	case Local:
		return "local"
	case Argument:
		return "argument"
	case Instance:
		return "instance"
	case TemplateParameter:
		return "template parameter"
	default:
		return "unknown"
	}
}

// Symbol is a named, typed entity bound in a SymbolTable.
type Symbol struct {
	Kind          Kind
	Name          string
	QualifiedName string // assigned once, "::"-separated
	Storage       Storage
	External      bool // set on clones exported to the world (spec.md §4.4)
	Type          types.Type

	// This is the implicit receiver symbol, set only on Function symbols
	// that are methods.
	This *Symbol

	// TemplateNode is the AST node id this symbol refers to, set only when
	// Kind == Template.
	TemplateNode types.NodeID

	// NamespaceScope is the nested symbol table owned by this symbol, set
	// only when Kind == Namespace.
	NamespaceScope *Table
}

// Clone returns a shallow copy of sym with External set to true, used when
// exporting a module's symbols to the world (spec.md §4.4).
func (sym *Symbol) Clone() *Symbol {
	cp := *sym
	cp.External = true
	return &cp
}
